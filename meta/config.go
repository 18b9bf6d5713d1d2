package meta

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"hive/game"
)

type AgentKind string

const (
	MCTSAgent      AgentKind = "mcts"
	TrainingAgent  AgentKind = "training"
	AlphaBetaAgent AgentKind = "alphabeta"
	RandomAgent    AgentKind = "random"
)

// Evaluation names the heuristic an alpha-beta agent scores its leaves with.
type Evaluation string

const (
	PressureEvaluation Evaluation = "pressure"
	MobilityEvaluation Evaluation = "mobility"
)

// Heuristic returns the evaluation function named by e.
func (e Evaluation) Heuristic() game.Evaluate {
	if e == MobilityEvaluation {
		return game.EvaluatePressureMobility
	}
	return game.EvaluateQueenPressure
}

type AgentConfig struct {
	ID          int           `yaml:"id"`
	Kind        AgentKind     `yaml:"kind"`
	Goroutines  int           `yaml:"goroutines"`
	Episodes    int           `yaml:"episodes"`
	Duration    time.Duration `yaml:"duration"`
	Cutoff      int           `yaml:"cutoff"`
	Exploration *float64      `yaml:"exploration"` // Unset means the default
	Temperature float64       `yaml:"temperature"`
	Depth       int           `yaml:"depth"`
	Evaluation  Evaluation    `yaml:"evaluation"`
	Seed        uint64        `yaml:"seed"`
}

// Float64 returns a pointer to v, for literal configs.
func Float64(v float64) *float64 {
	return &v
}

// MatchUp names the agents playing white and black by ID.
type MatchUp struct {
	White int `yaml:"white"`
	Black int `yaml:"black"`
}

// Config describes an experiment: the agents, who plays whom and how often.
type Config struct {
	Name          string        `yaml:"name"`
	Games         int           `yaml:"games"` // Per match up
	Parallel      int           `yaml:"parallel"`
	MaxTurns      int           `yaml:"max_turns"`
	QueenDeadline int           `yaml:"queen_deadline"`
	OutputDir     string        `yaml:"output_dir"`
	Agents        []AgentConfig `yaml:"agents"`
	MatchUps      []MatchUp     `yaml:"matchups"`
}

// DefaultConfig pits a default MCTS agent against a random one.
func DefaultConfig() Config {
	c := Config{
		Name: "mcts_vs_random",
		Agents: []AgentConfig{
			{ID: 1, Kind: MCTSAgent},
			{ID: 2, Kind: RandomAgent, Seed: 1},
		},
		MatchUps: []MatchUp{{White: 1, Black: 2}, {White: 2, Black: 1}},
	}
	c.applyDefaults()
	return c
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML experiment, fills in defaults and validates it.
func ParseConfig(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// WithDefaults returns a copy of c with every unset field defaulted.
func (c Config) WithDefaults() Config {
	c.Agents = append([]AgentConfig(nil), c.Agents...)
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = "experiment"
	}
	if c.Games <= 0 {
		c.Games = 1
	}
	if c.Parallel <= 0 {
		c.Parallel = 1
	}
	if c.MaxTurns <= 0 {
		c.MaxTurns = MaxTurns
	}
	if c.QueenDeadline <= 0 {
		c.QueenDeadline = game.NewStandardRules().QueenDeadline
	}
	if c.OutputDir == "" {
		c.OutputDir = "experiments"
	}
	for i := range c.Agents {
		a := &c.Agents[i]
		if a.Kind == "" {
			a.Kind = MCTSAgent
		}
		if a.Goroutines <= 0 {
			a.Goroutines = Goroutines
		}
		if a.Episodes <= 0 && a.Duration <= 0 {
			a.Episodes = Episodes
		}
		if a.Cutoff <= 0 {
			a.Cutoff = Cutoff
		}
		if a.Exploration == nil {
			a.Exploration = Float64(Exploration)
		}
		if a.Temperature <= 0 {
			a.Temperature = 1
		}
		if a.Depth <= 0 {
			a.Depth = Depth
		}
		if a.Evaluation == "" {
			a.Evaluation = PressureEvaluation
		}
	}
}

func (c Config) Validate() error {
	ids := make(map[int]bool, len(c.Agents))
	for _, a := range c.Agents {
		if ids[a.ID] {
			return fmt.Errorf("duplicate agent id %d", a.ID)
		}
		ids[a.ID] = true
		switch a.Kind {
		case MCTSAgent, TrainingAgent, AlphaBetaAgent, RandomAgent:
		default:
			return fmt.Errorf("agent %d has unknown kind %q", a.ID, a.Kind)
		}
		switch a.Evaluation {
		case "", PressureEvaluation, MobilityEvaluation:
		default:
			return fmt.Errorf("agent %d has unknown evaluation %q", a.ID, a.Evaluation)
		}
		if a.Exploration != nil && *a.Exploration < 0 {
			return fmt.Errorf("agent %d has negative exploration %v", a.ID, *a.Exploration)
		}
	}
	if len(c.MatchUps) == 0 {
		return fmt.Errorf("no matchups")
	}
	for _, m := range c.MatchUps {
		if !ids[m.White] || !ids[m.Black] {
			return fmt.Errorf("matchup %d vs %d refers to an unknown agent", m.White, m.Black)
		}
	}
	return nil
}

// Agent looks up an agent config by ID.
func (c Config) Agent(id int) (AgentConfig, bool) {
	for _, a := range c.Agents {
		if a.ID == id {
			return a, true
		}
	}
	return AgentConfig{}, false
}

// Rules returns the standard rules with the configured queen deadline.
func (c Config) Rules() game.Rules {
	rules := game.NewStandardRules()
	rules.QueenDeadline = c.QueenDeadline
	return rules
}
