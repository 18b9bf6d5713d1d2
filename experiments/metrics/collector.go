package metrics

import (
	"sync/atomic"
	"time"

	"hive/game"
)

type SearchMetric struct {
	Goroutines   int
	Duration     time.Duration
	Episodes     int
	Cutoff       int
	Exploration  float64
	FullPlayouts int
}

type MoveMetric struct {
	Step   int
	Player game.Team
	Action game.Action
	SearchMetric
}

type GameMetric struct {
	Result     game.Result
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

// Collector gathers counters while a search runs. Implementations must be
// safe for concurrent use by the search goroutines.
type Collector interface {
	Start(goroutines, cutoff int, exploration float64)
	AddFullPlayout()
	AddEpisode()
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	cutoff       int
	exploration  float64
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, cutoff int, exploration float64) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.cutoff = cutoff
	m.exploration = exploration
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		Cutoff:       m.cutoff,
		Exploration:  m.exploration,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, cutoff int, exploration float64) {}
func (m *dummyCollector) AddFullPlayout()                                  {}
func (m *dummyCollector) AddEpisode()                                      {}
func (m *dummyCollector) Complete() SearchMetric                           { return SearchMetric{} }
