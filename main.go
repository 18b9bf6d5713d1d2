package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hive/experiments"
	"hive/game"
	"hive/meta"
)

func main() {
	mode := flag.String("mode", "experiment", "One of experiment, selfplay, throughput or cutoff")
	configPath := flag.String("config", "", "YAML experiment config, the built-in MCTS vs random match up if empty")
	dryRun := flag.Bool("dry-run", false, "Do not write any records")
	level := flag.String("level", "info", "Log level")
	games := flag.Int("games", 4, "Games per match up for the throughput and cutoff presets")
	duration := flag.Duration("duration", 100*time.Millisecond, "Search time per move for the throughput preset")
	episodes := flag.Int("episodes", meta.Episodes, "Search episodes per move for the cutoff preset")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(lvl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := termenv.NewOutput(os.Stdout)

	switch *mode {
	case "experiment":
		summary, err := experiments.Run(ctx, loadConfig(*configPath), *dryRun)
		if err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
		printScores(out, summary)
	case "throughput":
		summary, err := experiments.Run(ctx, experiments.ThroughputConfig(*duration, *games), *dryRun)
		if err != nil {
			log.Fatal().Err(err).Msg("throughput experiment failed")
		}
		printThroughput(out, summary)
	case "cutoff":
		summary, err := experiments.Run(ctx, experiments.CutoffConfig(*episodes, *games), *dryRun)
		if err != nil {
			log.Fatal().Err(err).Msg("cutoff experiment failed")
		}
		printScores(out, summary)
	case "selfplay":
		selfPlay(ctx, out, loadConfig(*configPath))
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
}

func loadConfig(path string) meta.Config {
	if path == "" {
		return meta.DefaultConfig()
	}
	config, err := meta.LoadConfig(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("failed to load config")
	}
	return config
}

// selfPlay plays the first match up once and prints every move.
func selfPlay(ctx context.Context, out *termenv.Output, config meta.Config) {
	matchUp := config.MatchUps[0]
	white, _ := config.Agent(matchUp.White)
	black, _ := config.Agent(matchUp.Black)

	record, moves, err := experiments.PlayGame(ctx, white, black, config.Rules(), config.MaxTurns, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("game failed")
	}

	for _, move := range moves {
		fmt.Fprintf(out, "%4d %s %s\n", move.Step, teamStyle(out, move.Player), move.Action)
	}
	fmt.Fprintf(out, "%s after %s moves in %s\n",
		out.String(record.Result.String()).Bold(), humanize.Comma(int64(record.TotalMoves)), record.Duration.Round(time.Millisecond))
}

func printScores(out *termenv.Output, summary experiments.Summary) {
	for _, score := range summary.Scores {
		fmt.Fprintf(out, "agent %d vs agent %d: %s %d  %s %d  draws %d\n",
			score.MatchUp.White, score.MatchUp.Black,
			teamStyle(out, game.White), score.WhiteWins,
			teamStyle(out, game.Black), score.BlackWins,
			score.Draws)
	}
	if summary.Dir != "" {
		fmt.Fprintf(out, "records written to %s\n", out.String(summary.Dir).Underline())
	}
}

func printThroughput(out *termenv.Output, summary experiments.Summary) {
	throughput := experiments.Throughput(summary)
	ids := make([]int, 0, len(throughput))
	for id := range throughput {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fmt.Fprintf(out, "agent %d: %s episodes per move\n", id, out.String(humanize.CommafWithDigits(throughput[id], 1)).Bold())
	}
	printScores(out, summary)
}

func teamStyle(out *termenv.Output, team game.Team) termenv.Style {
	if team == game.White {
		return out.String(team.String()).Foreground(out.Color("15")).Bold()
	}
	return out.String(team.String()).Foreground(out.Color("8")).Bold()
}
