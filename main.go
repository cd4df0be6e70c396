package main

import (
	"flag"
	"fmt"
	"os"

	"arcade/config"
	"arcade/engine"
	"arcade/experiments"
	"arcade/game"
	"arcade/searcher"
	"arcade/searcher/agent"
	"arcade/utils"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Command-line flags override the config file
var (
	flagVariant    = flag.String("variant", "", "Game variant (connect-four or checkers)")
	flagDepth      = flag.Int("depth", 0, "Search depth in plies")
	flagGoroutines = flag.Int("goroutines", 0, "Number of goroutines splitting the search root")
	flagHuman      = flag.String("human", "", "Side played from stdin (a, b, both or none)")
	flagExperiment = flag.String("experiment", "", "Run an experiment instead of a game (depth, pruning or throughput)")
	flagLogLevel   = flag.String("log-level", "", "Log level (debug, info, warn, error)")
	flagSave       = flag.Bool("save", false, "Save the effective settings to the config file")
)

func main() {
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	applyFlags(cfg)
	if err = cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid settings")
	}
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(level)

	if *flagSave {
		if err = cfg.Save(); err != nil {
			log.Fatal().Err(err).Msg("failed to save config")
		}
	}

	if *flagExperiment != "" {
		runExperiment(*flagExperiment, cfg)
		return
	}

	c, err := newController(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start game")
	}
	if err = play(c, os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("game aborted")
	}
}

func applyFlags(cfg *config.Config) {
	if *flagVariant != "" {
		cfg.Game.Variant = *flagVariant
	}
	if *flagDepth != 0 {
		cfg.Search.Depth = *flagDepth
	}
	if *flagGoroutines != 0 {
		cfg.Search.Goroutines = *flagGoroutines
	}
	if *flagHuman != "" {
		cfg.Game.Human = *flagHuman
	}
	if *flagLogLevel != "" {
		cfg.LogLevel = *flagLogLevel
	}
}

func newController(cfg *config.Config) (*engine.Controller, error) {
	humans, err := cfg.HumanSides()
	if err != nil {
		return nil, err
	}
	options := []searcher.Option{
		searcher.WithDepth(cfg.Search.Depth),
		searcher.WithGoroutines(cfg.Search.Goroutines),
	}
	if !cfg.Search.Pruning {
		options = append(options, searcher.WithoutPruning())
	}
	computer := agent.NewSearchAgent(searcher.New(options...))

	players := engine.Players{}
	for _, side := range []game.Side{game.SideA, game.SideB} {
		if !utils.Contains(humans, side) {
			players[side] = computer
		}
	}
	return engine.NewDefaultGame(cfg.Variant(), players)
}

func runExperiment(name string, cfg *config.Config) {
	var dir string
	var err error
	switch name {
	case "depth":
		dir, err = experiments.RunDepthExperiment(cfg.Variant(), cfg.Experiment)
	case "pruning":
		dir, err = experiments.RunPruningExperiment(cfg.Variant(), cfg.Experiment)
	case "throughput":
		dir, err = experiments.RunThroughputExperiment(cfg.Variant(), cfg.Experiment)
	default:
		err = fmt.Errorf("unknown experiment %q", name)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s experiment failed", name)
	}
	fmt.Printf("results written to %s\n", dir)
}
