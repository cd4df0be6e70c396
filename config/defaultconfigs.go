package config

import "arcade/meta"

// MaxDepth keeps a single checkers search under a few seconds.
const MaxDepth = 10

var DefaultConfig Config

func init() {
	DefaultConfig = Config{
		LogLevel: "info",
		Game: GameConfig{
			Variant: "connect-four",
			Human:   "a",
		},
		Search: SearchConfig{
			Depth:      meta.DefaultDepth,
			Goroutines: meta.DefaultGoroutines,
			Pruning:    true,
		},
		Experiment: ExperimentConfig{
			Games:     10,
			Depths:    []int{1, 2, 4},
			Seed:      meta.DefaultSeed,
			OutputDir: "experiments",
		},
	}
}
