package experiments

import (
	"arcade/config"
	"arcade/experiments/metrics"
	"arcade/game"
	"arcade/meta"
)

// RunPruningExperiment plays, for each depth, an alpha-beta agent against an
// exhaustive minimax agent of the same depth. Both choose identical moves, so
// the move records isolate the node savings of pruning.
func RunPruningExperiment(variant game.Variant, cfg config.ExperimentConfig) (string, error) {
	configs := []metrics.AgentConfig{}
	matchUps := [][]metrics.AgentConfig{}
	for i, depth := range cfg.Depths {
		pruned := metrics.AgentConfig{ID: 2*i + 1, Kind: "search", Depth: depth, Goroutines: 1, Pruning: true}
		full := metrics.AgentConfig{ID: 2*i + 2, Kind: "search", Depth: depth, Goroutines: 1, Pruning: false}
		configs = append(configs, pruned, full)
		matchUps = append(matchUps, []metrics.AgentConfig{pruned, full})
	}

	return runExperiment("pruning", variant, cfg, configs, matchUps)
}

// RunThroughputExperiment measures root-split parallel search. Each matchup
// uses the same config for both players for the same playing strength.
func RunThroughputExperiment(variant game.Variant, cfg config.ExperimentConfig) (string, error) {
	depth := meta.DefaultDepth
	if len(cfg.Depths) > 0 {
		depth = cfg.Depths[len(cfg.Depths)-1]
	}
	configs := []metrics.AgentConfig{}
	matchUps := [][]metrics.AgentConfig{}
	for i, goroutines := range []int{1, 2, 4, 8} {
		c := metrics.AgentConfig{ID: i + 1, Kind: "search", Depth: depth, Goroutines: goroutines, Pruning: true}
		configs = append(configs, c)
		matchUps = append(matchUps, []metrics.AgentConfig{c, c})
	}

	return runExperiment("throughput", variant, cfg, configs, matchUps)
}
