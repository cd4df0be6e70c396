package experiments

import (
	"fmt"

	"arcade/config"
	"arcade/engine"
	"arcade/experiments/metrics"
	"arcade/game"
	"arcade/searcher"
	"arcade/searcher/agent"

	"github.com/rs/zerolog/log"
)

// RunDepthExperiment pairs a search agent of each configured depth against
// the random baseline. Returns the directory the results were written to.
func RunDepthExperiment(variant game.Variant, cfg config.ExperimentConfig) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Kind: "random", Seed: cfg.Seed}
	configs := []metrics.AgentConfig{baseline}
	matchUps := [][]metrics.AgentConfig{}
	for i, depth := range cfg.Depths {
		searchConfig := metrics.AgentConfig{ID: i + 1, Kind: "search", Depth: depth, Goroutines: 1, Pruning: true}
		configs = append(configs, searchConfig)
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, searchConfig})
	}

	return runExperiment("depth", variant, cfg, configs, matchUps)
}

func runExperiment(name string, variant game.Variant, cfg config.ExperimentConfig, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) (string, error) {
	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment on %s...", name, variant)

	for mi, matchup := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), matchup[0], matchup[1])

		for i := 0; i < cfg.Games; i++ {
			// Alternate the starting agent
			config1, config2 := matchup[0], matchup[1]
			if i%2 == 1 {
				config1, config2 = config2, config1
			}
			count++

			outcome, gameMetric, moveMetrics, err := runGame(variant, config1, config2, uint64(count))
			if err != nil {
				return "", err
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Variant:    variant.String(),
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with outcome: %s", mi+1, len(matchUps), i+1, outcome)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(cfg.OutputDir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err = writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err = writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err = writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored %d games and %d moves in %s", len(gameRecords), len(moveRecords), writer.Dir())

	return writer.Dir(), nil
}

// runGame plays a single game with config1 as side A and config2 as side B.
func runGame(variant game.Variant, config1, config2 metrics.AgentConfig, gameID uint64) (outcome game.Outcome, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error) {
	players := engine.Players{
		game.SideA: createAgent(config1, gameID),
		game.SideB: createAgent(config2, gameID),
	}
	c, err := engine.NewDefaultGame(variant, players)
	if err != nil {
		return outcome, gameMetric, nil, err
	}
	outcome, gameMetric, moveMetrics = c.Run()
	return outcome, gameMetric, moveMetrics, nil
}

func createAgent(config metrics.AgentConfig, gameID uint64) agent.Agent {
	if config.Kind == "random" {
		return agent.NewRandomAgent(config.Seed + gameID)
	}

	options := []searcher.Option{}
	if config.Depth > 0 {
		options = append(options, searcher.WithDepth(config.Depth))
	}
	if config.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}
	if !config.Pruning {
		options = append(options, searcher.WithoutPruning())
	}

	options = append(options, searcher.WithMetrics())
	return agent.NewSearchAgent(searcher.New(options...))
}
