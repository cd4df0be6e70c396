package engine

import (
	"arcade/experiments/metrics"
	"arcade/game"
)

type Engine interface {
	// Run plays computer turns until the game ends, a human side has to move or meta.MAX_TURNS turns were played
	Run() (outcome game.Outcome, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

var _ Engine = (*Controller)(nil)
