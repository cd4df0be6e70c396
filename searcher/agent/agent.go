package agent

import (
	"arcade/experiments/metrics"
	"arcade/game"
)

type Agent interface {
	// FindMove returns a move for the side to move in state and performance metrics (if collected).
	// ok is false when the side to move has no legal move.
	FindMove(state *game.State) (move game.Move, metric metrics.SearchMetric, ok bool)
	// Kind names the agent in logs and experiment records.
	Kind() string
}
