package agent

import (
	"sync"

	"arcade/experiments/metrics"
	"arcade/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent that plays uniformly random legal
// moves. The same seed replays the same game against a deterministic opponent.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(state *game.State) (game.Move, metrics.SearchMetric, bool) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, metrics.SearchMetric{}, false
	}
	a.mu.Lock()
	i := a.rng.Intn(len(moves))
	a.mu.Unlock()
	return moves[i], metrics.SearchMetric{}, true
}

func (a *randomAgent) Kind() string {
	return "random"
}
