package agent

import (
	"arcade/experiments/metrics"
	"arcade/game"
	"arcade/searcher"
)

type searchAgent struct {
	minimax *searcher.Minimax
}

// NewSearchAgent returns an agent that plays the minimax choice.
func NewSearchAgent(minimax *searcher.Minimax) Agent {
	return searchAgent{minimax: minimax}
}

func (a searchAgent) FindMove(state *game.State) (game.Move, metrics.SearchMetric, bool) {
	result, metric := a.minimax.ChooseMove(state)
	return result.Move, metric, result.Found
}

func (a searchAgent) Kind() string {
	return "search"
}
