package searcher

import (
	"math"
	"sync"

	"arcade/experiments/metrics"
	"arcade/game"
	"arcade/meta"

	"github.com/rs/zerolog/log"
)

type Option func(m *Minimax)

// Result is the move chosen by a search. Found is false when the side to
// move had no legal move at the root.
type Result struct {
	Move  game.Move
	Score float64
	Found bool
}

// Minimax is a depth-bounded minimax searcher with alpha-beta pruning.
// It keeps no state between calls, so one instance may serve concurrent searches.
type Minimax struct {
	depth        int
	goroutines   int
	pruning      bool
	evaluate     game.Evaluate
	newCollector func() metrics.Collector
}

func WithDepth(depth int) Option {
	return func(m *Minimax) {
		if depth > 0 {
			m.depth = depth
		}
	}
}

// WithGoroutines searches the root moves on a pool of workers.
func WithGoroutines(goroutines int) Option {
	return func(m *Minimax) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

// WithoutPruning disables alpha-beta cutoffs and searches the full tree.
func WithoutPruning() Option {
	return func(m *Minimax) {
		m.pruning = false
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.newCollector = metrics.NewCollector
	}
}

func New(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		depth:        meta.DefaultDepth,
		goroutines:   meta.DefaultGoroutines,
		pruning:      true,
		newCollector: metrics.NewDummyCollector,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Minimax) Depth() int {
	return m.depth
}

func (m *Minimax) Goroutines() int {
	return m.goroutines
}

// ChooseMove searches a board for side with the given horizon. A horizon
// below one ply is searched as one ply.
func ChooseMove(b *game.Board, rules game.Rules, side game.Side, maxDepth int) Result {
	maxDepth = max(maxDepth, 1)
	result, _ := New(WithDepth(maxDepth)).ChooseMove(game.NewStateFrom(rules, b.Clone(), side))
	return result
}

// ChooseMove picks a move for the side to move in state. The first move
// reaching the best score in enumeration order wins ties.
func (m *Minimax) ChooseMove(state *game.State) (Result, metrics.SearchMetric) {
	collector := m.newCollector()
	collector.Start(m.goroutines, m.depth, m.pruning)

	s := &search{
		root:     state.ToMove,
		maxDepth: m.depth,
		pruning:  m.pruning,
		evaluate: m.evaluate,
		metrics:  collector,
	}
	if s.evaluate == nil {
		s.evaluate = state.Rules.Evaluate
	}

	moves := state.LegalMoves()
	var result Result
	switch {
	case len(moves) == 0:
		result = Result{}
	case m.goroutines > 1 && len(moves) > 1:
		result = s.parallel(state, moves, m.goroutines)
	default:
		result = s.sequential(state, moves)
	}
	metric := collector.Complete()

	if result.Found {
		log.Debug().
			Str("side", state.ToMove.String()).
			Str("move", result.Move.String()).
			Float64("score", result.Score).
			Int("depth", m.depth).
			Int("nodes", metric.Nodes).
			Msg("search complete")
	} else {
		log.Debug().Str("side", state.ToMove.String()).Msg("search found no legal move")
	}
	return result, metric
}

type search struct {
	root     game.Side
	maxDepth int
	pruning  bool
	evaluate game.Evaluate
	metrics  metrics.Collector
}

func (s *search) sequential(state *game.State, moves []game.Move) Result {
	best := Result{Score: math.Inf(-1)}
	alpha, beta := math.Inf(-1), math.Inf(1)
	for _, move := range moves {
		score := s.value(state.Play(move), 1, alpha, beta)
		if !best.Found || score > best.Score {
			best = Result{Move: move, Score: score, Found: true}
		}
		if s.pruning {
			alpha = math.Max(alpha, score)
		}
	}
	return best
}

// parallel scores every root move with a full window so each value is exact,
// then picks the first best in enumeration order like sequential does.
func (s *search) parallel(state *game.State, moves []game.Move, goroutines int) Result {
	task := make(chan int, len(moves))
	for i := range moves {
		task <- i
	}
	close(task)

	scores := make([]float64, len(moves))
	var wg sync.WaitGroup
	for i := 0; i < min(goroutines, len(moves)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := range task {
				scores[i] = s.value(state.Play(moves[i]), 1, math.Inf(-1), math.Inf(1))
			}
		}()
	}
	wg.Wait()

	best := Result{Move: moves[0], Score: scores[0], Found: true}
	for i := 1; i < len(moves); i++ {
		if scores[i] > best.Score {
			best = Result{Move: moves[i], Score: scores[i], Found: true}
		}
	}
	return best
}

// value returns the minimax score of state from the root side's perspective.
// The side to move maximizes when it is the root side; capture chains keep the
// same side to move across plies.
func (s *search) value(state *game.State, depth int, alpha, beta float64) float64 {
	s.metrics.AddNode()

	if outcome := state.Outcome(); outcome.Over() {
		s.metrics.AddTerminal()
		return s.terminal(outcome, depth)
	}
	if depth >= s.maxDepth {
		return s.evaluate(state.Board, s.root)
	}

	moves := state.LegalMoves()
	if len(moves) == 0 {
		// rule sets report this through Outcome; a blocked side loses
		s.metrics.AddTerminal()
		return s.terminal(game.Outcome{Status: game.Win, Winner: state.ToMove.Opponent()}, depth)
	}

	if state.ToMove == s.root {
		best := math.Inf(-1)
		for _, move := range moves {
			best = math.Max(best, s.value(state.Play(move), depth+1, alpha, beta))
			if s.pruning {
				alpha = math.Max(alpha, best)
				if beta <= alpha {
					s.metrics.AddCutoff()
					break
				}
			}
		}
		return best
	}

	best := math.Inf(1)
	for _, move := range moves {
		best = math.Min(best, s.value(state.Play(move), depth+1, alpha, beta))
		if s.pruning {
			beta = math.Min(beta, best)
			if beta <= alpha {
				s.metrics.AddCutoff()
				break
			}
		}
	}
	return best
}

func (s *search) terminal(outcome game.Outcome, depth int) float64 {
	switch {
	case outcome.Status == game.Draw:
		return DrawScore
	case outcome.Winner == s.root:
		return WinScore - float64(depth)
	default:
		return -(WinScore - float64(depth))
	}
}
