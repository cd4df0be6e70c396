package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"arcade/experiments/metrics"
	"arcade/game"
	"arcade/meta"
	"arcade/searcher/agent"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrIllegalMove     = errors.New("illegal move")
	ErrGameOver        = errors.New("game is over - no moves allowed")
	ErrNotHumanTurn    = errors.New("side to move is computer-controlled")
	ErrNotComputerTurn = errors.New("side to move is human-controlled")
	ErrResolving       = errors.New("a move is being resolved")
	ErrReset           = errors.New("game was reset during the search")
)

type Phase int

const (
	AwaitingMove Phase = iota
	Resolving
	GameOver
)

func (p Phase) String() string {
	switch p {
	case AwaitingMove:
		return "awaiting move"
	case Resolving:
		return "resolving"
	case GameOver:
		return "game over"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Players assigns an agent to each computer-controlled side. A side without
// an agent is human-controlled.
type Players map[game.Side]agent.Agent

type Update struct {
	Move game.Move
	Hash game.StateHash
}

// Controller drives one game at a time. It is safe for concurrent use; the
// search of a computer turn runs without holding the lock, so queries stay
// answered while the phase is Resolving.
type Controller struct {
	mu         sync.Mutex
	id         uuid.UUID
	rules      game.Rules
	rows, cols int
	players    Players
	state      *game.State
	phase      Phase
	outcome    game.Outcome
	turns      int
	plies      int
	last       *Update
	generation int
}

// NewGame starts a game of variant on a rows x cols board.
func NewGame(variant game.Variant, rows, cols int, players Players) (*Controller, error) {
	rules := game.NewRules(variant)
	state, err := game.NewState(rules, rows, cols)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s game: %w", variant, err)
	}
	if players == nil {
		players = Players{}
	}

	c := &Controller{
		rules:   rules,
		rows:    rows,
		cols:    cols,
		players: players,
	}
	c.start(state)
	return c, nil
}

// NewDefaultGame starts a game on the variant's standard board.
func NewDefaultGame(variant game.Variant, players Players) (*Controller, error) {
	rows, cols := game.NewRules(variant).Dimensions()
	return NewGame(variant, rows, cols, players)
}

// NewGameFrom resumes play from an arbitrary position.
func NewGameFrom(state *game.State, players Players) *Controller {
	rows, cols := state.Board.Rows(), state.Board.Cols()
	if players == nil {
		players = Players{}
	}
	c := &Controller{
		rules:   state.Rules,
		rows:    rows,
		cols:    cols,
		players: players,
	}
	c.start(state.Copy())
	return c
}

func (c *Controller) start(state *game.State) {
	c.id = uuid.New()
	c.state = state
	c.turns = 0
	c.plies = 0
	c.last = nil
	c.generation++
	c.settle()

	log.Info().
		Str("game", c.id.String()).
		Str("variant", c.rules.Variant().String()).
		Msgf("side %s is starting", state.ToMove)
}

// settle recomputes the outcome and phase after the state changed.
func (c *Controller) settle() {
	c.outcome = c.state.Outcome()
	if c.outcome.Over() {
		c.phase = GameOver
		return
	}
	c.phase = AwaitingMove
}

// Reset discards the current game and starts over on a fresh board with the
// same players. A search still running for the old game is discarded.
func (c *Controller) Reset() error {
	state, err := game.NewState(c.rules, c.rows, c.cols)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start(state)
	return nil
}

func (c *Controller) ID() uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

func (c *Controller) Variant() game.Variant {
	return c.rules.Variant()
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// ToMove returns the side the controller is waiting on.
func (c *Controller) ToMove() game.Side {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.ToMove
}

// IsHuman reports whether side has no agent attached.
func (c *Controller) IsHuman(side game.Side) bool {
	return c.players[side] == nil
}

func (c *Controller) Outcome() game.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome
}

// Turns counts completed turns. A capture chain is a single turn.
func (c *Controller) Turns() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.turns
}

// LastMove returns the most recently applied move.
func (c *Controller) LastMove() (Update, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return Update{}, false
	}
	return *c.last, true
}

func (c *Controller) Snapshot() [][]game.Cell {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Board.Snapshot()
}

// Board returns a copy of the current board.
func (c *Controller) Board() *game.Board {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Board.Clone()
}

// State returns a copy of the current game state.
func (c *Controller) State() *game.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Copy()
}

// LegalMoves returns the moves open to the side to move, restricted to
// continuation captures while a chain is pending. Empty once the game is over.
func (c *Controller) LegalMoves() []game.Move {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == GameOver {
		return nil
	}
	return c.state.LegalMoves()
}

// SubmitMove plays the human move from -> to. Drops may pass game.NoPos as from.
func (c *Controller) SubmitMove(from, to game.Pos) (game.Outcome, error) {
	return c.submit(fmt.Sprintf("%s -> %s", from, to), func(m game.Move) bool {
		return m.From == from && m.To == to
	})
}

// SubmitDrop plays a human drop into col.
func (c *Controller) SubmitDrop(col int) (game.Outcome, error) {
	return c.submit(fmt.Sprintf("drop col %d", col), func(m game.Move) bool {
		return m.IsDrop() && m.To.Col == col
	})
}

// Submit plays a fully specified human move.
func (c *Controller) Submit(move game.Move) (game.Outcome, error) {
	return c.submit(move.String(), move.Equal)
}

func (c *Controller) submit(desc string, match func(game.Move) bool) (game.Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.phase {
	case GameOver:
		return c.outcome, ErrGameOver
	case Resolving:
		return c.outcome, ErrResolving
	}
	if !c.IsHuman(c.state.ToMove) {
		return c.outcome, ErrNotHumanTurn
	}

	legalMoves := c.state.LegalMoves()
	for _, m := range legalMoves {
		if match(m) {
			c.apply(m)
			return c.outcome, nil
		}
	}

	log.Debug().Str("game", c.id.String()).Msgf("rejected %s for side %s", desc, c.state.ToMove)
	if c.state.InChain() {
		return c.outcome, fmt.Errorf("%w: %s, the capturing piece must continue", ErrIllegalMove, desc)
	}
	return c.outcome, fmt.Errorf("%w: %s", ErrIllegalMove, desc)
}

// RequestComputerMove runs the agent of the side to move and applies its
// choice. When the agent finds no move, the game ends in the opponent's favour.
func (c *Controller) RequestComputerMove() (game.Move, error) {
	move, _, err := c.computerMove()
	return move, err
}

func (c *Controller) computerMove() (game.Move, metrics.MoveMetric, error) {
	c.mu.Lock()
	switch c.phase {
	case GameOver:
		c.mu.Unlock()
		return game.Move{}, metrics.MoveMetric{}, ErrGameOver
	case Resolving:
		c.mu.Unlock()
		return game.Move{}, metrics.MoveMetric{}, ErrResolving
	}
	side := c.state.ToMove
	a := c.players[side]
	if a == nil {
		c.mu.Unlock()
		return game.Move{}, metrics.MoveMetric{}, ErrNotComputerTurn
	}
	state := c.state // never mutated, safe to search without the lock
	generation := c.generation
	c.phase = Resolving
	c.mu.Unlock()

	move, searchMetric, ok := a.FindMove(state)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != generation {
		return game.Move{}, metrics.MoveMetric{}, ErrReset
	}
	moveMetric := metrics.MoveMetric{
		Step:         c.plies + 1,
		Player:       side.String(),
		SearchMetric: searchMetric,
	}

	if !ok {
		c.outcome = game.Outcome{Status: game.Win, Winner: side.Opponent()}
		c.phase = GameOver
		log.Info().Str("game", c.id.String()).Msgf("side %s has no move, %s", side, c.outcome)
		return game.Move{}, moveMetric, nil
	}

	if game.IndexOf(state.LegalMoves(), move) < 0 {
		// agents only ever return moves generated from the state they were given
		panic(fmt.Sprintf("%s agent returned illegal move %v", a.Kind(), move))
	}
	c.apply(move)
	return move, moveMetric, nil
}

func (c *Controller) apply(m game.Move) {
	side := c.state.ToMove
	c.state = c.state.Play(m)
	c.plies++
	c.last = &Update{Move: m, Hash: c.state.Hash()}
	if c.state.ToMove != side {
		c.turns++
	}
	c.settle()

	log.Debug().Str("game", c.id.String()).Msgf("turn %d: %v", c.turns, m)
	if c.phase == GameOver {
		log.Info().Str("game", c.id.String()).Msgf("game over after %d turns: %s", c.turns, c.outcome)
	}
}

// Run plays computer turns until the game ends, a human side has to move or
// meta.MAX_TURNS turns were played.
func (c *Controller) Run() (game.Outcome, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: c.ToMove().String(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	for c.Phase() != GameOver && c.Turns() < meta.MAX_TURNS {
		if c.IsHuman(c.ToMove()) {
			break
		}
		_, moveMetric, err := c.computerMove()
		if err != nil {
			log.Warn().Err(err).Msg("stopped running the game")
			break
		}
		moveMetrics = append(moveMetrics, moveMetric)
	}

	outcome := c.Outcome()
	if !outcome.Over() && c.Turns() >= meta.MAX_TURNS {
		log.Info().Msgf("stopped after %d turns (no winner yet)", meta.MAX_TURNS)
	}
	if outcome.Status == game.Win {
		gameMetric.Winner = outcome.Winner.String()
	}
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	return outcome, gameMetric, moveMetrics
}
