package engine

import (
	"testing"

	"arcade/experiments/metrics"
	"arcade/game"
	"arcade/searcher"
	"arcade/searcher/agent"

	"github.com/stretchr/testify/require"
)

type stubAgent struct {
	move  game.Move
	ok    bool
	calls int
}

func (a *stubAgent) FindMove(state *game.State) (game.Move, metrics.SearchMetric, bool) {
	a.calls++
	return a.move, metrics.SearchMetric{Depth: 1}, a.ok
}

func (a *stubAgent) Kind() string { return "stub" }

// blockingAgent holds its search until release is closed.
type blockingAgent struct {
	started chan struct{}
	release chan struct{}
}

func newBlockingAgent() *blockingAgent {
	return &blockingAgent{started: make(chan struct{}), release: make(chan struct{})}
}

func (a *blockingAgent) FindMove(state *game.State) (game.Move, metrics.SearchMetric, bool) {
	close(a.started)
	<-a.release
	return state.LegalMoves()[3], metrics.SearchMetric{}, true
}

func (a *blockingAgent) Kind() string { return "blocking" }

type searchResult struct {
	move game.Move
	err  error
}

// startSearch requests the computer move in the background and waits until
// the agent is searching.
func startSearch(c *Controller, a *blockingAgent) <-chan searchResult {
	done := make(chan searchResult, 1)
	go func() {
		move, err := c.RequestComputerMove()
		done <- searchResult{move, err}
	}()
	<-a.started
	return done
}

func checkersPosition(t *testing.T, toMove game.Side, pieces map[game.Pos]game.Cell) *game.State {
	t.Helper()
	b, err := game.NewBoard(8, 8, game.EmptyLayout)
	require.NoError(t, err)
	for p, cell := range pieces {
		require.NoError(t, b.Set(p.Row, p.Col, cell))
	}
	return game.NewStateFrom(game.NewCheckersRules(), b, toMove)
}

func TestNewGame(t *testing.T) {
	t.Run("starts awaiting the first side", func(t *testing.T) {
		c, err := NewDefaultGame(game.Checkers, nil)
		require.NoError(t, err)
		require.Equal(t, AwaitingMove, c.Phase())
		require.Equal(t, game.SideA, c.ToMove())
		require.Equal(t, game.InProgress, c.Outcome().Status)
		require.Equal(t, 12, c.Board().Count(game.SideA))
		require.Equal(t, 12, c.Board().Count(game.SideB))
		require.Zero(t, c.Turns())
	})

	t.Run("rejects non-positive dimensions", func(t *testing.T) {
		_, err := NewGame(game.ConnectFour, 0, 7, nil)
		require.ErrorIs(t, err, game.ErrInvalidDimensions)

		_, err = NewGame(game.Checkers, 8, -1, nil)
		require.ErrorIs(t, err, game.ErrInvalidDimensions)
	})

	t.Run("each game gets its own id", func(t *testing.T) {
		c1, err := NewDefaultGame(game.ConnectFour, nil)
		require.NoError(t, err)
		c2, err := NewDefaultGame(game.ConnectFour, nil)
		require.NoError(t, err)
		require.NotEqual(t, c1.ID(), c2.ID())
	})
}

func TestConnectFourColumnWin(t *testing.T) {
	c, err := NewGame(game.ConnectFour, 6, 8, nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = c.SubmitDrop(3)
		require.NoError(t, err)
		_, err = c.SubmitDrop(0)
		require.NoError(t, err)
	}
	outcome, err := c.SubmitDrop(3)
	require.NoError(t, err)

	require.Equal(t, game.Win, outcome.Status)
	require.Equal(t, game.SideA, outcome.Winner)
	require.ElementsMatch(t, []game.Pos{{Row: 2, Col: 3}, {Row: 3, Col: 3}, {Row: 4, Col: 3}, {Row: 5, Col: 3}}, outcome.Line)
	require.Equal(t, outcome, c.Outcome())
	require.Equal(t, GameOver, c.Phase())
	require.Equal(t, 7, c.Turns())

	t.Run("no moves accepted once over", func(t *testing.T) {
		before := c.Board()
		_, err := c.SubmitDrop(5)
		require.ErrorIs(t, err, ErrGameOver)
		require.True(t, before.Equal(c.Board()))
		require.Empty(t, c.LegalMoves())
	})
}

func TestIllegalMoveLeavesStateUnchanged(t *testing.T) {
	t.Run("connect-four column outside the board", func(t *testing.T) {
		c, err := NewDefaultGame(game.ConnectFour, nil)
		require.NoError(t, err)
		before := c.Board()

		_, err = c.SubmitDrop(8)
		require.ErrorIs(t, err, ErrIllegalMove)
		require.True(t, before.Equal(c.Board()))
		require.Equal(t, game.SideA, c.ToMove())
		require.Equal(t, AwaitingMove, c.Phase())
	})

	t.Run("connect-four full column", func(t *testing.T) {
		c, err := NewDefaultGame(game.ConnectFour, nil)
		require.NoError(t, err)
		// alternating discs in one column never line up vertically
		for i := 0; i < 6; i++ {
			_, err = c.SubmitDrop(1)
			require.NoError(t, err)
		}
		before := c.Board()
		toMove := c.ToMove()

		_, err = c.SubmitDrop(1)
		require.ErrorIs(t, err, ErrIllegalMove)
		require.True(t, before.Equal(c.Board()))
		require.Equal(t, toMove, c.ToMove())
	})

	t.Run("checkers move onto an occupied square", func(t *testing.T) {
		c, err := NewDefaultGame(game.Checkers, nil)
		require.NoError(t, err)
		before := c.Board()

		_, err = c.SubmitMove(game.Pos{Row: 6, Col: 1}, game.Pos{Row: 5, Col: 0})
		require.ErrorIs(t, err, ErrIllegalMove)
		require.True(t, before.Equal(c.Board()))
		require.Zero(t, c.Turns())
	})
}

func TestCheckersForcedCapture(t *testing.T) {
	state := checkersPosition(t, game.SideA, map[game.Pos]game.Cell{
		{Row: 5, Col: 2}: {Side: game.SideA},
		{Row: 5, Col: 6}: {Side: game.SideA},
		{Row: 4, Col: 3}: {Side: game.SideB},
		{Row: 0, Col: 1}: {Side: game.SideB},
	})
	c := NewGameFrom(state, nil)

	moves := c.LegalMoves()
	require.Len(t, moves, 1)
	require.Equal(t, game.Pos{Row: 5, Col: 2}, moves[0].From)
	require.Equal(t, game.Pos{Row: 3, Col: 4}, moves[0].To)
	require.Equal(t, []game.Pos{{Row: 4, Col: 3}}, moves[0].Captured)

	_, err := c.SubmitMove(game.Pos{Row: 5, Col: 6}, game.Pos{Row: 4, Col: 5})
	require.ErrorIs(t, err, ErrIllegalMove)

	_, err = c.SubmitMove(game.Pos{Row: 5, Col: 2}, game.Pos{Row: 3, Col: 4})
	require.NoError(t, err)

	b := c.Board()
	require.True(t, b.At(game.Pos{Row: 4, Col: 3}).Empty())
	require.True(t, b.At(game.Pos{Row: 5, Col: 2}).Empty())
	require.Equal(t, game.SideA, b.At(game.Pos{Row: 3, Col: 4}).Side)
	require.Equal(t, game.SideB, c.ToMove())
	require.Equal(t, 1, c.Turns())
}

func TestCheckersCaptureChain(t *testing.T) {
	state := checkersPosition(t, game.SideA, map[game.Pos]game.Cell{
		{Row: 5, Col: 0}: {Side: game.SideA},
		{Row: 7, Col: 6}: {Side: game.SideA},
		{Row: 4, Col: 1}: {Side: game.SideB},
		{Row: 2, Col: 3}: {Side: game.SideB},
		{Row: 0, Col: 7}: {Side: game.SideB},
	})
	c := NewGameFrom(state, nil)

	_, err := c.SubmitMove(game.Pos{Row: 5, Col: 0}, game.Pos{Row: 3, Col: 2})
	require.NoError(t, err)

	t.Run("same side continues with the capturing piece", func(t *testing.T) {
		require.Equal(t, game.SideA, c.ToMove())
		require.Equal(t, AwaitingMove, c.Phase())
		require.Zero(t, c.Turns())

		moves := c.LegalMoves()
		require.Len(t, moves, 1)
		require.Equal(t, game.Pos{Row: 3, Col: 2}, moves[0].From)
		require.Equal(t, game.Pos{Row: 1, Col: 4}, moves[0].To)
	})

	t.Run("other pieces may not move mid-chain", func(t *testing.T) {
		_, err := c.SubmitMove(game.Pos{Row: 7, Col: 6}, game.Pos{Row: 6, Col: 5})
		require.ErrorIs(t, err, ErrIllegalMove)
		require.Equal(t, game.SideA, c.ToMove())
	})

	t.Run("turn passes once the chain ends", func(t *testing.T) {
		_, err := c.SubmitMove(game.Pos{Row: 3, Col: 2}, game.Pos{Row: 1, Col: 4})
		require.NoError(t, err)
		require.Equal(t, game.SideB, c.ToMove())
		require.Equal(t, 1, c.Turns())
		require.Equal(t, 1, c.Board().Count(game.SideB))

		last, ok := c.LastMove()
		require.True(t, ok)
		require.Equal(t, []game.Pos{{Row: 2, Col: 3}}, last.Move.Captured)
	})
}

func TestBlockedSideLoses(t *testing.T) {
	state := checkersPosition(t, game.SideA, map[game.Pos]game.Cell{
		{Row: 1, Col: 0}: {Side: game.SideA},
		{Row: 0, Col: 1}: {Side: game.SideB},
	})
	c := NewGameFrom(state, nil)

	require.Equal(t, GameOver, c.Phase())
	require.Equal(t, game.Outcome{Status: game.Win, Winner: game.SideB}, c.Outcome())
}

func TestComputerTurns(t *testing.T) {
	t.Run("search agent answers a human move", func(t *testing.T) {
		c, err := NewDefaultGame(game.ConnectFour, Players{
			game.SideB: agent.NewSearchAgent(searcher.New(searcher.WithDepth(2))),
		})
		require.NoError(t, err)

		_, err = c.RequestComputerMove()
		require.ErrorIs(t, err, ErrNotComputerTurn)

		_, err = c.SubmitDrop(4)
		require.NoError(t, err)

		_, err = c.SubmitDrop(4)
		require.ErrorIs(t, err, ErrNotHumanTurn)

		move, err := c.RequestComputerMove()
		require.NoError(t, err)
		require.Equal(t, game.SideB, move.Side)
		require.True(t, move.IsDrop())
		require.Equal(t, game.SideA, c.ToMove())
		require.Equal(t, 2, c.Turns())
		require.Equal(t, 2, c.Board().Count(game.SideA)+c.Board().Count(game.SideB))
	})

	t.Run("no move from the agent ends the game for the opponent", func(t *testing.T) {
		stub := &stubAgent{}
		c, err := NewDefaultGame(game.Checkers, Players{game.SideA: stub})
		require.NoError(t, err)

		_, err = c.RequestComputerMove()
		require.NoError(t, err)
		require.Equal(t, 1, stub.calls)
		require.Equal(t, GameOver, c.Phase())
		require.Equal(t, game.Outcome{Status: game.Win, Winner: game.SideB}, c.Outcome())

		_, err = c.RequestComputerMove()
		require.ErrorIs(t, err, ErrGameOver)
		require.Equal(t, 1, stub.calls)
	})
}

func TestRun(t *testing.T) {
	t.Run("plays random agents to the end", func(t *testing.T) {
		c, err := NewDefaultGame(game.ConnectFour, Players{
			game.SideA: agent.NewRandomAgent(1),
			game.SideB: agent.NewRandomAgent(2),
		})
		require.NoError(t, err)

		outcome, gameMetric, moveMetrics := c.Run()
		require.True(t, outcome.Over())
		require.Equal(t, GameOver, c.Phase())
		require.Equal(t, "A", gameMetric.StartingPlayer)
		require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
		require.NotEmpty(t, moveMetrics)
		require.Equal(t, "A", moveMetrics[0].Player)
		require.Equal(t, 1, moveMetrics[0].Step)
		if outcome.Status == game.Win {
			require.Equal(t, outcome.Winner.String(), gameMetric.Winner)
		}
	})

	t.Run("stops when a human has to move", func(t *testing.T) {
		c, err := NewDefaultGame(game.ConnectFour, Players{game.SideB: agent.NewRandomAgent(3)})
		require.NoError(t, err)

		outcome, gameMetric, moveMetrics := c.Run()
		require.False(t, outcome.Over())
		require.Empty(t, moveMetrics)
		require.Zero(t, gameMetric.TotalMoves)
		require.Equal(t, AwaitingMove, c.Phase())
	})
}

func TestReset(t *testing.T) {
	c, err := NewDefaultGame(game.ConnectFour, nil)
	require.NoError(t, err)
	id := c.ID()

	_, err = c.SubmitDrop(2)
	require.NoError(t, err)
	require.NoError(t, c.Reset())

	require.NotEqual(t, id, c.ID())
	require.Zero(t, c.Turns())
	require.Zero(t, c.Board().Count(game.SideA))
	require.Equal(t, game.SideA, c.ToMove())
	require.Equal(t, AwaitingMove, c.Phase())
	_, ok := c.LastMove()
	require.False(t, ok)
}

func TestSearchInProgress(t *testing.T) {
	t.Run("submissions are refused while resolving", func(t *testing.T) {
		a := newBlockingAgent()
		c, err := NewDefaultGame(game.ConnectFour, Players{game.SideA: a})
		require.NoError(t, err)

		done := startSearch(c, a)
		require.Equal(t, Resolving, c.Phase())
		require.Equal(t, game.SideA, c.ToMove())
		require.Len(t, c.LegalMoves(), 7)

		_, err = c.SubmitDrop(0)
		require.ErrorIs(t, err, ErrResolving)
		_, err = c.RequestComputerMove()
		require.ErrorIs(t, err, ErrResolving)

		close(a.release)
		result := <-done
		require.NoError(t, result.err)
		require.Equal(t, 3, result.move.To.Col)
		require.Equal(t, AwaitingMove, c.Phase())
		require.Equal(t, game.SideB, c.ToMove())
		require.Equal(t, 1, c.Turns())
	})

	t.Run("reset discards the running search", func(t *testing.T) {
		a := newBlockingAgent()
		c, err := NewDefaultGame(game.ConnectFour, Players{game.SideA: a})
		require.NoError(t, err)
		id := c.ID()

		done := startSearch(c, a)
		require.NoError(t, c.Reset())
		require.Equal(t, AwaitingMove, c.Phase())

		close(a.release)
		result := <-done
		require.ErrorIs(t, result.err, ErrReset)

		require.NotEqual(t, id, c.ID())
		require.Equal(t, AwaitingMove, c.Phase())
		require.Equal(t, game.SideA, c.ToMove())
		require.Zero(t, c.Turns())
		require.Zero(t, c.Board().Count(game.SideA))
		require.Zero(t, c.Board().Count(game.SideB))
		_, ok := c.LastMove()
		require.False(t, ok)
	})
}
