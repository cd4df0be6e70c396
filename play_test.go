package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"arcade/config"
	"arcade/engine"
	"arcade/game"
	"arcade/meta"

	"github.com/stretchr/testify/require"
)

func TestPlay(t *testing.T) {
	t.Run("two humans play connect-four to a win", func(t *testing.T) {
		c, err := engine.NewDefaultGame(game.ConnectFour, nil)
		require.NoError(t, err)

		var out bytes.Buffer
		require.NoError(t, play(c, strings.NewReader("3\n0\n3\n0\n3\n0\n3\n"), &out))
		require.Contains(t, out.String(), "result: win(A) after 7 turns")
	})

	t.Run("bad and illegal input is reported and retried", func(t *testing.T) {
		c, err := engine.NewDefaultGame(game.ConnectFour, nil)
		require.NoError(t, err)

		var out bytes.Buffer
		require.NoError(t, play(c, strings.NewReader("x\n12\n4\nquit\n"), &out))
		require.Contains(t, out.String(), "could not read move")
		require.Contains(t, out.String(), "illegal move")
		require.Equal(t, 1, c.Turns())
	})

	t.Run("checkers against the computer", func(t *testing.T) {
		cfg := config.DefaultConfig
		cfg.Game.Variant = "checkers"
		cfg.Search.Depth = 1
		c, err := newController(&cfg)
		require.NoError(t, err)

		var out bytes.Buffer
		require.NoError(t, play(c, strings.NewReader("5 0 4 1\n"), &out))
		require.Contains(t, out.String(), "computer plays B")
		require.Equal(t, game.SideA, c.ToMove())
		require.Equal(t, 2, c.Turns())
	})

	t.Run("computer against computer", func(t *testing.T) {
		cfg := config.DefaultConfig
		cfg.Game.Human = "none"
		cfg.Search.Depth = 1
		c, err := newController(&cfg)
		require.NoError(t, err)

		var out bytes.Buffer
		require.NoError(t, play(c, strings.NewReader(""), &out))
		require.Equal(t, engine.GameOver, c.Phase())
		require.Contains(t, out.String(), "result: ")
	})

	t.Run("computer against computer on checkers stops at the turn limit", func(t *testing.T) {
		cfg := config.DefaultConfig
		cfg.Game.Variant = "checkers"
		cfg.Game.Human = "none"
		cfg.Search.Depth = 2
		c, err := newController(&cfg)
		require.NoError(t, err)

		var out bytes.Buffer
		require.NoError(t, play(c, strings.NewReader(""), &out))
		require.LessOrEqual(t, c.Turns(), meta.MAX_TURNS)
		if c.Phase() == engine.GameOver {
			require.Contains(t, out.String(), "result: win(")
		} else {
			require.Equal(t, meta.MAX_TURNS, c.Turns())
			require.Contains(t, out.String(), fmt.Sprintf("result: unfinished after %d turns", meta.MAX_TURNS))
		}
	})

	t.Run("both sides typed from stdin", func(t *testing.T) {
		cfg := config.DefaultConfig
		cfg.Game.Human = "both"
		c, err := newController(&cfg)
		require.NoError(t, err)
		require.True(t, c.IsHuman(game.SideA))
		require.True(t, c.IsHuman(game.SideB))

		var out bytes.Buffer
		require.NoError(t, play(c, strings.NewReader("3\nq\n"), &out))
		require.Equal(t, 1, c.Turns())
		require.Equal(t, game.SideB, c.ToMove())
	})
}

func TestRender(t *testing.T) {
	b, err := game.NewBoard(2, 3, game.EmptyLayout)
	require.NoError(t, err)
	require.NoError(t, b.Set(1, 2, game.Cell{Side: game.SideA}))

	var out bytes.Buffer
	render(&out, b)
	require.Equal(t, "  012\n0 ...\n1 ..a\n", out.String())
}
