package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"arcade/engine"
	"arcade/game"
	"arcade/meta"
)

// play runs a text-mode game: the human side types a column for Connect-Four
// or "row col row col" for checkers. Computer sides move on their own. A game
// without a human side stops after meta.MAX_TURNS turns.
func play(c *engine.Controller, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	computerOnly := !c.IsHuman(game.SideA) && !c.IsHuman(game.SideB)
	for c.Phase() != engine.GameOver {
		if computerOnly && c.Turns() >= meta.MAX_TURNS {
			break
		}
		if !c.IsHuman(c.ToMove()) {
			move, err := c.RequestComputerMove()
			if err != nil {
				return err
			}
			if move.Side != game.None {
				fmt.Fprintf(out, "computer plays %v\n", move)
			}
			continue
		}

		render(out, c.Board())
		fmt.Fprintf(out, "side %s to move> ", c.ToMove())
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "q", "quit":
			return nil
		case "moves":
			for _, m := range c.LegalMoves() {
				fmt.Fprintln(out, m)
			}
			continue
		}

		if err := submit(c, line); err != nil {
			if errors.Is(err, engine.ErrIllegalMove) || errors.Is(err, errBadInput) {
				fmt.Fprintln(out, err)
				continue
			}
			return err
		}
	}

	render(out, c.Board())
	if outcome := c.Outcome(); outcome.Over() {
		fmt.Fprintf(out, "result: %s after %d turns\n", outcome, c.Turns())
	} else {
		fmt.Fprintf(out, "result: unfinished after %d turns\n", c.Turns())
	}
	return nil
}

var errBadInput = errors.New("could not read move")

func submit(c *engine.Controller, line string) error {
	fields := strings.FieldsFunc(line, func(r rune) bool { return r == ' ' || r == ',' })
	numbers := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return fmt.Errorf("%w: %q", errBadInput, line)
		}
		numbers = append(numbers, n)
	}

	var err error
	switch {
	case c.Variant() == game.ConnectFour && len(numbers) == 1:
		_, err = c.SubmitDrop(numbers[0])
	case c.Variant() == game.Checkers && len(numbers) == 4:
		_, err = c.SubmitMove(game.Pos{Row: numbers[0], Col: numbers[1]}, game.Pos{Row: numbers[2], Col: numbers[3]})
	default:
		return fmt.Errorf("%w: %q", errBadInput, line)
	}
	return err
}

func render(out io.Writer, b *game.Board) {
	var sb strings.Builder
	sb.WriteString("  ")
	for col := 0; col < b.Cols(); col++ {
		sb.WriteString(strconv.Itoa(col % 10))
	}
	sb.WriteByte('\n')
	for row, line := range strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n") {
		fmt.Fprintf(&sb, "%d %s\n", row%10, line)
	}
	fmt.Fprint(out, sb.String())
}
