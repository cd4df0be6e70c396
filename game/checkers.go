package game

import (
	"fmt"

	"arcade/utils"
)

const (
	checkersRows = 8
	checkersCols = 8
	checkersRank = 3 // rows of pieces per side on a full-size board
)

type direction struct {
	dr, dc int
}

// Enumeration order: up-left, up-right, down-left, down-right.
var diagonals = []direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

// CheckersRules implements draughts on an 8x8 board with mandatory capture,
// single-piece capture chains and promotion on the far row.
// SideA starts on the bottom rows and moves up; SideB starts on top.
type CheckersRules struct{}

func NewCheckersRules() *CheckersRules {
	return &CheckersRules{}
}

func (CheckersRules) Variant() Variant { return Checkers }
func (CheckersRules) Dimensions() (int, int) { return checkersRows, checkersCols }
func (CheckersRules) FirstSide() Side { return SideA }
func (r CheckersRules) Layout() Layout { return checkersLayout }
func (r CheckersRules) Evaluate(b *Board, side Side) float64 { return EvaluateCheckers(b, side) }

// checkersLayout fills up to three rows per side on the dark squares, keeping
// at least one empty row between the two blocks on smaller boards.
func checkersLayout(b *Board) {
	perSide := min(checkersRank, (b.Rows()-1)/2)
	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(); col++ {
			if (row+col)%2 != 1 {
				continue
			}
			switch {
			case row < perSide:
				b.put(Pos{row, col}, Cell{Side: SideB})
			case row >= b.Rows()-perSide:
				b.put(Pos{row, col}, Cell{Side: SideA})
			}
		}
	}
}

// promotionRow is the far row from side's starting block.
func promotionRow(b *Board, side Side) int {
	if side == SideA {
		return 0
	}
	return b.Rows() - 1
}

func directionsFor(cell Cell) []direction {
	if cell.Rank == Promoted {
		return diagonals
	}
	if cell.Side == SideA {
		return diagonals[:2]
	}
	return diagonals[2:]
}

// LegalMoves returns only captures when any piece of side can capture.
func (r CheckersRules) LegalMoves(b *Board, side Side) []Move {
	var captures []Move
	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(); col++ {
			from := Pos{row, col}
			cell := b.At(from)
			if cell.Side != side {
				continue
			}
			captures = append(captures, r.captures(b, from, cell, nil)...)
		}
	}
	if len(captures) > 0 {
		return captures
	}

	var steps []Move
	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(); col++ {
			from := Pos{row, col}
			cell := b.At(from)
			if cell.Side != side {
				continue
			}
			for _, d := range directionsFor(cell) {
				to := Pos{row + d.dr, col + d.dc}
				if !b.InBounds(to.Row, to.Col) || !b.At(to).Empty() {
					continue
				}
				steps = append(steps, Move{
					Side:     side,
					From:     from,
					To:       to,
					Promotes: cell.Rank == Normal && to.Row == promotionRow(b, side),
				})
			}
		}
	}
	return steps
}

// captures lists the single jumps available to the piece at from. Landings on
// a square in vacated are skipped.
func (r CheckersRules) captures(b *Board, from Pos, cell Cell, vacated []Pos) []Move {
	var moves []Move
	enemy := cell.Side.Opponent()
	for _, d := range directionsFor(cell) {
		mid := Pos{from.Row + d.dr, from.Col + d.dc}
		to := Pos{from.Row + 2*d.dr, from.Col + 2*d.dc}
		if !b.InBounds(to.Row, to.Col) {
			continue
		}
		if b.At(mid).Side != enemy || !b.At(to).Empty() {
			continue
		}
		if utils.Contains(vacated, to) {
			continue
		}
		moves = append(moves, Move{
			Side:     cell.Side,
			From:     from,
			To:       to,
			Captured: []Pos{mid},
			Promotes: cell.Rank == Normal && to.Row == promotionRow(b, cell.Side),
		})
	}
	return moves
}

// Continuations returns further captures for the piece that just captured.
// A piece promoted during the chain continues with promoted directions.
func (r CheckersRules) Continuations(b *Board, chain Chain) []Move {
	cell := b.At(chain.Piece)
	if cell.Empty() {
		return nil
	}
	return r.captures(b, chain.Piece, cell, chain.Vacated)
}

func (r CheckersRules) Apply(b *Board, m Move) *Board {
	if m.IsDrop() {
		panic(fmt.Sprintf("checkers cannot apply a drop move: %v", m))
	}
	next := b.Clone()
	piece := next.At(m.From)
	if piece.Empty() {
		panic(fmt.Sprintf("no piece to move at %v", m.From))
	}
	next.put(m.From, Cell{})
	for _, c := range m.Captured {
		next.put(c, Cell{})
	}
	if m.Promotes || (piece.Rank == Normal && m.To.Row == promotionRow(next, piece.Side)) {
		piece.Rank = Promoted
	}
	next.put(m.To, piece)
	return next
}

// Outcome: a side without pieces loses, and so does a side to move that has
// pieces but no legal move.
func (r CheckersRules) Outcome(b *Board, toMove Side) Outcome {
	if b.Count(SideA) == 0 {
		return winFor(SideB)
	}
	if b.Count(SideB) == 0 {
		return winFor(SideA)
	}
	if len(r.LegalMoves(b, toMove)) == 0 {
		return winFor(toMove.Opponent())
	}
	return Outcome{Status: InProgress}
}
