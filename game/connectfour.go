package game

import "fmt"

const (
	connectFourRows = 6
	connectFourCols = 8
	connectLength   = 4
)

// Axis directions scanned for runs: horizontal, vertical, and both diagonals.
var axes = []direction{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// ConnectFourRules implements gravity-drop four-in-a-row.
type ConnectFourRules struct{}

func NewConnectFourRules() *ConnectFourRules {
	return &ConnectFourRules{}
}

func (ConnectFourRules) Variant() Variant       { return ConnectFour }
func (ConnectFourRules) Dimensions() (int, int) { return connectFourRows, connectFourCols }
func (ConnectFourRules) FirstSide() Side        { return SideA }
func (ConnectFourRules) Layout() Layout         { return EmptyLayout }

func (ConnectFourRules) Evaluate(b *Board, side Side) float64 {
	return EvaluateConnectFour(b, side)
}

// landingRow returns the lowest empty row of col, or -1 when the column is full.
func landingRow(b *Board, col int) int {
	for row := b.Rows() - 1; row >= 0; row-- {
		if b.At(Pos{row, col}).Empty() {
			return row
		}
	}
	return -1
}

// LegalMoves returns one drop per column with room, left to right.
func (ConnectFourRules) LegalMoves(b *Board, side Side) []Move {
	moves := make([]Move, 0, b.Cols())
	for col := 0; col < b.Cols(); col++ {
		row := landingRow(b, col)
		if row < 0 {
			continue
		}
		moves = append(moves, Move{Side: side, From: NoPos, To: Pos{row, col}})
	}
	return moves
}

// Continuations is always empty: a drop ends the turn.
func (ConnectFourRules) Continuations(*Board, Chain) []Move {
	return nil
}

// Apply drops a disc into m.To.Col. The landing row is recomputed so the
// column never gets a gap below an occupied cell.
func (ConnectFourRules) Apply(b *Board, m Move) *Board {
	if !m.IsDrop() {
		panic(fmt.Sprintf("connect-four only applies drop moves: %v", m))
	}
	row := landingRow(b, m.To.Col)
	if row < 0 {
		panic(fmt.Sprintf("column %d is full", m.To.Col))
	}
	next := b.Clone()
	next.put(Pos{row, m.To.Col}, Cell{Side: m.Side})
	return next
}

func (r ConnectFourRules) Outcome(b *Board, _ Side) Outcome {
	if side, line := findRun(b); side != None {
		return Outcome{Status: Win, Winner: side, Line: line}
	}
	for col := 0; col < b.Cols(); col++ {
		if landingRow(b, col) >= 0 {
			return Outcome{Status: InProgress}
		}
	}
	return Outcome{Status: Draw}
}

// findRun scans cells row-major and returns the first run of at least
// connectLength discs, extended in both directions from the discovered cell.
func findRun(b *Board) (Side, []Pos) {
	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(); col++ {
			start := Pos{row, col}
			side := b.At(start).Side
			if side == None {
				continue
			}
			for _, d := range axes {
				if line := runThrough(b, start, side, d); len(line) >= connectLength {
					return side, line
				}
			}
		}
	}
	return None, nil
}

func runThrough(b *Board, start Pos, side Side, d direction) []Pos {
	// walk backwards to the first cell of the run
	r, c := start.Row, start.Col
	for b.InBounds(r-d.dr, c-d.dc) && b.At(Pos{r - d.dr, c - d.dc}).Side == side {
		r -= d.dr
		c -= d.dc
	}
	var line []Pos
	for b.InBounds(r, c) && b.At(Pos{r, c}).Side == side {
		line = append(line, Pos{r, c})
		r += d.dr
		c += d.dc
	}
	return line
}
