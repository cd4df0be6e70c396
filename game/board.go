package game

import (
	"errors"
	"fmt"
	"strings"

	"arcade/utils"
)

var (
	ErrInvalidDimensions = errors.New("invalid board dimensions")
	ErrOutOfBounds       = errors.New("coordinates out of bounds")
)

// Layout populates a freshly allocated board.
type Layout func(b *Board)

// EmptyLayout leaves every cell empty.
func EmptyLayout(*Board) {}

// Board is the grid of a single game. Its dimensions never change after creation.
type Board struct {
	rows  int
	cols  int
	cells []Cell // row-major
}

// NewBoard allocates a rows x cols board and applies layout to it.
func NewBoard(rows, cols int, layout Layout) (*Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	b := &Board{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
	if layout != nil {
		layout(b)
	}
	return b, nil
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

// Get returns the cell at (row, col).
func (b *Board) Get(row, col int) (Cell, error) {
	if !b.InBounds(row, col) {
		return Cell{}, fmt.Errorf("%w: (%d,%d) on %dx%d board", ErrOutOfBounds, row, col, b.rows, b.cols)
	}
	return b.cells[row*b.cols+col], nil
}

// Set overwrites the cell at (row, col). No rule checking is done.
func (b *Board) Set(row, col int, cell Cell) error {
	if !b.InBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d) on %dx%d board", ErrOutOfBounds, row, col, b.rows, b.cols)
	}
	b.cells[row*b.cols+col] = cell
	return nil
}

// At is the unchecked-by-caller variant of Get used by the rule sets.
// An out-of-range position is a programming error and panics.
func (b *Board) At(p Pos) Cell {
	c, err := b.Get(p.Row, p.Col)
	if err != nil {
		panic(err)
	}
	return c
}

func (b *Board) put(p Pos, cell Cell) {
	if err := b.Set(p.Row, p.Col, cell); err != nil {
		panic(err)
	}
}

// Clone returns a deep copy.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		rows:  b.rows,
		cols:  b.cols,
		cells: cells,
	}
}

// Snapshot returns a copy of the grid indexed [row][col] for rendering.
func (b *Board) Snapshot() [][]Cell {
	grid := make([][]Cell, b.rows)
	for r := range grid {
		grid[r] = make([]Cell, b.cols)
		copy(grid[r], b.cells[r*b.cols:(r+1)*b.cols])
	}
	return grid
}

// Count tallies the pieces owned by side.
func (b *Board) Count(side Side) int {
	return utils.Count(b.cells, func(c Cell) bool { return c.Side == side })
}

// Equal reports whether both boards have the same dimensions and contents.
func (b *Board) Equal(other *Board) bool {
	if b.rows != other.rows || b.cols != other.cols {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders the board as text, one row per line. Used for debug logs and the CLI.
// Normal pieces are a/b, promoted pieces A/B, empty squares '.'.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			cell := b.cells[r*b.cols+c]
			switch {
			case cell.Side == SideA && cell.Rank == Promoted:
				sb.WriteByte('A')
			case cell.Side == SideB && cell.Rank == Promoted:
				sb.WriteByte('B')
			case cell.Side == SideA:
				sb.WriteByte('a')
			case cell.Side == SideB:
				sb.WriteByte('b')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
