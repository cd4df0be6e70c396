package game

import (
	"fmt"
	"strings"
)

// Pos is a (row, col) coordinate. Row 0 is the top of the board.
type Pos struct {
	Row int
	Col int
}

// NoPos marks an absent origin, e.g. a Connect-Four drop.
var NoPos = Pos{Row: -1, Col: -1}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Move is only valid relative to the board it was generated from.
type Move struct {
	Side     Side
	From     Pos   // NoPos for drops
	To       Pos   // landing cell
	Captured []Pos // cells emptied by this move, in order
	Promotes bool  // mover becomes Promoted on landing
}

func (m Move) IsDrop() bool {
	return m.From == NoPos
}

func (m Move) IsCapture() bool {
	return len(m.Captured) > 0
}

func (m Move) Equal(other Move) bool {
	if m.Side != other.Side || m.From != other.From || m.To != other.To || m.Promotes != other.Promotes {
		return false
	}
	if len(m.Captured) != len(other.Captured) {
		return false
	}
	for i := range m.Captured {
		if m.Captured[i] != other.Captured[i] {
			return false
		}
	}
	return true
}

func (m Move) String() string {
	if m.IsDrop() {
		return fmt.Sprintf("%s drops col %d -> %s", m.Side, m.To.Col, m.To)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s -> %s", m.Side, m.From, m.To)
	for _, c := range m.Captured {
		fmt.Fprintf(&sb, " x%s", c)
	}
	if m.Promotes {
		sb.WriteString(" +")
	}
	return sb.String()
}

// IndexOf returns the position of the first move in moves equal to m, or -1.
func IndexOf(moves []Move, m Move) int {
	for i, candidate := range moves {
		if candidate.Equal(m) {
			return i
		}
	}
	return -1
}
