package game

import "fmt"

// Side identifies one of the two competing players. None marks an empty cell.
type Side int8

const (
	None Side = iota
	SideA
	SideB
)

func (s Side) Opponent() Side {
	switch s {
	case SideA:
		return SideB
	case SideB:
		return SideA
	default:
		return None
	}
}

func (s Side) String() string {
	switch s {
	case SideA:
		return "A"
	case SideB:
		return "B"
	default:
		return "-"
	}
}

// ParseSide accepts "a"/"A" and "b"/"B".
func ParseSide(s string) (Side, error) {
	switch s {
	case "a", "A":
		return SideA, nil
	case "b", "B":
		return SideB, nil
	}
	return None, fmt.Errorf("unknown side %q", s)
}

// Rank is always present on an occupied cell. Connect-Four discs stay Normal.
type Rank int8

const (
	Normal Rank = iota
	Promoted
)

// Cell is the content of one board square. The zero value is empty.
type Cell struct {
	Side Side
	Rank Rank
}

func (c Cell) Empty() bool {
	return c.Side == None
}

// Variant selects the rule set.
type Variant int

const (
	ConnectFour Variant = iota
	Checkers
)

func (v Variant) String() string {
	switch v {
	case ConnectFour:
		return "connect-four"
	case Checkers:
		return "checkers"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

func ParseVariant(s string) (Variant, error) {
	switch s {
	case "connect-four", "connectfour", "c4":
		return ConnectFour, nil
	case "checkers", "draughts":
		return Checkers, nil
	}
	return 0, fmt.Errorf("unknown variant %q", s)
}

// Evaluate scores a board from side's perspective. Larger is better for side.
// Heuristic only: terminal positions are scored by the searcher.
type Evaluate func(b *Board, side Side) float64
