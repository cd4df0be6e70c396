package game

import "fmt"

// Rules is the rule engine of one variant. Implementations are stateless and
// never retain a board across calls.
type Rules interface {
	Variant() Variant
	// Dimensions returns the default board size of the variant.
	Dimensions() (rows, cols int)
	Layout() Layout
	FirstSide() Side
	// LegalMoves enumerates every legal move for side in a fixed order.
	LegalMoves(b *Board, side Side) []Move
	// Continuations returns the moves the chain's piece is obliged to play
	// before the turn passes. Empty when the turn is over.
	Continuations(b *Board, chain Chain) []Move
	// Apply returns a new board with the move resolved. b is not modified.
	Apply(b *Board, m Move) *Board
	// Outcome reports the game result with toMove to play next.
	Outcome(b *Board, toMove Side) Outcome
	Evaluate(b *Board, side Side) float64
}

// Chain tracks a multi-capture turn in progress.
type Chain struct {
	Piece   Pos   // current square of the capturing piece
	Vacated []Pos // squares emptied earlier in this chain
}

func (c Chain) extend(m Move) Chain {
	vacated := make([]Pos, 0, len(c.Vacated)+1+len(m.Captured))
	vacated = append(vacated, c.Vacated...)
	vacated = append(vacated, m.From)
	vacated = append(vacated, m.Captured...)
	return Chain{Piece: m.To, Vacated: vacated}
}

func NewRules(v Variant) Rules {
	switch v {
	case ConnectFour:
		return NewConnectFourRules()
	case Checkers:
		return NewCheckersRules()
	default:
		panic(fmt.Sprintf("unsupported variant %v", v))
	}
}
