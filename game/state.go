package game

import (
	"encoding/binary"
	"hash/fnv"
)

type StateHash uint64

// State is a board together with the side to move and any capture chain in
// progress. State is immutable: Play always returns a new copy, so a State can
// be shared between concurrent searches.
type State struct {
	Rules  Rules
	Board  *Board
	ToMove Side
	chain  *Chain
}

// NewState starts a game of the rules' variant on a rows x cols board.
func NewState(rules Rules, rows, cols int) (*State, error) {
	b, err := NewBoard(rows, cols, rules.Layout())
	if err != nil {
		return nil, err
	}
	return &State{
		Rules:  rules,
		Board:  b,
		ToMove: rules.FirstSide(),
	}, nil
}

// NewStateFrom wraps an existing board. Used to set up positions directly.
func NewStateFrom(rules Rules, b *Board, toMove Side) *State {
	return &State{
		Rules:  rules,
		Board:  b,
		ToMove: toMove,
	}
}

func (s *State) Copy() *State {
	next := &State{
		Rules:  s.Rules, // rules are stateless
		Board:  s.Board.Clone(),
		ToMove: s.ToMove,
	}
	if chain, ok := s.Chain(); ok {
		next.chain = &chain
	}
	return next
}

// InChain reports whether the side to move must continue a capture chain.
func (s *State) InChain() bool {
	return s.chain != nil
}

// Chain returns the capture chain in progress, if any.
func (s *State) Chain() (Chain, bool) {
	if s.chain == nil {
		return Chain{}, false
	}
	vacated := make([]Pos, len(s.chain.Vacated))
	copy(vacated, s.chain.Vacated)
	return Chain{Piece: s.chain.Piece, Vacated: vacated}, true
}

// LegalMoves returns the moves available to the side to move, restricted to
// continuation captures while a chain is in progress.
func (s *State) LegalMoves() []Move {
	if s.chain != nil {
		return s.Rules.Continuations(s.Board, *s.chain)
	}
	return s.Rules.LegalMoves(s.Board, s.ToMove)
}

// Play applies m and returns the resulting state. The side to move only
// changes once no continuation capture is left for the moving piece.
func (s *State) Play(m Move) *State {
	next := &State{
		Rules:  s.Rules,
		Board:  s.Rules.Apply(s.Board, m),
		ToMove: s.ToMove,
	}
	if m.IsCapture() {
		var chain Chain
		if s.chain != nil {
			chain = *s.chain
		}
		chain = chain.extend(m)
		if len(s.Rules.Continuations(next.Board, chain)) > 0 {
			next.chain = &chain
			return next
		}
	}
	next.ToMove = s.ToMove.Opponent()
	return next
}

func (s *State) Outcome() Outcome {
	return s.Rules.Outcome(s.Board, s.ToMove)
}

func (s *State) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(s.Rules.Variant()))
	binary.Write(hasher, binary.LittleEndian, int64(s.ToMove))

	for _, c := range s.Board.cells {
		binary.Write(hasher, binary.LittleEndian, [2]int8{int8(c.Side), int8(c.Rank)})
	}

	if s.chain != nil {
		binary.Write(hasher, binary.LittleEndian, [2]int64{int64(s.chain.Piece.Row), int64(s.chain.Piece.Col)})
		for _, p := range s.chain.Vacated {
			binary.Write(hasher, binary.LittleEndian, [2]int64{int64(p.Row), int64(p.Col)})
		}
	}

	return StateHash(hasher.Sum64())
}
