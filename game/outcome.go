package game

import "fmt"

type Status int

const (
	InProgress Status = iota
	Win
	Draw
)

// Outcome is derived from a board and is never stored.
type Outcome struct {
	Status Status
	Winner Side
	Line   []Pos // winning run for Connect-Four, nil otherwise
}

func (o Outcome) Over() bool {
	return o.Status != InProgress
}

func (o Outcome) String() string {
	switch o.Status {
	case Win:
		return fmt.Sprintf("win(%s)", o.Winner)
	case Draw:
		return "draw"
	default:
		return "in progress"
	}
}

func winFor(side Side) Outcome {
	return Outcome{Status: Win, Winner: side}
}
