package game

import "math"

// EvaluateConnectFour rewards discs near the center column and penalises the
// opponent's discs by the same weight.
func EvaluateConnectFour(b *Board, side Side) float64 {
	center := b.Cols() / 2
	score := 0.0
	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(); col++ {
			weight := float64(3 - abs(col-center))
			switch b.At(Pos{row, col}).Side {
			case side:
				score += weight
			case side.Opponent():
				score -= weight
			}
		}
	}
	return score
}

// EvaluateCheckers tallies material with small bonuses: normal pieces are worth
// more the further they advanced towards promotion, promoted pieces the closer
// they sit to the center files.
func EvaluateCheckers(b *Board, side Side) float64 {
	mid := float64(b.Cols()-1) / 2
	score := 0.0
	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(); col++ {
			cell := b.At(Pos{row, col})
			if cell.Empty() {
				continue
			}
			var value float64
			if cell.Rank == Promoted {
				value = 5 + (mid-math.Abs(float64(col)-mid))*0.1
			} else {
				value = 3 + float64(advancement(b, cell.Side, row))*0.1
			}
			if cell.Side == side {
				score += value
			} else {
				score -= value
			}
		}
	}
	return score
}

// advancement counts rows travelled from side's back row.
func advancement(b *Board, side Side, row int) int {
	if side == SideA {
		return b.Rows() - 1 - row
	}
	return row
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
