package engine

// ClearEmptySpace returns a copy of board with the empty region around origin
// revealed. origin itself is revealed if still hidden, every hidden, unflagged
// neighbour gets its adjacency count, and neighbours with a count of zero are
// expanded in turn. Flagged tiles stay hidden and flagged. The call is a no-op
// copy when origin is off the board, flagged, or touches a mine.
func ClearEmptySpace(board *Board, origin Pos) *Board {
	cleared := board.Clone()
	cleared.clearEmptySpace(origin)
	return cleared
}

// clearEmptySpace flood-fills in place and returns how many tiles it revealed.
// An explicit stack replaces recursion; every tile is revealed before it is
// pushed and ValidNeighbors skips revealed tiles, so each tile is pushed at
// most once.
func (b *Board) clearEmptySpace(origin Pos) int {
	if !b.InBounds(origin.Row, origin.Col) || b.AdjacentMineCount(origin.Row, origin.Col) != 0 {
		return 0
	}
	start := b.at(origin)
	if start.Flagged || start.Mine {
		return 0
	}

	revealed := 0
	if !start.Revealed {
		start.Revealed = true
		start.Count = 0
		revealed++
	}
	stack := []Pos{origin}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, n := range b.ValidNeighbors(p.Row, p.Col) {
			t := b.at(n)
			if t.Flagged {
				continue
			}
			count := b.AdjacentMineCount(n.Row, n.Col)
			t.Revealed = true
			t.Count = count
			revealed++
			if count == 0 {
				stack = append(stack, n)
			}
		}
	}
	return revealed
}
