package engine

import (
	"errors"
	"fmt"
)

// ErrMinesAlreadyPlaced is returned by PlaceMines on a board that already
// holds mines.
var ErrMinesAlreadyPlaced = errors.New("mines already placed")

// PlaceMines returns a copy of board with ceil(w*h*minesPercentage) mines
// placed uniformly at random outside the protected zone around first. The
// protected zone is first plus its in-bounds neighbours. The input board is
// not modified.
//
// Returns an error when first is off the board, when the board already has
// mines, or when the mine count would not fit outside the protected zone.
func PlaceMines(board *Board, first Pos, minesPercentage float64, rng Rand) (*Board, error) {
	if !board.InBounds(first.Row, first.Col) {
		return nil, fmt.Errorf("first dig (%d,%d) outside %dx%d board",
			first.Row, first.Col, board.width, board.height)
	}
	if board.MineCount() > 0 {
		return nil, ErrMinesAlreadyPlaced
	}

	total := TotalMines(board.width, board.height, minesPercentage)
	zone := len(board.neighbors(first.Row, first.Col)) + 1
	if free := board.width*board.height - zone; total > free {
		return nil, &ConfigError{
			Field:  "minesPercentage",
			Value:  minesPercentage,
			Reason: fmt.Sprintf("%d mines do not fit in %d tiles outside the protected zone", total, free),
		}
	}

	placed := board.Clone()
	placed.placeMines(first, total, rng)
	return placed, nil
}

// placeMines samples random tiles until total mines are placed. Callers
// guarantee total fits outside the protected zone.
func (b *Board) placeMines(first Pos, total int, rng Rand) {
	protected := make(map[Pos]bool, ProtectedZoneSize)
	protected[first] = true
	for _, p := range b.neighbors(first.Row, first.Col) {
		protected[p] = true
	}

	for placed := 0; placed < total; {
		p := Pos{Row: rng.IntN(b.height), Col: rng.IntN(b.width)}
		t := b.at(p)
		if protected[p] || t.Mine {
			continue
		}
		t.Mine = true
		placed++
	}
}
