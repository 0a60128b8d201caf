package engine

import "testing"

// boardFromLayout builds a board from rows of characters:
//
//	.  hidden safe tile
//	*  hidden mine
//	F  flagged safe tile
//	M  flagged mine
func boardFromLayout(t *testing.T, layout ...string) *Board {
	t.Helper()
	if len(layout) == 0 {
		t.Fatal("empty layout")
	}
	b := &Board{width: len(layout[0]), height: len(layout)}
	b.tiles = make([]Tile, b.width*b.height)
	for r, row := range layout {
		if len(row) != b.width {
			t.Fatalf("row %d has length %d, want %d", r, len(row), b.width)
		}
		for c, ch := range row {
			tile := &b.tiles[b.index(r, c)]
			switch ch {
			case '.':
			case '*':
				tile.Mine = true
			case 'F':
				tile.Flagged = true
			case 'M':
				tile.Mine = true
				tile.Flagged = true
			default:
				t.Fatalf("unknown layout character %q", ch)
			}
		}
	}
	return b
}

// sessionFromLayout returns a running session whose mines are already placed.
func sessionFromLayout(t *testing.T, layout ...string) *Session {
	t.Helper()
	b := boardFromLayout(t, layout...)
	return &Session{
		cfg:     Config{Width: b.width, Height: b.height, MinesPercentage: float64(b.MineCount()) / float64(b.width*b.height)},
		rng:     NewRand(1),
		board:   b,
		placed:  true,
		flagged: b.FlaggedCount(),
	}
}

func countRevealed(b *Board) int {
	n := 0
	for _, tile := range b.tiles {
		if tile.Revealed {
			n++
		}
	}
	return n
}
