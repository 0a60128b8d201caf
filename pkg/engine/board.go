package engine

// Cosmetic variant counts. Variants only select artwork; they never affect play.
const (
	FloorVariants  = 3
	EggVariants    = 3
	DragonVariants = 4

	// MaxAdjacency is the largest adjacency count a tile can show.
	MaxAdjacency = 8
)

// Pos addresses a tile by row and column, both 0-indexed.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Tile is one cell of the board.
type Tile struct {
	Mine    bool // holds a dragon egg; fixed once placed
	Flagged bool // marked by the player

	// Revealed is set once the tile has been dug; Count is only meaningful
	// after that.
	Revealed bool
	Count    int

	FloorVariant  int
	EggVariant    int
	DragonVariant int
}

// RevealedCount returns the adjacency count and whether the tile is dug.
func (t Tile) RevealedCount() (int, bool) {
	return t.Count, t.Revealed
}

// Board is a height x width grid of tiles stored row-major.
type Board struct {
	width  int
	height int
	tiles  []Tile
}

// BuildBoard allocates a board with no mines, no flags, nothing revealed and
// random cosmetic variants drawn from rng.
func BuildBoard(width, height int, rng Rand) *Board {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	b := &Board{
		width:  width,
		height: height,
		tiles:  make([]Tile, width*height),
	}
	for i := range b.tiles {
		b.tiles[i] = Tile{
			FloorVariant:  rng.IntN(FloorVariants),
			EggVariant:    rng.IntN(EggVariants),
			DragonVariant: rng.IntN(DragonVariants),
		}
	}
	return b
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// InBounds reports whether (row, col) lies on the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.height && col >= 0 && col < b.width
}

// Tile returns a copy of the tile at (row, col). ok is false out of bounds.
func (b *Board) Tile(row, col int) (t Tile, ok bool) {
	if !b.InBounds(row, col) {
		return Tile{}, false
	}
	return b.tiles[b.index(row, col)], true
}

// Rows returns a copy of the grid as rows, for rendering.
func (b *Board) Rows() [][]Tile {
	rows := make([][]Tile, b.height)
	for r := range rows {
		rows[r] = make([]Tile, b.width)
		copy(rows[r], b.tiles[r*b.width:(r+1)*b.width])
	}
	return rows
}

// Clone returns a deep copy.
func (b *Board) Clone() *Board {
	tiles := make([]Tile, len(b.tiles))
	copy(tiles, b.tiles)
	return &Board{width: b.width, height: b.height, tiles: tiles}
}

// MineCount counts tiles holding a mine.
func (b *Board) MineCount() int {
	n := 0
	for _, t := range b.tiles {
		if t.Mine {
			n++
		}
	}
	return n
}

// FlaggedCount counts flagged tiles.
func (b *Board) FlaggedCount() int {
	n := 0
	for _, t := range b.tiles {
		if t.Flagged {
			n++
		}
	}
	return n
}

// ValidNeighbors returns the king-move neighbours of (row, col) that are on
// the board and not yet revealed. Order is unspecified.
func (b *Board) ValidNeighbors(row, col int) []Pos {
	neighbors := b.neighbors(row, col)
	valid := neighbors[:0]
	for _, p := range neighbors {
		if !b.tiles[b.index(p.Row, p.Col)].Revealed {
			valid = append(valid, p)
		}
	}
	return valid
}

// AdjacentMineCount counts mines among ValidNeighbors(row, col).
func (b *Board) AdjacentMineCount(row, col int) int {
	count := 0
	for _, p := range b.ValidNeighbors(row, col) {
		if b.tiles[b.index(p.Row, p.Col)].Mine {
			count++
		}
	}
	return count
}

// AllSafeRevealed reports the victory condition: every tile is either
// revealed or a mine.
func (b *Board) AllSafeRevealed() bool {
	for _, t := range b.tiles {
		if !t.Revealed && !t.Mine {
			return false
		}
	}
	return true
}

// neighbors returns the in-bounds king-move neighbours, ignoring reveal state.
func (b *Board) neighbors(row, col int) []Pos {
	out := make([]Pos, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if b.InBounds(r, c) {
				out = append(out, Pos{Row: r, Col: c})
			}
		}
	}
	return out
}

func (b *Board) index(row, col int) int {
	return row*b.width + col
}

func (b *Board) at(p Pos) *Tile {
	return &b.tiles[b.index(p.Row, p.Col)]
}
