package server

import (
	"github.com/decker502/dragonsweeper/pkg/engine"
)

// Cell states as seen by clients.
const (
	CellHidden   = "hidden"
	CellFlagged  = "flagged"
	CellRevealed = "revealed"
	CellMine     = "mine"
)

// CellView is one tile as exposed over the API. Mines stay hidden until the
// game is over.
type CellView struct {
	State   string `json:"state"`
	Count   int    `json:"count,omitempty"`
	Variant int    `json:"variant"`
}

// GameView is the client-visible state of a game. Seed is omitted while a
// server-seeded game is in progress, since it determines every mine.
type GameView struct {
	ID              string          `json:"id"`
	Width           int             `json:"width"`
	Height          int             `json:"height"`
	MinesPercentage float64         `json:"minesPercentage"`
	TotalMines      int             `json:"totalMines"`
	Flagged         int             `json:"flagged"`
	Seed            *uint64         `json:"seed,omitempty"`
	Outcome         engine.Outcome  `json:"outcome"`
	Cells           [][]CellView    `json:"cells"`
	Results         *engine.Results `json:"results,omitempty"`
}

func newGameView(id string, g *game) GameView {
	s := g.session
	cfg := s.Config()
	over := s.Outcome().Terminal()
	defeat := s.Outcome() == engine.Defeat

	var seed *uint64
	if over || g.seedShared {
		v := g.seed
		seed = &v
	}

	rows := s.Board().Rows()
	cells := make([][]CellView, len(rows))
	for r, row := range rows {
		cells[r] = make([]CellView, len(row))
		for c, t := range row {
			cells[r][c] = cellView(t, over, defeat)
		}
	}

	return GameView{
		ID:              id,
		Width:           cfg.Width,
		Height:          cfg.Height,
		MinesPercentage: cfg.MinesPercentage,
		TotalMines:      s.TotalMines(),
		Flagged:         s.FlaggedCount(),
		Seed:            seed,
		Outcome:         s.Outcome(),
		Cells:           cells,
		Results:         s.Results(),
	}
}

func cellView(t engine.Tile, over, defeat bool) CellView {
	switch {
	case over && t.Mine && !(t.Flagged && !defeat):
		return CellView{State: CellMine, Variant: t.DragonVariant}
	case t.Flagged:
		return CellView{State: CellFlagged, Variant: t.EggVariant}
	case t.Revealed:
		return CellView{State: CellRevealed, Count: t.Count, Variant: t.FloorVariant}
	default:
		return CellView{State: CellHidden, Variant: t.FloorVariant}
	}
}
