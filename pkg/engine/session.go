package engine

import "fmt"

// Outcome is the state of a session.
type Outcome int

const (
	InProgress Outcome = iota
	Victory
	Defeat
)

var outcomeNames = [...]string{
	InProgress: "in_progress",
	Victory:    "victory",
	Defeat:     "defeat",
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText decodes an outcome name written by MarshalText.
func (o *Outcome) UnmarshalText(text []byte) error {
	for i, name := range outcomeNames {
		if name == string(text) {
			*o = Outcome(i)
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", text)
}

// Terminal reports whether no further moves are accepted.
func (o Outcome) Terminal() bool {
	return o != InProgress
}

// Event reports what a dig or flag toggle did.
type Event int

const (
	// EventRejected means the move was ignored and nothing changed.
	EventRejected Event = iota
	// EventCleared means a tile with no adjacent mines was dug and its
	// region flood-filled.
	EventCleared
	// EventWarned means a tile next to at least one mine was dug.
	EventWarned
	// EventDetonated means a mine was dug; the session is lost.
	EventDetonated
	// EventVictorious means the dig uncovered the last safe tile.
	EventVictorious
	// EventMarked means a flag was placed.
	EventMarked
	// EventUnmarked means a flag was removed.
	EventUnmarked
)

var eventNames = [...]string{
	EventRejected:   "rejected",
	EventCleared:    "cleared",
	EventWarned:     "warned",
	EventDetonated:  "detonated",
	EventVictorious: "victorious",
	EventMarked:     "marked",
	EventUnmarked:   "unmarked",
}

func (e Event) String() string {
	if e < 0 || int(e) >= len(eventNames) {
		return fmt.Sprintf("Event(%d)", int(e))
	}
	return eventNames[e]
}

// MarshalText encodes the event by name.
func (e Event) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// DigResult describes one dig.
type DigResult struct {
	Event Event
	// Placed is true when this dig was the first of the session and laid
	// the mines.
	Placed bool
	// Revealed is the number of tiles uncovered, including the dug tile.
	Revealed int
}

// Session is one playthrough. It owns its board exclusively: every mutation
// happens inside Dig or ToggleFlag, and Board returns a snapshot, so callers
// never observe a half-updated grid. A Session is not safe for concurrent use.
type Session struct {
	cfg     Config
	rng     Rand
	board   *Board
	placed  bool
	flagged int
	outcome Outcome
	results *Results
}

// NewGame validates cfg and builds a fresh session. Mines are not placed
// until the first dig.
func NewGame(cfg Config, rng Rand) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Session{
		cfg:   cfg,
		rng:   rng,
		board: BuildBoard(cfg.Width, cfg.Height, rng),
	}, nil
}

// Config returns the configuration the session was built with.
func (s *Session) Config() Config { return s.cfg }

// Board returns a snapshot of the current board.
func (s *Session) Board() *Board { return s.board.Clone() }

// Outcome returns the current session state.
func (s *Session) Outcome() Outcome { return s.outcome }

// FirstMoveTaken reports whether mines have been placed.
func (s *Session) FirstMoveTaken() bool { return s.placed }

// FlaggedCount is the running flag counter shown to the player.
func (s *Session) FlaggedCount() int { return s.flagged }

// TotalMines is the number of mines the board holds once placed.
func (s *Session) TotalMines() int { return s.cfg.TotalMines() }

// Results returns the end-game report, or nil while the game is running.
func (s *Session) Results() *Results {
	if s.results == nil {
		return nil
	}
	res := s.results.clone()
	return &res
}

// Dig uncovers the tile at (row, col).
//
// Digs off the board, on flagged or already revealed tiles, and digs after
// the game ended are rejected without changing anything. The first accepted
// dig places the mines around a protected zone, so it never detonates.
func (s *Session) Dig(row, col int) DigResult {
	if s.outcome.Terminal() || !s.board.InBounds(row, col) {
		return DigResult{Event: EventRejected}
	}
	target := Pos{Row: row, Col: col}
	if t := s.board.at(target); t.Flagged || t.Revealed {
		return DigResult{Event: EventRejected}
	}

	res := DigResult{}
	if !s.placed {
		s.board.placeMines(target, s.cfg.TotalMines(), s.rng)
		s.placed = true
		res.Placed = true
	}

	tile := s.board.at(target)
	if tile.Mine {
		s.finish(Defeat)
		res.Event = EventDetonated
		return res
	}

	count := s.board.AdjacentMineCount(row, col)
	tile.Revealed = true
	tile.Count = count
	res.Revealed = 1
	if count == 0 {
		res.Event = EventCleared
		res.Revealed += s.board.clearEmptySpace(target)
	} else {
		res.Event = EventWarned
	}

	if s.board.AllSafeRevealed() {
		s.finish(Victory)
		res.Event = EventVictorious
	}
	return res
}

// ToggleFlag flips the flag on a hidden tile while the game is running.
// Revealed tiles, off-board coordinates and finished games are rejected.
func (s *Session) ToggleFlag(row, col int) Event {
	if s.outcome.Terminal() || !s.board.InBounds(row, col) {
		return EventRejected
	}
	t := s.board.at(Pos{Row: row, Col: col})
	if t.Revealed {
		return EventRejected
	}

	t.Flagged = !t.Flagged
	if t.Flagged {
		s.flagged++
		return EventMarked
	}
	s.flagged--
	return EventUnmarked
}

func (s *Session) finish(outcome Outcome) {
	s.outcome = outcome
	res := CountResults(s.board, outcome == Victory)
	s.results = &res
}
