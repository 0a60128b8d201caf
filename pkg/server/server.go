// Package server exposes Dragonsweeper games over a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/decker502/dragonsweeper/pkg/engine"
	"github.com/decker502/dragonsweeper/pkg/history"
	"github.com/decker502/dragonsweeper/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var log = logger.For("Server")

// DefaultMaxGames bounds the number of live games a server keeps.
const DefaultMaxGames = 1024

// History is the results store used by the server. *history.Store satisfies it.
type History interface {
	Record(ctx context.Context, rec history.Record) (history.Record, error)
	Recent(ctx context.Context, limit int) ([]history.Record, error)
	Summary(ctx context.Context) (history.Summary, error)
}

type game struct {
	session *engine.Session
	seed    uint64
	// seedShared is set when the client chose the seed; server-picked seeds
	// would reveal the mine layout and stay private until the game ends.
	seedShared bool
	// finished orders terminal games for eviction; 0 while in progress.
	finished uint64
}

// Server owns the live games. A single mutex serialises every operation, so
// each session is only ever touched by one goroutine at a time.
type Server struct {
	mu        sync.Mutex
	games     map[string]*game
	finishSeq uint64
	maxGames  int
	defaults  engine.Config
	history   History // may be nil
}

// Options configures a Server.
type Options struct {
	// Defaults is used for fields a new-game request leaves out.
	Defaults engine.Config
	// History receives finished games; nil disables /history.
	History History
	// MaxGames caps stored games; 0 means DefaultMaxGames. When full, the
	// game that finished first is dropped to make room.
	MaxGames int
}

// New creates a server.
func New(opts Options) *Server {
	if opts.Defaults == (engine.Config{}) {
		opts.Defaults = engine.DefaultConfig()
	}
	if opts.MaxGames <= 0 {
		opts.MaxGames = DefaultMaxGames
	}
	return &Server{
		games:    make(map[string]*game),
		maxGames: opts.MaxGames,
		defaults: opts.Defaults,
		history:  opts.History,
	}
}

// Router returns the HTTP handler for the API.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	r.Route("/games", func(rr chi.Router) {
		rr.Post("/", s.CreateGame)
		rr.Route("/{id}", func(g chi.Router) {
			g.Get("/", s.GetGame)
			g.Delete("/", s.DeleteGame)
			g.Post("/dig", s.Dig)
			g.Post("/flag", s.Flag)
			g.Get("/results", s.Results)
		})
	})
	r.Get("/history", s.History)

	return r
}

// NewGameRequest is the body of POST /games. Zero fields take the server defaults.
type NewGameRequest struct {
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	MinesPercentage float64 `json:"minesPercentage"`
	Seed            uint64  `json:"seed"`
}

// MoveRequest is the body of dig and flag requests.
type MoveRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// DigResponse reports a dig.
type DigResponse struct {
	Event    engine.Event `json:"event"`
	Placed   bool         `json:"placed"`
	Revealed int          `json:"revealed"`
	Game     GameView     `json:"game"`
}

// FlagResponse reports a flag toggle.
type FlagResponse struct {
	Event engine.Event `json:"event"`
	Game  GameView     `json:"game"`
}

// HistoryResponse is the body of GET /history.
type HistoryResponse struct {
	Summary history.Summary  `json:"summary"`
	Games   []history.Record `json:"games"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// CreateGame handles POST /games.
func (s *Server) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if err := decode(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	cfg := s.defaults
	if req.Width != 0 {
		cfg.Width = req.Width
	}
	if req.Height != 0 {
		cfg.Height = req.Height
	}
	if req.MinesPercentage != 0 {
		cfg.MinesPercentage = req.MinesPercentage
	}
	seed, shared := req.Seed, req.Seed != 0
	if !shared {
		seed = engine.RandomSeed()
	}

	session, err := engine.NewGame(cfg, engine.NewRand(seed))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	if len(s.games) >= s.maxGames && !s.evictFinished() {
		s.mu.Unlock()
		writeError(w, http.StatusServiceUnavailable, errors.New("too many live games"))
		return
	}
	id := uuid.New().String()
	g := &game{session: session, seed: seed, seedShared: shared}
	s.games[id] = g
	view := newGameView(id, g)
	s.mu.Unlock()

	log.WithFields(logrus.Fields{"id": id, "seed": seed}).Debug("game created")
	writeJSON(w, http.StatusCreated, view)
}

// GetGame handles GET /games/{id}.
func (s *Server) GetGame(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newGameView(id, g))
}

// DeleteGame handles DELETE /games/{id}.
func (s *Server) DeleteGame(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, _, ok := s.lookup(w, r)
	if !ok {
		return
	}
	delete(s.games, id)
	w.WriteHeader(http.StatusNoContent)
}

// Dig handles POST /games/{id}/dig.
func (s *Server) Dig(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := decode(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	res := g.session.Dig(req.Row, req.Col)
	if res.Event == engine.EventDetonated || res.Event == engine.EventVictorious {
		s.finishSeq++
		g.finished = s.finishSeq
		s.record(r.Context(), id, g)
	}
	writeJSON(w, http.StatusOK, DigResponse{
		Event:    res.Event,
		Placed:   res.Placed,
		Revealed: res.Revealed,
		Game:     newGameView(id, g),
	})
}

// Flag handles POST /games/{id}/flag.
func (s *Server) Flag(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := decode(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	ev := g.session.ToggleFlag(req.Row, req.Col)
	writeJSON(w, http.StatusOK, FlagResponse{Event: ev, Game: newGameView(id, g)})
}

// Results handles GET /games/{id}/results. It answers 409 while the game is
// still in progress.
func (s *Server) Results(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	res := g.session.Results()
	if res == nil {
		writeError(w, http.StatusConflict, errors.New("game in progress"))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// History handles GET /history?limit=n.
func (s *Server) History(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusNotFound, errors.New("history disabled"))
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", v))
			return
		}
		limit = n
	}

	summary, err := s.history.Summary(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	games, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Summary: summary, Games: games})
}

// lookup must be called with s.mu held.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (string, *game, bool) {
	id := chi.URLParam(r, "id")
	g, ok := s.games[id]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("game %s not found", id))
		return "", nil, false
	}
	return id, g, true
}

// evictFinished drops the game that finished first. It reports false when
// every stored game is still in progress. Must be called with s.mu held.
func (s *Server) evictFinished() bool {
	oldestID := ""
	var oldest uint64
	for id, g := range s.games {
		if g.finished != 0 && (oldestID == "" || g.finished < oldest) {
			oldestID, oldest = id, g.finished
		}
	}
	if oldestID == "" {
		return false
	}
	delete(s.games, oldestID)
	log.WithField("id", oldestID).Debug("finished game evicted")
	return true
}

func (s *Server) record(ctx context.Context, id string, g *game) {
	if s.history == nil {
		return
	}
	rec, ok := history.NewRecord(g.session, g.seed)
	if !ok {
		return
	}
	rec.ID = id
	if _, err := s.history.Record(ctx, rec); err != nil {
		log.WithError(err).WithField("id", id).Warn("failed to record game")
	}
}

// decode reads a JSON body. An empty body leaves v untouched.
func decode(body io.Reader, v any) error {
	err := json.NewDecoder(body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("invalid request body: %w", err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
