// internal/httpserver/server.go
//
// HTTP server wiring for the Pattern Pursuit backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Puzzle endpoints (optional auth): POST /puzzle/new, POST /puzzle/validate,
//     GET /puzzle/{id}/solution, GET /share/{code}.
//   - Daily Challenge endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints (require auth): /auth/*, /stats/me, /puzzles/mine.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Optional auth decorates requests with user context when a valid token is
//     present; routes still run for guests.
//   - The SQL handle is optional: handlers persist ownership and outcomes on a
//     best-effort basis and skip persistence entirely when no DB is wired
//     (tests, ephemeral dev runs). The in-memory record store alone is enough
//     to generate, validate, and reveal puzzles.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/Forest904/PCP-Pattern-Pursuit/internal/config"
	"github.com/Forest904/PCP-Pattern-Pursuit/internal/puzzle"
	"github.com/Forest904/PCP-Pattern-Pursuit/internal/share"
	"github.com/Forest904/PCP-Pattern-Pursuit/internal/store"
)

// Server bundles router, in-memory record store, DB handle, and config.
type Server struct {
	r     *chi.Mux
	store store.Store
	db    *sql.DB
	cfg   config.Config
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, db *sql.DB, cfg config.Config) *Server {
	s := &Server{r: chi.NewRouter(), store: st, db: db, cfg: cfg}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsForOrigin(cfg.ClientOrigin)) // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"pattern-pursuit","endpoints":["/health","POST /puzzle/new","POST /puzzle/validate","GET /puzzle/{id}/solution","GET /share/{code}","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Puzzle endpoints — OPTIONAL AUTH (guests can play)
	s.r.With(s.withOptionalAuth()).Post("/puzzle/new", s.handleNewPuzzle)
	s.r.With(s.withOptionalAuth()).Post("/puzzle/validate", s.handleValidate)
	s.r.With(s.withOptionalAuth()).Get("/puzzle/{id}/solution", s.handleSolution)
	s.r.With(s.withOptionalAuth()).Get("/share/{code}", s.handleShare)

	// Daily Challenge — OPTIONAL AUTH (guests can play; results persisted on solve)
	s.mountDaily(s.r.With(s.withOptionalAuth()))

	// Auth + profile/stats (require auth)
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsForOrigin enables credentialed CORS for a single origin.
func corsForOrigin(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ PUZZLE -------------------------------------

// overridesDTO carries the optional generation knobs over the wire. Numeric
// fields arrive as JSON numbers and are rounded to the nearest integer, so
// clients sending 4.6 get 5 tiles rather than an error.
type overridesDTO struct {
	TileCount       *float64 `json:"tileCount"`
	MinLength       *float64 `json:"minLength"`
	MaxLength       *float64 `json:"maxLength"`
	AlphabetSize    *float64 `json:"alphabetSize"`
	Alphabet        []string `json:"alphabet"`
	Theme           *string  `json:"theme"`
	AllowUnsolvable *bool    `json:"allowUnsolvable"`
	ForceUnique     *bool    `json:"forceUnique"`
}

func (o *overridesDTO) toOverrides() *puzzle.Overrides {
	if o == nil {
		return nil
	}
	ov := &puzzle.Overrides{
		Alphabet:        o.Alphabet,
		AllowUnsolvable: o.AllowUnsolvable,
		ForceUnique:     o.ForceUnique,
	}
	ov.TileCount = roundPtr(o.TileCount)
	ov.MinLength = roundPtr(o.MinLength)
	ov.MaxLength = roundPtr(o.MaxLength)
	ov.AlphabetSize = roundPtr(o.AlphabetSize)
	if o.Theme != nil {
		theme := puzzle.Theme(*o.Theme)
		ov.Theme = &theme
	}
	return ov
}

func roundPtr(f *float64) *int {
	if f == nil {
		return nil
	}
	n := int(math.Round(*f))
	return &n
}

// newPuzzleReq is the payload for POST /puzzle/new. Everything is optional:
// an empty body yields an easy puzzle with a minted seed.
type newPuzzleReq struct {
	Preset    string        `json:"preset"`
	Seed      string        `json:"seed"`
	Overrides *overridesDTO `json:"overrides"`
}

// puzzleRes is the wire form of a served puzzle. The solution never rides
// along; clients fetch it explicitly via /puzzle/{id}/solution.
type puzzleRes struct {
	PuzzleID  string          `json:"puzzleId"`
	Seed      string          `json:"seed"`
	Preset    string          `json:"preset"`
	Settings  puzzle.Settings `json:"settings"`
	Tiles     []puzzle.Tile   `json:"tiles"`
	Solvable  bool            `json:"solvable"`
	ShareCode string          `json:"shareCode,omitempty"`
}

// handleNewPuzzle generates an instance, stores it for later validation, and
// persists an ownership row (user or anonymous) for history/stats.
func (s *Server) handleNewPuzzle(w http.ResponseWriter, r *http.Request) {
	var req newPuzzleReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	preset := puzzle.PresetEasy
	if req.Preset != "" {
		p, err := puzzle.ParsePreset(req.Preset)
		if err != nil {
			http.Error(w, `{"error":"unknown_preset"}`, http.StatusBadRequest)
			return
		}
		preset = p
	}

	ov := req.Overrides.toOverrides()
	inst, err := puzzle.Generate(preset, req.Seed, ov)
	if err != nil {
		if errors.Is(err, puzzle.ErrInvalidAlphabet) {
			http.Error(w, `{"error":"bad_alphabet"}`, http.StatusBadRequest)
			return
		}
		if errors.Is(err, puzzle.ErrGenerationExhausted) {
			http.Error(w, `{"error":"generation_exhausted"}`, http.StatusUnprocessableEntity)
			return
		}
		log.Error().Err(err).Msg("generate puzzle")
		http.Error(w, `{"error":"generate_failed"}`, http.StatusInternalServerError)
		return
	}

	rec := &store.Record{ID: genID(), CreatedAt: time.Now().UTC(), Instance: inst}
	if err := s.store.Save(r.Context(), rec); err != nil {
		log.Error().Err(err).Msg("save puzzle")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	code, err := share.Encode(preset, inst.Seed, ov)
	if err != nil {
		log.Warn().Err(err).Str("puzzleId", rec.ID).Msg("encode share code")
	}

	s.persistPlay(w, r, rec, code)
	s.writePuzzle(w, rec, code)
}

// validateReq/Res payloads for POST /puzzle/validate. Callers reference a
// stored play by puzzleId, or validate statelessly against a share code.
type validateReq struct {
	PuzzleID string   `json:"puzzleId"`
	Code     string   `json:"code"`
	Order    []string `json:"order"`
}
type validateRes struct {
	Valid    bool `json:"valid"`
	Solvable bool `json:"solvable"`
}

// handleValidate checks a proposed tile ordering against a stored instance
// and persists the attempt (best effort, non-fatal if it fails). When a share
// code is given instead of a puzzle id, the instance is rebuilt on the spot
// and nothing is persisted.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	order := make([]puzzle.TileID, len(req.Order))
	for i, id := range req.Order {
		order[i] = puzzle.TileID(id)
	}

	if req.PuzzleID == "" && req.Code != "" {
		inst, _, ok := s.instanceFromCode(w, req.Code)
		if !ok {
			return
		}
		_ = json.NewEncoder(w).Encode(validateRes{Valid: inst.Validate(order), Solvable: inst.Solvable})
		return
	}

	rec, err := s.store.Get(r.Context(), req.PuzzleID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	valid := rec.Instance.Validate(order)

	s.recordAttempt(w, r, rec.ID, valid)
	_ = json.NewEncoder(w).Encode(validateRes{Valid: valid, Solvable: rec.Instance.Solvable})
}

// instanceFromCode rebuilds the puzzle a share code describes, writing the
// error response itself when the code or generation fails. The second return
// is the canonical re-encoding of the code.
func (s *Server) instanceFromCode(w http.ResponseWriter, code string) (*puzzle.Instance, string, bool) {
	preset, seed, ov, err := share.Decode(code)
	if err != nil {
		http.Error(w, `{"error":"bad_share_code"}`, http.StatusBadRequest)
		return nil, "", false
	}
	inst, err := puzzle.Generate(preset, seed, ov)
	if err != nil {
		if errors.Is(err, puzzle.ErrGenerationExhausted) {
			http.Error(w, `{"error":"generation_exhausted"}`, http.StatusUnprocessableEntity)
			return nil, "", false
		}
		log.Error().Err(err).Msg("generate from share code")
		http.Error(w, `{"error":"generate_failed"}`, http.StatusInternalServerError)
		return nil, "", false
	}
	canonical, _ := share.Encode(preset, seed, ov)
	return inst, canonical, true
}

// solutionRes is the payload for GET /puzzle/{id}/solution. Solution is null
// for instances built as unsolvable.
type solutionRes struct {
	PuzzleID string   `json:"puzzleId"`
	Solvable bool     `json:"solvable"`
	Solution []string `json:"solution"`
}

// handleSolution reveals the recorded solution for a stored instance.
func (s *Server) handleSolution(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	res := solutionRes{PuzzleID: rec.ID, Solvable: rec.Instance.Solvable}
	for _, id := range rec.Instance.Solution() {
		res.Solution = append(res.Solution, string(id))
	}
	_ = json.NewEncoder(w).Encode(res)
}

// handleShare rebuilds the puzzle a share code describes and serves it under
// a fresh puzzle id, so the recipient plays their own copy.
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	inst, code, ok := s.instanceFromCode(w, chi.URLParam(r, "code"))
	if !ok {
		return
	}

	rec := &store.Record{ID: genID(), CreatedAt: time.Now().UTC(), Instance: inst}
	if err := s.store.Save(r.Context(), rec); err != nil {
		log.Error().Err(err).Msg("save shared puzzle")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	s.persistPlay(w, r, rec, code)
	s.writePuzzle(w, rec, code)
}

// writePuzzle encodes the standard puzzle response.
func (s *Server) writePuzzle(w http.ResponseWriter, rec *store.Record, code string) {
	inst := rec.Instance
	_ = json.NewEncoder(w).Encode(puzzleRes{
		PuzzleID:  rec.ID,
		Seed:      inst.Seed,
		Preset:    string(inst.Preset),
		Settings:  inst.Settings,
		Tiles:     inst.Tiles,
		Solvable:  inst.Solvable,
		ShareCode: code,
	})
}

// ----------------------------- persistence ---------------------------------

// persistPlay inserts the ownership row for a served puzzle. Skipped when no
// DB is wired; failures are logged, never surfaced.
func (s *Server) persistPlay(w http.ResponseWriter, r *http.Request, rec *store.Record, code string) {
	if s.db == nil {
		return
	}
	inst := rec.Instance
	now := rec.CreatedAt.Format(time.RFC3339)

	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		_, err := s.db.Exec(`INSERT INTO plays (id, user_id, preset, seed, share_code, solvable, tile_count, started_at)
		                     VALUES (?,?,?,?,?,?,?,?)`,
			rec.ID, me.ID, string(inst.Preset), inst.Seed, code, inst.Solvable, len(inst.Tiles), now)
		if err != nil {
			log.Warn().Err(err).Str("puzzleId", rec.ID).Msg("insert user play row")
		}
		return
	}

	anon := s.ensureAnonID(w, r)
	_, err := s.db.Exec(`INSERT INTO plays (id, anonymous_id, preset, seed, share_code, solvable, tile_count, started_at)
	                     VALUES (?,?,?,?,?,?,?,?)`,
		rec.ID, anon, string(inst.Preset), inst.Seed, code, inst.Solvable, len(inst.Tiles), now)
	if err != nil {
		log.Warn().Err(err).Str("puzzleId", rec.ID).Msg("insert anon play row")
	}
}

// recordAttempt bumps the attempt counter and, on the first successful
// ordering, marks the play solved and updates user stats. Re-validating an
// already-solved play never double-counts.
func (s *Server) recordAttempt(w http.ResponseWriter, r *http.Request, playID string, solved bool) {
	if s.db == nil {
		return
	}
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	ownerClause := `anonymous_id=?`
	ownerArg := any(s.ensureAnonID(w, r))
	if me != nil {
		ownerClause = `user_id=?`
		ownerArg = any(me.ID)
	}

	tx, err := s.db.Begin()
	if err != nil {
		log.Warn().Err(err).Msg("begin attempt tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE plays SET attempts = attempts + 1 WHERE id=? AND `+ownerClause, playID, ownerArg); err != nil {
		log.Warn().Err(err).Msg("update attempts")
	}

	if solved {
		res, err := tx.Exec(`UPDATE plays SET status='solved', finished_at=? WHERE id=? AND status!='solved' AND `+ownerClause,
			time.Now().UTC().Format(time.RFC3339), playID, ownerArg)
		if err != nil {
			log.Warn().Err(err).Msg("finish play")
		} else if n, _ := res.RowsAffected(); n > 0 && me != nil {
			if err := s.bumpStats(tx, me.ID, true); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			}
		}
	}
	_ = tx.Commit()
}
