// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's puzzle (creates or reuses session)
//   - POST /daily/attempt     → submit a tile ordering for today's puzzle
//   - GET  /daily/leaderboard → fetch top 20 results for today (or a given date)
//
// Each user can play once per day (enforced by DB + in-memory session).
// Sessions are held in memory for active play and persisted to DB on solve.
// The puzzle itself is deterministic from date + salt, so every player races
// the same instance. Daily puzzles are always generated solvable.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/Forest904/PCP-Pattern-Pursuit/internal/daily"
	"github.com/Forest904/PCP-Pattern-Pursuit/internal/puzzle"
	"github.com/Forest904/PCP-Pattern-Pursuit/internal/store"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	sessions map[string]*dailySession // active sessions keyed by userID|date
	mu       sync.Mutex               // guards sessions
}

// dailySession holds transient in-memory state for an in-progress daily play.
type dailySession struct {
	RecordID string
	UserID   string
	Date     string
	Preset   puzzle.Preset
	Start    time.Time
	Attempts int
	Finished bool
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     s.cfg.DailySalt,
		sessions: make(map[string]*dailySession),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/attempt", dd.handleAttempt)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns the current date key plus the preset and seed it implies.
func (d *dailyServer) today() (date string, preset puzzle.Preset, seed string) {
	now := time.Now().UTC()
	return daily.DateKey(now), daily.PresetFor(now), daily.Seed(now, d.salt)
}

// userIDWithAnon returns the authenticated user ID if logged in,
// otherwise ensures an anonymous ID via Server.ensureAnonID.
func (d *dailyServer) userIDWithAnon(w http.ResponseWriter, r *http.Request) string {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new. Puzzle fields are omitted when the
// user already finished today.
type dailyNewRes struct {
	Date     string           `json:"date"`
	Preset   string           `json:"preset"`
	Played   bool             `json:"played"`
	PuzzleID string           `json:"puzzleId,omitempty"`
	Settings *puzzle.Settings `json:"settings,omitempty"`
	Tiles    []puzzle.Tile    `json:"tiles,omitempty"`
}

// handleNew creates or reuses a daily session for the current date.
// - If user already has a DB row for today → return Played=true.
// - Otherwise create/reuse an in-memory session and return the puzzle.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	if d.srv.db == nil {
		http.Error(w, `{"error":"daily_unavailable"}`, http.StatusServiceUnavailable)
		return
	}
	uid := d.userIDWithAnon(w, r)
	date, preset, seed := d.today()

	// Check if already played (persisted in DB).
	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Preset: string(preset), Played: true})
		return
	}

	// Reuse session in memory.
	key := uid + "|" + date
	d.mu.Lock()
	sess, ok := d.sessions[key]
	d.mu.Unlock()
	if ok {
		if rec, err := d.srv.store.Get(r.Context(), sess.RecordID); err == nil {
			d.writeDaily(w, date, preset, rec)
			return
		}
	}

	// The daily race needs a reachable finish line, so the unsolvable branch
	// is pinned off regardless of what the preset would allow.
	solvable := false
	inst, err := puzzle.Generate(preset, seed, &puzzle.Overrides{AllowUnsolvable: &solvable})
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("generate daily puzzle")
		http.Error(w, `{"error":"generate_failed"}`, http.StatusInternalServerError)
		return
	}
	rec := &store.Record{ID: genID(), CreatedAt: time.Now().UTC(), Instance: inst}
	if err := d.srv.store.Save(r.Context(), rec); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	d.mu.Lock()
	d.sessions[key] = &dailySession{
		RecordID: rec.ID,
		UserID:   uid,
		Date:     date,
		Preset:   preset,
		Start:    time.Now(),
	}
	d.mu.Unlock()

	d.writeDaily(w, date, preset, rec)
}

func (d *dailyServer) writeDaily(w http.ResponseWriter, date string, preset puzzle.Preset, rec *store.Record) {
	settings := rec.Instance.Settings
	_ = json.NewEncoder(w).Encode(dailyNewRes{
		Date:     date,
		Preset:   string(preset),
		Played:   false,
		PuzzleID: rec.ID,
		Settings: &settings,
		Tiles:    rec.Instance.Tiles,
	})
}

// -----------------------------------------------------------------------------
// /daily/attempt

// dailyAttemptReq is the request payload for /daily/attempt.
type dailyAttemptReq struct {
	PuzzleID string   `json:"puzzleId"`
	Order    []string `json:"order"`
}

// dailyAttemptRes is the response payload for /daily/attempt.
type dailyAttemptRes struct {
	Valid    bool   `json:"valid"`
	State    string `json:"state"` // in_progress | solved | locked
	Attempts int    `json:"attempts"`
}

// handleAttempt validates a tile ordering for today's daily session.
// - Ensures a live session matching the puzzle ID.
// - Rejects attempts after the session finished.
// - Persists the result to DB on solve.
func (d *dailyServer) handleAttempt(w http.ResponseWriter, r *http.Request) {
	if d.srv.db == nil {
		http.Error(w, `{"error":"daily_unavailable"}`, http.StatusServiceUnavailable)
		return
	}
	uid := d.userIDWithAnon(w, r)

	var p dailyAttemptReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if p.PuzzleID == "" || len(p.Order) == 0 {
		http.Error(w, `{"error":"invalid"}`, http.StatusBadRequest)
		return
	}

	date, _, _ := d.today()

	// Find session. Finished and Attempts are mutated by concurrent attempts,
	// so they are only ever read under the lock.
	key := uid + "|" + date
	d.mu.Lock()
	sess, ok := d.sessions[key]
	if !ok || sess.RecordID != p.PuzzleID {
		d.mu.Unlock()
		http.Error(w, `{"error":"no_session"}`, http.StatusConflict)
		return
	}
	finished, attempts := sess.Finished, sess.Attempts
	d.mu.Unlock()
	if finished {
		_ = json.NewEncoder(w).Encode(dailyAttemptRes{State: "locked", Attempts: attempts})
		return
	}

	rec, err := d.srv.store.Get(r.Context(), sess.RecordID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	order := make([]puzzle.TileID, len(p.Order))
	for i, id := range p.Order {
		order[i] = puzzle.TileID(id)
	}
	valid := rec.Instance.Validate(order)

	// A concurrent solve may have finished the session while the ordering was
	// being validated; recordSessionAttempt re-checks under the lock so only
	// one solve is ever counted and persisted.
	attempts, live := d.recordSessionAttempt(sess, valid)
	if !live {
		_ = json.NewEncoder(w).Encode(dailyAttemptRes{State: "locked", Attempts: attempts})
		return
	}

	// Persist and return.
	if valid {
		elapsed := int(time.Since(sess.Start).Milliseconds())
		_ = d.store.InsertResult(r.Context(), daily.Result{
			UserID: uid, Date: date, Preset: string(sess.Preset),
			Solved: true, Attempts: attempts, ElapsedMs: elapsed,
		})
		_ = json.NewEncoder(w).Encode(dailyAttemptRes{Valid: true, State: "solved", Attempts: attempts})
		return
	}
	_ = json.NewEncoder(w).Encode(dailyAttemptRes{Valid: false, State: "in_progress", Attempts: attempts})
}

// recordSessionAttempt counts one attempt against the session under the lock,
// marking it finished when the ordering validated. The second return is false
// when the session was already finished; nothing is counted then and the
// caller answers "locked".
func (d *dailyServer) recordSessionAttempt(sess *dailySession, valid bool) (int, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if sess.Finished {
		return sess.Attempts, false
	}
	sess.Attempts++
	if valid {
		sess.Finished = true
	}
	return sess.Attempts, true
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if d.srv.db == nil {
		http.Error(w, `{"error":"daily_unavailable"}`, http.StatusServiceUnavailable)
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _, _ = d.today()
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
