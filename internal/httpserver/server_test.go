package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/Forest904/PCP-Pattern-Pursuit/internal/config"
	"github.com/Forest904/PCP-Pattern-Pursuit/internal/store"
)

// newTestServer spins up the full router against an in-memory record store
// and no database, mirroring an ephemeral dev run.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := New(store.NewMemoryStore(), nil, config.Config{
		Port:         "0",
		JWTSecret:    "test_secret",
		CookieName:   "pursuit_token",
		ClientOrigin: "http://localhost:5173",
		DailySalt:    "test_salt",
	})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

// doJSON sends payload (when non-nil) as a JSON body and returns status plus
// the raw response bytes.
func doJSON(t *testing.T, method, url string, payload any) (int, []byte) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("build %s %s: %v", method, url, err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return resp.StatusCode, data
}

// newPuzzle creates a puzzle through the API and fails the test on anything
// but a 200.
func newPuzzle(t *testing.T, baseURL string, req newPuzzleReq) puzzleRes {
	t.Helper()
	status, data := doJSON(t, http.MethodPost, baseURL+"/puzzle/new", req)
	if status != http.StatusOK {
		t.Fatalf("POST /puzzle/new status = %d, body %s", status, data)
	}
	var res puzzleRes
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("unmarshal puzzle response: %v", err)
	}
	return res
}

func f64(v float64) *float64 { return &v }

// TestHealthEndpointReportsOK ensures the health check answers with a JSON body.
func TestHealthEndpointReportsOK(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("Content-Type = %q, want application/json", ct)
	}
	if !bytes.Contains(data, []byte(`"ok":true`)) {
		t.Fatalf("body = %s, want ok:true", data)
	}
}

// TestRootDescriptorNamesService ensures the index route identifies the API.
func TestRootDescriptorNamesService(t *testing.T) {
	ts := newTestServer(t)

	status, data := doJSON(t, http.MethodGet, ts.URL+"/", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want %d", status, http.StatusOK)
	}
	if !bytes.Contains(data, []byte("pattern-pursuit")) {
		t.Fatalf("body = %s, want service descriptor", data)
	}
}

// TestNewPuzzleDefaultsToEasy ensures an empty body yields an easy, solvable
// puzzle with a minted seed and a share code, and never leaks the solution.
func TestNewPuzzleDefaultsToEasy(t *testing.T) {
	ts := newTestServer(t)

	// Deliberately no body at all; the handler treats it as all-defaults.
	resp, err := http.Post(ts.URL+"/puzzle/new", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /puzzle/new: %v", err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, data)
	}

	var res puzzleRes
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.Preset != "easy" {
		t.Fatalf("preset = %q, want easy", res.Preset)
	}
	if len(res.Tiles) != 3 {
		t.Fatalf("len(tiles) = %d, want 3", len(res.Tiles))
	}
	if !res.Solvable {
		t.Fatalf("solvable = false, want true")
	}
	if res.Seed == "" || res.PuzzleID == "" {
		t.Fatalf("seed %q / puzzleId %q, want both minted", res.Seed, res.PuzzleID)
	}
	if !strings.HasPrefix(res.ShareCode, "v1.easy.") {
		t.Fatalf("shareCode = %q, want v1.easy. prefix", res.ShareCode)
	}
	if bytes.Contains(data, []byte(`"solution"`)) {
		t.Fatalf("puzzle response leaks the solution: %s", data)
	}
}

// TestNewPuzzleIsDeterministicForSeed ensures two requests with the same seed
// and preset serve the same puzzle under distinct ids.
func TestNewPuzzleIsDeterministicForSeed(t *testing.T) {
	ts := newTestServer(t)
	req := newPuzzleReq{Preset: "medium", Seed: "kitchen-table"}

	a := newPuzzle(t, ts.URL, req)
	b := newPuzzle(t, ts.URL, req)

	if !reflect.DeepEqual(a.Tiles, b.Tiles) {
		t.Fatalf("tiles differ between identical requests:\n%+v\n%+v", a.Tiles, b.Tiles)
	}
	if !reflect.DeepEqual(a.Settings, b.Settings) {
		t.Fatalf("settings differ: %+v vs %+v", a.Settings, b.Settings)
	}
	if a.ShareCode != b.ShareCode {
		t.Fatalf("shareCode = %q vs %q, want identical", a.ShareCode, b.ShareCode)
	}
	if a.PuzzleID == b.PuzzleID {
		t.Fatalf("puzzleId reused across plays: %q", a.PuzzleID)
	}
}

// TestNewPuzzleRejectsUnknownPreset ensures a bad preset is a 400.
func TestNewPuzzleRejectsUnknownPreset(t *testing.T) {
	ts := newTestServer(t)

	status, data := doJSON(t, http.MethodPost, ts.URL+"/puzzle/new", newPuzzleReq{Preset: "nightmare"})
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", status, http.StatusBadRequest)
	}
	if !bytes.Contains(data, []byte("unknown_preset")) {
		t.Fatalf("body = %s, want unknown_preset", data)
	}
}

// TestNewPuzzleRoundsFractionalOverrides ensures JSON numbers like 4.6 round
// to the nearest tile count instead of erroring.
func TestNewPuzzleRoundsFractionalOverrides(t *testing.T) {
	ts := newTestServer(t)

	res := newPuzzle(t, ts.URL, newPuzzleReq{
		Preset:    "easy",
		Seed:      "rounding",
		Overrides: &overridesDTO{TileCount: f64(4.6)},
	})
	if res.Settings.TileCount != 5 {
		t.Fatalf("settings.tileCount = %d, want 5", res.Settings.TileCount)
	}
	if len(res.Tiles) != 5 {
		t.Fatalf("len(tiles) = %d, want 5", len(res.Tiles))
	}
}

// TestNewPuzzleReportsExhaustion ensures degenerate settings surface as a 422
// instead of a hung or broken puzzle. Equal min and max lengths force both
// segmentations to collapse into the same partition, which never passes the
// tile filters.
func TestNewPuzzleReportsExhaustion(t *testing.T) {
	ts := newTestServer(t)

	status, data := doJSON(t, http.MethodPost, ts.URL+"/puzzle/new", newPuzzleReq{
		Preset:    "easy",
		Seed:      "stuck",
		Overrides: &overridesDTO{MinLength: f64(2), MaxLength: f64(2)},
	})
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body %s", status, data)
	}
	if !bytes.Contains(data, []byte("generation_exhausted")) {
		t.Fatalf("body = %s, want generation_exhausted", data)
	}
}

// TestNewPuzzleRejectsBadAlphabet ensures a custom alphabet with unusable
// symbols comes back as a clean 400 instead of a 500.
func TestNewPuzzleRejectsBadAlphabet(t *testing.T) {
	ts := newTestServer(t)

	for _, alphabet := range [][]string{
		{""},
		{"ab", "c"},
	} {
		status, data := doJSON(t, http.MethodPost, ts.URL+"/puzzle/new", newPuzzleReq{
			Preset:    "easy",
			Seed:      "bad-alphabet",
			Overrides: &overridesDTO{Alphabet: alphabet},
		})
		if status != http.StatusBadRequest {
			t.Fatalf("alphabet %q: status = %d, body %s", alphabet, status, data)
		}
		if !bytes.Contains(data, []byte("bad_alphabet")) {
			t.Fatalf("alphabet %q: body = %s, want bad_alphabet", alphabet, data)
		}
	}
}

// TestSolutionRoundTripsThroughValidate walks the full loop: create a puzzle,
// fetch its solution, and submit it for validation.
func TestSolutionRoundTripsThroughValidate(t *testing.T) {
	ts := newTestServer(t)
	res := newPuzzle(t, ts.URL, newPuzzleReq{Preset: "easy", Seed: "validate-me"})

	status, data := doJSON(t, http.MethodGet, ts.URL+"/puzzle/"+res.PuzzleID+"/solution", nil)
	if status != http.StatusOK {
		t.Fatalf("GET solution status = %d, body %s", status, data)
	}
	var sol solutionRes
	if err := json.Unmarshal(data, &sol); err != nil {
		t.Fatalf("unmarshal solution: %v", err)
	}
	if !sol.Solvable {
		t.Fatalf("solvable = false, want true")
	}
	if len(sol.Solution) != len(res.Tiles) {
		t.Fatalf("len(solution) = %d, want %d", len(sol.Solution), len(res.Tiles))
	}

	status, data = doJSON(t, http.MethodPost, ts.URL+"/puzzle/validate", validateReq{
		PuzzleID: res.PuzzleID,
		Order:    sol.Solution,
	})
	if status != http.StatusOK {
		t.Fatalf("POST validate status = %d, body %s", status, data)
	}
	var v validateRes
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("unmarshal validate: %v", err)
	}
	if !v.Valid {
		t.Fatalf("valid = false for the recorded solution")
	}
	if !v.Solvable {
		t.Fatalf("solvable = false, want true")
	}

	// A single tile can never line up (self-matching tiles are filtered out
	// at generation time), and unknown ids always fail.
	for _, wrong := range [][]string{
		{sol.Solution[0]},
		{"t99"},
	} {
		status, data = doJSON(t, http.MethodPost, ts.URL+"/puzzle/validate", validateReq{
			PuzzleID: res.PuzzleID,
			Order:    wrong,
		})
		if status != http.StatusOK {
			t.Fatalf("POST validate status = %d, body %s", status, data)
		}
		if err := json.Unmarshal(data, &v); err != nil {
			t.Fatalf("unmarshal validate: %v", err)
		}
		if v.Valid {
			t.Fatalf("order %v validated, want rejection", wrong)
		}
	}
}

// TestValidateRejectsBadJSON ensures a malformed body is a 400.
func TestValidateRejectsBadJSON(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/puzzle/validate", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("POST /puzzle/validate: %v", err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
	if !bytes.Contains(data, []byte("bad_json")) {
		t.Fatalf("body = %s, want bad_json", data)
	}
}

// TestValidateUnknownPuzzleIs404 ensures validating an unknown id is a 404.
func TestValidateUnknownPuzzleIs404(t *testing.T) {
	ts := newTestServer(t)

	status, data := doJSON(t, http.MethodPost, ts.URL+"/puzzle/validate", validateReq{
		PuzzleID: "missing",
		Order:    []string{"t1"},
	})
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, body %s", status, data)
	}
}

// TestValidateAcceptsShareCode checks the stateless path: a share code in the
// request body is rebuilt and validated without a stored play.
func TestValidateAcceptsShareCode(t *testing.T) {
	ts := newTestServer(t)
	res := newPuzzle(t, ts.URL, newPuzzleReq{Preset: "easy", Seed: "code-check"})

	status, data := doJSON(t, http.MethodGet, ts.URL+"/puzzle/"+res.PuzzleID+"/solution", nil)
	if status != http.StatusOK {
		t.Fatalf("GET solution status = %d, body %s", status, data)
	}
	var sol solutionRes
	if err := json.Unmarshal(data, &sol); err != nil {
		t.Fatalf("unmarshal solution: %v", err)
	}

	status, data = doJSON(t, http.MethodPost, ts.URL+"/puzzle/validate", validateReq{
		Code:  res.ShareCode,
		Order: sol.Solution,
	})
	if status != http.StatusOK {
		t.Fatalf("POST validate status = %d, body %s", status, data)
	}
	var v validateRes
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("unmarshal validate: %v", err)
	}
	if !v.Valid {
		t.Fatalf("valid = false, want the rebuilt instance to accept its own solution")
	}

	status, data = doJSON(t, http.MethodPost, ts.URL+"/puzzle/validate", validateReq{
		Code:  "v1.nope.YWJj",
		Order: []string{"t1"},
	})
	if status != http.StatusBadRequest {
		t.Fatalf("bad code status = %d, body %s", status, data)
	}
	if !bytes.Contains(data, []byte("bad_share_code")) {
		t.Fatalf("body = %s, want bad_share_code", data)
	}
}

// TestSolutionUnknownPuzzleIs404 ensures fetching a solution for an unknown id
// is a 404.
func TestSolutionUnknownPuzzleIs404(t *testing.T) {
	ts := newTestServer(t)

	status, _ := doJSON(t, http.MethodGet, ts.URL+"/puzzle/missing/solution", nil)
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", status, http.StatusNotFound)
	}
}

// TestUnsolvablePuzzleHasNullSolution hunts for an intended-unsolvable hard
// instance and checks the solution endpoint returns null for it. Roughly 40%
// of hard generations take the unsolvable branch, so 40 seeds all coming up
// solvable would be a broken generator, not bad luck.
func TestUnsolvablePuzzleHasNullSolution(t *testing.T) {
	ts := newTestServer(t)

	for i := 0; i < 40; i++ {
		res := newPuzzle(t, ts.URL, newPuzzleReq{Preset: "hard", Seed: fmt.Sprintf("maybe-%d", i)})
		if res.Solvable {
			continue
		}

		status, data := doJSON(t, http.MethodGet, ts.URL+"/puzzle/"+res.PuzzleID+"/solution", nil)
		if status != http.StatusOK {
			t.Fatalf("GET solution status = %d, body %s", status, data)
		}
		var sol solutionRes
		if err := json.Unmarshal(data, &sol); err != nil {
			t.Fatalf("unmarshal solution: %v", err)
		}
		if sol.Solvable {
			t.Fatalf("solution endpoint reports solvable for %s", res.PuzzleID)
		}
		if sol.Solution != nil {
			t.Fatalf("solution = %v, want null", sol.Solution)
		}
		return
	}
	t.Fatalf("no unsolvable instance in 40 hard seeds")
}

// TestShareCodeRebuildsSamePuzzle ensures a share code served by /puzzle/new
// expands into an identical puzzle under a fresh id, overrides included.
func TestShareCodeRebuildsSamePuzzle(t *testing.T) {
	ts := newTestServer(t)

	orig := newPuzzle(t, ts.URL, newPuzzleReq{
		Preset:    "easy",
		Seed:      "pass-it-on",
		Overrides: &overridesDTO{TileCount: f64(5)},
	})
	if orig.ShareCode == "" {
		t.Fatalf("no share code on original puzzle")
	}

	status, data := doJSON(t, http.MethodGet, ts.URL+"/share/"+orig.ShareCode, nil)
	if status != http.StatusOK {
		t.Fatalf("GET /share status = %d, body %s", status, data)
	}
	var clone puzzleRes
	if err := json.Unmarshal(data, &clone); err != nil {
		t.Fatalf("unmarshal shared puzzle: %v", err)
	}

	if clone.Seed != orig.Seed {
		t.Fatalf("seed = %q, want %q", clone.Seed, orig.Seed)
	}
	if clone.Preset != orig.Preset {
		t.Fatalf("preset = %q, want %q", clone.Preset, orig.Preset)
	}
	if !reflect.DeepEqual(clone.Tiles, orig.Tiles) {
		t.Fatalf("shared tiles differ:\n%+v\n%+v", clone.Tiles, orig.Tiles)
	}
	if clone.PuzzleID == orig.PuzzleID {
		t.Fatalf("shared puzzle reuses id %q", orig.PuzzleID)
	}
}

// TestShareEndpointRejectsGarbage ensures malformed share codes are 400s.
func TestShareEndpointRejectsGarbage(t *testing.T) {
	ts := newTestServer(t)

	for _, code := range []string{
		"garbage",
		"v2.easy.YWJj",
		"v1.nope.YWJj",
		"v1.easy.@@@",
	} {
		status, data := doJSON(t, http.MethodGet, ts.URL+"/share/"+code, nil)
		if status != http.StatusBadRequest {
			t.Fatalf("code %q: status = %d, body %s", code, status, data)
		}
		if !bytes.Contains(data, []byte("bad_share_code")) {
			t.Fatalf("code %q: body = %s, want bad_share_code", code, data)
		}
	}
}

// TestDailyRoutesUnavailableWithoutDB ensures daily endpoints degrade to 503
// when no database is wired, rather than panicking or faking results.
func TestDailyRoutesUnavailableWithoutDB(t *testing.T) {
	ts := newTestServer(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/daily/new"},
		{http.MethodPost, "/daily/attempt"},
		{http.MethodGet, "/daily/leaderboard"},
	} {
		status, data := doJSON(t, tc.method, ts.URL+tc.path, nil)
		if status != http.StatusServiceUnavailable {
			t.Fatalf("%s %s: status = %d, want 503", tc.method, tc.path, status)
		}
		if !bytes.Contains(data, []byte("daily_unavailable")) {
			t.Fatalf("%s %s: body = %s, want daily_unavailable", tc.method, tc.path, data)
		}
	}
}

// TestGatedRoutesRequireAuth ensures profile and stats endpoints 401 without
// a token.
func TestGatedRoutesRequireAuth(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/auth/me", "/stats/me", "/puzzles/mine"} {
		status, _ := doJSON(t, http.MethodGet, ts.URL+path, nil)
		if status != http.StatusUnauthorized {
			t.Fatalf("GET %s: status = %d, want 401", path, status)
		}
	}
}

// TestSignupValidatesInput ensures signup rejects bad usernames and passwords
// before touching any storage.
func TestSignupValidatesInput(t *testing.T) {
	ts := newTestServer(t)

	tcs := []struct {
		name     string
		username string
		password string
	}{
		{"short username", "ab", "longenough1"},
		{"illegal characters", "has space", "longenough1"},
		{"short password", "validname", "short"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			status, data := doJSON(t, http.MethodPost, ts.URL+"/auth/signup", map[string]string{
				"username": tc.username,
				"password": tc.password,
			})
			if status != http.StatusBadRequest {
				t.Fatalf("status = %d, body %s", status, data)
			}
		})
	}
}

// TestAuthRoutesUnavailableWithoutDB ensures a well-formed signup or login
// against a server running without a database degrades to a 503 rather than
// a panic-backed 500.
func TestAuthRoutesUnavailableWithoutDB(t *testing.T) {
	ts := newTestServer(t)

	for _, route := range []string{"/auth/signup", "/auth/login"} {
		status, data := doJSON(t, http.MethodPost, ts.URL+route, map[string]string{
			"username": "patternfan",
			"password": "longenough1",
		})
		if status != http.StatusServiceUnavailable {
			t.Fatalf("POST %s: status = %d, body %s", route, status, data)
		}
		if !bytes.Contains(data, []byte("auth_unavailable")) {
			t.Fatalf("POST %s: body = %s, want auth_unavailable", route, data)
		}
	}
}

// TestGatedRouteWithTokenNeedsDatabase ensures a well-signed token cannot
// drive a user lookup into a nil database: the route answers 503 instead.
func TestGatedRouteWithTokenNeedsDatabase(t *testing.T) {
	srv := New(store.NewMemoryStore(), nil, config.Config{
		Port:         "0",
		JWTSecret:    "test_secret",
		CookieName:   "pursuit_token",
		ClientOrigin: "http://localhost:5173",
		DailySalt:    "test_salt",
	})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	tok, _, err := srv.signJWT("u1", "patternfan")
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/auth/me", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /auth/me: %v", err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, body %s", resp.StatusCode, data)
	}
	if !bytes.Contains(data, []byte("auth_unavailable")) {
		t.Fatalf("body = %s, want auth_unavailable", data)
	}
}

// TestLogoutClearsCookie ensures logout expires the auth cookie.
func TestLogoutClearsCookie(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/auth/logout", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /auth/logout: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	for _, c := range resp.Cookies() {
		if c.Name == "pursuit_token" && c.Value == "" {
			return
		}
	}
	t.Fatalf("no expired pursuit_token cookie in response")
}

// TestCORSPreflightShortCircuits ensures OPTIONS requests answer immediately
// with the configured origin and credentials enabled.
func TestCORSPreflightShortCircuits(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/puzzle/new", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS /puzzle/new: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("Allow-Origin = %q, want configured origin", got)
	}
	if got := resp.Header.Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("Allow-Credentials = %q, want true", got)
	}
}

// TestUnknownRouteReturnsJSON404 ensures the catch-all 404 names the path.
func TestUnknownRouteReturnsJSON404(t *testing.T) {
	ts := newTestServer(t)

	status, data := doJSON(t, http.MethodGet, ts.URL+"/nope", nil)
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", status, http.StatusNotFound)
	}
	if !bytes.Contains(data, []byte(`"error":"not_found"`)) || !bytes.Contains(data, []byte("/nope")) {
		t.Fatalf("body = %s, want not_found with path", data)
	}
}
