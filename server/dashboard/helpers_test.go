package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/topi314/academy-dashboard/server/backend"
	"github.com/topi314/academy-dashboard/server/cache"
)

// fakeBackend answers backend routes keyed by "METHOD /path". Unknown routes answer 404.
type fakeBackend struct {
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	calls    map[string]int
	bodies   map[string][]byte
	server   *httptest.Server
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	f := &fakeBackend{
		handlers: make(map[string]http.HandlerFunc),
		calls:    make(map[string]int),
		bodies:   make(map[string][]byte),
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serveHTTP))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeBackend) serveHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.calls[key]++
	f.bodies[key] = body
	h, ok := f.handlers[key]
	f.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Resource not found"})
		return
	}
	h(w, r)
}

func (f *fakeBackend) handle(key string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[key] = h
}

// reply registers a handler answering status with v.
func (f *fakeBackend) reply(key string, status int, v any) {
	f.handle(key, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, status, v)
	})
}

func (f *fakeBackend) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeBackend) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeBackend) body(t *testing.T, key string, v any) {
	t.Helper()
	f.mu.Lock()
	data := f.bodies[key]
	f.mu.Unlock()
	require.NoError(t, json.Unmarshal(data, v))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func envelope(data any) map[string]any {
	return map[string]any{"success": true, "data": data}
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

type testDashboard struct {
	*Dashboard
	fake     *fakeBackend
	session  *cache.Session
	notifier *recordingNotifier
}

func newTestDashboard(t *testing.T, opts Options) *testDashboard {
	t.Helper()
	store := cache.NewMemoryStore(time.Hour)
	t.Cleanup(store.Close)
	return newTestDashboardWithStore(t, opts, store)
}

func newTestDashboardWithStore(t *testing.T, opts Options, store cache.Store) *testDashboard {
	t.Helper()
	f := newFakeBackend(t)

	client, err := backend.New(backend.Config{URL: f.server.URL, MaxRetries: 1}, f.server.Client())
	require.NoError(t, err)

	session := cache.NewSession(store, "test-session")

	notifier := &recordingNotifier{}
	if opts.ReconcileDelay == 0 {
		opts.ReconcileDelay = 20 * time.Millisecond
	}
	opts.Notifier = notifier

	d := New(client, session, opts)
	t.Cleanup(d.Close)

	return &testDashboard{
		Dashboard: d,
		fake:      f,
		session:   session,
		notifier:  notifier,
	}
}

const (
	testAccountID = 1
	testPlayerID  = 5
	testTeamID    = 3
)

// withPlayer registers a profile with player 5.
func (td *testDashboard) withPlayer() {
	td.fake.reply("GET /user/v1/profile", http.StatusOK, envelope(map[string]any{
		"id_compte": testAccountID,
		"nom":       "Doe",
		"prenom":    "Jane",
		"email":     "jane@example.com",
		"age":       30,
		"id_player": testPlayerID,
	}))
	td.fake.reply("GET /user/v1/players/5", http.StatusOK, envelope(map[string]any{
		"id_player":      testPlayerID,
		"id_compte":      testAccountID,
		"position":       "goalkeeper",
		"rating":         4.5,
		"starting_time":  "18:00:00",
		"finishing_time": "20:00:00",
	}))
}

// withTeam registers team 3 with the given captain account.
func (td *testDashboard) withTeam(captain int) {
	td.fake.reply("GET /user/v1/teams/my-team", http.StatusOK, envelope(map[string]any{
		"id_teams":         testTeamID,
		"capitaine":        captain,
		"rating":           "3.5",
		"starting_time":    "18:00:00",
		"finishing_time":   "20:00:00",
		"total_matches":    12,
		"misses":           1,
		"invites_accepted": 4,
		"invites_refused":  2,
		"total_invites":    6,
		"members": []map[string]any{
			{"id_player": testPlayerID, "id_compte": testAccountID, "position": "goalkeeper"},
			{"id_player": 8, "id_compte": 9, "position": "striker"},
		},
	}))
}

func (td *testDashboard) keys(t *testing.T) []string {
	t.Helper()
	keys, err := td.session.Keys(context.Background())
	require.NoError(t, err)
	return keys
}

// failingStore reads like the wrapped store but refuses every write.
type failingStore struct {
	cache.Store
}

func (failingStore) SetGroup(context.Context, string, cache.Group, map[string]string) error {
	return errors.New("store unavailable")
}
