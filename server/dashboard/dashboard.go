package dashboard

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/topi314/academy-dashboard/server/backend"
	"github.com/topi314/academy-dashboard/server/cache"
)

type Resource string

const (
	ResourceProfile      Resource = "profile"
	ResourceActivities   Resource = "activities"
	ResourceUpcoming     Resource = "upcoming_reservations"
	ResourceHistory      Resource = "reservation_history"
	ResourceMemberships  Resource = "memberships"
	ResourcePlayer       Resource = "player"
	ResourceTeam         Resource = "team"
	ResourceInvitations  Resource = "invitations"
	ResourceJoinRequests Resource = "join_requests"
	ResourceRequests     Resource = "requests"
)

var Resources = []Resource{
	ResourceProfile,
	ResourceActivities,
	ResourceUpcoming,
	ResourceHistory,
	ResourceMemberships,
	ResourcePlayer,
	ResourceTeam,
	ResourceInvitations,
	ResourceJoinRequests,
	ResourceRequests,
}

func (r Resource) Valid() bool {
	return slices.Contains(Resources, r)
}

type Options struct {
	LoadingTimeout       time.Duration
	ReconcileDelay       time.Duration
	HistoryPerPage       int
	RequestsPerPage      int
	// MaxConcurrentFetches limits the parallel backend calls of Load, 0 means unlimited.
	MaxConcurrentFetches int
	LogoutRedirect       string
	Notifier             Notifier
}

func (o Options) withDefaults() Options {
	if o.LoadingTimeout <= 0 {
		o.LoadingTimeout = 10 * time.Second
	}
	if o.ReconcileDelay <= 0 {
		o.ReconcileDelay = 500 * time.Millisecond
	}
	if o.HistoryPerPage <= 0 {
		o.HistoryPerPage = 10
	}
	if o.RequestsPerPage <= 0 {
		o.RequestsPerPage = 10
	}
	if o.LogoutRedirect == "" {
		o.LogoutRedirect = "/login"
	}
	if o.Notifier == nil {
		o.Notifier = nopNotifier{}
	}
	return o
}

func New(b Backend, session *cache.Session, opts Options) *Dashboard {
	opts = opts.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	d := &Dashboard{
		backend:  b,
		cache:    session,
		opts:     opts,
		ctx:      ctx,
		cancel:   cancel,
		gens:     make(map[Resource]uint64),
		inflight: make(map[Resource]int),
		commits:  make(map[Resource]*sync.Mutex),
	}
	d.state = d.emptyState()
	return d
}

// Dashboard holds the view state of one session and runs the fetches and mutations behind it.
type Dashboard struct {
	backend Backend
	cache   *cache.Session
	opts    Options

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu           sync.Mutex
	state        State
	gens         map[Resource]uint64
	inflight     map[Resource]int
	watchdog     *time.Timer
	notices      []Notice
	confirmation Confirmation

	commitsMu sync.Mutex
	commits   map[Resource]*sync.Mutex
}

func (d *Dashboard) SessionID() string {
	return d.cache.ID()
}

// Close stops pending reconciliations and waits for them to return.
func (d *Dashboard) Close() {
	d.cancel()
	d.wg.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.watchdog != nil {
		d.watchdog.Stop()
		d.watchdog = nil
	}
}

func (d *Dashboard) emptyState() State {
	return State{
		History: HistoryView{
			Page:    1,
			Pages:   1,
			PerPage: d.opts.HistoryPerPage,
		},
		Requests: RequestsView{
			Page:    1,
			Pages:   1,
			PerPage: d.opts.RequestsPerPage,
		},
		Loading: make(map[Resource]bool),
		Errors:  make(map[Resource]string),
	}
}

// Snapshot returns a copy of the current state which is safe to serialise.
func (d *Dashboard) Snapshot() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := d.state
	s.Profile = clonePtr(s.Profile)
	s.Player = clonePtr(s.Player)
	s.Team = clonePtr(s.Team)
	s.Activities = slices.Clone(s.Activities)
	s.Upcoming = slices.Clone(s.Upcoming)
	s.History.Items = slices.Clone(s.History.Items)
	s.Memberships = slices.Clone(s.Memberships)
	s.Teams = slices.Clone(s.Teams)
	s.Invitations = slices.Clone(s.Invitations)
	s.JoinRequests = slices.Clone(s.JoinRequests)
	s.Requests.Sent = slices.Clone(s.Requests.Sent)
	s.Requests.Received = slices.Clone(s.Requests.Received)
	s.Loading = maps.Clone(s.Loading)
	s.Errors = maps.Clone(s.Errors)
	s.Confirmation = d.confirmation
	return s
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func (d *Dashboard) update(fn func(s *State)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(&d.state)
}

func (d *Dashboard) view(fn func(s State)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.state)
}

func (d *Dashboard) accountID() backend.ID {
	var id backend.ID
	d.view(func(s State) {
		if s.Profile != nil {
			id = s.Profile.ID
		}
	})
	return id
}

func (d *Dashboard) playerID() backend.ID {
	var id backend.ID
	d.view(func(s State) {
		if s.Player != nil {
			id = s.Player.ID
		}
	})
	return id
}

// begin marks res as loading and returns the generation of this fetch.
func (d *Dashboard) begin(res Resource) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gens[res]++
	d.inflight[res]++
	d.state.Loading[res] = true
	if d.watchdog == nil {
		d.watchdog = time.AfterFunc(d.opts.LoadingTimeout, d.resetLoading)
	}
	return d.gens[res]
}

// commit ends a fetch of res. apply and persist only run while gen is still the newest fetch of res.
// persist runs outside the state lock but before any newer fetch of res can commit.
func (d *Dashboard) commit(ctx context.Context, res Resource, gen uint64, apply func(s *State), persist func(ctx context.Context) error) bool {
	unlock := d.lockCommit(res)
	defer unlock()

	d.mu.Lock()
	if d.inflight[res] > 0 {
		d.inflight[res]--
	}
	if d.inflight[res] == 0 {
		delete(d.state.Loading, res)
	}
	if len(d.state.Loading) == 0 && d.watchdog != nil {
		d.watchdog.Stop()
		d.watchdog = nil
	}
	current := gen == d.gens[res]
	if current && apply != nil {
		apply(&d.state)
	}
	d.mu.Unlock()

	if !current {
		slog.DebugContext(ctx, "Discarding superseded response", slog.String("resource", string(res)), slog.Uint64("generation", gen))
		return false
	}
	if persist != nil {
		if err := persist(ctx); err != nil {
			slog.ErrorContext(ctx, "Failed to update session cache", slog.String("resource", string(res)), slog.Any("err", err))
		}
	}
	return true
}

func (d *Dashboard) lockCommit(res Resource) func() {
	d.commitsMu.Lock()
	mu, ok := d.commits[res]
	if !ok {
		mu = &sync.Mutex{}
		d.commits[res] = mu
	}
	d.commitsMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

func (d *Dashboard) resetLoading() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.state.Loading) > 0 {
		slog.Warn("Loading took too long, clearing loading flags", slog.String("session", d.cache.ID()), slog.Int("resources", len(d.state.Loading)))
	}
	clear(d.state.Loading)
	clear(d.inflight)
	d.watchdog = nil
}

// later runs fn after the reconcile delay unless the dashboard is closed first.
func (d *Dashboard) later(fn func(ctx context.Context)) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		timer := time.NewTimer(d.opts.ReconcileDelay)
		defer timer.Stop()
		select {
		case <-d.ctx.Done():
		case <-timer.C:
			fn(d.ctx)
		}
	}()
}

// supersede applies a local change to res and discards any response of a fetch started before it.
func (d *Dashboard) supersede(res Resource, fn func(s *State)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gens[res]++
	fn(&d.state)
}
