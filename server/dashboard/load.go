package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/topi314/academy-dashboard/internal/tsync"
	"github.com/topi314/academy-dashboard/internal/xerrors"
	"github.com/topi314/academy-dashboard/server/backend"
)

// task runs fn at most once and hands the same result to every caller.
type task[T any] struct {
	once sync.Once
	fn   func(ctx context.Context) (T, error)
	v    T
	err  error
}

func newTask[T any](fn func(ctx context.Context) (T, error)) *task[T] {
	return &task[T]{fn: fn}
}

func (t *task[T]) get(ctx context.Context) (T, error) {
	t.once.Do(func() {
		t.v, t.err = t.fn(ctx)
	})
	return t.v, t.err
}

// Load fetches every resource of the dashboard. Resources that depend on each other wait for
// their dependency, everything else runs in parallel. A failing resource does not stop the others.
func (d *Dashboard) Load(ctx context.Context) error {
	eg, ctx := tsync.ErrorGroupWithContext(ctx)
	if d.opts.MaxConcurrentFetches > 0 {
		eg.SetLimit(d.opts.MaxConcurrentFetches)
	}

	profile := newTask(d.fetchProfile)
	player := newTask(func(ctx context.Context) (*backend.Player, error) {
		user, _ := profile.get(ctx)
		return d.fetchPlayer(ctx, user)
	})
	team := newTask(func(ctx context.Context) (*backend.Team, error) {
		p, err := player.get(ctx)
		if err != nil {
			return nil, nil
		}
		var playerID backend.ID
		if p != nil {
			playerID = p.ID
		}
		return d.fetchTeam(ctx, playerID)
	})

	eg.Go(string(ResourceProfile), func() error {
		_, err := profile.get(ctx)
		return err
	})
	eg.Go(string(ResourceActivities), func() error {
		return d.fetchActivities(ctx)
	})
	eg.Go(string(ResourceUpcoming), func() error {
		return d.fetchUpcoming(ctx)
	})
	eg.Go(string(ResourceHistory), func() error {
		return d.fetchHistory(ctx)
	})
	eg.Go(string(ResourceMemberships), func() error {
		return d.fetchMemberships(ctx)
	})
	eg.Go(string(ResourcePlayer), func() error {
		_, err := player.get(ctx)
		return err
	})
	eg.Go(string(ResourceTeam), func() error {
		_, err := team.get(ctx)
		return err
	})
	eg.Go(string(ResourceInvitations), func() error {
		_, _ = team.get(ctx)
		return d.fetchInvitations(ctx)
	})
	eg.Go(string(ResourceJoinRequests), func() error {
		_, _ = team.get(ctx)
		return d.fetchJoinRequests(ctx)
	})
	eg.Go(string(ResourceRequests), func() error {
		_, _ = player.get(ctx)
		return d.fetchRequests(ctx)
	})

	err := eg.Wait()
	for _, e := range xerrors.Unwrap(err) {
		slog.ErrorContext(ctx, "Failed to load dashboard resource", slog.String("session", d.cache.ID()), slog.Any("err", e))
	}
	return err
}

// Refresh refetches a single resource.
func (d *Dashboard) Refresh(ctx context.Context, res Resource) error {
	switch res {
	case ResourceProfile:
		_, err := d.fetchProfile(ctx)
		return err
	case ResourceActivities:
		return d.fetchActivities(ctx)
	case ResourceUpcoming:
		return d.fetchUpcoming(ctx)
	case ResourceHistory:
		return d.fetchHistory(ctx)
	case ResourceMemberships:
		return d.fetchMemberships(ctx)
	case ResourcePlayer:
		return d.refreshPlayer(ctx)
	case ResourceTeam:
		return d.refreshTeam(ctx)
	case ResourceInvitations:
		return d.fetchInvitations(ctx)
	case ResourceJoinRequests:
		return d.fetchJoinRequests(ctx)
	case ResourceRequests:
		return d.fetchRequests(ctx)
	}
	return fmt.Errorf("unknown resource %q", res)
}
