package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/topi314/academy-dashboard/server/backend"
)

type HistoryFilter struct {
	Page    int
	PerPage int
	Status  string
	Search  string
}

func (d *Dashboard) fetchUpcoming(ctx context.Context) error {
	gen := d.begin(ResourceUpcoming)

	reservations, err := d.backend.GetUpcomingReservations(ctx)
	if err != nil && !errors.Is(err, backend.ErrNotFound) {
		d.commit(ctx, ResourceUpcoming, gen, func(s *State) {
			s.Errors[ResourceUpcoming] = "Could not load your reservations: " + backend.Message(err)
		}, nil)
		return fmt.Errorf("failed to fetch upcoming reservations: %w", err)
	}

	d.commit(ctx, ResourceUpcoming, gen, func(s *State) {
		s.Upcoming = reservations
		delete(s.Errors, ResourceUpcoming)
	}, nil)
	return nil
}

func (d *Dashboard) fetchHistory(ctx context.Context) error {
	gen := d.begin(ResourceHistory)

	var q backend.HistoryQuery
	d.view(func(s State) {
		q = backend.HistoryQuery{
			Page:    s.History.Page,
			PerPage: s.History.PerPage,
			Status:  s.History.Status,
			Search:  s.History.Search,
		}
	})

	page, err := d.backend.GetReservationHistory(ctx, q)
	if err != nil && !errors.Is(err, backend.ErrNotFound) {
		d.commit(ctx, ResourceHistory, gen, func(s *State) {
			s.Errors[ResourceHistory] = "Could not load your reservation history: " + backend.Message(err)
		}, nil)
		return fmt.Errorf("failed to fetch reservation history: %w", err)
	}
	if page.Shape == backend.ShapeUnknown && err == nil {
		slog.DebugContext(ctx, "Reservation history has no recognisable list, showing no entries")
	}

	d.commit(ctx, ResourceHistory, gen, func(s *State) {
		s.History.Items = page.Items
		s.History.Pages = max(page.Pages, 1)
		delete(s.Errors, ResourceHistory)
	}, nil)
	return nil
}

// FilterHistory changes the history filter and loads the matching page.
func (d *Dashboard) FilterHistory(ctx context.Context, filter HistoryFilter) error {
	d.update(func(s *State) {
		s.History.Page = max(filter.Page, 1)
		if filter.PerPage > 0 {
			s.History.PerPage = filter.PerPage
		}
		s.History.Status = strings.TrimSpace(filter.Status)
		s.History.Search = strings.TrimSpace(filter.Search)
	})
	return d.fetchHistory(ctx)
}

// CancelReservation removes the reservation right away, cancels it and reconciles with the backend
// after the reconcile delay, whatever the outcome.
func (d *Dashboard) CancelReservation(ctx context.Context, reservationID backend.ID) error {
	if err := validID("id", reservationID); err != nil {
		return err
	}

	d.supersede(ResourceUpcoming, func(s *State) {
		s.Upcoming = removeByID(s.Upcoming, reservationID, func(r backend.Reservation) backend.ID {
			return r.ID
		})
	})

	err := d.backend.CancelReservation(ctx, reservationID)
	if err != nil {
		d.failed("Could not cancel the reservation", err)
	} else {
		d.notice(NoticeSuccess, "Reservation cancelled")
	}

	d.later(func(ctx context.Context) {
		if err := d.fetchUpcoming(ctx); err != nil {
			slog.ErrorContext(ctx, "Failed to reconcile upcoming reservations", slog.Any("err", err))
		}
		if err := d.fetchHistory(ctx); err != nil {
			slog.ErrorContext(ctx, "Failed to reconcile reservation history", slog.Any("err", err))
		}
	})

	if err != nil {
		return fmt.Errorf("failed to cancel reservation: %w", err)
	}
	return nil
}

func (d *Dashboard) DeleteReservation(ctx context.Context, reservationID backend.ID) error {
	if err := validID("id", reservationID); err != nil {
		return err
	}

	if err := d.backend.DeleteReservation(ctx, reservationID); err != nil {
		d.failed("Could not delete the reservation", err)
		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	d.supersede(ResourceHistory, func(s *State) {
		s.History.Items = removeByID(s.History.Items, reservationID, func(r backend.Reservation) backend.ID {
			return r.ID
		})
	})
	d.notice(NoticeSuccess, "Reservation deleted")
	if err := d.fetchHistory(ctx); err != nil {
		slog.ErrorContext(ctx, "Failed to refresh reservation history", slog.Any("err", err))
	}
	return nil
}

// UpcomingReservation looks up a loaded upcoming reservation.
func (d *Dashboard) UpcomingReservation(reservationID backend.ID) (backend.Reservation, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, r := range d.state.Upcoming {
		if r.ID == reservationID {
			return r, true
		}
	}
	return backend.Reservation{}, false
}
