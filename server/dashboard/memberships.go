package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/topi314/academy-dashboard/server/backend"
	"github.com/topi314/academy-dashboard/server/cache"
)

func (d *Dashboard) fetchMemberships(ctx context.Context) error {
	gen := d.begin(ResourceMemberships)

	memberships, err := d.backend.GetMyMemberships(ctx)
	if err != nil && !errors.Is(err, backend.ErrNotFound) {
		d.commit(ctx, ResourceMemberships, gen, func(s *State) {
			s.Errors[ResourceMemberships] = "Could not load your memberships: " + backend.Message(err)
		}, nil)
		return fmt.Errorf("failed to fetch memberships: %w", err)
	}

	persist := d.cache.ClearMemberships
	if len(memberships) > 0 {
		persist = func(ctx context.Context) error {
			data, err := json.Marshal(memberships)
			if err != nil {
				return fmt.Errorf("failed to encode memberships: %w", err)
			}
			return d.cache.SetMemberships(ctx, cache.MembershipEntry{
				FirstMemberID: memberships[0].ID.String(),
				Memberships:   data,
			})
		}
	}

	d.commit(ctx, ResourceMemberships, gen, func(s *State) {
		s.Memberships = memberships
		delete(s.Errors, ResourceMemberships)
	}, persist)
	return nil
}

// CancelMembership cancels the membership in an academy, falling back to cancelling the
// subscription when the membership route is refused.
func (d *Dashboard) CancelMembership(ctx context.Context, academyID backend.ID) error {
	if err := validID("academy_id", academyID); err != nil {
		return err
	}

	used, err := firstSuccess(ctx, []candidate{
		{
			name: "cancelMembership",
			run: func(ctx context.Context) error {
				return d.backend.CancelMembership(ctx, academyID)
			},
		},
		{
			name: "cancelSubscription",
			run: func(ctx context.Context) error {
				return d.backend.CancelSubscription(ctx, academyID)
			},
		},
	})
	if err != nil {
		d.failed("Could not cancel the membership", err)
		return fmt.Errorf("failed to cancel membership: %w", err)
	}
	slog.DebugContext(ctx, "Cancelled membership", slog.String("academy_id", academyID.String()), slog.String("route", used))

	d.notice(NoticeSuccess, "Membership cancelled")
	if err = d.fetchMemberships(ctx); err != nil {
		slog.ErrorContext(ctx, "Failed to refresh memberships", slog.Any("err", err))
	}
	return nil
}

func (d *Dashboard) UpdatePlan(ctx context.Context, academyID backend.ID, plan backend.SubscriptionPlan) error {
	if err := validID("academy_id", academyID); err != nil {
		return err
	}
	if !plan.Valid() {
		return invalid("subscription_plan", "plan must be base or premium")
	}

	if err := d.backend.UpdatePlan(ctx, academyID, plan); err != nil {
		d.failed("Could not change the plan", err)
		return fmt.Errorf("failed to update plan: %w", err)
	}

	d.notice(NoticeSuccess, "Plan changed to %s", plan)
	if err := d.fetchMemberships(ctx); err != nil {
		slog.ErrorContext(ctx, "Failed to refresh memberships", slog.Any("err", err))
	}
	return nil
}
