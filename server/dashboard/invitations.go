package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/topi314/academy-dashboard/server/backend"
)

func (d *Dashboard) fetchInvitations(ctx context.Context) error {
	gen := d.begin(ResourceInvitations)

	if d.playerID() == "" {
		d.commit(ctx, ResourceInvitations, gen, func(s *State) {
			s.Invitations = nil
			delete(s.Errors, ResourceInvitations)
		}, nil)
		return nil
	}

	invitations, err := d.backend.GetPendingInvitations(ctx)
	if err != nil && !errors.Is(err, backend.ErrNotFound) {
		d.commit(ctx, ResourceInvitations, gen, func(s *State) {
			s.Errors[ResourceInvitations] = "Could not load your invitations: " + backend.Message(err)
		}, nil)
		return fmt.Errorf("failed to fetch invitations: %w", err)
	}

	d.commit(ctx, ResourceInvitations, gen, func(s *State) {
		s.Invitations = invitations
		delete(s.Errors, ResourceInvitations)
	}, nil)
	return nil
}

// fetchJoinRequests loads the pending join requests of the team. Only captains see them.
func (d *Dashboard) fetchJoinRequests(ctx context.Context) error {
	gen := d.begin(ResourceJoinRequests)

	var teamID backend.ID
	d.view(func(s State) {
		if s.Team != nil && s.IsCaptain {
			teamID = s.Team.ID
		}
	})
	if teamID.IsZero() {
		d.commit(ctx, ResourceJoinRequests, gen, func(s *State) {
			s.JoinRequests = nil
			delete(s.Errors, ResourceJoinRequests)
		}, nil)
		return nil
	}

	requests, err := d.backend.GetPendingJoinRequests(ctx, teamID)
	if err != nil && !errors.Is(err, backend.ErrNotFound) {
		d.commit(ctx, ResourceJoinRequests, gen, func(s *State) {
			s.Errors[ResourceJoinRequests] = "Could not load join requests: " + backend.Message(err)
		}, nil)
		return fmt.Errorf("failed to fetch join requests: %w", err)
	}

	d.commit(ctx, ResourceJoinRequests, gen, func(s *State) {
		s.JoinRequests = requests
		delete(s.Errors, ResourceJoinRequests)
	}, nil)
	return nil
}

func (d *Dashboard) AcceptInvitation(ctx context.Context, invitationID backend.ID) error {
	if err := validID("id", invitationID); err != nil {
		return err
	}
	if err := d.backend.AcceptInvitation(ctx, invitationID); err != nil {
		d.failed("Could not accept the invitation", err)
		return fmt.Errorf("failed to accept invitation: %w", err)
	}

	d.removeInvitation(invitationID)
	d.notice(NoticeSuccess, "Invitation accepted")
	if err := d.refreshTeam(ctx); err != nil {
		slog.ErrorContext(ctx, "Failed to refresh team after accepting invitation", slog.Any("err", err))
	}
	if err := d.fetchInvitations(ctx); err != nil {
		slog.ErrorContext(ctx, "Failed to refresh invitations", slog.Any("err", err))
	}
	return nil
}

func (d *Dashboard) RefuseInvitation(ctx context.Context, invitationID backend.ID) error {
	if err := validID("id", invitationID); err != nil {
		return err
	}
	if err := d.backend.RefuseInvitation(ctx, invitationID); err != nil {
		d.failed("Could not refuse the invitation", err)
		return fmt.Errorf("failed to refuse invitation: %w", err)
	}

	d.removeInvitation(invitationID)
	d.notice(NoticeSuccess, "Invitation refused")
	if err := d.fetchInvitations(ctx); err != nil {
		slog.ErrorContext(ctx, "Failed to refresh invitations", slog.Any("err", err))
	}
	return nil
}

func (d *Dashboard) removeInvitation(invitationID backend.ID) {
	d.supersede(ResourceInvitations, func(s *State) {
		s.Invitations = removeByID(s.Invitations, invitationID, func(i backend.PlayerTeam) backend.ID {
			return i.ID
		})
	})
}

// ProcessJoinRequest accepts or refuses a request to join the captain's team.
func (d *Dashboard) ProcessJoinRequest(ctx context.Context, requestID backend.ID, status backend.JoinRequestStatus) error {
	if status != backend.JoinRequestAccepted && status != backend.JoinRequestRefused {
		return invalid("status", "status must be accepted or refused")
	}
	if err := validID("id", requestID); err != nil {
		return err
	}
	if _, err := d.captainTeam(); err != nil {
		return err
	}

	if err := d.backend.ProcessJoinRequest(ctx, requestID, status); err != nil {
		d.failed("Could not process the join request", err)
		return fmt.Errorf("failed to process join request: %w", err)
	}

	d.supersede(ResourceJoinRequests, func(s *State) {
		s.JoinRequests = removeByID(s.JoinRequests, requestID, func(r backend.PlayerTeam) backend.ID {
			return r.ID
		})
	})
	if status == backend.JoinRequestAccepted {
		d.notice(NoticeSuccess, "Join request accepted")
		if err := d.refreshTeam(ctx); err != nil {
			slog.ErrorContext(ctx, "Failed to refresh team after accepting join request", slog.Any("err", err))
		}
	} else {
		d.notice(NoticeSuccess, "Join request refused")
	}
	if err := d.fetchJoinRequests(ctx); err != nil {
		slog.ErrorContext(ctx, "Failed to refresh join requests", slog.Any("err", err))
	}
	return nil
}

func removeByID[T any](items []T, id backend.ID, idOf func(T) backend.ID) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if idOf(item) != id {
			out = append(out, item)
		}
	}
	return out
}
