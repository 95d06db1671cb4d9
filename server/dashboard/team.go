package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/topi314/academy-dashboard/server/backend"
	"github.com/topi314/academy-dashboard/server/cache"
)

const teamInclude = "members"

type TeamForm struct {
	StartTime  string     `json:"starting_time"`
	FinishTime string     `json:"finishing_time"`
	Captain    backend.ID `json:"capitaine"`
}

// fetchTeam loads the team of playerID. Not belonging to a team is an empty state.
func (d *Dashboard) fetchTeam(ctx context.Context, playerID backend.ID) (*backend.Team, error) {
	gen := d.begin(ResourceTeam)

	if playerID.IsZero() {
		d.commit(ctx, ResourceTeam, gen, func(s *State) {
			s.clearTeam()
			delete(s.Errors, ResourceTeam)
		}, d.cache.ClearTeam)
		return nil, nil
	}

	teams, err := d.backend.GetMyTeam(ctx, playerID, teamInclude)
	if errors.Is(err, backend.ErrNoTeam) {
		d.commit(ctx, ResourceTeam, gen, func(s *State) {
			s.clearTeam()
			delete(s.Errors, ResourceTeam)
		}, d.cache.ClearTeam)
		return nil, nil
	}
	if err != nil {
		d.commit(ctx, ResourceTeam, gen, func(s *State) {
			s.clearTeam()
			s.Errors[ResourceTeam] = "Could not load your team: " + backend.Message(err) + ". Please try again."
		}, d.cache.ClearTeam)
		return nil, fmt.Errorf("failed to fetch team: %w", err)
	}

	team := teams[0]
	accountID := d.accountID()
	isCaptain := !accountID.IsZero() && team.Captain == accountID

	d.commit(ctx, ResourceTeam, gen, func(s *State) {
		s.Teams = teams
		s.Team = &team
		s.IsCaptain = isCaptain
		delete(s.Errors, ResourceTeam)
	}, func(ctx context.Context) error {
		data, err := json.Marshal(teams)
		if err != nil {
			return fmt.Errorf("failed to encode teams: %w", err)
		}
		return d.cache.SetTeam(ctx, cache.TeamEntry{
			ID:        team.ID.String(),
			Teams:     data,
			IsCaptain: isCaptain,
		})
	})
	return &team, nil
}

func (d *Dashboard) refreshTeam(ctx context.Context) error {
	_, err := d.fetchTeam(ctx, d.playerID())
	return err
}

// captainTeam returns the current team if the user is its captain.
func (d *Dashboard) captainTeam() (backend.Team, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state.Team == nil {
		return backend.Team{}, ErrNoTeam
	}
	if !d.state.IsCaptain {
		return backend.Team{}, ErrNotCaptain
	}
	return *d.state.Team, nil
}

func (d *Dashboard) UpdateTeam(ctx context.Context, form TeamForm) error {
	team, err := d.captainTeam()
	if err != nil {
		return err
	}
	if err = required("starting_time", form.StartTime); err != nil {
		return err
	}
	if err = required("finishing_time", form.FinishTime); err != nil {
		return err
	}

	update := backend.TeamUpdate{
		Captain:         team.Captain,
		Rating:          float64(team.Rating),
		TotalMatches:    int(team.TotalMatches),
		Misses:          int(team.Misses),
		InvitesAccepted: int(team.InvitesAccepted),
		InvitesRefused:  int(team.InvitesRefused),
		TotalInvites:    int(team.TotalInvites),
	}
	if update.StartTime, err = normalizeClock("starting_time", form.StartTime); err != nil {
		return err
	}
	if update.FinishTime, err = normalizeClock("finishing_time", form.FinishTime); err != nil {
		return err
	}
	if !form.Captain.IsZero() {
		if err = validID("capitaine", form.Captain); err != nil {
			return err
		}
		update.Captain = form.Captain
	}

	if err = d.backend.UpdateTeam(ctx, team.ID, update); err != nil {
		d.failed("Could not update your team", err)
		return fmt.Errorf("failed to update team: %w", err)
	}

	team.StartTime = update.StartTime
	team.FinishTime = update.FinishTime
	team.Captain = update.Captain
	isCaptain := team.Captain == d.accountID()

	var teams []backend.Team
	d.view(func(s State) {
		teams = make([]backend.Team, 0, len(s.Teams))
		for _, t := range s.Teams {
			if t.ID == team.ID {
				t = team
			}
			teams = append(teams, t)
		}
	})
	gen := d.begin(ResourceTeam)
	d.commit(ctx, ResourceTeam, gen, func(s *State) {
		s.Teams = teams
		s.Team = &team
		s.IsCaptain = isCaptain
		if !isCaptain {
			s.JoinRequests = nil
		}
	}, func(ctx context.Context) error {
		data, err := json.Marshal(teams)
		if err != nil {
			return fmt.Errorf("failed to encode teams: %w", err)
		}
		return d.cache.SetTeam(ctx, cache.TeamEntry{
			ID:        team.ID.String(),
			Teams:     data,
			IsCaptain: isCaptain,
		})
	})

	if isCaptain {
		d.notice(NoticeSuccess, "Team updated")
	} else {
		d.notice(NoticeSuccess, "Team updated, captaincy transferred")
	}
	return nil
}

func (d *Dashboard) DeleteTeam(ctx context.Context) error {
	team, err := d.captainTeam()
	if err != nil {
		return err
	}

	if err = d.backend.DeleteTeam(ctx, team.ID); err != nil {
		d.failed("Could not delete your team", err)
		return fmt.Errorf("failed to delete team: %w", err)
	}

	gen := d.begin(ResourceTeam)
	d.commit(ctx, ResourceTeam, gen, func(s *State) {
		s.clearTeam()
	}, d.cache.ClearTeam)

	d.notice(NoticeSuccess, "Team deleted")
	return nil
}

func (d *Dashboard) RemoveTeamMember(ctx context.Context, playerID backend.ID, reason string) error {
	team, err := d.captainTeam()
	if err != nil {
		return err
	}
	if err := validID("player_id", playerID); err != nil {
		return err
	}

	err = d.backend.RemoveTeamMember(ctx, team.ID, playerID, backend.RemoveMember{
		Captain: team.Captain,
		Reason:  strings.TrimSpace(reason),
	})
	if err != nil {
		d.failed("Could not remove the team member", err)
		return fmt.Errorf("failed to remove team member: %w", err)
	}

	d.notice(NoticeSuccess, "Member removed from the team")
	if err = d.refreshTeam(ctx); err != nil {
		slog.ErrorContext(ctx, "Failed to refresh team after removing member", slog.Any("err", err))
	}
	return nil
}

func (d *Dashboard) JoinTeam(ctx context.Context, teamID backend.ID) error {
	if err := validID("team_id", teamID); err != nil {
		return err
	}
	if d.playerID() == "" {
		return ErrNoPlayer
	}

	if err := d.backend.JoinTeam(ctx, teamID); err != nil {
		d.failed("Could not send your join request", err)
		return fmt.Errorf("failed to join team: %w", err)
	}

	d.notice(NoticeSuccess, "Join request sent")
	return nil
}

// InviteToTeam tries every invite route in order and refreshes the team once one of them succeeds.
func (d *Dashboard) InviteToTeam(ctx context.Context, playerID backend.ID) error {
	team, err := d.captainTeam()
	if err != nil {
		return err
	}
	if err := validID("player_id", playerID); err != nil {
		return err
	}

	routes := d.backend.InviteRoutes()
	candidates := make([]candidate, 0, len(routes))
	for _, route := range routes {
		candidates = append(candidates, candidate{
			name: route.Name,
			run: func(ctx context.Context) error {
				return route.Invite(ctx, team.ID, playerID)
			},
		})
	}

	used, err := firstSuccess(ctx, candidates)
	if err != nil {
		d.failed("Could not invite the player", err)
		d.opts.Notifier.Notify(ctx, fmt.Sprintf("Every invite route failed for team %s and player %s: %s", team.ID, playerID, err))
		return fmt.Errorf("failed to invite player: %w", err)
	}
	slog.DebugContext(ctx, "Invited player", slog.String("route", used), slog.String("team_id", team.ID.String()), slog.String("player_id", playerID.String()))

	d.notice(NoticeSuccess, "Invitation sent")
	if err = d.refreshTeam(ctx); err != nil {
		slog.ErrorContext(ctx, "Failed to refresh team after invite", slog.Any("err", err))
	}
	return nil
}
