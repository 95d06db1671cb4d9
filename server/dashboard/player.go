package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/topi314/academy-dashboard/server/backend"
	"github.com/topi314/academy-dashboard/server/cache"
)

var errProfileUnavailable = errors.New("profile is unavailable, cannot resolve player")

type PlayerForm struct {
	Position   string `json:"position"`
	StartTime  string `json:"starting_time"`
	FinishTime string `json:"finishing_time"`
}

func (f PlayerForm) input() (backend.PlayerInput, error) {
	if err := required("position", f.Position); err != nil {
		return backend.PlayerInput{}, err
	}
	input := backend.PlayerInput{
		Position: strings.TrimSpace(f.Position),
	}
	var err error
	if f.StartTime != "" {
		if input.StartTime, err = normalizeClock("starting_time", f.StartTime); err != nil {
			return backend.PlayerInput{}, err
		}
	}
	if f.FinishTime != "" {
		if input.FinishTime, err = normalizeClock("finishing_time", f.FinishTime); err != nil {
			return backend.PlayerInput{}, err
		}
	}
	return input, nil
}

// fetchPlayer resolves the player of user. A missing player is not an error.
func (d *Dashboard) fetchPlayer(ctx context.Context, user *backend.User) (*backend.Player, error) {
	gen := d.begin(ResourcePlayer)

	player, err := d.resolvePlayer(ctx, user)
	if err != nil {
		d.commit(ctx, ResourcePlayer, gen, func(s *State) {
			s.Errors[ResourcePlayer] = "Could not load your player profile: " + backend.Message(err)
		}, nil)
		return nil, fmt.Errorf("failed to fetch player: %w", err)
	}

	if player == nil {
		d.commit(ctx, ResourcePlayer, gen, func(s *State) {
			s.clearPlayer()
			delete(s.Errors, ResourcePlayer)
		}, func(ctx context.Context) error {
			return errors.Join(d.cache.ClearPlayer(ctx), d.cache.ClearTeam(ctx))
		})
		return nil, nil
	}

	d.commit(ctx, ResourcePlayer, gen, func(s *State) {
		s.Player = player
		delete(s.Errors, ResourcePlayer)
	}, func(ctx context.Context) error {
		return d.cache.SetPlayer(ctx, playerEntry(player))
	})
	return player, nil
}

func playerEntry(player *backend.Player) cache.PlayerEntry {
	return cache.PlayerEntry{
		ID:       player.ID.String(),
		Position: player.Position,
		Rating:   float64(player.Rating),
	}
}

// resolvePlayer tries the profile's player id, then the cached player id and finally scans the
// player list for the account.
func (d *Dashboard) resolvePlayer(ctx context.Context, user *backend.User) (*backend.Player, error) {
	if user != nil && !user.PlayerID.IsZero() {
		player, err := d.backend.GetPlayer(ctx, user.PlayerID)
		if err == nil && player != nil {
			return player, nil
		}
		if err != nil && !errors.Is(err, backend.ErrNotFound) {
			return nil, err
		}
	}

	entry, ok, err := d.cache.Player(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Failed to read cached player", slog.Any("err", err))
	}
	if ok && entry.ID != "" {
		player, err := d.backend.GetPlayer(ctx, backend.ID(entry.ID))
		if err == nil && player != nil {
			return player, nil
		}
		if err != nil && !errors.Is(err, backend.ErrNotFound) {
			return nil, err
		}
		slog.DebugContext(ctx, "Cached player id is stale", slog.String("player_id", entry.ID))
		if err = d.cache.ClearPlayer(ctx); err != nil {
			slog.ErrorContext(ctx, "Failed to clear stale player cache", slog.Any("err", err))
		}
	}

	if user == nil || user.ID.IsZero() {
		return nil, errProfileUnavailable
	}

	players, err := d.backend.GetAllPlayers(ctx, url.Values{"id_compte": {user.ID.String()}})
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	for _, player := range players {
		if player.AccountID == user.ID {
			return &player, nil
		}
	}
	return nil, nil
}

func (d *Dashboard) refreshPlayer(ctx context.Context) error {
	var user *backend.User
	d.view(func(s State) {
		user = clonePtr(s.Profile)
	})
	_, err := d.fetchPlayer(ctx, user)
	return err
}

func (d *Dashboard) CreatePlayer(ctx context.Context, form PlayerForm) error {
	input, err := form.input()
	if err != nil {
		return err
	}
	if d.playerID() != "" {
		return ErrPlayerExists
	}
	accountID := d.accountID()
	if accountID == "" {
		return ErrProfileNotLoaded
	}
	input.AccountID = accountID

	player, err := d.backend.CreatePlayer(ctx, input)
	if err != nil {
		d.failed("Could not create your player profile", err)
		return fmt.Errorf("failed to create player: %w", err)
	}
	if player == nil || player.ID.IsZero() {
		if err = d.refreshPlayer(ctx); err != nil {
			return err
		}
	} else {
		d.setPlayer(ctx, player)
	}

	d.notice(NoticeSuccess, "Player profile created")
	return nil
}

func (d *Dashboard) UpdatePlayer(ctx context.Context, form PlayerForm) error {
	input, err := form.input()
	if err != nil {
		return err
	}

	var current *backend.Player
	d.view(func(s State) {
		current = clonePtr(s.Player)
	})
	if current == nil {
		return ErrNoPlayer
	}
	input.AccountID = current.AccountID

	player, err := d.backend.UpdatePlayer(ctx, current.ID, input)
	if err != nil {
		d.failed("Could not update your player profile", err)
		return fmt.Errorf("failed to update player: %w", err)
	}
	if player == nil || player.ID.IsZero() {
		player = current
		player.Position = input.Position
		player.StartTime = input.StartTime
		player.FinishTime = input.FinishTime
	}
	d.setPlayer(ctx, player)

	d.notice(NoticeSuccess, "Player profile updated")
	return nil
}

// setPlayer stores a player returned by a mutation, superseding any fetch still in flight.
func (d *Dashboard) setPlayer(ctx context.Context, player *backend.Player) {
	gen := d.begin(ResourcePlayer)
	d.commit(ctx, ResourcePlayer, gen, func(s *State) {
		s.Player = player
		delete(s.Errors, ResourcePlayer)
	}, func(ctx context.Context) error {
		return d.cache.SetPlayer(ctx, playerEntry(player))
	})
}

// RequestPlayerDeletion opens the confirmation step of the player deletion.
func (d *Dashboard) RequestPlayerDeletion() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state.Player == nil {
		return ErrNoPlayer
	}
	d.confirmation = ConfirmationDeletePlayer
	return nil
}

func (d *Dashboard) CancelConfirmation() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.confirmation = ConfirmationNone
}

func (d *Dashboard) ConfirmPlayerDeletion(ctx context.Context) error {
	d.mu.Lock()
	if d.confirmation != ConfirmationDeletePlayer {
		d.mu.Unlock()
		return ErrNoPendingConfirmation
	}
	d.confirmation = ConfirmationNone
	var playerID backend.ID
	if d.state.Player != nil {
		playerID = d.state.Player.ID
	}
	d.mu.Unlock()

	if playerID == "" {
		return ErrNoPlayer
	}

	if err := d.backend.DeletePlayer(ctx, playerID); err != nil {
		d.failed("Could not delete your player profile", err)
		return fmt.Errorf("failed to delete player: %w", err)
	}

	gen := d.begin(ResourcePlayer)
	d.commit(ctx, ResourcePlayer, gen, func(s *State) {
		s.clearPlayer()
	}, func(ctx context.Context) error {
		return errors.Join(d.cache.ClearPlayer(ctx), d.cache.ClearTeam(ctx))
	})

	d.notice(NoticeSuccess, "Player profile deleted")
	return nil
}
