package dashboard

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topi314/academy-dashboard/server/backend"
	"github.com/topi314/academy-dashboard/server/cache"
)

func TestCreatePlayer(t *testing.T) {
	td := newTestDashboard(t, Options{})
	td.fake.reply("GET /user/v1/profile", http.StatusOK, envelope(map[string]any{"id_compte": testAccountID}))
	ctx := context.Background()
	_ = td.Load(ctx)
	require.Nil(t, td.Snapshot().Player)

	err := td.CreatePlayer(ctx, PlayerForm{StartTime: "18:00"})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "position", validationErr.Field)

	err = td.CreatePlayer(ctx, PlayerForm{Position: "striker", StartTime: "25:00"})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "starting_time", validationErr.Field)
	assert.Zero(t, td.fake.count("POST /user/v1/players"))

	td.fake.reply("POST /user/v1/players", http.StatusCreated, envelope(map[string]any{
		"player": map[string]any{"id_player": 12, "id_compte": testAccountID, "position": "striker", "rating": 0},
	}))
	require.NoError(t, td.CreatePlayer(ctx, PlayerForm{Position: "striker", StartTime: "18", FinishTime: "19:30"}))

	var body backend.PlayerInput
	td.fake.body(t, "POST /user/v1/players", &body)
	assert.Equal(t, backend.ID("1"), body.AccountID)
	assert.Equal(t, "18:00:00", body.StartTime)
	assert.Equal(t, "19:30:00", body.FinishTime)

	state := td.Snapshot()
	require.NotNil(t, state.Player)
	assert.Equal(t, backend.ID("12"), state.Player.ID)

	entry, found, err := td.session.Player(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "12", entry.ID)

	assert.ErrorIs(t, td.CreatePlayer(ctx, PlayerForm{Position: "striker"}), ErrPlayerExists)
}

func TestUpdatePlayer_WithoutBody(t *testing.T) {
	td := newTestDashboard(t, Options{})
	td.withPlayer()
	ctx := context.Background()
	require.NoError(t, td.Refresh(ctx, ResourceProfile))
	require.NoError(t, td.Refresh(ctx, ResourcePlayer))

	td.fake.reply("PUT /user/v1/players/5", http.StatusOK, map[string]any{"success": true, "message": "updated"})
	require.NoError(t, td.UpdatePlayer(ctx, PlayerForm{Position: "defender", StartTime: "7:5"}))

	state := td.Snapshot()
	require.NotNil(t, state.Player)
	assert.Equal(t, "defender", state.Player.Position)
	assert.Equal(t, "07:05:00", state.Player.StartTime)

	entry, _, err := td.session.Player(ctx)
	require.NoError(t, err)
	assert.Equal(t, "defender", entry.Position)
}

func TestPlayerDeletion_NeedsConfirmation(t *testing.T) {
	td := loadedCaptain(t)
	ctx := context.Background()
	td.fake.reply("DELETE /user/v1/players/5", http.StatusOK, map[string]any{"success": true})

	assert.ErrorIs(t, td.ConfirmPlayerDeletion(ctx), ErrNoPendingConfirmation)
	assert.Zero(t, td.fake.count("DELETE /user/v1/players/5"))

	require.NoError(t, td.RequestPlayerDeletion())
	assert.Equal(t, ConfirmationDeletePlayer, td.Snapshot().Confirmation)
	td.CancelConfirmation()
	assert.ErrorIs(t, td.ConfirmPlayerDeletion(ctx), ErrNoPendingConfirmation)

	require.NoError(t, td.RequestPlayerDeletion())
	require.NoError(t, td.ConfirmPlayerDeletion(ctx))
	assert.Equal(t, 1, td.fake.count("DELETE /user/v1/players/5"))

	state := td.Snapshot()
	assert.Nil(t, state.Player)
	assert.Nil(t, state.Team)
	assert.Equal(t, ConfirmationNone, state.Confirmation)

	keys := td.keys(t)
	for _, group := range []cache.Group{cache.GroupPlayer, cache.GroupTeam} {
		for _, key := range group.Keys() {
			assert.NotContains(t, keys, key)
		}
	}
}
