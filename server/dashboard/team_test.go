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

func loadedCaptain(t *testing.T) *testDashboard {
	t.Helper()
	td := newTestDashboard(t, Options{})
	td.withPlayer()
	td.withTeam(testAccountID)
	_ = td.Load(context.Background())
	require.True(t, td.Snapshot().IsCaptain)
	return td
}

func TestInviteToTeam_FallsBackToNextRoute(t *testing.T) {
	td := loadedCaptain(t)
	td.fake.reply("POST /user/v1/player-teams/teams/3/invite", http.StatusInternalServerError, map[string]any{
		"success": false,
		"message": "route disabled",
	})
	td.fake.reply("POST /user/v1/teams/3/invite/7", http.StatusOK, map[string]any{"success": true})
	teamCalls := td.fake.count("GET /user/v1/teams/my-team")

	err := td.InviteToTeam(context.Background(), backend.ID("7"))
	require.NoError(t, err)

	assert.Equal(t, 1, td.fake.count("POST /user/v1/player-teams/teams/3/invite"))
	assert.Equal(t, 1, td.fake.count("POST /user/v1/teams/3/invite/7"))
	assert.Zero(t, td.fake.count("POST /user/v1/player-teams/invite"))
	assert.Equal(t, teamCalls+1, td.fake.count("GET /user/v1/teams/my-team"))

	var body map[string]any
	td.fake.body(t, "POST /user/v1/player-teams/teams/3/invite", &body)
	assert.EqualValues(t, 7, body["player_id"])

	notices := td.Notices()
	require.NotEmpty(t, notices)
	assert.Equal(t, NoticeSuccess, notices[len(notices)-1].Level)
	assert.Empty(t, td.notifier.all())
}

func TestInviteToTeam_AllRoutesFail(t *testing.T) {
	td := loadedCaptain(t)
	teamCalls := td.fake.count("GET /user/v1/teams/my-team")

	err := td.InviteToTeam(context.Background(), backend.ID("7"))
	require.Error(t, err)
	assert.ErrorIs(t, err, backend.ErrNotFound)
	assert.Contains(t, err.Error(), "player-teams/invite")

	assert.Equal(t, 1, td.fake.count("POST /user/v1/player-teams/invite"))
	assert.Equal(t, teamCalls, td.fake.count("GET /user/v1/teams/my-team"))
	assert.Len(t, td.notifier.all(), 1)
}

func TestInviteToTeam_RejectsPathLikePlayerID(t *testing.T) {
	td := loadedCaptain(t)
	before := td.fake.total()

	for _, id := range []backend.ID{"7/../../../../comptes/1/deleteAccount", "..", "7?x=1"} {
		err := td.InviteToTeam(context.Background(), id)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr, string(id))
		assert.Equal(t, "player_id", validationErr.Field)
	}
	assert.Equal(t, before, td.fake.total())
}

func TestTeamMutations_RequireCaptain(t *testing.T) {
	td := newTestDashboard(t, Options{})
	td.withPlayer()
	td.withTeam(99)
	ctx := context.Background()
	_ = td.Load(ctx)
	before := td.fake.total()

	assert.ErrorIs(t, td.UpdateTeam(ctx, TeamForm{StartTime: "18:00", FinishTime: "20:00"}), ErrNotCaptain)
	assert.ErrorIs(t, td.DeleteTeam(ctx), ErrNotCaptain)
	assert.ErrorIs(t, td.RemoveTeamMember(ctx, "8", ""), ErrNotCaptain)
	assert.ErrorIs(t, td.InviteToTeam(ctx, "7"), ErrNotCaptain)
	assert.ErrorIs(t, td.ProcessJoinRequest(ctx, "70", backend.JoinRequestAccepted), ErrNotCaptain)
	assert.Equal(t, before, td.fake.total())
}

func TestUpdateTeam(t *testing.T) {
	t.Run("times are required", func(t *testing.T) {
		td := loadedCaptain(t)
		before := td.fake.total()

		err := td.UpdateTeam(context.Background(), TeamForm{StartTime: "18:00"})
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "finishing_time", validationErr.Field)
		assert.Equal(t, before, td.fake.total())
	})

	t.Run("keeps counters", func(t *testing.T) {
		td := loadedCaptain(t)
		td.fake.reply("PUT /user/v1/teams/3", http.StatusOK, map[string]any{"success": true})

		err := td.UpdateTeam(context.Background(), TeamForm{StartTime: "19", FinishTime: "21:30"})
		require.NoError(t, err)

		var body backend.TeamUpdate
		td.fake.body(t, "PUT /user/v1/teams/3", &body)
		assert.Equal(t, "19:00:00", body.StartTime)
		assert.Equal(t, "21:30:00", body.FinishTime)
		assert.Equal(t, backend.ID("1"), body.Captain)
		assert.Equal(t, 12, body.TotalMatches)
		assert.Equal(t, 1, body.Misses)
		assert.Equal(t, 4, body.InvitesAccepted)
		assert.Equal(t, 2, body.InvitesRefused)
		assert.Equal(t, 6, body.TotalInvites)
		assert.InDelta(t, 3.5, body.Rating, 0.001)

		state := td.Snapshot()
		require.NotNil(t, state.Team)
		assert.Equal(t, "19:00:00", state.Team.StartTime)
		assert.True(t, state.IsCaptain)
	})

	t.Run("transfers captaincy", func(t *testing.T) {
		td := loadedCaptain(t)
		td.fake.reply("PUT /user/v1/teams/3", http.StatusOK, map[string]any{"success": true})

		err := td.UpdateTeam(context.Background(), TeamForm{StartTime: "18:00", FinishTime: "20:00", Captain: "9"})
		require.NoError(t, err)

		state := td.Snapshot()
		assert.False(t, state.IsCaptain)
		assert.Nil(t, state.JoinRequests)

		entry, found, err := td.session.Team(context.Background())
		require.NoError(t, err)
		require.True(t, found)
		assert.False(t, entry.IsCaptain)
	})
}

func TestDeleteTeam_ClearsTeamGroup(t *testing.T) {
	td := loadedCaptain(t)
	td.fake.reply("DELETE /user/v1/teams/3", http.StatusOK, map[string]any{"success": true})

	require.NoError(t, td.DeleteTeam(context.Background()))

	assert.Nil(t, td.Snapshot().Team)
	for _, key := range cache.GroupTeam.Keys() {
		assert.NotContains(t, td.keys(t), key)
	}
}

func TestRemoveTeamMember(t *testing.T) {
	td := loadedCaptain(t)
	td.fake.reply("DELETE /user/v1/teams/3/members/8", http.StatusOK, map[string]any{"success": true})

	require.NoError(t, td.RemoveTeamMember(context.Background(), "8", " no show "))

	var body backend.RemoveMember
	td.fake.body(t, "DELETE /user/v1/teams/3/members/8", &body)
	assert.Equal(t, backend.ID("1"), body.Captain)
	assert.Equal(t, "no show", body.Reason)
}

func TestJoinTeam_RequiresPlayer(t *testing.T) {
	td := newTestDashboard(t, Options{})
	assert.ErrorIs(t, td.JoinTeam(context.Background(), "3"), ErrNoPlayer)
	assert.Zero(t, td.fake.total())
}

func TestInvitations(t *testing.T) {
	td := newTestDashboard(t, Options{})
	td.withPlayer()
	td.fake.reply("GET /user/v1/teams/my-team", http.StatusOK, map[string]any{
		"success": false,
		"message": "Player does not belong to any team",
	})
	td.fake.reply("GET /user/v1/player-teams/invitations/pending", http.StatusOK, envelope([]map[string]any{
		{"id": 21, "player_id": testPlayerID, "team_id": 3, "status": "pending", "type": "invitation"},
		{"id": 22, "player_id": testPlayerID, "team_id": 4, "status": "pending", "type": "invitation"},
	}))
	ctx := context.Background()
	_ = td.Load(ctx)
	require.Len(t, td.Snapshot().Invitations, 2)

	td.fake.reply("POST /user/v1/player-teams/invitations/21/accept", http.StatusOK, map[string]any{"success": true})
	td.fake.reply("GET /user/v1/player-teams/invitations/pending", http.StatusOK, envelope([]map[string]any{}))
	td.withTeam(99)

	require.NoError(t, td.AcceptInvitation(ctx, "21"))

	state := td.Snapshot()
	assert.Empty(t, state.Invitations)
	require.NotNil(t, state.Team)
	assert.Equal(t, backend.ID("3"), state.Team.ID)
}

func TestProcessJoinRequest(t *testing.T) {
	td := loadedCaptain(t)
	ctx := context.Background()

	err := td.ProcessJoinRequest(ctx, "70", backend.JoinRequestStatus("maybe"))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	td.fake.reply("POST /user/v1/player-teams/join-requests/70/process", http.StatusOK, map[string]any{"success": true})
	require.NoError(t, td.ProcessJoinRequest(ctx, "70", backend.JoinRequestRefused))

	var body map[string]string
	td.fake.body(t, "POST /user/v1/player-teams/join-requests/70/process", &body)
	assert.Equal(t, "refused", body["status"])
}
