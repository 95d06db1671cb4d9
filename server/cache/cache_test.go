package cache

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*Session, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore(time.Hour)
	t.Cleanup(store.Close)
	return NewSession(store, "session-1"), store
}

func TestSetGroupRejectsPartialValues(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()

	err := store.SetGroup(context.Background(), "s", GroupTeam, map[string]string{
		KeyHasTeam: "true",
	})
	assert.ErrorIs(t, err, ErrPartialGroup)

	err = store.SetGroup(context.Background(), "s", GroupTeam, map[string]string{
		KeyHasTeam: "true", KeyTeamID: "3", KeyTeams: "[]", KeyPlayerID: "1",
	})
	assert.ErrorIs(t, err, ErrPartialGroup)

	_, ok, err := store.Group(context.Background(), "s", GroupTeam)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, store.SetGroup(context.Background(), "s", Group("nope"), nil), ErrUnknownGroup)
}

func TestSessionTeamRoundTrip(t *testing.T) {
	ctx := context.Background()
	session, _ := newTestSession(t)

	require.NoError(t, session.SetTeam(ctx, TeamEntry{
		ID:        "3",
		Teams:     json.RawMessage(`[{"id_teams":3}]`),
		IsCaptain: true,
	}))

	team, ok, err := session.Team(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "3", team.ID)
	assert.True(t, team.IsCaptain)
	assert.JSONEq(t, `[{"id_teams":3}]`, string(team.Teams))

	keys, err := session.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{KeyHasTeam, KeyTeamID, KeyTeams, KeyIsCaptain}, keys)

	require.NoError(t, session.ClearTeam(ctx))
	keys, err = session.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestSessionPlayerAndMemberships(t *testing.T) {
	ctx := context.Background()
	session, _ := newTestSession(t)

	require.NoError(t, session.SetPlayer(ctx, PlayerEntry{ID: "5", Position: "attaquant", Rating: 4.5}))
	require.NoError(t, session.SetMemberships(ctx, MembershipEntry{FirstMemberID: "11"}))

	player, ok, err := session.Player(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, PlayerEntry{ID: "5", Position: "attaquant", Rating: 4.5}, player)

	memberships, ok, err := session.Memberships(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "11", memberships.FirstMemberID)
	assert.JSONEq(t, `[]`, string(memberships.Memberships))

	require.NoError(t, session.Clear(ctx))
	_, ok, err = session.Player(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConcurrentGroupWritesStayWhole(t *testing.T) {
	ctx := context.Background()
	session, _ := newTestSession(t)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				_ = session.SetTeam(ctx, TeamEntry{ID: "3", IsCaptain: i%4 == 0})
			} else {
				_ = session.ClearTeam(ctx)
			}
		}()
	}
	wg.Wait()

	keys, err := session.Keys(ctx)
	require.NoError(t, err)
	assert.True(t, len(keys) == 0 || len(keys) == 4, "team group is never half written: %v", keys)
}

func TestMemoryStoreExpires(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Millisecond)
	defer store.Close()

	session := NewSession(store, "short")
	require.NoError(t, session.SetPlayer(ctx, PlayerEntry{ID: "1"}))
	time.Sleep(5 * time.Millisecond)

	_, ok, err := session.Player(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGroupOf(t *testing.T) {
	group, ok := GroupOf(KeyIsCaptain)
	assert.True(t, ok)
	assert.Equal(t, GroupTeam, group)

	_, ok = GroupOf("nope")
	assert.False(t, ok)
}
