package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
)

func NewSession(store Store, id string) *Session {
	return &Session{
		store: store,
		id:    id,
		locks: make(map[Group]*sync.Mutex),
	}
}

// Session is the typed view of one session's cache. Writes to a group are serialised.
type Session struct {
	store   Store
	id      string
	locksMu sync.Mutex
	locks   map[Group]*sync.Mutex
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) lock(group Group) func() {
	s.locksMu.Lock()
	mu, ok := s.locks[group]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[group] = mu
	}
	s.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

func (s *Session) set(ctx context.Context, group Group, values map[string]string) error {
	defer s.lock(group)()
	return s.store.SetGroup(ctx, s.id, group, values)
}

func (s *Session) clear(ctx context.Context, group Group) error {
	defer s.lock(group)()
	return s.store.ClearGroups(ctx, s.id, group)
}

func (s *Session) get(ctx context.Context, group Group) (map[string]string, bool, error) {
	defer s.lock(group)()
	return s.store.Group(ctx, s.id, group)
}

// Clear drops every group of the session.
func (s *Session) Clear(ctx context.Context) error {
	for _, group := range AllGroups {
		unlock := s.lock(group)
		defer unlock()
	}
	return s.store.ClearSession(ctx, s.id)
}

func (s *Session) SetUser(ctx context.Context, user json.RawMessage) error {
	return s.set(ctx, GroupUser, map[string]string{
		KeyUser: string(user),
	})
}

func (s *Session) User(ctx context.Context) (json.RawMessage, bool, error) {
	values, ok, err := s.get(ctx, GroupUser)
	if err != nil || !ok {
		return nil, false, err
	}
	return json.RawMessage(values[KeyUser]), true, nil
}

type PlayerEntry struct {
	ID       string
	Position string
	Rating   float64
}

func (s *Session) SetPlayer(ctx context.Context, entry PlayerEntry) error {
	return s.set(ctx, GroupPlayer, map[string]string{
		KeyHasPlayer:      "true",
		KeyPlayerID:       entry.ID,
		KeyPlayerPosition: entry.Position,
		KeyPlayerRating:   strconv.FormatFloat(entry.Rating, 'f', -1, 64),
	})
}

func (s *Session) Player(ctx context.Context) (PlayerEntry, bool, error) {
	values, ok, err := s.get(ctx, GroupPlayer)
	if err != nil || !ok || values[KeyHasPlayer] != "true" {
		return PlayerEntry{}, false, err
	}
	rating, _ := strconv.ParseFloat(values[KeyPlayerRating], 64)
	return PlayerEntry{
		ID:       values[KeyPlayerID],
		Position: values[KeyPlayerPosition],
		Rating:   rating,
	}, true, nil
}

func (s *Session) ClearPlayer(ctx context.Context) error {
	return s.clear(ctx, GroupPlayer)
}

type TeamEntry struct {
	ID        string
	Teams     json.RawMessage
	IsCaptain bool
}

func (s *Session) SetTeam(ctx context.Context, entry TeamEntry) error {
	teams := string(entry.Teams)
	if teams == "" {
		teams = "[]"
	}
	return s.set(ctx, GroupTeam, map[string]string{
		KeyHasTeam:   "true",
		KeyTeamID:    entry.ID,
		KeyTeams:     teams,
		KeyIsCaptain: strconv.FormatBool(entry.IsCaptain),
	})
}

func (s *Session) Team(ctx context.Context) (TeamEntry, bool, error) {
	values, ok, err := s.get(ctx, GroupTeam)
	if err != nil || !ok || values[KeyHasTeam] != "true" {
		return TeamEntry{}, false, err
	}
	isCaptain, _ := strconv.ParseBool(values[KeyIsCaptain])
	return TeamEntry{
		ID:        values[KeyTeamID],
		Teams:     json.RawMessage(values[KeyTeams]),
		IsCaptain: isCaptain,
	}, true, nil
}

func (s *Session) ClearTeam(ctx context.Context) error {
	return s.clear(ctx, GroupTeam)
}

type MembershipEntry struct {
	FirstMemberID string
	Memberships   json.RawMessage
}

func (s *Session) SetMemberships(ctx context.Context, entry MembershipEntry) error {
	memberships := string(entry.Memberships)
	if memberships == "" {
		memberships = "[]"
	}
	return s.set(ctx, GroupMembership, map[string]string{
		KeyHasMembership: "true",
		KeyMemberships:   memberships,
		KeyMemberID:      entry.FirstMemberID,
	})
}

func (s *Session) Memberships(ctx context.Context) (MembershipEntry, bool, error) {
	values, ok, err := s.get(ctx, GroupMembership)
	if err != nil || !ok || values[KeyHasMembership] != "true" {
		return MembershipEntry{}, false, err
	}
	return MembershipEntry{
		FirstMemberID: values[KeyMemberID],
		Memberships:   json.RawMessage(values[KeyMemberships]),
	}, true, nil
}

func (s *Session) ClearMemberships(ctx context.Context) error {
	return s.clear(ctx, GroupMembership)
}

// Keys returns every key currently present for the session, useful to assert that no group is
// half written.
func (s *Session) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	for _, group := range AllGroups {
		values, ok, err := s.get(ctx, group)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		for _, key := range group.Keys() {
			if _, present := values[key]; present {
				keys = append(keys, key)
			}
		}
	}
	return keys, nil
}
