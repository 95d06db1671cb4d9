package cache

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

var (
	ErrPartialGroup = errors.New("cache group must be written with all of its keys")
	ErrUnknownGroup = errors.New("unknown cache group")
)

// Group is a set of keys that is always written or cleared together.
type Group string

const (
	GroupUser       Group = "user"
	GroupPlayer     Group = "player"
	GroupTeam       Group = "team"
	GroupMembership Group = "membership"
)

const (
	KeyUser = "user"

	KeyHasPlayer      = "has_player"
	KeyPlayerID       = "id_player"
	KeyPlayerPosition = "player_position"
	KeyPlayerRating   = "player_rating"

	KeyHasTeam   = "has_team"
	KeyTeamID    = "id_teams"
	KeyTeams     = "teams"
	KeyIsCaptain = "is_captain"

	KeyHasMembership = "has_membership"
	KeyMemberships   = "memberships"
	KeyMemberID      = "id_member"
)

var groupKeys = map[Group][]string{
	GroupUser:       {KeyUser},
	GroupPlayer:     {KeyHasPlayer, KeyPlayerID, KeyPlayerPosition, KeyPlayerRating},
	GroupTeam:       {KeyHasTeam, KeyTeamID, KeyTeams, KeyIsCaptain},
	GroupMembership: {KeyHasMembership, KeyMemberships, KeyMemberID},
}

// AllGroups lists every group, in a stable order.
var AllGroups = []Group{GroupUser, GroupPlayer, GroupTeam, GroupMembership}

func (g Group) Keys() []string {
	return slices.Clone(groupKeys[g])
}

func (g Group) Valid() bool {
	_, ok := groupKeys[g]
	return ok
}

// GroupOf returns the group owning key.
func GroupOf(key string) (Group, bool) {
	for _, group := range AllGroups {
		if slices.Contains(groupKeys[group], key) {
			return group, true
		}
	}
	return "", false
}

// ValidateGroup checks that values holds exactly the keys of group.
func ValidateGroup(group Group, values map[string]string) error {
	keys, ok := groupKeys[group]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGroup, group)
	}
	if len(values) != len(keys) {
		return fmt.Errorf("%w: %s expects %d keys, got %d", ErrPartialGroup, group, len(keys), len(values))
	}
	for _, key := range keys {
		if _, ok = values[key]; !ok {
			return fmt.Errorf("%w: %s is missing %q", ErrPartialGroup, group, key)
		}
	}
	return nil
}

// Store is an ephemeral, session scoped key/value store with group atomic writes.
type Store interface {
	// SetGroup replaces every key of group. values must hold exactly the group's keys.
	SetGroup(ctx context.Context, sessionID string, group Group, values map[string]string) error
	// Group returns the values of group, or false when the group is absent.
	Group(ctx context.Context, sessionID string, group Group) (map[string]string, bool, error)
	ClearGroups(ctx context.Context, sessionID string, groups ...Group) error
	ClearSession(ctx context.Context, sessionID string) error
}
