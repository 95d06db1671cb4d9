package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// GetMyTeam returns the teams of a player, first one being the current team. A player without a
// team yields ErrNoTeam.
func (c *Client) GetMyTeam(ctx context.Context, playerID ID, include string) ([]Team, error) {
	query := url.Values{"player_id": {playerID.String()}}
	if include != "" {
		query.Set("include", include)
	}

	env, err := c.get(ctx, "/user/v1/teams/my-team", query)
	if err != nil {
		return nil, err
	}

	data := unwrapKey(env.Data, "team")
	if isObject(data) {
		var team Team
		if err = json.Unmarshal(data, &team); err != nil {
			return nil, fmt.Errorf("failed to decode team: %w", err)
		}
		if team.ID == "" {
			return nil, fmt.Errorf("my team: %w", ErrNoTeam)
		}
		return []Team{team}, nil
	}

	page, err := ParsePage[Team](data, env.Meta)
	if err != nil {
		return nil, err
	}
	if len(page.Items) == 0 {
		return nil, fmt.Errorf("my team: %w", ErrNoTeam)
	}
	return page.Items, nil
}

func (c *Client) UpdateTeam(ctx context.Context, teamID ID, update TeamUpdate) error {
	_, err := c.put(ctx, fmt.Sprintf("/user/v1/teams/%s", teamID), update)
	return err
}

func (c *Client) DeleteTeam(ctx context.Context, teamID ID) error {
	_, err := c.delete(ctx, fmt.Sprintf("/user/v1/teams/%s", teamID), nil)
	return err
}

func (c *Client) JoinTeam(ctx context.Context, teamID ID) error {
	_, err := c.post(ctx, fmt.Sprintf("/user/v1/teams/%s/join", teamID), nil)
	return err
}

func (c *Client) RemoveTeamMember(ctx context.Context, teamID ID, playerID ID, body RemoveMember) error {
	_, err := c.delete(ctx, fmt.Sprintf("/user/v1/teams/%s/members/%s", teamID, playerID), body)
	return err
}
