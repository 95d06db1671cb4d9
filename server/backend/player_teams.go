package backend

import (
	"context"
	"fmt"
	"net/url"
)

func (c *Client) GetPendingInvitations(ctx context.Context) ([]PlayerTeam, error) {
	env, err := c.get(ctx, "/user/v1/player-teams/invitations/pending", nil)
	if err != nil {
		return nil, err
	}

	page, err := ParsePage[PlayerTeam](env.Data, env.Meta)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (c *Client) GetPendingJoinRequests(ctx context.Context, teamID ID) ([]PlayerTeam, error) {
	var query url.Values
	if teamID != "" {
		query = url.Values{"team_id": {teamID.String()}}
	}

	env, err := c.get(ctx, "/user/v1/player-teams/join-requests/pending", query)
	if err != nil {
		return nil, err
	}

	page, err := ParsePage[PlayerTeam](env.Data, env.Meta)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (c *Client) AcceptInvitation(ctx context.Context, invitationID ID) error {
	_, err := c.post(ctx, fmt.Sprintf("/user/v1/player-teams/invitations/%s/accept", invitationID), nil)
	return err
}

func (c *Client) RefuseInvitation(ctx context.Context, invitationID ID) error {
	_, err := c.post(ctx, fmt.Sprintf("/user/v1/player-teams/invitations/%s/refuse", invitationID), nil)
	return err
}

func (c *Client) ProcessJoinRequest(ctx context.Context, requestID ID, status JoinRequestStatus) error {
	_, err := c.post(ctx, fmt.Sprintf("/user/v1/player-teams/join-requests/%s/process", requestID), map[string]JoinRequestStatus{
		"status": status,
	})
	return err
}

// InviteRoute is one of the backend routes able to invite a player into a team.
type InviteRoute struct {
	Name   string
	Invite func(ctx context.Context, teamID ID, playerID ID) error
}

// InviteRoutes lists the invite routes in the order they should be tried.
func (c *Client) InviteRoutes() []InviteRoute {
	return []InviteRoute{
		{
			Name: "player-teams/teams/{team}/invite",
			Invite: func(ctx context.Context, teamID ID, playerID ID) error {
				_, err := c.post(ctx, fmt.Sprintf("/user/v1/player-teams/teams/%s/invite", teamID), map[string]ID{
					"player_id": playerID,
				})
				return err
			},
		},
		{
			Name: "teams/{team}/invite/{player}",
			Invite: func(ctx context.Context, teamID ID, playerID ID) error {
				_, err := c.post(ctx, fmt.Sprintf("/user/v1/teams/%s/invite/%s", teamID, playerID), nil)
				return err
			},
		},
		{
			Name: "player-teams/invite",
			Invite: func(ctx context.Context, teamID ID, playerID ID) error {
				_, err := c.post(ctx, "/user/v1/player-teams/invite", map[string]ID{
					"team_id":   teamID,
					"player_id": playerID,
				})
				return err
			},
		},
	}
}
