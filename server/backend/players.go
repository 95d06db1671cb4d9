package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

func (c *Client) GetAllPlayers(ctx context.Context, query url.Values) ([]Player, error) {
	env, err := c.get(ctx, "/user/v1/players", query)
	if err != nil {
		return nil, err
	}

	page, err := ParsePage[Player](env.Data, env.Meta)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (c *Client) GetPlayer(ctx context.Context, playerID ID) (*Player, error) {
	env, err := c.get(ctx, fmt.Sprintf("/user/v1/players/%s", playerID), nil)
	if err != nil {
		return nil, err
	}
	return decodePlayer(env)
}

func (c *Client) CreatePlayer(ctx context.Context, input PlayerInput) (*Player, error) {
	env, err := c.post(ctx, "/user/v1/players", input)
	if err != nil {
		return nil, err
	}
	return decodePlayer(env)
}

func (c *Client) UpdatePlayer(ctx context.Context, playerID ID, input PlayerInput) (*Player, error) {
	env, err := c.put(ctx, fmt.Sprintf("/user/v1/players/%s", playerID), input)
	if err != nil {
		return nil, err
	}
	return decodePlayer(env)
}

func (c *Client) DeletePlayer(ctx context.Context, playerID ID) error {
	_, err := c.delete(ctx, fmt.Sprintf("/user/v1/players/%s", playerID), nil)
	return err
}

// decodePlayer returns nil without error when the backend acknowledged without a body.
func decodePlayer(env *Envelope) (*Player, error) {
	data := unwrapKey(env.Data, "player")
	if len(data) == 0 || string(data) == "null" || !isObject(data) {
		return nil, nil
	}

	var player Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, fmt.Errorf("failed to decode player: %w", err)
	}
	if player.ID == "" {
		return nil, nil
	}
	return &player, nil
}
