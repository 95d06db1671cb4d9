package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

func (c *Client) GetPlayerRequests(ctx context.Context, q RequestQuery) (Page[PlayerRequest], error) {
	query := url.Values{
		"page":     {strconv.Itoa(max(q.Page, 1))},
		"per_page": {strconv.Itoa(max(q.PerPage, 1))},
	}
	if q.Status != "" {
		query.Set("status", q.Status)
	}
	if q.Search != "" {
		query.Set("search", q.Search)
	}

	env, err := c.get(ctx, "/user/v1/player-requests", query)
	if err != nil {
		return Page[PlayerRequest]{Pages: 1}, err
	}

	return ParsePage[PlayerRequest](env.Data, env.Meta)
}

func (c *Client) CreateRequest(ctx context.Context, input RequestInput) error {
	_, err := c.post(ctx, "/user/v1/player-requests", input)
	return err
}

func (c *Client) AcceptRequest(ctx context.Context, requestID ID) error {
	_, err := c.put(ctx, fmt.Sprintf("/user/v1/player-requests/%s/accept", requestID), nil)
	return err
}

func (c *Client) RejectRequest(ctx context.Context, requestID ID) error {
	_, err := c.put(ctx, fmt.Sprintf("/user/v1/player-requests/%s/reject", requestID), nil)
	return err
}

func (c *Client) CancelRequest(ctx context.Context, requestID ID) error {
	_, err := c.put(ctx, fmt.Sprintf("/user/v1/player-requests/%s/cancel", requestID), nil)
	return err
}

func (c *Client) DeletePlayerRequest(ctx context.Context, requestID ID) error {
	_, err := c.delete(ctx, fmt.Sprintf("/user/v1/player-requests/%s", requestID), nil)
	return err
}
