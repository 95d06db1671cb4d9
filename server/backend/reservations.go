package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

func (c *Client) GetUpcomingReservations(ctx context.Context) ([]Reservation, error) {
	env, err := c.get(ctx, "/user/v1/reservations/upcoming", nil)
	if err != nil {
		return nil, err
	}

	page, err := ParsePage[Reservation](env.Data, env.Meta)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (c *Client) GetReservationHistory(ctx context.Context, q HistoryQuery) (Page[Reservation], error) {
	query := url.Values{
		"page":     {strconv.Itoa(max(q.Page, 1))},
		"per_page": {strconv.Itoa(max(q.PerPage, 1))},
		"past":     {"true"},
	}
	if q.Status != "" {
		query.Set("etat", q.Status)
	}
	if q.Search != "" {
		query.Set("search", q.Search)
	}

	env, err := c.get(ctx, "/user/v1/reservations/history", query)
	if err != nil {
		return Page[Reservation]{Pages: 1}, err
	}

	return ParsePage[Reservation](env.Data, env.Meta)
}

func (c *Client) CancelReservation(ctx context.Context, reservationID ID) error {
	_, err := c.put(ctx, fmt.Sprintf("/user/v1/reservations/%s/cancel", reservationID), nil)
	return err
}

func (c *Client) DeleteReservation(ctx context.Context, reservationID ID) error {
	_, err := c.delete(ctx, fmt.Sprintf("/user/v1/reservations/%s", reservationID), nil)
	return err
}
