package backend

import (
	"context"
	"fmt"
)

func (c *Client) GetMyMemberships(ctx context.Context) ([]Membership, error) {
	env, err := c.get(ctx, "/user/v1/academies/memberships", nil)
	if err != nil {
		return nil, err
	}

	page, err := ParsePage[Membership](env.Data, env.Meta)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (c *Client) CancelMembership(ctx context.Context, academyID ID) error {
	_, err := c.delete(ctx, fmt.Sprintf("/user/v1/academies/%s/membership", academyID), nil)
	return err
}

func (c *Client) CancelSubscription(ctx context.Context, academyID ID) error {
	_, err := c.put(ctx, fmt.Sprintf("/user/v1/academies/%s/subscription/cancel", academyID), nil)
	return err
}

func (c *Client) UpdatePlan(ctx context.Context, academyID ID, plan SubscriptionPlan) error {
	_, err := c.put(ctx, fmt.Sprintf("/user/v1/academies/%s/plan", academyID), map[string]SubscriptionPlan{
		"subscription_plan": plan,
	})
	return err
}
