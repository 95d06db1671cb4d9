package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

func (c *Client) GetProfile(ctx context.Context) (*User, error) {
	env, err := c.get(ctx, "/user/v1/profile", nil)
	if err != nil {
		return nil, err
	}

	data := unwrapKey(env.Data, "user")
	if len(data) == 0 || string(data) == "null" {
		return nil, fmt.Errorf("profile: %w", ErrNotFound)
	}

	var user User
	if err = json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) error {
	_, err := c.put(ctx, "/user/v1/updateProfile", update)
	return err
}

func (c *Client) ChangePassword(ctx context.Context, change PasswordChange) error {
	_, err := c.put(ctx, "/user/v1/changePassword", change)
	return err
}

func (c *Client) GetActivityHistory(ctx context.Context) ([]Activity, error) {
	env, err := c.get(ctx, "/user/v1/activityHistory", nil)
	if err != nil {
		return nil, err
	}

	page, err := ParsePage[Activity](env.Data, env.Meta)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (c *Client) DeleteAccount(ctx context.Context, accountID ID, password string) error {
	_, err := c.delete(ctx, fmt.Sprintf("/user/v1/comptes/%s/deleteAccount", accountID), map[string]string{
		"password": password,
	})
	return err
}

// unwrapKey returns data[key] when data is an object holding that key, data otherwise.
func unwrapKey(data json.RawMessage, key string) json.RawMessage {
	data = bytes.TrimSpace(data)
	if !isObject(data) {
		return data
	}
	for _, entry := range objectEntries(data) {
		if entry.key == key && isObject(entry.value) {
			return entry.value
		}
	}
	return data
}
