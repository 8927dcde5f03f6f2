package api

import (
	"context"
	"net/http"

	"tableflip.dev/dreamlog/pkg/account"
)

// Register creates an account and returns its token and user.
func (c *Client) Register(ctx context.Context, email, username, password string) (*account.AuthResponse, error) {
	in := map[string]string{"email": email, "username": username, "password": password}
	out := &account.AuthResponse{}
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Login exchanges credentials for a token and user.
func (c *Client) Login(ctx context.Context, email, password string) (*account.AuthResponse, error) {
	in := map[string]string{"email": email, "password": password}
	out := &account.AuthResponse{}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Me fetches the user the current token belongs to.
func (c *Client) Me(ctx context.Context) (*account.User, error) {
	out := &account.User{}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ChangePassword updates the password of the current user.
func (c *Client) ChangePassword(ctx context.Context, current, next string) (*account.Message, error) {
	in := map[string]string{"current_password": current, "new_password": next}
	out := &account.Message{}
	if err := c.do(ctx, http.MethodPut, "/auth/change-password", nil, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ChangeUsername renames the current user and returns the updated user.
func (c *Client) ChangeUsername(ctx context.Context, username string) (*account.User, error) {
	in := map[string]string{"username": username}
	out := &account.User{}
	if err := c.do(ctx, http.MethodPut, "/auth/change-username", nil, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteAccount irreversibly deletes the current user and all their dreams.
func (c *Client) DeleteAccount(ctx context.Context) (*account.Message, error) {
	out := &account.Message{}
	if err := c.do(ctx, http.MethodDelete, "/auth/delete-account", nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}
