package api

import (
	"context"
	"net/http"

	"github.com/riordanpawley/daybook/internal/domain"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session token
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	c.logger.Debug("logging in", "username", username)

	data, err := c.do(ctx, call{
		op:     "login",
		method: http.MethodPost,
		path:   "/api/auth/login",
		body:   loginRequest{Username: username, Password: password},
	})
	if err != nil {
		return "", err
	}

	var resp loginResponse
	if err := decodeObject("login", data, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &domain.APIError{Op: "login", Message: "no token in response"}
	}

	c.logger.Debug("logged in", "username", username)
	return resp.Token, nil
}

// Register creates an account. It does not sign the user in.
func (c *Client) Register(ctx context.Context, fullName, email, password string) error {
	c.logger.Debug("registering account", "email", email)

	_, err := c.do(ctx, call{
		op:     "register",
		method: http.MethodPost,
		path:   "/api/auth/register",
		body:   registerRequest{FullName: fullName, Email: email, Password: password},
	})
	return err
}

// Health checks that the backend is reachable
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, call{op: "health", method: http.MethodGet, path: "/health"})
	return err
}
