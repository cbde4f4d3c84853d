package api

import (
	"context"
	"net/http"

	"github.com/logiksutra/bookshelf-cli/internal/domain"
)

// Login authenticates with email and password and returns the new
// session. The caller is responsible for persisting it.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	var raw rawAuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password}, &raw, requestOptions{
		op:       "login",
		fallback: "Login failed. Please try again.",
	})
	if err != nil {
		return nil, err
	}

	return &domain.Session{Token: raw.Token, User: raw.User.toDomain()}, nil
}

// Signup registers a new account and returns the established session.
func (c *Client) Signup(ctx context.Context, name, email, password string) (*domain.Session, error) {
	var raw rawAuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/signup", signupRequest{Name: name, Email: email, Password: password}, &raw, requestOptions{
		op:       "signup",
		fallback: "Signup failed. Please try again.",
	})
	if err != nil {
		return nil, err
	}

	return &domain.Session{Token: raw.Token, User: raw.User.toDomain()}, nil
}
