package api

import (
	"context"
	"net/http"

	"github.com/Jurgensen-SJB/supermercado/internal/models"
)

// Login exchanges credentials for the user object. The API owns the
// hashing and session model; this layer only relays the JSON bodies.
func (c *Client) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "login", nil, req, &user); err != nil {
		return nil, err
	}

	user.Name = c.sanitize(user.Name)

	return &user, nil
}

func (c *Client) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "register", nil, req, &user); err != nil {
		return nil, err
	}

	user.Name = c.sanitize(user.Name)

	return &user, nil
}
