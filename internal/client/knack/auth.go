package knack

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/atinyakov/mouthpiecer/internal/models"
	"github.com/atinyakov/mouthpiecer/internal/wire"
)

// Authenticate exchanges credentials for a session token. Any rejection by
// the service is reported as ErrAuth; transport failures as *RequestError.
func (c *Client) Authenticate(ctx context.Context, email, password string) (string, error) {
	const op = "authenticate"

	h := http.Header{}
	h.Set(wire.HeaderAPIKey, c.cfg.APIKey)

	var resp wire.SessionResponse
	err := c.do(ctx, op, http.MethodPost, c.url("applications", c.cfg.AppID, "session"), h,
		wire.SessionRequest{Email: email, Password: password}, &resp)
	if err != nil {
		var rerr *RequestError
		if errors.As(err, &rerr) && rerr.Status != 0 && rerr.Status != http.StatusOK {
			return "", fmt.Errorf("%s: %w", op, ErrAuth)
		}
		return "", err
	}

	token := resp.Session.User.Token
	if token == "" {
		return "", &RequestError{Op: op, Status: http.StatusOK, Err: errors.New("invalid response: no token")}
	}
	return token, nil
}

// CreateUser creates an account with the application's role and an active
// status, then logs in as that account and returns its token.
func (c *Client) CreateUser(ctx context.Context, u models.NewUser) (string, error) {
	u.Status = models.StatusActive
	u.Role = c.cfg.UserRole

	err := c.do(ctx, "create user", http.MethodPost, c.url("objects", c.cfg.UserObject, "records"),
		c.accountHeaders(), c.cfg.Fields.EncodeUser(u), nil)
	if err != nil {
		return "", err
	}
	return c.Authenticate(ctx, u.Email, u.Password)
}
