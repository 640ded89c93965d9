// Package knack is the client of the hosted record service. It maps each
// remote endpoint to one method and never retries or caches.
package knack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/atinyakov/mouthpiecer/internal/config"
	"github.com/atinyakov/mouthpiecer/internal/wire"
)

// ErrAuth is returned for rejected credentials and missing or expired tokens.
var ErrAuth = errors.New("invalid credentials")

// RequestError is returned for transport failures and non-success responses.
type RequestError struct {
	Op     string
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Config selects the application, its schema and the wire field mapping.
type Config struct {
	BaseURL          string
	AppID            string
	APIKey           string
	Scene            string
	View             string
	UserObject       string
	MouthpieceObject string
	UserRole         string
	Fields           wire.FieldMap
}

// ConfigFromOptions extracts the client settings from the loaded options.
func ConfigFromOptions(o *config.Options) Config {
	return Config{
		BaseURL:          o.BaseURL,
		AppID:            o.AppID,
		APIKey:           o.APIKey,
		Scene:            o.Scene,
		View:             o.View,
		UserObject:       o.UserObject,
		MouthpieceObject: o.MouthpieceObject,
		UserRole:         o.UserRole,
		Fields:           o.Fields,
	}
}

// Client calls the record service.
type Client struct {
	http *http.Client
	cfg  Config
	log  *zap.Logger
}

// New returns a client using httpClient for all calls.
func New(httpClient *http.Client, cfg Config, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{http: httpClient, cfg: cfg, log: log}
}

// NewFromOptions builds the HTTP transport and the client from the loaded options.
func NewFromOptions(o *config.Options, log *zap.Logger) (*Client, error) {
	hc, err := NewHTTPClient(o.CAFile, o.Timeout)
	if err != nil {
		return nil, err
	}
	return New(hc, ConfigFromOptions(o), log), nil
}

// recordHeaders authenticate page/view scoped calls with the user token.
func (c *Client) recordHeaders(token string) http.Header {
	h := http.Header{}
	h.Set(wire.HeaderAppID, c.cfg.AppID)
	h.Set(wire.HeaderAPIKey, wire.KnackAPIKey)
	h.Set(wire.HeaderAuthorization, token)
	return h
}

// accountHeaders authenticate object scoped calls with the API key.
func (c *Client) accountHeaders() http.Header {
	h := http.Header{}
	h.Set(wire.HeaderAppID, c.cfg.AppID)
	h.Set(wire.HeaderAPIKey, c.cfg.APIKey)
	return h
}

func (c *Client) url(parts ...string) string {
	return c.cfg.BaseURL + "/" + strings.Join(parts, "/")
}

// do sends a JSON request and decodes a JSON response into out (when non-nil).
func (c *Client) do(ctx context.Context, op, method, url string, headers http.Header, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Op: op, Err: err}
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header[k] = v
	}

	c.log.Debug("request", zap.String("op", op), zap.String("method", method), zap.String("url", url))
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("op", op), zap.Error(err))
		return &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Warn("request rejected",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", data),
		)
		return &RequestError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("server error: %s", strings.TrimSpace(string(data)))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("invalid response: %w", err)}
	}
	return nil
}

// authStatus turns 401/403 responses of token-scoped calls into ErrAuth.
func authStatus(err error) error {
	var rerr *RequestError
	if errors.As(err, &rerr) && (rerr.Status == http.StatusUnauthorized || rerr.Status == http.StatusForbidden) {
		return fmt.Errorf("%s: %w", rerr.Op, ErrAuth)
	}
	return err
}
