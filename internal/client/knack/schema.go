package knack

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/mouthpiecer/internal/client/choices"
	"github.com/atinyakov/mouthpiecer/internal/wire"
)

// FetchMakes reads the options of the make field from the mouthpiece object schema.
func (c *Client) FetchMakes(ctx context.Context) ([]string, error) {
	const op = "fetch makes"

	var resp wire.FieldsResponse
	if err := c.do(ctx, op, http.MethodGet, c.url("objects", c.cfg.MouthpieceObject, "fields"), c.accountHeaders(), nil, &resp); err != nil {
		return nil, err
	}
	opts, ok := resp.Options(c.cfg.Fields.Make)
	if !ok {
		return nil, &RequestError{Op: op, Status: http.StatusOK, Err: fmt.Errorf("field %s not in schema", c.cfg.Fields.Make)}
	}
	return opts, nil
}

// MakeEnumeration is FetchMakes that never fails: any error or an empty
// option list yields the one-element fallback.
func (c *Client) MakeEnumeration(ctx context.Context) []string {
	makes, err := c.FetchMakes(ctx)
	if err != nil || len(makes) == 0 {
		c.log.Warn("make enumeration unavailable", zap.Error(err))
		return []string{choices.FallbackMake}
	}
	return makes
}
