package knack

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/atinyakov/mouthpiecer/internal/models"
	"github.com/atinyakov/mouthpiecer/internal/wire"
)

// rowsPerPage is the largest page the service hands out.
const rowsPerPage = 1000

func (c *Client) recordsURL(id string) string {
	if id == "" {
		return c.url("pages", c.cfg.Scene, "views", c.cfg.View, "records")
	}
	return c.url("pages", c.cfg.Scene, "views", c.cfg.View, "records", url.PathEscape(id))
}

// ListRecords fetches every record visible to token, walking the service's
// pages into one snapshot.
func (c *Client) ListRecords(ctx context.Context, token string) ([]models.Mouthpiece, error) {
	var out []models.Mouthpiece
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("rows_per_page", strconv.Itoa(rowsPerPage))

		var resp wire.RecordsPage
		err := c.do(ctx, "list records", http.MethodGet, c.recordsURL("")+"?"+q.Encode(), c.recordHeaders(token), nil, &resp)
		if err != nil {
			return nil, authStatus(err)
		}
		for _, rec := range resp.Records {
			out = append(out, c.cfg.Fields.DecodeMouthpiece(rec))
		}
		if page >= resp.TotalPages || len(resp.Records) == 0 {
			break
		}
	}
	c.log.Debug("records fetched", zap.Int("count", len(out)))
	return out, nil
}

// CreateRecord stores a new mouthpiece; the service assigns its ID.
func (c *Client) CreateRecord(ctx context.Context, token string, m models.Mouthpiece) error {
	err := c.do(ctx, "create record", http.MethodPost, c.recordsURL(""), c.recordHeaders(token),
		c.cfg.Fields.EncodeMouthpiece(m), nil)
	return authStatus(err)
}

// UpdateRecord replaces the fields of the record with the given ID.
func (c *Client) UpdateRecord(ctx context.Context, token, id string, m models.Mouthpiece) error {
	err := c.do(ctx, "update record", http.MethodPut, c.recordsURL(id), c.recordHeaders(token),
		c.cfg.Fields.EncodeMouthpiece(m), nil)
	return authStatus(err)
}

// DeleteRecord removes the record with the given ID.
func (c *Client) DeleteRecord(ctx context.Context, token, id string) error {
	err := c.do(ctx, "delete record", http.MethodDelete, c.recordsURL(id), c.recordHeaders(token), nil, nil)
	return authStatus(err)
}
