package knack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/mouthpiecer/internal/models"
	"github.com/atinyakov/mouthpiecer/internal/wire"
)

func assertRecordHeaders(t *testing.T, r *http.Request) {
	t.Helper()
	assert.Equal(t, "app1", r.Header.Get(wire.HeaderAppID))
	assert.Equal(t, wire.KnackAPIKey, r.Header.Get(wire.HeaderAPIKey))
	assert.Equal(t, "tok", r.Header.Get(wire.HeaderAuthorization))
}

func TestListRecords_WalksPages(t *testing.T) {
	fm := wire.DefaultFieldMap()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assertRecordHeaders(t, r)
		assert.Equal(t, "/v1/pages/scene_18/views/view_18/records", r.URL.Path)
		assert.Equal(t, "1000", r.URL.Query().Get("rows_per_page"))

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		rec := fm.EncodeMouthpiece(models.Mouthpiece{Make: "Bach", Model: fmt.Sprintf("m%d", page), Type: models.Cup})
		rec["id"] = fmt.Sprintf("id%d", page)
		writeJSON(w, wire.RecordsPage{TotalPages: 2, CurrentPage: page, TotalRecords: 2, Records: []map[string]any{rec}})
	})

	got, err := c.ListRecords(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "id1", got[0].ID)
	assert.Equal(t, "m2", got[1].Model)
	assert.Equal(t, models.Cup, got[1].Type)
}

func TestListRecords_Empty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, wire.RecordsPage{TotalPages: 0, CurrentPage: 1})
	})

	got, err := c.ListRecords(context.Background(), "tok")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListRecords_Unauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	})

	_, err := c.ListRecords(context.Background(), "expired")
	assert.ErrorIs(t, err, ErrAuth)
}

func TestListRecords_InvalidJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not-json"))
	})

	_, err := c.ListRecords(context.Background(), "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid response")
}

func TestCreateRecord(t *testing.T) {
	fm := wire.DefaultFieldMap()
	want := models.Mouthpiece{Make: "Bach", Model: "42B", Type: models.TwoPiece, Threads: models.ThreadsStandard, Finish: models.GoldPlated, Note: "gift"}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assertRecordHeaders(t, r)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/pages/scene_18/views/view_18/records", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.True(t, want.SameFields(fm.DecodeMouthpiece(body)))
		writeJSON(w, map[string]any{"record": body})
	})

	require.NoError(t, c.CreateRecord(context.Background(), "tok", want))
}

func TestUpdateRecord(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assertRecordHeaders(t, r)
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/v1/pages/scene_18/views/view_18/records/r1", r.URL.Path)
		writeJSON(w, map[string]any{})
	})

	require.NoError(t, c.UpdateRecord(context.Background(), "tok", "r1", models.Mouthpiece{Make: "Bach"}))
}

func TestDeleteRecord(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assertRecordHeaders(t, r)
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v1/pages/scene_18/views/view_18/records/r1", r.URL.Path)
		writeJSON(w, map[string]bool{"delete": true})
	})

	require.NoError(t, c.DeleteRecord(context.Background(), "tok", "r1"))
}

func TestDeleteRecord_Failure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	err := c.DeleteRecord(context.Background(), "tok", "nope")
	var rerr *RequestError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, http.StatusNotFound, rerr.Status)
	assert.False(t, errors.Is(err, ErrAuth))
}
