package knack

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/mouthpiecer/internal/client/choices"
	"github.com/atinyakov/mouthpiecer/internal/wire"
)

func TestFetchMakes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/objects/object_2/fields", r.URL.Path)
		assert.Equal(t, "key1", r.Header.Get(wire.HeaderAPIKey))
		writeJSON(w, wire.FieldsResponse{Fields: []wire.Field{
			{Key: "field_16", Type: "short_text"},
			{Key: "field_17", Type: "multiple_choice", Format: wire.FieldFormat{Options: []string{"Bach", "Yamaha"}}},
		}})
	})

	makes, err := c.FetchMakes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Bach", "Yamaha"}, makes)
	assert.Equal(t, makes, c.MakeEnumeration(context.Background()))
}

func TestFetchMakes_MissingField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, wire.FieldsResponse{})
	})

	_, err := c.FetchMakes(context.Background())
	var rerr *RequestError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, []string{choices.FallbackMake}, c.MakeEnumeration(context.Background()))
}

func TestMakeEnumeration_NeverFails(t *testing.T) {
	hc := &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("dns failure")
	})}
	c := New(hc, testConfig("http://example.com/v1"), nil)

	assert.Equal(t, []string{choices.FallbackMake}, c.MakeEnumeration(context.Background()))
}

func TestMakeEnumeration_EmptyOptions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, wire.FieldsResponse{Fields: []wire.Field{{Key: "field_17"}}})
	})

	assert.Equal(t, []string{choices.FallbackMake}, c.MakeEnumeration(context.Background()))
}
