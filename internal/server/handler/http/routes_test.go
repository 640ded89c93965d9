package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/atinyakov/mouthpiecer/internal/client/knack"
	"github.com/atinyakov/mouthpiecer/internal/models"
	"github.com/atinyakov/mouthpiecer/internal/ratelimit"
	"github.com/atinyakov/mouthpiecer/internal/repository"
	"github.com/atinyakov/mouthpiecer/internal/service"
	"github.com/atinyakov/mouthpiecer/internal/wire"
)

var testRoutes = Routes{
	AppID:            "app1",
	APIKey:           "key1",
	Scene:            "scene_18",
	View:             "view_18",
	UserObject:       "object_1",
	MouthpieceObject: "object_2",
}

// newSandbox serves the full router over an in-memory store and returns a
// client configured for it.
func newSandbox(t *testing.T) *knack.Client {
	t.Helper()

	store := repository.NewMemoryStore()
	auth := service.NewAuthService(store, time.Hour, service.WithHashCost(bcrypt.MinCost))
	records := service.NewRecordService(store, []string{"Bach", "Yamaha"})
	fields := wire.DefaultFieldMap()

	router := NewRouter(
		testRoutes,
		&AuthHandler{AuthService: auth, Fields: fields},
		&RecordHandler{Records: records, Fields: fields, RowsPerPage: 2},
		&SchemaHandler{Fields: fields, Makes: records.Makes},
		auth,
		ratelimit.New(0, 0),
		zap.NewNop(),
	)
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	return knack.New(ts.Client(), knack.Config{
		BaseURL:          ts.URL + "/v1",
		AppID:            testRoutes.AppID,
		APIKey:           testRoutes.APIKey,
		Scene:            testRoutes.Scene,
		View:             testRoutes.View,
		UserObject:       testRoutes.UserObject,
		MouthpieceObject: testRoutes.MouthpieceObject,
		UserRole:         models.DefaultRole,
		Fields:           fields,
	}, nil)
}

func TestRouter_RecordRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newSandbox(t)

	token, err := c.CreateUser(ctx, models.NewUser{FirstName: "Jo", LastName: "Doe", Email: "jo@example.com", Password: "pw"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	makes, err := c.FetchMakes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bach", "Yamaha"}, makes)

	want := []models.Mouthpiece{
		{Make: "Bach", Model: "7C", Type: models.OnePiece, Threads: models.ThreadsStandard, Finish: models.SilverPlated, Note: "daily"},
		{Make: "Yamaha", Model: "14B4", Type: models.TwoPiece, Threads: models.ThreadsMetric, Finish: models.GoldPlated},
		{Make: "Bach", Model: "3C", Type: models.Cup, Threads: models.ThreadsOther, Finish: models.Brass},
	}
	for _, m := range want {
		require.NoError(t, c.CreateRecord(ctx, token, m))
	}

	got, err := c.ListRecords(ctx, token)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := range want {
		assert.True(t, got[i].SameFields(want[i].Normalize()), "record %d: %+v", i, got[i])
		assert.NotEmpty(t, got[i].ID)
	}
	assert.Equal(t, models.ThreadsNone, got[0].Threads)

	edited := got[1]
	edited.Model = "15B4"
	require.NoError(t, c.UpdateRecord(ctx, token, edited.ID, edited))
	require.NoError(t, c.DeleteRecord(ctx, token, got[0].ID))

	got, err = c.ListRecords(ctx, token)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "15B4", got[0].Model)
	assert.Equal(t, "3C", got[1].Model)
}

func TestRouter_RecordsAreOwnerScoped(t *testing.T) {
	ctx := context.Background()
	c := newSandbox(t)

	alice, err := c.CreateUser(ctx, models.NewUser{FirstName: "A", LastName: "A", Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)
	bob, err := c.CreateUser(ctx, models.NewUser{FirstName: "B", LastName: "B", Email: "b@example.com", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, c.CreateRecord(ctx, alice, models.Mouthpiece{Make: "Bach", Model: "1C", Type: models.Rim, Finish: models.Nickel}))

	got, err := c.ListRecords(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = c.ListRecords(ctx, alice)
	require.NoError(t, err)
	require.Len(t, got, 1)

	var rerr *knack.RequestError
	err = c.DeleteRecord(ctx, bob, got[0].ID)
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, http.StatusNotFound, rerr.Status)
}

func TestRouter_Rejections(t *testing.T) {
	ctx := context.Background()
	c := newSandbox(t)

	_, err := c.ListRecords(ctx, "no-such-token")
	assert.ErrorIs(t, err, knack.ErrAuth)

	_, err = c.Authenticate(ctx, "nobody@example.com", "pw")
	assert.ErrorIs(t, err, knack.ErrAuth)

	token, err := c.CreateUser(ctx, models.NewUser{FirstName: "Jo", LastName: "Doe", Email: "jo@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = c.CreateUser(ctx, models.NewUser{FirstName: "Jo", LastName: "Doe", Email: "jo@example.com", Password: "pw"})
	var rerr *knack.RequestError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, http.StatusConflict, rerr.Status)

	err = c.CreateRecord(ctx, token, models.Mouthpiece{Make: "Unknown", Model: "X", Type: models.Cup, Finish: models.Brass})
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, http.StatusBadRequest, rerr.Status)
}

func TestRouter_CreateThenFetchKeepsFields(t *testing.T) {
	ctx := context.Background()
	c := newSandbox(t)

	token, err := c.CreateUser(ctx, models.NewUser{FirstName: "Jo", LastName: "Doe", Email: "jo@example.com", Password: "pw"})
	require.NoError(t, err)

	want := models.Mouthpiece{
		Make:    "Bach",
		Model:   "42B",
		Type:    models.TwoPiece,
		Threads: models.ThreadsStandard,
		Finish:  models.GoldPlated,
		Note:    "gift",
	}
	require.NoError(t, c.CreateRecord(ctx, token, want))

	got, err := c.ListRecords(ctx, token)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotEmpty(t, got[0].ID)
	got[0].ID = ""
	assert.Equal(t, want, got[0])
}
