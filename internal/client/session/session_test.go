package session

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/mouthpiecer/internal/client/pager"
	"github.com/atinyakov/mouthpiecer/internal/models"
)

type authFunc func(ctx context.Context, email, password string) (string, error)

func (f authFunc) Authenticate(ctx context.Context, email, password string) (string, error) {
	return f(ctx, email, password)
}

func records(n int) []models.Mouthpiece {
	out := make([]models.Mouthpiece, n)
	for i := range out {
		out[i] = models.Mouthpiece{ID: fmt.Sprintf("id%d", i), Make: "Bach"}
	}
	return out
}

func TestLogin_Success(t *testing.T) {
	s := New()
	err := s.Login(context.Background(), authFunc(func(_ context.Context, email, password string) (string, error) {
		assert.Equal(t, "ada@example.com", email)
		assert.Equal(t, "pw", password)
		return "tok", nil
	}), "ada@example.com", "pw")
	require.NoError(t, err)

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "tok", s.Token())
	assert.Equal(t, "ada@example.com", s.CurrentUser())
}

func TestLogin_WrongPasswordKeepsTokenEmpty(t *testing.T) {
	wantErr := errors.New("invalid credentials")
	s := New()
	err := s.Login(context.Background(), authFunc(func(context.Context, string, string) (string, error) {
		return "", wantErr
	}), "ada@example.com", "nope")

	assert.ErrorIs(t, err, wantErr)
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
	assert.Empty(t, s.CurrentUser())
}

func TestLogin_RequiresLogout(t *testing.T) {
	s := New()
	require.NoError(t, s.Start("ada@example.com", "first"))

	called := false
	err := s.Login(context.Background(), authFunc(func(context.Context, string, string) (string, error) {
		called = true
		return "second", nil
	}), "bob@example.com", "pw")

	assert.ErrorIs(t, err, ErrAlreadyAuthenticated)
	assert.False(t, called, "authenticator must not be called")
	assert.Equal(t, "first", s.Token())
}

func TestStart_EmptyToken(t *testing.T) {
	s := New()
	assert.Error(t, s.Start("ada@example.com", ""))
	assert.False(t, s.IsAuthenticated())
}

func TestLogout(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.Logout(), ErrNotAuthenticated)

	require.NoError(t, s.Start("ada@example.com", "tok"))
	s.SetRecords(records(15))
	s.SetPage(1)
	s.SetSelectMode(true)

	require.NoError(t, s.Logout())
	assert.False(t, s.IsAuthenticated())
	assert.Zero(t, s.Len())
	assert.Zero(t, s.Page())
	assert.False(t, s.SelectMode())
}

func TestPaging(t *testing.T) {
	s := New()
	s.SetRecords(records(25))
	require.Equal(t, 3, s.PageCount(pager.PageSize))

	s.PrevPage()
	assert.Equal(t, 0, s.Page(), "prev on first page is a no-op")

	s.NextPage()
	s.NextPage()
	assert.Equal(t, 2, s.Page())
	s.NextPage()
	assert.Equal(t, 2, s.Page(), "next on last page is a no-op")

	s.SetPage(-5)
	assert.Equal(t, 0, s.Page())
	s.SetPage(99)
	assert.Equal(t, 2, s.Page())
}

func TestSetRecords_ReclampsPage(t *testing.T) {
	s := New()
	s.SetRecords(records(25))
	s.SetPage(2)

	s.SetRecords(records(11))
	assert.Equal(t, 1, s.Page())

	s.SetRecords(nil)
	assert.Equal(t, 0, s.Page())
	assert.Equal(t, 1, s.PageCount(pager.PageSize))
}

func TestRecordAndStale(t *testing.T) {
	s := New()
	s.SetRecords(records(2))

	r, ok := s.Record(1)
	require.True(t, ok)
	assert.Equal(t, "id1", r.ID)
	_, ok = s.Record(2)
	assert.False(t, ok)
	_, ok = s.Record(-1)
	assert.False(t, ok)

	s.Invalidate()
	assert.True(t, s.Stale())
	s.SetRecords(records(1))
	assert.False(t, s.Stale())
}
