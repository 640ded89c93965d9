package menu

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/mouthpiecer/internal/client/choices"
	"github.com/atinyakov/mouthpiecer/internal/client/knack"
	"github.com/atinyakov/mouthpiecer/internal/client/prompt"
	"github.com/atinyakov/mouthpiecer/internal/client/render"
	"github.com/atinyakov/mouthpiecer/internal/client/session"
	"github.com/atinyakov/mouthpiecer/internal/client/workflow"
	"github.com/atinyakov/mouthpiecer/internal/models"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

type fakeRecords struct {
	ListFunc func(ctx context.Context, token string) ([]models.Mouthpiece, error)
}

func (f *fakeRecords) ListRecords(ctx context.Context, token string) ([]models.Mouthpiece, error) {
	return f.ListFunc(ctx, token)
}

func (f *fakeRecords) CreateRecord(context.Context, string, models.Mouthpiece) error {
	return errors.New("not implemented")
}

func (f *fakeRecords) UpdateRecord(context.Context, string, string, models.Mouthpiece) error {
	return errors.New("not implemented")
}

func (f *fakeRecords) DeleteRecord(context.Context, string, string) error {
	return errors.New("not implemented")
}

type fakeAccounts struct {
	AuthenticateFunc func(ctx context.Context, email, password string) (string, error)
}

func (f *fakeAccounts) Authenticate(ctx context.Context, email, password string) (string, error) {
	return f.AuthenticateFunc(ctx, email, password)
}

func (f *fakeAccounts) CreateUser(context.Context, models.NewUser) (string, error) {
	return "", errors.New("not implemented")
}

type staticMakes []string

func (s staticMakes) FetchMakes(context.Context) ([]string, error) { return s, nil }

func newNavigator(script string, sess *session.Session, records workflow.RecordService, accounts workflow.AccountService) (*Navigator, *bytes.Buffer) {
	out := &bytes.Buffer{}
	p := prompt.New(prompt.NewLineConsole(strings.NewReader(script), out))
	r := render.New(out)
	c := workflow.New(workflow.Deps{
		Session:  sess,
		Records:  records,
		Accounts: accounts,
		Makes:    choices.NewRegistry(staticMakes{"Bach"}, nil),
		Prompter: p,
		Renderer: r,
	})
	return New(c, p, r, nil), out
}

func lines(l ...string) string {
	return strings.Join(l, "\n") + "\n"
}

func listOf(n int) *fakeRecords {
	recs := make([]models.Mouthpiece, n)
	for i := range recs {
		recs[i] = models.Mouthpiece{ID: fmt.Sprint(i), Make: "Bach", Model: fmt.Sprintf("M%02d", i), Type: models.Cup}
	}
	return &fakeRecords{ListFunc: func(context.Context, string) ([]models.Mouthpiece, error) { return recs, nil }}
}

func TestRun_ExitOnZero(t *testing.T) {
	n, out := newNavigator(lines("0"), session.New(), listOf(0), &fakeAccounts{})
	require.NoError(t, n.Run(context.Background()))
	assert.Contains(t, out.String(), "Main menu")
	assert.Contains(t, out.String(), "Not logged in")
}

func TestRun_InvalidOptionRedisplays(t *testing.T) {
	n, out := newNavigator(lines("9", "", "abc", "", "0"), session.New(), listOf(0), &fakeAccounts{})
	require.NoError(t, n.Run(context.Background()))
	assert.Equal(t, 2, strings.Count(out.String(), invalidOption))
	assert.Equal(t, 3, strings.Count(out.String(), "Main menu"))
}

func TestRun_InterruptAtMainMenu(t *testing.T) {
	n, _ := newNavigator("", session.New(), listOf(0), &fakeAccounts{})
	assert.ErrorIs(t, n.Run(context.Background()), prompt.ErrInterrupted)
}

func TestRun_MouthpiecesNeedLogin(t *testing.T) {
	n, out := newNavigator(lines("1", "", "0"), session.New(), listOf(3), &fakeAccounts{})
	require.NoError(t, n.Run(context.Background()))
	assert.Contains(t, out.String(), "Please log in first.")
	assert.NotContains(t, out.String(), "Next page")
}

func TestRun_WrongPassword(t *testing.T) {
	sess := session.New()
	accounts := &fakeAccounts{AuthenticateFunc: func(context.Context, string, string) (string, error) {
		return "", fmt.Errorf("authenticate: %w", knack.ErrAuth)
	}}
	n, out := newNavigator(lines("6", "ada@example.com", "bad", "", "0"), sess, listOf(0), accounts)

	require.NoError(t, n.Run(context.Background()))
	assert.Contains(t, out.String(), "Invalid credentials.")
	assert.False(t, sess.IsAuthenticated())
	assert.Equal(t, 2, strings.Count(out.String(), "Not logged in"))
}

func TestRun_LoginThenLogout(t *testing.T) {
	sess := session.New()
	accounts := &fakeAccounts{AuthenticateFunc: func(context.Context, string, string) (string, error) {
		return "tok", nil
	}}
	n, out := newNavigator(lines("6", "ada@example.com", "pw", "", "7", "", "0"), sess, listOf(0), accounts)

	require.NoError(t, n.Run(context.Background()))
	assert.Contains(t, out.String(), "Logged in as ada@example.com")
	assert.Contains(t, out.String(), "Logged out.")
	assert.False(t, sess.IsAuthenticated())
}

func TestMouthpieces_Paging(t *testing.T) {
	sess := session.New()
	require.NoError(t, sess.Start("ada@example.com", "tok"))
	n, out := newNavigator(lines("1", "n", "N", "n", "p", "0", "0"), sess, listOf(25), &fakeAccounts{})

	require.NoError(t, n.Run(context.Background()))
	assert.Equal(t, 1, sess.Page())
	assert.Contains(t, out.String(), "Page 3 of 3")
	assert.Equal(t, 25, sess.Len())
}

func TestMouthpieces_PrevOnFirstPage(t *testing.T) {
	sess := session.New()
	require.NoError(t, sess.Start("ada@example.com", "tok"))
	n, _ := newNavigator(lines("1", "p", "0", "0"), sess, listOf(25), &fakeAccounts{})

	require.NoError(t, n.Run(context.Background()))
	assert.Equal(t, 0, sess.Page())
}

func TestMouthpieces_InterruptReturnsToMain(t *testing.T) {
	sess := session.New()
	require.NoError(t, sess.Start("ada@example.com", "tok"))
	n, _ := newNavigator(lines("1"), sess, listOf(2), &fakeAccounts{})

	assert.ErrorIs(t, n.Run(context.Background()), prompt.ErrInterrupted)
	assert.Equal(t, 2, sess.Len())
}

func TestMouthpieces_ExpiredTokenBackToMain(t *testing.T) {
	sess := session.New()
	require.NoError(t, sess.Start("ada@example.com", "old"))
	records := &fakeRecords{ListFunc: func(context.Context, string) ([]models.Mouthpiece, error) {
		return nil, fmt.Errorf("list records: %w", knack.ErrAuth)
	}}
	n, out := newNavigator(lines("1", "", "0"), sess, records, &fakeAccounts{})

	require.NoError(t, n.Run(context.Background()))
	assert.Contains(t, out.String(), "Please log in first.")
}
