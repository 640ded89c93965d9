// Package session holds the state of one interactive client session: the
// login token, the record cache and the list view state.
//
// A Session is not safe for concurrent use; the client drives it from a
// single goroutine.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/atinyakov/mouthpiecer/internal/client/pager"
	"github.com/atinyakov/mouthpiecer/internal/models"
)

var (
	// ErrNotAuthenticated is returned by operations that need a login.
	ErrNotAuthenticated = errors.New("not logged in")
	// ErrAlreadyAuthenticated is returned when logging in over an existing login.
	ErrAlreadyAuthenticated = errors.New("already logged in")
)

// Authenticator exchanges credentials for a session token.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (string, error)
}

// Session is the process-wide client state.
type Session struct {
	token string
	email string

	records []models.Mouthpiece
	stale   bool
	page    int

	selectMode bool
}

// New returns a logged-out session.
func New() *Session {
	return &Session{}
}

// Login authenticates and stores the token. It refuses to replace an existing
// login. On failure the session stays logged out.
func (s *Session) Login(ctx context.Context, auth Authenticator, email, password string) error {
	if s.IsAuthenticated() {
		return ErrAlreadyAuthenticated
	}
	token, err := auth.Authenticate(ctx, email, password)
	if err != nil {
		return err
	}
	return s.Start(email, token)
}

// Start records a token obtained elsewhere (e.g. right after account creation).
func (s *Session) Start(email, token string) error {
	if s.IsAuthenticated() {
		return ErrAlreadyAuthenticated
	}
	if token == "" {
		return fmt.Errorf("start session for %s: empty token", email)
	}
	s.token = token
	s.email = email
	return nil
}

// Logout forgets the token and everything fetched with it.
func (s *Session) Logout() error {
	if !s.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	*s = Session{}
	return nil
}

// IsAuthenticated reports whether a token is held.
func (s *Session) IsAuthenticated() bool {
	return s.token != ""
}

// Token returns the current token, empty when logged out.
func (s *Session) Token() string {
	return s.token
}

// CurrentUser returns the email the session logged in with.
func (s *Session) CurrentUser() string {
	return s.email
}

// SetRecords replaces the cache with a fresh snapshot and re-clamps the page.
func (s *Session) SetRecords(records []models.Mouthpiece) {
	s.records = records
	s.stale = false
	s.page = pager.Clamp(s.page, len(s.records), pager.PageSize)
}

// Records returns the cached snapshot. Callers must not modify it.
func (s *Session) Records() []models.Mouthpiece {
	return s.records
}

// Len returns the number of cached records.
func (s *Session) Len() int {
	return len(s.records)
}

// Record returns the record at display index i.
func (s *Session) Record(i int) (models.Mouthpiece, bool) {
	if i < 0 || i >= len(s.records) {
		return models.Mouthpiece{}, false
	}
	return s.records[i], true
}

// Invalidate marks the snapshot as outdated. Indices must not be used until
// SetRecords is called again.
func (s *Session) Invalidate() {
	s.stale = true
}

// Stale reports whether the snapshot needs a re-fetch.
func (s *Session) Stale() bool {
	return s.stale
}

// SetPage moves to page n, clamped to the available pages.
func (s *Session) SetPage(n int) {
	s.page = pager.Clamp(n, len(s.records), pager.PageSize)
}

// Page returns the zero-based current page.
func (s *Session) Page() int {
	return s.page
}

// PageCount returns the number of pages for the given page size.
func (s *Session) PageCount(size int) int {
	return pager.PageCount(len(s.records), size)
}

// NextPage advances one page; a no-op on the last page.
func (s *Session) NextPage() {
	s.SetPage(s.page + 1)
}

// PrevPage goes back one page; a no-op on the first page.
func (s *Session) PrevPage() {
	s.SetPage(s.page - 1)
}

// SelectMode reports whether a record is being picked from the list.
func (s *Session) SelectMode() bool {
	return s.selectMode
}

// SetSelectMode toggles list highlighting while a record is being picked.
func (s *Session) SetSelectMode(on bool) {
	s.selectMode = on
}
