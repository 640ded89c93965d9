package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/atinyakov/mouthpiecer/internal/models"
)

// MemoryStore keeps users, sessions and records in process memory. It serves
// both repository roles and is safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]models.User
	byEmail  map[string]string
	sessions map[string]models.Session
	records  map[string]models.StoredMouthpiece
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]models.User),
		byEmail:  make(map[string]string),
		sessions: make(map[string]models.Session),
		records:  make(map[string]models.StoredMouthpiece),
	}
}

func (m *MemoryStore) CreateUser(_ context.Context, u models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[u.Email]; ok {
		return fmt.Errorf("user %s: %w", u.Email, ErrConflict)
	}
	m.users[u.ID] = u
	m.byEmail[u.Email] = u.ID
	return nil
}

func (m *MemoryStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	u := m.users[id]
	return &u, nil
}

func (m *MemoryStore) CreateSession(_ context.Context, s models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Token] = s
	return nil
}

func (m *MemoryStore) SessionByToken(_ context.Context, token string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *MemoryStore) DeleteExpiredSessions(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for token, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, token)
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) ListRecords(_ context.Context, ownerID string, offset, limit int) ([]models.StoredMouthpiece, int, error) {
	m.mu.RLock()
	var owned []models.StoredMouthpiece
	for _, r := range m.records {
		if r.OwnerID == ownerID {
			owned = append(owned, r)
		}
	}
	m.mu.RUnlock()

	slices.SortFunc(owned, func(a, b models.StoredMouthpiece) int {
		if a.Version != b.Version {
			if a.Version < b.Version {
				return -1
			}
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})

	total := len(owned)
	lo := min(max(offset, 0), total)
	hi := min(lo+limit, total)
	return owned[lo:hi], total, nil
}

func (m *MemoryStore) CreateRecord(_ context.Context, rec models.StoredMouthpiece) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[rec.ID]; ok {
		return fmt.Errorf("record %s: %w", rec.ID, ErrConflict)
	}
	m.records[rec.ID] = rec
	return nil
}

func (m *MemoryStore) UpdateRecord(_ context.Context, ownerID string, mp models.Mouthpiece) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[mp.ID]
	if !ok || rec.OwnerID != ownerID {
		return ErrNotFound
	}
	rec.Mouthpiece = mp
	m.records[mp.ID] = rec
	return nil
}

func (m *MemoryStore) DeleteRecords(_ context.Context, ownerID string, ids []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, id := range ids {
		if rec, ok := m.records[id]; ok && rec.OwnerID == ownerID {
			delete(m.records, id)
			n++
		}
	}
	return n, nil
}
