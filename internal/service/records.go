package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/atinyakov/mouthpiecer/internal/models"
	"github.com/atinyakov/mouthpiecer/internal/repository"
)

// MaxRowsPerPage caps the page size a client may request.
const MaxRowsPerPage = 1000

var (
	// ErrInvalidRecord is returned when a field is outside its enumeration.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrRecordNotFound is returned when the owner has no record with the id.
	ErrRecordNotFound = errors.New("record not found")
)

// RecordRepository defines the persistence operations needed by the RecordService.
type RecordRepository interface {
	ListRecords(ctx context.Context, ownerID string, offset, limit int) ([]models.StoredMouthpiece, int, error)
	CreateRecord(ctx context.Context, rec models.StoredMouthpiece) error
	UpdateRecord(ctx context.Context, ownerID string, m models.Mouthpiece) error
	DeleteRecords(ctx context.Context, ownerID string, ids []string) (int64, error)
}

// Page is one page of an owner's records.
type Page struct {
	Records      []models.Mouthpiece
	CurrentPage  int
	TotalPages   int
	TotalRecords int
}

// RecordService implements owner-scoped mouthpiece CRUD.
type RecordService struct {
	repo  RecordRepository
	makes []string
	now   func() time.Time

	mu          sync.Mutex
	lastVersion int64
}

// NewRecordService constructs a RecordService accepting only the given makes.
func NewRecordService(repo RecordRepository, makes []string) *RecordService {
	return &RecordService{repo: repo, makes: makes, now: time.Now}
}

// Makes returns the allowed makes.
func (s *RecordService) Makes() []string {
	return s.makes
}

// nextVersion returns a strictly increasing creation stamp.
func (s *RecordService) nextVersion() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.now().UnixNano()
	if v <= s.lastVersion {
		v = s.lastVersion + 1
	}
	s.lastVersion = v
	return v
}

func (s *RecordService) check(m models.Mouthpiece) error {
	switch {
	case !slices.Contains(s.makes, m.Make):
		return fmt.Errorf("%w: make %q", ErrInvalidRecord, m.Make)
	case !slices.Contains(models.Types, m.Type):
		return fmt.Errorf("%w: type %q", ErrInvalidRecord, m.Type)
	case m.Threads != models.ThreadsNone && !slices.Contains(models.ThreadOptions, m.Threads):
		return fmt.Errorf("%w: threads %q", ErrInvalidRecord, m.Threads)
	case !slices.Contains(models.Finishes, m.Finish):
		return fmt.Errorf("%w: finish %q", ErrInvalidRecord, m.Finish)
	}
	return nil
}

// List returns page (1-based) of the owner's records with rows per page.
func (s *RecordService) List(ctx context.Context, ownerID string, page, rows int) (Page, error) {
	page = max(page, 1)
	rows = min(max(rows, 1), MaxRowsPerPage)

	recs, total, err := s.repo.ListRecords(ctx, ownerID, (page-1)*rows, rows)
	if err != nil {
		return Page{}, err
	}
	out := Page{
		Records:      make([]models.Mouthpiece, 0, len(recs)),
		CurrentPage:  page,
		TotalPages:   max((total+rows-1)/rows, 1),
		TotalRecords: total,
	}
	for _, r := range recs {
		out.Records = append(out.Records, r.Mouthpiece)
	}
	return out, nil
}

// Create stores m for the owner under a new id.
func (s *RecordService) Create(ctx context.Context, ownerID string, m models.Mouthpiece) (models.Mouthpiece, error) {
	m = m.Normalize()
	if err := s.check(m); err != nil {
		return models.Mouthpiece{}, err
	}
	m.ID = uuid.NewString()
	rec := models.StoredMouthpiece{Mouthpiece: m, OwnerID: ownerID, Version: s.nextVersion()}
	if err := s.repo.CreateRecord(ctx, rec); err != nil {
		return models.Mouthpiece{}, err
	}
	return m, nil
}

// Update replaces the fields of the owner's record id.
func (s *RecordService) Update(ctx context.Context, ownerID, id string, m models.Mouthpiece) (models.Mouthpiece, error) {
	m = m.Normalize()
	if err := s.check(m); err != nil {
		return models.Mouthpiece{}, err
	}
	m.ID = id
	if err := s.repo.UpdateRecord(ctx, ownerID, m); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Mouthpiece{}, ErrRecordNotFound
		}
		return models.Mouthpiece{}, err
	}
	return m, nil
}

// Delete removes the owner's record id.
func (s *RecordService) Delete(ctx context.Context, ownerID, id string) error {
	n, err := s.repo.DeleteRecords(ctx, ownerID, []string{id})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRecordNotFound
	}
	return nil
}
