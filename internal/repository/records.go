package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/atinyakov/mouthpiecer/internal/models"
)

// PostgresRecordRepository stores mouthpieces in PostgreSQL, scoped by owner.
type PostgresRecordRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresRecordRepository creates a new PostgresRecordRepository using the provided *sql.DB.
func NewPostgresRecordRepository(db *sql.DB) *PostgresRecordRepository {
	return &PostgresRecordRepository{DB: db}
}

// ListRecords returns one page of the owner's mouthpieces in creation order
// and the owner's total record count.
func (s *PostgresRecordRepository) ListRecords(ctx context.Context, ownerID string, offset, limit int) ([]models.StoredMouthpiece, int, error) {
	var total int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM mouthpieces WHERE owner_id = $1`,
		ownerID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("ListRecords count: %w", err)
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, make, model, type, threads, finish, note, version FROM mouthpieces
		WHERE owner_id = $1 ORDER BY version, id LIMIT $2 OFFSET $3
	`, ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ListRecords: %w", err)
	}
	defer rows.Close()

	var out []models.StoredMouthpiece
	for rows.Next() {
		rec := models.StoredMouthpiece{OwnerID: ownerID}
		if err := rows.Scan(&rec.ID, &rec.Make, &rec.Model, &rec.Type, &rec.Threads, &rec.Finish, &rec.Note, &rec.Version); err != nil {
			return nil, 0, fmt.Errorf("scan: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ListRecords rows: %w", err)
	}
	return out, total, nil
}

// CreateRecord inserts rec.
func (s *PostgresRecordRepository) CreateRecord(ctx context.Context, rec models.StoredMouthpiece) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO mouthpieces (id, owner_id, make, model, type, threads, finish, note, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, rec.ID, rec.OwnerID, rec.Make, rec.Model, rec.Type, rec.Threads, rec.Finish, rec.Note, rec.Version)
	if err != nil {
		return fmt.Errorf("CreateRecord: %w", err)
	}
	return nil
}

// UpdateRecord replaces the fields of the owner's record m.ID.
func (s *PostgresRecordRepository) UpdateRecord(ctx context.Context, ownerID string, m models.Mouthpiece) error {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE mouthpieces SET make = $3, model = $4, type = $5, threads = $6, finish = $7, note = $8
		WHERE owner_id = $1 AND id = $2
	`, ownerID, m.ID, m.Make, m.Model, m.Type, m.Threads, m.Finish, m.Note)
	if err != nil {
		return fmt.Errorf("UpdateRecord: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRecords removes the owner's records with the given IDs and returns
// how many were removed.
func (s *PostgresRecordRepository) DeleteRecords(ctx context.Context, ownerID string, ids []string) (int64, error) {
	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM mouthpieces WHERE owner_id = $1 AND id = ANY($2)`,
		ownerID, pq.Array(ids),
	)
	if err != nil {
		return 0, fmt.Errorf("DeleteRecords: %w", err)
	}
	return res.RowsAffected()
}
