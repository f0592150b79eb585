package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotConfigured indicates the storage pool was not initialised.
var ErrNotConfigured = errors.New("storage: pool not configured")

const (
	createAlertHistorySQL = `CREATE TABLE IF NOT EXISTS alert_history (
        id         BIGSERIAL PRIMARY KEY,
        alert_key  TEXT NOT NULL UNIQUE,
        kind       TEXT NOT NULL,
        subject    TEXT NOT NULL,
        change_pct NUMERIC,
        urgency    TEXT NOT NULL,
        created_at TIMESTAMPTZ NOT NULL DEFAULT now()
    );`

	insertAlertSQL = `INSERT INTO alert_history (
        alert_key,
        kind,
        subject,
        change_pct,
        urgency
    ) VALUES (
        $1,$2,$3,$4,$5
    )
    ON CONFLICT (alert_key) DO UPDATE
    SET kind       = EXCLUDED.kind,
        subject    = EXCLUDED.subject,
        change_pct = EXCLUDED.change_pct,
        urgency    = EXCLUDED.urgency
    RETURNING id, alert_key, kind, subject, change_pct, urgency, created_at;`

	listRecentAlertsSQL = `SELECT
        id, alert_key, kind, subject, change_pct, urgency, created_at
    FROM alert_history
    ORDER BY created_at DESC
    LIMIT $1;`

	listAlertsBetweenSQL = `SELECT
        id, alert_key, kind, subject, change_pct, urgency, created_at
    FROM alert_history
    WHERE created_at >= $1
      AND created_at < $2
    ORDER BY created_at;`

	countAlertsSQL = `SELECT COUNT(*) FROM alert_history;`

	deleteAlertsBeforeSQL = `DELETE FROM alert_history WHERE created_at < $1;`
)

// AlertHistory defines operations for the delivered-alert audit trail.
type AlertHistory interface {
	InsertAlert(ctx context.Context, record AlertRecord) (AlertRecord, error)
	ListRecentAlerts(ctx context.Context, limit int) ([]AlertRecord, error)
	ListAlertsBetween(ctx context.Context, from, to time.Time) ([]AlertRecord, error)
	CountAlerts(ctx context.Context) (int64, error)
	DeleteAlertsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Store is a PostgreSQL-backed alert history.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wraps an initialised pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the history table when it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if s.pool == nil {
		return ErrNotConfigured
	}
	_, err := s.pool.Exec(ctx, createAlertHistorySQL)
	return err
}

// InsertAlert records one delivered alert; re-inserting the same key
// updates the row in place.
func (s *Store) InsertAlert(ctx context.Context, record AlertRecord) (AlertRecord, error) {
	if s.pool == nil {
		return AlertRecord{}, ErrNotConfigured
	}

	row := s.pool.QueryRow(ctx, insertAlertSQL,
		record.AlertKey,
		record.Kind,
		record.Subject,
		record.ChangePct,
		record.Urgency,
	)

	var out AlertRecord
	if err := row.Scan(&out.ID, &out.AlertKey, &out.Kind, &out.Subject, &out.ChangePct, &out.Urgency, &out.CreatedAt); err != nil {
		return AlertRecord{}, err
	}
	return out, nil
}

// ListRecentAlerts returns the newest records first.
func (s *Store) ListRecentAlerts(ctx context.Context, limit int) ([]AlertRecord, error) {
	if s.pool == nil {
		return nil, ErrNotConfigured
	}

	rows, err := s.pool.Query(ctx, listRecentAlertsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAlertRows(rows)
}

// ListAlertsBetween returns records in [from, to), oldest first.
func (s *Store) ListAlertsBetween(ctx context.Context, from, to time.Time) ([]AlertRecord, error) {
	if s.pool == nil {
		return nil, ErrNotConfigured
	}

	rows, err := s.pool.Query(ctx, listAlertsBetweenSQL, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAlertRows(rows)
}

// CountAlerts returns the total number of audit records.
func (s *Store) CountAlerts(ctx context.Context) (int64, error) {
	if s.pool == nil {
		return 0, ErrNotConfigured
	}

	var count int64
	if err := s.pool.QueryRow(ctx, countAlertsSQL).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteAlertsBefore prunes audit records older than the cutoff. It never
// touches the deduplication ledger.
func (s *Store) DeleteAlertsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if s.pool == nil {
		return 0, ErrNotConfigured
	}

	tag, err := s.pool.Exec(ctx, deleteAlertsBeforeSQL, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanAlertRows(rows rowScanner) ([]AlertRecord, error) {
	var records []AlertRecord
	for rows.Next() {
		var rec AlertRecord
		if err := rows.Scan(&rec.ID, &rec.AlertKey, &rec.Kind, &rec.Subject, &rec.ChangePct, &rec.Urgency, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

var _ AlertHistory = (*Store)(nil)
