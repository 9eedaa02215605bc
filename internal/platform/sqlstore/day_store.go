package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/dayplan-api/internal/domain"
	"github.com/phrazzld/dayplan-api/internal/store"
)

const daySelect = `
SELECT d.user_id, d.day_date, d.weekday, d.timezone, d.version, d.created_at, d.updated_at,
       s.idx, s.label, s.locked, s.manual_only, s.task_id, s.task_title, s.kind, s.source, s.fixed
FROM days d
JOIN day_slots s ON s.user_id = d.user_id AND s.day_date = d.day_date
`

const dayOrder = `
ORDER BY d.day_date ASC, s.idx ASC`

// SQLDayStore implements the store.DayStore interface on PostgreSQL or SQLite.
type SQLDayStore struct {
	db      store.DBTX
	dialect Dialect
	logger  *slog.Logger
}

// NewSQLDayStore creates a DayStore over a database connection or transaction
// that is initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewSQLDayStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *SQLDayStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SQLDayStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "day_store")),
	}
}

// Ensure SQLDayStore implements store.DayStore interface
var _ store.DayStore = (*SQLDayStore)(nil)

// WithTx implements store.DayStore.WithTx.
func (s *SQLDayStore) WithTx(tx *sql.Tx) store.DayStore {
	return &SQLDayStore{
		db:      tx,
		dialect: s.dialect,
		logger:  s.logger,
	}
}

// Create implements store.DayStore.Create.
// The Day row and its slots are written in order; callers outside a
// transaction may observe a Day without slots only if a slot insert fails.
func (s *SQLDayStore) Create(ctx context.Context, day *domain.Day) error {
	if err := day.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	log := s.logger.With(
		slog.String("user_id", day.UserID.String()),
		slog.String("date", day.Date.String()),
	)

	res, err := s.db.ExecContext(ctx, s.dialect.Rebind(`
		INSERT INTO days (user_id, day_date, weekday, timezone, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, day_date) DO NOTHING`),
		day.UserID, day.Date, day.Weekday, day.Timezone, day.Version,
		day.CreatedAt.UTC(), day.UpdatedAt.UTC(),
	)
	if err != nil {
		log.Error("failed to insert day", slog.String("error", err.Error()))
		return MapError(err)
	}
	if err := checkRowsAffected(res, store.ErrDayExists); err != nil {
		if errors.Is(err, store.ErrDayExists) {
			log.Debug("day already exists")
		}
		return err
	}

	for i := range day.Slots {
		slot := &day.Slots[i]
		taskID, title, kind, source, fixed := assignmentArgs(slot.Assignment)
		_, err := s.db.ExecContext(ctx, s.dialect.Rebind(`
			INSERT INTO day_slots
				(user_id, day_date, idx, label, locked, manual_only, task_id, task_title, kind, source, fixed)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
			day.UserID, day.Date, slot.Idx, slot.Label, slot.Locked, slot.ManualOnly,
			taskID, title, kind, source, fixed,
		)
		if err != nil {
			log.Error("failed to insert slot",
				slog.Int("idx", slot.Idx),
				slog.String("error", err.Error()))
			return MapError(err)
		}
	}

	log.Debug("day created")
	return nil
}

// Get implements store.DayStore.Get.
func (s *SQLDayStore) Get(ctx context.Context, userID uuid.UUID, date domain.Date) (*domain.Day, error) {
	return s.queryOne(ctx, `WHERE d.user_id = ? AND d.day_date = ?`, userID, date)
}

// Latest implements store.DayStore.Latest.
func (s *SQLDayStore) Latest(ctx context.Context, userID uuid.UUID) (*domain.Day, error) {
	return s.queryOne(ctx, `
		WHERE d.user_id = ?
		  AND d.day_date = (SELECT MAX(day_date) FROM days WHERE user_id = ?)`,
		userID, userID)
}

// ListRange implements store.DayStore.ListRange.
func (s *SQLDayStore) ListRange(
	ctx context.Context,
	userID uuid.UUID,
	from, to domain.Date,
) ([]*domain.Day, error) {
	if to.IsZero() {
		return s.query(ctx, `WHERE d.user_id = ? AND d.day_date >= ?`, userID, from)
	}
	return s.query(ctx, `WHERE d.user_id = ? AND d.day_date >= ? AND d.day_date <= ?`, userID, from, to)
}

// FindByTask implements store.DayStore.FindByTask.
func (s *SQLDayStore) FindByTask(ctx context.Context, userID uuid.UUID, taskID string) (*domain.Day, error) {
	return s.queryOne(ctx, `
		WHERE d.user_id = ?
		  AND d.day_date = (SELECT MIN(day_date) FROM day_slots WHERE user_id = ? AND task_id = ?)`,
		userID, userID, taskID)
}

// FirstOccupied implements store.DayStore.FirstOccupied.
func (s *SQLDayStore) FirstOccupied(ctx context.Context, userID uuid.UUID) (*domain.Day, error) {
	return s.queryOne(ctx, `
		WHERE d.user_id = ?
		  AND d.day_date = (SELECT MIN(day_date) FROM day_slots WHERE user_id = ? AND task_id IS NOT NULL)`,
		userID, userID)
}

// Replace implements store.DayStore.Replace.
func (s *SQLDayStore) Replace(ctx context.Context, day *domain.Day) error {
	if err := day.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	log := s.logger.With(
		slog.String("user_id", day.UserID.String()),
		slog.String("date", day.Date.String()),
		slog.Int("version", day.Version),
	)

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, s.dialect.Rebind(`
		UPDATE days SET version = version + 1, updated_at = ?
		WHERE user_id = ? AND day_date = ? AND version = ?`),
		now, day.UserID, day.Date, day.Version,
	)
	if err != nil {
		log.Error("failed to update day", slog.String("error", err.Error()))
		return MapError(err)
	}
	if err := checkRowsAffected(res, store.ErrConflict); err != nil {
		if !errors.Is(err, store.ErrConflict) {
			return err
		}
		exists, existsErr := s.exists(ctx, day.UserID, day.Date)
		if existsErr != nil {
			return existsErr
		}
		if !exists {
			return store.ErrDayNotFound
		}
		log.Warn("version mismatch on replace")
		return store.NewStoreError("day", "replace", "stored version changed", store.ErrConflict)
	}

	for i := range day.Slots {
		slot := &day.Slots[i]
		taskID, title, kind, source, fixed := assignmentArgs(slot.Assignment)
		res, err := s.db.ExecContext(ctx, s.dialect.Rebind(`
			UPDATE day_slots
			SET label = ?, locked = ?, manual_only = ?,
			    task_id = ?, task_title = ?, kind = ?, source = ?, fixed = ?
			WHERE user_id = ? AND day_date = ? AND idx = ?`),
			slot.Label, slot.Locked, slot.ManualOnly,
			taskID, title, kind, source, fixed,
			day.UserID, day.Date, slot.Idx,
		)
		if err != nil {
			log.Error("failed to update slot",
				slog.Int("idx", slot.Idx),
				slog.String("error", err.Error()))
			return MapError(err)
		}
		if err := checkRowsAffected(res, fmt.Errorf("%w: slot %d", store.ErrNotFound, slot.Idx)); err != nil {
			return err
		}
	}

	day.Version++
	day.UpdatedAt = now
	log.Debug("day replaced")
	return nil
}

func (s *SQLDayStore) exists(ctx context.Context, userID uuid.UUID, date domain.Date) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, s.dialect.Rebind(
		`SELECT 1 FROM days WHERE user_id = ? AND day_date = ?`),
		userID, date,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, MapError(err)
	}
	return true, nil
}

func (s *SQLDayStore) queryOne(ctx context.Context, where string, args ...any) (*domain.Day, error) {
	days, err := s.query(ctx, where, args...)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, store.ErrDayNotFound
	}
	return days[0], nil
}

func (s *SQLDayStore) query(ctx context.Context, where string, args ...any) ([]*domain.Day, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(daySelect+where+dayOrder), args...)
	if err != nil {
		s.logger.Error("failed to query days", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	days := make([]*domain.Day, 0)
	var current *domain.Day
	for rows.Next() {
		var (
			userID             uuid.UUID
			date               domain.Date
			weekday, version   int
			timezone           string
			createdAt          dbTime
			updatedAt          dbTime
			idx                int
			label              string
			locked, manualOnly bool
			taskID, taskTitle  sql.NullString
			kind, source       sql.NullString
			fixed              sql.NullBool
		)
		if err := rows.Scan(
			&userID, &date, &weekday, &timezone, &version, &createdAt, &updatedAt,
			&idx, &label, &locked, &manualOnly, &taskID, &taskTitle, &kind, &source, &fixed,
		); err != nil {
			return nil, fmt.Errorf("failed to scan day row: %w", err)
		}

		if current == nil || !current.Date.Equal(date) || current.UserID != userID {
			current = &domain.Day{
				UserID:    userID,
				Date:      date,
				Weekday:   weekday,
				Timezone:  timezone,
				Version:   version,
				CreatedAt: createdAt.Time,
				UpdatedAt: updatedAt.Time,
			}
			days = append(days, current)
		}
		if idx < 0 || idx >= domain.SlotsPerDay {
			return nil, fmt.Errorf("%w: slot index %d out of range", store.ErrInvalidEntity, idx)
		}

		slot := domain.Slot{Idx: idx, Label: label, Locked: locked, ManualOnly: manualOnly}
		if taskID.Valid {
			slot.Assignment = &domain.Assignment{
				TaskID:    taskID.String,
				TaskTitle: taskTitle.String,
				Kind:      domain.Kind(kind.String),
				Source:    domain.Source(source.String),
				Fixed:     fixed.Valid && fixed.Bool,
			}
		}
		current.Slots[idx] = slot
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate day rows: %w", err)
	}

	return days, nil
}

// assignmentArgs flattens an optional assignment into nullable column values.
func assignmentArgs(a *domain.Assignment) (taskID, title, kind, source, fixed any) {
	if a == nil {
		return nil, nil, nil, nil, nil
	}
	return a.TaskID, a.TaskTitle, string(a.Kind), string(a.Source), a.Fixed
}
