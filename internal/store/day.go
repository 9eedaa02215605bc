package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/dayplan-api/internal/domain"
)

// DayStore defines the interface for Day persistence.
// All queries are scoped to one user's partition.
type DayStore interface {
	// Create inserts a new Day with its three slots.
	// Returns ErrDayExists if a Day for the same user and date is already stored;
	// the existing Day is left untouched. Safe to call inside a transaction.
	Create(ctx context.Context, day *domain.Day) error

	// Get retrieves the Day of userID on date.
	// Returns ErrDayNotFound if it does not exist.
	Get(ctx context.Context, userID uuid.UUID, date domain.Date) (*domain.Day, error)

	// Latest retrieves the user's Day with the greatest date.
	// Returns ErrDayNotFound if the user has no Days.
	Latest(ctx context.Context, userID uuid.UUID) (*domain.Day, error)

	// ListRange retrieves the user's Days with from <= date <= to in ascending
	// date order. A zero to leaves the range open-ended.
	// Returns an empty slice if nothing matches.
	ListRange(ctx context.Context, userID uuid.UUID, from, to domain.Date) ([]*domain.Day, error)

	// FindByTask retrieves the earliest Day that has a slot assigned to taskID.
	// Returns ErrDayNotFound if the task is not scheduled.
	FindByTask(ctx context.Context, userID uuid.UUID, taskID string) (*domain.Day, error)

	// FirstOccupied retrieves the earliest Day with at least one populated slot.
	// Returns ErrDayNotFound if every slot of the user is empty.
	FirstOccupied(ctx context.Context, userID uuid.UUID) (*domain.Day, error)

	// Replace overwrites the stored Day with day, slots included, provided the
	// stored version still equals day.Version. On success day.Version is
	// incremented. Returns ErrConflict if the stored version differs and
	// ErrDayNotFound if the Day does not exist.
	Replace(ctx context.Context, day *domain.Day) error

	// WithTx returns a new DayStore instance that uses the provided transaction.
	// Scheduling operations read and write several Days; they must run all of
	// them through the same transactional store.
	//
	// Example usage:
	//   err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
	//       days := dayStore.WithTx(tx)
	//       return days.Replace(ctx, day)
	//   })
	WithTx(tx *sql.Tx) DayStore
}
