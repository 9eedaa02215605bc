package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/dayplan-api/internal/domain"
	"github.com/phrazzld/dayplan-api/internal/events"
	"github.com/phrazzld/dayplan-api/internal/platform/logger"
	"github.com/phrazzld/dayplan-api/internal/store"
)

// Default window sizes, in days.
const (
	DefaultHorizonDays = 28
	DefaultSearchDays  = 14
)

// Config holds the tunables of the Service.
type Config struct {
	// HorizonDays bounds how far past today Days are materialized.
	HorizonDays int
	// SearchDays bounds how far past its start date AssignFirstFree looks.
	SearchDays int
	// Location is the users' timezone; it decides what "today" is and which
	// of today's slots have passed.
	Location *time.Location
	// Now returns the current instant. Defaults to time.Now.
	Now func() time.Time
	// Events receives a ScheduleEvent after every committed change. Optional.
	Events events.EventEmitter
}

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	db          *sql.DB
	days        store.DayStore
	horizonDays int
	searchDays  int
	loc         *time.Location
	now         func() time.Time
	events      events.EventEmitter
	logger      *slog.Logger
}

// NewService creates a Service that keeps Days in days and runs every
// operation in a transaction on db.
func NewService(db *sql.DB, days store.DayStore, cfg Config, logger *slog.Logger) Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if days == nil {
		panic("days cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &serviceImpl{
		db:          db,
		days:        days,
		horizonDays: cfg.HorizonDays,
		searchDays:  cfg.SearchDays,
		loc:         cfg.Location,
		now:         cfg.Now,
		events:      cfg.Events,
		logger:      logger.With(slog.String("component", "schedule_service")),
	}
	if s.horizonDays <= 0 {
		s.horizonDays = DefaultHorizonDays
	}
	if s.searchDays <= 0 {
		s.searchDays = DefaultSearchDays
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// clock returns the current instant in the service location.
func (s *serviceImpl) clock() time.Time {
	return s.now().In(s.loc)
}

// inTx runs fn with a DayStore bound to a fresh transaction.
func (s *serviceImpl) inTx(ctx context.Context, fn func(ctx context.Context, days store.DayStore) error) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.days.WithTx(tx))
	})
}

// emit publishes a change that has already been committed. Failures are
// logged only; the calendar change stands.
func (s *serviceImpl) emit(ctx context.Context, eventType events.Type, userID uuid.UUID, payload interface{}) {
	if s.events == nil {
		return
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewScheduleEvent(eventType, userID, payload, s.now())
	if err != nil {
		log.Error("failed to build event",
			slog.String("event_type", string(eventType)),
			slog.String("error", err.Error()))
		return
	}
	if err := s.events.EmitEvent(ctx, event); err != nil {
		log.Warn("event handler failed",
			slog.String("event_type", string(eventType)),
			slog.String("event_id", event.ID.String()),
			slog.String("error", err.Error()))
	}
}

// emitDaysCreated publishes the dates of newly created Days, if any.
func (s *serviceImpl) emitDaysCreated(ctx context.Context, userID uuid.UUID, created []domain.Date) {
	if len(created) == 0 {
		return
	}
	dates := make([]string, 0, len(created))
	for _, d := range created {
		dates = append(dates, d.String())
	}
	s.emit(ctx, events.TypeDaysCreated, userID, events.DaysCreatedPayload{Dates: dates})
}

func placementPayload(p *Placement, source domain.Source) events.PlacementPayload {
	return events.PlacementPayload{
		Date:    p.Date.String(),
		SlotIdx: p.SlotIdx,
		TaskID:  p.TaskID,
		Source:  string(source),
	}
}

// ListDays implements Service.ListDays.
func (s *serviceImpl) ListDays(
	ctx context.Context,
	userID uuid.UUID,
	from, to domain.Date,
) ([]*domain.Day, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := validateUser(userID); err != nil {
		return nil, err
	}
	if from.IsZero() {
		return nil, domain.NewValidationError("from", "is required", domain.ErrInvalidDate)
	}
	if !to.IsZero() && to.Before(from) {
		return nil, domain.NewValidationError("to", "must not be before from", domain.ErrInvalidDate)
	}

	days, err := s.days.ListRange(ctx, userID, from, to)
	if err != nil {
		log.Error("failed to list days",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list days: %w", err)
	}
	return days, nil
}
