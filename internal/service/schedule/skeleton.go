package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/dayplan-api/internal/domain"
	"github.com/phrazzld/dayplan-api/internal/platform/logger"
	"github.com/phrazzld/dayplan-api/internal/store"
)

// GenerateSkeleton implements Service.GenerateSkeleton.
func (s *serviceImpl) GenerateSkeleton(
	ctx context.Context,
	userID uuid.UUID,
	until domain.Date,
) ([]domain.Date, error) {
	if err := validateUser(userID); err != nil {
		return nil, err
	}
	if until.IsZero() {
		return nil, domain.NewValidationError("until", "is required", domain.ErrInvalidDate)
	}

	var created []domain.Date
	err := s.inTx(ctx, func(ctx context.Context, days store.DayStore) error {
		var err error
		created, err = s.generateSkeleton(ctx, days, userID, until)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.emitDaysCreated(ctx, userID, created)
	return created, nil
}

// generateSkeleton creates the Days missing between the user's latest Day
// and min(until, today+horizon).
func (s *serviceImpl) generateSkeleton(
	ctx context.Context,
	days store.DayStore,
	userID uuid.UUID,
	until domain.Date,
) ([]domain.Date, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("user_id", userID.String()))

	now := s.clock()
	today := domain.DateOf(now)
	end := domain.MinDate(until, today.AddDays(s.horizonDays))

	start := today
	latest, err := days.Latest(ctx, userID)
	switch {
	case err == nil:
		start = latest.Date.AddDays(1)
	case errors.Is(err, store.ErrNotFound):
	default:
		log.Error("failed to find latest day", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to find latest day: %w", err)
	}

	created := make([]domain.Date, 0)
	for date := start; !date.After(end); date = date.AddDays(1) {
		if err := days.Create(ctx, domain.NewDay(userID, date, now)); err != nil {
			if errors.Is(err, store.ErrDayExists) {
				log.Debug("day already exists", slog.String("date", date.String()))
				continue
			}
			log.Error("failed to create day",
				slog.String("date", date.String()),
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to create day %s: %w", date, err)
		}
		created = append(created, date)
	}

	if len(created) > 0 {
		log.Info("generated day skeleton",
			slog.String("from", created[0].String()),
			slog.String("to", created[len(created)-1].String()),
			slog.Int("count", len(created)))
	}
	return created, nil
}

func validateUser(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return domain.NewValidationError("user_id", "is required", domain.ErrInvalidID)
	}
	return nil
}
