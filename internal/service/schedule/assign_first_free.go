package schedule

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/dayplan-api/internal/domain"
	"github.com/phrazzld/dayplan-api/internal/events"
	"github.com/phrazzld/dayplan-api/internal/platform/logger"
	"github.com/phrazzld/dayplan-api/internal/store"
)

// AssignFirstFree implements Service.AssignFirstFree.
func (s *serviceImpl) AssignFirstFree(
	ctx context.Context,
	userID uuid.UUID,
	from domain.Date,
	task domain.Task,
) (*Placement, error) {
	if err := validateUser(userID); err != nil {
		return nil, err
	}
	if from.IsZero() {
		return nil, domain.NewValidationError("date_from", "is required", domain.ErrInvalidDate)
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}

	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("user_id", userID.String()),
		slog.String("task_id", task.ID),
	)
	end := from.AddDays(s.searchDays)

	var placement *Placement
	var created []domain.Date
	err := s.inTx(ctx, func(ctx context.Context, days store.DayStore) error {
		var err error
		if created, err = s.generateSkeleton(ctx, days, userID, end); err != nil {
			return err
		}

		candidates, err := days.ListRange(ctx, userID, from, end)
		if err != nil {
			return fmt.Errorf("failed to list days: %w", err)
		}
		if len(candidates) == 0 {
			log.Warn("no days in search window",
				slog.String("from", from.String()),
				slog.String("to", end.String()))
			return ErrNoDays
		}

		for _, day := range candidates {
			if domain.ViolatesDayRule(task.Kind, day.Weekday) && !task.Fixed {
				continue
			}
			idx := day.FirstOpenSlot()
			if idx < 0 {
				continue
			}

			day.Slots[idx].Assignment = domain.NewAssignment(task, domain.SourceAuto)
			if err := days.Replace(ctx, day); err != nil {
				return fmt.Errorf("failed to save day %s: %w", day.Date, err)
			}
			placement = &Placement{Date: day.Date, SlotIdx: idx, TaskID: task.ID}
			return nil
		}

		log.Info("no compliant free slot",
			slog.String("from", from.String()),
			slog.String("to", end.String()),
			slog.String("kind", string(task.Kind)),
			slog.Bool("fixed", task.Fixed))
		return ErrNoFreeSlot
	})
	if err != nil {
		return nil, err
	}

	log.Info("assigned task to first free slot",
		slog.String("date", placement.Date.String()),
		slog.Int("slot_idx", placement.SlotIdx))
	s.emitDaysCreated(ctx, userID, created)
	s.emit(ctx, events.TypeTaskAssigned, userID, placementPayload(placement, domain.SourceAuto))
	return placement, nil
}
