package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/dayplan-api/internal/domain"
	"github.com/phrazzld/dayplan-api/internal/events"
	"github.com/phrazzld/dayplan-api/internal/platform/logger"
	"github.com/phrazzld/dayplan-api/internal/store"
)

// PromoteTask implements Service.PromoteTask.
func (s *serviceImpl) PromoteTask(ctx context.Context, userID uuid.UUID, taskID string) (*PromoteResult, error) {
	if err := validateUser(userID); err != nil {
		return nil, err
	}
	if taskID == "" {
		return nil, domain.NewValidationError("task_id", "is required", domain.ErrInvalidID)
	}

	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("user_id", userID.String()),
		slog.String("task_id", taskID),
	)

	result := &PromoteResult{}
	err := s.inTx(ctx, func(ctx context.Context, days store.DayStore) error {
		holder, err := days.FindByTask(ctx, userID, taskID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrTaskNotScheduled, taskID)
			}
			return fmt.Errorf("failed to find task: %w", err)
		}
		earliest, err := days.FirstOccupied(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to find earliest scheduled day: %w", err)
		}

		from := holder.SlotOfTask(taskID)
		to := earliest.FirstOccupiedSlot()
		if holder.Date.Equal(earliest.Date) && from == to {
			return nil
		}

		if holder.Date.Equal(earliest.Date) {
			holder.Slots[from].Assignment, holder.Slots[to].Assignment =
				holder.Slots[to].Assignment, holder.Slots[from].Assignment
			if err := days.Replace(ctx, holder); err != nil {
				return fmt.Errorf("failed to save day %s: %w", holder.Date, err)
			}
		} else {
			holder.Slots[from].Assignment, earliest.Slots[to].Assignment =
				earliest.Slots[to].Assignment, holder.Slots[from].Assignment
			if err := days.Replace(ctx, earliest); err != nil {
				return fmt.Errorf("failed to save day %s: %w", earliest.Date, err)
			}
			if err := days.Replace(ctx, holder); err != nil {
				return fmt.Errorf("failed to save day %s: %w", holder.Date, err)
			}
		}

		result.Swapped = true
		result.From = &Placement{Date: holder.Date, SlotIdx: from, TaskID: taskID}
		result.To = &Placement{Date: earliest.Date, SlotIdx: to, TaskID: taskID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Swapped {
		log.Info("promoted task",
			slog.String("from_date", result.From.Date.String()),
			slog.Int("from_slot_idx", result.From.SlotIdx),
			slog.String("to_date", result.To.Date.String()),
			slog.Int("to_slot_idx", result.To.SlotIdx))
		s.emit(ctx, events.TypeTaskPromoted, userID, events.PromotionPayload{
			TaskID: taskID,
			From:   placementPayload(result.From, ""),
			To:     placementPayload(result.To, ""),
		})
	} else {
		log.Debug("task already holds the earliest slot")
	}
	return result, nil
}
