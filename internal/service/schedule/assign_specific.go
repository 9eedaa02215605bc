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

// AssignSpecific implements Service.AssignSpecific.
func (s *serviceImpl) AssignSpecific(
	ctx context.Context,
	userID uuid.UUID,
	req AssignSpecificRequest,
) (*AssignSpecificResult, error) {
	if err := validateUser(userID); err != nil {
		return nil, err
	}
	if req.Date.IsZero() {
		return nil, domain.NewValidationError("date", "is required", domain.ErrInvalidDate)
	}
	if err := req.Task.Validate(); err != nil {
		return nil, err
	}
	source := req.Source
	if source == "" {
		source = domain.SourceManual
	}
	if !source.Valid() {
		return nil, domain.NewValidationError("source", "must be auto or manual", domain.ErrInvalidSource)
	}

	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("user_id", userID.String()),
		slog.String("task_id", req.Task.ID),
		slog.String("date", req.Date.String()),
		slog.Int("slot_idx", req.SlotIdx),
	)

	result := &AssignSpecificResult{
		Placement: Placement{Date: req.Date, SlotIdx: req.SlotIdx, TaskID: req.Task.ID},
	}
	var created []domain.Date
	var carrySource domain.Source
	err := s.inTx(ctx, func(ctx context.Context, days store.DayStore) error {
		// Materialize the next day as well so a carry has somewhere to land.
		var err error
		if created, err = s.generateSkeleton(ctx, days, userID, req.Date.AddDays(1)); err != nil {
			return err
		}

		day, err := days.Get(ctx, userID, req.Date)
		if err != nil {
			return fmt.Errorf("failed to get day %s: %w", req.Date, err)
		}
		slot, ok := day.Slot(req.SlotIdx)
		if !ok {
			return fmt.Errorf("%w: index %d", ErrSlotNotFound, req.SlotIdx)
		}
		if err := checkSpecificRules(day, slot, req.Task, source); err != nil {
			log.Info("placement rejected", slog.String("reason", err.Error()))
			return err
		}

		var carry *domain.Assignment
		if !slot.Empty() {
			carry = day.Evict(req.SlotIdx)
		}
		slot.Assignment = domain.NewAssignment(req.Task, source)
		if err := days.Replace(ctx, day); err != nil {
			return fmt.Errorf("failed to save day %s: %w", day.Date, err)
		}

		if carry == nil {
			return nil
		}
		placed, err := s.placeCarry(ctx, days, userID, req.Date.AddDays(1), carry)
		if err != nil {
			log.Warn("carry could not be placed",
				slog.String("carry_task_id", carry.TaskID),
				slog.String("error", err.Error()))
			return err
		}
		result.Carried = placed
		carrySource = carry.Source
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Carried != nil {
		log.Info("assigned task with carry",
			slog.String("carry_task_id", result.Carried.TaskID),
			slog.String("carry_date", result.Carried.Date.String()),
			slog.Int("carry_slot_idx", result.Carried.SlotIdx))
	} else {
		log.Info("assigned task to specific slot")
	}

	s.emitDaysCreated(ctx, userID, created)
	s.emit(ctx, events.TypeTaskAssigned, userID, placementPayload(&result.Placement, source))
	if result.Carried != nil {
		s.emit(ctx, events.TypeTaskCarried, userID, placementPayload(result.Carried, carrySource))
	}
	return result, nil
}

// checkSpecificRules applies the slot and day-type rules in order: manual-only
// and locked slots need a manual source; a day-type mismatch needs a manual
// source and a fixed task.
func checkSpecificRules(day *domain.Day, slot *domain.Slot, task domain.Task, source domain.Source) error {
	violation := &RuleViolationError{
		Date:    day.Date,
		SlotIdx: slot.Idx,
		Kind:    task.Kind,
		Weekend: day.IsWeekend(),
		Source:  source,
		Fixed:   task.Fixed,
	}
	manual := source == domain.SourceManual

	switch {
	case slot.ManualOnly && !manual:
		violation.Rule = RuleManualOnly
	case slot.Locked && !manual:
		violation.Rule = RuleLocked
	case domain.ViolatesDayRule(task.Kind, day.Weekday) && !(manual && task.Fixed):
		violation.Rule = RuleDayType
	default:
		return nil
	}
	return violation
}

// placeCarry moves carry into the first eligible slot of the Day on date.
// The carry never travels further than that one Day.
func (s *serviceImpl) placeCarry(
	ctx context.Context,
	days store.DayStore,
	userID uuid.UUID,
	date domain.Date,
	carry *domain.Assignment,
) (*Placement, error) {
	next, err := days.Get(ctx, userID, date)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s is not materialized", ErrCascadeExhausted, date)
		}
		return nil, fmt.Errorf("failed to get day %s: %w", date, err)
	}

	violates := domain.ViolatesDayRule(carry.Kind, next.Weekday) && !carry.Fixed
	idx := -1
	if !violates {
		idx = next.FirstOpenSlot()
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: no eligible slot on %s for task %s", ErrCascadeExhausted, date, carry.TaskID)
	}

	next.Slots[idx].Assignment = carry
	if err := days.Replace(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save day %s: %w", next.Date, err)
	}
	return &Placement{Date: next.Date, SlotIdx: idx, TaskID: carry.TaskID}, nil
}
