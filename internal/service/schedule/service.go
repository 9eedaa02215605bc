package schedule

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/dayplan-api/internal/domain"
)

// Placement identifies the slot a task occupies.
type Placement struct {
	Date    domain.Date `json:"date"`
	SlotIdx int         `json:"slot_idx"`
	TaskID  string      `json:"task_id"`
}

// AssignSpecificRequest describes a caller-chosen placement.
type AssignSpecificRequest struct {
	Date    domain.Date
	SlotIdx int
	Task    domain.Task
	// Source defaults to domain.SourceManual when empty.
	Source domain.Source
}

// AssignSpecificResult reports the placement and, when the target slot was
// occupied, where the displaced assignment that fell off the day ended up.
type AssignSpecificResult struct {
	Placement
	Carried *Placement `json:"carried,omitempty"`
}

// PromoteResult reports the outcome of a priority swap.
// From and To are nil when nothing was swapped.
type PromoteResult struct {
	Swapped bool       `json:"swapped"`
	From    *Placement `json:"from,omitempty"`
	To      *Placement `json:"to,omitempty"`
}

// Service places tasks into the three daily slots of a user's calendar.
//
// Every mutating operation runs in a single database transaction: it either
// fully succeeds or leaves the calendar untouched. A concurrent modification
// of the same Day surfaces as store.ErrConflict and the whole call may be retried.
type Service interface {
	// GenerateSkeleton creates the missing Days after the user's latest Day
	// (or from today if there is none) through until, clamped to today plus
	// the horizon. Days that already exist are skipped silently.
	//
	// Returns the dates actually created, possibly none.
	GenerateSkeleton(ctx context.Context, userID uuid.UUID, until domain.Date) ([]domain.Date, error)

	// AssignFirstFree places task into the earliest compliant free slot on
	// or after from, within the configured search window. The evening slot
	// and locked slots are never chosen. Days whose type the task's kind
	// violates are skipped unless the task is fixed.
	//
	// Returns:
	//   - ErrNoDays when the window holds no Days
	//   - ErrNoFreeSlot when every Day was skipped or full
	AssignFirstFree(ctx context.Context, userID uuid.UUID, from domain.Date, task domain.Task) (*Placement, error)

	// AssignSpecific places a task into the requested slot. An occupant of
	// that slot and everything after it shift one slot later; an assignment
	// pushed past the evening slot is carried to the first eligible slot of
	// the next day.
	//
	// Returns:
	//   - store.ErrDayNotFound or ErrSlotNotFound when the target is missing
	//   - *RuleViolationError when the slot or day type forbids the placement
	//   - ErrCascadeExhausted when the carry has nowhere to go
	AssignSpecific(ctx context.Context, userID uuid.UUID, req AssignSpecificRequest) (*AssignSpecificResult, error)

	// PromoteTask swaps the assignment of taskID with the earliest populated
	// slot of the user. Placement rules are not re-checked.
	//
	// Returns ErrTaskNotScheduled when no slot holds taskID.
	PromoteTask(ctx context.Context, userID uuid.UUID, taskID string) (*PromoteResult, error)

	// ListDays returns the user's Days with from <= date <= to in ascending
	// order. A zero to leaves the range open-ended.
	ListDays(ctx context.Context, userID uuid.UUID, from, to domain.Date) ([]*domain.Day, error)
}
