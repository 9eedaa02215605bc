package schedule

import (
	"errors"
	"fmt"

	"github.com/phrazzld/dayplan-api/internal/domain"
	"github.com/phrazzld/dayplan-api/internal/store"
)

// Common error types for the schedule Service
var (
	// ErrNoDays indicates that the search window holds no Days at all.
	ErrNoDays = fmt.Errorf("%w: no days", store.ErrNotFound)

	// ErrSlotNotFound indicates a slot index outside the Day.
	ErrSlotNotFound = fmt.Errorf("%w: slot", store.ErrNotFound)

	// ErrTaskNotScheduled indicates that no slot of the user holds the task.
	ErrTaskNotScheduled = fmt.Errorf("%w: task is not scheduled", store.ErrNotFound)

	// ErrNoFreeSlot indicates that every Day in the window was skipped or full.
	// The window is never widened automatically.
	ErrNoFreeSlot = errors.New("no compliant free slot found")

	// ErrCascadeExhausted indicates that a displaced assignment could not be
	// placed on the following day.
	ErrCascadeExhausted = errors.New("no place for carry")

	// ErrRuleViolation is matched by every *RuleViolationError.
	ErrRuleViolation = errors.New("rule violation")
)

// Rule names a placement rule.
type Rule string

// Placement rules.
const (
	RuleManualOnly Rule = "manual_only"
	RuleLocked     Rule = "locked"
	RuleDayType    Rule = "day_type"
)

// RuleViolationError reports a placement forbidden by a slot or day-type rule,
// with the conditions that caused it.
type RuleViolationError struct {
	Rule    Rule
	Date    domain.Date
	SlotIdx int
	Kind    domain.Kind
	Weekend bool
	Source  domain.Source
	Fixed   bool
}

// Error implements the error interface for RuleViolationError.
func (e *RuleViolationError) Error() string {
	switch e.Rule {
	case RuleManualOnly:
		return fmt.Sprintf("rule violation: slot %d on %s is manual-only (source=%s)",
			e.SlotIdx, e.Date, e.Source)
	case RuleLocked:
		return fmt.Sprintf("rule violation: slot %d on %s is locked (source=%s)",
			e.SlotIdx, e.Date, e.Source)
	default:
		dayType := "weekday"
		if e.Weekend {
			dayType = "weekend"
		}
		return fmt.Sprintf("rule violation: %s task on %s %s (kind=%s weekend=%t source=%s fixed=%t)",
			e.Kind, dayType, e.Date, e.Kind, e.Weekend, e.Source, e.Fixed)
	}
}

// Is reports ErrRuleViolation as a match.
func (e *RuleViolationError) Is(target error) bool {
	return target == ErrRuleViolation
}
