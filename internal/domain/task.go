package domain

// Kind is the category of a task. It decides which days a task may land on.
type Kind string

// Task kinds.
const (
	KindWork     Kind = "work"
	KindPersonal Kind = "personal"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindWork || k == KindPersonal
}

// Source records whether an assignment was placed by search or by the caller.
type Source string

// Assignment sources.
const (
	SourceAuto   Source = "auto"
	SourceManual Source = "manual"
)

// Valid reports whether s is a known source.
func (s Source) Valid() bool {
	return s == SourceAuto || s == SourceManual
}

// Task is the part of a task record the scheduler reads.
// Task records themselves are owned and persisted elsewhere.
type Task struct {
	ID    string `json:"id"`
	Kind  Kind   `json:"kind"`
	Title string `json:"title"`
	Fixed bool   `json:"fixed"`
}

// Validate checks the fields the scheduler depends on.
func (t Task) Validate() error {
	if t.ID == "" {
		return NewValidationError("task.id", "is required", ErrValidation)
	}
	if !t.Kind.Valid() {
		return NewValidationError("task.kind", "must be work or personal", ErrInvalidKind)
	}
	return nil
}

// IsWeekend reports whether an ISO weekday (1=Monday..7=Sunday) is Saturday or Sunday.
func IsWeekend(weekday int) bool {
	return weekday == 6 || weekday == 7
}

// ViolatesDayRule reports whether placing a task of the given kind on a day
// with the given ISO weekday breaks the work-on-weekdays / personal-on-weekends rule.
func ViolatesDayRule(kind Kind, weekday int) bool {
	weekend := IsWeekend(weekday)
	return (kind == KindWork && weekend) || (kind == KindPersonal && !weekend)
}
