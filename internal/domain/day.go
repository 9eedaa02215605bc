package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// SlotsPerDay is the fixed number of time slots in every Day.
const SlotsPerDay = 3

// Slot positions.
const (
	SlotMorning = 0
	SlotMidday  = 1
	SlotEvening = 2
)

// Hours of "today" from which a slot counts as passed and is created locked.
const (
	morningLockHour = 12
	middayLockHour  = 17
)

// slotLabels holds the label of each slot position.
var slotLabels = [SlotsPerDay]string{"morning", "midday", "evening"}

// Common validation errors for Day
var (
	ErrEmptyDayUserID   = errors.New("day user ID cannot be empty")
	ErrEmptyDayDate     = errors.New("day date cannot be empty")
	ErrInvalidWeekday   = errors.New("day weekday must be between 1 and 7")
	ErrInvalidSlotOrder = errors.New("day slots must be ordered 0, 1, 2")
	ErrEveningNotManual = errors.New("evening slot must be manual-only")
	ErrPartialSlot      = errors.New("slot assignment must be fully populated or empty")
)

// Assignment binds a task to a slot.
type Assignment struct {
	TaskID    string `json:"task_id"`
	TaskTitle string `json:"task_title"`
	Kind      Kind   `json:"kind"`
	Source    Source `json:"source"`
	Fixed     bool   `json:"fixed"`
}

// NewAssignment builds the assignment of t placed by source.
func NewAssignment(t Task, source Source) *Assignment {
	return &Assignment{
		TaskID:    t.ID,
		TaskTitle: t.Title,
		Kind:      t.Kind,
		Source:    source,
		Fixed:     t.Fixed,
	}
}

// Slot is one of the three time windows of a Day.
// A nil Assignment means the slot is free.
type Slot struct {
	Idx        int         `json:"idx"`
	Label      string      `json:"label"`
	Locked     bool        `json:"locked"`
	ManualOnly bool        `json:"manual_only"`
	Assignment *Assignment `json:"assignment"`
}

// Empty reports whether the slot holds no assignment.
func (s *Slot) Empty() bool {
	return s.Assignment == nil
}

// OpenForAuto reports whether automatic placement may use the slot.
func (s *Slot) OpenForAuto() bool {
	return !s.ManualOnly && !s.Locked && s.Empty()
}

// Day is a user's calendar record for one date.
type Day struct {
	UserID   uuid.UUID         `json:"user_id"`
	Date     Date              `json:"date"`
	Weekday  int               `json:"weekday"`
	Timezone string            `json:"timezone"`
	Slots    [SlotsPerDay]Slot `json:"slots"`

	// Version is incremented by every successful replace and is used for
	// check-and-set updates.
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDay creates the empty skeleton Day for date. now is the current instant in
// the user's location; it decides which of today's slots have already passed.
func NewDay(userID uuid.UUID, date Date, now time.Time) *Day {
	today := DateOf(now)
	isToday := date.Equal(today)
	hour := now.Hour()

	day := &Day{
		UserID:    userID,
		Date:      date,
		Weekday:   date.ISOWeekday(),
		Timezone:  now.Location().String(),
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	for i := range day.Slots {
		day.Slots[i] = Slot{Idx: i, Label: slotLabels[i]}
	}
	day.Slots[SlotMorning].Locked = isToday && hour >= morningLockHour
	day.Slots[SlotMidday].Locked = isToday && hour >= middayLockHour
	day.Slots[SlotEvening].ManualOnly = true
	return day
}

// Validate checks the structural invariants of the Day.
func (d *Day) Validate() error {
	if d.UserID == uuid.Nil {
		return ErrEmptyDayUserID
	}
	if d.Date.IsZero() {
		return ErrEmptyDayDate
	}
	if d.Weekday < 1 || d.Weekday > 7 {
		return ErrInvalidWeekday
	}
	for i := range d.Slots {
		s := &d.Slots[i]
		if s.Idx != i {
			return ErrInvalidSlotOrder
		}
		if a := s.Assignment; a != nil && (a.TaskID == "" || !a.Kind.Valid() || !a.Source.Valid()) {
			return ErrPartialSlot
		}
	}
	if !d.Slots[SlotEvening].ManualOnly {
		return ErrEveningNotManual
	}
	return nil
}

// IsWeekend reports whether the day falls on Saturday or Sunday.
func (d *Day) IsWeekend() bool {
	return IsWeekend(d.Weekday)
}

// Slot returns the slot at idx, or false if idx is out of range.
func (d *Day) Slot(idx int) (*Slot, bool) {
	if idx < 0 || idx >= SlotsPerDay {
		return nil, false
	}
	return &d.Slots[idx], true
}

// FirstOpenSlot returns the index of the first slot automatic placement may
// use, or -1 if there is none.
func (d *Day) FirstOpenSlot() int {
	for i := range d.Slots {
		if d.Slots[i].OpenForAuto() {
			return i
		}
	}
	return -1
}

// FirstOccupiedSlot returns the index of the first populated slot, or -1.
func (d *Day) FirstOccupiedSlot() int {
	for i := range d.Slots {
		if !d.Slots[i].Empty() {
			return i
		}
	}
	return -1
}

// SlotOfTask returns the index of the first slot holding taskID, or -1.
func (d *Day) SlotOfTask(taskID string) int {
	for i := range d.Slots {
		if a := d.Slots[i].Assignment; a != nil && a.TaskID == taskID {
			return i
		}
	}
	return -1
}

// Evict frees slot idx by moving every later assignment back one position.
// The assignment pushed past the last slot is returned as the carry, or nil
// if the last slot was free. Slot properties other than the assignment stay put.
func (d *Day) Evict(idx int) *Assignment {
	last := SlotsPerDay - 1
	carry := d.Slots[last].Assignment
	for i := last; i > idx; i-- {
		d.Slots[i].Assignment = d.Slots[i-1].Assignment
	}
	d.Slots[idx].Assignment = nil
	return carry
}
