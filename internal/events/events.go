package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Type names a kind of calendar change.
type Type string

// Event types.
const (
	// TypeDaysCreated carries a DaysCreatedPayload.
	TypeDaysCreated Type = "days.created"
	// TypeTaskAssigned carries a PlacementPayload.
	TypeTaskAssigned Type = "task.assigned"
	// TypeTaskCarried carries a PlacementPayload for an assignment pushed to the next day.
	TypeTaskCarried Type = "task.carried"
	// TypeTaskPromoted carries a PromotionPayload.
	TypeTaskPromoted Type = "task.promoted"
)

// ScheduleEvent records one committed change to a user's calendar.
type ScheduleEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	Type   Type      `json:"type"`
	UserID uuid.UUID `json:"user_id"`

	// Payload contains the type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	CreatedAt time.Time `json:"created_at"`
}

// PlacementPayload identifies a slot and the task placed in it.
type PlacementPayload struct {
	Date    string `json:"date"`
	SlotIdx int    `json:"slot_idx"`
	TaskID  string `json:"task_id"`
	Source  string `json:"source,omitempty"`
}

// PromotionPayload describes a priority swap.
type PromotionPayload struct {
	TaskID string           `json:"task_id"`
	From   PlacementPayload `json:"from"`
	To     PlacementPayload `json:"to"`
}

// DaysCreatedPayload lists the dates of newly created Days.
type DaysCreatedPayload struct {
	Dates []string `json:"dates"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *ScheduleEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewScheduleEvent creates an event of the given type for userID.
func NewScheduleEvent(eventType Type, userID uuid.UUID, payload interface{}, at time.Time) (*ScheduleEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &ScheduleEvent{
		ID:        uuid.New(),
		Type:      eventType,
		UserID:    userID,
		Payload:   payloadBytes,
		CreatedAt: at.UTC(),
	}, nil
}

// EventHandler processes calendar events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *ScheduleEvent) error
}

// EventEmitter publishes calendar events without knowledge of the handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *ScheduleEvent) error
}
