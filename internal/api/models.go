package api

import (
	"github.com/phrazzld/dayplan-api/internal/domain"
	"github.com/phrazzld/dayplan-api/internal/service/schedule"
)

// Common request/response structures

// TaskPayload is the part of a task record the scheduler needs.
type TaskPayload struct {
	ID    string `json:"id"    validate:"required"`
	Kind  string `json:"kind"  validate:"required,oneof=work personal"`
	Title string `json:"title"`
	Fixed bool   `json:"fixed"`
}

func (p TaskPayload) toDomain() domain.Task {
	return domain.Task{
		ID:    p.ID,
		Kind:  domain.Kind(p.Kind),
		Title: p.Title,
		Fixed: p.Fixed,
	}
}

// AssignSpecificRequest defines the payload for placing a task into a chosen slot.
type AssignSpecificRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	// SlotIdx is a pointer so that an omitted index is distinguishable from 0.
	SlotIdx *int        `json:"slotIdx" validate:"required"`
	Task    TaskPayload `json:"task"    validate:"required"`
	// Source defaults to manual.
	Source string `json:"source" validate:"omitempty,oneof=auto manual"`
}

// AssignFirstFreeRequest defines the payload for placing a task into the
// earliest free slot on or after DateFrom.
type AssignFirstFreeRequest struct {
	DateFrom string      `json:"dateFrom" validate:"required,datetime=2006-01-02"`
	Task     TaskPayload `json:"task"     validate:"required"`
}

// PromoteRequest defines the payload for swapping a task into the earliest populated slot.
type PromoteRequest struct {
	TaskID string `json:"taskId" validate:"required"`
}

// SkeletonRequest defines the payload for generating empty Days.
type SkeletonRequest struct {
	Until string `json:"until" validate:"required,datetime=2006-01-02"`
}

// PlacementResponse identifies the slot a task ended up in.
type PlacementResponse struct {
	Date    string `json:"date"`
	SlotIdx int    `json:"slotIdx"`
	TaskID  string `json:"taskId"`
}

// AssignSpecificResponse is returned by the assign-specific endpoint.
// Carried is set when the placement pushed an assignment onto the next day.
type AssignSpecificResponse struct {
	OK bool `json:"ok"`
	PlacementResponse
	Carried *PlacementResponse `json:"carried,omitempty"`
}

// AssignFirstFreeResponse is returned by the assign-first-free endpoint.
type AssignFirstFreeResponse struct {
	OK bool `json:"ok"`
	PlacementResponse
}

// PromoteResponse is returned by the promote endpoint.
type PromoteResponse struct {
	OK      bool               `json:"ok"`
	Swapped bool               `json:"swapped"`
	From    *PlacementResponse `json:"from,omitempty"`
	To      *PlacementResponse `json:"to,omitempty"`
}

// SkeletonResponse lists the dates of the Days that were created.
type SkeletonResponse struct {
	OK      bool     `json:"ok"`
	Created []string `json:"created"`
}

// AssignmentResponse describes the task held by a slot.
type AssignmentResponse struct {
	TaskID    string `json:"taskId"`
	TaskTitle string `json:"taskTitle"`
	Kind      string `json:"kind"`
	Source    string `json:"source"`
	Fixed     bool   `json:"fixed"`
}

// SlotResponse describes one slot of a Day.
type SlotResponse struct {
	Idx        int                 `json:"idx"`
	Label      string              `json:"label"`
	Locked     bool                `json:"locked"`
	ManualOnly bool                `json:"manualOnly"`
	Assignment *AssignmentResponse `json:"assignment"`
}

// DayResponse describes one Day of the calendar.
type DayResponse struct {
	Date     string         `json:"date"`
	Weekday  int            `json:"weekday"`
	Weekend  bool           `json:"weekend"`
	Timezone string         `json:"timezone"`
	Slots    []SlotResponse `json:"slots"`
}

// ListDaysResponse is returned by the days endpoint.
type ListDaysResponse struct {
	OK   bool          `json:"ok"`
	Days []DayResponse `json:"days"`
}

func placementToResponse(p *schedule.Placement) *PlacementResponse {
	if p == nil {
		return nil
	}
	return &PlacementResponse{
		Date:    p.Date.String(),
		SlotIdx: p.SlotIdx,
		TaskID:  p.TaskID,
	}
}

func dayToResponse(d *domain.Day) DayResponse {
	resp := DayResponse{
		Date:     d.Date.String(),
		Weekday:  d.Weekday,
		Weekend:  d.IsWeekend(),
		Timezone: d.Timezone,
		Slots:    make([]SlotResponse, 0, len(d.Slots)),
	}
	for _, s := range d.Slots {
		slot := SlotResponse{
			Idx:        s.Idx,
			Label:      s.Label,
			Locked:     s.Locked,
			ManualOnly: s.ManualOnly,
		}
		if a := s.Assignment; a != nil {
			slot.Assignment = &AssignmentResponse{
				TaskID:    a.TaskID,
				TaskTitle: a.TaskTitle,
				Kind:      string(a.Kind),
				Source:    string(a.Source),
				Fixed:     a.Fixed,
			}
		}
		resp.Slots = append(resp.Slots, slot)
	}
	return resp
}

func datesToStrings(dates []domain.Date) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.String())
	}
	return out
}
