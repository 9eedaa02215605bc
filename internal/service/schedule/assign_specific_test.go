package schedule_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/phrazzld/dayplan-api/internal/domain"
	"github.com/phrazzld/dayplan-api/internal/service/schedule"
	"github.com/phrazzld/dayplan-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignSpecific_WeekendScenario(t *testing.T) {
	t.Run("work on saturday is rejected", func(t *testing.T) {
		f := newFixture(t, mondayAt(8))
		f.place(t, "2025-01-18", 0, personalTask("T9"))

		_, err := f.svc.AssignSpecific(f.ctx, f.userID, schedule.AssignSpecificRequest{
			Date:    date("2025-01-18"),
			SlotIdx: 0,
			Task:    workTask("T2"),
			Source:  domain.SourceManual,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, schedule.ErrRuleViolation)

		var violation *schedule.RuleViolationError
		require.True(t, errors.As(err, &violation))
		assert.Equal(t, schedule.RuleDayType, violation.Rule)
		assert.Equal(t, domain.KindWork, violation.Kind)
		assert.True(t, violation.Weekend)
		assert.False(t, violation.Fixed)
		assert.Contains(t, err.Error(), "work task on weekend")

		assert.Equal(t, [3]string{"T9", "", ""}, f.taskIDs(t, "2025-01-18"))
	})

	t.Run("fixed work on saturday displaces occupant", func(t *testing.T) {
		f := newFixture(t, mondayAt(8))
		f.place(t, "2025-01-18", 0, personalTask("T9"))

		fixed := workTask("T2")
		fixed.Fixed = true
		res := f.place(t, "2025-01-18", 0, fixed)
		assert.Nil(t, res.Carried)

		assert.Equal(t, [3]string{"T2", "T9", ""}, f.taskIDs(t, "2025-01-18"))

		day := f.day(t, "2025-01-18")
		assert.Equal(t, domain.SourceManual, day.Slots[0].Assignment.Source)
		assert.True(t, day.Slots[0].Assignment.Fixed)
		assert.Equal(t, domain.KindPersonal, day.Slots[1].Assignment.Kind, "shifted payload is kept intact")
	})
}

func TestAssignSpecific_SlotRules(t *testing.T) {
	tests := []struct {
		name     string
		hour     int
		slotIdx  int
		source   domain.Source
		wantRule schedule.Rule
	}{
		{name: "auto into evening", hour: 8, slotIdx: 2, source: domain.SourceAuto, wantRule: schedule.RuleManualOnly},
		{name: "manual into evening", hour: 8, slotIdx: 2, source: domain.SourceManual},
		{name: "auto into locked morning", hour: 13, slotIdx: 0, source: domain.SourceAuto, wantRule: schedule.RuleLocked},
		{name: "auto into locked midday", hour: 18, slotIdx: 1, source: domain.SourceAuto, wantRule: schedule.RuleLocked},
		{name: "manual into locked morning", hour: 13, slotIdx: 0, source: domain.SourceManual},
		{name: "auto into open morning", hour: 8, slotIdx: 0, source: domain.SourceAuto},
		{name: "default source into evening", hour: 8, slotIdx: 2, source: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, mondayAt(tc.hour))

			_, err := f.svc.AssignSpecific(f.ctx, f.userID, schedule.AssignSpecificRequest{
				Date:    date("2025-01-13"),
				SlotIdx: tc.slotIdx,
				Task:    workTask("T1"),
				Source:  tc.source,
			})

			if tc.wantRule == "" {
				require.NoError(t, err)
				assert.Equal(t, "T1", f.taskIDs(t, "2025-01-13")[tc.slotIdx])
				return
			}
			var violation *schedule.RuleViolationError
			require.True(t, errors.As(err, &violation), "expected rule violation, got %v", err)
			assert.Equal(t, tc.wantRule, violation.Rule)
		})
	}
}

func TestAssignSpecific_DefaultSourceIsManual(t *testing.T) {
	f := newFixture(t, mondayAt(8))

	_, err := f.svc.AssignSpecific(f.ctx, f.userID, schedule.AssignSpecificRequest{
		Date:    date("2025-01-13"),
		SlotIdx: 1,
		Task:    workTask("T1"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SourceManual, f.day(t, "2025-01-13").Slots[1].Assignment.Source)
}

func TestAssignSpecific_CarryToNextDay(t *testing.T) {
	f := newFixture(t, mondayAt(8))
	f.place(t, "2025-01-13", 0, workTask("A"))
	f.place(t, "2025-01-13", 1, workTask("B"))
	f.place(t, "2025-01-13", 2, workTask("C"))
	f.place(t, "2025-01-14", 0, workTask("D"))

	res := f.place(t, "2025-01-13", 0, workTask("X"))

	assert.Equal(t, [3]string{"X", "A", "B"}, f.taskIDs(t, "2025-01-13"))
	assert.Equal(t, [3]string{"D", "C", ""}, f.taskIDs(t, "2025-01-14"))
	if diff := cmp.Diff(&schedule.Placement{Date: date("2025-01-14"), SlotIdx: 1, TaskID: "C"}, res.Carried,
		cmp.Comparer(func(a, b domain.Date) bool { return a.Equal(b) })); diff != "" {
		t.Errorf("carried placement mismatch (-want +got):\n%s", diff)
	}
}

func TestAssignSpecific_NoPriorOccupantIsLost(t *testing.T) {
	for idx := 0; idx < domain.SlotsPerDay; idx++ {
		f := newFixture(t, mondayAt(8))
		f.place(t, "2025-01-15", 0, workTask("A"))
		f.place(t, "2025-01-15", 1, workTask("B"))
		f.place(t, "2025-01-15", 2, workTask("C"))

		f.place(t, "2025-01-15", idx, workTask("X"))

		seen := map[string]bool{}
		for _, d := range []string{"2025-01-15", "2025-01-16"} {
			for _, id := range f.taskIDs(t, d) {
				if id != "" {
					seen[id] = true
				}
			}
		}
		for _, id := range []string{"A", "B", "C", "X"} {
			assert.True(t, seen[id], "slot %d: task %s lost", idx, id)
		}
	}
}

func TestAssignSpecific_CascadeExhausted(t *testing.T) {
	t.Run("carry violates next day type", func(t *testing.T) {
		f := newFixture(t, mondayAt(8))
		f.place(t, "2025-01-17", 0, workTask("A"))
		f.place(t, "2025-01-17", 1, workTask("B"))
		f.place(t, "2025-01-17", 2, workTask("C"))

		_, err := f.svc.AssignSpecific(f.ctx, f.userID, schedule.AssignSpecificRequest{
			Date: date("2025-01-17"), SlotIdx: 0, Task: workTask("X"), Source: domain.SourceManual,
		})
		assert.ErrorIs(t, err, schedule.ErrCascadeExhausted)

		assert.Equal(t, [3]string{"A", "B", "C"}, f.taskIDs(t, "2025-01-17"), "failed cascade must roll back")
		assert.Equal(t, [3]string{"", "", ""}, f.taskIDs(t, "2025-01-18"))
	})

	t.Run("fixed carry may break next day type", func(t *testing.T) {
		f := newFixture(t, mondayAt(8))
		f.place(t, "2025-01-17", 0, workTask("A"))
		f.place(t, "2025-01-17", 1, workTask("B"))
		c := workTask("C")
		c.Fixed = true
		f.place(t, "2025-01-17", 2, c)

		res := f.place(t, "2025-01-17", 0, workTask("X"))
		require.NotNil(t, res.Carried)
		assert.Equal(t, "2025-01-18", res.Carried.Date.String())
		assert.Equal(t, [3]string{"C", "", ""}, f.taskIDs(t, "2025-01-18"))
	})

	t.Run("next day full", func(t *testing.T) {
		f := newFixture(t, mondayAt(8))
		for _, d := range []string{"2025-01-13", "2025-01-14"} {
			f.place(t, d, 0, workTask(d+"-0"))
			f.place(t, d, 1, workTask(d+"-1"))
		}
		f.place(t, "2025-01-13", 2, workTask("C"))

		_, err := f.svc.AssignSpecific(f.ctx, f.userID, schedule.AssignSpecificRequest{
			Date: date("2025-01-13"), SlotIdx: 1, Task: workTask("X"),
		})
		assert.ErrorIs(t, err, schedule.ErrCascadeExhausted, "evening of the next day is never used for a carry")
	})

	t.Run("next day beyond horizon", func(t *testing.T) {
		f := newFixture(t, mondayAt(8))
		last := "2025-02-10"
		f.place(t, last, 0, workTask("A"))
		f.place(t, last, 1, workTask("B"))
		f.place(t, last, 2, workTask("C"))

		_, err := f.svc.AssignSpecific(f.ctx, f.userID, schedule.AssignSpecificRequest{
			Date: date(last), SlotIdx: 0, Task: workTask("X"),
		})
		assert.ErrorIs(t, err, schedule.ErrCascadeExhausted)
	})
}

func TestAssignSpecific_NotFound(t *testing.T) {
	f := newFixture(t, mondayAt(8))

	_, err := f.svc.AssignSpecific(f.ctx, f.userID, schedule.AssignSpecificRequest{
		Date: date("2025-06-01"), SlotIdx: 0, Task: workTask("T1"),
	})
	assert.ErrorIs(t, err, store.ErrDayNotFound)

	_, err = f.svc.AssignSpecific(f.ctx, f.userID, schedule.AssignSpecificRequest{
		Date: date("2025-01-13"), SlotIdx: 3, Task: workTask("T1"),
	})
	assert.ErrorIs(t, err, schedule.ErrSlotNotFound)
	assert.True(t, store.IsNotFoundError(err))
}

func TestAssignSpecific_Validation(t *testing.T) {
	f := newFixture(t, mondayAt(8))

	tests := []struct {
		name   string
		req    schedule.AssignSpecificRequest
		target error
	}{
		{name: "missing date", req: schedule.AssignSpecificRequest{Task: workTask("T1")}, target: domain.ErrInvalidDate},
		{name: "missing kind", req: schedule.AssignSpecificRequest{
			Date: date("2025-01-13"), Task: domain.Task{ID: "T1"}}, target: domain.ErrInvalidKind},
		{name: "unknown source", req: schedule.AssignSpecificRequest{
			Date: date("2025-01-13"), Task: workTask("T1"), Source: "robot"}, target: domain.ErrInvalidSource},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.AssignSpecific(f.ctx, f.userID, tc.req)
			assert.ErrorIs(t, err, tc.target)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}
