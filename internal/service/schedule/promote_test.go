package schedule_test

import (
	"testing"

	"github.com/phrazzld/dayplan-api/internal/domain"
	"github.com/phrazzld/dayplan-api/internal/service/schedule"
	"github.com/phrazzld/dayplan-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromoteTask_AcrossDays(t *testing.T) {
	f := newFixture(t, mondayAt(8))
	f.place(t, "2025-01-13", 1, workTask("B"))
	f.place(t, "2025-01-15", 0, workTask("A"))

	res, err := f.svc.PromoteTask(f.ctx, f.userID, "A")
	require.NoError(t, err)
	assert.True(t, res.Swapped)
	require.NotNil(t, res.From)
	require.NotNil(t, res.To)
	assert.Equal(t, "2025-01-15", res.From.Date.String())
	assert.Equal(t, 0, res.From.SlotIdx)
	assert.Equal(t, "2025-01-13", res.To.Date.String())
	assert.Equal(t, 1, res.To.SlotIdx)

	assert.Equal(t, [3]string{"", "A", ""}, f.taskIDs(t, "2025-01-13"))
	assert.Equal(t, [3]string{"B", "", ""}, f.taskIDs(t, "2025-01-15"))
}

func TestPromoteTask_SameDay(t *testing.T) {
	f := newFixture(t, mondayAt(8))
	f.place(t, "2025-01-13", 0, workTask("A"))
	f.place(t, "2025-01-13", 2, workTask("B"))

	res, err := f.svc.PromoteTask(f.ctx, f.userID, "B")
	require.NoError(t, err)
	assert.True(t, res.Swapped)
	assert.Equal(t, [3]string{"B", "", "A"}, f.taskIDs(t, "2025-01-13"))
}

func TestPromoteTask_AlreadyEarliest(t *testing.T) {
	f := newFixture(t, mondayAt(8))
	f.place(t, "2025-01-14", 1, workTask("A"))
	f.place(t, "2025-01-16", 0, workTask("B"))
	before := f.day(t, "2025-01-14")

	res, err := f.svc.PromoteTask(f.ctx, f.userID, "A")
	require.NoError(t, err)
	assert.False(t, res.Swapped)
	assert.Nil(t, res.From)

	after := f.day(t, "2025-01-14")
	assert.Equal(t, before.Version, after.Version, "no-op must not write")
}

func TestPromoteTask_IsItsOwnInverse(t *testing.T) {
	f := newFixture(t, mondayAt(8))
	f.place(t, "2025-01-13", 0, workTask("B"))
	f.place(t, "2025-01-14", 1, workTask("C"))
	f.place(t, "2025-01-16", 1, workTask("A"))

	snapshot := func() map[string][3]string {
		out := map[string][3]string{}
		for _, d := range []string{"2025-01-13", "2025-01-14", "2025-01-16"} {
			out[d] = f.taskIDs(t, d)
		}
		return out
	}
	original := snapshot()

	_, err := f.svc.PromoteTask(f.ctx, f.userID, "A")
	require.NoError(t, err)
	assert.NotEqual(t, original, snapshot())

	_, err = f.svc.PromoteTask(f.ctx, f.userID, "B")
	require.NoError(t, err)
	assert.Equal(t, original, snapshot())
}

func TestPromoteTask_KeepsPayloads(t *testing.T) {
	f := newFixture(t, mondayAt(8))
	f.place(t, "2025-01-13", 0, workTask("B"))
	a := personalTask("A")
	a.Fixed = true
	f.place(t, "2025-01-15", 0, a)

	_, err := f.svc.PromoteTask(f.ctx, f.userID, "A")
	require.NoError(t, err)

	moved := f.day(t, "2025-01-13").Slots[0].Assignment
	require.NotNil(t, moved)
	assert.Equal(t, domain.Assignment{
		TaskID:    "A",
		TaskTitle: "personal A",
		Kind:      domain.KindPersonal,
		Source:    domain.SourceManual,
		Fixed:     true,
	}, *moved)
}

func TestPromoteTask_Errors(t *testing.T) {
	f := newFixture(t, mondayAt(8))

	_, err := f.svc.PromoteTask(f.ctx, f.userID, "missing")
	assert.ErrorIs(t, err, schedule.ErrTaskNotScheduled)
	assert.True(t, store.IsNotFoundError(err))

	_, err = f.svc.PromoteTask(f.ctx, f.userID, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
