package schedule_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/dayplan-api/internal/domain"
	"github.com/phrazzld/dayplan-api/internal/platform/sqlstore"
	"github.com/phrazzld/dayplan-api/internal/service/schedule"
	"github.com/phrazzld/dayplan-api/internal/store"
	"github.com/phrazzld/dayplan-api/internal/testdb"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// Monday 2025-01-13 at the given hour, UTC.
func mondayAt(hour int) time.Time {
	return time.Date(2025, time.January, 13, hour, 0, 0, 0, time.UTC)
}

type fixture struct {
	svc    schedule.Service
	days   store.DayStore
	userID uuid.UUID
	ctx    context.Context
}

func newFixture(t *testing.T, now time.Time, mutate ...func(*schedule.Config)) *fixture {
	t.Helper()

	db, dialect := testdb.Open(t)
	days := sqlstore.NewSQLDayStore(db, dialect, nil)
	cfg := schedule.Config{
		HorizonDays: 28,
		SearchDays:  14,
		Location:    time.UTC,
		Now:         func() time.Time { return now },
	}
	for _, m := range mutate {
		m(&cfg)
	}

	return &fixture{
		svc:    schedule.NewService(db, days, cfg, nil),
		days:   days,
		userID: uuid.New(),
		ctx:    context.Background(),
	}
}

func date(s string) domain.Date {
	return domain.MustParseDate(s)
}

func workTask(id string) domain.Task {
	return domain.Task{ID: id, Kind: domain.KindWork, Title: "work " + id}
}

func personalTask(id string) domain.Task {
	return domain.Task{ID: id, Kind: domain.KindPersonal, Title: "personal " + id}
}

func (f *fixture) day(t *testing.T, d string) *domain.Day {
	t.Helper()
	day, err := f.days.Get(f.ctx, f.userID, date(d))
	require.NoError(t, err)
	return day
}

// taskIDs lists the task in each slot of the day, "" for empty.
func (f *fixture) taskIDs(t *testing.T, d string) [domain.SlotsPerDay]string {
	t.Helper()
	var ids [domain.SlotsPerDay]string
	for i, slot := range f.day(t, d).Slots {
		if slot.Assignment != nil {
			ids[i] = slot.Assignment.TaskID
		}
	}
	return ids
}

func (f *fixture) skeleton(t *testing.T, until string) []domain.Date {
	t.Helper()
	created, err := f.svc.GenerateSkeleton(f.ctx, f.userID, date(until))
	require.NoError(t, err)
	return created
}

func (f *fixture) place(t *testing.T, d string, idx int, task domain.Task) *schedule.AssignSpecificResult {
	t.Helper()
	res, err := f.svc.AssignSpecific(f.ctx, f.userID, schedule.AssignSpecificRequest{
		Date:    date(d),
		SlotIdx: idx,
		Task:    task,
		Source:  domain.SourceManual,
	})
	require.NoError(t, err)
	return res
}
