package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/dayplan-api/internal/domain"
	"github.com/phrazzld/dayplan-api/internal/service/schedule"
	"github.com/stretchr/testify/mock"
)

// mockScheduleService is a testify mock of schedule.Service.
type mockScheduleService struct {
	mock.Mock
}

var _ schedule.Service = (*mockScheduleService)(nil)

func (m *mockScheduleService) GenerateSkeleton(
	ctx context.Context,
	userID uuid.UUID,
	until domain.Date,
) ([]domain.Date, error) {
	args := m.Called(ctx, userID, until)
	dates, _ := args.Get(0).([]domain.Date)
	return dates, args.Error(1)
}

func (m *mockScheduleService) AssignFirstFree(
	ctx context.Context,
	userID uuid.UUID,
	from domain.Date,
	task domain.Task,
) (*schedule.Placement, error) {
	args := m.Called(ctx, userID, from, task)
	placement, _ := args.Get(0).(*schedule.Placement)
	return placement, args.Error(1)
}

func (m *mockScheduleService) AssignSpecific(
	ctx context.Context,
	userID uuid.UUID,
	req schedule.AssignSpecificRequest,
) (*schedule.AssignSpecificResult, error) {
	args := m.Called(ctx, userID, req)
	result, _ := args.Get(0).(*schedule.AssignSpecificResult)
	return result, args.Error(1)
}

func (m *mockScheduleService) PromoteTask(
	ctx context.Context,
	userID uuid.UUID,
	taskID string,
) (*schedule.PromoteResult, error) {
	args := m.Called(ctx, userID, taskID)
	result, _ := args.Get(0).(*schedule.PromoteResult)
	return result, args.Error(1)
}

func (m *mockScheduleService) ListDays(
	ctx context.Context,
	userID uuid.UUID,
	from, to domain.Date,
) ([]*domain.Day, error) {
	args := m.Called(ctx, userID, from, to)
	days, _ := args.Get(0).([]*domain.Day)
	return days, args.Error(1)
}
