package schedules

import (
	"context"
	"errors"
	"mise-service/internal/app/config"
	"mise-service/internal/app/contracts"
	"mise-service/internal/app/models"
	"mise-service/internal/pkg/constvars"
	"mise-service/internal/pkg/dto/requests"
	"mise-service/internal/pkg/exceptions"
	"net/http"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type MockCellRepository struct {
	mock.Mock
}

func (m *MockCellRepository) FindCellsByDateRange(ctx context.Context, startDate, endDate string) ([]models.ScheduleCell, error) {
	args := m.Called(ctx, startDate, endDate)
	cells, _ := args.Get(0).([]models.ScheduleCell)
	return cells, args.Error(1)
}

func (m *MockCellRepository) FindCell(ctx context.Context, date, timeSlotID string) (*models.ScheduleCell, error) {
	args := m.Called(ctx, date, timeSlotID)
	cell, _ := args.Get(0).(*models.ScheduleCell)
	return cell, args.Error(1)
}

func (m *MockCellRepository) FindCellByAssignmentID(ctx context.Context, assignmentID string) (*models.ScheduleCell, error) {
	args := m.Called(ctx, assignmentID)
	cell, _ := args.Get(0).(*models.ScheduleCell)
	return cell, args.Error(1)
}

func (m *MockCellRepository) UpsertCell(ctx context.Context, cell *models.ScheduleCell) error {
	args := m.Called(ctx, cell)
	return args.Error(0)
}

func (m *MockCellRepository) DeleteCell(ctx context.Context, date, timeSlotID string) error {
	args := m.Called(ctx, date, timeSlotID)
	return args.Error(0)
}

type MockTimeSlotRepository struct {
	mock.Mock
}

func (m *MockTimeSlotRepository) ListTimeSlots(ctx context.Context) ([]models.TimeSlot, error) {
	args := m.Called(ctx)
	slots, _ := args.Get(0).([]models.TimeSlot)
	return slots, args.Error(1)
}

func (m *MockTimeSlotRepository) FindTimeSlotByID(ctx context.Context, timeSlotID string) (*models.TimeSlot, error) {
	args := m.Called(ctx, timeSlotID)
	slot, _ := args.Get(0).(*models.TimeSlot)
	return slot, args.Error(1)
}

func (m *MockTimeSlotRepository) CreateTimeSlot(ctx context.Context, slot *models.TimeSlot) (string, error) {
	args := m.Called(ctx, slot)
	return args.String(0), args.Error(1)
}

func (m *MockTimeSlotRepository) UpdateTimeSlot(ctx context.Context, slot *models.TimeSlot) error {
	args := m.Called(ctx, slot)
	return args.Error(0)
}

func (m *MockTimeSlotRepository) DeleteTimeSlot(ctx context.Context, timeSlotID string) (bool, error) {
	args := m.Called(ctx, timeSlotID)
	return args.Bool(0), args.Error(1)
}

type MockStaffDirectory struct {
	mock.Mock
}

func (m *MockStaffDirectory) GetAllStaff(ctx context.Context) ([]models.Staff, error) {
	args := m.Called(ctx)
	staffs, _ := args.Get(0).([]models.Staff)
	return staffs, args.Error(1)
}

func (m *MockStaffDirectory) FindStaffByID(ctx context.Context, staffID string) (*models.Staff, error) {
	args := m.Called(ctx, staffID)
	staff, _ := args.Get(0).(*models.Staff)
	return staff, args.Error(1)
}

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	args := m.Called(ctx, key, value, exp)
	return args.Error(0)
}

func (m *MockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisRepository) Expire(ctx context.Context, key string, exp time.Duration) error {
	args := m.Called(ctx, key, exp)
	return args.Error(0)
}

type MockLockerService struct {
	mock.Mock
}

func (m *MockLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	args := m.Called(ctx, key, lockValue)
	return args.Error(0)
}

func (m *MockLockerService) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	args := m.Called(ctx, key, lockValue, expiration)
	return args.Error(0)
}

type MockSchedulePublisher struct {
	mock.Mock
}

func (m *MockSchedulePublisher) PublishScheduleEvent(ctx context.Context, event contracts.ScheduleEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func TestScheduleUsecase(t *testing.T) {
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{
			WeekScheduleCacheTTLInSec: 60,
			CellLockTTLInSec:          10,
		},
	}

	mockCells := new(MockCellRepository)
	mockSlots := new(MockTimeSlotRepository)
	mockStaffs := new(MockStaffDirectory)
	mockRedis := new(MockRedisRepository)
	mockLocker := new(MockLockerService)
	mockPublisher := new(MockSchedulePublisher)

	usecase := NewScheduleUsecase(
		mockCells,
		mockSlots,
		mockStaffs,
		mockRedis,
		mockLocker,
		mockPublisher,
		NewStatusResolver(time.UTC),
		internalConfig,
		logger,
	)

	lunchSlot := models.TimeSlot{ID: "slot-lunch", Label: "Lunch", StartTime: "11:00", EndTime: "14:00"}
	jon := models.Staff{ID: "st-jon", Name: "Jon Snow", Initials: "JS"}

	t.Run("GetWeekSchedule rejects a malformed anchor", func(t *testing.T) {
		_, err := usecase.GetWeekSchedule(context.Background(), "13-2025-03")
		assert.Error(t, err)

		var customErr *exceptions.CustomError
		assert.True(t, errors.As(err, &customErr))
		assert.Equal(t, http.StatusBadRequest, customErr.StatusCode)
	})

	t.Run("GetWeekSchedule builds from stores on cache miss", func(t *testing.T) {
		mockRedis.On("Get", mock.Anything, "schedule:week:2025-03-10").Return("", nil)
		mockRedis.On("Set", mock.Anything, "schedule:week:2025-03-10", mock.Anything, 60*time.Second).Return(nil)
		mockSlots.On("ListTimeSlots", mock.Anything).Return([]models.TimeSlot{lunchSlot}, nil)
		mockCells.On("FindCellsByDateRange", mock.Anything, "2025-03-10", "2025-03-16").Return([]models.ScheduleCell{}, nil)

		// A midweek anchor normalizes to the same Monday window.
		week, err := usecase.GetWeekSchedule(context.Background(), "2025-03-13")
		assert.NoError(t, err)
		assert.Equal(t, "2025-03-10", week.WeekStart)
		assert.Equal(t, "2025-03-16", week.WeekEnd)
		assert.Len(t, week.TimeSlots, 1)

		mockSlots.AssertCalled(t, "ListTimeSlots", mock.Anything)
		mockRedis.AssertCalled(t, "Set", mock.Anything, "schedule:week:2025-03-10", mock.Anything, 60*time.Second)
	})

	t.Run("GetCell returns an empty cell for a sparse miss", func(t *testing.T) {
		mockCells.On("FindCell", mock.Anything, "2025-03-11", "slot-empty").Return(nil, nil)

		cell, err := usecase.GetCell(context.Background(), "2025-03-11", "slot-empty")
		assert.NoError(t, err)
		assert.Equal(t, "2025-03-11", cell.Date)
		assert.NotNil(t, cell.Assignments)
		assert.Empty(t, cell.Assignments)
	})

	t.Run("AddStaffToCell rejects an unknown slot", func(t *testing.T) {
		mockSlots.On("FindTimeSlotByID", mock.Anything, "slot-missing").Return(nil, nil)

		_, err := usecase.AddStaffToCell(context.Background(), &requests.AddStaffToCell{
			Date:       "2025-03-11",
			TimeSlotID: "slot-missing",
			StaffID:    jon.ID,
		})
		assert.Error(t, err)

		var customErr *exceptions.CustomError
		assert.True(t, errors.As(err, &customErr))
		assert.Equal(t, http.StatusNotFound, customErr.StatusCode)
	})

	t.Run("AddStaffToCell rejects an unknown staff member", func(t *testing.T) {
		mockSlots.On("FindTimeSlotByID", mock.Anything, lunchSlot.ID).Return(&lunchSlot, nil)
		mockStaffs.On("FindStaffByID", mock.Anything, "st-missing").Return(nil, nil)

		_, err := usecase.AddStaffToCell(context.Background(), &requests.AddStaffToCell{
			Date:       "2025-03-11",
			TimeSlotID: lunchSlot.ID,
			StaffID:    "st-missing",
		})
		assert.Error(t, err)

		var customErr *exceptions.CustomError
		assert.True(t, errors.As(err, &customErr))
		assert.Equal(t, http.StatusNotFound, customErr.StatusCode)
	})

	t.Run("AddStaffToCell registers the staff member and republishes the week", func(t *testing.T) {
		mockStaffs.On("FindStaffByID", mock.Anything, jon.ID).Return(&jon, nil)
		mockLocker.On("TryLock", mock.Anything, "schedule:cell:2025-03-11:slot-lunch", 10*time.Second).Return(true, "lock-1", nil)
		mockLocker.On("Unlock", mock.Anything, "schedule:cell:2025-03-11:slot-lunch", "lock-1").Return(nil)
		mockCells.On("FindCell", mock.Anything, "2025-03-11", lunchSlot.ID).Return(nil, nil)
		mockRedis.On("Delete", mock.Anything, "schedule:week:2025-03-10").Return(nil)
		mockPublisher.On("PublishScheduleEvent", mock.Anything, mock.AnythingOfType("contracts.ScheduleEvent")).Return(nil)

		var stored *models.ScheduleCell
		mockCells.On("UpsertCell", mock.Anything, mock.AnythingOfType("*models.ScheduleCell")).Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.ScheduleCell)
		}).Return(nil).Once()

		week, err := usecase.AddStaffToCell(context.Background(), &requests.AddStaffToCell{
			Date:       "2025-03-11",
			TimeSlotID: lunchSlot.ID,
			StaffID:    jon.ID,
			Role:       "server",
		})
		assert.NoError(t, err)
		assert.Equal(t, "2025-03-10", week.WeekStart)

		assert.NotNil(t, stored)
		assert.Len(t, stored.Assignments, 1)
		assert.Equal(t, jon.ID, stored.Assignments[0].StaffID)
		assert.Equal(t, "Jon Snow", stored.Assignments[0].StaffName)
		assert.Equal(t, models.AssignmentRegistered, stored.Assignments[0].Status)
		assert.NotEmpty(t, stored.Assignments[0].ID)

		mockLocker.AssertCalled(t, "Unlock", mock.Anything, "schedule:cell:2025-03-11:slot-lunch", "lock-1")
		mockPublisher.AssertCalled(t, "PublishScheduleEvent", mock.Anything, mock.AnythingOfType("contracts.ScheduleEvent"))
	})

	t.Run("AddStaffToCell surfaces lock contention", func(t *testing.T) {
		mockLocker.On("TryLock", mock.Anything, "schedule:cell:2025-03-12:slot-lunch", 10*time.Second).Return(false, "", nil)
		mockStaffs.On("FindStaffByID", mock.Anything, jon.ID).Return(&jon, nil)

		_, err := usecase.AddStaffToCell(context.Background(), &requests.AddStaffToCell{
			Date:       "2025-03-12",
			TimeSlotID: lunchSlot.ID,
			StaffID:    jon.ID,
		})
		assert.Error(t, err)

		var customErr *exceptions.CustomError
		assert.True(t, errors.As(err, &customErr))
		assert.Equal(t, http.StatusConflict, customErr.StatusCode)
	})

	t.Run("RemoveAssignment with an unknown id is a no-op", func(t *testing.T) {
		mockCells.On("FindCellByAssignmentID", mock.Anything, "a-missing").Return(nil, nil)

		week, err := usecase.RemoveAssignment(context.Background(), "a-missing")
		assert.NoError(t, err)
		assert.Nil(t, week)
	})

	t.Run("RemoveAssignment deletes an emptied cell", func(t *testing.T) {
		mockCells.On("FindCellByAssignmentID", mock.Anything, "a-last").Return(&models.ScheduleCell{
			Date:       "2025-03-14",
			TimeSlotID: lunchSlot.ID,
			Assignments: []models.StaffAssignment{
				{ID: "a-last", StaffID: jon.ID, Status: models.AssignmentConfirmed},
			},
		}, nil)
		mockLocker.On("TryLock", mock.Anything, "schedule:cell:2025-03-14:slot-lunch", 10*time.Second).Return(true, "lock-2", nil)
		mockLocker.On("Unlock", mock.Anything, "schedule:cell:2025-03-14:slot-lunch", "lock-2").Return(nil)
		mockCells.On("FindCell", mock.Anything, "2025-03-14", lunchSlot.ID).Return(&models.ScheduleCell{
			Date:       "2025-03-14",
			TimeSlotID: lunchSlot.ID,
			Assignments: []models.StaffAssignment{
				{ID: "a-last", StaffID: jon.ID, Status: models.AssignmentConfirmed},
			},
		}, nil)
		mockCells.On("DeleteCell", mock.Anything, "2025-03-14", lunchSlot.ID).Return(nil)

		week, err := usecase.RemoveAssignment(context.Background(), "a-last")
		assert.NoError(t, err)
		assert.NotNil(t, week)

		mockCells.AssertCalled(t, "DeleteCell", mock.Anything, "2025-03-14", lunchSlot.ID)
	})

	t.Run("TransitionAssignment refuses to leave cancelled", func(t *testing.T) {
		mockCells.On("FindCellByAssignmentID", mock.Anything, "a-cancelled").Return(&models.ScheduleCell{
			Date:       "2025-03-15",
			TimeSlotID: lunchSlot.ID,
			Assignments: []models.StaffAssignment{
				{ID: "a-cancelled", StaffID: jon.ID, Status: models.AssignmentCancelled},
			},
		}, nil)
		mockLocker.On("TryLock", mock.Anything, "schedule:cell:2025-03-15:slot-lunch", 10*time.Second).Return(true, "lock-3", nil)
		mockLocker.On("Unlock", mock.Anything, "schedule:cell:2025-03-15:slot-lunch", "lock-3").Return(nil)
		mockCells.On("FindCell", mock.Anything, "2025-03-15", lunchSlot.ID).Return(&models.ScheduleCell{
			Date:       "2025-03-15",
			TimeSlotID: lunchSlot.ID,
			Assignments: []models.StaffAssignment{
				{ID: "a-cancelled", StaffID: jon.ID, Status: models.AssignmentCancelled},
			},
		}, nil)

		_, err := usecase.TransitionAssignment(context.Background(), &requests.TransitionAssignment{
			AssignmentID: "a-cancelled",
			Status:       string(models.AssignmentConfirmed),
		})
		assert.Error(t, err)

		var customErr *exceptions.CustomError
		assert.True(t, errors.As(err, &customErr))
		assert.Equal(t, http.StatusBadRequest, customErr.StatusCode)
	})

	t.Run("TransitionAssignment on an unknown id is not found", func(t *testing.T) {
		mockCells.On("FindCellByAssignmentID", mock.Anything, "a-gone").Return(nil, nil)

		_, err := usecase.TransitionAssignment(context.Background(), &requests.TransitionAssignment{
			AssignmentID: "a-gone",
			Status:       string(models.AssignmentCancelled),
		})
		assert.Error(t, err)

		var customErr *exceptions.CustomError
		assert.True(t, errors.As(err, &customErr))
		assert.Equal(t, http.StatusNotFound, customErr.StatusCode)
	})

	t.Run("RemoveAssignment keeps a write committed while waiting for the lock", func(t *testing.T) {
		mockRedis.On("Get", mock.Anything, "schedule:week:2025-03-17").Return("", nil)
		mockRedis.On("Set", mock.Anything, "schedule:week:2025-03-17", mock.Anything, 60*time.Second).Return(nil)
		mockRedis.On("Delete", mock.Anything, "schedule:week:2025-03-17").Return(nil)
		mockCells.On("FindCellsByDateRange", mock.Anything, "2025-03-17", "2025-03-23").Return([]models.ScheduleCell{}, nil)

		// The id lookup sees one assignment; by the time the lock is held a
		// second writer has added another. The removal must act on the cell
		// as read under the lock, not on the earlier snapshot.
		mockCells.On("FindCellByAssignmentID", mock.Anything, "a-first").Return(&models.ScheduleCell{
			Date:       "2025-03-18",
			TimeSlotID: lunchSlot.ID,
			Assignments: []models.StaffAssignment{
				{ID: "a-first", StaffID: jon.ID, Status: models.AssignmentRegistered},
			},
		}, nil)
		mockLocker.On("TryLock", mock.Anything, "schedule:cell:2025-03-18:slot-lunch", 10*time.Second).Return(true, "lock-4", nil)
		mockLocker.On("Unlock", mock.Anything, "schedule:cell:2025-03-18:slot-lunch", "lock-4").Return(nil)
		mockCells.On("FindCell", mock.Anything, "2025-03-18", lunchSlot.ID).Return(&models.ScheduleCell{
			Date:       "2025-03-18",
			TimeSlotID: lunchSlot.ID,
			Assignments: []models.StaffAssignment{
				{ID: "a-first", StaffID: jon.ID, Status: models.AssignmentRegistered},
				{ID: "a-second", StaffID: "st-arya", Status: models.AssignmentRegistered},
			},
		}, nil)

		var stored *models.ScheduleCell
		mockCells.On("UpsertCell", mock.Anything, mock.AnythingOfType("*models.ScheduleCell")).Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.ScheduleCell)
		}).Return(nil).Once()

		week, err := usecase.RemoveAssignment(context.Background(), "a-first")
		assert.NoError(t, err)
		assert.NotNil(t, week)

		assert.NotNil(t, stored)
		assert.Len(t, stored.Assignments, 1)
		assert.Equal(t, "a-second", stored.Assignments[0].ID)
		mockCells.AssertNotCalled(t, "DeleteCell", mock.Anything, "2025-03-18", lunchSlot.ID)
	})

	t.Run("TransitionAssignment updates the cell read under the lock", func(t *testing.T) {
		mockCells.On("FindCellByAssignmentID", mock.Anything, "a-shift").Return(&models.ScheduleCell{
			Date:       "2025-03-19",
			TimeSlotID: lunchSlot.ID,
			Assignments: []models.StaffAssignment{
				{ID: "a-shift", StaffID: jon.ID, Status: models.AssignmentRegistered},
			},
		}, nil)
		mockLocker.On("TryLock", mock.Anything, "schedule:cell:2025-03-19:slot-lunch", 10*time.Second).Return(true, "lock-5", nil)
		mockLocker.On("Unlock", mock.Anything, "schedule:cell:2025-03-19:slot-lunch", "lock-5").Return(nil)
		mockCells.On("FindCell", mock.Anything, "2025-03-19", lunchSlot.ID).Return(&models.ScheduleCell{
			Date:       "2025-03-19",
			TimeSlotID: lunchSlot.ID,
			Assignments: []models.StaffAssignment{
				{ID: "a-shift", StaffID: jon.ID, Status: models.AssignmentRegistered},
				{ID: "a-late", StaffID: "st-arya", Status: models.AssignmentRegistered},
			},
		}, nil)

		var stored *models.ScheduleCell
		mockCells.On("UpsertCell", mock.Anything, mock.AnythingOfType("*models.ScheduleCell")).Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.ScheduleCell)
		}).Return(nil).Once()

		week, err := usecase.TransitionAssignment(context.Background(), &requests.TransitionAssignment{
			AssignmentID: "a-shift",
			Status:       string(models.AssignmentConfirmed),
		})
		assert.NoError(t, err)
		assert.NotNil(t, week)

		assert.NotNil(t, stored)
		assert.Len(t, stored.Assignments, 2)
		assert.Equal(t, models.AssignmentConfirmed, stored.Assignments[0].Status)
		assert.Equal(t, "a-late", stored.Assignments[1].ID)
		assert.Equal(t, models.AssignmentRegistered, stored.Assignments[1].Status)
	})
}

func TestGetWeekScheduleCacheHitWarnsOnOrphans(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	mockRedis := new(MockRedisRepository)

	cached := models.WeekSchedule{
		WeekStart: "2025-03-10",
		WeekEnd:   "2025-03-16",
		TimeSlots: []models.TimeSlot{
			{ID: "slot-lunch", Label: "Lunch", StartTime: "11:00", EndTime: "14:00"},
		},
		Cells: []models.ScheduleCell{
			{Date: "2025-03-11", TimeSlotID: "slot-deleted", Assignments: []models.StaffAssignment{}},
		},
	}
	raw, err := json.Marshal(cached)
	assert.NoError(t, err)
	mockRedis.On("Get", mock.Anything, "schedule:week:2025-03-10").Return(string(raw), nil)

	uc := &scheduleUsecase{
		RedisRepository: mockRedis,
		Resolver:        NewStatusResolver(time.UTC),
		InternalConfig: &config.InternalConfig{
			App: config.App{WeekScheduleCacheTTLInSec: 60},
		},
		Log: zap.New(core),
	}

	// A snapshot served from cache still reports dangling slot references.
	week, err := uc.GetWeekSchedule(context.Background(), "2025-03-10")
	assert.NoError(t, err)
	assert.Len(t, week.Cells, 1)

	warned := logs.FilterMessage(constvars.ErrDevOrphanedTimeSlotReference)
	assert.Equal(t, 1, warned.Len())
	assert.Equal(t, "slot-deleted", warned.All()[0].ContextMap()[constvars.LoggingTimeSlotIDKey])
}
