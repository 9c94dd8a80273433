package schedules

import (
	"context"
	"fmt"
	"mise-service/internal/app/config"
	"mise-service/internal/app/contracts"
	"mise-service/internal/app/models"
	"mise-service/internal/pkg/constvars"
	"mise-service/internal/pkg/dto/requests"
	"mise-service/internal/pkg/exceptions"
	"mise-service/internal/pkg/utils"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type scheduleUsecase struct {
	CellRepository     contracts.ScheduleCellRepository
	TimeSlotRepository contracts.TimeSlotRepository
	StaffDirectory     contracts.StaffDirectory
	RedisRepository    contracts.RedisRepository
	Locker             contracts.LockerService
	Publisher          contracts.SchedulePublisher
	Resolver           *StatusResolver
	InternalConfig     *config.InternalConfig
	Log                *zap.Logger
}

var (
	scheduleUsecaseInstance contracts.ScheduleUsecase
	onceScheduleUsecase     sync.Once
)

func NewScheduleUsecase(
	cellRepository contracts.ScheduleCellRepository,
	timeSlotRepository contracts.TimeSlotRepository,
	staffDirectory contracts.StaffDirectory,
	redisRepository contracts.RedisRepository,
	locker contracts.LockerService,
	publisher contracts.SchedulePublisher,
	resolver *StatusResolver,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ScheduleUsecase {
	onceScheduleUsecase.Do(func() {
		instance := &scheduleUsecase{
			CellRepository:     cellRepository,
			TimeSlotRepository: timeSlotRepository,
			StaffDirectory:     staffDirectory,
			RedisRepository:    redisRepository,
			Locker:             locker,
			Publisher:          publisher,
			Resolver:           resolver,
			InternalConfig:     internalConfig,
			Log:                logger,
		}
		scheduleUsecaseInstance = instance
	})
	return scheduleUsecaseInstance
}

func (uc *scheduleUsecase) GetWeekSchedule(ctx context.Context, weekStart string) (*models.WeekSchedule, error) {
	anchor, err := utils.ParseCalendarDate(weekStart, uc.Resolver.Location())
	if err != nil {
		return nil, exceptions.ErrMalformedWeekStart(err)
	}

	monday := NormalizeWeekStart(anchor)
	cacheKey := fmt.Sprintf(constvars.RedisWeekScheduleKeyFormat, utils.FormatCalendarDate(monday))

	cached, err := uc.RedisRepository.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var ws models.WeekSchedule
		if err := json.Unmarshal([]byte(cached), &ws); err == nil {
			uc.logOrphans(&ws)
			return &ws, nil
		}
		uc.Log.Warn("scheduleUsecase.GetWeekSchedule dropping unreadable cached snapshot",
			zap.String(constvars.LoggingRedisKey, cacheKey),
		)
	}

	ws, err := uc.buildWeek(ctx, monday)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(uc.InternalConfig.App.WeekScheduleCacheTTLInSec) * time.Second
	if err := uc.RedisRepository.Set(ctx, cacheKey, ws, ttl); err != nil {
		uc.Log.Warn("scheduleUsecase.GetWeekSchedule failed to cache snapshot",
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Error(err),
		)
	}
	return ws, nil
}

func (uc *scheduleUsecase) buildWeek(ctx context.Context, monday time.Time) (*models.WeekSchedule, error) {
	slots, err := uc.TimeSlotRepository.ListTimeSlots(ctx)
	if err != nil {
		return nil, err
	}

	startDate := utils.FormatCalendarDate(monday)
	endDate := utils.FormatCalendarDate(monday.AddDate(0, 0, 6))
	cells, err := uc.CellRepository.FindCellsByDateRange(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	ws := BuildWeek(monday, slots, cells)
	uc.logOrphans(&ws)
	return &ws, nil
}

// logOrphans reports cells referencing slots absent from the snapshot's
// catalog. Orphaned references are logged, never raised; the data stays put
// and the row is simply not rendered. Runs on cached snapshots as well so
// the warning does not go silent for a cache TTL.
func (uc *scheduleUsecase) logOrphans(ws *models.WeekSchedule) {
	known := make(map[string]bool, len(ws.TimeSlots))
	for _, slot := range ws.TimeSlots {
		known[slot.ID] = true
	}
	for _, cell := range ws.Cells {
		if !known[cell.TimeSlotID] {
			uc.Log.Warn(constvars.ErrDevOrphanedTimeSlotReference,
				zap.String(constvars.LoggingCellDateKey, cell.Date),
				zap.String(constvars.LoggingTimeSlotIDKey, cell.TimeSlotID),
			)
		}
	}
}

func (uc *scheduleUsecase) GetCell(ctx context.Context, date, timeSlotID string) (*models.ScheduleCell, error) {
	if _, err := utils.ParseCalendarDate(date, uc.Resolver.Location()); err != nil {
		return nil, exceptions.ErrMalformedCalendarDate(err)
	}

	cell, err := uc.CellRepository.FindCell(ctx, date, timeSlotID)
	if err != nil {
		return nil, err
	}
	if cell == nil {
		// Absence is not an error; the store is sparse.
		return &models.ScheduleCell{
			Date:        date,
			TimeSlotID:  timeSlotID,
			Assignments: []models.StaffAssignment{},
		}, nil
	}
	if cell.Assignments == nil {
		cell.Assignments = []models.StaffAssignment{}
	}
	return cell, nil
}

func (uc *scheduleUsecase) AddStaffToCell(ctx context.Context, request *requests.AddStaffToCell) (*models.WeekSchedule, error) {
	if _, err := utils.ParseCalendarDate(request.Date, uc.Resolver.Location()); err != nil {
		return nil, exceptions.ErrMalformedCalendarDate(err)
	}

	slot, err := uc.TimeSlotRepository.FindTimeSlotByID(ctx, request.TimeSlotID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, exceptions.ErrTimeSlotNotFound(nil)
	}

	staff, err := uc.StaffDirectory.FindStaffByID(ctx, request.StaffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, exceptions.ErrStaffNotFound(nil)
	}

	unlock, err := uc.lockCell(ctx, request.Date, request.TimeSlotID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	cell, err := uc.CellRepository.FindCell(ctx, request.Date, request.TimeSlotID)
	if err != nil {
		return nil, err
	}
	if cell == nil {
		cell = &models.ScheduleCell{
			Date:        request.Date,
			TimeSlotID:  request.TimeSlotID,
			Assignments: []models.StaffAssignment{},
		}
	}

	assignment := models.StaffAssignment{
		ID:            utils.GenerateAssignmentID(),
		StaffID:       staff.ID,
		StaffName:     staff.Name,
		StaffInitials: staff.Initials,
		StaffAvatar:   staff.Avatar,
		Role:          request.Role,
		Status:        models.AssignmentRegistered,
	}
	cell.Assignments = append(cell.Assignments, assignment)

	if err := uc.CellRepository.UpsertCell(ctx, cell); err != nil {
		return nil, err
	}

	uc.invalidateWeekCache(ctx, cell.Date)
	uc.publish(ctx, contracts.ScheduleEvent{
		Type:         contracts.ScheduleEventAssignmentAdded,
		Date:         cell.Date,
		TimeSlotID:   cell.TimeSlotID,
		AssignmentID: assignment.ID,
		StaffID:      assignment.StaffID,
		Status:       string(assignment.Status),
	})

	return uc.GetWeekSchedule(ctx, cell.Date)
}

// RemoveAssignment hard-deletes the assignment from whichever cell holds it.
// An unknown id is tolerated as a no-op since UI state may lag store state;
// the returned snapshot is nil in that case and the caller treats the call
// as already satisfied.
func (uc *scheduleUsecase) RemoveAssignment(ctx context.Context, assignmentID string) (*models.WeekSchedule, error) {
	located, err := uc.CellRepository.FindCellByAssignmentID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if located == nil {
		uc.Log.Info("scheduleUsecase.RemoveAssignment id not found in any cell, no-op",
			zap.String(constvars.LoggingAssignmentIDKey, assignmentID),
		)
		return nil, nil
	}

	unlock, err := uc.lockCell(ctx, located.Date, located.TimeSlotID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// The pre-lock lookup only names the coordinates. The cell is read again
	// inside the critical section so a write committed between lookup and
	// lock acquisition is not overwritten with the stale snapshot.
	cell, err := uc.CellRepository.FindCell(ctx, located.Date, located.TimeSlotID)
	if err != nil {
		return nil, err
	}
	if cell == nil {
		uc.Log.Info("scheduleUsecase.RemoveAssignment cell emptied concurrently, no-op",
			zap.String(constvars.LoggingAssignmentIDKey, assignmentID),
		)
		return nil, nil
	}

	kept := make([]models.StaffAssignment, 0, len(cell.Assignments))
	var removed *models.StaffAssignment
	for _, assignment := range cell.Assignments {
		if assignment.ID == assignmentID {
			removed = &assignment
			continue
		}
		kept = append(kept, assignment)
	}
	if removed == nil {
		uc.Log.Info("scheduleUsecase.RemoveAssignment id removed concurrently, no-op",
			zap.String(constvars.LoggingAssignmentIDKey, assignmentID),
		)
		return nil, nil
	}
	cell.Assignments = kept

	if len(cell.Assignments) == 0 {
		// Keep the store sparse: an empty cell and a missing cell are the
		// same thing to readers.
		if err := uc.CellRepository.DeleteCell(ctx, cell.Date, cell.TimeSlotID); err != nil {
			return nil, err
		}
	} else {
		if err := uc.CellRepository.UpsertCell(ctx, cell); err != nil {
			return nil, err
		}
	}

	uc.invalidateWeekCache(ctx, cell.Date)
	uc.publish(ctx, contracts.ScheduleEvent{
		Type:         contracts.ScheduleEventAssignmentRemoved,
		Date:         cell.Date,
		TimeSlotID:   cell.TimeSlotID,
		AssignmentID: assignmentID,
		StaffID:      removed.StaffID,
	})

	return uc.GetWeekSchedule(ctx, cell.Date)
}

func (uc *scheduleUsecase) TransitionAssignment(ctx context.Context, request *requests.TransitionAssignment) (*models.WeekSchedule, error) {
	located, err := uc.CellRepository.FindCellByAssignmentID(ctx, request.AssignmentID)
	if err != nil {
		return nil, err
	}
	if located == nil {
		return nil, exceptions.BuildNewCustomError(nil, constvars.StatusNotFound, constvars.ErrClientAssignmentNotFound, constvars.ErrDevAssignmentNotFound)
	}

	unlock, err := uc.lockCell(ctx, located.Date, located.TimeSlotID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// Re-read inside the critical section; the pre-lock snapshot may miss
	// writes committed while we waited for the lock.
	cell, err := uc.CellRepository.FindCell(ctx, located.Date, located.TimeSlotID)
	if err != nil {
		return nil, err
	}
	if cell == nil {
		return nil, exceptions.BuildNewCustomError(nil, constvars.StatusNotFound, constvars.ErrClientAssignmentNotFound, constvars.ErrDevAssignmentNotFound)
	}

	target := models.AssignmentStatus(request.Status)
	updated := false
	for i := range cell.Assignments {
		if cell.Assignments[i].ID != request.AssignmentID {
			continue
		}
		if !CanTransition(cell.Assignments[i].Status, target) {
			return nil, exceptions.ErrInvalidStatusTransition(
				fmt.Errorf("%s -> %s", cell.Assignments[i].Status, target),
			)
		}
		cell.Assignments[i].Status = target
		updated = true
		break
	}
	if !updated {
		return nil, exceptions.BuildNewCustomError(nil, constvars.StatusNotFound, constvars.ErrClientAssignmentNotFound, constvars.ErrDevAssignmentNotFound)
	}

	if err := uc.CellRepository.UpsertCell(ctx, cell); err != nil {
		return nil, err
	}

	uc.invalidateWeekCache(ctx, cell.Date)
	uc.publish(ctx, contracts.ScheduleEvent{
		Type:         contracts.ScheduleEventAssignmentStatus,
		Date:         cell.Date,
		TimeSlotID:   cell.TimeSlotID,
		AssignmentID: request.AssignmentID,
		Status:       request.Status,
	})

	return uc.GetWeekSchedule(ctx, cell.Date)
}

// lockCell serializes mutations per (date, timeSlotID) so two simultaneous
// adds to the same cell cannot silently drop one assignment.
func (uc *scheduleUsecase) lockCell(ctx context.Context, date, timeSlotID string) (func(), error) {
	lockKey := fmt.Sprintf(constvars.RedisCellLockKeyFormat, date, timeSlotID)
	ttl := time.Duration(uc.InternalConfig.App.CellLockTTLInSec) * time.Second

	acquired, lockValue, err := uc.Locker.TryLock(ctx, lockKey, ttl)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrCellLockNotAcquired(nil)
	}
	return func() {
		if err := uc.Locker.Unlock(ctx, lockKey, lockValue); err != nil {
			uc.Log.Warn("scheduleUsecase failed to release cell lock",
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(err),
			)
		}
	}, nil
}

func (uc *scheduleUsecase) invalidateWeekCache(ctx context.Context, date string) {
	day, err := utils.ParseCalendarDate(date, uc.Resolver.Location())
	if err != nil {
		return
	}
	monday := NormalizeWeekStart(day)
	cacheKey := fmt.Sprintf(constvars.RedisWeekScheduleKeyFormat, utils.FormatCalendarDate(monday))
	if err := uc.RedisRepository.Delete(ctx, cacheKey); err != nil {
		uc.Log.Warn("scheduleUsecase failed to invalidate week cache",
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Error(err),
		)
	}
}

func (uc *scheduleUsecase) publish(ctx context.Context, event contracts.ScheduleEvent) {
	if uc.Publisher == nil {
		return
	}
	if err := uc.Publisher.PublishScheduleEvent(ctx, event); err != nil {
		uc.Log.Warn("scheduleUsecase failed to publish schedule event",
			zap.String("event_type", event.Type),
			zap.Error(err),
		)
	}
}
