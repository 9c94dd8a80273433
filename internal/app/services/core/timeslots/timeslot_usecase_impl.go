package timeslots

import (
	"context"
	"fmt"
	"mise-service/internal/app/contracts"
	"mise-service/internal/app/models"
	"mise-service/internal/pkg/dto/requests"
	"mise-service/internal/pkg/exceptions"
	"mise-service/internal/pkg/utils"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type timeSlotUsecase struct {
	TimeSlotRepository contracts.TimeSlotRepository
	Log                *zap.Logger
}

var (
	timeSlotUsecaseInstance contracts.TimeSlotUsecase
	onceTimeSlotUsecase     sync.Once
)

func NewTimeSlotUsecase(
	timeSlotRepository contracts.TimeSlotRepository,
	logger *zap.Logger,
) contracts.TimeSlotUsecase {
	onceTimeSlotUsecase.Do(func() {
		instance := &timeSlotUsecase{
			TimeSlotRepository: timeSlotRepository,
			Log:                logger,
		}
		timeSlotUsecaseInstance = instance
	})
	return timeSlotUsecaseInstance
}

// ListTimeSlots returns the catalog ordered ascending by start time.
// Overnight slots sort by their start time as well, so a 22:00-02:00 slot
// lands after a 19:00-21:00 one regardless of where it ends.
func (uc *timeSlotUsecase) ListTimeSlots(ctx context.Context) ([]models.TimeSlot, error) {
	slots, err := uc.TimeSlotRepository.ListTimeSlots(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return utils.ClockMinutes(slots[i].StartTime) < utils.ClockMinutes(slots[j].StartTime)
	})
	return slots, nil
}

func (uc *timeSlotUsecase) CreateTimeSlot(ctx context.Context, request *requests.CreateTimeSlot) (*models.TimeSlot, error) {
	startTime, endTime, err := normalizeWindow(request.StartTime, request.EndTime)
	if err != nil {
		return nil, err
	}

	slot := &models.TimeSlot{
		ID:        uuid.NewString(),
		Label:     request.Label,
		StartTime: startTime,
		EndTime:   endTime,
	}
	slot.SetCreatedAtUpdatedAt()

	if _, err := uc.TimeSlotRepository.CreateTimeSlot(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (uc *timeSlotUsecase) UpdateTimeSlot(ctx context.Context, request *requests.UpdateTimeSlot) (*models.TimeSlot, error) {
	startTime, endTime, err := normalizeWindow(request.StartTime, request.EndTime)
	if err != nil {
		return nil, err
	}

	slot, err := uc.TimeSlotRepository.FindTimeSlotByID(ctx, request.TimeSlotID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, exceptions.ErrTimeSlotNotFound(nil)
	}

	slot.Label = request.Label
	slot.StartTime = startTime
	slot.EndTime = endTime
	slot.SetUpdatedAt()

	// Catalog edits never cascade into recorded assignments; derived
	// schedule rows pick the change up on the next build.
	if err := uc.TimeSlotRepository.UpdateTimeSlot(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// DeleteTimeSlot removes the slot from the catalog only. Cells recorded
// against the id stay in the store and are filtered out at read time.
func (uc *timeSlotUsecase) DeleteTimeSlot(ctx context.Context, timeSlotID string) error {
	deleted, err := uc.TimeSlotRepository.DeleteTimeSlot(ctx, timeSlotID)
	if err != nil {
		return err
	}
	if !deleted {
		return exceptions.ErrTimeSlotNotFound(nil)
	}
	return nil
}

// normalizeWindow validates both clock times and renders them zero-padded.
// Equal start and end is degenerate; end before start is a valid overnight
// window and passes through untouched.
func normalizeWindow(startTime, endTime string) (string, string, error) {
	startH, startM, ok := utils.ParseClock(startTime)
	if !ok {
		return "", "", exceptions.ErrTimeSlotMalformedClock(fmt.Errorf("start time '%s'", startTime))
	}
	endH, endM, ok := utils.ParseClock(endTime)
	if !ok {
		return "", "", exceptions.ErrTimeSlotMalformedClock(fmt.Errorf("end time '%s'", endTime))
	}
	if startH*60+startM == endH*60+endM {
		return "", "", exceptions.ErrTimeSlotDegenerateWindow(nil)
	}
	return fmt.Sprintf("%02d:%02d", startH, startM), fmt.Sprintf("%02d:%02d", endH, endM), nil
}
