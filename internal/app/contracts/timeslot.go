package contracts

import (
	"context"
	"mise-service/internal/app/models"
	"mise-service/internal/pkg/dto/requests"
)

type TimeSlotRepository interface {
	ListTimeSlots(ctx context.Context) ([]models.TimeSlot, error)
	FindTimeSlotByID(ctx context.Context, timeSlotID string) (*models.TimeSlot, error)
	CreateTimeSlot(ctx context.Context, slot *models.TimeSlot) (string, error)
	UpdateTimeSlot(ctx context.Context, slot *models.TimeSlot) error
	DeleteTimeSlot(ctx context.Context, timeSlotID string) (bool, error)
}

type TimeSlotUsecase interface {
	ListTimeSlots(ctx context.Context) ([]models.TimeSlot, error)
	CreateTimeSlot(ctx context.Context, request *requests.CreateTimeSlot) (*models.TimeSlot, error)
	UpdateTimeSlot(ctx context.Context, request *requests.UpdateTimeSlot) (*models.TimeSlot, error)
	DeleteTimeSlot(ctx context.Context, timeSlotID string) error
}
