package contracts

import (
	"context"
	"mise-service/internal/app/models"
	"mise-service/internal/pkg/dto/requests"
)

type ScheduleCellRepository interface {
	FindCellsByDateRange(ctx context.Context, startDate, endDate string) ([]models.ScheduleCell, error)
	FindCell(ctx context.Context, date, timeSlotID string) (*models.ScheduleCell, error)
	FindCellByAssignmentID(ctx context.Context, assignmentID string) (*models.ScheduleCell, error)
	UpsertCell(ctx context.Context, cell *models.ScheduleCell) error
	DeleteCell(ctx context.Context, date, timeSlotID string) error
}

type ScheduleUsecase interface {
	GetWeekSchedule(ctx context.Context, weekStart string) (*models.WeekSchedule, error)
	GetCell(ctx context.Context, date, timeSlotID string) (*models.ScheduleCell, error)
	AddStaffToCell(ctx context.Context, request *requests.AddStaffToCell) (*models.WeekSchedule, error)
	RemoveAssignment(ctx context.Context, assignmentID string) (*models.WeekSchedule, error)
	TransitionAssignment(ctx context.Context, request *requests.TransitionAssignment) (*models.WeekSchedule, error)
}
