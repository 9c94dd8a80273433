package contracts

import (
	"context"
	"mise-service/internal/app/models"
)

// StaffDirectory is the external read-only lookup the scheduling core
// consumes. It is injected at construction time, never a singleton.
type StaffDirectory interface {
	GetAllStaff(ctx context.Context) ([]models.Staff, error)
	FindStaffByID(ctx context.Context, staffID string) (*models.Staff, error)
}

type StaffUsecase interface {
	ListStaffs(ctx context.Context) ([]models.Staff, error)
}
