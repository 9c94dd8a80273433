package responses

import "mise-service/internal/app/models"

// CellView decorates a stored cell with its derived temporal status and
// active headcount for grid rendering.
type CellView struct {
	Date        string                   `json:"date"`
	TimeSlotID  string                   `json:"timeSlotId"`
	Status      models.SlotStatus        `json:"status"`
	ActiveCount int                      `json:"activeCount"`
	Assignments []models.StaffAssignment `json:"assignments"`
}

// WeekScheduleView is the aggregate snapshot plus per-cell derived state.
type WeekScheduleView struct {
	WeekStart string            `json:"weekStart"`
	WeekEnd   string            `json:"weekEnd"`
	TimeSlots []models.TimeSlot `json:"timeSlots"`
	Cells     []CellView        `json:"cells"`
}
