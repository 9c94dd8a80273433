package requests

type AddStaffToCell struct {
	Date       string `json:"date" validate:"required,calendar_date"`
	TimeSlotID string `json:"timeSlotId" validate:"required"`
	StaffID    string `json:"staffId" validate:"required"`
	Role       string `json:"role" validate:"max=64"`
}

type TransitionAssignment struct {
	AssignmentID string `json:"-"`
	Status       string `json:"status" validate:"required,oneof=confirmed cancelled"`
}
