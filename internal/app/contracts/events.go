package contracts

import "context"

// ScheduleEvent is published on every assignment mutation and on cell
// temporal-status flips so downstream consumers (notification worker,
// audit trail) can react without polling this service.
type ScheduleEvent struct {
	Type         string `json:"type"`
	Date         string `json:"date"`
	TimeSlotID   string `json:"timeSlotId"`
	AssignmentID string `json:"assignmentId,omitempty"`
	StaffID      string `json:"staffId,omitempty"`
	Status       string `json:"status,omitempty"`
}

const (
	ScheduleEventAssignmentAdded   = "schedule.assignment.added"
	ScheduleEventAssignmentRemoved = "schedule.assignment.removed"
	ScheduleEventAssignmentStatus  = "schedule.assignment.status"
	ScheduleEventCellStatus        = "schedule.cell.status"
)

type SchedulePublisher interface {
	PublishScheduleEvent(ctx context.Context, event ScheduleEvent) error
}
