package models

// AssignmentStatus is the lifecycle state of a single staff assignment.
// registered -> confirmed, registered|confirmed -> cancelled; cancelled is
// terminal. Hard removal happens outside the status machine.
type AssignmentStatus string

const (
	AssignmentRegistered AssignmentStatus = "registered"
	AssignmentConfirmed  AssignmentStatus = "confirmed"
	AssignmentCancelled  AssignmentStatus = "cancelled"
)

// SlotStatus classifies a schedule cell relative to "now" in the business timezone.
type SlotStatus string

const (
	SlotPast    SlotStatus = "past"
	SlotCurrent SlotStatus = "current"
	SlotFuture  SlotStatus = "future"
)

// StaffAssignment records one staff member's presence within one cell.
// ID is unique per assignment instance, not per staff member; the same
// staff member may hold multiple assignments across cells.
type StaffAssignment struct {
	ID            string           `json:"id" bson:"id"`
	StaffID       string           `json:"staffId" bson:"staffId"`
	StaffName     string           `json:"staffName" bson:"staffName"`
	StaffInitials string           `json:"staffInitials" bson:"staffInitials"`
	StaffAvatar   string           `json:"staffAvatar,omitempty" bson:"staffAvatar,omitempty"`
	Role          string           `json:"role" bson:"role"`
	Status        AssignmentStatus `json:"status" bson:"status"`
}

// ScheduleCell is the atomic unit of the schedule grid, identified by
// (calendar date, time slot id). Assignments keep insertion order, which
// is also display order. Cancelled assignments stay in the list as an
// audit trail and are excluded from headcounts.
type ScheduleCell struct {
	Date        string            `json:"date" bson:"date"`
	TimeSlotID  string            `json:"timeSlotId" bson:"timeSlotId"`
	Assignments []StaffAssignment `json:"assignments" bson:"assignments"`
}

// WeekSchedule binds a Monday-anchored 7-day window, the time slot catalog
// in effect, and the sparse cell set into one immutable snapshot. Mutating
// operations return a fresh value; callers never splice cells in place.
type WeekSchedule struct {
	WeekStart string         `json:"weekStart"`
	WeekEnd   string         `json:"weekEnd"`
	TimeSlots []TimeSlot     `json:"timeSlots"`
	Cells     []ScheduleCell `json:"cells"`
}
