package constvars

const (
	ListTimeSlotsSuccessMessage   = "successfully retrieved time slots"
	CreateTimeSlotSuccessMessage  = "successfully created time slot"
	UpdateTimeSlotSuccessMessage  = "successfully updated time slot"
	DeleteTimeSlotSuccessMessage  = "successfully deleted time slot"
	GetWeekScheduleSuccessMessage = "successfully retrieved week schedule"
	GetCellSuccessMessage         = "successfully retrieved schedule cell"
	AddAssignmentSuccessMessage   = "successfully added staff to schedule cell"
	RemoveAssignmentSuccess       = "successfully removed assignment"
	TransitionAssignmentSuccess   = "successfully updated assignment status"
	ListStaffsSuccessMessage      = "successfully retrieved staff directory"
)
