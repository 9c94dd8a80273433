package requests

type CreateTimeSlot struct {
	Label     string `json:"label" validate:"max=64"`
	StartTime string `json:"startTime" validate:"required,clock_time"`
	EndTime   string `json:"endTime" validate:"required,clock_time"`
}

type UpdateTimeSlot struct {
	TimeSlotID string `json:"-"`
	Label      string `json:"label" validate:"max=64"`
	StartTime  string `json:"startTime" validate:"required,clock_time"`
	EndTime    string `json:"endTime" validate:"required,clock_time"`
}
