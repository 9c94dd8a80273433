package models

// TimeSlot is a named wall-clock range that recurs every business day.
// StartTime and EndTime are "HH:MM" local times with no date component.
// An EndTime numerically earlier than StartTime denotes a slot that
// crosses midnight (e.g. 22:00-02:00), not an error.
type TimeSlot struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	Label     string `json:"label,omitempty" bson:"label,omitempty"`
	StartTime string `json:"startTime" bson:"startTime"`
	EndTime   string `json:"endTime" bson:"endTime"`
	TimeModel `bson:",inline"`
}
