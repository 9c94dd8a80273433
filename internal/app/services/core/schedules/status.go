package schedules

import (
	"mise-service/internal/app/models"
	"mise-service/internal/pkg/utils"
	"time"
)

// StatusResolver classifies a slot instance relative to "now" in the fixed
// business timezone. It holds no state besides the injected location and is
// safe to call from any goroutine; callers own the polling cadence.
type StatusResolver struct {
	loc *time.Location
}

func NewStatusResolver(loc *time.Location) *StatusResolver {
	return &StatusResolver{loc: loc}
}

// Resolve composes the slot's start and end on cellDate in the business
// timezone and compares them against now. An end at or before the start
// marks an overnight slot and gets 24 hours added, so 22:00-02:00 on day D
// is current at D 23:30 and at D+1 01:30, and past at D+1 03:00.
//
// The function is total: inputs outside the documented domain (malformed
// date or clock strings) resolve as future, which keeps bad rows from ever
// rendering as live.
func (r *StatusResolver) Resolve(cellDate string, slot models.TimeSlot, now time.Time) models.SlotStatus {
	day, err := utils.ParseCalendarDate(cellDate, r.loc)
	if err != nil {
		return models.SlotFuture
	}

	startH, startM, ok := utils.ParseClock(slot.StartTime)
	if !ok {
		return models.SlotFuture
	}
	endH, endM, ok := utils.ParseClock(slot.EndTime)
	if !ok {
		return models.SlotFuture
	}

	slotStart := time.Date(day.Year(), day.Month(), day.Day(), startH, startM, 0, 0, r.loc)
	slotEnd := time.Date(day.Year(), day.Month(), day.Day(), endH, endM, 0, 0, r.loc)
	if !slotEnd.After(slotStart) {
		slotEnd = slotEnd.Add(24 * time.Hour)
	}

	switch {
	case now.After(slotEnd):
		return models.SlotPast
	case now.Before(slotStart):
		return models.SlotFuture
	default:
		return models.SlotCurrent
	}
}

// Location exposes the business timezone the resolver was built with.
func (r *StatusResolver) Location() *time.Location {
	return r.loc
}
