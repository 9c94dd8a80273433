package schedules

import (
	"mise-service/internal/app/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewWeekScheduleView_HidesOrphanedCells(t *testing.T) {
	loc := time.UTC
	resolver := NewStatusResolver(loc)
	now := time.Date(2025, 3, 11, 12, 0, 0, 0, loc)

	ws := BuildWeek(time.Date(2025, 3, 10, 0, 0, 0, 0, loc), testCatalog(), []models.ScheduleCell{
		{Date: "2025-03-11", TimeSlotID: "slot-lunch", Assignments: []models.StaffAssignment{
			{ID: "a-1", StaffID: "st-1", Status: models.AssignmentConfirmed},
			{ID: "a-2", StaffID: "st-2", Status: models.AssignmentCancelled},
		}},
		{Date: "2025-03-12", TimeSlotID: "slot-deleted", Assignments: []models.StaffAssignment{
			{ID: "a-3", StaffID: "st-3", Status: models.AssignmentRegistered},
		}},
	})

	view := NewWeekScheduleView(ws, resolver, now)

	assert.Equal(t, "2025-03-10", view.WeekStart)
	assert.Equal(t, "2025-03-16", view.WeekEnd)
	assert.Len(t, view.TimeSlots, 3)

	// The orphaned cell stays in the snapshot but never reaches the grid.
	assert.Len(t, ws.Cells, 2)
	assert.Len(t, view.Cells, 1)
	assert.Equal(t, "slot-lunch", view.Cells[0].TimeSlotID)
	assert.Equal(t, models.SlotCurrent, view.Cells[0].Status)
	assert.Equal(t, 1, view.Cells[0].ActiveCount)
	assert.Len(t, view.Cells[0].Assignments, 2)
}

func TestNewCellView_StatusPerDate(t *testing.T) {
	loc := time.UTC
	resolver := NewStatusResolver(loc)
	now := time.Date(2025, 3, 11, 12, 0, 0, 0, loc)
	slot := models.TimeSlot{ID: "slot-lunch", StartTime: "11:00", EndTime: "14:00"}

	yesterday := NewCellView(models.ScheduleCell{Date: "2025-03-10", TimeSlotID: slot.ID}, slot, resolver, now)
	today := NewCellView(models.ScheduleCell{Date: "2025-03-11", TimeSlotID: slot.ID}, slot, resolver, now)
	tomorrow := NewCellView(models.ScheduleCell{Date: "2025-03-12", TimeSlotID: slot.ID}, slot, resolver, now)

	assert.Equal(t, models.SlotPast, yesterday.Status)
	assert.Equal(t, models.SlotCurrent, today.Status)
	assert.Equal(t, models.SlotFuture, tomorrow.Status)
	assert.NotNil(t, today.Assignments)
}
