package schedules

import (
	"mise-service/internal/app/models"
	"mise-service/internal/pkg/utils"
	"sort"
	"time"
)

// The functions in this file are the pure core of the scheduling engine.
// Every mutating operation returns a fresh WeekSchedule value and leaves
// the input untouched; the hosting layer decides what "current" means and
// when to discard prior versions.

// NormalizeWeekStart snaps t back to Monday 00:00 of its week.
func NormalizeWeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// BuildWeek binds a Monday-anchored 7-day window, the catalog snapshot, and
// the in-range subset of cells into one WeekSchedule. The catalog is
// attached as given and deliberately not filtered against existing cells;
// orphaned cell data survives catalog deletions and is hidden at render
// time instead.
func BuildWeek(weekStart time.Time, catalog []models.TimeSlot, cells []models.ScheduleCell) models.WeekSchedule {
	start := NormalizeWeekStart(weekStart)
	end := start.AddDate(0, 0, 6)
	startDate := utils.FormatCalendarDate(start)
	endDate := utils.FormatCalendarDate(end)

	slots := make([]models.TimeSlot, len(catalog))
	copy(slots, catalog)
	sort.SliceStable(slots, func(i, j int) bool {
		return utils.ClockMinutes(slots[i].StartTime) < utils.ClockMinutes(slots[j].StartTime)
	})

	inRange := make([]models.ScheduleCell, 0, len(cells))
	for _, cell := range cells {
		if cell.Date >= startDate && cell.Date <= endDate {
			inRange = append(inRange, cloneCell(cell))
		}
	}

	return models.WeekSchedule{
		WeekStart: startDate,
		WeekEnd:   endDate,
		TimeSlots: slots,
		Cells:     inRange,
	}
}

// WithUpdatedSlots swaps the catalog snapshot without touching cells.
// Rows are re-derived from the new catalog on the next render.
func WithUpdatedSlots(ws models.WeekSchedule, catalog []models.TimeSlot) models.WeekSchedule {
	next := cloneWeek(ws)
	slots := make([]models.TimeSlot, len(catalog))
	copy(slots, catalog)
	sort.SliceStable(slots, func(i, j int) bool {
		return utils.ClockMinutes(slots[i].StartTime) < utils.ClockMinutes(slots[j].StartTime)
	})
	next.TimeSlots = slots
	return next
}

// GetCell returns the cell at (date, timeSlotID) by value. A missing cell
// behaves as an empty one; callers never see nil.
func GetCell(ws models.WeekSchedule, date, timeSlotID string) models.ScheduleCell {
	for _, cell := range ws.Cells {
		if cell.Date == date && cell.TimeSlotID == timeSlotID {
			return cloneCell(cell)
		}
	}
	return models.ScheduleCell{
		Date:        date,
		TimeSlotID:  timeSlotID,
		Assignments: []models.StaffAssignment{},
	}
}

// AddAssignment appends the assignment to the target cell, creating the
// cell if absent, and returns the resulting snapshot. Insertion order is
// display order. Whether the same staff member may appear twice in one
// cell is a business rule this layer does not enforce.
func AddAssignment(ws models.WeekSchedule, date, timeSlotID string, assignment models.StaffAssignment) models.WeekSchedule {
	next := cloneWeek(ws)
	for i := range next.Cells {
		if next.Cells[i].Date == date && next.Cells[i].TimeSlotID == timeSlotID {
			next.Cells[i].Assignments = append(next.Cells[i].Assignments, assignment)
			return next
		}
	}
	next.Cells = append(next.Cells, models.ScheduleCell{
		Date:        date,
		TimeSlotID:  timeSlotID,
		Assignments: []models.StaffAssignment{assignment},
	})
	return next
}

// RemoveAssignment hard-deletes the assignment from whichever cell holds
// it. An unknown id is a no-op, not an error, so UI state that lags the
// store does not blow up; the returned snapshot then equals the input.
func RemoveAssignment(ws models.WeekSchedule, assignmentID string) models.WeekSchedule {
	next := cloneWeek(ws)
	for i := range next.Cells {
		for j, assignment := range next.Cells[i].Assignments {
			if assignment.ID == assignmentID {
				next.Cells[i].Assignments = append(next.Cells[i].Assignments[:j], next.Cells[i].Assignments[j+1:]...)
				return next
			}
		}
	}
	return next
}

// CanTransition encodes the assignment status machine: registered may
// confirm or cancel, confirmed may cancel, cancelled is terminal.
// Reintroducing a cancelled staff member requires a new assignment.
func CanTransition(from, to models.AssignmentStatus) bool {
	switch from {
	case models.AssignmentRegistered:
		return to == models.AssignmentConfirmed || to == models.AssignmentCancelled
	case models.AssignmentConfirmed:
		return to == models.AssignmentCancelled
	default:
		return false
	}
}

// TransitionAssignment applies a status change and returns the new
// snapshot. The second result is false when the id is unknown or the
// transition is undefined; the input is returned unchanged in that case.
func TransitionAssignment(ws models.WeekSchedule, assignmentID string, to models.AssignmentStatus) (models.WeekSchedule, bool) {
	next := cloneWeek(ws)
	for i := range next.Cells {
		for j := range next.Cells[i].Assignments {
			if next.Cells[i].Assignments[j].ID == assignmentID {
				if !CanTransition(next.Cells[i].Assignments[j].Status, to) {
					return ws, false
				}
				next.Cells[i].Assignments[j].Status = to
				return next, true
			}
		}
	}
	return ws, false
}

// CountActive is the headcount of a cell: assignments in any status except
// cancelled. Cancelled entries stay in the list as an audit trail but do
// not count as working staff.
func CountActive(cell models.ScheduleCell) int {
	count := 0
	for _, assignment := range cell.Assignments {
		if assignment.Status != models.AssignmentCancelled {
			count++
		}
	}
	return count
}

func cloneCell(cell models.ScheduleCell) models.ScheduleCell {
	assignments := make([]models.StaffAssignment, len(cell.Assignments))
	copy(assignments, cell.Assignments)
	return models.ScheduleCell{
		Date:        cell.Date,
		TimeSlotID:  cell.TimeSlotID,
		Assignments: assignments,
	}
}

func cloneWeek(ws models.WeekSchedule) models.WeekSchedule {
	slots := make([]models.TimeSlot, len(ws.TimeSlots))
	copy(slots, ws.TimeSlots)
	cells := make([]models.ScheduleCell, 0, len(ws.Cells))
	for _, cell := range ws.Cells {
		cells = append(cells, cloneCell(cell))
	}
	return models.WeekSchedule{
		WeekStart: ws.WeekStart,
		WeekEnd:   ws.WeekEnd,
		TimeSlots: slots,
		Cells:     cells,
	}
}
