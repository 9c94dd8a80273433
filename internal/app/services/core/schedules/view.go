package schedules

import (
	"mise-service/internal/app/models"
	"mise-service/internal/pkg/dto/responses"
	"time"
)

// NewWeekScheduleView derives the render-ready projection of a snapshot:
// catalog rows in display order, per-cell temporal status against now, and
// active headcounts. Cells referencing a slot absent from the catalog are
// left out of the view while their data stays in the snapshot.
func NewWeekScheduleView(ws models.WeekSchedule, resolver *StatusResolver, now time.Time) responses.WeekScheduleView {
	known := make(map[string]models.TimeSlot, len(ws.TimeSlots))
	for _, slot := range ws.TimeSlots {
		known[slot.ID] = slot
	}

	cells := make([]responses.CellView, 0, len(ws.Cells))
	for _, cell := range ws.Cells {
		slot, ok := known[cell.TimeSlotID]
		if !ok {
			continue
		}
		cells = append(cells, NewCellView(cell, slot, resolver, now))
	}

	return responses.WeekScheduleView{
		WeekStart: ws.WeekStart,
		WeekEnd:   ws.WeekEnd,
		TimeSlots: ws.TimeSlots,
		Cells:     cells,
	}
}

func NewCellView(cell models.ScheduleCell, slot models.TimeSlot, resolver *StatusResolver, now time.Time) responses.CellView {
	assignments := cell.Assignments
	if assignments == nil {
		assignments = []models.StaffAssignment{}
	}
	return responses.CellView{
		Date:        cell.Date,
		TimeSlotID:  cell.TimeSlotID,
		Status:      resolver.Resolve(cell.Date, slot, now),
		ActiveCount: CountActive(cell),
		Assignments: assignments,
	}
}
