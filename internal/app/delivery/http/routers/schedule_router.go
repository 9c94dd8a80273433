package routers

import (
	"mise-service/internal/app/delivery/http/controllers"
	"mise-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachScheduleRoutes(router chi.Router, middlewares *middlewares.Middlewares, scheduleController *controllers.ScheduleController) {
	router.Get("/week", scheduleController.GetWeekSchedule)
	router.Get("/cells", scheduleController.GetCell)
	router.Post("/assignments", scheduleController.AddStaffToCell)
	router.Delete("/assignments/{assignment_id}", scheduleController.RemoveAssignment)
	router.Patch("/assignments/{assignment_id}/status", scheduleController.TransitionAssignment)
}
