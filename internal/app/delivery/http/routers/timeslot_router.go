package routers

import (
	"mise-service/internal/app/delivery/http/controllers"
	"mise-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachTimeSlotRoutes(router chi.Router, middlewares *middlewares.Middlewares, timeSlotController *controllers.TimeSlotController) {
	router.Get("/", timeSlotController.ListTimeSlots)
	router.Post("/", timeSlotController.CreateTimeSlot)
	router.Put("/{time_slot_id}", timeSlotController.UpdateTimeSlotByID)
	router.Delete("/{time_slot_id}", timeSlotController.DeleteTimeSlotByID)
}
