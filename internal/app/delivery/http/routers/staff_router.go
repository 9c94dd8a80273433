package routers

import (
	"mise-service/internal/app/delivery/http/controllers"
	"mise-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachStaffRoutes(router chi.Router, middlewares *middlewares.Middlewares, staffController *controllers.StaffController) {
	router.Get("/", staffController.ListStaffs)
}
