package utils

import (
	"time"

	"mise-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("clock_time", validateClockTime)
	validate.RegisterValidation("calendar_date", validateCalendarDate)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateClockTime(fl validator.FieldLevel) bool {
	_, _, ok := ParseClock(fl.Field().String())
	return ok
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(constvars.CalendarDateLayout, fl.Field().String())
	return err == nil
}
