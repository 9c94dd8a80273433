package controllers

import (
	"context"
	"mise-service/internal/app/contracts"
	"mise-service/internal/app/services/core/schedules"
	"mise-service/internal/pkg/constvars"
	"mise-service/internal/pkg/dto/requests"
	"mise-service/internal/pkg/exceptions"
	"mise-service/internal/pkg/utils"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ScheduleController struct {
	Log             *zap.Logger
	ScheduleUsecase contracts.ScheduleUsecase
	Resolver        *schedules.StatusResolver
}

var (
	scheduleControllerInstance *ScheduleController
	onceScheduleController     sync.Once
)

func NewScheduleController(logger *zap.Logger, scheduleUsecase contracts.ScheduleUsecase, resolver *schedules.StatusResolver) *ScheduleController {
	onceScheduleController.Do(func() {
		instance := &ScheduleController{
			Log:             logger,
			ScheduleUsecase: scheduleUsecase,
			Resolver:        resolver,
		}
		scheduleControllerInstance = instance
	})
	return scheduleControllerInstance
}

func (ctrl *ScheduleController) GetWeekSchedule(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ScheduleController.GetWeekSchedule requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	weekStart := r.URL.Query().Get("start")
	if weekStart == "" {
		weekStart = utils.FormatCalendarDate(time.Now().In(ctrl.Resolver.Location()))
	}
	ctrl.Log.Info("ScheduleController.GetWeekSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWeekStartKey, weekStart),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	week, err := ctrl.ScheduleUsecase.GetWeekSchedule(ctx, weekStart)
	if err != nil {
		ctrl.Log.Error("ScheduleController.GetWeekSchedule error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingWeekStartKey, weekStart),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	view := schedules.NewWeekScheduleView(*week, ctrl.Resolver, time.Now().In(ctrl.Resolver.Location()))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetWeekScheduleSuccessMessage, view)
}

func (ctrl *ScheduleController) GetCell(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ScheduleController.GetCell requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrQueryParamValidation(nil, "date"))
		return
	}
	timeSlotID := r.URL.Query().Get("slot_id")
	if timeSlotID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrQueryParamValidation(nil, "slot_id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cell, err := ctrl.ScheduleUsecase.GetCell(ctx, date, timeSlotID)
	if err != nil {
		ctrl.Log.Error("ScheduleController.GetCell error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCellDateKey, date),
			zap.String(constvars.LoggingTimeSlotIDKey, timeSlotID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCellSuccessMessage, cell)
}

func (ctrl *ScheduleController) AddStaffToCell(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ScheduleController.AddStaffToCell requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	request := new(requests.AddStaffToCell)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("ScheduleController.AddStaffToCell error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("ScheduleController.AddStaffToCell validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}
	ctrl.Log.Info("ScheduleController.AddStaffToCell called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCellDateKey, request.Date),
		zap.String(constvars.LoggingTimeSlotIDKey, request.TimeSlotID),
		zap.String(constvars.LoggingStaffIDKey, request.StaffID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	week, err := ctrl.ScheduleUsecase.AddStaffToCell(ctx, request)
	if err != nil {
		ctrl.Log.Error("ScheduleController.AddStaffToCell error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	view := schedules.NewWeekScheduleView(*week, ctrl.Resolver, time.Now().In(ctrl.Resolver.Location()))
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.AddAssignmentSuccessMessage, view)
}

// RemoveAssignment treats an unknown assignment id as already removed, so the
// response is success either way. The usecase signals that case with a nil
// snapshot and no error.
func (ctrl *ScheduleController) RemoveAssignment(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ScheduleController.RemoveAssignment requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	assignmentID := chi.URLParam(r, "assignment_id")
	if assignmentID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "assignment_id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	week, err := ctrl.ScheduleUsecase.RemoveAssignment(ctx, assignmentID)
	if err != nil {
		ctrl.Log.Error("ScheduleController.RemoveAssignment error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAssignmentIDKey, assignmentID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	if week == nil {
		utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RemoveAssignmentSuccess, nil)
		return
	}
	view := schedules.NewWeekScheduleView(*week, ctrl.Resolver, time.Now().In(ctrl.Resolver.Location()))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RemoveAssignmentSuccess, view)
}

func (ctrl *ScheduleController) TransitionAssignment(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ScheduleController.TransitionAssignment requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	assignmentID := chi.URLParam(r, "assignment_id")
	if assignmentID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "assignment_id"))
		return
	}

	request := new(requests.TransitionAssignment)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("ScheduleController.TransitionAssignment error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.AssignmentID = assignmentID

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("ScheduleController.TransitionAssignment validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}
	ctrl.Log.Info("ScheduleController.TransitionAssignment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAssignmentIDKey, assignmentID),
		zap.String("target_status", request.Status),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	week, err := ctrl.ScheduleUsecase.TransitionAssignment(ctx, request)
	if err != nil {
		ctrl.Log.Error("ScheduleController.TransitionAssignment error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAssignmentIDKey, assignmentID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	view := schedules.NewWeekScheduleView(*week, ctrl.Resolver, time.Now().In(ctrl.Resolver.Location()))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.TransitionAssignmentSuccess, view)
}
