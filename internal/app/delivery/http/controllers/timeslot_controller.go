package controllers

import (
	"context"
	"mise-service/internal/app/contracts"
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

type TimeSlotController struct {
	Log             *zap.Logger
	TimeSlotUsecase contracts.TimeSlotUsecase
}

var (
	timeSlotControllerInstance *TimeSlotController
	onceTimeSlotController     sync.Once
)

func NewTimeSlotController(logger *zap.Logger, timeSlotUsecase contracts.TimeSlotUsecase) *TimeSlotController {
	onceTimeSlotController.Do(func() {
		instance := &TimeSlotController{
			Log:             logger,
			TimeSlotUsecase: timeSlotUsecase,
		}
		timeSlotControllerInstance = instance
	})
	return timeSlotControllerInstance
}

func (ctrl *TimeSlotController) ListTimeSlots(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("TimeSlotController.ListTimeSlots requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	slots, err := ctrl.TimeSlotUsecase.ListTimeSlots(ctx)
	if err != nil {
		ctrl.Log.Error("TimeSlotController.ListTimeSlots error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ListTimeSlotsSuccessMessage, slots)
}

func (ctrl *TimeSlotController) CreateTimeSlot(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("TimeSlotController.CreateTimeSlot requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("TimeSlotController.CreateTimeSlot called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.CreateTimeSlot)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("TimeSlotController.CreateTimeSlot error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("TimeSlotController.CreateTimeSlot validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	slot, err := ctrl.TimeSlotUsecase.CreateTimeSlot(ctx, request)
	if err != nil {
		ctrl.Log.Error("TimeSlotController.CreateTimeSlot error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateTimeSlotSuccessMessage, slot)
}

func (ctrl *TimeSlotController) UpdateTimeSlotByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("TimeSlotController.UpdateTimeSlotByID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	timeSlotID := chi.URLParam(r, "time_slot_id")
	if timeSlotID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "time_slot_id"))
		return
	}

	request := new(requests.UpdateTimeSlot)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("TimeSlotController.UpdateTimeSlotByID error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.TimeSlotID = timeSlotID

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("TimeSlotController.UpdateTimeSlotByID validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	slot, err := ctrl.TimeSlotUsecase.UpdateTimeSlot(ctx, request)
	if err != nil {
		ctrl.Log.Error("TimeSlotController.UpdateTimeSlotByID error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTimeSlotIDKey, timeSlotID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateTimeSlotSuccessMessage, slot)
}

func (ctrl *TimeSlotController) DeleteTimeSlotByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("TimeSlotController.DeleteTimeSlotByID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	timeSlotID := chi.URLParam(r, "time_slot_id")
	if timeSlotID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "time_slot_id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.TimeSlotUsecase.DeleteTimeSlot(ctx, timeSlotID); err != nil {
		ctrl.Log.Error("TimeSlotController.DeleteTimeSlotByID error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTimeSlotIDKey, timeSlotID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteTimeSlotSuccessMessage, nil)
}
