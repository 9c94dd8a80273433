package controllers

import (
	"context"
	"mise-service/internal/app/contracts"
	"mise-service/internal/pkg/constvars"
	"mise-service/internal/pkg/dto/responses"
	"mise-service/internal/pkg/exceptions"
	"mise-service/internal/pkg/utils"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

type StaffController struct {
	Log          *zap.Logger
	StaffUsecase contracts.StaffUsecase
}

var (
	staffControllerInstance *StaffController
	onceStaffController     sync.Once
)

func NewStaffController(logger *zap.Logger, staffUsecase contracts.StaffUsecase) *StaffController {
	onceStaffController.Do(func() {
		instance := &StaffController{
			Log:          logger,
			StaffUsecase: staffUsecase,
		}
		staffControllerInstance = instance
	})
	return staffControllerInstance
}

func (ctrl *StaffController) ListStaffs(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("StaffController.ListStaffs requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	staffs, err := ctrl.StaffUsecase.ListStaffs(ctx)
	if err != nil {
		ctrl.Log.Error("StaffController.ListStaffs error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	views := make([]responses.Staff, 0, len(staffs))
	for _, staff := range staffs {
		roles := staff.Roles
		if roles == nil {
			roles = []string{}
		}
		views = append(views, responses.Staff{
			ID:        staff.ID,
			Name:      staff.Name,
			Initials:  staff.Initials,
			AvatarURL: staff.Avatar,
			Roles:     roles,
		})
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ListStaffsSuccessMessage, views)
}
