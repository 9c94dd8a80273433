package staffs

import (
	"context"
	"mise-service/internal/app/config"
	"mise-service/internal/app/contracts"
	"mise-service/internal/app/models"
	"mise-service/internal/pkg/constvars"
	"sync"
	"time"

	"go.uber.org/zap"
)

type staffUsecase struct {
	StaffDirectory contracts.StaffDirectory
	AvatarStorage  contracts.AvatarStorage
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

var (
	staffUsecaseInstance contracts.StaffUsecase
	onceStaffUsecase     sync.Once
)

func NewStaffUsecase(
	staffDirectory contracts.StaffDirectory,
	avatarStorage contracts.AvatarStorage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.StaffUsecase {
	onceStaffUsecase.Do(func() {
		instance := &staffUsecase{
			StaffDirectory: staffDirectory,
			AvatarStorage:  avatarStorage,
			InternalConfig: internalConfig,
			Log:            logger,
		}
		staffUsecaseInstance = instance
	})
	return staffUsecaseInstance
}

// ListStaffs returns the directory with avatar object names swapped for
// presigned URLs the grid can embed directly. A failed presign downgrades
// to no avatar rather than failing the listing.
func (uc *staffUsecase) ListStaffs(ctx context.Context) ([]models.Staff, error) {
	staffs, err := uc.StaffDirectory.GetAllStaff(ctx)
	if err != nil {
		return nil, err
	}

	expiry := time.Duration(uc.InternalConfig.App.AvatarURLExpiryInMinute) * time.Minute
	for i := range staffs {
		if staffs[i].Avatar == "" {
			continue
		}
		url, err := uc.AvatarStorage.PresignAvatarURL(ctx, staffs[i].Avatar, expiry)
		if err != nil {
			uc.Log.Warn("staffUsecase.ListStaffs failed to presign avatar",
				zap.String(constvars.LoggingStaffIDKey, staffs[i].ID),
				zap.Error(err),
			)
			staffs[i].Avatar = ""
			continue
		}
		staffs[i].Avatar = url
	}
	return staffs, nil
}
