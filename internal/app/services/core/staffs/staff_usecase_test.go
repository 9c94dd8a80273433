package staffs

import (
	"context"
	"errors"
	"mise-service/internal/app/config"
	"mise-service/internal/app/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockStaffDirectory struct {
	mock.Mock
}

func (m *MockStaffDirectory) GetAllStaff(ctx context.Context) ([]models.Staff, error) {
	args := m.Called(ctx)
	staffs, _ := args.Get(0).([]models.Staff)
	return staffs, args.Error(1)
}

func (m *MockStaffDirectory) FindStaffByID(ctx context.Context, staffID string) (*models.Staff, error) {
	args := m.Called(ctx, staffID)
	staff, _ := args.Get(0).(*models.Staff)
	return staff, args.Error(1)
}

type MockAvatarStorage struct {
	mock.Mock
}

func (m *MockAvatarStorage) PresignAvatarURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, objectName, expiry)
	return args.String(0), args.Error(1)
}

func TestStaffUsecase_ListStaffs(t *testing.T) {
	internalConfig := &config.InternalConfig{
		App: config.App{
			AvatarURLExpiryInMinute: 60,
		},
	}

	mockDirectory := new(MockStaffDirectory)
	mockStorage := new(MockAvatarStorage)
	usecase := NewStaffUsecase(mockDirectory, mockStorage, internalConfig, zap.NewNop())

	mockDirectory.On("GetAllStaff", mock.Anything).Return([]models.Staff{
		{ID: "st-1", Name: "Jon Snow", Initials: "JS", Avatar: "avatars/jon.png"},
		{ID: "st-2", Name: "Arya Stark", Initials: "AS", Avatar: ""},
		{ID: "st-3", Name: "Sam Tarly", Initials: "ST", Avatar: "avatars/sam.png"},
	}, nil)
	mockStorage.On("PresignAvatarURL", mock.Anything, "avatars/jon.png", time.Hour).Return("https://cdn.example/jon.png?sig=abc", nil)
	mockStorage.On("PresignAvatarURL", mock.Anything, "avatars/sam.png", time.Hour).Return("", errors.New("bucket unreachable"))

	staffs, err := usecase.ListStaffs(context.Background())
	assert.NoError(t, err)
	assert.Len(t, staffs, 3)

	assert.Equal(t, "https://cdn.example/jon.png?sig=abc", staffs[0].Avatar)

	// No avatar means no presign call at all.
	assert.Equal(t, "", staffs[1].Avatar)
	mockStorage.AssertNumberOfCalls(t, "PresignAvatarURL", 2)

	// A presign failure downgrades to no avatar instead of failing the listing.
	assert.Equal(t, "", staffs[2].Avatar)
}
