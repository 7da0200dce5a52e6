package services

import (
	"errors"
	"testing"

	"coachhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPermissionRepository is a mock type for the PermissionRepository interface
type MockPermissionRepository struct {
	mock.Mock
}

func (m *MockPermissionRepository) GetConfig() (models.PermissionConfig, error) {
	args := m.Called()
	return args.Get(0).(models.PermissionConfig), args.Error(1)
}

func (m *MockPermissionRepository) SaveConfig(config models.PermissionConfig) error {
	args := m.Called(config)
	return args.Error(0)
}

func (m *MockPermissionRepository) GetDefinitions() ([]models.PermissionDefinition, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PermissionDefinition), args.Error(1)
}

func (m *MockPermissionRepository) SaveDefinition(def models.PermissionDefinition) error {
	args := m.Called(def)
	return args.Error(0)
}

func (m *MockPermissionRepository) DeleteDefinition(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestPermissionService_HasPermission(t *testing.T) {
	matrix := models.PermissionConfig{
		Free: map[string]bool{"download_resources": false, "view_dashboard": true},
		Pro:  map[string]bool{"download_resources": true, "view_dashboard": true},
	}

	t.Run("Nil user is always denied", func(t *testing.T) {
		mockRepo := new(MockPermissionRepository)
		service := NewPermissionService(mockRepo)

		assert.False(t, service.HasPermission(nil, "view_dashboard"))
		// No config read happens for an absent user.
		mockRepo.AssertNotCalled(t, "GetConfig")
	})

	t.Run("Admin is allowed even when the matrix says no", func(t *testing.T) {
		mockRepo := new(MockPermissionRepository)
		service := NewPermissionService(mockRepo)
		admin := &models.User{ID: "1", Role: models.RoleAdmin, Plan: models.PlanFree}

		assert.True(t, service.HasPermission(admin, "download_resources"))
		mockRepo.AssertNotCalled(t, "GetConfig")
	})

	t.Run("Free user is checked against the free row", func(t *testing.T) {
		mockRepo := new(MockPermissionRepository)
		mockRepo.On("GetConfig").Return(matrix, nil).Twice()
		service := NewPermissionService(mockRepo)
		user := &models.User{ID: "2", Role: models.RoleUser, Plan: models.PlanFree}

		assert.False(t, service.HasPermission(user, "download_resources"))
		assert.True(t, service.HasPermission(user, "view_dashboard"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Pro user is checked against the pro row", func(t *testing.T) {
		mockRepo := new(MockPermissionRepository)
		mockRepo.On("GetConfig").Return(matrix, nil).Once()
		service := NewPermissionService(mockRepo)
		user := &models.User{ID: "3", Role: models.RoleUser, Plan: models.PlanPro}

		assert.True(t, service.HasPermission(user, "download_resources"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown capability key is denied", func(t *testing.T) {
		mockRepo := new(MockPermissionRepository)
		mockRepo.On("GetConfig").Return(matrix, nil).Once()
		service := NewPermissionService(mockRepo)
		user := &models.User{ID: "2", Role: models.RoleUser, Plan: models.PlanPro}

		assert.False(t, service.HasPermission(user, "no_such_capability"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Config read failure denies", func(t *testing.T) {
		mockRepo := new(MockPermissionRepository)
		mockRepo.On("GetConfig").Return(models.PermissionConfig{}, errors.New("db error")).Once()
		service := NewPermissionService(mockRepo)
		user := &models.User{ID: "2", Role: models.RoleUser, Plan: models.PlanPro}

		assert.False(t, service.HasPermission(user, "view_dashboard"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Matrix edit takes effect on the next check", func(t *testing.T) {
		mockRepo := new(MockPermissionRepository)
		service := NewPermissionService(mockRepo)
		user := &models.User{ID: "2", Role: models.RoleUser, Plan: models.PlanFree}

		mockRepo.On("GetConfig").Return(matrix, nil).Once()
		assert.False(t, service.HasPermission(user, "download_resources"))

		flipped := models.PermissionConfig{
			Free: map[string]bool{"download_resources": true},
			Pro:  map[string]bool{"download_resources": true},
		}
		mockRepo.On("GetConfig").Return(flipped, nil).Once()
		assert.True(t, service.HasPermission(user, "download_resources"))
		mockRepo.AssertExpectations(t)
	})
}
