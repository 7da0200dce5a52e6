package services

import (
	"log"

	"coachhub/models"
	"coachhub/repository"
)

// PermissionService decides whether a user may perform a gated action. The
// check is advisory: it gates the API surface but is not a security boundary.
type PermissionService interface {
	HasPermission(user *models.User, capabilityKey string) bool
}

type permissionService struct {
	permRepo repository.PermissionRepository
}

// NewPermissionService creates a PermissionService.
func NewPermissionService(permRepo repository.PermissionRepository) PermissionService {
	return &permissionService{permRepo: permRepo}
}

// HasPermission resolves access: absent user is always denied, admin is
// always allowed regardless of matrix contents, everyone else gets the
// persisted matrix entry for their plan (defaulting to free). The config is
// read on every call so a matrix edit takes effect immediately.
func (s *permissionService) HasPermission(user *models.User, capabilityKey string) bool {
	if user == nil {
		return false
	}
	if user.Role == models.RoleAdmin {
		return true
	}

	config, err := s.permRepo.GetConfig()
	if err != nil {
		log.Printf("ERROR: [PermissionService] Failed to load permission config, denying '%s' for user '%s': %v", capabilityKey, user.ID, err)
		return false
	}
	return config.ForPlan(user.Plan)[capabilityKey]
}
