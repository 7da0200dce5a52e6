package api

import (
	"log"
	"net/http"
	"strings"
	"time"

	"coachhub/models"
	"coachhub/repository"
	"coachhub/services"
	"coachhub/utils"

	"github.com/gin-gonic/gin"
)

// APIHandler holds all dependencies for API handlers.
type APIHandler struct {
	users       repository.UserRepository
	posts       repository.PostRepository
	projects    repository.ProjectRepository
	lessons     repository.LessonRepository
	knowledge   repository.KnowledgeRepository
	uploads     repository.UploadRepository
	notes       repository.NoteRepository
	issues      repository.IssueRepository
	permissions repository.PermissionRepository
	site        repository.SiteRepository

	permissionService services.PermissionService
	diagnosisService  services.DiagnosisService
	assistantService  services.AssistantService
	exportService     services.ExportService
}

// NewAPIHandler creates a new APIHandler with necessary dependencies.
func NewAPIHandler(
	users repository.UserRepository,
	posts repository.PostRepository,
	projects repository.ProjectRepository,
	lessons repository.LessonRepository,
	knowledge repository.KnowledgeRepository,
	uploads repository.UploadRepository,
	notes repository.NoteRepository,
	issues repository.IssueRepository,
	permissions repository.PermissionRepository,
	site repository.SiteRepository,
	permissionService services.PermissionService,
	diagnosisService services.DiagnosisService,
	assistantService services.AssistantService,
	exportService services.ExportService,
) *APIHandler {
	return &APIHandler{
		users:             users,
		posts:             posts,
		projects:          projects,
		lessons:           lessons,
		knowledge:         knowledge,
		uploads:           uploads,
		notes:             notes,
		issues:            issues,
		permissions:       permissions,
		site:              site,
		permissionService: permissionService,
		diagnosisService:  diagnosisService,
		assistantService:  assistantService,
		exportService:     exportService,
	}
}

// currentUser resolves the caller from the X-User-ID header (or userID query
// parameter). There is no real authentication; the session context is passed
// explicitly instead of read from ambient state. A nil result means "not
// logged in".
func (h *APIHandler) currentUser(c *gin.Context) *models.User {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		userID = c.Query("userID")
	}
	if userID == "" {
		return nil
	}
	user, err := h.users.GetByID(userID)
	if err != nil {
		log.Printf("WARN: Failed to resolve user '%s': %v", userID, err)
		return nil
	}
	return user
}

// requireAdmin aborts with 403 unless the caller is an admin. Returns the
// admin user when allowed.
func (h *APIHandler) requireAdmin(c *gin.Context) *models.User {
	user := h.currentUser(c)
	if user == nil || user.Role != models.RoleAdmin {
		utils.SendJSONError(c, http.StatusForbidden, "Admin access required.", nil)
		return nil
	}
	return user
}

// requireCapability aborts with 403 (including an upgrade hint) unless the
// caller holds the capability. The check is advisory gating, not a security
// boundary.
func (h *APIHandler) requireCapability(c *gin.Context, key string) *models.User {
	user := h.currentUser(c)
	if user == nil {
		utils.SendJSONError(c, http.StatusUnauthorized, "Please log in first.", nil)
		return nil
	}
	if !h.permissionService.HasPermission(user, key) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":   "This feature requires an upgraded plan.",
			"upgrade": true,
		})
		return nil
	}
	return user
}

// InitHandler returns the application bootstrap snapshot: the resolved user,
// singleton site content, and the caller's capability map.
func (h *APIHandler) InitHandler(c *gin.Context) {
	user := h.currentUser(c)

	video, err := h.site.GetIntroVideo()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load site content.", err)
		return
	}
	about, err := h.site.GetAboutUs()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load site content.", err)
		return
	}
	defs, err := h.permissions.GetDefinitions()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load permission definitions.", err)
		return
	}

	capabilities := make(map[string]bool, len(defs))
	for _, def := range defs {
		capabilities[def.Key] = h.permissionService.HasPermission(user, def.Key)
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": "成功",
		"data": gin.H{
			"user":         user,
			"intro_video":  video,
			"about_us":     about,
			"capabilities": capabilities,
		},
	})
}

// LoginHandler is the form-fill "login": it finds an existing account by name
// or registers a new free-plan user. No credentials are involved.
func (h *APIHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Phone   string `json:"phone"`
		Email   string `json:"email"`
		Company string `json:"company"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "Name is required.", nil)
		return
	}

	existing, err := h.users.GetAll()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load users.", err)
		return
	}
	for _, user := range existing {
		if user.Name == req.Name {
			log.Printf("INFO: User '%s' logged in as existing account %s.", req.Name, user.ID)
			c.JSON(http.StatusOK, gin.H{"data": user})
			return
		}
	}

	user := models.User{
		ID:        utils.GenerateID(),
		Name:      req.Name,
		Role:      models.RoleUser,
		Plan:      models.PlanFree,
		Phone:     req.Phone,
		Email:     req.Email,
		Company:   req.Company,
		CreatedAt: utils.FormatTime(time.Now()),
	}
	if err := h.users.Save(user); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to register user.", err)
		return
	}
	log.Printf("INFO: Registered new user '%s' (ID %s).", user.Name, user.ID)
	c.JSON(http.StatusOK, gin.H{"data": user})
}
