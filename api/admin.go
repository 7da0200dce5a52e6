package api

import (
	"net/http"
	"strings"
	"time"

	"coachhub/models"
	"coachhub/repository"
	"coachhub/utils"

	"github.com/gin-gonic/gin"
)

// --- User uploads ---

func (h *APIHandler) ListUploadsHandler(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}
	uploads, err := h.uploads.GetAll()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load uploads.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": uploads})
}

// SubmitUploadHandler records a simulated upload: name/size/type metadata
// only, no file bytes.
func (h *APIHandler) SubmitUploadHandler(c *gin.Context) {
	user := h.requireCapability(c, repository.CapUploadFiles)
	if user == nil {
		return
	}
	var req struct {
		FileName string `json:"file_name" binding:"required"`
		FileSize string `json:"file_size"`
		FileType string `json:"file_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "File name is required.", err)
		return
	}

	upload := models.UserUpload{
		ID:          utils.GenerateID(),
		UserID:      user.ID,
		UserName:    user.Name,
		FileName:    req.FileName,
		FileSize:    req.FileSize,
		FileType:    req.FileType,
		Status:      models.UploadStatusPending,
		SubmittedAt: utils.FormatTime(time.Now()),
	}
	if err := h.uploads.Save(upload); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to record upload.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": upload})
}

// CompleteUploadHandler is the only path that moves an upload out of pending.
func (h *APIHandler) CompleteUploadHandler(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}
	upload, err := h.uploads.GetByID(c.Param("id"))
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load upload.", err)
		return
	}
	if upload == nil {
		utils.SendJSONError(c, http.StatusNotFound, "Upload not found.", nil)
		return
	}
	upload.Status = models.UploadStatusCompleted
	if err := h.uploads.Save(*upload); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to update upload.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": upload})
}

// --- Notes ---

func (h *APIHandler) ListNotesHandler(c *gin.Context) {
	user := h.currentUser(c)
	if user == nil {
		utils.SendJSONError(c, http.StatusUnauthorized, "Please log in first.", nil)
		return
	}
	notes, err := h.notes.GetAll()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load notes.", err)
		return
	}
	// Admins see every note; users see their own.
	if user.Role != models.RoleAdmin {
		own := notes[:0:0]
		for _, note := range notes {
			if note.UserID == user.ID {
				own = append(own, note)
			}
		}
		notes = own
	}
	c.JSON(http.StatusOK, gin.H{"data": notes})
}

func (h *APIHandler) SaveNoteHandler(c *gin.Context) {
	user := h.requireCapability(c, repository.CapCourseNotes)
	if user == nil {
		return
	}
	var req struct {
		LessonID string `json:"lesson_id"`
		Quote    string `json:"quote"`
		Content  string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Note content is required.", err)
		return
	}

	note := models.AdminNote{
		ID:        utils.GenerateID(),
		UserID:    user.ID,
		UserName:  user.Name,
		LessonID:  req.LessonID,
		Quote:     req.Quote,
		Content:   req.Content,
		CreatedAt: utils.FormatTime(time.Now()),
	}
	if err := h.notes.Save(note); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to save note.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": note})
}

func (h *APIHandler) DeleteNoteHandler(c *gin.Context) {
	user := h.currentUser(c)
	if user == nil {
		utils.SendJSONError(c, http.StatusUnauthorized, "Please log in first.", nil)
		return
	}
	note, err := h.notes.GetByID(c.Param("id"))
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load note.", err)
		return
	}
	if note != nil && note.UserID != user.ID && user.Role != models.RoleAdmin {
		utils.SendJSONError(c, http.StatusForbidden, "You can only delete your own notes.", nil)
		return
	}
	if err := h.notes.Delete(c.Param("id")); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to delete note.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// --- Users ---

func (h *APIHandler) ListUsersHandler(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}
	users, err := h.users.GetAll()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load users.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

// SaveUserHandler lets the admin edit any account, or a user edit their own
// settings. Role and plan changes require admin.
func (h *APIHandler) SaveUserHandler(c *gin.Context) {
	caller := h.currentUser(c)
	if caller == nil {
		utils.SendJSONError(c, http.StatusUnauthorized, "Please log in first.", nil)
		return
	}
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	if strings.TrimSpace(user.Name) == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "User name is required.", nil)
		return
	}
	if caller.Role != models.RoleAdmin {
		if user.ID != caller.ID {
			utils.SendJSONError(c, http.StatusForbidden, "You can only edit your own account.", nil)
			return
		}
		// Self-service edits cannot escalate role or plan.
		user.Role = caller.Role
		user.Plan = caller.Plan
	}
	if user.ID == "" {
		user.ID = utils.GenerateID()
		user.CreatedAt = utils.FormatTime(time.Now())
	}
	if err := h.users.Save(user); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to save user.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

func (h *APIHandler) DeleteUserHandler(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}
	if err := h.users.Delete(c.Param("id")); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to delete user.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// --- Diagnosis issue presets ---

func (h *APIHandler) SaveIssueHandler(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}
	var issue models.DiagnosisIssue
	if err := c.ShouldBindJSON(&issue); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	if strings.TrimSpace(issue.Title) == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "Issue title is required.", nil)
		return
	}
	if issue.ID == "" {
		issue.ID = utils.GenerateID()
	}
	if err := h.issues.Save(issue); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to save issue.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": issue})
}

func (h *APIHandler) DeleteIssueHandler(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}
	if err := h.issues.Delete(c.Param("id")); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to delete issue.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// --- Permissions ---

func (h *APIHandler) GetPermissionConfigHandler(c *gin.Context) {
	config, err := h.permissions.GetConfig()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load permission config.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": config})
}

func (h *APIHandler) SavePermissionConfigHandler(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}
	var config models.PermissionConfig
	if err := c.ShouldBindJSON(&config); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	if err := h.permissions.SaveConfig(config); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to save permission config.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": config})
}

func (h *APIHandler) ListPermissionDefinitionsHandler(c *gin.Context) {
	defs, err := h.permissions.GetDefinitions()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load permission definitions.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": defs})
}

func (h *APIHandler) SavePermissionDefinitionHandler(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}
	var def models.PermissionDefinition
	if err := c.ShouldBindJSON(&def); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	if strings.TrimSpace(def.Key) == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "Capability key is required.", nil)
		return
	}
	if def.ID == "" {
		def.ID = utils.GenerateID()
	}
	if err := h.permissions.SaveDefinition(def); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to save permission definition.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": def})
}

func (h *APIHandler) DeletePermissionDefinitionHandler(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}
	if err := h.permissions.DeleteDefinition(c.Param("id")); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to delete permission definition.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// CheckPermissionHandler lets the client ask whether the caller holds a
// capability. Denial is a normal false result, not an error.
func (h *APIHandler) CheckPermissionHandler(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "Capability key is required.", nil)
		return
	}
	allowed := h.permissionService.HasPermission(h.currentUser(c), key)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"key": key, "allowed": allowed}})
}

// --- Email log ---

func (h *APIHandler) ListEmailLogHandler(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}
	entries, err := h.site.GetEmailLog()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load email log.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}

func (h *APIHandler) AppendEmailLogHandler(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}
	var entry models.EmailLog
	if err := c.ShouldBindJSON(&entry); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	if entry.ID == "" {
		entry.ID = utils.GenerateID()
	}
	if entry.SentAt == "" {
		entry.SentAt = utils.FormatTime(time.Now())
	}
	if err := h.site.AppendEmailLog(entry); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to append email log.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entry})
}
