package api

import (
	"errors"
	"net/http"
	"strings"

	"coachhub/repository"
	"coachhub/services"
	"coachhub/utils"

	"github.com/gin-gonic/gin"
)

// --- Diagnosis chat ---

func (h *APIHandler) ListIssuesHandler(c *gin.Context) {
	issues, err := h.issues.GetAll()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load diagnosis issues.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": issues})
}

// StartDiagnosisHandler opens a diagnosis session. An issue_id routes the
// preset's canned user text in as the first utterance.
func (h *APIHandler) StartDiagnosisHandler(c *gin.Context) {
	var req struct {
		IssueID string `json:"issue_id"`
	}
	// The body is optional; a blank session needs no parameters.
	_ = c.ShouldBindJSON(&req)

	session, err := h.diagnosisService.StartSession(h.currentUser(c), req.IssueID)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to start diagnosis session.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": session})
}

// DiagnosisMessageHandler advances the session by one user turn.
func (h *APIHandler) DiagnosisMessageHandler(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Message text is required.", err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "Message text is required.", nil)
		return
	}

	session, err := h.diagnosisService.SendMessage(c.Param("id"), req.Text)
	if err != nil {
		h.diagnosisError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": session})
}

func (h *APIHandler) DiagnosisRestartHandler(c *gin.Context) {
	session, err := h.diagnosisService.Restart(c.Param("id"))
	if err != nil {
		h.diagnosisError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": session})
}

func (h *APIHandler) DiagnosisSummarizeHandler(c *gin.Context) {
	session, err := h.diagnosisService.Summarize(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.diagnosisError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": session})
}

// diagnosisError maps the service's sentinel errors onto HTTP statuses. A
// finished session or a pending turn is a client-state conflict, not a server
// fault.
func (h *APIHandler) diagnosisError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		utils.SendJSONError(c, http.StatusNotFound, "Diagnosis session not found.", nil)
	case errors.Is(err, services.ErrSessionFinished):
		utils.SendJSONError(c, http.StatusConflict, "This diagnosis is finished. Start a new session to continue.", nil)
	case errors.Is(err, services.ErrTurnPending):
		utils.SendJSONError(c, http.StatusConflict, "A reply is still being generated. Please wait.", nil)
	case errors.Is(err, services.ErrTooFewTurns):
		utils.SendJSONError(c, http.StatusBadRequest, "The conversation is too short to summarize.", nil)
	default:
		utils.SendJSONError(c, http.StatusInternalServerError, "Diagnosis request failed.", err)
	}
}

// --- Lesson AI assistant ---

func (h *APIHandler) AssistantAskHandler(c *gin.Context) {
	user := h.requireCapability(c, repository.CapAIAssistant)
	if user == nil {
		return
	}
	var req struct {
		Question string `json:"question" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Question is required.", err)
		return
	}

	reply, err := h.assistantService.Ask(c.Request.Context(), user.ID, c.Param("id"), req.Question)
	if errors.Is(err, services.ErrAssistantBusy) {
		utils.SendJSONError(c, http.StatusConflict, "A reply is still being generated. Please wait.", nil)
		return
	}
	if err != nil {
		utils.SendJSONError(c, http.StatusNotFound, "Lesson not found.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"reply": reply}})
}

// GenerateTranscriptHandler regenerates a lesson's transcript via the LLM and
// persists it on the lesson.
func (h *APIHandler) GenerateTranscriptHandler(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}
	lessonID := c.Param("id")
	lines, err := h.assistantService.GenerateTranscript(c.Request.Context(), lessonID)
	if err != nil {
		utils.SendJSONError(c, http.StatusNotFound, "Lesson not found.", err)
		return
	}

	lesson, err := h.lessons.GetByID(lessonID)
	if err != nil || lesson == nil {
		utils.SendJSONError(c, http.StatusNotFound, "Lesson not found.", err)
		return
	}
	lesson.Transcript = lines
	if err := h.lessons.Save(*lesson); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to save transcript.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": lines})
}

// ExtractHighlightsHandler regenerates a lesson's highlight markers.
func (h *APIHandler) ExtractHighlightsHandler(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}
	lessonID := c.Param("id")
	highlights, err := h.assistantService.ExtractHighlights(c.Request.Context(), lessonID)
	if err != nil {
		utils.SendJSONError(c, http.StatusNotFound, "Lesson not found.", err)
		return
	}

	lesson, err := h.lessons.GetByID(lessonID)
	if err != nil || lesson == nil {
		utils.SendJSONError(c, http.StatusNotFound, "Lesson not found.", err)
		return
	}
	lesson.Highlights = highlights
	if err := h.lessons.Save(*lesson); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to save highlights.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": highlights})
}

// --- Simulated exports ---

func (h *APIHandler) StartExportHandler(c *gin.Context) {
	if h.requireCapability(c, repository.CapDownloadResources) == nil {
		return
	}
	var req struct {
		FileName string `json:"file_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "File name is required.", err)
		return
	}
	task := h.exportService.Start(req.FileName)
	c.JSON(http.StatusOK, gin.H{"data": task})
}

func (h *APIHandler) ExportProgressHandler(c *gin.Context) {
	task := h.exportService.Get(c.Param("id"))
	if task == nil {
		utils.SendJSONError(c, http.StatusNotFound, "Export task not found.", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": task})
}

func (h *APIHandler) CancelExportHandler(c *gin.Context) {
	if !h.exportService.Cancel(c.Param("id")) {
		utils.SendJSONError(c, http.StatusConflict, "Export task is not running.", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cancelled"})
}
