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

// --- Blog posts ---

func (h *APIHandler) ListPostsHandler(c *gin.Context) {
	posts, err := h.posts.GetAll()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load posts.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": posts})
}

func (h *APIHandler) GetPostHandler(c *gin.Context) {
	post, err := h.posts.GetByID(c.Param("id"))
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load post.", err)
		return
	}
	if post == nil {
		utils.SendJSONError(c, http.StatusNotFound, "Post not found.", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": post})
}

// SavePostHandler upserts a post. Required-field validation happens here, not
// in the repository: a post without a title is rejected before any write.
func (h *APIHandler) SavePostHandler(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}
	var post models.BlogPost
	if err := c.ShouldBindJSON(&post); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	if strings.TrimSpace(post.Title) == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "Post title is required.", nil)
		return
	}
	if post.ID == "" {
		post.ID = utils.GenerateID()
	}
	if post.Date == "" {
		post.Date = time.Now().Format("2006-01-02")
	}
	if err := h.posts.Save(post); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to save post.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": post})
}

func (h *APIHandler) DeletePostHandler(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}
	if err := h.posts.Delete(c.Param("id")); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to delete post.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// --- Dashboard projects ---

func (h *APIHandler) ListProjectsHandler(c *gin.Context) {
	if h.requireCapability(c, repository.CapViewDashboard) == nil {
		return
	}
	projects, err := h.projects.GetAll()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load projects.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": projects})
}

func (h *APIHandler) GetProjectHandler(c *gin.Context) {
	if h.requireCapability(c, repository.CapViewDashboard) == nil {
		return
	}
	project, err := h.projects.GetByID(c.Param("id"))
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load project.", err)
		return
	}
	if project == nil {
		utils.SendJSONError(c, http.StatusNotFound, "Project not found.", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": project})
}

func (h *APIHandler) SaveProjectHandler(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}
	var project models.DashboardProject
	if err := c.ShouldBindJSON(&project); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	if strings.TrimSpace(project.Name) == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "Project name is required.", nil)
		return
	}
	if project.ID == "" {
		project.ID = utils.GenerateID()
	}
	if project.UpdatedAt == "" {
		project.UpdatedAt = time.Now().Format("2006-01-02")
	}
	if err := h.projects.Save(project); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to save project.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": project})
}

func (h *APIHandler) DeleteProjectHandler(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}
	if err := h.projects.Delete(c.Param("id")); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to delete project.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// --- Lessons ---

func (h *APIHandler) ListLessonsHandler(c *gin.Context) {
	lessons, err := h.lessons.GetAll()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load lessons.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": lessons})
}

func (h *APIHandler) GetLessonHandler(c *gin.Context) {
	lesson, err := h.lessons.GetByID(c.Param("id"))
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load lesson.", err)
		return
	}
	if lesson == nil {
		utils.SendJSONError(c, http.StatusNotFound, "Lesson not found.", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": lesson})
}

func (h *APIHandler) SaveLessonHandler(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}
	var lesson models.Lesson
	if err := c.ShouldBindJSON(&lesson); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	if strings.TrimSpace(lesson.Title) == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "Lesson title is required.", nil)
		return
	}
	if lesson.ID == "" {
		lesson.ID = utils.GenerateID()
	}
	if err := h.lessons.Save(lesson); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to save lesson.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": lesson})
}

func (h *APIHandler) DeleteLessonHandler(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}
	if err := h.lessons.Delete(c.Param("id")); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to delete lesson.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// --- Knowledge categories ---

func (h *APIHandler) ListKnowledgeHandler(c *gin.Context) {
	categories, err := h.knowledge.GetAll()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load knowledge categories.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

func (h *APIHandler) SaveKnowledgeHandler(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}
	var category models.KnowledgeCategory
	if err := c.ShouldBindJSON(&category); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	if strings.TrimSpace(category.Name) == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "Category name is required.", nil)
		return
	}
	if category.ID == "" {
		category.ID = utils.GenerateID()
	}
	if err := h.knowledge.Save(category); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to save category.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": category})
}

func (h *APIHandler) DeleteKnowledgeHandler(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}
	if err := h.knowledge.Delete(c.Param("id")); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to delete category.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// --- Site singletons ---

func (h *APIHandler) GetIntroVideoHandler(c *gin.Context) {
	video, err := h.site.GetIntroVideo()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load intro video.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": video})
}

func (h *APIHandler) SaveIntroVideoHandler(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}
	var video models.IntroVideo
	if err := c.ShouldBindJSON(&video); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	if err := h.site.SaveIntroVideo(video); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to save intro video.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": video})
}

func (h *APIHandler) GetAboutUsHandler(c *gin.Context) {
	about, err := h.site.GetAboutUs()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load about page.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": about})
}

func (h *APIHandler) SaveAboutUsHandler(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}
	var about models.AboutUsInfo
	if err := c.ShouldBindJSON(&about); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	if err := h.site.SaveAboutUs(about); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to save about page.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": about})
}
