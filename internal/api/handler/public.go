package handler

import (
	"errors"
	"net/http"
	"strconv"

	"askmego/backend/internal/helpdesk"
	"askmego/backend/internal/identity"

	"github.com/gin-gonic/gin"
)

// Index lists the projects visible to anonymous visitors.
func (h *Handler) Index(c *gin.Context) {
	projects, err := h.Projects.ListVisible()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load projects"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"username": h.displayName(c),
		"notices":  h.notices(c),
	})
}

// ProjectDetail shows the caller's own request threads for one project.
// Locked and missing projects look identical.
func (h *Handler) ProjectDetail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		h.projectNotFound(c)
		return
	}

	project, threads, err := h.Requests.ListForOwner(id, CallerAddress(c))
	if err != nil {
		if errors.Is(err, helpdesk.ErrProjectNotFound) {
			h.projectNotFound(c)
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"project":  project,
		"requests": threads,
		"username": h.displayName(c),
		"notices":  h.notices(c),
	})
}

type createRequestForm struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description"`
}

// CreateRequest files a new request against a visible project.
func (h *Handler) CreateRequest(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		h.projectNotFound(c)
		return
	}

	var form createRequestForm
	if err := c.ShouldBind(&form); err != nil {
		h.flash(c, "notice.missing_fields")
		seeOther(c, "/project/"+c.Param("id"))
		return
	}

	_, err := h.Requests.CreateRequest(id, CallerAddress(c), form.Title, form.Description)
	if err != nil {
		if errors.Is(err, helpdesk.ErrProjectNotFound) {
			h.projectNotFound(c)
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create request"})
		return
	}

	h.flash(c, "notice.request_submitted")
	seeOther(c, "/project/"+c.Param("id"))
}

type messageForm struct {
	Message string `form:"message" binding:"required"`
}

// UserMessage appends a visitor reply to their own thread.
func (h *Handler) UserMessage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		h.requestNotFound(c)
		return
	}

	var form messageForm
	if err := c.ShouldBind(&form); err != nil {
		h.flash(c, "notice.missing_fields")
		seeOther(c, "/")
		return
	}

	req, _, err := h.Requests.AddUserMessage(id, CallerAddress(c), form.Message)
	if err != nil {
		if errors.Is(err, helpdesk.ErrRequestNotFound) {
			h.requestNotFound(c)
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	h.flash(c, "notice.message_sent")
	seeOther(c, "/project/"+strconv.FormatUint(uint64(req.ProjectID), 10))
}

type preferencesForm struct {
	Nickname *string `form:"nickname"`
	Language *string `form:"language"`
	Theme    *string `form:"theme"`
}

// UpdatePreferences applies a partial preference update for the caller, or
// for the reserved admin settings row when the session is an admin one.
func (h *Handler) UpdatePreferences(c *gin.Context) {
	var form preferencesForm
	if err := c.ShouldBind(&form); err != nil {
		h.flash(c, "notice.missing_fields")
		seeOther(c, "/")
		return
	}

	err := h.Identity.UpdatePreferences(h.preferenceKey(c), identity.Fields{
		Nickname: form.Nickname,
		Language: form.Language,
		Theme:    form.Theme,
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to save preferences"})
		return
	}

	h.flash(c, "notice.preferences_saved")
	seeOther(c, "/")
}

func (h *Handler) displayName(c *gin.Context) string {
	name, err := h.Identity.DisplayName(CallerAddress(c))
	if err != nil {
		return ""
	}
	return name
}

func (h *Handler) projectNotFound(c *gin.Context) {
	h.flash(c, "notice.project_not_found")
	seeOther(c, "/")
}

func (h *Handler) requestNotFound(c *gin.Context) {
	h.flash(c, "notice.request_not_found")
	seeOther(c, "/")
}
