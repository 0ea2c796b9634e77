package handler

import (
	"errors"
	"net/http"

	"askmego/backend/internal/helpdesk"

	"github.com/gin-gonic/gin"
)

// Dashboard is the full admin view: every project with every request and
// its complete thread, no lock or block filtering.
func (h *Handler) Dashboard(c *gin.Context) {
	grouped, err := h.Requests.ListForAdmin()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"projects": grouped,
		"notices":  h.notices(c),
	})
}

type projectForm struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"description"`
}

func (h *Handler) CreateProject(c *gin.Context) {
	var form projectForm
	if err := c.ShouldBind(&form); err != nil {
		h.flash(c, "notice.missing_fields")
		seeOther(c, "/admin")
		return
	}

	if _, err := h.Projects.Create(form.Name, form.Description); err != nil {
		if errors.Is(err, helpdesk.ErrDuplicateName) {
			h.flash(c, "notice.project_name_taken")
			seeOther(c, "/admin")
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	h.flash(c, "notice.project_created")
	seeOther(c, "/admin")
}

func (h *Handler) ToggleProjectLock(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		h.adminProjectNotFound(c)
		return
	}

	if _, err := h.Projects.ToggleLock(id); err != nil {
		if errors.Is(err, helpdesk.ErrProjectNotFound) {
			h.adminProjectNotFound(c)
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle lock"})
		return
	}
	seeOther(c, "/admin")
}

func (h *Handler) EditProject(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		h.adminProjectNotFound(c)
		return
	}

	var form projectForm
	if err := c.ShouldBind(&form); err != nil {
		h.flash(c, "notice.missing_fields")
		seeOther(c, "/admin")
		return
	}

	if err := h.Projects.Edit(id, form.Name, form.Description); err != nil {
		switch {
		case errors.Is(err, helpdesk.ErrDuplicateName):
			h.flash(c, "notice.project_name_taken")
		case errors.Is(err, helpdesk.ErrProjectNotFound):
			h.flash(c, "notice.project_not_found")
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to edit project"})
			return
		}
		seeOther(c, "/admin")
		return
	}

	h.flash(c, "notice.project_updated")
	seeOther(c, "/admin")
}

func (h *Handler) DeleteProject(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		h.adminProjectNotFound(c)
		return
	}

	if err := h.Projects.Delete(id); err != nil {
		if errors.Is(err, helpdesk.ErrProjectNotFound) {
			h.adminProjectNotFound(c)
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	h.flash(c, "notice.project_deleted")
	seeOther(c, "/admin")
}

type moderationForm struct {
	Status    string `form:"status" binding:"required"`
	Tags      string `form:"tags"`
	IsBlocked string `form:"is_blocked"`
}

// UpdateRequest overwrites a request's moderation fields. Any checkbox
// value counts as blocked, matching HTML form semantics.
func (h *Handler) UpdateRequest(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		h.adminRequestNotFound(c)
		return
	}

	var form moderationForm
	if err := c.ShouldBind(&form); err != nil {
		h.flash(c, "notice.missing_fields")
		seeOther(c, "/admin")
		return
	}

	err := h.Requests.UpdateRequest(id, form.Status, form.Tags, form.IsBlocked != "")
	if err != nil {
		if errors.Is(err, helpdesk.ErrRequestNotFound) {
			h.adminRequestNotFound(c)
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to update request"})
		return
	}

	h.flash(c, "notice.request_updated")
	seeOther(c, "/admin")
}

func (h *Handler) DeleteRequest(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		h.adminRequestNotFound(c)
		return
	}

	if err := h.Requests.DeleteRequest(id); err != nil {
		if errors.Is(err, helpdesk.ErrRequestNotFound) {
			h.adminRequestNotFound(c)
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete request"})
		return
	}

	h.flash(c, "notice.request_deleted")
	seeOther(c, "/admin")
}

// AdminMessage appends an admin reply to any request's thread.
func (h *Handler) AdminMessage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		h.adminRequestNotFound(c)
		return
	}

	var form messageForm
	if err := c.ShouldBind(&form); err != nil {
		h.flash(c, "notice.missing_fields")
		seeOther(c, "/admin")
		return
	}

	if _, err := h.Requests.AddAdminMessage(id, form.Message); err != nil {
		if errors.Is(err, helpdesk.ErrRequestNotFound) {
			h.adminRequestNotFound(c)
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	h.flash(c, "notice.message_sent")
	seeOther(c, "/admin")
}

func (h *Handler) adminProjectNotFound(c *gin.Context) {
	h.flash(c, "notice.project_not_found")
	seeOther(c, "/admin")
}

func (h *Handler) adminRequestNotFound(c *gin.Context) {
	h.flash(c, "notice.request_not_found")
	seeOther(c, "/admin")
}
