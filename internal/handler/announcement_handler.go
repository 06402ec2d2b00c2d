package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ojtrack/ojtrack-api/internal/models"
	"github.com/ojtrack/ojtrack-api/internal/service"
	appErrors "github.com/ojtrack/ojtrack-api/pkg/errors"
	"github.com/ojtrack/ojtrack-api/pkg/response"
)

// AnnouncementHandler handles announcement endpoints.
type AnnouncementHandler struct {
	service *service.AnnouncementService
}

// NewAnnouncementHandler creates a new announcement handler.
func NewAnnouncementHandler(svc *service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{service: svc}
}

// Create publishes an announcement authored by the acting user.
func (h *AnnouncementHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var input service.CreateAnnouncementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid announcement payload"))
		return
	}

	announcement, err := h.service.Create(c.Request.Context(), claims.UserID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, announcement)
}

// List returns active announcements visible to the acting user's role. Admins
// may pass a role query to preview another audience.
func (h *AnnouncementHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	targetRole := string(claims.Role)
	if claims.Role == models.RoleAdmin {
		if role := c.Query("role"); role != "" {
			targetRole = role
		} else {
			targetRole = ""
		}
	}

	announcements, err := h.service.List(c.Request.Context(), targetRole)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, announcements)
}

// Get returns one announcement.
func (h *AnnouncementHandler) Get(c *gin.Context) {
	announcement, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, announcement)
}

// Update shallow-merges fields onto an announcement.
func (h *AnnouncementHandler) Update(c *gin.Context) {
	var updates models.AnnouncementUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid update payload"))
		return
	}

	announcement, err := h.service.Update(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, announcement)
}

// Deactivate retires an announcement without deleting it.
func (h *AnnouncementHandler) Deactivate(c *gin.Context) {
	announcement, err := h.service.Deactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, announcement)
}

// Delete removes an announcement permanently.
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
