package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ojtrack/ojtrack-api/internal/models"
	"github.com/ojtrack/ojtrack-api/internal/service"
	appErrors "github.com/ojtrack/ojtrack-api/pkg/errors"
	"github.com/ojtrack/ojtrack-api/pkg/response"
)

// LogbookHandler handles daily logbook endpoints.
type LogbookHandler struct {
	service *service.LogbookService
}

// NewLogbookHandler creates a new logbook handler.
func NewLogbookHandler(svc *service.LogbookService) *LogbookHandler {
	return &LogbookHandler{service: svc}
}

// Create records a new entry owned by the acting student.
func (h *LogbookHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var input service.CreateLogbookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid logbook payload"))
		return
	}

	entry, err := h.service.Create(c.Request.Context(), claims.UserID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, entry)
}

// ListMine returns the acting user's entries, newest first.
func (h *LogbookHandler) ListMine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	entries, err := h.service.ListMine(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, entries)
}

// ListByUser returns another user's entries for reviewer roles.
func (h *LogbookHandler) ListByUser(c *gin.Context) {
	entries, err := h.service.ListByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, entries)
}

// ListForReview returns submitted entries awaiting a decision.
func (h *LogbookHandler) ListForReview(c *gin.Context) {
	entries, err := h.service.ListForReview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, entries)
}

// Get returns one entry, with students restricted to their own.
func (h *LogbookHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	entry, err := h.service.Get(c.Request.Context(), claims, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, entry)
}

// Update shallow-merges fields onto a non-finalized entry.
func (h *LogbookHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var updates models.LogbookUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid update payload"))
		return
	}

	entry, err := h.service.Update(c.Request.Context(), claims, c.Param("id"), updates)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, entry)
}

// Review applies an approve or reject decision to a submitted entry.
func (h *LogbookHandler) Review(c *gin.Context) {
	var input service.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid review payload"))
		return
	}

	entry, err := h.service.Review(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, entry)
}

// BulkApprove approves every submitted entry in the given id list.
func (h *LogbookHandler) BulkApprove(c *gin.Context) {
	var input service.BulkApproveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid bulk approve payload"))
		return
	}

	entries, err := h.service.BulkApprove(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, entries)
}

// Delete removes an entry the actor owns.
func (h *LogbookHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.Delete(c.Request.Context(), claims, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
