package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ojtrack/ojtrack-api/internal/service"
	appErrors "github.com/ojtrack/ojtrack-api/pkg/errors"
	"github.com/ojtrack/ojtrack-api/pkg/response"
)

// ContactHandler handles contact-form endpoints. Submit is the only public
// route; the rest are admin-only.
type ContactHandler struct {
	service *service.ContactService
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(svc *service.ContactService) *ContactHandler {
	return &ContactHandler{service: svc}
}

// Submit records a contact-form submission from an anonymous visitor.
func (h *ContactHandler) Submit(c *gin.Context) {
	var input service.SubmitContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid contact payload"))
		return
	}

	submission, err := h.service.Submit(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, submission)
}

// List returns every submission, newest first.
func (h *ContactHandler) List(c *gin.Context) {
	submissions, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, submissions)
}

// MarkRead flags a submission as read.
func (h *ContactHandler) MarkRead(c *gin.Context) {
	submission, err := h.service.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, submission)
}

// Respond records a reply to a submission.
func (h *ContactHandler) Respond(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var input service.RespondContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid response payload"))
		return
	}

	submission, err := h.service.Respond(c.Request.Context(), claims.UserID, c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, submission)
}

// Close ends handling of a submission.
func (h *ContactHandler) Close(c *gin.Context) {
	submission, err := h.service.Close(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, submission)
}

// Delete removes a submission permanently.
func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
