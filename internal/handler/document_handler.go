package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ojtrack/ojtrack-api/internal/service"
	appErrors "github.com/ojtrack/ojtrack-api/pkg/errors"
	"github.com/ojtrack/ojtrack-api/pkg/response"
)

// DocumentHandler handles requirement-document endpoints.
type DocumentHandler struct {
	service *service.DocumentService
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(svc *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: svc}
}

// Upload registers an uploaded document owned by the acting user.
func (h *DocumentHandler) Upload(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var input service.UploadDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid document payload"))
		return
	}

	doc, err := h.service.Upload(c.Request.Context(), claims.UserID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, doc)
}

// ListMine returns the acting user's documents.
func (h *DocumentHandler) ListMine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	docs, err := h.service.ListMine(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, docs)
}

// ListByUser returns another user's documents for reviewer roles.
func (h *DocumentHandler) ListByUser(c *gin.Context) {
	docs, err := h.service.ListByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, docs)
}

// ListForReview returns pending documents awaiting review.
func (h *DocumentHandler) ListForReview(c *gin.Context) {
	docs, err := h.service.ListForReview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, docs)
}

// Get returns one document, with students restricted to their own.
func (h *DocumentHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	doc, err := h.service.Get(c.Request.Context(), claims, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, doc)
}

// Review applies an approve or reject decision to a pending document.
func (h *DocumentHandler) Review(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var input service.DocumentReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid review payload"))
		return
	}

	doc, err := h.service.Review(c.Request.Context(), claims.UserID, c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, doc)
}

// Delete removes a document the actor owns.
func (h *DocumentHandler) Delete(c *gin.Context) {
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
