package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ojtrack/ojtrack-api/internal/models"
	"github.com/ojtrack/ojtrack-api/internal/service"
	appErrors "github.com/ojtrack/ojtrack-api/pkg/errors"
	"github.com/ojtrack/ojtrack-api/pkg/response"
)

// EvaluationHandler handles performance-evaluation endpoints.
type EvaluationHandler struct {
	service *service.EvaluationService
}

// NewEvaluationHandler creates a new evaluation handler.
func NewEvaluationHandler(svc *service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{service: svc}
}

// Create records an evaluation authored by the acting evaluator.
func (h *EvaluationHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var input service.CreateEvaluationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid evaluation payload"))
		return
	}

	evaluation, err := h.service.Create(c.Request.Context(), claims, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, evaluation)
}

// Get returns one evaluation, with students restricted to their own.
func (h *EvaluationHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	evaluation, err := h.service.Get(c.Request.Context(), claims, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, evaluation)
}

// ListMine returns the acting student's evaluations.
func (h *EvaluationHandler) ListMine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	evaluations, err := h.service.ListByStudent(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, evaluations)
}

// ListByStudent returns a student's evaluations for reviewer roles.
func (h *EvaluationHandler) ListByStudent(c *gin.Context) {
	evaluations, err := h.service.ListByStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, evaluations)
}

// ListAuthored returns the evaluations written by the acting evaluator.
func (h *EvaluationHandler) ListAuthored(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	evaluations, err := h.service.ListByEvaluator(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, evaluations)
}

// Update shallow-merges fields onto an evaluation the actor authored.
func (h *EvaluationHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var updates models.EvaluationUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid update payload"))
		return
	}

	evaluation, err := h.service.Update(c.Request.Context(), claims, c.Param("id"), updates)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, evaluation)
}

// Delete removes an evaluation the actor authored.
func (h *EvaluationHandler) Delete(c *gin.Context) {
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
