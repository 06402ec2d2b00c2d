package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojtrack/ojtrack-api/internal/middleware"
	"github.com/ojtrack/ojtrack-api/internal/models"
	"github.com/ojtrack/ojtrack-api/internal/repository"
	"github.com/ojtrack/ojtrack-api/internal/service"
	"github.com/ojtrack/ojtrack-api/pkg/store"
)

func newContactHandler(t *testing.T) (*ContactHandler, *repository.ContactRepository) {
	t.Helper()
	blob, err := store.NewFileBlob(t.TempDir())
	require.NoError(t, err)
	repo := repository.NewContactRepository(store.New(blob, nil))
	return NewContactHandler(service.NewContactService(repo, nil, nil)), repo
}

func TestContactSubmit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, repo := newContactHandler(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	body := `{"name":"Visitor","email":"v@x.com","subject":"Question","message":"How do I enroll?"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Submit(c)

	assert.Equal(t, http.StatusCreated, rec.Code)

	submissions, err := repo.List(c.Request.Context())
	require.NoError(t, err)
	require.Len(t, submissions, 1)
	assert.Equal(t, models.ContactStatusNew, submissions[0].Status)
}

func TestContactSubmitInvalidPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := newContactHandler(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{"name":"No Email"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Submit(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
}

func TestContactRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, repo := newContactHandler(t)

	created, err := repo.Create(httptest.NewRequest(http.MethodGet, "/", nil).Context(), &models.ContactSubmission{
		Name: "Visitor", Email: "v@x.com", Subject: "Q", Message: "M",
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/contact/"+created.ID+"/respond", strings.NewReader(`{"response":"Enrollment opens in June."}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: created.ID}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})

	handler.Respond(c)

	assert.Equal(t, http.StatusOK, rec.Code)

	got, err := repo.GetByID(c.Request.Context(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusResponded, got.Status)
	assert.Equal(t, "Enrollment opens in June.", got.Response)
	assert.Equal(t, "admin-1", got.RespondedBy)
}
