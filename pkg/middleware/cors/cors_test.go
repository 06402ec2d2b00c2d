package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func run(t *testing.T, origins []string, method, origin string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, "/", nil)
	if origin != "" {
		c.Request.Header.Set("Origin", origin)
	}
	New(origins)(c)
	return rec
}

func TestAllowsPinnedOrigin(t *testing.T) {
	rec := run(t, []string{"https://ojt.msu.edu.ph"}, http.MethodGet, "https://ojt.msu.edu.ph")

	assert.Equal(t, "https://ojt.msu.edu.ph", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRejectsUnknownOrigin(t *testing.T) {
	rec := run(t, []string{"https://ojt.msu.edu.ph"}, http.MethodGet, "https://evil.example")

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestEmptyListAllowsAnyOrigin(t *testing.T) {
	rec := run(t, nil, http.MethodGet, "http://localhost:5173")

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestPreflightShortCircuits(t *testing.T) {
	rec := run(t, nil, http.MethodOptions, "http://localhost:5173")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, allowedMethods, rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, allowedHeaders, rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestTrailingSlashNormalized(t *testing.T) {
	rec := run(t, []string{"https://ojt.msu.edu.ph/"}, http.MethodGet, "https://ojt.msu.edu.ph")

	assert.Equal(t, "https://ojt.msu.edu.ph", rec.Header().Get("Access-Control-Allow-Origin"))
}
