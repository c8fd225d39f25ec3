package endpoints

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fieldtrack"
	"fieldtrack/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubmitRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	fieldtrack.Logger = zerolog.Nop()

	h := &locationHandler{
		locationService: service.NewLocationService(),
		logger:          zerolog.Nop(),
	}

	router := gin.New()
	router.POST("/api/v1/locations", h.submit)
	return router
}

func postLocation(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/locations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLocationSubmit_MalformedBodyRejected(t *testing.T) {
	router := newSubmitRouter()

	rec := postLocation(router, `{"employeeId": "not a number"`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLocationSubmit_NonPositiveEmployeeIDRejected(t *testing.T) {
	router := newSubmitRouter()

	for _, body := range []string{
		`{"employeeId": 0, "latitude": 1, "longitude": 1}`,
		`{"employeeId": -3, "latitude": 1, "longitude": 1}`,
	} {
		rec := postLocation(router, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}
