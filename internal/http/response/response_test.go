package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithNoticeCarriesLevelAndRedirect(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-1")

	WithNotice(c, Notice{Code: CodeBadGateway, Level: "error", Msg: "Something went wrong with Stripe", Redirect: "/"}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, CodeBadGateway, body["status_code"])
	assert.Equal(t, "error", body["level"])
	assert.Equal(t, "/", body["redirect"])
	assert.Equal(t, "req-1", body["data"].(map[string]interface{})["request_id"])
}

func TestSuccessOmitsNoticeFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, gin.H{"ok": true})

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	_, hasLevel := body["level"]
	_, hasRedirect := body["redirect"]
	assert.False(t, hasLevel)
	assert.False(t, hasRedirect)
	assert.EqualValues(t, CodeOK, body["status_code"])
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 21)
	assert.Equal(t, int64(3), p.TotalPage)
	assert.Equal(t, int64(0), NewPagination(1, 0, 5).TotalPage)
}
