// internal/handlers/helpers_test.go
package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParseUUIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	valid := uuid.New()
	var got uuid.UUID
	var ok bool

	r := gin.New()
	r.GET("/things/:id", func(c *gin.Context) {
		got, ok = parseUUIDParam(c, "id")
		if ok {
			c.Status(http.StatusOK)
		}
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/things/"+valid.String(), nil))
	assert.True(t, ok)
	assert.Equal(t, valid, got)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/things/not-a-uuid", nil))
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueryHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?limit=25&active=true&bad=xyz", nil)

	assert.Equal(t, 25, queryInt(c, "limit", 50))
	assert.Equal(t, 50, queryInt(c, "missing", 50))
	assert.Equal(t, 50, queryInt(c, "bad", 50))

	assert.True(t, queryBool(c, "active", false))
	assert.False(t, queryBool(c, "missing", false))
	assert.False(t, queryBool(c, "bad", false))
}

func TestCurrentUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	id := uuid.New()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Set("user_id", id.String())

	got, ok := currentUserID(c)
	assert.True(t, ok)
	assert.Equal(t, id, got)

	w := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w)
	c2.Request = httptest.NewRequest("GET", "/", nil)

	_, ok = currentUserID(c2)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
