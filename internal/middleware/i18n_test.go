// internal/middleware/i18n_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func langForHeader(t *testing.T, header string) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var got string
	r := gin.New()
	r.Use(I18nMiddleware())
	r.GET("/", func(c *gin.Context) {
		got = c.GetString("lang")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	if header != "" {
		req.Header.Set("Accept-Language", header)
	}
	r.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestI18nMiddleware(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", "en"},
		{"en", "en"},
		{"en-US,en;q=0.9", "en"},
		{"zh-TW,zh;q=0.9,en;q=0.8", "zh_TW"},
		{"zh-Hant", "zh_TW"},
		{"fr-FR,fr;q=0.9", "en"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, langForHeader(t, tt.header), "header %q", tt.header)
	}
}
