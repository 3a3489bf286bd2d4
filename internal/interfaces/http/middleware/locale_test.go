package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/backend/internal/infrastructure/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocale(t *testing.T) {
	bundle, err := i18n.NewBundle("en-GB")
	require.NoError(t, err)

	newRouter := func(userLocale string) *gin.Engine {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			if userLocale != "" {
				c.Set(JWTLocaleKey, userLocale)
			}
			c.Next()
		})
		router.Use(Locale(bundle))
		router.GET("/test", func(c *gin.Context) {
			l := GetLocalizer(c)
			require.NotNil(t, l)
			c.String(http.StatusOK, l.Locale())
		})
		return router
	}

	tests := []struct {
		name       string
		userLocale string
		accept     string
		want       string
	}{
		{"default", "", "", "en-GB"},
		{"accept language", "", "de-DE,de;q=0.9", "de"},
		{"user locale wins", "en-GB", "de-DE", "en-GB"},
		{"unsupported falls back", "", "ja-JP", "en-GB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			w := httptest.NewRecorder()
			newRouter(tt.userLocale).ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Body.String())
			assert.Equal(t, tt.want, w.Header().Get("Content-Language"))
		})
	}
}

func TestGetLocalizerMissing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetLocalizer(c))
}
