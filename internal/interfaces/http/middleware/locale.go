package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/ledgerline/backend/internal/infrastructure/i18n"
)

// LocalizerKey holds the request *i18n.Localizer in gin.Context
const LocalizerKey = "localizer"

// Locale picks the request locale: the caller's own locale from the token,
// then Accept-Language, then the bundle default.
func Locale(bundle *i18n.Bundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		accept := c.GetHeader("Accept-Language")
		if userLocale := c.GetString(JWTLocaleKey); userLocale != "" {
			accept = userLocale
		}
		localizer := bundle.LocalizerFor(accept)
		c.Set(LocalizerKey, localizer)
		c.Header("Content-Language", localizer.Locale())
		c.Next()
	}
}

// GetLocalizer returns the request localizer, or nil when Locale did not run
func GetLocalizer(c *gin.Context) *i18n.Localizer {
	if v, ok := c.Get(LocalizerKey); ok {
		if l, ok := v.(*i18n.Localizer); ok {
			return l
		}
	}
	return nil
}
