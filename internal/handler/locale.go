package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/recoverycompanion/internal/locale"
)

const localeContextKey = "__request_language"

// LocaleMiddleware resolves request language and sets headers for downstream caching.
func (a *API) LocaleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		pref := locale.PreferenceForLanguage(a.requestLanguage(c, loadSession(c)))
		if pref.HTMLLang != "" {
			c.Header("Content-Language", pref.HTMLLang)
		}
		appendVaryHeader(c, "Accept-Language", "Cookie")
		c.Next()
	}
}

// requestLanguage 依次使用 ?lang、会话语言、Accept-Language 与默认语言
func (a *API) requestLanguage(c *gin.Context, sess sessionContext) string {
	if cached, exists := c.Get(localeContextKey); exists {
		if language, ok := cached.(string); ok {
			return language
		}
	}

	language := locale.NormalizeLanguage(c.Query("lang"))
	if language == "" {
		language = locale.NormalizeLanguage(sess.Language)
	}
	if language == "" {
		language = locale.LanguageFromAcceptLanguage(c.GetHeader("Accept-Language"))
	}
	if language == "" {
		language = a.defaultLanguage
	}
	c.Set(localeContextKey, language)
	return language
}

func appendVaryHeader(c *gin.Context, headers ...string) {
	existing := c.Writer.Header().Get("Vary")
	seen := make(map[string]struct{})
	order := make([]string, 0, len(headers))
	for _, token := range append(strings.Split(existing, ","), headers...) {
		trimmed := strings.TrimSpace(token)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		order = append(order, trimmed)
	}
	if len(order) > 0 {
		c.Header("Vary", strings.Join(order, ", "))
	}
}
