package middleware

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"carsu-site-backend/internal/service"
	"carsu-site-backend/pkg/lang"
	"carsu-site-backend/pkg/logger"
)

// Context keys set by the locale middleware.
const (
	ContextLocale           = "locale"
	ContextSupportedLocales = "supported_locales"
	ContextDefaultLocale    = "default_locale"
)

// LocaleMiddleware negotiates the request locale. Precedence: the :locale
// path parameter, then the "locale" query parameter, then Accept-Language
// with q-values, then the site default.
func LocaleMiddleware(locales *service.LocaleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		defaultLocale, supported, err := locales.Resolve()
		if err != nil {
			logger.Error(err, "Failed to resolve locale configuration", nil)
		}
		if len(supported) == 0 {
			supported = []string{defaultLocale}
		}

		resolved := negotiate(
			[]string{c.Param("locale"), c.Query("locale")},
			c.GetHeader("Accept-Language"),
			defaultLocale,
			supported,
		)

		c.Set(ContextLocale, resolved)
		c.Set(ContextSupportedLocales, supported)
		c.Set(ContextDefaultLocale, defaultLocale)
		c.Writer.Header().Set("Content-Language", resolved)

		c.Next()
	}
}

// RequestLocale returns the negotiated locale for a request, falling back to
// the package default when the middleware did not run.
func RequestLocale(c *gin.Context) string {
	if value, ok := c.Get(ContextLocale); ok {
		if locale, ok := value.(string); ok && locale != "" {
			return locale
		}
	}
	return lang.Default
}

// SupportedLocales returns the supported locale list for a request.
func SupportedLocales(c *gin.Context) []string {
	if value, ok := c.Get(ContextSupportedLocales); ok {
		if list, ok := value.([]string); ok && len(list) > 0 {
			return list
		}
	}
	return []string{lang.Default}
}

func negotiate(explicit []string, acceptHeader, defaultLocale string, supported []string) string {
	for _, candidate := range explicit {
		if normalized, err := lang.Normalize(candidate); err == nil {
			if lang.Contains(supported, normalized) {
				return normalized
			}
			if base := lang.MatchBase(normalized, supported); base != "" {
				return base
			}
		}
	}

	for _, pref := range parseAcceptLanguage(acceptHeader) {
		if lang.Contains(supported, pref) {
			return pref
		}
		if base := lang.MatchBase(pref, supported); base != "" {
			return base
		}
	}

	if defaultLocale == "" && len(supported) > 0 {
		defaultLocale = supported[0]
	}
	if defaultLocale == "" {
		defaultLocale = lang.Default
	}
	return defaultLocale
}

func parseAcceptLanguage(header string) []string {
	if strings.TrimSpace(header) == "" {
		return nil
	}

	type entry struct {
		code   string
		weight float64
		index  int
	}

	parts := strings.Split(header, ",")
	entries := make([]entry, 0, len(parts))

	for idx, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}

		weight := 1.0
		code := segment

		if semi := strings.Index(segment, ";"); semi != -1 {
			code = strings.TrimSpace(segment[:semi])
			params := strings.Split(segment[semi+1:], ";")
			for _, param := range params {
				kv := strings.SplitN(strings.TrimSpace(param), "=", 2)
				if len(kv) != 2 {
					continue
				}
				if kv[0] == "q" {
					if parsed, err := strconv.ParseFloat(kv[1], 64); err == nil {
						weight = parsed
					}
				}
			}
		}

		normalized, err := lang.Normalize(code)
		if err != nil {
			continue
		}

		entries = append(entries, entry{code: normalized, weight: weight, index: idx})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].weight == entries[j].weight {
			return entries[i].index < entries[j].index
		}
		return entries[i].weight > entries[j].weight
	})

	result := make([]string, 0, len(entries))
	for _, item := range entries {
		result = append(result, item.code)
	}
	return result
}
