package lang

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Default is the fallback locale code used when nothing else is configured.
// Localized content must carry at least this locale for fallback to work.
const Default = "en"

var errEmptyCode = errors.New("locale code cannot be empty")

// Normalize validates a locale code and returns its canonical form (lowercase
// language, uppercase region). Accepted shapes are `ll` and `ll-RR`.
func Normalize(code string) (string, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "", errEmptyCode
	}

	parts := strings.Split(trimmed, "-")
	if len(parts) > 2 {
		return "", fmt.Errorf("invalid locale code %q", code)
	}

	language := strings.ToLower(parts[0])
	if len(language) < 2 || len(language) > 8 || !alphabetic(language) {
		return "", fmt.Errorf("invalid locale code %q", code)
	}

	if len(parts) == 1 {
		return language, nil
	}

	region := parts[1]
	if len(region) < 2 || len(region) > 3 || !alphabetic(region) {
		return "", fmt.Errorf("invalid locale region in %q", code)
	}

	return language + "-" + strings.ToUpper(region), nil
}

func alphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// NormalizeList normalises a slice of locale codes, dropping empty entries and
// duplicates while preserving first-occurrence order. Any invalid code fails
// the whole list.
func NormalizeList(codes []string) ([]string, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(codes))
	result := make([]string, 0, len(codes))

	for _, raw := range codes {
		if strings.TrimSpace(raw) == "" {
			continue
		}

		normalized, err := Normalize(raw)
		if err != nil {
			return nil, err
		}

		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}

	return result, nil
}

// EnsureDefault normalises the default locale and the supported list,
// guaranteeing the default is the first entry of the result.
func EnsureDefault(defaultCode string, supported []string) (string, []string, error) {
	normalizedDefault, err := Normalize(defaultCode)
	if err != nil {
		return "", nil, fmt.Errorf("invalid default locale %q: %w", defaultCode, err)
	}

	normalizedSupported, err := NormalizeList(supported)
	if err != nil {
		return "", nil, err
	}

	result := make([]string, 0, len(normalizedSupported)+1)
	result = append(result, normalizedDefault)
	seen := map[string]struct{}{normalizedDefault: {}}

	for _, code := range normalizedSupported {
		if _, exists := seen[code]; exists {
			continue
		}
		seen[code] = struct{}{}
		result = append(result, code)
	}

	return normalizedDefault, result, nil
}

// Contains reports whether the (already normalised) list carries the code.
func Contains(supported []string, code string) bool {
	for _, candidate := range supported {
		if candidate == code {
			return true
		}
	}
	return false
}

// MatchBase returns the first supported locale sharing the base language of
// the provided code, e.g. `es-MX` matches a supported `es`. Empty when no
// base match exists.
func MatchBase(code string, supported []string) string {
	base := code
	if idx := strings.Index(code, "-"); idx > 0 {
		base = code[:idx]
	}

	for _, candidate := range supported {
		candidateBase := candidate
		if idx := strings.Index(candidate, "-"); idx > 0 {
			candidateBase = candidate[:idx]
		}
		if candidateBase == base {
			return candidate
		}
	}
	return ""
}

// EncodeList serialises locale codes into a JSON array for settings storage.
func EncodeList(codes []string) (string, error) {
	data, err := json.Marshal(codes)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeList parses a stored value as a JSON array of locale codes, falling
// back to a comma separated list. The result is not normalised.
func DecodeList(value string) ([]string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}

	var codes []string
	if err := json.Unmarshal([]byte(trimmed), &codes); err == nil {
		return codes, nil
	}

	parts := strings.Split(trimmed, ",")
	codes = make([]string, 0, len(parts))
	for _, part := range parts {
		if token := strings.TrimSpace(part); token != "" {
			codes = append(codes, token)
		}
	}
	if len(codes) == 0 {
		return nil, errors.New("no locale codes found")
	}
	return codes, nil
}
