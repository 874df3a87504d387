package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"sort"
	"strings"
)

// bareKey stores a non-localized legacy value inside a locale map. Content
// authored before localization was introduced arrives as a plain value; it is
// treated as locale agnostic by the resolver.
const bareKey = ""

// LocalizedString is a string that may be localized. On the wire it is either
// a bare JSON string or an object mapping locale codes to strings:
//
//	"Hello"                       -> bare, locale agnostic
//	{"en": "Hello", "es": "Hola"} -> locale map
type LocalizedString map[string]string

// NewLocalizedString builds a locale map value.
func NewLocalizedString(values map[string]string) LocalizedString {
	if len(values) == 0 {
		return LocalizedString{}
	}
	ls := make(LocalizedString, len(values))
	for locale, value := range values {
		ls[locale] = value
	}
	return ls
}

// PlainString builds a bare, locale-agnostic value.
func PlainString(value string) LocalizedString {
	return LocalizedString{bareKey: value}
}

// Bare returns the locale-agnostic value and whether this is a bare string.
func (ls LocalizedString) Bare() (string, bool) {
	if len(ls) != 1 {
		return "", false
	}
	value, ok := ls[bareKey]
	return value, ok
}

// Get returns the raw value for a locale without any fallback.
func (ls LocalizedString) Get(locale string) string {
	return ls[locale]
}

// IsEmpty reports whether no non-blank value exists for any locale.
func (ls LocalizedString) IsEmpty() bool {
	for _, value := range ls {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

// Locales returns the locale codes carrying a non-blank value, sorted for
// stable output. The bare key is excluded.
func (ls LocalizedString) Locales() []string {
	locales := make([]string, 0, len(ls))
	for locale, value := range ls {
		if locale == bareKey || strings.TrimSpace(value) == "" {
			continue
		}
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

func (ls *LocalizedString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*ls = nil
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var bare string
		if err := json.Unmarshal(data, &bare); err != nil {
			return err
		}
		*ls = LocalizedString{bareKey: bare}
		return nil
	}

	var byLocale map[string]string
	if err := json.Unmarshal(data, &byLocale); err != nil {
		return err
	}
	*ls = byLocale
	return nil
}

func (ls LocalizedString) MarshalJSON() ([]byte, error) {
	if bare, ok := ls.Bare(); ok {
		return json.Marshal(bare)
	}
	return json.Marshal(map[string]string(ls))
}

func (ls LocalizedString) Value() (driver.Value, error) {
	if len(ls) == 0 {
		return nil, nil
	}
	return json.Marshal(ls)
}

func (ls *LocalizedString) Scan(value interface{}) error {
	if value == nil {
		*ls = LocalizedString{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan LocalizedString")
	}
	return ls.UnmarshalJSON(bytes)
}

// LocalizedText is a rich text document that may be localized. On the wire it
// is either a bare block array or an object mapping locale codes to arrays.
type LocalizedText struct {
	Plain    RichTextDocument
	IsPlain  bool
	ByLocale map[string]RichTextDocument
}

// Get returns the raw document for a locale without any fallback.
func (lt LocalizedText) Get(locale string) RichTextDocument {
	if lt.IsPlain {
		return lt.Plain
	}
	return lt.ByLocale[locale]
}

// IsEmpty reports whether no locale carries a non-empty document.
func (lt LocalizedText) IsEmpty() bool {
	if lt.IsPlain {
		return len(lt.Plain) == 0
	}
	for _, doc := range lt.ByLocale {
		if len(doc) > 0 {
			return false
		}
	}
	return true
}

// Locales returns the locale codes carrying a non-empty document, sorted.
func (lt LocalizedText) Locales() []string {
	if lt.IsPlain {
		return nil
	}
	locales := make([]string, 0, len(lt.ByLocale))
	for locale, doc := range lt.ByLocale {
		if len(doc) == 0 {
			continue
		}
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

func (lt *LocalizedText) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*lt = LocalizedText{}
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var doc RichTextDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		*lt = LocalizedText{Plain: doc, IsPlain: true}
		return nil
	}

	var byLocale map[string]RichTextDocument
	if err := json.Unmarshal(data, &byLocale); err != nil {
		return err
	}
	*lt = LocalizedText{ByLocale: byLocale}
	return nil
}

func (lt LocalizedText) MarshalJSON() ([]byte, error) {
	if lt.IsPlain {
		return json.Marshal(lt.Plain)
	}
	if lt.ByLocale == nil {
		return []byte("null"), nil
	}
	return json.Marshal(lt.ByLocale)
}

func (lt LocalizedText) Value() (driver.Value, error) {
	if lt.IsPlain && len(lt.Plain) == 0 && len(lt.ByLocale) == 0 {
		return nil, nil
	}
	if !lt.IsPlain && len(lt.ByLocale) == 0 {
		return nil, nil
	}
	return json.Marshal(lt)
}

func (lt *LocalizedText) Scan(value interface{}) error {
	if value == nil {
		*lt = LocalizedText{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan LocalizedText")
	}
	return lt.UnmarshalJSON(bytes)
}
