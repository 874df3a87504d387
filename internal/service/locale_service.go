package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"carsu-site-backend/internal/config"
	"carsu-site-backend/internal/repository"
	"carsu-site-backend/pkg/lang"
)

const (
	settingKeyDefaultLocale    = "site_default_locale"
	settingKeySupportedLocales = "site_supported_locales"

	localeCacheTTL = time.Minute
)

// LocaleService resolves the site's effective locale configuration. Values
// persisted in the settings repository override the configured fallbacks, and
// results are cached to keep repository traffic off the page render path.
type LocaleService struct {
	cfg  *config.Config
	repo repository.SettingRepository

	mu            sync.RWMutex
	cachedDefault string
	cachedList    []string
	lastLoaded    time.Time
	onChange      []func(defaultLocale string, supported []string)
}

func NewLocaleService(cfg *config.Config, repo repository.SettingRepository) *LocaleService {
	service := &LocaleService{
		cfg:  cfg,
		repo: repo,
	}

	defaultLocale, supported := service.defaults()
	service.cachedDefault = defaultLocale
	service.cachedList = append([]string(nil), supported...)
	service.lastLoaded = time.Now()

	return service
}

// Defaults returns the configured fallback default locale and supported list,
// normalized and guaranteed to include the default.
func (s *LocaleService) Defaults() (string, []string) {
	return s.defaults()
}

// OnChange registers a callback invoked whenever the effective locale
// configuration changes, either through Update or when a settings refresh
// picks up new values. Callbacks run outside the service's lock.
func (s *LocaleService) OnChange(fn func(defaultLocale string, supported []string)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.onChange = append(s.onChange, fn)
	s.mu.Unlock()
}

func (s *LocaleService) notify(defaultLocale string, supported []string) {
	s.mu.RLock()
	callbacks := append(([]func(string, []string))(nil), s.onChange...)
	s.mu.RUnlock()

	for _, fn := range callbacks {
		fn(defaultLocale, append([]string(nil), supported...))
	}
}

func localesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Resolve returns the effective default locale and supported list. Settings
// override configuration when present; the default locale is always the first
// entry of the returned list.
func (s *LocaleService) Resolve() (string, []string, error) {
	fallbackDefault, fallbackSupported := s.defaults()

	s.mu.RLock()
	cachedDefault := s.cachedDefault
	cachedSupported := append([]string(nil), s.cachedList...)
	lastLoaded := s.lastLoaded
	s.mu.RUnlock()

	if time.Since(lastLoaded) < localeCacheTTL && len(cachedSupported) > 0 {
		return cachedDefault, cachedSupported, nil
	}

	resolvedDefault := fallbackDefault
	resolvedSupported := fallbackSupported
	var combinedErr error

	if s.repo != nil {
		if setting, err := s.repo.Get(settingKeyDefaultLocale); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				combinedErr = errors.Join(combinedErr, err)
			}
		} else if trimmed := strings.TrimSpace(setting.Value); trimmed != "" {
			resolvedDefault = trimmed
		}

		if setting, err := s.repo.Get(settingKeySupportedLocales); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				combinedErr = errors.Join(combinedErr, err)
			}
		} else if trimmed := strings.TrimSpace(setting.Value); trimmed != "" {
			parsed, parseErr := lang.DecodeList(trimmed)
			if parseErr != nil {
				combinedErr = errors.Join(combinedErr, parseErr)
			} else if len(parsed) > 0 {
				resolvedSupported = parsed
			}
		}
	}

	normalizedDefault, normalizedSupported, err := lang.EnsureDefault(resolvedDefault, resolvedSupported)
	if err != nil {
		combinedErr = errors.Join(combinedErr, err)
		normalizedDefault = fallbackDefault
		normalizedSupported = append([]string(nil), fallbackSupported...)
	}

	if len(normalizedSupported) == 0 {
		normalizedSupported = []string{normalizedDefault}
	}

	s.mu.Lock()
	changed := normalizedDefault != s.cachedDefault || !localesEqual(normalizedSupported, s.cachedList)
	s.cachedDefault = normalizedDefault
	s.cachedList = append([]string(nil), normalizedSupported...)
	s.lastLoaded = time.Now()
	s.mu.Unlock()

	if changed {
		s.notify(normalizedDefault, normalizedSupported)
	}

	return normalizedDefault, normalizedSupported, combinedErr
}

// Update persists a new locale configuration and refreshes the cache.
func (s *LocaleService) Update(defaultLocale string, supported []string) error {
	normalizedDefault, normalizedSupported, err := lang.EnsureDefault(defaultLocale, supported)
	if err != nil {
		return fmt.Errorf("invalid locale configuration: %w", err)
	}

	if len(normalizedSupported) == 0 {
		normalizedSupported = []string{normalizedDefault}
	}

	if s.repo != nil {
		encoded, encodeErr := lang.EncodeList(normalizedSupported)
		if encodeErr != nil {
			return fmt.Errorf("failed to encode supported locales: %w", encodeErr)
		}

		if err := s.repo.Set(settingKeyDefaultLocale, normalizedDefault); err != nil {
			return err
		}
		if err := s.repo.Set(settingKeySupportedLocales, encoded); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.cachedDefault = normalizedDefault
	s.cachedList = append([]string(nil), normalizedSupported...)
	s.lastLoaded = time.Now()
	s.mu.Unlock()

	s.notify(normalizedDefault, normalizedSupported)

	return nil
}

func (s *LocaleService) defaults() (string, []string) {
	fallbackDefault := lang.Default
	fallbackSupported := []string{fallbackDefault}

	if s.cfg != nil {
		if normalized, err := lang.Normalize(s.cfg.DefaultLocale); err == nil && normalized != "" {
			fallbackDefault = normalized
		}

		if len(s.cfg.SupportedLocales) > 0 {
			if normalized, err := lang.NormalizeList(s.cfg.SupportedLocales); err == nil && len(normalized) > 0 {
				fallbackSupported = normalized
			}
		}
	}

	normalizedDefault, normalizedSupported, err := lang.EnsureDefault(fallbackDefault, fallbackSupported)
	if err != nil {
		return lang.Default, []string{lang.Default}
	}
	return normalizedDefault, normalizedSupported
}
