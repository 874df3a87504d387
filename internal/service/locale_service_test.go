package service

import (
	"testing"

	"gorm.io/gorm"

	"carsu-site-backend/internal/config"
	"carsu-site-backend/internal/models"
)

type fakeSettingRepo struct {
	values map[string]string
}

func (f *fakeSettingRepo) Get(key string) (*models.Setting, error) {
	value, ok := f.values[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.Setting{Key: key, Value: value}, nil
}

func (f *fakeSettingRepo) Set(key, value string) error {
	f.values[key] = value
	return nil
}

func (f *fakeSettingRepo) Delete(key string) error {
	delete(f.values, key)
	return nil
}

func (f *fakeSettingRepo) GetAll() ([]models.Setting, error) {
	var out []models.Setting
	for key, value := range f.values {
		out = append(out, models.Setting{Key: key, Value: value})
	}
	return out, nil
}

func TestLocaleServiceDefaultsFromConfig(t *testing.T) {
	cfg := &config.Config{DefaultLocale: "ES", SupportedLocales: []string{"es", "en", "it"}}
	svc := NewLocaleService(cfg, nil)

	defaultLocale, supported := svc.Defaults()
	if defaultLocale != "es" {
		t.Fatalf("Expected normalized default es, got %q", defaultLocale)
	}
	if len(supported) == 0 || supported[0] != "es" {
		t.Fatalf("Expected default first in supported list, got %v", supported)
	}
}

func TestLocaleServiceSettingsOverrideConfig(t *testing.T) {
	cfg := &config.Config{DefaultLocale: "en", SupportedLocales: []string{"en"}}
	repo := &fakeSettingRepo{values: map[string]string{
		settingKeyDefaultLocale:    "it",
		settingKeySupportedLocales: "it,en",
	}}
	svc := NewLocaleService(cfg, repo)

	// Force a reload past the constructor-seeded cache.
	svc.lastLoaded = svc.lastLoaded.Add(-2 * localeCacheTTL)

	defaultLocale, supported, err := svc.Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if defaultLocale != "it" {
		t.Fatalf("Expected settings override it, got %q", defaultLocale)
	}
	if len(supported) != 2 || supported[0] != "it" {
		t.Fatalf("Expected it first in supported list, got %v", supported)
	}
}

func TestLocaleServiceUpdatePersistsAndRefreshes(t *testing.T) {
	cfg := &config.Config{DefaultLocale: "en", SupportedLocales: []string{"en"}}
	repo := &fakeSettingRepo{values: map[string]string{}}
	svc := NewLocaleService(cfg, repo)

	if err := svc.Update("es", []string{"es", "en"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if repo.values[settingKeyDefaultLocale] != "es" {
		t.Fatalf("Expected persisted default locale, got %q", repo.values[settingKeyDefaultLocale])
	}

	defaultLocale, supported, err := svc.Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if defaultLocale != "es" || supported[0] != "es" {
		t.Fatalf("Expected refreshed cache after update, got %q %v", defaultLocale, supported)
	}
}

func TestLocaleServiceRejectsInvalidConfiguration(t *testing.T) {
	svc := NewLocaleService(&config.Config{DefaultLocale: "en"}, &fakeSettingRepo{values: map[string]string{}})

	if err := svc.Update("not a locale!", nil); err == nil {
		t.Fatalf("Expected error for invalid locale code")
	}
}
