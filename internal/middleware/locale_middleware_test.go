package middleware

import (
	"testing"
)

func TestNegotiateExplicitBeatsHeader(t *testing.T) {
	supported := []string{"en", "es", "it"}

	got := negotiate([]string{"es"}, "it;q=0.9,en;q=0.8", "en", supported)
	if got != "es" {
		t.Fatalf("Expected explicit locale to win, got %q", got)
	}
}

func TestNegotiateAcceptLanguageWeights(t *testing.T) {
	supported := []string{"en", "es", "it"}

	got := negotiate(nil, "it;q=0.4, es;q=0.9, fr;q=1.0", "en", supported)
	if got != "es" {
		t.Fatalf("Expected highest-weighted supported locale, got %q", got)
	}
}

func TestNegotiateRegionFallsBackToBase(t *testing.T) {
	supported := []string{"en", "es"}

	got := negotiate([]string{"es-MX"}, "", "en", supported)
	if got != "es" {
		t.Fatalf("Expected es-MX to match base es, got %q", got)
	}
}

func TestNegotiateUnsupportedFallsBackToDefault(t *testing.T) {
	supported := []string{"en", "es"}

	got := negotiate([]string{"de"}, "fr,pt;q=0.8", "en", supported)
	if got != "en" {
		t.Fatalf("Expected fallback to default locale, got %q", got)
	}
}

func TestParseAcceptLanguageOrdering(t *testing.T) {
	got := parseAcceptLanguage("en;q=0.5, it, es;q=0.8, garbage!;q=1.0")
	want := []string{"it", "es", "en"}

	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, got)
		}
	}
}
