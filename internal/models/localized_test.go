package models

import (
	"encoding/json"
	"testing"
)

func TestLocalizedStringDecodesBareString(t *testing.T) {
	var ls LocalizedString
	if err := json.Unmarshal([]byte(`"Hello"`), &ls); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bare, ok := ls.Bare()
	if !ok {
		t.Fatal("expected bare value")
	}
	if bare != "Hello" {
		t.Fatalf("expected Hello, got %q", bare)
	}
}

func TestLocalizedStringDecodesLocaleMap(t *testing.T) {
	var ls LocalizedString
	if err := json.Unmarshal([]byte(`{"en":"Hello","es":"Hola"}`), &ls); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := ls.Bare(); ok {
		t.Fatal("locale map should not report as bare")
	}
	if ls.Get("es") != "Hola" {
		t.Fatalf("expected Hola, got %q", ls.Get("es"))
	}
}

func TestLocalizedStringRoundTrip(t *testing.T) {
	original := PlainString("Pricing")
	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `"Pricing"` {
		t.Fatalf("bare value should marshal as a plain string, got %s", data)
	}
}

func TestLocalizedStringLocalesSkipsBlank(t *testing.T) {
	ls := NewLocalizedString(map[string]string{"en": "Hello", "es": "", "it": "Ciao"})
	locales := ls.Locales()
	if len(locales) != 2 || locales[0] != "en" || locales[1] != "it" {
		t.Fatalf("unexpected locales: %v", locales)
	}
}

func TestLocalizedTextDecodesBothShapes(t *testing.T) {
	bare := []byte(`[{"key":"a","style":"normal","children":[{"text":"hi"}]}]`)
	var lt LocalizedText
	if err := json.Unmarshal(bare, &lt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !lt.IsPlain || len(lt.Plain) != 1 {
		t.Fatalf("expected plain document with one block, got %+v", lt)
	}

	localized := []byte(`{"en":[{"key":"a","children":[{"text":"hi"}]}],"es":[]}`)
	lt = LocalizedText{}
	if err := json.Unmarshal(localized, &lt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lt.IsPlain {
		t.Fatal("expected locale map document")
	}
	if len(lt.Get("en")) != 1 {
		t.Fatalf("expected one block for en, got %d", len(lt.Get("en")))
	}
	if locales := lt.Locales(); len(locales) != 1 || locales[0] != "en" {
		t.Fatalf("empty documents should not count as available, got %v", locales)
	}
}

func TestSectionKeepsRawPayload(t *testing.T) {
	raw := []byte(`{"id":"s1","type":"hero","heading":{"en":"Welcome"}}`)
	var section Section
	if err := json.Unmarshal(raw, &section); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if section.Type != "hero" || section.ID != "s1" {
		t.Fatalf("unexpected header: %+v", section)
	}

	var payload struct {
		Heading LocalizedString `json:"heading"`
	}
	if err := section.Decode(&payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Heading.Get("en") != "Welcome" {
		t.Fatalf("expected payload heading, got %+v", payload.Heading)
	}
}

func TestSectionAcceptsCMSFieldNames(t *testing.T) {
	raw := []byte(`{"_key":"k1","_type":"faq"}`)
	var section Section
	if err := json.Unmarshal(raw, &section); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if section.ID != "k1" || section.Type != "faq" {
		t.Fatalf("expected _key/_type to be honoured, got %+v", section)
	}
}
