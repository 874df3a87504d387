package sections

import (
	"fmt"
	"strings"
	"sync"

	"carsu-site-backend/internal/models"
	"carsu-site-backend/pkg/logger"
)

// RenderContext exposes the minimal capabilities section renderers need:
// sanitization, locale resolution, rich text rendering and asset URLs.
// Renderers stay pure; everything stateful lives behind this interface.
type RenderContext interface {
	// SanitizeHTML cleans potentially unsafe markup before rendering.
	SanitizeHTML(input string) string
	// ResolveString resolves a localizable string against the locale.
	ResolveString(value models.LocalizedString, loc string) string
	// ResolveHref resolves a localizable href and applies the locale prefix.
	ResolveHref(value models.LocalizedString, loc string) string
	// RenderRichText resolves and renders a localizable rich text document.
	RenderRichText(value models.LocalizedText, loc string) string
	// ImageURL builds a CDN URL for an asset reference; empty when the
	// reference has no asset.
	ImageURL(ref models.ImageRef, width, height int) string
}

// Renderer renders one section into HTML output plus optional script asset
// paths. Renderers degrade to empty output on malformed payloads; they never
// return errors.
type Renderer func(ctx RenderContext, loc string, section models.Section) (string, []string)

// Metadata describes a section type for the editorial API.
type Metadata struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type entry struct {
	renderer Renderer
	metadata Metadata
}

// Registry maps section type discriminators to their renderers. Types are
// normalised to lowercase; the union is open, so lookups for unregistered
// types simply miss and the composer reports them.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register associates a renderer (and its metadata) with a normalised type.
func (r *Registry) Register(meta Metadata, renderer Renderer) error {
	if r == nil {
		return fmt.Errorf("registry is nil")
	}

	sectionType := strings.TrimSpace(strings.ToLower(meta.Type))
	if sectionType == "" {
		return fmt.Errorf("section type is empty")
	}
	if renderer == nil {
		return fmt.Errorf("renderer is nil for type %s", sectionType)
	}

	meta.Type = sectionType

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries == nil {
		r.entries = make(map[string]entry)
	}
	r.entries[sectionType] = entry{renderer: renderer, metadata: meta}
	return nil
}

// RegisterSafe registers a renderer and logs instead of failing when the
// input is invalid. Used by the default registration path so one bad entry
// never prevents the rest from loading.
func (r *Registry) RegisterSafe(meta Metadata, renderer Renderer) {
	if err := r.Register(meta, renderer); err != nil {
		logger.Error(err, "Failed to register section renderer", map[string]interface{}{"type": meta.Type})
	}
}

// MustRegister registers a renderer and panics on invalid input. Intended for
// static registrations at startup where a bad entry is a programming error.
func (r *Registry) MustRegister(meta Metadata, renderer Renderer) {
	if err := r.Register(meta, renderer); err != nil {
		panic(err)
	}
}

// Get retrieves the renderer for a section type if one is registered.
func (r *Registry) Get(sectionType string) (Renderer, bool) {
	if r == nil {
		return nil, false
	}

	sectionType = strings.TrimSpace(strings.ToLower(sectionType))
	if sectionType == "" {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[sectionType]
	return e.renderer, ok
}

// Types returns the registered type names, unsorted.
func (r *Registry) Types() []string {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.entries))
	for t := range r.entries {
		types = append(types, t)
	}
	return types
}

// ListMetadata returns metadata for every registered section type.
func (r *Registry) ListMetadata() []Metadata {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]Metadata, 0, len(r.entries))
	for _, e := range r.entries {
		result = append(result, e.metadata)
	}
	return result
}

// Clone creates a copy of the registry with the same entries, so a request
// can extend its registry without racing other requests.
func (r *Registry) Clone() *Registry {
	if r == nil {
		return NewRegistry()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := NewRegistry()
	for key, e := range r.entries {
		cloned.entries[key] = e
	}
	return cloned
}
