package sections

// RegisterDefaults registers every built-in section renderer on the registry.
func RegisterDefaults(reg *Registry) {
	RegisterHero(reg)
	RegisterProductHero(reg)
	RegisterFeatures(reg)
	RegisterFeatureCards(reg)
	RegisterPricing(reg)
	RegisterFAQ(reg)
	RegisterTestimonials(reg)
	RegisterContact(reg)
	RegisterBanner(reg)
	RegisterGrid(reg)
	RegisterCTAStrip(reg)
}

// DefaultRegistry builds a registry with all built-in renderers installed.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	RegisterDefaults(reg)
	return reg
}
