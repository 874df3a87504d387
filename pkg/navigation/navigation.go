package navigation

// Item represents a navigation link rendered in the shared site header and
// footer. Labels are locale specific; the handler resolves them against the
// request locale before passing the aggregated list to the layout template.
type Item struct {
	Label map[string]string
	Path  string
}

// ResolveLabel picks the label for the requested locale, falling back to the
// default locale and then to any available label.
func (i Item) ResolveLabel(locale, defaultLocale string) string {
	if len(i.Label) == 0 {
		return ""
	}
	if label := i.Label[locale]; label != "" {
		return label
	}
	if label := i.Label[defaultLocale]; label != "" {
		return label
	}
	for _, label := range i.Label {
		if label != "" {
			return label
		}
	}
	return ""
}
