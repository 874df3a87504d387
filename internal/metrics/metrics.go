package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SectionsRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "site_sections_rendered_total",
		Help: "Sections rendered, labelled by section type.",
	}, []string{"type"})

	UnknownSections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "site_sections_unknown_total",
		Help: "Sections whose type had no registered renderer.",
	}, []string{"type"})

	PagesRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "site_pages_rendered_total",
		Help: "Pages composed, labelled by locale.",
	}, []string{"locale"})
)
