// Package assets builds image CDN URLs. Renderers never assemble asset URLs
// by hand; they go through the fluent builder so sizing and format parameters
// stay consistent across the site.
package assets

import (
	"net/url"
	"strconv"
	"strings"

	"carsu-site-backend/internal/models"
)

// Builder produces URL requests for a configured CDN endpoint.
type Builder struct {
	baseURL  string
	quality  int
	autoWebP bool
}

// NewBuilder creates a builder for the given CDN base URL. Quality outside
// 1-100 falls back to the CDN default.
func NewBuilder(baseURL string, quality int, autoWebP bool) *Builder {
	return &Builder{
		baseURL:  strings.TrimRight(baseURL, "/"),
		quality:  quality,
		autoWebP: autoWebP,
	}
}

// Image starts a URL request for the referenced asset. A reference without an
// asset id yields a request that resolves to an empty URL.
func (b *Builder) Image(ref models.ImageRef) *Request {
	return &Request{builder: b, asset: strings.TrimSpace(ref.Asset)}
}

// ImageURL is a convenience shortcut for the common width/height case.
func (b *Builder) ImageURL(ref models.ImageRef, width, height int) string {
	return b.Image(ref).Width(width).Height(height).URL()
}

// Request is one fluent URL construction. Zero dimensions are omitted from
// the query, letting the CDN serve the original size.
type Request struct {
	builder *Builder
	asset   string
	width   int
	height  int
	quality int
	fit     string
}

func (r *Request) Width(w int) *Request {
	r.width = w
	return r
}

func (r *Request) Height(h int) *Request {
	r.height = h
	return r
}

func (r *Request) Quality(q int) *Request {
	r.quality = q
	return r
}

// Fit sets the crop behaviour, e.g. "crop" or "max".
func (r *Request) Fit(fit string) *Request {
	r.fit = fit
	return r
}

// URL renders the final CDN URL. Empty when the request has no asset, so
// callers can guard with a single check.
func (r *Request) URL() string {
	if r.asset == "" || r.builder == nil || r.builder.baseURL == "" {
		return ""
	}

	params := url.Values{}
	if r.width > 0 {
		params.Set("w", strconv.Itoa(r.width))
	}
	if r.height > 0 {
		params.Set("h", strconv.Itoa(r.height))
	}
	quality := r.quality
	if quality <= 0 {
		quality = r.builder.quality
	}
	if quality > 0 && quality <= 100 {
		params.Set("q", strconv.Itoa(quality))
	}
	if r.fit != "" {
		params.Set("fit", r.fit)
	}
	if r.builder.autoWebP {
		params.Set("auto", "format")
	}

	base := r.builder.baseURL + "/" + url.PathEscape(r.asset)
	if encoded := params.Encode(); encoded != "" {
		return base + "?" + encoded
	}
	return base
}
