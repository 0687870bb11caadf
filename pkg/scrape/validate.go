package scrape

import (
	"net/url"
	"strings"
)

// Validator checks that a URL belongs to one trusted source site before it is
// fetched or included in a response.
type Validator struct {
	domain     string
	pathPrefix string
}

// NewValidator builds a validator for a site. domain must match the URL host
// exactly (no subdomains). pathPrefix, when non-empty, is additionally
// required on movie page URLs.
func NewValidator(domain, pathPrefix string) *Validator {
	return &Validator{
		domain:     strings.ToLower(domain),
		pathPrefix: pathPrefix,
	}
}

// ValidOrigin reports whether raw is an absolute https URL on the configured
// domain. It never panics; any parse failure yields false.
func (v *Validator) ValidOrigin(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Scheme != "https" {
		return false
	}
	return strings.ToLower(parsed.Hostname()) == v.domain
}

// ValidMovieURL reports whether raw is a trusted movie page URL: a valid
// origin whose path carries the configured movie path prefix.
func (v *Validator) ValidMovieURL(raw string) bool {
	if !v.ValidOrigin(raw) {
		return false
	}
	if v.pathPrefix == "" {
		return true
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return strings.HasPrefix(parsed.Path, v.pathPrefix)
}
