package runtime

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

// Negotiator resolves the API version a request asks for from its Accept
// header, in vendor media-type form:
//
//	Accept: application/vnd.<vendor>.<version>+json
//
// Requests without a vendor media type fall back to the default version.
type Negotiator struct {
	vendor  string
	def     string
	pattern *regexp.Regexp
}

// NewNegotiator creates a negotiator for the given vendor tree and default
// version.
func NewNegotiator(vendor, defaultVersion string) *Negotiator {
	return &Negotiator{
		vendor:  vendor,
		def:     defaultVersion,
		pattern: regexp.MustCompile(`^application/vnd\.` + regexp.QuoteMeta(vendor) + `\.([^+]+)\+json$`),
	}
}

// DefaultVersion returns the version used when a request does not ask for one.
func (n *Negotiator) DefaultVersion() string { return n.def }

// Negotiate returns the requested API version.
func (n *Negotiator) Negotiate(r *http.Request) string {
	accept := r.Header.Get("Accept")
	for _, part := range strings.Split(accept, ",") {
		media := strings.TrimSpace(part)
		// Strip media type parameters (;q=0.9 and friends).
		if i := strings.IndexByte(media, ';'); i >= 0 {
			media = strings.TrimSpace(media[:i])
		}
		if m := n.pattern.FindStringSubmatch(media); m != nil {
			return m[1]
		}
	}
	return n.def
}

// MediaType renders the vendor media type for a version, used in error
// payloads and documentation.
func (n *Negotiator) MediaType(version string) string {
	return fmt.Sprintf("application/vnd.%s.%s+json", n.vendor, version)
}
