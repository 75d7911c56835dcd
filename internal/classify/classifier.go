package classify

import (
	"net/url"
	"strings"
	"sync"

	"github.com/osintbo/rastro/internal/config"
	"github.com/osintbo/rastro/internal/model"
)

// Classification is the (source kind, trust level) pair assigned to a URL.
type Classification struct {
	// Kind categorizes the hostname.
	Kind model.SourceKind

	// Trust is the confidence tier implied by the kind.
	Trust model.TrustLevel
}

// Classifier assigns classifications from immutable domain allow-lists.
// It is safe for concurrent use.
//
// Matching rules, checked in order:
//  1. hostname ends with an official suffix -> official_site, high
//  2. hostname contains a social domain -> social_profile, medium
//  3. otherwise -> general_web, low
//
// Official matching is a suffix match so that subdomains of official hosts
// (www.oep.org.bo) classify correctly; social matching is a substring match
// because social networks serve profiles from many regional subdomains
// (es-la.facebook.com, m.facebook.com).
type Classifier struct {
	domains config.Domains

	// cache memoizes hostname -> classification. Classification is
	// stateless, so caching is purely an optimization and never
	// invalidated.
	cache sync.Map
}

// New creates a Classifier with the given allow-lists.
func New(domains config.Domains) *Classifier {
	return &Classifier{domains: domains}
}

// Classify returns the classification for a URL.
// Unparseable URLs and URLs without a hostname classify as general_web:
// the pipeline treats them like any other low-trust candidate rather than
// erroring out.
func (c *Classifier) Classify(rawURL string) Classification {
	hostname := Hostname(rawURL)
	if cached, ok := c.cache.Load(hostname); ok {
		return cached.(Classification)
	}

	result := c.classifyHostname(hostname)
	c.cache.Store(hostname, result)
	return result
}

func (c *Classifier) classifyHostname(hostname string) Classification {
	for _, suffix := range c.domains.OfficialSuffixes {
		if strings.HasSuffix(hostname, suffix) {
			return Classification{Kind: model.SourceOfficial, Trust: model.TrustHigh}
		}
	}
	for _, social := range c.domains.Social {
		if strings.Contains(hostname, social) {
			return Classification{Kind: model.SourceSocial, Trust: model.TrustMedium}
		}
	}
	return Classification{Kind: model.SourceGeneral, Trust: model.TrustLow}
}

// Hostname extracts the lower-cased hostname from a URL.
// Returns the empty string when the URL cannot be parsed.
func Hostname(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}
