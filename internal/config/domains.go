package config

// Domains holds the trust-domain allow-lists used for source classification
// and for the fallback provider's result filtering. Both lists are matched
// against URL hostnames only, never full URLs.
type Domains struct {
	// OfficialSuffixes are hostname suffixes of official sources:
	// government domains, the electoral body, and established news
	// outlets. A hostname ending in any of these classifies as
	// official_site / high trust.
	OfficialSuffixes []string `yaml:"official_suffixes"`

	// Social are hostname substrings of social networks. A hostname
	// containing any of these (and not matching an official suffix)
	// classifies as social_profile / medium trust.
	Social []string `yaml:"social"`
}

// DefaultDomains returns the built-in allow-lists, centered on Bolivian
// official sources and the major social networks.
func DefaultDomains() Domains {
	return Domains{
		OfficialSuffixes: []string{
			".gob.bo",
			"oep.org.bo",
			"tribunal.org.bo",
			"eldeber.com.bo",
			"lapatria.bo",
			"la-razon.com",
			"ahoraelpueblo.bo",
		},
		Social: []string{
			"facebook.com",
			"instagram.com",
			"twitter.com",
			"x.com",
			"linkedin.com",
			"youtube.com",
			"tiktok.com",
		},
	}
}

// Merge overlays non-empty lists from other onto d and returns the result.
// Used when the configuration file overrides one list but not the other.
func (d Domains) Merge(other Domains) Domains {
	merged := d
	if len(other.OfficialSuffixes) > 0 {
		merged.OfficialSuffixes = other.OfficialSuffixes
	}
	if len(other.Social) > 0 {
		merged.Social = other.Social
	}
	return merged
}
