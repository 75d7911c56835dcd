package model

import (
	"encoding/json"
	"fmt"
)

// TrustLevel represents the confidence tier assigned to a piece of evidence
// based on the hostname that produced it.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. TrustHigh is zero so that an
// ascending sort orders evidence high-before-medium-before-low without a
// separate rank table. JSON marshaling converts to the string form because
// the output artifact must stay human-diffable.
type TrustLevel int

const (
	// TrustHigh is assigned to evidence originating from official sources:
	// government domains, electoral bodies, and established news outlets.
	TrustHigh TrustLevel = iota

	// TrustMedium is assigned to evidence from social-network profiles.
	// Profiles are self-reported, so they rank below official sources.
	TrustMedium

	// TrustLow is assigned to evidence from the general web.
	TrustLow
)

// String returns a human-readable representation of the trust level.
func (t TrustLevel) String() string {
	switch t {
	case TrustHigh:
		return "high"
	case TrustMedium:
		return "medium"
	case TrustLow:
		return "low"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the trust level as its string form.
func (t TrustLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON parses the string form back into a TrustLevel.
func (t *TrustLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "high":
		*t = TrustHigh
	case "medium":
		*t = TrustMedium
	case "low":
		*t = TrustLow
	default:
		return fmt.Errorf("unknown trust level %q", s)
	}
	return nil
}

// SourceKind categorizes the origin of a piece of evidence by hostname.
type SourceKind int

const (
	// SourceOfficial marks government, electoral, and established news domains.
	SourceOfficial SourceKind = iota

	// SourceSocial marks social-network profile hosts.
	SourceSocial

	// SourceGeneral marks everything else reachable via web search.
	SourceGeneral
)

// String returns a human-readable representation of the source kind.
func (k SourceKind) String() string {
	switch k {
	case SourceOfficial:
		return "official_site"
	case SourceSocial:
		return "social_profile"
	case SourceGeneral:
		return "general_web"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the source kind as its string form.
func (k SourceKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON parses the string form back into a SourceKind.
func (k *SourceKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "official_site":
		*k = SourceOfficial
	case "social_profile":
		*k = SourceSocial
	case "general_web":
		*k = SourceGeneral
	default:
		return fmt.Errorf("unknown source kind %q", s)
	}
	return nil
}

// Trust returns the trust level implied by the source kind.
// The mapping is monotone: official sources are high trust, social profiles
// medium, and the general web low.
func (k SourceKind) Trust() TrustLevel {
	switch k {
	case SourceOfficial:
		return TrustHigh
	case SourceSocial:
		return TrustMedium
	default:
		return TrustLow
	}
}
