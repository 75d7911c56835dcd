// Package config holds all configuration for rastro: default limits and
// timeouts, the trust-domain allow-lists, the optional YAML configuration
// file, and the seed-list loader.
//
// Design decision: Configuration is immutable data injected into components
// at construction time, never process-wide mutable state. The domain
// allow-lists in particular are plain values handed to the classifier and
// the fallback search provider, which keeps per-test overrides trivial.
package config
