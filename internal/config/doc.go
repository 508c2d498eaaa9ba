// Package config loads, normalizes, and validates the reelrank TOML
// configuration. All tunable matching, scoring, and ranking thresholds
// live here so behavior can be adjusted without code changes.
package config
