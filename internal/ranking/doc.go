// Package ranking holds the final admission and ordering steps: a trailing
// release-date window filter and the Top-N selector that sorts, truncates,
// and assigns dense ranks.
package ranking
