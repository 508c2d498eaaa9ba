// Package scoring converts heterogeneous rating signals to a common 0-10
// scale and combines whichever subset is present into one composite score.
//
// Missing signals do not penalize an item: the fixed per-signal weights are
// renormalized over the present subset, so each available signal's relative
// influence grows to fill the gap. This keeps composite scores comparable
// between items with very different source coverage.
package scoring
