// Package match implements cross-source entity resolution: deciding which
// search candidate from the scraped rating site, if any, represents the
// same real-world item as a catalog record.
//
// The resolver applies hard-reject rules (known type mismatch, year gap
// beyond tolerance) before scoring survivors on title similarity plus
// additive bonuses, and enforces an absolute similarity floor so a "best of
// a bad lot" candidate is still refused. The cascade drives the resolver
// across an ordered list of alternate queries, memoizing every outcome —
// including negative ones — in a per-run cache.
package match
