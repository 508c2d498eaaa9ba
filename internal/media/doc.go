// Package media defines the domain model shared across the aggregation
// pipeline: catalog items, per-source rating signals, and the enriched and
// ranked forms produced by scoring and selection.
package media
