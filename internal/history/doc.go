// Package history persists ranking runs and their results in SQLite. Each
// invocation records one run row plus a ranked item row per selected title,
// so past rankings can be listed and compared after the fact.
package history
