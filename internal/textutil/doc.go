// Package textutil provides text processing utilities for title
// normalization and similarity.
//
// The primary use cases are:
//   - Canonicalizing free-text titles so records from different sources
//     can be compared (diacritics, punctuation, and noise suffixes vary
//     per source)
//   - Computing a bounded token-set similarity between two titles
//
// Normalize is idempotent and total over any string input; Similarity is
// symmetric and returns values in [0, 1].
package textutil
