// Package pipeline orchestrates one ranking run: discover recent titles
// from the catalog, enrich each with every rating signal that can be
// obtained, aggregate, and select the top entries. Items are processed one
// at a time; a failed source lookup costs an item one signal, never the run.
package pipeline
