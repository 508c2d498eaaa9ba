// Package export writes ranking results to JSON files in the data
// directory. Files are written to a temp sibling and renamed into place so
// readers never observe a half-written document.
package export
