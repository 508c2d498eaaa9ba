// Package services holds the boundary collaborators (catalog, numeric
// rating API, scraped rating site) and the shared error taxonomy used to
// classify their failures.
//
// Boundary failures never reach the ranking logic as errors: clients map
// unavailable sources to absent data, and the aggregation, coverage, and
// window logic is total over partial input. The single fatal condition is
// missing required access configuration at process start.
package services
