// Package tmdb provides access to The Movie Database API, the metadata
// catalog: discovery of recently released movies/series and per-item
// details including external IDs and watch providers.
package tmdb
