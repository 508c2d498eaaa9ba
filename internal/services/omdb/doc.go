// Package omdb looks up numeric ratings by IMDb ID: the IMDb 0-10 score
// plus the percent-scale critic and audience signals OMDb relays. A
// missing or unknown ID yields no data, never an error.
package omdb
