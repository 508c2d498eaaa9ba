// Command reelrank ranks recently released movies and series by combining
// rating signals from multiple sources into one composite score.
package main
