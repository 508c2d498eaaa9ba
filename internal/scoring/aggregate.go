package scoring

import (
	"math"

	"reelrank/internal/media"
)

// Weights assigns each signal slot its share of the composite score.
// The six values are expected to sum to 1.0.
type Weights struct {
	Scraped         float64 `toml:"scraped"`
	NumericAPI      float64 `toml:"numeric_api"`
	CriticPercent   float64 `toml:"critic_percent"`
	AudiencePercent float64 `toml:"audience_percent"`
	CriticPercent2  float64 `toml:"critic_percent2"`
	UserScore10     float64 `toml:"user_score_10"`
}

// DefaultWeights favors the two strongest signals (scraped site, numeric
// API) and splits the remainder evenly across the percent-scale sources.
func DefaultWeights() Weights {
	return Weights{
		Scraped:         0.25,
		NumericAPI:      0.25,
		CriticPercent:   0.125,
		AudiencePercent: 0.125,
		CriticPercent2:  0.125,
		UserScore10:     0.125,
	}
}

// Sum returns the total of all six weights.
func (w Weights) Sum() float64 {
	return w.Scraped + w.NumericAPI + w.CriticPercent + w.AudiencePercent + w.CriticPercent2 + w.UserScore10
}

// Aggregate combines the present signals into one 0-10 composite score.
// Percent-scale signals are mapped to 0-10 first. Weights are renormalized
// over the present subset, and the result is rounded to two decimals.
// Returns nil when no signal is present.
func Aggregate(signals media.Signals, weights Weights) *float64 {
	type slot struct {
		value  *float64
		weight float64
		divide bool // 0-100 scale, map to 0-10
	}
	slots := []slot{
		{signals.Scraped, weights.Scraped, false},
		{signals.NumericAPI, weights.NumericAPI, false},
		{signals.CriticPercent, weights.CriticPercent, true},
		{signals.AudiencePercent, weights.AudiencePercent, true},
		{signals.CriticPercent2, weights.CriticPercent2, true},
		{signals.UserScore10, weights.UserScore10, false},
	}

	var weightSum float64
	for _, s := range slots {
		if s.value != nil {
			weightSum += s.weight
		}
	}
	if weightSum == 0 {
		return nil
	}

	var total float64
	for _, s := range slots {
		if s.value == nil {
			continue
		}
		value := *s.value
		if s.divide {
			value /= 10
		}
		total += (s.weight / weightSum) * value
	}

	rounded := math.Round(total*100) / 100
	return &rounded
}
