package match

import (
	"log/slog"

	"reelrank/internal/logging"
	"reelrank/internal/media"
	"reelrank/internal/textutil"
)

// Score components. Similarity dominates; bonuses break near-ties in favor
// of candidates whose metadata corroborates the target.
const (
	similarityWeight = 100.0
	bonusExactTitle  = 25.0
	bonusYearExact   = 18.0
	bonusYearClose   = 10.0
	bonusHasRating   = 3.0
	bonusHasURL      = 2.0
)

// ResolverConfig holds the tunable resolution thresholds.
type ResolverConfig struct {
	// MinSimilarity is the absolute floor the best candidate's title
	// similarity must clear. Guards against confidently wrong matches
	// when every candidate is poor.
	MinSimilarity float64
	// YearTolerance is the maximum year gap between item and candidate
	// before the candidate is rejected outright (both years known).
	YearTolerance int
}

// DefaultResolverConfig returns the most defensive threshold set.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{MinSimilarity: 0.45, YearTolerance: 1}
}

// Resolver ranks search candidates for one query and picks the winner, or
// nothing when no candidate is trustworthy enough.
type Resolver struct {
	cfg    ResolverConfig
	logger *slog.Logger
}

// NewResolver creates a resolver. A nil logger disables decision logging.
func NewResolver(cfg ResolverConfig, logger *slog.Logger) *Resolver {
	return &Resolver{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "resolver"),
	}
}

// Resolve returns the best-scoring candidate for the item, or nil when all
// candidates are hard-rejected or the winner misses the similarity floor.
// Exact score ties resolve to the first-seen candidate.
func (r *Resolver) Resolve(item media.Item, candidates []Candidate) *Candidate {
	target := item.Title()
	if target == "" || len(candidates) == 0 {
		return nil
	}

	var best *Candidate
	bestScore := -1.0
	bestSimilarity := 0.0

	for idx := range candidates {
		candidate := &candidates[idx]
		if r.hardReject(item, candidate) {
			r.logger.Debug("candidate hard-rejected",
				logging.String("target", target),
				logging.String("candidate", candidate.Title),
				logging.String("candidate_type", string(candidate.Type)),
				logging.Int("candidate_year", candidate.Year))
			continue
		}

		similarity := textutil.Similarity(target, candidate.Title)
		score := r.score(item, candidate, similarity)

		r.logger.Debug("candidate scored",
			logging.String("target", target),
			logging.String("candidate", candidate.Title),
			logging.Float64("similarity", similarity),
			logging.Float64("score", score))

		if score > bestScore {
			best = candidate
			bestScore = score
			bestSimilarity = similarity
		}
	}

	if best == nil {
		return nil
	}
	if bestSimilarity < r.cfg.MinSimilarity {
		r.logger.Info("best candidate below similarity floor",
			logging.String("target", target),
			logging.String("candidate", best.Title),
			logging.Float64("similarity", bestSimilarity),
			logging.Float64("floor", r.cfg.MinSimilarity))
		return nil
	}

	r.logger.Info("candidate accepted",
		logging.String("target", target),
		logging.String("candidate", best.Title),
		logging.Float64("similarity", bestSimilarity),
		logging.Float64("score", bestScore))
	return best
}

// hardReject excludes a candidate from scoring entirely. An unknown
// candidate type never triggers the type rule; only a known mismatch does.
func (r *Resolver) hardReject(item media.Item, candidate *Candidate) bool {
	if item.Type != media.TypeUnknown && item.Type != "" &&
		candidate.Type != media.TypeUnknown && candidate.Type != "" &&
		item.Type != candidate.Type {
		return true
	}
	if item.Year != 0 && candidate.Year != 0 {
		if abs(item.Year-candidate.Year) > r.cfg.YearTolerance {
			return true
		}
	}
	return false
}

func (r *Resolver) score(item media.Item, candidate *Candidate, similarity float64) float64 {
	score := similarityWeight * similarity

	if textutil.Normalize(item.Title()) == textutil.Normalize(candidate.Title) {
		score += bonusExactTitle
	}
	if item.Year != 0 && candidate.Year != 0 {
		switch abs(item.Year - candidate.Year) {
		case 0:
			score += bonusYearExact
		case 1:
			score += bonusYearClose
		}
	}
	if candidate.Rating != nil {
		score += bonusHasRating
	}
	if candidate.URL != "" {
		score += bonusHasURL
	}
	return score
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
