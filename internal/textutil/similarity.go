package textutil

import "strings"

// Similarity returns the Jaccard index between the token sets of the two
// normalized titles: |A ∩ B| / |A ∪ B|. Duplicate tokens collapse. Returns
// 0 when either side has no tokens. Symmetric and bounded to [0, 1].
func Similarity(a, b string) float64 {
	setA := tokenSet(Normalize(a))
	setB := tokenSet(Normalize(b))
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for token := range setA {
		if _, ok := setB[token]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(normalized string) map[string]struct{} {
	fields := strings.Fields(normalized)
	set := make(map[string]struct{}, len(fields))
	for _, token := range fields {
		set[token] = struct{}{}
	}
	return set
}
