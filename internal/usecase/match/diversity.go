package match

import "strings"

// minDiversityWordLen excludes short filler words from novelty counting.
const minDiversityWordLen = 4

// diversityScores counts, for each title in input order, its words not yet
// seen in earlier titles. The seen set is an explicit accumulator threaded
// through the traversal: the fold is order-dependent and not commutative,
// so earlier titles deplete the novel-word pool of later ones.
func diversityScores(titles []string) []int {
	seen := make(map[string]struct{})
	scores := make([]int, len(titles))

	for i, title := range titles {
		var novelty int
		for _, word := range strings.Fields(strings.ToLower(title)) {
			if len(word) < minDiversityWordLen {
				continue
			}
			if _, ok := seen[word]; ok {
				continue
			}
			seen[word] = struct{}{}
			novelty++
		}
		scores[i] = novelty
	}
	return scores
}
