package dispatchers

import (
	"sort"
	"strings"
)

const (
	maxSimilarDistance    = 3
	defaultSimilarResults = 3
)

// levenshtein calculates the case-insensitive edit distance between two strings
func levenshtein(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}
	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}

type similar struct {
	name     string
	distance int
}

// SimilarCommands returns up to maxResults literal children of node whose
// names are close to input, nearest first. Exact matches are skipped.
func SimilarCommands[S comparable](input string, node *Node[S], maxResults int) []string {
	if node == nil {
		return nil
	}

	var found []similar
	for _, child := range node.Literals() {
		dist := levenshtein(input, child.Name())
		if dist <= maxSimilarDistance && dist > 0 {
			found = append(found, similar{name: child.Name(), distance: dist})
		}
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].distance != found[j].distance {
			return found[i].distance < found[j].distance
		}
		return found[i].name < found[j].name
	})

	if len(found) > maxResults {
		found = found[:maxResults]
	}

	result := make([]string, len(found))
	for i, s := range found {
		result[i] = s.name
	}
	return result
}
