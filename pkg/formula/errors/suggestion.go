package errors

import (
	"fmt"
	"strings"
)

// SuggestName suggests a valid name when an unknown one is referenced.
// It uses Levenshtein distance to find the closest candidate.
func SuggestName(unknown string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}

	minDistance := 1000
	var bestMatch string

	for _, candidate := range candidates {
		dist := levenshteinDistance(strings.ToLower(unknown), strings.ToLower(candidate))
		if dist < minDistance {
			minDistance = dist
			bestMatch = candidate
		}
	}

	// Only suggest if the distance is reasonable relative to the name
	if minDistance <= maxSuggestDistance(unknown) {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}

	if len(candidates) > 5 {
		return fmt.Sprintf("Valid variables include: %s, ...", strings.Join(candidates[:5], ", "))
	}
	return fmt.Sprintf("Valid variables: %s", strings.Join(candidates, ", "))
}

// SuggestArity describes the expected call shape of a function.
func SuggestArity(name string, arity int) string {
	params := make([]string, arity)
	for i := range params {
		params[i] = fmt.Sprintf("arg%d", i+1)
	}
	return fmt.Sprintf("Call it as %s(%s)", name, strings.Join(params, ", "))
}

func maxSuggestDistance(name string) int {
	if len(name) <= 4 {
		return 1
	}
	if len(name) <= 8 {
		return 2
	}
	return 4
}

// levenshteinDistance computes the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}
