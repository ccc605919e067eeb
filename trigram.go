package main

import "strings"

// trigramSet holds the overlapping 3-character windows of a lower-cased
// string. Strings shorter than 3 characters map to a singleton set; the
// empty string maps to the empty set.
type trigramSet map[string]struct{}

func trigrams(text string) trigramSet {
	runes := []rune(strings.ToLower(text))
	set := make(trigramSet)

	if len(runes) == 0 {
		return set
	}
	if len(runes) < 3 {
		set[string(runes)] = struct{}{}
		return set
	}

	for i := 0; i+3 <= len(runes); i++ {
		set[string(runes[i:i+3])] = struct{}{}
	}

	return set
}

// jaccard is |a ∩ b| / |a ∪ b|, with 0 for two empty sets so callers never
// divide by zero.
func jaccard(a, b trigramSet) float64 {
	var intersection int
	for t := range a {
		if _, ok := b[t]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}

// similarity scores two strings in [0, 1] by trigram overlap. It is
// symmetric, case-insensitive, and 1.0 only for equal trigram sets.
func similarity(a, b string) float64 {
	return jaccard(trigrams(a), trigrams(b))
}
