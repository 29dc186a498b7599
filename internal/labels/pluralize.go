// Package labels produces display labels for room types.
package labels

import "strings"

// Pluralize returns the display label for count rooms of the given type.
// Counts of one or less return the name unchanged. Otherwise only the
// final word of a compound name is pluralized, using ordered suffix
// rules: trailing "y" becomes "ies"; words ending in "ch", "sh", "s",
// "x" or "z" gain "es"; everything else gains "s". The suffix check is
// case-insensitive but the stem keeps its original casing.
//
// This is a fixed rule table, not a dictionary: irregular nouns would be
// mishandled, which is acceptable for the room-type vocabulary.
func Pluralize(name string, count int) string {
	if count <= 1 || name == "" {
		return name
	}

	words := strings.Split(name, " ")
	last := words[len(words)-1]
	words[len(words)-1] = pluralizeWord(last)
	return strings.Join(words, " ")
}

func pluralizeWord(word string) string {
	if word == "" {
		return word
	}

	lower := strings.ToLower(word)
	switch {
	case strings.HasSuffix(lower, "y"):
		return word[:len(word)-1] + "ies"
	case strings.HasSuffix(lower, "ch"),
		strings.HasSuffix(lower, "sh"),
		strings.HasSuffix(lower, "s"),
		strings.HasSuffix(lower, "x"),
		strings.HasSuffix(lower, "z"):
		return word + "es"
	default:
		return word + "s"
	}
}
