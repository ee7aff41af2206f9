package store

import (
	"math/rand/v2"
	"strconv"
)

var words = [...]string{
	"apple", "baker", "candy", "delta", "eagle", "fable", "grain", "haven",
	"ivory", "jolly", "knack", "lemon", "maple", "noble", "olive", "pearl",
	"quilt", "rider", "spice", "thorn", "unity", "vivid", "waltz", "yacht",
	"blaze", "charm", "drift", "ember", "frost", "gleam", "haste", "inlet",
	"jewel", "karma", "lilac", "mirth", "nexus", "orbit", "plume", "quest",
	"reign", "surge", "trail", "urban", "valor", "woven", "zesty", "amber",
	"brisk", "crest", "denim", "elbow", "flint", "grove", "heron", "index",
	"juicy", "kneel", "lunar", "mossy", "novel", "oasis", "prism", "quota",
	"roost", "slate", "tunic", "ultra", "vault", "whirl", "xenon", "yield",
	"acorn", "bloom", "coral", "dwarf", "epoch", "flora", "glyph", "humid",
	"irony", "jaunt", "kiosk", "latch", "moose", "niche", "oxide", "pixel",
	"raven", "scout", "tempo", "usher", "vibes", "witch", "azure", "brine",
	"crisp", "dusty", "elfin", "fugue", "gusto", "hippo", "icing", "jelly",
}

// plainAttempts is how many bare words NewSlug hands out for one game
// before it starts adding a numeric suffix.
const plainAttempts = 8

// NewSlug picks a slug for the attempt-th try at creating a game. Early
// attempts are bare words; later ones get a suffix so a crowded store
// still yields a free slug.
func NewSlug(r *rand.Rand, attempt int) string {
	word := words[r.IntN(len(words))]
	if attempt < plainAttempts {
		return word
	}
	return word + "-" + strconv.Itoa(r.IntN(10000))
}

func IsSlug(s string) bool {
	if len(s) == 0 || len(s) > 32 {
		return false
	}
	for _, c := range s {
		if !('a' <= c && c <= 'z' || '0' <= c && c <= '9' || c == '-') {
			return false
		}
	}
	return true
}
