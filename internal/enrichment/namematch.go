package enrichment

import (
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// hostNameMatchThreshold is the minimum per-word similarity a
// normalized host-name token must clear against the podcast's own
// title/description text to count as plausible.
const hostNameMatchThreshold = 0.82

// nameTitlesAndSuffixes are stripped before matching, same as the
// name-matching utility this is ported from.
var nameTitlesAndSuffixes = map[string]bool{
	"dr": true, "prof": true, "mr": true, "mrs": true, "ms": true,
	"jr": true, "sr": true, "phd": true, "md": true, "iii": true, "iv": true,
}

var diacriticStripper = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeName folds a name to ASCII lowercase, strips punctuation and
// common titles/suffixes, and collapses whitespace, so that "Dr. Jane
// O'Brien" and "jane obrien" compare equal.
func normalizeName(name string) string {
	if name == "" {
		return ""
	}

	folded, _, err := transform.String(diacriticStripper, name)
	if err != nil {
		folded = name
	}

	folded = strings.ToLower(folded)

	var cleaned strings.Builder

	for _, r := range folded {
		switch r {
		case '.', ',', '!', '?', '"', '-':
			cleaned.WriteRune(' ')
		case '\'':
			continue
		default:
			cleaned.WriteRune(r)
		}
	}

	words := strings.Fields(cleaned.String())
	filtered := words[:0]

	for _, w := range words {
		if !nameTitlesAndSuffixes[w] {
			filtered = append(filtered, w)
		}
	}

	return strings.Join(filtered, " ")
}

// plausibleHostName reports whether hostName could genuinely belong to
// this podcast, by checking whether its substantial words show up,
// exactly or as a close fuzzy match, somewhere in the podcast's own
// title/description text. It guards EnrichedProfile.HostNames against
// an LLM inventing a name with no connection to the podcast context:
// a host discovery hint with no textual basis in the podcast's own
// metadata is dropped rather than trusted.
func plausibleHostName(hostName, context string) bool {
	nameWords := significantWords(normalizeName(hostName))
	if len(nameWords) == 0 {
		return false
	}

	contextWords := significantWords(normalizeName(context))
	if len(contextWords) == 0 {
		return false
	}

	for _, nw := range nameWords {
		if !bestWordMatch(nw, contextWords) {
			return false
		}
	}

	return true
}

// significantWords drops short filler tokens (initials, "the", "a")
// that are too short for fuzzy matching to mean anything.
func significantWords(normalized string) []string {
	if normalized == "" {
		return nil
	}

	words := strings.Fields(normalized)
	out := words[:0]

	for _, w := range words {
		if len(w) >= 3 {
			out = append(out, w)
		}
	}

	return out
}

// bestWordMatch reports whether word matches any candidate exactly or
// scores at least hostNameMatchThreshold under Levenshtein similarity.
func bestWordMatch(word string, candidates []string) bool {
	for _, c := range candidates {
		if word == c {
			return true
		}

		score, err := edlib.StringsSimilarity(word, c, edlib.Levenshtein)
		if err != nil {
			continue
		}

		if float64(score) >= hostNameMatchThreshold {
			return true
		}
	}

	return false
}
