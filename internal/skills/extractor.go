// Package skills maps normalized text and declared skill lists to canonical
// skill token sets.
package skills

import (
	"sort"
	"strings"

	"go-screening-backend/internal/textproc"
)

// Extractor resolves skill tokens from two independent sources: dictionary
// matching over normalized text and normalization of explicitly declared
// skill lists. Both are unioned into one deduplicated set.
type Extractor struct {
	vocab      *Vocabulary
	normalizer *textproc.Normalizer
}

func NewExtractor(vocab *Vocabulary, normalizer *textproc.Normalizer) *Extractor {
	return &Extractor{vocab: vocab, normalizer: normalizer}
}

// Extract returns the canonical skill set for the given free text and
// declared skill list. Either input may be empty. Identical input always
// yields an identical set.
func (e *Extractor) Extract(text string, declared []string) map[string]struct{} {
	found := make(map[string]struct{})
	e.matchTokens(e.normalizer.Normalize(text).Tokens, found)
	for _, skill := range declared {
		if canon := e.normalizer.NormalizeSkillTerm(skill); canon != "" {
			found[canon] = struct{}{}
		}
	}
	return found
}

// ExtractFromTokens runs only the dictionary pass over an already-normalized
// token stream.
func (e *Extractor) ExtractFromTokens(tokens []string) map[string]struct{} {
	found := make(map[string]struct{})
	e.matchTokens(tokens, found)
	return found
}

// matchTokens scans unigram, bigram and trigram windows against the
// vocabulary. Matches require whole-token boundaries: "java" never matches
// inside "javascript", the multi-word term itself has to be present.
func (e *Extractor) matchTokens(tokens []string, found map[string]struct{}) {
	maxWords := e.vocab.MaxWords()
	for i := range tokens {
		for n := 1; n <= maxWords && i+n <= len(tokens); n++ {
			window := strings.Join(tokens[i:i+n], " ")
			if e.vocab.Contains(window) {
				found[window] = struct{}{}
			}
		}
	}
}

// Intersect returns the sorted intersection of two skill sets, the
// matching_skills field of a result.
func Intersect(a, b map[string]struct{}) []string {
	var out []string
	for skill := range a {
		if _, ok := b[skill]; ok {
			out = append(out, skill)
		}
	}
	sort.Strings(out)
	return out
}
