// Package textproc turns raw free text into the canonical token stream the
// matching engine scores on.
package textproc

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/jdkato/prose/v2"
)

// Entity is a named entity recognized in the original (pre-strip) text.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"` // e.g. PERSON, GPE, QUANTITY
}

// Result carries the ordered normalized tokens plus the entities found in the
// source text. Entity surface forms are also appended to Tokens so downstream
// matching sees them.
type Result struct {
	Tokens   []string
	Entities []Entity
}

// JoinedText returns the token stream as a single space-separated string,
// the form fed to the embedding model.
func (r Result) JoinedText() string {
	return strings.Join(r.Tokens, " ")
}

// reQuantity finds numeric quantity spans such as "5 years" or "18+ months".
// Digits inside these spans survive the standalone-digit strip so experience
// signals are not lost.
var reQuantity = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*\+?\s*(years?|yrs?|months?)\b`)

var reSpaces = regexp.MustCompile(`\s+`)

// Normalizer converts raw UTF-8 text into normalized content-word tokens.
// It is stateless apart from its lemmatizer dictionary and safe for
// concurrent use.
type Normalizer struct {
	lemmatizer *golem.Lemmatizer
}

func NewNormalizer() (*Normalizer, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, err
	}
	return &Normalizer{lemmatizer: lem}, nil
}

// Normalize runs the full pipeline: lowercase, punctuation/standalone-digit
// strip, stopword removal, lemmatization, part-of-speech filtering to nouns,
// verbs and adjectives, then entity recognition over the original text with
// entity surface forms appended as extra tokens. Empty input yields an empty
// result, never an error; if tagging fails the normalizer degrades to plain
// token filtering without the part-of-speech and entity passes.
func (n *Normalizer) Normalize(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{}
	}

	keptDigits, quantityEntities := n.quantitySpans(text)

	doc, err := prose.NewDocument(text)
	if err != nil {
		return n.fallback(text, keptDigits, quantityEntities)
	}

	var tokens []string
	for _, tok := range doc.Tokens() {
		word := normalizeToken(tok.Text)
		if word == "" || isStopword(word) {
			continue
		}
		if isAllDigits(word) {
			if _, ok := keptDigits[word]; ok {
				tokens = append(tokens, word)
			}
			continue
		}
		if !contentTag(tok.Tag) {
			continue
		}
		tokens = append(tokens, n.lemma(word))
	}

	entities := quantityEntities
	for _, ent := range doc.Entities() {
		surface := reSpaces.ReplaceAllString(strings.ToLower(strings.TrimSpace(ent.Text)), " ")
		if surface == "" {
			continue
		}
		entities = append(entities, Entity{Text: surface, Label: ent.Label})
		tokens = append(tokens, surface)
	}
	for _, ent := range quantityEntities {
		tokens = append(tokens, ent.Text)
	}

	return Result{Tokens: tokens, Entities: entities}
}

// quantitySpans extracts numeric quantity entities and the digit strings that
// must survive the standalone-digit strip.
func (n *Normalizer) quantitySpans(text string) (map[string]struct{}, []Entity) {
	kept := map[string]struct{}{}
	var entities []Entity
	for _, m := range reQuantity.FindAllStringSubmatch(text, -1) {
		kept[m[1]] = struct{}{}
		surface := reSpaces.ReplaceAllString(strings.ToLower(strings.TrimSpace(m[0])), " ")
		entities = append(entities, Entity{Text: surface, Label: "QUANTITY"})
	}
	return kept, entities
}

// fallback normalizes without part-of-speech filtering or entity recognition.
func (n *Normalizer) fallback(text string, keptDigits map[string]struct{}, quantityEntities []Entity) Result {
	var tokens []string
	for _, raw := range strings.Fields(text) {
		word := normalizeToken(raw)
		if word == "" || isStopword(word) {
			continue
		}
		if isAllDigits(word) {
			if _, ok := keptDigits[word]; ok {
				tokens = append(tokens, word)
			}
			continue
		}
		tokens = append(tokens, n.lemma(word))
	}
	for _, ent := range quantityEntities {
		tokens = append(tokens, ent.Text)
	}
	return Result{Tokens: tokens, Entities: quantityEntities}
}

// lemma maps a token to its base form; unknown words pass through unchanged.
func (n *Normalizer) lemma(word string) string {
	return n.lemmatizer.Lemma(word)
}

// NormalizeSkillTerm canonicalizes a declared skill phrase: lowercase,
// collapse whitespace, lemmatize each alphabetic word. Used for
// candidate-declared and job-declared skill lists and for vocabulary entries.
func (n *Normalizer) NormalizeSkillTerm(term string) string {
	term = reSpaces.ReplaceAllString(strings.ToLower(strings.TrimSpace(term)), " ")
	if term == "" {
		return ""
	}
	words := strings.Split(term, " ")
	for i, w := range words {
		if isAlphabetic(w) {
			words[i] = n.lemma(w)
		}
	}
	return strings.Join(words, " ")
}

// contentTag reports whether a Penn Treebank tag is a noun, verb or
// adjective. Cardinal numbers are handled by the digit rules instead.
func contentTag(tag string) bool {
	return strings.HasPrefix(tag, "NN") ||
		strings.HasPrefix(tag, "VB") ||
		strings.HasPrefix(tag, "JJ")
}

// normalizeToken lowercases a token and trims surrounding punctuation while
// keeping characters that are meaningful inside skill names ("c++", "c#",
// "node.js").
func normalizeToken(raw string) string {
	word := strings.ToLower(strings.TrimSpace(raw))
	word = strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})
	// A token of only punctuation trims down to nothing.
	if word == "+" || word == "#" {
		return ""
	}
	return word
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' {
			return false
		}
	}
	return true
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}
