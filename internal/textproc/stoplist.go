package textproc

// stopwords is the fixed function-word list removed during normalization:
// articles, conjunctions, prepositions, auxiliaries and a few high-frequency
// fillers that carry no matching signal.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {},
	"and": {}, "or": {}, "but": {}, "nor": {}, "so": {}, "yet": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {},
	"by": {}, "from": {}, "into": {}, "onto": {}, "over": {}, "under": {},
	"about": {}, "as": {}, "via": {}, "per": {}, "within": {}, "without": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "being": {},
	"am": {}, "do": {}, "does": {}, "did": {}, "have": {}, "has": {}, "had": {},
	"will": {}, "would": {}, "shall": {}, "should": {}, "can": {}, "could": {},
	"may": {}, "might": {}, "must": {},
	"this": {}, "that": {}, "these": {}, "those": {},
	"it": {}, "its": {}, "we": {}, "you": {}, "they": {}, "our": {}, "your": {},
	"their": {}, "i": {}, "he": {}, "she": {},
	"not": {}, "no": {}, "if": {}, "then": {}, "than": {}, "there": {},
	"etc": {}, "eg": {}, "ie": {},
}

func isStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}
