package skills

import (
	"encoding/json"
	"fmt"
	"os"
)

// defaultVocabulary is the built-in controlled vocabulary of skill terms:
// programming languages, frameworks, platforms and methodologies. Multi-word
// terms are matched against bigram/trigram token windows.
var defaultVocabulary = []string{
	// languages
	"python", "java", "javascript", "typescript", "go", "golang", "ruby",
	"php", "c", "c++", "c#", "rust", "kotlin", "swift", "scala", "perl",
	"r", "matlab", "sql",
	// web / frontend
	"html", "css", "react", "angular", "vue", "svelte", "next.js", "jquery",
	"node.js", "express", "django", "flask", "spring", "rails", "laravel",
	"fastapi", "graphql", "rest",
	// data stores
	"mysql", "postgresql", "postgres", "mongodb", "redis", "elasticsearch",
	"cassandra", "sqlite", "oracle", "dynamodb", "kafka", "rabbitmq",
	// infra / cloud
	"docker", "kubernetes", "aws", "azure", "gcp", "terraform", "ansible",
	"jenkins", "git", "linux", "nginx", "ci/cd", "serverless", "lambda",
	// data / ml
	"machine learning", "deep learning", "artificial intelligence",
	"data science", "data analysis", "data engineering", "nlp",
	"natural language processing", "computer vision", "tensorflow",
	"pytorch", "pandas", "numpy", "scikit-learn", "spark", "hadoop",
	"tableau", "power bi", "etl",
	// practices
	"agile", "scrum", "kanban", "tdd", "devops", "microservices",
	"unit testing", "code review", "project management",
}

// Vocabulary is the set of canonical skill terms the dictionary matcher
// scans for. Terms are stored in canonical (lowercased, lemmatized) form;
// multi-word terms keep single spaces between words.
type Vocabulary struct {
	terms map[string]struct{}
	// longest term length in words, bounds the match window
	maxWords int
}

// NewVocabulary builds a vocabulary from raw terms, canonicalizing each one
// with the supplied normalizer function.
func NewVocabulary(terms []string, canonicalize func(string) string) *Vocabulary {
	v := &Vocabulary{terms: make(map[string]struct{}, len(terms)), maxWords: 1}
	for _, t := range terms {
		canon := canonicalize(t)
		if canon == "" {
			continue
		}
		v.terms[canon] = struct{}{}
		if n := wordCount(canon); n > v.maxWords {
			v.maxWords = n
		}
	}
	return v
}

// DefaultVocabulary returns the built-in skill vocabulary.
func DefaultVocabulary(canonicalize func(string) string) *Vocabulary {
	return NewVocabulary(defaultVocabulary, canonicalize)
}

// LoadVocabulary reads a JSON array of skill terms from path. Used to swap
// the controlled vocabulary without a code change.
func LoadVocabulary(path string, canonicalize func(string) string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary file: %w", err)
	}
	var terms []string
	if err := json.Unmarshal(data, &terms); err != nil {
		return nil, fmt.Errorf("parse vocabulary file %s: %w", path, err)
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("vocabulary file %s contains no terms", path)
	}
	return NewVocabulary(terms, canonicalize), nil
}

// Contains reports whether the canonical term is in the vocabulary.
func (v *Vocabulary) Contains(term string) bool {
	_, ok := v.terms[term]
	return ok
}

// MaxWords is the word length of the longest vocabulary term.
func (v *Vocabulary) MaxWords() int {
	if v.maxWords > 3 {
		return 3 // windows beyond trigrams are not scanned
	}
	return v.maxWords
}

// Len returns the number of vocabulary terms.
func (v *Vocabulary) Len() int { return len(v.terms) }

func wordCount(s string) int {
	n := 1
	for _, r := range s {
		if r == ' ' {
			n++
		}
	}
	return n
}
