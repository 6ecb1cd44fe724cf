package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	n, err := NewNormalizer()
	require.NoError(t, err)
	return n
}

func TestNormalizeEmptyInput(t *testing.T) {
	n := newTestNormalizer(t)

	t.Run("empty string yields empty result", func(t *testing.T) {
		res := n.Normalize("")
		assert.Empty(t, res.Tokens)
		assert.Empty(t, res.Entities)
	})

	t.Run("whitespace only yields empty result", func(t *testing.T) {
		res := n.Normalize(" \n\t  ")
		assert.Empty(t, res.Tokens)
	})
}

func TestNormalizePipeline(t *testing.T) {
	n := newTestNormalizer(t)
	res := n.Normalize("Senior Python Developer with 5 years of experience in Django and SQL.")

	t.Run("content words survive lowercased", func(t *testing.T) {
		assert.Contains(t, res.Tokens, "python")
		assert.Contains(t, res.Tokens, "developer")
		assert.Contains(t, res.Tokens, "django")
		assert.Contains(t, res.Tokens, "sql")
	})

	t.Run("stopwords and punctuation are removed", func(t *testing.T) {
		assert.NotContains(t, res.Tokens, "with")
		assert.NotContains(t, res.Tokens, "of")
		assert.NotContains(t, res.Tokens, "in")
		assert.NotContains(t, res.Tokens, "and")
		assert.NotContains(t, res.Tokens, ".")
	})

	t.Run("plural lemmatizes to base form", func(t *testing.T) {
		assert.Contains(t, res.Tokens, "year")
	})

	t.Run("digit inside a quantity span is preserved", func(t *testing.T) {
		assert.Contains(t, res.Tokens, "5")
	})

	t.Run("quantity span is reported as an entity", func(t *testing.T) {
		var labels []string
		var texts []string
		for _, e := range res.Entities {
			labels = append(labels, e.Label)
			texts = append(texts, e.Text)
		}
		assert.Contains(t, labels, "QUANTITY")
		assert.Contains(t, texts, "5 years")
	})
}

func TestNormalizeStandaloneDigitsDropped(t *testing.T) {
	n := newTestNormalizer(t)
	res := n.Normalize("Ranked 42 worldwide in the programming contest")
	assert.NotContains(t, res.Tokens, "42")
}

func TestNormalizeDeterminism(t *testing.T) {
	n := newTestNormalizer(t)
	text := "Backend engineer, 8 years experience. Go, PostgreSQL, Kubernetes at Acme Corp."
	first := n.Normalize(text)
	second := n.Normalize(text)
	assert.Equal(t, first.Tokens, second.Tokens)
	assert.Equal(t, first.Entities, second.Entities)
}

func TestNormalizeSkillTerm(t *testing.T) {
	n := newTestNormalizer(t)

	t.Run("lowercases and trims", func(t *testing.T) {
		assert.Equal(t, "python", n.NormalizeSkillTerm("  Python "))
	})

	t.Run("collapses internal whitespace", func(t *testing.T) {
		assert.Equal(t, n.NormalizeSkillTerm("machine learning"), n.NormalizeSkillTerm("Machine   Learning"))
	})

	t.Run("empty input stays empty", func(t *testing.T) {
		assert.Equal(t, "", n.NormalizeSkillTerm("   "))
	})

	t.Run("symbols in skill names survive", func(t *testing.T) {
		assert.Equal(t, "c++", n.NormalizeSkillTerm("C++"))
	})
}

func TestNormalizeTokenTrimming(t *testing.T) {
	assert.Equal(t, "python", normalizeToken("(Python)"))
	assert.Equal(t, "c#", normalizeToken("C#,"))
	assert.Equal(t, "node.js", normalizeToken("Node.js"))
	assert.Equal(t, "", normalizeToken("--"))
}
