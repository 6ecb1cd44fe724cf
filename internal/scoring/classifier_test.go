package scoring

import (
	"testing"

	"go-screening-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := NewClassifier(DefaultWeights(), DefaultThresholds())
	require.NoError(t, err)
	return c
}

func TestNewClassifierValidation(t *testing.T) {
	t.Run("negative weight rejected", func(t *testing.T) {
		_, err := NewClassifier(Weights{Skill: -0.1, Experience: 0.5, Semantic: 0.5}, DefaultThresholds())
		assert.Error(t, err)
	})

	t.Run("zero skill and experience weights rejected", func(t *testing.T) {
		_, err := NewClassifier(Weights{Semantic: 1}, DefaultThresholds())
		assert.Error(t, err)
	})

	t.Run("inverted thresholds rejected", func(t *testing.T) {
		_, err := NewClassifier(DefaultWeights(), Thresholds{Shortlist: 0.5, Review: 0.7})
		assert.Error(t, err)
	})
}

func TestCombineAllComponents(t *testing.T) {
	c := newDefaultClassifier(t)

	semantic := 1.0
	score, err := c.Combine(1, 1, &semantic)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-9)

	semantic = 0.0
	score, err = c.Combine(0.5, 0.5, &semantic)
	require.NoError(t, err)
	// 0.5*0.4 + 0.5*0.3 + 0*0.3
	assert.InDelta(t, 0.35, score, 1e-9)
}

func TestCombineRenormalizesWithoutSemantic(t *testing.T) {
	c := newDefaultClassifier(t)

	t.Run("skill weight renormalizes to 4/7", func(t *testing.T) {
		score, err := c.Combine(1, 0, nil)
		require.NoError(t, err)
		assert.InDelta(t, 4.0/7.0, score, 1e-9)
	})

	t.Run("experience weight renormalizes to 3/7", func(t *testing.T) {
		score, err := c.Combine(0, 1, nil)
		require.NoError(t, err)
		assert.InDelta(t, 3.0/7.0, score, 1e-9)
	})

	t.Run("equal sub-scores are invariant under renormalization", func(t *testing.T) {
		score, err := c.Combine(0.5, 0.5, nil)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, score, 1e-9)
	})
}

func TestCombineFailsFastOnOutOfRange(t *testing.T) {
	c := newDefaultClassifier(t)

	_, err := c.Combine(1.2, 0.5, nil)
	assert.Error(t, err)

	_, err = c.Combine(0.5, -0.1, nil)
	assert.Error(t, err)

	bad := 1.5
	_, err = c.Combine(0.5, 0.5, &bad)
	assert.Error(t, err)
}

func TestStatusBands(t *testing.T) {
	c := newDefaultClassifier(t)

	cases := []struct {
		name  string
		score float64
		want  string
	}{
		{"exactly at shortlist boundary", 0.80, domain.EvaluationStatusShortlisted},
		{"just below shortlist boundary", 0.79999, domain.EvaluationStatusPending},
		{"top of scale", 1.0, domain.EvaluationStatusShortlisted},
		{"exactly at review boundary", 0.60, domain.EvaluationStatusPending},
		{"just below review boundary", 0.59999, domain.EvaluationStatusRejected},
		{"bottom of scale", 0.0, domain.EvaluationStatusRejected},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, err := c.Status(tc.score)
			require.NoError(t, err)
			assert.Equal(t, tc.want, status)
		})
	}
}

func TestStatusFailsFastOnOutOfRange(t *testing.T) {
	c := newDefaultClassifier(t)

	_, err := c.Status(1.01)
	assert.Error(t, err)

	_, err = c.Status(-0.01)
	assert.Error(t, err)
}

func TestCustomThresholds(t *testing.T) {
	c, err := NewClassifier(DefaultWeights(), Thresholds{Shortlist: 0.7, Review: 0.5})
	require.NoError(t, err)

	status, err := c.Status(0.7)
	require.NoError(t, err)
	assert.Equal(t, domain.EvaluationStatusShortlisted, status)

	status, err = c.Status(0.55)
	require.NoError(t, err)
	assert.Equal(t, domain.EvaluationStatusPending, status)
}
