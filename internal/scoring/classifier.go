package scoring

import (
	"fmt"

	"go-screening-backend/internal/domain"
)

// Weights is the relative weighting of the three sub-scores. When the
// semantic signal is unavailable the remaining weights are renormalized
// proportionally, so only the ratios matter.
type Weights struct {
	Skill      float64
	Experience float64
	Semantic   float64
}

// DefaultWeights is the canonical 40/30/30 split.
func DefaultWeights() Weights {
	return Weights{Skill: 0.4, Experience: 0.3, Semantic: 0.3}
}

// Thresholds are the ordered status cut-offs applied to the overall score,
// on the normalized [0,1] scale.
type Thresholds struct {
	Shortlist float64 // score >= Shortlist → shortlisted
	Review    float64 // Review <= score < Shortlist → pending
}

// DefaultThresholds shortlists at 0.80 and holds for review at 0.60.
func DefaultThresholds() Thresholds {
	return Thresholds{Shortlist: 0.80, Review: 0.60}
}

// Classifier combines sub-scores into an overall score and maps it to an
// evaluation status. It is a pure function of its configuration and of which
// sub-scores are present.
type Classifier struct {
	weights    Weights
	thresholds Thresholds
}

func NewClassifier(w Weights, t Thresholds) (*Classifier, error) {
	if w.Skill < 0 || w.Experience < 0 || w.Semantic < 0 {
		return nil, fmt.Errorf("scoring weights must be non-negative, got %+v", w)
	}
	if w.Skill+w.Experience <= 0 {
		return nil, fmt.Errorf("skill and experience weights must not both be zero")
	}
	if t.Review < 0 || t.Shortlist > 1 || t.Review > t.Shortlist {
		return nil, fmt.Errorf("thresholds must satisfy 0 <= review <= shortlist <= 1, got %+v", t)
	}
	return &Classifier{weights: w, thresholds: t}, nil
}

// Combine computes the weighted overall score. A nil semantic score drops
// that component and renormalizes the remaining weights over their sum,
// preserving the skill:experience ratio. Inputs outside [0,1] are a caller
// defect and fail fast.
func (c *Classifier) Combine(skill, experience float64, semantic *float64) (float64, error) {
	if err := checkUnit("skill_match", skill); err != nil {
		return 0, err
	}
	if err := checkUnit("experience_match", experience); err != nil {
		return 0, err
	}
	sum := c.weights.Skill + c.weights.Experience
	total := skill*c.weights.Skill + experience*c.weights.Experience
	if semantic != nil {
		if err := checkUnit("semantic_score", *semantic); err != nil {
			return 0, err
		}
		sum += c.weights.Semantic
		total += *semantic * c.weights.Semantic
	}
	return total / sum, nil
}

// Status maps an overall score onto the evaluation status bands. The cascade
// is strict: the first matching band wins.
func (c *Classifier) Status(overall float64) (string, error) {
	if err := checkUnit("overall_score", overall); err != nil {
		return "", err
	}
	switch {
	case overall >= c.thresholds.Shortlist:
		return domain.EvaluationStatusShortlisted, nil
	case overall >= c.thresholds.Review:
		return domain.EvaluationStatusPending, nil
	default:
		return domain.EvaluationStatusRejected, nil
	}
}

func checkUnit(name string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%s out of range: %v is not within [0,1]", name, v)
	}
	return nil
}
