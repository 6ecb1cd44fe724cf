// Package scoring computes the multi-signal match between a job and a
// candidate résumé and classifies the combined score.
package scoring

import (
	"context"
	"fmt"
	"math"

	"go-screening-backend/internal/domain"
	"go-screening-backend/internal/skills"
	"go-screening-backend/internal/textproc"
	"go-screening-backend/pkg/logger"
)

// Embedder produces a fixed-dimension vector for a text. Implementations may
// call out to a model-serving endpoint and must honor the context deadline.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Scorer runs the scoring pipeline for one (job, resume) pair. It holds no
// mutable state and is safe for concurrent use. The embedder is optional;
// without one the semantic signal is omitted and the classifier renormalizes.
type Scorer struct {
	normalizer *textproc.Normalizer
	extractor  *skills.Extractor
	embedder   Embedder
	classifier *Classifier
}

func NewScorer(normalizer *textproc.Normalizer, extractor *skills.Extractor, classifier *Classifier, embedder Embedder) *Scorer {
	return &Scorer{
		normalizer: normalizer,
		extractor:  extractor,
		embedder:   embedder,
		classifier: classifier,
	}
}

// Score produces the MatchResult for the pair. Malformed inputs (negative
// experience values) fail fast; missing or empty text and an unavailable
// embedding signal degrade per the fallback rules instead of failing.
func (s *Scorer) Score(ctx context.Context, job *domain.Job, resume *domain.Resume) (*domain.MatchResult, error) {
	if job == nil || resume == nil {
		return nil, fmt.Errorf("score: job and resume are required")
	}
	if job.ExperienceRequired < 0 {
		return nil, fmt.Errorf("score: job %d has negative experience requirement %v", job.ID, job.ExperienceRequired)
	}
	if resume.YearsExperience < 0 {
		return nil, fmt.Errorf("score: resume %d has negative years of experience %v", resume.ID, resume.YearsExperience)
	}

	jobNorm := s.normalizer.Normalize(job.Description)
	resumeNorm := s.normalizer.Normalize(resume.TextContent)

	jobSkills := s.extractor.ExtractFromTokens(jobNorm.Tokens)
	for _, declared := range job.RequiredSkills {
		if canon := s.normalizer.NormalizeSkillTerm(declared); canon != "" {
			jobSkills[canon] = struct{}{}
		}
	}
	candidateSkills := s.extractor.ExtractFromTokens(resumeNorm.Tokens)
	for _, declared := range resume.Skills {
		if canon := s.normalizer.NormalizeSkillTerm(declared); canon != "" {
			candidateSkills[canon] = struct{}{}
		}
	}

	matching := skills.Intersect(jobSkills, candidateSkills)
	skillMatch := 0.0
	if len(jobSkills) > 0 {
		skillMatch = float64(len(matching)) / float64(len(jobSkills))
	}

	experienceMatch := 1.0
	if job.ExperienceRequired > 0 {
		experienceMatch = math.Min(1, resume.YearsExperience/job.ExperienceRequired)
	}

	semantic := s.semanticScore(ctx, jobNorm.JoinedText(), resumeNorm.JoinedText(), job.ID, resume.ID)

	overall, err := s.classifier.Combine(skillMatch, experienceMatch, semantic)
	if err != nil {
		return nil, err
	}
	status, err := s.classifier.Status(overall)
	if err != nil {
		return nil, err
	}

	return &domain.MatchResult{
		SkillMatch:      skillMatch,
		ExperienceMatch: experienceMatch,
		SemanticScore:   semantic,
		OverallScore:    overall,
		MatchingSkills:  matching,
		Status:          status,
	}, nil
}

// semanticScore returns the rescaled cosine similarity of the two normalized
// texts, nil when no embedder is configured or the embedding call failed
// (timeout, unavailable endpoint). Two empty texts carry no signal and score
// zero rather than erroring.
func (s *Scorer) semanticScore(ctx context.Context, jobText, resumeText string, jobID, resumeID int64) *float64 {
	if s.embedder == nil {
		return nil
	}
	if jobText == "" && resumeText == "" {
		zero := 0.0
		return &zero
	}
	jobVec, err := s.embedder.Embed(ctx, jobText)
	if err != nil {
		logger.Log.Warn("embedding unavailable, degrading to skill+experience score",
			"job_id", jobID, "resume_id", resumeID, "error", err)
		return nil
	}
	resumeVec, err := s.embedder.Embed(ctx, resumeText)
	if err != nil {
		logger.Log.Warn("embedding unavailable, degrading to skill+experience score",
			"job_id", jobID, "resume_id", resumeID, "error", err)
		return nil
	}
	score := rescale(cosineSimilarity(jobVec, resumeVec))
	return &score
}

// cosineSimilarity returns the cosine of the angle between two vectors, or 0
// when either vector has zero norm or the dimensions disagree.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// rescale maps cosine similarity from [-1,1] onto [0,1], clamping float
// round-off at the edges.
func rescale(similarity float64) float64 {
	score := (similarity + 1) / 2
	return math.Max(0, math.Min(1, score))
}
