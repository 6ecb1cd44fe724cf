package domain

import (
	"context"
	"time"
)

// Evaluation statuses. The first three are assigned by the classifier;
// the rest are manual HR stages set through the update endpoint.
const (
	EvaluationStatusPending            = "pending"
	EvaluationStatusShortlisted        = "shortlisted"
	EvaluationStatusRejected           = "rejected"
	EvaluationStatusInterviewScheduled = "interview_scheduled"
	EvaluationStatusOfferExtended      = "offer_extended"
	EvaluationStatusHired              = "hired"
)

// ValidEvaluationStatus reports whether s is a known evaluation status.
func ValidEvaluationStatus(s string) bool {
	switch s {
	case EvaluationStatusPending, EvaluationStatusShortlisted, EvaluationStatusRejected,
		EvaluationStatusInterviewScheduled, EvaluationStatusOfferExtended, EvaluationStatusHired:
		return true
	}
	return false
}

// MatchResult is the engine output for one (job, resume) pair before it is
// persisted. All scores live on [0,1]. SemanticScore is nil when no embedding
// signal was available and the overall score was renormalized over the
// remaining components.
type MatchResult struct {
	SkillMatch      float64  `json:"skill_match"`
	ExperienceMatch float64  `json:"experience_match"`
	SemanticScore   *float64 `json:"semantic_score,omitempty"`
	OverallScore    float64  `json:"overall_score"`
	MatchingSkills  []string `json:"matching_skills"`
	Status          string   `json:"status"`
}

// Evaluation is the persisted screening record for one (resume, job) pair.
// At most one row exists per pair; re-evaluation updates it in place.
type Evaluation struct {
	ID              int64     `json:"id"`
	ResumeID        int64     `json:"resume_id"`
	JobID           int64     `json:"job_id"`
	SkillMatch      float64   `json:"skill_match"`
	ExperienceMatch float64   `json:"experience_match"`
	SemanticScore   *float64  `json:"semantic_score,omitempty"`
	OverallScore    float64   `json:"overall_score"`
	MatchingSkills  []string  `json:"matching_skills"`
	Status          string    `json:"status"`
	Comments        *string   `json:"comments,omitempty"`
	EvaluationDate  time.Time `json:"evaluation_date"`
	LastUpdated     time.Time `json:"last_updated"`
	// Wall-clock cost of producing the record, scoring start to durable write.
	Duration *time.Duration `json:"evaluation_duration,omitempty"`
}

// RankedResult is one entry of a batch screening run, ordered by score.
type RankedResult struct {
	ResumeID    int64       `json:"resume_id"`
	ApplicantID int64       `json:"applicant_id"`
	Result      MatchResult `json:"result"`
}

type EvaluationRepository interface {
	// Upsert writes the match result for the pair, creating the row on first
	// write and overwriting scoring fields on re-evaluation. Implementations
	// must keep the (resume_id, job_id) uniqueness invariant under concurrent
	// callers. startedAt is when scoring began; the recorded duration runs
	// from there to the durable write.
	Upsert(ctx context.Context, resumeID, jobID int64, result *MatchResult, startedAt time.Time) (*Evaluation, error)
	GetByID(ctx context.Context, id int64) (*Evaluation, error)
	GetByPair(ctx context.Context, resumeID, jobID int64) (*Evaluation, error)
	FetchByJobID(ctx context.Context, jobID int64) ([]Evaluation, error)
	UpdateReview(ctx context.Context, id int64, status string, comments *string) error
	Delete(ctx context.Context, id int64) error
}

// ScreeningUsecase is the engine surface exposed to request handlers.
type ScreeningUsecase interface {
	// Evaluate scores one pair without persisting anything.
	Evaluate(ctx context.Context, job *Job, resume *Resume) (*MatchResult, error)
	// EvaluateAndStore scores one pair and upserts the evaluation record.
	EvaluateAndStore(ctx context.Context, jobID, resumeID int64) (*Evaluation, error)
	// EvaluateAll screens every resume submitted for the job, isolating
	// per-candidate failures, and returns results ranked by overall score.
	EvaluateAll(ctx context.Context, jobID int64) ([]RankedResult, error)
	ListEvaluations(ctx context.Context, jobID int64) ([]Evaluation, error)
	GetEvaluation(ctx context.Context, id int64) (*Evaluation, error)
	GetEvaluationByPair(ctx context.Context, jobID, resumeID int64) (*Evaluation, error)
	UpdateReview(ctx context.Context, id int64, status string, comments *string) (*Evaluation, error)
	DeleteEvaluation(ctx context.Context, id int64) error
}
