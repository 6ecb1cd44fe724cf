package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Job lifecycle statuses
const (
	JobStatusDraft     = "draft"
	JobStatusOpen      = "open"
	JobStatusClosed    = "closed"
	JobStatusCancelled = "cancelled"
)

// Job is a posted position with its screening requirements.
type Job struct {
	ID                 int64     `json:"id"`
	Title              string    `json:"title" validate:"required"`
	Description        string    `json:"description" validate:"required"`
	RequiredSkills     []string  `json:"required_skills"`
	ExperienceRequired float64   `json:"experience_required" validate:"gte=0"`
	Location           *string   `json:"location,omitempty"`
	Status             string    `json:"status" validate:"omitempty,job_status"` // draft → open → closed / cancelled
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// allowedStatusTransitions maps a job status to the statuses it may move to.
// Closed jobs can be reopened; cancelled jobs are terminal.
var allowedStatusTransitions = map[string][]string{
	JobStatusDraft:  {JobStatusOpen, JobStatusCancelled},
	JobStatusOpen:   {JobStatusClosed, JobStatusCancelled},
	JobStatusClosed: {JobStatusOpen},
}

// CanTransition reports whether a job status change is allowed.
func CanTransition(from, to string) bool {
	for _, allowed := range allowedStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// JobScreeningStats aggregates evaluation results for one job.
type JobScreeningStats struct {
	JobID              int64            `json:"job_id"`
	TotalEvaluations   int64            `json:"total_evaluations"`
	AverageScore       float64          `json:"average_score"`
	StatusDistribution map[string]int64 `json:"status_distribution"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	Fetch(ctx context.Context, limit, offset int) ([]Job, int64, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	ScreeningStats(ctx context.Context, id int64) (*JobScreeningStats, error)
}

type JobUsecase interface {
	CreateJob(ctx context.Context, job *Job) error
	GetJobDetails(ctx context.Context, id int64) (*Job, error)
	ListJobs(ctx context.Context, page, pageSize int) ([]Job, int64, error)
	TransitionStatus(ctx context.Context, id int64, status string) (*Job, error)
	GetScreeningStats(ctx context.Context, id int64) (*JobScreeningStats, error)
}
