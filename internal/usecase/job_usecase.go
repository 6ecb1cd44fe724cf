package usecase

import (
	"context"
	"errors"

	"go-screening-backend/internal/domain"
	"go-screening-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type jobUsecase struct {
	jobRepo  domain.JobRepository
	validate *validator.Validate
}

// NewJobUsecase creates the job posting usecase
func NewJobUsecase(jobRepo domain.JobRepository, validate *validator.Validate) domain.JobUsecase {
	return &jobUsecase{jobRepo: jobRepo, validate: validate}
}

func (uc *jobUsecase) CreateJob(ctx context.Context, job *domain.Job) error {
	if err := uc.validate.Struct(job); err != nil {
		return apperror.BadRequest(err.Error())
	}
	if job.Status == "" {
		job.Status = domain.JobStatusDraft
	}
	if job.Status != domain.JobStatusDraft && job.Status != domain.JobStatusOpen {
		return apperror.BadRequest("New jobs must start as draft or open")
	}
	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (uc *jobUsecase) GetJobDetails(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (uc *jobUsecase) ListJobs(ctx context.Context, page, pageSize int) ([]domain.Job, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	jobs, total, err := uc.jobRepo.Fetch(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return jobs, total, nil
}

// TransitionStatus moves a job through its lifecycle. Closed jobs accept no
// field edits, only the transitions the lifecycle allows.
func (uc *jobUsecase) TransitionStatus(ctx context.Context, id int64, status string) (*domain.Job, error) {
	job, err := uc.GetJobDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(job.Status, status) {
		return nil, apperror.BadRequest("Cannot transition job from " + job.Status + " to " + status)
	}
	if err := uc.jobRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, apperror.Internal(err)
	}
	job.Status = status
	return job, nil
}

func (uc *jobUsecase) GetScreeningStats(ctx context.Context, id int64) (*domain.JobScreeningStats, error) {
	if _, err := uc.GetJobDetails(ctx, id); err != nil {
		return nil, err
	}
	stats, err := uc.jobRepo.ScreeningStats(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return stats, nil
}
