package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"go-screening-backend/internal/domain"
	"go-screening-backend/internal/scoring"
	"go-screening-backend/pkg/apperror"
	"go-screening-backend/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type screeningUsecase struct {
	jobRepo     domain.JobRepository
	resumeRepo  domain.ResumeRepository
	evalRepo    domain.EvaluationRepository
	scorer      *scoring.Scorer
	concurrency int
}

// NewScreeningUsecase wires the matching engine. concurrency bounds how many
// candidates a batch run scores in parallel.
func NewScreeningUsecase(
	jobRepo domain.JobRepository,
	resumeRepo domain.ResumeRepository,
	evalRepo domain.EvaluationRepository,
	scorer *scoring.Scorer,
	concurrency int,
) domain.ScreeningUsecase {
	if concurrency < 1 {
		concurrency = 1
	}
	return &screeningUsecase{
		jobRepo:     jobRepo,
		resumeRepo:  resumeRepo,
		evalRepo:    evalRepo,
		scorer:      scorer,
		concurrency: concurrency,
	}
}

// Evaluate scores one pair without persisting anything.
func (uc *screeningUsecase) Evaluate(ctx context.Context, job *domain.Job, resume *domain.Resume) (*domain.MatchResult, error) {
	result, err := uc.scorer.Score(ctx, job, resume)
	if err != nil {
		return nil, apperror.Unprocessable("Cannot score candidate: "+err.Error(), err)
	}
	return result, nil
}

// EvaluateAndStore scores the pair and upserts the evaluation record. The
// recorded duration runs from scoring start to the durable write.
func (uc *screeningUsecase) EvaluateAndStore(ctx context.Context, jobID, resumeID int64) (*domain.Evaluation, error) {
	job, err := uc.loadScreenableJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	resume, err := uc.resumeRepo.GetByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Resume not found")
		}
		return nil, apperror.Internal(err)
	}

	return uc.scoreAndStore(ctx, job, resume)
}

// EvaluateAll screens every resume submitted for the job. Candidates are
// scored in parallel up to the concurrency limit; a failure on one candidate
// is logged and excluded, never aborting the rest. Results come back ranked
// by overall score descending, ties broken by resume id.
func (uc *screeningUsecase) EvaluateAll(ctx context.Context, jobID int64) ([]domain.RankedResult, error) {
	job, err := uc.loadScreenableJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	resumes, err := uc.resumeRepo.FetchByJobID(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	runID := uuid.NewString()
	logger.Log.Info("batch screening started",
		"run_id", runID, "job_id", jobID, "candidates", len(resumes))

	slots := make([]*domain.RankedResult, len(resumes))
	g := new(errgroup.Group)
	g.SetLimit(uc.concurrency)

	for i := range resumes {
		// Cooperative cancellation between candidates: work already
		// persisted stays valid, remaining candidates are skipped.
		if ctx.Err() != nil {
			break
		}
		i := i
		resume := resumes[i]
		g.Go(func() error {
			eval, err := uc.scoreAndStore(ctx, job, &resume)
			if err != nil {
				logger.Log.Error("screening failed for candidate, excluding from batch",
					"run_id", runID, "job_id", jobID,
					"resume_id", resume.ID, "applicant_id", resume.ApplicantID,
					"error", err)
				return nil
			}
			slots[i] = &domain.RankedResult{
				ResumeID:    resume.ID,
				ApplicantID: resume.ApplicantID,
				Result: domain.MatchResult{
					SkillMatch:      eval.SkillMatch,
					ExperienceMatch: eval.ExperienceMatch,
					SemanticScore:   eval.SemanticScore,
					OverallScore:    eval.OverallScore,
					MatchingSkills:  eval.MatchingSkills,
					Status:          eval.Status,
				},
			}
			return nil
		})
	}
	_ = g.Wait()

	results := make([]domain.RankedResult, 0, len(resumes))
	for _, slot := range slots {
		if slot != nil {
			results = append(results, *slot)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Result.OverallScore != results[j].Result.OverallScore {
			return results[i].Result.OverallScore > results[j].Result.OverallScore
		}
		return results[i].ResumeID < results[j].ResumeID
	})

	if ctx.Err() != nil {
		// Results already upserted stay valid; the remaining candidates were
		// simply never started.
		logger.Log.Warn("batch screening cancelled before completion",
			"run_id", runID, "job_id", jobID, "scored", len(results))
	}
	logger.Log.Info("batch screening finished",
		"run_id", runID, "job_id", jobID,
		"scored", len(results), "failed", len(resumes)-len(results))
	return results, nil
}

func (uc *screeningUsecase) ListEvaluations(ctx context.Context, jobID int64) ([]domain.Evaluation, error) {
	if _, err := uc.jobRepo.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	evals, err := uc.evalRepo.FetchByJobID(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return evals, nil
}

func (uc *screeningUsecase) GetEvaluation(ctx context.Context, id int64) (*domain.Evaluation, error) {
	eval, err := uc.evalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Evaluation not found")
		}
		return nil, apperror.Internal(err)
	}
	return eval, nil
}

// GetEvaluationByPair looks up the stored evaluation for one (job, resume)
// pair without triggering a re-score.
func (uc *screeningUsecase) GetEvaluationByPair(ctx context.Context, jobID, resumeID int64) (*domain.Evaluation, error) {
	eval, err := uc.evalRepo.GetByPair(ctx, resumeID, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Evaluation not found")
		}
		return nil, apperror.Internal(err)
	}
	return eval, nil
}

// UpdateReview applies a manual HR decision (interview scheduled, offer
// extended, hired, ...) without re-scoring.
func (uc *screeningUsecase) UpdateReview(ctx context.Context, id int64, status string, comments *string) (*domain.Evaluation, error) {
	if !domain.ValidEvaluationStatus(status) {
		return nil, apperror.BadRequest("Invalid evaluation status: " + status)
	}
	if err := uc.evalRepo.UpdateReview(ctx, id, status, comments); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Evaluation not found")
		}
		return nil, apperror.Internal(err)
	}
	return uc.GetEvaluation(ctx, id)
}

func (uc *screeningUsecase) DeleteEvaluation(ctx context.Context, id int64) error {
	if err := uc.evalRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Evaluation not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// loadScreenableJob fetches the job and rejects screening against jobs that
// are not open for evaluation.
func (uc *screeningUsecase) loadScreenableJob(ctx context.Context, jobID int64) (*domain.Job, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if job.Status != domain.JobStatusOpen {
		return nil, apperror.BadRequest("Job is not open for screening")
	}
	return job, nil
}

func (uc *screeningUsecase) scoreAndStore(ctx context.Context, job *domain.Job, resume *domain.Resume) (*domain.Evaluation, error) {
	started := time.Now()

	result, err := uc.scorer.Score(ctx, job, resume)
	if err != nil {
		return nil, apperror.Unprocessable("Cannot score candidate: "+err.Error(), err)
	}

	eval, err := uc.evalRepo.Upsert(ctx, resume.ID, job.ID, result, started)
	if err != nil {
		return nil, apperror.Transient("Evaluation could not be stored", err)
	}
	return eval, nil
}
