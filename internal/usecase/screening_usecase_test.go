package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"go-screening-backend/internal/domain"
	"go-screening-backend/internal/scoring"
	"go-screening-backend/internal/skills"
	"go-screening-backend/internal/textproc"
	"go-screening-backend/internal/usecase"
	"go-screening-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Repositories

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockJobRepo) ScreeningStats(ctx context.Context, id int64) (*domain.JobScreeningStats, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobScreeningStats), args.Error(1)
}

type MockResumeRepo struct {
	mock.Mock
}

func (m *MockResumeRepo) GetByID(ctx context.Context, id int64) (*domain.Resume, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resume), args.Error(1)
}

func (m *MockResumeRepo) FetchByJobID(ctx context.Context, jobID int64) ([]domain.Resume, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Resume), args.Error(1)
}

// MockEvaluationRepo echoes the upsert inputs back as a stored evaluation
// when configured with Return(nil, nil), mimicking the real adapter.
type MockEvaluationRepo struct {
	mock.Mock
}

func (m *MockEvaluationRepo) Upsert(ctx context.Context, resumeID, jobID int64, result *domain.MatchResult, startedAt time.Time) (*domain.Evaluation, error) {
	args := m.Called(ctx, resumeID, jobID, result, startedAt)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Evaluation), nil
	}
	duration := time.Since(startedAt)
	return &domain.Evaluation{
		ID:              resumeID, // deterministic fake id
		ResumeID:        resumeID,
		JobID:           jobID,
		SkillMatch:      result.SkillMatch,
		ExperienceMatch: result.ExperienceMatch,
		SemanticScore:   result.SemanticScore,
		OverallScore:    result.OverallScore,
		MatchingSkills:  result.MatchingSkills,
		Status:          result.Status,
		EvaluationDate:  time.Now(),
		LastUpdated:     time.Now(),
		Duration:        &duration,
	}, nil
}

func (m *MockEvaluationRepo) GetByID(ctx context.Context, id int64) (*domain.Evaluation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Evaluation), args.Error(1)
}

func (m *MockEvaluationRepo) GetByPair(ctx context.Context, resumeID, jobID int64) (*domain.Evaluation, error) {
	args := m.Called(ctx, resumeID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Evaluation), args.Error(1)
}

func (m *MockEvaluationRepo) FetchByJobID(ctx context.Context, jobID int64) ([]domain.Evaluation, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Evaluation), args.Error(1)
}

func (m *MockEvaluationRepo) UpdateReview(ctx context.Context, id int64, status string, comments *string) error {
	return m.Called(ctx, id, status, comments).Error(0)
}

func (m *MockEvaluationRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func newTestScorer(t *testing.T) *scoring.Scorer {
	t.Helper()
	n, err := textproc.NewNormalizer()
	require.NoError(t, err)
	classifier, err := scoring.NewClassifier(scoring.DefaultWeights(), scoring.DefaultThresholds())
	require.NoError(t, err)
	return scoring.NewScorer(n, skills.NewExtractor(skills.DefaultVocabulary(n.NormalizeSkillTerm), n), classifier, nil)
}

func openJob() *domain.Job {
	return &domain.Job{
		ID:                 10,
		Title:              "Backend Engineer",
		RequiredSkills:     []string{"python", "sql"},
		ExperienceRequired: 4,
		Status:             domain.JobStatusOpen,
	}
}

func TestEvaluateAndStore(t *testing.T) {
	jobRepo := new(MockJobRepo)
	resumeRepo := new(MockResumeRepo)
	evalRepo := new(MockEvaluationRepo)
	uc := usecase.NewScreeningUsecase(jobRepo, resumeRepo, evalRepo, newTestScorer(t), 2)

	job := openJob()
	resume := &domain.Resume{ID: 3, ApplicantID: 30, Skills: []string{"python", "sql"}, YearsExperience: 6}

	jobRepo.On("GetByID", mock.Anything, int64(10)).Return(job, nil)
	resumeRepo.On("GetByID", mock.Anything, int64(3)).Return(resume, nil)
	evalRepo.On("Upsert", mock.Anything, int64(3), int64(10), mock.Anything, mock.Anything).Return(nil, nil)

	t.Run("scores and stores the pair", func(t *testing.T) {
		eval, err := uc.EvaluateAndStore(context.Background(), 10, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(3), eval.ResumeID)
		assert.Equal(t, int64(10), eval.JobID)
		assert.InDelta(t, 1.0, eval.OverallScore, 1e-9)
		assert.Equal(t, domain.EvaluationStatusShortlisted, eval.Status)
		assert.NotNil(t, eval.Duration)
	})

	t.Run("re-evaluation upserts, never duplicates", func(t *testing.T) {
		first, err := uc.EvaluateAndStore(context.Background(), 10, 3)
		require.NoError(t, err)
		second, err := uc.EvaluateAndStore(context.Background(), 10, 3)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.OverallScore, second.OverallScore)
		evalRepo.AssertNumberOfCalls(t, "Upsert", 3)
	})
}

func TestEvaluateAndStoreErrors(t *testing.T) {
	t.Run("unknown job", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := usecase.NewScreeningUsecase(jobRepo, new(MockResumeRepo), new(MockEvaluationRepo), newTestScorer(t), 2)
		jobRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrNotFound)

		_, err := uc.EvaluateAndStore(context.Background(), 99, 1)
		assertAppError(t, err, http.StatusNotFound)
	})

	t.Run("job not open for screening", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := usecase.NewScreeningUsecase(jobRepo, new(MockResumeRepo), new(MockEvaluationRepo), newTestScorer(t), 2)
		closed := openJob()
		closed.Status = domain.JobStatusClosed
		jobRepo.On("GetByID", mock.Anything, int64(10)).Return(closed, nil)

		_, err := uc.EvaluateAndStore(context.Background(), 10, 1)
		assertAppError(t, err, http.StatusBadRequest)
	})

	t.Run("unknown resume", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		resumeRepo := new(MockResumeRepo)
		uc := usecase.NewScreeningUsecase(jobRepo, resumeRepo, new(MockEvaluationRepo), newTestScorer(t), 2)
		jobRepo.On("GetByID", mock.Anything, int64(10)).Return(openJob(), nil)
		resumeRepo.On("GetByID", mock.Anything, int64(7)).Return(nil, domain.ErrNotFound)

		_, err := uc.EvaluateAndStore(context.Background(), 10, 7)
		assertAppError(t, err, http.StatusNotFound)
	})

	t.Run("malformed resume is an input defect", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		resumeRepo := new(MockResumeRepo)
		uc := usecase.NewScreeningUsecase(jobRepo, resumeRepo, new(MockEvaluationRepo), newTestScorer(t), 2)
		jobRepo.On("GetByID", mock.Anything, int64(10)).Return(openJob(), nil)
		resumeRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Resume{ID: 7, YearsExperience: -1}, nil)

		_, err := uc.EvaluateAndStore(context.Background(), 10, 7)
		assertAppError(t, err, http.StatusUnprocessableEntity)
	})

	t.Run("store conflict exhaustion surfaces as transient", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		resumeRepo := new(MockResumeRepo)
		evalRepo := new(MockEvaluationRepo)
		uc := usecase.NewScreeningUsecase(jobRepo, resumeRepo, evalRepo, newTestScorer(t), 2)
		jobRepo.On("GetByID", mock.Anything, int64(10)).Return(openJob(), nil)
		resumeRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Resume{ID: 7}, nil)
		evalRepo.On("Upsert", mock.Anything, int64(7), int64(10), mock.Anything, mock.Anything).
			Return(nil, errors.New("still conflicting after retries"))

		_, err := uc.EvaluateAndStore(context.Background(), 10, 7)
		assertAppError(t, err, http.StatusServiceUnavailable)
	})
}

func TestEvaluateAllRanksAndIsolatesFailures(t *testing.T) {
	jobRepo := new(MockJobRepo)
	resumeRepo := new(MockResumeRepo)
	evalRepo := new(MockEvaluationRepo)
	uc := usecase.NewScreeningUsecase(jobRepo, resumeRepo, evalRepo, newTestScorer(t), 3)

	job := openJob()
	resumes := []domain.Resume{
		{ID: 1, ApplicantID: 100, Skills: []string{"python", "sql"}, YearsExperience: 6}, // 1.0
		{ID: 2, ApplicantID: 200, Skills: []string{"python"}, YearsExperience: 6},        // 5/7
		{ID: 3, ApplicantID: 300},                                                        // 0.0
		{ID: 4, ApplicantID: 400},                                                        // 0.0, tie with 3
		{ID: 5, ApplicantID: 500, YearsExperience: -1},                                   // malformed
	}

	jobRepo.On("GetByID", mock.Anything, int64(10)).Return(job, nil)
	resumeRepo.On("FetchByJobID", mock.Anything, int64(10)).Return(resumes, nil)
	evalRepo.On("Upsert", mock.Anything, mock.Anything, int64(10), mock.Anything, mock.Anything).Return(nil, nil)

	results, err := uc.EvaluateAll(context.Background(), 10)
	require.NoError(t, err)

	t.Run("malformed candidate is excluded, batch continues", func(t *testing.T) {
		require.Len(t, results, 4)
		for _, r := range results {
			assert.NotEqual(t, int64(5), r.ResumeID)
		}
	})

	t.Run("results are ranked by score, ties by resume id", func(t *testing.T) {
		ids := []int64{results[0].ResumeID, results[1].ResumeID, results[2].ResumeID, results[3].ResumeID}
		assert.Equal(t, []int64{1, 2, 3, 4}, ids)
		assert.InDelta(t, 1.0, results[0].Result.OverallScore, 1e-9)
		assert.InDelta(t, 0.5*4.0/7.0+3.0/7.0, results[1].Result.OverallScore, 1e-9)
		assert.Zero(t, results[2].Result.OverallScore)
		assert.Zero(t, results[3].Result.OverallScore)
	})

	t.Run("every scored candidate was upserted", func(t *testing.T) {
		evalRepo.AssertNumberOfCalls(t, "Upsert", 4)
	})
}

func TestEvaluateAllEmptyAndCancelled(t *testing.T) {
	t.Run("no resumes yields empty result set", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		resumeRepo := new(MockResumeRepo)
		uc := usecase.NewScreeningUsecase(jobRepo, resumeRepo, new(MockEvaluationRepo), newTestScorer(t), 2)
		jobRepo.On("GetByID", mock.Anything, int64(10)).Return(openJob(), nil)
		resumeRepo.On("FetchByJobID", mock.Anything, int64(10)).Return([]domain.Resume{}, nil)

		results, err := uc.EvaluateAll(context.Background(), 10)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("cancelled context skips remaining candidates without error", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		resumeRepo := new(MockResumeRepo)
		evalRepo := new(MockEvaluationRepo)
		uc := usecase.NewScreeningUsecase(jobRepo, resumeRepo, evalRepo, newTestScorer(t), 1)
		jobRepo.On("GetByID", mock.Anything, int64(10)).Return(openJob(), nil)
		resumeRepo.On("FetchByJobID", mock.Anything, int64(10)).Return([]domain.Resume{{ID: 1}, {ID: 2}}, nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		results, err := uc.EvaluateAll(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, results)
		evalRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEvaluatePure(t *testing.T) {
	uc := usecase.NewScreeningUsecase(new(MockJobRepo), new(MockResumeRepo), new(MockEvaluationRepo), newTestScorer(t), 2)

	job := openJob()
	resume := &domain.Resume{ID: 1, Skills: []string{"python", "java"}, YearsExperience: 2}

	result, err := uc.Evaluate(context.Background(), job, resume)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, result.OverallScore, 1e-9)
	assert.Equal(t, domain.EvaluationStatusRejected, result.Status)
}

func TestGetEvaluationByPair(t *testing.T) {
	evalRepo := new(MockEvaluationRepo)
	uc := usecase.NewScreeningUsecase(new(MockJobRepo), new(MockResumeRepo), evalRepo, newTestScorer(t), 2)

	evalRepo.On("GetByPair", mock.Anything, int64(3), int64(10)).Return(&domain.Evaluation{ID: 8, ResumeID: 3, JobID: 10}, nil)
	eval, err := uc.GetEvaluationByPair(context.Background(), 10, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(8), eval.ID)

	evalRepo.On("GetByPair", mock.Anything, int64(4), int64(10)).Return(nil, domain.ErrNotFound)
	_, err = uc.GetEvaluationByPair(context.Background(), 10, 4)
	assertAppError(t, err, http.StatusNotFound)
}

func TestUpdateReview(t *testing.T) {
	t.Run("rejects unknown status", func(t *testing.T) {
		uc := usecase.NewScreeningUsecase(new(MockJobRepo), new(MockResumeRepo), new(MockEvaluationRepo), newTestScorer(t), 2)
		_, err := uc.UpdateReview(context.Background(), 1, "promoted", nil)
		assertAppError(t, err, http.StatusBadRequest)
	})

	t.Run("applies manual decision", func(t *testing.T) {
		evalRepo := new(MockEvaluationRepo)
		uc := usecase.NewScreeningUsecase(new(MockJobRepo), new(MockResumeRepo), evalRepo, newTestScorer(t), 2)

		comments := "strong systems background"
		evalRepo.On("UpdateReview", mock.Anything, int64(5), domain.EvaluationStatusInterviewScheduled, &comments).Return(nil)
		evalRepo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Evaluation{
			ID: 5, Status: domain.EvaluationStatusInterviewScheduled, Comments: &comments,
		}, nil)

		eval, err := uc.UpdateReview(context.Background(), 5, domain.EvaluationStatusInterviewScheduled, &comments)
		require.NoError(t, err)
		assert.Equal(t, domain.EvaluationStatusInterviewScheduled, eval.Status)
	})

	t.Run("missing evaluation", func(t *testing.T) {
		evalRepo := new(MockEvaluationRepo)
		uc := usecase.NewScreeningUsecase(new(MockJobRepo), new(MockResumeRepo), evalRepo, newTestScorer(t), 2)
		evalRepo.On("UpdateReview", mock.Anything, int64(5), domain.EvaluationStatusHired, (*string)(nil)).Return(domain.ErrNotFound)

		_, err := uc.UpdateReview(context.Background(), 5, domain.EvaluationStatusHired, nil)
		assertAppError(t, err, http.StatusNotFound)
	})
}

func TestDeleteEvaluation(t *testing.T) {
	evalRepo := new(MockEvaluationRepo)
	uc := usecase.NewScreeningUsecase(new(MockJobRepo), new(MockResumeRepo), evalRepo, newTestScorer(t), 2)

	evalRepo.On("Delete", mock.Anything, int64(4)).Return(nil)
	assert.NoError(t, uc.DeleteEvaluation(context.Background(), 4))

	evalRepo.On("Delete", mock.Anything, int64(5)).Return(domain.ErrNotFound)
	assertAppError(t, uc.DeleteEvaluation(context.Background(), 5), http.StatusNotFound)
}

func assertAppError(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}
