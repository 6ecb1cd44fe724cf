package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-screening-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// upsertRetries bounds transparent retries on conflicting concurrent writes.
const upsertRetries = 3

type evaluationRepo struct {
	db *pgxpool.Pool
}

// NewEvaluationRepository creates the evaluation store adapter. The
// candidate_evaluations table carries a UNIQUE (resume_id, job_id)
// constraint; that constraint, not engine-level locking, is what guarantees
// at most one evaluation per pair.
func NewEvaluationRepository(db *pgxpool.Pool) domain.EvaluationRepository {
	return &evaluationRepo{db: db}
}

const evaluationColumns = `
	id, resume_id, job_id, skill_match, experience_match, semantic_score,
	overall_score, matching_skills, status, comments, evaluation_date,
	last_updated, evaluation_duration_ms`

// Upsert writes the scoring result for the pair. On conflict the existing row
// is overwritten in place: scoring fields, status, duration, and the
// last_updated timestamp. Comments are cleared since a re-score invalidates
// review notes taken against the previous score. Serialization conflicts are
// retried up to upsertRetries before surfacing as a transient error.
//
// The duration is recorded with a follow-up write so it covers the span from
// scoring start to the durable upsert, not just the scoring itself.
func (r *evaluationRepo) Upsert(ctx context.Context, resumeID, jobID int64, result *domain.MatchResult, startedAt time.Time) (*domain.Evaluation, error) {
	query := `
		INSERT INTO candidate_evaluations
			(resume_id, job_id, skill_match, experience_match, semantic_score,
			 overall_score, matching_skills, status, evaluation_date, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (resume_id, job_id) DO UPDATE SET
			skill_match      = EXCLUDED.skill_match,
			experience_match = EXCLUDED.experience_match,
			semantic_score   = EXCLUDED.semantic_score,
			overall_score    = EXCLUDED.overall_score,
			matching_skills  = EXCLUDED.matching_skills,
			status           = EXCLUDED.status,
			comments         = NULL,
			last_updated     = NOW()
		RETURNING` + evaluationColumns

	var eval *domain.Evaluation
	var lastErr error
	for attempt := 0; attempt <= upsertRetries; attempt++ {
		row := r.db.QueryRow(ctx, query,
			resumeID, jobID,
			result.SkillMatch, result.ExperienceMatch, result.SemanticScore,
			result.OverallScore, pq.Array(result.MatchingSkills), result.Status,
		)
		var err error
		eval, err = scanEvaluation(row)
		if err == nil {
			lastErr = nil
			break
		}
		if !isWriteConflict(err) {
			return nil, err
		}
		lastErr = err
	}
	if lastErr != nil {
		return nil, fmt.Errorf("evaluation upsert for resume %d job %d still conflicting after %d retries: %w",
			resumeID, jobID, upsertRetries, lastErr)
	}

	duration := time.Since(startedAt)
	if _, err := r.db.Exec(ctx,
		`UPDATE candidate_evaluations SET evaluation_duration_ms = $1 WHERE id = $2`,
		duration.Milliseconds(), eval.ID,
	); err != nil {
		return nil, err
	}
	eval.Duration = &duration
	return eval, nil
}

func (r *evaluationRepo) GetByID(ctx context.Context, id int64) (*domain.Evaluation, error) {
	query := `SELECT` + evaluationColumns + ` FROM candidate_evaluations WHERE id = $1`
	eval, err := scanEvaluation(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return eval, err
}

func (r *evaluationRepo) GetByPair(ctx context.Context, resumeID, jobID int64) (*domain.Evaluation, error) {
	query := `SELECT` + evaluationColumns + ` FROM candidate_evaluations WHERE resume_id = $1 AND job_id = $2`
	eval, err := scanEvaluation(r.db.QueryRow(ctx, query, resumeID, jobID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return eval, err
}

// FetchByJobID returns all evaluations for a job ranked by overall score,
// ties broken by resume id for a stable order.
func (r *evaluationRepo) FetchByJobID(ctx context.Context, jobID int64) ([]domain.Evaluation, error) {
	query := `SELECT` + evaluationColumns + `
		FROM candidate_evaluations
		WHERE job_id = $1
		ORDER BY overall_score DESC, resume_id ASC`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evals []domain.Evaluation
	for rows.Next() {
		eval, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		evals = append(evals, *eval)
	}
	return evals, rows.Err()
}

// UpdateReview sets the manual review fields without touching scores.
func (r *evaluationRepo) UpdateReview(ctx context.Context, id int64, status string, comments *string) error {
	query := `
		UPDATE candidate_evaluations
		SET status = $1, comments = $2, last_updated = NOW()
		WHERE id = $3`
	tag, err := r.db.Exec(ctx, query, status, comments, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *evaluationRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM candidate_evaluations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanEvaluation(row pgx.Row) (*domain.Evaluation, error) {
	var e domain.Evaluation
	var matchingSkills []string
	var durationMs *int64

	err := row.Scan(
		&e.ID, &e.ResumeID, &e.JobID, &e.SkillMatch, &e.ExperienceMatch,
		&e.SemanticScore, &e.OverallScore, pq.Array(&matchingSkills),
		&e.Status, &e.Comments, &e.EvaluationDate, &e.LastUpdated, &durationMs,
	)
	if err != nil {
		return nil, err
	}
	e.MatchingSkills = matchingSkills
	if durationMs != nil {
		d := time.Duration(*durationMs) * time.Millisecond
		e.Duration = &d
	}
	return &e, nil
}

// isWriteConflict reports whether the error is a transient write conflict
// worth retrying: serialization failure, deadlock, or a unique violation from
// a racing first insert.
func isWriteConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "40001", "40P01", "23505":
		return true
	}
	return false
}
