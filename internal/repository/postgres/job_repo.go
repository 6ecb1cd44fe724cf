package postgres

import (
	"context"
	"errors"

	"go-screening-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs (title, description, required_skills, experience_required, location, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		job.Title, job.Description, pq.Array(job.RequiredSkills),
		job.ExperienceRequired, job.Location, job.Status,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `
		SELECT id, title, description, required_skills, experience_required, location, status, created_at, updated_at
		FROM jobs WHERE id = $1`

	var j domain.Job
	var requiredSkills []string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&j.ID, &j.Title, &j.Description, pq.Array(&requiredSkills),
		&j.ExperienceRequired, &j.Location, &j.Status, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	j.RequiredSkills = requiredSkills
	return &j, nil
}

func (r *jobRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, title, description, required_skills, experience_required, location, status, created_at, updated_at
		FROM jobs ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var j domain.Job
		var requiredSkills []string
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Description, pq.Array(&requiredSkills),
			&j.ExperienceRequired, &j.Location, &j.Status, &j.CreatedAt, &j.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		j.RequiredSkills = requiredSkills
		jobs = append(jobs, j)
	}
	return jobs, total, rows.Err()
}

func (r *jobRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.db.Exec(ctx, `UPDATE jobs SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ScreeningStats aggregates evaluation outcomes for one job.
func (r *jobRepo) ScreeningStats(ctx context.Context, id int64) (*domain.JobScreeningStats, error) {
	stats := &domain.JobScreeningStats{
		JobID:              id,
		StatusDistribution: map[string]int64{},
	}

	query := `
		SELECT COUNT(*), COALESCE(AVG(overall_score), 0)
		FROM candidate_evaluations WHERE job_id = $1`
	if err := r.db.QueryRow(ctx, query, id).Scan(&stats.TotalEvaluations, &stats.AverageScore); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT status, COUNT(*) FROM candidate_evaluations WHERE job_id = $1 GROUP BY status`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.StatusDistribution[status] = count
	}
	return stats, rows.Err()
}
