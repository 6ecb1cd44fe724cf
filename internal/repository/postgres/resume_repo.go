package postgres

import (
	"context"
	"errors"

	"go-screening-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type resumeRepo struct {
	db *pgxpool.Pool
}

func NewResumeRepository(db *pgxpool.Pool) domain.ResumeRepository {
	return &resumeRepo{db: db}
}

const resumeColumns = `
	id, applicant_id, job_id, file_url,
	COALESCE(text_content, ''), skills, COALESCE(years_experience, 0), uploaded_at`

func (r *resumeRepo) GetByID(ctx context.Context, id int64) (*domain.Resume, error) {
	query := `SELECT` + resumeColumns + ` FROM resumes WHERE id = $1`

	var res domain.Resume
	var skills []string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&res.ID, &res.ApplicantID, &res.JobID, &res.FileURL,
		&res.TextContent, pq.Array(&skills), &res.YearsExperience, &res.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	res.Skills = skills
	return &res, nil
}

// FetchByJobID returns every resume submitted against the job, oldest first.
func (r *resumeRepo) FetchByJobID(ctx context.Context, jobID int64) ([]domain.Resume, error) {
	query := `SELECT` + resumeColumns + ` FROM resumes WHERE job_id = $1 ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resumes []domain.Resume
	for rows.Next() {
		var res domain.Resume
		var skills []string
		if err := rows.Scan(
			&res.ID, &res.ApplicantID, &res.JobID, &res.FileURL,
			&res.TextContent, pq.Array(&skills), &res.YearsExperience, &res.UploadedAt,
		); err != nil {
			return nil, err
		}
		res.Skills = skills
		resumes = append(resumes, res)
	}
	return resumes, rows.Err()
}
