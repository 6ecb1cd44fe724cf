package domain

import (
	"context"
	"time"
)

// Resume is the parsed output of the document-parsing service for one
// candidate submission. The engine treats it as read-only input: text and
// structured fields may be missing or empty and must be tolerated.
type Resume struct {
	ID              int64     `json:"id"`
	ApplicantID     int64     `json:"applicant_id"`
	JobID           int64     `json:"job_id"`
	FileURL         string    `json:"file_url"`
	TextContent     string    `json:"text_content"`
	Skills          []string  `json:"skills"`           // candidate-declared or parser-extracted
	YearsExperience float64   `json:"years_experience"` // 0 when unknown
	UploadedAt      time.Time `json:"uploaded_at"`
}

type ResumeRepository interface {
	GetByID(ctx context.Context, id int64) (*Resume, error)
	FetchByJobID(ctx context.Context, jobID int64) ([]Resume, error)
}
