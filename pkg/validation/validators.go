package validation

import (
	"github.com/go-playground/validator/v10"

	"go-screening-backend/internal/domain"
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("job_status", JobStatus)
	_ = v.RegisterValidation("evaluation_status", EvaluationStatus)
	_ = v.RegisterValidation("unit_score", UnitScore)
}

// JobStatus validates a job lifecycle status value
func JobStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case domain.JobStatusDraft, domain.JobStatusOpen, domain.JobStatusClosed, domain.JobStatusCancelled:
		return true
	}
	return false
}

// EvaluationStatus validates an evaluation status value
func EvaluationStatus(fl validator.FieldLevel) bool {
	return domain.ValidEvaluationStatus(fl.Field().String())
}

// UnitScore validates that a score sits on the normalized [0,1] scale
func UnitScore(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	return v >= 0 && v <= 1
}
