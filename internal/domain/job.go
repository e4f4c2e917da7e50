package domain

import (
	"context"
	"time"
)

// Job status constants
const (
	JobStatusActive   = "active"
	JobStatusInactive = "inactive"
	JobStatusClosed   = "closed"
)

// Job is an employer's posting. Posting CRUD lives in another service; this
// subsystem only reads jobs as matching targets.
type Job struct {
	ID                 string    `json:"id"`
	EmployerID         string    `json:"employer_id"`
	Title              string    `json:"title"`
	Company            string    `json:"company"`
	Description        string    `json:"description"`
	RequiredSkills     []string  `json:"required_skills"`
	RequiredExperience string    `json:"required_experience"`
	RequiredEducation  string    `json:"required_education"`
	Location           string    `json:"location"`
	SalaryMin          float64   `json:"salary_min"`
	SalaryMax          float64   `json:"salary_max"`
	EmploymentType     string    `json:"employment_type"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
}

// JobSummary is the compact job header returned alongside rankings.
type JobSummary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Company string `json:"company"`
	Status  string `json:"status,omitempty"`
}

type JobRepository interface {
	GetByID(ctx context.Context, id string) (*Job, error)
	// GetByIDForEmployer returns (nil, nil) when the job does not exist OR is
	// not owned by the employer. Callers treat both identically so ownership
	// is never leaked through error shape.
	GetByIDForEmployer(ctx context.Context, id, employerID string) (*Job, error)
	ListByEmployer(ctx context.Context, employerID string) ([]Job, error)
}
