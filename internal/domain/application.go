package domain

import (
	"context"
	"time"
)

// Application status constants. "not_applied" is a derived state: it means no
// Application row exists for the (job, candidate) pair. "hired" is declared in
// the data model but no exposed transition reaches it; adding one is a product
// decision that has not been made.
const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusHired       = "hired"
	ApplicationStatusNotApplied  = "not_applied"
)

// Application tracks one candidate's standing against one job. At most one
// row exists per (job, candidate) pair, enforced by a unique index.
type Application struct {
	ID            string    `json:"id"`
	JobID         string    `json:"job_id"`
	CandidateID   string    `json:"candidate_id"`
	ResumeID      string    `json:"resume_id"`
	Status        string    `json:"status"`
	MatchScore    *int      `json:"match_score,omitempty"`
	EmployerNotes string    `json:"employer_notes,omitempty"`
	AppliedAt     time.Time `json:"applied_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Joined data for list responses
	JobTitle       *string  `json:"job_title,omitempty"`
	JobCompany     *string  `json:"job_company,omitempty"`
	CandidateName  *string  `json:"candidate_name,omitempty"`
	CandidateEmail *string  `json:"candidate_email,omitempty"`
	ResumeSkills   []string `json:"resume_skills,omitempty"`
}

type ApplicationRepository interface {
	// Upsert inserts the application or, when a row for (job_id, candidate_id)
	// already exists, overwrites status/notes/updated_at in place. The original
	// resume_id and applied_at survive a conflict. Concurrent calls resolve to
	// last-write-wins on a single surviving row.
	Upsert(ctx context.Context, app *Application) error
	// GetByJobAndCandidate returns (nil, nil) when no application exists.
	GetByJobAndCandidate(ctx context.Context, jobID, candidateID string) (*Application, error)
	GetByJobID(ctx context.Context, jobID string) ([]Application, error)
	ListByEmployer(ctx context.Context, employerID string) ([]Application, error)
}

// ApplicationActionRequest is the employer's shortlist/reject payload.
type ApplicationActionRequest struct {
	JobID string `json:"jobId" validate:"required,uuid4"`
	Notes string `json:"notes" validate:"max=2000"`
}

type ApplicationUsecase interface {
	Shortlist(ctx context.Context, employerID, candidateID string, req ApplicationActionRequest) (*Application, error)
	Reject(ctx context.Context, employerID, candidateID string, req ApplicationActionRequest) (*Application, error)
	ListForEmployer(ctx context.Context, employerID string) ([]Application, error)
	// ExportForEmployer renders the employer's applications as an XLSX file.
	ExportForEmployer(ctx context.Context, employerID string) ([]byte, string, error)
}

// RankedCandidate is one row of the employer-facing ranking for a job.
type RankedCandidate struct {
	CandidateID    string     `json:"candidateId"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	MatchScore     int        `json:"matchScore"`
	Skills         []string   `json:"skills"`
	MatchingSkills []string   `json:"matchingSkills"`
	Status         string     `json:"status"`
	ApplicationID  *string    `json:"applicationId"`
	AppliedAt      *time.Time `json:"appliedAt"`
}

// JobRanking is the full ranking response for one job.
type JobRanking struct {
	Job        JobSummary        `json:"job"`
	Candidates []RankedCandidate `json:"candidates"`
}

type RankingUsecase interface {
	RankCandidatesForJob(ctx context.Context, employerID, jobID string) (*JobRanking, error)
}
