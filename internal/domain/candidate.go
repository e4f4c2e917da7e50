package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Placeholder values used when a candidate is created before the identity
// service could be consulted. Backfill replaces them on a later upload.
const (
	PlaceholderName  = "Unknown"
	PlaceholderEmail = "unknown@example.com"
)

// JobPreferences holds a candidate's stated search preferences.
type JobPreferences struct {
	JobTypes  []string `json:"job_types,omitempty"`
	Locations []string `json:"locations,omitempty"`
	SalaryMin int64    `json:"salary_min,omitempty"`
	SalaryMax int64    `json:"salary_max,omitempty"`
}

// Candidate is a job seeker's platform profile, distinct from the identity
// record owned by the auth service. Created lazily on first resume upload.
type Candidate struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Preferences JobPreferences `json:"preferences"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// CandidateWithSkills is the ranking read model: one row per candidate who has
// at least one resume, carrying the skills of the most recent one.
type CandidateWithSkills struct {
	CandidateID string
	Name        string
	Email       string
	ResumeID    string
	Skills      []string
}

type CandidateRepository interface {
	// GetByUserID returns (nil, nil) when no profile exists yet.
	GetByUserID(ctx context.Context, userID string) (*Candidate, error)
	GetByID(ctx context.Context, id string) (*Candidate, error)
	Create(ctx context.Context, candidate *Candidate) error
	Update(ctx context.Context, candidate *Candidate) error
	// Touch bumps updated_at after a resume was linked to the candidate.
	Touch(ctx context.Context, id string) error
	// ListWithLatestResume enumerates candidates in creation order; candidates
	// without any resume are omitted (they can never rank above zero).
	ListWithLatestResume(ctx context.Context) ([]CandidateWithSkills, error)
}

// IdentityProfile is the subset of the auth-service profile used for backfill.
type IdentityProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProfileProvider fetches the caller's identity profile with their own bearer
// token. A failure is an expected outcome the caller branches on, not a fault.
type ProfileProvider interface {
	Fetch(ctx context.Context, bearerToken string) (*IdentityProfile, error)
}

// Notification is a candidate-facing activity item.
type Notification struct {
	ID      int       `json:"id"`
	Message string    `json:"message"`
	Type    string    `json:"type"`
	Date    time.Time `json:"date"`
}

// CandidateDashboard aggregates the latest resume's parsed sections with the
// AI analysis attached to it.
type CandidateDashboard struct {
	Skills          []string         `json:"skills"`
	Experience      []string         `json:"experience"`
	Education       []string         `json:"education"`
	SkillGaps       []string         `json:"skillGaps"`
	MatchScore      int              `json:"matchScore"`
	RecommendedJobs []RecommendedJob `json:"recommendedJobs"`
}

type CandidateUsecase interface {
	GetMatches(ctx context.Context, userID string) ([]JobMatch, error)
	GetSkills(ctx context.Context, userID string) ([]string, error)
	GetDashboard(ctx context.Context, userID string) (*CandidateDashboard, error)
	GetNotifications(ctx context.Context, userID string) ([]Notification, error)
}
