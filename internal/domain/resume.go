package domain

import (
	"context"
	"time"
)

// ParsedResume is the normalized output of the AI parsing service. Experience
// and education entries are flattened to plain strings at the client boundary
// regardless of the shape the service returned them in.
type ParsedResume struct {
	Skills     []string `json:"skills"`
	Experience []string `json:"experience"`
	Education  []string `json:"education"`
	Summary    string   `json:"summary,omitempty"`
}

// RecommendedJob is one entry of the AI-derived recommendation list.
type RecommendedJob struct {
	JobID string  `json:"jobId"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// AIAnalysis holds optional AI-derived insight attached to a resume.
type AIAnalysis struct {
	MatchScore      int              `json:"matchScore"`
	RecommendedJobs []RecommendedJob `json:"recommendedJobs"`
	SkillGaps       []string         `json:"skillGaps"`
}

// Resume is one parsed submission. A candidate may hold many; only the most
// recently uploaded one is consulted for matching and dashboard views.
type Resume struct {
	ID          string       `json:"id"`
	CandidateID string       `json:"candidate_id"`
	FileName    string       `json:"file_name"`
	StorageURL  string       `json:"storage_url"`
	StorageID   string       `json:"storage_id"`
	Parsed      ParsedResume `json:"parsed_data"`
	Analysis    *AIAnalysis  `json:"ai_analysis,omitempty"`
	UploadedAt  time.Time    `json:"uploaded_at"`
	ParsedAt    *time.Time   `json:"parsed_at,omitempty"`
}

type ResumeRepository interface {
	Create(ctx context.Context, resume *Resume) error
	// GetLatestByCandidateID returns (nil, nil) when the candidate has no resume.
	GetLatestByCandidateID(ctx context.Context, candidateID string) (*Resume, error)
	GetByID(ctx context.Context, id string) (*Resume, error)
}

// ResumeStore uploads a raw resume file to durable object storage. The local
// file is removed only after the upload is confirmed.
type ResumeStore interface {
	Upload(ctx context.Context, localPath, fileName string) (url, storageID string, err error)
}

// JobMatch is one entry of the external AI ranking response, passed through
// to the candidate-facing matches view.
type JobMatch struct {
	JobID          string   `json:"job_id"`
	JobTitle       string   `json:"job_title"`
	Company        string   `json:"company"`
	MatchScore     float64  `json:"match_score"`
	RequiredSkills []string `json:"required_skills,omitempty"`
	MatchingSkills []string `json:"matching_skills,omitempty"`
}

// ResumeParser is the external AI parsing service.
type ResumeParser interface {
	ParseResume(ctx context.Context, resumeURL string) (*ParsedResume, error)
	JobMatches(ctx context.Context, skills, experience []string) ([]JobMatch, error)
}

// UploadInput carries everything the ingestion pipeline needs for one upload.
// LocalPath points at the already-validated temporary copy of the file.
type UploadInput struct {
	UserID    string
	UserName  string
	UserEmail string
	AuthToken string
	LocalPath string
	FileName  string
}

// UploadResult is returned to the candidate after a successful ingestion.
type UploadResult struct {
	ResumeID string       `json:"resumeId"`
	Parsed   ParsedResume `json:"parsedData"`
}

type ResumeUsecase interface {
	Upload(ctx context.Context, in UploadInput) (*UploadResult, error)
}
