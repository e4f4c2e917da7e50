package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-talentmatch-backend/internal/domain"

	"github.com/google/uuid"
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

func (r *resumeRepo) Create(ctx context.Context, resume *domain.Resume) error {
	query := `
		INSERT INTO resumes (
			id, candidate_id, file_name, storage_url, storage_id,
			skills, experience, education, summary,
			ai_match_score, ai_recommended_jobs, ai_skill_gaps,
			uploaded_at, parsed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	if resume.ID == "" {
		resume.ID = uuid.NewString()
	}
	if resume.UploadedAt.IsZero() {
		resume.UploadedAt = time.Now()
	}

	var aiScore *int
	var aiJobs []byte
	var aiGaps []string
	if resume.Analysis != nil {
		aiScore = &resume.Analysis.MatchScore
		var err error
		aiJobs, err = json.Marshal(resume.Analysis.RecommendedJobs)
		if err != nil {
			return err
		}
		aiGaps = resume.Analysis.SkillGaps
	}

	_, err := r.db.Exec(ctx, query,
		resume.ID, resume.CandidateID, resume.FileName, resume.StorageURL, resume.StorageID,
		pq.Array(resume.Parsed.Skills), pq.Array(resume.Parsed.Experience),
		pq.Array(resume.Parsed.Education), resume.Parsed.Summary,
		aiScore, aiJobs, pq.Array(aiGaps),
		resume.UploadedAt, resume.ParsedAt,
	)
	return err
}

func (r *resumeRepo) GetLatestByCandidateID(ctx context.Context, candidateID string) (*domain.Resume, error) {
	query := selectResume + `
		WHERE candidate_id = $1
		ORDER BY uploaded_at DESC
		LIMIT 1`

	return r.scanOne(ctx, query, candidateID)
}

func (r *resumeRepo) GetByID(ctx context.Context, id string) (*domain.Resume, error) {
	query := selectResume + ` WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

const selectResume = `
	SELECT id, candidate_id, file_name, storage_url, storage_id,
	       skills, experience, education, summary,
	       ai_match_score, ai_recommended_jobs, ai_skill_gaps,
	       uploaded_at, parsed_at
	FROM resumes`

func (r *resumeRepo) scanOne(ctx context.Context, query string, arg any) (*domain.Resume, error) {
	var res domain.Resume
	var aiScore *int
	var aiJobs []byte
	var aiGaps []string

	err := r.db.QueryRow(ctx, query, arg).Scan(
		&res.ID, &res.CandidateID, &res.FileName, &res.StorageURL, &res.StorageID,
		pq.Array(&res.Parsed.Skills), pq.Array(&res.Parsed.Experience),
		pq.Array(&res.Parsed.Education), &res.Parsed.Summary,
		&aiScore, &aiJobs, pq.Array(&aiGaps),
		&res.UploadedAt, &res.ParsedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if aiScore != nil || len(aiJobs) > 0 || len(aiGaps) > 0 {
		analysis := &domain.AIAnalysis{SkillGaps: aiGaps}
		if aiScore != nil {
			analysis.MatchScore = *aiScore
		}
		if len(aiJobs) > 0 {
			if err := json.Unmarshal(aiJobs, &analysis.RecommendedJobs); err != nil {
				return nil, err
			}
		}
		res.Analysis = analysis
	}
	return &res, nil
}
