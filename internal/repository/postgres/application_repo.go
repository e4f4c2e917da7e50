package postgres

import (
	"context"
	"errors"
	"time"

	"go-talentmatch-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Upsert relies on the UNIQUE (job_id, candidate_id) index rather than a
// find-then-write sequence: the usecase's read is advisory only, so two
// concurrent shortlist/reject calls resolve to last-write-wins on a single
// row instead of racing into duplicates. On conflict the original resume_id
// and applied_at are kept; only status, notes and updated_at move.
func (r *applicationRepo) Upsert(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (
			id, job_id, candidate_id, resume_id, status,
			match_score, employer_notes, applied_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		ON CONFLICT (job_id, candidate_id) DO UPDATE
		SET status = EXCLUDED.status,
		    employer_notes = EXCLUDED.employer_notes,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, resume_id, applied_at, updated_at`

	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	now := time.Now()

	return r.db.QueryRow(ctx, query,
		app.ID, app.JobID, app.CandidateID, app.ResumeID, app.Status,
		app.MatchScore, app.EmployerNotes, now,
	).Scan(&app.ID, &app.ResumeID, &app.AppliedAt, &app.UpdatedAt)
}

func (r *applicationRepo) GetByJobAndCandidate(ctx context.Context, jobID, candidateID string) (*domain.Application, error) {
	query := `
		SELECT id, job_id, candidate_id, resume_id, status,
		       match_score, employer_notes, applied_at, updated_at
		FROM applications
		WHERE job_id = $1 AND candidate_id = $2`

	var app domain.Application
	err := r.db.QueryRow(ctx, query, jobID, candidateID).Scan(
		&app.ID, &app.JobID, &app.CandidateID, &app.ResumeID, &app.Status,
		&app.MatchScore, &app.EmployerNotes, &app.AppliedAt, &app.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// GetByJobID retrieves all applications for a job with joined candidate data
// and the skills of the resume the application was considered with.
func (r *applicationRepo) GetByJobID(ctx context.Context, jobID string) ([]domain.Application, error) {
	query := `
		SELECT a.id, a.job_id, a.candidate_id, a.resume_id, a.status,
		       a.match_score, a.employer_notes, a.applied_at, a.updated_at,
		       c.name, c.email, r.skills
		FROM applications a
		LEFT JOIN candidates c ON a.candidate_id = c.id
		LEFT JOIN resumes r ON a.resume_id = r.id
		WHERE a.job_id = $1
		ORDER BY a.applied_at DESC`

	return r.scanList(ctx, query, jobID)
}

// ListByEmployer retrieves applications across all of an employer's jobs,
// newest first, with job and candidate context joined in.
func (r *applicationRepo) ListByEmployer(ctx context.Context, employerID string) ([]domain.Application, error) {
	query := `
		SELECT a.id, a.job_id, a.candidate_id, a.resume_id, a.status,
		       a.match_score, a.employer_notes, a.applied_at, a.updated_at,
		       c.name, c.email, r.skills, j.title, j.company
		FROM applications a
		JOIN jobs j ON a.job_id = j.id
		LEFT JOIN candidates c ON a.candidate_id = c.id
		LEFT JOIN resumes r ON a.resume_id = r.id
		WHERE j.employer_id = $1
		ORDER BY a.applied_at DESC`

	rows, err := r.db.Query(ctx, query, employerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.CandidateID, &app.ResumeID, &app.Status,
			&app.MatchScore, &app.EmployerNotes, &app.AppliedAt, &app.UpdatedAt,
			&app.CandidateName, &app.CandidateEmail, pq.Array(&app.ResumeSkills),
			&app.JobTitle, &app.JobCompany,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

func (r *applicationRepo) scanList(ctx context.Context, query string, args ...any) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.CandidateID, &app.ResumeID, &app.Status,
			&app.MatchScore, &app.EmployerNotes, &app.AppliedAt, &app.UpdatedAt,
			&app.CandidateName, &app.CandidateEmail, pq.Array(&app.ResumeSkills),
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}
