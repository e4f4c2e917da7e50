package postgres

import (
	"context"
	"errors"

	"go-talentmatch-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobRepo struct {
	db *pgxpool.Pool
}

// NewJobRepository creates a read-only job repository. Posting CRUD belongs
// to the job service; this subsystem only consumes jobs as matching targets.
func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

const selectJob = `
	SELECT id, employer_id, title, company, description,
	       required_skills, required_experience, required_education,
	       location, salary_min, salary_max, employment_type, status, created_at
	FROM jobs`

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := selectJob + ` WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetByIDForEmployer returns (nil, nil) both when the job does not exist and
// when it belongs to another employer, so ownership never leaks through the
// error shape.
func (r *jobRepo) GetByIDForEmployer(ctx context.Context, id, employerID string) (*domain.Job, error) {
	query := selectJob + ` WHERE id = $1 AND employer_id = $2`
	return r.scanOne(ctx, query, id, employerID)
}

func (r *jobRepo) ListByEmployer(ctx context.Context, employerID string) ([]domain.Job, error) {
	query := selectJob + ` WHERE employer_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, employerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var j domain.Job
		if err := rows.Scan(
			&j.ID, &j.EmployerID, &j.Title, &j.Company, &j.Description,
			pq.Array(&j.RequiredSkills), &j.RequiredExperience, &j.RequiredEducation,
			&j.Location, &j.SalaryMin, &j.SalaryMax, &j.EmploymentType, &j.Status, &j.CreatedAt,
		); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) scanOne(ctx context.Context, query string, args ...any) (*domain.Job, error) {
	var j domain.Job
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&j.ID, &j.EmployerID, &j.Title, &j.Company, &j.Description,
		pq.Array(&j.RequiredSkills), &j.RequiredExperience, &j.RequiredEducation,
		&j.Location, &j.SalaryMin, &j.SalaryMax, &j.EmploymentType, &j.Status, &j.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}
