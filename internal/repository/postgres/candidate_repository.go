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

type candidateRepo struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepo{db: db}
}

func (r *candidateRepo) GetByUserID(ctx context.Context, userID string) (*domain.Candidate, error) {
	query := `
		SELECT id, user_id, name, email, preferences, created_at, updated_at
		FROM candidates
		WHERE user_id = $1`

	return r.scanOne(ctx, query, userID)
}

func (r *candidateRepo) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	query := `
		SELECT id, user_id, name, email, preferences, created_at, updated_at
		FROM candidates
		WHERE id = $1`

	return r.scanOne(ctx, query, id)
}

func (r *candidateRepo) scanOne(ctx context.Context, query string, arg any) (*domain.Candidate, error) {
	var c domain.Candidate
	var prefs []byte
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Email, &prefs, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &c.Preferences); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func (r *candidateRepo) Create(ctx context.Context, candidate *domain.Candidate) error {
	query := `
		INSERT INTO candidates (id, user_id, name, email, preferences, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if candidate.ID == "" {
		candidate.ID = uuid.NewString()
	}
	now := time.Now()
	candidate.CreatedAt = now
	candidate.UpdatedAt = now

	prefs, err := json.Marshal(candidate.Preferences)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, query,
		candidate.ID, candidate.UserID, candidate.Name, candidate.Email,
		prefs, candidate.CreatedAt, candidate.UpdatedAt,
	)
	return err
}

func (r *candidateRepo) Update(ctx context.Context, candidate *domain.Candidate) error {
	query := `
		UPDATE candidates
		SET name = $2, email = $3, preferences = $4, updated_at = $5
		WHERE id = $1`

	candidate.UpdatedAt = time.Now()
	prefs, err := json.Marshal(candidate.Preferences)
	if err != nil {
		return err
	}

	result, err := r.db.Exec(ctx, query,
		candidate.ID, candidate.Name, candidate.Email, prefs, candidate.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *candidateRepo) Touch(ctx context.Context, id string) error {
	query := `UPDATE candidates SET updated_at = $2 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListWithLatestResume returns every candidate who owns at least one resume,
// in creation order, with the skills of the most recently uploaded one. The
// lateral join makes older resumes invisible to ranking by construction.
func (r *candidateRepo) ListWithLatestResume(ctx context.Context) ([]domain.CandidateWithSkills, error) {
	query := `
		SELECT c.id, c.name, c.email, r.id, r.skills
		FROM candidates c
		JOIN LATERAL (
			SELECT id, skills
			FROM resumes
			WHERE candidate_id = c.id
			ORDER BY uploaded_at DESC
			LIMIT 1
		) r ON true
		ORDER BY c.created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CandidateWithSkills
	for rows.Next() {
		var c domain.CandidateWithSkills
		if err := rows.Scan(&c.CandidateID, &c.Name, &c.Email, &c.ResumeID, pq.Array(&c.Skills)); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
