package repositories

import (
	"context"

	"recruitcrm/internal/models"

	"github.com/pkg/errors"
)

type CandidateRepository interface {
	Create(ctx context.Context, candidate *models.Candidate) error
	GetByID(ctx context.Context, id string) (*models.Candidate, error)
	Update(ctx context.Context, candidate *models.Candidate) error
	Delete(ctx context.Context, tenantID, id string) error
	List(ctx context.Context, tenantID string) ([]*models.Candidate, error)
}

const candidateColumns = `id, tenant_id, full_name, email, phone, position, location, experience_years, status, rating, notes, client, role, created_at, updated_at`

type candidateRepo struct {
	db DBTX
}

func NewCandidateRepository(db DBTX) CandidateRepository {
	return &candidateRepo{db: db}
}

func scanCandidate(row interface{ Scan(dest ...any) error }) (*models.Candidate, error) {
	c := &models.Candidate{}
	err := row.Scan(&c.ID, &c.TenantID, &c.FullName, &c.Email, &c.Phone, &c.Position, &c.Location, &c.ExperienceYears, &c.Status, &c.Rating, &c.Notes, &c.Client, &c.Role, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *candidateRepo) Create(ctx context.Context, candidate *models.Candidate) error {
	query := `
		INSERT INTO candidates (` + candidateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.Exec(ctx, query, candidate.ID, candidate.TenantID, candidate.FullName, candidate.Email, candidate.Phone, candidate.Position, candidate.Location, candidate.ExperienceYears, candidate.Status, candidate.Rating, candidate.Notes, candidate.Client, candidate.Role, candidate.CreatedAt, candidate.UpdatedAt)
	return errors.Wrap(err, "insert candidate")
}

func (r *candidateRepo) GetByID(ctx context.Context, id string) (*models.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	candidate, err := scanCandidate(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, errors.Wrap(notFoundOr(err), "get candidate")
	}
	return candidate, nil
}

func (r *candidateRepo) Update(ctx context.Context, candidate *models.Candidate) error {
	query := `
		UPDATE candidates
		SET full_name = $1, email = $2, phone = $3, position = $4, location = $5, experience_years = $6,
			status = $7, rating = $8, notes = $9, client = $10, role = $11, updated_at = $12
		WHERE tenant_id = $13 AND id = $14
	`
	tag, err := r.db.Exec(ctx, query, candidate.FullName, candidate.Email, candidate.Phone, candidate.Position, candidate.Location, candidate.ExperienceYears, candidate.Status, candidate.Rating, candidate.Notes, candidate.Client, candidate.Role, candidate.UpdatedAt, candidate.TenantID, candidate.ID)
	if err != nil {
		return errors.Wrap(err, "update candidate")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(ErrNotFound, "update candidate")
	}
	return nil
}

func (r *candidateRepo) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM candidates WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return errors.Wrap(err, "delete candidate")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(ErrNotFound, "delete candidate")
	}
	return nil
}

func (r *candidateRepo) List(ctx context.Context, tenantID string) ([]*models.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE tenant_id = $1 ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, errors.Wrap(err, "list candidates")
	}
	defer rows.Close()

	candidates := make([]*models.Candidate, 0)
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan candidate")
		}
		candidates = append(candidates, candidate)
	}
	return candidates, errors.Wrap(rows.Err(), "list candidates")
}
