package repositories

import (
	"context"

	"recruitcrm/internal/models"

	"github.com/pkg/errors"
)

// SheetCandidateRepository stores rows of the per-(client, job) candidate sheets
type SheetCandidateRepository interface {
	Create(ctx context.Context, row *models.SheetCandidate) error
	GetByID(ctx context.Context, id string) (*models.SheetCandidate, error)
	Update(ctx context.Context, row *models.SheetCandidate) error
	ListBySheet(ctx context.Context, tenantID, clientName, jobTitle string) ([]*models.SheetCandidate, error)
}

const sheetCandidateColumns = `id, tenant_id, candidate_name, email, status, client_name, job_title, sheet_name, created_at, updated_at`

type sheetCandidateRepo struct {
	db DBTX
}

func NewSheetCandidateRepository(db DBTX) SheetCandidateRepository {
	return &sheetCandidateRepo{db: db}
}

func scanSheetCandidate(row interface{ Scan(dest ...any) error }) (*models.SheetCandidate, error) {
	s := &models.SheetCandidate{}
	err := row.Scan(&s.ID, &s.TenantID, &s.CandidateName, &s.Email, &s.Status, &s.ClientName, &s.JobTitle, &s.SheetName, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *sheetCandidateRepo) Create(ctx context.Context, row *models.SheetCandidate) error {
	query := `
		INSERT INTO candidate_sheets (` + sheetCandidateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query, row.ID, row.TenantID, row.CandidateName, row.Email, row.Status, row.ClientName, row.JobTitle, row.SheetName, row.CreatedAt, row.UpdatedAt)
	return errors.Wrap(err, "insert sheet candidate")
}

func (r *sheetCandidateRepo) GetByID(ctx context.Context, id string) (*models.SheetCandidate, error) {
	query := `SELECT ` + sheetCandidateColumns + ` FROM candidate_sheets WHERE id = $1`
	row, err := scanSheetCandidate(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, errors.Wrap(notFoundOr(err), "get sheet candidate")
	}
	return row, nil
}

func (r *sheetCandidateRepo) Update(ctx context.Context, row *models.SheetCandidate) error {
	query := `
		UPDATE candidate_sheets
		SET candidate_name = $1, email = $2, status = $3, updated_at = $4
		WHERE tenant_id = $5 AND id = $6
	`
	tag, err := r.db.Exec(ctx, query, row.CandidateName, row.Email, row.Status, row.UpdatedAt, row.TenantID, row.ID)
	if err != nil {
		return errors.Wrap(err, "update sheet candidate")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(ErrNotFound, "update sheet candidate")
	}
	return nil
}

func (r *sheetCandidateRepo) ListBySheet(ctx context.Context, tenantID, clientName, jobTitle string) ([]*models.SheetCandidate, error) {
	query := `
		SELECT ` + sheetCandidateColumns + `
		FROM candidate_sheets
		WHERE tenant_id = $1 AND client_name = $2 AND job_title = $3
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, tenantID, clientName, jobTitle)
	if err != nil {
		return nil, errors.Wrap(err, "list sheet candidates")
	}
	defer rows.Close()

	result := make([]*models.SheetCandidate, 0)
	for rows.Next() {
		row, err := scanSheetCandidate(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan sheet candidate")
		}
		result = append(result, row)
	}
	return result, errors.Wrap(rows.Err(), "list sheet candidates")
}
