package repositories

import (
	"context"
	"encoding/json"

	"recruitcrm/internal/models"

	"github.com/pkg/errors"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id string) (*models.Application, error)
	Update(ctx context.Context, app *models.Application) error
	List(ctx context.Context, tenantID string, filter models.ApplicationFilter) ([]*models.Application, error)
	// ExistsFor reports whether the tenant already has an application of candidateID to jobID
	ExistsFor(ctx context.Context, tenantID, candidateID, jobID string) (bool, error)
}

const applicationColumns = `id, tenant_id, candidate_id, job_id, client_id, status, notes, applied_at, status_history, created_at, updated_at`

type applicationRepo struct {
	db DBTX
}

func NewApplicationRepository(db DBTX) ApplicationRepository {
	return &applicationRepo{db: db}
}

func scanApplication(row interface{ Scan(dest ...any) error }) (*models.Application, error) {
	a := &models.Application{}
	var history []byte
	err := row.Scan(&a.ID, &a.TenantID, &a.CandidateID, &a.JobID, &a.ClientID, &a.Status, &a.Notes, &a.AppliedAt, &history, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.StatusHistory = make([]models.StatusHistoryEntry, 0)
	if len(history) > 0 {
		if err := json.Unmarshal(history, &a.StatusHistory); err != nil {
			return nil, errors.Wrap(err, "decode status_history")
		}
	}
	return a, nil
}

func encodeHistory(history []models.StatusHistoryEntry) ([]byte, error) {
	if history == nil {
		history = []models.StatusHistoryEntry{}
	}
	return json.Marshal(history)
}

func (r *applicationRepo) Create(ctx context.Context, app *models.Application) error {
	history, err := encodeHistory(app.StatusHistory)
	if err != nil {
		return errors.Wrap(err, "encode status_history")
	}
	query := `
		INSERT INTO applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = r.db.Exec(ctx, query, app.ID, app.TenantID, app.CandidateID, app.JobID, app.ClientID, app.Status, app.Notes, app.AppliedAt, history, app.CreatedAt, app.UpdatedAt)
	return errors.Wrap(err, "insert application")
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, errors.Wrap(notFoundOr(err), "get application")
	}
	return app, nil
}

func (r *applicationRepo) Update(ctx context.Context, app *models.Application) error {
	history, err := encodeHistory(app.StatusHistory)
	if err != nil {
		return errors.Wrap(err, "encode status_history")
	}
	query := `
		UPDATE applications
		SET status = $1, notes = $2, status_history = $3, updated_at = $4
		WHERE tenant_id = $5 AND id = $6
	`
	tag, err := r.db.Exec(ctx, query, app.Status, app.Notes, history, app.UpdatedAt, app.TenantID, app.ID)
	if err != nil {
		return errors.Wrap(err, "update application")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(ErrNotFound, "update application")
	}
	return nil
}

func (r *applicationRepo) List(ctx context.Context, tenantID string, filter models.ApplicationFilter) ([]*models.Application, error) {
	var where whereBuilder
	where.eq("tenant_id", tenantID)
	if filter.JobID != "" {
		where.eq("job_id", filter.JobID)
	}
	if filter.ClientID != "" {
		where.eq("client_id", filter.ClientID)
	}
	if filter.CandidateID != "" {
		where.eq("candidate_id", filter.CandidateID)
	}

	query := `SELECT ` + applicationColumns + ` FROM applications` + where.sql() + ` ORDER BY applied_at`
	rows, err := r.db.Query(ctx, query, where.args...)
	if err != nil {
		return nil, errors.Wrap(err, "list applications")
	}
	defer rows.Close()

	apps := make([]*models.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan application")
		}
		apps = append(apps, app)
	}
	return apps, errors.Wrap(rows.Err(), "list applications")
}

func (r *applicationRepo) ExistsFor(ctx context.Context, tenantID, candidateID, jobID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM applications WHERE tenant_id = $1 AND candidate_id = $2 AND job_id = $3)`
	if err := r.db.QueryRow(ctx, query, tenantID, candidateID, jobID).Scan(&exists); err != nil {
		return false, errors.Wrap(err, "check duplicate application")
	}
	return exists, nil
}
