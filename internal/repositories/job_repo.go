package repositories

import (
	"context"

	"recruitcrm/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id string) (*models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, tenantID, id string) error
	List(ctx context.Context, tenantID string) ([]*models.Job, error)
	// IncrementApplicationsCount bumps the denormalized counter of one job
	IncrementApplicationsCount(ctx context.Context, tenantID, id string) error
	// RecountApplications rewrites every job's counter from the applications collection
	// and returns the tenant of each job whose counter changed.
	RecountApplications(ctx context.Context) ([]string, error)
}

const jobColumns = `id, tenant_id, client_id, title, description, location, type, salary_min, salary_max, status, applications_count, posted_date, deadline, created_at, updated_at`

type jobRepo struct {
	db DBTX
}

func NewJobRepository(db DBTX) JobRepository {
	return &jobRepo{db: db}
}

func scanJob(row interface{ Scan(dest ...any) error }) (*models.Job, error) {
	j := &models.Job{}
	err := row.Scan(&j.ID, &j.TenantID, &j.ClientID, &j.Title, &j.Description, &j.Location, &j.Type, &j.SalaryMin, &j.SalaryMax, &j.Status, &j.ApplicationsCount, &j.PostedDate, &j.Deadline, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (r *jobRepo) Create(ctx context.Context, job *models.Job) error {
	query := `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.Exec(ctx, query, job.ID, job.TenantID, job.ClientID, job.Title, job.Description, job.Location, job.Type, job.SalaryMin, job.SalaryMax, job.Status, job.ApplicationsCount, job.PostedDate, job.Deadline, job.CreatedAt, job.UpdatedAt)
	return errors.Wrap(err, "insert job")
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, errors.Wrap(notFoundOr(err), "get job")
	}
	return job, nil
}

func (r *jobRepo) Update(ctx context.Context, job *models.Job) error {
	query := `
		UPDATE jobs
		SET client_id = $1, title = $2, description = $3, location = $4, type = $5, salary_min = $6, salary_max = $7,
			status = $8, deadline = $9, updated_at = $10
		WHERE tenant_id = $11 AND id = $12
	`
	tag, err := r.db.Exec(ctx, query, job.ClientID, job.Title, job.Description, job.Location, job.Type, job.SalaryMin, job.SalaryMax, job.Status, job.Deadline, job.UpdatedAt, job.TenantID, job.ID)
	if err != nil {
		return errors.Wrap(err, "update job")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(ErrNotFound, "update job")
	}
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return errors.Wrap(err, "delete job")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(ErrNotFound, "delete job")
	}
	return nil
}

func (r *jobRepo) List(ctx context.Context, tenantID string) ([]*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE tenant_id = $1 ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, errors.Wrap(err, "list jobs")
	}
	defer rows.Close()

	jobs := make([]*models.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan job")
		}
		jobs = append(jobs, job)
	}
	return jobs, errors.Wrap(rows.Err(), "list jobs")
}

func (r *jobRepo) IncrementApplicationsCount(ctx context.Context, tenantID, id string) error {
	tag, err := r.db.Exec(ctx, `UPDATE jobs SET applications_count = applications_count + 1 WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return errors.Wrap(err, "increment applications_count")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(ErrNotFound, "increment applications_count")
	}
	return nil
}

func (r *jobRepo) RecountApplications(ctx context.Context) ([]string, error) {
	query := `
		UPDATE jobs j
		SET applications_count = c.total
		FROM (
			SELECT j2.id, COUNT(a.id) AS total
			FROM jobs j2
			LEFT JOIN applications a ON a.job_id = j2.id AND a.tenant_id = j2.tenant_id
			GROUP BY j2.id
		) c
		WHERE j.id = c.id AND j.applications_count <> c.total
		RETURNING j.tenant_id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "recount applications")
	}
	tenants, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, errors.Wrap(err, "recount applications")
	}
	return tenants, nil
}
