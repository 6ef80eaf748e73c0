package repositories

import (
	"context"

	"recruitcrm/internal/models"

	"github.com/pkg/errors"
)

type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	GetByID(ctx context.Context, id string) (*models.Client, error)
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, tenantID, id string) error
	List(ctx context.Context, tenantID string) ([]*models.Client, error)
}

const clientColumns = `id, tenant_id, name, industry, email, phone, website, location, status, employees_range, revenue_range, notes, created_at, updated_at`

type clientRepo struct {
	db DBTX
}

func NewClientRepository(db DBTX) ClientRepository {
	return &clientRepo{db: db}
}

func scanClient(row interface{ Scan(dest ...any) error }) (*models.Client, error) {
	c := &models.Client{}
	err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.Industry, &c.Email, &c.Phone, &c.Website, &c.Location, &c.Status, &c.EmployeesRange, &c.RevenueRange, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *clientRepo) Create(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.Exec(ctx, query, client.ID, client.TenantID, client.Name, client.Industry, client.Email, client.Phone, client.Website, client.Location, client.Status, client.EmployeesRange, client.RevenueRange, client.Notes, client.CreatedAt, client.UpdatedAt)
	return errors.Wrap(err, "insert client")
}

func (r *clientRepo) GetByID(ctx context.Context, id string) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	client, err := scanClient(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, errors.Wrap(notFoundOr(err), "get client")
	}
	return client, nil
}

func (r *clientRepo) Update(ctx context.Context, client *models.Client) error {
	query := `
		UPDATE clients
		SET name = $1, industry = $2, email = $3, phone = $4, website = $5, location = $6, status = $7,
			employees_range = $8, revenue_range = $9, notes = $10, updated_at = $11
		WHERE tenant_id = $12 AND id = $13
	`
	tag, err := r.db.Exec(ctx, query, client.Name, client.Industry, client.Email, client.Phone, client.Website, client.Location, client.Status, client.EmployeesRange, client.RevenueRange, client.Notes, client.UpdatedAt, client.TenantID, client.ID)
	if err != nil {
		return errors.Wrap(err, "update client")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(ErrNotFound, "update client")
	}
	return nil
}

func (r *clientRepo) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return errors.Wrap(err, "delete client")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(ErrNotFound, "delete client")
	}
	return nil
}

func (r *clientRepo) List(ctx context.Context, tenantID string) ([]*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE tenant_id = $1 ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, errors.Wrap(err, "list clients")
	}
	defer rows.Close()

	clients := make([]*models.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan client")
		}
		clients = append(clients, client)
	}
	return clients, errors.Wrap(rows.Err(), "list clients")
}
