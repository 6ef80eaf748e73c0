package models

import "time"

// Client statuses
const (
	ClientStatusActive = "Active"
	ClientStatusWarm   = "Warm"
	ClientStatusCold   = "Cold"
)

type Client struct {
	ID             string    `json:"id" db:"id"`
	TenantID       string    `json:"user_id" db:"tenant_id"`
	Name           string    `json:"name" db:"name"`
	Industry       string    `json:"industry" db:"industry"`
	Email          string    `json:"email" db:"email"`
	Phone          string    `json:"phone" db:"phone"`
	Website        string    `json:"website" db:"website"`
	Location       string    `json:"location" db:"location"`
	Status         string    `json:"status" db:"status"`
	EmployeesRange string    `json:"employees_range" db:"employees_range"`
	RevenueRange   string    `json:"revenue_range" db:"revenue_range"`
	Notes          string    `json:"notes" db:"notes"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

func (c *Client) OwnerID() string { return c.TenantID }

// ValidClientStatus reports whether status is one of the client pipeline stages
func ValidClientStatus(status string) bool {
	switch status {
	case ClientStatusActive, ClientStatusWarm, ClientStatusCold:
		return true
	}
	return false
}
