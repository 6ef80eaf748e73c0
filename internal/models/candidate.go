package models

import "time"

const CandidateStatusNew = "New"

// Candidate is a person in the talent pool. Client and Role are free-text tags.
type Candidate struct {
	ID              string    `json:"id" db:"id"`
	TenantID        string    `json:"user_id" db:"tenant_id"`
	FullName        string    `json:"full_name" db:"full_name"`
	Email           string    `json:"email" db:"email"`
	Phone           string    `json:"phone" db:"phone"`
	Position        string    `json:"position" db:"position"`
	Location        string    `json:"location" db:"location"`
	ExperienceYears int       `json:"experience_years" db:"experience_years"`
	Status          string    `json:"status" db:"status"`
	Rating          int       `json:"rating" db:"rating"`
	Notes           string    `json:"notes" db:"notes"`
	Client          string    `json:"client" db:"client"`
	Role            string    `json:"role" db:"role"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

func (c *Candidate) OwnerID() string { return c.TenantID }
