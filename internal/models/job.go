package models

import "time"

// Job types
const (
	JobTypeFullTime   = "Full-time"
	JobTypePartTime   = "Part-time"
	JobTypeContract   = "Contract"
	JobTypeInternship = "Internship"
)

// Job statuses
const (
	JobStatusOpen         = "Open"
	JobStatusInterviewing = "Interviewing"
	JobStatusOnHold       = "On Hold"
	JobStatusFilled       = "Filled"
	JobStatusCancelled    = "Cancelled"
	JobStatusClosed       = "Closed"
)

type Job struct {
	ID                string    `json:"id" db:"id"`
	TenantID          string    `json:"user_id" db:"tenant_id"`
	ClientID          string    `json:"client_id" db:"client_id"`
	Title             string    `json:"title" db:"title"`
	Description       string    `json:"description" db:"description"`
	Location          string    `json:"location" db:"location"`
	Type              string    `json:"type" db:"type"`
	SalaryMin         *int      `json:"salary_min" db:"salary_min"`
	SalaryMax         *int      `json:"salary_max" db:"salary_max"`
	Status            string    `json:"status" db:"status"`
	ApplicationsCount int       `json:"applications_count" db:"applications_count"`
	PostedDate        time.Time `json:"posted_date" db:"posted_date"`
	Deadline          *string   `json:"deadline,omitempty" db:"deadline"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

func (j *Job) OwnerID() string { return j.TenantID }

func ValidJobType(t string) bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship:
		return true
	}
	return false
}

func ValidJobStatus(status string) bool {
	switch status {
	case JobStatusOpen, JobStatusInterviewing, JobStatusOnHold, JobStatusFilled, JobStatusCancelled, JobStatusClosed:
		return true
	}
	return false
}
