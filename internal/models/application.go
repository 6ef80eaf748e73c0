package models

import "time"

// Application statuses
const (
	ApplicationStatusNew                = "New"
	ApplicationStatusScreening          = "Screening"
	ApplicationStatusInterviewScheduled = "Interview Scheduled"
	ApplicationStatusInterviewing       = "Interviewing"
	ApplicationStatusTechnicalRound     = "Technical Round"
	ApplicationStatusFinalRound         = "Final Round"
	ApplicationStatusOffered            = "Offered"
	ApplicationStatusHired              = "Hired"
	ApplicationStatusRejected           = "Rejected"
)

// StatusHistoryEntry is one append-only record of an application status change
type StatusHistoryEntry struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes"`
}

// Application joins a candidate to a job of a client.
type Application struct {
	ID            string               `json:"id" db:"id"`
	TenantID      string               `json:"userId" db:"tenant_id"`
	CandidateID   string               `json:"candidateId" db:"candidate_id"`
	JobID         string               `json:"jobId" db:"job_id"`
	ClientID      string               `json:"clientId" db:"client_id"`
	Status        string               `json:"status" db:"status"`
	Notes         string               `json:"notes" db:"notes"`
	AppliedAt     time.Time            `json:"appliedAt" db:"applied_at"`
	StatusHistory []StatusHistoryEntry `json:"statusHistory" db:"status_history"`
	CreatedAt     time.Time            `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time            `json:"updatedAt" db:"updated_at"`
}

func (a *Application) OwnerID() string { return a.TenantID }

// ApplicationFilter narrows an application listing; empty fields are ignored
type ApplicationFilter struct {
	JobID       string
	ClientID    string
	CandidateID string
}

func ValidApplicationStatus(status string) bool {
	switch status {
	case ApplicationStatusNew, ApplicationStatusScreening, ApplicationStatusInterviewScheduled,
		ApplicationStatusInterviewing, ApplicationStatusTechnicalRound, ApplicationStatusFinalRound,
		ApplicationStatusOffered, ApplicationStatusHired, ApplicationStatusRejected:
		return true
	}
	return false
}
