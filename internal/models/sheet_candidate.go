package models

import "time"

// Sheet candidate statuses
const (
	SheetStatusNew           = "New"
	SheetStatusInterviewing  = "Interviewing"
	SheetStatusOffered       = "Offered"
	SheetStatusHired         = "Hired"
	SheetStatusRejected      = "Rejected"
	SheetStatusNotInterested = "Not Interested"
)

// SheetCandidate is a display-oriented row of a (client, job) candidate sheet.
// It is not reconciled with Candidate.
type SheetCandidate struct {
	ID            string    `json:"id" db:"id"`
	TenantID      string    `json:"userId" db:"tenant_id"`
	CandidateName string    `json:"candidateName" db:"candidate_name"`
	Email         string    `json:"email" db:"email"`
	Status        string    `json:"status" db:"status"`
	ClientName    string    `json:"clientName" db:"client_name"`
	JobTitle      string    `json:"jobTitle" db:"job_title"`
	SheetName     string    `json:"sheetName" db:"sheet_name"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

func (s *SheetCandidate) OwnerID() string { return s.TenantID }

// SheetName derives the partition key of a candidate sheet.
func SheetName(clientName, jobTitle string) string {
	return clientName + "_" + jobTitle
}

func ValidSheetStatus(status string) bool {
	switch status {
	case SheetStatusNew, SheetStatusInterviewing, SheetStatusOffered, SheetStatusHired, SheetStatusRejected, SheetStatusNotInterested:
		return true
	}
	return false
}
