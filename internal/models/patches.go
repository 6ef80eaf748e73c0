package models

// Patch types carry a partial update. A nil field is left unchanged.

type ClientPatch struct {
	Name           *string `json:"name" validate:"omitempty,max=200"`
	Industry       *string `json:"industry"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Status         *string `json:"status" validate:"omitempty,client_status"`
	EmployeesRange *string `json:"employees_range"`
	RevenueRange   *string `json:"revenue_range"`
	Notes          *string `json:"notes"`
}

type JobPatch struct {
	ClientID    *string     `json:"client_id"`
	Title       *string     `json:"title" validate:"omitempty,max=200"`
	Description *string     `json:"description"`
	Location    *string     `json:"location"`
	Type        *string     `json:"type" validate:"omitempty,job_type"`
	SalaryMin   FlexibleInt `json:"salary_min"`
	SalaryMax   FlexibleInt `json:"salary_max"`
	Status      *string     `json:"status" validate:"omitempty,job_status"`
	// Deadline set to "" clears it
	Deadline *string `json:"deadline"`
}

type CandidatePatch struct {
	FullName        *string `json:"full_name"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	Position        *string `json:"position"`
	Location        *string `json:"location"`
	ExperienceYears *int    `json:"experience_years" validate:"omitempty,min=0"`
	Status          *string `json:"status"`
	Rating          *int    `json:"rating" validate:"omitempty,min=0,max=5"`
	Notes           *string `json:"notes"`
	Client          *string `json:"client"`
	Role            *string `json:"role"`
}

type SheetCandidatePatch struct {
	CandidateName *string `json:"candidateName"`
	Email         *string `json:"email"`
	Status        *string `json:"status" validate:"omitempty,sheet_status"`
}

// Empty reports whether the patch changes nothing
func (p SheetCandidatePatch) Empty() bool {
	return p.CandidateName == nil && p.Email == nil && p.Status == nil
}

type ApplicationPatch struct {
	Status *string `json:"status" validate:"omitempty,application_status"`
	Notes  *string `json:"notes"`
}
