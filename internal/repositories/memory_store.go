package repositories

import (
	"context"
	"sync"

	"recruitcrm/internal/models"
)

// collection is an in-process document set keyed by id that preserves insertion order.
// Values are cloned on the way in and out so callers never share memory with the store.
type collection[T any] struct {
	mu    sync.RWMutex
	order []string
	docs  map[string]*T
	id    func(*T) string
	owner func(*T) string
	clone func(*T) *T
}

func newCollection[T any](id, owner func(*T) string, clone func(*T) *T) *collection[T] {
	if clone == nil {
		clone = func(v *T) *T {
			c := *v
			return &c
		}
	}
	return &collection[T]{docs: make(map[string]*T), id: id, owner: owner, clone: clone}
}

func (c *collection[T]) insert(v *T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.id(v)
	if _, ok := c.docs[id]; !ok {
		c.order = append(c.order, id)
	}
	c.docs[id] = c.clone(v)
}

func (c *collection[T]) get(id string) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c.clone(v), nil
}

// replace overwrites an existing document with the same id and owner
func (c *collection[T]) replace(v *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	current, ok := c.docs[c.id(v)]
	if !ok || c.owner(current) != c.owner(v) {
		return ErrNotFound
	}
	c.docs[c.id(v)] = c.clone(v)
	return nil
}

func (c *collection[T]) mutate(tenantID, id string, fn func(*T)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.docs[id]
	if !ok || c.owner(v) != tenantID {
		return ErrNotFound
	}
	fn(v)
	return nil
}

func (c *collection[T]) remove(tenantID, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.docs[id]
	if !ok || c.owner(v) != tenantID {
		return ErrNotFound
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (c *collection[T]) filter(match func(*T) bool) []*T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]*T, 0)
	for _, id := range c.order {
		if v := c.docs[id]; match(v) {
			result = append(result, c.clone(v))
		}
	}
	return result
}

// NewMemoryStore returns a Store backed by process memory. Data is lost on restart.
func NewMemoryStore() *Store {
	jobs := newCollection(
		func(j *models.Job) string { return j.ID },
		func(j *models.Job) string { return j.TenantID },
		cloneJob,
	)
	apps := newCollection(
		func(a *models.Application) string { return a.ID },
		func(a *models.Application) string { return a.TenantID },
		cloneApplication,
	)
	return &Store{
		Clients: &memoryClientRepo{docs: newCollection(
			func(c *models.Client) string { return c.ID },
			func(c *models.Client) string { return c.TenantID },
			nil,
		)},
		Jobs: &memoryJobRepo{docs: jobs, apps: apps},
		Candidates: &memoryCandidateRepo{docs: newCollection(
			func(c *models.Candidate) string { return c.ID },
			func(c *models.Candidate) string { return c.TenantID },
			nil,
		)},
		SheetCandidates: &memorySheetCandidateRepo{docs: newCollection(
			func(s *models.SheetCandidate) string { return s.ID },
			func(s *models.SheetCandidate) string { return s.TenantID },
			nil,
		)},
		Applications: &memoryApplicationRepo{docs: apps},
		Driver:       "memory",
	}
}

func cloneJob(j *models.Job) *models.Job {
	c := *j
	if j.SalaryMin != nil {
		v := *j.SalaryMin
		c.SalaryMin = &v
	}
	if j.SalaryMax != nil {
		v := *j.SalaryMax
		c.SalaryMax = &v
	}
	if j.Deadline != nil {
		v := *j.Deadline
		c.Deadline = &v
	}
	return &c
}

func cloneApplication(a *models.Application) *models.Application {
	c := *a
	c.StatusHistory = append(make([]models.StatusHistoryEntry, 0, len(a.StatusHistory)), a.StatusHistory...)
	return &c
}

type memoryClientRepo struct {
	docs *collection[models.Client]
}

func (r *memoryClientRepo) Create(_ context.Context, client *models.Client) error {
	r.docs.insert(client)
	return nil
}

func (r *memoryClientRepo) GetByID(_ context.Context, id string) (*models.Client, error) {
	return r.docs.get(id)
}

func (r *memoryClientRepo) Update(_ context.Context, client *models.Client) error {
	return r.docs.replace(client)
}

func (r *memoryClientRepo) Delete(_ context.Context, tenantID, id string) error {
	return r.docs.remove(tenantID, id)
}

func (r *memoryClientRepo) List(_ context.Context, tenantID string) ([]*models.Client, error) {
	return r.docs.filter(func(c *models.Client) bool { return c.TenantID == tenantID }), nil
}

type memoryJobRepo struct {
	docs *collection[models.Job]
	apps *collection[models.Application]
}

func (r *memoryJobRepo) Create(_ context.Context, job *models.Job) error {
	r.docs.insert(job)
	return nil
}

func (r *memoryJobRepo) GetByID(_ context.Context, id string) (*models.Job, error) {
	return r.docs.get(id)
}

func (r *memoryJobRepo) Update(_ context.Context, job *models.Job) error {
	// applications_count is owned by the counter operations
	return r.docs.mutate(job.TenantID, job.ID, func(current *models.Job) {
		count, posted, created := current.ApplicationsCount, current.PostedDate, current.CreatedAt
		*current = *cloneJob(job)
		current.ApplicationsCount, current.PostedDate, current.CreatedAt = count, posted, created
	})
}

func (r *memoryJobRepo) Delete(_ context.Context, tenantID, id string) error {
	return r.docs.remove(tenantID, id)
}

func (r *memoryJobRepo) List(_ context.Context, tenantID string) ([]*models.Job, error) {
	return r.docs.filter(func(j *models.Job) bool { return j.TenantID == tenantID }), nil
}

func (r *memoryJobRepo) IncrementApplicationsCount(_ context.Context, tenantID, id string) error {
	return r.docs.mutate(tenantID, id, func(j *models.Job) { j.ApplicationsCount++ })
}

func (r *memoryJobRepo) RecountApplications(_ context.Context) ([]string, error) {
	counts := make(map[string]int)
	for _, a := range r.apps.filter(func(*models.Application) bool { return true }) {
		counts[a.TenantID+"/"+a.JobID]++
	}

	r.docs.mu.Lock()
	defer r.docs.mu.Unlock()
	var changed []string
	for _, j := range r.docs.docs {
		if want := counts[j.TenantID+"/"+j.ID]; j.ApplicationsCount != want {
			j.ApplicationsCount = want
			changed = append(changed, j.TenantID)
		}
	}
	return changed, nil
}

type memoryCandidateRepo struct {
	docs *collection[models.Candidate]
}

func (r *memoryCandidateRepo) Create(_ context.Context, candidate *models.Candidate) error {
	r.docs.insert(candidate)
	return nil
}

func (r *memoryCandidateRepo) GetByID(_ context.Context, id string) (*models.Candidate, error) {
	return r.docs.get(id)
}

func (r *memoryCandidateRepo) Update(_ context.Context, candidate *models.Candidate) error {
	return r.docs.replace(candidate)
}

func (r *memoryCandidateRepo) Delete(_ context.Context, tenantID, id string) error {
	return r.docs.remove(tenantID, id)
}

func (r *memoryCandidateRepo) List(_ context.Context, tenantID string) ([]*models.Candidate, error) {
	return r.docs.filter(func(c *models.Candidate) bool { return c.TenantID == tenantID }), nil
}

type memorySheetCandidateRepo struct {
	docs *collection[models.SheetCandidate]
}

func (r *memorySheetCandidateRepo) Create(_ context.Context, row *models.SheetCandidate) error {
	r.docs.insert(row)
	return nil
}

func (r *memorySheetCandidateRepo) GetByID(_ context.Context, id string) (*models.SheetCandidate, error) {
	return r.docs.get(id)
}

func (r *memorySheetCandidateRepo) Update(_ context.Context, row *models.SheetCandidate) error {
	return r.docs.mutate(row.TenantID, row.ID, func(current *models.SheetCandidate) {
		current.CandidateName = row.CandidateName
		current.Email = row.Email
		current.Status = row.Status
		current.UpdatedAt = row.UpdatedAt
	})
}

func (r *memorySheetCandidateRepo) ListBySheet(_ context.Context, tenantID, clientName, jobTitle string) ([]*models.SheetCandidate, error) {
	return r.docs.filter(func(s *models.SheetCandidate) bool {
		return s.TenantID == tenantID && s.ClientName == clientName && s.JobTitle == jobTitle
	}), nil
}

type memoryApplicationRepo struct {
	docs *collection[models.Application]
}

func (r *memoryApplicationRepo) Create(_ context.Context, app *models.Application) error {
	r.docs.insert(app)
	return nil
}

func (r *memoryApplicationRepo) GetByID(_ context.Context, id string) (*models.Application, error) {
	return r.docs.get(id)
}

func (r *memoryApplicationRepo) Update(_ context.Context, app *models.Application) error {
	return r.docs.mutate(app.TenantID, app.ID, func(current *models.Application) {
		current.Status = app.Status
		current.Notes = app.Notes
		current.StatusHistory = append(make([]models.StatusHistoryEntry, 0, len(app.StatusHistory)), app.StatusHistory...)
		current.UpdatedAt = app.UpdatedAt
	})
}

func (r *memoryApplicationRepo) List(_ context.Context, tenantID string, filter models.ApplicationFilter) ([]*models.Application, error) {
	return r.docs.filter(func(a *models.Application) bool {
		if a.TenantID != tenantID {
			return false
		}
		if filter.JobID != "" && a.JobID != filter.JobID {
			return false
		}
		if filter.ClientID != "" && a.ClientID != filter.ClientID {
			return false
		}
		if filter.CandidateID != "" && a.CandidateID != filter.CandidateID {
			return false
		}
		return true
	}), nil
}

func (r *memoryApplicationRepo) ExistsFor(_ context.Context, tenantID, candidateID, jobID string) (bool, error) {
	matches := r.docs.filter(func(a *models.Application) bool {
		return a.TenantID == tenantID && a.CandidateID == candidateID && a.JobID == jobID
	})
	return len(matches) > 0, nil
}
