// Package crmclient is a typed client for the recruitment CRM HTTP API.
package crmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"recruitcrm/internal/models"
)

const defaultTimeout = 15 * time.Second

// TokenSource yields the bearer token sent with every request
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource that always returns the same token
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	if t == "" {
		return "", ErrNotAuthenticated
	}
	return string(t), nil
}

// ErrNotAuthenticated is returned when the token source has no token
var ErrNotAuthenticated = fmt.Errorf("crmclient: user not authenticated")

// APIError is a non-2xx response decoded from the error envelope
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("crm api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("crm api: status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the API rooted at baseURL, e.g. https://crm.example.com
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// makeRequest performs an authenticated JSON request and decodes a 2xx body into out
func (c *Client) makeRequest(ctx context.Context, method, endpoint string, query url.Values, payload, out interface{}) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, endpoint, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var envelope struct {
		Error struct {
			Code    string            `json:"code"`
			Message string            `json:"message"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &envelope); err == nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
		apiErr.Details = envelope.Error.Details
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}

func (c *Client) ListClients(ctx context.Context) ([]*models.Client, error) {
	var clients []*models.Client
	err := c.makeRequest(ctx, http.MethodGet, "/api/clients", nil, nil, &clients)
	return clients, err
}

func (c *Client) CreateClient(ctx context.Context, client *models.Client) (*models.Client, error) {
	var created models.Client
	if err := c.makeRequest(ctx, http.MethodPost, "/api/clients", nil, client, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateClient(ctx context.Context, id string, patch models.ClientPatch) (*models.Client, error) {
	var updated models.Client
	if err := c.makeRequest(ctx, http.MethodPut, "/api/clients/"+url.PathEscape(id), nil, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteClient(ctx context.Context, id string) error {
	return c.makeRequest(ctx, http.MethodDelete, "/api/clients/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) ListJobs(ctx context.Context) ([]*models.Job, error) {
	var jobs []*models.Job
	err := c.makeRequest(ctx, http.MethodGet, "/api/jobs", nil, nil, &jobs)
	return jobs, err
}

func (c *Client) CreateJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	var created models.Job
	if err := c.makeRequest(ctx, http.MethodPost, "/api/jobs", nil, job, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateJob(ctx context.Context, id string, patch models.JobPatch) (*models.Job, error) {
	var updated models.Job
	if err := c.makeRequest(ctx, http.MethodPut, "/api/jobs/"+url.PathEscape(id), nil, jobPatchBody(patch), &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteJob(ctx context.Context, id string) error {
	return c.makeRequest(ctx, http.MethodDelete, "/api/jobs/"+url.PathEscape(id), nil, nil, nil)
}

// jobPatchBody drops salary bounds that were not set so they stay untouched server side
func jobPatchBody(patch models.JobPatch) map[string]interface{} {
	body := make(map[string]interface{})
	put := func(key string, v *string) {
		if v != nil {
			body[key] = *v
		}
	}
	put("client_id", patch.ClientID)
	put("title", patch.Title)
	put("description", patch.Description)
	put("location", patch.Location)
	put("type", patch.Type)
	put("status", patch.Status)
	put("deadline", patch.Deadline)
	if patch.SalaryMin.Set {
		body["salary_min"] = patch.SalaryMin
	}
	if patch.SalaryMax.Set {
		body["salary_max"] = patch.SalaryMax
	}
	return body
}

func (c *Client) ListCandidates(ctx context.Context) ([]*models.Candidate, error) {
	var candidates []*models.Candidate
	err := c.makeRequest(ctx, http.MethodGet, "/api/candidates", nil, nil, &candidates)
	return candidates, err
}

func (c *Client) CreateCandidate(ctx context.Context, candidate *models.Candidate) (*models.Candidate, error) {
	var created models.Candidate
	if err := c.makeRequest(ctx, http.MethodPost, "/api/candidates", nil, candidate, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateCandidate(ctx context.Context, id string, patch models.CandidatePatch) (*models.Candidate, error) {
	var updated models.Candidate
	if err := c.makeRequest(ctx, http.MethodPut, "/api/candidates/"+url.PathEscape(id), nil, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteCandidate(ctx context.Context, id string) error {
	return c.makeRequest(ctx, http.MethodDelete, "/api/candidates/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) ListSheetCandidates(ctx context.Context, clientName, jobTitle string) ([]*models.SheetCandidate, error) {
	query := url.Values{}
	query.Set("clientName", clientName)
	query.Set("jobTitle", jobTitle)
	var rows []*models.SheetCandidate
	err := c.makeRequest(ctx, http.MethodGet, "/api/candidates/sheet", query, nil, &rows)
	return rows, err
}

// CreateSheetCandidate sends the name, email, status and sheet coordinates of row
func (c *Client) CreateSheetCandidate(ctx context.Context, row *models.SheetCandidate) (*models.SheetCandidate, error) {
	payload := map[string]string{
		"candidateName": row.CandidateName,
		"email":         row.Email,
		"status":        row.Status,
		"clientName":    row.ClientName,
		"jobTitle":      row.JobTitle,
	}
	var created models.SheetCandidate
	if err := c.makeRequest(ctx, http.MethodPost, "/api/candidates/sheet", nil, payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateSheetCandidate(ctx context.Context, id string, patch models.SheetCandidatePatch) (*models.SheetCandidate, error) {
	body := struct {
		ID string `json:"id"`
		models.SheetCandidatePatch
	}{ID: id, SheetCandidatePatch: patch}

	var updated models.SheetCandidate
	if err := c.makeRequest(ctx, http.MethodPut, "/api/candidates/sheet", nil, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) ListApplications(ctx context.Context, filter models.ApplicationFilter) ([]*models.Application, error) {
	query := url.Values{}
	for key, value := range map[string]string{
		"jobId":       filter.JobID,
		"clientId":    filter.ClientID,
		"candidateId": filter.CandidateID,
	} {
		if value != "" {
			query.Set(key, value)
		}
	}
	var apps []*models.Application
	err := c.makeRequest(ctx, http.MethodGet, "/api/applications", query, nil, &apps)
	return apps, err
}

// NewApplication is the create payload of an application
type NewApplication struct {
	CandidateID string `json:"candidateId"`
	JobID       string `json:"jobId"`
	ClientID    string `json:"clientId"`
	Status      string `json:"status,omitempty"`
	Notes       string `json:"notes,omitempty"`
	AppliedAt   string `json:"appliedAt,omitempty"`
}

func (c *Client) CreateApplication(ctx context.Context, app NewApplication) (*models.Application, error) {
	var created models.Application
	if err := c.makeRequest(ctx, http.MethodPost, "/api/applications", nil, app, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateApplication(ctx context.Context, id string, patch models.ApplicationPatch) (*models.Application, error) {
	body := struct {
		ID string `json:"id"`
		models.ApplicationPatch
	}{ID: id, ApplicationPatch: patch}

	var updated models.Application
	if err := c.makeRequest(ctx, http.MethodPut, "/api/applications", nil, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
