package crmclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"recruitcrm/internal/models"
	"recruitcrm/internal/sheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ sheet.Backend = (*Client)(nil)

func TestRequestsCarryBearerToken(t *testing.T) {
	var gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/api/candidates/sheet", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":"s1","candidateName":"Ada","email":"ada@example.com","status":"New"}]`)
	}))
	defer srv.Close()

	c := New(srv.URL+"/", StaticToken("tok-123"))
	rows, err := c.ListSheetCandidates(context.Background(), "Acme Inc", "Engineer")

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "s1", rows[0].ID)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "clientName=Acme+Inc&jobTitle=Engineer", gotQuery)
}

func TestErrorEnvelopeDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"error":{"code":"CONFLICT","message":"Application already exists"}}`)
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	_, err := c.CreateApplication(context.Background(), NewApplication{CandidateID: "c", JobID: "j", ClientID: "k"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "CONFLICT", apiErr.Code)
	assert.Equal(t, "Application already exists", apiErr.Message)
}

func TestMissingTokenSkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := New(srv.URL, StaticToken("")).ListClients(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.False(t, called)
}

func TestUpdateSheetCandidateSendsIDAndChangedFields(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = io.WriteString(w, `{"id":"s1","candidateName":"Ada","email":"ada@example.com","status":"Hired"}`)
	}))
	defer srv.Close()

	status := models.SheetStatusHired
	row, err := New(srv.URL, StaticToken("tok")).UpdateSheetCandidate(context.Background(), "s1", models.SheetCandidatePatch{Status: &status})

	require.NoError(t, err)
	assert.Equal(t, "Hired", row.Status)
	assert.Equal(t, "s1", body["id"])
	assert.Equal(t, "Hired", body["status"])
	assert.Nil(t, body["email"])
}

func TestUpdateJobOmitsUnsetSalary(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/jobs/j1", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = io.WriteString(w, `{"id":"j1","title":"Staff Engineer","status":"Open"}`)
	}))
	defer srv.Close()

	title := "Staff Engineer"
	ceiling := 150000
	_, err := New(srv.URL, StaticToken("tok")).UpdateJob(context.Background(), "j1", models.JobPatch{
		Title:     &title,
		SalaryMax: models.FlexibleInt{Value: &ceiling, Set: true},
	})

	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", body["title"])
	assert.Equal(t, float64(150000), body["salary_max"])
	_, hasMin := body["salary_min"]
	assert.False(t, hasMin)
}

func TestDeleteClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/clients/c1", r.URL.Path)
		_, _ = io.WriteString(w, `{"success":true}`)
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL, StaticToken("tok")).DeleteClient(context.Background(), "c1"))
}
