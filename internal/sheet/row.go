// Package sheet models the editable candidate-sheet grid: a server snapshot,
// a stable list of placeholder rows and a keyed overlay of pending edits.
// A Grid is UI state and is not safe for concurrent use.
package sheet

import (
	"fmt"
	"strings"

	"recruitcrm/internal/models"
)

// MinVisibleRows is the smallest number of rows a grid renders
const MinVisibleRows = 10

// LoadMoreStep is the number of rows "load more" adds
const LoadMoreStep = 10

type Column string

const (
	ColumnCandidateName Column = "candidateName"
	ColumnEmail         Column = "email"
	ColumnStatus        Column = "status"
)

// Columns lists the editable columns in display order
var Columns = []Column{ColumnCandidateName, ColumnEmail, ColumnStatus}

// Row is one rendered grid row. Placeholder rows are not backed by a document.
type Row struct {
	ID            string
	CandidateName string
	Email         string
	Status        string
	Persisted     bool
}

// Get returns the value of column
func (r Row) Get(col Column) string {
	switch col {
	case ColumnCandidateName:
		return r.CandidateName
	case ColumnEmail:
		return r.Email
	case ColumnStatus:
		return r.Status
	}
	return ""
}

// With returns a copy of r with column set to value
func (r Row) With(col Column, value string) Row {
	switch col {
	case ColumnCandidateName:
		r.CandidateName = value
	case ColumnEmail:
		r.Email = value
	case ColumnStatus:
		r.Status = value
	}
	return r
}

// Complete reports whether the fields required to create a document are filled
func (r Row) Complete() bool {
	return strings.TrimSpace(r.CandidateName) != "" && strings.TrimSpace(r.Email) != ""
}

// FromDocument converts a stored sheet candidate into a persisted row
func FromDocument(doc *models.SheetCandidate) Row {
	return Row{
		ID:            doc.ID,
		CandidateName: doc.CandidateName,
		Email:         doc.Email,
		Status:        doc.Status,
		Persisted:     true,
	}
}

// PlaceholderID is the synthetic id of the n-th placeholder of a sheet
func PlaceholderID(clientName, jobTitle string, n int) string {
	if clientName == "" {
		clientName = "default"
	}
	if jobTitle == "" {
		jobTitle = "default"
	}
	return fmt.Sprintf("empty-%s-%s-row-%d", clientName, jobTitle, n)
}

func newPlaceholder(clientName, jobTitle string, n int) Row {
	return Row{
		ID:     PlaceholderID(clientName, jobTitle, n),
		Status: models.SheetStatusNew,
	}
}

// Merge overlays pending edits onto rows by id. Neither input is modified.
func Merge(rows []Row, overlay map[string]Row) []Row {
	merged := make([]Row, len(rows))
	for i, row := range rows {
		if edited, ok := overlay[row.ID]; ok {
			merged[i] = edited
			continue
		}
		merged[i] = row
	}
	return merged
}

// Diff returns the patch turning base into edited. Only differing fields are set.
func Diff(base, edited Row) models.SheetCandidatePatch {
	var patch models.SheetCandidatePatch
	if edited.CandidateName != base.CandidateName {
		v := edited.CandidateName
		patch.CandidateName = &v
	}
	if edited.Email != base.Email {
		v := edited.Email
		patch.Email = &v
	}
	if edited.Status != base.Status {
		v := edited.Status
		patch.Status = &v
	}
	return patch
}
