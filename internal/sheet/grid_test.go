package sheet

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"recruitcrm/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	rows      []*models.SheetCandidate
	creates   []*models.SheetCandidate
	updates   []models.SheetCandidatePatch
	updateIDs []string
	fail      error
	seq       int
}

func (f *fakeBackend) ListSheetCandidates(_ context.Context, clientName, jobTitle string) ([]*models.SheetCandidate, error) {
	var out []*models.SheetCandidate
	for _, r := range f.rows {
		if r.ClientName == clientName && r.JobTitle == jobTitle {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeBackend) CreateSheetCandidate(_ context.Context, row *models.SheetCandidate) (*models.SheetCandidate, error) {
	f.creates = append(f.creates, row)
	if f.fail != nil {
		return nil, f.fail
	}
	f.seq++
	saved := *row
	saved.ID = fmt.Sprintf("doc-%d", f.seq)
	f.rows = append(f.rows, &saved)
	return &saved, nil
}

func (f *fakeBackend) UpdateSheetCandidate(_ context.Context, id string, patch models.SheetCandidatePatch) (*models.SheetCandidate, error) {
	f.updateIDs = append(f.updateIDs, id)
	f.updates = append(f.updates, patch)
	if f.fail != nil {
		return nil, f.fail
	}
	for _, r := range f.rows {
		if r.ID == id {
			if patch.CandidateName != nil {
				r.CandidateName = *patch.CandidateName
			}
			if patch.Email != nil {
				r.Email = *patch.Email
			}
			if patch.Status != nil {
				r.Status = *patch.Status
			}
			saved := *r
			return &saved, nil
		}
	}
	return nil, errors.New("not found")
}

type recordingNotifier struct {
	alerts []string
}

func (n *recordingNotifier) Alert(message string) { n.alerts = append(n.alerts, message) }

func seeded(n int) *fakeBackend {
	b := &fakeBackend{}
	for i := 0; i < n; i++ {
		b.rows = append(b.rows, &models.SheetCandidate{
			ID:            fmt.Sprintf("c%d", i),
			CandidateName: fmt.Sprintf("Candidate %d", i),
			Email:         fmt.Sprintf("c%d@example.com", i),
			Status:        models.SheetStatusNew,
			ClientName:    "Acme",
			JobTitle:      "Engineer",
		})
	}
	return b
}

func newSelectedGrid(t *testing.T, b *fakeBackend) (*Grid, *recordingNotifier) {
	t.Helper()
	n := &recordingNotifier{}
	g := NewGrid(b, n)
	require.NoError(t, g.Select(context.Background(), "Acme", "Engineer"))
	return g, n
}

func edit(t *testing.T, g *Grid, row int, col Column, value string) {
	t.Helper()
	require.True(t, g.Click(row, col))
	require.True(t, g.Input(value))
}

func TestPaddingAndLoadMore(t *testing.T) {
	g, _ := newSelectedGrid(t, seeded(3))

	rows := g.Rows()
	require.Len(t, rows, 10)
	assert.Equal(t, 7, g.PlaceholderRows())
	for i := 0; i < 3; i++ {
		assert.True(t, rows[i].Persisted)
		assert.Equal(t, fmt.Sprintf("c%d", i), rows[i].ID)
	}
	assert.Equal(t, "empty-Acme-Engineer-row-0", rows[3].ID)

	edit(t, g, 4, ColumnCandidateName, "Draft")
	g.LoadMore()

	after := g.Rows()
	require.Len(t, after, 20)
	assert.Equal(t, 17, g.PlaceholderRows())
	assert.Equal(t, rows[:3], after[:3])
	assert.Equal(t, "Draft", after[4].CandidateName)
}

func TestMoreFetchedThanMinimumRendersAll(t *testing.T) {
	g, _ := newSelectedGrid(t, seeded(12))

	assert.Len(t, g.Rows(), 12)
	assert.Equal(t, 0, g.PlaceholderRows())

	g.LoadMore()
	assert.Len(t, g.Rows(), 22)
	assert.Equal(t, 10, g.PlaceholderRows())
}

func TestCompletePlaceholderCreatesOnce(t *testing.T) {
	b := seeded(3)
	g, _ := newSelectedGrid(t, b)

	edit(t, g, 5, ColumnCandidateName, "Ada Lovelace")
	require.NoError(t, g.Blur(context.Background()))
	assert.Empty(t, b.creates)

	edit(t, g, 5, ColumnEmail, "ada@example.com")
	require.NoError(t, g.Blur(context.Background()))

	require.Len(t, b.creates, 1)
	assert.Equal(t, "Ada Lovelace", b.creates[0].CandidateName)
	assert.Equal(t, "Acme", b.creates[0].ClientName)
	assert.Equal(t, "Engineer", b.creates[0].JobTitle)
	assert.Equal(t, models.SheetStatusNew, b.creates[0].Status)

	rows := g.Rows()
	assert.True(t, rows[5].Persisted)
	assert.Equal(t, "doc-1", rows[5].ID)
	assert.False(t, g.Pending("empty-Acme-Engineer-row-2"))
	assert.Equal(t, 6, g.PlaceholderRows())
}

func TestIncompletePlaceholderMakesNoCall(t *testing.T) {
	b := seeded(0)
	g, _ := newSelectedGrid(t, b)

	edit(t, g, 0, ColumnCandidateName, "Only Name")
	require.NoError(t, g.Blur(context.Background()))

	assert.Empty(t, b.creates)
	assert.Empty(t, b.updates)
	assert.True(t, g.Pending(g.Rows()[0].ID))
	assert.Equal(t, "Only Name", g.Rows()[0].CandidateName)
}

func TestPersistedRowUpdateSendsOnlyChangedField(t *testing.T) {
	b := seeded(3)
	g, _ := newSelectedGrid(t, b)

	edit(t, g, 1, ColumnStatus, models.SheetStatusInterviewing)
	require.NoError(t, g.Enter(context.Background()))

	require.Len(t, b.updates, 1)
	assert.Equal(t, "c1", b.updateIDs[0])
	patch := b.updates[0]
	require.NotNil(t, patch.Status)
	assert.Equal(t, models.SheetStatusInterviewing, *patch.Status)
	assert.Nil(t, patch.CandidateName)
	assert.Nil(t, patch.Email)

	assert.Equal(t, models.SheetStatusInterviewing, g.Rows()[1].Status)
	assert.False(t, g.Pending("c1"))
}

func TestUnchangedPersistedRowMakesNoCall(t *testing.T) {
	b := seeded(1)
	g, _ := newSelectedGrid(t, b)

	edit(t, g, 0, ColumnEmail, "c0@example.com")
	require.NoError(t, g.Blur(context.Background()))
	assert.Empty(t, b.updates)
}

func TestFailedSaveAlertsAndKeepsEdit(t *testing.T) {
	b := seeded(1)
	b.fail = errors.New("503")
	g, n := newSelectedGrid(t, b)

	edit(t, g, 0, ColumnCandidateName, "Renamed")
	assert.Error(t, g.Blur(context.Background()))
	assert.Equal(t, []string{updateFailedMessage}, n.alerts)
	assert.True(t, g.Pending("c0"))
	assert.Equal(t, "Renamed", g.Rows()[0].CandidateName)

	edit(t, g, 3, ColumnCandidateName, "New Person")
	require.True(t, g.Click(3, ColumnEmail))
	require.True(t, g.Input("new@example.com"))
	assert.Error(t, g.Blur(context.Background()))
	assert.Equal(t, []string{updateFailedMessage, createFailedMessage}, n.alerts)
	assert.False(t, g.Rows()[3].Persisted)
	assert.Equal(t, "new@example.com", g.Rows()[3].Email)
}

func TestEscapeDiscardsRowEdits(t *testing.T) {
	g, _ := newSelectedGrid(t, seeded(1))

	edit(t, g, 0, ColumnCandidateName, "Changed")
	assert.Equal(t, CellEditing, g.State(0, ColumnCandidateName))
	g.Escape()

	assert.Equal(t, CellDisplay, g.State(0, ColumnCandidateName))
	assert.Equal(t, "Candidate 0", g.Rows()[0].CandidateName)
	assert.False(t, g.Pending("c0"))
}

func TestLockedGridIgnoresInput(t *testing.T) {
	b := seeded(2)
	g := NewGrid(b, &recordingNotifier{})
	require.NoError(t, g.Select(context.Background(), "Acme", ""))

	assert.True(t, g.Locked())
	assert.Len(t, g.Rows(), 10)
	assert.Equal(t, "empty-Acme-default-row-0", g.Rows()[0].ID)
	assert.False(t, g.Click(0, ColumnCandidateName))
	assert.False(t, g.Input("x"))
	require.NoError(t, g.Blur(context.Background()))
	assert.Empty(t, b.creates)
	assert.Empty(t, b.updates)
}

func TestSelectResetsEditsAndVisibleRows(t *testing.T) {
	b := seeded(3)
	g, _ := newSelectedGrid(t, b)
	edit(t, g, 6, ColumnCandidateName, "Draft")
	g.LoadMore()

	require.NoError(t, g.Select(context.Background(), "Globex", "Designer"))
	assert.Len(t, g.Rows(), 10)
	assert.Equal(t, 10, g.PlaceholderRows())
	assert.Equal(t, "empty-Globex-Designer-row-0", g.Rows()[0].ID)
	for _, row := range g.Rows() {
		assert.False(t, g.Pending(row.ID))
	}
}

func TestRefreshDropsSavedPlaceholderDuplicates(t *testing.T) {
	b := seeded(1)
	g, _ := newSelectedGrid(t, b)

	edit(t, g, 1, ColumnCandidateName, "Grace")
	require.True(t, g.Click(1, ColumnEmail))
	require.True(t, g.Input("grace@example.com"))
	require.NoError(t, g.Blur(context.Background()))

	require.NoError(t, g.Refresh(context.Background()))
	rows := g.Rows()
	require.Len(t, rows, 10)
	ids := make(map[string]int)
	for _, r := range rows {
		ids[r.ID]++
	}
	assert.Equal(t, 1, ids["doc-1"])
	assert.Equal(t, 8, g.PlaceholderRows())
}

func TestMergeIsPure(t *testing.T) {
	base := []Row{{ID: "a", CandidateName: "A"}, {ID: "b", CandidateName: "B"}}
	overlay := map[string]Row{"b": {ID: "b", CandidateName: "Bee"}}

	merged := Merge(base, overlay)

	assert.Equal(t, "Bee", merged[1].CandidateName)
	assert.Equal(t, "B", base[1].CandidateName)
	assert.Len(t, overlay, 1)
}
