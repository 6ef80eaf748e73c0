package sheet

import (
	"context"
	"strings"

	"recruitcrm/internal/models"
)

// Backend persists sheet rows. crmclient.Client implements it.
type Backend interface {
	ListSheetCandidates(ctx context.Context, clientName, jobTitle string) ([]*models.SheetCandidate, error)
	CreateSheetCandidate(ctx context.Context, row *models.SheetCandidate) (*models.SheetCandidate, error)
	UpdateSheetCandidate(ctx context.Context, id string, patch models.SheetCandidatePatch) (*models.SheetCandidate, error)
}

// Notifier surfaces a failure to the user
type Notifier interface {
	Alert(message string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(message string)

func (f NotifierFunc) Alert(message string) { f(message) }

const (
	createFailedMessage = "Failed to save candidate"
	updateFailedMessage = "Failed to update candidate"
)

type CellState int

const (
	CellDisplay CellState = iota
	CellEditing
)

type cell struct {
	row int
	col Column
}

type Grid struct {
	backend  Backend
	notifier Notifier

	clientName string
	jobTitle   string

	// snapshot is replaced, never mutated in place
	snapshot []Row
	// placeholders keeps its order across renders; a saved placeholder
	// is swapped for its persisted row at the same index
	placeholders []Row
	overlay      map[string]Row
	nextSeq      int
	visible      int
	editing      *cell
}

func NewGrid(backend Backend, notifier Notifier) *Grid {
	g := &Grid{backend: backend, notifier: notifier}
	g.reset("", "")
	return g
}

// Locked reports whether the selection is incomplete. A locked grid ignores input.
func (g *Grid) Locked() bool {
	return g.clientName == "" || g.jobTitle == ""
}

func (g *Grid) Selection() (clientName, jobTitle string) {
	return g.clientName, g.jobTitle
}

// Select switches the grid to another (client, job) sheet. Pending edits are dropped,
// the visible count returns to MinVisibleRows and rows are fetched when unlocked.
func (g *Grid) Select(ctx context.Context, clientName, jobTitle string) error {
	g.reset(strings.TrimSpace(clientName), strings.TrimSpace(jobTitle))
	if g.Locked() {
		return nil
	}
	return g.Refresh(ctx)
}

func (g *Grid) reset(clientName, jobTitle string) {
	g.clientName = clientName
	g.jobTitle = jobTitle
	g.snapshot = nil
	g.placeholders = nil
	g.nextSeq = 0
	g.overlay = make(map[string]Row)
	g.visible = MinVisibleRows
	g.editing = nil
	g.ensurePlaceholders(MinVisibleRows)
}

// Refresh replaces the server snapshot with a fresh fetch
func (g *Grid) Refresh(ctx context.Context) error {
	if g.Locked() {
		return nil
	}
	docs, err := g.backend.ListSheetCandidates(ctx, g.clientName, g.jobTitle)
	if err != nil {
		return err
	}
	g.SetSnapshot(docs)
	return nil
}

// SetSnapshot installs fetched documents as the server snapshot. Saved placeholders
// that now appear in the snapshot are removed from the placeholder list.
func (g *Grid) SetSnapshot(docs []*models.SheetCandidate) {
	snapshot := make([]Row, 0, len(docs))
	fetched := make(map[string]bool, len(docs))
	for _, doc := range docs {
		snapshot = append(snapshot, FromDocument(doc))
		fetched[doc.ID] = true
	}
	g.snapshot = snapshot

	kept := make([]Row, 0, len(g.placeholders))
	for _, p := range g.placeholders {
		if p.Persisted && fetched[p.ID] {
			continue
		}
		kept = append(kept, p)
	}
	g.placeholders = kept
	g.ensurePlaceholders(g.placeholderCount())
}

// LoadMore appends LoadMoreStep placeholder rows. Existing rows and edits are kept.
func (g *Grid) LoadMore() {
	g.visible = g.rendered() + LoadMoreStep
	g.ensurePlaceholders(g.placeholderCount())
}

func (g *Grid) rendered() int {
	if len(g.snapshot) > g.visible {
		return len(g.snapshot)
	}
	return g.visible
}

func (g *Grid) placeholderCount() int {
	return g.rendered() - len(g.snapshot)
}

func (g *Grid) ensurePlaceholders(n int) {
	for len(g.placeholders) < n {
		g.placeholders = append(g.placeholders, newPlaceholder(g.clientName, g.jobTitle, g.nextSeq))
		g.nextSeq++
	}
}

// base returns the rendered rows without pending edits
func (g *Grid) base() []Row {
	count := g.placeholderCount()
	rows := make([]Row, 0, len(g.snapshot)+count)
	rows = append(rows, g.snapshot...)
	return append(rows, g.placeholders[:count]...)
}

// Rows returns the rendered rows with pending edits applied
func (g *Grid) Rows() []Row {
	return Merge(g.base(), g.overlay)
}

// PlaceholderRows counts rendered rows that are not backed by a document
func (g *Grid) PlaceholderRows() int {
	n := 0
	for _, row := range g.base() {
		if !row.Persisted {
			n++
		}
	}
	return n
}

// Pending reports whether row id has unsaved edits
func (g *Grid) Pending(id string) bool {
	_, ok := g.overlay[id]
	return ok
}

func (g *Grid) State(row int, col Column) CellState {
	if g.editing != nil && g.editing.row == row && g.editing.col == col {
		return CellEditing
	}
	return CellDisplay
}

// Click starts editing a cell. It reports false when the grid is locked or the cell does not exist.
func (g *Grid) Click(row int, col Column) bool {
	if g.Locked() || row < 0 || row >= g.rendered() || !validColumn(col) {
		return false
	}
	g.editing = &cell{row: row, col: col}
	return true
}

// Input replaces the value of the cell being edited
func (g *Grid) Input(value string) bool {
	if g.Locked() || g.editing == nil {
		return false
	}
	rows := g.Rows()
	if g.editing.row >= len(rows) {
		g.editing = nil
		return false
	}
	current := rows[g.editing.row]
	g.overlay[current.ID] = current.With(g.editing.col, value)
	return true
}

// Escape leaves editing and discards the row's pending edits
func (g *Grid) Escape() {
	if g.editing == nil {
		return
	}
	row := g.editing.row
	g.editing = nil
	if base := g.base(); !g.Locked() && row < len(base) {
		delete(g.overlay, base[row].ID)
	}
}

// Enter commits the cell being edited like Blur
func (g *Grid) Enter(ctx context.Context) error {
	return g.Blur(ctx)
}

// Blur leaves editing and reconciles the edited row with the backend.
// A complete placeholder is created, a changed persisted row is updated,
// anything else stays in the overlay. Failures alert the notifier and keep the edit.
func (g *Grid) Blur(ctx context.Context) error {
	if g.editing == nil {
		return nil
	}
	index := g.editing.row
	g.editing = nil
	rows := g.base()
	if g.Locked() || index >= len(rows) {
		return nil
	}

	backing := rows[index]
	edited, ok := g.overlay[backing.ID]
	if !ok {
		return nil
	}

	if !backing.Persisted {
		return g.create(ctx, backing, edited)
	}
	return g.update(ctx, backing, edited)
}

func (g *Grid) create(ctx context.Context, placeholder, edited Row) error {
	if !edited.Complete() {
		return nil
	}

	saved, err := g.backend.CreateSheetCandidate(ctx, &models.SheetCandidate{
		CandidateName: edited.CandidateName,
		Email:         edited.Email,
		Status:        edited.Status,
		ClientName:    g.clientName,
		JobTitle:      g.jobTitle,
	})
	if err != nil {
		g.notifier.Alert(createFailedMessage)
		return err
	}

	for i, p := range g.placeholders {
		if p.ID == placeholder.ID {
			g.placeholders[i] = FromDocument(saved)
			break
		}
	}
	delete(g.overlay, placeholder.ID)
	return nil
}

func (g *Grid) update(ctx context.Context, backing, edited Row) error {
	patch := Diff(backing, edited)
	if patch.Empty() {
		delete(g.overlay, backing.ID)
		return nil
	}

	saved, err := g.backend.UpdateSheetCandidate(ctx, backing.ID, patch)
	if err != nil {
		g.notifier.Alert(updateFailedMessage)
		return err
	}

	g.replacePersisted(FromDocument(saved))
	delete(g.overlay, backing.ID)
	return nil
}

func (g *Grid) replacePersisted(row Row) {
	for i, r := range g.snapshot {
		if r.ID == row.ID {
			snapshot := make([]Row, len(g.snapshot))
			copy(snapshot, g.snapshot)
			snapshot[i] = row
			g.snapshot = snapshot
			return
		}
	}
	for i, p := range g.placeholders {
		if p.ID == row.ID {
			g.placeholders[i] = row
			return
		}
	}
}

func validColumn(col Column) bool {
	for _, c := range Columns {
		if c == col {
			return true
		}
	}
	return false
}
