package repositories

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

// ErrNotFound is returned when no document matches the requested id
var ErrNotFound = errors.New("document not found")

// DBTX is the subset of pgxpool.Pool the repositories use; pgxmock pools satisfy it too.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// Store bundles one repository per collection.
type Store struct {
	Clients         ClientRepository
	Jobs            JobRepository
	Candidates      CandidateRepository
	SheetCandidates SheetCandidateRepository
	Applications    ApplicationRepository

	// Driver names the backing implementation: "postgres" or "memory"
	Driver string
	ping   func(ctx context.Context) error
}

// Ping checks the backing store is reachable
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// NewPostgresStore wires every repository to db
func NewPostgresStore(db DBTX) *Store {
	return &Store{
		Clients:         NewClientRepository(db),
		Jobs:            NewJobRepository(db),
		Candidates:      NewCandidateRepository(db),
		SheetCandidates: NewSheetCandidateRepository(db),
		Applications:    NewApplicationRepository(db),
		Driver:          "postgres",
		ping:            db.Ping,
	}
}

// whereBuilder accumulates ANDed equality predicates with positional args
type whereBuilder struct {
	clauses []string
	args    []any
}

func (w *whereBuilder) eq(column string, value any) {
	w.args = append(w.args, value)
	w.clauses = append(w.clauses, column+" = $"+strconv.Itoa(len(w.args)))
}

func (w *whereBuilder) sql() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func notFoundOr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
