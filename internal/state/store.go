// Package state persists analysis runs in a local SQLite database so past
// results can be listed and compared.
package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/leapstack-labs/articlecheck/pkg/core"
)

// DefaultPath is the default location of the history database.
const DefaultPath = ".articlecheck/history.db"

// timeLayout is a fixed-width UTC timestamp so that text order is time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrRunNotFound is returned by GetRun for unknown IDs.
var ErrRunNotFound = errors.New("run not found")

// Run summarizes one saved analysis.
type Run struct {
	ID            string    `json:"id"`
	Manuscript    string    `json:"manuscript"`
	CreatedAt     time.Time `json:"created_at"`
	TotalWords    int       `json:"total_words"`
	AcceptedCount int       `json:"accepted_count"`
	RejectedCount int       `json:"rejected_count"`
}

// RunDetail is a saved run together with its full result.
type RunDetail struct {
	Run
	Result core.AnalysisResult `json:"result"`
}

// Store is the SQLite-backed run history.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// Open opens (creating if needed) the database at path and applies
// migrations. Use ":memory:" for an in-memory database.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	dsn := ":memory:?_pragma=foreign_keys(1)"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
		dsn = path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s := New(db, logger)
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an already opened database. Migrations are not applied.
func New(db *sql.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records result for manuscript in a single transaction.
func (s *Store) SaveRun(ctx context.Context, manuscript string, result core.AnalysisResult) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	categories, err := json.Marshal(result.Categories)
	if err != nil {
		return nil, fmt.Errorf("failed to encode categories: %w", err)
	}

	run := &Run{
		ID:            uuid.NewString(),
		Manuscript:    manuscript,
		CreatedAt:     s.now(),
		TotalWords:    result.TotalWords,
		AcceptedCount: len(result.AcceptedJournals),
		RejectedCount: len(result.RequiredChanges),
	}
	s.logger.Debug("saving run", slog.String("id", run.ID), slog.String("manuscript", manuscript))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, manuscript, created_at, total_words, categories, accepted_count, rejected_count) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Manuscript, run.CreatedAt.Format(timeLayout), run.TotalWords, string(categories), run.AcceptedCount, run.RejectedCount,
	); err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}

	for i, sec := range result.Sections {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_sections (run_id, position, title, word_count, category) VALUES (?, ?, ?, ?, ?)`,
			run.ID, i, sec.Title, sec.WordCount, string(sec.Category),
		); err != nil {
			return nil, fmt.Errorf("failed to insert section %q: %w", sec.Title, err)
		}
	}

	for i, j := range journalRows(result) {
		changes, err := json.Marshal(j.changes)
		if err != nil {
			return nil, fmt.Errorf("failed to encode changes: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_journals (run_id, position, journal, accepted, changes) VALUES (?, ?, ?, ?, ?)`,
			run.ID, i, j.journal, j.accepted, string(changes),
		); err != nil {
			return nil, fmt.Errorf("failed to insert journal %q: %w", j.journal, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit run: %w", err)
	}
	return run, nil
}

type journalRow struct {
	journal  string
	accepted bool
	changes  []string
}

// journalRows lists accepted journals in result order, then rejected
// journals by name.
func journalRows(result core.AnalysisResult) []journalRow {
	rows := make([]journalRow, 0, len(result.AcceptedJournals)+len(result.RequiredChanges))
	for _, j := range result.AcceptedJournals {
		rows = append(rows, journalRow{journal: j, accepted: true, changes: []string{}})
	}
	rejected := make([]string, 0, len(result.RequiredChanges))
	for j := range result.RequiredChanges {
		rejected = append(rejected, j)
	}
	sort.Strings(rejected)
	for _, j := range rejected {
		rows = append(rows, journalRow{journal: j, changes: result.RequiredChanges[j]})
	}
	return rows
}

// ListRuns returns up to limit runs, newest first. A limit below 1 lists all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if limit < 1 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, manuscript, created_at, total_words, accepted_count, rejected_count FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var (
			run       Run
			createdAt string
		)
		if err := rows.Scan(&run.ID, &run.Manuscript, &createdAt, &run.TotalWords, &run.AcceptedCount, &run.RejectedCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if run.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// GetRun loads a run and its full result. Unknown IDs return ErrRunNotFound.
func (s *Store) GetRun(ctx context.Context, id string) (*RunDetail, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	var (
		detail     RunDetail
		createdAt  string
		categories string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, manuscript, created_at, total_words, categories, accepted_count, rejected_count FROM runs WHERE id = ?`,
		id,
	).Scan(&detail.ID, &detail.Manuscript, &createdAt, &detail.TotalWords, &categories, &detail.AcceptedCount, &detail.RejectedCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	if detail.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}

	detail.Result = core.AnalysisResult{
		TotalWords:       detail.TotalWords,
		AcceptedJournals: []string{},
		RequiredChanges:  make(map[string][]string),
	}
	if err := json.Unmarshal([]byte(categories), &detail.Result.Categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	if detail.Result.Sections, err = s.sections(ctx, id); err != nil {
		return nil, err
	}
	if err := s.journals(ctx, id, &detail.Result); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *Store) sections(ctx context.Context, runID string) ([]core.SectionSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, word_count, category FROM run_sections WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get sections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []core.SectionSummary{}
	for rows.Next() {
		var (
			sec      core.SectionSummary
			category string
		)
		if err := rows.Scan(&sec.Title, &sec.WordCount, &category); err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		sec.Category = core.Category(category)
		out = append(out, sec)
	}
	return out, rows.Err()
}

func (s *Store) journals(ctx context.Context, runID string, result *core.AnalysisResult) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT journal, accepted, changes FROM run_journals WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return fmt.Errorf("failed to get journals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			journal  string
			accepted bool
			changes  string
		)
		if err := rows.Scan(&journal, &accepted, &changes); err != nil {
			return fmt.Errorf("failed to scan journal: %w", err)
		}
		if accepted {
			result.AcceptedJournals = append(result.AcceptedJournals, journal)
			continue
		}
		var list []string
		if err := json.Unmarshal([]byte(changes), &list); err != nil {
			return fmt.Errorf("failed to decode changes for %q: %w", journal, err)
		}
		result.RequiredChanges[journal] = list
	}
	return rows.Err()
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid run timestamp %q: %w", s, err)
	}
	return t, nil
}
