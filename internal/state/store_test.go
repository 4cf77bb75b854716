package state

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/articlecheck/internal/testutil"
	"github.com/leapstack-labs/articlecheck/pkg/core"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), ":memory:", testutil.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	store.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	}
	return store
}

func sampleResult() core.AnalysisResult {
	return core.AnalysisResult{
		Sections: []core.SectionSummary{
			{Title: "Introduction", WordCount: 8, Category: core.CategoryIntroduction},
			{Title: "Methods", WordCount: 5, Category: core.CategoryMethods},
			{Title: "Results", WordCount: 3, Category: core.CategoryResults},
		},
		TotalWords:       16,
		Categories:       core.NewCategorySet(core.CategoryIntroduction, core.CategoryMethods, core.CategoryResults),
		AcceptedJournals: []string{"Journal C", "Journal A"},
		RequiredChanges: map[string][]string{
			"Journal B": {"Add sections covering: Discussion", "Reduce word count by 6 to meet 10-word limit"},
			"Journal D": {"Reduce word count by 1 to meet 15-word limit"},
		},
	}
}

func TestStore_SaveAndGetRun(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	run, err := store.SaveRun(ctx, "paper.docx", sampleResult())
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, 2, run.AcceptedCount)
	assert.Equal(t, 2, run.RejectedCount)

	got, err := store.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, *run, got.Run)
	assert.Equal(t, sampleResult(), got.Result)
}

func TestStore_GetRunNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetRun(context.Background(), "missing")
	require.ErrorIs(t, err, ErrRunNotFound)
	assert.Contains(t, err.Error(), "missing")
}

func TestStore_ListRuns(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, runs)

	var ids []string
	for _, name := range []string{"a.md", "b.md", "c.md"} {
		run, err := store.SaveRun(ctx, name, core.AnalysisResult{Categories: core.NewCategorySet()})
		require.NoError(t, err)
		ids = append(ids, run.ID)
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"newest first", 10, []string{ids[2], ids[1], ids[0]}},
		{"limited", 2, []string{ids[2], ids[1]}},
		{"zero lists all", 0, []string{ids[2], ids[1], ids[0]}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := store.ListRuns(ctx, tt.limit)
			require.NoError(t, err)
			var got []string
			for _, r := range runs {
				got = append(got, r.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStore_EmptyResultRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	run, err := store.SaveRun(ctx, "empty.txt", core.AnalysisResult{
		Categories:       core.NewCategorySet(),
		AcceptedJournals: []string{},
		RequiredChanges:  map[string][]string{},
	})
	require.NoError(t, err)

	got, err := store.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Result.Sections)
	assert.Empty(t, got.Result.AcceptedJournals)
	assert.Empty(t, got.Result.RequiredChanges)
	assert.Empty(t, got.Result.Categories)
}

func TestStore_MigrationVersion(t *testing.T) {
	store := setupTestStore(t)
	version, err := store.MigrationVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

func TestStore_SaveRunFailures(t *testing.T) {
	insertRun := regexp.QuoteMeta("INSERT INTO runs (")
	insertSection := regexp.QuoteMeta("INSERT INTO run_sections (")
	insertJournal := regexp.QuoteMeta("INSERT INTO run_journals (")

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		errMsg    string
	}{
		{
			name: "begin fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(assert.AnError)
			},
			errMsg: "failed to begin transaction",
		},
		{
			name: "run insert fails and rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(insertRun).WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			errMsg: "failed to insert run",
		},
		{
			name: "section insert fails and rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(insertRun).WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(insertSection).WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			errMsg: `failed to insert section "Intro"`,
		},
		{
			name: "journal insert fails and rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(insertRun).WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(insertSection).WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(insertJournal).WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			errMsg: `failed to insert journal "J"`,
		},
		{
			name: "commit fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(insertRun).WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(insertSection).WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(insertJournal).WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit().WillReturnError(assert.AnError)
			},
			errMsg: "failed to commit run",
		},
	}

	result := core.AnalysisResult{
		Sections:         []core.SectionSummary{{Title: "Intro", WordCount: 1, Category: core.CategoryIntroduction}},
		Categories:       core.NewCategorySet(core.CategoryIntroduction),
		AcceptedJournals: []string{"J"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer func() { _ = db.Close() }()

			tt.setupMock(mock)
			store := New(db, testutil.NewTestLogger(t))

			_, err = store.SaveRun(context.Background(), "paper.md", result)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_QueryFailures(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	store := New(db, nil)

	mock.ExpectQuery("SELECT id, manuscript").WillReturnError(assert.AnError)
	_, err = store.ListRuns(context.Background(), 5)
	assert.ErrorContains(t, err, "failed to list runs")

	mock.ExpectQuery("SELECT id, manuscript").
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "manuscript", "created_at", "total_words", "categories", "accepted_count", "rejected_count"}).
			AddRow("r1", "paper.md", "not-a-time", 3, "[]", 0, 0))
	_, err = store.GetRun(context.Background(), "r1")
	assert.ErrorContains(t, err, "invalid run timestamp")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_NotOpened(t *testing.T) {
	store := &Store{}
	_, err := store.SaveRun(context.Background(), "x", core.AnalysisResult{})
	assert.ErrorContains(t, err, "database not opened")
	_, err = store.ListRuns(context.Background(), 1)
	assert.ErrorContains(t, err, "database not opened")
	assert.NoError(t, store.Close())
}
