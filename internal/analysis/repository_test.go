package analysis

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tildaslashalef/revjudge/internal/loggy"
)

func newTestRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{
		db:      db,
		logger:  loggy.NewNoopLogger(),
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

func sampleResult() *PRResult {
	return &PRResult{
		PRNumber:         42,
		Title:            "Add retry logic",
		FileOverlapScore: 0.5,
		PerFileResults: map[string]FileComparison{
			"a.go": {
				HumanCommentCount:  2,
				AICommentCount:     1,
				SentimentAgreement: 1.0,
				ContentOverlap:     0.6,
				ContentAnalysis: ContentAnalysis{
					Score:     0.6,
					Reasoning: "some overlap",
					HumanOnly: "none",
					AIOnly:    "none",
				},
			},
		},
		OverallAssessment: PRAssessment{
			QualityScore:    7,
			CouldSubstitute: true,
			FullAssessment:  "Quality Score: 7",
		},
	}
}

func TestRepositoryRuns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create mock database")
	defer db.Close()

	repo := newTestRepository(db)

	t.Run("SaveRun", func(t *testing.T) {
		run := NewRun("exported_prs", "openai", "gpt-4o")

		mock.ExpectExec("INSERT INTO runs").
			WithArgs(
				run.ID,
				run.InputDir,
				run.Provider,
				run.Model,
				run.TotalPRs,
				sqlmock.AnyArg(),
				nil,
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.SaveRun(context.Background(), run)
		assert.NoError(t, err)
		assert.NotEmpty(t, run.ID)
	})

	t.Run("CompleteRun", func(t *testing.T) {
		run := NewRun("exported_prs", "openai", "gpt-4o")
		run.TotalPRs = 3

		mock.ExpectExec("UPDATE runs SET").
			WithArgs(run.TotalPRs, sqlmock.AnyArg(), run.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.CompleteRun(context.Background(), run)
		assert.NoError(t, err)
		assert.NotNil(t, run.CompletedAt)
	})

	t.Run("CompleteRunNotFound", func(t *testing.T) {
		run := NewRun("exported_prs", "openai", "gpt-4o")

		mock.ExpectExec("UPDATE runs SET").
			WithArgs(run.TotalPRs, sqlmock.AnyArg(), run.ID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.CompleteRun(context.Background(), run)
		assert.ErrorIs(t, err, ErrRunNotFound)
	})

	t.Run("GetRun", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows([]string{
			"id", "input_dir", "provider", "model", "total_prs", "started_at", "completed_at",
		}).AddRow("run-01ABC", "exported_prs", "openai", "gpt-4o", 3, now, now)

		mock.ExpectQuery("SELECT .+ FROM runs WHERE id = ?").
			WithArgs("run-01ABC").
			WillReturnRows(rows)

		run, err := repo.GetRun(context.Background(), "run-01ABC")
		require.NoError(t, err)
		assert.Equal(t, "run-01ABC", run.ID)
		assert.Equal(t, 3, run.TotalPRs)
		require.NotNil(t, run.CompletedAt)
	})

	t.Run("GetRunNotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT .+ FROM runs WHERE id = ?").
			WithArgs("run-missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetRun(context.Background(), "run-missing")
		assert.ErrorIs(t, err, ErrRunNotFound)
	})

	t.Run("ListRuns", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows([]string{
			"id", "input_dir", "provider", "model", "total_prs", "started_at", "completed_at",
		}).
			AddRow("run-02", "exported_prs", "openai", "gpt-4o", 2, now, nil).
			AddRow("run-01", "exported_prs", "claude", "claude-3-7-sonnet-20250219", 5, now.Add(-time.Hour), now)

		mock.ExpectQuery("SELECT .+ FROM runs ORDER BY started_at DESC").
			WillReturnRows(rows)

		runs, err := repo.ListRuns(context.Background())
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, "run-02", runs[0].ID)
		assert.Nil(t, runs[0].CompletedAt)
		assert.NotNil(t, runs[1].CompletedAt)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryResults(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create mock database")
	defer db.Close()

	repo := newTestRepository(db)

	t.Run("SaveResult", func(t *testing.T) {
		result := sampleResult()

		mock.ExpectExec("INSERT INTO pr_results").
			WithArgs(
				sqlmock.AnyArg(), // generated result ID
				"run-01ABC",
				result.PRNumber,
				result.Title,
				result.FileOverlapScore,
				1.0, // avg sentiment over the single file
				0.6, // avg content overlap
				2,
				1,
				sqlmock.AnyArg(), // file comparisons JSON
				sqlmock.AnyArg(), // assessment JSON
				sqlmock.AnyArg(), // created_at
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.SaveResult(context.Background(), "run-01ABC", result)
		assert.NoError(t, err)
	})

	t.Run("GetRunResults", func(t *testing.T) {
		result := sampleResult()
		fileComparisons, err := json.Marshal(result.PerFileResults)
		require.NoError(t, err)
		assessment, err := json.Marshal(result.OverallAssessment)
		require.NoError(t, err)

		rows := sqlmock.NewRows([]string{
			"pr_number", "pr_title", "file_overlap", "file_comparisons", "assessment",
		}).AddRow(result.PRNumber, result.Title, result.FileOverlapScore, string(fileComparisons), string(assessment))

		mock.ExpectQuery("SELECT .+ FROM pr_results WHERE run_id = ?").
			WithArgs("run-01ABC").
			WillReturnRows(rows)

		results, err := repo.GetRunResults(context.Background(), "run-01ABC")
		require.NoError(t, err)
		require.Len(t, results, 1)

		loaded := results[0]
		assert.Equal(t, 42, loaded.PRNumber)
		assert.Equal(t, 0.5, loaded.FileOverlapScore)
		require.Contains(t, loaded.PerFileResults, "a.go")
		assert.Equal(t, 0.6, loaded.PerFileResults["a.go"].ContentOverlap)
		assert.Equal(t, 7, loaded.OverallAssessment.QualityScore)
		assert.True(t, loaded.OverallAssessment.CouldSubstitute)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSummarizeFiles(t *testing.T) {
	avg, human, ai := summarizeFiles(nil)
	assert.Equal(t, 0.0, avg)
	assert.Equal(t, 0, human)
	assert.Equal(t, 0, ai)

	files := map[string]FileComparison{
		"a.go": {HumanCommentCount: 2, AICommentCount: 1, ContentOverlap: 0.4, SentimentAgreement: 1.0},
		"b.go": {HumanCommentCount: 1, AICommentCount: 3, ContentOverlap: 0.8, SentimentAgreement: 0.0},
	}

	avg, human, ai = summarizeFiles(files)
	assert.InDelta(t, 0.6, avg, 1e-9)
	assert.Equal(t, 3, human)
	assert.Equal(t, 4, ai)

	assert.InDelta(t, 0.5, averageSentiment(files), 1e-9)
	assert.Equal(t, 0.0, averageSentiment(nil))
}
