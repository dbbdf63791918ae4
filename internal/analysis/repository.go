package analysis

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/tildaslashalef/revjudge/internal/loggy"
	"github.com/tildaslashalef/revjudge/internal/ulid"
)

var (
	// ErrRunNotFound is returned when an analysis run is not found
	ErrRunNotFound = errors.New("analysis run not found")
)

// Run records one invocation of the analyzer over a PR corpus
type Run struct {
	ID          string     `json:"id"`
	InputDir    string     `json:"input_dir"`
	Provider    string     `json:"provider"`
	Model       string     `json:"model"`
	TotalPRs    int        `json:"total_prs"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewRun creates a Run with a fresh identifier
func NewRun(inputDir, provider, model string) *Run {
	return &Run{
		ID:        ulid.RunID(),
		InputDir:  inputDir,
		Provider:  provider,
		Model:     model,
		StartedAt: time.Now(),
	}
}

// Repository defines the interface for analysis persistence operations
type Repository interface {
	SaveRun(ctx context.Context, run *Run) error
	CompleteRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context) ([]*Run, error)
	SaveResult(ctx context.Context, runID string, result *PRResult) error
	GetRunResults(ctx context.Context, runID string) ([]*PRResult, error)
}

// SQLRepository implements Repository using SQLite
type SQLRepository struct {
	db      *sql.DB
	logger  *loggy.Logger
	builder sq.StatementBuilderType
}

// NewSQLRepository creates a new analysis SQL repository
func NewSQLRepository(db *sql.DB, logger *loggy.Logger) Repository {
	return &SQLRepository{
		db:      db,
		logger:  logger,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

// SaveRun inserts a new analysis run
func (r *SQLRepository) SaveRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = ulid.RunID()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	query, args, err := r.builder.
		Insert("runs").
		Columns(
			"id",
			"input_dir",
			"provider",
			"model",
			"total_prs",
			"started_at",
			"completed_at",
		).
		Values(
			run.ID,
			run.InputDir,
			run.Provider,
			run.Model,
			run.TotalPRs,
			run.StartedAt,
			run.CompletedAt,
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("building insert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	r.logger.Info("Created analysis run", "id", run.ID, "input_dir", run.InputDir)
	return nil
}

// CompleteRun marks a run as finished and records its final PR count
func (r *SQLRepository) CompleteRun(ctx context.Context, run *Run) error {
	now := time.Now()
	run.CompletedAt = &now

	query, args, err := r.builder.
		Update("runs").
		Set("total_prs", run.TotalPRs).
		Set("completed_at", run.CompletedAt).
		Where(sq.Eq{"id": run.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("building update query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrRunNotFound
	}

	return nil
}

// GetRun retrieves a run by its ID
func (r *SQLRepository) GetRun(ctx context.Context, id string) (*Run, error) {
	query, args, err := r.builder.
		Select(
			"id",
			"input_dir",
			"provider",
			"model",
			"total_prs",
			"started_at",
			"completed_at",
		).
		From("runs").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	return run, nil
}

// ListRuns returns all runs, newest first
func (r *SQLRepository) ListRuns(ctx context.Context) ([]*Run, error) {
	query, args, err := r.builder.
		Select(
			"id",
			"input_dir",
			"provider",
			"model",
			"total_prs",
			"started_at",
			"completed_at",
		).
		From("runs").
		OrderBy("started_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return runs, nil
}

// SaveResult inserts one per-PR result belonging to a run. The per-file
// comparisons and the assessment are stored as JSON documents.
func (r *SQLRepository) SaveResult(ctx context.Context, runID string, result *PRResult) error {
	fileComparisons, err := json.Marshal(result.PerFileResults)
	if err != nil {
		return fmt.Errorf("marshaling file comparisons: %w", err)
	}

	assessment, err := json.Marshal(result.OverallAssessment)
	if err != nil {
		return fmt.Errorf("marshaling assessment: %w", err)
	}

	avgContentOverlap, humanCount, aiCount := summarizeFiles(result.PerFileResults)
	avgSentiment := averageSentiment(result.PerFileResults)

	query, args, err := r.builder.
		Insert("pr_results").
		Columns(
			"id",
			"run_id",
			"pr_number",
			"pr_title",
			"file_overlap",
			"sentiment_agreement",
			"avg_content_overlap",
			"human_comment_count",
			"ai_comment_count",
			"file_comparisons",
			"assessment",
			"created_at",
		).
		Values(
			ulid.ResultID(),
			runID,
			result.PRNumber,
			result.Title,
			result.FileOverlapScore,
			avgSentiment,
			avgContentOverlap,
			humanCount,
			aiCount,
			string(fileComparisons),
			string(assessment),
			time.Now(),
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("building insert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting PR result: %w", err)
	}

	return nil
}

// GetRunResults loads every per-PR result of a run in PR-number order
func (r *SQLRepository) GetRunResults(ctx context.Context, runID string) ([]*PRResult, error) {
	query, args, err := r.builder.
		Select(
			"pr_number",
			"pr_title",
			"file_overlap",
			"file_comparisons",
			"assessment",
		).
		From("pr_results").
		Where(sq.Eq{"run_id": runID}).
		OrderBy("pr_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying PR results: %w", err)
	}
	defer rows.Close()

	var results []*PRResult
	for rows.Next() {
		var result PRResult
		var fileComparisons, assessment string

		if err := rows.Scan(
			&result.PRNumber,
			&result.Title,
			&result.FileOverlapScore,
			&fileComparisons,
			&assessment,
		); err != nil {
			return nil, fmt.Errorf("scanning PR result: %w", err)
		}

		if err := json.Unmarshal([]byte(fileComparisons), &result.PerFileResults); err != nil {
			return nil, fmt.Errorf("unmarshaling file comparisons: %w", err)
		}
		if err := json.Unmarshal([]byte(assessment), &result.OverallAssessment); err != nil {
			return nil, fmt.Errorf("unmarshaling assessment: %w", err)
		}

		results = append(results, &result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating PR results: %w", err)
	}

	return results, nil
}

// scanner abstracts sql.Row and sql.Rows for shared scan code
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(s scanner) (*Run, error) {
	var run Run
	var completedAt sql.NullTime

	if err := s.Scan(
		&run.ID,
		&run.InputDir,
		&run.Provider,
		&run.Model,
		&run.TotalPRs,
		&run.StartedAt,
		&completedAt,
	); err != nil {
		return nil, err
	}

	if completedAt.Valid {
		run.CompletedAt = &completedAt.Time
	}

	return &run, nil
}

// summarizeFiles derives the denormalized per-PR columns from the
// per-file comparison map
func summarizeFiles(files map[string]FileComparison) (avgContentOverlap float64, humanCount, aiCount int) {
	if len(files) == 0 {
		return 0, 0, 0
	}

	total := 0.0
	for _, comparison := range files {
		total += comparison.ContentOverlap
		humanCount += comparison.HumanCommentCount
		aiCount += comparison.AICommentCount
	}

	return total / float64(len(files)), humanCount, aiCount
}

func averageSentiment(files map[string]FileComparison) float64 {
	if len(files) == 0 {
		return 0
	}

	total := 0.0
	for _, comparison := range files {
		total += comparison.SentimentAgreement
	}

	return total / float64(len(files))
}
