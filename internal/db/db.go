// Package db provides PostgreSQL persistence for evaluation runs. Persistence
// is optional: callers treat a failed write as a warning, never as a run
// failure.
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/panelhire/hiring-agent/internal/types"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// schema holds the evaluation tables. EnsureSchema applies it idempotently so
// a fresh database works without a separate migration step.
const schema = `
CREATE TABLE IF NOT EXISTS evaluations (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	candidate_name TEXT NOT NULL,
	role_title TEXT NOT NULL,
	company TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'running',
	final_score DOUBLE PRECISION,
	verdict TEXT,
	full_verdict JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	completed_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS task_results (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	evaluation_id UUID NOT NULL REFERENCES evaluations(id) ON DELETE CASCADE,
	task TEXT NOT NULL,
	payload JSONB,
	failure JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (evaluation_id, task)
);
`

// EnsureSchema creates the evaluation tables if they do not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// StartEvaluation creates a new evaluation record and returns its ID.
func (db *DB) StartEvaluation(ctx context.Context, candidateName, roleTitle, company string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO evaluations (candidate_name, role_title, company, status)
		 VALUES ($1, $2, $3, 'running')
		 RETURNING id`,
		candidateName, roleTitle, company,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create evaluation: %w", err)
	}
	return id, nil
}

// SaveTaskResult stores one task's result for an evaluation. Re-saving the
// same task overwrites the previous row.
func (db *DB) SaveTaskResult(ctx context.Context, evaluationID uuid.UUID, result *types.TaskResult) error {
	payload, err := json.Marshal(result.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload for %s: %w", result.Task, err)
	}

	var failure []byte
	if result.Failure != nil {
		failure, err = json.Marshal(result.Failure)
		if err != nil {
			return fmt.Errorf("failed to marshal failure for %s: %w", result.Task, err)
		}
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO task_results (evaluation_id, task, payload, failure)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (evaluation_id, task) DO UPDATE SET payload = $3, failure = $4, created_at = NOW()`,
		evaluationID, result.Task, payload, failure,
	)
	if err != nil {
		return fmt.Errorf("failed to save task result %s: %w", result.Task, err)
	}
	return nil
}

// CompleteEvaluation marks an evaluation as completed with its verdict.
func (db *DB) CompleteEvaluation(ctx context.Context, evaluationID uuid.UUID, verdict *types.Verdict) error {
	fullVerdict, err := json.Marshal(verdict)
	if err != nil {
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE evaluations
		 SET status = 'completed', final_score = $1, verdict = $2, full_verdict = $3, completed_at = NOW()
		 WHERE id = $4`,
		verdict.FinalScore, string(verdict.Verdict), fullVerdict, evaluationID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete evaluation: %w", err)
	}
	return nil
}

// Evaluation is one stored evaluation run.
type Evaluation struct {
	ID            uuid.UUID      `json:"id"`
	CandidateName string         `json:"candidate_name"`
	RoleTitle     string         `json:"role_title"`
	Company       string         `json:"company"`
	Status        string         `json:"status"`
	FinalScore    *float64       `json:"final_score,omitempty"`
	Verdict       string         `json:"verdict,omitempty"`
	FullVerdict   *types.Verdict `json:"full_verdict,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
}

// GetEvaluation retrieves an evaluation by ID. A missing row returns nil, nil.
func (db *DB) GetEvaluation(ctx context.Context, id uuid.UUID) (*Evaluation, error) {
	var e Evaluation
	var verdict *string
	var fullVerdict []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, candidate_name, role_title, company, status, final_score, verdict, full_verdict, created_at, completed_at
		 FROM evaluations WHERE id = $1`,
		id,
	).Scan(&e.ID, &e.CandidateName, &e.RoleTitle, &e.Company, &e.Status, &e.FinalScore, &verdict, &fullVerdict, &e.CreatedAt, &e.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}

	if verdict != nil {
		e.Verdict = *verdict
	}
	if len(fullVerdict) > 0 {
		var v types.Verdict
		if err := json.Unmarshal(fullVerdict, &v); err == nil {
			e.FullVerdict = &v
		}
	}
	return &e, nil
}

// ListEvaluations retrieves recent evaluations, newest first.
func (db *DB) ListEvaluations(ctx context.Context, limit int) ([]Evaluation, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, candidate_name, role_title, company, status, final_score, verdict, created_at, completed_at
		 FROM evaluations ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	defer rows.Close()

	var evaluations []Evaluation
	for rows.Next() {
		var e Evaluation
		var verdict *string
		if err := rows.Scan(&e.ID, &e.CandidateName, &e.RoleTitle, &e.Company, &e.Status, &e.FinalScore, &verdict, &e.CreatedAt, &e.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		if verdict != nil {
			e.Verdict = *verdict
		}
		evaluations = append(evaluations, e)
	}
	return evaluations, nil
}

// StoredTaskResult is one persisted task result row.
type StoredTaskResult struct {
	Task      string             `json:"task"`
	Payload   json.RawMessage    `json:"payload,omitempty"`
	Failure   *types.TaskFailure `json:"failure,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// ListTaskResults retrieves the task results recorded for an evaluation, in
// the order they completed.
func (db *DB) ListTaskResults(ctx context.Context, evaluationID uuid.UUID) ([]StoredTaskResult, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT task, payload, failure, created_at
		 FROM task_results WHERE evaluation_id = $1 ORDER BY created_at ASC`,
		evaluationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list task results: %w", err)
	}
	defer rows.Close()

	var results []StoredTaskResult
	for rows.Next() {
		var r StoredTaskResult
		var failure []byte
		if err := rows.Scan(&r.Task, &r.Payload, &failure, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task result: %w", err)
		}
		if len(failure) > 0 {
			var f types.TaskFailure
			if err := json.Unmarshal(failure, &f); err == nil {
				r.Failure = &f
			}
		}
		results = append(results, r)
	}
	return results, nil
}
