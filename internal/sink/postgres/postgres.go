// Package postgres is the reference GraphSink implementation: a single
// table pair (codegraf_nodes, codegraf_edges) written with idempotent
// upserts and exponential-backoff retry on transient connection errors,
// the same shape as the teacher's database writer.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/yourtionguo/codegraf/internal/model"
	"github.com/yourtionguo/codegraf/internal/perrors"
)

// Config configures retry behavior and batch size for the sink.
type Config struct {
	MaxRetries     int
	BaseRetryDelay time.Duration
	MaxRetryDelay  time.Duration
	BatchSize      int
}

func DefaultConfig() Config {
	return Config{
		MaxRetries:     3,
		BaseRetryDelay: 100 * time.Millisecond,
		MaxRetryDelay:  5 * time.Second,
		BatchSize:      500,
	}
}

// Sink is the postgres-backed GraphSink.
type Sink struct {
	db  *sql.DB
	cfg Config
}

// Open connects to postgres via the lib/pq driver and ensures the
// node/edge tables exist.
func Open(ctx context.Context, dsn string, cfg Config) (*Sink, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, perrors.SinkFailure("opening postgres connection", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, perrors.SinkFailure("pinging postgres", err)
	}
	s := &Sink{db: db, cfg: cfg}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sink) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS codegraf_nodes (
			fqn TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			kind TEXT NOT NULL,
			file_path TEXT NOT NULL,
			start_line INTEGER NOT NULL,
			end_line INTEGER NOT NULL,
			domain TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS codegraf_edges (
			source_fqn TEXT NOT NULL,
			target_fqn TEXT NOT NULL,
			kind TEXT NOT NULL,
			file_path TEXT NOT NULL,
			start_line INTEGER NOT NULL,
			end_line INTEGER NOT NULL,
			PRIMARY KEY (source_fqn, target_fqn, kind)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return perrors.SinkFailure("creating schema", err)
		}
	}
	return nil
}

// UpsertNodes writes nodes in configured-size batches, retrying each
// batch with exponential backoff on a retryable error.
func (s *Sink) UpsertNodes(ctx context.Context, nodes []model.GraphNode) error {
	size := s.cfg.BatchSize
	if size <= 0 {
		size = 500
	}
	for i := 0; i < len(nodes); i += size {
		end := i + size
		if end > len(nodes) {
			end = len(nodes)
		}
		batch := nodes[i:end]
		if err := s.withRetry(ctx, func() error { return s.upsertNodeBatch(ctx, batch) }); err != nil {
			return perrors.SinkFailure(fmt.Sprintf("upserting node batch [%d,%d)", i, end), err)
		}
	}
	return nil
}

func (s *Sink) upsertNodeBatch(ctx context.Context, batch []model.GraphNode) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO codegraf_nodes (fqn, name, kind, file_path, start_line, end_line, domain)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (fqn) DO UPDATE SET
			name = EXCLUDED.name, kind = EXCLUDED.kind, file_path = EXCLUDED.file_path,
			start_line = EXCLUDED.start_line, end_line = EXCLUDED.end_line, domain = EXCLUDED.domain
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, n := range batch {
		if _, err := stmt.ExecContext(ctx, n.Fqn, n.Name, string(n.Kind), n.FilePath,
			n.Location.StartLine, n.Location.EndLine, n.Domain); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// UpsertEdges writes edges in configured-size batches with the same
// retry behavior as UpsertNodes.
func (s *Sink) UpsertEdges(ctx context.Context, edges []model.GraphEdge) error {
	size := s.cfg.BatchSize
	if size <= 0 {
		size = 500
	}
	for i := 0; i < len(edges); i += size {
		end := i + size
		if end > len(edges) {
			end = len(edges)
		}
		batch := edges[i:end]
		if err := s.withRetry(ctx, func() error { return s.upsertEdgeBatch(ctx, batch) }); err != nil {
			return perrors.SinkFailure(fmt.Sprintf("upserting edge batch [%d,%d)", i, end), err)
		}
	}
	return nil
}

func (s *Sink) upsertEdgeBatch(ctx context.Context, batch []model.GraphEdge) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO codegraf_edges (source_fqn, target_fqn, kind, file_path, start_line, end_line)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (source_fqn, target_fqn, kind) DO UPDATE SET
			file_path = EXCLUDED.file_path, start_line = EXCLUDED.start_line, end_line = EXCLUDED.end_line
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range batch {
		if _, err := stmt.ExecContext(ctx, e.SourceFqn, e.TargetFqn, string(e.Kind), e.Location.FilePath,
			e.Location.StartLine, e.Location.EndLine); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Sink) Close() error {
	return s.db.Close()
}

// withRetry mirrors the teacher's exponential-backoff retry, bounded by
// cfg.MaxRetries, giving up immediately on a non-retryable error.
func (s *Sink) withRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	maxRetries := s.cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	base := s.cfg.BaseRetryDelay
	if base <= 0 {
		base = 100 * time.Millisecond
	}
	maxDelay := s.cfg.MaxRetryDelay
	if maxDelay <= 0 {
		maxDelay = 5 * time.Second
	}

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(float64(base) * math.Pow(2, float64(attempt-1)))
			if delay > maxDelay {
				delay = maxDelay
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isRetryable(err) {
			break
		}
		if attempt == maxRetries {
			break
		}
	}
	return fmt.Errorf("failed after retries: %w", lastErr)
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, substr := range []string{
		"connection refused", "connection reset", "connection timeout",
		"connection lost", "server closed", "broken pipe",
		"temporary", "timeout", "deadlock", "lock timeout",
		"too many clients", "starting up",
	} {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}
