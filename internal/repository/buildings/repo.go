// Package buildings runs oracle-generated SQL against the read-only
// relational snapshot of the BDNB buildings table.
package buildings

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // registers the pure-Go sqlite driver

	"github.com/urbanatlas/bdnbq/internal/domain"
)

// Repo executes SQL queries over the buildings snapshot.
type Repo struct {
	db *sql.DB
}

// Open opens the sqlite snapshot read-only. The file is produced by the
// ingestion pipeline together with the shard artifacts.
func Open(path string) (*Repo, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	return &Repo{db: db}, nil
}

// NewWithDB wraps an existing database handle (test use).
func NewWithDB(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Query runs a SELECT and materializes the result, preserving the backend's
// column order. BLOB and TEXT values come back as strings.
func (r *Repo) Query(ctx context.Context, query string) (domain.ResultSet, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return domain.ResultSet{}, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return domain.ResultSet{}, fmt.Errorf("columns: %w", err)
	}

	result := domain.ResultSet{Columns: columns, Rows: []domain.Row{}}

	values := make([]any, len(columns))
	scanTargets := make([]any, len(columns))
	for i := range values {
		scanTargets[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			return domain.ResultSet{}, fmt.Errorf("scan: %w", err)
		}
		row := make(domain.Row, len(columns))
		for i, col := range columns {
			row[col] = normalize(values[i])
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return domain.ResultSet{}, fmt.Errorf("rows: %w", err)
	}

	return result, nil
}

// Ping checks the snapshot is readable.
func (r *Repo) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (r *Repo) Close() error {
	return r.db.Close() //nolint:wrapcheck // delegating to database/sql
}

// normalize maps driver values to JSON-friendly scalars.
func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
