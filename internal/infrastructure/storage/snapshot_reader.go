package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"TrendDigest/internal/domain"
	"TrendDigest/internal/ports"
)

const titleColumn = "title"

// SnapshotReader extracts content lines from a snapshot store whose table
// layout is not contractually fixed. Candidates are probed in order; the
// first table that answers a query wins, and per-candidate failures only
// advance the probe.
type SnapshotReader struct {
	logger *slog.Logger
}

var _ ports.SnapshotReader = (*SnapshotReader)(nil)

// NewSnapshotReader wires an optional logger for probe diagnostics.
func NewSnapshotReader(log *slog.Logger) *SnapshotReader {
	return &SnapshotReader{logger: log}
}

// ReadLines returns the normalized lines of the first usable candidate
// table, or empty when the store is absent or no candidate is usable.
// A missing store file is an expected condition, not an error.
func (r *SnapshotReader) ReadLines(ctx context.Context, path string, candidates []domain.StoreCandidate) ([]domain.ContentLine, error) {
	if _, err := os.Stat(path); err != nil {
		r.debug("snapshot store absent", "path", path)
		return nil, nil
	}

	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", path, err)
	}
	defer db.Close()

	for _, cand := range candidates {
		cols, ok := r.probe(ctx, db, cand.Table)
		if !ok {
			continue
		}

		// First successfully probed table decides the outcome, even
		// when it carries no title column.
		if !cols[titleColumn] {
			r.debug("candidate table has no title column", "path", path, "table", cand.Table)
			return nil, nil
		}

		lines, err := r.extract(ctx, db, cand, cols[cand.LabelColumn])
		if err != nil {
			r.debug("extract failed", "path", path, "table", cand.Table, "error", err)
			continue
		}

		r.debug("snapshot read", "path", path, "table", cand.Table, "lines", len(lines))
		return lines, nil
	}

	r.debug("no candidate table usable", "path", path)
	return nil, nil
}

// probe checks whether the table answers a query at all and reports its
// column set.
func (r *SnapshotReader) probe(ctx context.Context, db *sql.DB, table string) (map[string]bool, bool) {
	query, _, err := sq.Select("*").From(table).Limit(1).ToSql()
	if err != nil {
		return nil, false
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		r.debug("probe failed", "table", table, "error", err)
		return nil, false
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		r.debug("probe columns failed", "table", table, "error", err)
		return nil, false
	}

	set := make(map[string]bool, len(columns))
	for _, col := range columns {
		set[col] = true
	}
	return set, true
}

func (r *SnapshotReader) extract(ctx context.Context, db *sql.DB, cand domain.StoreCandidate, withLabel bool) ([]domain.ContentLine, error) {
	builder := sq.Select(titleColumn).From(cand.Table)
	if withLabel {
		builder = sq.Select(titleColumn, cand.LabelColumn).From(cand.Table)
	}

	query, _, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", cand.Table, err)
	}
	defer rows.Close()

	var lines []domain.ContentLine
	for rows.Next() {
		var title, label sql.NullString
		if withLabel {
			err = rows.Scan(&title, &label)
		} else {
			err = rows.Scan(&title)
		}
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		text := strings.TrimSpace(title.String)
		if text == "" {
			continue
		}

		lines = append(lines, domain.ContentLine{
			Text:        text,
			SourceLabel: strings.TrimSpace(label.String),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return lines, nil
}

func (r *SnapshotReader) debug(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}
