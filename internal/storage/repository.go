package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"orcamento/internal/core"
	"orcamento/internal/log"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	version, err := RunMigrations(dbPath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	slog.Debug("SQLite schema ready",
		log.FieldComponent, log.ComponentStorage,
		log.FieldOperation, log.OpStartup,
		"path", dbPath,
		"version", version)

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append stores one entry and returns its row id as reference.
func (r *SQLiteRepository) Append(ctx context.Context, month core.MonthKey, e core.Entry) (string, error) {
	if err := (core.Record{Month: month, Entry: e}).Validate(); err != nil {
		return "", err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO entries (month, description, amount_cents, kind) VALUES (?, ?, ?, ?)`,
		string(month), e.Description, e.Amount.Cents, string(e.Kind))
	if err != nil {
		return "", fmt.Errorf("insert entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("last insert id: %w", err)
	}

	slog.DebugContext(ctx, "Entry saved to SQLite",
		log.FieldComponent, log.ComponentStorage,
		log.FieldOperation, log.OpCreate,
		"id", id,
		"month", month,
		"amount_cents", e.Amount.Cents,
		"kind", e.Kind)

	return strconv.FormatInt(id, 10), nil
}

// ArchiveEntry stores an entry received from another process. The source
// reference makes redelivered messages a no-op; inserted reports whether a
// new row was written.
func (r *SQLiteRepository) ArchiveEntry(ctx context.Context, sourceRef string, rec core.Record) (inserted bool, err error) {
	if err := rec.Validate(); err != nil {
		return false, err
	}
	if sourceRef == "" {
		return false, fmt.Errorf("archive entry: empty source reference")
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO entries (month, description, amount_cents, kind, source_ref) VALUES (?, ?, ?, ?, ?)`,
		string(rec.Month), rec.Entry.Description, rec.Entry.Amount.Cents, string(rec.Entry.Kind), sourceRef)
	if err != nil {
		return false, fmt.Errorf("archive entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// LoadEntries returns every stored entry ordered by month, then insertion.
func (r *SQLiteRepository) LoadEntries(ctx context.Context) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT month, description, amount_cents, kind FROM entries ORDER BY month, id`)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var out []core.Record
	for rows.Next() {
		var (
			month, desc, kind string
			cents             int64
		)
		if err := rows.Scan(&month, &desc, &cents, &kind); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		key, err := core.ParseMonthKey(month)
		if err != nil {
			return nil, fmt.Errorf("stored entry: %w", err)
		}
		rec := core.Record{
			Month: key,
			Entry: core.Entry{
				Description: desc,
				Amount:      core.Money{Cents: cents},
				Kind:        core.Kind(kind),
			},
		}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("stored entry for %s: %w", month, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return out, nil
}

// MonthTotals returns the subtotal of every stored month.
func (r *SQLiteRepository) MonthTotals(ctx context.Context) (map[core.MonthKey]core.Money, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT month, SUM(amount_cents) FROM entries GROUP BY month`)
	if err != nil {
		return nil, fmt.Errorf("query month totals: %w", err)
	}
	defer rows.Close()

	out := make(map[core.MonthKey]core.Money)
	for rows.Next() {
		var (
			month string
			cents int64
		)
		if err := rows.Scan(&month, &cents); err != nil {
			return nil, fmt.Errorf("scan month total: %w", err)
		}
		out[core.MonthKey(month)] = core.Money{Cents: cents}
	}
	return out, rows.Err()
}
