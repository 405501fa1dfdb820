// Package export writes forecast reports to a SQLite database, so that
// histories of several scenarios can be queried side by side.
package export

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/etnz/forecast"
	"github.com/etnz/forecast/date"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS entities (
  scenario TEXT NOT NULL,
  id       TEXT NOT NULL,
  name     TEXT NOT NULL,
  kind     TEXT NOT NULL,
  PRIMARY KEY (scenario, id)
);
CREATE TABLE IF NOT EXISTS snapshots (
  scenario        TEXT NOT NULL,
  entity          TEXT NOT NULL,
  date            TEXT NOT NULL,
  value           TEXT NOT NULL,
  period_accruals TEXT NOT NULL,
  year_accruals   TEXT NOT NULL,
  PRIMARY KEY (scenario, entity, date)
);`

// Store is a SQLite database of recorded histories.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (or creates) a SQLite database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// WriteReport stores every snapshot of r under the scenario name. A scenario
// written twice is replaced.
func (s *Store) WriteReport(ctx context.Context, scenario string, r *forecast.Report) (err error) {
	if scenario == "" {
		return fmt.Errorf("scenario name is required")
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"entities", "snapshots"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE scenario = ?", scenario); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	insert, err := tx.PrepareContext(ctx, `INSERT INTO snapshots (
	    scenario, entity, date, value, period_accruals, year_accruals
	  ) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer insert.Close()

	for _, e := range r.Entities {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO entities (scenario, id, name, kind) VALUES (?, ?, ?, ?)`,
			scenario, e.ID, e.Name, e.Kind.String(),
		); err != nil {
			return fmt.Errorf("insert entity %q: %w", e.ID, err)
		}
		for _, snap := range e.Snapshots {
			if _, err = insert.ExecContext(ctx,
				scenario,
				e.ID,
				snap.Date.String(),
				snap.Value.String(),
				snap.PeriodAccruals.String(),
				snap.YearAccruals.String(),
			); err != nil {
				return fmt.Errorf("insert snapshot %s/%s: %w", e.ID, snap.Date, err)
			}
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// History reads back the snapshots of an entity in a scenario, in chronological order.
func (s *Store) History(ctx context.Context, scenario, entity string) ([]forecast.Snapshot, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT date, value, period_accruals, year_accruals
		   FROM snapshots
		  WHERE scenario = ? AND entity = ?
		  ORDER BY date`,
		scenario, entity,
	)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []forecast.Snapshot
	for rows.Next() {
		var on, value, period, year string
		if err := rows.Scan(&on, &value, &period, &year); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		var snap forecast.Snapshot
		if snap.Date, err = date.Parse(on); err != nil {
			return nil, err
		}
		if snap.Value, err = decimal.NewFromString(value); err != nil {
			return nil, err
		}
		if snap.PeriodAccruals, err = decimal.NewFromString(period); err != nil {
			return nil, err
		}
		if snap.YearAccruals, err = decimal.NewFromString(year); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

// Scenarios returns the names of the stored scenarios.
func (s *Store) Scenarios(ctx context.Context) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT DISTINCT scenario FROM entities ORDER BY scenario`)
	if err != nil {
		return nil, fmt.Errorf("query scenarios: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan scenario: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
