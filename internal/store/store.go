// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/SofianeSadi/rally-time/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for setup snapshots.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS setups (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			target_label TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS setup_members (
			setup_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			member_id TEXT NOT NULL,
			name TEXT NOT NULL,
			march_minutes TEXT NOT NULL,
			march_seconds TEXT NOT NULL,
			PRIMARY KEY (setup_id, position)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveSetup stores a setup snapshot under the given name, replacing the
// member list wholesale.
func (s *Store) SaveSetup(ctx context.Context, name string, setup model.Setup) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO setups (name, target_label, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET target_label = excluded.target_label, updated_at = excluded.updated_at`,
		name, setup.TargetLabel, now); err != nil {
		return err
	}

	var setupID int64
	if err = tx.QueryRowContext(ctx, `SELECT id FROM setups WHERE name = ?`, name).Scan(&setupID); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM setup_members WHERE setup_id = ?`, setupID); err != nil {
		return err
	}

	if len(setup.Members) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO setup_members (setup_id, position, member_id, name, march_minutes, march_seconds)
			 VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for i, m := range setup.Members {
			if _, err = stmt.ExecContext(ctx, setupID, i, m.ID, m.Name, m.MarchMinutes, m.MarchSeconds); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// LoadSetup returns the snapshot stored under name. A missing name is not
// an error: it yields the empty default.
func (s *Store) LoadSetup(ctx context.Context, name string) (model.Setup, error) {
	var setupID int64
	var setup model.Setup
	err := s.db.QueryRowContext(ctx,
		`SELECT id, target_label FROM setups WHERE name = ?`, name).Scan(&setupID, &setup.TargetLabel)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Setup{}, nil
	}
	if err != nil {
		return model.Setup{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT member_id, name, march_minutes, march_seconds
		 FROM setup_members WHERE setup_id = ? ORDER BY position ASC`, setupID)
	if err != nil {
		return model.Setup{}, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	for rows.Next() {
		var m model.Participant
		if err := rows.Scan(&m.ID, &m.Name, &m.MarchMinutes, &m.MarchSeconds); err != nil {
			return model.Setup{}, err
		}
		setup.Members = append(setup.Members, m)
	}
	if err := rows.Err(); err != nil {
		return model.Setup{}, err
	}
	return setup, nil
}

// ListSetups returns all stored setups ordered by name.
func (s *Store) ListSetups(ctx context.Context) ([]model.SetupInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.name, s.updated_at, COUNT(m.setup_id)
		 FROM setups s
		 LEFT JOIN setup_members m ON m.setup_id = s.id
		 GROUP BY s.id
		 ORDER BY s.name ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var infos []model.SetupInfo
	for rows.Next() {
		var info model.SetupInfo
		var updatedAt string
		if err := rows.Scan(&info.Name, &updatedAt, &info.Members); err != nil {
			return nil, err
		}
		// A corrupt timestamp degrades to the zero value; the setup itself
		// stays listed.
		if parsed, perr := time.Parse(time.RFC3339Nano, updatedAt); perr == nil {
			info.UpdatedAt = parsed
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return infos, nil
}

// DeleteSetup removes a stored setup and its members.
func (s *Store) DeleteSetup(ctx context.Context, name string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	var setupID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM setups WHERE name = ?`, name).Scan(&setupID)
	if errors.Is(err, sql.ErrNoRows) {
		err = fmt.Errorf("no setup named %q", name)
		return err
	}
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM setup_members WHERE setup_id = ?`, setupID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM setups WHERE id = ?`, setupID); err != nil {
		return err
	}
	return tx.Commit()
}
