package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS records (
    tree TEXT NOT NULL,
    id   INTEGER NOT NULL,
    kind TEXT NOT NULL,
    data TEXT NOT NULL,
    PRIMARY KEY (tree, id)
);`

// sqliteEngine persists rows in a single SQLite file. The direct,
// file-backed store configuration.
type sqliteEngine struct {
	path string
	db   *sql.DB
}

func newSQLiteEngine(path string) *sqliteEngine {
	return &sqliteEngine{path: path}
}

func (e *sqliteEngine) Name() string { return "sqlite" }

// Open opens or creates the database file and ensures the schema. An
// existing file is reused as-is, never truncated.
func (e *sqliteEngine) Open() error {
	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", e.path)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", e.path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return fmt.Errorf("init sqlite schema: %w", err)
	}
	e.db = db
	return nil
}

func (e *sqliteEngine) Load() ([]Row, error) {
	rows, err := e.db.Query("SELECT tree, id, kind, data FROM records ORDER BY tree, id")
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			row  Row
			data string
		)
		if err := rows.Scan(&row.Tree, &row.ID, &row.Kind, &data); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		row.Data = []byte(data)
		out = append(out, row)
	}
	return out, rows.Err()
}

// Apply lands all ops inside one SQL transaction.
func (e *sqliteEngine) Apply(ops []WriteOp) error {
	tx, err := e.db.Begin()
	if err != nil {
		return fmt.Errorf("begin commit: %w", err)
	}
	defer tx.Rollback()

	for _, op := range ops {
		if op.Delete {
			if _, err := tx.Exec("DELETE FROM records WHERE tree = ? AND id = ?", op.Tree, op.ID); err != nil {
				return fmt.Errorf("delete %s/%d: %w", op.Tree, op.ID, err)
			}
			continue
		}
		_, err := tx.Exec(
			`INSERT INTO records (tree, id, kind, data) VALUES (?, ?, ?, ?)
			 ON CONFLICT (tree, id) DO UPDATE SET kind = excluded.kind, data = excluded.data`,
			op.Tree, op.ID, op.Kind, string(op.Data),
		)
		if err != nil {
			return fmt.Errorf("upsert %s/%d: %w", op.Tree, op.ID, err)
		}
	}
	return tx.Commit()
}

func (e *sqliteEngine) Close() error {
	if e.db == nil {
		return nil
	}
	err := e.db.Close()
	e.db = nil
	return err
}

var _ Engine = (*sqliteEngine)(nil)
