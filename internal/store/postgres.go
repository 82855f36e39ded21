package store

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS records (
    tree TEXT NOT NULL,
    id   INTEGER NOT NULL,
    kind TEXT NOT NULL,
    data TEXT NOT NULL,
    PRIMARY KEY (tree, id)
)`

// postgresEngine persists rows in a Postgres database reached through a
// connection descriptor DSN. The indirect store configuration.
type postgresEngine struct {
	dsn string
	db  *sql.DB
}

func newPostgresEngine(dsn string) *postgresEngine {
	return &postgresEngine{dsn: dsn}
}

func (e *postgresEngine) Name() string { return "postgres" }

func (e *postgresEngine) Open() error {
	db, err := sql.Open("pgx", e.dsn)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.Exec(postgresSchema); err != nil {
		db.Close()
		return fmt.Errorf("init postgres schema: %w", err)
	}
	e.db = db
	return nil
}

func (e *postgresEngine) Load() ([]Row, error) {
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
func (e *postgresEngine) Apply(ops []WriteOp) error {
	tx, err := e.db.Begin()
	if err != nil {
		return fmt.Errorf("begin commit: %w", err)
	}
	defer tx.Rollback()

	for _, op := range ops {
		if op.Delete {
			if _, err := tx.Exec("DELETE FROM records WHERE tree = $1 AND id = $2", op.Tree, op.ID); err != nil {
				return fmt.Errorf("delete %s/%d: %w", op.Tree, op.ID, err)
			}
			continue
		}
		_, err := tx.Exec(
			`INSERT INTO records (tree, id, kind, data) VALUES ($1, $2, $3, $4)
			 ON CONFLICT (tree, id) DO UPDATE SET kind = excluded.kind, data = excluded.data`,
			op.Tree, op.ID, op.Kind, string(op.Data),
		)
		if err != nil {
			return fmt.Errorf("upsert %s/%d: %w", op.Tree, op.ID, err)
		}
	}
	return tx.Commit()
}

func (e *postgresEngine) Close() error {
	if e.db == nil {
		return nil
	}
	err := e.db.Close()
	e.db = nil
	return err
}

var _ Engine = (*postgresEngine)(nil)
