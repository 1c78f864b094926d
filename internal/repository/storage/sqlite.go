package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// import the SQLite driver to register it with the database/sql package.
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

type SQLiteStorage struct {
	Connection *sql.DB
}

func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	if err = conn.Ping(); err != nil {
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &SQLiteStorage{Connection: conn}, nil
}

func (that *SQLiteStorage) Init(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS counters (key TEXT PRIMARY KEY, value INTEGER NOT NULL)`

	_, err := that.Connection.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("can't create table: %w", err)
	}

	return nil
}

func (that *SQLiteStorage) Get(ctx context.Context, key string) (int, error) {
	query := `SELECT value FROM counters WHERE key = ?`

	var value int

	err := that.Connection.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrKeyNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("can't get %s: %w", key, err)
	}

	return value, nil
}

func (that *SQLiteStorage) Set(ctx context.Context, key string, value int) error {
	query := `INSERT INTO counters (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`

	if _, err := that.Connection.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("can't set %s: %w", key, err)
	}

	return nil
}

func (that *SQLiteStorage) Delete(ctx context.Context, keys ...string) error {
	tx, err := that.Connection.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}

	for _, key := range keys {
		if _, err = tx.ExecContext(ctx, `DELETE FROM counters WHERE key = ?`, key); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("can't delete %s: %w", key, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit transaction: %w", err)
	}

	return nil
}

func (that *SQLiteStorage) Close() error {
	return that.Connection.Close()
}
