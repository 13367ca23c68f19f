package repository

import (
	"context"
	"database/sql"
	"errors"
)

// MySQLBlobStore keeps blobs in the kv_blobs table, one row per key.
type MySQLBlobStore struct {
	db *sql.DB // db is the underlying database connection
}

// NewMySQLBlobStore constructs a MySQLBlobStore with the given DB handle.
func NewMySQLBlobStore(db *sql.DB) *MySQLBlobStore {
	return &MySQLBlobStore{db: db}
}

// EnsureSchema creates the kv_blobs table when it does not exist yet.
func (r *MySQLBlobStore) EnsureSchema(ctx context.Context) error {
	const q = `CREATE TABLE IF NOT EXISTS kv_blobs (
	               name       VARCHAR(191) NOT NULL PRIMARY KEY,
	               value      LONGBLOB     NOT NULL,
	               updated_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	           ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`
	_, err := r.db.ExecContext(ctx, q)
	return err
}

// Get reads the blob stored under key.
func (r *MySQLBlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	const q = `SELECT value FROM kv_blobs WHERE name = ?`
	var v []byte
	if err := r.db.QueryRowContext(ctx, q, key).Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return v, true, nil
}

// Put inserts or replaces the blob under key in a single statement.
func (r *MySQLBlobStore) Put(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	const q = `INSERT INTO kv_blobs (name, value) VALUES (?, ?)
	           ON DUPLICATE KEY UPDATE value = VALUES(value), updated_at = CURRENT_TIMESTAMP`
	_, err := r.db.ExecContext(ctx, q, key, value)
	return err
}
