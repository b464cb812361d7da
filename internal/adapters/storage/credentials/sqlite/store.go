package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `CREATE TABLE IF NOT EXISTS credentials (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL
)`

// Store persiste las credenciales en un archivo SQLite local.
// El archivo y sus sidecars WAL quedan en 0600 dentro de un directorio 0700.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open abre (o crea) la base en path y aplica el schema.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite credentials: path required")
	}

	if err := secureDir(filepath.Dir(path)); err != nil {
		return nil, err
	}
	// SQLite crea -wal y -shm con los permisos del archivo principal,
	// así que el archivo tiene que existir en 0600 antes de abrirlo.
	if err := secureFile(path, true); err != nil {
		return nil, err
	}

	dsn := "file:" + (&url.URL{Path: path}).EscapedPath() + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite credentials: open: %w", err)
	}
	// un solo writer
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite credentials: ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite credentials: schema: %w", err)
	}
	// sidecars que quedaron de una versión anterior o de otro umask
	for _, f := range []string{path, path + "-wal", path + "-shm"} {
		if err := secureFile(f, false); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return &Store{db: db, now: time.Now}, nil
}

// secureDir crea el directorio o lo deja en 0700 si ya existía.
func secureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("sqlite credentials: ensure dir: %w", err)
	}
	if err := os.Chmod(dir, 0o700); err != nil {
		return fmt.Errorf("sqlite credentials: chmod dir: %w", err)
	}
	return nil
}

// secureFile deja path en 0600. Con create=false un archivo ausente no es error.
func secureFile(path string, create bool) error {
	if create {
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
		if err != nil {
			return fmt.Errorf("sqlite credentials: create %s: %w", filepath.Base(path), err)
		}
		_ = f.Close()
	}
	if err := os.Chmod(path, 0o600); err != nil {
		if !create && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("sqlite credentials: chmod %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("sqlite credentials: get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("sqlite credentials: key required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, s.now().UTC())
	if err != nil {
		return fmt.Errorf("sqlite credentials: set %s: %w", key, err)
	}
	return nil
}

// Delete es idempotente: borrar una clave inexistente no es error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, key); err != nil {
		return fmt.Errorf("sqlite credentials: delete %s: %w", key, err)
	}
	return nil
}
