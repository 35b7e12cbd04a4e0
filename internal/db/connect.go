package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:athena.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/athena?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := EnsureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates all tables if missing. Safe to run on every start.
func EnsureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	default:
		return fmt.Errorf("unsupported driver: %s", driver)
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS quiz_sets (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  urls TEXT NOT NULL DEFAULT '',
  raw_urls TEXT NOT NULL DEFAULT '',
  eye_icon_state INTEGER NOT NULL DEFAULT 1,
  lock_state INTEGER NOT NULL DEFAULT 1,
  score INTEGER,
  attempts INTEGER NOT NULL DEFAULT 0,
  finished INTEGER NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT '',
  sort_order TEXT NOT NULL DEFAULT 'desc',
  current_question_index INTEGER NOT NULL DEFAULT 0,
  current_filter TEXT NOT NULL DEFAULT 'all',
  last_updated INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS questions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  quiz_set_id TEXT NOT NULL REFERENCES quiz_sets(id) ON DELETE CASCADE,
  ord INTEGER NOT NULL,
  text TEXT NOT NULL,
  options_json TEXT NOT NULL,
  answer TEXT NOT NULL,
  favorite INTEGER NOT NULL DEFAULT 0,
  url TEXT NOT NULL DEFAULT '',
  explanation TEXT NOT NULL DEFAULT '',
  discussion_link TEXT NOT NULL DEFAULT '',
  user_selected_option TEXT,
  has_math_content INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS further_explanations (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  question_id INTEGER NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
  explanation TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS attempts (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  quiz_set_id TEXT NOT NULL REFERENCES quiz_sets(id) ON DELETE CASCADE,
  score INTEGER NOT NULL,
  ts INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  email TEXT UNIQUE,
  password_hash TEXT,
  github_id TEXT UNIQUE,
  avatar_url TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS editor_content (
  id TEXT PRIMARY KEY,
  content TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS event_log (
  "offset" INTEGER PRIMARY KEY AUTOINCREMENT,
  typ TEXT NOT NULL,
  key TEXT NOT NULL,
  data TEXT NOT NULL,
  created_at INTEGER NOT NULL
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS quiz_sets (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  urls TEXT NOT NULL DEFAULT '',
  raw_urls TEXT NOT NULL DEFAULT '',
  eye_icon_state BOOLEAN NOT NULL DEFAULT TRUE,
  lock_state BOOLEAN NOT NULL DEFAULT TRUE,
  score INTEGER,
  attempts INTEGER NOT NULL DEFAULT 0,
  finished BOOLEAN NOT NULL DEFAULT FALSE,
  status TEXT NOT NULL DEFAULT '',
  sort_order TEXT NOT NULL DEFAULT 'desc',
  current_question_index INTEGER NOT NULL DEFAULT 0,
  current_filter TEXT NOT NULL DEFAULT 'all',
  last_updated BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS questions (
  id BIGSERIAL PRIMARY KEY,
  quiz_set_id TEXT NOT NULL REFERENCES quiz_sets(id) ON DELETE CASCADE,
  ord INTEGER NOT NULL,
  text TEXT NOT NULL,
  options_json TEXT NOT NULL,
  answer TEXT NOT NULL,
  favorite BOOLEAN NOT NULL DEFAULT FALSE,
  url TEXT NOT NULL DEFAULT '',
  explanation TEXT NOT NULL DEFAULT '',
  discussion_link TEXT NOT NULL DEFAULT '',
  user_selected_option TEXT,
  has_math_content BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS further_explanations (
  id BIGSERIAL PRIMARY KEY,
  question_id BIGINT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
  explanation TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS attempts (
  id BIGSERIAL PRIMARY KEY,
  quiz_set_id TEXT NOT NULL REFERENCES quiz_sets(id) ON DELETE CASCADE,
  score INTEGER NOT NULL,
  ts BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT UNIQUE,
  password_hash TEXT,
  github_id TEXT UNIQUE,
  avatar_url TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS editor_content (
  id TEXT PRIMARY KEY,
  content TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS event_log (
  "offset" BIGSERIAL PRIMARY KEY,
  typ TEXT NOT NULL,
  key TEXT NOT NULL,
  data TEXT NOT NULL,
  created_at BIGINT NOT NULL
);
`
