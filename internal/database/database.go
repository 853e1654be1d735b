package database

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Dialect names the SQL flavour behind a connection. The storage layer uses it to pick
// placeholder syntax.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectTurso    Dialect = "turso"
	DialectPostgres Dialect = "postgres"
)

// InitDB opens the match database and runs the migrations in migrationsDir.
// With an empty primaryUrl, dbPath is a local SQLite file (":memory:" works for tests).
// Otherwise the remote Turso database at primaryUrl is used.
// The returned teardown closes the connection.
func InitDB(dbPath string, primaryUrl string, authToken string, migrationsDir string) (*sql.DB, func(), error) {
	if primaryUrl == "" {
		log.Info("Initializing local-only SQLite database", "path", dbPath)
		db, err := sql.Open("sqlite3", dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open local database: %w", err)
		}
		// Every connection to ":memory:" is a separate database.
		db.SetMaxOpenConns(1)
		if err = migrate(db, DialectSQLite, migrationsDir); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to migrate local db: %w", err)
		}
		return db, teardownFor(db, dbPath), nil
	}

	log.Info("Initializing Turso database", "url", primaryUrl)
	db, err := sql.Open("libsql", primaryUrl+"?authToken="+authToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db %s: %w", primaryUrl, err)
	}
	if err = migrate(db, DialectTurso, migrationsDir); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate turso db: %w", err)
	}
	return db, teardownFor(db, primaryUrl), nil
}

// InitPostgres opens a Postgres database from a DSN and runs the migrations.
func InitPostgres(dsn string, migrationsDir string) (*sql.DB, func(), error) {
	log.Info("Initializing Postgres database")
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err = migrate(db, DialectPostgres, migrationsDir); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate postgres: %w", err)
	}
	return db, teardownFor(db, "postgres"), nil
}

func migrate(db *sql.DB, dialect Dialect, migrationsDir string) error {
	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("unsupported dialect %s: %w", dialect, err)
	}
	if err := goose.Up(db, migrationsDir); err != nil {
		log.Error("Failed to run migrations", "error", err, "dir", migrationsDir)
		return err
	}
	log.Info("Database initialized successfully", "dialect", dialect)
	return nil
}

func teardownFor(db *sql.DB, name string) func() {
	return func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err, "db", name)
		}
	}
}

// Rebind rewrites "?" placeholders into the positional form the dialect expects.
func Rebind(dialect Dialect, query string) string {
	if dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
