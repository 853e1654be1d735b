package database

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "InitDB should not return an error")
	require.NotNil(t, teardown)
	defer teardown()

	// Check if the 'kv_store' table was created
	var kvTableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='kv_store'").Scan(&kvTableName)
	require.NoError(t, err, "Querying for kv_store table should not produce an error")
	assert.Equal(t, "kv_store", kvTableName, "The 'kv_store' table should be created")

	// Check if the 'metrics' table was created
	var metricsTableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='metrics'").Scan(&metricsTableName)
	require.NoError(t, err, "Querying for metrics table should not produce an error")
	assert.Equal(t, "metrics", metricsTableName, "The 'metrics' table should be created")
}

func TestInitDB_MissingMigrations(t *testing.T) {
	_, _, err := InitDB(":memory:", "", "", "./does-not-exist")
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	query := "INSERT INTO kv_store (key, value) VALUES (?, ?)"
	assert.Equal(t, query, Rebind(DialectSQLite, query))
	assert.Equal(t, "INSERT INTO kv_store (key, value) VALUES ($1, $2)", Rebind(DialectPostgres, query))
}

func TestInitPostgres(t *testing.T) {
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_DSN not set")
	}
	db, teardown, err := InitPostgres(dsn, "../../migrations")
	require.NoError(t, err)
	defer teardown()

	var name string
	err = db.QueryRow("SELECT table_name FROM information_schema.tables WHERE table_name = 'kv_store'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "kv_store", name)
}

func TestInitPostgres_Unreachable(t *testing.T) {
	_, _, err := InitPostgres("postgres://clock@127.0.0.1:1/clock?sslmode=disable&connect_timeout=1", "../../migrations")
	assert.Error(t, err)
}
