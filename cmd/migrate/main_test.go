package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kvMigration = `
-- +migrate Up
CREATE TABLE kv_entries (key TEXT PRIMARY KEY, value TEXT NOT NULL);

-- +migrate Down
DROP TABLE kv_entries;
`

func TestSection(t *testing.T) {
	t.Run("Up", func(t *testing.T) {
		up := section(kvMigration, "Up")
		assert.Contains(t, up, "CREATE TABLE kv_entries")
		assert.NotContains(t, up, "DROP TABLE")
		assert.NotContains(t, up, "-- +migrate")
	})

	t.Run("Down", func(t *testing.T) {
		down := section(kvMigration, "Down")
		assert.Contains(t, down, "DROP TABLE kv_entries")
		assert.NotContains(t, down, "CREATE TABLE")
	})
}

func TestMigrateUp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	tmpDir := t.TempDir()
	fileName := "001_create_kv_entries.sql"
	filePath := filepath.Join(tmpDir, fileName)
	require.NoError(t, os.WriteFile(filePath, []byte(kvMigration), 0o644))

	mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
		WithArgs(fileName).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("CREATE TABLE kv_entries").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").
		WithArgs(fileName).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, migrateUp(db, []string{filePath}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_SkipsApplied(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "001_create_kv_entries.sql")
	require.NoError(t, os.WriteFile(filePath, []byte(kvMigration), 0o644))

	mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
		WithArgs("001_create_kv_entries.sql").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	require.NoError(t, migrateUp(db, []string{filePath}))
	require.NoError(t, mock.ExpectationsWereMet())
}
