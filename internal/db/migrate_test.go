package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDB_InMemory(t *testing.T) {
	sqlDB, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer sqlDB.Close()

	var fk int
	require.NoError(t, sqlDB.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)

	for _, table := range []string{"sessions", "app_state"} {
		var name string
		err := sqlDB.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	sqlDB, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer sqlDB.Close()

	require.NoError(t, Migrate(sqlDB))
	require.NoError(t, Migrate(sqlDB))
}

func TestOpenDB_CreatesDirectory(t *testing.T) {
	path := t.TempDir() + "/nested/dir/multibuild.db"
	sqlDB, err := OpenDB(path)
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}
