package postgres

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Cada versión embebida tiene su up y su down, y golang-migrate las lee en orden.
func TestMigraciones_ParesUpDown(t *testing.T) {
	src, err := iofs.New(migrationsFS, migrationsDir)
	require.NoError(t, err)
	defer src.Close()

	version, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	var seen int
	for {
		up, _, err := src.ReadUp(version)
		require.NoError(t, err, "up de la versión %d", version)
		upSQL, err := io.ReadAll(up)
		require.NoError(t, err)
		_ = up.Close()
		assert.NotEmpty(t, strings.TrimSpace(string(upSQL)))

		down, _, err := src.ReadDown(version)
		require.NoError(t, err, "down de la versión %d", version)
		downSQL, err := io.ReadAll(down)
		require.NoError(t, err)
		_ = down.Close()
		assert.Contains(t, string(downSQL), "DROP")

		seen++
		next, err := src.Next(version)
		if errors.Is(err, os.ErrNotExist) {
			break
		}
		require.NoError(t, err)
		version = next
	}

	files, err := fs.Glob(migrationsFS, migrationsDir+"/*.sql")
	require.NoError(t, err)
	assert.Len(t, files, seen*2, "solo archivos .up.sql y .down.sql")
}

// El down de la versión inicial borra todas las tablas que crea el up.
func TestMigraciones_DownBorraLoQueCreaUp(t *testing.T) {
	up, err := migrationsFS.ReadFile(migrationsDir + "/001_init.up.sql")
	require.NoError(t, err)
	down, err := migrationsFS.ReadFile(migrationsDir + "/001_init.down.sql")
	require.NoError(t, err)

	for _, line := range strings.Split(string(up), "\n") {
		rest, ok := strings.CutPrefix(line, "CREATE TABLE IF NOT EXISTS ")
		if !ok {
			continue
		}
		table := strings.Fields(rest)[0]
		assert.Contains(t, string(down), "DROP TABLE IF EXISTS "+table+";", table)
	}
}
