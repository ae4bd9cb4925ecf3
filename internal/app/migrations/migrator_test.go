package migrations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	assert.Equal(t, "001", Version("001_init.sql"))
	assert.Equal(t, "002", Version("/srv/migrations/002_add_summaries.sql"))
	assert.Equal(t, "plain.sql", Version("plain.sql"))
}

func TestSQLFilesOrdersAndFilters(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"010_later.sql", "001_init.sql", "README.md", "002_next.sql"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o755))

	files, err := SQLFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql", "002_next.sql", "010_later.sql"}, files)
}

func TestSQLFilesMissingDirectory(t *testing.T) {
	_, err := SQLFiles(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestInitMigrationDeclaresNaturalKeyIndexes(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)

	sql := string(content)
	assert.Contains(t, sql, "users_roll_no_key")
	assert.Contains(t, sql, "users_teacher_id_key")
	assert.Contains(t, sql, "upload_summaries")
}
