package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/axkov/ladder/internal/logger"
	"github.com/axkov/ladder/step"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func setupModule(t *testing.T, root, module string) string {
	t.Helper()
	dir := filepath.Join(root, module)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	return dir
}

func Test_LocalFS_LoadsPairsInLexicographicOrder(t *testing.T) {
	root := t.TempDir()
	dir := setupModule(t, root, "billing")

	// written out of order on purpose; discovery order is by filename
	writeFile(t, dir, "002_add_payments.migrate.sql", "CREATE TABLE payments (id INTEGER)")
	writeFile(t, dir, "002_add_payments.rollback.sql", "DROP TABLE payments")
	writeFile(t, dir, "001_add_invoices.migrate.sql", "CREATE TABLE invoices (id INTEGER)")
	writeFile(t, dir, "001_add_invoices.rollback.sql", "DROP TABLE invoices")

	lfs := NewLocalFS(root, false, &logger.NullLogger{})

	seq, err := lfs.Load(context.Background(), "billing")
	require.NoError(t, err)
	require.Len(t, seq, 2)

	first, ok := seq[0].(step.SQL)
	require.True(t, ok)
	assert.Equal(t, "001_add_invoices", first.Key())
	assert.Equal(t, "CREATE TABLE invoices (id INTEGER)", first.UpScript)
	assert.Equal(t, "DROP TABLE invoices", first.DownScript)

	assert.Equal(t, "002_add_payments", seq[1].Key())
}

func Test_LocalFS_LenientModeSkipsNonConformingFiles(t *testing.T) {
	root := t.TempDir()
	dir := setupModule(t, root, "billing")

	writeFile(t, dir, "001_ok.migrate.sql", "SELECT 1")
	writeFile(t, dir, "001_ok.rollback.sql", "SELECT 1")
	writeFile(t, dir, "002_orphan.migrate.sql", "SELECT 2")
	writeFile(t, dir, "003_stray.rollback.sql", "SELECT 3")
	writeFile(t, dir, "README.md", "notes")

	lfs := NewLocalFS(root, false, &logger.NullLogger{})

	seq, err := lfs.Load(context.Background(), "billing")
	require.NoError(t, err)
	require.Len(t, seq, 1)
	assert.Equal(t, "001_ok", seq[0].Key())
}

func Test_LocalFS_StrictModeFailsOnNonConformingFiles(t *testing.T) {
	root := t.TempDir()
	dir := setupModule(t, root, "billing")

	writeFile(t, dir, "001_ok.migrate.sql", "SELECT 1")
	writeFile(t, dir, "001_ok.rollback.sql", "SELECT 1")
	writeFile(t, dir, "002_orphan.migrate.sql", "SELECT 2")

	lfs := NewLocalFS(root, true, &logger.NullLogger{})

	_, err := lfs.Load(context.Background(), "billing")
	assert.True(t, errors.Is(err, ErrNonConformingFile))
}

func Test_LocalFS_MissingModuleFolderIsAnError(t *testing.T) {
	lfs := NewLocalFS(t.TempDir(), false, &logger.NullLogger{})

	_, err := lfs.Load(context.Background(), "nope")
	assert.Error(t, err)
}

func Test_LocalFS_EmptyModuleFolderYieldsEmptySequence(t *testing.T) {
	root := t.TempDir()
	setupModule(t, root, "billing")

	lfs := NewLocalFS(root, true, &logger.NullLogger{})

	seq, err := lfs.Load(context.Background(), "billing")
	require.NoError(t, err)
	assert.Len(t, seq, 0)
}

func Test_LocalFS_CreateScaffoldsNextOrdinal(t *testing.T) {
	root := t.TempDir()
	lfs := NewLocalFS(root, false, &logger.NullLogger{})

	key, err := lfs.Create("billing", "Add Invoices")
	require.NoError(t, err)
	assert.Equal(t, "001_add_invoices", key)

	key, err = lfs.Create("billing", "add payments")
	require.NoError(t, err)
	assert.Equal(t, "002_add_payments", key)

	for _, name := range []string{
		"001_add_invoices.migrate.sql",
		"001_add_invoices.rollback.sql",
		"002_add_payments.migrate.sql",
		"002_add_payments.rollback.sql",
	} {
		_, err := os.Stat(filepath.Join(root, "billing", name))
		assert.NoError(t, err)
	}

	// scaffolded empty pairs are valid, loadable steps
	seq, err := lfs.Load(context.Background(), "billing")
	require.NoError(t, err)
	assert.Len(t, seq, 2)
}
