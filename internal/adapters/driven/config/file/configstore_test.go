package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestSetAndGet(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("backend.url", "http://localhost:5000/api"))
	require.NoError(t, store.Set("backend.timeout_seconds", 120))
	require.NoError(t, store.Set("auth.logged_in", true))

	assert.Equal(t, "http://localhost:5000/api", store.GetString("backend.url"))
	assert.Equal(t, 120, store.GetInt("backend.timeout_seconds"))
	assert.True(t, store.GetBool("auth.logged_in"))
}

func TestGetMissingKey(t *testing.T) {
	store := newTestStore(t)

	_, ok := store.Get("nope")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("nope"))
	assert.Zero(t, store.GetInt("nope"))
	assert.False(t, store.GetBool("nope"))
}

func TestGetWrongType(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("key", 42))

	assert.Empty(t, store.GetString("key"))
	assert.False(t, store.GetBool("key"))
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("auth.email", "owner@example.com"))
	require.NoError(t, store.Delete("auth.email"))

	_, ok := store.Get("auth.email")
	assert.False(t, ok)

	// Absent key deletes are no-ops.
	require.NoError(t, store.Delete("auth.email"))
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("backend.url", "http://10.0.0.2:5000/api"))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.2:5000/api", reopened.GetString("backend.url"))
}

func TestLoadFlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := "[backend]\nurl = \"http://localhost:5000/api\"\n\n[auth]\nemail = \"owner@example.com\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/api", store.GetString("backend.url"))
	assert.Equal(t, "owner@example.com", store.GetString("auth.email"))
}

func TestRestrictivePermissions(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("auth.email", "owner@example.com"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
