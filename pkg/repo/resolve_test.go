package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_SingleTopLevelDir(t *testing.T) {
	staged := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(staged, "myproject"), 0o755))

	root, err := Resolve(staged, "myproject-main.zip")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(staged, "myproject"), root.Path)
	assert.Equal(t, "myproject", root.DisplayName)
	assert.Empty(t, root.Warning)
}

func TestResolve_HiddenDirsIgnored(t *testing.T) {
	staged := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(staged, ".git"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(staged, "proj"), 0o755))

	root, err := Resolve(staged, "proj.zip")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(staged, "proj"), root.Path)
	assert.Equal(t, "proj", root.DisplayName)
}

func TestResolve_MultipleTopLevelDirs(t *testing.T) {
	staged := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(staged, "x"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(staged, "y"), 0o755))

	root, err := Resolve(staged, "bundle.zip")
	require.NoError(t, err)
	assert.Equal(t, staged, root.Path)
	assert.Equal(t, "bundle", root.DisplayName)
	assert.Contains(t, root.Warning, "multiple top-level directories")
}

func TestResolve_FlatFileLayout(t *testing.T) {
	staged := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staged, "main.go"), []byte("package main\n"), 0o644))

	root, err := Resolve(staged, "flat.zip")
	require.NoError(t, err)
	assert.Equal(t, staged, root.Path)
	assert.Equal(t, "flat", root.DisplayName)
	assert.Contains(t, root.Warning, "flat file layout")
}

func TestResolve_EmptyArchive(t *testing.T) {
	staged := t.TempDir()

	root, err := Resolve(staged, "empty.zip")
	require.NoError(t, err)
	assert.Equal(t, staged, root.Path)
	assert.Equal(t, "empty", root.DisplayName)
	assert.Contains(t, root.Warning, "maybe empty")
}

func TestResolve_UnlistableStagedDir(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "does-not-exist"), "a.zip")
	require.Error(t, err)
}
