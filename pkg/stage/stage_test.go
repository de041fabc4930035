package stage

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeZip builds a zip archive at path with the given member names and
// contents. Names ending in "/" become directory entries.
func writeZip(t *testing.T, path string, members map[string][]byte) {
	t.Helper()

	out, err := os.Create(path)
	require.NoError(t, err)
	defer out.Close()

	zw := zip.NewWriter(out)
	for name, content := range members {
		if content == nil {
			_, err := zw.Create(name)
			require.NoError(t, err)
			continue
		}
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func TestZipStager_Stage(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "proj.zip")
	writeZip(t, archive, map[string][]byte{
		"proj/":           nil,
		"proj/a.txt":      []byte("hello"),
		"proj/sub/b.txt":  []byte("nested"),
		"proj/empty.file": {},
	})

	s := NewZipStager(archive)
	assert.Equal(t, "proj.zip", s.Name())

	dir, cleanup, err := s.Stage()
	require.NoError(t, err)
	defer cleanup()

	content, err := os.ReadFile(filepath.Join(dir, "proj", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	content, err = os.ReadFile(filepath.Join(dir, "proj", "sub", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "nested", string(content))
}

func TestZipStager_CleanupRemovesDir(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "proj.zip")
	writeZip(t, archive, map[string][]byte{"a.txt": []byte("x")})

	dir, cleanup, err := NewZipStager(archive).Stage()
	require.NoError(t, err)

	cleanup()
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestZipStager_NotAZipExtension(t *testing.T) {
	p := filepath.Join(t.TempDir(), "proj.tar")
	require.NoError(t, os.WriteFile(p, []byte("not a zip"), 0o644))

	_, _, err := NewZipStager(p).Stage()
	require.ErrorIs(t, err, ErrInvalidArchive)
}

func TestZipStager_CorruptArchive(t *testing.T) {
	p := filepath.Join(t.TempDir(), "broken.zip")
	require.NoError(t, os.WriteFile(p, []byte("definitely not zip bytes"), 0o644))

	_, _, err := NewZipStager(p).Stage()
	require.ErrorIs(t, err, ErrInvalidArchive)
}

func TestZipStager_MissingArchive(t *testing.T) {
	_, _, err := NewZipStager(filepath.Join(t.TempDir(), "nope.zip")).Stage()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidArchive)
}

func TestZipStager_RejectsPathTraversal(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "evil.zip")
	writeZip(t, archive, map[string][]byte{
		"../escape.txt": []byte("gotcha"),
	})

	_, _, err := NewZipStager(archive).Stage()
	require.ErrorIs(t, err, ErrInvalidArchive)
}

func TestIsGitURL(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"https://example.com/org/repo.git", true},
		{"git@example.com:org/repo.git", true},
		{"git@example.com:org/repo", true},
		{"/home/user/proj.zip", false},
		{"proj.zip", false},
		{"https://example.com/org/repo", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsGitURL(tt.input))
		})
	}
}

func TestGitStager_Name(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/org/repo.git", "repo"},
		{"git@example.com:org/repo.git", "repo"},
		{"git@example.com:repo.git", "repo"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, NewGitStager(tt.url).Name())
		})
	}
}

func TestForSource(t *testing.T) {
	_, isGit := ForSource("git@example.com:org/repo.git").(*GitStager)
	assert.True(t, isGit)

	_, isZip := ForSource("repo.zip").(*ZipStager)
	assert.True(t, isZip)
}
