package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilingFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.xml", "a.XML", "c.txt", "notes.md", "report.csv"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("content"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.xml"), 0755))

	found, err := NewDiscovery(dir).FindFilingFiles(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(found))
	for _, fi := range found {
		names = append(names, fi.Name)
	}
	// Sorted by name; directories and non-filing extensions excluded.
	assert.Equal(t, []string{"a.XML", "b.xml", "c.txt"}, names)

	for _, fi := range found {
		assert.Equal(t, int64(7), fi.Size)
		assert.Equal(t, filepath.Join(dir, fi.Name), fi.Path)
	}
}

func TestFindFilingFilesRelativeDir(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "filings"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "filings", "a.xml"), []byte("content"), 0644))

	discovery := NewDiscovery(base)

	t.Run("subdirectory resolves against the base path", func(t *testing.T) {
		found, err := discovery.FindFilingFiles("filings")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, filepath.Join(base, "filings", "a.xml"), found[0].Path)
	})

	t.Run("dot scans the base path itself", func(t *testing.T) {
		found, err := NewDiscovery(filepath.Join(base, "filings")).FindFilingFiles(".")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "a.xml", found[0].Name)
	})
}

func TestFindFilingFilesMissingDirectory(t *testing.T) {
	_, err := NewDiscovery(t.TempDir()).FindFilingFiles("does-not-exist")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		size      int64
		minSize   int64
		expectOK  bool
		expectWhy string
	}{
		{name: "valid file", size: 500, minSize: 100, expectOK: true},
		{name: "exactly at minimum", size: 100, minSize: 100, expectOK: true},
		{name: "empty file", size: 0, minSize: 100, expectOK: false, expectWhy: "empty file"},
		{name: "too small", size: 42, minSize: 100, expectOK: false, expectWhy: "file too small (42 bytes)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := Validate(FileInfo{Name: "f.xml", Size: tt.size}, tt.minSize)
			assert.Equal(t, tt.expectOK, ok)
			assert.Equal(t, tt.expectWhy, reason)
		})
	}
}
