// Package files discovers and screens candidate filing documents on
// disk. It is the file-enumeration collaborator of the extraction
// pipeline: listing and validation only, no content parsing.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileInfo represents information about a discovered file.
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides filing discovery operations rooted at a base path.
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindFilingFiles finds all XML filing documents in the directory.
// Filings occasionally arrive with a .txt extension, so both are
// accepted. Results are sorted by name for deterministic batch order.
func (d *Discovery) FindFilingFiles(dir string) ([]FileInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		lower := strings.ToLower(name)
		if !strings.HasSuffix(lower, ".xml") && !strings.HasSuffix(lower, ".txt") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// Validate screens a discovered file before it enters the pipeline.
// It returns false with a human-readable reason for files that cannot
// hold a real filing.
func Validate(fi FileInfo, minSize int64) (bool, string) {
	if fi.Size == 0 {
		return false, "empty file"
	}
	if fi.Size < minSize {
		return false, fmt.Sprintf("file too small (%d bytes)", fi.Size)
	}
	return true, ""
}
