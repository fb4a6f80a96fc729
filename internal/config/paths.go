package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths centralizes every directory the tools read or write. Filings
// land in FilingsDir, generated CSVs in ReportsDir, transcript inputs
// in TranscriptsDir.
type Paths struct {
	BaseDir        string
	DataDir        string
	FilingsDir     string
	ReportsDir     string
	TranscriptsDir string
	LogsDir        string
}

// NewPaths builds the path layout rooted at the configured data
// directory. Relative directories resolve against the working
// directory.
func NewPaths(cfg PathsConfig) (*Paths, error) {
	base, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve working directory: %w", err)
	}

	dataDir := cfg.DataDir
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(base, dataDir)
	}
	logsDir := cfg.LogsDir
	if !filepath.IsAbs(logsDir) {
		logsDir = filepath.Join(base, logsDir)
	}

	return &Paths{
		BaseDir:        base,
		DataDir:        dataDir,
		FilingsDir:     filepath.Join(dataDir, "filings"),
		ReportsDir:     filepath.Join(dataDir, "reports"),
		TranscriptsDir: filepath.Join(dataDir, "transcripts"),
		LogsDir:        logsDir,
	}, nil
}

// EnsureDirectories creates every managed directory that does not
// already exist.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.DataDir, p.FilingsDir, p.ReportsDir, p.TranscriptsDir, p.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetReportPath returns the full path for a report file.
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetFilingPath returns the full path for a filing file.
func (p *Paths) GetFilingPath(filename string) string {
	return filepath.Join(p.FilingsDir, filename)
}

// GetLogPath returns the full path for a log file.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
