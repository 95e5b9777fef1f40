package designgen

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// ScanStats tracks document discovery statistics.
type ScanStats struct {
	FilesDiscovered int
	FilesLoaded     int
	FilesSkipped    int
}

var (
	// gitignore caching
	gitIgnoreCache *ignore.GitIgnore
	gitIgnoreOnce  sync.Once
)

// loadGitIgnore loads the .gitignore file once (thread-safe).
// Gracefully degrades if .gitignore doesn't exist.
func loadGitIgnore() *ignore.GitIgnore {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			gitIgnoreCache = nil
			return
		}
		gitIgnoreCache = gi
	})
	return gitIgnoreCache
}

// shouldSkipFile excludes gitignored files from document scanning. Only
// relative paths are checked; absolute paths (like /tmp fixtures) are not
// subject to the project gitignore.
func shouldSkipFile(path string) bool {
	if !filepath.IsAbs(path) {
		gi := loadGitIgnore()
		if gi != nil && gi.MatchesPath(path) {
			return true
		}
	}
	return false
}

// ScanDocuments expands glob patterns to exported design-document JSON files
// and loads each one. A file that fails to load becomes a warning, not an
// error; the scan continues.
func ScanDocuments(patterns []string) ([]*Document, ScanStats, []string, error) {
	var (
		docs     []*Document
		warnings []string
		stats    ScanStats
	)
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, warnings, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if shouldSkipFile(match) {
				stats.FilesSkipped++
				continue
			}

			doc, err := LoadDocument(match)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("failed to load %s: %v", match, err))
				stats.FilesSkipped++
				continue
			}
			docs = append(docs, doc)
			stats.FilesLoaded++
		}
	}

	return docs, stats, warnings, nil
}

// LoadDocument reads one exported design document from disk.
func LoadDocument(path string) (*Document, error) {
	// #nosec G304 - path comes from trusted configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	doc, err := DecodeDocument(data)
	if err != nil {
		return nil, err
	}
	if doc.Name == "" {
		doc.Name = filepath.Base(path)
	}
	return doc, nil
}

// fileExport is the shape of a raw design-tool file export: the pages hang
// off a DOCUMENT root node.
type fileExport struct {
	Name     string `json:"name"`
	Document *Node  `json:"document"`
}

// DecodeDocument accepts either the native {name, pages} shape or a raw
// design-tool file export {name, document:{children: pages}}.
func DecodeDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err == nil && len(doc.Pages) > 0 {
		return &doc, nil
	}

	var export fileExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if export.Document == nil {
		return nil, fmt.Errorf("decode document: no pages and no document root")
	}
	return &Document{Name: export.Name, Pages: export.Document.Children}, nil
}
