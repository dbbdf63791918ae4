package pr

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tildaslashalef/revjudge/internal/loggy"
)

// LoadFile reads a single exported pull request JSON file
func LoadFile(path string) (*PullRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading PR file %s: %w", path, err)
	}

	var pullRequest PullRequest
	if err := json.Unmarshal(data, &pullRequest); err != nil {
		return nil, fmt.Errorf("parsing PR file %s: %w", path, err)
	}

	return &pullRequest, nil
}

// LoadDir reads every exported PR JSON file in a directory, sorted by filename.
// Files that fail to load are skipped with a warning so a single bad export
// does not abort an entire run.
func LoadDir(dir string) ([]*PullRequest, error) {
	pattern := filepath.Join(dir, "*.json")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("globbing PR directory %s: %w", dir, err)
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("no PR files found in %s", dir)
	}

	sort.Strings(matches)

	pullRequests := make([]*PullRequest, 0, len(matches))
	for _, path := range matches {
		pullRequest, err := LoadFile(path)
		if err != nil {
			loggy.Warn("Skipping unreadable PR file", "path", path, "error", err)
			continue
		}
		pullRequests = append(pullRequests, pullRequest)
	}

	if len(pullRequests) == 0 {
		return nil, fmt.Errorf("no valid PR files in %s", dir)
	}

	return pullRequests, nil
}
