package finder

import (
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// DefaultPatterns matches the usual Django template extensions at any depth
var DefaultPatterns = []string{"**/*.html", "**/*.djhtml", "**/*.txt"}

// FindTemplates returns the files of fs matching any of the doublestar patterns,
// sorted and without duplicates. No patterns means DefaultPatterns.
func FindTemplates(fs afero.Fs, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	fsys := afero.NewIOFS(fs)

	seen := map[string]bool{}
	var files []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("bad glob %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", pattern, err)
		}
		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				files = append(files, match)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}
