package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"medpredict/internal/classifier"
	"medpredict/internal/common/fsutil"
	"medpredict/pkg/types"
)

// Scanner discovers classifier artifacts in a directory.
type Scanner struct {
	// OnSkip, when set, is called for every candidate file that could not be
	// decoded. The scan continues with the remaining files.
	OnSkip func(path string, err error)
}

// NewScanner returns a Scanner that silently skips bad artifacts.
func NewScanner() *Scanner { return &Scanner{} }

// Scan reads every artifact in dir (non-recursive) and returns the models sorted by ID.
// Duplicate IDs are reported through OnSkip; the first file in name order wins.
func (s *Scanner) Scan(dir string) ([]types.Model, error) {
	abs, err := fsutil.ResolveDir(dir)
	if err != nil {
		return nil, fmt.Errorf("models dir: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	seen := make(map[string]string)
	var models []types.Model
	for _, e := range entries {
		if e.IsDir() || !fsutil.HasExt(e.Name(), classifier.Extensions...) {
			continue
		}
		p := filepath.Join(abs, e.Name())
		a, err := classifier.DecodeFile(p)
		if err != nil {
			s.skip(p, err)
			continue
		}
		if prev, dup := seen[a.ID]; dup {
			s.skip(p, fmt.Errorf("duplicate model id %q (already loaded from %s)", a.ID, prev))
			continue
		}
		seen[a.ID] = p
		models = append(models, types.Model{
			ID:          a.ID,
			Disease:     a.Disease,
			Kind:        a.Kind,
			Path:        p,
			NumFeatures: len(a.Coefficients),
			Version:     a.Version,
		})
	}
	sort.Slice(models, func(i, j int) bool { return models[i].ID < models[j].ID })
	return models, nil
}

func (s *Scanner) skip(path string, err error) {
	if s.OnSkip != nil {
		s.OnSkip(path, err)
	}
}

// LoadDir scans dir with a default Scanner.
func LoadDir(dir string) ([]types.Model, error) {
	return NewScanner().Scan(dir)
}
