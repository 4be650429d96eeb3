package texture

import (
	"os"
	"path/filepath"
	"strings"
)

// rampExts lists decodable extensions in priority order for a shared stem.
var rampExts = []string{".png", ".tga", ".jpg", ".jpeg"}

// Index maps lowercase ramp stems to filesystem paths.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

// BuildIndex scans dir recursively for ramp images. A missing dir yields
// an empty index.
func BuildIndex(dir string) *Index {
	idx := &Index{entries: make(map[string]string)}
	if dir == "" {
		return idx
	}

	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		rank := extRank(ext)
		if rank < 0 {
			return nil
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

		existing, exists := idx.entries[stem]
		if !exists || rank < extRank(strings.ToLower(filepath.Ext(existing))) {
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

func extRank(ext string) int {
	for i, e := range rampExts {
		if e == ext {
			return i
		}
	}
	return -1
}

// ResolvePath returns the filesystem path for a ramp name, or ("", false).
// Names may carry a directory or extension; only the stem is matched.
func (idx *Index) ResolvePath(name string) (string, bool) {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(name)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))

	path, ok := idx.entries[stem]
	return path, ok
}

// Len returns the number of indexed ramps.
func (idx *Index) Len() int {
	return len(idx.entries)
}
