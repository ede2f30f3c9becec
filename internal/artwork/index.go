// Package artwork locates and caches the background images that underlay
// rendered scenario maps. Artwork dirs are scanned once; lookups go by
// lower-case filename stem so authored references stay portable.
package artwork

import (
	"os"
	"path/filepath"
	"strings"
)

// formatRank orders formats for stem collisions: alpha-capable lossless
// formats win over lossy ones.
var formatRank = map[string]int{
	".png":  4,
	".webp": 3,
	".tga":  2,
	".jpg":  1,
	".jpeg": 1,
}

// Index maps lower-case artwork stems to filesystem paths.
type Index struct {
	entries map[string]string
}

// BuildIndex scans dir and its subdirectories for supported image files.
// A missing dir yields an empty index.
func BuildIndex(dir string) *Index {
	idx := &Index{entries: make(map[string]string)}

	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		rank, ok := formatRank[ext]
		if !ok {
			return nil
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

		existing, exists := idx.entries[stem]
		if !exists || rank > formatRank[strings.ToLower(filepath.Ext(existing))] {
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

// ResolvePath returns the filesystem path for an artwork reference, or
// ("", false). References may carry directories and an extension; only the
// stem matters.
func (idx *Index) ResolvePath(name string) (string, bool) {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(name)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))

	path, ok := idx.entries[stem]
	return path, ok
}

// Len returns the number of indexed images.
func (idx *Index) Len() int {
	return len(idx.entries)
}
