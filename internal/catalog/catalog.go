// Package catalog enumerates and decodes the candidate images in a folder.
package catalog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"reverse-image-search/internal/image"
)

// DefaultExtensions are the file types searched when none are configured.
var DefaultExtensions = []string{".png", ".jpg"}

// Set is an ordered list of decoded candidates. Paths[i] is the file that
// Images[i] was decoded from.
type Set struct {
	Paths   []string
	Images  []*image.Buffer
	Skipped []Skipped
}

// Skipped records a file that matched the extension filter but failed to decode.
type Skipped struct {
	Path string
	Err  error
}

// Len returns the number of usable candidates.
func (s *Set) Len() int {
	return len(s.Images)
}

// Scan lists the files in dir (not recursive) whose extension is in
// extensions, sorted by path. Hidden files (leading dot) are skipped.
func Scan(dir string, extensions []string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a folder", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder: %w", err)
	}

	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	wanted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		wanted[normalizeExt(ext)] = true
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if wanted[strings.ToLower(filepath.Ext(e.Name()))] {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Load scans dir and decodes every matching file. Files that fail to decode
// are left out of both Paths and Images, so indexes stay aligned.
func Load(dir string, extensions []string) (*Set, error) {
	paths, err := Scan(dir, extensions)
	if err != nil {
		return nil, err
	}

	set := &Set{
		Paths:  make([]string, 0, len(paths)),
		Images: make([]*image.Buffer, 0, len(paths)),
	}
	for _, p := range paths {
		buf, err := image.Load(p)
		if err != nil {
			log.Printf("catalog: skipping %s: %v", p, err)
			set.Skipped = append(set.Skipped, Skipped{Path: p, Err: err})
			continue
		}
		set.Paths = append(set.Paths, p)
		set.Images = append(set.Images, buf)
	}
	return set, nil
}

// normalizeExt lowercases ext and adds the leading dot if missing.
func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
