// Package labels formats file and folder names to fit the fixed-width
// captions above the preview frames.
package labels

import "path/filepath"

const (
	maxImageName  = 28
	maxFolderName = 30
	maxMatchPath  = 30
	maxMatchPart  = 15
)

// Image returns the caption for a selected query image.
func Image(path string) string {
	return "Selected Image: " + shorten(filepath.Base(path), maxImageName, 17, 8)
}

// Folder returns the caption for a selected candidate folder.
func Folder(path string) string {
	return "Selected Folder: " + shorten(filepath.Base(path), maxFolderName, 19, 8)
}

// Match returns the caption for the winning file as "folder/file". When the
// two names together are too long, each long part is cut to its first four
// and last eight characters.
func Match(folder, file string) string {
	dir := filepath.Base(folder)
	name := filepath.Base(file)
	if len([]rune(dir))+len([]rune(name)) > maxMatchPath {
		dir = shorten(dir, maxMatchPart, 4, 8)
		name = shorten(name, maxMatchPart, 4, 8)
	}
	return "Closest Match: " + dir + "/" + name
}

// shorten keeps the first head and last tail runes of s when s is longer than limit.
func shorten(s string, limit, head, tail int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:head]) + "..." + string(r[len(r)-tail:])
}
