package anki

import (
	"path/filepath"
	"strings"
)

const (
	ANKI_CONNECT_VERSION = 6
)

// GetDeckNameFromPath builds an Anki deck name from an input file path,
// nesting directories under rootPrefix with Anki's "::" separator.
func GetDeckNameFromPath(rootPrefix string, relativePath string) string {
	dirPath := filepath.Dir(relativePath)
	if dirPath == "." || dirPath == string(filepath.Separator) {
		dirPath = ""
	}

	fileName := strings.TrimSuffix(filepath.Base(relativePath), filepath.Ext(relativePath))

	var parts []string
	if rootPrefix != "" {
		parts = append(parts, rootPrefix)
	}
	if dirPath != "" {
		for _, p := range strings.Split(filepath.ToSlash(dirPath), "/") {
			if p != "" && p != "." && p != ".." {
				parts = append(parts, p)
			}
		}
	}
	if fileName != "" && fileName != "." {
		parts = append(parts, fileName)
	}

	return strings.Join(parts, "::")
}
