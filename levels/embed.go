package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var LevelsFS embed.FS

// Dir is the on-disk directory checked before the embedded copy.
var Dir = "levels"

const manifestFile = "manifest.yaml"

// FileName maps a level name to its file.
func FileName(name string) string {
	if strings.HasSuffix(name, ".yaml") {
		return name
	}
	return name + ".yaml"
}

// NameOf is the inverse of FileName for any path inside Dir.
func NameOf(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// Read returns the raw bytes of a level file, preferring Dir over the
// embedded copy.
func Read(name string) ([]byte, error) {
	file := FileName(name)
	if data, err := os.ReadFile(filepath.Join(Dir, file)); err == nil {
		return data, nil
	}
	data, err := fs.ReadFile(LevelsFS, file)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", file, err)
	}
	return data, nil
}
