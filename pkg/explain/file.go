package explain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadFile loads the first document from a saved EXPLAIN output. The
// extension picks the format (.json, .yaml, .yml); anything else is detected
// from the content.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("reading plan file: %w", err)
	}

	var docs []Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		docs, err = ParseJSON(data)
	case ".yaml", ".yml":
		docs, err = ParseYAML(data)
	default:
		return Parse(data)
	}
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return docs[0], nil
}
