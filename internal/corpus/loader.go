package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a corpus document from a .json, .yaml or .yml file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("corpus file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes a corpus document. ext selects the format; anything other
// than .yaml/.yml is treated as JSON.
func Parse(data []byte, ext string) (*Document, error) {
	var doc Document
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse corpus yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse corpus json: %w", err)
		}
	}
	return &doc, nil
}
