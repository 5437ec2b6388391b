package handler

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSecretsPaths are the candidate secrets files, in merge order:
// later paths override earlier ones on key collision.
var DefaultSecretsPaths = []string{
	"/var/etc/secrets/processing_secrets.yaml",
	"/var/etc/zoo-services-user/processing_secrets.yaml",
}

// Secrets loads the processing secrets fresh from the candidate files.
// A missing file is skipped; an existing but malformed file is an
// error. With no file present the result is an empty mapping.
func (h *CommonHandler) Secrets() (map[string]any, error) {
	merged := make(map[string]any)
	for _, path := range h.secretsPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read secrets file %s: %w", path, err)
		}

		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse secrets file %s: %w", path, err)
		}
		for k, v := range doc {
			merged[k] = v
		}
	}
	return merged, nil
}

// LocalGetFile parses a structured-data file from disk into a mapping.
// Unlike secrets loading, a missing file is an error here.
func (h *CommonHandler) LocalGetFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	// YAML is a superset of JSON, so both formats parse here.
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}
