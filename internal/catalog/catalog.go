// Package catalog loads the default global category definitions and
// seeds them into the database at startup. Definitions ship as gzipped
// JSON-lines files, read from S3 or the local file system, with a
// built-in fallback set so a fresh install works without any files.
package catalog

import (
	"context"
)

// Definition is one seed category: a line in a catalog file.
type Definition struct {
	Value        string   `json:"value"`
	Label        string   `json:"label"`
	DefaultUnit  string   `json:"defaultUnit"`
	AllowedUnits []string `json:"allowedUnits"`
}

// Loader defines the interface for loading catalog files.
type Loader interface {
	// Load reads a gzipped JSON-lines catalog file and returns its
	// definitions.
	Load(ctx context.Context, filePath string) ([]Definition, error)
}
