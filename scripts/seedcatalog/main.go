// Command seedcatalog writes the built-in default category definitions
// to a gzipped JSON-lines catalog file, ready to serve from local disk
// or an S3 bucket.
package main

import (
	"compress/gzip"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"price-scout/internal/catalog"
)

func main() {
	outPath := flag.String("out", "data/catalog/categories.gz", "output file path")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*outPath), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	definitions := catalog.Defaults()
	if err := writeCatalogFile(*outPath, definitions); err != nil {
		log.Fatalf("Failed to create %s: %v", *outPath, err)
	}

	fmt.Printf("Created %s with %d category definitions\n", *outPath, len(definitions))
	for _, def := range definitions {
		fmt.Printf("  - %-14s default %-6s allowed %v\n", def.Value, def.DefaultUnit, def.AllowedUnits)
	}
}

func writeCatalogFile(filePath string, definitions []catalog.Definition) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	encoder := json.NewEncoder(gzipWriter)
	for _, def := range definitions {
		if err := encoder.Encode(def); err != nil {
			return fmt.Errorf("failed to write definition: %w", err)
		}
	}

	return nil
}
