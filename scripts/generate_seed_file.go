//go:build ignore

package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"cafeteria-dash/internal/seed"
)

// Writes the built-in demo data as data/seed.json and data/seed.json.gz so
// the file and S3 seed sources have something to load.
//
//	go run scripts/generate_seed_file.go
func main() {
	dataDir := "data"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	s := seed.Demo()
	if err := s.Validate(); err != nil {
		log.Fatalf("Demo seed is invalid: %v", err)
	}

	for _, name := range []string{"seed.json", "seed.json.gz"} {
		filePath := filepath.Join(dataDir, name)

		if err := writeSeedFile(filePath, s); err != nil {
			log.Fatalf("Failed to create %s: %v", name, err)
		}

		fmt.Printf("Created %s with %d dishes\n", filePath, len(s.Dishes))
	}

	fmt.Println("\nSeed files created successfully!")
	fmt.Println("Upload data/seed.json.gz under S3_PREFIX to use SEED_SOURCE=s3.")
}

func writeSeedFile(filePath string, s *seed.Seed) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	var w io.Writer = file
	if filepath.Ext(filePath) == ".gz" {
		gzWriter := gzip.NewWriter(file)
		defer gzWriter.Close()
		w = gzWriter
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to write seed: %w", err)
	}

	return nil
}
