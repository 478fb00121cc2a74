package seed

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading seed documents from disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based seed loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "seed-loader").Logger(),
	}
}

// Load reads a JSON seed file and returns the validated Seed.
// Files ending in .gz are gunzipped first.
func (l *fileLoader) Load(ctx context.Context, filePath string) (*Seed, error) {
	l.logger.Info().Str("file", filePath).Msg("loading seed file")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open seed file")
		return nil, fmt.Errorf("failed to open seed file %s: %w", filePath, err)
	}
	defer file.Close()

	s, err := decode(file, filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to decode seed file")
		return nil, err
	}

	l.logger.Info().
		Str("file", filePath).
		Int("dishes", len(s.Dishes)).
		Int("waste_rows", len(s.WasteLog)).
		Msg("seed file loaded successfully")

	return s, nil
}

// decode parses a seed document. name decides whether the stream is gzipped.
func decode(r io.Reader, name string) (*Seed, error) {
	if strings.HasSuffix(name, ".gz") {
		gzipReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", name, err)
		}
		defer gzipReader.Close()
		r = gzipReader
	}

	var s Seed
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse seed %s: %w", name, err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seed %s: %w", name, err)
	}

	return &s, nil
}
