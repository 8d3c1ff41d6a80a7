// Package snapshot reads the tabular catalog snapshot produced by the
// upstream ingestion job. Two formats are supported, chosen by file
// extension: CSV (the ingestion job's native output) and Parquet.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/cinedex/internal/domain"
)

// Row is one raw snapshot record, prior to any cleaning. String fields
// keep whatever the source held; numeric fields default to zero when
// absent or malformed.
type Row struct {
	ID          string
	Title       string
	Overview    string
	ReleaseDate string
	VoteAverage float64
	VoteCount   int64
	Popularity  float64
	PosterPath  string
	GenreNames  string
	Type        string
}

// Read loads every row from the snapshot at path. A missing or
// unreadable file yields domain.ErrSnapshotUnavailable; per-row issues
// never fail the read.
func Read(path string) ([]Row, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSnapshotUnavailable, path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return readCSV(path)
	case ".parquet":
		return readParquet(path)
	default:
		return nil, fmt.Errorf("%w: unsupported snapshot format %q", domain.ErrSnapshotUnavailable, ext)
	}
}
