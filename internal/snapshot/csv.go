package snapshot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kailas-cloud/cinedex/internal/domain"
)

// readCSV reads a header-keyed CSV snapshot. Columns are resolved by
// name so the ingestion job is free to reorder or append columns.
func readCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSnapshotUnavailable, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are handled per-field

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read csv header: %v", domain.ErrSnapshotUnavailable, err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}

	var rows []Row
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Skip unparseable records; row-level issues are not fatal.
			continue
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return rec[i]
		}

		rows = append(rows, Row{
			ID:          field("id"),
			Title:       field("title"),
			Overview:    field("overview"),
			ReleaseDate: field("release_date"),
			VoteAverage: parseFloat(field("vote_average")),
			VoteCount:   parseInt(field("vote_count")),
			Popularity:  parseFloat(field("popularity")),
			PosterPath:  field("poster_path"),
			GenreNames:  field("genre_names"),
			Type:        field("type"),
		})
	}
	return rows, nil
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int64 {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	// Some exports serialize counts as floats ("152.0").
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}
