package snapshot

import (
	"fmt"

	"github.com/parquet-go/parquet-go"

	"github.com/kailas-cloud/cinedex/internal/domain"
)

// parquetRow mirrors the snapshot schema with nullable columns as
// pointers, the way the upstream exporter writes them.
type parquetRow struct {
	ID          string   `parquet:"id"`
	Title       *string  `parquet:"title"`
	Overview    *string  `parquet:"overview"`
	ReleaseDate *string  `parquet:"release_date"`
	VoteAverage *float64 `parquet:"vote_average"`
	VoteCount   *int64   `parquet:"vote_count"`
	Popularity  *float64 `parquet:"popularity"`
	PosterPath  *string  `parquet:"poster_path"`
	GenreNames  *string  `parquet:"genre_names"`
	Type        *string  `parquet:"type"`
}

func readParquet(path string) ([]Row, error) {
	raw, err := parquet.ReadFile[parquetRow](path)
	if err != nil {
		return nil, fmt.Errorf("%w: read parquet: %v", domain.ErrSnapshotUnavailable, err)
	}

	rows := make([]Row, 0, len(raw))
	for _, pr := range raw {
		rows = append(rows, Row{
			ID:          pr.ID,
			Title:       deref(pr.Title),
			Overview:    deref(pr.Overview),
			ReleaseDate: deref(pr.ReleaseDate),
			VoteAverage: derefF(pr.VoteAverage),
			VoteCount:   derefI(pr.VoteCount),
			Popularity:  derefF(pr.Popularity),
			PosterPath:  deref(pr.PosterPath),
			GenreNames:  deref(pr.GenreNames),
			Type:        deref(pr.Type),
		})
	}
	return rows, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefF(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func derefI(i *int64) int64 {
	if i == nil {
		return 0
	}
	return *i
}
