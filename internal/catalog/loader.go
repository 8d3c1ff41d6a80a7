package catalog

import (
	"strings"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/snapshot"
)

// Stats counts what the loader did with the snapshot rows.
type Stats struct {
	Total      int // rows read from the snapshot
	Duplicates int // dropped as (id, type) duplicates
	Rejected   int // dropped for missing title/overview/genre_names
	Kept       int // rows in the final catalog
}

// Build cleans the raw rows into a Catalog: deduplicate by (id, type)
// keeping the first occurrence, drop rows missing any of the three text
// fields, derive the tag text, and re-index 0..N-1. Missing means the
// field is empty; whitespace-only values count as present.
//
// Deduplication runs before rejection, so an incomplete first occurrence
// shadows a complete duplicate: neither survives.
func Build(rows []snapshot.Row) (*Catalog, Stats) {
	stats := Stats{Total: len(rows)}

	seen := make(map[string]struct{}, len(rows))
	items := make([]domain.Item, 0, len(rows))

	for _, row := range rows {
		mediaType := domain.ParseMediaType(row.Type)

		key := row.ID + "\x00" + string(mediaType)
		if _, dup := seen[key]; dup {
			stats.Duplicates++
			continue
		}
		seen[key] = struct{}{}

		if row.Title == "" || row.Overview == "" || row.GenreNames == "" {
			stats.Rejected++
			continue
		}

		items = append(items, domain.Item{
			ID:          row.ID,
			Type:        mediaType,
			Title:       row.Title,
			Overview:    row.Overview,
			GenreNames:  row.GenreNames,
			ReleaseDate: row.ReleaseDate,
			VoteAverage: row.VoteAverage,
			VoteCount:   row.VoteCount,
			Popularity:  row.Popularity,
			PosterPath:  row.PosterPath,
			TagText:     TagText(row.Overview, row.GenreNames, row.Title),
		})
	}

	stats.Kept = len(items)

	c := &Catalog{items: items}
	c.buildIndices()
	return c, stats
}

// TagText derives the per-item vectorization blob: lowercase overview,
// genre words (commas become spaces) and title, with whitespace runs
// collapsed to single spaces.
func TagText(overview, genreNames, title string) string {
	joined := strings.ToLower(overview) + " " +
		strings.ToLower(strings.ReplaceAll(genreNames, ",", " ")) + " " +
		strings.ToLower(title)
	return strings.Join(strings.Fields(joined), " ")
}
