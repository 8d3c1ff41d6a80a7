// Package domain holds the core catalog types shared across layers.
package domain

import "strings"

// MediaType distinguishes movies from TV shows.
type MediaType string

const (
	// Movie is a feature film entry.
	Movie MediaType = "movie"
	// TV is a television show entry.
	TV MediaType = "tv"
)

// ParseMediaType normalizes a raw type value from the snapshot.
// Unknown values are kept as-is: they only matter to type filters,
// which simply never match them.
func ParseMediaType(raw string) MediaType {
	return MediaType(strings.ToLower(strings.TrimSpace(raw)))
}

// Item is one catalog entry. (ID, Type) is the uniqueness key; the row
// index inside the built catalog is the join key for the similarity
// matrix and the title index.
type Item struct {
	ID          string
	Type        MediaType
	Title       string
	Overview    string
	GenreNames  string
	ReleaseDate string
	VoteAverage float64
	VoteCount   int64
	Popularity  float64

	// PosterPath is the relative image path from the upstream catalog.
	// Empty means "no poster" and triggers the placeholder at render time.
	PosterPath string

	// TagText is the derived vectorization blob: lowercase overview,
	// genre words and title with whitespace runs collapsed. Built once
	// at load time, never recomputed.
	TagText string
}

// Scored pairs an item with its similarity score for ranked results.
type Scored struct {
	Item  Item
	Score float64
}
