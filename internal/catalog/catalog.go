// Package catalog turns raw snapshot rows into the cleaned, re-indexed
// catalog that the similarity index and every query are built on.
package catalog

import (
	"sort"
	"strings"

	"github.com/kailas-cloud/cinedex/internal/domain"
)

// Catalog is the immutable, 0..N-1 indexed item table. The row index is
// the join key shared with the similarity matrix and the title index.
// All accessors are safe for concurrent readers; nothing mutates a
// Catalog after Build returns.
type Catalog struct {
	items []domain.Item

	// titles maps the stored (original case) title to every row index
	// carrying it, in row order. Duplicate titles stay representable.
	titles map[string][]int

	// byID maps the upstream id to its first row index.
	byID map[string]int

	// byPopularity holds row indices sorted by popularity descending,
	// ties kept in row order.
	byPopularity []int

	// genres is the sorted set of unique genre labels.
	genres []string
}

// Len returns the number of catalog rows.
func (c *Catalog) Len() int { return len(c.items) }

// Item returns the row at index i.
func (c *Catalog) Item(i int) (domain.Item, bool) {
	if i < 0 || i >= len(c.items) {
		return domain.Item{}, false
	}
	return c.items[i], true
}

// Items exposes the full row slice. Callers must treat it as read-only.
func (c *Catalog) Items() []domain.Item { return c.items }

// RowsForTitle returns every row index stored under the exact title.
func (c *Catalog) RowsForTitle(title string) []int { return c.titles[title] }

// RowForID returns the first row index carrying the upstream id.
func (c *Catalog) RowForID(id string) (int, bool) {
	i, ok := c.byID[id]
	return i, ok
}

// PopularOrder returns row indices by popularity, most popular first.
// Callers must treat the slice as read-only.
func (c *Catalog) PopularOrder() []int { return c.byPopularity }

// Genres returns the sorted unique genre labels. Read-only.
func (c *Catalog) Genres() []string { return c.genres }

func (c *Catalog) buildIndices() {
	c.titles = make(map[string][]int, len(c.items))
	c.byID = make(map[string]int, len(c.items))
	for i, it := range c.items {
		c.titles[it.Title] = append(c.titles[it.Title], i)
		if _, seen := c.byID[it.ID]; !seen {
			c.byID[it.ID] = i
		}
	}

	c.byPopularity = make([]int, len(c.items))
	for i := range c.byPopularity {
		c.byPopularity[i] = i
	}
	sort.SliceStable(c.byPopularity, func(a, b int) bool {
		return c.items[c.byPopularity[a]].Popularity > c.items[c.byPopularity[b]].Popularity
	})

	set := make(map[string]struct{})
	for _, it := range c.items {
		for _, g := range strings.Split(it.GenreNames, ",") {
			g = strings.TrimSpace(g)
			if g != "" {
				set[g] = struct{}{}
			}
		}
	}
	c.genres = make([]string, 0, len(set))
	for g := range set {
		c.genres = append(c.genres, g)
	}
	sort.Strings(c.genres)
}
