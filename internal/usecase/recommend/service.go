// Package recommend answers "find items similar to X" queries against
// the loaded similarity index.
package recommend

import (
	"sort"
	"strings"

	"github.com/kailas-cloud/cinedex/internal/domain"
)

// Service resolves titles and ranks similar items. It performs no I/O:
// every query runs against whatever index the provider currently
// publishes, or fails with ErrNotLoaded when nothing is published.
type Service struct {
	store IndexProvider
}

// New creates a recommendation service.
func New(store IndexProvider) *Service {
	return &Service{store: store}
}

// Resolve maps a user-supplied title to its catalog row index.
//
// An exact, case-sensitive match wins; duplicate titles resolve to the
// lowest row index. Failing that, the first title (in row order)
// containing the query case-insensitively is taken.
func (s *Service) Resolve(title string) (int, error) {
	ix, ok := s.store.Get()
	if !ok {
		return 0, domain.ErrNotLoaded
	}

	if strings.TrimSpace(title) == "" {
		return 0, domain.ErrNotFound
	}

	if rows := ix.Catalog.RowsForTitle(title); len(rows) > 0 {
		return rows[0], nil
	}

	needle := strings.ToLower(title)
	for i, it := range ix.Catalog.Items() {
		if strings.Contains(strings.ToLower(it.Title), needle) {
			return i, nil
		}
	}

	return 0, domain.ErrNotFound
}

// Recommend returns up to topN items most similar to the resolved
// title, best first, never including the resolved item itself.
// topN <= 0 yields an empty result, not an error.
func (s *Service) Recommend(title string, topN int) ([]domain.Scored, error) {
	idx, err := s.Resolve(title)
	if err != nil {
		return nil, err
	}
	return s.ForRow(idx, topN)
}

// ForRow ranks neighbors of an already-resolved catalog row.
func (s *Service) ForRow(idx, topN int) ([]domain.Scored, error) {
	ix, ok := s.store.Get()
	if !ok {
		return nil, domain.ErrNotLoaded
	}

	scores := ix.Matrix.Row(idx)
	if scores == nil {
		return nil, domain.ErrNotFound
	}
	if topN <= 0 {
		return []domain.Scored{}, nil
	}

	order := make([]int, 0, len(scores)-1)
	for i := range scores {
		if i != idx {
			order = append(order, i)
		}
	}
	// Descending by score; equal scores stay in ascending row order so
	// results are stable across runs.
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if topN < len(order) {
		order = order[:topN]
	}

	out := make([]domain.Scored, 0, len(order))
	for _, i := range order {
		item, _ := ix.Catalog.Item(i)
		out = append(out, domain.Scored{Item: item, Score: scores[i]})
	}
	return out, nil
}
