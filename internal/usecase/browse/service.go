// Package browse serves the read-only catalog listings: popularity
// feeds, title search, genre and type filters. These are plain scans
// over the immutable catalog; the similarity matrix is never touched.
package browse

import (
	"regexp"
	"strings"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/index"
)

// minQueryLen guards the title search against overly broad queries.
const minQueryLen = 2

// Page is one window of a filtered listing.
type Page struct {
	Items []domain.Item
	Total int
	Skip  int
	Limit int
}

// Service answers catalog listing queries.
type Service struct {
	store           IndexProvider
	defaultPageSize int
	maxPageSize     int
	searchLimit     int
}

// New creates a browse service with stock pagination limits.
func New(store IndexProvider) *Service {
	return &Service{
		store:           store,
		defaultPageSize: 24,
		maxPageSize:     100,
		searchLimit:     50,
	}
}

// WithPagination configures page size limits.
func (s *Service) WithPagination(defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize > 0 {
		s.defaultPageSize = defaultPageSize
	}
	if maxPageSize > 0 {
		s.maxPageSize = maxPageSize
	}
	return s
}

// WithSearchLimit caps title search result counts.
func (s *Service) WithSearchLimit(limit int) *Service {
	if limit > 0 {
		s.searchLimit = limit
	}
	return s
}

// Popular lists the whole catalog by descending popularity.
func (s *Service) Popular(skip, limit int) (Page, error) {
	ix, ok := s.store.Get()
	if !ok {
		return Page{}, domain.ErrNotLoaded
	}
	return s.paginate(ix, ix.Catalog.PopularOrder(), skip, limit), nil
}

// ByType lists items of one media type by descending popularity.
func (s *Service) ByType(mediaType domain.MediaType, skip, limit int) (Page, error) {
	ix, ok := s.store.Get()
	if !ok {
		return Page{}, domain.ErrNotLoaded
	}

	var order []int
	for _, i := range ix.Catalog.PopularOrder() {
		if it, _ := ix.Catalog.Item(i); it.Type == mediaType {
			order = append(order, i)
		}
	}
	return s.paginate(ix, order, skip, limit), nil
}

// ByGenre lists items whose genre_names contain the genre as a whole
// word, case-insensitively, in catalog row order. Word boundaries keep
// "Action" from matching inside "Reaction".
func (s *Service) ByGenre(genre string, skip, limit int) (Page, error) {
	ix, ok := s.store.Get()
	if !ok {
		return Page{}, domain.ErrNotLoaded
	}

	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(genre) + `\b`)
	var order []int
	for i, it := range ix.Catalog.Items() {
		if re.MatchString(it.GenreNames) {
			order = append(order, i)
		}
	}
	return s.paginate(ix, order, skip, limit), nil
}

// Search finds titles containing the query, case-insensitively, in
// catalog row order. Queries shorter than two characters return an
// empty result rather than matching half the catalog.
func (s *Service) Search(query string) ([]domain.Item, error) {
	ix, ok := s.store.Get()
	if !ok {
		return nil, domain.ErrNotLoaded
	}

	query = strings.TrimSpace(query)
	if len([]rune(query)) < minQueryLen {
		return []domain.Item{}, nil
	}

	needle := strings.ToLower(query)
	out := make([]domain.Item, 0, s.searchLimit)
	for _, it := range ix.Catalog.Items() {
		if strings.Contains(strings.ToLower(it.Title), needle) {
			out = append(out, it)
			if len(out) == s.searchLimit {
				break
			}
		}
	}
	return out, nil
}

// Genres returns the sorted unique genre labels across the catalog.
func (s *Service) Genres() ([]string, error) {
	ix, ok := s.store.Get()
	if !ok {
		return nil, domain.ErrNotLoaded
	}
	return ix.Catalog.Genres(), nil
}

// ItemByID fetches one item by its upstream id.
func (s *Service) ItemByID(id string) (domain.Item, error) {
	ix, ok := s.store.Get()
	if !ok {
		return domain.Item{}, domain.ErrNotLoaded
	}
	row, ok := ix.Catalog.RowForID(id)
	if !ok {
		return domain.Item{}, domain.ErrNotFound
	}
	it, _ := ix.Catalog.Item(row)
	return it, nil
}

func (s *Service) paginate(ix *index.Index, order []int, skip, limit int) Page {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = s.defaultPageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	total := len(order)
	if skip > total {
		skip = total
	}
	end := skip + limit
	if end > total {
		end = total
	}

	items := make([]domain.Item, 0, end-skip)
	for _, i := range order[skip:end] {
		it, _ := ix.Catalog.Item(i)
		items = append(items, it)
	}
	return Page{Items: items, Total: total, Skip: skip, Limit: limit}
}
