package cinedex

import (
	"errors"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/index"
	"github.com/kailas-cloud/cinedex/internal/similarity"
	browseuc "github.com/kailas-cloud/cinedex/internal/usecase/browse"
	recommenduc "github.com/kailas-cloud/cinedex/internal/usecase/recommend"
)

// Sentinel errors surfaced by the client.
var (
	// ErrNotFound means no catalog item matches the query.
	ErrNotFound = domain.ErrNotFound
	// ErrNotLoaded means no snapshot has been loaded successfully yet.
	ErrNotLoaded = domain.ErrNotLoaded
	// ErrSnapshotUnavailable means the snapshot file is missing or unreadable.
	ErrSnapshotUnavailable = domain.ErrSnapshotUnavailable
)

// Item is one catalog entry.
type Item struct {
	ID          string
	Title       string
	Type        string
	Overview    string
	GenreNames  string
	ReleaseDate string
	VoteAverage float64
	VoteCount   int64
	Popularity  float64
	PosterPath  string
}

// Recommendation pairs an item with its cosine similarity to the query item.
type Recommendation struct {
	Item  Item
	Score float64
}

// Client is the embedded cinedex engine. All catalog state is held in
// memory behind an atomically swappable index, so a Client is safe for
// concurrent use.
type Client struct {
	snapshotPath string
	maxFeatures  int

	store     *index.Store
	recommend *recommenduc.Service
	browse    *browseuc.Service
}

// New creates a Client and loads the snapshot. Use WithDegradedStart to
// defer loading failures: the client then starts empty and every query
// returns ErrNotLoaded until Reload succeeds.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{maxFeatures: similarity.DefaultMaxFeatures}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.snapshotPath == "" {
		return nil, errors.New("cinedex: snapshot path required (use WithSnapshot)")
	}

	store := index.NewStore()
	c := &Client{
		snapshotPath: cfg.snapshotPath,
		maxFeatures:  cfg.maxFeatures,
		store:        store,
		recommend:    recommenduc.New(store),
		browse:       browseuc.New(store),
	}

	if err := c.Reload(); err != nil && !cfg.degradedStart {
		return nil, err
	}
	return c, nil
}

// Reload rebuilds the index from the snapshot and swaps it in
// atomically. On failure the previously loaded index keeps serving.
func (c *Client) Reload() error {
	ix, _, err := index.Load(c.snapshotPath, c.maxFeatures)
	if err != nil {
		return err
	}
	c.store.Swap(ix)
	return nil
}

// Loaded reports whether an index is available for queries.
func (c *Client) Loaded() bool {
	_, ok := c.store.Get()
	return ok
}

// Recommend returns up to topN items most similar to the given title,
// best first, never including the resolved item itself.
func (c *Client) Recommend(title string, topN int) ([]Recommendation, error) {
	scored, err := c.recommend.Recommend(title, topN)
	if err != nil {
		return nil, err
	}
	out := make([]Recommendation, len(scored))
	for i, s := range scored {
		out[i] = Recommendation{Item: fromDomain(s.Item), Score: s.Score}
	}
	return out, nil
}

// Resolve maps a title to its catalog row index: exact match first,
// then the first case-insensitive substring match in catalog order.
func (c *Client) Resolve(title string) (int, error) {
	return c.recommend.Resolve(title)
}

// Search finds items whose title contains the query, case-insensitively.
func (c *Client) Search(query string) ([]Item, error) {
	items, err := c.browse.Search(query)
	if err != nil {
		return nil, err
	}
	return fromDomainSlice(items), nil
}

// Popular lists items by descending popularity.
func (c *Client) Popular(skip, limit int) ([]Item, error) {
	page, err := c.browse.Popular(skip, limit)
	if err != nil {
		return nil, err
	}
	return fromDomainSlice(page.Items), nil
}

// ByType lists items of one media type by descending popularity.
func (c *Client) ByType(mediaType string, skip, limit int) ([]Item, error) {
	page, err := c.browse.ByType(domain.ParseMediaType(mediaType), skip, limit)
	if err != nil {
		return nil, err
	}
	return fromDomainSlice(page.Items), nil
}

// ByGenre lists items whose genre names contain the given genre as a
// whole word, in catalog order.
func (c *Client) ByGenre(genre string, skip, limit int) ([]Item, error) {
	page, err := c.browse.ByGenre(genre, skip, limit)
	if err != nil {
		return nil, err
	}
	return fromDomainSlice(page.Items), nil
}

// Genres returns the sorted unique genre labels across the catalog.
func (c *Client) Genres() ([]string, error) {
	return c.browse.Genres()
}

// ItemByID fetches one item by its upstream id.
func (c *Client) ItemByID(id string) (Item, error) {
	it, err := c.browse.ItemByID(id)
	if err != nil {
		return Item{}, err
	}
	return fromDomain(it), nil
}

func fromDomain(it domain.Item) Item {
	return Item{
		ID:          it.ID,
		Title:       it.Title,
		Type:        string(it.Type),
		Overview:    it.Overview,
		GenreNames:  it.GenreNames,
		ReleaseDate: it.ReleaseDate,
		VoteAverage: it.VoteAverage,
		VoteCount:   it.VoteCount,
		Popularity:  it.Popularity,
		PosterPath:  it.PosterPath,
	}
}

func fromDomainSlice(items []domain.Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = fromDomain(it)
	}
	return out
}
