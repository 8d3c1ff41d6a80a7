// Package chi wires the query services onto the HTTP route surface.
package chi

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/metrics"
	browseuc "github.com/kailas-cloud/cinedex/internal/usecase/browse"
	healthuc "github.com/kailas-cloud/cinedex/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/cinedex/internal/usecase/recommend"
)

const defaultTopN = 10

// errorResponse is the uniform error body for every failed request.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server exposes the catalog and recommendation services over HTTP.
type Server struct {
	recommend     *recommenduc.Service
	browse        *browseuc.Service
	health        *healthuc.Service
	posters       PosterResolver
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates the HTTP API server.
func NewServer(
	recommend *recommenduc.Service,
	browse *browseuc.Service,
	health *healthuc.Service,
	posters PosterResolver,
	logger *zap.Logger,
) *Server {
	s := &Server{
		recommend: recommend,
		browse:    browse,
		health:    health,
		posters:   posters,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, "not_found"),
		sentinelHandler(domain.ErrNotLoaded, http.StatusServiceUnavailable, "catalog_not_loaded"),
	}
	return s
}

// Routes mounts every API endpoint on a fresh router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/api/popular", s.Popular)
	r.Get("/api/all", s.All)
	r.Get("/api/movies", s.Movies)
	r.Get("/api/shows", s.Shows)
	r.Get("/api/search", s.Search)
	r.Get("/api/genres", s.Genres)
	r.Get("/api/genres/{genre}", s.ByGenre)
	r.Get("/api/recommend/{title}", s.Recommend)
	r.Get("/api/items/{id}", s.ItemByID)

	r.Get("/health", s.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// listItem is the compact item shape used by every listing endpoint.
type listItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	PosterURL string `json:"poster_url"`
}

// fullItem is the detailed shape returned by the item endpoint.
type fullItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Type        string  `json:"type"`
	Overview    string  `json:"overview"`
	GenreNames  string  `json:"genre_names"`
	ReleaseDate string  `json:"release_date,omitempty"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int64   `json:"vote_count"`
	Popularity  float64 `json:"popularity"`
	PosterURL   string  `json:"poster_url"`
}

func (s *Server) listItems(items []domain.Item) []listItem {
	out := make([]listItem, 0, len(items))
	for _, it := range items {
		out = append(out, listItem{
			ID:        it.ID,
			Title:     it.Title,
			Type:      string(it.Type),
			PosterURL: s.posters.URL(it.PosterPath),
		})
	}
	return out
}

// popularDefaultLimit is the item count of the popular feed when the
// caller sends no limit.
const popularDefaultLimit = 20

// Popular handles GET /api/popular.
func (s *Server) Popular(w http.ResponseWriter, r *http.Request) {
	page, err := s.browse.Popular(0, queryInt(r, "limit", popularDefaultLimit))
	if err != nil {
		s.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"popular_items": s.listItems(page.Items),
	})
}

// All handles GET /api/all: the whole catalog by popularity, paginated.
func (s *Server) All(w http.ResponseWriter, r *http.Request) {
	page, err := s.browse.Popular(queryInt(r, "skip", 0), queryInt(r, "limit", 0))
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writePage(w, page)
}

// Movies handles GET /api/movies.
func (s *Server) Movies(w http.ResponseWriter, r *http.Request) {
	s.byType(w, r, domain.Movie)
}

// Shows handles GET /api/shows.
func (s *Server) Shows(w http.ResponseWriter, r *http.Request) {
	s.byType(w, r, domain.TV)
}

func (s *Server) byType(w http.ResponseWriter, r *http.Request, mediaType domain.MediaType) {
	page, err := s.browse.ByType(mediaType, queryInt(r, "skip", 0), queryInt(r, "limit", 0))
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writePage(w, page)
}

// Search handles GET /api/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	items, err := s.browse.Search(query)
	if err != nil {
		s.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"results": s.listItems(items),
	})
}

// Genres handles GET /api/genres.
func (s *Server) Genres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.browse.Genres()
	if err != nil {
		s.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"genres": genres})
}

// ByGenre handles GET /api/genres/{genre}.
func (s *Server) ByGenre(w http.ResponseWriter, r *http.Request) {
	genre, err := url.PathUnescape(chi.URLParam(r, "genre"))
	if err != nil || genre == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid genre")
		return
	}
	page, err := s.browse.ByGenre(genre, queryInt(r, "skip", 0), queryInt(r, "limit", 0))
	if err != nil {
		s.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"genre":         genre,
		"skip":          page.Skip,
		"limit":         page.Limit,
		"total_matches": page.Total,
		"results":       s.listItems(page.Items),
	})
}

// Recommend handles GET /api/recommend/{title}.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	title, err := url.PathUnescape(chi.URLParam(r, "title"))
	if err != nil || title == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid title")
		return
	}

	topN := defaultTopN
	if raw := r.URL.Query().Get("top_n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "top_n must be an integer")
			return
		}
		topN = n
	}

	start := time.Now()
	results, err := s.recommend.Recommend(title, topN)
	if err != nil {
		s.handleError(w, err)
		return
	}
	metrics.ObserveRecommend(time.Since(start))

	items := make([]domain.Item, len(results))
	for i, res := range results {
		items[i] = res.Item
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"input_title":     title,
		"recommendations": s.listItems(items),
	})
}

// ItemByID handles GET /api/items/{id}.
func (s *Server) ItemByID(w http.ResponseWriter, r *http.Request) {
	it, err := s.browse.ItemByID(chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fullItem{
		ID:          it.ID,
		Title:       it.Title,
		Type:        string(it.Type),
		Overview:    it.Overview,
		GenreNames:  it.GenreNames,
		ReleaseDate: it.ReleaseDate,
		VoteAverage: it.VoteAverage,
		VoteCount:   it.VoteCount,
		Popularity:  it.Popularity,
		PosterURL:   s.posters.URL(it.PosterPath),
	})
}

// Health handles GET /health. A degraded index answers 503 so load
// balancers stop routing to an instance that cannot serve queries.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	report := s.health.Check()

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status":     report.Status,
		"items":      report.Items,
		"vocab_size": report.VocabSize,
	})
}

func (s *Server) writePage(w http.ResponseWriter, page browseuc.Page) {
	writeJSON(w, http.StatusOK, map[string]any{
		"skip":        page.Skip,
		"limit":       page.Limit,
		"total_items": page.Total,
		"results":     s.listItems(page.Items),
	})
}

func (s *Server) handleError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	// Never leak internals on unexpected failures.
	s.logger.Error("unhandled request error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// queryInt parses an integer query parameter, falling back to def on
// absent or malformed values (listing endpoints are lenient, matching
// the clamping done in the browse layer).
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
