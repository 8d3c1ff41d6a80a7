// Package health reports whether the service can answer queries.
package health

import "github.com/kailas-cloud/cinedex/internal/index"

// IndexProvider supplies the current immutable index snapshot.
type IndexProvider interface {
	Get() (*index.Index, bool)
}

// Status is the aggregated health status.
type Status string

const (
	// Healthy means the index is loaded and queries are served.
	Healthy Status = "ok"
	// Degraded means the process is up but the index never loaded;
	// every catalog-backed query answers 503 until a restart or a
	// successful reload.
	Degraded Status = "degraded"
)

// Report describes the current serving state.
type Report struct {
	Status    Status
	Items     int
	VocabSize int
}

// Service answers health checks against the index store.
type Service struct {
	store IndexProvider
}

// New creates a health service.
func New(store IndexProvider) *Service {
	return &Service{store: store}
}

// Check reports whether an index is loaded and how big it is.
func (s *Service) Check() Report {
	ix, ok := s.store.Get()
	if !ok {
		return Report{Status: Degraded}
	}
	return Report{
		Status:    Healthy,
		Items:     ix.Catalog.Len(),
		VocabSize: ix.VocabSize,
	}
}
