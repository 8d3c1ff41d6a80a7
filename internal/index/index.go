// Package index assembles the catalog, the similarity matrix and the
// title index into one immutable value, and holds it behind an
// atomically swappable store.
package index

import (
	"fmt"

	"github.com/kailas-cloud/cinedex/internal/catalog"
	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/similarity"
	"github.com/kailas-cloud/cinedex/internal/snapshot"
)

// Index is one consistent view of the loaded snapshot. Catalog row
// index i addresses row i of the matrix for the lifetime of the value;
// the three structures are only ever replaced together.
type Index struct {
	Catalog   *catalog.Catalog
	Matrix    *similarity.Matrix
	VocabSize int
}

// Build cleans rows into a catalog and computes the similarity matrix
// over its tag text. An all-rejected snapshot yields
// domain.ErrEmptyCatalog: there is no index over zero documents.
func Build(rows []snapshot.Row, maxFeatures int) (*Index, catalog.Stats, error) {
	cat, stats := catalog.Build(rows)
	if cat.Len() == 0 {
		return nil, stats, domain.ErrEmptyCatalog
	}

	tags := make([]string, cat.Len())
	for i, it := range cat.Items() {
		tags[i] = it.TagText
	}

	vectors, vocab := similarity.Vectorize(tags, maxFeatures)
	return &Index{
		Catalog:   cat,
		Matrix:    similarity.NewMatrix(vectors),
		VocabSize: vocab,
	}, stats, nil
}

// Load reads the snapshot at path and builds the index from it.
func Load(path string, maxFeatures int) (*Index, catalog.Stats, error) {
	rows, err := snapshot.Read(path)
	if err != nil {
		return nil, catalog.Stats{}, fmt.Errorf("read snapshot: %w", err)
	}
	return Build(rows, maxFeatures)
}
