package similarity

// Matrix is the dense pairwise cosine similarity matrix. It is built
// once and never mutated; rows may be read concurrently without
// locking. Row index i is the catalog row index.
type Matrix struct {
	n    int
	rows [][]float64
}

// NewMatrix computes the full similarity matrix for the given document
// vectors. Only the upper triangle is computed; the lower is mirrored.
// Diagonal entries are exactly 1 for non-zero vectors and 0 for
// documents that share no term with the vocabulary.
func NewMatrix(vectors []Vector) *Matrix {
	n := len(vectors)
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		if !vectors[i].IsZero() {
			rows[i][i] = 1
		}
		for j := i + 1; j < n; j++ {
			s := Dot(vectors[i], vectors[j])
			rows[i][j] = s
			rows[j][i] = s
		}
	}

	return &Matrix{n: n, rows: rows}
}

// Len returns the matrix dimension.
func (m *Matrix) Len() int { return m.n }

// Row returns similarity scores of row i against every row, including
// itself. Callers must treat the slice as read-only.
func (m *Matrix) Row(i int) []float64 {
	if i < 0 || i >= m.n {
		return nil
	}
	return m.rows[i]
}

// At returns S[i][j], or 0 for out-of-range indices.
func (m *Matrix) At(i, j int) float64 {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return 0
	}
	return m.rows[i][j]
}
