// Package similarity builds the TF-IDF similarity space over catalog
// tag text: vocabulary selection, per-document term weighting and the
// dense pairwise cosine matrix.
package similarity

import (
	"math"
	"regexp"
	"sort"
)

// DefaultMaxFeatures caps the vocabulary when no explicit cap is given.
const DefaultMaxFeatures = 5000

// tokenRe matches word tokens of two or more characters. Letters and
// digits are Unicode classes, so accented text tokenizes whole instead
// of splitting at every non-ASCII rune. Single-character tokens carry
// no signal and are dropped, matching the usual text-vectorizer default.
var tokenRe = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Vector is a sparse L2-normalized TF-IDF document vector. Term ids are
// strictly ascending, which keeps the dot product a linear merge.
type Vector struct {
	terms   []int
	weights []float64
}

// IsZero reports whether the document shares no term with the vocabulary.
func (v Vector) IsZero() bool { return len(v.terms) == 0 }

// Dot returns the cosine similarity of two normalized vectors.
func Dot(a, b Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.terms) && j < len(b.terms) {
		switch {
		case a.terms[i] < b.terms[j]:
			i++
		case a.terms[i] > b.terms[j]:
			j++
		default:
			sum += a.weights[i] * b.weights[j]
			i++
			j++
		}
	}
	return sum
}

// tokenize splits lowercase text into vocabulary candidate terms,
// dropping stop words.
func tokenize(text string) []string {
	raw := tokenRe.FindAllString(text, -1)
	out := raw[:0]
	for _, t := range raw {
		if _, stop := stopwords[t]; stop {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Vectorize fits a TF-IDF model over docs and returns one normalized
// sparse vector per document plus the fitted vocabulary size.
//
// Vocabulary selection: all non-stop-word terms, capped at maxFeatures
// by highest document frequency, ties broken lexically. IDF is the
// smoothed log((1+N)/(1+df)) + 1, positive for every term. TF is the
// raw in-document count. Each vector is L2-normalized so that cosine
// similarity reduces to a dot product and self-similarity is 1.
func Vectorize(docs []string, maxFeatures int) ([]Vector, int) {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}

	// Term counts per document and document frequencies.
	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		tc := make(map[string]int)
		for _, term := range tokenize(doc) {
			tc[term]++
		}
		counts[i] = tc
		for term := range tc {
			df[term]++
		}
	}

	// Vocabulary: cap by document frequency, lexical tie-break, then
	// assign ids in lexical order for deterministic vectors.
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	if len(terms) > maxFeatures {
		sort.Slice(terms, func(a, b int) bool {
			if df[terms[a]] != df[terms[b]] {
				return df[terms[a]] > df[terms[b]]
			}
			return terms[a] < terms[b]
		})
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)

	vocab := make(map[string]int, len(terms))
	for id, term := range terms {
		vocab[term] = id
	}

	n := float64(len(docs))
	idf := make([]float64, len(terms))
	for id, term := range terms {
		idf[id] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	vectors := make([]Vector, len(docs))
	for i, tc := range counts {
		ids := make([]int, 0, len(tc))
		for term := range tc {
			if id, ok := vocab[term]; ok {
				ids = append(ids, id)
			}
		}
		sort.Ints(ids)

		weights := make([]float64, len(ids))
		var norm float64
		for k, id := range ids {
			w := float64(tc[terms[id]]) * idf[id]
			weights[k] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for k := range weights {
				weights[k] /= norm
			}
		}
		vectors[i] = Vector{terms: ids, weights: weights}
	}

	return vectors, len(terms)
}
