// Package rank implements the Hybrid Ranker (spec §4.5, C5): BM25 lexical scoring,
// optional dense-vector cosine similarity, a small quality bonus, and a stale-archive
// penalty, combined into a single weighted composite score.
package rank

import (
	"math"
	"regexp"
	"strings"
)

// BM25 parameters, Okapi BM25 defaults.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

var bm25TokenRe = regexp.MustCompile(`[a-zA-Z0-9]+`)

func bm25Tokenize(s string) []string {
	return bm25TokenRe.FindAllString(strings.ToLower(s), -1)
}

// BM25Corpus scores a fixed set of documents against a query using Okapi BM25 over
// the documents' own term statistics (average document length, per-term document
// frequency). Build once per ranking pass with the candidate set's documents.
type BM25Corpus struct {
	docs    [][]string
	df      map[string]int // document frequency per term
	avgLen  float64
	n       int
}

// NewBM25Corpus builds per-corpus term statistics from the given documents (already
// the title+snippet text of each candidate hit).
func NewBM25Corpus(documents []string) *BM25Corpus {
	c := &BM25Corpus{df: map[string]int{}}
	totalLen := 0
	for _, d := range documents {
		toks := bm25Tokenize(d)
		c.docs = append(c.docs, toks)
		totalLen += len(toks)
		seen := map[string]bool{}
		for _, t := range toks {
			if !seen[t] {
				c.df[t]++
				seen[t] = true
			}
		}
	}
	c.n = len(documents)
	if c.n > 0 {
		c.avgLen = float64(totalLen) / float64(c.n)
	}
	return c
}

// Score returns the raw (unnormalized) BM25 score of the i-th document against query.
func (c *BM25Corpus) Score(i int, query string) float64 {
	if i < 0 || i >= len(c.docs) {
		return 0
	}
	doc := c.docs[i]
	docLen := float64(len(doc))
	termFreq := map[string]int{}
	for _, t := range doc {
		termFreq[t]++
	}

	queryTerms := bm25Tokenize(query)
	var score float64
	for _, qt := range queryTerms {
		df := c.df[qt]
		if df == 0 {
			continue
		}
		idf := math.Log(1 + (float64(c.n)-float64(df)+0.5)/(float64(df)+0.5))
		tf := float64(termFreq[qt])
		if tf == 0 {
			continue
		}
		denom := tf + bm25K1*(1-bm25B+bm25B*docLen/maxFloat(c.avgLen, 1))
		score += idf * (tf * (bm25K1 + 1) / denom)
	}
	return score
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// MinMaxNormalize rescales raw scores into [0,1]. A zero-range input (all equal
// scores, including the empty/single-element case) maps every value to 0, matching
// the ranker's "failed embedder still yields usable order" contract (spec §4.5): a
// flat vector signal must not perturb the composite score.
func MinMaxNormalize(raw []float64) []float64 {
	out := make([]float64, len(raw))
	if len(raw) == 0 {
		return out
	}
	min, max := raw[0], raw[0]
	for _, v := range raw {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max == min {
		return out
	}
	for i, v := range raw {
		out[i] = (v - min) / (max - min)
	}
	return out
}
