// Package analysis finds patterns in move sequences.
package analysis

import (
	"sort"
	"strings"

	"github.com/SeamusWaldron/cubestate/internal/notation"
)

// NGram represents a repeated move sequence.
type NGram struct {
	N           int      `json:"n"`
	Sequence    []string `json:"sequence"`
	Count       int      `json:"count"`
	Occurrences []int    `json:"occurrences,omitempty"` // start indexes, at most 10
}

// NGramReport contains the results of n-gram mining.
type NGramReport struct {
	TopNGrams map[int][]NGram `json:"top_ngrams"` // Keyed by n
}

// RollingHash implements Rabin-Karp rolling hash for efficient n-gram detection.
type RollingHash struct {
	base   uint64
	hash   uint64
	pow    uint64 // base^(n-1) for removal
	window []uint8
	n      int
}

// NewRollingHash creates a new rolling hash for window size n.
func NewRollingHash(n int) *RollingHash {
	rh := &RollingHash{
		base:   31,
		n:      n,
		window: make([]uint8, 0, n),
	}

	rh.pow = 1
	for i := 0; i < n-1; i++ {
		rh.pow *= rh.base
	}

	return rh
}

// Roll adds a token, dropping the oldest once the window is full.
func (rh *RollingHash) Roll(token uint8) {
	if len(rh.window) < rh.n {
		rh.window = append(rh.window, token)
		rh.hash = rh.hash*rh.base + uint64(token)
		return
	}

	old := rh.window[0]
	rh.hash = (rh.hash-uint64(old)*rh.pow)*rh.base + uint64(token)

	copy(rh.window, rh.window[1:])
	rh.window[rh.n-1] = token
}

// Hash returns the current hash value.
func (rh *RollingHash) Hash() uint64 {
	return rh.hash
}

// Window returns a copy of the current window.
func (rh *RollingHash) Window() []uint8 {
	result := make([]uint8, len(rh.window))
	copy(result, rh.window)
	return result
}

// Ready returns true if the window is full.
func (rh *RollingHash) Ready() bool {
	return len(rh.window) == rh.n
}

// encode maps canonical tokens to small integers for hashing. Tokens that
// do not parse are dropped.
func encode(tokens []string) ([]uint8, []string) {
	ids := make(map[string]uint8)
	var codes []uint8
	var kept []string
	for _, t := range tokens {
		c, err := notation.Canonical(t)
		if err != nil {
			continue
		}
		id, ok := ids[c]
		if !ok {
			id = uint8(len(ids) + 1)
			ids[c] = id
		}
		codes = append(codes, id)
		kept = append(kept, c)
	}
	return codes, kept
}

type ngramEntry struct {
	start       int
	tokens      []uint8
	count       int
	occurrences []int
}

// MineNGrams finds the top-K most frequent repeated n-grams for each n in
// [minN, maxN].
func MineNGrams(tokens []string, minN, maxN, topK int) *NGramReport {
	report := &NGramReport{TopNGrams: make(map[int][]NGram)}

	codes, canon := encode(tokens)
	for n := minN; n <= maxN && n <= len(codes); n++ {
		if n < 1 {
			continue
		}
		if ngrams := mineNGramsForN(codes, canon, n, topK); len(ngrams) > 0 {
			report.TopNGrams[n] = ngrams
		}
	}

	return report
}

func mineNGramsForN(codes []uint8, canon []string, n, topK int) []NGram {
	counts := make(map[uint64][]*ngramEntry)
	var order []*ngramEntry
	rh := NewRollingHash(n)

	for i, c := range codes {
		rh.Roll(c)
		if !rh.Ready() {
			continue
		}

		start := i - n + 1
		window := rh.Window()
		h := rh.Hash()

		var found *ngramEntry
		// Hash collisions are resolved by comparing windows
		for _, e := range counts[h] {
			if slicesEqual(e.tokens, window) {
				found = e
				break
			}
		}
		if found == nil {
			found = &ngramEntry{start: start, tokens: window}
			counts[h] = append(counts[h], found)
			order = append(order, found)
		}
		found.count++
		if len(found.occurrences) < 10 {
			found.occurrences = append(found.occurrences, start)
		}
	}

	var entries []*ngramEntry
	for _, e := range order {
		// Only include n-grams that appear more than once
		if e.count >= 2 {
			entries = append(entries, e)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].count > entries[j].count
	})
	if len(entries) > topK {
		entries = entries[:topK]
	}

	result := make([]NGram, len(entries))
	for i, e := range entries {
		seq := make([]string, n)
		copy(seq, canon[e.start:e.start+n])
		result[i] = NGram{
			N:           n,
			Sequence:    seq,
			Count:       e.count,
			Occurrences: e.occurrences,
		}
	}
	return result
}

func slicesEqual(a, b []uint8) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String renders the n-gram as notation.
func (g NGram) String() string {
	return strings.Join(g.Sequence, " ")
}
