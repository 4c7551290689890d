// Package rle implements plain run-length encoding of a character stream.
package rle

// Pair is a run of Count repetitions of Value. Count is always at least one.
type Pair struct {
	Value byte
	Count int
}

// Encode collapses codes into maximal runs; two adjacent pairs never share
// the same value.
func Encode(codes []byte) []Pair {
	var pairs []Pair
	for _, c := range codes {
		if n := len(pairs); n > 0 && pairs[n-1].Value == c {
			pairs[n-1].Count++
			continue
		}
		pairs = append(pairs, Pair{Value: c, Count: 1})
	}
	return pairs
}

// Decode expands pairs back into the original codes.
func Decode(pairs []Pair) []byte {
	var n int
	for _, p := range pairs {
		n += p.Count
	}
	codes := make([]byte, 0, n)
	for _, p := range pairs {
		for i := 0; i < p.Count; i++ {
			codes = append(codes, p.Value)
		}
	}
	return codes
}
