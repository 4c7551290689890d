package rle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	tables := map[string]struct {
		in  []byte
		out []Pair
	}{
		"empty":  {nil, nil},
		"single": {[]byte{150}, []Pair{{150, 1}}},
		"runs": {
			[]byte{128, 128, 128, 150, 191, 191},
			[]Pair{{128, 3}, {150, 1}, {191, 2}},
		},
		"no merge across gap": {
			[]byte{128, 150, 128},
			[]Pair{{128, 1}, {150, 1}, {128, 1}},
		},
	}

	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, table.out, Encode(table.in))
		})
	}
}

func TestEncodeProperties(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		codes := make([]byte, r.Intn(2048))
		for j := range codes {
			// Few distinct values so that runs actually occur
			codes[j] = byte(128 + r.Intn(3)*63/2)
		}

		pairs := Encode(codes)

		sum := 0
		for j, p := range pairs {
			assert.True(t, p.Count >= 1)
			if j > 0 {
				assert.NotEqual(t, pairs[j-1].Value, p.Value)
			}
			sum += p.Count
		}
		assert.Equal(t, len(codes), sum)
		assert.Equal(t, len(codes), len(Decode(pairs)))
		if len(codes) > 0 {
			assert.Equal(t, codes, Decode(pairs))
		}
	}
}
