package geohash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTable(t *testing.T) {
	assert.Equal(t, float64(90), latErr[0])
	assert.Equal(t, float64(180), lngErr[0])
	assert.Equal(t, 22.5, latErr[1])
	assert.Equal(t, 22.5, lngErr[1])
	assert.Equal(t, 2.8125, latErr[2])
	assert.Equal(t, 5.625, lngErr[2])
	assert.Equal(t, 8.58306884765625e-05, latErr[8])
	assert.Equal(t, 0.000171661376953125, lngErr[8])
	assert.Equal(t, 8.381903171539307e-08, latErr[12])
	assert.Equal(t, 1.6763806343078613e-07, lngErr[12])

	for p := 1; p <= MaxPrecision; p++ {
		latBits, lngBits := bitsFor(p)
		assert.Equal(t, p*5, latBits+lngBits)
		assert.True(t, lngBits-latBits == 0 || lngBits-latBits == 1)
		assert.True(t, latErr[p] < latErr[p-1])
		assert.True(t, lngErr[p] < lngErr[p-1])
	}
}

func TestCellError(t *testing.T) {
	dlat, dlng, err := CellError(5)
	require.Nil(t, err)
	assert.Equal(t, 0.02197265625, dlat)
	assert.Equal(t, 0.02197265625, dlng)

	_, _, err = CellError(0)
	assert.Equal(t, OutOfRange, KindOf(err))
}

func TestAlignCompact(t *testing.T) {
	c := Compact(19306)
	a := c.Align(3)
	assert.Equal(t, Aligned(uint64(19306)<<49), a)
	assert.Equal(t, c, a.Compact(3))

	full := Aligned(interleave64(0xDEADBEEF, 0xCAFEBABE))
	for p := MinPrecision; p <= MaxPrecision; p++ {
		// truncation then realignment clears exactly the dropped bits
		mask := ^uint64(0) << shiftFor(p)
		assert.Equal(t, Aligned(uint64(full)&mask), full.Compact(p).Align(p))
	}
}
