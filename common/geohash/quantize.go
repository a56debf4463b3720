package geohash

import "math"

const (
	cellCount = 1 << 32
	maxCell   = math.MaxUint32
)

// quantize maps x in [-halfRange, halfRange] onto the 2^32 cells of the range.
// x == halfRange would land on cell 2^32, it is kept in the last cell instead.
func quantize(x, halfRange float64) uint32 {
	p := (x + halfRange) / (2 * halfRange)
	v := math.Floor(p * cellCount)
	if v >= maxCell {
		return maxCell
	}
	if v <= 0 {
		return 0
	}
	return uint32(v)
}

// dequantize returns the lower edge of cell y.
func dequantize(y uint32, halfRange float64) float64 {
	p := float64(y) / cellCount
	return 2*halfRange*p - halfRange
}
