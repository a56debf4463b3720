package geohash

import "math"

// latErr and lngErr hold half the cell height and width for every
// precision, index 0 covers the whole range.
var latErr, lngErr = func() ([MaxPrecision + 1]float64, [MaxPrecision + 1]float64) {
	var lat, lng [MaxPrecision + 1]float64
	for p := 0; p <= MaxPrecision; p++ {
		latBits, lngBits := bitsFor(p)
		lat[p] = math.Ldexp(MaxLatitude, -latBits)
		lng[p] = math.Ldexp(MaxLongitude, -lngBits)
	}
	return lat, lng
}()

// bitsFor splits the 5*precision bits between the axes. Latitude sits on the
// even positions of the morton code so it gets the smaller half.
func bitsFor(precision int) (latBits int, lngBits int) {
	total := precision * bitsPerChar
	latBits = total / 2
	return latBits, total - latBits
}

func shiftFor(precision int) uint {
	return uint(64 - precision*bitsPerChar)
}

// CellError returns the maximum distance in degrees between a point and the
// center of its cell at the given precision.
func CellError(precision int) (latDelta float64, lngDelta float64, err error) {
	if err = checkPrecision(precision); err != nil {
		return 0, 0, err
	}
	return latErr[precision], lngErr[precision], nil
}
