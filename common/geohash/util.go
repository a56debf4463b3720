package geohash

var (
	// shifts and masks used to spread and squash the bits of a 32 bit value
	// From:  https://graphics.stanford.edu/~seander/bithacks.html#InterleaveBMN
	s = []uint32{0, 1, 2, 4, 8, 16}

	b = []uint64{
		0x5555555555555555,
		0x3333333333333333,
		0x0F0F0F0F0F0F0F0F,
		0x00FF00FF00FF00FF,
		0x0000FFFF0000FFFF,
		0x00000000FFFFFFFF,
	}
)

// spread moves bit k of v to bit 2k of the result.
func spread(v uint32) uint64 {
	x := uint64(v)
	x = (x | x<<s[5]) & b[4]
	x = (x | x<<s[4]) & b[3]
	x = (x | x<<s[3]) & b[2]
	x = (x | x<<s[2]) & b[1]
	x = (x | x<<s[1]) & b[0]
	return x
}

// squash is the inverse of spread, the odd bits of x are ignored.
func squash(x uint64) uint32 {
	x = (x | (x >> s[0])) & b[0]
	x = (x | (x >> s[1])) & b[1]
	x = (x | (x >> s[2])) & b[2]
	x = (x | (x >> s[3])) & b[3]
	x = (x | (x >> s[4])) & b[4]
	x = (x | (x >> s[5])) & b[5]
	return uint32(x)
}

/* Interleave the bits of lat and lng, so the bits of lat
 * are in the even positions and bits from lng in the odd.
 */
func interleave64(lat uint32, lng uint32) uint64 {
	return spread(lat) | (spread(lng) << 1)
}

// deinterleave64 splits a full width morton code back into the latitude
// and longitude cells.
func deinterleave64(interleaved Aligned) (lat uint32, lng uint32) {
	v := uint64(interleaved)
	return squash(v), squash(v >> 1)
}
