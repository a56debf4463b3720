package geohash

const precisionMask = 0xf

// EncodeTagged packs the compact hash and its precision into one integer:
// hash<<4 | precision. 60 hash bits plus the 4 bit tag always fit.
func EncodeTagged(latitude, longitude float64, precision int) (uint64, error) {
	c, err := EncodeToInteger(latitude, longitude, precision)
	if err != nil {
		return 0, err
	}
	return uint64(c)<<4 | uint64(precision), nil
}

// SplitTagged returns the compact hash and the precision of a tagged integer.
func SplitTagged(v uint64) (Compact, int, error) {
	precision := int(v & precisionMask)
	if err := checkPrecision(precision); err != nil {
		return 0, 0, err
	}
	return Compact(v >> 4), precision, nil
}

// DecodeTagged renders a value produced by EncodeTagged as a geohash string.
func DecodeTagged(v uint64) (string, error) {
	c, precision, err := SplitTagged(v)
	if err != nil {
		return "", err
	}
	return encodeBase32(c, precision), nil
}
