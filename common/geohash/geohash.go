// Package geohash converts coordinates to and from geohashes, either as
// base32 strings or as 64 bit integers, at 1 to 12 characters of precision.
//
// Encoding quantizes each axis to 32 bits, interleaves them into a morton
// code (latitude on the even bits, longitude on the odd) and keeps the top
// 5*precision bits. Decoding reverses this and returns the center of the cell.
package geohash

func encode(lat, lng float64, precision int) Compact {
	morton := interleave64(quantize(lat, MaxLatitude), quantize(lng, MaxLongitude))
	return Aligned(morton).Compact(precision)
}

func decode(hash Aligned, precision int) Point {
	latBits, lngBits := deinterleave64(hash)
	return Point{
		Latitude:  dequantize(latBits, MaxLatitude) + latErr[precision],
		Longitude: dequantize(lngBits, MaxLongitude) + lngErr[precision],
	}
}

// EncodeToInteger returns the compact integer geohash of the point.
func EncodeToInteger(latitude, longitude float64, precision int) (Compact, error) {
	if err := checkCoordinate(latitude, longitude, precision); err != nil {
		return 0, err
	}
	return encode(latitude, longitude, precision), nil
}

// EncodeToString returns the precision characters long geohash of the point.
func EncodeToString(latitude, longitude float64, precision int) (string, error) {
	if err := checkCoordinate(latitude, longitude, precision); err != nil {
		return "", err
	}
	return encodeBase32(encode(latitude, longitude, precision), precision), nil
}

// DecodeFromString returns the center of the cell named by input, the
// precision is the length of input.
func DecodeFromString(input string) (latitude, longitude float64, err error) {
	if len(input) == 0 {
		return 0, 0, invalidArg("input", `""`)
	}
	if len(input) > MaxPrecision {
		return 0, 0, outOfRange("input length", len(input))
	}
	return DecodeFromStringWithPrecision(input, len(input))
}

// DecodeFromStringWithPrecision decodes only the first precision characters of input.
func DecodeFromStringWithPrecision(input string, precision int) (latitude, longitude float64, err error) {
	if err = checkInput(input, precision); err != nil {
		return 0, 0, err
	}
	hash, err := decodeBase32(input, precision)
	if err != nil {
		return 0, 0, err
	}
	pt := decode(hash, precision)
	return pt.Latitude, pt.Longitude, nil
}

// DecodeStringFromInteger renders input as a geohash string. The precision
// is read from the low 4 bits of input, which are also part of the hash
// bits, so values returned by EncodeToInteger only round trip when their
// low nibble happens to equal their precision. Use EncodeTagged and
// DecodeTagged for a form that carries its precision.
func DecodeStringFromInteger(input uint64) (string, error) {
	precision := int(input & 0xf)
	if err := checkPrecision(precision); err != nil {
		return "", err
	}
	return encodeBase32(Compact(input), precision), nil
}

// DecodeInteger returns the center of the cell of a compact hash.
func DecodeInteger(hash Compact, precision int) (Point, error) {
	if err := checkPrecision(precision); err != nil {
		return Point{}, err
	}
	if uint64(hash)>>(uint(precision)*bitsPerChar) != 0 {
		return Point{}, outOfRange("hash", uint64(hash))
	}
	return decode(hash.Align(precision), precision), nil
}

// DecodeArea returns the bounds of the cell named by input.
func DecodeArea(input string) (Area, error) {
	if len(input) > MaxPrecision {
		return Area{}, outOfRange("input length", len(input))
	}
	precision := len(input)
	if err := checkInput(input, precision); err != nil {
		return Area{}, err
	}
	hash, err := decodeBase32(input, precision)
	if err != nil {
		return Area{}, err
	}
	c := decode(hash, precision)
	dlat, dlng := latErr[precision], lngErr[precision]
	return Area{
		Hash:      input,
		Latitude:  Range{Min: c.Latitude - dlat, Max: c.Latitude + dlat},
		Longitude: Range{Min: c.Longitude - dlng, Max: c.Longitude + dlng},
	}, nil
}
