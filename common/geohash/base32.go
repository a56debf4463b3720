package geohash

const (
	Alphabet = "0123456789bcdefghjkmnpqrstuvwxyz"

	invalidChar = 0xFF
)

var decodeTab = func() [256]byte {
	var dec [256]byte
	for i := range dec {
		dec[i] = invalidChar
	}
	for i := 0; i < len(Alphabet); i++ {
		dec[Alphabet[i]] = byte(i)
	}
	return dec
}()

// encodeBase32 renders the low 5*precision bits of hash, most significant group first.
func encodeBase32(hash Compact, precision int) string {
	buf := make([]byte, precision)
	h := uint64(hash)
	for i := precision - 1; i >= 0; i-- {
		buf[i] = Alphabet[h&0x1f]
		h >>= bitsPerChar
	}
	return string(buf)
}

// decodeBase32 reads the first precision characters of input. The caller
// has checked that input holds at least that many bytes.
func decodeBase32(input string, precision int) (Aligned, error) {
	var hash uint64
	for i := 0; i < precision; i++ {
		v := decodeTab[input[i]]
		if v == invalidChar {
			return 0, badChar(input[i], i)
		}
		hash = (hash << bitsPerChar) | uint64(v)
	}
	return Compact(hash).Align(precision), nil
}

// ValidHash reports whether s is a non empty geohash of at most MaxPrecision characters.
func ValidHash(s string) bool {
	if len(s) < MinPrecision || len(s) > MaxPrecision {
		return false
	}
	for i := 0; i < len(s); i++ {
		if decodeTab[s[i]] == invalidChar {
			return false
		}
	}
	return true
}
