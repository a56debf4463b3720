package geohash

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"
)

// slack for float rounding at cell edges
const epsilon = 1e-9

func TestEncodeToString(t *testing.T) {
	type tstruct struct {
		Point
		precision int
		hash      string
		value     Compact
	}
	places := []tstruct{
		// Wellington, New Zealand
		{Point{-41.2858, 174.7868}, 12, "rbsm1k5ug9h6", 840786700038284806},
		{Point{-12.347856, 34.890273}, 3, "kvb", 19306},
		{Point{80.294617, 19.543821}, 5, "uqmbu", 28003674},
		// San Francisco
		{Point{37.7562761, -122.4016857}, 8, "9q8yy9mf", 0},
		{Point{42.6, -5.6}, 5, "ezs42", 0},
		{Point{0, 0}, 1, "s", 24},
		{Point{0, 0}, 12, "s00000000000", 864691128455135232},
	}

	for _, v := range places {
		hash, err := EncodeToString(v.Latitude, v.Longitude, v.precision)
		if err != nil {
			t.Fatal(err)
		}
		if hash != v.hash {
			t.Fatalf("the geohash of position %v at precision %d should be:%s, not:%s",
				v.Point, v.precision, v.hash, hash)
		}
		if v.value == 0 {
			continue
		}
		value, err := EncodeToInteger(v.Latitude, v.Longitude, v.precision)
		if err != nil {
			t.Fatal(err)
		}
		if value != v.value {
			t.Fatalf("the integer geohash of position %v should be:%d, not:%d", v.Point, v.value, value)
		}
	}
}

func TestDecodeFromString(t *testing.T) {
	lat, lng, err := DecodeFromStringWithPrecision("rbsm1k5ug9h6", 12)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(lat-(-41.2858)) > latErr[12] || math.Abs(lng-174.7868) > lngErr[12] {
		t.Fatalf("decode rbsm1k5ug9h6 mismatch: [%.9f, %.9f]", lat, lng)
	}
	if math.Abs(lat-(-41.2857999)) > 1e-7 {
		t.Fatalf("decode rbsm1k5ug9h6 latitude mismatch: %.9f", lat)
	}
	// the center longitude is 1.5e-7 away from 174.7867999
	if math.Abs(lat-(-41.285799918696284)) > 1e-9 || math.Abs(lng-174.78680005297065) > 1e-9 {
		t.Fatalf("decode rbsm1k5ug9h6 center mismatch: [%.15f, %.15f]", lat, lng)
	}

	lat, lng, err = DecodeFromString("9q8yy9mf")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(lat-37.756319046) > 1e-7 || math.Abs(lng-(-122.401599884)) > 1e-7 {
		t.Fatalf("decode 9q8yy9mf mismatch: [%.9f, %.9f]", lat, lng)
	}
	// the reference point lies in the same cell
	if math.Abs(lat-37.7562761) > latErr[8] || math.Abs(lng-(-122.4016857)) > lngErr[8] {
		t.Fatalf("decode 9q8yy9mf too far from reference: [%.9f, %.9f]", lat, lng)
	}

	lat, lng, err = DecodeFromString("s")
	if err != nil {
		t.Fatal(err)
	}
	if lat != 22.5 || lng != 22.5 {
		t.Fatalf("decode s should be the cell center, got [%f, %f]", lat, lng)
	}

	// only the leading characters take part
	lat2, lng2, err := DecodeFromStringWithPrecision("s0000zzz", 1)
	if err != nil {
		t.Fatal(err)
	}
	if lat2 != lat || lng2 != lng {
		t.Fatalf("decode with precision 1 should ignore the tail, got [%f, %f]", lat2, lng2)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		precision int
		kind      ErrorKind
		target    error
	}{
		{"precision exceeds input", "abc", 5, InvalidArgument, ErrInvalidArgument},
		{"empty", "", 1, InvalidArgument, ErrInvalidArgument},
		{"negative precision", "abcd", -1, OutOfRange, ErrOutOfRange},
		{"zero precision", "bcd", 0, OutOfRange, ErrOutOfRange},
		{"too large precision", "0123456789bcdef", 13, OutOfRange, ErrOutOfRange},
		{"letter a", "9qa", 3, Format, ErrFormat},
		{"upper case", "9Q8", 3, Format, ErrFormat},
		{"non ascii", "9q\xff", 3, Format, ErrFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeFromStringWithPrecision(tt.input, tt.precision)
			if err == nil {
				t.Fatalf("decode %q at %d should fail", tt.input, tt.precision)
			}
			if KindOf(err) != tt.kind {
				t.Fatalf("error kind should be %v, got %v (%v)", tt.kind, KindOf(err), err)
			}
			if !errors.Is(err, tt.target) {
				t.Fatalf("error %v should match %v", err, tt.target)
			}
		})
	}

	if _, _, err := DecodeFromString(""); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("empty input should be an invalid argument, got %v", err)
	}
	if _, _, err := DecodeFromString("0123456789bcd"); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("13 characters should be out of range, got %v", err)
	}
	_, _, err := DecodeFromString("9q8yo")
	var e *Error
	if !errors.As(err, &e) || e.Kind != Format || e.Pos != 4 {
		t.Fatalf("the bad character position should be reported, got %v", err)
	}
}

func TestEncodeBounds(t *testing.T) {
	for _, p := range []int{MinPrecision, MaxPrecision} {
		if _, err := EncodeToString(10, 10, p); err != nil {
			t.Fatalf("precision %d should be valid: %v", p, err)
		}
	}
	for _, p := range []int{-1, 0, 13} {
		_, err := EncodeToString(10, 10, p)
		if !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("precision %d should be out of range, got %v", p, err)
		}
		if _, err = EncodeToInteger(10, 10, p); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("precision %d should be out of range, got %v", p, err)
		}
	}

	for _, pt := range []Point{{90, 180}, {-90, -180}, {90, -180}, {-90, 180}} {
		if _, err := EncodeToString(pt.Latitude, pt.Longitude, 12); err != nil {
			t.Fatalf("%v should be valid: %v", pt, err)
		}
	}
	hash, _ := EncodeToString(90, 180, 12)
	if hash != "zzzzzzzzzzzz" {
		t.Fatalf("north east corner should be the last cell, got %s", hash)
	}
	hash, _ = EncodeToString(-90, -180, 12)
	if hash != "000000000000" {
		t.Fatalf("south west corner should be the first cell, got %s", hash)
	}

	bad := []struct {
		Point
		param string
	}{
		{Point{math.Nextafter(90, 91), 0}, "latitude"},
		{Point{math.Nextafter(-90, -91), 0}, "latitude"},
		{Point{0, math.Nextafter(180, 181)}, "longitude"},
		{Point{0, math.Nextafter(-180, -181)}, "longitude"},
		{Point{math.NaN(), 0}, "latitude"},
		{Point{0, math.Inf(1)}, "longitude"},
	}
	for _, v := range bad {
		_, err := EncodeToString(v.Latitude, v.Longitude, 5)
		var e *Error
		if !errors.As(err, &e) || e.Kind != OutOfRange || e.Param != v.param {
			t.Fatalf("%v should fail on %s, got %v", v.Point, v.param, err)
		}
	}
}

func TestDecodeStringFromInteger(t *testing.T) {
	tests := []struct {
		input uint64
		hash  string
	}{
		{840786700038284806, "5ug9h6"},
		{19306, "0000000kvb"},
		{5, "00005"},
		{12, "00000000000d"},
		{17, "j"},
	}
	for _, tt := range tests {
		hash, err := DecodeStringFromInteger(tt.input)
		if err != nil {
			t.Fatal(err)
		}
		if hash != tt.hash {
			t.Fatalf("%d should render as %s, got %s", tt.input, tt.hash, hash)
		}
	}
	for _, v := range []uint64{0, 13, 15, 0xfff0} {
		if _, err := DecodeStringFromInteger(v); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("%d should carry an invalid precision, got %v", v, err)
		}
	}
}

func TestTaggedRoundTrip(t *testing.T) {
	v, err := EncodeTagged(-41.2858, 174.7868, 12)
	if err != nil {
		t.Fatal(err)
	}
	if v != 13452587200612556908 {
		t.Fatalf("tagged value mismatch: %d", v)
	}
	hash, err := DecodeTagged(v)
	if err != nil {
		t.Fatal(err)
	}
	if hash != "rbsm1k5ug9h6" {
		t.Fatalf("tagged value should decode to rbsm1k5ug9h6, got %s", hash)
	}

	r := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		lat, lng := r.Float64()*180-90, r.Float64()*360-180
		p := r.Intn(MaxPrecision) + 1
		v, err := EncodeTagged(lat, lng, p)
		if err != nil {
			t.Fatal(err)
		}
		c, tp, err := SplitTagged(v)
		if err != nil || tp != p {
			t.Fatalf("tag of %d should be %d, got %d, %v", v, p, tp, err)
		}
		want, _ := EncodeToString(lat, lng, p)
		got, _ := DecodeTagged(v)
		if got != want {
			t.Fatalf("tagged decode mismatch %s != %s", got, want)
		}
		pt, err := DecodeInteger(c, p)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(pt.Latitude-lat) > latErr[p]+epsilon || math.Abs(pt.Longitude-lng) > lngErr[p]+epsilon {
			t.Fatalf("decode integer %d at %d too far from %f, %f: %v", c, p, lat, lng, pt)
		}
	}
	if _, err := DecodeTagged(0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("zero tag should be out of range, got %v", err)
	}
}

func TestProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 5000; i++ {
		lat, lng := r.Float64()*180-90, r.Float64()*360-180

		full, err := EncodeToString(lat, lng, MaxPrecision)
		if err != nil {
			t.Fatal(err)
		}
		fullValue, _ := EncodeToInteger(lat, lng, MaxPrecision)
		for p := MinPrecision; p <= MaxPrecision; p++ {
			hash, err := EncodeToString(lat, lng, p)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.HasPrefix(full, hash) {
				t.Fatalf("%s should be a prefix of %s", hash, full)
			}
			value, _ := EncodeToInteger(lat, lng, p)
			if uint64(fullValue)>>(uint(MaxPrecision-p)*bitsPerChar) != uint64(value) {
				t.Fatalf("integer hash %d at %d should be a bit prefix of %d", value, p, fullValue)
			}

			dlat, dlng, err := DecodeFromStringWithPrecision(hash, p)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(dlat-lat) > latErr[p]+epsilon || math.Abs(dlng-lng) > lngErr[p]+epsilon {
				t.Fatalf("decode %s gives [%f, %f], too far from [%f, %f]", hash, dlat, dlng, lat, lng)
			}
			again, err := EncodeToString(dlat, dlng, p)
			if err != nil {
				t.Fatal(err)
			}
			if again != hash {
				t.Fatalf("the center of %s encodes to %s", hash, again)
			}
		}
	}
}

func TestDecodeArea(t *testing.T) {
	area, err := DecodeArea("ezs42")
	if err != nil {
		t.Fatal(err)
	}
	if !area.Latitude.Contains(42.6) || !area.Longitude.Contains(-5.6) {
		t.Fatalf("area %v should contain the encoded point", area)
	}
	if math.Abs(area.Latitude.Max-area.Latitude.Min-2*latErr[5]) > 1e-12 {
		t.Fatalf("area height mismatch: %v", area.Latitude)
	}
	c := area.Center()
	lat, lng, _ := DecodeFromString("ezs42")
	if c.Latitude != lat || c.Longitude != lng {
		t.Fatalf("area center %v should match the decoded point", c)
	}
	if _, err := DecodeArea(""); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("empty area should fail, got %v", err)
	}
}

func TestDecodeIntegerRejectsWideHash(t *testing.T) {
	if _, err := DecodeInteger(1<<10, 2); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("11 bit hash at precision 2 should be rejected, got %v", err)
	}
	if _, err := DecodeInteger(19306, 3); err != nil {
		t.Fatal(err)
	}
}
