package geohash

import "fmt"

const (
	MinLatitude  float64 = -90
	MaxLatitude  float64 = 90
	MinLongitude float64 = -180
	MaxLongitude float64 = 180

	MinPrecision = 1
	MaxPrecision = 12

	// bits carried by one base32 character
	bitsPerChar = 5
)

var (
	LatitudeRange  = Range{Min: MinLatitude, Max: MaxLatitude}
	LongitudeRange = Range{Min: MinLongitude, Max: MaxLongitude}
)

type Range struct {
	Max float64 `json:"max"`
	Min float64 `json:"min"`
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) Center() float64 {
	return (r.Min + r.Max) / 2
}

type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%f, %f)", p.Latitude, p.Longitude)
}

// Area is the cell covered by a geohash.
type Area struct {
	Hash      string `json:"hash"`
	Latitude  Range  `json:"latitude"`
	Longitude Range  `json:"longitude"`
}

func (a Area) Center() Point {
	return Point{Latitude: a.Latitude.Center(), Longitude: a.Longitude.Center()}
}

// Compact is a truncated morton code with the 5*precision significant bits
// moved to the low end of the word. It is what EncodeToInteger returns.
type Compact uint64

// Aligned keeps the significant bits at the high end of the word with the
// remaining low bits zeroed, the layout deinterleave64 expects.
type Aligned uint64

// Align moves the bits of a compact hash of the given precision to the top of the word.
func (c Compact) Align(precision int) Aligned {
	return Aligned(uint64(c) << shiftFor(precision))
}

// Compact drops the zero filled low bits of an aligned hash of the given precision.
func (a Aligned) Compact(precision int) Compact {
	return Compact(uint64(a) >> shiftFor(precision))
}
