package geohash

import "fmt"

// The comparisons are written so that NaN fails them.

func checkLatitude(lat float64) error {
	if !(lat >= MinLatitude && lat <= MaxLatitude) {
		return outOfRange("latitude", lat)
	}
	return nil
}

func checkLongitude(lng float64) error {
	if !(lng >= MinLongitude && lng <= MaxLongitude) {
		return outOfRange("longitude", lng)
	}
	return nil
}

func checkPrecision(precision int) error {
	if precision < MinPrecision || precision > MaxPrecision {
		return outOfRange("precision", precision)
	}
	return nil
}

func checkCoordinate(lat, lng float64, precision int) error {
	if err := checkLatitude(lat); err != nil {
		return err
	}
	if err := checkLongitude(lng); err != nil {
		return err
	}
	return checkPrecision(precision)
}

// checkInput validates a string to be decoded at the given precision.
func checkInput(input string, precision int) error {
	if len(input) == 0 {
		return invalidArg("input", `""`)
	}
	if err := checkPrecision(precision); err != nil {
		return err
	}
	if precision > len(input) {
		return invalidArg("precision", fmt.Sprintf("%d exceeds input length %d", precision, len(input)))
	}
	return nil
}
