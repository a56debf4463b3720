package server

import (
	"fmt"
	"strconv"
)

// argError is a malformed request argument, as opposed to a well formed
// value the codec rejects.
type argError struct {
	name string
	raw  string
}

func (e *argError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.name, e.raw)
}

func parseFloatArg(name string, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &argError{name: name, raw: raw}
	}
	return v, nil
}

// parsePrecisionArg returns def for an empty argument. Range checks are left to the codec.
func parsePrecisionArg(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &argError{name: "precision", raw: raw}
	}
	return v, nil
}

func parseUintArg(name string, raw string) (uint64, error) {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, &argError{name: name, raw: raw}
	}
	return v, nil
}

// parseCoordArgs reads lat lng [precision].
func parseCoordArgs(args [][]byte) (lat float64, lng float64, precision int, err error) {
	lat, err = parseFloatArg("latitude", string(args[0]))
	if err != nil {
		return
	}
	lng, err = parseFloatArg("longitude", string(args[1]))
	if err != nil {
		return
	}
	var raw string
	if len(args) > 2 {
		raw = string(args[2])
	}
	precision, err = parsePrecisionArg(raw, defaultPrecision())
	return
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
