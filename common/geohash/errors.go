package geohash

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	OutOfRange ErrorKind = iota + 1
	InvalidArgument
	Format
)

func (k ErrorKind) String() string {
	switch k {
	case OutOfRange:
		return "out of range"
	case InvalidArgument:
		return "invalid argument"
	case Format:
		return "format error"
	default:
		return "unknown"
	}
}

var (
	ErrOutOfRange      = errors.New("geohash: value out of range")
	ErrInvalidArgument = errors.New("geohash: invalid argument")
	ErrFormat          = errors.New("geohash: invalid geohash character")
)

// Error reports which argument failed validation. Pos is only meaningful
// for Format errors and is the byte offset of the bad character.
type Error struct {
	Kind  ErrorKind
	Param string
	Value interface{}
	Pos   int
}

func (e *Error) Error() string {
	switch e.Kind {
	case Format:
		return fmt.Sprintf("geohash: invalid character %q at position %d in %s", e.Value, e.Pos, e.Param)
	case InvalidArgument:
		return fmt.Sprintf("geohash: invalid %s: %v", e.Param, e.Value)
	default:
		return fmt.Sprintf("geohash: %s %v out of range", e.Param, e.Value)
	}
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrOutOfRange:
		return e.Kind == OutOfRange
	case ErrInvalidArgument:
		return e.Kind == InvalidArgument
	case ErrFormat:
		return e.Kind == Format
	}
	return false
}

// KindOf returns the kind of a codec error, or 0 if err did not come from this package.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func outOfRange(param string, v interface{}) error {
	return &Error{Kind: OutOfRange, Param: param, Value: v}
}

func invalidArg(param string, v interface{}) error {
	return &Error{Kind: InvalidArgument, Param: param, Value: v}
}

func badChar(c byte, pos int) error {
	return &Error{Kind: Format, Param: "input", Value: rune(c), Pos: pos}
}
