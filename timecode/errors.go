package timecode

import (
	"errors"
	"fmt"
)

// ErrorKind classifies timecode errors.
type ErrorKind int

const (
	// InvalidFormat is malformed timecode text.
	InvalidFormat ErrorKind = iota + 1
	// InvalidDropFrameFormat is drop-frame notation for a non-drop rate.
	InvalidDropFrameFormat
	// InvalidTimecode is a well-formed timecode that is not on the rate's timeline.
	InvalidTimecode
	// FrameNumberOutOfRange is a frame number not below the rate's MaxFrames.
	FrameNumberOutOfRange
)

var kindNames = map[ErrorKind]string{
	InvalidFormat:          "invalid format",
	InvalidDropFrameFormat: "invalid drop frame format",
	InvalidTimecode:        "invalid timecode",
	FrameNumberOutOfRange:  "frame number out of range",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is returned by all fallible operations of the package.
type Error struct {
	Kind ErrorKind
	// Field names the offending field (hour, minute, second, frame) when known.
	Field string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	s := "timecode: " + e.Kind.String()
	if e.Field != "" {
		s += ": " + e.Field
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinel errors of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Field == "" && t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrInvalidFormat          = &Error{Kind: InvalidFormat}
	ErrInvalidDropFrameFormat = &Error{Kind: InvalidDropFrameFormat}
	ErrInvalidTimecode        = &Error{Kind: InvalidTimecode}
	ErrFrameNumberOutOfRange  = &Error{Kind: FrameNumberOutOfRange}

	// ErrDroppedFrame is the cause of an InvalidTimecode error for a frame
	// label skipped by drop-frame counting.
	ErrDroppedFrame = errors.New("frame label is dropped")
)

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func fieldError(field string, value, limit uint32) *Error {
	return &Error{Kind: InvalidTimecode, Field: field, Msg: fmt.Sprintf("%d not below %d", value, limit)}
}

func formatError(s, msg string) *Error {
	return &Error{Kind: InvalidFormat, Msg: fmt.Sprintf("%q: %s", s, msg)}
}
