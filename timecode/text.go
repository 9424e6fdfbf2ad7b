package timecode

import "fmt"

// Text notation is HH?MM?SS?FF with 2-digit fields. The first separator
// (':', ';' or '.') sets the notation and the second must repeat it. With
// colon notation the last separator is ':' for non-drop, or ';'/'.' for drop
// frame. With ';' or '.' notation the whole string is drop frame.
const textLen = len("00:00:00:00")

func isNotation(c byte) bool {
	return c == ':' || c == ';' || c == '.'
}

func twoDigits(s string, pos int) (uint8, bool) {
	a, b := s[pos], s[pos+1]
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return (a-'0')*10 + (b - '0'), true
}

// scanText tokenizes s without any rate knowledge.
func scanText(s string) (f Fields, drop bool, err error) {
	if len(s) != textLen {
		return f, false, formatError(s, fmt.Sprintf("length %d, want %d", len(s), textLen))
	}
	notation := s[2]
	if !isNotation(notation) {
		return f, false, formatError(s, fmt.Sprintf("bad separator %q", notation))
	}
	if s[5] != notation {
		return f, false, formatError(s, "mixed separators")
	}
	last := s[8]
	switch {
	case notation == ':' && isNotation(last):
		drop = last != ':'
	case last == ';' || last == '.':
		drop = true
	default:
		return f, false, formatError(s, "mixed separators")
	}

	var vals [4]uint8
	for i := range vals {
		v, ok := twoDigits(s, i*3)
		if !ok {
			return f, false, formatError(s, "non-digit in field")
		}
		vals[i] = v
	}
	// Hour is only sanity checked here, its real bound is enforced by FrameNumber.
	if vals[0] >= 60 || vals[1] >= 60 || vals[2] >= 60 {
		return f, false, formatError(s, "field out of range")
	}
	return Fields{Hour: vals[0], Minute: vals[1], Second: vals[2], Frame: vals[3]}, drop, nil
}

// ParseFields parses s for this rate and returns the fields and their frame number.
func (d Descriptor) ParseFields(s string) (Fields, uint32, error) {
	f, drop, err := scanText(s)
	if err != nil {
		return Fields{}, 0, err
	}
	if drop && !d.DropFrame {
		return Fields{}, 0, &Error{
			Kind: InvalidDropFrameFormat,
			Msg:  fmt.Sprintf("%q for non-drop rate %s", s, d),
		}
	}
	n, err := d.FrameNumberFields(f)
	if err != nil {
		if KindOf(err) == InvalidTimecode {
			return Fields{}, 0, err
		}
		return Fields{}, 0, &Error{Kind: InvalidTimecode, Msg: fmt.Sprintf("%q", s), Err: err}
	}
	return f, n, nil
}

// Format returns the canonical text of f: HH:MM:SS:FF, or HH:MM:SS;FF for
// drop-frame rates.
func (d Descriptor) Format(f Fields) string {
	sep := ':'
	if d.DropFrame {
		sep = ';'
	}
	return fmt.Sprintf("%02d:%02d:%02d%c%02d", f.Hour, f.Minute, f.Second, sep, f.Frame)
}
