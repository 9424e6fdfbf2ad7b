// Package timecode represents SMPTE timecodes for the broadcast frame rates
// 23.98, 24, 25, 29.97 (drop frame), 30, 50, 59.94 (drop frame) and 60.
//
// A Timecode[R] couples an absolute frame number with its hour, minute,
// second and frame fields. The rate R is a type parameter, so timecodes of
// different rates cannot be combined without going through FrameNumber:
//
//	tc, err := timecode.New[timecode.Rate2997](10, 0, 0, 0)
//	tc = tc.Add(1000) // 10:00:33;10
//
// Descriptor exposes the same conversions for a rate chosen at run time.
package timecode

import "golang.org/x/exp/constraints"

// Timecode is a point on the 24-hour timeline of rate R. FrameNumber and the
// fields are always mutual conversions of each other.
type Timecode[R Rate] struct {
	FrameNumber uint32
	Hour        uint8
	Minute      uint8
	Second      uint8
	Frame       uint8
}

func descriptorOf[R Rate]() Descriptor {
	var r R
	return r.Descriptor()
}

// New returns the timecode with the given fields.
func New[R Rate](hour, minute, second, frame uint8) (Timecode[R], error) {
	f := Fields{Hour: hour, Minute: minute, Second: second, Frame: frame}
	n, err := descriptorOf[R]().FrameNumberFields(f)
	if err != nil {
		return Timecode[R]{}, err
	}
	return fromParts[R](n, f), nil
}

// FromFrameNumber returns the timecode of n after wrapping it into the day,
// so that negative values count back from midnight.
func FromFrameNumber[R Rate](n int64) Timecode[R] {
	d := descriptorOf[R]()
	fn := d.Normalize(n)
	f, err := d.Fields(fn)
	if err != nil {
		panic(err)
	}
	return fromParts[R](fn, f)
}

// FromFrames is FromFrameNumber for any integer type, including uint64
// values above the int64 range.
func FromFrames[R Rate, I constraints.Integer](n I) Timecode[R] {
	return FromFrameNumber[R](wrap(n, descriptorOf[R]().MaxFrames))
}

func wrap[I constraints.Integer](n I, max uint32) int64 {
	if n < 0 {
		return int64(n) % int64(max)
	}
	return int64(uint64(n) % uint64(max))
}

func fromParts[R Rate](n uint32, f Fields) Timecode[R] {
	return Timecode[R]{FrameNumber: n, Hour: f.Hour, Minute: f.Minute, Second: f.Second, Frame: f.Frame}
}

// Rate returns the descriptor of R.
func (t Timecode[R]) Rate() Descriptor {
	return descriptorOf[R]()
}

// Fields returns the hour, minute, second and frame of t.
func (t Timecode[R]) Fields() Fields {
	return Fields{Hour: t.Hour, Minute: t.Minute, Second: t.Second, Frame: t.Frame}
}

// Add returns t moved by delta frames, wrapping around the day.
func (t Timecode[R]) Add(delta int64) Timecode[R] {
	return FromFrameNumber[R](int64(t.FrameNumber) + wrap(delta, descriptorOf[R]().MaxFrames))
}

// Sub returns t moved back by delta frames.
func (t Timecode[R]) Sub(delta int64) Timecode[R] {
	return FromFrameNumber[R](int64(t.FrameNumber) - wrap(delta, descriptorOf[R]().MaxFrames))
}

// AddTimecode returns t moved by the frame number of o.
func (t Timecode[R]) AddTimecode(o Timecode[R]) Timecode[R] {
	return t.Add(int64(o.FrameNumber))
}

// SubTimecode returns t moved back by the frame number of o.
func (t Timecode[R]) SubTimecode(o Timecode[R]) Timecode[R] {
	return t.Sub(int64(o.FrameNumber))
}

// AddAssign moves t by delta frames in place.
func (t *Timecode[R]) AddAssign(delta int64) {
	*t = t.Add(delta)
}

// SubAssign moves t back by delta frames in place.
func (t *Timecode[R]) SubAssign(delta int64) {
	*t = t.Sub(delta)
}

// Parse parses the text notation for rate R.
func Parse[R Rate](s string) (Timecode[R], error) {
	f, n, err := descriptorOf[R]().ParseFields(s)
	if err != nil {
		return Timecode[R]{}, err
	}
	return fromParts[R](n, f), nil
}

// String formats t with the separator of R, ';' before the frames for drop-frame rates.
func (t Timecode[R]) String() string {
	return descriptorOf[R]().Format(t.Fields())
}

// MarshalText encodes t as its String form.
func (t Timecode[R]) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses text with Parse for rate R.
func (t *Timecode[R]) UnmarshalText(text []byte) error {
	tc, err := Parse[R](string(text))
	if err != nil {
		return err
	}
	*t = tc
	return nil
}
