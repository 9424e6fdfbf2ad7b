package timecode

import (
	"fmt"
	"strings"
	"time"
)

// Descriptor holds the constants of one supported frame rate.
type Descriptor struct {
	Name      string `json:"name"`
	FPS       uint32 `json:"fps"`
	DropFrame bool   `json:"dropFrame"`
	MaxFrames uint32 `json:"maxFrames"`
	// Numerator and Denominator give the exact rate, e.g. 30000/1001 for 29.97.
	Numerator   uint32 `json:"numerator"`
	Denominator uint32 `json:"denominator"`
}

const secondsPerDay = 86400

func nonDrop(name string, fps, num, den uint32) Descriptor {
	return Descriptor{Name: name, FPS: fps, MaxFrames: secondsPerDay * fps, Numerator: num, Denominator: den}
}

// dropFrame is only used for the 30-multiple rates. 144 ten-minute blocks a
// day, each dropping 9 * fps/15 frames.
func dropFrame(name string, fps, num, den uint32) Descriptor {
	return Descriptor{
		Name:        name,
		FPS:         fps,
		DropFrame:   true,
		MaxFrames:   secondsPerDay*fps - 144*(18*(fps/30)),
		Numerator:   num,
		Denominator: den,
	}
}

var (
	desc24   = nonDrop("24", 24, 24, 1)
	desc25   = nonDrop("25", 25, 25, 1)
	desc30   = nonDrop("30", 30, 30, 1)
	desc50   = nonDrop("50", 50, 50, 1)
	desc60   = nonDrop("60", 60, 60, 1)
	desc2398 = nonDrop("23.98", 24, 24000, 1001)
	desc2997 = dropFrame("29.97", 30, 30000, 1001)
	desc5994 = dropFrame("59.94", 60, 60000, 1001)
)

// Rate is a frame rate tag. The set of implementations is closed.
type Rate interface {
	Descriptor() Descriptor
	rate()
}

type (
	Rate24   struct{}
	Rate25   struct{}
	Rate30   struct{}
	Rate50   struct{}
	Rate60   struct{}
	Rate2398 struct{}
	Rate2997 struct{}
	Rate5994 struct{}
)

func (Rate24) Descriptor() Descriptor   { return desc24 }
func (Rate25) Descriptor() Descriptor   { return desc25 }
func (Rate30) Descriptor() Descriptor   { return desc30 }
func (Rate50) Descriptor() Descriptor   { return desc50 }
func (Rate60) Descriptor() Descriptor   { return desc60 }
func (Rate2398) Descriptor() Descriptor { return desc2398 }
func (Rate2997) Descriptor() Descriptor { return desc2997 }
func (Rate5994) Descriptor() Descriptor { return desc5994 }

func (Rate24) rate()   {}
func (Rate25) rate()   {}
func (Rate30) rate()   {}
func (Rate50) rate()   {}
func (Rate60) rate()   {}
func (Rate2398) rate() {}
func (Rate2997) rate() {}
func (Rate5994) rate() {}

// Rates returns the descriptors of all supported rates.
func Rates() []Descriptor {
	return []Descriptor{desc2398, desc24, desc25, desc2997, desc30, desc50, desc5994, desc60}
}

// Lookup returns the descriptor with the given name. Names without the dot
// ("2997") and "23.976" are accepted as well.
func Lookup(name string) (Descriptor, error) {
	n := strings.TrimSpace(name)
	if n == "23.976" {
		n = "23.98"
	}
	for _, d := range Rates() {
		if n == d.Name || n == strings.ReplaceAll(d.Name, ".", "") {
			return d, nil
		}
	}
	return Descriptor{}, fmt.Errorf("unsupported frame rate %q", name)
}

func (d Descriptor) String() string {
	if d.DropFrame {
		return d.Name + "DF"
	}
	return d.Name
}

// DroppedPerMinute is the number of frame labels skipped at the start of
// each minute not divisible by ten. Zero for non-drop rates.
func (d Descriptor) DroppedPerMinute() uint32 {
	if !d.DropFrame {
		return 0
	}
	return d.FPS / 15
}

func (d Descriptor) framesPerMinute() uint32 {
	return d.FPS * 60
}

func (d Descriptor) framesPerHour() uint32 {
	return d.framesPerMinute() * 60
}

// Duration returns the media time taken by n frames at the exact rate.
func (d Descriptor) Duration(n uint32) time.Duration {
	return time.Duration(uint64(n) * uint64(d.Denominator) * uint64(time.Second) / uint64(d.Numerator))
}

// FramesIn returns the number of frames, rounded to nearest, that fit in dur.
func (d Descriptor) FramesIn(dur time.Duration) int64 {
	num := int64(dur) * int64(d.Numerator)
	den := int64(time.Second) * int64(d.Denominator)
	return divRound(num, den)
}

// divRound divides rounding half away from zero. den must be positive.
func divRound(num, den int64) int64 {
	if num < 0 {
		return -((-num + den/2) / den)
	}
	return (num + den/2) / den
}
