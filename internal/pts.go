package internal

import (
	"time"

	"github.com/Eyevinn/timecode-tools/timecode"
)

const (
	PacketSize = 188
	PtsWrap    = 1 << 33
	TimeScale  = 90000
)

func SignedPTSDiff(p2, p1 int64) int64 {
	return (p2-p1+3*PtsWrap/2)%PtsWrap - PtsWrap/2
}

func AddPTS(p1, p2 int64) int64 {
	return (p1 + p2) % PtsWrap
}

// PTSToDuration converts a 90 kHz tick count to a duration.
func PTSToDuration(ticks int64) time.Duration {
	return time.Duration(ticks * int64(time.Second) / TimeScale)
}

// PTSToFrames returns the number of frames, rounded to nearest, spanned by
// a signed 90 kHz tick difference at rate d.
func PTSToFrames(ticks int64, d timecode.Descriptor) int64 {
	return d.FramesIn(PTSToDuration(ticks))
}
