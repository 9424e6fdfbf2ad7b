package timecode

import "fmt"

// Fields are the decomposed parts of a timecode.
type Fields struct {
	Hour   uint8 `json:"hour"`
	Minute uint8 `json:"minute"`
	Second uint8 `json:"second"`
	Frame  uint8 `json:"frame"`
}

// FrameNumber converts timecode fields to the absolute frame count since
// 00:00:00:00. For drop-frame rates, frames 0 to DroppedPerMinute()-1 of
// second 0 do not exist in minutes not divisible by ten.
func (d Descriptor) FrameNumber(hour, minute, second, frame uint32) (uint32, error) {
	switch {
	case hour >= 24:
		return 0, fieldError("hour", hour, 24)
	case minute >= 60:
		return 0, fieldError("minute", minute, 60)
	case second >= 60:
		return 0, fieldError("second", second, 60)
	case frame >= d.FPS:
		return 0, fieldError("frame", frame, d.FPS)
	}

	dropped := d.DroppedPerMinute()
	if d.DropFrame && second == 0 && minute%10 != 0 && frame < dropped {
		return 0, &Error{
			Kind:  InvalidTimecode,
			Field: "frame",
			Msg:   fmt.Sprintf("%02d:%02d:%02d;%02d", hour, minute, second, frame),
			Err:   ErrDroppedFrame,
		}
	}

	n := d.framesPerHour()*hour + d.framesPerMinute()*minute + d.FPS*second + frame
	if !d.DropFrame {
		return n, nil
	}
	// The first minute of every ten-minute block keeps all its labels.
	tens := hour*6 + minute/10
	rem := minute % 10
	return n - tens*9*dropped - rem*dropped, nil
}

// FrameNumberFields is FrameNumber taking Fields.
func (d Descriptor) FrameNumberFields(f Fields) (uint32, error) {
	return d.FrameNumber(uint32(f.Hour), uint32(f.Minute), uint32(f.Second), uint32(f.Frame))
}

// Fields converts a frame number below MaxFrames to timecode fields.
func (d Descriptor) Fields(n uint32) (Fields, error) {
	if n >= d.MaxFrames {
		return Fields{}, &Error{
			Kind: FrameNumberOutOfRange,
			Msg:  fmt.Sprintf("%d not below %d for rate %s", n, d.MaxFrames, d),
		}
	}
	if !d.DropFrame {
		totalSeconds := n / d.FPS
		totalMinutes := totalSeconds / 60
		return Fields{
			Hour:   uint8(totalMinutes / 60),
			Minute: uint8(totalMinutes % 60),
			Second: uint8(totalSeconds % 60),
			Frame:  uint8(n % d.FPS),
		}, nil
	}

	dropped := d.DroppedPerMinute()
	framesPerMinute := d.framesPerMinute()
	framesPerDropMinute := framesPerMinute - dropped
	framesPerTen := framesPerMinute + framesPerDropMinute*9
	framesPerHour := framesPerTen * 6

	hour := n / framesPerHour
	inHour := n % framesPerHour
	tens := inHour / framesPerTen
	inTen := inHour % framesPerTen

	var minute, inMinute uint32
	if inTen < framesPerMinute {
		minute = tens * 10
		inMinute = inTen
	} else {
		afterFirst := inTen - framesPerMinute
		minute = tens*10 + 1 + afterFirst/framesPerDropMinute
		// Realign with the labels, which start at frame `dropped`.
		inMinute = afterFirst%framesPerDropMinute + dropped
	}
	return Fields{
		Hour:   uint8(hour),
		Minute: uint8(minute),
		Second: uint8(inMinute / d.FPS),
		Frame:  uint8(inMinute % d.FPS),
	}, nil
}

// Normalize wraps any frame count into [0, MaxFrames).
func (d Descriptor) Normalize(n int64) uint32 {
	m := int64(d.MaxFrames)
	return uint32(((n % m) + m) % m)
}
