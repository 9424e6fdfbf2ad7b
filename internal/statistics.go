package internal

import (
	"fmt"

	"github.com/Eyevinn/timecode-tools/timecode"
	slices "golang.org/x/exp/slices"
)

// TimecodeStatistics summarizes the SEI timecodes of one video PID.
type TimecodeStatistics struct {
	Type            string  `json:"streamType"`
	Pid             uint16  `json:"pid"`
	Rate            string  `json:"rate"`
	Count           int     `json:"count"`
	Invalid         int     `json:"invalid,omitempty"`
	First           string  `json:"firstTimecode,omitempty"`
	Last            string  `json:"lastTimecode,omitempty"`
	FrameRate       float64 `json:"frameRate,omitempty"`
	Discontinuities int     `json:"discontinuities,omitempty"`
	PTSMismatches   int     `json:"ptsMismatches,omitempty"`
	MaxStep         int64   `json:"maxStep,omitempty"`
	MinStep         int64   `json:"minStep,omitempty"`
	AvgStep         int64   `json:"avgStep,omitempty"`
	// Errors
	Errors []string `json:"errors,omitempty"`

	samples []timecodeSample
}

type timecodeSample struct {
	pts         int64
	frameNumber uint32
}

func (s *TimecodeStatistics) add(pts int64, frameNumber uint32) {
	s.Count++
	s.samples = append(s.samples, timecodeSample{pts: pts, frameNumber: frameNumber})
}

func (s *TimecodeStatistics) addInvalid() {
	s.Count++
	s.Invalid++
}

func (p *JsonPrinter) PrintStatistics(s TimecodeStatistics, d timecode.Descriptor, show bool) {
	s.finish(d)
	p.Print(s, show)
}

// finish orders the samples in presentation order and compares consecutive
// timecodes with each other and with their PTS distance.
func (s *TimecodeStatistics) finish(d timecode.Descriptor) {
	s.Rate = d.String()
	if s.Invalid > 0 {
		s.Errors = append(s.Errors, fmt.Sprintf("%d timecodes invalid for rate %s", s.Invalid, d))
	}
	if len(s.samples) == 0 {
		s.Errors = append(s.Errors, "no valid timecodes")
		return
	}

	// Pictures arrive in decode order and PTS wraps after 2^33 ticks
	samples := slices.Clone(s.samples)
	ref := samples[0].pts
	slices.SortStableFunc(samples, func(a, b timecodeSample) int {
		da, db := SignedPTSDiff(a.pts, ref), SignedPTSDiff(b.pts, ref)
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})

	s.First = formatFrameNumber(d, samples[0].frameNumber)
	s.Last = formatFrameNumber(d, samples[len(samples)-1].frameNumber)
	timestamps := make([]int64, len(samples))
	for i, smp := range samples {
		timestamps[i] = smp.pts
		if i == 0 {
			continue
		}
		prev := samples[i-1]
		tcStep := d.Normalize(int64(smp.frameNumber) - int64(prev.frameNumber))
		if tcStep != 1 {
			s.Discontinuities++
		}
		if PTSToFrames(SignedPTSDiff(smp.pts, prev.pts), d) != int64(tcStep) {
			s.PTSMismatches++
		}
	}
	if s.Discontinuities > 0 {
		s.Errors = append(s.Errors, fmt.Sprintf("%d timecode discontinuities", s.Discontinuities))
	}
	if s.PTSMismatches > 0 {
		s.Errors = append(s.Errors, fmt.Sprintf("%d timecode steps do not match PTS", s.PTSMismatches))
	}
	s.calculateFrameRate(timestamps, TimeScale)
}

func formatFrameNumber(d timecode.Descriptor, n uint32) string {
	f, err := d.Fields(n)
	if err != nil {
		return ""
	}
	return d.Format(f)
}

func sliceMinMaxAverage(values []int64) (min, max, avg int64) {
	if len(values) == 0 {
		return 0, 0, 0
	}

	min = values[0]
	max = values[0]
	sum := int64(0)
	for _, number := range values {
		if number < min {
			min = number
		}
		if number > max {
			max = number
		}
		sum += number
	}
	avg = sum / int64(len(values))
	return min, max, avg
}

func CalculateSteps(timestamps []int64) []int64 {
	if len(timestamps) < 2 {
		return nil
	}

	// PTS are 33-bit values, so it wraps around after 26.5 hours
	steps := make([]int64, len(timestamps)-1)
	for i := 0; i < len(timestamps)-1; i++ {
		steps[i] = SignedPTSDiff(timestamps[i+1], timestamps[i])
	}
	return steps
}

// Calculate frame rate from PTS steps in presentation order
func (s *TimecodeStatistics) calculateFrameRate(timestamps []int64, timescale int64) {
	if len(timestamps) < 2 {
		s.Errors = append(s.Errors, "too few timestamps to calculate frame rate")
		return
	}

	steps := CalculateSteps(timestamps)
	minStep, maxStep, avgStep := sliceMinMaxAverage(steps)
	if maxStep != minStep {
		s.Errors = append(s.Errors, "irregular PTS steps")
		s.MinStep, s.MaxStep, s.AvgStep = minStep, maxStep, avgStep
	}
	if avgStep <= 0 {
		return
	}
	s.FrameRate = float64(timescale) / float64(avgStep)
}
