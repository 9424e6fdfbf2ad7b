package internal

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/Eyevinn/timecode-tools/timecode"
	"github.com/pkg/errors"
)

// Conversion is the result of converting one input value.
type Conversion struct {
	Input       string  `json:"input"`
	Rate        string  `json:"rate"`
	DropFrame   bool    `json:"dropFrame"`
	Timecode    string  `json:"timecode,omitempty"`
	FrameNumber *uint32 `json:"frameNumber,omitempty"`
	Duration    string  `json:"duration,omitempty"`
	Error       string  `json:"error,omitempty"`
}

// Converter converts timecode text or frame numbers for one rate.
type Converter interface {
	Rate() timecode.Descriptor
	// Convert parses input, moves it by offset frames and returns the result.
	Convert(input string, offset int64) (Conversion, error)
}

type converter[R timecode.Rate] struct{}

// NewConverter returns the converter for the named rate.
func NewConverter(rate string) (Converter, error) {
	d, err := timecode.Lookup(rate)
	if err != nil {
		return nil, err
	}
	switch d.Name {
	case "23.98":
		return converter[timecode.Rate2398]{}, nil
	case "24":
		return converter[timecode.Rate24]{}, nil
	case "25":
		return converter[timecode.Rate25]{}, nil
	case "29.97":
		return converter[timecode.Rate2997]{}, nil
	case "30":
		return converter[timecode.Rate30]{}, nil
	case "50":
		return converter[timecode.Rate50]{}, nil
	case "59.94":
		return converter[timecode.Rate5994]{}, nil
	case "60":
		return converter[timecode.Rate60]{}, nil
	}
	return nil, errors.Errorf("no converter for rate %s", d)
}

func (converter[R]) Rate() timecode.Descriptor {
	var r R
	return r.Descriptor()
}

func (c converter[R]) Convert(input string, offset int64) (Conversion, error) {
	d := c.Rate()
	conv := Conversion{Input: input, Rate: d.Name, DropFrame: d.DropFrame}
	tc, err := parseInput[R](strings.TrimSpace(input))
	if err != nil {
		conv.Error = err.Error()
		return conv, err
	}
	tc = tc.Add(offset)
	fn := tc.FrameNumber
	conv.Timecode = tc.String()
	conv.FrameNumber = &fn
	conv.Duration = d.Duration(fn).String()
	return conv, nil
}

// parseInput accepts a signed frame number or timecode text.
func parseInput[R timecode.Rate](s string) (timecode.Timecode[R], error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return timecode.FromFrameNumber[R](n), nil
	}
	return timecode.Parse[R](s)
}

// ConvertLines converts every non-empty line of f that does not start with
// '#'. Values that fail are printed with an error and logged.
func ConvertLines(ctx context.Context, w io.Writer, f io.Reader, o Options) error {
	c, err := NewConverter(o.Rate)
	if err != nil {
		return errors.Wrap(err, "creating converter")
	}
	jp := &JsonPrinter{W: w, Indent: o.Indent}
	log := o.log().WithField("rate", c.Rate().String())
	scanner := bufio.NewScanner(f)
	lineNr := 0
	nrFailed := 0
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		lineNr++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		conv, err := c.Convert(line, o.AddFrames)
		if err != nil {
			nrFailed++
			log.WithError(err).WithField("line", lineNr).Warn("cannot convert value")
		}
		jp.Print(conv, true)
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading input")
	}
	log.WithField("converted", jp.Printed()-nrFailed).WithField("failed", nrFailed).Debug("done")
	return jp.Error()
}
