package internal

import (
	"bufio"
	"context"
	"io"

	"github.com/Eyevinn/timecode-tools/timecode"
	"github.com/asticode/go-astits"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	slices "golang.org/x/exp/slices"
)

// TimecodeSample is the SEI timecode of one picture.
type TimecodeSample struct {
	PID         uint16  `json:"pid"`
	PTS         int64   `json:"pts"`
	Clock       string  `json:"clock"`
	Timecode    string  `json:"timecode,omitempty"`
	FrameNumber *uint32 `json:"frameNumber,omitempty"`
	Error       string  `json:"error,omitempty"`
}

// newTimecodeSample interprets clock at rate d. On failure the sample
// carries the error text.
func newTimecodeSample(d timecode.Descriptor, pid uint16, pts int64, clock string) (TimecodeSample, error) {
	smp := TimecodeSample{PID: pid, PTS: pts, Clock: clock}
	f, n, err := d.ParseFields(clockTimecode(clock))
	if err != nil {
		smp.Error = err.Error()
		return smp, err
	}
	smp.Timecode = d.Format(f)
	smp.FrameNumber = &n
	return smp, nil
}

// ParseTimecodes prints the SEI timecodes of all AVC and HEVC streams in a TS
// and a statistics summary per PID.
func ParseTimecodes(ctx context.Context, w io.Writer, f io.Reader, o Options) error {
	rate, err := timecode.Lookup(o.Rate)
	if err != nil {
		return errors.Wrap(err, "selecting rate")
	}
	log := o.log().WithField("rate", rate.String())
	rd := bufio.NewReaderSize(f, 1000*PacketSize)
	dmx := astits.NewDemuxer(ctx, rd)
	pmtPID := -1
	nrPics := 0
	readers := make(map[uint16]*clockReader)
	statistics := make(map[uint16]*TimecodeStatistics)
	jp := &JsonPrinter{W: w, Indent: o.Indent}
dataLoop:
	for {
		// Check if context was cancelled
		select {
		case <-ctx.Done():
			break dataLoop
		default:
		}

		d, err := dmx.NextData()
		if err != nil {
			if errors.Is(err, astits.ErrNoMorePackets) {
				break dataLoop
			}
			return errors.Wrap(err, "reading next data")
		}

		if pmtPID < 0 && d.PMT != nil {
			for _, es := range d.PMT.ElementaryStreams {
				streamInfo := ParseAstitsElementaryStreamInfo(es)
				if streamInfo == nil {
					continue
				}
				jp.Print(streamInfo, o.ShowStreamInfo)
				if streamInfo.Type == "video" {
					readers[streamInfo.PID] = &clockReader{codec: streamInfo.Codec}
					statistics[streamInfo.PID] = &TimecodeStatistics{Type: streamInfo.Codec, Pid: streamInfo.PID}
				}
			}
			pmtPID = int(d.PID)
		}
		if pmtPID == -1 {
			continue
		}
		pes := d.PES
		if pes == nil {
			continue
		}
		cr := readers[d.PID]
		if cr == nil {
			continue
		}
		if pes.Header == nil || pes.Header.OptionalHeader == nil || pes.Header.OptionalHeader.PTS == nil {
			log.WithField("pid", d.PID).Warn("no PTS in PES")
			continue
		}
		pts := pes.Header.OptionalHeader.PTS.Base
		clocks, err := cr.clocks(pes.Data)
		if err != nil {
			return errors.Wrapf(err, "pid %d pts %d", d.PID, pts)
		}
		nrPics++
		if len(clocks) > 0 {
			stats := statistics[d.PID]
			smp, err := newTimecodeSample(rate, d.PID, pts, clocks[0])
			if err != nil {
				stats.addInvalid()
				log.WithError(err).WithField("pid", d.PID).WithField("pts", pts).Debug("invalid timecode")
			} else {
				stats.add(pts, *smp.FrameNumber)
			}
			jp.Print(smp, o.ShowTimecodes)
		}

		// Keep looping if MaxNrPictures equals 0
		if o.MaxNrPictures > 0 && nrPics >= o.MaxNrPictures {
			break dataLoop
		}
	}

	pids := maps.Keys(statistics)
	slices.Sort(pids)
	for _, pid := range pids {
		jp.PrintStatistics(*statistics[pid], rate, o.ShowStatistics)
	}
	log.WithField("pictures", nrPics).Debug("done")
	return jp.Error()
}
