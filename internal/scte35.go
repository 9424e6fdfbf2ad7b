package internal

import (
	"bufio"
	"context"
	"io"

	"github.com/Comcast/gots/v2/packet"
	"github.com/Comcast/gots/v2/psi"
	"github.com/Comcast/gots/v2/scte35"
	"github.com/Eyevinn/timecode-tools/timecode"
	"github.com/pkg/errors"
	slices "golang.org/x/exp/slices"
)

type SCTE35Info struct {
	PID           uint16                   `json:"pid"`
	SpliceCommand SpliceCommand            `json:"spliceCommand"`
	SegDesc       []SegmentationDescriptor `json:"segmentationDes,omitempty"`
}

type SpliceCommand struct {
	Type      string `json:"type"`
	EventId   uint32 `json:"eventId"`
	PTS       uint64 `json:"pts"`
	Duration  uint64 `json:"duration,omitempty"`
	Out       bool   `json:"outOfNetwork,omitempty"`
	Immediate bool   `json:"immediate,omitempty"`
	hasPTS    bool
}

type SegmentationDescriptor struct {
	SegmentNumber  uint8  `json:"segmentNumber"`
	EventId        uint32 `json:"eventId"`
	Type           string `json:"type"`
	Duration       uint64 `json:"duration,omitempty"`
	DurationFrames int64  `json:"durationFrames,omitempty"`
}

// SCTE35Timecode is a splice message with its splice time as a timecode.
// EndTimecode is the return point of a splice_insert break.
type SCTE35Timecode struct {
	SCTE35Info
	Timecode       string  `json:"timecode,omitempty"`
	FrameNumber    *uint32 `json:"frameNumber,omitempty"`
	EndTimecode    string  `json:"endTimecode,omitempty"`
	DurationFrames int64   `json:"durationFrames,omitempty"`
}

// ptsMapper maps 90 kHz PTS values to frame numbers given one reference
// point where the timecode is known.
type ptsMapper struct {
	rate     timecode.Descriptor
	refFrame uint32
	refPTS   int64
}

// newPTSMapper places the timecode start (midnight if empty) at startPTS.
func newPTSMapper(rate, start string, startPTS int64) (ptsMapper, error) {
	d, err := timecode.Lookup(rate)
	if err != nil {
		return ptsMapper{}, errors.Wrap(err, "selecting rate")
	}
	if start == "" {
		start = "00:00:00:00"
	}
	_, n, err := d.ParseFields(start)
	if err != nil {
		return ptsMapper{}, errors.Wrap(err, "parsing start timecode")
	}
	return ptsMapper{rate: d, refFrame: n, refPTS: startPTS % PtsWrap}, nil
}

func (m ptsMapper) frameNumber(pts int64) uint32 {
	frames := PTSToFrames(SignedPTSDiff(pts, m.refPTS), m.rate)
	return m.rate.Normalize(int64(m.refFrame) + frames)
}

func (m ptsMapper) toTimecode(info SCTE35Info) SCTE35Timecode {
	out := SCTE35Timecode{SCTE35Info: info}
	cmd := info.SpliceCommand
	if cmd.hasPTS {
		n := m.frameNumber(int64(cmd.PTS))
		out.Timecode = formatFrameNumber(m.rate, n)
		out.FrameNumber = &n
		if cmd.Duration > 0 {
			out.EndTimecode = formatFrameNumber(m.rate, m.frameNumber(AddPTS(int64(cmd.PTS), int64(cmd.Duration))))
		}
	}
	if cmd.Duration > 0 {
		out.DurationFrames = PTSToFrames(int64(cmd.Duration), m.rate)
	}
	out.SegDesc = slices.Clone(info.SegDesc)
	for i := range out.SegDesc {
		if out.SegDesc[i].Duration > 0 {
			out.SegDesc[i].DurationFrames = PTSToFrames(int64(out.SegDesc[i].Duration), m.rate)
		}
	}
	return out
}

func toSCTE35(pid uint16, msg scte35.SCTE35) SCTE35Info {
	scte35Info := SCTE35Info{PID: pid, SpliceCommand: toSpliceCommand(msg.CommandInfo())}

	if insert, ok := msg.CommandInfo().(scte35.SpliceInsertCommand); ok {
		scte35Info.SpliceCommand = toSpliceInsertCommand(insert)
	}
	for _, desc := range msg.Descriptors() {
		segDesc := toSegmentationDescriptor(desc)
		scte35Info.SegDesc = append(scte35Info.SegDesc, segDesc)
	}

	return scte35Info
}

func toSpliceCommand(spliceCommand scte35.SpliceCommand) SpliceCommand {
	spliceCmd := SpliceCommand{Type: getCommandType(spliceCommand)}
	if spliceCommand.HasPTS() {
		spliceCmd.PTS = uint64(spliceCommand.PTS())
		spliceCmd.hasPTS = true
	}

	return spliceCmd
}

func toSegmentationDescriptor(segdesc scte35.SegmentationDescriptor) SegmentationDescriptor {
	segDesc := SegmentationDescriptor{}
	segDesc.EventId = segdesc.EventID()
	segDesc.Type = scte35.SegDescTypeNames[segdesc.TypeID()]
	segDesc.SegmentNumber = segdesc.SegmentNumber()
	if segdesc.HasDuration() {
		segDesc.Duration = uint64(segdesc.Duration())
	}
	return segDesc
}

func toSpliceInsertCommand(spliceCommand scte35.SpliceInsertCommand) SpliceCommand {
	spliceCmd := toSpliceCommand(spliceCommand)
	spliceCmd.EventId = spliceCommand.EventID()
	spliceCmd.Immediate = spliceCommand.SpliceImmediate()
	spliceCmd.Out = spliceCommand.IsOut()
	if spliceCommand.HasDuration() {
		spliceCmd.Duration = uint64(spliceCommand.Duration())
	}

	return spliceCmd
}

func getCommandType(spliceCommand scte35.SpliceCommand) string {
	return scte35.SpliceCommandTypeNames[spliceCommand.CommandType()]
}

// ParseSCTE35 prints every SCTE-35 message of a TS with its splice time
// mapped to a timecode.
func ParseSCTE35(ctx context.Context, w io.Writer, f io.Reader, o Options) error {
	mapper, err := newPTSMapper(o.Rate, o.StartTimecode, o.StartPTS)
	if err != nil {
		return err
	}
	log := o.log().WithField("rate", mapper.rate.String())
	reader := bufio.NewReader(f)
	_, err = packet.Sync(reader)
	if err != nil {
		return errors.Wrap(err, "syncing with reader")
	}
	pat, err := psi.ReadPAT(reader)
	if err != nil {
		return errors.Wrap(err, "reading PAT")
	}

	var pmts []psi.PMT
	pm := pat.ProgramMap()
	for _, pid := range pm {
		pmt, err := psi.ReadPMT(reader, pid)
		if err != nil {
			return errors.Wrap(err, "reading PMT")
		}
		pmts = append(pmts, pmt)
	}

	jp := &JsonPrinter{W: w, Indent: o.Indent}
	scte35PIDs := make(map[int]bool)
	for _, pmt := range pmts {
		for _, es := range pmt.ElementaryStreams() {
			streamInfo := ParseElementaryStreamInfo(es)
			if streamInfo != nil {
				if streamInfo.Codec == "SCTE35" {
					scte35PIDs[es.ElementaryPid()] = true
				}

				jp.Print(streamInfo, o.ShowStreamInfo)
			}
		}
	}
	if len(scte35PIDs) == 0 {
		log.Warn("no SCTE-35 streams")
	}

	nrMsgs := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		var pkt packet.Packet
		if _, err := io.ReadFull(reader, pkt[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return errors.Wrap(err, "reading packet")
		}

		currPID := packet.Pid(&pkt)
		if !scte35PIDs[currPID] {
			continue
		}
		pay, err := packet.Payload(&pkt)
		if err != nil {
			return errors.Wrapf(err, "getting payload for packet on PID %d", currPID)
		}
		msg, err := scte35.NewSCTE35(pay)
		if err != nil {
			log.WithError(err).WithField("pid", currPID).Warn("cannot parse SCTE-35")
			continue
		}
		nrMsgs++
		jp.Print(mapper.toTimecode(toSCTE35(uint16(currPID), msg)), o.ShowSCTE35)
	}
	log.WithField("messages", nrMsgs).Debug("done")

	return jp.Error()
}
