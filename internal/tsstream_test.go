package internal

import (
	"bytes"
	"context"
	"encoding/hex"
	"testing"

	"github.com/Comcast/gots/v2"
	"github.com/Comcast/gots/v2/scte35"
	"github.com/Eyevinn/mp4ff/avc"
	"github.com/Eyevinn/mp4ff/sei"
	"github.com/asticode/go-astits"
	"github.com/stretchr/testify/require"
)

const (
	avcSPSHex  = "6764002aac2cac0780227e5c04f000003e90001d4c0e6a000337ec001bcef5ef80f8442370"
	avcSEIHex  = "06010e0000030000030000030002120806ff0b80" // pic_timing 11:56:31:03
	hevcSPSHex = "420101014000000300400000030000030078a003c080221f7a3ee46c1bdf4f60280d00000303e80000c350601def7e00028b1c001443c8"
	hevcSEIHex = "4e01880660404198b41080" // time_code 13:49:12:08
)

const (
	avcPID    = 256
	hevcPID   = 257
	scte35PID = 500
)

func mustDecodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func annexB(nalus ...[]byte) []byte {
	var out []byte
	for _, nalu := range nalus {
		out = append(out, 0, 0, 0, 1)
		out = append(out, nalu...)
	}
	return out
}

// avcTimingSEI rewrites the clock of the sample pic_timing SEI to hh:mm:ss:ff.
func avcTimingSEI(t *testing.T, sps *avc.SPS, hh, mm, ss, ff byte) []byte {
	t.Helper()
	msgs, err := avc.ParseSEINalu(mustDecodeHex(t, avcSEIHex), sps)
	if err != nil {
		require.ErrorIs(t, err, sei.ErrRbspTrailingBitsMissing)
	}
	require.Len(t, msgs, 1)
	pt, ok := msgs[0].(*sei.PicTimingAvcSEI)
	require.True(t, ok)
	clk := &pt.Clocks[0]
	clk.FullTimeStampFlag = true
	clk.Hours, clk.Minutes, clk.Seconds, clk.NFrames = hh, mm, ss, ff
	buf := bytes.Buffer{}
	buf.WriteByte(byte(avc.NALU_SEI))
	require.NoError(t, sei.WriteSEIMessages(&buf, []sei.SEIMessage{pt}))
	return buf.Bytes()
}

type tsPicture struct {
	pid    uint16
	pts    int64
	hasPTS bool
	data   []byte
}

// newTestMuxer returns a muxer with the PCR on the first stream.
func newTestMuxer(t *testing.T, buf *bytes.Buffer, streams ...astits.PMTElementaryStream) *astits.Muxer {
	t.Helper()
	mux := astits.NewMuxer(context.Background(), buf)
	for _, es := range streams {
		require.NoError(t, mux.AddElementaryStream(es))
	}
	mux.SetPCRPID(streams[0].ElementaryPID)
	return mux
}

func writePicture(t *testing.T, mux *astits.Muxer, p tsPicture) {
	t.Helper()
	oh := &astits.PESOptionalHeader{PTSDTSIndicator: astits.PTSDTSIndicatorNoPTSOrDTS}
	if p.hasPTS {
		oh.PTSDTSIndicator = astits.PTSDTSIndicatorOnlyPTS
		oh.PTS = &astits.ClockReference{Base: p.pts}
	}
	_, err := mux.WriteData(&astits.MuxerData{
		PID: p.pid,
		PES: &astits.PESData{
			Header: &astits.PESHeader{OptionalHeader: oh},
			Data:   p.data,
		},
	})
	require.NoError(t, err)
}

// timecodeStream returns a TS with an AVC PID carrying four timed pictures
// and one picture without PTS, followed by an HEVC PID with one picture.
func timecodeStream(t *testing.T) []byte {
	t.Helper()
	spsNalu := mustDecodeHex(t, avcSPSHex)
	sps, err := avc.ParseSPSNALUnit(spsNalu, true)
	require.NoError(t, err)

	buf := bytes.Buffer{}
	mux := newTestMuxer(t, &buf,
		astits.PMTElementaryStream{ElementaryPID: avcPID, StreamType: astits.StreamTypeH264Video},
		astits.PMTElementaryStream{ElementaryPID: hevcPID, StreamType: astits.StreamTypeH265Video},
	)
	pics := []tsPicture{
		{avcPID, 900000, true, annexB(spsNalu, mustDecodeHex(t, avcSEIHex))},
		{avcPID, 903600, true, annexB(avcTimingSEI(t, sps, 11, 56, 31, 4))},
		{avcPID, 0, false, annexB(avcTimingSEI(t, sps, 11, 56, 31, 5))},
		{avcPID, 907200, true, annexB(avcTimingSEI(t, sps, 11, 56, 31, 5))},
		{avcPID, 910800, true, annexB(avcTimingSEI(t, sps, 11, 56, 31, 6))},
		{hevcPID, 900000, true, annexB(mustDecodeHex(t, hevcSPSHex), mustDecodeHex(t, hevcSEIHex))},
	}
	for _, p := range pics {
		writePicture(t, mux, p)
	}
	return buf.Bytes()
}

func spliceInsert(eventID uint32, out bool, pts, duration gots.PTS) []byte {
	msg := scte35.CreateSCTE35()
	cmd := scte35.CreateSpliceInsertCommand()
	cmd.SetEventID(eventID)
	cmd.SetIsOut(out)
	msg.SetCommandInfo(cmd)
	if pts == 0 {
		cmd.SetSpliceImmediate(true)
	} else {
		cmd.SetHasPTS(true)
		msg.SetPTS(pts)
	}
	if duration > 0 {
		cmd.SetHasDuration(true)
		cmd.SetDuration(duration)
	}
	return msg.UpdateData()
}

func timeSignal(pts gots.PTS, desc scte35.SegmentationDescriptor) []byte {
	msg := scte35.CreateSCTE35()
	cmd := scte35.CreateTimeSignalCommand()
	msg.SetCommandInfo(cmd)
	cmd.SetHasPTS(true)
	msg.SetPTS(pts)
	msg.SetDescriptors([]scte35.SegmentationDescriptor{desc})
	return msg.UpdateData()
}

func writeSection(t *testing.T, mux *astits.Muxer, pid uint16, cc uint8, section []byte) {
	t.Helper()
	_, err := mux.WritePacket(&astits.Packet{
		Header: astits.PacketHeader{
			ContinuityCounter:         cc,
			HasPayload:                true,
			PayloadUnitStartIndicator: true,
			PID:                       pid,
		},
		Payload: append([]byte{0}, section...),
	})
	require.NoError(t, err)
}

// scte35Stream returns a TS with a video PID and an SCTE-35 PID carrying a
// splice_insert break, an undecodable section, a time_signal with a
// segmentation descriptor and an immediate splice_insert. It ends with a
// truncated packet.
func scte35Stream(t *testing.T) []byte {
	t.Helper()
	buf := bytes.Buffer{}
	mux := newTestMuxer(t, &buf,
		astits.PMTElementaryStream{ElementaryPID: avcPID, StreamType: astits.StreamTypeH264Video},
		astits.PMTElementaryStream{ElementaryPID: scte35PID, StreamType: astits.StreamTypeSCTE35},
	)
	writePicture(t, mux, tsPicture{avcPID, 900000, true, annexB([]byte{0x09, 0xf0})})

	desc := scte35.CreateSegmentationDescriptor()
	desc.SetEventID(7)
	desc.SetHasProgramSegmentation(true)
	desc.SetHasNoRegionalBlackout(true)
	desc.SetIsArchiveAllowed(true)
	desc.SetDeviceRestrictions(scte35.RestrictNone)
	desc.SetUPIDType(scte35.SegUPIDNotUsed)
	desc.SetHasDuration(true)
	desc.SetDuration(450000)
	desc.SetTypeID(scte35.SegDescProgramStart)
	desc.SetSegmentNumber(1)
	desc.SetSegmentsExpected(1)

	writeSection(t, mux, scte35PID, 0, spliceInsert(42, true, 990000, 2700000))
	writeSection(t, mux, scte35PID, 1, []byte{0x02, 0x00, 0x00})
	writeSection(t, mux, scte35PID, 2, timeSignal(1080000, desc))
	writeSection(t, mux, scte35PID, 3, spliceInsert(43, false, 0, 0))

	ts := buf.Bytes()
	return append(ts, ts[:100]...)
}
