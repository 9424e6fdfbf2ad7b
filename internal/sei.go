package internal

import (
	"fmt"
	"strings"

	"github.com/Eyevinn/mp4ff/avc"
	"github.com/Eyevinn/mp4ff/hevc"
	"github.com/Eyevinn/mp4ff/sei"
	"github.com/pkg/errors"
)

// clockReader extracts SEI clock timestamps from the PES payloads of one
// video PID. SEI messages before the first SPS are skipped. SEI NAL units
// without RBSP trailing bits are still decoded.
type clockReader struct {
	codec   string
	avcSPS  *avc.SPS
	hevcSPS *hevc.SPS
}

// clocks returns the text of the first clock timestamp of every timing SEI
// message in data.
func (c *clockReader) clocks(data []byte) ([]string, error) {
	switch c.codec {
	case "AVC":
		return c.avcClocks(data)
	case "HEVC":
		return c.hevcClocks(data)
	}
	return nil, nil
}

func (c *clockReader) avcClocks(data []byte) ([]string, error) {
	var out []string
	for _, nalu := range avc.ExtractNalusFromByteStream(data) {
		if len(nalu) == 0 {
			continue
		}
		switch avc.GetNaluType(nalu[0]) {
		case avc.NALU_SPS:
			sps, err := avc.ParseSPSNALUnit(nalu, true)
			if err != nil {
				return nil, errors.Wrap(err, "parsing AVC SPS")
			}
			c.avcSPS = sps
		case avc.NALU_SEI:
			if c.avcSPS == nil {
				continue
			}
			msgs, err := avc.ParseSEINalu(nalu, c.avcSPS)
			if err != nil && !errors.Is(err, sei.ErrRbspTrailingBitsMissing) {
				return nil, errors.Wrap(err, "parsing AVC SEI")
			}
			for _, msg := range msgs {
				if sei.SEIType(msg.Type()) != sei.SEIPicTimingType {
					continue
				}
				pt, ok := msg.(*sei.PicTimingAvcSEI)
				if !ok || len(pt.Clocks) == 0 {
					continue
				}
				out = append(out, fmt.Sprint(pt.Clocks[0]))
			}
		}
	}
	return out, nil
}

func (c *clockReader) hevcClocks(data []byte) ([]string, error) {
	var out []string
	for _, nalu := range avc.ExtractNalusFromByteStream(data) {
		if len(nalu) == 0 {
			continue
		}
		switch hevc.GetNaluType(nalu[0]) {
		case hevc.NALU_SPS:
			sps, err := hevc.ParseSPSNALUnit(nalu)
			if err != nil {
				return nil, errors.Wrap(err, "parsing HEVC SPS")
			}
			c.hevcSPS = sps
		case hevc.NALU_SEI_PREFIX, hevc.NALU_SEI_SUFFIX:
			if c.hevcSPS == nil {
				continue
			}
			msgs, err := hevc.ParseSEINalu(nalu, c.hevcSPS)
			if err != nil && !errors.Is(err, sei.ErrRbspTrailingBitsMissing) {
				return nil, errors.Wrap(err, "parsing HEVC SEI")
			}
			for _, msg := range msgs {
				if sei.SEIType(msg.Type()) != sei.SEITimeCodeType {
					continue
				}
				tc, ok := msg.(*sei.TimeCodeSEI)
				if !ok || len(tc.Clocks) == 0 {
					continue
				}
				out = append(out, fmt.Sprint(tc.Clocks[0]))
			}
		}
	}
	return out, nil
}

// clockTimecode returns the HH:MM:SS:FF part of a clock text such as
// "10:00:00:12 offset=0".
func clockTimecode(clock string) string {
	fields := strings.Fields(clock)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
