package internal

import (
	"github.com/Comcast/gots/v2/psi"
	"github.com/asticode/go-astits"
)

type ElementaryStreamInfo struct {
	PID   uint16 `json:"pid"`
	Codec string `json:"codec"`
	Type  string `json:"type"`
}

func ParseAstitsElementaryStreamInfo(es *astits.PMTElementaryStream) *ElementaryStreamInfo {
	var streamInfo *ElementaryStreamInfo
	switch es.StreamType {
	case astits.StreamTypeH264Video:
		streamInfo = &ElementaryStreamInfo{PID: es.ElementaryPID, Codec: "AVC", Type: "video"}
	case astits.StreamTypeAACAudio:
		streamInfo = &ElementaryStreamInfo{PID: es.ElementaryPID, Codec: "AAC", Type: "audio"}
	case astits.StreamTypeH265Video:
		streamInfo = &ElementaryStreamInfo{PID: es.ElementaryPID, Codec: "HEVC", Type: "video"}
	case astits.StreamTypeSCTE35:
		streamInfo = &ElementaryStreamInfo{PID: es.ElementaryPID, Codec: "SCTE35", Type: "cue"}
	}

	return streamInfo
}

func ParseElementaryStreamInfo(es psi.PmtElementaryStream) *ElementaryStreamInfo {
	pid := uint16(es.ElementaryPid())
	var streamInfo *ElementaryStreamInfo
	switch es.StreamType() {
	case psi.PmtStreamTypeMpeg4VideoH264:
		streamInfo = &ElementaryStreamInfo{PID: pid, Codec: "AVC", Type: "video"}
	case psi.PmtStreamTypeAac:
		streamInfo = &ElementaryStreamInfo{PID: pid, Codec: "AAC", Type: "audio"}
	case psi.PmtStreamTypeMpeg4VideoH265:
		streamInfo = &ElementaryStreamInfo{PID: pid, Codec: "HEVC", Type: "video"}
	case psi.PmtStreamTypeScte35:
		streamInfo = &ElementaryStreamInfo{PID: pid, Codec: "SCTE35", Type: "cue"}
	}

	return streamInfo
}
