package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// MonitorLen is the wire size of one monitor record.
const MonitorLen = 21

var (
	ErrShortMonitor = errors.New("protocol: monitor record needs at least 21 bytes")
)

// Monitor describes one display as the server reports it. Width and height
// of zero mean "fullscreen, no explicit geometry".
type Monitor struct {
	Index   int32
	Primary bool
	X       uint32
	Y       uint32
	Width   uint32
	Height  uint32
}

// FullscreenMonitor returns the synthetic single-monitor record used when
// the server does not advertise CapMultimonitor.
func FullscreenMonitor() Monitor {
	return Monitor{
		Index:   0,
		Primary: true,

		// width and height of 0 means fullscreen
		Width:  0,
		Height: 0,
	}
}

// Fullscreen reports whether the record carries no explicit geometry.
func (m Monitor) Fullscreen() bool {
	return m.Width == 0 && m.Height == 0
}

// DecodeMonitor decodes the first MonitorLen bytes of data into a Monitor.
// It never consumes more than MonitorLen bytes, so a longer buffer can be
// decoded repeatedly at MonitorLen strides. Fewer than MonitorLen bytes is
// a decode error, extra trailing bytes are not.
func DecodeMonitor(data []byte) (Monitor, error) {
	if len(data) < MonitorLen {
		return Monitor{}, fmt.Errorf("%w: have %d", ErrShortMonitor, len(data))
	}

	return Monitor{
		Index:   int32(binary.BigEndian.Uint32(data[0:4])),
		Primary: data[4] != 0,
		X:       binary.BigEndian.Uint32(data[5:9]),
		Y:       binary.BigEndian.Uint32(data[9:13]),
		Width:   binary.BigEndian.Uint32(data[13:17]),
		Height:  binary.BigEndian.Uint32(data[17:21]),
	}, nil
}

// DecodeMonitors decodes a densely packed sequence of monitor records.
// The payload carries no record count, only its byte length, so decoding
// stops at the last full MonitorLen group and a trailing partial group is
// silently dropped.
func DecodeMonitors(data []byte) []Monitor {
	monitors := make([]Monitor, 0, len(data)/MonitorLen)

	for i := 0; i+MonitorLen <= len(data); i += MonitorLen {
		m, err := DecodeMonitor(data[i : i+MonitorLen])
		if err != nil {
			// Unreachable given the loop bound, but a malformed record
			// must never produce a half-populated entry.
			break
		}

		monitors = append(monitors, m)
	}

	return monitors
}

// EncodeMonitor renders the canonical 21-byte wire form of m.
func EncodeMonitor(m Monitor) []byte {
	buf := make([]byte, MonitorLen)

	binary.BigEndian.PutUint32(buf[0:4], uint32(m.Index))
	if m.Primary {
		buf[4] = 1
	}
	binary.BigEndian.PutUint32(buf[5:9], m.X)
	binary.BigEndian.PutUint32(buf[9:13], m.Y)
	binary.BigEndian.PutUint32(buf[13:17], m.Width)
	binary.BigEndian.PutUint32(buf[17:21], m.Height)

	return buf
}
