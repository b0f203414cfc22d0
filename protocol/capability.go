package protocol

import (
	"encoding/binary"
	"io"
	"strings"
)

// Capabilities is the set of optional server features, decoded from the
// 4-byte big-endian word the server sends during the handshake. The set is
// read once at connect time and never changes for the life of a
// connection.
type Capabilities uint32

const (
	// CapMultimonitor means the server can report per-monitor geometry and
	// accepts per-monitor backgrounds. Without it clients fall back to a
	// single synthetic fullscreen monitor.
	CapMultimonitor Capabilities = 1 << 0
)

// capKnown is every bit this client understands. Keeping the mask next to
// the bit declarations is what stops encode and decode drifting apart.
const capKnown = CapMultimonitor

// CapabilitiesFromBits decodes a raw capability word, silently dropping
// bits this client has no name for. A newer server advertising features we
// were built before is not an error.
func CapabilitiesFromBits(bits uint32) Capabilities {
	return Capabilities(bits) & capKnown
}

// ReadCapabilities reads the 4-byte capability word from r and decodes it
// with truncating semantics.
func ReadCapabilities(r io.Reader) (Capabilities, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}

	return CapabilitiesFromBits(binary.BigEndian.Uint32(buf[:])), nil
}

// WriteCapabilityBits writes a raw 4-byte capability word to w. The server
// side of the handshake uses this; bits unknown to this client pass
// through untouched.
func WriteCapabilityBits(w io.Writer, bits uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], bits)

	_, err := w.Write(buf[:])
	return err
}

// Has reports whether every capability in want is present.
func (c Capabilities) Has(want Capabilities) bool {
	return c&want == want
}

// Bits returns the raw wire form of the set.
func (c Capabilities) Bits() uint32 {
	return uint32(c)
}

func (c Capabilities) String() string {
	if c == 0 {
		return "None"
	}

	names := make([]string, 0, 1)
	if c.Has(CapMultimonitor) {
		names = append(names, "Multimonitor")
	}

	return strings.Join(names, "|")
}
