package protocol

import (
	"encoding/binary"
	"io"
)

// ReadVersion reads exactly 4 bytes from r and decodes them as a
// big-endian signed protocol version.
func ReadVersion(r io.Reader) (int32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}

	return int32(binary.BigEndian.Uint32(buf[:])), nil
}

// WriteVersion writes v as exactly 4 big-endian bytes to w.
func WriteVersion(w io.Writer, v int32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))

	_, err := w.Write(buf[:])
	return err
}
