package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ProtoVersion is the xab IPC protocol version this client is built
// against. It is fixed at build time and negotiated exactly once per
// connection.
const ProtoVersion int32 = 1

// DefaultSocketPath is where xab listens unless the embedding application
// overrides it.
const DefaultSocketPath = "/tmp/xab/xab_uds"

// Command is a xab instruction word. It encodes on the wire as a 4-byte
// big-endian signed integer.
type Command int32

const (
	// NoneInvalid is the reserved out-of-band placeholder. It exists only
	// as a non-sent default value and must never reach the wire.
	NoneInvalid Command = -1
	None        Command = 0

	// Set state
	Restart          Command = 1
	Shutdown         Command = 2
	ClientDisconnect Command = 3
	ChangeBackground Command = 4
	DeleteBackground Command = 5
	PauseVideo       Command = 6
	UnpauseVideo     Command = 7
	TogglePauseVideo Command = 8

	// Get state
	GetMonitors       Command = 9
	GetAllBackgrounds Command = 10
	GetCapabilities   Command = 11
)

var (
	ErrInvalidCommand = errors.New("protocol: the reserved invalid command must never be sent")
)

func (c Command) String() string {
	switch c {
	case NoneInvalid:
		return "NoneInvalid"
	case None:
		return "None"
	case Restart:
		return "Restart"
	case Shutdown:
		return "Shutdown"
	case ClientDisconnect:
		return "ClientDisconnect"
	case ChangeBackground:
		return "ChangeBackground"
	case DeleteBackground:
		return "DeleteBackground"
	case PauseVideo:
		return "PauseVideo"
	case UnpauseVideo:
		return "UnpauseVideo"
	case TogglePauseVideo:
		return "TogglePauseVideo"
	case GetMonitors:
		return "GetMonitors"
	case GetAllBackgrounds:
		return "GetAllBackgrounds"
	case GetCapabilities:
		return "GetCapabilities"
	default:
		return fmt.Sprintf("Command(%d)", int32(c))
	}
}

// WriteCommand writes the 4-byte big-endian command word to w. It refuses
// the NoneInvalid sentinel, which is reserved and never transmitted.
func WriteCommand(w io.Writer, c Command) error {
	if c == NoneInvalid {
		return ErrInvalidCommand
	}

	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(c))

	_, err := w.Write(buf[:])
	return err
}

// ReadCommand reads one 4-byte big-endian command word from r. The server
// side of an exchange uses this; clients only ever write commands.
func ReadCommand(r io.Reader) (Command, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return NoneInvalid, err
	}

	return Command(int32(binary.BigEndian.Uint32(buf[:]))), nil
}
