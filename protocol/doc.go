package protocol

// This package implements the byte-level contract of the xab IPC protocol,
// the private protocol the xab background daemon speaks with its clients
// over a local unix stream socket.
//
// The protocol is binary, big-endian, and length-implicit: nothing on the
// wire says how long a query response is, the client simply takes whatever
// the server wrote for that exchange.
//
// - `Command`      - A 4-byte instruction word sent by the client.
// - `Capabilities` - The set of optional server features, negotiated once
//                    during the handshake.
// - `Monitor`      - A fixed 21-byte record describing one display.
//
// === Handshake
//
// Performed once, immediately after connecting:
//
//   ```
//     < version     (4 bytes, int32)
//     > version     (4 bytes, int32, always sent, even on mismatch)
//     < capabilities (4 bytes, uint32, only on version match)
//   ```
//
// The client echoes its own version unconditionally so the server can
// observe a skew from its side too. On mismatch the client shuts the
// transport down in both directions and gives up; no capability word is
// read.
//
// Unknown capability bits are silently dropped when decoding. A server
// built after this client may advertise features we have no name for, and
// that must never be an error.
//
// === Command exchange
//
//   ```
//     > command  (4 bytes, int32)
//     < payload  (query commands only; however many bytes the server
//                 writes for this exchange, zero meaning "no data")
//   ```
//
// Command words are part of the wire contract and must never be renumbered
// without bumping ProtoVersion.
//
// === Monitor records
//
// GetMonitors responses are a densely packed sequence of 21-byte records
// with no count prefix; decoding walks the payload at 21-byte strides and
// drops any trailing partial record.
