package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/voidwall/xabctl/protocol"
)

const (
	// MaxResponseBytes bounds how much a single query exchange will read.
	// The protocol has no length prefix, so one transport read of up to
	// this much is the whole response.
	MaxResponseBytes = 64 * 1024
)

var (
	// ErrClosed is returned for any operation attempted after Close,
	// including a second Close.
	ErrClosed = errors.New("client: connection is closed")
)

// VersionMismatchError is returned by Dial when the server speaks a
// different protocol version than this client was built with. The
// connection is shut down in both directions before it is returned.
type VersionMismatchError struct {
	Server int32
	Client int32
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf(
		"client: mismatch between client and server xab IPC protocol version (server: %d | client: %d)",
		e.Server, e.Client)
}

// Conn is one negotiated session with the xab daemon.
//
// The transport carries no message IDs: request and response bytes match
// purely by send/receive order, so all traffic is serialised through a
// one-slot lock and exactly one exchange is in flight at a time.
type Conn struct {
	path string
	sock *net.UnixConn

	// lock is the exclusive-access slot for the transport. Guard tokens
	// are handed out from here.
	lock chan struct{}

	caps protocol.Capabilities

	// closed is only read or written while holding the lock
	closed bool

	log *zap.Logger
}

// Guard is the sole right to read and write the transport. It is returned
// by Acquire and threaded through composed operations so a sequence of
// writes can share one critical section.
type Guard struct {
	c *Conn
}

// Release gives the transport back. A Guard must be released exactly once.
func (g *Guard) Release() {
	<-g.c.lock
}

// Dial connects to the xab socket at path and runs the handshake to
// completion. It either returns a fully negotiated connection or an error;
// a partially negotiated handle is never returned.
//
// A nil log disables logging.
func Dial(ctx context.Context, path string, log *zap.Logger) (*Conn, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("xab")

	log.Debug("Connecting to xab socket", zap.String("path", path))

	var dialer net.Dialer
	raw, err := dialer.DialContext(ctx, "unix", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to socket at %s: %w", path, err)
	}
	sock := raw.(*net.UnixConn)

	serverVersion, err := protocol.ReadVersion(sock)
	if err != nil {
		sock.Close()
		return nil, fmt.Errorf("failed to read IPC protocol version: %w", err)
	}
	log.Debug("Server IPC version", zap.Int32("version", serverVersion))

	// The client version is echoed unconditionally, even on mismatch, so
	// the server can detect the skew from its side too.
	if err := protocol.WriteVersion(sock, protocol.ProtoVersion); err != nil {
		sock.Close()
		return nil, fmt.Errorf("failed to send IPC protocol version: %w", err)
	}

	if serverVersion != protocol.ProtoVersion {
		mismatch := &VersionMismatchError{
			Server: serverVersion,
			Client: protocol.ProtoVersion,
		}
		log.Error("Mismatch between client and server xab IPC protocol version",
			zap.Int32("server", serverVersion),
			zap.Int32("client", protocol.ProtoVersion))

		// No further protocol traffic: shut the transport down in both
		// directions and fail construction.
		if serr := multierr.Append(shutdown(sock), sock.Close()); serr != nil {
			log.Warn("Failed to shut down mismatched connection", zap.Error(serr))
		}
		return nil, mismatch
	}

	caps, err := protocol.ReadCapabilities(sock)
	if err != nil {
		sock.Close()
		return nil, fmt.Errorf("failed to read xab capabilities: %w", err)
	}
	log.Debug("Negotiated capabilities",
		zap.String("capabilities", caps.String()),
		zap.Uint32("bits", caps.Bits()))

	return &Conn{
		path: path,
		sock: sock,
		lock: make(chan struct{}, 1),
		caps: caps,
		log:  log,
	}, nil
}

// Path returns the socket path this connection was dialed against.
func (c *Conn) Path() string {
	return c.path
}

// Capabilities returns the immutable capability set negotiated during the
// handshake. It is never re-queried implicitly; see QueryCapabilities for
// an explicit fetch.
func (c *Conn) Capabilities() protocol.Capabilities {
	return c.caps
}

// Acquire blocks until the caller holds exclusive access to the transport,
// or until ctx is cancelled.
//
// NOTE: try not deadlocking yourself - acquiring a second Guard while
// already holding one on the same Conn blocks forever. Compose writes by
// passing the held Guard to SendCommand instead.
func (c *Conn) Acquire(ctx context.Context) (*Guard, error) {
	select {
	case c.lock <- struct{}{}:
		return &Guard{c: c}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// SendCommand writes one 4-byte command word to the transport. When guard
// is nil a fresh one is acquired; a pre-held guard lets a caller chain
// several writes under a single critical section (Close reuses this so it
// never re-acquires mid-shutdown). The held guard is returned either way
// and remains the caller's to release, including on error.
func (c *Conn) SendCommand(ctx context.Context, cmd protocol.Command, guard *Guard) (*Guard, error) {
	if guard == nil {
		g, err := c.Acquire(ctx)
		if err != nil {
			return nil, err
		}
		guard = g
	}

	if c.closed {
		return guard, ErrClosed
	}

	if err := protocol.WriteCommand(c.sock, cmd); err != nil {
		return guard, fmt.Errorf("failed to send %s: %w", cmd, err)
	}

	return guard, nil
}

// SendRecv performs one full request/response exchange under exclusive
// access: it writes the command word, then reads the response the server
// produces for it. The payload is nil when the server answered with a
// zero-length response, which some queries use to mean "no data".
//
// A transport failure mid-exchange leaves the connection indeterminate;
// callers should treat it as closed.
func (c *Conn) SendRecv(ctx context.Context, cmd protocol.Command) ([]byte, error) {
	guard, err := c.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer guard.Release()

	if c.closed {
		return nil, ErrClosed
	}

	if err := protocol.WriteCommand(c.sock, cmd); err != nil {
		return nil, fmt.Errorf("failed to send %s: %w", cmd, err)
	}

	// No length prefix on responses: whatever one transport read yields is
	// the payload for this exchange.
	buf := make([]byte, MaxResponseBytes)
	n, err := c.sock.Read(buf)
	if err != nil {
		if errors.Is(err, io.EOF) && n == 0 {
			// Zero-length response, the server has nothing for this query.
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s response: %w", cmd, err)
	}
	if n == 0 {
		return nil, nil
	}

	return buf[:n], nil
}

// Close tells the server we are going away and tears the transport down in
// both directions. It is one more protocol exchange, not a plain socket
// close, and it is not idempotent: any use of the connection afterwards,
// including a second Close, fails with ErrClosed.
func (c *Conn) Close(ctx context.Context) error {
	c.log.Debug("Closing connection", zap.String("path", c.path))

	guard, err := c.SendCommand(ctx, protocol.ClientDisconnect, nil)
	if guard == nil {
		// Never acquired exclusive access, nothing was written.
		return err
	}
	defer guard.Release()

	if err != nil {
		return err
	}

	c.closed = true

	return multierr.Combine(shutdown(c.sock), c.sock.Close())
}

func shutdown(sock *net.UnixConn) error {
	return multierr.Append(sock.CloseRead(), sock.CloseWrite())
}
