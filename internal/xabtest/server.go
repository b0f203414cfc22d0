// Package xabtest provides an in-process stand-in for the xab daemon. It
// speaks the real wire protocol over a real unix socket so client tests
// exercise genuine transport behaviour instead of mocks.
package xabtest

import (
	"context"
	"errors"
	"net"
	"sync"

	"go.uber.org/zap"

	"github.com/voidwall/xabctl/protocol"
)

// Server is a scriptable fake xab daemon. Configure its fields before
// calling Start; they must not change while the server is running.
type Server struct {
	// Version is what the server reports during the handshake.
	Version int32

	// CapabilityBits is the raw capability word, reserved bits included.
	CapabilityBits uint32

	// Monitors is the GetMonitors response.
	Monitors []protocol.Monitor

	// TrailingJunk is appended to the GetMonitors payload to simulate a
	// trailing partial record.
	TrailingJunk []byte

	// Backgrounds is the raw GetAllBackgrounds payload.
	Backgrounds []byte

	// EmptyQueryResponses makes every query come back zero-length.
	EmptyQueryResponses bool

	cancel     context.CancelFunc
	listener   net.Listener
	loopWaiter sync.WaitGroup

	mu          sync.Mutex
	received    []protocol.Command
	handshakes  []int32
	activeConns map[*net.UnixConn]struct{}

	log *zap.Logger
}

// NewServer returns a Server with the defaults a healthy daemon would
// have: the client's protocol version and the Multimonitor capability.
func NewServer(log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	return &Server{
		Version:        protocol.ProtoVersion,
		CapabilityBits: protocol.CapMultimonitor.Bits(),
		activeConns:    make(map[*net.UnixConn]struct{}),
		log:            log.Named("xabtest"),
	}
}

// Start listens on the unix socket at path and begins accepting
// connections. The listener is in place when Start returns.
func (s *Server) Start(parentCtx context.Context, path string) error {
	ctx, cancel := context.WithCancel(parentCtx)
	s.cancel = cancel

	listener, err := net.Listen("unix", path)
	if err != nil {
		cancel()
		return err
	}
	s.listener = listener

	s.loopWaiter.Add(1)
	go func() {
		defer s.loopWaiter.Done()
		s.acceptLoop(ctx)
	}()

	return nil
}

// Close stops accepting connections, closes the active ones and waits for
// their loops to drain.
func (s *Server) Close() error {
	s.cancel()
	err := s.listener.Close()

	s.mu.Lock()
	for conn := range s.activeConns {
		conn.Close()
		delete(s.activeConns, conn)
	}
	s.mu.Unlock()

	s.loopWaiter.Wait()

	return err
}

// Received returns every command word read so far, in arrival order.
func (s *Server) Received() []protocol.Command {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]protocol.Command, len(s.received))
	copy(out, s.received)
	return out
}

// ClientVersions returns the protocol version each client echoed during
// its handshake, mismatches included.
func (s *Server) ClientVersions() []int32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]int32, len(s.handshakes))
	copy(out, s.handshakes)
	return out
}

func (s *Server) acceptLoop(ctx context.Context) {
	log := s.log.Named("acceptLoop")

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				// The listener was closed while we were waiting for new
				// connections, that's fine.
				return
			}

			log.Warn("Failed to accept", zap.Error(err))
			return
		}

		s.loopWaiter.Add(1)
		go func() {
			defer s.loopWaiter.Done()
			s.handle(ctx, conn.(*net.UnixConn))
		}()
	}
}

func (s *Server) handle(ctx context.Context, sock *net.UnixConn) {
	log := s.log.Named("conn")

	s.addConn(sock)
	defer s.removeConn(sock)

	if err := protocol.WriteVersion(sock, s.Version); err != nil {
		log.Warn("Failed to send version", zap.Error(err))
		return
	}

	clientVersion, err := protocol.ReadVersion(sock)
	if err != nil {
		log.Warn("Failed to read client version", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.handshakes = append(s.handshakes, clientVersion)
	s.mu.Unlock()

	if clientVersion != s.Version {
		log.Info("Dropping mismatched client",
			zap.Int32("client", clientVersion),
			zap.Int32("server", s.Version))
		return
	}

	if err := protocol.WriteCapabilityBits(sock, s.CapabilityBits); err != nil {
		log.Warn("Failed to send capabilities", zap.Error(err))
		return
	}

	for {
		if ctx.Err() != nil {
			return
		}

		cmd, err := protocol.ReadCommand(sock)
		if err != nil {
			// EOF here is the client going away without a disconnect.
			return
		}

		s.record(cmd)
		log.Debug("Received command", zap.Stringer("command", cmd))

		switch cmd {
		case protocol.ClientDisconnect:
			return

		case protocol.GetMonitors:
			payload := make([]byte, 0, len(s.Monitors)*protocol.MonitorLen)
			for _, m := range s.Monitors {
				payload = append(payload, protocol.EncodeMonitor(m)...)
			}
			payload = append(payload, s.TrailingJunk...)

			if err := s.respond(sock, payload); err != nil {
				log.Warn("Failed to respond to GetMonitors", zap.Error(err))
				return
			}

		case protocol.GetAllBackgrounds:
			if err := s.respond(sock, s.Backgrounds); err != nil {
				log.Warn("Failed to respond to GetAllBackgrounds", zap.Error(err))
				return
			}

		case protocol.GetCapabilities:
			if err := s.respondCapabilities(sock); err != nil {
				log.Warn("Failed to respond to GetCapabilities", zap.Error(err))
				return
			}

		default:
			// State-changing commands carry no reply.
		}
	}
}

// respond writes a query payload, or signals a zero-length response by
// shutting the write side down. Over a stream socket "zero bytes" is only
// observable as EOF, so an empty payload ends the write half.
func (s *Server) respond(sock *net.UnixConn, payload []byte) error {
	if s.EmptyQueryResponses || len(payload) == 0 {
		return sock.CloseWrite()
	}

	_, err := sock.Write(payload)
	return err
}

func (s *Server) respondCapabilities(sock *net.UnixConn) error {
	if s.EmptyQueryResponses {
		return sock.CloseWrite()
	}

	return protocol.WriteCapabilityBits(sock, s.CapabilityBits)
}

func (s *Server) record(cmd protocol.Command) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.received = append(s.received, cmd)
}

func (s *Server) addConn(conn *net.UnixConn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activeConns[conn] = struct{}{}
}

func (s *Server) removeConn(conn *net.UnixConn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn.Close()
	delete(s.activeConns, conn)
}
