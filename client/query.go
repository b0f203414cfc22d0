package client

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/voidwall/xabctl/protocol"
)

var (
	// ErrMissingMonitors means the server advertises Multimonitor but
	// answered GetMonitors with an empty payload. A capable server must
	// report at least one monitor, so this is unexpected server behaviour,
	// not a valid "no monitors" case.
	ErrMissingMonitors = errors.New("client: server advertises multi-monitor support but sent no monitor records")
)

// Background describes one background the server currently knows about.
type Background struct {
	Path    string
	Monitor int64
}

// GetMonitors lists the server's monitors.
//
// When the negotiated capability set lacks Multimonitor this performs no
// protocol traffic at all and returns exactly the fullscreen sentinel.
// Otherwise it issues GetMonitors and decodes the payload as packed
// 21-byte records, dropping any trailing partial record.
func (c *Conn) GetMonitors(ctx context.Context) ([]protocol.Monitor, error) {
	// if xab isn't capable then return fullscreen
	if !c.caps.Has(protocol.CapMultimonitor) {
		return []protocol.Monitor{protocol.FullscreenMonitor()}, nil
	}

	payload, err := c.SendRecv(ctx, protocol.GetMonitors)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, ErrMissingMonitors
	}

	return protocol.DecodeMonitors(payload), nil
}

// GetAllBackgrounds lists every background the server has configured. The
// payload is a JSON array of objects with a "path" and an optional
// "monitor" index; a zero-length response is a valid empty list.
func (c *Conn) GetAllBackgrounds(ctx context.Context) ([]Background, error) {
	payload, err := c.SendRecv(ctx, protocol.GetAllBackgrounds)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, nil
	}

	backgrounds := make([]Background, 0)
	gjson.ParseBytes(payload).ForEach(func(_, entry gjson.Result) bool {
		backgrounds = append(backgrounds, Background{
			Path:    entry.Get("path").String(),
			Monitor: entry.Get("monitor").Int(),
		})
		return true
	})

	return backgrounds, nil
}

// QueryCapabilities explicitly asks the server for a fresh capability
// word. The set negotiated at connect time is immutable and is not
// updated by this call.
func (c *Conn) QueryCapabilities(ctx context.Context) (protocol.Capabilities, error) {
	payload, err := c.SendRecv(ctx, protocol.GetCapabilities)
	if err != nil {
		return 0, err
	}
	if len(payload) < 4 {
		return 0, fmt.Errorf("client: capability response too short: %d bytes", len(payload))
	}

	return protocol.CapabilitiesFromBits(binary.BigEndian.Uint32(payload[:4])), nil
}

// Restart asks the server to restart itself.
func (c *Conn) Restart(ctx context.Context) error {
	return c.send(ctx, protocol.Restart)
}

// Shutdown asks the server to shut down.
func (c *Conn) Shutdown(ctx context.Context) error {
	return c.send(ctx, protocol.Shutdown)
}

// ChangeBackground advances the server to its next configured background.
func (c *Conn) ChangeBackground(ctx context.Context) error {
	return c.send(ctx, protocol.ChangeBackground)
}

// DeleteBackground removes the server's current background.
func (c *Conn) DeleteBackground(ctx context.Context) error {
	return c.send(ctx, protocol.DeleteBackground)
}

// PauseVideo pauses video playback.
func (c *Conn) PauseVideo(ctx context.Context) error {
	return c.send(ctx, protocol.PauseVideo)
}

// UnpauseVideo resumes video playback.
func (c *Conn) UnpauseVideo(ctx context.Context) error {
	return c.send(ctx, protocol.UnpauseVideo)
}

// TogglePauseVideo flips video playback between paused and playing.
func (c *Conn) TogglePauseVideo(ctx context.Context) error {
	return c.send(ctx, protocol.TogglePauseVideo)
}

// send fires one state-changing command with no reply expected.
func (c *Conn) send(ctx context.Context, cmd protocol.Command) error {
	c.log.Debug("Sending command", zap.Stringer("command", cmd))

	guard, err := c.SendCommand(ctx, cmd, nil)
	if guard != nil {
		guard.Release()
	}
	return err
}
