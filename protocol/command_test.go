package protocol_test

import (
	"bytes"
	"errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/voidwall/xabctl/protocol"
)

var _ = Describe("Command", func() {
	Describe("WriteCommand()", func() {
		It("writes the command as 4 big-endian bytes", func() {
			w := bytes.NewBuffer([]byte{})

			Expect(protocol.WriteCommand(w, protocol.GetCapabilities)).To(Succeed())
			Expect(w.Bytes()).To(Equal([]byte{0x00, 0x00, 0x00, 0x0b}))
		})

		It("writes exactly 4 bytes for every real command", func() {
			commands := []protocol.Command{
				protocol.None,
				protocol.Restart,
				protocol.Shutdown,
				protocol.ClientDisconnect,
				protocol.ChangeBackground,
				protocol.DeleteBackground,
				protocol.PauseVideo,
				protocol.UnpauseVideo,
				protocol.TogglePauseVideo,
				protocol.GetMonitors,
				protocol.GetAllBackgrounds,
				protocol.GetCapabilities,
			}

			for _, cmd := range commands {
				w := bytes.NewBuffer([]byte{})
				Expect(protocol.WriteCommand(w, cmd)).To(Succeed())
				Expect(w.Len()).To(Equal(4))
			}
		})

		It("refuses to send the reserved invalid sentinel", func() {
			w := bytes.NewBuffer([]byte{})

			err := protocol.WriteCommand(w, protocol.NoneInvalid)
			Expect(errors.Is(err, protocol.ErrInvalidCommand)).To(BeTrue())
			Expect(w.Len()).To(Equal(0))
		})
	})

	Describe("ReadCommand()", func() {
		It("round-trips what WriteCommand produced", func() {
			w := bytes.NewBuffer([]byte{})

			Expect(protocol.WriteCommand(w, protocol.GetMonitors)).To(Succeed())

			cmd, err := protocol.ReadCommand(w)
			Expect(err).To(Succeed())
			Expect(cmd).To(Equal(protocol.GetMonitors))
		})

		It("returns an error on fewer than 4 bytes", func() {
			data := bytes.NewReader([]byte{0x00, 0x01})

			_, err := protocol.ReadCommand(data)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("the wire contract", func() {
		It("pins every command to its assigned word", func() {
			Expect(int32(protocol.NoneInvalid)).To(Equal(int32(-1)))
			Expect(int32(protocol.None)).To(Equal(int32(0)))
			Expect(int32(protocol.Restart)).To(Equal(int32(1)))
			Expect(int32(protocol.Shutdown)).To(Equal(int32(2)))
			Expect(int32(protocol.ClientDisconnect)).To(Equal(int32(3)))
			Expect(int32(protocol.ChangeBackground)).To(Equal(int32(4)))
			Expect(int32(protocol.DeleteBackground)).To(Equal(int32(5)))
			Expect(int32(protocol.PauseVideo)).To(Equal(int32(6)))
			Expect(int32(protocol.UnpauseVideo)).To(Equal(int32(7)))
			Expect(int32(protocol.TogglePauseVideo)).To(Equal(int32(8)))
			Expect(int32(protocol.GetMonitors)).To(Equal(int32(9)))
			Expect(int32(protocol.GetAllBackgrounds)).To(Equal(int32(10)))
			Expect(int32(protocol.GetCapabilities)).To(Equal(int32(11)))
		})
	})
})
