package protocol_test

import (
	"bytes"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/voidwall/xabctl/protocol"
)

var _ = Describe("Capabilities", func() {
	Describe("CapabilitiesFromBits()", func() {
		It("keeps the bits this client knows about", func() {
			caps := protocol.CapabilitiesFromBits(0x00000001)
			Expect(caps.Has(protocol.CapMultimonitor)).To(BeTrue())
		})

		It("silently drops unknown bits", func() {
			// 0x3 carries Multimonitor plus a reserved bit
			withUnknown := protocol.CapabilitiesFromBits(0x00000003)
			withoutUnknown := protocol.CapabilitiesFromBits(0x00000001)

			Expect(withUnknown).To(Equal(withoutUnknown))
			Expect(withUnknown.Has(protocol.CapMultimonitor)).To(BeTrue())
		})

		It("is idempotent under masking to known bits", func() {
			caps := protocol.CapabilitiesFromBits(0xfffffffe)
			Expect(protocol.CapabilitiesFromBits(caps.Bits())).To(Equal(caps))
			Expect(caps.Has(protocol.CapMultimonitor)).To(BeFalse())
		})
	})

	Describe("ReadCapabilities()", func() {
		It("decodes a big-endian word from the handshake", func() {
			data := bytes.NewReader([]byte{0x00, 0x00, 0x00, 0x03})

			caps, err := protocol.ReadCapabilities(data)
			Expect(err).To(Succeed())
			Expect(caps.Has(protocol.CapMultimonitor)).To(BeTrue())
			Expect(caps.Bits()).To(Equal(uint32(0x1)))
		})

		It("returns an error on a short read", func() {
			data := bytes.NewReader([]byte{0x00})

			_, err := protocol.ReadCapabilities(data)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("String()", func() {
		It("names the empty set", func() {
			Expect(protocol.Capabilities(0).String()).To(Equal("None"))
		})

		It("names Multimonitor", func() {
			Expect(protocol.CapMultimonitor.String()).To(Equal("Multimonitor"))
		})
	})
})
