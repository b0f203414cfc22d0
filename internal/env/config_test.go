package env_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/voidwall/xabctl/internal/env"
	"github.com/voidwall/xabctl/protocol"
)

var _ = Describe("Config", func() {
	var (
		ctx       context.Context
		configDir string
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		configDir, err = os.MkdirTemp("", "xabctl-env")
		Expect(err).To(Succeed())

		// UserConfigDir honours XDG_CONFIG_HOME on linux
		Expect(os.Setenv("XDG_CONFIG_HOME", configDir)).To(Succeed())
	})

	AfterEach(func() {
		Expect(os.Unsetenv("XDG_CONFIG_HOME")).To(Succeed())
		Expect(os.Unsetenv("XAB_SOCKET")).To(Succeed())
		Expect(os.Unsetenv("XAB_DEBUG")).To(Succeed())
		Expect(os.RemoveAll(configDir)).To(Succeed())
	})

	It("falls back to the xab default socket path", func() {
		config, err := env.LoadConfig(ctx)
		Expect(err).To(Succeed())
		Expect(config.Socket()).To(Equal(protocol.DefaultSocketPath))
	})

	It("reads the socket path from the environment", func() {
		Expect(os.Setenv("XAB_SOCKET", "/run/xab/custom.sock")).To(Succeed())

		config, err := env.LoadConfig(ctx)
		Expect(err).To(Succeed())
		Expect(config.Socket()).To(Equal("/run/xab/custom.sock"))
	})

	It("reads the TOML config file", func() {
		dir := filepath.Join(configDir, "xabctl")
		Expect(os.MkdirAll(dir, 0750)).To(Succeed())

		file := filepath.Join(dir, "config.toml")
		contents := []byte("socket_path = \"/run/xab/from-file.sock\"\ndebug = true\n")
		Expect(os.WriteFile(file, contents, 0600)).To(Succeed())

		config, err := env.LoadConfig(ctx)
		Expect(err).To(Succeed())
		Expect(config.Socket()).To(Equal("/run/xab/from-file.sock"))
		Expect(config.Debug).To(BeTrue())
	})

	It("lets the environment override the config file", func() {
		dir := filepath.Join(configDir, "xabctl")
		Expect(os.MkdirAll(dir, 0750)).To(Succeed())

		file := filepath.Join(dir, "config.toml")
		Expect(os.WriteFile(file, []byte("socket_path = \"/run/xab/from-file.sock\"\n"), 0600)).To(Succeed())

		Expect(os.Setenv("XAB_SOCKET", "/run/xab/from-env.sock")).To(Succeed())

		config, err := env.LoadConfig(ctx)
		Expect(err).To(Succeed())
		Expect(config.Socket()).To(Equal("/run/xab/from-env.sock"))
	})
})
