package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voidwall/xabctl/internal/meta"
	"github.com/voidwall/xabctl/protocol"
)

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build and protocol version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := meta.GetInfo()

		fmt.Printf("xabctl %s (%s, %s)\n", info.Version, info.Build, info.Platform)
		fmt.Printf("ipc protocol version: %d\n", protocol.ProtoVersion)
	},
}
