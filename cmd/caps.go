package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voidwall/xabctl/client"
	"github.com/voidwall/xabctl/protocol"
)

var (
	// fresh re-queries the server instead of printing the handshake set
	fresh bool
)

var CapsCmd = &cobra.Command{
	Use:   "caps",
	Short: "Show the server's capability set",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConn(func(ctx context.Context, conn *client.Conn) error {
			caps := conn.Capabilities()

			if fresh {
				var err error
				caps, err = conn.QueryCapabilities(ctx)
				if err != nil {
					return err
				}
			}

			fmt.Printf("capabilities: %s (0x%08x)\n", caps, caps.Bits())
			fmt.Printf("multimonitor: %t\n", caps.Has(protocol.CapMultimonitor))

			return nil
		})
	},
}

func init() {
	CapsCmd.Flags().BoolVar(&fresh, "fresh", false, "Query the server instead of using the handshake set")
}
