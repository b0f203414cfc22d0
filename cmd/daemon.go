package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/voidwall/xabctl/client"
)

var RestartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Ask the xab server to restart itself",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConn(func(ctx context.Context, conn *client.Conn) error {
			return conn.Restart(ctx)
		})
	},
}

var ShutdownCmd = &cobra.Command{
	Use:   "shutdown",
	Short: "Ask the xab server to shut down",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConn(func(ctx context.Context, conn *client.Conn) error {
			return conn.Shutdown(ctx)
		})
	},
}
