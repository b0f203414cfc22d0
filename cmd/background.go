package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/voidwall/xabctl/client"
)

var ChangeBackgroundCmd = &cobra.Command{
	Use:   "change-background",
	Short: "Advance the server to its next configured background",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConn(func(ctx context.Context, conn *client.Conn) error {
			return conn.ChangeBackground(ctx)
		})
	},
}

var DeleteBackgroundCmd = &cobra.Command{
	Use:   "delete-background",
	Short: "Remove the server's current background",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConn(func(ctx context.Context, conn *client.Conn) error {
			return conn.DeleteBackground(ctx)
		})
	},
}
