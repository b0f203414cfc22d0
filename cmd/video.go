package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/voidwall/xabctl/client"
)

var PauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause video background playback",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConn(func(ctx context.Context, conn *client.Conn) error {
			return conn.PauseVideo(ctx)
		})
	},
}

var UnpauseCmd = &cobra.Command{
	Use:   "unpause",
	Short: "Resume video background playback",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConn(func(ctx context.Context, conn *client.Conn) error {
			return conn.UnpauseVideo(ctx)
		})
	},
}

var TogglePauseCmd = &cobra.Command{
	Use:   "toggle-pause",
	Short: "Toggle video background playback",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConn(func(ctx context.Context, conn *client.Conn) error {
			return conn.TogglePauseVideo(ctx)
		})
	},
}
