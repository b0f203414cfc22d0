package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/voidwall/xabctl/client"
	"github.com/voidwall/xabctl/cmd/gen"
	"github.com/voidwall/xabctl/internal/env"
)

var (
	// The socket to dial; empty means config file, environment, or the
	// xab default, in that order of increasing precedence
	socketPath string

	// jsonOut switches query output to JSON
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:          "xabctl",
	Short:        "Control the xab background daemon over its local IPC socket",
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()

	flags.StringVarP(&socketPath, "socket", "s", "", "Path to the xab IPC socket")
	flags.BoolVar(&jsonOut, "json", false, "Print query results as JSON")

	rootCmd.AddCommand(
		MonitorsCmd,
		BackgroundsCmd,
		CapsCmd,
		ChangeBackgroundCmd,
		DeleteBackgroundCmd,
		PauseCmd,
		UnpauseCmd,
		TogglePauseCmd,
		RestartCmd,
		ShutdownCmd,
		VersionCmd,
		gen.RootCmd,
	)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withConn dials the daemon, runs fn, and closes the connection. Every
// subcommand is one connect/command/disconnect session.
func withConn(fn func(ctx context.Context, conn *client.Conn) error) error {
	ctx, signalStop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer signalStop()

	conf, err := env.LoadConfig(ctx)
	if err != nil {
		return err
	}

	log, err := env.MakeLogger(conf.Debug)
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
	}()

	path := socketPath
	if path == "" {
		path = conf.Socket()
	}

	conn, err := client.Dial(ctx, path, log)
	if err != nil {
		return err
	}

	if err := fn(ctx, conn); err != nil {
		// The session is already suspect, a failed disconnect on top of
		// that is not worth reporting.
		if cerr := conn.Close(ctx); cerr != nil {
			log.Warn("Failed to close connection", zap.Error(cerr))
		}
		return err
	}

	return conn.Close(ctx)
}
