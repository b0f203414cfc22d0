package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/voidwall/xabctl/client"
)

var MonitorsCmd = &cobra.Command{
	Use:   "monitors",
	Short: "List the monitors the xab server reports",
	Long: `List the monitors the xab server reports.

When the server lacks multi-monitor support this prints the single
synthetic fullscreen monitor without asking the server.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConn(func(ctx context.Context, conn *client.Conn) error {
			monitors, err := conn.GetMonitors(ctx)
			if err != nil {
				return err
			}

			if jsonOut {
				out := []byte(`{"monitors":[]}`)
				for i, m := range monitors {
					out, err = sjson.SetBytes(out, fmt.Sprintf("monitors.%d", i), map[string]interface{}{
						"index":      m.Index,
						"primary":    m.Primary,
						"x":          m.X,
						"y":          m.Y,
						"width":      m.Width,
						"height":     m.Height,
						"fullscreen": m.Fullscreen(),
					})
					if err != nil {
						return err
					}
				}

				fmt.Println(string(out))
				return nil
			}

			for _, m := range monitors {
				primary := ""
				if m.Primary {
					primary = " (primary)"
				}

				if m.Fullscreen() {
					fmt.Printf("monitor %d: fullscreen%s\n", m.Index, primary)
					continue
				}

				fmt.Printf("monitor %d: %dx%d at %d,%d%s\n",
					m.Index, m.Width, m.Height, m.X, m.Y, primary)
			}

			return nil
		})
	},
}
