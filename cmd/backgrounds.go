package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/voidwall/xabctl/client"
)

var BackgroundsCmd = &cobra.Command{
	Use:   "backgrounds",
	Short: "List every background the xab server has configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConn(func(ctx context.Context, conn *client.Conn) error {
			backgrounds, err := conn.GetAllBackgrounds(ctx)
			if err != nil {
				return err
			}

			if jsonOut {
				out := []byte(`{"backgrounds":[]}`)
				for i, b := range backgrounds {
					out, err = sjson.SetBytes(out, fmt.Sprintf("backgrounds.%d", i), map[string]interface{}{
						"path":    b.Path,
						"monitor": b.Monitor,
					})
					if err != nil {
						return err
					}
				}

				fmt.Println(string(out))
				return nil
			}

			if len(backgrounds) == 0 {
				fmt.Println("no backgrounds configured")
				return nil
			}

			for _, b := range backgrounds {
				fmt.Printf("monitor %d: %s\n", b.Monitor, b.Path)
			}

			return nil
		})
	},
}
