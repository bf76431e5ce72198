package main

import (
	"encoding/json"
	"fmt"

	"github.com/baldhumanity/sparsenet/neural/tiles"
	"github.com/spf13/cobra"
)

func newTilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tiles <map.bmp>",
		Short: "Print the drivable tile grid of a bitmap map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			m, err := tiles.Load(args[0])
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"width":  m.Width(),
					"height": m.Height(),
					"grid":   m.String(),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%dx%d\n%s", m.Width(), m.Height(), m)
			return nil
		},
	}
}
