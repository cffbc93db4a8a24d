package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Show the active prayer and the time it has left",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, display, err := loadPump(cmd)
			if err != nil {
				return err
			}
			defer p.Stop()

			p.Refresh()
			fmt.Fprintln(cmd.OutOrStdout(), display.Status())
			return nil
		},
	}
}
