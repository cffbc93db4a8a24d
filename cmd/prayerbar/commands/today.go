package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTodayCmd() *cobra.Command {
	var showWindows bool

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show all of today's prayer times",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := loadPump(cmd)
			if err != nil {
				return err
			}
			defer p.Stop()

			p.ShowAllToday()

			if showWindows {
				out := cmd.OutOrStdout()
				loc := p.Config().Location()
				fmt.Fprintln(out)
				writeWindows(out, p.Day(), loc)
				fmt.Fprintln(out)
				writeAlarms(out, p.Pending(), loc)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showWindows, "windows", "w", false, "also print prayer windows and the alarms still due")
	return cmd
}
