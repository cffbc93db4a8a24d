package commands

import (
	"fmt"

	"github.com/borgmon/prayer-bar/pkg/quotes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newQuoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quote",
		Short: "Print a random quotation from the reminder list",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := quotes.Load(appFs, viper.GetString("quotes-file"))
			if err != nil {
				return err
			}

			q, err := source.PickRandom()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), q.String())
			return nil
		},
	}
}
