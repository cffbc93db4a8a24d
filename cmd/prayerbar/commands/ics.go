package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/borgmon/prayer-bar/pkg/calendar"
	"github.com/spf13/cobra"
)

func newICSCmd() *cobra.Command {
	var (
		output           string
		withCongregation bool
	)

	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Export today's prayer windows as an iCalendar file",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := loadPump(cmd)
			if err != nil {
				return err
			}
			defer p.Stop()

			day := p.Day()
			if output == "-" {
				return calendar.Write(cmd.OutOrStdout(), day, withCongregation)
			}

			if err := appFs.MkdirAll(filepath.Dir(output), 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			f, err := appFs.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			if err := writeAndClose(f, func(w io.Writer) error {
				return calendar.Write(w, day, withCongregation)
			}); err != nil {
				return err
			}

			written, err := verifyExport(output)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d windows to %s\n", written, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "file to write, - for stdout")
	cmd.Flags().BoolVar(&withCongregation, "with-congregation", true, "include congregation windows")
	return cmd
}

func writeAndClose(f io.WriteCloser, write func(io.Writer) error) error {
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// verifyExport reads the exported file back and counts its prayer windows
func verifyExport(path string) (int, error) {
	f, err := appFs.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to reopen %s: %w", path, err)
	}
	defer f.Close()

	windows, err := calendar.ReadWindows(f)
	if err != nil {
		return 0, fmt.Errorf("exported calendar is unreadable: %w", err)
	}
	return len(windows), nil
}
