package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/JakeFAU/sdtnames/internal/sdt"
)

// newPNRCmd creates the 'pnr' subcommand. It prints one line per URL: the
// program number, or "-" when the URL carries none.
func newPNRCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pnr <url>...",
		Short: "Print the program number from stream URL fragments",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, rawURL := range args {
				out := "-"
				if pnr, ok := sdt.ExtractPNR(rawURL); ok {
					out = strconv.Itoa(pnr)
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), out); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			}
			return nil
		},
	}
}
