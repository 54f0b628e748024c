package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/sdtnames/internal/sdt"
)

// newResolveCmd creates the 'resolve' subcommand, which picks the display name
// for one stream from its analyzer report.
func newResolveCmd() *cobra.Command {
	var streamURL string
	cmd := &cobra.Command{
		Use:   "resolve --url <stream-url> [report-file]",
		Short: "Print the service name for a stream",
		Long: `Parses the analyzer report (file or stdin) and prints the name of the
service whose program number matches the pnr in the stream URL fragment.
Without a match it falls back to the bare service name, then to a name shared
by every service in the report.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := resolveEnv(cmd.Context())
			if err != nil {
				return err
			}
			raw, err := readReport(cmd, args)
			if err != nil {
				return err
			}

			services, fallback := sdt.ParseServiceNamesBytes(raw)
			report := sdt.Report{Services: services, Fallback: fallback}
			pnr, hasPNR := sdt.ExtractPNR(streamURL)
			name, found := report.NameFor(pnr, hasPNR)
			if !found {
				return fmt.Errorf("no service name for %s", streamURL)
			}
			e.logger.Debug("service name resolved",
				zap.String("url", streamURL),
				zap.Bool("has_pnr", hasPNR),
				zap.Int("pnr", pnr),
				zap.String("name", name),
			)

			if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&streamURL, "url", "", "stream URL, e.g. udp://239.0.0.1:1234#pnr=1106")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}
