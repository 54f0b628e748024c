package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/sdtnames/internal/sdt"
)

// newParseCmd creates the 'parse' subcommand, which prints the services found
// in an analyzer report as JSON.
func newParseCmd() *cobra.Command {
	var compact bool
	cmd := &cobra.Command{
		Use:   "parse [report-file]",
		Short: "Extract service names from an analyzer report",
		Long: `Reads an analyzer report from the given file, or from stdin when the file
is omitted or "-", and prints the services and fallback name as JSON.`,
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
			e.logger.Debug("report parsed",
				zap.Int("bytes", len(raw)),
				zap.Int("services", len(services)),
				zap.Bool("fallback", fallback != ""),
			)

			enc := json.NewEncoder(cmd.OutOrStdout())
			if !compact {
				enc.SetIndent("", "  ")
			}
			if err := enc.Encode(sdt.Report{Services: services, Fallback: fallback}); err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "print the report on a single line")
	return cmd
}

// readReport returns the raw report bytes from args[0] or stdin.
func readReport(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return raw, nil
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	return raw, nil
}
