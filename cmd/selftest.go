package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JakeFAU/sdtnames/internal/selftest"
)

// newSelftestCmd creates the 'selftest' subcommand. It prints the success
// marker when every check passes and fails on the first one that does not.
func newSelftestCmd() *cobra.Command {
	var stubURL string
	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Run the built-in assertions against the parsers and the stub",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := resolveEnv(cmd.Context())
			if err != nil {
				return err
			}
			if err := selftest.Run(cmd.Context(), selftest.Checks(stubURL), e.logger.Named("selftest")); err != nil {
				return fmt.Errorf("selftest failed: %w", err)
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), selftest.SuccessMarker); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&stubURL, "stub-url", "", "check a running stub instead of starting one, e.g. http://127.0.0.1:18080")
	return cmd
}
