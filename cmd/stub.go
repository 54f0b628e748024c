package cmd

import (
	"fmt"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JakeFAU/sdtnames/internal/ackstub"
)

// newStubCmd creates the 'stub' subcommand, which runs the acknowledgement
// endpoint until SIGINT or SIGTERM.
func newStubCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stub [host] [port]",
		Short: "Run the webhook acknowledgement stub",
		Long: `Listens on host:port (default 127.0.0.1:18080, or stub.host/stub.port from
config) and answers every POST with 200 {"ok":true}, remembering the last body.
The last body can be read back with GET /_stub/last.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := resolveEnv(cmd.Context())
			if err != nil {
				return err
			}
			stubCfg := e.cfg.Stub
			if len(args) > 0 {
				stubCfg.Host = args[0]
			}
			if len(args) > 1 {
				port, err := strconv.Atoi(args[1])
				if err != nil || port <= 0 || port > 65535 {
					return fmt.Errorf("invalid port %q", args[1])
				}
				stubCfg.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := ackstub.NewServer(
				ackstub.WithLogger(e.logger.Named("ackstub")),
				ackstub.WithMaxBodyBytes(stubCfg.MaxBodyBytes),
				ackstub.WithShutdownTimeout(stubCfg.ShutdownTimeout()),
			)
			if err := server.ListenAndServe(ctx, stubCfg.Addr()); err != nil {
				return fmt.Errorf("run stub: %w", err)
			}
			return nil
		},
	}
}
