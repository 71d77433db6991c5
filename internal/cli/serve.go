package cli

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/matzehuels/labelsheet/internal/server"
	"github.com/matzehuels/labelsheet/pkg/config"
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		envFile string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the label API over HTTP",
		Long: `Serve runs the HTTP API:

  GET  /healthz             liveness and version
  GET  /api/labels/formats  registered label formats
  POST /api/labels          generate a sheet (JSON request, file response)

Settings come from flags, LABELSHEET_* environment variables (optionally
loaded from a .env file), and the config file, in that order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotenv(envFile); err != nil {
				return fmt.Errorf("load %s: %w", envFile, err)
			}
			cfg := c.cfg()
			cfg.ApplyEnv(nil)
			if err := cfg.Validate(); err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, loggerFromContext(ctx), server.Options{
				Addr:            cfg.Server.Addr,
				ShutdownTimeout: cfg.Server.ShutdownTimeout.Duration,
				RequestTimeout:  cfg.Server.RequestTimeout.Duration,
				Defaults:        cfg.Options(),
			})

			printInfo("Serving %s formats on %s", StyleNumber.Render(fmt.Sprint(runner.Registry.Len())), StyleValue.Render(srv.Addr()))
			printNextStep("Try it", fmt.Sprintf(`curl -X POST -d '{"labelPrefix":"ASN"}' -o labels.pdf http://localhost%s/api/labels`, portOf(srv.Addr())))
			if err := srv.ListenAndServe(ctx); err != nil {
				return err
			}
			printSuccess("Server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading LABELSHEET_* variables")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}

// portOf returns the ":port" suffix of a listen address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil && port != "" {
		return ":" + port
	}
	return ""
}
