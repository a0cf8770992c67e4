package main

import (
	"github.com/argus-labs/gridwars/pkg/telemetry"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

// cli carries state shared by the subcommands.
type cli struct {
	logLevel  string
	logFormat string
	tel       telemetry.Telemetry
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	rootCmd := &cobra.Command{
		Use:           "gridwars",
		Short:         "Simulate grid games with light grenades, teleporters and power failures",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			tel, err := telemetry.New(telemetry.Options{
				LogLevel:  c.logLevel,
				LogFormat: telemetry.ParseLogFormat(c.logFormat),
				Output:    cmd.ErrOrStderr(),
			})
			if err != nil {
				return eris.Wrap(err, "failed to set up telemetry")
			}
			c.tel = tel
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level (overrides GRIDWARS_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&c.logFormat, "log-format", "", "log format, json or pretty (overrides GRIDWARS_LOG_FORMAT)")

	rootCmd.AddCommand(newSimulateCmd(c), newSchemaCmd())
	return rootCmd
}
