package main

import (
	"os"

	"github.com/spf13/cobra"
)

// globalFlags override configuration loaded from file and environment.
type globalFlags struct {
	dataset  string
	logLevel string
	fromYear int
	toYear   int
	projects int
}

func main() {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:          "housingdash",
		Short:        "Social-housing provider metrics engine",
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.dataset, "dataset", "", "providers YAML file or directory (default: embedded reference dataset)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.IntVar(&flags.fromYear, "from", 0, "first history year")
	pf.IntVar(&flags.toYear, "to", 0, "last history year")
	pf.IntVar(&flags.projects, "projects", -1, "number of generated projects")

	rootCmd.AddCommand(reportCmd(&flags))
	rootCmd.AddCommand(validateCmd(&flags))
	rootCmd.AddCommand(providersCmd(&flags))
	rootCmd.AddCommand(providerCmd(&flags))
	rootCmd.AddCommand(serveCmd(&flags))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func reportCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the dashboard report and print headline metrics",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runReport(flags, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full report as JSON")
	return cmd
}

func validateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the provider dataset and the generated collections",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runValidate(flags)
		},
	}
}

func providersCmd(flags *globalFlags) *cobra.Command {
	var structureType, tier, sortKey string

	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List providers, optionally filtered and sorted",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runProviders(flags, structureType, tier, sortKey)
		},
	}

	cmd.Flags().StringVar(&structureType, "type", "All", "structure type filter")
	cmd.Flags().StringVar(&tier, "tier", "All", "performance tier filter")
	cmd.Flags().StringVar(&sortKey, "sort", "", "sort key: stock, revenue, investment, performance or any numeric field")
	return cmd
}

func providerCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "provider [name]",
		Short: "Show one provider's detail sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runProvider(flags, args[0])
		},
	}
}

func serveCmd(flags *globalFlags) *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(flags, host, port, cmd.Flags().Changed("port"))
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (default from config)")
	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}
