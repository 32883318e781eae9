// Command expandlist replays scripted changes against an expandable list and
// prints the resulting rows.
package main

import (
	"fmt"
	"os"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	logLevel string
}

// newRootCmd builds the command tree. Store metrics are registered with reg.
func newRootCmd(reg prometheus.Registerer) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "expandlist",
		Short:         "Inspect flat positions of expandable grouped lists",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.New(opts.logLevel)
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "NOOP",
		"log level, NOOP disables logging")

	rootCmd.AddCommand(newReplayCmd(reg), newResolveCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd(prometheus.DefaultRegisterer).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
