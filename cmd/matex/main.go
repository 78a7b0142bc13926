package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

func main() {
	var verbose int

	rootCmd := &cobra.Command{
		Use:   "matex",
		Short: "A LaTeX math parser toolbox",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbose, nil)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "Increase log verbosity")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newReplCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
