package main

import (
	"github.com/dhamidi/matex/latex/editor"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := editor.NewLSPServer(version)
			return server.RunStdio()
		},
	}
}
