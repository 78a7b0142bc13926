package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/matex/format"
	"github.com/dhamidi/matex/latex/parser"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	var expression string

	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Tokenize LaTeX math and dump one token per line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(expression, args)
			if err != nil {
				return err
			}
			if err := format.NewTokenEncoder(os.Stdout).Encode(parser.Tokenize(src)); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&expression, "expression", "e", "", "Tokenize this expression instead of a file")

	return cmd
}
