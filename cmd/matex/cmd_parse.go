package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/matex/format"
	"github.com/dhamidi/matex/latex/parser"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var withSpans bool
	var expression string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse LaTeX math and dump the tree",
		Long: `Parse LaTeX math from a file, stdin ("-") or the -e flag and write
the document tree to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(expression, args)
			if err != nil {
				return err
			}

			doc, err := parser.Parse(src)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			switch outputFormat {
			case "json":
				if err := format.NewASTJSONEncoder(os.Stdout).Encode(doc); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
				fmt.Println()
			case "tree":
				enc := format.NewTreeEncoder(os.Stdout)
				if withSpans {
					enc.WithSpans()
				}
				if err := enc.Encode(doc); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "Output format: tree or json")
	cmd.Flags().BoolVar(&withSpans, "spans", false, "Include byte offsets in tree output")
	cmd.Flags().StringVarP(&expression, "expression", "e", "", "Parse this expression instead of a file")

	return cmd
}

func readSource(expression string, args []string) (string, error) {
	if expression != "" {
		return expression, nil
	}
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}
