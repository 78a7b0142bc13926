package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/matex/latex/parser"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const (
	historyFile = ".matex_history"
	promptMain  = "tex> "
	promptCont  = "...> "
)

func newReplCmd() *cobra.Command {
	var withSpans bool

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactively parse expressions and inspect their trees",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(withSpans)
		},
	}

	cmd.Flags().BoolVar(&withSpans, "spans", false, "Include byte offsets in tree output")

	return cmd
}

func runRepl(withSpans bool) error {
	fmt.Printf("matex %s REPL. Ctrl+D exits.\n", version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	ln.SetCompleter(func(line string) []string {
		idx := strings.LastIndexByte(line, '\\')
		if idx < 0 {
			return nil
		}
		prefix := line[idx+1:]
		var out []string
		for _, name := range parser.KnownCommands() {
			if strings.HasPrefix(name, prefix) {
				out = append(out, line[:idx+1]+name)
			}
		}
		return out
	})

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		src, ok := readExpression(ln)
		if !ok {
			fmt.Println()
			return nil
		}
		if strings.TrimSpace(src) == "" {
			continue
		}

		doc, err := parser.Parse(src)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if withSpans {
			fmt.Print(doc.StringWithSpans())
		} else {
			fmt.Print(doc.String())
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}
}

// readExpression keeps prompting while the input only fails because a
// construct is still open, so a multi-line matrix can be typed naturally.
func readExpression(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, perr := parser.Parse(src); incomplete(src, perr) {
			continue
		}
		return src, true
	}
}

// incomplete reports whether the error means the input could still
// become valid with more lines. Unmatched-construct errors on an opener
// qualify; a stray closer is broken for good.
func incomplete(src string, err error) bool {
	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		return false
	}
	switch perr.Code {
	case parser.ErrUnmatchedBrace, parser.ErrUnmatchedEnvironment, parser.ErrUnmatchedDelimiter:
	default:
		return false
	}
	if perr.Span.Start >= len(src) {
		return true
	}
	at := src[perr.Span.Start:]
	for _, closer := range []string{"}", `\end`, `\right`} {
		if strings.HasPrefix(at, closer) {
			return false
		}
	}
	return true
}
