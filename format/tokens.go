package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/matex/latex/parser"
)

// TokenEncoder writes one tab-separated line per token, grep-friendly.
type TokenEncoder struct {
	w io.Writer
}

func NewTokenEncoder(w io.Writer) *TokenEncoder {
	return &TokenEncoder{w: w}
}

func (e *TokenEncoder) Encode(tokens []parser.Token) error {
	text, err := e.MarshalText(tokens)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TokenEncoder) MarshalText(tokens []parser.Token) ([]byte, error) {
	var sb strings.Builder
	for _, tok := range tokens {
		fmt.Fprintf(&sb, "%s\t%d\t%d\t%s", tok.Kind, tok.Span.Start, tok.Span.End, tok.Literal)
		if tok.Name != "" {
			fmt.Fprintf(&sb, "\t%s", tok.Name)
		}
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}
