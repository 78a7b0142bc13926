package format

import (
	"io"

	"github.com/dhamidi/matex/latex/parser"
)

// TreeEncoder writes the indented one-node-per-line rendering, the
// default for terminal inspection.
type TreeEncoder struct {
	w     io.Writer
	spans bool
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

// WithSpans makes the encoder include byte offsets on every line.
func (e *TreeEncoder) WithSpans() *TreeEncoder {
	e.spans = true
	return e
}

func (e *TreeEncoder) Encode(doc *parser.Node) error {
	text, err := e.MarshalText(doc)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText(doc *parser.Node) ([]byte, error) {
	if e.spans {
		return []byte(doc.StringWithSpans()), nil
	}
	return []byte(doc.String()), nil
}
