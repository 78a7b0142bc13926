// Package format renders parsed documents and token streams for the CLI.
// Every encoder writes to the io.Writer it was constructed with; MarshalText
// exposes the same bytes without the write.
package format

import (
	"github.com/dhamidi/matex/latex/parser"
)

type Encoder interface {
	Encode(doc *parser.Node) error
}
