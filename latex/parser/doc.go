// Package parser parses LaTeX math markup into a typed syntax tree and
// supports incremental parsing of partial input for live-typing scenarios.
//
// # Overview
//
// The parser covers the math-mode subset of LaTeX plus the \ce{...}
// chemistry extension: scripts, fractions, roots, matrices and the other
// amsmath environments, delimiter pairs, accents, user macros defined
// with \newcommand, and spacing/style switches. It is designed for
// editor-like tooling where the buffer is usually incomplete.
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│   Parser    │
//	│  (string)   │     │  (tokens)   │     │   (tree)    │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                           │                   │
//	                           ▼                   ▼
//	                    ┌─────────────┐     ┌─────────────┐
//	                    │    Span     │     │ StreamParser│
//	                    │  tracking   │     │ (re-parse)  │
//	                    └─────────────┘     └─────────────┘
//
// Tokenization is total: every input string produces a token sequence
// whose spans exactly tile the input. Parsing either returns a complete
// Document node or a *ParseError; no partial tree leaves a failed parse.
//
// # Incremental Parsing
//
// StreamParser wraps Parse with a growing buffer:
//
//	sp := parser.NewStreamParser()
//	sp.Append("\\int_{-\\")      // never fails
//	doc := sp.CurrentDocument()  // valid document from a shorter prefix
//	sp.Append("infty}^{\\infty}")
//	doc = sp.CurrentDocument()   // now the full integral
//
// When the whole buffer does not parse, StreamParser scans shorter
// prefixes for the longest one that does. The scan is linear because
// parseability is not monotonic in prefix length, and it is split into a
// fine-grained window near the end of the buffer and coarse strides
// beyond it, trading exactness for bounded latency. Parse errors never
// escape a StreamParser; the caller sees a valid document plus Progress
// and UnparsedContent describing how much of the buffer it reflects.
//
// # Source Mapping
//
// Every node carries the half-open byte span of the source region it was
// built from, computed as the hull of its introducing tokens and its
// children. Node.NodeAt and Node.PathAt answer offset queries for
// cursor synchronization.
package parser
