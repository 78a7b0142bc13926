package parser

import "strings"

// Incremental re-parse tuning. Parseability is not monotonic in prefix
// length (\int_{ fails where both \int and \int_{x} succeed), so the
// prefix search is a linear scan in two phases: a fine-grained window
// near the end of the buffer where the broken construct usually is, then
// coarse fixed strides that bound latency on pathological inputs. The
// stride means the scan may settle up to fastBacktrackStep short of the
// true longest parseable prefix.
const (
	fastPathThreshold  = 4
	fineBacktrackRange = 24
	fastBacktrackStep  = 8
)

// StreamParser re-parses a growing buffer after every append, keeping the
// last document that parsed successfully. No parse error ever escapes it:
// the worst outcome is an empty or truncated document and a progress
// ratio below 1. Not safe for concurrent use.
type StreamParser struct {
	buf     strings.Builder
	lastOK  int
	doc     *Node
	derived bool
}

func NewStreamParser() *StreamParser {
	return &StreamParser{}
}

// Append adds text to the buffer and re-derives the cached document.
// It never fails.
func (s *StreamParser) Append(text string) {
	s.buf.WriteString(text)
	s.reparse()
}

// Clear resets the buffer, the cached document and the progress state.
func (s *StreamParser) Clear() {
	s.buf.Reset()
	s.lastOK = 0
	s.doc = nil
	s.derived = false
}

// CurrentDocument returns the cached document, deriving it on first
// access. The result is always a valid Document, possibly empty.
func (s *StreamParser) CurrentDocument() *Node {
	if !s.derived {
		s.reparse()
	}
	return s.doc
}

// Progress is the parsed fraction of the buffer in [0,1]. An empty
// buffer counts as fully parsed.
func (s *StreamParser) Progress() float64 {
	if s.buf.Len() == 0 {
		return 1.0
	}
	return float64(s.lastOK) / float64(s.buf.Len())
}

// UnparsedContent returns the buffer suffix past the last successfully
// parsed prefix.
func (s *StreamParser) UnparsedContent() string {
	return s.buf.String()[s.lastOK:]
}

// Buffer returns the accumulated source text.
func (s *StreamParser) Buffer() string {
	return s.buf.String()
}

func (s *StreamParser) reparse() {
	s.derived = true
	src := s.buf.String()
	length := len(src)

	if length == 0 {
		s.doc = emptyDocument()
		s.lastOK = 0
		return
	}

	if length <= fastPathThreshold {
		// Backtracking costs more than it buys on tiny inputs.
		if doc, err := Parse(src); err == nil {
			s.doc = doc
			s.lastOK = length
		} else {
			s.doc = emptyDocument()
			s.lastOK = 0
		}
		return
	}

	if doc, err := Parse(src); err == nil {
		s.doc = doc
		s.lastOK = length
		return
	}

	// Phase A: step back one byte at a time through the window near the
	// cursor, where a live-typing break almost always sits.
	fineLimit := length - fineBacktrackRange
	if fineLimit < 1 {
		fineLimit = 1
	}
	for prefix := length - 1; prefix >= fineLimit; prefix-- {
		if doc, err := Parse(src[:prefix]); err == nil {
			s.doc = doc
			s.lastOK = prefix
			return
		}
	}

	// Phase B: coarse strides down to zero. Length zero trivially
	// parses, so this always lands somewhere.
	for prefix := fineLimit - fastBacktrackStep; prefix > 0; prefix -= fastBacktrackStep {
		if doc, err := Parse(src[:prefix]); err == nil {
			s.doc = doc
			s.lastOK = prefix
			return
		}
	}

	s.doc = emptyDocument()
	s.lastOK = 0
}

func emptyDocument() *Node {
	return &Node{Kind: KindDocument}
}
