// Package editor tracks open documents for the language server and
// answers position-based queries against their parsed trees.
package editor

import (
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/matex/latex/parser"
)

// Document is one open buffer. Edits re-derive the tree through the
// incremental parser, so a half-typed formula still yields the tree of
// its longest valid prefix.
type Document struct {
	uri string
	sp  *parser.StreamParser
}

func newDocument(uri, text string) *Document {
	d := &Document{uri: uri, sp: parser.NewStreamParser()}
	d.sp.Append(text)
	return d
}

func (d *Document) URI() string {
	return d.uri
}

func (d *Document) Text() string {
	return d.sp.Buffer()
}

// SetText replaces the whole buffer, matching full-document sync.
func (d *Document) SetText(text string) {
	d.sp.Clear()
	d.sp.Append(text)
}

func (d *Document) Tree() *parser.Node {
	return d.sp.CurrentDocument()
}

func (d *Document) Progress() float64 {
	return d.sp.Progress()
}

// UnparsedText is the buffer suffix the incremental parser could not
// include in the tree.
func (d *Document) UnparsedText() string {
	return d.sp.UnparsedContent()
}

// Store holds the open documents keyed by URI. Safe for concurrent use;
// the LSP transport may deliver notifications from multiple goroutines.
type Store struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

func NewStore() *Store {
	return &Store{docs: map[string]*Document{}}
}

func (s *Store) Open(uri, text string) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := newDocument(uri, text)
	s.docs[uri] = doc
	return doc
}

func (s *Store) Update(uri, text string) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		doc = newDocument(uri, text)
		s.docs[uri] = doc
		return doc
	}
	doc.SetText(text)
	return doc
}

func (s *Store) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

func (s *Store) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs[uri]
}

// OffsetAt converts a zero-based line/character position into a byte
// offset, clamping past-the-end positions to the text length.
func OffsetAt(text string, line, character int) int {
	offset := 0
	for line > 0 {
		nl := strings.IndexByte(text[offset:], '\n')
		if nl < 0 {
			return len(text)
		}
		offset += nl + 1
		line--
	}
	rest := text[offset:]
	if end := strings.IndexByte(rest, '\n'); end >= 0 {
		rest = rest[:end]
	}
	if character > len(rest) {
		character = len(rest)
	}
	return offset + character
}

// PositionAt is the inverse of OffsetAt.
func PositionAt(text string, offset int) (line, character int) {
	if offset > len(text) {
		offset = len(text)
	}
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			character = 0
			continue
		}
		character++
	}
	return line, character
}

// HoverAt describes the innermost node covering the offset, or "" when
// nothing informative sits there.
func (d *Document) HoverAt(offset int) string {
	tree := d.Tree()
	path := tree.PathAt(offset)
	if len(path) < 2 {
		return ""
	}
	n := path[len(path)-1]
	var sb strings.Builder
	sb.WriteString(n.Kind.String())
	if n.Literal != "" {
		sb.WriteString(" ")
		sb.WriteString(n.Literal)
	}
	if n.Kind == parser.KindDelimited {
		sb.WriteString(" ")
		sb.WriteString(n.Left)
		sb.WriteString("…")
		sb.WriteString(n.Right)
	}
	return sb.String()
}

// CompletionsAt returns the known command names matching the backslash
// word the cursor sits in. No backslash before the cursor on the same
// line means no completions.
func (d *Document) CompletionsAt(offset int) []string {
	text := d.Text()
	if offset > len(text) {
		offset = len(text)
	}

	start := -1
	for i := offset - 1; i >= 0; i-- {
		c := text[i]
		if c == '\\' {
			start = i
			break
		}
		if !isCommandLetter(c) {
			break
		}
	}
	if start < 0 {
		return nil
	}
	prefix := text[start+1 : offset]

	var out []string
	for _, name := range parser.KnownCommands() {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func isCommandLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '*'
}
