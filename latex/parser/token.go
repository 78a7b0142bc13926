package parser

// Span is a half-open [Start,End) byte offset interval into the source text.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Merge returns the smallest span covering both s and o.
func (s Span) Merge(o Span) Span {
	out := s
	if o.Start < out.Start {
		out.Start = o.Start
	}
	if o.End > out.End {
		out.End = o.End
	}
	return out
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenText
	TokenCommand
	TokenWhitespace
	TokenLeftBrace
	TokenRightBrace
	TokenSuperscript
	TokenSubscript
	TokenBeginEnv
	TokenEndEnv
	TokenNewLine
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:         "EOF",
	TokenText:        "Text",
	TokenCommand:     "Command",
	TokenWhitespace:  "Whitespace",
	TokenLeftBrace:   "{",
	TokenRightBrace:  "}",
	TokenSuperscript: "^",
	TokenSubscript:   "_",
	TokenBeginEnv:    "BeginEnv",
	TokenEndEnv:      "EndEnv",
	TokenNewLine:     "NewLine",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is one lexical unit of LaTeX math source. Literal always holds the
// exact source slice covered by Span. Name is set for TokenCommand (the
// command name without the backslash) and TokenBeginEnv/TokenEndEnv (the
// environment name).
type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
	Name    string
}

// singleCharCommands are the escapes where the backslash is followed by
// exactly one non-letter character that forms the command name.
var singleCharCommands = map[byte]bool{
	'{':  true,
	'}':  true,
	'$':  true,
	'&':  true,
	'#':  true,
	'%':  true,
	'_':  true,
	',':  true,
	';':  true,
	':':  true,
	'!':  true,
	'|':  true,
	' ':  true,
	'\'': true,
	'`':  true,
	'"':  true,
	'~':  true,
	'^':  true,
	'.':  true,
	'=':  true,
	'/':  true,
	'>':  true,
	'(':  true,
	')':  true,
	'[':  true,
	']':  true,
}
