package parser

import (
	"unicode"
	"unicode/utf8"
)

// Lexer turns LaTeX math source into a flat token sequence. It never fails:
// any byte sequence tokenizes, and the emitted spans exactly tile the input
// with no gaps or overlaps. The zero-length EOF token closes the sequence.
type Lexer struct {
	input string
	pos   int
}

func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize scans the whole input, including the trailing EOF token.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) NextToken() Token {
	start := l.pos

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Span: Span{Start: start, End: start}}
	}

	ch := l.peek()

	if isSpace(ch) {
		return l.scanWhitespace(start)
	}

	switch ch {
	case '\\':
		return l.scanBackslash(start)
	case '{':
		l.pos++
		return l.token(TokenLeftBrace, start)
	case '}':
		l.pos++
		return l.token(TokenRightBrace, start)
	case '^':
		l.pos++
		return l.token(TokenSuperscript, start)
	case '_':
		l.pos++
		return l.token(TokenSubscript, start)
	}

	return l.scanText(start)
}

func (l *Lexer) scanWhitespace(start int) Token {
	for isSpace(l.peek()) {
		l.pos++
	}
	return l.token(TokenWhitespace, start)
}

func (l *Lexer) scanBackslash(start int) Token {
	next := l.peekN(1)

	if next == '\\' {
		l.pos += 2
		return l.token(TokenNewLine, start)
	}

	if isLetter(next) {
		l.pos++
		nameStart := l.pos
		for isLetter(l.peek()) {
			l.pos++
		}
		name := l.input[nameStart:l.pos]
		if name == "begin" || name == "end" {
			if env, ok := l.scanEnvName(); ok {
				kind := TokenBeginEnv
				if name == "end" {
					kind = TokenEndEnv
				}
				tok := l.token(kind, start)
				tok.Name = env
				return tok
			}
		}
		tok := l.token(TokenCommand, start)
		tok.Name = name
		return tok
	}

	if singleCharCommands[next] {
		l.pos += 2
		tok := l.token(TokenCommand, start)
		tok.Name = string(next)
		return tok
	}

	// A stray backslash (mid-typing, or before an unsupported escape)
	// is passed through as text so the tiling invariant holds.
	l.pos++
	return l.token(TokenText, start)
}

// scanEnvName consumes "{name}" directly after \begin or \end. Returns
// false without consuming anything when the brace group is absent or
// malformed, in which case the caller emits a plain command token.
func (l *Lexer) scanEnvName() (string, bool) {
	if l.peek() != '{' {
		return "", false
	}
	i := l.pos + 1
	for i < len(l.input) {
		ch := l.input[i]
		if ch == '}' {
			if i == l.pos+1 {
				return "", false
			}
			name := l.input[l.pos+1 : i]
			l.pos = i + 1
			return name, true
		}
		if !isLetter(ch) && !isDigit(ch) && ch != '*' {
			return "", false
		}
		i++
	}
	return "", false
}

// scanText emits a maximal run of letters, a maximal run of digits, or a
// single other rune. Runs keep names and numbers whole; punctuation and
// operators always stand alone, so the parser never splits a token.
func (l *Lexer) scanText(start int) Token {
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	if size == 0 {
		size = 1
	}
	l.pos += size

	switch {
	case isLetterRune(r):
		for {
			r, size = utf8.DecodeRuneInString(l.input[l.pos:])
			if size == 0 || !isLetterRune(r) {
				break
			}
			l.pos += size
		}
	case r >= '0' && r <= '9':
		for isDigit(l.peek()) {
			l.pos++
		}
	}

	return l.token(TokenText, start)
}

func (l *Lexer) token(kind TokenKind, start int) Token {
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: l.pos},
		Literal: l.input[start:l.pos],
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetterRune(r rune) bool {
	if r < 128 {
		return isLetter(byte(r))
	}
	return unicode.IsLetter(r)
}
