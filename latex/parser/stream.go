package parser

// stream is a cursor over a token sequence. All state is the cursor
// position; reset rewinds it for speculative sub-grammars.
type stream struct {
	tokens []Token
	pos    int
}

func newStream(tokens []Token) *stream {
	return &stream{tokens: tokens}
}

func (s *stream) peek() Token {
	return s.peekN(0)
}

func (s *stream) peekN(n int) Token {
	if s.pos+n >= len(s.tokens) {
		return s.eofToken()
	}
	return s.tokens[s.pos+n]
}

func (s *stream) advance() Token {
	tok := s.peek()
	if s.pos < len(s.tokens) {
		s.pos++
	}
	return tok
}

func (s *stream) atEOF() bool {
	return s.peek().Kind == TokenEOF
}

func (s *stream) check(kind TokenKind) bool {
	return s.peek().Kind == kind
}

// expect consumes the next token when it has the wanted kind and fails
// with ErrExpectedToken otherwise. EOF is a valid failure condition.
func (s *stream) expect(kind TokenKind, msg string) (Token, *ParseError) {
	tok := s.peek()
	if tok.Kind != kind {
		return Token{}, &ParseError{
			Code:     ErrExpectedToken,
			Span:     tok.Span,
			Expected: kind,
			Message:  msg,
		}
	}
	s.advance()
	return tok, nil
}

func (s *stream) reset() {
	s.pos = 0
}

// currentOffset is the source offset of the next unconsumed token.
func (s *stream) currentOffset() int {
	return s.peek().Span.Start
}

// previousEnd is the source offset just past the last consumed token.
func (s *stream) previousEnd() int {
	if s.pos == 0 {
		return 0
	}
	return s.tokens[s.pos-1].Span.End
}

func (s *stream) spanFrom(start int) Span {
	return Span{Start: start, End: s.previousEnd()}
}

// splice inserts tokens at the cursor, in front of the unconsumed
// remainder. Used to feed macro expansion output back into the descent.
func (s *stream) splice(tokens []Token) {
	if len(tokens) == 0 {
		return
	}
	rest := s.tokens[s.pos:]
	merged := make([]Token, 0, s.pos+len(tokens)+len(rest))
	merged = append(merged, s.tokens[:s.pos]...)
	merged = append(merged, tokens...)
	merged = append(merged, rest...)
	s.tokens = merged
}

func (s *stream) eofToken() Token {
	end := 0
	if len(s.tokens) > 0 {
		end = s.tokens[len(s.tokens)-1].Span.End
	}
	return Token{Kind: TokenEOF, Span: Span{Start: end, End: end}}
}

// skipWhitespace advances past whitespace tokens.
func (s *stream) skipWhitespace() {
	for s.check(TokenWhitespace) {
		s.advance()
	}
}
