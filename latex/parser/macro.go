package parser

import "strconv"

// maxMacroDepth bounds recursive macro expansion. A macro whose body calls
// itself (directly or through mutual references) fails with
// ErrMacroRecursion instead of looping.
const maxMacroDepth = 64

type macroDef struct {
	params int
	body   []Token
}

// macroTable lives for exactly one top-level parse invocation. A later
// \newcommand for the same name overrides the earlier entry; a macro used
// before its definition is an unknown command.
type macroTable map[string]macroDef

// parseNewCommand handles \newcommand{\name}[k]{body}. The body is stored
// raw (unexpanded) with #1..#k placeholder tokens. The returned node is a
// non-rendering provenance marker.
func (p *Parser) parseNewCommand(cmd Token) (*Node, *ParseError) {
	start := cmd.Span.Start
	p.toks.skipWhitespace()

	if _, err := p.toks.expect(TokenLeftBrace, "macro name"); err != nil {
		return nil, err
	}
	nameTok := p.toks.peek()
	if nameTok.Kind != TokenCommand {
		return nil, &ParseError{
			Code:    ErrMissingArgument,
			Span:    nameTok.Span,
			Message: "\\" + cmd.Name + " needs a \\name argument",
		}
	}
	p.toks.advance()
	if _, err := p.toks.expect(TokenRightBrace, "closing brace after macro name"); err != nil {
		return nil, err
	}

	params := 0
	if p.toks.check(TokenText) && p.toks.peek().Literal == "[" {
		p.toks.advance()
		countTok := p.toks.peek()
		if countTok.Kind != TokenText || len(countTok.Literal) != 1 ||
			countTok.Literal[0] < '1' || countTok.Literal[0] > '9' {
			return nil, &ParseError{
				Code:    ErrMissingArgument,
				Span:    countTok.Span,
				Message: "parameter count must be 1-9",
			}
		}
		params = int(countTok.Literal[0] - '0')
		p.toks.advance()
		closeTok := p.toks.peek()
		if closeTok.Kind != TokenText || closeTok.Literal != "]" {
			return nil, &ParseError{
				Code:    ErrMissingArgument,
				Span:    closeTok.Span,
				Message: "expected ] after parameter count",
			}
		}
		p.toks.advance()
	}

	body, err := p.readBraceGroupTokens()
	if err != nil {
		return nil, err
	}

	p.macros[nameTok.Name] = macroDef{params: params, body: body}

	return &Node{
		Kind:    KindNewCommand,
		Span:    p.toks.spanFrom(start),
		Literal: nameTok.Name,
		Params:  params,
	}, nil
}

// readBraceGroupTokens consumes a {..} group and returns the raw tokens
// between the braces, with nesting respected.
func (p *Parser) readBraceGroupTokens() ([]Token, *ParseError) {
	p.toks.skipWhitespace()
	open, err := p.toks.expect(TokenLeftBrace, "brace-delimited argument")
	if err != nil {
		return nil, err
	}
	var body []Token
	depth := 1
	for {
		tok := p.toks.peek()
		switch tok.Kind {
		case TokenEOF:
			return nil, &ParseError{Code: ErrUnmatchedBrace, Span: open.Span}
		case TokenLeftBrace:
			depth++
		case TokenRightBrace:
			depth--
			if depth == 0 {
				p.toks.advance()
				return body, nil
			}
		}
		body = append(body, tok)
		p.toks.advance()
	}
}

// expandMacro reads the macro's arguments from the stream, expands them
// (call-by-value), substitutes them into the body and splices the fully
// expanded result back in front of the cursor.
func (p *Parser) expandMacro(cmd Token, def macroDef) *ParseError {
	args := make([][]Token, def.params)
	for i := 0; i < def.params; i++ {
		raw, err := p.readBraceGroupTokens()
		if err != nil {
			if err.Code == ErrExpectedToken {
				return &ParseError{
					Code:    ErrMissingArgument,
					Span:    err.Span,
					Message: "\\" + cmd.Name + " needs " + strconv.Itoa(def.params) + " arguments",
				}
			}
			return err
		}
		expanded, eerr := p.expandTokens(raw, 1)
		if eerr != nil {
			return eerr
		}
		args[i] = expanded
	}

	substituted := substitutePlaceholders(def.body, args)
	expanded, err := p.expandTokens(substituted, 1)
	if err != nil {
		return err
	}
	p.toks.splice(expanded)
	return nil
}

// expandTokens rewrites a token list with every known macro invocation
// replaced by its expansion. depth counts nested expansions.
func (p *Parser) expandTokens(tokens []Token, depth int) ([]Token, *ParseError) {
	if depth > maxMacroDepth {
		span := Span{}
		if len(tokens) > 0 {
			span = tokens[0].Span
		}
		return nil, &ParseError{Code: ErrMacroRecursion, Span: span}
	}

	var out []Token
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Kind != TokenCommand {
			out = append(out, tok)
			continue
		}
		def, ok := p.macros[tok.Name]
		if !ok {
			out = append(out, tok)
			continue
		}

		args := make([][]Token, def.params)
		rest := tokens[i+1:]
		consumed := 0
		ok = true
		for a := 0; a < def.params; a++ {
			arg, n := sliceBraceGroup(rest[consumed:])
			if n == 0 {
				ok = false
				break
			}
			expanded, err := p.expandTokens(arg, depth+1)
			if err != nil {
				return nil, err
			}
			args[a] = expanded
			consumed += n
		}
		if !ok {
			return nil, &ParseError{
				Code:    ErrMissingArgument,
				Span:    tok.Span,
				Message: "\\" + tok.Name + " needs " + strconv.Itoa(def.params) + " arguments",
			}
		}

		body, err := p.expandTokens(substitutePlaceholders(def.body, args), depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, body...)
		i += consumed
	}
	return out, nil
}

// sliceBraceGroup reads one {..} group from the head of tokens, skipping
// leading whitespace. Returns the inner tokens and the total token count
// consumed; n == 0 means no group was found.
func sliceBraceGroup(tokens []Token) (inner []Token, n int) {
	i := 0
	for i < len(tokens) && tokens[i].Kind == TokenWhitespace {
		i++
	}
	if i >= len(tokens) || tokens[i].Kind != TokenLeftBrace {
		return nil, 0
	}
	depth := 1
	for j := i + 1; j < len(tokens); j++ {
		switch tokens[j].Kind {
		case TokenLeftBrace:
			depth++
		case TokenRightBrace:
			depth--
			if depth == 0 {
				return tokens[i+1 : j], j + 1
			}
		}
	}
	return nil, 0
}

// substitutePlaceholders replaces #1..#9 text tokens in body with the
// corresponding argument token lists.
func substitutePlaceholders(body []Token, args [][]Token) []Token {
	var out []Token
	for i := 0; i < len(body); i++ {
		tok := body[i]
		if idx, ok := placeholderIndex(body, i); ok && idx <= len(args) {
			out = append(out, args[idx-1]...)
			i++
			// A digit run like "12" after "#" is parameter 1 followed by
			// the literal digit 2.
			if rest := body[i].Literal[1:]; rest != "" {
				tail := body[i]
				tail.Span.Start++
				tail.Literal = rest
				out = append(out, tail)
			}
			continue
		}
		out = append(out, tok)
	}
	return out
}

// placeholderIndex recognizes a "#" text token followed by a digit token
// and returns the 1-based parameter index.
func placeholderIndex(body []Token, i int) (int, bool) {
	if body[i].Kind != TokenText || body[i].Literal != "#" {
		return 0, false
	}
	if i+1 >= len(body) || body[i+1].Kind != TokenText {
		return 0, false
	}
	lit := body[i+1].Literal
	if len(lit) == 0 || lit[0] < '1' || lit[0] > '9' {
		return 0, false
	}
	return int(lit[0] - '0'), true
}
