package parser

// The \ce{...} sub-grammar reuses the token stream but applies chemistry
// attachment rules: element symbols render upright, trailing digit runs
// are subscripts, trailing charges are superscripts, and ASCII reaction
// arrows collapse into their Unicode glyphs.

func (p *Parser) parseChem(cmd Token) (*Node, *ParseError) {
	p.toks.skipWhitespace()
	open, err := p.toks.expect(TokenLeftBrace, "\\ce formula")
	if err != nil {
		return nil, err
	}
	children, perr := p.parseChemSequence(open)
	if perr != nil {
		return nil, perr
	}
	p.toks.advance() // closing brace
	return &Node{
		Kind:     KindGroup,
		Span:     p.toks.spanFrom(cmd.Span.Start),
		Literal:  "ce",
		Children: children,
	}, nil
}

func (p *Parser) parseChemSequence(open Token) ([]*Node, *ParseError) {
	var nodes []*Node

	last := func() *Node {
		if len(nodes) == 0 {
			return nil
		}
		return nodes[len(nodes)-1]
	}

	// attachable reports whether tok continues the formula atom that the
	// latest node ends, with no whitespace in between.
	attachable := func(tok Token) bool {
		prev := last()
		if prev == nil || prev.Span.End != tok.Span.Start {
			return false
		}
		switch prev.Kind {
		case KindTextMode, KindGroup, KindText, KindSubscript, KindSuperscript:
			return true
		}
		return false
	}

	for {
		tok := p.toks.peek()
		switch tok.Kind {
		case TokenEOF:
			return nil, &ParseError{Code: ErrUnmatchedBrace, Span: open.Span, Message: "unclosed \\ce"}

		case TokenRightBrace:
			return nodes, nil

		case TokenWhitespace:
			p.toks.advance()
			nodes = append(nodes, &Node{Kind: KindSpace, Span: tok.Span, Scale: 0.25})

		case TokenNewLine:
			p.toks.advance()
			nodes = append(nodes, &Node{Kind: KindNewLine, Span: tok.Span})

		case TokenLeftBrace:
			group, err := p.parseGroup()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, group)

		case TokenCommand:
			// Explicit math sub-expressions stay in the general grammar.
			node, err := p.parseCommand()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)

		case TokenSuperscript:
			p.toks.advance()
			arg, ok := p.chemScriptText(tok)
			if !ok && p.toks.check(TokenLeftBrace) {
				var err *ParseError
				arg, err = p.parseRequiredArg("superscript")
				if err != nil {
					return nil, err
				}
				ok = true
			}
			if ok {
				base := last()
				if base == nil {
					base = &Node{Kind: KindGroup, Span: Span{Start: tok.Span.Start, End: tok.Span.Start}}
					nodes = append(nodes, base)
				}
				nodes[len(nodes)-1] = &Node{
					Kind:     KindSuperscript,
					Span:     base.Span.Merge(arg.Span),
					Children: []*Node{base, arg},
				}
				continue
			}
			// Standalone ^ is the evolved-gas marker; it hugs the
			// formula, so a preceding space is dropped.
			if prev := last(); prev != nil && prev.Kind == KindSpace {
				nodes = nodes[:len(nodes)-1]
			}
			nodes = append(nodes, &Node{Kind: KindSymbol, Span: tok.Span, Literal: "↑"})

		case TokenSubscript:
			p.toks.advance()
			arg, ok := p.chemScriptText(tok)
			if !ok {
				var err *ParseError
				arg, err = p.parseRequiredArg("subscript")
				if err != nil {
					return nil, err
				}
			}
			base := last()
			if base == nil {
				base = &Node{Kind: KindGroup, Span: Span{Start: tok.Span.Start, End: tok.Span.Start}}
				nodes = append(nodes, base)
			}
			nodes[len(nodes)-1] = &Node{
				Kind:     KindSubscript,
				Span:     base.Span.Merge(arg.Span),
				Children: []*Node{base, arg},
			}

		case TokenText:
			if arrow, n := chemArrowAt(p.toks); n > 0 {
				span := tok.Span
				for i := 1; i < n; i++ {
					span = span.Merge(p.toks.peekN(i).Span)
				}
				for i := 0; i < n; i++ {
					p.toks.advance()
				}
				nodes = append(nodes, &Node{Kind: KindSymbol, Span: span, Literal: arrow})
				continue
			}

			lit := tok.Literal
			switch {
			case lit == "*":
				p.toks.advance()
				nodes = append(nodes, &Node{Kind: KindSymbol, Span: tok.Span, Literal: "⋅"})

			case lit == "v" && !attachable(tok) && p.chemBoundaryAfter(1):
				// Precipitate marker, like ^ but downward.
				p.toks.advance()
				if prev := last(); prev != nil && prev.Kind == KindSpace {
					nodes = nodes[:len(nodes)-1]
				}
				nodes = append(nodes, &Node{Kind: KindSymbol, Span: tok.Span, Literal: "↓"})

			case isDigit(lit[0]):
				p.toks.advance()
				if !attachable(tok) {
					// Stoichiometric coefficient.
					nodes = append(nodes, &Node{Kind: KindText, Span: tok.Span, Literal: lit})
					continue
				}
				base := last()
				if sign := p.toks.peek(); sign.Kind == TokenText &&
					(sign.Literal == "+" || sign.Literal == "-") &&
					sign.Span.Start == tok.Span.End && p.chemBoundaryAfter(1) {
					// Trailing charge such as Fe3+.
					p.toks.advance()
					charge := &Node{
						Kind:    KindText,
						Span:    tok.Span.Merge(sign.Span),
						Literal: lit + sign.Literal,
					}
					nodes[len(nodes)-1] = &Node{
						Kind:     KindSuperscript,
						Span:     base.Span.Merge(charge.Span),
						Children: []*Node{base, charge},
					}
					continue
				}
				count := &Node{Kind: KindText, Span: tok.Span, Literal: lit}
				nodes[len(nodes)-1] = &Node{
					Kind:     KindSubscript,
					Span:     base.Span.Merge(count.Span),
					Children: []*Node{base, count},
				}

			case (lit == "+" || lit == "-") && attachable(tok) && p.chemBoundaryAfter(1):
				// Bare charge such as Na+.
				p.toks.advance()
				base := last()
				charge := &Node{Kind: KindText, Span: tok.Span, Literal: lit}
				nodes[len(nodes)-1] = &Node{
					Kind:     KindSuperscript,
					Span:     base.Span.Merge(charge.Span),
					Children: []*Node{base, charge},
				}

			case isLetter(lit[0]):
				p.toks.advance()
				nodes = append(nodes, chemSplitElements(tok)...)

			default:
				p.toks.advance()
				nodes = append(nodes, &Node{Kind: KindText, Span: tok.Span, Literal: lit})
			}

		default:
			node, err := p.parseScripted()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		}
	}
}

// chemScriptText reads an explicit charge after ^ or _, written without
// braces: adjacent digit and sign tokens, as in SO4^2-.
func (p *Parser) chemScriptText(marker Token) (*Node, bool) {
	tok := p.toks.peek()
	if tok.Kind != TokenText || tok.Span.Start != marker.Span.End {
		return nil, false
	}
	if !isDigit(tok.Literal[0]) && tok.Literal != "+" && tok.Literal != "-" {
		return nil, false
	}
	p.toks.advance()
	span := tok.Span
	text := tok.Literal
	for {
		next := p.toks.peek()
		if next.Kind != TokenText || next.Span.Start != span.End {
			break
		}
		if !isDigit(next.Literal[0]) && next.Literal != "+" && next.Literal != "-" {
			break
		}
		p.toks.advance()
		span = span.Merge(next.Span)
		text += next.Literal
	}
	return &Node{Kind: KindText, Span: span, Literal: text}, true
}

// chemBoundaryAfter reports whether the token n positions ahead ends the
// current formula: whitespace, a newline, the closing brace or an arrow.
func (p *Parser) chemBoundaryAfter(n int) bool {
	tok := p.toks.peekN(n)
	switch tok.Kind {
	case TokenWhitespace, TokenNewLine, TokenRightBrace, TokenEOF:
		return true
	}
	return false
}

// chemArrowAt matches an ASCII reaction arrow at the stream cursor and
// returns its glyph and token count.
func chemArrowAt(s *stream) (string, int) {
	lit := func(n int) string {
		tok := s.peekN(n)
		if tok.Kind != TokenText {
			return ""
		}
		// Arrow pieces must be adjacent in the source.
		if n > 0 && tok.Span.Start != s.peekN(n-1).Span.End {
			return ""
		}
		return tok.Literal
	}
	switch lit(0) {
	case "-":
		if lit(1) == ">" {
			return "→", 2
		}
	case "=":
		if lit(1) == ">" {
			return "⇒", 2
		}
	case "<":
		if lit(1) == "-" {
			if lit(2) == ">" {
				return "↔", 3
			}
			return "←", 2
		}
		if lit(1) == "=" && lit(2) == ">" {
			return "⇔", 3
		}
	}
	return "", 0
}

// chemSplitElements breaks a letter run into element symbols, matching
// two-letter symbols greedily. Letters that are not element symbols stay
// italic math text.
func chemSplitElements(tok Token) []*Node {
	lit := tok.Literal
	var out []*Node
	for i := 0; i < len(lit); {
		if lit[i] >= 128 {
			// Non-ASCII letters are never element symbols.
			out = append(out, &Node{
				Kind:    KindText,
				Span:    Span{Start: tok.Span.Start + i, End: tok.Span.End},
				Literal: lit[i:],
			})
			return out
		}
		if i+2 <= len(lit) && chemElements[lit[i:i+2]] {
			out = append(out, &Node{
				Kind:    KindTextMode,
				Span:    Span{Start: tok.Span.Start + i, End: tok.Span.Start + i + 2},
				Literal: lit[i : i+2],
			})
			i += 2
			continue
		}
		if chemElements[lit[i:i+1]] {
			out = append(out, &Node{
				Kind:    KindTextMode,
				Span:    Span{Start: tok.Span.Start + i, End: tok.Span.Start + i + 1},
				Literal: lit[i : i+1],
			})
			i++
			continue
		}
		out = append(out, &Node{
			Kind:    KindText,
			Span:    Span{Start: tok.Span.Start + i, End: tok.Span.Start + i + 1},
			Literal: lit[i : i+1],
		})
		i++
	}
	return out
}
