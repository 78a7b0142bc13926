package parser

// Parser consumes the token stream and builds the document tree. One
// Parser serves one Parse call; the macro table is rebuilt from scratch
// per invocation and never shared.
type Parser struct {
	src    string
	toks   *stream
	macros macroTable
}

// Parse parses a complete LaTeX math source string into a Document node.
// The returned tree is immutable; every node carries the span of the
// source region it was built from. A failed parse returns the first
// error the descent hit and no partial tree.
func Parse(input string) (*Node, error) {
	p := newParser(input)
	doc, err := p.parseDocument()
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func newParser(input string) *Parser {
	return &Parser{
		src:    input,
		toks:   newStream(Tokenize(input)),
		macros: macroTable{},
	}
}

func (p *Parser) isMacro(name string) bool {
	_, ok := p.macros[name]
	return ok
}

func (p *Parser) parseDocument() (*Node, *ParseError) {
	children, err := p.parseSequence(never)
	if err != nil {
		return nil, err
	}
	return &Node{
		Kind:     KindDocument,
		Span:     Span{Start: 0, End: len(p.src)},
		Children: children,
	}, nil
}

// stopFunc tells parseSequence where a sequence ends. The stop token is
// left unconsumed for the caller.
type stopFunc func(Token) bool

func never(Token) bool { return false }

func stopAtRightBrace(tok Token) bool {
	return tok.Kind == TokenRightBrace
}

func stopAtRightCommand(tok Token) bool {
	return tok.Kind == TokenCommand && tok.Name == "right"
}

func stopAtEndEnv(tok Token) bool {
	return tok.Kind == TokenEndEnv
}

func stopAtClosingBracket(tok Token) bool {
	return tok.Kind == TokenText && tok.Literal == "]"
}

func (p *Parser) parseSequence(stop stopFunc) ([]*Node, *ParseError) {
	var nodes []*Node
	for {
		tok := p.toks.peek()
		if tok.Kind == TokenWhitespace {
			p.toks.advance()
			continue
		}
		if tok.Kind == TokenCommand {
			if def, ok := p.macros[tok.Name]; ok {
				p.toks.advance()
				if err := p.expandMacro(tok, def); err != nil {
					return nil, err
				}
				continue
			}
		}
		if tok.Kind == TokenEOF || stop(tok) {
			return nodes, nil
		}
		node, err := p.parseScripted()
		if err != nil {
			return nil, err
		}
		if node != nil {
			nodes = append(nodes, node)
		}
	}
}

// parseScripted parses one atom and attaches any ^/_ postfix scripts.
// Chained markers of the same kind are right-associative; a subscript
// and a superscript combine on one base by nesting.
func (p *Parser) parseScripted() (*Node, *ParseError) {
	var base *Node
	if p.toks.check(TokenSuperscript) || p.toks.check(TokenSubscript) {
		// Script with nothing to attach to, as happens mid-typing.
		off := p.toks.currentOffset()
		base = &Node{Kind: KindGroup, Span: Span{Start: off, End: off}}
	} else {
		var err *ParseError
		base, err = p.parsePrimary()
		if err != nil {
			return nil, err
		}
	}

	for {
		kind := p.toks.peek().Kind
		if kind != TokenSuperscript && kind != TokenSubscript {
			return base, nil
		}
		marker := p.toks.advance()
		arg, err := p.parseScriptArg(kind)
		if err != nil {
			return nil, err
		}
		nodeKind := KindSuperscript
		if kind == TokenSubscript {
			nodeKind = KindSubscript
		}
		base = &Node{
			Kind:     nodeKind,
			Span:     base.Span.Merge(marker.Span).Merge(arg.Span),
			Children: []*Node{base, arg},
		}
	}
}

// parseScriptArg parses the argument of a ^ or _ marker. A following
// marker of the same kind binds into the argument (x^a^b is x^(a^b)); a
// marker of the other kind is left for the caller so both can share the
// base.
func (p *Parser) parseScriptArg(marker TokenKind) (*Node, *ParseError) {
	arg, err := p.parseRequiredArg("script argument")
	if err != nil {
		return nil, err
	}
	if p.toks.peek().Kind != marker {
		return arg, nil
	}
	mark := p.toks.advance()
	inner, err := p.parseScriptArg(marker)
	if err != nil {
		return nil, err
	}
	kind := KindSuperscript
	if marker == TokenSubscript {
		kind = KindSubscript
	}
	return &Node{
		Kind:     kind,
		Span:     arg.Span.Merge(mark.Span).Merge(inner.Span),
		Children: []*Node{arg, inner},
	}, nil
}

func (p *Parser) parsePrimary() (*Node, *ParseError) {
	tok := p.toks.peek()
	switch tok.Kind {
	case TokenText:
		p.toks.advance()
		return &Node{Kind: KindText, Span: tok.Span, Literal: tok.Literal}, nil

	case TokenCommand:
		return p.parseCommand()

	case TokenLeftBrace:
		return p.parseGroup()

	case TokenRightBrace:
		return nil, &ParseError{Code: ErrUnmatchedBrace, Span: tok.Span, Message: "} without matching {"}

	case TokenBeginEnv:
		return p.parseEnvironment()

	case TokenEndEnv:
		return nil, &ParseError{
			Code:    ErrUnmatchedEnvironment,
			Span:    tok.Span,
			Message: "\\end{" + tok.Name + "} without matching \\begin",
		}

	case TokenNewLine:
		p.toks.advance()
		return &Node{Kind: KindNewLine, Span: tok.Span}, nil
	}

	return nil, &ParseError{Code: ErrExpectedToken, Span: tok.Span, Message: "unexpected end of input"}
}

// parseGroup parses a brace group into a Group node spanning the braces.
func (p *Parser) parseGroup() (*Node, *ParseError) {
	open, err := p.toks.expect(TokenLeftBrace, "group")
	if err != nil {
		return nil, err
	}
	children, perr := p.parseSequence(stopAtRightBrace)
	if perr != nil {
		return nil, perr
	}
	if p.toks.atEOF() {
		return nil, &ParseError{Code: ErrUnmatchedBrace, Span: open.Span, Message: "unclosed group"}
	}
	p.toks.advance()
	return &Node{
		Kind:     KindGroup,
		Span:     p.toks.spanFrom(open.Span.Start),
		Children: children,
	}, nil
}

// parseRequiredArg parses one brace-delimited argument, unwrapping a
// single-child group to its content. A bare atom also serves as an
// argument, as in \frac\alpha\beta.
func (p *Parser) parseRequiredArg(what string) (*Node, *ParseError) {
	p.toks.skipWhitespace()
	if err := p.expandLeadingMacros(); err != nil {
		return nil, err
	}
	tok := p.toks.peek()
	switch tok.Kind {
	case TokenLeftBrace:
		group, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		if len(group.Children) == 1 {
			return group.Children[0], nil
		}
		return group, nil
	case TokenEOF, TokenRightBrace:
		return nil, &ParseError{Code: ErrMissingArgument, Span: tok.Span, Message: what}
	}
	return p.parsePrimary()
}

// parseOptionalArg parses a [..] argument if present.
func (p *Parser) parseOptionalArg() (*Node, *ParseError) {
	p.toks.skipWhitespace()
	tok := p.toks.peek()
	if tok.Kind != TokenText || tok.Literal != "[" {
		return nil, nil
	}
	p.toks.advance()
	children, err := p.parseSequence(stopAtClosingBracket)
	if err != nil {
		return nil, err
	}
	if p.toks.atEOF() {
		return nil, &ParseError{Code: ErrMissingArgument, Span: tok.Span, Message: "unclosed optional argument"}
	}
	p.toks.advance()
	node := &Node{
		Kind:     KindGroup,
		Span:     p.toks.spanFrom(tok.Span.Start),
		Children: children,
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return node, nil
}

func (p *Parser) expandLeadingMacros() *ParseError {
	for {
		tok := p.toks.peek()
		if tok.Kind != TokenCommand {
			return nil
		}
		def, ok := p.macros[tok.Name]
		if !ok {
			return nil
		}
		p.toks.advance()
		if err := p.expandMacro(tok, def); err != nil {
			return err
		}
		p.toks.skipWhitespace()
	}
}

// groupRawText consumes a {..} group and returns the covered source text
// verbatim, for arguments that are never math (\text, \label, colors).
func (p *Parser) groupRawText(what string) (string, Span, *ParseError) {
	p.toks.skipWhitespace()
	start := p.toks.currentOffset()
	tokens, err := p.readBraceGroupTokens()
	if err != nil {
		return "", Span{}, err
	}
	span := p.toks.spanFrom(start)
	if len(tokens) == 0 {
		return "", span, nil
	}
	return p.src[tokens[0].Span.Start:tokens[len(tokens)-1].Span.End], span, nil
}

func (p *Parser) parseCommand() (*Node, *ParseError) {
	cmd := p.toks.advance()
	name := cmd.Name
	start := cmd.Span.Start

	if def, ok := p.macros[name]; ok {
		if err := p.expandMacro(cmd, def); err != nil {
			return nil, err
		}
		p.toks.skipWhitespace()
		if p.toks.atEOF() || p.toks.check(TokenRightBrace) {
			// The expansion produced nothing at the end of a group.
			return &Node{Kind: KindGroup, Span: cmd.Span}, nil
		}
		return p.parseScripted()
	}

	switch name {
	case "newcommand", "renewcommand", "providecommand":
		return p.parseNewCommand(cmd)

	case "frac", "dfrac", "tfrac", "cfrac":
		return p.parseFixedArity(cmd, KindFraction, 2)

	case "binom", "dbinom", "tbinom":
		return p.parseFixedArity(cmd, KindBinomial, 2)

	case "sqrt":
		index, err := p.parseOptionalArg()
		if err != nil {
			return nil, err
		}
		radicand, err := p.parseRequiredArg("\\sqrt argument")
		if err != nil {
			return nil, err
		}
		node := &Node{Kind: KindRoot, Span: p.toks.spanFrom(start), Literal: name}
		node.AddChild(index)
		node.AddChild(radicand)
		return node, nil

	case "left":
		return p.parseLeftRight(cmd)

	case "right":
		return nil, &ParseError{
			Code:    ErrUnmatchedDelimiter,
			Span:    cmd.Span,
			Message: "\\right without matching \\left",
		}

	case "overset", "underset", "stackrel":
		return p.parseFixedArity(cmd, KindStack, 2)

	case "sideset":
		return p.parseFixedArity(cmd, KindSideSet, 3)

	case "tensor":
		return p.parseFixedArity(cmd, KindTensor, 2)

	case "indices":
		return p.parseFixedArity(cmd, KindTensor, 1)

	case "boxed", "fbox":
		return p.parseFixedArity(cmd, KindBoxed, 1)

	case "phantom":
		return p.parseFixedArity(cmd, KindPhantom, 1)

	case "vphantom":
		return p.parseFixedArity(cmd, KindVPhantom, 1)

	case "hphantom":
		return p.parseFixedArity(cmd, KindHPhantom, 1)

	case "smash":
		return p.parseFixedArity(cmd, KindSmash, 1)

	case "substack":
		return p.parseSubstack(cmd)

	case "not":
		p.toks.skipWhitespace()
		arg, err := p.parseScripted()
		if err != nil {
			return nil, err
		}
		return &Node{
			Kind:     KindNegation,
			Span:     p.toks.spanFrom(start),
			Children: []*Node{arg},
		}, nil

	case "tag":
		starred := false
		if p.toks.check(TokenText) && p.toks.peek().Literal == "*" {
			p.toks.advance()
			starred = true
		}
		arg, err := p.parseRequiredArg("\\tag argument")
		if err != nil {
			return nil, err
		}
		lit := ""
		if starred {
			lit = "*"
		}
		return &Node{
			Kind:     KindTag,
			Span:     p.toks.spanFrom(start),
			Literal:  lit,
			Children: []*Node{arg},
		}, nil

	case "label", "ref", "eqref":
		text, _, err := p.groupRawText("\\" + name + " argument")
		if err != nil {
			return nil, err
		}
		kind := KindLabel
		switch name {
		case "ref":
			kind = KindRef
		case "eqref":
			kind = KindEqRef
		}
		return &Node{Kind: kind, Span: p.toks.spanFrom(start), Literal: text}, nil

	case "operatorname":
		text, _, err := p.groupRawText("\\operatorname argument")
		if err != nil {
			return nil, err
		}
		return &Node{Kind: KindOperator, Span: p.toks.spanFrom(start), Literal: text}, nil

	case "textcolor":
		color, _, err := p.groupRawText("color name")
		if err != nil {
			return nil, err
		}
		content, cerr := p.parseRequiredArg("\\textcolor content")
		if cerr != nil {
			return nil, cerr
		}
		return &Node{
			Kind:     KindColor,
			Span:     p.toks.spanFrom(start),
			Literal:  color,
			Children: []*Node{content},
		}, nil

	case "color":
		color, _, err := p.groupRawText("color name")
		if err != nil {
			return nil, err
		}
		return &Node{Kind: KindColor, Span: p.toks.spanFrom(start), Literal: color}, nil

	case "hspace":
		dim, _, err := p.groupRawText("\\hspace length")
		if err != nil {
			return nil, err
		}
		return &Node{Kind: KindHSpace, Span: p.toks.spanFrom(start), Literal: dim}, nil

	case "ce":
		return p.parseChem(cmd)
	}

	if glyph, ok := bigOperators[name]; ok {
		return &Node{Kind: KindBigOperator, Span: cmd.Span, Literal: glyph}, nil
	}

	if operatorNames[name] {
		return &Node{Kind: KindOperator, Span: cmd.Span, Literal: name}, nil
	}

	if accentCommands[name] {
		arg, err := p.parseRequiredArg("\\" + name + " argument")
		if err != nil {
			return nil, err
		}
		return &Node{
			Kind:     KindAccent,
			Span:     p.toks.spanFrom(start),
			Literal:  name,
			Children: []*Node{arg},
		}, nil
	}

	if styleCommands[name] {
		arg, err := p.parseRequiredArg("\\" + name + " argument")
		if err != nil {
			return nil, err
		}
		return &Node{
			Kind:     KindStyle,
			Span:     p.toks.spanFrom(start),
			Literal:  name,
			Children: []*Node{arg},
		}, nil
	}

	if textCommands[name] {
		text, _, err := p.groupRawText("\\" + name + " argument")
		if err != nil {
			return nil, err
		}
		return &Node{Kind: KindTextMode, Span: p.toks.spanFrom(start), Literal: text}, nil
	}

	if mathStyleCommands[name] {
		return &Node{Kind: KindMathStyle, Span: cmd.Span, Literal: name}, nil
	}

	if glyph, ok := extensibleArrowCommands[name]; ok {
		below, err := p.parseOptionalArg()
		if err != nil {
			return nil, err
		}
		above, aerr := p.parseRequiredArg("\\" + name + " label")
		if aerr != nil {
			return nil, aerr
		}
		node := &Node{Kind: KindExtensibleArrow, Span: p.toks.spanFrom(start), Literal: glyph}
		node.AddChild(above)
		node.AddChild(below)
		return node, nil
	}

	if scale, ok := sizedDelimiterScales[name]; ok {
		p.toks.skipWhitespace()
		delim, span, err := p.resolveDelimiter()
		if err != nil {
			return nil, err
		}
		return &Node{
			Kind:    KindSizedDelimiter,
			Span:    cmd.Span.Merge(span),
			Literal: name,
			Left:    delim,
			Scale:   scale,
		}, nil
	}

	if em, ok := spaceCommands[name]; ok {
		return &Node{Kind: KindSpace, Span: cmd.Span, Literal: name, Scale: em}, nil
	}

	if glyph, ok := symbolTable[name]; ok {
		return &Node{Kind: KindSymbol, Span: cmd.Span, Literal: glyph}, nil
	}

	// Unknown command: kept as an opaque leaf. Covers macros used before
	// their definition, which resolve to nothing by design.
	return &Node{Kind: KindCommand, Span: cmd.Span, Literal: name}, nil
}

// parseFixedArity parses n brace-delimited arguments after cmd.
func (p *Parser) parseFixedArity(cmd Token, kind NodeKind, n int) (*Node, *ParseError) {
	node := &Node{Kind: kind, Literal: cmd.Name}
	for i := 0; i < n; i++ {
		arg, err := p.parseRequiredArg("\\" + cmd.Name + " argument")
		if err != nil {
			if err.Code == ErrExpectedToken {
				err = &ParseError{Code: ErrMissingArgument, Span: err.Span, Message: "\\" + cmd.Name + " argument"}
			}
			return nil, err
		}
		node.AddChild(arg)
	}
	node.Span = p.toks.spanFrom(cmd.Span.Start)
	return node, nil
}

// parseLeftRight parses \left d ... \right d with a matching-pair
// discipline: the sequence between the delimiters must balance its own
// \left/\right pairs, and hitting EOF first is an error on the opener.
func (p *Parser) parseLeftRight(left Token) (*Node, *ParseError) {
	p.toks.skipWhitespace()
	ldelim, _, err := p.resolveDelimiter()
	if err != nil {
		return nil, err
	}
	children, serr := p.parseSequence(stopAtRightCommand)
	if serr != nil {
		return nil, serr
	}
	if p.toks.atEOF() {
		return nil, &ParseError{
			Code:    ErrUnmatchedDelimiter,
			Span:    left.Span,
			Message: "\\left without matching \\right",
		}
	}
	p.toks.advance() // \right
	p.toks.skipWhitespace()
	rdelim, _, err := p.resolveDelimiter()
	if err != nil {
		return nil, err
	}
	return &Node{
		Kind:     KindDelimited,
		Span:     p.toks.spanFrom(left.Span.Start),
		Left:     ldelim,
		Right:    rdelim,
		Children: children,
	}, nil
}

// resolveDelimiter reads one delimiter token after \left, \right or a
// \big-class command. A "." yields the empty string for an absent side.
func (p *Parser) resolveDelimiter() (string, Span, *ParseError) {
	tok := p.toks.peek()
	switch tok.Kind {
	case TokenText:
		if len([]rune(tok.Literal)) == 1 {
			p.toks.advance()
			if tok.Literal == "." {
				return "", tok.Span, nil
			}
			return tok.Literal, tok.Span, nil
		}
	case TokenCommand:
		if delim, ok := delimiterCommands[tok.Name]; ok {
			p.toks.advance()
			return delim, tok.Span, nil
		}
	case TokenLeftBrace:
		p.toks.advance()
		return "{", tok.Span, nil
	case TokenRightBrace:
		p.toks.advance()
		return "}", tok.Span, nil
	}
	return "", Span{}, &ParseError{
		Code:    ErrUnmatchedDelimiter,
		Span:    tok.Span,
		Message: "expected delimiter",
	}
}

func (p *Parser) parseSubstack(cmd Token) (*Node, *ParseError) {
	p.toks.skipWhitespace()
	open, err := p.toks.expect(TokenLeftBrace, "\\substack rows")
	if err != nil {
		return nil, err
	}
	rows, perr := p.parseRows(stopAtRightBrace, func() *ParseError {
		return &ParseError{Code: ErrUnmatchedBrace, Span: open.Span, Message: "unclosed \\substack"}
	})
	if perr != nil {
		return nil, perr
	}
	p.toks.advance() // }
	return &Node{
		Kind:     KindSubstack,
		Span:     p.toks.spanFrom(cmd.Span.Start),
		Children: rows,
	}, nil
}

func (p *Parser) parseEnvironment() (*Node, *ParseError) {
	begin := p.toks.advance()
	name := begin.Name

	kind := KindMatrix
	colSpec := ""
	left, right := "", ""

	if d, ok := matrixEnvironments[name]; ok {
		left, right = d[0], d[1]
	} else {
		switch name {
		case "array", "darray", "subarray":
			kind = KindArray
		case "tabular":
			kind = KindTabular
		case "cases", "dcases", "rcases":
			kind = KindCases
		case "aligned", "align", "align*", "alignat", "alignat*",
			"alignedat", "gather", "gather*", "gathered",
			"equation", "equation*":
			kind = KindAligned
		case "split":
			kind = KindSplit
		case "multline", "multline*":
			kind = KindMultline
		case "eqnarray", "eqnarray*":
			kind = KindEqnarray
		case "subequations":
			return p.parseSubequations(begin)
		default:
			// Unknown environments still parse row-wise so partially
			// typed documents keep a tree.
		}
	}

	if kind == KindArray || kind == KindTabular || name == "alignat" || name == "alignat*" || name == "alignedat" {
		p.toks.skipWhitespace()
		if p.toks.check(TokenLeftBrace) {
			spec, _, err := p.groupRawText("column specification")
			if err != nil {
				return nil, err
			}
			colSpec = spec
		}
	}

	rows, err := p.parseRows(
		func(tok Token) bool { return tok.Kind == TokenEndEnv },
		func() *ParseError {
			return &ParseError{
				Code:    ErrUnmatchedEnvironment,
				Span:    begin.Span,
				Message: "\\begin{" + name + "} is never closed",
			}
		})
	if err != nil {
		return nil, err
	}

	end := p.toks.advance()
	if end.Name != name {
		return nil, &ParseError{
			Code:    ErrUnmatchedEnvironment,
			Span:    end.Span,
			Message: "\\end{" + end.Name + "} closes \\begin{" + name + "}",
		}
	}

	return &Node{
		Kind:     kind,
		Span:     p.toks.spanFrom(begin.Span.Start),
		Literal:  name,
		Left:     left,
		Right:    right,
		ColSpec:  colSpec,
		Children: rows,
	}, nil
}

func (p *Parser) parseSubequations(begin Token) (*Node, *ParseError) {
	children, err := p.parseSequence(stopAtEndEnv)
	if err != nil {
		return nil, err
	}
	if p.toks.atEOF() {
		return nil, &ParseError{
			Code:    ErrUnmatchedEnvironment,
			Span:    begin.Span,
			Message: "\\begin{subequations} is never closed",
		}
	}
	end := p.toks.advance()
	if end.Name != begin.Name {
		return nil, &ParseError{
			Code:    ErrUnmatchedEnvironment,
			Span:    end.Span,
			Message: "\\end{" + end.Name + "} closes \\begin{" + begin.Name + "}",
		}
	}
	return &Node{
		Kind:     KindSubequations,
		Span:     p.toks.spanFrom(begin.Span.Start),
		Literal:  begin.Name,
		Children: children,
	}, nil
}

// parseRows parses &-separated cells and \\-separated rows until the stop
// token, which is left unconsumed. A trailing \\ before the stop does not
// open an empty row.
func (p *Parser) parseRows(stop stopFunc, unterminated func() *ParseError) ([]*Node, *ParseError) {
	var rows []*Node
	var cells []*Node
	var cell []*Node
	cellStart := p.toks.currentOffset()

	flushCell := func() {
		span := Span{Start: cellStart, End: cellStart}
		if len(cell) > 0 {
			span = cell[0].Span
			for _, n := range cell[1:] {
				span = span.Merge(n.Span)
			}
		}
		cells = append(cells, &Node{Kind: KindGroup, Span: span, Children: cell})
		cell = nil
	}
	flushRow := func() {
		flushCell()
		span := cells[0].Span
		for _, c := range cells[1:] {
			span = span.Merge(c.Span)
		}
		rows = append(rows, &Node{Kind: KindRow, Span: span, Children: cells})
		cells = nil
	}
	rowHasContent := func() bool {
		return len(cell) > 0 || len(cells) > 0
	}

	for {
		tok := p.toks.peek()
		switch {
		case tok.Kind == TokenWhitespace:
			p.toks.advance()
			continue

		case tok.Kind == TokenCommand && p.isMacro(tok.Name):
			def := p.macros[tok.Name]
			p.toks.advance()
			if err := p.expandMacro(tok, def); err != nil {
				return nil, err
			}
			continue

		case tok.Kind == TokenEOF:
			return nil, unterminated()

		case stop(tok):
			if rowHasContent() {
				flushRow()
			}
			return rows, nil

		case tok.Kind == TokenText && tok.Literal == "&":
			p.toks.advance()
			flushCell()
			cellStart = p.toks.currentOffset()

		case tok.Kind == TokenNewLine:
			p.toks.advance()
			flushRow()
			cellStart = p.toks.currentOffset()

		default:
			node, err := p.parseScripted()
			if err != nil {
				return nil, err
			}
			if len(cell) == 0 {
				cellStart = node.Span.Start
			}
			cell = append(cell, node)
		}
	}
}
