package parser

import "testing"

// sameShape compares kinds, literals and child counts, ignoring spans.
func sameShape(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Literal != b.Literal || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !sameShape(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

func mustParse(t *testing.T, input string) *Node {
	t.Helper()
	doc, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q): %v", input, err)
	}
	return doc
}

func onlyChild(t *testing.T, input string) *Node {
	t.Helper()
	doc := mustParse(t, input)
	if len(doc.Children) != 1 {
		t.Fatalf("Parse(%q): %d top-level nodes, want 1:\n%s", input, len(doc.Children), doc)
	}
	return doc.Children[0]
}

func TestParseEmpty(t *testing.T) {
	doc := mustParse(t, "")
	if doc.Kind != KindDocument || len(doc.Children) != 0 {
		t.Errorf("got %v with %d children", doc.Kind, len(doc.Children))
	}
	if doc.Span != (Span{0, 0}) {
		t.Errorf("span %v, want {0 0}", doc.Span)
	}
}

func TestParseSuperscript(t *testing.T) {
	n := onlyChild(t, "x^2")
	if n.Kind != KindSuperscript {
		t.Fatalf("got %v, want Superscript", n.Kind)
	}
	if n.Children[0].Literal != "x" || n.Children[1].Literal != "2" {
		t.Errorf("children %q, %q", n.Children[0].Literal, n.Children[1].Literal)
	}
	if n.Span != (Span{0, 3}) {
		t.Errorf("span %v, want {0 3}", n.Span)
	}
}

func TestParseFraction(t *testing.T) {
	n := onlyChild(t, `\frac{1}{2}`)
	if n.Kind != KindFraction {
		t.Fatalf("got %v, want Fraction", n.Kind)
	}
	if len(n.Children) != 2 {
		t.Fatalf("%d children, want 2", len(n.Children))
	}
	// Single-child brace groups unwrap to their content.
	if n.Children[0].Kind != KindText || n.Children[0].Literal != "1" {
		t.Errorf("numerator %v %q", n.Children[0].Kind, n.Children[0].Literal)
	}
	if n.Children[1].Kind != KindText || n.Children[1].Literal != "2" {
		t.Errorf("denominator %v %q", n.Children[1].Kind, n.Children[1].Literal)
	}
	if n.Span != (Span{0, 11}) {
		t.Errorf("span %v, want {0 11}", n.Span)
	}
}

func TestParseBareArguments(t *testing.T) {
	n := onlyChild(t, `\frac\alpha\beta`)
	if n.Kind != KindFraction {
		t.Fatalf("got %v", n.Kind)
	}
	if n.Children[0].Kind != KindSymbol || n.Children[0].Literal != "α" {
		t.Errorf("numerator %v %q", n.Children[0].Kind, n.Children[0].Literal)
	}
}

func TestScriptChains(t *testing.T) {
	t.Run("same marker is right-associative", func(t *testing.T) {
		n := onlyChild(t, "x^a^b")
		if n.Kind != KindSuperscript {
			t.Fatalf("got %v", n.Kind)
		}
		if n.Children[0].Literal != "x" {
			t.Errorf("base %q", n.Children[0].Literal)
		}
		inner := n.Children[1]
		if inner.Kind != KindSuperscript || inner.Children[0].Literal != "a" || inner.Children[1].Literal != "b" {
			t.Errorf("inner:\n%s", inner)
		}
	})

	t.Run("sub then sup nest on one base", func(t *testing.T) {
		n := onlyChild(t, "x_i^2")
		if n.Kind != KindSuperscript {
			t.Fatalf("got %v", n.Kind)
		}
		sub := n.Children[0]
		if sub.Kind != KindSubscript || sub.Children[0].Literal != "x" || sub.Children[1].Literal != "i" {
			t.Errorf("base:\n%s", sub)
		}
		if n.Children[1].Literal != "2" {
			t.Errorf("exponent %q", n.Children[1].Literal)
		}
	})

	t.Run("script without base gets empty group", func(t *testing.T) {
		n := onlyChild(t, "^2")
		if n.Kind != KindSuperscript {
			t.Fatalf("got %v", n.Kind)
		}
		base := n.Children[0]
		if base.Kind != KindGroup || len(base.Children) != 0 || base.Span.Len() != 0 {
			t.Errorf("base:\n%s", base.StringWithSpans())
		}
	})

	t.Run("group subscript keeps its children", func(t *testing.T) {
		n := onlyChild(t, "x_{i+1}")
		arg := n.Children[1]
		if arg.Kind != KindGroup || len(arg.Children) != 3 {
			t.Errorf("argument:\n%s", arg)
		}
	})

	t.Run("scripts bind to whole text run", func(t *testing.T) {
		n := onlyChild(t, "abc^2")
		if n.Children[0].Literal != "abc" {
			t.Errorf("base %q", n.Children[0].Literal)
		}
	})
}

func TestParseSqrt(t *testing.T) {
	n := onlyChild(t, `\sqrt{x}`)
	if n.Kind != KindRoot || len(n.Children) != 1 {
		t.Fatalf("got:\n%s", n)
	}

	n = onlyChild(t, `\sqrt[3]{x}`)
	if n.Kind != KindRoot || len(n.Children) != 2 {
		t.Fatalf("got:\n%s", n)
	}
	if n.Children[0].Literal != "3" || n.Children[1].Literal != "x" {
		t.Errorf("children %q, %q", n.Children[0].Literal, n.Children[1].Literal)
	}
}

func TestParseSymbols(t *testing.T) {
	tests := []struct {
		input   string
		kind    NodeKind
		literal string
	}{
		{`\alpha`, KindSymbol, "α"},
		{`\to`, KindSymbol, "→"},
		{`\infty`, KindSymbol, "∞"},
		{`\sum`, KindBigOperator, "∑"},
		{`\int`, KindBigOperator, "∫"},
		{`\sin`, KindOperator, "sin"},
		{`\lim`, KindOperator, "lim"},
		{`\foobar`, KindCommand, "foobar"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n := onlyChild(t, tt.input)
			if n.Kind != tt.kind || n.Literal != tt.literal {
				t.Errorf("got %v %q, want %v %q", n.Kind, n.Literal, tt.kind, tt.literal)
			}
		})
	}
}

func TestParseStylesAndText(t *testing.T) {
	n := onlyChild(t, `\mathbf{x}`)
	if n.Kind != KindStyle || n.Literal != "mathbf" || len(n.Children) != 1 {
		t.Fatalf("got:\n%s", n)
	}

	n = onlyChild(t, `\text{hi there}`)
	if n.Kind != KindTextMode || n.Literal != "hi there" {
		t.Errorf("got %v %q", n.Kind, n.Literal)
	}

	n = onlyChild(t, `\operatorname{argmax}`)
	if n.Kind != KindOperator || n.Literal != "argmax" {
		t.Errorf("got %v %q", n.Kind, n.Literal)
	}
}

func TestParseAccent(t *testing.T) {
	n := onlyChild(t, `\hat{x}`)
	if n.Kind != KindAccent || n.Literal != "hat" {
		t.Fatalf("got %v %q", n.Kind, n.Literal)
	}
	if n.Children[0].Literal != "x" {
		t.Errorf("argument %q", n.Children[0].Literal)
	}
}

func TestParseDelimited(t *testing.T) {
	n := onlyChild(t, `\left( \frac{a}{b} \right)`)
	if n.Kind != KindDelimited || n.Left != "(" || n.Right != ")" {
		t.Fatalf("got %v left=%q right=%q", n.Kind, n.Left, n.Right)
	}
	if len(n.Children) != 1 || n.Children[0].Kind != KindFraction {
		t.Errorf("content:\n%s", n)
	}

	n = onlyChild(t, `\left. x \right|`)
	if n.Left != "" || n.Right != "|" {
		t.Errorf("left=%q right=%q", n.Left, n.Right)
	}

	n = onlyChild(t, `\left\{ x \right\}`)
	if n.Left != "{" || n.Right != "}" {
		t.Errorf("left=%q right=%q", n.Left, n.Right)
	}

	n = onlyChild(t, `\left\langle x \right\rangle`)
	if n.Left != "⟨" || n.Right != "⟩" {
		t.Errorf("left=%q right=%q", n.Left, n.Right)
	}
}

func TestParseNestedDelimited(t *testing.T) {
	n := onlyChild(t, `\left( \left[ x \right] \right)`)
	if n.Left != "(" || n.Right != ")" {
		t.Fatalf("outer left=%q right=%q", n.Left, n.Right)
	}
	inner := n.Children[0]
	if inner.Kind != KindDelimited || inner.Left != "[" || inner.Right != "]" {
		t.Errorf("inner:\n%s", inner)
	}
}

func TestParseSizedDelimiter(t *testing.T) {
	tests := []struct {
		input string
		delim string
		scale float64
	}{
		{`\big(`, "(", 1.2},
		{`\Big[`, "[", 1.8},
		{`\bigg\{`, "{", 2.4},
		{`\Biggr)`, ")", 3.0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n := onlyChild(t, tt.input)
			if n.Kind != KindSizedDelimiter || n.Left != tt.delim || n.Scale != tt.scale {
				t.Errorf("got %v left=%q scale=%v", n.Kind, n.Left, n.Scale)
			}
		})
	}
}

func TestParseMatrix(t *testing.T) {
	n := onlyChild(t, `\begin{pmatrix}a & b \\ c & d\end{pmatrix}`)
	if n.Kind != KindMatrix || n.Literal != "pmatrix" {
		t.Fatalf("got %v %q", n.Kind, n.Literal)
	}
	if n.Left != "(" || n.Right != ")" {
		t.Errorf("delimiters %q %q", n.Left, n.Right)
	}
	if len(n.Children) != 2 {
		t.Fatalf("%d rows, want 2", len(n.Children))
	}
	for i, row := range n.Children {
		if row.Kind != KindRow || len(row.Children) != 2 {
			t.Errorf("row %d:\n%s", i, row)
		}
		for j, cell := range row.Children {
			if cell.Kind != KindGroup || len(cell.Children) != 1 {
				t.Errorf("row %d cell %d:\n%s", i, j, cell)
			}
		}
	}
	if n.Children[1].Children[0].Children[0].Literal != "c" {
		t.Errorf("second row first cell:\n%s", n.Children[1])
	}
}

func TestParseMatrixTrailingNewLine(t *testing.T) {
	n := onlyChild(t, `\begin{matrix}a \\ b \\ \end{matrix}`)
	if len(n.Children) != 2 {
		t.Errorf("%d rows, want 2:\n%s", len(n.Children), n)
	}
	if n.Left != "" || n.Right != "" {
		t.Errorf("bare matrix has delimiters %q %q", n.Left, n.Right)
	}
}

func TestParseArrayColSpec(t *testing.T) {
	n := onlyChild(t, `\begin{array}{c|r} a & b \end{array}`)
	if n.Kind != KindArray || n.ColSpec != "c|r" {
		t.Fatalf("got %v colspec %q", n.Kind, n.ColSpec)
	}
	if len(n.Children) != 1 || len(n.Children[0].Children) != 2 {
		t.Errorf("rows:\n%s", n)
	}
}

func TestParseCases(t *testing.T) {
	n := onlyChild(t, `\begin{cases} x & x > 0 \\ 0 & \text{otherwise} \end{cases}`)
	if n.Kind != KindCases || len(n.Children) != 2 {
		t.Fatalf("got:\n%s", n)
	}
}

func TestParseAligned(t *testing.T) {
	for _, env := range []string{"aligned", "align", "align*", "gather", "split", "multline"} {
		t.Run(env, func(t *testing.T) {
			n := onlyChild(t, `\begin{`+env+`} a &= b \\ c &= d \end{`+env+`}`)
			want := KindAligned
			switch env {
			case "split":
				want = KindSplit
			case "multline":
				want = KindMultline
			}
			if n.Kind != want || n.Literal != env {
				t.Errorf("got %v %q, want %v", n.Kind, n.Literal, want)
			}
			if len(n.Children) != 2 {
				t.Errorf("%d rows, want 2", len(n.Children))
			}
		})
	}
}

func TestParseUnknownEnvironment(t *testing.T) {
	n := onlyChild(t, `\begin{weird} a & b \end{weird}`)
	if n.Kind != KindMatrix || n.Literal != "weird" {
		t.Errorf("got %v %q", n.Kind, n.Literal)
	}
}

func TestParseStack(t *testing.T) {
	n := onlyChild(t, `\overset{a}{b}`)
	if n.Kind != KindStack || n.Literal != "overset" || len(n.Children) != 2 {
		t.Fatalf("got:\n%s", n)
	}
}

func TestParseExtensibleArrow(t *testing.T) {
	n := onlyChild(t, `\xrightarrow{f}`)
	if n.Kind != KindExtensibleArrow || len(n.Children) != 1 {
		t.Fatalf("got:\n%s", n)
	}
	n = onlyChild(t, `\xrightarrow[g]{f}`)
	if len(n.Children) != 2 {
		t.Fatalf("got:\n%s", n)
	}
	if n.Children[0].Literal != "f" || n.Children[1].Literal != "g" {
		t.Errorf("above %q below %q", n.Children[0].Literal, n.Children[1].Literal)
	}
}

func TestParseNegation(t *testing.T) {
	n := onlyChild(t, `\not=`)
	if n.Kind != KindNegation || len(n.Children) != 1 {
		t.Fatalf("got:\n%s", n)
	}
}

func TestParseSubstack(t *testing.T) {
	n := onlyChild(t, `\substack{a \\ b}`)
	if n.Kind != KindSubstack || len(n.Children) != 2 {
		t.Fatalf("got:\n%s", n)
	}
}

func TestParseAnnotations(t *testing.T) {
	doc := mustParse(t, `x \tag{1} \label{eq:one}`)
	if len(doc.Children) != 3 {
		t.Fatalf("got:\n%s", doc)
	}
	if doc.Children[1].Kind != KindTag {
		t.Errorf("got %v", doc.Children[1].Kind)
	}
	if doc.Children[2].Kind != KindLabel || doc.Children[2].Literal != "eq:one" {
		t.Errorf("got %v %q", doc.Children[2].Kind, doc.Children[2].Literal)
	}

	n := onlyChild(t, `\tag*{x}`)
	if n.Kind != KindTag || n.Literal != "*" {
		t.Errorf("got %v %q", n.Kind, n.Literal)
	}

	n = onlyChild(t, `\textcolor{red}{x}`)
	if n.Kind != KindColor || n.Literal != "red" || len(n.Children) != 1 {
		t.Errorf("got:\n%s", n)
	}
}

func TestParseSpacing(t *testing.T) {
	doc := mustParse(t, `a\,b\quad c`)
	spaces := 0
	Walk(doc, func(n *Node) bool {
		if n.Kind == KindSpace {
			spaces++
		}
		return true
	})
	if spaces != 2 {
		t.Errorf("%d space nodes, want 2:\n%s", spaces, doc)
	}

	n := onlyChild(t, `\hspace{1em}`)
	if n.Kind != KindHSpace || n.Literal != "1em" {
		t.Errorf("got %v %q", n.Kind, n.Literal)
	}
}

func TestParseSpans(t *testing.T) {
	tests := []struct {
		input string
		kind  NodeKind
		span  Span
	}{
		{"  x  ", KindText, Span{2, 3}},
		{`\frac{1}{2}`, KindFraction, Span{0, 11}},
		{`\frac{1}{2}`, KindText, Span{6, 7}},
		{`a \alpha`, KindSymbol, Span{2, 8}},
		{`\left( x \right)`, KindDelimited, Span{0, 16}},
		{`\begin{matrix}a\end{matrix}`, KindMatrix, Span{0, 27}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			doc := mustParse(t, tt.input)
			var found *Node
			Walk(doc, func(n *Node) bool {
				if found == nil && n.Kind == tt.kind {
					found = n
				}
				return found == nil
			})
			if found == nil {
				t.Fatalf("no %v node:\n%s", tt.kind, doc.StringWithSpans())
			}
			if found.Span != tt.span {
				t.Errorf("span %v, want %v", found.Span, tt.span)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		code  ErrorCode
	}{
		{"{", ErrUnmatchedBrace},
		{"{x", ErrUnmatchedBrace},
		{"}", ErrUnmatchedBrace},
		{"x}", ErrUnmatchedBrace},
		{`\frac{1}`, ErrMissingArgument},
		{`\frac`, ErrMissingArgument},
		{`\sqrt`, ErrMissingArgument},
		{"x^", ErrMissingArgument},
		{`\left( x`, ErrUnmatchedDelimiter},
		{`\right)`, ErrUnmatchedDelimiter},
		{`\left`, ErrUnmatchedDelimiter},
		{`\begin{matrix}x`, ErrUnmatchedEnvironment},
		{`\end{matrix}`, ErrUnmatchedEnvironment},
		{`\begin{matrix}x\end{pmatrix}`, ErrUnmatchedEnvironment},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			doc, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("parsed without error:\n%s", doc)
			}
			perr, ok := err.(*ParseError)
			if !ok {
				t.Fatalf("error type %T", err)
			}
			if perr.Code != tt.code {
				t.Errorf("code %v, want %v", perr.Code, tt.code)
			}
			if perr.Span.Start < 0 || perr.Span.End > len(tt.input) {
				t.Errorf("error span %v out of bounds", perr.Span)
			}
		})
	}
}

func TestParseErrorSpanPointsAtOpener(t *testing.T) {
	_, err := Parse(`x + {a`)
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("error %v", err)
	}
	if perr.Span != (Span{4, 5}) {
		t.Errorf("span %v, want the opening brace {4 5}", perr.Span)
	}
}

func TestParseSumWithLimits(t *testing.T) {
	n := onlyChild(t, `\sum_{i=1}^n`)
	if n.Kind != KindSuperscript {
		t.Fatalf("got:\n%s", n)
	}
	sub := n.Children[0]
	if sub.Kind != KindSubscript || sub.Children[0].Kind != KindBigOperator {
		t.Errorf("base:\n%s", sub)
	}
	lower := sub.Children[1]
	if lower.Kind != KindGroup || len(lower.Children) != 3 {
		t.Errorf("lower limit:\n%s", lower)
	}
}

func TestParseNewLineAtTopLevel(t *testing.T) {
	doc := mustParse(t, `a \\ b`)
	if len(doc.Children) != 3 || doc.Children[1].Kind != KindNewLine {
		t.Errorf("got:\n%s", doc)
	}
}

func TestParseMathStyle(t *testing.T) {
	doc := mustParse(t, `\displaystyle \frac{1}{2}`)
	if doc.Children[0].Kind != KindMathStyle || doc.Children[0].Literal != "displaystyle" {
		t.Errorf("got:\n%s", doc)
	}
}

func TestParseSubequations(t *testing.T) {
	n := onlyChild(t, `\begin{subequations} x = y \end{subequations}`)
	if n.Kind != KindSubequations || len(n.Children) != 3 {
		t.Fatalf("got:\n%s", n)
	}
}

func TestParsePhantoms(t *testing.T) {
	tests := []struct {
		input string
		kind  NodeKind
	}{
		{`\phantom{x}`, KindPhantom},
		{`\vphantom{x}`, KindVPhantom},
		{`\hphantom{x}`, KindHPhantom},
		{`\smash{x}`, KindSmash},
		{`\boxed{x}`, KindBoxed},
	}
	for _, tt := range tests {
		n := onlyChild(t, tt.input)
		if n.Kind != tt.kind || len(n.Children) != 1 {
			t.Errorf("%s: got %v with %d children", tt.input, n.Kind, len(n.Children))
		}
	}
}

func TestParseLargeExpression(t *testing.T) {
	input := `\left( \sum_{k=1}^{n} \frac{x_k^2}{1 + \sqrt{k}} \right) \cdot \begin{pmatrix} \alpha & \beta \\ \gamma & \delta \end{pmatrix}`
	doc := mustParse(t, input)
	if doc.Span != (Span{0, len(input)}) {
		t.Errorf("document span %v", doc.Span)
	}
	if doc.FirstChildOfKind(KindDelimited) == nil || doc.FirstChildOfKind(KindMatrix) == nil {
		t.Errorf("structure:\n%s", doc)
	}
}
