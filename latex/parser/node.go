package parser

import (
	"strconv"
	"strings"
)

type NodeKind int

const (
	KindDocument NodeKind = iota

	// Leaves
	KindText
	KindSymbol
	KindOperator
	KindTextMode
	KindCommand
	KindSpace
	KindHSpace
	KindNewLine

	// Scripts and structure
	KindGroup
	KindRow
	KindSuperscript
	KindSubscript
	KindFraction
	KindRoot
	KindBinomial
	KindAccent
	KindBigOperator
	KindStack
	KindExtensibleArrow
	KindSideSet
	KindTensor
	KindSubstack
	KindNegation

	// Delimiters
	KindDelimited
	KindSizedDelimiter

	// Environments
	KindMatrix
	KindArray
	KindCases
	KindAligned
	KindSplit
	KindMultline
	KindEqnarray
	KindSubequations
	KindTabular

	// Annotations and switches
	KindStyle
	KindColor
	KindMathStyle
	KindTag
	KindLabel
	KindRef
	KindEqRef
	KindBoxed
	KindPhantom
	KindVPhantom
	KindHPhantom
	KindSmash
	KindNewCommand
)

var nodeKindNames = map[NodeKind]string{
	KindDocument:        "Document",
	KindText:            "Text",
	KindSymbol:          "Symbol",
	KindOperator:        "Operator",
	KindTextMode:        "TextMode",
	KindCommand:         "Command",
	KindSpace:           "Space",
	KindHSpace:          "HSpace",
	KindNewLine:         "NewLine",
	KindGroup:           "Group",
	KindRow:             "Row",
	KindSuperscript:     "Superscript",
	KindSubscript:       "Subscript",
	KindFraction:        "Fraction",
	KindRoot:            "Root",
	KindBinomial:        "Binomial",
	KindAccent:          "Accent",
	KindBigOperator:     "BigOperator",
	KindStack:           "Stack",
	KindExtensibleArrow: "ExtensibleArrow",
	KindSideSet:         "SideSet",
	KindTensor:          "Tensor",
	KindSubstack:        "Substack",
	KindNegation:        "Negation",
	KindDelimited:       "Delimited",
	KindSizedDelimiter:  "SizedDelimiter",
	KindMatrix:          "Matrix",
	KindArray:           "Array",
	KindCases:           "Cases",
	KindAligned:         "Aligned",
	KindSplit:           "Split",
	KindMultline:        "Multline",
	KindEqnarray:        "Eqnarray",
	KindSubequations:    "Subequations",
	KindTabular:         "Tabular",
	KindStyle:           "Style",
	KindColor:           "Color",
	KindMathStyle:       "MathStyle",
	KindTag:             "Tag",
	KindLabel:           "Label",
	KindRef:             "Ref",
	KindEqRef:           "EqRef",
	KindBoxed:           "Boxed",
	KindPhantom:         "Phantom",
	KindVPhantom:        "VPhantom",
	KindHPhantom:        "HPhantom",
	KindSmash:           "Smash",
	KindNewCommand:      "NewCommand",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is one vertex of the parsed tree. Each node owns its children
// exclusively and is immutable once the parse that built it returns.
//
// Literal carries the leaf payload: source text for Text/TextMode, the
// resolved glyph for Symbol, the operator or accent or environment name
// for the structural kinds, the color name for Color, the label text for
// Tag/Label/Ref/EqRef.
type Node struct {
	Kind     NodeKind
	Span     Span
	Literal  string
	Left     string  // Delimited, SizedDelimiter: left delimiter, "" for a bare "."
	Right    string  // Delimited: right delimiter
	Scale    float64 // SizedDelimiter: glyph scale factor
	Params   int     // NewCommand: declared parameter count
	ColSpec  string  // Array, Tabular: column specification
	Children []*Node
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// NodeAt returns the deepest node whose span contains offset, or nil when
// the offset lies outside this subtree.
func (n *Node) NodeAt(offset int) *Node {
	if !n.Span.Contains(offset) {
		return nil
	}
	for _, child := range n.Children {
		if deep := child.NodeAt(offset); deep != nil {
			return deep
		}
	}
	return n
}

// PathAt returns the root-to-leaf chain of nodes containing offset.
func (n *Node) PathAt(offset int) []*Node {
	if !n.Span.Contains(offset) {
		return nil
	}
	path := []*Node{n}
	for _, child := range n.Children {
		if rest := child.PathAt(offset); rest != nil {
			return append(path, rest...)
		}
	}
	return path
}

func (n *Node) String() string {
	var sb strings.Builder
	n.stringIndent(&sb, 0, false)
	return sb.String()
}

func (n *Node) StringWithSpans() string {
	var sb strings.Builder
	n.stringIndent(&sb, 0, true)
	return sb.String()
}

func (n *Node) stringIndent(sb *strings.Builder, indent int, showSpans bool) {
	for i := 0; i < indent; i++ {
		sb.WriteString("  ")
	}
	sb.WriteString(n.Kind.String())
	if showSpans {
		sb.WriteString(" [")
		sb.WriteString(strconv.Itoa(n.Span.Start))
		sb.WriteByte('-')
		sb.WriteString(strconv.Itoa(n.Span.End))
		sb.WriteByte(']')
	}
	if n.Literal != "" {
		sb.WriteByte(' ')
		sb.WriteString(n.Literal)
	}
	sb.WriteByte('\n')
	for _, child := range n.Children {
		child.stringIndent(sb, indent+1, showSpans)
	}
}
