package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/matex/latex/parser"
)

type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(doc *parser.Node) error {
	text, err := e.MarshalText(doc)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *ASTJSONEncoder) MarshalText(doc *parser.Node) ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(doc), "", "  ")
}

type astJSONNode struct {
	Kind     string         `json:"kind"`
	Span     astJSONSpan    `json:"span"`
	Literal  string         `json:"literal,omitempty"`
	Left     string         `json:"left,omitempty"`
	Right    string         `json:"right,omitempty"`
	Scale    float64        `json:"scale,omitempty"`
	Params   int            `json:"params,omitempty"`
	ColSpec  string         `json:"colSpec,omitempty"`
	Children []*astJSONNode `json:"children,omitempty"`
}

type astJSONSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func nodeToJSON(n *parser.Node) *astJSONNode {
	jn := &astJSONNode{
		Kind:    n.Kind.String(),
		Span:    astJSONSpan{Start: n.Span.Start, End: n.Span.End},
		Literal: n.Literal,
		Left:    n.Left,
		Right:   n.Right,
		Scale:   n.Scale,
		Params:  n.Params,
		ColSpec: n.ColSpec,
	}
	if len(n.Children) > 0 {
		jn.Children = make([]*astJSONNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = nodeToJSON(child)
		}
	}
	return jn
}
