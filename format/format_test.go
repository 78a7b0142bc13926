package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/matex/latex/parser"
)

func TestASTJSONEncoder(t *testing.T) {
	doc, err := parser.Parse(`\frac{1}{2}`)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := NewASTJSONEncoder(&buf).Encode(doc); err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Kind string `json:"kind"`
		Span struct {
			Start int `json:"start"`
			End   int `json:"end"`
		} `json:"span"`
		Children []struct {
			Kind     string            `json:"kind"`
			Children []json.RawMessage `json:"children"`
		} `json:"children"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if decoded.Kind != "Document" || decoded.Span.End != 11 {
		t.Errorf("root %q span end %d", decoded.Kind, decoded.Span.End)
	}
	if len(decoded.Children) != 1 || decoded.Children[0].Kind != "Fraction" {
		t.Errorf("children: %s", buf.String())
	}
	if len(decoded.Children[0].Children) != 2 {
		t.Errorf("fraction arms: %s", buf.String())
	}
}

func TestASTJSONOmitsEmptyFields(t *testing.T) {
	doc, err := parser.Parse("x")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := NewASTJSONEncoder(&buf).Encode(doc); err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{"left", "right", "scale", "colSpec", "params"} {
		if strings.Contains(buf.String(), `"`+field+`"`) {
			t.Errorf("output carries empty %q:\n%s", field, buf.String())
		}
	}
}

func TestTreeEncoder(t *testing.T) {
	doc, err := parser.Parse("x^2")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := NewTreeEncoder(&buf).Encode(doc); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Superscript") || strings.Contains(out, "[0-3]") {
		t.Errorf("plain tree output:\n%s", out)
	}

	buf.Reset()
	if err := NewTreeEncoder(&buf).WithSpans().Encode(doc); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "[0-3]") {
		t.Errorf("span tree output:\n%s", buf.String())
	}
}

func TestTokenEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTokenEncoder(&buf).Encode(parser.Tokenize(`\alpha x`)); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	first := strings.Split(lines[0], "\t")
	if first[0] != "Command" || first[1] != "0" || first[2] != "6" || first[4] != "alpha" {
		t.Errorf("first line %q", lines[0])
	}
	if !strings.HasPrefix(lines[len(lines)-1], "EOF") {
		t.Errorf("last line %q", lines[len(lines)-1])
	}
}
