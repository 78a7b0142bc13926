package parser

import "testing"

func TestWalkOrder(t *testing.T) {
	doc := mustParse(t, `\frac{a}{b}`)
	var kinds []NodeKind
	Walk(doc, func(n *Node) bool {
		kinds = append(kinds, n.Kind)
		return true
	})
	want := []NodeKind{KindDocument, KindFraction, KindText, KindText}
	if len(kinds) != len(want) {
		t.Fatalf("visited %v", kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("step %d: %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	doc := mustParse(t, `\frac{a}{b} x`)
	var visited int
	Walk(doc, func(n *Node) bool {
		visited++
		return n.Kind != KindFraction
	})
	// Document, Fraction (pruned), Text x.
	if visited != 3 {
		t.Errorf("visited %d nodes, want 3", visited)
	}
}

func TestWalkNil(t *testing.T) {
	Walk(nil, func(*Node) bool { t.Fatal("fn called for nil"); return true })
}

func TestKnownCommands(t *testing.T) {
	cmds := KnownCommands()
	seen := map[string]bool{}
	for _, c := range cmds {
		if seen[c] {
			t.Fatalf("duplicate command %q", c)
		}
		seen[c] = true
	}
	for _, want := range []string{"frac", "sqrt", "alpha", "sum", "begin", "ce"} {
		if !seen[want] {
			t.Errorf("missing %q", want)
		}
	}
}
