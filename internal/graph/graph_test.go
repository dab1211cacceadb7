package graph

import (
	"math"
	"testing"
)

func TestQwertyShape(t *testing.T) {
	g := Qwerty()

	if g.Len() != 26 {
		t.Fatalf("expected 26 nodes, got %d", g.Len())
	}

	idx, ok := g.IndexOf('q')
	if !ok || idx != 0 {
		t.Errorf("expected 'q' at index 0, got %d (ok=%v)", idx, ok)
	}
	idx, ok = g.IndexOf('m')
	if !ok || idx != 25 {
		t.Errorf("expected 'm' at index 25, got %d (ok=%v)", idx, ok)
	}

	r, ok := g.Letter(10)
	if !ok || r != 'a' {
		t.Errorf("expected index 10 to be 'a', got %q", r)
	}
}

func TestQwertyAdjacencySymmetric(t *testing.T) {
	g := Qwerty()

	for _, a := range g.Order() {
		for _, b := range g.Neighbors(a) {
			found := false
			for _, back := range g.Neighbors(b) {
				if back == a {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("edge %q->%q has no reverse edge", a, b)
			}
		}
	}
}

func TestUnknownNodeLookups(t *testing.T) {
	g := Qwerty()

	if nbs := g.Neighbors('5'); len(nbs) != 0 {
		t.Errorf("expected no neighbors for unknown node, got %v", nbs)
	}
	if _, ok := g.IndexOf('!'); ok {
		t.Error("expected unknown node to miss the index")
	}
	if _, ok := g.Position('#'); ok {
		t.Error("expected unknown node to have no position")
	}
	if _, ok := g.Distance('q', '9'); ok {
		t.Error("expected distance to unknown node to fail")
	}
}

func TestDistance(t *testing.T) {
	g := Qwerty()

	d, ok := g.Distance('q', 'w')
	if !ok {
		t.Fatal("expected distance between known nodes")
	}
	if math.Abs(d-1.0) > 1e-12 {
		t.Errorf("expected unit distance q-w, got %f", d)
	}

	d, _ = g.Distance('q', 'q')
	if d != 0 {
		t.Errorf("expected zero self distance, got %f", d)
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New("aa", nil, nil); err == nil {
		t.Error("expected error for duplicate ids")
	}
	if _, err := New("ab", map[string][]string{"a": {"z"}}, nil); err == nil {
		t.Error("expected error for unknown neighbor")
	}
	if _, err := New("ab", map[string][]string{"zz": {"a"}}, nil); err == nil {
		t.Error("expected error for multi-rune id")
	}
	if _, err := New("ab", nil, map[string]Point{"c": {}}); err == nil {
		t.Error("expected error for unknown positioned node")
	}
}
