package viz

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/fibersim/internal/drive"
	"github.com/san-kum/fibersim/internal/graph"
	"github.com/san-kum/fibersim/internal/muscle"
	"github.com/san-kum/fibersim/internal/propagate"
	"github.com/san-kum/fibersim/internal/tissue"
)

func testModel() Model {
	g := graph.Qwerty()
	rebuild := func() *tissue.Tissue {
		return tissue.New(g.Len(), 0.05, muscle.DefaultParams())
	}
	return NewModel(g, rebuild(), propagate.New(g), drive.NewNone(), rebuild, Options{
		Intensity:     1.0,
		PumpAmount:    1.0,
		CapPercentage: 0.66,
	})
}

func TestPumpAtRestLeavesNeighborsAlone(t *testing.T) {
	m := testModel()

	m.pump('g')

	src, _ := m.g.IndexOf('g')
	if atp := m.tis.Muscle(src).ATP(); atp != 1.0 {
		t.Errorf("expected source ATP 1.0, got %f", atp)
	}
	for _, nb := range m.g.Neighbors('g') {
		idx, _ := m.g.IndexOf(nb)
		if atp := m.tis.Muscle(idx).ATP(); atp != 0.2 {
			t.Errorf("neighbor %c: expected ATP 0.2 while source rests, got %f", nb, atp)
		}
	}
}

func TestPumpSpreadsFromContractedSource(t *testing.T) {
	m := testModel()

	src, _ := m.g.IndexOf('g')
	mus := m.tis.Muscle(src)
	mus.PumpEnergy(1.0)
	mus.Update(1.0)
	if mus.Force() <= 0.4 {
		t.Fatalf("setup: expected contracted source, force %f", mus.Force())
	}

	m.pump('g')

	for _, nb := range m.g.Neighbors('g') {
		idx, _ := m.g.IndexOf(nb)
		if atp := m.tis.Muscle(idx).ATP(); atp <= 0.2 {
			t.Errorf("neighbor %c: expected energy top-up, got ATP %f", nb, atp)
		}
	}
}

func TestPumpUnknownKeyIsNoop(t *testing.T) {
	m := testModel()

	m.pump('9')

	if m.lastPump != 0 {
		t.Errorf("expected no pump recorded, got %c", m.lastPump)
	}
}

func TestUppercaseKeyPumps(t *testing.T) {
	m := testModel()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	m = updated.(Model)

	src, _ := m.g.IndexOf('g')
	if atp := m.tis.Muscle(src).ATP(); atp != 1.0 {
		t.Errorf("expected source ATP 1.0 after uppercase pump, got %f", atp)
	}
	if m.lastPump != 'g' {
		t.Errorf("expected last pump g, got %c", m.lastPump)
	}
}
