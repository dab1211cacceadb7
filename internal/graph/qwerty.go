package graph

// QwertyOrder is the canonical node ordering: row-major over the three
// keyboard rows, matching fiber indices in the tissue.
const QwertyOrder = "qwertyuiopasdfghjklzxcvbnm"

var qwertyRows = []string{"qwertyuiop", "asdfghjkl", "zxcvbnm"}

// qwertyNeighbors is the physical key adjacency: same-row neighbors plus
// the diagonally touching keys of the rows above and below.
var qwertyNeighbors = map[string][]string{
	"q": {"w", "a", "s"},
	"w": {"q", "e", "a", "s", "d"},
	"e": {"w", "r", "s", "d", "f"},
	"r": {"e", "t", "d", "f", "g"},
	"t": {"r", "y", "f", "g", "h"},
	"y": {"t", "u", "g", "h", "j"},
	"u": {"y", "i", "h", "j", "k"},
	"i": {"u", "o", "j", "k", "l"},
	"o": {"i", "p", "k", "l"},
	"p": {"o", "l"},
	"a": {"q", "w", "s", "z"},
	"s": {"q", "w", "e", "a", "d", "z", "x"},
	"d": {"w", "e", "r", "s", "f", "x", "c"},
	"f": {"e", "r", "t", "d", "g", "c", "v"},
	"g": {"r", "t", "y", "f", "h", "v", "b"},
	"h": {"t", "y", "u", "g", "j", "b", "n"},
	"j": {"y", "u", "i", "h", "k", "n", "m"},
	"k": {"u", "i", "o", "j", "l", "m"},
	"l": {"i", "o", "p", "k"},
	"z": {"a", "s", "x"},
	"x": {"s", "d", "z", "c"},
	"c": {"d", "f", "x", "v"},
	"v": {"f", "g", "c", "b"},
	"b": {"g", "h", "v", "n"},
	"n": {"h", "j", "b", "m"},
	"m": {"j", "k", "n"},
}

// Qwerty returns the 26-node keyboard graph with a staggered key-grid
// layout (half-key row offset, one unit between adjacent columns).
func Qwerty() *Graph {
	positions := make(map[string]Point, len(QwertyOrder))
	for row, letters := range qwertyRows {
		for col, r := range letters {
			positions[string(r)] = Point{
				X: float64(col) + 0.5*float64(row),
				Y: float64(row),
			}
		}
	}

	g, err := New(QwertyOrder, qwertyNeighbors, positions)
	if err != nil {
		panic("graph: invalid built-in qwerty table: " + err.Error())
	}
	return g
}
