// Package distance holds the directed distance table consulted by fleet
// reports.
package distance

// Unknown is returned for pairs that were never recorded.
const Unknown = -1

type pair struct{ from, to string }

// Map stores distances per ordered pair of locations. The zero value is not
// usable; call New.
type Map struct {
	distances map[pair]int
}

// New returns an empty map.
func New() *Map {
	return &Map{distances: make(map[pair]int)}
}

// AddDistance records d in both directions between from and to.
func (m *Map) AddDistance(from, to string, d int) {
	m.AddDistances(from, to, d, d)
}

// AddDistances records forward for from->to and back for to->from.
func (m *Map) AddDistances(from, to string, forward, back int) {
	m.distances[pair{from, to}] = forward
	m.distances[pair{to, from}] = back
}

// Distance returns the recorded distance from one location to another, or
// Unknown. A nil map knows no distances.
func (m *Map) Distance(from, to string) int {
	if m == nil {
		return Unknown
	}
	if d, ok := m.distances[pair{from, to}]; ok {
		return d
	}
	return Unknown
}

// Len returns the number of directed entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.distances)
}
