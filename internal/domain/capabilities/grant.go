package capabilities

// Grant represents the set of capabilities the operator has approved.
type Grant []Capability

// NewGrant creates a new empty Grant.
func NewGrant() Grant {
	return make(Grant, 0)
}

// ParseGrant builds a grant from "kind:pattern" strings, skipping blanks
// and malformed entries.
func ParseGrant(entries []string) Grant {
	g := NewGrant()
	for _, e := range entries {
		if c, ok := Parse(e); ok {
			g.Add(c)
		}
	}
	return g
}

// Add adds a capability to the grant if it's not already present.
func (g *Grant) Add(cap Capability) {
	for _, existing := range *g {
		if existing.Equals(cap) {
			return // Already exists
		}
	}
	*g = append(*g, cap)
}

// Contains checks if the grant contains a specific capability.
func (g Grant) Contains(cap Capability) bool {
	for _, existing := range g {
		if existing.Equals(cap) {
			return true
		}
	}
	return false
}

// Remove removes a capability from the grant.
func (g *Grant) Remove(cap Capability) {
	for i, existing := range *g {
		if existing.Equals(cap) {
			*g = append((*g)[:i], (*g)[i+1:]...)
			return
		}
	}
}

// Broad returns the granted capabilities that are overly permissive, so
// startup can warn about them.
func (g Grant) Broad() []Capability {
	var out []Capability
	for _, c := range g {
		if c.IsBroad() {
			out = append(out, c)
		}
	}
	return out
}
