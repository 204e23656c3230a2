package capabilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrant_NewGrant(t *testing.T) {
	g := NewGrant()
	assert.Empty(t, g)
}

func TestGrant_Add(t *testing.T) {
	g := NewGrant()
	c := Capability{Kind: KindExec, Pattern: "obs"}

	g.Add(c)
	g.Add(c)

	assert.Len(t, g, 1)
	assert.True(t, g.Contains(c))
}

func TestGrant_Remove(t *testing.T) {
	c1 := Capability{Kind: KindExec, Pattern: "obs"}
	c2 := Capability{Kind: KindMIDI, Pattern: "*"}
	g := Grant{c1, c2}

	g.Remove(c1)

	assert.False(t, g.Contains(c1))
	assert.True(t, g.Contains(c2))
}

func TestParseGrant(t *testing.T) {
	g := ParseGrant([]string{"exec:obs", "", "keyboard", "exec:obs", ":bad"})

	assert.Equal(t, Grant{
		{Kind: KindExec, Pattern: "obs"},
		{Kind: KindKeyboard, Pattern: "*"},
	}, g)
}

func TestGrant_Broad(t *testing.T) {
	g := ParseGrant([]string{"exec:*", "exec:obs", "network:*", "midi:*"})

	assert.Equal(t, []Capability{
		{Kind: KindExec, Pattern: "*"},
		{Kind: KindNetwork, Pattern: "*"},
	}, g.Broad())
}
