// Package services contains stateless domain services for the workspace
// aggregate: identifier allocation, grid placement rules, selection
// healing and subtree duplication.
package services

import (
	"strconv"
	"strings"

	"github.com/remotedeck/remotedeck/internal/domain/entities"
)

// ID prefixes for each category of entity.
const (
	PrefixProfile   = "profile"
	PrefixPage      = "page"
	PrefixFolder    = "folder"
	PrefixPlacement = "placement"
	PrefixIcon      = "icon"
)

// IDSet is the set of identifiers currently in use.
type IDSet map[string]struct{}

// Has reports whether id is in use.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add marks id as in use.
func (s IDSet) Add(id string) {
	if id != "" {
		s[id] = struct{}{}
	}
}

// UsedIDs collects every identifier in the workspace, across all
// categories.
func UsedIDs(ws *entities.Workspace) IDSet {
	used := IDSet{}
	for _, p := range ws.Profiles {
		used.Add(p.ID)
		for _, pg := range p.Pages {
			used.Add(pg.ID)
			for _, f := range pg.Folders {
				used.Add(f.ID)
			}
			for _, c := range pg.Controls {
				used.Add(c.ID)
			}
			for _, pl := range pg.Placements {
				used.Add(pl.ID)
			}
		}
	}
	for id := range ws.Assets.Icons {
		used.Add(id)
	}
	return used
}

// NextID returns prefix+N for the smallest positive N that is not in use.
// The used set is recomputed from the workspace on each call, so an ID
// freed by a delete is handed out again by the next add.
func NextID(ws *entities.Workspace, prefix string) string {
	return NextFreeID(UsedIDs(ws), prefix)
}

// NextFreeID allocates from an explicit used set and records the result in
// it. Callers allocating several IDs in one operation share one set.
func NextFreeID(used IDSet, prefix string) string {
	for n := 1; ; n++ {
		id := prefix + strconv.Itoa(n)
		if !used.Has(id) {
			used.Add(id)
			return id
		}
	}
}

// NumericSuffix returns the number at the end of an allocated ID, e.g. 3
// for "button3". It returns 0 when id does not end in digits.
func NumericSuffix(id string) int {
	i := len(id)
	for i > 0 && id[i-1] >= '0' && id[i-1] <= '9' {
		i--
	}
	if i == len(id) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimLeft(id[i:], "0"))
	if err != nil {
		return 0
	}
	return n
}
