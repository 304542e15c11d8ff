package cluster

import (
	"fmt"
	"sort"

	"bccorrect/families"
)

// Policy selects how the canonical barcode of a component is ranked.
type Policy string

const (
	// ByReads ranks members by total read pairs in their family.
	ByReads Policy = "reads"
	// ByConnectivity ranks members by degree within the component.
	ByConnectivity Policy = "connectivity"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case ByReads, ByConnectivity:
		return Policy(s), nil
	}
	return "", fmt.Errorf("unknown choose-by policy %q", s)
}

// Canonical picks the canonical barcode of the component: the top member
// under the given policy, ties broken by lexicographic barcode order. A
// member missing from counts means the families file and the alignment
// disagree, which is not recoverable.
func Canonical(c *Component, counts map[string]families.Counts, by Policy) (string, error) {
	members := append([]string(nil), c.Nodes()...)
	switch by {
	case ByReads:
		for _, barcode := range members {
			if _, ok := counts[barcode]; !ok {
				return "", fmt.Errorf("barcode %q missing from family counts", barcode)
			}
		}
		sort.SliceStable(members, func(i, j int) bool {
			return counts[members[i]].All > counts[members[j]].All
		})
	case ByConnectivity:
		members = c.MembersByDegree()
	default:
		return "", fmt.Errorf("unknown choose-by policy %q", by)
	}
	return members[0], nil
}

// MakeCorrectionTable maps every non-canonical member of every component to
// its canonical barcode. The canonical barcode of a component never appears
// as a key, and barcodes absent from the graph have no entry at all.
func MakeCorrectionTable(g *Graph, counts map[string]families.Counts, by Policy) (map[string]string, error) {
	corrections := make(map[string]string)
	for _, comp := range g.ConnectedComponents() {
		canonical, err := Canonical(comp, counts, by)
		if err != nil {
			return nil, err
		}
		for _, barcode := range comp.Nodes() {
			if barcode != canonical {
				corrections[barcode] = canonical
			}
		}
	}
	return corrections, nil
}
