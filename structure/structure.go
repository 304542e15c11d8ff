// Package structure groups connected components into isomorphism classes for
// QC reporting and checks whether read pair mass concentrates on the best
// connected barcode of each component.
package structure

import (
	"encoding/binary"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash"

	"bccorrect/cluster"
	"bccorrect/families"
	"bccorrect/utils"
)

// Structure is one isomorphism class of component shapes. Archetype is the
// first component seen with this shape; any isomorphic representative would
// be equivalent.
type Structure struct {
	Archetype *cluster.Component
	Size      int
	Count     int
	Central   int
}

// CountStructures classifies every component of the graph by graph shape,
// node identities erased. Components whose shapes are isomorphic share one
// Structure; the partition does not depend on the order components are seen.
func CountStructures(g *cluster.Graph, counts map[string]families.Counts) ([]*Structure, error) {
	var structures []*Structure
	// degree-sequence hash buckets prune the archetype scan; a full
	// isomorphism test still decides membership
	buckets := make(map[uint64][]*Structure)
	for _, comp := range g.ConnectedComponents() {
		central, err := IsCentralized(comp, counts)
		if err != nil {
			return nil, err
		}
		key := shapeKey(comp)
		var match *Structure
		for _, s := range buckets[key] {
			if Isomorphic(comp, s.Archetype) {
				match = s
				break
			}
		}
		if match == nil {
			s := &Structure{Archetype: comp, Size: comp.Size(), Count: 1}
			if central {
				s.Central = 1
			}
			structures = append(structures, s)
			buckets[key] = append(buckets[key], s)
		} else {
			match.Count++
			if central {
				match.Central++
			}
		}
	}
	return structures, nil
}

func shapeKey(c *cluster.Component) uint64 {
	degrees := c.DegreeSequence()
	buf := make([]byte, 4*len(degrees))
	for i, d := range degrees {
		binary.LittleEndian.PutUint32(buf[4*i:], uint32(d))
	}
	return xxhash.Sum64(buf)
}

// Isomorphic reports whether two components have the same graph shape,
// ignoring node labels. Degree comparisons prune the search, then bounded
// backtracking finds a structure-preserving node matching. Components are
// small (error neighborhoods of one barcode), so exhaustive matching is fine.
func Isomorphic(a, b *cluster.Component) bool {
	if a.Size() != b.Size() || a.NumEdges() != b.NumEdges() {
		return false
	}
	da, db := a.DegreeSequence(), b.DegreeSequence()
	for i := range da {
		if da[i] != db[i] {
			return false
		}
	}
	an := a.MembersByDegree()
	bn := b.Nodes()
	assigned := make(map[string]string, len(an))
	used := make(map[string]bool, len(bn))
	var match func(i int) bool
	match = func(i int) bool {
		if i == len(an) {
			return true
		}
		u := an[i]
		for _, v := range bn {
			if used[v] || b.Degree(v) != a.Degree(u) {
				continue
			}
			ok := true
			for j := 0; j < i; j++ {
				w := an[j]
				if a.HasEdge(u, w) != b.HasEdge(v, assigned[w]) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			assigned[u] = v
			used[v] = true
			if match(i + 1) {
				return true
			}
			delete(assigned, u)
			used[v] = false
		}
		return false
	}
	return match(0)
}

// IsCentralized reports whether the component's read pair mass concentrates
// on its best connected barcode, the signature of one true barcode plus low
// abundance error variants.
func IsCentralized(c *cluster.Component, counts map[string]families.Counts) (bool, error) {
	if c.Size() == 2 {
		// Degree can't rank a 2-node component, both nodes have degree 1.
		// Centralized means at least one side carries a single read pair.
		nodes := c.Nodes()
		ct1, ok := counts[nodes[0]]
		if !ok {
			return false, fmt.Errorf("barcode %q missing from family counts", nodes[0])
		}
		ct2, ok := counts[nodes[1]]
		if !ok {
			return false, fmt.Errorf("barcode %q missing from family counts", nodes[1])
		}
		return ct1.All == 1 || ct2.All == 1, nil
	}
	members := c.MembersByDegree()
	for _, barcode := range members[1:] {
		ct, ok := counts[barcode]
		if !ok {
			return false, fmt.Errorf("barcode %q missing from family counts", barcode)
		}
		if ct.All > 1 {
			return false, nil
		}
	}
	return true, nil
}

// Sorted returns the structures ordered for reporting: size ascending, then
// occurrence count descending.
func Sorted(structures []*Structure) []*Structure {
	out := append([]*Structure(nil), structures...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Size != out[j].Size {
			return out[i].Size < out[j].Size
		}
		return out[i].Count > out[j].Count
	})
	return out
}

// Print writes one row per structure class: size, class letter, occurrence
// count, centralized count, degree list. Classes of one size are lettered
// A, B, .. in report order.
func Print(w io.Writer, structures []*Structure, human bool) {
	width := 1
	for _, s := range structures {
		width = utils.MaxInt(width, len(strconv.Itoa(s.Count)))
	}
	lastSize := -1
	classIdx := 0
	for _, s := range Sorted(structures) {
		if s.Size == lastSize {
			classIdx++
		} else {
			classIdx = 0
		}
		lastSize = s.Size
		letters := numToLetters(classIdx)
		degrees := s.Archetype.DegreeSequence()
		degreeStrs := make([]string, len(degrees))
		for i, d := range degrees {
			degreeStrs[i] = strconv.Itoa(d)
		}
		if human {
			fmt.Fprintf(w, "%2d%-3s %-*d %-*d %s\n",
				s.Size, letters+":", width, s.Count, width, s.Central, strings.Join(degreeStrs, " "))
		} else {
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\n",
				s.Size, letters, s.Count, s.Central, strings.Join(degreeStrs, ","))
		}
	}
}

// numToLetters translates a class index to letters: 0 -> A, 25 -> Z, 26 -> AA.
func numToLetters(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return string(rune('A'+i/26-1)) + string(rune('A'+i%26))
}
