// Package align turns the barcode self-alignment (SAM) into the graph of
// barcode relationships. Records are filtered by position, mapping quality
// and edit distance before their (query, reference) pair is added as an edge.
package align

import (
	"io"
	"log"
	"strconv"

	"github.com/biogo/hts/sam"

	"bccorrect/cluster"
	"bccorrect/fileio"
	"bccorrect/utils"
)

// Options are the alignment quality thresholds. A record is accepted when
// |POS-1| <= PosTol, MAPQ >= MinMapQ and the NM edit distance <= MaxDist.
type Options struct {
	PosTol  int
	MinMapQ int
	MaxDist int
	Limit   int // accepted pairs to read, 0 for no limit
}

var nmTag = sam.Tag{'N', 'M'}

// ReadAlignments reads the SAM file and builds the barcode graph: both ids of
// every accepted, non-self pair are resolved through names and joined by an
// undirected edge. An id absent from names means the reads file and the
// alignment disagree, which aborts the run.
func ReadAlignments(fn string, names map[int]string, opt Options) *cluster.Graph {
	fp := fileio.Open(fn)
	defer fp.Close()
	sr, err := sam.NewReader(fp)
	if err != nil {
		log.Fatalf("[ReadAlignments] open SAM %s failed, err: %v\n", fn, err)
	}
	graph := cluster.NewGraph()
	accepted := 0
	for {
		r, err := sr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// bad FLAG/POS/MAPQ etc on one line is recoverable
			log.Printf("[ReadAlignments] skipping malformed record: %v\n", err)
			continue
		}
		if r.Flags&sam.Unmapped != 0 || r.Ref == nil {
			continue
		}
		qid, err := strconv.Atoi(r.Name)
		if err != nil {
			log.Fatalf("[ReadAlignments] non-int read name %q in %s\n", r.Name, fn)
		}
		rid, err := strconv.Atoi(r.Ref.Name())
		if err != nil {
			log.Fatalf("[ReadAlignments] non-int reference name %q in %s\n", r.Ref.Name(), fn)
		}
		// sam.Record.Pos is zero-based, so this is |POS-1| in SAM terms
		if utils.AbsInt(r.Pos) > opt.PosTol {
			continue
		}
		if int(r.MapQ) < opt.MinMapQ {
			continue
		}
		if editDistance(r) > opt.MaxDist {
			continue
		}
		if qid == rid {
			continue
		}
		accepted++
		if opt.Limit > 0 && accepted > opt.Limit {
			break
		}
		qseq, ok := names[qid]
		if !ok {
			log.Fatalf("[ReadAlignments] read id %d not in the reads file\n", qid)
		}
		rseq, ok := names[rid]
		if !ok {
			log.Fatalf("[ReadAlignments] read id %d not in the reads file\n", rid)
		}
		graph.AddEdge(rseq, qseq)
	}
	return graph
}

// editDistance returns the NM tag value. A mapped record without NM cannot be
// filtered and is fatal.
func editDistance(r *sam.Record) int {
	aux := r.AuxFields.Get(nmTag)
	if aux == nil {
		log.Fatalf("[editDistance] mapped record %q has no NM tag\n", r.Name)
	}
	switch v := aux.Value().(type) {
	case int8:
		return int(v)
	case uint8:
		return int(v)
	case int16:
		return int(v)
	case uint16:
		return int(v)
	case int32:
		return int(v)
	case uint32:
		return int(v)
	case int:
		return v
	default:
		log.Fatalf("[editDistance] record %q NM tag type unknown: %v\n", r.Name, aux)
	}
	return 0
}
