package structure

import (
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/awalterschulze/gographviz"
)

// Dot renders the archetype of every structure class into one undirected
// graphviz graph.
func Dot(structures []*Structure) string {
	g := gographviz.NewGraph()
	g.SetName("G")
	g.SetDir(false)
	g.SetStrict(false)
	for _, s := range Sorted(structures) {
		comp := s.Archetype
		for _, barcode := range comp.Nodes() {
			attr := make(map[string]string)
			attr["color"] = "Green"
			attr["label"] = "\"\""
			g.AddNode("G", quote(barcode), attr)
		}
		for _, e := range comp.Edges() {
			attr := make(map[string]string)
			attr["color"] = "Blue"
			g.AddEdge(quote(e[0]), quote(e[1]), false, attr)
		}
	}
	return g.String()
}

// Render writes the structure visualization to vizPath. Format "dot" writes
// the graphviz source; "png" also runs the dot program on it.
func Render(structures []*Structure, vizPath, format string) {
	dotPath := vizPath
	if format == "png" || strings.HasSuffix(vizPath, ".png") {
		format = "png"
		dotPath = strings.TrimSuffix(vizPath, ".png") + ".dot"
	}
	gfp, err := os.Create(dotPath)
	if err != nil {
		log.Fatalf("[Render] create file: %s failed, err: %v\n", dotPath, err)
	}
	if _, err := gfp.WriteString(Dot(structures)); err != nil {
		log.Fatalf("[Render] write file: %s failed, err: %v\n", dotPath, err)
	}
	gfp.Close()
	log.Printf("[Render] wrote graph to %s\n", dotPath)
	if format == "png" {
		pngPath := strings.TrimSuffix(dotPath, ".dot") + ".png"
		if err := exec.Command("dot", "-T", "png", "-o", pngPath, dotPath).Run(); err != nil {
			log.Fatalf("[Render] run dot on %s failed, err: %v\n", dotPath, err)
		}
		log.Printf("[Render] wrote image to %s\n", pngPath)
	}
}

func quote(s string) string {
	return "\"" + s + "\""
}
