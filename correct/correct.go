// Package correct wires the pipeline behind the correct and structures
// subcommands: reads file -> alignment graph -> family counts -> correction
// table -> corrected families output.
package correct

import (
	"log"
	"os"

	"github.com/jwaldrip/odin/cli"

	"bccorrect/align"
	"bccorrect/cluster"
	"bccorrect/families"
	"bccorrect/fileio"
	"bccorrect/reads"
	"bccorrect/structure"
	"bccorrect/utils"
)

type Options struct {
	FamiliesFn string
	ReadsFn    string
	SamFn      string
	OutFn      string
	Align      align.Options
	TagLen     int
	Limit      int
	ChooseBy   cluster.Policy
	Prepend    bool
	NoOutput   bool
	Human      bool
	Viz        string
	VizFormat  string
}

func checkCommonArgs(c cli.Command) (opt Options) {
	utils.ParseGlobalArgs(c)
	opt.FamiliesFn = utils.StringFlag(c, "families")
	if opt.FamiliesFn == "" {
		log.Fatalf("[checkCommonArgs] args 'families' not set\n")
	}
	opt.ReadsFn = utils.StringFlag(c, "reads")
	if opt.ReadsFn == "" {
		log.Fatalf("[checkCommonArgs] args 'reads' not set\n")
	}
	opt.SamFn = utils.StringFlag(c, "sam")
	opt.Limit = utils.IntFlag(c, "limit")
	opt.Align = align.Options{
		PosTol:  utils.IntFlag(c, "pos"),
		MinMapQ: utils.IntFlag(c, "mapq"),
		MaxDist: utils.IntFlag(c, "dist"),
		Limit:   opt.Limit,
	}
	return opt
}

// loadInputs runs the shared front half of both subcommands and returns the
// barcode graph and the family counts, fully materialized. Nothing downstream
// can stream: a correction needs the whole component.
func loadInputs(opt Options) (*cluster.Graph, map[string]families.Counts) {
	utils.Logf("Reading %s to map read names to barcodes..", opt.ReadsFn)
	names := reads.MapNamesToBarcodes(opt.ReadsFn, opt.Limit)
	utils.Logf("Reading %s to build the graph of barcode relationships..", opt.SamFn)
	graph := align.ReadAlignments(opt.SamFn, names, opt.Align)
	utils.Logf("Reading %s to get the counts of each family..", opt.FamiliesFn)
	counts := families.GetFamilyCounts(opt.FamiliesFn, opt.Limit)
	return graph, counts
}

// Correct is the handler of the correct subcommand.
func Correct(c cli.Command) {
	opt := checkCommonArgs(c)
	opt.OutFn = utils.StringFlag(c, "out")
	opt.TagLen = utils.IntFlag(c, "tagLen")
	opt.Prepend = utils.BoolFlag(c, "Prepend")
	opt.NoOutput = utils.BoolFlag(c, "NoOutput")
	var err error
	opt.ChooseBy, err = cluster.ParsePolicy(utils.StringFlag(c, "chooseBy"))
	if err != nil {
		log.Fatalf("[Correct] args 'chooseBy': %v\n", err)
	}

	graph, counts := loadInputs(opt)
	utils.Logf("Building the correction table from the graph..")
	corrections, err := cluster.MakeCorrectionTable(graph, counts, opt.ChooseBy)
	if err != nil {
		log.Fatalf("[Correct] %v\n", err)
	}
	utils.Logf("Reading %s again to print corrected output..", opt.FamiliesFn)
	out := fileio.Create(opt.OutFn)
	families.PrintCorrected(opt.FamiliesFn, out, corrections, opt.Prepend, opt.TagLen, opt.Limit, !opt.NoOutput)
	if err := out.Close(); err != nil {
		log.Fatalf("[Correct] close %s failed, err: %v\n", opt.OutFn, err)
	}
}

// Structures is the handler of the structures subcommand.
func Structures(c cli.Command) {
	opt := checkCommonArgs(c)
	opt.Human = utils.BoolFlag(c, "Human")
	opt.Viz = utils.StringFlag(c, "Viz")
	opt.VizFormat = utils.StringFlag(c, "VizFormat")

	graph, counts := loadInputs(opt)
	utils.Logf("Counting the unique barcode networks..")
	structures, err := structure.CountStructures(graph, counts)
	if err != nil {
		log.Fatalf("[Structures] %v\n", err)
	}
	structure.Print(os.Stdout, structures, opt.Human)
	if opt.Viz != "" {
		utils.Logf("Generating a visualization of barcode networks..")
		structure.Render(structures, opt.Viz, opt.VizFormat)
	}
}
