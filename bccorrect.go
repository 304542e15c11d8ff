package main

import (
	"github.com/jwaldrip/odin/cli"

	"bccorrect/correct"
)

var app = cli.New("1.0.0", "Correct sequencing barcodes using an alignment of all barcodes to themselves", func(c cli.Command) {})

func init() {
	app.DefineBoolFlag("v", false, "log per-family corrected/uncorrected lines")
	app.DefineBoolFlag("q", false, "only log errors")

	correctCmd := app.DefineSubCommand("correct", "rewrite a families file with corrected barcodes", correct.Correct)
	{
		correctCmd.DefineStringFlag("families", "families.tsv", "sorted families file: tab-delimited, barcode then order(ab|ba), sorted by barcode in the same order as the reads file")
		correctCmd.DefineStringFlag("reads", "barcodes.fa", "fasta/fastq file given to the aligner; read names are the 1-based family row numbers")
		correctCmd.DefineStringFlag("sam", "-", "barcode self-alignment in SAM format, '-' for stdin")
		correctCmd.DefineStringFlag("out", "-", "corrected families output, '-' for stdout")
		correctCmd.DefineIntFlag("dist", 1, "NM edit distance threshold")
		correctCmd.DefineIntFlag("mapq", 20, "MAPQ threshold")
		correctCmd.DefineIntFlag("pos", 2, "POS tolerance; alignments are ignored if abs(POS-1) is greater, set above the barcode length for no threshold")
		correctCmd.DefineIntFlag("tagLen", 0, "length of each half of the barcode, 0 to infer from the first family")
		correctCmd.DefineStringFlag("chooseBy", "reads", "how to choose the canonical barcode[reads|connectivity]")
		correctCmd.DefineIntFlag("limit", 0, "only read this many records from each input, for testing[0 for no limit]")
		correctCmd.DefineBoolFlag("Prepend", false, "prepend the corrected barcode to the original columns instead of replacing")
		correctCmd.DefineBoolFlag("NoOutput", false, "skip printing the corrected families")
	}

	structCmd := app.DefineSubCommand("structures", "report the unique isomorphic shapes of the barcode networks", correct.Structures)
	{
		structCmd.DefineStringFlag("families", "families.tsv", "sorted families file, as for correct")
		structCmd.DefineStringFlag("reads", "barcodes.fa", "fasta/fastq file given to the aligner")
		structCmd.DefineStringFlag("sam", "-", "barcode self-alignment in SAM format, '-' for stdin")
		structCmd.DefineIntFlag("dist", 1, "NM edit distance threshold")
		structCmd.DefineIntFlag("mapq", 20, "MAPQ threshold")
		structCmd.DefineIntFlag("pos", 2, "POS tolerance")
		structCmd.DefineIntFlag("limit", 0, "only read this many records from each input[0 for no limit]")
		structCmd.DefineBoolFlag("Human", false, "print the structure table aligned for reading")
		structCmd.DefineStringFlag("Viz", "", "write a visualization of the unique structures to this file")
		structCmd.DefineStringFlag("VizFormat", "dot", "visualization format[dot|png]")
	}
}

func main() {
	app.Start()
}
