package cmd

import (
	"log"
	"os"

	"flag"

	"github.com/exascience/pandora-go/config"
	"github.com/exascience/pandora-go/genotype"
	"github.com/exascience/pandora-go/orchestrator"
	"github.com/exascience/pandora-go/vcf"
)

// CompareHelp documents the `pandora compare` subcommand.
const CompareHelp = "pandora compare --prg file.prgs --samples s1,s2,... --reads r1.tsv,r2.tsv,...\n" +
	"  [--w 14] [--k 15] [--error-rate 0.05] [--genotype prob] --vcf out.vcf\n" +
	"Jointly genotype several samples against the same PRG collection into one VCF.\n"

// Compare implements the `compare` subcommand: build one index, align
// every listed sample against it, and call variants for all of them into
// a single multi-sample VCF, per the original tool's own "compare" mode
// (genotyping several samples against a shared pangenome jointly rather
// than one at a time).
func Compare() error {
	var opts config.CompareOptions
	var samples, reads string
	flags := flag.NewFlagSet("compare", flag.ContinueOnError)
	flags.StringVar(&opts.PRGFile, "prg", "", "PRG collection file")
	flags.StringVar(&samples, "samples", "", "comma-separated sample names")
	flags.StringVar(&reads, "reads", "", "comma-separated read files, one per sample, same order as --samples")
	flags.StringVar(&opts.VCFFile, "vcf", "", "output VCF file")
	w := flags.Uint("w", 14, "minimizer window size")
	k := flags.Uint("k", 15, "k-mer size")
	flags.IntVar(&opts.Threads, "threads", 1, "number of worker threads")
	flags.Float64Var(&opts.ErrorRate, "error-rate", 0.05, "expected per-base sequencing error rate")
	flags.StringVar(&opts.ScoreModel, "genotype", "prob", "scoring model: prob, nbprob or linprob")
	flags.StringVar(&opts.LogPath, "log", "", "directory to write the run log into")
	flags.BoolVar(&opts.Timed, "timed", false, "print phase timing")
	flags.StringVar(&opts.Profile, "profile", "", "CPU profile filename prefix")
	parseFlags(*flags, 2, CompareHelp)
	opts.W, opts.K = uint32(*w), uint32(*k)
	opts.Samples = splitList(samples)
	opts.ReadFiles = splitList(reads)

	if !checkExist("--prg", opts.PRGFile) {
		os.Exit(1)
	}
	if len(opts.Samples) == 0 || len(opts.Samples) != len(opts.ReadFiles) {
		log.Println("Error: --samples and --reads must both be set, with the same number of comma-separated entries.")
		os.Exit(1)
	}
	for _, r := range opts.ReadFiles {
		if !checkExist("--reads", r) {
			os.Exit(1)
		}
	}
	if !checkCreate("--vcf", opts.VCFFile) {
		os.Exit(1)
	}
	model, err := scoreFunc(opts.ScoreModel)
	if err != nil {
		return err
	}
	opts.ScoreModel = model

	setLogOutput(opts.LogPath)

	prgs, err := loadPRGs(opts.PRGFile)
	if err != nil {
		return err
	}

	readsBySample := make(map[string][]orchestrator.Read, len(opts.Samples))
	for i, sample := range opts.Samples {
		rs, err := loadReads(opts.ReadFiles[i])
		if err != nil {
			return err
		}
		readsBySample[sample] = rs
	}

	gopts := &genotype.Options{
		SampleExpDepthCovg: make([]float64, len(opts.Samples)),
		ErrorRate:          opts.ErrorRate,
	}
	for i := range gopts.SampleExpDepthCovg {
		gopts.SampleExpDepthCovg[i] = 30
	}

	o := orchestrator.New(prgs, opts.W, opts.K, opts.Threads, opts.Samples, gopts)
	o.ScoreModel = opts.ScoreModel

	timedRun(opts.Timed, opts.Profile, "Building index", 0, o.BuildIndex)
	timedRun(opts.Timed, opts.Profile, "Aligning all samples", 1, func() {
		o.AlignAllSamples(readsBySample)
	})

	out := vcf.New()
	var callErr error
	timedRun(opts.Timed, opts.Profile, "Calling variants", 2, func() {
		for _, sample := range opts.Samples {
			if err := o.CallVariants(sample, out); err != nil {
				callErr = err
				return
			}
		}
	})
	if callErr != nil {
		return callErr
	}

	return out.Save(opts.VCFFile, vcf.SaveFilter{})
}
