package cmd

import (
	"flag"
	"log"
	"os"

	"github.com/exascience/pandora-go/config"
	"github.com/exascience/pandora-go/genotype"
	"github.com/exascience/pandora-go/orchestrator"
	"github.com/exascience/pandora-go/vcf"
)

// MapHelp documents the `pandora map` subcommand.
const MapHelp = "pandora map --prg file.prgs --reads reads.tsv --sample name [--w 14] [--k 15]\n" +
	"  [--error-rate 0.05] [--genotype prob] [--min-covg 1] [--vcf out.vcf]\n" +
	"Align one sample's reads against a PRG collection and call its variants.\n"

// Map implements the `map` subcommand: rebuild the index, align one
// sample's reads, call its variants, and (optionally) scan for de novo
// candidate regions, per spec §5's per-sample pipeline.
func Map() error {
	var opts config.MapOptions
	flags := flag.NewFlagSet("map", flag.ContinueOnError)
	flags.StringVar(&opts.PRGFile, "prg", "", "PRG collection file")
	flags.StringVar(&opts.ReadFile, "reads", "", "read file for the sample")
	flags.StringVar(&opts.Sample, "sample", "", "sample name")
	flags.StringVar(&opts.VCFFile, "vcf", "", "output VCF file")
	flags.StringVar(&opts.BedFile, "candidates-bed", "", "optional BED output for de novo candidate regions")
	w := flags.Uint("w", 14, "minimizer window size")
	k := flags.Uint("k", 15, "k-mer size")
	flags.IntVar(&opts.Threads, "threads", 1, "number of worker threads")
	flags.Float64Var(&opts.ErrorRate, "error-rate", 0.05, "expected per-base sequencing error rate")
	flags.StringVar(&opts.ScoreModel, "genotype", "prob", "scoring model: prob, nbprob or linprob")
	minCovg := flags.Uint("min-covg", 1, "minimum coverage below which a locus window is a de novo candidate")
	minGapLen := flags.Int("min-gap-len", 1, "minimum gap length (bases) to report as a de novo candidate region")
	flags.StringVar(&opts.LogPath, "log", "", "directory to write the run log into")
	flags.BoolVar(&opts.Timed, "timed", false, "print phase timing")
	flags.StringVar(&opts.Profile, "profile", "", "CPU profile filename prefix")
	parseFlags(*flags, 2, MapHelp)
	opts.W, opts.K = uint32(*w), uint32(*k)
	opts.MinCovg, opts.MinGapLen = uint32(*minCovg), int32(*minGapLen)

	if !checkExist("--prg", opts.PRGFile) || !checkExist("--reads", opts.ReadFile) {
		os.Exit(1)
	}
	if opts.Sample == "" {
		log.Println("Error: --sample is required.")
		os.Exit(1)
	}
	if opts.VCFFile != "" && !checkCreate("--vcf", opts.VCFFile) {
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
	reads, err := loadReads(opts.ReadFile)
	if err != nil {
		return err
	}

	gopts := &genotype.Options{
		SampleExpDepthCovg: []float64{30},
		ErrorRate:          opts.ErrorRate,
		MinKmerCovg:        opts.MinCovg,
	}
	o := orchestrator.New(prgs, opts.W, opts.K, opts.Threads, []string{opts.Sample}, gopts)
	o.ScoreModel = opts.ScoreModel

	timedRun(opts.Timed, opts.Profile, "Building index", 0, o.BuildIndex)
	timedRun(opts.Timed, opts.Profile, "Aligning reads", 1, func() {
		o.AlignReads(opts.Sample, reads)
	})

	out := vcf.New()
	timedRun(opts.Timed, opts.Profile, "Calling variants", 2, func() {
		if err = o.CallVariants(opts.Sample, out); err != nil {
			log.Println("Error calling variants:", err)
		}
	})
	if err != nil {
		return err
	}

	if opts.VCFFile != "" {
		if err := out.Save(opts.VCFFile, vcf.SaveFilter{}); err != nil {
			return err
		}
	}

	if opts.BedFile != "" {
		regions := o.FindCandidateRegions(opts.Sample, opts.MinCovg, opts.MinGapLen)
		log.Println("Found", len(regions), "de novo candidate regions")
		if len(regions) > 0 {
			if err := orchestrator.WriteCandidateBed(regions, o.Loci, opts.BedFile); err != nil {
				return err
			}
		}
	}
	return nil
}
