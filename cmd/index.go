package cmd

import (
	"flag"
	"log"
	"os"

	"github.com/exascience/pandora-go/config"
	"github.com/exascience/pandora-go/index"
	"github.com/exascience/pandora-go/orchestrator"
)

// IndexHelp documents the `pandora index` subcommand.
const IndexHelp = "pandora index --prg file.prgs [--w 14] [--k 15] [--threads N] --out index.idx\n" +
	"Build the global minimizer index over a PRG collection.\n"

// Index implements the `index` subcommand: build the kmer-PRGs and
// global minimizer Index for a PRG collection and save it to disk, the
// first phase of the pipeline spec §5 describes.
func Index() error {
	var opts config.IndexOptions
	flags := flag.NewFlagSet("index", flag.ContinueOnError)
	flags.StringVar(&opts.PRGFile, "prg", "", "PRG collection file")
	flags.StringVar(&opts.IndexFile, "out", "", "output index file")
	w := flags.Uint("w", 14, "minimizer window size")
	k := flags.Uint("k", 15, "k-mer size")
	flags.IntVar(&opts.Threads, "threads", 1, "number of worker threads")
	flags.StringVar(&opts.LogPath, "log", "", "directory to write the run log into")
	flags.BoolVar(&opts.Timed, "timed", false, "print phase timing")
	flags.StringVar(&opts.Profile, "profile", "", "CPU profile filename prefix")
	parseFlags(*flags, 2, IndexHelp)
	opts.W, opts.K = uint32(*w), uint32(*k)

	if !checkExist("--prg", opts.PRGFile) || !checkCreate("--out", opts.IndexFile) {
		os.Exit(1)
	}
	if !checkPositive("--threads", opts.Threads, "threads") {
		os.Exit(1)
	}

	setLogOutput(opts.LogPath)

	prgs, err := loadPRGs(opts.PRGFile)
	if err != nil {
		return err
	}

	o := orchestrator.New(prgs, opts.W, opts.K, opts.Threads, nil, nil)
	timedRun(opts.Timed, opts.Profile, "Building index", 0, o.BuildIndex)

	return save(o.Index, opts.IndexFile)
}

func save(idx *index.Index, path string) error {
	log.Println("Saving index to", path)
	return idx.Save(path)
}
