// pandora is a pangenome-guided variant-calling and de novo discovery
// engine: it builds a minimizer index over a collection of per-locus
// PRGs (pan-genome Reference Graphs), aligns reads against that index,
// and genotypes samples from the resulting per-locus coverage.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/exascience/pandora-go/cmd"
)

func printHelp() {
	fmt.Fprintln(os.Stderr, "Available commands: index, map, compare")
	fmt.Fprint(os.Stderr, "\n", cmd.IndexHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.MapHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.CompareHelp)
}

func main() {
	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	if len(os.Args) < 2 {
		log.Println("Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, cmd.HelpMessage)
		printHelp()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "index":
		err = cmd.Index()
	case "map":
		err = cmd.Map()
	case "compare":
		err = cmd.Compare()
	case "help", "-help", "--help", "-h", "--h":
		printHelp()
	default:
		fmt.Fprintln(os.Stderr, "Unknown command:", os.Args[1])
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}
