package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/exascience/pandora-go/localprg"
	"github.com/exascience/pandora-go/orchestrator"
)

// loadPRGs reads one linear PRG per line from filename, each line
// "id\tname\tsequence". Full PRG-string (bubble) parsing is out of this
// module's scope (see DESIGN.md): the core packages operate on an
// already-built localprg.LocalPRG, and nothing in the retrieved example
// pack provides a PRG-string grammar parser to adapt, so the CLI's own
// input format is kept to the one PRG shape localprg already constructs
// directly, localprg.NewLinearLocalPRG.
func loadPRGs(filename string) ([]*localprg.LocalPRG, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var prgs []*localprg.LocalPRG
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.SplitN(line, "\t", 3)
		if len(fields) != 3 {
			return nil, fmt.Errorf("cmd: malformed PRG line %q", line)
		}
		id, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return nil, err
		}
		prgs = append(prgs, localprg.NewLinearLocalPRG(uint32(id), fields[1], fields[2]))
	}
	return prgs, scanner.Err()
}

// loadReads reads one read per line from filename, each line
// "id\tsequence", the same minimal-format rationale as loadPRGs: no
// FASTA/FASTQ parser exists in this module (an explicit Non-goal), so
// the CLI speaks the narrowest format orchestrator.Read itself needs.
func loadReads(filename string) ([]orchestrator.Read, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reads []orchestrator.Read
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.SplitN(line, "\t", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("cmd: malformed read line %q", line)
		}
		id, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return nil, err
		}
		reads = append(reads, orchestrator.Read{ID: uint32(id), Seq: fields[1]})
	}
	return reads, scanner.Err()
}

func scoreFunc(name string) (string, error) {
	switch strings.ToLower(name) {
	case "", "prob":
		return "prob", nil
	case "nbprob":
		return "nbprob", nil
	case "linprob":
		return "linprob", nil
	default:
		return "", fmt.Errorf("cmd: unknown --genotype model %q (want prob, nbprob or linprob)", name)
	}
}
