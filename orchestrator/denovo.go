package orchestrator

import (
	"fmt"

	"github.com/exascience/pandora-go/bed"
	"github.com/exascience/pandora-go/denovo"
	"github.com/exascience/pandora-go/utils"
)

// FindCandidateRegions scans every locus's coverage for sampleName for
// low-coverage windows worth re-assembling (§4.8), completing the data
// flow "low-coverage windows on chosen path → CandidateRegion" ahead of
// local assembly proper, which callers drive themselves via denovo.Discover
// since it needs an Assembler this package does not own.
func (o *Orchestrator) FindCandidateRegions(sampleName string, minCovg uint32, minGapLen int32) []denovo.CandidateRegion {
	sampleID := o.sampleIndex(sampleName)
	if sampleID < 0 {
		panic("orchestrator: unknown sample " + sampleName)
	}

	var regions []denovo.CandidateRegion
	for _, loc := range o.Loci {
		if loc.Coverage == nil {
			continue
		}
		regions = append(regions, denovo.FindCandidateRegions(loc.Coverage, loc.PRG, sampleID, minCovg, minGapLen)...)
	}
	return regions
}

// WriteCandidateBed exports regions as a BED file, one interval per
// candidate region, for external inspection alongside whatever FASTA
// files local assembly eventually produces for them.
func WriteCandidateBed(regions []denovo.CandidateRegion, loci map[uint32]*Locus, filename string) error {
	b := bed.NewBed()
	for _, r := range regions {
		name := ""
		if loc, ok := loci[r.PrgID]; ok {
			name = loc.PRG.Name
		}
		region, err := bed.NewRegion(
			utils.Intern(regionChrom(name, r.PrgID)),
			r.Path.Start,
			r.Path.End,
			nil,
		)
		if err != nil {
			return err
		}
		bed.AddRegion(b, region)
	}
	return bed.WriteBed(b, filename)
}

func regionChrom(name string, prgID uint32) string {
	if name == "" {
		return fmt.Sprintf("prg_%d", prgID)
	}
	return name
}
