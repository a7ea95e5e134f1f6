// Package vcf implements the VCF record model for pandora-go's variant
// calls (§4.7): one record per site, SVTYPE classification inferred from
// ref/alt the same way the C++ prototype does, and per-sample FORMAT
// data keyed by interned symbols, in elprep's utils.SmallMap/utils.Symbol
// idiom rather than a plain map[string]interface{}.
package vcf

import (
	"fmt"
	"strings"

	"github.com/exascience/pandora-go/utils"
)

// Commonly used FORMAT/INFO keys, interned once like elprep's own
// vcf package interns END/GT/PASS.
var (
	GT       = utils.Intern("GT")
	SVTYPE   = utils.Intern("SVTYPE")
	GraphTyp = utils.Intern("GRAPHTYPE")
)

// SVType is the INFO SVTYPE classification of a record, inferred the
// same way original_source/src/vcfrecord.cpp's constructor does.
type SVType string

const (
	SVNone    SVType = ""
	SVSNP     SVType = "SNP"
	SVPhSNPs  SVType = "PH_SNPs"
	SVIndel   SVType = "INDEL"
	SVComplex SVType = "COMPLEX"
)

// GraphType is the optional INFO GRAPHTYPE annotation describing which
// kind of graph bubble a record came from.
type GraphType string

const (
	GraphNone        GraphType = ""
	GraphSimple      GraphType = "SIMPLE"
	GraphNested      GraphType = "NESTED"
	GraphTooManyAlts GraphType = "TOO_MANY_ALTS"
)

// VCFRecord is one VCF data line: position, ref/alt alleles, the
// inferred SVTYPE/GRAPHTYPE, the FORMAT key order, and one SmallMap of
// FORMAT values per sample column.
type VCFRecord struct {
	Chrom     string
	Pos       uint32
	ID        string
	Ref       string
	Alt       string
	Qual      string
	Filter    string
	SVType    SVType
	GraphType GraphType
	Format    []utils.Symbol
	Samples   []utils.SmallMap
}

// NewVCFRecord builds a record, classifying its SVTYPE from ref/alt
// exactly as original_source's VCFRecord constructor does (the
// prefix-match INDEL heuristic: when the shorter allele is a leading
// prefix of the longer one, the difference is an indel, not a complex
// substitution), unless svType is already given (non-empty).
func NewVCFRecord(chrom string, pos uint32, ref, alt string, svType SVType, graphType GraphType) *VCFRecord {
	if ref == "" {
		ref = "."
	}
	if alt == "" {
		alt = "."
	}
	if svType == SVNone {
		svType = classifySVType(ref, alt)
	}
	return &VCFRecord{
		Chrom: chrom, Pos: pos, ID: ".", Ref: ref, Alt: alt,
		Qual: ".", Filter: ".",
		SVType: svType, GraphType: graphType,
		Format: []utils.Symbol{GT},
	}
}

// classifySVType mirrors vcfrecord.cpp's if-else chain verbatim:
// both-epsilon alleles get no SVTYPE; one epsilon allele is an INDEL;
// equal-length single-base alleles are a SNP; equal-length
// multi-base alleles are phased SNPs; otherwise, if the shorter allele
// is a leading prefix of the longer, it's an INDEL; anything else is
// COMPLEX.
func classifySVType(ref, alt string) SVType {
	switch {
	case ref == "." && alt == ".":
		return SVNone
	case ref == "." || alt == ".":
		return SVIndel
	case len(ref) == 1 && len(alt) == 1:
		return SVSNP
	case len(ref) == len(alt):
		return SVPhSNPs
	case len(ref) < len(alt) && strings.HasPrefix(alt, ref):
		return SVIndel
	case len(alt) < len(ref) && strings.HasPrefix(ref, alt):
		return SVIndel
	default:
		return SVComplex
	}
}

// Info renders the INFO column from SVType/GraphType, "." if neither is
// set.
func (r *VCFRecord) Info() string {
	var parts []string
	if r.SVType != SVNone {
		parts = append(parts, fmt.Sprintf("SVTYPE=%s", r.SVType))
	}
	if r.GraphType != GraphNone {
		parts = append(parts, fmt.Sprintf("GRAPHTYPE=%s", r.GraphType))
	}
	if len(parts) == 0 {
		return "."
	}
	return strings.Join(parts, ";")
}

// AddFormats appends any formats not already present, preserving order.
func (r *VCFRecord) AddFormats(formats []utils.Symbol) {
	for _, f := range formats {
		found := false
		for _, existing := range r.Format {
			if existing == f {
				found = true
				break
			}
		}
		if !found {
			r.Format = append(r.Format, f)
		}
	}
}

// SiteKey identifies a record's equivalence class for VCF.AddRecord's
// dedup scan and for VCFRecord.Equal: chrom/pos/ref/alt, matching
// original_source's operator== (which deliberately ignores INFO/FORMAT
// so that two calls differing only in annotation still merge — see
// DESIGN.md's Open Question decision 4).
func (r *VCFRecord) SiteKey() [4]string {
	return [4]string{r.Chrom, fmt.Sprint(r.Pos), r.Ref, r.Alt}
}

// Equal reports site equality only (chrom/pos/ref/alt), not full
// structural equality; see SiteKey.
func (r *VCFRecord) Equal(other *VCFRecord) bool {
	return r.SiteKey() == other.SiteKey()
}

// Less orders records by (chrom, pos, ref, alt), mirroring
// original_source's operator< used by sort_records.
func (r *VCFRecord) Less(other *VCFRecord) bool {
	if r.Chrom != other.Chrom {
		return r.Chrom < other.Chrom
	}
	if r.Pos != other.Pos {
		return r.Pos < other.Pos
	}
	if r.Ref != other.Ref {
		return r.Ref < other.Ref
	}
	return r.Alt < other.Alt
}

// String renders one VCF data line, tab-separated, FORMAT fields
// colon-joined, "." for any sample lacking a FORMAT entry.
func (r *VCFRecord) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s",
		r.Chrom, r.Pos, r.ID, r.Ref, r.Alt, r.Qual, r.Filter, r.Info(), joinSymbols(r.Format))
	for _, sample := range r.Samples {
		b.WriteByte('\t')
		for i, f := range r.Format {
			if i > 0 {
				b.WriteByte(':')
			}
			if v, ok := sample.Get(f); ok {
				fmt.Fprintf(&b, "%v", v)
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}

func joinSymbols(syms []utils.Symbol) string {
	parts := make([]string, len(syms))
	for i, s := range syms {
		parts[i] = *s
	}
	return strings.Join(parts, ":")
}
