package vcf

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/exascience/pandora-go/localprg"
	"github.com/exascience/pandora-go/utils"
)

// VCF is an in-memory variant-call set for one pangenome run: every
// called record plus the ordered list of sample names contributing
// genotype columns. Grounded on original_source/src/vcf.cpp.
type VCF struct {
	Records []*VCFRecord
	Samples []string
}

// New allocates an empty VCF.
func New() *VCF {
	return &VCF{}
}

// AddRecord appends vr unless a record with the same site key is
// already present (original_source's add_record dedup-by-equality
// scan), backfilling it with one empty SmallMap per existing sample
// column.
func (v *VCF) AddRecord(vr *VCFRecord) *VCFRecord {
	for _, existing := range v.Records {
		if existing.Equal(vr) {
			return existing
		}
	}
	vr.Samples = make([]utils.SmallMap, len(v.Samples))
	v.Records = append(v.Records, vr)
	return vr
}

// AddRecordFields is the convenience form of AddRecord building the
// VCFRecord from its fields directly.
func (v *VCF) AddRecordFields(chrom string, pos uint32, ref, alt string, svType SVType, graphType GraphType) *VCFRecord {
	return v.AddRecord(NewVCFRecord(chrom, pos, ref, alt, svType, graphType))
}

// GetSampleIndex returns name's sample column index, adding a new
// column (and backfilling every existing record with an empty
// SmallMap) the first time name is seen.
func (v *VCF) GetSampleIndex(name string) int {
	for i, s := range v.Samples {
		if s == name {
			return i
		}
	}
	v.Samples = append(v.Samples, name)
	for _, r := range v.Records {
		r.Samples = append(r.Samples, utils.SmallMap{})
	}
	return len(v.Samples) - 1
}

// AddSampleGT records that sample saw ref/alt at chrom:pos, setting
// GT=1 on the matching record (or GT=0 on the record carrying ref as
// its own ref/alt if this sample actually has the reference allele),
// and, if no record at all matches, adding a new COMPLEX/TOO_MANY_ALTS
// record for a previously-unseen allele — mirroring
// original_source/src/vcf.cpp's add_sample_gt.
func (v *VCF) AddSampleGT(sampleName, chrom string, pos uint32, ref, alt string) {
	if ref == "" && alt == "" {
		return
	}
	sampleIndex := v.GetSampleIndex(sampleName)

	key := NewVCFRecord(chrom, pos, ref, alt, SVNone, GraphNone).SiteKey()
	var target *VCFRecord
	for _, r := range v.Records {
		if r.SiteKey() == key {
			target = r
			break
		}
	}
	if target != nil {
		target.Samples[sampleIndex].Set(GT, 1)
	} else {
		found := false
		for _, r := range v.Records {
			if r.Pos == pos && ref == alt && r.Ref == ref {
				r.Samples[sampleIndex].Set(GT, 0)
				target = r
				found = true
			}
		}
		if !found && ref != alt {
			target = v.AddRecordFields(chrom, pos, ref, alt, SVComplex, GraphTooManyAlts)
			target.Samples[sampleIndex].Set(GT, 1)
			found = true
		}
		if !found {
			panic("vcf: add_sample_gt could not place a record for an existing reference call")
		}
	}

	// Every other record whose ref span covers pos and whose sample
	// already carries GT=0 there (or has no GT at all — vcf.cpp's
	// map::operator[] default-constructs a missing GT to 0) is kept
	// consistent with target.
	for _, r := range v.Records {
		if r.Pos <= pos && r.Pos+uint32(len(r.Ref)) > pos {
			for j := range r.Samples {
				gt, ok := r.Samples[j].Get(GT)
				if !ok || gt == 0 {
					target.Samples[j].Set(GT, 0)
				}
			}
		}
	}
}

// AddSampleRefAlleles marks sampleName as carrying the reference allele
// (GT=0) at every record fully contained in [pos, posTo) on chrom.
func (v *VCF) AddSampleRefAlleles(sampleName, chrom string, pos, posTo uint32) {
	sampleIndex := v.GetSampleIndex(sampleName)
	for _, r := range v.Records {
		if pos <= r.Pos && r.Pos+uint32(len(r.Ref)) <= posTo && r.Chrom == chrom {
			r.Samples[sampleIndex].Set(GT, 0)
		}
	}
}

// Clear empties the record set, keeping the sample column list.
func (v *VCF) Clear() {
	v.Records = nil
}

// SortRecords sorts records in place by (chrom, pos, ref, alt).
func (v *VCF) SortRecords() {
	sort.Slice(v.Records, func(i, j int) bool { return v.Records[i].Less(v.Records[j]) })
}

// PosInRange reports whether any record's ref span starts after from
// and ends at or before to.
func (v *VCF) PosInRange(from, to uint32) bool {
	for _, r := range v.Records {
		if from < r.Pos && r.Pos+uint32(len(r.Ref)) <= to {
			return true
		}
	}
	return false
}

// SaveFilter selects which records Save writes. A zero-value SaveFilter
// (every field false) matches original_source's "no filter flags set"
// case: everything is saved.
type SaveFilter struct {
	Simple, ComplexGraph, TooManyAlts bool
	SNP, Indel, PhSNPs, ComplexVar    bool
}

func (f SaveFilter) graphMatches(r *VCFRecord) bool {
	if !f.Simple && !f.ComplexGraph && !f.TooManyAlts {
		return true
	}
	return (f.Simple && r.GraphType == GraphSimple) ||
		(f.ComplexGraph && r.GraphType == GraphNested) ||
		(f.TooManyAlts && r.GraphType == GraphTooManyAlts)
}

func (f SaveFilter) svMatches(r *VCFRecord) bool {
	if !f.SNP && !f.Indel && !f.PhSNPs && !f.ComplexVar {
		return true
	}
	return (f.SNP && r.SVType == SVSNP) ||
		(f.Indel && r.SVType == SVIndel) ||
		(f.PhSNPs && r.SVType == SVPhSNPs) ||
		(f.ComplexVar && r.SVType == SVComplex)
}

const vcfHeader = `##fileformat=VCFv4.3
##ALT=<ID=SNP,Description="SNP">
##ALT=<ID=PH_SNPs,Description="Phased SNPs">
##ALT=<ID=INDEL,Description="Insertion-deletion">
##ALT=<ID=COMPLEX,Description="Complex variant, collection of SNPs and indels">
##INFO=<ID=SVTYPE,Number=1,Type=String,Description="Type of variant">
##ALT=<ID=SIMPLE,Description="Graph bubble is simple">
##ALT=<ID=NESTED,Description="Variation site was a nested feature in the graph">
##ALT=<ID=TOO_MANY_ALTS,Description="Variation site was a multinested feature with too many alts to include all in the VCF">
##INFO=<ID=GRAPHTYPE,Number=1,Type=String,Description="Type of graph feature">`

// Save writes every record passing filter to path, sorted, preceded by
// the fixed VCFv4.3 header original_source emits.
func (v *VCF) Save(path string, filter SaveFilter) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(f)

	if _, err = fmt.Fprintf(w, "%s\n##fileDate==%s\n", vcfHeader, time.Now().Format("02/01/06")); err != nil {
		return err
	}
	if _, err = fmt.Fprint(w, "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT"); err != nil {
		return err
	}
	for _, s := range v.Samples {
		if _, err = fmt.Fprintf(w, "\t%s", s); err != nil {
			return err
		}
	}
	if _, err = w.WriteString("\n"); err != nil {
		return err
	}

	v.SortRecords()
	for _, r := range v.Records {
		if filter.graphMatches(r) && filter.svMatches(r) {
			if _, err = fmt.Fprintln(w, r.String()); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}

// Load reads records back from a file written by Save, appending to any
// records already present (mirroring original_source's load, which
// does not clear first).
func (v *VCF) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || line[0] == '#' {
			continue
		}
		r, err := parseVCFRecordLine(line)
		if err != nil {
			return err
		}
		v.AddRecord(r)
	}
	return scanner.Err()
}

func parseVCFRecordLine(line string) (*VCFRecord, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 9 {
		return nil, fmt.Errorf("vcf: malformed record line %q", line)
	}
	pos, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return nil, err
	}
	r := &VCFRecord{
		Chrom: fields[0], Pos: uint32(pos), ID: fields[2],
		Ref: fields[3], Alt: fields[4], Qual: fields[5], Filter: fields[6],
	}
	for _, kv := range strings.Split(fields[7], ";") {
		switch {
		case strings.HasPrefix(kv, "SVTYPE="):
			r.SVType = SVType(kv[len("SVTYPE="):])
		case strings.HasPrefix(kv, "GRAPHTYPE="):
			r.GraphType = GraphType(kv[len("GRAPHTYPE="):])
		}
	}
	for _, name := range strings.Split(fields[8], ":") {
		r.Format = append(r.Format, utils.Intern(name))
	}
	for _, col := range fields[9:] {
		sm := utils.SmallMap{}
		values := strings.Split(col, ":")
		for i, val := range values {
			if i >= len(r.Format) || val == "." {
				continue
			}
			n, err := strconv.Atoi(val)
			if err != nil {
				return nil, err
			}
			sm.Set(r.Format[i], n)
		}
		r.Samples = append(r.Samples, sm)
	}
	return r, nil
}

// WriteAlignedFasta emits one aligned sequence per sample, built by
// walking the reference walk lmp and, at each called site, splicing in
// either the reference or the sample's called alt allele (padding with
// '-' so every sample's sequence stays the same length), mirroring
// original_source's write_aligned_fasta.
func (v *VCF) WriteAlignedFasta(path string, lmp []*localprg.LocalNode) (err error) {
	v.SortRecords()
	if len(lmp) == 0 || len(v.Samples) == 0 {
		return nil
	}

	seqs := make([]strings.Builder, len(v.Samples))
	altUntil := make([]uint32, len(v.Samples))
	maxLen := 0
	refLen := uint32(0)
	n := 0
	prevPos := int64(-1)

	padTo := func(target int) {
		for j := range seqs {
			for seqs[j].Len() < target {
				seqs[j].WriteByte('-')
			}
		}
	}

	for _, r := range v.Records {
		if int64(r.Pos) != prevPos {
			padTo(maxLen)
			for refLen < r.Pos && n < len(lmp) {
				for j := range v.Samples {
					if altUntil[j] < r.Pos {
						seqs[j].WriteString(lmp[n].Seq)
					}
				}
				refLen += uint32(len(lmp[n].Seq))
				n++
			}
		}
		for j := range v.Samples {
			// A sample with no GT recorded at a record it covers is
			// treated as carrying the reference allele there, matching
			// original_source's map::operator[] default-constructing a
			// missing GT to 0.
			gt, ok := r.Samples[j].Get(GT)
			switch {
			case (!ok || gt == 0) && int64(r.Pos) != prevPos && !v.PosInRange(r.Pos, r.Pos+uint32(len(r.Ref))):
				seqs[j].WriteString(r.Ref)
				if seqs[j].Len() > maxLen {
					maxLen = seqs[j].Len()
				}
				refLen += uint32(len(r.Ref))
				n++
			case ok && gt == 1:
				seqs[j].WriteString(r.Alt)
				if seqs[j].Len() > maxLen {
					maxLen = seqs[j].Len()
				}
				altUntil[j] = r.Pos + uint32(len(r.Ref))
			}
		}
		prevPos = int64(r.Pos)
	}

	padTo(maxLen)
	for n < len(lmp) {
		for j := range v.Samples {
			if altUntil[j] <= refLen {
				seqs[j].WriteString(lmp[n].Seq)
			}
		}
		refLen += uint32(len(lmp[n].Seq))
		n++
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(f)
	for j, name := range v.Samples {
		if _, err = fmt.Fprintf(w, ">%s\n%s\n", name, seqs[j].String()); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Equal reports whether v and other contain the same set of records
// (by SiteKey, order-independent), mirroring original_source's
// operator==.
func (v *VCF) Equal(other *VCF) bool {
	if len(v.Records) != len(other.Records) {
		return false
	}
	for _, r := range other.Records {
		found := false
		for _, mine := range v.Records {
			if mine.Equal(r) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
