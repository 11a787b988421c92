package repeat

import (
	"runtime"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
)

// DefaultPad is how far beyond the repeat tract the window scanner
// fetches candidate reads.
const DefaultPad = 1000

// ScanOpts configures a window scan.
type ScanOpts struct {
	// Pad extends the fetch band on both sides of the repeat tract.
	Pad int
	// ReadLen is the observed read length; it bounds the acceptance band
	// for mapped reads.
	ReadLen int
	// Parallelism is the number of concurrent classification workers;
	// 0 means runtime.NumCPU().
	Parallelism int
	Classify    ClassifyOpts
}

// ScanResult aggregates the classification evidence for one locus.
type ScanResult struct {
	Counts  *CountTable
	Details []Detail
	// Unmapped counts unmapped reads seen in the fetch band. They are not
	// classified here; their informative signal arrives via the mapped
	// mate.
	Unmapped int
}

// Scan fetches reads around the locus, classifies the accepted ones
// against the bank, and aggregates the counts. A failing fetch (unknown
// contig, out-of-range window) is logged and degraded to zero reads so
// that one locus's data gap cannot abort processing of other loci.
//
// The pipeline is staged: the fetch yields a finite sequence of accepted
// read sequences, classification of each is pure, and the per-worker
// partial tables are folded into one CountTable behind a single barrier.
func Scan(src Source, locus *Locus, bank *Bank, opts ScanOpts) *ScanResult {
	pad := opts.Pad
	if pad <= 0 {
		pad = DefaultPad
	}
	windowStart := locus.start0() - pad
	windowEnd := locus.end0() + pad
	readStart := locus.start0() - opts.ReadLen
	if readStart < 0 {
		readStart = 0
	}
	readEnd := locus.end0() + opts.ReadLen

	result := &ScanResult{Counts: NewCountTable()}
	recs, err := src.Fetch(locus.Chrom, windowStart, windowEnd)
	if err != nil {
		log.Error.Printf("%s: no reads extracted for region %s:%d-%d: %v",
			locus.Name, locus.Chrom, windowStart, windowEnd, err)
		return result
	}

	var accepted []string
	for _, rec := range recs {
		if rec.Unmapped {
			result.Unmapped++
			continue
		}
		if rec.ReferenceStart < readStart || rec.ReferenceStart > readEnd {
			continue
		}
		accepted = append(accepted, rec.Seq)
	}
	log.Debug.Printf("%s: %d reads accepted, %d unmapped in %s:%d-%d",
		locus.Name, len(accepted), result.Unmapped, locus.Chrom, windowStart, windowEnd)
	if len(accepted) == 0 {
		return result
	}

	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	if parallelism > len(accepted) {
		parallelism = len(accepted)
	}

	partial := make([]*ScanResult, parallelism)
	_ = traverse.Each(parallelism, func(shard int) error {
		p := &ScanResult{Counts: NewCountTable()}
		for i := shard; i < len(accepted); i += parallelism {
			c := Classify(accepted[i], bank, opts.Classify)
			if c == nil {
				continue
			}
			p.Counts.Incr(c.Tag, c.Units)
			if c.Tag != TagHang {
				p.Details = append(p.Details, Detail{Tag: c.Tag, Units: c.Units, Seq: c.Seq})
			}
		}
		partial[shard] = p
		return nil
	})
	for _, p := range partial {
		result.Counts.Merge(p.Counts)
		result.Details = append(result.Details, p.Details...)
	}

	for _, tag := range []Tag{TagFull, TagPref, TagRept} {
		log.Debug.Printf("%s: counts[%s] total=%d units=%v",
			locus.Name, tag, result.Counts.Total(tag), result.Counts.Units(tag))
	}
	return result
}
