package repeat

import (
	"github.com/grailbio/base/log"
)

const (
	// maxPairSpan is the span at and above which a pair is considered
	// implausible (structural) and excluded.
	maxPairSpan = 1000
	// pairWindowScale extends the paired-end scan window to a multiple of
	// the base padding, since informative pairs can sit far outside the
	// tract when the expansion exceeds one read's length.
	pairWindowScale = 10
)

// PairedSpans holds the fragment-span distributions of read pairs around a
// locus. TargetLens are spans of pairs bracketing the repeat tract with
// flank margin; GlobalLens are everything else and serve as the local
// background distribution.
type PairedSpans struct {
	TargetLens []int `json:"target_lens"`
	GlobalLens []int `json:"global_lens"`
	// MinPE is the minimum fragment span physically capable of spanning
	// the reference-length tract plus flank anchors on both sides. The
	// downstream model uses it as a detectability floor.
	MinPE int `json:"MINPE"`
}

// ExtractPairedSpans scans a widened window around the locus for mapped,
// non-duplicate read pairs in inward-facing orientation and computes their
// soft-clip-adjusted fragment spans. A failing fetch degrades to empty
// distributions.
func ExtractPairedSpans(src Source, locus *Locus, pad int) *PairedSpans {
	if pad <= 0 {
		pad = DefaultPad
	}
	result := &PairedSpans{
		MinPE: locus.RepeatEnd - locus.RepeatStart + 2*FlankMatch + 2,
	}

	windowStart := locus.start0() - pairWindowScale*pad
	windowEnd := locus.end0() + pairWindowScale*pad
	recs, err := src.Fetch(locus.Chrom, windowStart, windowEnd)
	if err != nil {
		log.Error.Printf("%s: no pairs extracted for region %s:%d-%d: %v",
			locus.Name, locus.Chrom, windowStart, windowEnd, err)
		return result
	}

	// Group by fragment name, preserving first-seen order for determinism.
	groups := map[string][]ReadRecord{}
	var names []string
	for _, rec := range recs {
		if !rec.Paired || rec.Unmapped || rec.Duplicate {
			continue
		}
		if _, ok := groups[rec.Name]; !ok {
			names = append(names, rec.Name)
		}
		groups[rec.Name] = append(groups[rec.Name], rec)
	}

	targetStart := locus.start0() - FlankMatch
	targetEnd := locus.end0() + FlankMatch
	for _, name := range names {
		reads := groups[name]
		if len(reads) < 2 {
			continue
		}
		a, b := reads[0], reads[1]
		// Standard inward-facing pair: forward read first, reverse second.
		if a.Reverse || !b.Reverse {
			continue
		}
		span := adjustedSpan(a, b)
		if span >= maxPairSpan {
			continue
		}
		if a.ReferenceStart < targetStart && b.ReferenceEnd > targetEnd {
			result.TargetLens = append(result.TargetLens, span)
		} else {
			result.GlobalLens = append(result.GlobalLens, span)
		}
	}
	log.Debug.Printf("%s: %d spanning pairs, %d background pairs, MINPE=%d",
		locus.Name, len(result.TargetLens), len(result.GlobalLens), result.MinPE)
	return result
}

// adjustedSpan returns the outer distance of a pair, extending each outer
// end by any soft-clipped length so that clipping does not artificially
// shrink the inferred fragment length.
func adjustedSpan(a, b ReadRecord) int {
	start := a.ReferenceStart
	if a.QueryAlignmentStart > 0 {
		start -= a.QueryAlignmentStart
	}
	end := b.ReferenceEnd
	if b.QueryAlignmentEnd < b.QueryLength {
		end += b.QueryLength - b.QueryAlignmentEnd
	}
	return end - start
}
