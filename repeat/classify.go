package repeat

import (
	"github.com/grailbio/str/align"
)

// FlankMatch is the number of bases within which an alignment must reach a
// variant's end to count as flank-anchored, and the overhang above which a
// read becomes unusable (HANG).
const FlankMatch = 9

// ClassifyOpts holds the local-alignment scoring used to test each read
// against each variant.
type ClassifyOpts struct {
	Scoring align.Scoring
	// ScoreFloor is the lower bound of the combined score/length floor:
	// per variant the floor is max(ScoreFloor, min(len(read),
	// len(variant))/2).
	ScoreFloor int
}

// DefaultClassifyOpts is the strict scoring used in production. A BWA-MEM
// style (1,4,6,1) scoring admits noticeably more marginal alignments.
var DefaultClassifyOpts = ClassifyOpts{
	Scoring:    align.Scoring{Match: 1, Mismatch: 5, GapOpen: 7, GapExtend: 2},
	ScoreFloor: 30,
}

// Classification is the outcome for one read: the winning tag, the unit
// count of the winning variant, and the alignment score. Seq is retained
// for diagnostics on non-HANG tags only.
type Classification struct {
	Tag   Tag
	Units int
	Score int
	Seq   string
}

// hang returns the minimal unmatched overhang of an alignment between a
// variant (a, length refLen) and a read (b, length qryLen):
//
//	aL \              / aR
//	    \------------/
//	    /------------\
//	bL /              \ bR
//
// The four sums correspond to terminal overlap in either direction and
// containment in either direction; the true topology is unknown, so the
// most permissive interpretation (the minimum) is used.
func hang(al *align.Result, refLen, qryLen int) int {
	aL, aR := al.RefBegin, refLen-al.RefEnd-1
	bL, bR := al.QueryBegin, qryLen-al.QueryEnd-1

	h := aR + bL
	for _, s := range []int{aL + bR, aL + aR, bL + bR} {
		if s < h {
			h = s
		}
	}
	return h
}

// better reports whether a beats b: higher score first, then smaller unit
// count.
func better(a, b Classification) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Units < b.Units
}

// Classify aligns one read against every variant in the bank and returns
// the winning classification, or nil when no variant yields usable
// evidence. Classify is a pure function of (seq, bank, opts) and is safe to
// invoke concurrently.
func Classify(seq string, bank *Bank, opts ClassifyOpts) *Classification {
	var best Classification
	found := false
	for _, v := range bank.Variants {
		floor := min(len(seq), len(v.Seq)) / 2
		if floor < opts.ScoreFloor {
			floor = opts.ScoreFloor
		}
		al := align.Local([]byte(v.Seq), []byte(seq), opts.Scoring, floor, floor)
		if al == nil {
			continue
		}
		tag, ok := tagFor(al, len(v.Seq), seq, v.Units, bank)
		if !ok {
			continue
		}
		c := Classification{Tag: tag, Units: v.Units, Score: al.Score, Seq: seq}
		if !found || better(c, best) {
			best = c
			found = true
		}
	}
	if !found {
		return nil
	}
	if best.Tag == TagHang {
		best.Seq = ""
	}
	return &best
}

// tagFor applies the tag rules in priority order to one passing alignment.
func tagFor(al *align.Result, refLen int, seq string, units int, bank *Bank) (Tag, bool) {
	prefixRead := al.RefBegin < FlankMatch
	suffixRead := al.RefEnd > refLen-FlankMatch-1

	switch {
	case hang(al, refLen, len(seq)) >= FlankMatch:
		return TagHang, true
	case prefixRead:
		if suffixRead {
			return TagFull, true
		}
		return TagPref, true
	case suffixRead:
		return TagPost, true
	case units >= bank.MaxUnits-1 && units*bank.Locus.Period() <= len(seq):
		return TagRept, true
	}
	return "", false
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
