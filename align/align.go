// Package align implements a local (Smith-Waterman) aligner with affine gap
// penalties. Unlike most library aligners it reports the begin and end
// offsets of the optimal local alignment on both sequences, which callers
// use to reason about overlap topology, and it applies combined score and
// length floors so that short, low-confidence alignments are suppressed at
// the source.
package align

// Scoring holds the match reward and the mismatch/gap penalties. All
// penalties are expressed as non-negative magnitudes. The first base of a
// gap costs GapOpen; each additional base costs GapExtend.
type Scoring struct {
	Match     int
	Mismatch  int
	GapOpen   int
	GapExtend int
}

// Result describes the optimal local alignment of a query against a
// reference. Offsets are 0-based and ends are inclusive.
type Result struct {
	RefBegin   int
	RefEnd     int
	QueryBegin int
	QueryEnd   int
	Score      int
}

// origin is the (ref, query) start of the alignment path leading into a DP
// cell.
type origin struct {
	ref, qry int
}

// Local computes the optimal local alignment of query against ref and
// returns nil when the best alignment scores below minScore or spans fewer
// than minLen reference bases. The first maximal-scoring cell in row-major
// order wins, so results are deterministic.
func Local(ref, query []byte, sc Scoring, minScore, minLen int) *Result {
	m, n := len(ref), len(query)
	if m == 0 || n == 0 {
		return nil
	}

	// Rolling rows for H (best score ending at cell) and F (best score
	// ending with a gap in the reference), with the path origins carried
	// alongside. E (gap in the query) only needs the previous column.
	prevH := make([]int, m+1)
	curH := make([]int, m+1)
	prevHOrig := make([]origin, m+1)
	curHOrig := make([]origin, m+1)
	prevF := make([]int, m+1)
	curF := make([]int, m+1)
	prevFOrig := make([]origin, m+1)
	curFOrig := make([]origin, m+1)
	for j := 0; j <= m; j++ {
		prevF[j] = -1 << 30
	}

	var best Result
	found := false
	for i := 1; i <= n; i++ {
		curH[0] = 0
		curF[0] = -1 << 30
		e := -1 << 30
		var eOrig origin
		for j := 1; j <= m; j++ {
			// Extend or open a gap in the query (consume ref only).
			if open := curH[j-1] - sc.GapOpen; open >= e-sc.GapExtend {
				e = open
				eOrig = curHOrig[j-1]
			} else {
				e -= sc.GapExtend
			}

			// Extend or open a gap in the ref (consume query only).
			if open := prevH[j] - sc.GapOpen; open >= prevF[j]-sc.GapExtend {
				curF[j] = open
				curFOrig[j] = prevHOrig[j]
			} else {
				curF[j] = prevF[j] - sc.GapExtend
				curFOrig[j] = prevFOrig[j]
			}

			// Diagonal step.
			sub := -sc.Mismatch
			if ref[j-1] == query[i-1] {
				sub = sc.Match
			}
			h := prevH[j-1] + sub
			hOrig := prevHOrig[j-1]
			if prevH[j-1] == 0 {
				// Alignment starts on this diagonal step.
				hOrig = origin{ref: j - 1, qry: i - 1}
			}
			if e > h {
				h = e
				hOrig = eOrig
			}
			if curF[j] > h {
				h = curF[j]
				hOrig = curFOrig[j]
			}
			if h < 0 {
				h = 0
				hOrig = origin{}
			}
			curH[j] = h
			curHOrig[j] = hOrig

			if h > best.Score {
				best = Result{
					RefBegin:   hOrig.ref,
					RefEnd:     j - 1,
					QueryBegin: hOrig.qry,
					QueryEnd:   i - 1,
					Score:      h,
				}
				found = true
			}
		}
		prevH, curH = curH, prevH
		prevHOrig, curHOrig = curHOrig, prevHOrig
		prevF, curF = curF, prevF
		prevFOrig, curFOrig = curFOrig, prevFOrig
	}

	if !found || best.Score < minScore {
		return nil
	}
	if best.RefEnd-best.RefBegin+1 < minLen {
		return nil
	}
	return &best
}
