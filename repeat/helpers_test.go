package repeat

import (
	"sort"
	"strings"

	"github.com/grailbio/hts/sam"
)

// Test locus: a CAG triplet repeat of 20 units (chr4:1001-1060) with 18bp
// flanks chosen to share no motif copies with the repeat tract.
const (
	testPrefix = "ATTGCCTTAGTAACTGAT"
	testSuffix = "CCTTGAATTCGATCCGTA"
)

func testLocus() *Locus {
	return &Locus{
		Name:        "HD",
		Title:       "Huntington disease",
		Chrom:       "chr4",
		RepeatStart: 1001,
		RepeatEnd:   1060,
		Motif:       "CAG",
		Prefix:      testPrefix,
		Suffix:      testSuffix,
		Ploidy:      2,
	}
}

func cag(units int) string { return strings.Repeat("CAG", units) }

var (
	testChr4, _   = sam.NewReference("chr4", "", "", 100000, nil, nil)
	testChrY, _   = sam.NewReference("chrY", "", "", 60000000, nil, nil)
	testHeader, _ = sam.NewHeader(nil, []*sam.Reference{testChr4, testChrY})
)

// newTestRecord builds a sam.Record the way markduplicates builds its test
// reads. Records handed to a fake provider must be in non-decreasing
// coordinate order.
func newTestRecord(name string, ref *sam.Reference, pos int, flags sam.Flags, cigar sam.Cigar, seq string) *sam.Record {
	r := sam.GetFromFreePool()
	r.Name = name
	r.Ref = ref
	r.Pos = pos
	r.MateRef = ref
	r.Flags = flags
	r.Cigar = cigar
	if seq != "" {
		r.Seq = sam.NewSeq([]byte(seq))
		r.Qual = []byte(strings.Repeat("#", len(seq)))
	}
	return r
}

func cigarM(n int) sam.Cigar {
	return sam.Cigar{sam.NewCigarOp(sam.CigarMatch, n)}
}

// sortRecords orders records by (ref, pos) as fake providers require.
func sortRecords(recs []*sam.Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Ref.ID() != recs[j].Ref.ID() {
			return recs[i].Ref.ID() < recs[j].Ref.ID()
		}
		return recs[i].Pos < recs[j].Pos
	})
}
