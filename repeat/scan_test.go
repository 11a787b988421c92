package repeat

import (
	"strings"
	"testing"

	"github.com/grailbio/bio/encoding/bamprovider"
	"github.com/grailbio/hts/sam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanOpts(readLen int) ScanOpts {
	return ScanOpts{
		ReadLen:     readLen,
		Parallelism: 2,
		Classify:    DefaultClassifyOpts,
	}
}

func TestScanCounts(t *testing.T) {
	locus := testLocus()
	bank, err := NewBank(locus, 96)
	require.NoError(t, err)

	full := testPrefix + cag(20) + testSuffix
	pref := testPrefix + cag(26)
	hangSeq := cag(16) + strings.Repeat("TG", 24)

	// The locus tract is chr4:1001-1060, i.e. 0-based [1000,1060). The
	// acceptance band for readLen 96 is [904,1156].
	recs := []*sam.Record{
		// Before the acceptance band: fetched but discarded.
		newTestRecord("far", testChr4, 500, 0, cigarM(96), full),
		// Unmapped read placed inside the window: counted, not classified.
		newTestRecord("anchor-mate", testChr4, 950, sam.Paired|sam.Unmapped, nil, full),
		newTestRecord("full1", testChr4, 982, 0, cigarM(96), full),
		newTestRecord("hang", testChr4, 1000, 0, cigarM(96), hangSeq),
		newTestRecord("full2", testChr4, 1005, 0, cigarM(96), full),
		newTestRecord("pref", testChr4, 1010, 0, cigarM(96), pref),
		// Unalignable noise inside the band: silently dropped.
		newTestRecord("noise", testChr4, 1020, 0, cigarM(96), strings.Repeat("TG", 48)),
	}
	src := NewProviderSource(bamprovider.NewFakeProvider(testHeader, recs))
	defer src.Close() // nolint: errcheck

	result := Scan(src, locus, bank, scanOpts(96))

	assert.Equal(t, 1, result.Unmapped)
	assert.Equal(t, 2, result.Counts.Get(TagFull, 20))
	assert.Equal(t, 2, result.Counts.Total(TagFull))
	assert.Equal(t, 1, result.Counts.Get(TagPref, 26))
	assert.Equal(t, 1, result.Counts.Total(TagHang))
	assert.Equal(t, 0, result.Counts.Total(TagPost))

	// Three classified reads, but HANG never reaches the diagnostics.
	assert.Equal(t, 3, len(result.Details))
	for _, d := range result.Details {
		assert.NotEqual(t, TagHang, d.Tag)
		assert.NotEmpty(t, d.Seq)
	}
}

func TestScanAcceptanceBand(t *testing.T) {
	locus := testLocus()
	bank, err := NewBank(locus, 96)
	require.NoError(t, err)

	full := testPrefix + cag(20) + testSuffix
	recs := []*sam.Record{
		// Inside the fetch band but left of the acceptance band.
		newTestRecord("left", testChr4, 900, 0, cigarM(96), full),
		// Exactly at the band edges.
		newTestRecord("edgeL", testChr4, 904, 0, cigarM(96), full),
		newTestRecord("edgeR", testChr4, 1156, 0, cigarM(96), full),
		// Right of the acceptance band.
		newTestRecord("right", testChr4, 1157, 0, cigarM(96), full),
	}
	src := NewProviderSource(bamprovider.NewFakeProvider(testHeader, recs))
	defer src.Close() // nolint: errcheck

	result := Scan(src, locus, bank, scanOpts(96))
	assert.Equal(t, 2, result.Counts.Total(TagFull))
}

func TestScanFetchFailureDegrades(t *testing.T) {
	locus := testLocus()
	locus.Chrom = "chrUn" // not in the header
	bank, err := NewBank(locus, 96)
	require.NoError(t, err)

	src := NewProviderSource(bamprovider.NewFakeProvider(testHeader, nil))
	defer src.Close() // nolint: errcheck

	result := Scan(src, locus, bank, scanOpts(96))
	assert.Equal(t, 0, result.Unmapped)
	assert.Empty(t, result.Details)
	for _, tag := range Tags {
		assert.Equal(t, 0, result.Counts.Total(tag))
	}
}
