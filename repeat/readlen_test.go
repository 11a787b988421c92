package repeat

import (
	"strings"
	"testing"

	"github.com/grailbio/bio/encoding/bamprovider"
	"github.com/grailbio/hts/sam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLength(t *testing.T) {
	recs := []*sam.Record{
		newTestRecord("a", testChr4, 10, 0, cigarM(10), strings.Repeat("A", 10)),
		newTestRecord("b", testChr4, 20, 0, cigarM(96), strings.Repeat("C", 96)),
		newTestRecord("c", testChr4, 30, 0, cigarM(50), strings.Repeat("G", 50)),
	}
	src := NewProviderSource(bamprovider.NewFakeProvider(testHeader, recs))
	defer src.Close() // nolint: errcheck

	n, err := ReadLength(src)
	require.NoError(t, err)
	assert.Equal(t, 96, n)
}

func TestReadLengthEmptySource(t *testing.T) {
	src := NewProviderSource(bamprovider.NewFakeProvider(testHeader, nil))
	defer src.Close() // nolint: errcheck

	_, err := ReadLength(src)
	assert.Error(t, err)
}
