package repeat

import (
	"strings"

	"github.com/pkg/errors"
)

// Variant is one repeat-count hypothesis: the locus flanks around Units
// copies of the motif, on the forward or reverse-complement strand.
type Variant struct {
	Units   int
	Seq     string
	RevComp bool
}

// Bank holds every reference variant a single read could plausibly span.
// Short reads may be shorter than, equal to, or fully contained within the
// true repeat tract, so every unit count up to what one read could cover
// must be tested as a hypothesis. A bank is built once per (locus, read
// length) pair and discarded after the scan using it completes.
type Bank struct {
	Locus    *Locus
	MaxUnits int
	// Variants are ordered by ascending unit count, forward strand before
	// reverse complement.
	Variants []Variant
}

// NewBank builds the reference bank for a locus and an observed read
// length.
func NewBank(locus *Locus, readLen int) (*Bank, error) {
	if err := locus.Validate(); err != nil {
		return nil, err
	}
	if readLen <= 0 {
		return nil, errors.Errorf("locus %s: invalid read length %d", locus.Name, readLen)
	}
	period := locus.Period()
	maxUnits := (readLen + period - 1) / period
	b := &Bank{
		Locus:    locus,
		MaxUnits: maxUnits,
		Variants: make([]Variant, 0, 2*maxUnits),
	}
	for units := 1; units <= maxUnits; units++ {
		seq := locus.Prefix + strings.Repeat(locus.Motif, units) + locus.Suffix
		b.Variants = append(b.Variants,
			Variant{Units: units, Seq: seq},
			Variant{Units: units, Seq: ReverseComplement(seq), RevComp: true})
	}
	return b, nil
}

var complement = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = byte(i)
	}
	for from, to := range map[byte]byte{
		'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C',
		'a': 't', 't': 'a', 'c': 'g', 'g': 'c',
	} {
		t[from] = to
	}
	return t
}()

// ReverseComplement returns the reverse complement of s. Bases without a
// complement (N, X) are preserved.
func ReverseComplement(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[len(s)-1-i] = complement[s[i]]
	}
	return string(out)
}
