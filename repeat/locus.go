// Package repeat extracts quantitative signals from aligned short-read
// sequencing data around short tandem repeat loci: per-read span
// classification against a bank of repeat-count hypotheses, paired-fragment
// span distributions, and local depth. The downstream genotyping model
// consumes these signals; this package has no knowledge of how allele calls
// are derived from them.
package repeat

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Sex is the inferred or supplied genetic sex of the sample, used only to
// resolve ploidy at X-linked loci.
type Sex string

const (
	SexUnknown Sex = "Unknown"
	SexFemale  Sex = "Female"
	SexMale    Sex = "Male"
)

// ParseSex parses a sex value from configuration.
func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(s) {
	case "male", "m":
		return SexMale, nil
	case "female", "f":
		return SexFemale, nil
	case "unknown", "":
		return SexUnknown, nil
	}
	return SexUnknown, errors.Errorf("invalid sex %q (want male, female, or unknown)", s)
}

// Locus defines one repeat region: the repeat motif, its reference
// coordinates, and the flanking sequences used to anchor reads. Coordinates
// are 1-based and inclusive. A Locus is immutable once loaded.
type Locus struct {
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Chrom       string `json:"chrom"`
	RepeatStart int    `json:"repeat_start"`
	RepeatEnd   int    `json:"repeat_end"`
	Motif       string `json:"motif"`
	Prefix      string `json:"prefix"`
	Suffix      string `json:"suffix"`
	Ploidy      int    `json:"ploidy"`
	XLinked     bool   `json:"x_linked,omitempty"`
}

// Period returns the repeat unit length.
func (l *Locus) Period() int { return len(l.Motif) }

// ReferenceLen returns the length of the reference repeat tract.
func (l *Locus) ReferenceLen() int { return l.RepeatEnd - l.RepeatStart + 1 }

// start0 returns the 0-based repeat start.
func (l *Locus) start0() int { return l.RepeatStart - 1 }

// end0 returns the 0-based exclusive repeat end.
func (l *Locus) end0() int { return l.RepeatEnd }

// EffectivePloidy resolves the locus ploidy for a sample: one copy for a
// male sample at an X-linked locus, the configured ploidy otherwise.
func (l *Locus) EffectivePloidy(sex Sex) int {
	if l.XLinked && sex == SexMale {
		return 1
	}
	return l.Ploidy
}

func (l *Locus) String() string {
	return fmt.Sprintf("%s (%s:%d-%d %s)", l.Name, l.Chrom, l.RepeatStart, l.RepeatEnd, l.Motif)
}

// Validate reports the first configuration defect. A locus that fails
// validation cannot seed a reference bank, so callers must treat the error
// as fatal before any scanning begins.
func (l *Locus) Validate() error {
	if l.Name == "" {
		return errors.New("locus name is empty")
	}
	if l.Chrom == "" {
		return errors.Errorf("locus %s: chromosome is empty", l.Name)
	}
	if l.Motif == "" {
		return errors.Errorf("locus %s: repeat motif is empty", l.Name)
	}
	for i := 0; i < len(l.Motif); i++ {
		switch l.Motif[i] {
		case 'A', 'C', 'G', 'T':
		default:
			return errors.Errorf("locus %s: motif %q contains non-ACGT base", l.Name, l.Motif)
		}
	}
	if l.RepeatStart <= 0 || l.RepeatEnd < l.RepeatStart {
		return errors.Errorf("locus %s: invalid repeat coordinates %d-%d", l.Name, l.RepeatStart, l.RepeatEnd)
	}
	if l.Prefix == "" || l.Suffix == "" {
		return errors.Errorf("locus %s: flanking prefix/suffix must be non-empty", l.Name)
	}
	if l.Ploidy != 1 && l.Ploidy != 2 {
		return errors.Errorf("locus %s: ploidy must be 1 or 2, got %d", l.Name, l.Ploidy)
	}
	return nil
}
