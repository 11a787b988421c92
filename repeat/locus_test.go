package repeat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocusDerived(t *testing.T) {
	l := testLocus()
	assert.Equal(t, 3, l.Period())
	assert.Equal(t, 60, l.ReferenceLen())
	assert.Equal(t, "HD (chr4:1001-1060 CAG)", l.String())
}

func TestEffectivePloidy(t *testing.T) {
	l := testLocus()
	assert.Equal(t, 2, l.EffectivePloidy(SexMale))
	assert.Equal(t, 2, l.EffectivePloidy(SexFemale))

	l.XLinked = true
	assert.Equal(t, 1, l.EffectivePloidy(SexMale))
	assert.Equal(t, 2, l.EffectivePloidy(SexFemale))
	assert.Equal(t, 2, l.EffectivePloidy(SexUnknown))
}

func TestLocusValidate(t *testing.T) {
	assert.NoError(t, testLocus().Validate())

	mutate := []struct {
		name string
		fn   func(*Locus)
	}{
		{"empty name", func(l *Locus) { l.Name = "" }},
		{"empty chrom", func(l *Locus) { l.Chrom = "" }},
		{"empty motif", func(l *Locus) { l.Motif = "" }},
		{"non-ACGT motif", func(l *Locus) { l.Motif = "CAN" }},
		{"zero start", func(l *Locus) { l.RepeatStart = 0 }},
		{"inverted coordinates", func(l *Locus) { l.RepeatStart, l.RepeatEnd = l.RepeatEnd, l.RepeatStart }},
		{"empty prefix", func(l *Locus) { l.Prefix = "" }},
		{"empty suffix", func(l *Locus) { l.Suffix = "" }},
		{"bad ploidy", func(l *Locus) { l.Ploidy = 3 }},
	}
	for _, m := range mutate {
		l := testLocus()
		m.fn(l)
		assert.Error(t, l.Validate(), m.name)
	}
}

func TestParseSex(t *testing.T) {
	for in, want := range map[string]Sex{
		"male":    SexMale,
		"M":       SexMale,
		"Female":  SexFemale,
		"unknown": SexUnknown,
		"":        SexUnknown,
	} {
		got, err := ParseSex(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseSex("yes")
	assert.Error(t, err)
}
