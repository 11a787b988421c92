package repeat

import (
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

// SourceOpener opens a fresh handle to the alignment source. Each scanning
// pipeline owns its own handle: the underlying fetch cursor is stateful,
// so handles are never shared across scans.
type SourceOpener func() (Source, error)

// ExtractOpts configures evidence extraction for one locus.
type ExtractOpts struct {
	// Pad extends the window scanner's fetch band; the paired-span
	// extractor scans a window widened to a multiple of it.
	Pad int
	// ReadLen is the observed read length. Zero means probe it from the
	// source.
	ReadLen int
	// Parallelism bounds concurrent read classification; 0 = NumCPU.
	Parallelism int
	Classify    ClassifyOpts
}

// Evidence bundles every signal the downstream genotyping model consumes
// for one locus.
type Evidence struct {
	Locus  string `json:"locus"`
	Ploidy int    `json:"ploidy"`
	// ReadLen and MaxUnits record the bank geometry the counts were
	// produced under.
	ReadLen  int `json:"read_len"`
	MaxUnits int `json:"max_units"`

	Counts   map[Tag]map[int]int `json:"counts"`
	Details  []Detail            `json:"details"`
	Unmapped int                 `json:"unmapped"`

	// FDP, PDP and RDP are the full-, prefix- and repeat-read depths the
	// model treats as primary observations.
	FDP int `json:"FDP"`
	PDP int `json:"PDP"`
	RDP int `json:"RDP"`

	Spans *PairedSpans `json:"pairs"`

	// Depth is the average coverage over the repeat tract.
	Depth float64 `json:"depth"`
}

// Extract runs the full signal-extraction pipeline for one locus: window
// scan and classification, paired-span extraction, and tract depth. The
// three stages each open their own source handle.
func Extract(open SourceOpener, locus *Locus, sex Sex, opts ExtractOpts) (*Evidence, error) {
	if err := locus.Validate(); err != nil {
		return nil, err
	}

	readLen := opts.ReadLen
	if readLen <= 0 {
		src, err := open()
		if err != nil {
			return nil, err
		}
		readLen, err = ReadLength(src)
		if cerr := src.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return nil, err
		}
	}
	bank, err := NewBank(locus, readLen)
	if err != nil {
		return nil, err
	}

	ev := &Evidence{
		Locus:    locus.Name,
		Ploidy:   locus.EffectivePloidy(sex),
		ReadLen:  readLen,
		MaxUnits: bank.MaxUnits,
	}

	scanSrc, err := open()
	if err != nil {
		return nil, errors.Wrap(err, "opening source for window scan")
	}
	scan := Scan(scanSrc, locus, bank, ScanOpts{
		Pad:         opts.Pad,
		ReadLen:     readLen,
		Parallelism: opts.Parallelism,
		Classify:    opts.Classify,
	})
	if err := scanSrc.Close(); err != nil {
		return nil, err
	}
	ev.Counts = scan.Counts.Map()
	ev.Details = scan.Details
	ev.Unmapped = scan.Unmapped
	ev.FDP = scan.Counts.Total(TagFull)
	ev.PDP = scan.Counts.Total(TagPref)
	ev.RDP = scan.Counts.MaxCount(TagRept)

	pairSrc, err := open()
	if err != nil {
		return nil, errors.Wrap(err, "opening source for paired spans")
	}
	ev.Spans = ExtractPairedSpans(pairSrc, locus, opts.Pad)
	if err := pairSrc.Close(); err != nil {
		return nil, err
	}

	depthSrc, err := open()
	if err != nil {
		return nil, errors.Wrap(err, "opening source for depth")
	}
	depth, err := RegionDepth(depthSrc, locus.Chrom, locus.RepeatStart, locus.RepeatEnd)
	if err != nil {
		// A data gap at one locus must not abort the others.
		log.Error.Printf("%s: depth unavailable: %v", locus.Name, err)
		depth = 0
	}
	if err := depthSrc.Close(); err != nil {
		return nil, err
	}
	ev.Depth = depth

	return ev, nil
}
