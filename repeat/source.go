package repeat

import (
	"strings"

	gbam "github.com/grailbio/bio/encoding/bam"
	"github.com/grailbio/bio/encoding/bamprovider"
	"github.com/grailbio/bio/encoding/pam"
	"github.com/grailbio/hts/sam"
	"github.com/pkg/errors"
)

// Format selects the container layout of an alignment source. The format
// is always supplied explicitly by configuration; it is never inferred
// from a filename.
type Format int

const (
	// FormatBAM reads coordinate-sorted, indexed BAM.
	FormatBAM Format = iota
	// FormatPAM reads PAM.
	FormatPAM
)

// ParseFormat parses a format name given on the command line.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "bam":
		return FormatBAM, nil
	case "pam":
		return FormatPAM, nil
	}
	return FormatBAM, errors.Errorf("invalid alignment file format %q (want bam or pam)", s)
}

// ReadRecord is the subset of an alignment record the engine consumes. The
// source adapter populates it, isolating the engine from the underlying
// record shape. Coordinates are 0-based with exclusive ends, as in the
// container formats themselves.
type ReadRecord struct {
	Name      string
	Unmapped  bool
	Paired    bool
	Reverse   bool
	Duplicate bool
	// ReferenceStart/ReferenceEnd delimit the aligned span on the
	// reference. Meaningless when Unmapped.
	ReferenceStart int
	ReferenceEnd   int
	Seq            string
	QueryLength    int
	// QueryAlignmentStart/QueryAlignmentEnd delimit the non-soft-clipped
	// portion of Seq.
	QueryAlignmentStart int
	QueryAlignmentEnd   int
}

// Source provides coordinate-indexed access to one alignment file. Each
// scanning pipeline opens and exclusively owns its own Source for the
// duration of its operation; the fetch cursor is stateful per handle.
type Source interface {
	// Fetch returns all records whose alignment start position lies in the
	// 0-based half-open interval [start, end) of chrom. Unknown contigs
	// and out-of-range requests yield an error.
	Fetch(chrom string, start, end int) ([]ReadRecord, error)
	// Pileup returns per-position coverage over [start, end).
	Pileup(chrom string, start, end int) ([]int, error)
	// Head returns up to n records from the start of the file, in file
	// order.
	Head(n int) ([]ReadRecord, error)
	// Close releases the handle.
	Close() error
}

// Reads starting this far ahead of a pileup window can still overlap it;
// reads with a larger reference span are rare enough to ignore for depth
// estimation.
const pileupFetchMargin = 1000

// fileSource adapts a bamprovider.Provider to the Source interface.
type fileSource struct {
	provider bamprovider.Provider
}

// NewSource opens an alignment file of the given format. For BAM, index
// names the .bai file and defaults to path + ".bai" when empty.
func NewSource(path, index string, format Format) (Source, error) {
	if path == "" {
		return nil, errors.New("alignment file path is empty")
	}
	switch format {
	case FormatBAM:
		return &fileSource{provider: &bamprovider.BAMProvider{Path: path, Index: index}}, nil
	case FormatPAM:
		return &fileSource{provider: &bamprovider.PAMProvider{Path: path, Opts: pam.ReadOpts{}}}, nil
	}
	return nil, errors.Errorf("unsupported alignment file format %v", format)
}

// NewProviderSource wraps an existing provider. Used by tests with fake
// providers.
func NewProviderSource(p bamprovider.Provider) Source {
	return &fileSource{provider: p}
}

func (s *fileSource) Fetch(chrom string, start, end int) ([]ReadRecord, error) {
	if start < 0 {
		start = 0
	}
	iter := bamprovider.NewRefIterator(s.provider, chrom, start, end)
	var recs []ReadRecord
	for iter.Scan() {
		recs = append(recs, newReadRecord(iter.Record()))
	}
	if err := iter.Close(); err != nil {
		return nil, errors.Wrapf(err, "fetch %s:%d-%d", chrom, start, end)
	}
	return recs, nil
}

func (s *fileSource) Pileup(chrom string, start, end int) ([]int, error) {
	if start < 0 {
		start = 0
	}
	if end <= start {
		return nil, errors.Errorf("pileup %s:%d-%d: empty interval", chrom, start, end)
	}
	fetchStart := start - pileupFetchMargin
	if fetchStart < 0 {
		fetchStart = 0
	}
	iter := bamprovider.NewRefIterator(s.provider, chrom, fetchStart, end)
	depth := make([]int, end-start)
	for iter.Scan() {
		rec := iter.Record()
		if rec.Flags&sam.Unmapped != 0 {
			continue
		}
		pos := rec.Pos
		for _, op := range rec.Cigar {
			switch op.Type() {
			case sam.CigarMatch, sam.CigarEqual, sam.CigarMismatch:
				// Aligned bases contribute coverage.
				lo, hi := pos, pos+op.Len()
				if lo < start {
					lo = start
				}
				if hi > end {
					hi = end
				}
				for p := lo; p < hi; p++ {
					depth[p-start]++
				}
				pos += op.Len()
			case sam.CigarDeletion, sam.CigarSkipped:
				// Advance the reference position only.
				pos += op.Len()
			default:
				// Insertions and clips consume no reference.
			}
		}
	}
	if err := iter.Close(); err != nil {
		return nil, errors.Wrapf(err, "pileup %s:%d-%d", chrom, start, end)
	}
	return depth, nil
}

func (s *fileSource) Head(n int) ([]ReadRecord, error) {
	header, err := s.provider.GetHeader()
	if err != nil {
		return nil, errors.Wrap(err, "reading header")
	}
	iter := s.provider.NewIterator(gbam.UniversalShard(header))
	var recs []ReadRecord
	for len(recs) < n && iter.Scan() {
		recs = append(recs, newReadRecord(iter.Record()))
	}
	if err := iter.Close(); err != nil {
		return nil, errors.Wrap(err, "reading leading records")
	}
	return recs, nil
}

func (s *fileSource) Close() error {
	return s.provider.Close()
}

func newReadRecord(rec *sam.Record) ReadRecord {
	leftClip, rightClip := softClips(rec.Cigar)
	qlen := rec.Seq.Length
	return ReadRecord{
		Name:                rec.Name,
		Unmapped:            rec.Flags&sam.Unmapped != 0,
		Paired:              rec.Flags&sam.Paired != 0,
		Reverse:             rec.Flags&sam.Reverse != 0,
		Duplicate:           rec.Flags&sam.Duplicate != 0,
		ReferenceStart:      rec.Pos,
		ReferenceEnd:        rec.End(),
		Seq:                 string(rec.Seq.Expand()),
		QueryLength:         qlen,
		QueryAlignmentStart: leftClip,
		QueryAlignmentEnd:   qlen - rightClip,
	}
}

// softClips returns the soft-clipped lengths at each end of the CIGAR.
// Hard clips are not represented in Seq and are skipped over.
func softClips(cigar sam.Cigar) (left, right int) {
	for _, op := range cigar {
		if op.Type() == sam.CigarHardClipped {
			continue
		}
		if op.Type() == sam.CigarSoftClipped {
			left = op.Len()
		}
		break
	}
	for i := len(cigar) - 1; i >= 0; i-- {
		if cigar[i].Type() == sam.CigarHardClipped {
			continue
		}
		if cigar[i].Type() == sam.CigarSoftClipped {
			right = cigar[i].Len()
		}
		break
	}
	return left, right
}
