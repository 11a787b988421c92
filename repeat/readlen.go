package repeat

import (
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

// readLenProbeSize is how many leading records the read-length probe
// inspects.
const readLenProbeSize = 100

// ReadLength probes the leading records of the source and returns the
// longest query length seen. The result sizes the reference bank and the
// window scanner's acceptance band.
func ReadLength(src Source) (int, error) {
	recs, err := src.Head(readLenProbeSize)
	if err != nil {
		return 0, errors.Wrap(err, "probing read length")
	}
	if len(recs) == 0 {
		return 0, errors.New("probing read length: no records in alignment file")
	}
	minLen, maxLen := recs[0].QueryLength, recs[0].QueryLength
	for _, rec := range recs[1:] {
		if rec.QueryLength < minLen {
			minLen = rec.QueryLength
		}
		if rec.QueryLength > maxLen {
			maxLen = rec.QueryLength
		}
	}
	if minLen != maxLen {
		log.Debug.Printf("read length: min=%dbp max=%dbp", minLen, maxLen)
	}
	return maxLen, nil
}
