package repeat

import (
	"sort"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

// RegionDepth returns the average per-base coverage over the 1-based
// inclusive interval [start, end] of chrom.
func RegionDepth(src Source, chrom string, start, end int) (float64, error) {
	if start <= 0 || end < start {
		return 0, errors.Errorf("invalid depth interval %s:%d-%d", chrom, start, end)
	}
	cols, err := src.Pileup(chrom, start-1, end)
	if err != nil {
		return 0, err
	}
	sum := 0
	for _, c := range cols {
		sum += c
	}
	return float64(sum) / float64(end-start+1), nil
}

// DepthRegion is one row of a reference-build-specific depth panel:
// a unique, GC-matched region used for coverage baselining.
type DepthRegion struct {
	Chrom string
	Start int // 1-based inclusive
	End   int
	GC    float64
}

// yDepthPanelSize is the number of usable panel rows the Y-depth estimate
// is taken over.
const yDepthPanelSize = 5

// ySkipRows indexes panel rows that still attract mapped reads in female
// samples and would confound the estimate.
var ySkipRows = map[int]bool{
	1: true, 4: true, 6: true, 7: true, 10: true,
	11: true, 13: true, 16: true, 18: true, 19: true,
}

// yPanels holds the curated chrY unique-region panels per reference build.
var yPanels = map[string][]DepthRegion{
	"hg19": {
		{"chrY", 2712480, 2717479, 0.41},
		{"chrY", 2896340, 2901339, 0.43},
		{"chrY", 4867800, 4872799, 0.39},
		{"chrY", 5204660, 5209659, 0.42},
		{"chrY", 6736900, 6741899, 0.44},
		{"chrY", 6912325, 6917324, 0.40},
		{"chrY", 7203150, 7208149, 0.43},
		{"chrY", 7588410, 7593409, 0.41},
		{"chrY", 8164270, 8169269, 0.42},
		{"chrY", 8791550, 8796549, 0.39},
		{"chrY", 9335720, 9340719, 0.44},
		{"chrY", 13286640, 13291639, 0.41},
		{"chrY", 14096875, 14101874, 0.42},
		{"chrY", 14634190, 14639189, 0.43},
		{"chrY", 15273350, 15278349, 0.40},
		{"chrY", 15890215, 15895214, 0.42},
		{"chrY", 16728420, 16733419, 0.39},
		{"chrY", 17380960, 17385959, 0.41},
		{"chrY", 18556330, 18561329, 0.43},
		{"chrY", 19204785, 19209784, 0.40},
		{"chrY", 19871040, 19876039, 0.42},
	},
	"hg38": {
		{"chrY", 2844420, 2849419, 0.41},
		{"chrY", 3028280, 3033279, 0.43},
		{"chrY", 4999740, 5004739, 0.39},
		{"chrY", 5336600, 5341599, 0.42},
		{"chrY", 6868840, 6873839, 0.44},
		{"chrY", 7044265, 7049264, 0.40},
		{"chrY", 7335090, 7340089, 0.43},
		{"chrY", 7720350, 7725349, 0.41},
		{"chrY", 8296210, 8301209, 0.42},
		{"chrY", 8923490, 8928489, 0.39},
		{"chrY", 9467660, 9472659, 0.44},
		{"chrY", 11124955, 11129954, 0.41},
		{"chrY", 11935190, 11940189, 0.42},
		{"chrY", 12472505, 12477504, 0.43},
		{"chrY", 13111665, 13116664, 0.40},
		{"chrY", 13728530, 13733529, 0.42},
		{"chrY", 14566735, 14571734, 0.39},
		{"chrY", 15219275, 15224274, 0.41},
		{"chrY", 16394645, 16399644, 0.43},
		{"chrY", 17043100, 17048099, 0.40},
		{"chrY", 17709355, 17714354, 0.42},
	},
}

// YDepth returns the median depth over the first yDepthPanelSize usable
// rows of the build's chrY panel. Any panel-region failure is fatal: there
// is no sensible degraded ploidy default.
func YDepth(src Source, build string) (float64, error) {
	panel, ok := yPanels[build]
	if !ok {
		return 0, errors.Errorf("no chrY depth panel for reference build %q", build)
	}
	var depths []float64
	for i, region := range panel {
		if ySkipRows[i] {
			continue
		}
		if len(depths) >= yDepthPanelSize {
			break
		}
		d, err := RegionDepth(src, region.Chrom, region.Start, region.End)
		if err != nil {
			return 0, errors.Wrapf(err, "chrY panel region %d", i)
		}
		depths = append(depths, d)
	}
	log.Debug.Printf("chrY depths (first %d usable regions): %v", yDepthPanelSize, depths)
	return median(depths), nil
}

// maleYDepthFloor is the chrY coverage at and above which a sample is
// considered male.
const maleYDepthFloor = 1.0

// InferSex infers the genetic sex of a sample from its chrY depth
// estimate. Female samples show only mismapping noise on the unique
// panel regions.
func InferSex(yDepth float64) Sex {
	if yDepth >= maleYDepthFloor {
		return SexMale
	}
	return SexFemale
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
