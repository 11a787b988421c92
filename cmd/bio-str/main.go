package main

/*
bio-str extracts short-tandem-repeat genotyping evidence from an aligned
BAM or PAM file: spanning-read classifications against a bank of
repeat-count hypotheses, paired-fragment span distributions, and local
depth. The output is a JSON document per locus, consumed by the downstream
likelihood model that calls allele sizes.
*/

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/str/repeat"
)

var (
	lociPath    = flag.String("loci", "", "JSON locus repository path (required)")
	locusNames  = flag.String("locus", "", "Comma-separated locus names; default is every locus in the repository")
	indexPath   = flag.String("index", "", "Input BAM index path. Defaults to bampath + .bai")
	format      = flag.String("format", "bam", "Alignment file format; 'bam' and 'pam' supported")
	pad         = flag.Int("pad", repeat.DefaultPad, "Bases of padding around the repeat tract when fetching reads")
	sexFlag     = flag.String("sex", "auto", "Sample sex for X-linked ploidy; 'male', 'female', or 'auto' (infer from chrY depth)")
	build       = flag.String("build", "hg38", "Reference build for the chrY depth panel; 'hg19' and 'hg38' supported")
	readLen     = flag.Int("read-len", 0, "Observed read length; 0 probes it from the file")
	parallelism = flag.Int("parallelism", 0, "Maximum number of concurrent read classifications; 0 = runtime.NumCPU()")
	outPath     = flag.String("out", "", "Output JSON path; default is stdout")
)

func usage() {
	fmt.Printf("Usage: %s [OPTIONS] {b,p}ampath\n", os.Args[0])
	fmt.Printf("Options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 1 {
		usage()
		log.Fatalf("exactly one alignment file expected, got %d", flag.NArg())
	}
	alignPath := flag.Arg(0)
	if *lociPath == "" {
		log.Fatalf("-loci is required")
	}
	srcFormat, err := repeat.ParseFormat(*format)
	if err != nil {
		log.Fatalf("%v", err)
	}

	db, err := repeat.LoadLoci(*lociPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	names := db.Names()
	if *locusNames != "" {
		names = strings.Split(*locusNames, ",")
	}

	open := func() (repeat.Source, error) {
		return repeat.NewSource(alignPath, *indexPath, srcFormat)
	}

	sex, err := resolveSex(*sexFlag, *build, open)
	if err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("sample sex: %v", sex)

	opts := repeat.ExtractOpts{
		Pad:         *pad,
		ReadLen:     *readLen,
		Parallelism: *parallelism,
		Classify:    repeat.DefaultClassifyOpts,
	}
	evidence := make([]*repeat.Evidence, 0, len(names))
	for _, name := range names {
		locus, err := db.Lookup(name)
		if err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("extracting %v (ploidy=%d)", locus, locus.EffectivePloidy(sex))
		ev, err := repeat.Extract(open, locus, sex, opts)
		if err != nil {
			log.Fatalf("%s: %v", name, err)
		}
		evidence = append(evidence, ev)
	}

	data, err := json.MarshalIndent(evidence, "", "  ")
	if err != nil {
		log.Fatalf("encoding evidence: %v", err)
	}
	data = append(data, '\n')
	if *outPath == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			log.Fatalf("writing evidence: %v", err)
		}
		return
	}
	if err := ioutil.WriteFile(*outPath, data, 0644); err != nil {
		log.Fatalf("writing %s: %v", *outPath, err)
	}
}

// resolveSex parses an explicit sex value, or infers one from the chrY
// depth panel when asked to.
func resolveSex(value, build string, open repeat.SourceOpener) (repeat.Sex, error) {
	if strings.ToLower(value) != "auto" {
		return repeat.ParseSex(value)
	}
	src, err := open()
	if err != nil {
		return repeat.SexUnknown, err
	}
	defer src.Close() // nolint: errcheck
	yDepth, err := repeat.YDepth(src, build)
	if err != nil {
		return repeat.SexUnknown, err
	}
	sex := repeat.InferSex(yDepth)
	log.Printf("chrY depth %.2f => %v", yDepth, sex)
	return sex, nil
}
