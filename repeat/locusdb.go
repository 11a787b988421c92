package repeat

import (
	"encoding/json"
	"io/ioutil"
	"sort"

	"github.com/pkg/errors"
)

// LocusDB is a read-only repository of locus definitions, loaded once per
// run from a JSON file produced by the locus-authoring tool.
type LocusDB struct {
	loci map[string]*Locus
}

// LoadLoci reads a JSON array of locus records and validates every entry.
// Any malformed locus is a fatal configuration error.
func LoadLoci(path string) (*LocusDB, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading locus repository %s", path)
	}
	var loci []*Locus
	if err := json.Unmarshal(data, &loci); err != nil {
		return nil, errors.Wrapf(err, "parsing locus repository %s", path)
	}
	db := &LocusDB{loci: make(map[string]*Locus, len(loci))}
	for _, l := range loci {
		if err := l.Validate(); err != nil {
			return nil, errors.Wrapf(err, "locus repository %s", path)
		}
		if _, ok := db.loci[l.Name]; ok {
			return nil, errors.Errorf("locus repository %s: duplicate locus %s", path, l.Name)
		}
		db.loci[l.Name] = l
	}
	return db, nil
}

// Lookup returns the locus with the given name.
func (db *LocusDB) Lookup(name string) (*Locus, error) {
	l, ok := db.loci[name]
	if !ok {
		return nil, errors.Errorf("unknown locus %q", name)
	}
	return l, nil
}

// Names returns all locus names, sorted.
func (db *LocusDB) Names() []string {
	names := make([]string, 0, len(db.loci))
	for name := range db.loci {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
