package species

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ecotrust/arbcarbon/pkg/errors"
)

// Crosswalk resolves the species codes used in an FPS inventory to the FIA
// species registry. A crosswalk file is TOML with one table per species:
//
//	[[species]]
//	code = "DF"
//	fia = 202
//
//	[[species]]
//	code = "RA"
//	fia = 351
//	density = 23.5   # optional wood density override, lbs/ft3
//
// Without a crosswalk, inventory codes that are plain integers are treated
// as FIA codes directly.
type Crosswalk struct {
	entries map[string]crosswalkEntry
}

type crosswalkFile struct {
	Species []crosswalkEntry `toml:"species"`
}

type crosswalkEntry struct {
	Code    string  `toml:"code"`
	FIA     int     `toml:"fia"`
	Density float64 `toml:"density"`
}

// LoadCrosswalk reads and validates a TOML crosswalk file.
func LoadCrosswalk(path string) (*Crosswalk, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "crosswalk file %s not found", path)
	}

	var f crosswalkFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "parse crosswalk %s", path)
	}

	cw := &Crosswalk{entries: make(map[string]crosswalkEntry, len(f.Species))}
	for _, e := range f.Species {
		code := strings.TrimSpace(e.Code)
		if code == "" {
			return nil, errors.New(errors.ErrCodeParse, "crosswalk %s: entry missing species code", path)
		}
		if _, err := Lookup(e.FIA); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSpecies, err,
				"crosswalk %s: code %q maps to unknown FIA code %d", path, code, e.FIA)
		}
		if e.Density < 0 {
			return nil, errors.New(errors.ErrCodeParse,
				"crosswalk %s: code %q has negative density", path, code)
		}
		if _, dup := cw.entries[code]; dup {
			return nil, errors.New(errors.ErrCodeParse,
				"crosswalk %s: duplicate species code %q", path, code)
		}
		cw.entries[code] = e
	}
	return cw, nil
}

// Resolve maps an inventory species code to its species record. Density
// overrides from the crosswalk are applied to the returned copy. A nil
// crosswalk resolves integer codes against the FIA registry.
func (c *Crosswalk) Resolve(code string) (*Species, error) {
	code = strings.TrimSpace(code)

	var (
		sp       *Species
		override float64
	)
	if c != nil {
		if e, ok := c.entries[code]; ok {
			s, err := Lookup(e.FIA)
			if err != nil {
				return nil, err
			}
			sp, override = s, e.Density
		}
	}
	if sp == nil {
		fia, err := strconv.Atoi(code)
		if err != nil {
			return nil, errors.New(errors.ErrCodeSpeciesNotFound,
				"species code %q not in crosswalk", code)
		}
		s, err := Lookup(fia)
		if err != nil {
			return nil, err
		}
		sp = s
	}

	out := *sp
	if override > 0 {
		out.Density = override
		out.SpecificGravity = override / waterDensity
	}
	return &out, nil
}

// Codes returns the crosswalk's species codes sorted alphabetically.
func (c *Crosswalk) Codes() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.entries))
	for code := range c.entries {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
