// Package species maps FIA species codes to the per-region equation
// assignments and wood specifications required by the ARB forest carbon
// protocol.
//
// Each species carries one assignment per assessment region (western Oregon,
// western Washington, eastern Oregon, eastern Washington, California) naming
// its stem volume equation, bark biomass equation, and live branch biomass
// equation, plus the wood density used to convert stem volume to mass.
// Inventories that use local species codes are resolved through a TOML
// crosswalk file.
package species

import (
	"sort"
	"strings"

	"github.com/ecotrust/arbcarbon/pkg/equations/biomass"
	"github.com/ecotrust/arbcarbon/pkg/equations/volume"
	"github.com/ecotrust/arbcarbon/pkg/errors"
)

// Region is an ARB assessment region.
type Region string

// The five assessment regions.
const (
	WOR Region = "WOR" // western Oregon
	WWA Region = "WWA" // western Washington
	EOR Region = "EOR" // eastern Oregon
	EWA Region = "EWA" // eastern Washington
	CA  Region = "CA"  // California
)

// Regions lists all assessment regions.
var Regions = []Region{WOR, WWA, EOR, EWA, CA}

// ParseRegion normalizes and validates a region name.
func ParseRegion(s string) (Region, error) {
	if err := errors.ValidateRegionName(s); err != nil {
		return "", err
	}
	return Region(strings.ToUpper(strings.TrimSpace(s))), nil
}

// Assignment names the equations one species uses in one region. A zero
// Branch means the species has no published branch equation; an empty Volume
// means no volume equation is assigned in that region.
type Assignment struct {
	Volume string // volume equation number, e.g. "1" or "14.1"
	Bark   int    // bark equation BB_<n>
	Branch int    // branch equation BLB_<n>, 0 for none
}

// Species holds the protocol attributes of one tree species.
type Species struct {
	FIA             int     // USFS FIA species code
	CommonName      string
	Kind            volume.Kind
	SpecificGravity float64
	Density         float64 // wood density, lbs per cubic foot

	assignments map[Region]Assignment
}

// Assignment returns the equation assignment for a region.
func (s *Species) Assignment(r Region) (Assignment, error) {
	a, ok := s.assignments[r]
	if !ok || a.Volume == "" {
		return Assignment{}, errors.New(errors.ErrCodeUnsupported,
			"species %d (%s) has no equation assignment for region %s", s.FIA, s.CommonName, r)
	}
	return a, nil
}

// VolumeEquation returns the stem volume equation assigned in a region.
func (s *Species) VolumeEquation(r Region) (*volume.Equation, error) {
	a, err := s.Assignment(r)
	if err != nil {
		return nil, err
	}
	return volume.Lookup(a.Volume)
}

// BarkEquation returns the bark biomass equation assigned in a region.
func (s *Species) BarkEquation(r Region) (*biomass.Equation, error) {
	a, err := s.Assignment(r)
	if err != nil {
		return nil, err
	}
	return biomass.LookupBark(a.Bark)
}

// BranchEquation returns the live branch biomass equation assigned in a
// region. Species without a published branch equation get the null equation.
func (s *Species) BranchEquation(r Region) (*biomass.Equation, error) {
	a, err := s.Assignment(r)
	if err != nil {
		return nil, err
	}
	return biomass.LookupBranch(a.Branch)
}

// Lookup returns the species with the given FIA code.
func Lookup(fia int) (*Species, error) {
	s, ok := registry[fia]
	if !ok {
		return nil, errors.New(errors.ErrCodeSpeciesNotFound, "unknown FIA species code %d", fia)
	}
	return s, nil
}

// LookupCommon returns the species with the given common name,
// case-insensitively.
func LookupCommon(name string) (*Species, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, s := range registry {
		if strings.ToLower(s.CommonName) == want {
			return s, nil
		}
	}
	return nil, errors.New(errors.ErrCodeSpeciesNotFound, "unknown species %q", name)
}

// All returns every registered species sorted by FIA code.
func All() []*Species {
	out := make([]*Species, 0, len(registry))
	for _, s := range registry {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FIA < out[j].FIA })
	return out
}
