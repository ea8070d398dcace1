package pipeline

import (
	"sort"
	"strconv"

	"github.com/ecotrust/arbcarbon/pkg/equations/biomass"
	"github.com/ecotrust/arbcarbon/pkg/equations/volume"
	"github.com/ecotrust/arbcarbon/pkg/errors"
	"github.com/ecotrust/arbcarbon/pkg/inventory"
	"github.com/ecotrust/arbcarbon/pkg/report"
	"github.com/ecotrust/arbcarbon/pkg/species"
)

// Compute builds report rows for every tree that passes the year and
// property filters. Live trees with a resolvable species get the full
// carbon calculation; dead trees and species missing from the crosswalk are
// carried through with identity columns only. The second return value lists
// the species codes that could not be resolved.
func Compute(inv *inventory.Inventory, cw *species.Crosswalk, opts Options) ([]report.Row, []string, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}

	stands := inv.StandsByID()
	unmatched := map[string]bool{}
	rows := make([]report.Row, 0, len(inv.Trees))

	for _, tree := range inv.Trees {
		if !opts.wantsYear(tree.ReportYr) {
			continue
		}
		stand, ok := stands[tree.StandID]
		if !ok {
			// Tree references a stand missing from ADMIN; nothing to report
			// it against.
			continue
		}
		if !opts.wantsProperty(stand.Property) {
			continue
		}

		row := report.Row{
			Property: stand.Property,
			ReportYr: tree.ReportYr,
			StandID:  tree.StandID,
			AreaGIS:  stand.AreaGIS,
			PlotTree: tree.PlotTree,
			GRP:      tree.GRP,
			Species:  tree.Species,
			DBH:      tree.DBH,
			Height:   tree.Height,
			TPA:      tree.TPA,
		}

		if !tree.Live() {
			rows = append(rows, row)
			continue
		}

		sp, err := cw.Resolve(tree.Species)
		if err != nil {
			if !errors.Is(err, errors.ErrCodeSpeciesNotFound) {
				return nil, nil, err
			}
			unmatched[tree.Species] = true
			rows = append(rows, row)
			continue
		}

		if err := computeTree(&row, sp, opts.region, tree, stand); err != nil {
			return nil, nil, err
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Property != b.Property {
			return a.Property < b.Property
		}
		if a.ReportYr != b.ReportYr {
			return a.ReportYr < b.ReportYr
		}
		if a.StandID != b.StandID {
			return a.StandID < b.StandID
		}
		return a.PlotTree < b.PlotTree
	})

	codes := make([]string, 0, len(unmatched))
	for code := range unmatched {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return rows, codes, nil
}

// TreeCarbon is the carbon calculation for a single live tree.
type TreeCarbon struct {
	VolumeEq string `json:"volume_eq"`
	BarkEq   int    `json:"bark_eq"`
	BranchEq int    `json:"branch_eq"` // 0 for species without a branch equation

	CVTS          float64 `json:"cvts_ft3"`
	WoodDensity   float64 `json:"wood_density_lbs_ft3"`
	StemTons      float64 `json:"stem_ustons"`
	StemKg        float64 `json:"stem_kg"`
	BarkKg        float64 `json:"bark_kg"`
	BranchKg      float64 `json:"branch_kg"`
	AbovegroundKg float64 `json:"aboveground_kg"`
	BelowgroundKg float64 `json:"belowground_kg"`
	LiveTreeKg    float64 `json:"live_tree_kg"`
	CarbonTree    float64 `json:"carbon_tco2_per_tree"`
}

// ComputeTreeCarbon runs the full per-tree chain: stem volume from the
// regional volume equation, bark and branch biomass from the metric forms,
// Cairns belowground expansion, and the CO2 conversion.
func ComputeTreeCarbon(sp *species.Species, region species.Region, dbh, height float64) (TreeCarbon, error) {
	asn, err := sp.Assignment(region)
	if err != nil {
		return TreeCarbon{}, err
	}
	volEq, err := sp.VolumeEquation(region)
	if err != nil {
		return TreeCarbon{}, err
	}
	barkEq, err := sp.BarkEquation(region)
	if err != nil {
		return TreeCarbon{}, err
	}
	branchEq, err := sp.BranchEquation(region)
	if err != nil {
		return TreeCarbon{}, err
	}

	cvts, err := volEq.Calc(volume.CVTS, dbh, height)
	if err != nil {
		return TreeCarbon{}, err
	}

	// The biomass forms take metric inputs.
	dbhCm, htM := dbh*InchesToCm, height*FeetToM
	barkKg, err := barkEq.Calc(dbhCm, htM, sp.Density)
	if err != nil {
		return TreeCarbon{}, err
	}
	branchKg, err := branchEq.Calc(dbhCm, htM, sp.Density)
	if err != nil {
		return TreeCarbon{}, err
	}

	stemLbs := cvts * sp.Density
	stemKg := stemLbs * LbsToKg
	abovegroundKg := stemKg + barkKg + branchKg
	belowgroundKg := biomass.Belowground(abovegroundKg)
	liveTreeKg := abovegroundKg + belowgroundKg

	return TreeCarbon{
		VolumeEq:      asn.Volume,
		BarkEq:        asn.Bark,
		BranchEq:      asn.Branch,
		CVTS:          cvts,
		WoodDensity:   sp.Density,
		StemTons:      stemLbs / LbsPerTon,
		StemKg:        stemKg,
		BarkKg:        barkKg,
		BranchKg:      branchKg,
		AbovegroundKg: abovegroundKg,
		BelowgroundKg: belowgroundKg,
		LiveTreeKg:    liveTreeKg,
		CarbonTree:    liveTreeKg * CO2PerKgBiomass,
	}, nil
}

// computeTree fills the computed columns of one live tree's row.
func computeTree(row *report.Row, sp *species.Species, region species.Region,
	tree inventory.Tree, stand inventory.Stand) error {

	tc, err := ComputeTreeCarbon(sp, region, tree.DBH, tree.Height)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidTree, err,
			"stand %s tree %s", tree.StandID, tree.PlotTree)
	}

	row.Computed = true
	row.Region = string(region)
	row.VolumeEq = tc.VolumeEq
	row.BarkEq = strconv.Itoa(tc.BarkEq)
	row.BranchEq = branchEqLabel(tc.BranchEq)
	row.CVTS = tc.CVTS
	row.WoodDensity = tc.WoodDensity
	row.StemTons = tc.StemTons
	row.StemKg = tc.StemKg
	row.BarkKg = tc.BarkKg
	row.BranchKg = tc.BranchKg
	row.AbovegroundKg = tc.AbovegroundKg
	row.BelowgroundKg = tc.BelowgroundKg
	row.LiveTreeKg = tc.LiveTreeKg
	row.CarbonTree = tc.CarbonTree
	row.CarbonAcre = tc.CarbonTree * tree.TPA
	row.CarbonTotal = tc.CarbonTree * tree.TPA * stand.AreaGIS
	return nil
}

// branchEqLabel renders the branch assignment; species without a branch
// equation report "--".
func branchEqLabel(n int) string {
	if n == 0 {
		return "--"
	}
	return strconv.Itoa(n)
}
