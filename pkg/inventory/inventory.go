// Package inventory reads forest inventory exports from an FPS (Forest
// Projection System) database. Two CSV exports are expected: ADMIN.csv with
// one row per stand, and DBHCLS.csv with one row per tree record.
//
// Column handling is tolerant: columns are located by header name, extra
// columns are ignored, and blank numeric fields parse as zero.
package inventory

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ecotrust/arbcarbon/pkg/errors"
)

// File names of the two FPS exports.
const (
	AdminFile = "ADMIN.csv"
	TreesFile = "DBHCLS.csv"
)

// Live-tree GRP codes: live, residual, ingrowth, leave, and wildlife trees.
// Everything else counts as dead or cut.
var liveGRP = map[string]bool{
	"..": true, ".R": true, ".I": true, ".L": true, ".W": true,
}

// Stand is one row of the ADMIN table.
type Stand struct {
	ID       string  `json:"std_id"`
	ReportYr int     `json:"rpt_yr"`
	MeasYr   int     `json:"msmt_yr"`
	Property string  `json:"property"`
	AreaGIS  float64 `json:"area_gis"` // acres
}

// Tree is one row of the DBHCLS table.
type Tree struct {
	ReportYr int     `json:"rpt_yr"`
	StandID  string  `json:"std_id"`
	PlotTree string  `json:"plot_tree"`
	GRP      string  `json:"grp"`
	Species  string  `json:"species"`
	TPA      float64 `json:"trees"`  // trees per acre this record expands to
	DBH      float64 `json:"dbh"`    // inches
	Height   float64 `json:"height"` // feet
}

// Live reports whether the record's GRP code marks a living tree.
func (t *Tree) Live() bool { return liveGRP[t.GRP] }

// Inventory is a parsed pair of FPS exports.
type Inventory struct {
	Stands []Stand `json:"stands"`
	Trees  []Tree  `json:"trees"`
}

// ReadDir reads ADMIN.csv and DBHCLS.csv from a directory.
func ReadDir(dir string) (*Inventory, error) {
	if err := errors.ValidatePath(dir); err != nil {
		return nil, err
	}

	admin, err := openExport(filepath.Join(dir, AdminFile))
	if err != nil {
		return nil, err
	}
	defer admin.Close()
	stands, err := ReadStands(admin)
	if err != nil {
		return nil, err
	}

	trees, err := openExport(filepath.Join(dir, TreesFile))
	if err != nil {
		return nil, err
	}
	defer trees.Close()
	records, err := ReadTrees(trees)
	if err != nil {
		return nil, err
	}

	return &Inventory{Stands: stands, Trees: records}, nil
}

func openExport(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err,
				"FPS export %s not found; export it from your FPS database first", filepath.Base(path))
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	return f, nil
}

// ReadStands parses an ADMIN export.
func ReadStands(r io.Reader) ([]Stand, error) {
	rows, cols, err := readTable(r, AdminFile,
		"STD_ID", "RPT_YR", "MSMT_YR", "Property", "AREA_GIS")
	if err != nil {
		return nil, err
	}

	stands := make([]Stand, 0, len(rows))
	for i, row := range rows {
		s := Stand{
			ID:       cols.str(row, "STD_ID"),
			Property: cols.str(row, "Property"),
		}
		if s.ReportYr, err = cols.intval(row, "RPT_YR", i); err != nil {
			return nil, err
		}
		if s.MeasYr, err = cols.intval(row, "MSMT_YR", i); err != nil {
			return nil, err
		}
		if s.AreaGIS, err = cols.floatval(row, "AREA_GIS", i); err != nil {
			return nil, err
		}
		stands = append(stands, s)
	}
	return stands, nil
}

// ReadTrees parses a DBHCLS export.
func ReadTrees(r io.Reader) ([]Tree, error) {
	rows, cols, err := readTable(r, TreesFile,
		"RPT_YR", "STD_ID", "PlotTree", "GRP", "SPECIES", "TREES", "DBH", "HEIGHT")
	if err != nil {
		return nil, err
	}

	trees := make([]Tree, 0, len(rows))
	for i, row := range rows {
		t := Tree{
			StandID:  cols.str(row, "STD_ID"),
			PlotTree: cols.str(row, "PlotTree"),
			GRP:      cols.str(row, "GRP"),
			Species:  cols.str(row, "SPECIES"),
		}
		if t.ReportYr, err = cols.intval(row, "RPT_YR", i); err != nil {
			return nil, err
		}
		if t.TPA, err = cols.floatval(row, "TREES", i); err != nil {
			return nil, err
		}
		if t.DBH, err = cols.floatval(row, "DBH", i); err != nil {
			return nil, err
		}
		if t.Height, err = cols.floatval(row, "HEIGHT", i); err != nil {
			return nil, err
		}
		trees = append(trees, t)
	}
	return trees, nil
}

// Properties returns the distinct property names, sorted.
func (inv *Inventory) Properties() []string {
	seen := map[string]bool{}
	for _, s := range inv.Stands {
		seen[s.Property] = true
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Years returns the distinct tree report years, sorted.
func (inv *Inventory) Years() []int {
	seen := map[int]bool{}
	for _, t := range inv.Trees {
		seen[t.ReportYr] = true
	}
	out := make([]int, 0, len(seen))
	for y := range seen {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}

// StandsByID indexes the stand list.
func (inv *Inventory) StandsByID() map[string]Stand {
	out := make(map[string]Stand, len(inv.Stands))
	for _, s := range inv.Stands {
		out[s.ID] = s
	}
	return out
}

// SpeciesCodes returns the distinct species codes in the tree list, sorted.
func (inv *Inventory) SpeciesCodes() []string {
	seen := map[string]bool{}
	for _, t := range inv.Trees {
		seen[t.Species] = true
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// -----------------------------------------------------------------------------
// CSV plumbing
// -----------------------------------------------------------------------------

type columns map[string]int

func (c columns) str(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (c columns) intval(row []string, name string, line int) (int, error) {
	s := c.str(row, name)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeParse, err,
			"row %d: column %s: %q is not an integer", line+2, name, s)
	}
	return v, nil
}

func (c columns) floatval(row []string, name string, line int) (float64, error) {
	s := c.str(row, name)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeParse, err,
			"row %d: column %s: %q is not a number", line+2, name, s)
	}
	return v, nil
}

// readTable reads a headered CSV and locates the required columns.
func readTable(r io.Reader, name string, required ...string) ([][]string, columns, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // FPS exports pad rows unevenly
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeParse, err, "read %s", name)
	}
	if len(rows) == 0 {
		return nil, nil, errors.New(errors.ErrCodeParse, "%s is empty", name)
	}

	cols := columns{}
	for i, h := range rows[0] {
		cols[strings.TrimSpace(h)] = i
	}
	for _, col := range required {
		if _, ok := cols[col]; !ok {
			return nil, nil, errors.New(errors.ErrCodeParse, "%s is missing column %s", name, col)
		}
	}
	return rows[1:], cols, nil
}
