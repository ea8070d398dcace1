// Package report writes the per-property carbon report CSVs. The column
// layout matches the original FPS2ARB report so downstream spreadsheets keep
// working: inventory identity columns first, then the equation assignments
// and computed biomass and carbon columns. Trees that were skipped (dead, or
// species without a crosswalk entry) appear with their identity columns only.
package report

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ecotrust/arbcarbon/pkg/errors"
)

// Row is one tree record in a carbon report.
type Row struct {
	Property string
	ReportYr int
	StandID  string
	AreaGIS  float64
	PlotTree string
	GRP      string
	Species  string
	DBH      float64
	Height   float64
	TPA      float64

	// Computed marks rows that carry carbon results; skipped trees keep
	// their identity columns and leave the rest blank.
	Computed      bool
	Region        string
	VolumeEq      string
	BarkEq        string
	BranchEq      string
	CVTS          float64 // cubic feet
	WoodDensity   float64 // lbs per cubic foot
	StemTons      float64 // US short tons
	StemKg        float64
	BarkKg        float64
	BranchKg      float64
	AbovegroundKg float64
	BelowgroundKg float64
	LiveTreeKg    float64
	CarbonTree    float64 // tCO2 per tree
	CarbonAcre    float64 // tCO2 per acre
	CarbonTotal   float64 // tCO2 across the stand's mapped area
}

// Header is the report column order.
var Header = []string{
	"Property", "RPT_YR", "STD_ID", "AREA_GIS", "PlotTree", "GRP", "SPECIES",
	"DBH", "HEIGHT", "TREES", "FIA_Region", "Vol_Eq", "BarkBio_Eq",
	"BranchBio_Eq", "CVTS_ft3", "Wood_density_lbs_ft3", "Stem_biomass_UStons",
	"Stem_biomass_kg", "Bark_biomass_kg", "Branch_biomass_kg",
	"Aboveground_biomass_kg", "Belowground_biomass_kg", "LiveTree_biomass_kg",
	"LiveTree_carbon_tCO2_tree", "LiveTree_carbon_tCO2_ac",
	"LiveTree_carbon_tCO2_total",
}

func (r *Row) record() []string {
	rec := []string{
		r.Property,
		strconv.Itoa(r.ReportYr),
		r.StandID,
		num(r.AreaGIS),
		r.PlotTree,
		r.GRP,
		r.Species,
		num(r.DBH),
		num(r.Height),
		num(r.TPA),
	}
	if !r.Computed {
		for len(rec) < len(Header) {
			rec = append(rec, "")
		}
		return rec
	}
	return append(rec,
		r.Region,
		r.VolumeEq,
		r.BarkEq,
		r.BranchEq,
		num(r.CVTS),
		num(r.WoodDensity),
		num(r.StemTons),
		num(r.StemKg),
		num(r.BarkKg),
		num(r.BranchKg),
		num(r.AbovegroundKg),
		num(r.BelowgroundKg),
		num(r.LiveTreeKg),
		num(r.CarbonTree),
		num(r.CarbonAcre),
		num(r.CarbonTotal),
	)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Write writes rows as CSV, header first.
func Write(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write report header")
	}
	for i := range rows {
		if err := cw.Write(rows[i].record()); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "write report row %d", i+1)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "flush report")
	}
	return nil
}

// FileName builds the conventional report file name for a property.
func FileName(property string, date time.Time) string {
	return "FPS2ARB_" + property + "_" + date.Format("2006-01-02") + ".csv"
}

// WriteProperty writes one property's rows to <dir>/FPS2ARB_<property>_<date>.csv,
// creating the directory as needed, and returns the file path.
func WriteProperty(dir, property string, rows []Row, date time.Time) (string, error) {
	if err := errors.ValidatePath(dir); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "create output directory %s", dir)
	}

	path := filepath.Join(dir, FileName(property, date))
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	defer f.Close()

	if err := Write(f, rows); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}
	return path, nil
}
