package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ecotrust/arbcarbon/pkg/buildinfo"
	"github.com/ecotrust/arbcarbon/pkg/equations/volume"
	"github.com/ecotrust/arbcarbon/pkg/errors"
	"github.com/ecotrust/arbcarbon/pkg/pipeline"
	"github.com/ecotrust/arbcarbon/pkg/species"
	"github.com/ecotrust/arbcarbon/pkg/store"
)

type healthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Version:       buildinfo.Version,
		UptimeSeconds: int64(time.Since(s.start).Seconds()),
	})
}

type speciesEntry struct {
	FIA        int     `json:"fia"`
	CommonName string  `json:"common_name"`
	Kind       string  `json:"kind"`
	Density    float64 `json:"wood_density_lbs_ft3"`
	VolumeEq   string  `json:"volume_eq,omitempty"`
	BarkEq     int     `json:"bark_eq,omitempty"`
	BranchEq   int     `json:"branch_eq,omitempty"`
}

type speciesResponse struct {
	Region  string         `json:"region,omitempty"`
	Species []speciesEntry `json:"species"`
}

// handleSpecies lists registered species. With ?region= it returns only
// species assigned equations in that region, including the assignment.
func (s *Server) handleSpecies(w http.ResponseWriter, r *http.Request) {
	resp := speciesResponse{Species: []speciesEntry{}}

	var region species.Region
	if q := r.URL.Query().Get("region"); q != "" {
		var err error
		region, err = species.ParseRegion(q)
		if err != nil {
			writeError(w, err)
			return
		}
		resp.Region = string(region)
	}

	for _, sp := range species.All() {
		entry := speciesEntry{
			FIA:        sp.FIA,
			CommonName: sp.CommonName,
			Kind:       sp.Kind.String(),
			Density:    sp.Density,
		}
		if region != "" {
			asn, err := sp.Assignment(region)
			if err != nil {
				continue
			}
			entry.VolumeEq = asn.Volume
			entry.BarkEq = asn.Bark
			entry.BranchEq = asn.Branch
		}
		resp.Species = append(resp.Species, entry)
	}
	writeJSON(w, http.StatusOK, resp)
}

type volumeRequest struct {
	Equation string   `json:"equation"`
	DBH      float64  `json:"dbh_in"`
	Height   float64  `json:"height_ft"`
	Stems    int      `json:"stems,omitempty"`
	Metrics  []string `json:"metrics,omitempty"`
}

type volumeResponse struct {
	Equation    string             `json:"equation"`
	Description string             `json:"description"`
	Kind        string             `json:"kind"`
	Results     map[string]float64 `json:"results"`
}

// handleVolume evaluates one volume equation. An empty metrics list returns
// every metric the equation supports.
func (s *Server) handleVolume(w http.ResponseWriter, r *http.Request) {
	var req volumeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	eq, err := volume.Lookup(req.Equation)
	if err != nil {
		writeError(w, err)
		return
	}

	metrics := eq.Metrics()
	if len(req.Metrics) > 0 {
		metrics = metrics[:0]
		for _, name := range req.Metrics {
			m, err := volume.ParseMetric(name)
			if err != nil {
				writeError(w, err)
				return
			}
			metrics = append(metrics, m)
		}
	}

	stems := req.Stems
	if stems <= 0 {
		stems = 1
	}

	results := make(map[string]float64, len(metrics))
	for _, m := range metrics {
		v, err := eq.CalcStems(m, req.DBH, req.Height, stems)
		if err != nil {
			writeError(w, err)
			return
		}
		results[string(m)] = v
	}

	writeJSON(w, http.StatusOK, volumeResponse{
		Equation:    eq.Number(),
		Description: eq.Description(),
		Kind:        eq.Kind().String(),
		Results:     results,
	})
}

type carbonRequest struct {
	FIA     int     `json:"fia,omitempty"`
	Species string  `json:"species,omitempty"` // common name, used when fia is 0
	Region  string  `json:"region"`
	DBH     float64 `json:"dbh_in"`
	Height  float64 `json:"height_ft"`
	TPA     float64 `json:"tpa,omitempty"`
	Acres   float64 `json:"acres,omitempty"`
}

type carbonResponse struct {
	FIA        int    `json:"fia"`
	CommonName string `json:"common_name"`
	Region     string `json:"region"`

	pipeline.TreeCarbon

	CarbonAcre  float64 `json:"carbon_tco2_per_acre,omitempty"`
	CarbonTotal float64 `json:"carbon_tco2_total,omitempty"`
}

// handleCarbon runs the full volume → biomass → carbon chain for one tree.
func (s *Server) handleCarbon(w http.ResponseWriter, r *http.Request) {
	var req carbonRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	region, err := species.ParseRegion(req.Region)
	if err != nil {
		writeError(w, err)
		return
	}

	var sp *species.Species
	if req.FIA != 0 {
		sp, err = species.Lookup(req.FIA)
	} else if req.Species != "" {
		sp, err = species.LookupCommon(req.Species)
	} else {
		err = errors.New(errors.ErrCodeInvalidInput, "fia or species is required")
	}
	if err != nil {
		writeError(w, err)
		return
	}

	tc, err := pipeline.ComputeTreeCarbon(sp, region, req.DBH, req.Height)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := carbonResponse{
		FIA:        sp.FIA,
		CommonName: sp.CommonName,
		Region:     string(region),
		TreeCarbon: tc,
	}
	if req.TPA > 0 {
		resp.CarbonAcre = tc.CarbonTree * req.TPA
		if req.Acres > 0 {
			resp.CarbonTotal = resp.CarbonAcre * req.Acres
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type runRequest struct {
	Region     string   `json:"region,omitempty"`
	Properties []string `json:"properties,omitempty"`
	Years      []int    `json:"years,omitempty"`
	Crosswalk  string   `json:"crosswalk,omitempty"`
	Refresh    bool     `json:"refresh,omitempty"`
}

// handleCreateRun executes the pipeline against the server's data directory
// and records the run when a store is configured.
func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	opts := pipeline.Options{
		DataDir:    s.cfg.DataDir,
		OutDir:     s.cfg.OutDir,
		Region:     req.Region,
		Properties: req.Properties,
		Years:      req.Years,
		Crosswalk:  req.Crosswalk,
		Refresh:    req.Refresh,
		Logger:     s.logger,
	}
	// Validate up front so the stored run records the normalized options.
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, err)
		return
	}
	result, err := s.cfg.Runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	run := store.NewRun(result, opts)
	if s.cfg.Store != nil {
		if err := s.cfg.Store.SaveRun(r.Context(), run); err != nil {
			writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusCreated, run)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Store == nil {
		writeJSON(w, http.StatusNotImplemented,
			errorResponse{Error: "run history requires a configured store"})
		return
	}
	runs, err := s.cfg.Store.ListRuns(r.Context(), 0)
	if err != nil {
		writeError(w, err)
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	writeJSON(w, http.StatusOK, map[string][]store.Run{"runs": runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Store == nil {
		writeJSON(w, http.StatusNotImplemented,
			errorResponse{Error: "run history requires a configured store"})
		return
	}
	run, err := s.cfg.Store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}
