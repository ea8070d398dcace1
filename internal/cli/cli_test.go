package cli

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func TestRootCommandStructure(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	want := map[string]bool{
		"report":     false,
		"carbon":     false,
		"volume":     false,
		"biomass":    false,
		"species":    false,
		"serve":      false,
		"cache":      false,
		"completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestLookupSpeciesArg(t *testing.T) {
	sp, err := lookupSpeciesArg("202")
	if err != nil || sp.CommonName != "Douglas-fir" {
		t.Errorf("by code: %v, %v", sp, err)
	}

	sp, err = lookupSpeciesArg("red alder")
	if err != nil || sp.FIA != 351 {
		t.Errorf("by name: %v, %v", sp, err)
	}

	if _, err := lookupSpeciesArg("no such tree"); err == nil {
		t.Error("expected error for unknown species")
	}
}

func TestRunVolumeRejectsBadArgs(t *testing.T) {
	if err := runVolume([]string{"999", "10", "50"}, nil, 1); err == nil {
		t.Error("expected error for unknown equation")
	}
	if err := runVolume([]string{"1", "abc", "50"}, nil, 1); err == nil {
		t.Error("expected error for bad dbh")
	}
	if err := runVolume([]string{"1", "10", "50"}, []string{"NOPE"}, 1); err == nil {
		t.Error("expected error for bad metric")
	}
}

func TestBranchLabel(t *testing.T) {
	if got := branchLabel(0); got != "--" {
		t.Errorf("branchLabel(0) = %q", got)
	}
	if got := branchLabel(7); got != "BLB_7" {
		t.Errorf("branchLabel(7) = %q", got)
	}
}

func TestCycleRegion(t *testing.T) {
	r := cycleRegion("WOR", 1)
	if r != "WWA" {
		t.Errorf("next after WOR = %s", r)
	}
	r = cycleRegion("WOR", -1)
	if r != "CA" {
		t.Errorf("previous before WOR = %s", r)
	}
}
