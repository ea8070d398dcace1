package errors

import (
	"math"
	"testing"
)

func TestValidateRegionName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"western oregon", "WOR", false},
		{"western washington", "WWA", false},
		{"eastern oregon", "EOR", false},
		{"eastern washington", "EWA", false},
		{"california", "CA", false},
		{"lowercase", "wor", false},
		{"mixed case", "Ca", false},
		{"padded", " ca ", false},
		{"trailing tab", "WOR\t", false},

		{"empty", "", true},
		{"whitespace only", "  ", true},
		{"unknown", "NV", true},
		{"full name", "California", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegionName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRegionName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateEquationNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"single digit", "3", false},
		{"double digit", "46", false},
		{"juniper variant", "14.1", false},
		{"pinyon variant", "14.2", false},

		{"empty", "", true},
		{"zero", "0", true},
		{"leading zero", "03", true},
		{"bad suffix", "14.3", true},
		{"non-numeric", "abc", true},
		{"negative", "-5", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEquationNumber(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEquationNumber(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMeasurement(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"positive", 20.5, false},
		{"zero", 0, false},
		{"large", 400, false},

		{"negative", -1, true},
		{"NaN", math.NaN(), true},
		{"positive infinity", math.Inf(1), true},
		{"negative infinity", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMeasurement("dbh", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMeasurement(dbh, %v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSpeciesCode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"douglas-fir", "202", false},
		{"red alder", "351", false},
		{"short", "15", false},

		{"empty", "", true},
		{"too long", "123456", true},
		{"alpha", "DF", true},
		{"mixed", "20a", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSpeciesCode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSpeciesCode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "data/DBHCLS.csv", false},
		{"absolute", "/var/data/ADMIN.csv", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
