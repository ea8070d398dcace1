package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// ValidateRegionName validates a protocol assignment region name.
// The recognized regions are Western Oregon (WOR), Western Washington (WWA),
// Eastern Oregon (EOR), Eastern Washington (EWA), and California (CA).
// Comparison ignores case and surrounding whitespace, matching the
// normalization ParseRegion applies.
func ValidateRegionName(region string) error {
	if strings.TrimSpace(region) == "" {
		return New(ErrCodeInvalidRegion, "region cannot be empty")
	}
	switch strings.ToUpper(strings.TrimSpace(region)) {
	case "WOR", "WWA", "EOR", "EWA", "CA":
		return nil
	}
	return New(ErrCodeInvalidRegion, "unknown region %q (expected WOR, WWA, EOR, EWA, or CA)", region)
}

// equationNumberRegex matches equation identifiers like "3", "14.1", "14.2".
var equationNumberRegex = regexp.MustCompile(`^[1-9][0-9]?(\.[12])?$`)

// ValidateEquationNumber validates a volume equation identifier.
// Valid identifiers are "1" through "46" plus the juniper/pinyon
// variants "14.1" and "14.2".
func ValidateEquationNumber(num string) error {
	if num == "" {
		return New(ErrCodeInvalidEquation, "equation number cannot be empty")
	}
	if !equationNumberRegex.MatchString(num) {
		return New(ErrCodeInvalidEquation, "invalid equation number: %q", num)
	}
	return nil
}

// ValidateMeasurement validates a tree measurement (DBH or height).
// Negative, NaN, and infinite values are rejected; zero is allowed because
// the equations define explicit zero results for undersized trees.
func ValidateMeasurement(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidTree, "%s must be a finite number", name)
	}
	if v < 0 {
		return New(ErrCodeInvalidTree, "%s cannot be negative: %g", name, v)
	}
	return nil
}

// ValidateSpeciesCode validates an FIA species code string.
// FIA codes are short positive integers (e.g. "202" for Douglas-fir).
func ValidateSpeciesCode(code string) error {
	if code == "" {
		return New(ErrCodeInvalidSpecies, "species code cannot be empty")
	}
	if len(code) > 5 {
		return New(ErrCodeInvalidSpecies, "species code too long: %q", code)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return New(ErrCodeInvalidSpecies, "species code must be numeric: %q", code)
		}
	}
	return nil
}

// ValidatePath validates a local file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
