package core

// convert.go turns raw decoded strings into typed table cells.
//
// The decoders (CSV and XLSX) both produce a header row plus string records.
// From there the rules are shared:
//   - NA spellings and blank strings become missing cells
//   - a column is numeric when every non-missing value parses as a number
//   - header names are made unique ("Unnamed: 3", "price.1")
//
// With loose parsing enabled, currency symbols, thousands separators and
// accounting negatives ("(12.50)") are also accepted as numbers.

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// naValues are the strings treated as missing when decoding.
var naValues = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// ParseOptions controls how raw strings are typed.
type ParseOptions struct {
	// LooseNumbers accepts "$1,234.50" and "(12.5)" style numbers.
	LooseNumbers bool
}

// IsMissingValue reports whether a raw string denotes a missing cell.
func IsMissingValue(s string) bool {
	_, ok := naValues[strings.TrimSpace(s)]
	return ok
}

// ParseNumber parses a raw string as a finite float.
// Returns false if the string is not numeric under the given options.
// "inf", "Infinity" and NaN spellings the NA set does not cover are not
// numbers; their columns type as text.
func ParseNumber(s string, opts ParseOptions) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, isFinite(f)
	}
	if opts.LooseNumbers {
		return parseLooseNumber(s)
	}
	return 0, false
}

func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// parseLooseNumber handles currency symbols, thousands separators, and
// accounting format (parentheses for negative).
func parseLooseNumber(s string) (float64, bool) {
	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if isNegative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return 0, false
	}

	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		return 0, false
	}
	f, err := n.Float64Value()
	if err != nil || !f.Valid {
		return 0, false
	}
	return f.Float64, isFinite(f.Float64)
}

// TableFromRecords builds a typed table from a header row and string records.
// Records shorter than the header are padded with missing cells; longer
// records are an error.
func TableFromRecords(header []string, records [][]string, opts ParseOptions) (*Table, error) {
	names := uniqueNames(header)

	raw := make([][]string, len(names))
	for i := range raw {
		raw[i] = make([]string, len(records))
	}
	for r, rec := range records {
		if len(rec) > len(names) {
			return nil, fmt.Errorf("row %d: expected %d fields, saw %d", r+2, len(names), len(rec))
		}
		for c := range names {
			if c < len(rec) {
				raw[c][r] = rec[c]
			}
		}
	}

	cols := make([]Column, len(names))
	for i, name := range names {
		cols[i] = inferColumn(name, raw[i], opts)
	}
	return NewTable(cols)
}

// inferColumn types a column of raw strings.
// All-missing columns are numeric, matching how dataframe engines treat them.
func inferColumn(name string, values []string, opts ParseOptions) Column {
	cells := make([]Cell, len(values))
	numeric := true
	for i, v := range values {
		if IsMissingValue(v) {
			cells[i] = MissingCell()
			continue
		}
		if !numeric {
			continue
		}
		f, ok := ParseNumber(v, opts)
		if !ok {
			numeric = false
			continue
		}
		cells[i] = NumberCell(f)
	}

	if numeric {
		return Column{Name: name, Type: ColumnNumeric, Cells: cells}
	}

	for i, v := range values {
		if IsMissingValue(v) {
			cells[i] = MissingCell()
		} else {
			cells[i] = TextCell(v)
		}
	}
	return Column{Name: name, Type: ColumnText, Cells: cells}
}

// uniqueNames fills blank headers and disambiguates repeats with ".N" suffixes.
func uniqueNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if seen[name] {
			base := name
			for n := 1; seen[name]; n++ {
				name = fmt.Sprintf("%s.%d", base, n)
			}
		}
		seen[name] = true
		names[i] = name
	}
	return names
}
