package mixclust

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ReadOptions controls ReadDelimited.
type ReadOptions struct {
	// Comma is the field delimiter. Default: ','.
	Comma rune

	// Kinds maps header names to variable kinds. Columns not listed are
	// skipped. A nil map reads every column (except GroupColumn) as
	// Continuous.
	Kinds map[string]VarKind

	// GroupColumn, when set, names an integer column copied into
	// Dataset.Groups instead of being used as a variable.
	GroupColumn string
}

// missingTokens are the cell values read as NaN.
var missingTokens = map[string]bool{"": true, "NA": true, "NaN": true, "nan": true, "?": true}

// ParseKinds parses a "name=kind,name=kind" column declaration.
func ParseKinds(spec string) (map[string]VarKind, error) {
	out := map[string]VarKind{}
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, kind, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("mixclust: column declaration %q is not name=kind", part)
		}
		k, err := ParseVarKind(strings.TrimSpace(kind))
		if err != nil {
			return nil, err
		}
		out[strings.TrimSpace(name)] = k
	}
	return out, nil
}

// ReadDelimited reads a dataset from delimited text with a header row.
// Variables keep the header's column order.
func ReadDelimited(r io.Reader, opts ReadOptions) (*Dataset, error) {
	cr := csv.NewReader(r)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("mixclust: read header: %w", err)
	}

	ds := &Dataset{}
	var cols []int
	groupCol := -1
	seen := map[string]bool{}
	for c, name := range header {
		name = strings.TrimSpace(name)
		seen[name] = true
		if opts.GroupColumn != "" && name == opts.GroupColumn {
			groupCol = c
			continue
		}
		kind := Continuous
		if opts.Kinds != nil {
			k, ok := opts.Kinds[name]
			if !ok {
				continue
			}
			kind = k
		}
		ds.Vars = append(ds.Vars, Variable{Name: name, Kind: kind})
		cols = append(cols, c)
	}
	for name := range opts.Kinds {
		if !seen[name] {
			return nil, fmt.Errorf("mixclust: declared column %q not in header", name)
		}
	}
	if opts.GroupColumn != "" && groupCol < 0 {
		return nil, fmt.Errorf("mixclust: group column %q not in header", opts.GroupColumn)
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("mixclust: read line %d: %w", line, err)
		}
		row := make([]float64, len(cols))
		for v, c := range cols {
			x, err := parseCell(rec[c])
			if err != nil {
				return nil, fmt.Errorf("mixclust: line %d, column %s: %w", line, ds.Vars[v].Name, err)
			}
			row[v] = x
		}
		ds.Rows = append(ds.Rows, row)
		if groupCol >= 0 {
			g, err := strconv.Atoi(strings.TrimSpace(rec[groupCol]))
			if err != nil {
				return nil, fmt.Errorf("mixclust: line %d, group column: %w", line, err)
			}
			ds.Groups = append(ds.Groups, g)
		}
	}

	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if missingTokens[s] {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// WriteDelimited writes ds with a header row. Missing values are written as
// "NA". When ds.Groups is set a trailing "group" column is added.
func WriteDelimited(w io.Writer, ds *Dataset, comma rune) error {
	cw := csv.NewWriter(w)
	if comma != 0 {
		cw.Comma = comma
	}

	header := make([]string, 0, ds.P()+1)
	for _, v := range ds.Vars {
		header = append(header, v.Name)
	}
	if ds.Groups != nil {
		header = append(header, "group")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	rec := make([]string, len(header))
	for i, row := range ds.Rows {
		for j, x := range row {
			if math.IsNaN(x) {
				rec[j] = "NA"
			} else {
				rec[j] = strconv.FormatFloat(x, 'g', -1, 64)
			}
		}
		if ds.Groups != nil {
			rec[len(rec)-1] = strconv.Itoa(ds.Groups[i])
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
