package batch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fieldtraits/traitstack/trait"
)

// ordinal names the Nth occurrence of a trait kind within one record,
// matching spec §6's CSV column-naming convention ("1st", "2nd").
func ordinal(n int) string {
	switch n {
	case 0:
		return "1st"
	case 1:
		return "2nd"
	case 2:
		return "3rd"
	default:
		return strconv.Itoa(n+1) + "th"
	}
}

// csvColumn names the output column for the i-th trait of a given kind
// seen in a record, folding in a side label when present (spec §6: "CSV
// column naming for paired measurements uses ordinals and side labels").
func csvColumn(kind trait.Kind, i int, side trait.Side) string {
	base := string(kind)
	if side != "" {
		label := "left"
		if side == trait.SideRight || side == trait.Side2 {
			label = "right"
		}
		return fmt.Sprintf("%s_%s", base, label)
	}
	if i == 0 {
		return base
	}
	return fmt.Sprintf("%s_%s", ordinal(i), base)
}

// WriteCSV renders results as CSV, one row per input record, with one
// column per distinct column name observed across all records: the kind
// with an ordinal prefix for repeats, or the kind and side label for a
// sided trait (same-kind traits with one side share that column, and the
// last one's value is kept) (stdlib encoding/csv: no third-party CSV writer appears
// anywhere in the example pack, see DESIGN.md).
func WriteCSV(w io.Writer, results []Result) error {
	columns, rows := buildCSVRows(results)
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("batch: writing csv header: %w", err)
	}
	for _, row := range rows {
		rec := make([]string, len(columns))
		for i, c := range columns {
			rec[i] = row[c]
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("batch: writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func buildCSVRows(results []Result) ([]string, []map[string]string) {
	var columns []string
	seen := map[string]bool{}
	rows := make([]map[string]string, len(results))

	for ri, res := range results {
		row := map[string]string{}
		counts := map[trait.Kind]int{}
		for _, t := range res.Traits {
			col := csvColumn(t.Kind, counts[t.Kind], t.Side)
			counts[t.Kind]++
			row[col] = t.Value.String()
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
		}
		rows[ri] = row
	}
	return columns, rows
}

// jsonTrait is the wire shape for one Trait (stdlib encoding/json: spec
// SPEC_FULL.md §6 names no third-party JSON writer in the example pack).
type jsonTrait struct {
	Kind           string  `json:"kind"`
	Start          int     `json:"start"`
	End            int     `json:"end"`
	Value          string  `json:"value"`
	Units          string  `json:"units,omitempty"`
	UnitsInferred  bool    `json:"units_inferred,omitempty"`
	AmbiguousKey   bool    `json:"ambiguous_key,omitempty"`
	EstimatedValue bool    `json:"estimated_value,omitempty"`
	Side           string  `json:"side,omitempty"`
	Dimension      string  `json:"dimension,omitempty"`
	MeasuredFrom   string  `json:"measured_from,omitempty"`
}

func toJSONTrait(t trait.Trait) jsonTrait {
	return jsonTrait{
		Kind:           string(t.Kind),
		Start:          t.Start,
		End:            t.End,
		Value:          t.Value.String(),
		Units:          t.Units,
		UnitsInferred:  t.UnitsInferred,
		AmbiguousKey:   t.AmbiguousKey,
		EstimatedValue: t.EstimatedValue,
		Side:           string(t.Side),
		Dimension:      string(t.Dimension),
		MeasuredFrom:   string(t.MeasuredFrom),
	}
}

// WriteJSONLines renders results as JSON Lines, one array of traits per
// input record.
func WriteJSONLines(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	for _, res := range results {
		out := make([]jsonTrait, len(res.Traits))
		for i, t := range res.Traits {
			out[i] = toJSONTrait(t)
		}
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("batch: writing json line: %w", err)
		}
	}
	return nil
}
