package xmlvalidate

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// unknownLocation substitutes for missing location fields in group
// keys, so aggregation never fails on a location-less violation.
const unknownLocation = "unknownLocation"

// ErrorGroup is one aggregated group of violations sharing a category
// and source location.
type ErrorGroup struct {
	Count      int         `json:"count"`
	Violations []Violation `json:"errors"`
}

// Report maps a group key ("<category>-<file>:<line>:<column>") to its
// violations. It is the structured, machine-readable rendering; use
// WriteText for the human-readable one.
type Report map[string]*ErrorGroup

// Aggregate groups an outcome's violations by category and location.
func Aggregate(outcome Outcome) Report {
	report := make(Report)
	for _, violation := range outcome.Violations() {
		key := groupKey(violation)
		group, ok := report[key]
		if !ok {
			group = &ErrorGroup{}
			report[key] = group
		}
		group.Count++
		group.Violations = append(group.Violations, violation)
	}
	return report
}

func groupKey(v Violation) string {
	file := v.Location.File
	if file == "" {
		file = unknownLocation
	}
	category := string(v.Category)
	if category == "" {
		category = "uncategorized"
	}
	return fmt.Sprintf("%s-%s:%d:%d", category, file, v.Location.Line, v.Location.Column)
}

// WriteText renders the report line-oriented for console or log output.
// Groups are emitted in sorted key order so output is stable.
func (r Report) WriteText(w io.Writer) error {
	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		group := r[key]
		if _, err := fmt.Fprintf(w, "\nError group: %s (count: %d)\n", key, group.Count); err != nil {
			return err
		}
		for _, violation := range group.Violations {
			if _, err := fmt.Fprintf(w, "  - Level: %s, Message: %s\n",
				violation.Severity, violation.Message); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteJSON renders the report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
