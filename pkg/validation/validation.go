// Package validation collects findings about provider records and about the
// collections and metrics derived from them.
package validation

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownLevel is returned when a stage name does not parse.
var ErrUnknownLevel = errors.New("unknown validation level")

// Level names the stage of report generation a finding came from.
type Level string

const (
	// LevelSchema covers checks on the loaded provider records.
	LevelSchema Level = "schema"
	// LevelDerived covers checks on generated collections.
	LevelDerived Level = "derived"
	// LevelAnalytical covers checks on aggregated metrics.
	LevelAnalytical Level = "analytical"
)

// Levels lists the stages in the order a report runs them.
var Levels = []Level{LevelSchema, LevelDerived, LevelAnalytical}

// ParseLevel maps a stage name onto its Level.
func ParseLevel(s string) (Level, error) {
	if l := Level(s); slices.Contains(Levels, l) {
		return l, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Result is one finding. Path locates the offending field, for example
// providers[3].total_stock or projects[12].
type Result struct {
	Level       Level    `json:"level"`
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
	Path        string   `json:"path"`
	ActualValue any      `json:"actual_value,omitempty"`
	Expected    string   `json:"expected,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Where renders the result's location as "path = value", or just the path
// when no value was recorded.
func (res Result) Where() string {
	if res.ActualValue == nil {
		return res.Path
	}
	return fmt.Sprintf("%s = %v", res.Path, res.ActualValue)
}

// Report holds findings split by severity. Errors make it invalid; warnings
// and info never do.
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []Result `json:"errors"`
	Warnings []Result `json:"warnings"`
	Info     []Result `json:"info"`
	Summary  string   `json:"summary"`
}

func NewReport() *Report {
	r := &Report{
		Valid:    true,
		Errors:   []Result{},
		Warnings: []Result{},
		Info:     []Result{},
	}
	r.updateSummary()
	return r
}

// AddError records a finding that blocks the report.
func (r *Report) AddError(res Result) { r.add(SeverityError, res) }

// AddWarning records a finding worth surfacing that does not block.
func (r *Report) AddWarning(res Result) { r.add(SeverityWarning, res) }

// AddInfo records a note, such as a computed ratio.
func (r *Report) AddInfo(res Result) { r.add(SeverityInfo, res) }

func (r *Report) add(sev Severity, res Result) {
	res.Severity = sev
	switch sev {
	case SeverityError:
		r.Errors = append(r.Errors, res)
		r.Valid = false
	case SeverityWarning:
		r.Warnings = append(r.Warnings, res)
	default:
		r.Info = append(r.Info, res)
	}
	r.updateSummary()
}

// Merge appends other's findings after r's. A nil other is a no-op.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Info = append(r.Info, other.Info...)
	r.Valid = r.Valid && other.Valid
	r.updateSummary()
}

// ByLevel returns the findings one stage produced: errors, then warnings,
// then info, each in the order they were added.
func (r *Report) ByLevel(level Level) []Result {
	var out []Result
	for _, group := range [][]Result{r.Errors, r.Warnings, r.Info} {
		for _, res := range group {
			if res.Level == level {
				out = append(out, res)
			}
		}
	}
	return out
}

// Err returns nil for a valid report, otherwise an error naming the first
// error result.
func (r *Report) Err() error {
	if r.Valid || len(r.Errors) == 0 {
		return nil
	}
	first := r.Errors[0]
	if len(r.Errors) == 1 {
		return fmt.Errorf("%s: %s", first.Path, first.Message)
	}
	return fmt.Errorf("%s: %s (and %d more errors)", first.Path, first.Message, len(r.Errors)-1)
}

func (r *Report) updateSummary() {
	r.Summary = fmt.Sprintf("%d errors, %d warnings, %d info",
		len(r.Errors), len(r.Warnings), len(r.Info))
}
