package validation

import (
	"errors"
	"testing"
)

var (
	duplicateName = Result{
		Level:       LevelSchema,
		Message:     `duplicate provider name "SEMADER" (first at providers[1])`,
		Path:        "providers[3].name",
		ActualValue: "SEMADER",
		Expected:    "unique name",
	}
	stockMismatch = Result{
		Level:       LevelSchema,
		Message:     "SHLMR: total_stock (4850) must equal managed_units (4800)",
		Path:        "providers[1].managed_units",
		ActualValue: 4800,
		Expected:    "4850",
	}
	highArrears = Result{
		Level:       LevelAnalytical,
		Message:     "Foyer Réunionnais: arrears rate 4.2% exceeds 3.0%",
		Path:        "providers[5].arrears_rate",
		ActualValue: 4.2,
		Expected:    "<= 3.0",
	}
	highVacancy = Result{
		Level:       LevelDerived,
		Message:     "PLS vacancy 6.4% exceeds 6.0%",
		Path:        "segments[PLS]",
		ActualValue: 6.4,
	}
	coverage = Result{
		Level:   LevelAnalytical,
		Message: "coverage ratio 250.3%",
		Path:    "metrics.coverage_ratio",
	}
	lateProject = Result{
		Level:   LevelDerived,
		Message: "Résidence Les Filaos: completion precedes start",
		Path:    "projects[12]",
	}
)

func TestNewReport(t *testing.T) {
	r := NewReport()
	if !r.Valid {
		t.Error("new report should be valid")
	}
	if r.Errors == nil || r.Warnings == nil || r.Info == nil {
		t.Error("new report should carry empty, non-nil slices")
	}
	if r.Summary != "0 errors, 0 warnings, 0 info" {
		t.Errorf("summary = %q", r.Summary)
	}
}

func TestAddSetsSeverity(t *testing.T) {
	r := NewReport()
	r.AddWarning(highArrears)
	r.AddInfo(coverage)
	if !r.Valid {
		t.Error("warnings and info should not invalidate the report")
	}

	r.AddError(duplicateName)
	if r.Valid {
		t.Error("a duplicate provider name should invalidate the report")
	}

	checks := []struct {
		got  []Result
		want Severity
	}{
		{r.Errors, SeverityError},
		{r.Warnings, SeverityWarning},
		{r.Info, SeverityInfo},
	}
	for _, c := range checks {
		if len(c.got) != 1 {
			t.Fatalf("%s results = %d, want 1", c.want, len(c.got))
		}
		if c.got[0].Severity != c.want {
			t.Errorf("severity = %s, want %s", c.got[0].Severity, c.want)
		}
	}
	if r.Summary != "1 errors, 1 warnings, 1 info" {
		t.Errorf("summary = %q", r.Summary)
	}
}

func TestMergeSchemaAndAnalytics(t *testing.T) {
	schema := NewReport()
	schema.AddError(stockMismatch)

	analytical := NewReport()
	analytical.AddWarning(highArrears)
	analytical.AddWarning(highVacancy)
	analytical.AddInfo(coverage)

	analytical.Merge(schema)
	if analytical.Valid {
		t.Error("merged report should be invalid when the schema report has errors")
	}
	if analytical.Summary != "1 errors, 2 warnings, 1 info" {
		t.Errorf("summary = %q", analytical.Summary)
	}
	if analytical.Errors[0].Path != "providers[1].managed_units" {
		t.Errorf("merged error path = %q", analytical.Errors[0].Path)
	}
}

func TestMergeKeepsValidity(t *testing.T) {
	r := NewReport()
	other := NewReport()
	other.AddInfo(coverage)

	r.Merge(other)
	if !r.Valid || len(r.Info) != 1 {
		t.Errorf("merging a valid report: valid=%v info=%d", r.Valid, len(r.Info))
	}

	r.Merge(nil)
	if !r.Valid || r.Summary != "0 errors, 0 warnings, 1 info" {
		t.Errorf("merging nil changed the report: %+v", r)
	}
}

func TestByLevel(t *testing.T) {
	r := NewReport()
	r.AddInfo(coverage)
	r.AddWarning(highVacancy)
	r.AddWarning(highArrears)
	r.AddError(lateProject)
	r.AddError(duplicateName)

	derived := r.ByLevel(LevelDerived)
	if len(derived) != 2 {
		t.Fatalf("derived results = %d, want 2", len(derived))
	}
	if derived[0].Path != "projects[12]" || derived[1].Path != "segments[PLS]" {
		t.Errorf("derived order = %s, %s; want errors before warnings", derived[0].Path, derived[1].Path)
	}

	analytical := r.ByLevel(LevelAnalytical)
	if len(analytical) != 2 || analytical[0].Severity != SeverityWarning || analytical[1].Severity != SeverityInfo {
		t.Errorf("analytical results = %+v", analytical)
	}

	if got := r.ByLevel(LevelSchema); len(got) != 1 || got[0].ActualValue != "SEMADER" {
		t.Errorf("schema results = %+v", got)
	}
}

func TestParseLevel(t *testing.T) {
	for _, l := range Levels {
		got, err := ParseLevel(string(l))
		if err != nil || got != l {
			t.Errorf("ParseLevel(%q) = %q, %v", l, got, err)
		}
	}
	if _, err := ParseLevel("spatial"); !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("ParseLevel(spatial) error = %v, want ErrUnknownLevel", err)
	}
}

func TestWhere(t *testing.T) {
	if got := highArrears.Where(); got != "providers[5].arrears_rate = 4.2" {
		t.Errorf("Where = %q", got)
	}
	if got := lateProject.Where(); got != "projects[12]" {
		t.Errorf("Where without value = %q", got)
	}
}

func TestErr(t *testing.T) {
	r := NewReport()
	r.AddWarning(highArrears)
	if err := r.Err(); err != nil {
		t.Errorf("report with only warnings Err = %v, want nil", err)
	}

	r.AddError(stockMismatch)
	want := "providers[1].managed_units: SHLMR: total_stock (4850) must equal managed_units (4800)"
	if got := r.Err(); got == nil || got.Error() != want {
		t.Errorf("Err = %v, want %s", got, want)
	}

	r.AddError(duplicateName)
	if got := r.Err(); got == nil || got.Error() != want+" (and 1 more errors)" {
		t.Errorf("Err = %v", got)
	}
}
