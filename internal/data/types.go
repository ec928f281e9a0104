package data

import (
    "errors"
    "sort"
)

var (
    ErrDataFileNotFound = errors.New("data file not found")
    ErrMissingColumn    = errors.New("required column missing")
    ErrNoHeader         = errors.New("data file has no header row")
    ErrUnsupportedFile  = errors.New("unsupported data file type")
)

type Metric int

const (
    StudyHours Metric = iota
    Attendance
    Midterm
    Assignment
    FinalScore
    NumMetrics
)

// Metrics lists the numeric columns in file order.
var Metrics = []Metric{StudyHours, Attendance, Midterm, Assignment, FinalScore}

var metricColumns = [NumMetrics]string{
    "weekly_study_hours",
    "attendance_rate",
    "midterm_score",
    "assignment_completion_rate",
    "final_score",
}

var metricLabels = [NumMetrics]string{
    "Weekly study hours",
    "Attendance rate",
    "Midterm score",
    "Assignment completion rate",
    "Final score",
}

func (m Metric) Column() string { return metricColumns[m] }
func (m Metric) Label() string  { return metricLabels[m] }
func (m Metric) String() string { return m.Column() }

type Record struct {
    Row       int    `json:"row"`
    StudentID string `json:"student_id"`
    Gender    string `json:"gender"`
    Major     string `json:"major"`
    Values    [NumMetrics]float64 `json:"values"`
    Valid     [NumMetrics]bool    `json:"valid"`
}

// Value returns the coerced metric and whether it parsed.
func (r Record) Value(m Metric) (float64, bool) { return r.Values[m], r.Valid[m] }

// Complete reports whether every given metric parsed.
func (r Record) Complete(ms ...Metric) bool {
    for _, m := range ms {
        if !r.Valid[m] { return false }
    }
    return true
}

// CoercionIssue is a numeric cell that could not be parsed and was read as null.
type CoercionIssue struct {
    Row    int    `json:"row"`
    Column string `json:"column"`
    Raw    string `json:"raw"`
}

// Table is the loaded spreadsheet. It is never modified after Load returns.
type Table struct {
    Source      string
    Header      []string
    Raw         [][]string
    Records     []Record
    Issues      []CoercionIssue
    Fingerprint string
}

func (t *Table) Len() int {
    if t == nil { return 0 }
    return len(t.Records)
}

func (t *Table) Empty() bool { return t.Len() == 0 }

// Majors returns the distinct non-empty majors in sorted order.
func (t *Table) Majors() []string { return t.distinct(func(r Record) string { return r.Major }) }

// Genders returns the distinct non-empty genders in sorted order.
func (t *Table) Genders() []string { return t.distinct(func(r Record) string { return r.Gender }) }

func (t *Table) distinct(key func(Record) string) []string {
    if t == nil { return nil }
    seen := map[string]bool{}
    out := []string{}
    for _, r := range t.Records {
        k := key(r)
        if k == "" || seen[k] { continue }
        seen[k] = true
        out = append(out, k)
    }
    sort.Strings(out)
    return out
}
