// Package aggregate computes the per-major summary views shown on the explorer page.
// Every function is a pure function of the table; groups come out ordered by major.
package aggregate

import (
    "math"
    "slices"
    "sort"

    "gonum.org/v1/gonum/stat"

    "studentscore/internal/data"
)

// Stat is a mean over the non-null values of a group. N == 0 means no value parsed.
type Stat struct {
    Mean float64 `json:"mean"`
    N    int     `json:"n"`
}

type GenderCountRow struct {
    Major  string `json:"major"`
    Counts []int  `json:"counts"`
    Total  int    `json:"total"`
}

// GenderCounts is the wide layout: one column per gender.
type GenderCounts struct {
    Genders []string         `json:"genders"`
    Rows    []GenderCountRow `json:"rows"`
}

func (g GenderCounts) Total() int {
    n := 0
    for _, r := range g.Rows { n += r.Total }
    return n
}

type MajorMetricRow struct {
    Major      string `json:"major"`
    StudyHours Stat   `json:"weekly_study_hours"`
    Attendance Stat   `json:"attendance_rate"`
    FinalScore Stat   `json:"final_score"`
}

// MetricPoint is one (major, metric) cell of the long layout.
type MetricPoint struct {
    Major  string `json:"major"`
    Metric string `json:"metric"`
    Mean   float64 `json:"mean"`
    N      int     `json:"n"`
}

type MajorMetrics struct {
    Rows []MajorMetricRow `json:"rows"`
    Long []MetricPoint    `json:"long"`
}

type AttendanceRow struct {
    Rank    int     `json:"rank"`
    Major   string  `json:"major"`
    Percent float64 `json:"percent"`
    N       int     `json:"n"`
}

type FocusSummary struct {
    Major   string        `json:"major"`
    Rows    int           `json:"rows"`
    Metrics []MetricPoint `json:"metrics"`
}

// Dashboard bundles the four views.
type Dashboard struct {
    Rows          int             `json:"rows"`
    GenderByMajor GenderCounts    `json:"gender_by_major"`
    MajorMetrics  MajorMetrics    `json:"major_metrics"`
    Attendance    []AttendanceRow `json:"attendance_by_major"`
    Focus         *FocusSummary   `json:"focus_major,omitempty"`
    FocusMajor    string          `json:"focus_major_name"`
    Issues        int             `json:"coercion_issues"`
}

func Build(t *data.Table, focusMajor string) Dashboard {
    d := Dashboard{
        Rows:          t.Len(),
        GenderByMajor: GenderByMajor(t),
        MajorMetrics:  ByMajorMetrics(t),
        Attendance:    AttendanceByMajor(t),
        FocusMajor:    focusMajor,
    }
    if t != nil { d.Issues = len(t.Issues) }
    if f, ok := FocusMajor(t, focusMajor); ok {
        d.Focus = &f
        d.FocusMajor = f.Major
    }
    return d
}

// GenderByMajor counts students per (major, gender). Majors or genders left empty form no group.
func GenderByMajor(t *data.Table) GenderCounts {
    out := GenderCounts{Genders: t.Genders(), Rows: []GenderCountRow{}}
    col := map[string]int{}
    for i, g := range out.Genders { col[g] = i }
    byMajor := map[string]*GenderCountRow{}
    for _, major := range t.Majors() {
        row := &GenderCountRow{Major: major, Counts: make([]int, len(out.Genders))}
        byMajor[major] = row
    }
    if t != nil {
        for _, r := range t.Records {
            row, ok := byMajor[r.Major]
            if !ok || r.Gender == "" { continue }
            row.Counts[col[r.Gender]]++
            row.Total++
        }
    }
    for _, major := range t.Majors() {
        if row := byMajor[major]; row.Total > 0 { out.Rows = append(out.Rows, *row) }
    }
    return out
}

var comparedMetrics = []data.Metric{data.StudyHours, data.Attendance, data.FinalScore}

// ByMajorMetrics averages study hours, attendance and final score per major, rounded to 2 places.
func ByMajorMetrics(t *data.Table) MajorMetrics {
    groups := groupByMajor(t)
    out := MajorMetrics{Rows: []MajorMetricRow{}, Long: []MetricPoint{}}
    for _, g := range groups {
        out.Rows = append(out.Rows, MajorMetricRow{
            Major:      g.major,
            StudyHours: meanOf(g.records, data.StudyHours, 2),
            Attendance: meanOf(g.records, data.Attendance, 2),
            FinalScore: meanOf(g.records, data.FinalScore, 2),
        })
    }
    for _, m := range comparedMetrics {
        for _, g := range groups {
            s := meanOf(g.records, m, 2)
            out.Long = append(out.Long, MetricPoint{Major: g.major, Metric: m.Column(), Mean: s.Mean, N: s.N})
        }
    }
    return out
}

// AttendanceByMajor is mean attendance per major as a percentage, ranked highest first.
func AttendanceByMajor(t *data.Table) []AttendanceRow {
    out := []AttendanceRow{}
    for _, g := range groupByMajor(t) {
        s := meanOf(g.records, data.Attendance, 3)
        if s.N == 0 { continue }
        out = append(out, AttendanceRow{Major: g.major, Percent: roundEven(s.Mean*100, 1), N: s.N})
    }
    sort.SliceStable(out, func(i, j int) bool {
        if out[i].Percent != out[j].Percent { return out[i].Percent > out[j].Percent }
        return out[i].Major < out[j].Major
    })
    for i := range out { out[i].Rank = i + 1 }
    return out
}

// majorAliases lists the names one major goes by in English and in the original Chinese workbooks.
var majorAliases = [][]string{
    {"big-data management", "大数据管理"},
}

// SameMajor reports whether a and b name the same major, directly or through an alias.
func SameMajor(a, b string) bool {
    if a == b { return true }
    for _, names := range majorAliases {
        if slices.Contains(names, a) && slices.Contains(names, b) { return true }
    }
    return false
}

// FocusMajor averages all five metrics over one major, matched through its aliases.
// ok is false when no row has that major. The summary carries the name used in the data.
func FocusMajor(t *data.Table, major string) (FocusSummary, bool) {
    var rows []data.Record
    if t != nil {
        for _, r := range t.Records {
            if r.Major != "" && SameMajor(r.Major, major) { rows = append(rows, r) }
        }
    }
    if len(rows) == 0 { return FocusSummary{}, false }
    out := FocusSummary{Major: rows[0].Major, Rows: len(rows), Metrics: make([]MetricPoint, 0, len(data.Metrics))}
    for _, m := range data.Metrics {
        s := meanOf(rows, m, 2)
        out.Metrics = append(out.Metrics, MetricPoint{Major: major, Metric: m.Column(), Mean: s.Mean, N: s.N})
    }
    return out, true
}

type group struct {
    major   string
    records []data.Record
}

func groupByMajor(t *data.Table) []group {
    if t == nil { return nil }
    idx := map[string]int{}
    var out []group
    for _, major := range t.Majors() {
        idx[major] = len(out)
        out = append(out, group{major: major})
    }
    for _, r := range t.Records {
        if i, ok := idx[r.Major]; ok { out[i].records = append(out[i].records, r) }
    }
    return out
}

func meanOf(rows []data.Record, m data.Metric, places int) Stat {
    vals := make([]float64, 0, len(rows))
    for _, r := range rows {
        if v, ok := r.Value(m); ok { vals = append(vals, v) }
    }
    if len(vals) == 0 { return Stat{} }
    return Stat{Mean: roundEven(stat.Mean(vals, nil), places), N: len(vals)}
}

func roundEven(v float64, places int) float64 {
    p := math.Pow(10, float64(places))
    return math.RoundToEven(v*p) / p
}
