// Package report prints the dashboard views as plain-text tables.
package report

import (
    "fmt"
    "io"
    "strconv"

    "github.com/fatih/color"
    "github.com/olekukonko/tablewriter"

    "studentscore/internal/aggregate"
    "studentscore/internal/predict"
)

var heading = color.New(color.FgYellow, color.Bold)

func Write(w io.Writer, d aggregate.Dashboard) {
    color.New(color.FgCyan).Fprintf(w, "\n=== Student performance: %d rows ===\n", d.Rows)
    if d.Issues > 0 { color.New(color.FgRed).Fprintf(w, "%d non-numeric cell(s) treated as empty\n", d.Issues) }
    GenderByMajor(w, d.GenderByMajor)
    MajorMetrics(w, d.MajorMetrics)
    Attendance(w, d.Attendance)
    Focus(w, d.FocusMajor, d.Focus)
}

func GenderByMajor(w io.Writer, g aggregate.GenderCounts) {
    heading.Fprintln(w, "\nGender distribution by major")
    table := tablewriter.NewWriter(w)
    table.SetHeader(append(append([]string{"Major"}, g.Genders...), "Total"))
    for _, r := range g.Rows {
        row := []string{r.Major}
        for _, c := range r.Counts { row = append(row, strconv.Itoa(c)) }
        table.Append(append(row, strconv.Itoa(r.Total)))
    }
    table.SetFooter(append(make([]string, len(g.Genders)+1), strconv.Itoa(g.Total())))
    table.Render()
}

func MajorMetrics(w io.Writer, m aggregate.MajorMetrics) {
    heading.Fprintln(w, "\nStudy metrics by major")
    table := tablewriter.NewWriter(w)
    table.SetHeader([]string{"Major", "Study hours", "Attendance", "Final score"})
    for _, r := range m.Rows {
        table.Append([]string{r.Major, stat(r.StudyHours), stat(r.Attendance), stat(r.FinalScore)})
    }
    table.Render()
}

func Attendance(w io.Writer, rows []aggregate.AttendanceRow) {
    heading.Fprintln(w, "\nAttendance ranking")
    table := tablewriter.NewWriter(w)
    table.SetHeader([]string{"Rank", "Major", "Attendance %"})
    for _, r := range rows {
        table.Append([]string{strconv.Itoa(r.Rank), r.Major, fmt.Sprintf("%.1f", r.Percent)})
    }
    table.Render()
}

func Focus(w io.Writer, major string, f *aggregate.FocusSummary) {
    heading.Fprintf(w, "\n%s analysis\n", major)
    if f == nil {
        fmt.Fprintf(w, "No data for %s yet.\n", major)
        return
    }
    table := tablewriter.NewWriter(w)
    table.SetHeader([]string{"Metric", "Mean", "N"})
    for _, m := range f.Metrics {
        table.Append([]string{m.Metric, fmt.Sprintf("%.2f", m.Mean), strconv.Itoa(m.N)})
    }
    table.Render()
}

func Prediction(w io.Writer, in predict.Input, res predict.Result) {
    heading.Fprintln(w, "\nPrediction")
    table := tablewriter.NewWriter(w)
    table.SetHeader([]string{"Study hours", "Attendance", "Midterm", "Predicted final", "Model"})
    table.Append([]string{
        fmt.Sprintf("%g", in.StudyHours), fmt.Sprintf("%g", in.Attendance), fmt.Sprintf("%g", in.Midterm),
        fmt.Sprintf("%.2f", res.Score), res.Model,
    })
    table.Render()
    if res.Passed {
        color.New(color.FgGreen).Fprintln(w, "Congratulations, the predicted score is a pass!")
        return
    }
    color.New(color.FgRed).Fprintln(w, "The predicted score is below the pass mark, keep working!")
}

func stat(s aggregate.Stat) string {
    if s.N == 0 { return "-" }
    return fmt.Sprintf("%.2f", s.Mean)
}
