package charts

import (
    "errors"
    "fmt"
    "image/color"
    "io"
    "math"

    "gonum.org/v1/plot"
    "gonum.org/v1/plot/plotter"
    "gonum.org/v1/plot/plotutil"
    "gonum.org/v1/plot/vg"
    "gonum.org/v1/plot/vg/draw"

    "studentscore/internal/aggregate"
    "studentscore/internal/data"
)

var (
    ErrNoData       = errors.New("no data to chart")
    ErrUnknownChart = errors.New("unknown chart")
)

const (
    GenderByMajorPNG = "gender-by-major.png"
    MajorMetricsPNG  = "major-metrics.png"
    AttendancePNG    = "attendance.png"
    FocusMajorPNG    = "focus-major.png"
)

var Names = []string{GenderByMajorPNG, MajorMetricsPNG, AttendancePNG, FocusMajorPNG}

var (
    Width  = 9 * vg.Inch
    Height = 4.5 * vg.Inch
)

var genderColors = map[string]color.Color{
    "male":   color.RGBA{R: 0x2B, G: 0x86, B: 0xAB, A: 0xFF},
    "female": color.RGBA{R: 0xA2, G: 0x3B, B: 0x72, A: 0xFF},
    "男":      color.RGBA{R: 0x2B, G: 0x86, B: 0xAB, A: 0xFF},
    "女":      color.RGBA{R: 0xA2, G: 0x3B, B: 0x72, A: 0xFF},
}

var attendanceColor = color.RGBA{R: 0xC0, G: 0x39, B: 0x2B, A: 0xFF}

// Render draws the named chart of the dashboard as PNG.
func Render(w io.Writer, name string, d aggregate.Dashboard) error {
    var (
        p   *plot.Plot
        err error
    )
    switch name {
    case GenderByMajorPNG:
        p, err = GenderByMajor(d.GenderByMajor)
    case MajorMetricsPNG:
        p, err = MajorMetrics(d.MajorMetrics)
    case AttendancePNG:
        p, err = Attendance(d.Attendance)
    case FocusMajorPNG:
        if d.Focus == nil { return ErrNoData }
        p, err = Focus(*d.Focus)
    default:
        return fmt.Errorf("%w: %s", ErrUnknownChart, name)
    }
    if err != nil { return err }
    return WritePNG(w, p, Width, Height)
}

func WritePNG(w io.Writer, p *plot.Plot, width, height vg.Length) error {
    wt, err := p.WriterTo(width, height, "png")
    if err != nil { return fmt.Errorf("render png: %w", err) }
    _, err = wt.WriteTo(w)
    return err
}

// GenderByMajor is a stacked bar per major, one layer per gender.
func GenderByMajor(g aggregate.GenderCounts) (*plot.Plot, error) {
    if len(g.Rows) == 0 || len(g.Genders) == 0 { return nil, ErrNoData }
    p := newPlot("Gender distribution by major", "Major", "Students")
    majors := make([]string, len(g.Rows))
    for i, r := range g.Rows { majors[i] = r.Major }

    w := barWidth(len(majors), 1)
    var below *plotter.BarChart
    for gi, gender := range g.Genders {
        vals := make(plotter.Values, len(g.Rows))
        for i, r := range g.Rows { vals[i] = float64(r.Counts[gi]) }
        bars, err := plotter.NewBarChart(vals, w)
        if err != nil { return nil, err }
        bars.LineStyle.Width = vg.Length(0)
        bars.Color = genderColor(gender, gi)
        if below != nil { bars.StackOn(below) }
        p.Add(bars)
        p.Legend.Add(gender, bars)
        below = bars
    }
    p.NominalX(majors...)
    tiltX(p)
    return p, nil
}

var metricColors = []color.Color{
    color.RGBA{R: 0x63, G: 0x6E, B: 0xFA, A: 0xFF},
    color.RGBA{R: 0xEF, G: 0x55, B: 0x3B, A: 0xFF},
    color.RGBA{R: 0x00, G: 0xCC, B: 0x96, A: 0xFF},
}

// MajorMetrics groups the three compared means side by side for each major.
func MajorMetrics(m aggregate.MajorMetrics) (*plot.Plot, error) {
    if len(m.Rows) == 0 { return nil, ErrNoData }
    p := newPlot("Mean study hours, attendance and final score by major", "Major", "Mean")
    majors := make([]string, len(m.Rows))
    for i, r := range m.Rows { majors[i] = r.Major }

    series := []struct {
        metric data.Metric
        pick   func(aggregate.MajorMetricRow) aggregate.Stat
    }{
        {data.StudyHours, func(r aggregate.MajorMetricRow) aggregate.Stat { return r.StudyHours }},
        {data.Attendance, func(r aggregate.MajorMetricRow) aggregate.Stat { return r.Attendance }},
        {data.FinalScore, func(r aggregate.MajorMetricRow) aggregate.Stat { return r.FinalScore }},
    }
    w := barWidth(len(majors), len(series))
    for si, s := range series {
        vals := make(plotter.Values, len(m.Rows))
        for i, r := range m.Rows { vals[i] = s.pick(r).Mean }
        bars, err := plotter.NewBarChart(vals, w)
        if err != nil { return nil, err }
        bars.LineStyle.Width = vg.Length(0)
        bars.Color = metricColors[si%len(metricColors)]
        bars.Offset = vg.Length(si-(len(series)-1)/2) * w
        p.Add(bars)
        p.Legend.Add(s.metric.Label(), bars)
    }
    p.NominalX(majors...)
    tiltX(p)
    return p, nil
}

// Attendance draws the ranked attendance percentages.
func Attendance(rows []aggregate.AttendanceRow) (*plot.Plot, error) {
    if len(rows) == 0 { return nil, ErrNoData }
    p := newPlot("Attendance rate by major (%)", "Major", "Attendance (%)")
    p.Y.Min, p.Y.Max = 0, 100
    majors := make([]string, len(rows))
    vals := make(plotter.Values, len(rows))
    for i, r := range rows { majors[i], vals[i] = r.Major, r.Percent }

    bars, err := plotter.NewBarChart(vals, barWidth(len(rows), 1))
    if err != nil { return nil, err }
    bars.LineStyle.Width = vg.Length(0)
    bars.Color = attendanceColor
    p.Add(bars)
    p.NominalX(majors...)
    tiltX(p)
    return p, nil
}

// Focus is a horizontal bar per metric for the focus major.
func Focus(f aggregate.FocusSummary) (*plot.Plot, error) {
    if len(f.Metrics) == 0 { return nil, ErrNoData }
    p := newPlot(fmt.Sprintf("%s: mean of each metric", f.Major), "Mean", "")
    p.Legend.Top = false
    labels := make([]string, len(f.Metrics))
    vals := make(plotter.Values, len(f.Metrics))
    for i, m := range f.Metrics {
        labels[i] = m.Metric
        vals[i] = m.Mean
    }
    bars, err := plotter.NewBarChart(vals, vg.Points(18))
    if err != nil { return nil, err }
    bars.Horizontal = true
    bars.LineStyle.Width = vg.Length(0)
    bars.Color = plotutil.Color(2)
    p.Add(bars)
    p.NominalY(labels...)
    return p, nil
}

func newPlot(title, x, y string) *plot.Plot {
    p := plot.New()
    p.Title.Text = title
    p.X.Label.Text = x
    p.Y.Label.Text = y
    p.Legend.Top = true
    p.Add(plotter.NewGrid())
    return p
}

func tiltX(p *plot.Plot) {
    p.X.Tick.Label.Rotation = math.Pi / 4
    p.X.Tick.Label.XAlign = draw.XRight
    p.X.Tick.Label.YAlign = draw.YCenter
}

func genderColor(g string, i int) color.Color {
    if c, ok := genderColors[g]; ok { return c }
    return plotutil.Color(i)
}

// barWidth keeps each major's bar group inside its slot on a 9 inch canvas.
func barWidth(groups, perGroup int) vg.Length {
    if groups < 1 { groups = 1 }
    slot := 6 * vg.Inch / vg.Length(groups)
    w := slot * 0.8 / vg.Length(perGroup)
    if w > vg.Points(40) { w = vg.Points(40) }
    if w < vg.Points(2) { w = vg.Points(2) }
    return w
}
