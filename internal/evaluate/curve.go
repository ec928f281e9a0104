// Package evaluate measures how well a regressor generalizes on the loaded table.
package evaluate

import (
    "encoding/csv"
    "errors"
    "fmt"
    "io"
    "math"
    "os"
    "path/filepath"
    "strconv"

    "gonum.org/v1/gonum/stat"
    "gonum.org/v1/plot"
    "gonum.org/v1/plot/plotter"
    "gonum.org/v1/plot/plotutil"
    "gonum.org/v1/plot/vg"

    "studentscore/internal/features"
    "studentscore/internal/models"
)

var ErrTooFewRows = errors.New("not enough rows for a holdout split")

// Point is one learning-curve sample: R² on the training prefix and on the holdout.
type Point struct {
    Size    int
    TrainR2 float64
    TestR2  float64
    TestMAE float64
}

// Split keeps the first frac of rows for training; the order of the table is preserved.
func Split(ts features.TrainingSet, frac float64) (train, test features.TrainingSet) {
    n := int(frac * float64(ts.Len()))
    train = features.TrainingSet{X: ts.X[:n], Y: ts.Y[:n]}
    test = features.TrainingSet{X: ts.X[n:], Y: ts.Y[n:]}
    return train, test
}

// Sizes spreads points training sizes between min and total, optionally on a log scale.
// The result is strictly increasing and always ends at total.
func Sizes(total, points, min int, useLog bool) []int {
    if points <= 1 { points = 2 }
    if min < 1 { min = 1 }
    if min > total { min = total }
    sizes := make([]int, 0, points)
    for i := 0; i < points; i++ {
        var s float64
        if useLog && min > 0 {
            ratio := math.Pow(float64(total)/float64(min), 1.0/float64(points-1))
            s = float64(min) * math.Pow(ratio, float64(i))
        } else {
            s = float64(min) + float64(i)*float64(total-min)/float64(points-1)
        }
        sizes = append(sizes, int(math.Round(s)))
    }
    cleaned := make([]int, 0, len(sizes))
    last := 0
    for _, s := range sizes {
        if s > total { s = total }
        if s > last { cleaned = append(cleaned, s); last = s }
    }
    if len(cleaned) == 0 || cleaned[len(cleaned)-1] != total { cleaned = append(cleaned, total) }
    return cleaned
}

// LearningCurve fits a fresh model on growing prefixes of the training split and scores it on the holdout.
// Sizes too small for the model to fit are skipped.
func LearningCurve(ts features.TrainingSet, newModel func() models.Regressor, testFrac float64, points, min int, useLog bool) ([]Point, error) {
    train, test := Split(ts, 1-testFrac)
    if train.Len() == 0 || test.Len() == 0 { return nil, fmt.Errorf("%w: %d rows", ErrTooFewRows, ts.Len()) }

    var out []Point
    for _, s := range Sizes(train.Len(), points, min, useLog) {
        m := newModel()
        if err := m.Fit(train.X[:s], train.Y[:s]); err != nil {
            if errors.Is(err, models.ErrTooFewSamples) || errors.Is(err, models.ErrIllConditioned) { continue }
            return nil, fmt.Errorf("fit %s on %d rows: %w", m.Name(), s, err)
        }
        pTrain, err := m.Predict(train.X[:s])
        if err != nil { return nil, err }
        pTest, err := m.Predict(test.X)
        if err != nil { return nil, err }
        out = append(out, Point{
            Size:    s,
            TrainR2: r2(pTrain, train.Y[:s]),
            TestR2:  r2(pTest, test.Y),
            TestMAE: mae(pTest, test.Y),
        })
    }
    if len(out) == 0 { return nil, fmt.Errorf("%w: no size could be fitted", ErrTooFewRows) }
    return out, nil
}

func r2(pred, y []float64) float64 {
    v := stat.RSquaredFrom(pred, y, nil)
    if math.IsNaN(v) || math.IsInf(v, 0) { return 0 }
    return v
}

func mae(pred, y []float64) float64 {
    if len(y) == 0 { return 0 }
    s := 0.0
    for i := range y { s += math.Abs(pred[i] - y[i]) }
    return s / float64(len(y))
}

func WriteCSV(w io.Writer, pts []Point) error {
    cw := csv.NewWriter(w)
    if err := cw.Write([]string{"size", "train_r2", "test_r2", "test_mae"}); err != nil { return err }
    for _, p := range pts {
        rec := []string{strconv.Itoa(p.Size), fmt.Sprintf("%.6f", p.TrainR2), fmt.Sprintf("%.6f", p.TestR2), fmt.Sprintf("%.6f", p.TestMAE)}
        if err := cw.Write(rec); err != nil { return err }
    }
    cw.Flush()
    return cw.Error()
}

func SaveCSV(path string, pts []Point) error {
    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { return err }
    f, err := os.Create(path)
    if err != nil { return err }
    defer f.Close()
    return WriteCSV(f, pts)
}

// Plot draws train and test R² against training size.
func Plot(title string, pts []Point) (*plot.Plot, error) {
    if len(pts) == 0 { return nil, ErrTooFewRows }
    p := plot.New()
    p.Title.Text = title
    p.X.Label.Text = "Training rows"
    p.Y.Label.Text = "R²"
    p.Y.Max = 1
    tr := make(plotter.XYs, len(pts))
    te := make(plotter.XYs, len(pts))
    for i, pt := range pts {
        tr[i].X, tr[i].Y = float64(pt.Size), pt.TrainR2
        te[i].X, te[i].Y = float64(pt.Size), pt.TestR2
    }
    if err := plotutil.AddLinePoints(p, "Train", tr, "Holdout", te); err != nil { return nil, err }
    return p, nil
}

func SavePlot(path, title string, pts []Point) error {
    p, err := Plot(title, pts)
    if err != nil { return err }
    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { return err }
    return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
