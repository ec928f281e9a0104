package evaluate

import (
    "bytes"
    "errors"
    "math/rand"
    "strings"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "studentscore/internal/features"
    "studentscore/internal/models"
)

func linearSet(n int) features.TrainingSet {
    rng := rand.New(rand.NewSource(7))
    ts := features.TrainingSet{}
    for i := 0; i < n; i++ {
        h, a, m := 5+rng.Float64()*30, 0.5+rng.Float64()*0.5, 40+rng.Float64()*60
        ts.X = append(ts.X, features.Vector(h, a, m))
        ts.Y = append(ts.Y, 5+0.5*h+20*a+0.6*m)
    }
    return ts
}

func ols() models.Regressor { return models.NewLinearRegression() }

func TestSizes(t *testing.T) {
    assert.Equal(t, []int{10, 33, 55, 78, 100}, Sizes(100, 5, 10, false))
    assert.Equal(t, []int{10, 46, 215, 1000}, Sizes(1000, 4, 10, true))
    assert.Equal(t, []int{1, 2, 3, 4, 5}, Sizes(5, 10, 1, false))
    assert.Equal(t, []int{7}, Sizes(7, 1, 50, false))
}

func TestSplitKeepsOrder(t *testing.T) {
    ts := linearSet(10)
    train, test := Split(ts, 0.8)
    assert.Equal(t, 8, train.Len())
    assert.Equal(t, 2, test.Len())
    assert.Equal(t, ts.Y[8], test.Y[0])
}

func TestLearningCurveLinear(t *testing.T) {
    pts, err := LearningCurve(linearSet(60), ols, 0.2, 5, 4, false)
    require.NoError(t, err)
    require.NotEmpty(t, pts)
    last := pts[len(pts)-1]
    assert.Equal(t, 48, last.Size)
    assert.InDelta(t, 1, last.TestR2, 1e-9)
    assert.InDelta(t, 0, last.TestMAE, 1e-8)
    for i := 1; i < len(pts); i++ { assert.Greater(t, pts[i].Size, pts[i-1].Size) }
}

func TestLearningCurveSkipsUnfittableSizes(t *testing.T) {
    pts, err := LearningCurve(linearSet(30), ols, 0.2, 4, 1, false)
    require.NoError(t, err)
    for _, p := range pts { assert.GreaterOrEqual(t, p.Size, 4) }
}

func TestLearningCurveTooFewRows(t *testing.T) {
    _, err := LearningCurve(linearSet(1), ols, 0.2, 3, 1, false)
    assert.True(t, errors.Is(err, ErrTooFewRows))
}

func TestWriteCSV(t *testing.T) {
    var buf bytes.Buffer
    require.NoError(t, WriteCSV(&buf, []Point{{Size: 10, TrainR2: 0.9, TestR2: 0.8, TestMAE: 1.5}}))
    lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
    require.Len(t, lines, 2)
    assert.Equal(t, "size,train_r2,test_r2,test_mae", lines[0])
    assert.Equal(t, "10,0.900000,0.800000,1.500000", lines[1])
}

func TestPlot(t *testing.T) {
    _, err := Plot("empty", nil)
    assert.Error(t, err)
    p, err := Plot("curve", []Point{{Size: 5, TrainR2: 1, TestR2: 0.5}, {Size: 10, TrainR2: 0.9, TestR2: 0.8}})
    require.NoError(t, err)
    assert.Equal(t, "curve", p.Title.Text)
}
