package predict

import (
    "encoding/json"
    "errors"
    "fmt"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "go.uber.org/mock/gomock"

    "studentscore/internal/data"
    "studentscore/internal/models"
)

func table(t *testing.T, rows ...[]string) *data.Table {
    t.Helper()
    tbl, err := data.FromRows(append([][]string{data.CanonicalHeader}, rows...))
    require.NoError(t, err)
    return tbl
}

// final = 5 + 0.5*hours + 20*attendance + 0.6*midterm
func linearTable(t *testing.T) *data.Table {
    X := [][]float64{
        {10, 0.80, 60}, {20, 0.90, 75}, {15, 0.70, 82}, {30, 0.95, 90},
        {5, 0.60, 55}, {25, 0.85, 68}, {12, 0.75, 71}, {18, 0.65, 88},
    }
    rows := make([][]string, 0, len(X))
    for i, x := range X {
        y := 5 + 0.5*x[0] + 20*x[1] + 0.6*x[2]
        rows = append(rows, []string{fmt.Sprint(i + 1), "male", "cs", fmt.Sprint(x[0]), fmt.Sprint(x[1]), fmt.Sprint(x[2]), "0.8", fmt.Sprint(y)})
    }
    return table(t, rows...)
}

func ols() models.Regressor { return models.NewLinearRegression() }

func TestPredictLinear(t *testing.T) {
    p := New(ols)
    res, err := p.Predict(linearTable(t), Input{StudyHours: 20, Attendance: 0.9, Midterm: 75})
    require.NoError(t, err)
    assert.InDelta(t, 78, res.Score, 1e-8)
    assert.Equal(t, 78.0, res.Rounded())
    assert.True(t, res.Passed)
    assert.Equal(t, "LinearRegression", res.Model)
    assert.Equal(t, 8, res.TrainingRows)
    assert.InDelta(t, 0.5, res.Coefficients["weekly_study_hours"], 1e-9)
    assert.False(t, res.Cached)

    low, err := p.Predict(linearTable(t), Input{StudyHours: 0, Attendance: 0.2, Midterm: 30})
    require.NoError(t, err)
    assert.False(t, low.Passed)
}

func TestPredictIsDeterministic(t *testing.T) {
    tbl := linearTable(t)
    p := New(ols)
    in := Input{StudyHours: 13, Attendance: 0.77, Midterm: 64}
    first, err := p.Predict(tbl, in)
    require.NoError(t, err)
    for i := 0; i < 5; i++ {
        again, err := p.Predict(tbl, in)
        require.NoError(t, err)
        assert.InDelta(t, first.Score, again.Score, 1e-9)
    }
}

func TestPassThreshold(t *testing.T) {
    assert.True(t, Passed(60.00))
    assert.False(t, Passed(59.99))
    assert.True(t, Passed(100))
}

func TestEmptyTableNeverFits(t *testing.T) {
    ctrl := gomock.NewController(t)
    calls := 0
    p := New(func() models.Regressor {
        calls++
        return models.NewMockRegressor(ctrl)
    })

    _, err := p.Predict(table(t), Input{StudyHours: 20, Attendance: 0.9, Midterm: 75})
    assert.True(t, errors.Is(err, ErrEmptyDataset))
    _, err = p.Predict(nil, Input{})
    assert.True(t, errors.Is(err, ErrEmptyDataset))
    assert.Zero(t, calls)
}

func TestAllRowsIncomplete(t *testing.T) {
    ctrl := gomock.NewController(t)
    p := New(func() models.Regressor { return models.NewMockRegressor(ctrl) })
    tbl := table(t, []string{"1", "male", "cs", "n/a", "0.9", "75", "0.8", "70"})
    _, err := p.Predict(tbl, Input{})
    assert.True(t, errors.Is(err, ErrInsufficientData))
}

func TestTooFewRowsIsInsufficient(t *testing.T) {
    tbl := table(t,
        []string{"1", "male", "cs", "20", "0.9", "75", "0.8", "70"},
        []string{"2", "male", "cs", "10", "0.8", "65", "0.8", "60"},
    )
    _, err := New(ols).Predict(tbl, Input{StudyHours: 1})
    assert.True(t, errors.Is(err, ErrInsufficientData))
}

func TestIncompleteRowsAreSkipped(t *testing.T) {
    tbl := linearTable(t)
    withBad, err := data.FromRows(append(append([][]string{tbl.Header}, tbl.Raw...),
        []string{"99", "female", "cs", "", "0.5", "40", "0.8", "10"},
        []string{"100", "female", "cs", "12", "0.5", "40", "0.8", "oops"},
    ))
    require.NoError(t, err)

    res, err := New(ols).Predict(withBad, Input{StudyHours: 20, Attendance: 0.9, Midterm: 75})
    require.NoError(t, err)
    assert.Equal(t, 8, res.TrainingRows)
    assert.Equal(t, 2, res.DroppedRows)
    assert.InDelta(t, 78, res.Score, 1e-8)
}

func TestFitErrorIsWrapped(t *testing.T) {
    ctrl := gomock.NewController(t)
    boom := errors.New("boom")
    m := models.NewMockRegressor(ctrl)
    m.EXPECT().Fit(gomock.Any(), gomock.Any()).Return(boom)
    m.EXPECT().Name().Return("Mock").AnyTimes()

    _, err := New(func() models.Regressor { return m }).Predict(linearTable(t), Input{})
    assert.True(t, errors.Is(err, boom))
}

func TestMemoReusesFittedModel(t *testing.T) {
    ctrl := gomock.NewController(t)
    m := models.NewMockRegressor(ctrl)
    m.EXPECT().Fit(gomock.Any(), gomock.Any()).Return(nil).Times(1)
    m.EXPECT().Predict([][]float64{{20, 0.9, 75}}).Return([]float64{61.5}, nil).Times(2)
    m.EXPECT().Name().Return("Mock").AnyTimes()

    p := New(func() models.Regressor { return m }, WithMemo(time.Minute))
    tbl := linearTable(t)
    in := Input{StudyHours: 20, Attendance: 0.9, Midterm: 75}

    first, err := p.Predict(tbl, in)
    require.NoError(t, err)
    assert.False(t, first.Cached)
    second, err := p.Predict(tbl, in)
    require.NoError(t, err)
    assert.True(t, second.Cached)
    assert.Equal(t, 61.5, second.Score)
    assert.True(t, second.Passed)
}

func TestConstantAttendanceStillPredicts(t *testing.T) {
    rows := make([][]string, 0, 15)
    for i := 0; i < 15; i++ {
        hours := float64(5 + (i*7)%26)
        midterm := float64(50 + (i*11)%45)
        final := 5 + 0.5*hours + 20*0.9 + 0.6*midterm
        rows = append(rows, []string{fmt.Sprint(i + 1), "male", "cs", fmt.Sprint(hours), "0.9", fmt.Sprint(midterm), "0.8", fmt.Sprint(final)})
    }
    tbl := table(t, rows...)
    p := New(ols)

    res, err := p.Predict(tbl, Input{StudyHours: 20, Attendance: 0.9, Midterm: 75})
    require.NoError(t, err)
    assert.InDelta(t, 78, res.Score, 1e-8)
    assert.True(t, res.Passed)
    assert.InDelta(t, 0, res.Coefficients["attendance_rate"], 1e-9)

    // attendance carries no information, so moving it leaves the score unchanged
    other, err := p.Predict(tbl, Input{StudyHours: 20, Attendance: 0.4, Midterm: 75})
    require.NoError(t, err)
    assert.InDelta(t, res.Score, other.Score, 1e-8)
}

func TestResultKeepsZeroNumbersInJSON(t *testing.T) {
    b, err := json.Marshal(Result{Model: "LinearRegression"})
    require.NoError(t, err)
    var m map[string]any
    require.NoError(t, json.Unmarshal(b, &m))
    assert.Contains(t, m, "intercept")
    assert.Contains(t, m, "r2")
}
