package aggregate

import (
    "fmt"
    "math/rand"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "studentscore/internal/data"
)

func table(t *testing.T, rows ...[]string) *data.Table {
    t.Helper()
    tbl, err := data.FromRows(append([][]string{data.CanonicalHeader}, rows...))
    require.NoError(t, err)
    return tbl
}

func student(id int, gender, major string, hours, attendance, midterm, assignment, final string) []string {
    return []string{fmt.Sprint(id), gender, major, hours, attendance, midterm, assignment, final}
}

// CS gets 10 rows (6 male, 4 female), Math 5 rows (2 male, 3 female).
func twoMajors(t *testing.T) *data.Table {
    var rows [][]string
    for i := 0; i < 10; i++ {
        g := "male"
        if i >= 6 { g = "female" }
        rows = append(rows, student(i, g, "CS", "20", "0.9", "70", "0.8", "75"))
    }
    for i := 0; i < 5; i++ {
        g := "female"
        if i < 2 { g = "male" }
        rows = append(rows, student(100+i, g, "Math", "10", "0.8", "60", "0.7", "62"))
    }
    return table(t, rows...)
}

func randomTable(t *testing.T, n int, seed int64) *data.Table {
    rng := rand.New(rand.NewSource(seed))
    majors := []string{"a", "b", "c", "d"}
    genders := []string{"male", "female"}
    var rows [][]string
    for i := 0; i < n; i++ {
        rows = append(rows, student(i, genders[rng.Intn(2)], majors[rng.Intn(len(majors))],
            fmt.Sprintf("%.1f", rng.Float64()*40), fmt.Sprintf("%.2f", rng.Float64()),
            fmt.Sprintf("%.0f", rng.Float64()*100), fmt.Sprintf("%.2f", rng.Float64()),
            fmt.Sprintf("%.1f", rng.Float64()*100)))
    }
    return table(t, rows...)
}

func TestGenderByMajorEndToEnd(t *testing.T) {
    g := GenderByMajor(twoMajors(t))
    assert.Equal(t, []string{"female", "male"}, g.Genders)
    require.Len(t, g.Rows, 2)
    assert.Equal(t, GenderCountRow{Major: "CS", Counts: []int{4, 6}, Total: 10}, g.Rows[0])
    assert.Equal(t, GenderCountRow{Major: "Math", Counts: []int{3, 2}, Total: 5}, g.Rows[1])
    assert.Equal(t, 15, g.Total())
}

func TestGenderByMajorIdempotentAndSums(t *testing.T) {
    tbl := randomTable(t, 300, 11)
    a := GenderByMajor(tbl)
    b := GenderByMajor(tbl)
    assert.Equal(t, a, b)
    assert.Equal(t, tbl.Len(), a.Total())
    for _, r := range a.Rows {
        sum := 0
        for _, c := range r.Counts { sum += c }
        assert.Equal(t, r.Total, sum)
    }
}

func TestGenderByMajorZeroFills(t *testing.T) {
    tbl := table(t,
        student(1, "male", "physics", "1", "0.5", "50", "0.5", "50"),
        student(2, "female", "art", "1", "0.5", "50", "0.5", "50"),
        student(3, "", "art", "1", "0.5", "50", "0.5", "50"),
        student(4, "male", "", "1", "0.5", "50", "0.5", "50"),
    )
    g := GenderByMajor(tbl)
    require.Len(t, g.Rows, 2)
    assert.Equal(t, []int{1, 0}, g.Rows[0].Counts)
    assert.Equal(t, []int{0, 1}, g.Rows[1].Counts)
}

func TestMajorMetricsCoversEveryMajorOnce(t *testing.T) {
    tbl := randomTable(t, 200, 5)
    mm := ByMajorMetrics(tbl)

    seen := map[string]int{}
    for _, r := range mm.Rows { seen[r.Major]++ }
    assert.Len(t, seen, len(tbl.Majors()))
    for _, m := range tbl.Majors() { assert.Equal(t, 1, seen[m], m) }
    assert.Len(t, mm.Long, 3*len(tbl.Majors()))
    assert.Equal(t, "weekly_study_hours", mm.Long[0].Metric)
    assert.Equal(t, "final_score", mm.Long[len(mm.Long)-1].Metric)
}

func TestMajorMetricsMeansSkipNulls(t *testing.T) {
    tbl := table(t,
        student(1, "male", "cs", "10", "0.9", "70", "0.8", "80"),
        student(2, "male", "cs", "20", "0.8", "70", "0.8", "x"),
        student(3, "male", "cs", "", "0.7", "70", "0.8", "71"),
        student(4, "male", "art", "n/a", "", "70", "0.8", ""),
    )
    mm := ByMajorMetrics(tbl)
    require.Len(t, mm.Rows, 2)
    art, cs := mm.Rows[0], mm.Rows[1]
    assert.Equal(t, Stat{}, art.StudyHours)
    assert.Equal(t, Stat{}, art.FinalScore)
    assert.Equal(t, Stat{Mean: 15, N: 2}, cs.StudyHours)
    assert.Equal(t, Stat{Mean: 0.8, N: 3}, cs.Attendance)
    assert.Equal(t, Stat{Mean: 75.5, N: 2}, cs.FinalScore)
}

func TestAttendancePercentRange(t *testing.T) {
    rows := AttendanceByMajor(randomTable(t, 400, 9))
    require.NotEmpty(t, rows)
    for i, r := range rows {
        assert.GreaterOrEqual(t, r.Percent, 0.0)
        assert.LessOrEqual(t, r.Percent, 100.0)
        assert.Equal(t, i+1, r.Rank)
        if i > 0 { assert.GreaterOrEqual(t, rows[i-1].Percent, r.Percent) }
    }
}

func TestAttendanceRoundsThenScales(t *testing.T) {
    tbl := table(t,
        student(1, "male", "cs", "1", "0.8734", "1", "1", "1"),
        student(2, "male", "math", "1", "0.95", "1", "1", "1"),
        student(3, "male", "math", "1", "1", "1", "1", "1"),
    )
    rows := AttendanceByMajor(tbl)
    require.Len(t, rows, 2)
    assert.Equal(t, AttendanceRow{Rank: 1, Major: "math", Percent: 97.5, N: 2}, rows[0])
    assert.Equal(t, AttendanceRow{Rank: 2, Major: "cs", Percent: 87.3, N: 1}, rows[1])
}

func TestFocusMajor(t *testing.T) {
    tbl := table(t,
        student(1, "male", "big-data management", "20", "0.9", "80", "0.8", "85"),
        student(2, "female", "big-data management", "10", "0.7", "60", "0.6", "65"),
        student(3, "female", "cs", "30", "1", "100", "1", "100"),
    )
    f, ok := FocusMajor(tbl, "big-data management")
    require.True(t, ok)
    assert.Equal(t, 2, f.Rows)
    require.Len(t, f.Metrics, 5)
    assert.Equal(t, "weekly_study_hours", f.Metrics[0].Metric)
    assert.Equal(t, 15.0, f.Metrics[0].Mean)
    assert.Equal(t, 0.8, f.Metrics[1].Mean)
    assert.Equal(t, 70.0, f.Metrics[2].Mean)
    assert.Equal(t, 0.7, f.Metrics[3].Mean)
    assert.Equal(t, 75.0, f.Metrics[4].Mean)

    _, ok = FocusMajor(tbl, "history")
    assert.False(t, ok)
    _, ok = FocusMajor(nil, "cs")
    assert.False(t, ok)
}

func TestFocusMajorAliases(t *testing.T) {
    tbl := table(t,
        student(1, "男", "大数据管理", "20", "0.9", "80", "0.8", "85"),
        student(2, "女", "大数据管理", "10", "0.7", "60", "0.6", "65"),
        student(3, "女", "计算机科学", "30", "1", "100", "1", "100"),
    )
    f, ok := FocusMajor(tbl, "big-data management")
    require.True(t, ok)
    assert.Equal(t, "大数据管理", f.Major)
    assert.Equal(t, 2, f.Rows)
    assert.Equal(t, 75.0, f.Metrics[4].Mean)

    d := Build(tbl, "big-data management")
    require.NotNil(t, d.Focus)
    assert.Equal(t, "大数据管理", d.FocusMajor)

    assert.True(t, SameMajor("大数据管理", "big-data management"))
    assert.False(t, SameMajor("计算机科学", "big-data management"))
}

func TestBuild(t *testing.T) {
    tbl := twoMajors(t)
    d := Build(tbl, "big-data management")
    assert.Equal(t, 15, d.Rows)
    assert.Nil(t, d.Focus)
    assert.Len(t, d.Attendance, 2)

    d = Build(tbl, "Math")
    require.NotNil(t, d.Focus)
    assert.Equal(t, 5, d.Focus.Rows)
    assert.Equal(t, d, Build(tbl, "Math"))
}

func TestEmptyTable(t *testing.T) {
    tbl := table(t)
    d := Build(tbl, "cs")
    assert.Equal(t, 0, d.Rows)
    assert.Empty(t, d.GenderByMajor.Rows)
    assert.Empty(t, d.MajorMetrics.Rows)
    assert.Empty(t, d.Attendance)
    assert.Nil(t, d.Focus)
}
