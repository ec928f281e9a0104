package data

import (
    "fmt"
    "math"
    "math/rand"
    "os"
    "path/filepath"
    "strconv"

    "github.com/xuri/excelize/v2"
)

var majors = []string{"big-data management", "computer science", "mathematics", "software engineering", "economics"}
var genders = []string{"male", "female"}

// CanonicalHeader is the column order written by the generator.
var CanonicalHeader = []string{"student_id", "gender", "major", "weekly_study_hours", "attendance_rate", "midterm_score", "assignment_completion_rate", "final_score"}

// GenerateSyntheticStudents writes n random students to an .xlsx (or .csv) file.
func GenerateSyntheticStudents(n int, seed int64, outPath string) error {
    rng := rand.New(rand.NewSource(seed))
    rows := make([][]string, 0, n+1)
    rows = append(rows, CanonicalHeader)
    for i := 0; i < n; i++ {
        major := majors[rng.Intn(len(majors))]
        gender := genders[rng.Intn(len(genders))]

        hours := clamp(math.Round(rng.NormFloat64()*6+18), 0, 40)
        attendance := clamp(round(0.6+rng.Float64()*0.4, 2), 0, 1)
        midterm := clamp(math.Round(rng.NormFloat64()*12+70), 0, 100)
        assignment := clamp(round(0.5+rng.Float64()*0.5, 2), 0, 1)
        final := 5 + 0.6*hours + 20*attendance + 0.55*midterm + 5*assignment + rng.NormFloat64()*4
        final = clamp(round(final, 1), 0, 100)

        rows = append(rows, []string{
            strconv.Itoa(20240001 + i),
            gender,
            major,
            fmtNum(hours),
            fmtNum(attendance),
            fmtNum(midterm),
            fmtNum(assignment),
            fmtNum(final),
        })
    }
    return WriteRows(outPath, rows)
}

// WriteRows saves rows (header first) as a workbook or CSV, chosen by extension.
func WriteRows(outPath string, rows [][]string) error {
    if dir := filepath.Dir(outPath); dir != "" {
        if err := os.MkdirAll(dir, 0o755); err != nil { return err }
    }
    if filepath.Ext(outPath) == ".csv" {
        f, err := os.Create(outPath)
        if err != nil { return err }
        if err := WriteCSV(f, &Table{Header: rows[0], Raw: rows[1:]}); err != nil {
            f.Close()
            return err
        }
        return f.Close()
    }

    f := excelize.NewFile()
    defer f.Close()
    sheet := f.GetSheetName(0)
    for i, r := range rows {
        cells := make([]interface{}, len(r))
        for j, c := range r {
            // numbers are stored as numeric cells so the workbook looks like a real export
            if v, ok := ParseNumber(c); ok && i > 0 && j > 0 {
                cells[j] = v
            } else {
                cells[j] = c
            }
        }
        ref, err := excelize.CoordinatesToCellName(1, i+1)
        if err != nil { return err }
        if err := f.SetSheetRow(sheet, ref, &cells); err != nil { return fmt.Errorf("write row %d: %w", i+1, err) }
    }
    return f.SaveAs(outPath)
}

func fmtNum(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func round(v float64, places int) float64 {
    p := math.Pow(10, float64(places))
    return math.Round(v*p) / p
}

func clamp(v, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, v)) }
