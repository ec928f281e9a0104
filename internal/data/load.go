package data

import (
    "crypto/sha256"
    "encoding/csv"
    "encoding/hex"
    "errors"
    "fmt"
    "io"
    "math"
    "os"
    "path/filepath"
    "strconv"
    "strings"

    "github.com/xuri/excelize/v2"
)

type column int

const (
    colID column = iota
    colGender
    colMajor
    colStudyHours
    colAttendance
    colMidterm
    colAssignment
    colFinal
    numColumns
)

var columnNames = [numColumns]string{
    "student_id", "gender", "major",
    "weekly_study_hours", "attendance_rate", "midterm_score", "assignment_completion_rate", "final_score",
}

// Headers accepted for each column, compared lower-cased and trimmed.
var columnAliases = [numColumns][]string{
    {"student_id", "id", "学号"},
    {"gender", "性别"},
    {"major", "专业"},
    {"weekly_study_hours", "每周学习时长（小时）"},
    {"attendance_rate", "上课出勤率"},
    {"midterm_score", "期中考试分数"},
    {"assignment_completion_rate", "作业完成率"},
    {"final_score", "期末考试分数"},
}

// Load reads the student table from an .xlsx/.xlsm workbook or a .csv file.
func Load(path string) (*Table, error) {
    if _, err := os.Stat(path); err != nil {
        if errors.Is(err, os.ErrNotExist) { return nil, fmt.Errorf("%w: %s", ErrDataFileNotFound, path) }
        return nil, fmt.Errorf("stat %s: %w", path, err)
    }
    var (
        rows [][]string
        err  error
    )
    switch strings.ToLower(filepath.Ext(path)) {
    case ".xlsx", ".xlsm":
        rows, err = readWorkbook(path)
    case ".csv":
        rows, err = readCSVFile(path)
    default:
        return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
    }
    if err != nil { return nil, err }
    t, err := FromRows(rows)
    if err != nil { return nil, fmt.Errorf("load %s: %w", path, err) }
    t.Source = path
    return t, nil
}

func readWorkbook(path string) ([][]string, error) {
    f, err := excelize.OpenFile(path)
    if err != nil { return nil, fmt.Errorf("open workbook %s: %w", path, err) }
    defer f.Close()
    sheet := f.GetSheetName(0)
    if sheet == "" { return nil, fmt.Errorf("workbook %s: %w", path, ErrNoHeader) }
    rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
    if err != nil { return nil, fmt.Errorf("read sheet %s: %w", sheet, err) }
    return rows, nil
}

func readCSVFile(path string) ([][]string, error) {
    f, err := os.Open(path)
    if err != nil { return nil, fmt.Errorf("open %s: %w", path, err) }
    defer f.Close()
    return ReadCSV(f)
}

// ReadCSV reads comma-separated rows; a UTF-8 byte order mark before the header is dropped.
func ReadCSV(r io.Reader) ([][]string, error) {
    cr := csv.NewReader(r)
    cr.FieldsPerRecord = -1
    rows, err := cr.ReadAll()
    if err != nil { return nil, fmt.Errorf("read csv: %w", err) }
    if len(rows) > 0 && len(rows[0]) > 0 {
        rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
    }
    return rows, nil
}

// FromRows builds a Table from raw rows, the first being the header.
// Numeric cells that fail to parse become null and are reported in Table.Issues.
func FromRows(rows [][]string) (*Table, error) {
    if len(rows) == 0 || len(rows[0]) == 0 { return nil, ErrNoHeader }
    header := append([]string(nil), rows[0]...)
    idx, err := resolveColumns(header)
    if err != nil { return nil, err }

    t := &Table{Header: header, Raw: make([][]string, 0, len(rows)-1), Records: make([]Record, 0, len(rows)-1)}
    for i := 1; i < len(rows); i++ {
        if blank(rows[i]) { continue }
        // padded to the header width; cells past the header are kept for the export
        raw := make([]string, max(len(header), len(rows[i])))
        copy(raw, rows[i])
        t.Raw = append(t.Raw, raw)

        rowNum := i + 1
        rec := Record{
            Row:       rowNum,
            StudentID: cell(raw, idx[colID]),
            Gender:    cell(raw, idx[colGender]),
            Major:     cell(raw, idx[colMajor]),
        }
        for _, m := range Metrics {
            c := idx[colStudyHours+column(m)]
            v, ok := ParseNumber(cell(raw, c))
            rec.Values[m], rec.Valid[m] = v, ok
            if !ok {
                t.Issues = append(t.Issues, CoercionIssue{Row: rowNum, Column: header[c], Raw: raw[c]})
            }
        }
        t.Records = append(t.Records, rec)
    }
    t.Fingerprint = fingerprint(t.Header, t.Raw)
    return t, nil
}

// ParseNumber is parse-or-null: a trimmed finite float, or false.
func ParseNumber(s string) (float64, bool) {
    s = strings.TrimSpace(s)
    if s == "" { return 0, false }
    v, err := strconv.ParseFloat(s, 64)
    if err != nil || math.IsNaN(v) || math.IsInf(v, 0) { return 0, false }
    return v, true
}

func resolveColumns(header []string) ([numColumns]int, error) {
    var idx [numColumns]int
    for c := range idx { idx[c] = -1 }
    for i, h := range header {
        key := strings.ToLower(strings.TrimSpace(h))
        for c, aliases := range columnAliases {
            if idx[c] >= 0 { continue }
            for _, a := range aliases {
                if key == a { idx[c] = i; break }
            }
        }
    }
    missing := []string{}
    for c := colGender; c < numColumns; c++ {
        if idx[c] < 0 { missing = append(missing, columnNames[c]) }
    }
    if len(missing) > 0 { return idx, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", ")) }
    return idx, nil
}

func cell(row []string, i int) string {
    if i < 0 || i >= len(row) { return "" }
    return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
    for _, c := range row {
        if strings.TrimSpace(c) != "" { return false }
    }
    return true
}

func fingerprint(header []string, rows [][]string) string {
    h := sha256.New()
    write := func(r []string) {
        for _, c := range r {
            h.Write([]byte(c))
            h.Write([]byte{0x1f})
        }
        h.Write([]byte{0x1e})
    }
    write(header)
    for _, r := range rows { write(r) }
    return hex.EncodeToString(h.Sum(nil))
}
