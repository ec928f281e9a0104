package data

import (
    "encoding/csv"
    "fmt"
    "io"
)

const (
    ExportFileName = "student_data_download.csv"
    ExportMIME     = "text/csv"
)

// WriteCSV encodes the table exactly as it was read: original header, original cells.
func WriteCSV(w io.Writer, t *Table) error {
    cw := csv.NewWriter(w)
    if err := cw.Write(t.Header); err != nil { return fmt.Errorf("write header: %w", err) }
    for _, r := range t.Raw {
        if err := cw.Write(r); err != nil { return fmt.Errorf("write row: %w", err) }
    }
    cw.Flush()
    return cw.Error()
}
