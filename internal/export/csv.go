// Package export writes cutting lists to the file formats the workshop
// consumes. The CSV and Excel tables feed the saw bench; the PDF document
// and QR part labels are printed for the fitters; DXF outlines go to CAD.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/piwi3910/cabplan/internal/cutlist"
)

// WriteCSV writes the flat cutting-list table to w.
func WriteCSV(w io.Writer, result cutlist.Result) error {
	if len(result.Components) == 0 {
		return fmt.Errorf("no components to export")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(cutlist.TableColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range cutlist.TableRows(result.Components) {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the flat cutting-list table to a file.
func ExportCSV(path string, result cutlist.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if err := WriteCSV(f, result); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
