package report

import (
	"encoding/csv"
	"io"
)

// WriteCSV exports the timesheet grid in CSV format. The figures are
// the same rows the table renderer prints.
func (ts *Timesheet) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	for _, row := range ts.Rows() {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}
