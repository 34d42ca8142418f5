package service

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// ReportCSV renders a section report as CSV: one header line plus one
// line per student. The percent column carries a trailing % sign.
func ReportCSV(rows []ReportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{
		"Roll No", "Student Name", "Total Days", "Present", "Absent", "Late", "Attendance %",
	}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.RollNumber),
			r.StudentName,
			strconv.Itoa(r.TotalDays),
			strconv.Itoa(r.Present),
			strconv.Itoa(r.Absent),
			strconv.Itoa(r.Late),
			strconv.FormatFloat(r.Percent, 'f', -1, 64) + "%",
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
