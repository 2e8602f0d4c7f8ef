package analytics

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/JonnyWalker81/remindr/backend/internal/models"
)

// CSVHeader is the fixed column order of the activity export
var CSVHeader = []string{"Date", "Reminder Title", "Action", "Category", "Scheduled Date"}

// UnknownField fills columns whose reminder cannot be resolved
const UnknownField = "Unknown"

// isoMillis matches the UTC millisecond timestamps of the export
const isoMillis = "2006-01-02T15:04:05.000Z"

// ExportRow is one parsed line of an activity export
type ExportRow struct {
	Date          time.Time
	Title         string
	Action        string
	Category      string
	ScheduledDate string
}

// WriteCSV writes one row per log, joined to its reminder, and returns the
// number of data rows written. Fields containing commas or quotes are quoted.
func WriteCSV(w io.Writer, logs []models.ActivityLog, reminders []models.Reminder) (int, error) {
	byID := make(map[int64]models.Reminder, len(reminders))
	for _, r := range reminders {
		byID[r.ID] = r
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return 0, fmt.Errorf("failed to write csv header: %w", err)
	}

	rows := 0
	for _, l := range logs {
		title, category, scheduled := UnknownField, UnknownField, UnknownField
		if r, ok := byID[l.ReminderID]; ok {
			title, category, scheduled = r.Title, string(r.Category), r.ScheduledDate
		}
		record := []string{
			time.UnixMilli(l.Timestamp).UTC().Format(isoMillis),
			title,
			string(l.Action),
			category,
			scheduled,
		}
		if err := cw.Write(record); err != nil {
			return rows, fmt.Errorf("failed to write csv row %d: %w", rows, err)
		}
		rows++
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return rows, fmt.Errorf("failed to flush csv: %w", err)
	}
	return rows, nil
}

// ExportCSV renders the export as a string
func ExportCSV(logs []models.ActivityLog, reminders []models.Reminder) (string, error) {
	var buf bytes.Buffer
	if _, err := WriteCSV(&buf, logs, reminders); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ParseCSV reads an export produced by WriteCSV
func ParseCSV(r io.Reader) ([]ExportRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(CSVHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	if !slices.Equal(header, CSVHeader) {
		return nil, fmt.Errorf("unexpected csv header %v", header)
	}

	var rows []ExportRow
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv line %d: %w", line, err)
		}
		date, err := time.Parse(isoMillis, record[0])
		if err != nil {
			return nil, fmt.Errorf("invalid date on line %d: %w", line, err)
		}
		rows = append(rows, ExportRow{
			Date:          date,
			Title:         record[1],
			Action:        record[2],
			Category:      record[3],
			ScheduledDate: record[4],
		})
	}
	return rows, nil
}
