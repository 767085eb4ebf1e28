// Package export renders simple titled tables as PDF or XLSX documents.
package export

import (
	"time"
)

// Table is a report ready for rendering: a title block, one header row and string rows.
type Table struct {
	Title       string
	Subtitle    string
	Header      []string
	Rows        [][]string
	GeneratedAt time.Time // printed in the footer when set
}

// cell returns row[i] or "" for short rows.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
