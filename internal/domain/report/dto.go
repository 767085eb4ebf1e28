package report

import (
	"strings"
	"time"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ParseFormat defaults to PDF.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/pdf"
}

func (f Format) Extension() string {
	return "." + string(f)
}

type AttendanceExportRequest struct {
	Month     string
	StartDate string
	EndDate   string
	Format    string
}

type TransactionExportRequest struct {
	Search    string
	Category  string
	Type      string
	StartDate string
	EndDate   string
	Format    string
}

type CalendarExportRequest struct {
	Month      string
	ClientName string
	Format     string
}

// Document is a rendered report.
type Document struct {
	Filename    string
	ContentType string
	Content     []byte
	ArchiveKey  string
	ArchiveURL  string
}

type ArchivedReport struct {
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}
