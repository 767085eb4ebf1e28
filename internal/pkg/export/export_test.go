package export

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable() Table {
	return Table{
		Title:    "Attendance Report for March 2024",
		Subtitle: "As of 05/03/2024",
		Header:   []string{"Name", "Check-In", "Avg Check-in"},
		Rows: [][]string{
			{"Asha", "09:55", "10:07"},
			{"Ravi", "-", "—"},
			{"Short row"},
		},
		GeneratedAt: time.Date(2024, 3, 5, 18, 0, 0, 0, time.UTC),
	}
}

func TestPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, sampleTable()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestPDFPaginates(t *testing.T) {
	table := sampleTable()
	for i := 0; i < 200; i++ {
		table.Rows = append(table.Rows, []string{fmt.Sprintf("Member %d", i), "09:00", "09:00"})
	}

	pdf := renderPDF(table)
	require.NoError(t, pdf.Error())
	assert.Greater(t, pdf.PageNo(), 1)
}

func TestPDFWrapsLongCells(t *testing.T) {
	table := Table{
		Title:  "March 2024",
		Header: []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		Rows:   [][]string{{"", "", "", "", "", "1: " + strings.Repeat("Client meeting; ", 10), "2"}},
	}
	pdf := renderPDF(table)
	require.NoError(t, pdf.Error())
	w, h := pdf.GetPageSize()
	assert.Greater(t, w, h, "seven columns print landscape")
}

func TestXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, XLSX(&buf, sampleTable()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 7)
	assert.Equal(t, "Attendance Report for March 2024", rows[0][0])
	assert.Equal(t, "As of 05/03/2024", rows[1][0])
	assert.Equal(t, []string{"Name", "Check-In", "Avg Check-in"}, rows[3])
	assert.Equal(t, []string{"Asha", "09:55", "10:07"}, rows[4])
	assert.Equal(t, "—", rows[5][2])
	assert.Equal(t, "Short row", rows[6][0])
	assert.Equal(t, "Generated on 05 March 2024 18:00", rows[8][0])
}
