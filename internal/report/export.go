package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// ContentType returns the MIME type to serve the format with.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatJSON:
		return "application/json"
	default:
		return "text/csv; charset=utf-8"
	}
}

// ParseFormat validates a format string, defaulting to CSV.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported export format: %s", s)
}

// Export writes a report to w in the given format.
func Export(w io.Writer, report *Report, format Format) error {
	switch format {
	case FormatCSV:
		return exportCSV(w, report)
	case FormatXLSX:
		return exportXLSX(w, report)
	case FormatJSON:
		return exportJSON(w, report)
	}
	return fmt.Errorf("unsupported export format: %s", format)
}

func exportCSV(w io.Writer, report *Report) error {
	// UTF-8 BOM for Excel compatibility
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(report.Definition.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range report.Rows {
		values := make([]string, len(report.Definition.Columns))
		for i, col := range report.Definition.Columns {
			if val, ok := row.Values[col]; ok {
				values[i] = formatValue(val)
			}
		}
		if err := writer.Write(values); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func exportXLSX(w io.Writer, report *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := sanitizeSheetName(report.Definition.Name)
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1565C0"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})

	for i, col := range report.Definition.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)

		colName, _ := excelize.ColumnNumberToName(i + 1)
		width := float64(len(col) + 8)
		if width < 15 {
			width = 15
		}
		f.SetColWidth(sheetName, colName, colName, width)
	}

	for rowIdx, row := range report.Rows {
		for i, col := range report.Definition.Columns {
			cell, _ := excelize.CoordinatesToCellName(i+1, rowIdx+2)
			if val, ok := row.Values[col]; ok {
				f.SetCellValue(sheetName, cell, val)
			}
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(report.Definition.Columns))
	filterRange := fmt.Sprintf("A1:%s%d", lastCol, len(report.Rows)+1)
	f.AutoFilter(sheetName, filterRange, nil)

	// Keep the header visible while scrolling
	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	return f.Write(w)
}

type jsonReport struct {
	Metadata jsonMetadata     `json:"metadata"`
	Rows     []map[string]any `json:"rows"`
}

type jsonMetadata struct {
	ReportType  string    `json:"report_type"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TotalRows   int       `json:"total_rows"`
	Generated   time.Time `json:"generated"`
}

func exportJSON(w io.Writer, report *Report) error {
	out := &jsonReport{
		Metadata: jsonMetadata{
			ReportType:  string(report.Definition.Type),
			Name:        report.Definition.Name,
			Description: report.Definition.Description,
			TotalRows:   len(report.Rows),
			Generated:   report.Generated,
		},
		Rows: make([]map[string]any, 0, len(report.Rows)),
	}
	for _, row := range report.Rows {
		out.Rows = append(out.Rows, row.Values)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func formatValue(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case nil:
		return ""
	case float64:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// sanitizeSheetName keeps sheet names within Excel's constraints.
func sanitizeSheetName(name string) string {
	invalid := []rune{':', '\\', '/', '?', '*', '[', ']'}
	runes := []rune(name)
	for i, r := range runes {
		for _, bad := range invalid {
			if r == bad {
				runes[i] = '-'
			}
		}
	}
	if len(runes) > 31 {
		runes = runes[:31]
	}
	return string(runes)
}
