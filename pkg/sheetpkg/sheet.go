// Package sheetpkg renders tables into downloadable spreadsheet files.
package sheetpkg

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Supported formats and their content types.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"

	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv"
)

// numFmtThousands is the excel built-in "#,##0.00" number format.
const numFmtThousands = 4

// Table is a titled grid with a header row.
//
// Cells are either strings or decimal.Decimal values.
type Table struct {
	Title  string
	Header []string
	Rows   [][]any
}

// ContentType returns the MIME type of the given format.
func ContentType(format string) string {
	if format == FormatCSV {
		return ContentTypeCSV
	}

	return ContentTypeXLSX
}

// Write renders t in the given format into w.
func Write(w io.Writer, format string, t Table) error {
	switch format {
	case FormatXLSX:
		return WriteXLSX(w, t)
	case FormatCSV:
		return WriteCSV(w, t)
	}

	return fmt.Errorf("unsupported format %q", format)
}

// WriteXLSX renders t as an Office Open XML workbook with a single sheet.
func WriteXLSX(w io.Writer, t Table) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	sheet := f.GetSheetName(0)
	if t.Title != "" {
		if err := f.SetSheetName(sheet, t.Title); err != nil {
			return err
		}

		sheet = t.Title
	}

	style, err := f.NewStyle(&excelize.Style{NumFmt: numFmtThousands})
	if err != nil {
		return err
	}

	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, row := range t.Rows {
		cells := make([]any, len(row))

		for j, v := range row {
			if d, ok := v.(decimal.Decimal); ok {
				cells[j] = d.InexactFloat64()

				cell, err := excelize.CoordinatesToCellName(j+1, i+2)
				if err != nil {
					return err
				}

				if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
					return err
				}

				continue
			}

			cells[j] = v
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return err
		}
	}

	return f.Write(w)
}

// WriteCSV renders t as comma separated values, decimals with two fraction digits.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Header); err != nil {
		return err
	}

	for _, row := range t.Rows {
		record := make([]string, len(row))

		for i, v := range row {
			switch c := v.(type) {
			case decimal.Decimal:
				record[i] = c.StringFixed(2)
			case string:
				record[i] = c
			default:
				record[i] = fmt.Sprint(c)
			}
		}

		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}
