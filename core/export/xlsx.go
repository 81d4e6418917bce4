package export

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteXLSX writes rows to w as a single-sheet workbook.
func WriteXLSX(w io.Writer, sheet string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return errors.Wrap(err, "naming sheet")
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.Wrap(err, "locating row")
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err = f.SetSheetRow(sheet, cell, &values); err != nil {
			return errors.Wrapf(err, "writing row %d", i+1)
		}
	}
	if len(rows) > 0 {
		if err := f.AutoFilter(sheet, "A1:"+lastColumn(len(rows[0]))+"1", nil); err != nil {
			return errors.Wrap(err, "adding header filter")
		}
	}
	return errors.Wrap(f.Write(w), "writing workbook")
}

// ReadXLSX returns the rows of sheet.
func ReadXLSX(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "opening workbook")
	}
	defer f.Close()
	rows, err := f.GetRows(sheet)
	return rows, errors.Wrap(err, "reading rows")
}

// XLSXFileName swaps the .csv extension of a download name for .xlsx.
func XLSXFileName(csvName string) string {
	return strings.TrimSuffix(csvName, ".csv") + ".xlsx"
}

func lastColumn(n int) string {
	if n < 1 {
		n = 1
	}
	name, _ := excelize.ColumnNumberToName(n)
	return name
}
