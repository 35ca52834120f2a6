package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// extractExcel flattens every sheet of a workbook into tab-separated rows.
// Supplementary data for a paper often ships as .xlsx next to the PDF.
func extractExcel(content []byte) (Paper, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return Paper{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var buf strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return Paper{}, fmt.Errorf("rows of sheet %q: %w", sheet, err)
		}
		for _, row := range rows {
			buf.WriteString(strings.Join(row, "\t"))
			buf.WriteByte('\n')
		}
	}
	return Paper{Text: strings.TrimSpace(buf.String())}, nil
}
