package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"billscan/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the flat line-item table header.
var columns = []string{
	"Page No",
	"Page Type",
	"Item Name",
	"Item Rate",
	"Item Quantity",
	"Item Amount",
}

// WriteCSV renders aggregated line items as CSV, one row per item, prefixed
// with a BOM.
func WriteCSV(w io.Writer, data *domain.ExtractionData) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, page := range data.PagewiseLineItems {
		for _, item := range page.BillItems {
			row := []string{
				page.PageNo,
				string(page.PageType),
				item.ItemName,
				formatFloat(item.ItemRate),
				formatFloat(item.ItemQuantity),
				formatFloat(item.ItemAmount),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// SheetName is the worksheet holding exported line items.
const SheetName = "Line Items"

// WriteXLSX renders aggregated line items as an Excel workbook.
func WriteXLSX(w io.Writer, data *domain.ExtractionData) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	for col, name := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, name); err != nil {
			return err
		}
	}

	row := 2
	for _, page := range data.PagewiseLineItems {
		for _, item := range page.BillItems {
			values := []any{
				page.PageNo,
				string(page.PageType),
				item.ItemName,
				item.ItemRate,
				item.ItemQuantity,
				item.ItemAmount,
			}
			for col, v := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(SheetName, cell, v); err != nil {
					return err
				}
			}
			row++
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
