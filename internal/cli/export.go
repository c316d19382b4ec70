package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the exported table
const SheetName = "Inventory"

var exportHeader = []any{
	"ID", "Asset ID", "Name", "Description", "Quantity",
	"Total Paid", "Tax Paid", "Unit Paid", "Sale Price",
	"Projected Tax", "Projected Earnings", "Margin %", "Created At",
}

// Amount columns (1-based), formatted with two decimals
const (
	firstAmountCol = 6
	lastAmountCol  = 12
)

// WriteWorkbook saves the inventory table, followed by its totals row, as an XLSX file
func WriteWorkbook(inv *Inventory, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := 2
	for _, item := range inv.Items {
		values := []any{
			item.ID, item.AssetID, item.Name, item.Description, item.Quantity,
			number(item.AmountPaid), number(item.TaxPaid), number(item.UnitPaid),
			number(item.ProjectedSalePrice), number(item.ProjectedTaxExpected),
			number(item.ProjectedEarnings), number(item.MarginPercent), item.CreatedAt,
		}
		if err := setRow(f, row, values); err != nil {
			return err
		}
		row++
	}

	// Totals row; margin is not summed
	totals := []any{
		"Total", nil, nil, nil, inv.Totals.ItemCount,
		number(inv.Totals.AmountPaid), number(inv.Totals.TaxPaid), nil, nil,
		number(inv.Totals.ProjectedTaxExpected), number(inv.Totals.ProjectedEarnings),
	}
	if err := setRow(f, row, totals); err != nil {
		return err
	}

	if err := applyStyles(f, row); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

func applyStyles(f *excelize.File, totalsRow int) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return err
	}
	boldAmount, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: 2})
	if err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(exportHeader))
	if err != nil {
		return err
	}
	firstAmount, _ := excelize.ColumnNumberToName(firstAmountCol)
	lastAmount, _ := excelize.ColumnNumberToName(lastAmountCol)

	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", bold); err != nil {
		return err
	}
	if totalsRow > 2 {
		if err := f.SetCellStyle(SheetName, firstAmount+"2", fmt.Sprintf("%s%d", lastAmount, totalsRow-1), amount); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SheetName, fmt.Sprintf("A%d", totalsRow), fmt.Sprintf("%s%d", lastCol, totalsRow), bold); err != nil {
		return err
	}
	return f.SetCellStyle(SheetName, fmt.Sprintf("%s%d", firstAmount, totalsRow), fmt.Sprintf("%s%d", lastAmount, totalsRow), boldAmount)
}

// number converts a presented two-decimal amount back to a spreadsheet number
// Unparseable text is written as-is
func number(s string) any {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return d.InexactFloat64()
}
