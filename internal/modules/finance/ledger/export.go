package ledger

import (
	"io"

	"github.com/tripdesk/crm-admin/internal/models"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Ledger"

var exportColumns = []struct {
	label string
	width float64
}{
	{"Date", 14},
	{"Party", 28},
	{"Type", 10},
	{"Amount", 16},
	{"Payment mode", 16},
	{"Invoice", 20},
	{"Reference", 22},
	{"Notes", 40},
}

// WriteWorkbook writes entries as an xlsx workbook followed by a totals block.
func WriteWorkbook(w io.Writer, entries []models.LedgerModel) error {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	index, err := f.GetSheetIndex(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1F4E78"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return err
	}

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, col.label); err != nil {
			return err
		}
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheetName, name, name, col.width); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheetName, "A1", "H1", headerStyle); err != nil {
		return err
	}

	row := 2
	for _, e := range entries {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []any{dateOnly(e.EntryDate), e.PartyName, e.EntryType, e.Amount, e.PaymentMode, e.InvoiceNumber, e.Reference, e.Notes}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return err
		}
		row++
	}

	sum := Summarize(entries)
	row++
	for _, line := range []struct {
		label string
		value float64
	}{
		{"Total credit", sum.Credit},
		{"Total debit", sum.Debit},
		{"Balance", sum.Balance},
	} {
		label, _ := excelize.CoordinatesToCellName(3, row)
		amount, _ := excelize.CoordinatesToCellName(4, row)
		if err := f.SetCellValue(sheetName, label, line.label); err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, amount, line.value); err != nil {
			return err
		}
		row++
	}
	last, _ := excelize.CoordinatesToCellName(4, row)
	if err := f.SetCellStyle(sheetName, "D2", last, amountStyle); err != nil {
		return err
	}

	return f.Write(w)
}
