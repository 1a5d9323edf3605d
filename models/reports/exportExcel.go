package reports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const reportDateLayout = "2006-01-02"

// ExportDelinquencyExcel renders the delinquency report as an xlsx
// workbook, one row per house plus a totals row.
func ExportDelinquencyExcel(report *DelinquencyReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Cartera"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Casa", "Meses en mora", "Deuda total", "Vencimiento más antiguo", "Días de mora"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	row := 2
	for _, house := range report.Houses {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), house.Block+"-"+house.Number)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), house.MonthsOwed)
		amount, _ := house.TotalOwed.Float64()
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), amount)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), house.OldestDue.Format(reportDateLayout))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), house.MaxDaysLate)
		row++
	}

	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total")
	total, _ := report.TotalOwed.Float64()
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), total)

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer, nil
}

// ExportMonthlySummaryExcel renders the monthly summary as xlsx with
// income and expense sections.
func ExportMonthlySummaryExcel(summary *MonthlySummary) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Resumen"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Resumen %04d-%02d", summary.Year, summary.Month))

	row := 3
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Ingresos")
	row++
	for category, amount := range summary.IncomeByCat {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), string(category))
		value, _ := amount.Float64()
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), value)
		row++
	}
	totalIncome, _ := summary.TotalIncome.Float64()
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total ingresos")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), totalIncome)
	row += 2

	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Gastos")
	row++
	for category, amount := range summary.ExpenseByCat {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), string(category))
		value, _ := amount.Float64()
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), value)
		row++
	}
	totalExpense, _ := summary.TotalExpense.Float64()
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total gastos")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), totalExpense)
	row += 2

	net, _ := summary.NetResult.Float64()
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Resultado neto")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), net)
	row++
	fund, _ := summary.FundBalance.Float64()
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Fondo de imprevistos")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), fund)

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer, nil
}

// ExportBudgetExecutionExcel renders budget execution lines as xlsx.
func ExportBudgetExecutionExcel(report *BudgetExecutionReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Presupuesto"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Categoría", "Presupuestado", "Ejecutado", "Variación", "% Ejecución"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	row := 2
	for _, line := range report.Lines {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), string(line.Category))
		planned, _ := line.PlannedAmount.Float64()
		executed, _ := line.ExecutedAmount.Float64()
		variance, _ := line.Variance.Float64()
		percent, _ := line.ExecutionPercent.Float64()
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), planned)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), executed)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), variance)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), percent)
		row++
	}

	totalPlanned, _ := report.TotalPlanned.Float64()
	totalExecuted, _ := report.TotalExecuted.Float64()
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), totalPlanned)
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), totalExecuted)

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer, nil
}
