package handlers

import (
	"fmt"
	"net/http"
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/models/reports"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func reportPeriod(c *gin.Context) (int, int, bool) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())
	if v := intQuery(c, "year"); v != nil {
		year = *v
	}
	if v := intQuery(c, "month"); v != nil {
		month = *v
	}
	if month < 1 || month > 12 {
		respondBadRequest(c, "month must be between 1 and 12")
		return 0, 0, false
	}
	return year, month, true
}

func MonthlySummaryHandler(c *gin.Context) {
	year, month, ok := reportPeriod(c)
	if !ok {
		return
	}
	summary, err := reports.BuildMonthlySummary(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, "MonthlySummaryHandler", err)
		return
	}
	respondData(c, summary)
}

func ExpenseByCategoryHandler(c *gin.Context) {
	filterType := "thisMonth"
	if raw := stringQuery(c, "filter_type"); raw != nil {
		filterType = *raw
	}
	report, err := reports.BuildExpenseByCategoryReport(c.Request.Context(), filterType)
	if err != nil {
		respondError(c, "ExpenseByCategoryHandler", err)
		return
	}
	respondData(c, report)
}

func BudgetExecutionReportHandler(c *gin.Context) {
	year := time.Now().Year()
	if v := intQuery(c, "year"); v != nil {
		year = *v
	}
	report, err := reports.BuildBudgetExecutionReport(c.Request.Context(), year)
	if err != nil {
		respondError(c, "BudgetExecutionReportHandler", err)
		return
	}
	respondData(c, report)
}

func DelinquencyReportHandler(c *gin.Context) {
	report, err := reports.BuildDelinquencyReport(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, "DelinquencyReportHandler", err)
		return
	}
	respondData(c, report)
}

/* xlsx exports */

func ExportDelinquencyHandler(c *gin.Context) {
	report, err := reports.BuildDelinquencyReport(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, "ExportDelinquencyHandler", err)
		return
	}
	buffer, err := reports.ExportDelinquencyExcel(report)
	if err != nil {
		respondError(c, "ExportDelinquencyHandler", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="cartera.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buffer.Bytes())
}

func ExportMonthlySummaryHandler(c *gin.Context) {
	year, month, ok := reportPeriod(c)
	if !ok {
		return
	}
	summary, err := reports.BuildMonthlySummary(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, "ExportMonthlySummaryHandler", err)
		return
	}
	buffer, err := reports.ExportMonthlySummaryExcel(summary)
	if err != nil {
		respondError(c, "ExportMonthlySummaryHandler", err)
		return
	}
	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename="resumen-%04d-%02d.xlsx"`, year, month))
	c.Data(http.StatusOK, xlsxContentType, buffer.Bytes())
}

func ExportBudgetExecutionHandler(c *gin.Context) {
	year := time.Now().Year()
	if v := intQuery(c, "year"); v != nil {
		year = *v
	}
	report, err := reports.BuildBudgetExecutionReport(c.Request.Context(), year)
	if err != nil {
		respondError(c, "ExportBudgetExecutionHandler", err)
		return
	}
	buffer, err := reports.ExportBudgetExecutionExcel(report)
	if err != nil {
		respondError(c, "ExportBudgetExecutionHandler", err)
		return
	}
	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename="presupuesto-%d.xlsx"`, year))
	c.Data(http.StatusOK, xlsxContentType, buffer.Bytes())
}
