package reports

import (
	"context"

	"bitbucket.org/mmdatafocus/altavista_backend/models"
	"github.com/shopspring/decimal"
)

// BudgetExecutionReport rolls the per-category execution lines up into
// year totals.
type BudgetExecutionReport struct {
	Year             int                           `json:"year"`
	TotalPlanned     decimal.Decimal               `json:"total_planned"`
	TotalExecuted    decimal.Decimal               `json:"total_executed"`
	ExecutionPercent decimal.Decimal               `json:"execution_percent"`
	Lines            []*models.BudgetExecutionLine `json:"lines"`
}

func BuildBudgetExecutionReport(ctx context.Context, year int) (*BudgetExecutionReport, error) {
	lines, err := models.BudgetExecution(ctx, year)
	if err != nil {
		return nil, err
	}

	totalPlanned := decimal.Zero
	totalExecuted := decimal.Zero
	for _, line := range lines {
		totalPlanned = totalPlanned.Add(line.PlannedAmount)
		totalExecuted = totalExecuted.Add(line.ExecutedAmount)
	}
	percent := decimal.Zero
	if totalPlanned.IsPositive() {
		percent = totalExecuted.Div(totalPlanned).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return &BudgetExecutionReport{
		Year:             year,
		TotalPlanned:     totalPlanned,
		TotalExecuted:    totalExecuted,
		ExecutionPercent: percent,
		Lines:            lines,
	}, nil
}
