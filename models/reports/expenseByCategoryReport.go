package reports

import (
	"context"
	"sort"
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/models"
	"bitbucket.org/mmdatafocus/altavista_backend/utils"
	"github.com/shopspring/decimal"
)

// ExpenseByCategoryRow is one category's share of period spending.
type ExpenseByCategoryRow struct {
	Category models.TransactionCategory `json:"category"`
	Amount   decimal.Decimal            `json:"amount"`
	Percent  decimal.Decimal            `json:"percent"`
}

// ExpenseByCategoryReport breaks down spending for a filter period
// (thisMonth, previousMonth, thisQuarter, thisYear), largest first.
type ExpenseByCategoryReport struct {
	From  time.Time               `json:"from"`
	To    time.Time               `json:"to"`
	Total decimal.Decimal         `json:"total"`
	Rows  []*ExpenseByCategoryRow `json:"rows"`
}

func BuildExpenseByCategoryReport(ctx context.Context, filterType string) (*ExpenseByCategoryReport, error) {
	from, to, err := utils.GetStartAndEndDate(filterType)
	if err != nil {
		return nil, err
	}

	byCategory, err := models.SumByCategory(ctx, models.TransactionTypeExpense, from, to)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	rows := make([]*ExpenseByCategoryRow, 0, len(byCategory))
	for category, amount := range byCategory {
		abs := amount.Abs()
		total = total.Add(abs)
		rows = append(rows, &ExpenseByCategoryRow{Category: category, Amount: abs})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Amount.GreaterThan(rows[j].Amount)
	})

	hundred := decimal.NewFromInt(100)
	for _, row := range rows {
		if total.IsPositive() {
			row.Percent = row.Amount.Div(total).Mul(hundred).Round(2)
		}
	}

	return &ExpenseByCategoryReport{
		From:  from,
		To:    to,
		Total: total,
		Rows:  rows,
	}, nil
}
