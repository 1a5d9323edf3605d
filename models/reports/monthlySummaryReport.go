package reports

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/models"
	"bitbucket.org/mmdatafocus/altavista_backend/utils"
	"github.com/shopspring/decimal"
)

// MonthlySummary is the month's financial picture: income and expense
// totals per category, the net result and the reserve fund balance.
type MonthlySummary struct {
	Year           int                                          `json:"year"`
	Month          int                                          `json:"month"`
	TotalIncome    decimal.Decimal                              `json:"total_income"`
	TotalExpense   decimal.Decimal                              `json:"total_expense"`
	NetResult      decimal.Decimal                              `json:"net_result"`
	IncomeByCat    map[models.TransactionCategory]decimal.Decimal `json:"income_by_category"`
	ExpenseByCat   map[models.TransactionCategory]decimal.Decimal `json:"expense_by_category"`
	FundBalance    decimal.Decimal                              `json:"fund_balance"`
	DelinquentOwed decimal.Decimal                              `json:"delinquent_owed"`
}

// BuildMonthlySummary aggregates the ledger for one month. Expense
// totals are reported positive even though the ledger stores them
// negative.
func BuildMonthlySummary(ctx context.Context, year, month int) (*MonthlySummary, error) {
	from, to := utils.GetMonthRange(year, time.Month(month))

	incomeByCat, err := models.SumByCategory(ctx, models.TransactionTypeIncome, from, to)
	if err != nil {
		return nil, err
	}
	expenseByCat, err := models.SumByCategory(ctx, models.TransactionTypeExpense, from, to)
	if err != nil {
		return nil, err
	}

	totalIncome := decimal.Zero
	for _, amount := range incomeByCat {
		totalIncome = totalIncome.Add(amount)
	}
	totalExpense := decimal.Zero
	for category, amount := range expenseByCat {
		abs := amount.Abs()
		expenseByCat[category] = abs
		totalExpense = totalExpense.Add(abs)
	}

	fund, err := models.GetReserveFund(ctx)
	if err != nil {
		return nil, err
	}

	owed := decimal.Zero
	delinquents, err := models.ListDelinquentHouses(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	for _, row := range delinquents {
		owed = owed.Add(row.AmountOwed)
	}

	return &MonthlySummary{
		Year:           year,
		Month:          month,
		TotalIncome:    totalIncome,
		TotalExpense:   totalExpense,
		NetResult:      totalIncome.Sub(totalExpense),
		IncomeByCat:    incomeByCat,
		ExpenseByCat:   expenseByCat,
		FundBalance:    fund.Balance,
		DelinquentOwed: owed,
	}, nil
}
