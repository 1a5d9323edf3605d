package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/config"
	"bitbucket.org/mmdatafocus/altavista_backend/utils"
	"github.com/shopspring/decimal"
)

// Budget is the yearly plan for one expense category.
// One row per property+year+category.
type Budget struct {
	ID            int                 `gorm:"primary_key" json:"id"`
	PropertyId    string              `gorm:"index;not null;uniqueIndex:idx_budget_line" json:"property_id"`
	Year          int                 `gorm:"not null;uniqueIndex:idx_budget_line" json:"year"`
	Category      TransactionCategory `gorm:"size:30;not null;uniqueIndex:idx_budget_line" json:"category"`
	PlannedAmount decimal.Decimal     `gorm:"type:decimal(14,2);not null" json:"planned_amount"`
	Notes         string              `gorm:"size:255" json:"notes"`
	CreatedAt     time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (obj Budget) GetPropertyId() string {
	return obj.PropertyId
}

type NewBudget struct {
	Year          int                 `json:"year" binding:"required"`
	Category      TransactionCategory `json:"category" binding:"required"`
	PlannedAmount decimal.Decimal     `json:"planned_amount" binding:"required"`
	Notes         string              `json:"notes"`
}

func (input *NewBudget) validate(ctx context.Context, propertyId string, id int) error {
	if !input.Category.IsValid() || !input.Category.MatchesType(TransactionTypeExpense) {
		return errors.New("budget lines cover expense categories only")
	}
	if input.PlannedAmount.LessThanOrEqual(decimal.Zero) {
		return errors.New("planned amount must be positive")
	}

	var count int64
	var err error
	if id == 0 {
		count, err = utils.ResourceCountWhere[Budget](ctx, propertyId,
			"year = ? AND category = ?", input.Year, input.Category)
	} else {
		count, err = utils.ResourceCountWhere[Budget](ctx, propertyId,
			"year = ? AND category = ? AND NOT id = ?", input.Year, input.Category, id)
	}
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("budget line already exists for that year and category")
	}
	return nil
}

func CreateBudget(ctx context.Context, input *NewBudget) (*Budget, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if err := input.validate(ctx, propertyId, 0); err != nil {
		return nil, err
	}

	budget := Budget{
		PropertyId:    propertyId,
		Year:          input.Year,
		Category:      input.Category,
		PlannedAmount: input.PlannedAmount,
		Notes:         input.Notes,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&budget).Error; err != nil {
		return nil, err
	}
	return &budget, nil
}

func UpdateBudget(ctx context.Context, id int, input *NewBudget) (*Budget, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	budget, err := utils.FetchModel[Budget](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, propertyId, id); err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(budget).Updates(map[string]interface{}{
		"Year":          input.Year,
		"Category":      input.Category,
		"PlannedAmount": input.PlannedAmount,
		"Notes":         input.Notes,
	}).Error
	if err != nil {
		return nil, err
	}
	return utils.FetchModel[Budget](ctx, propertyId, id)
}

func DeleteBudget(ctx context.Context, id int) (*Budget, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	budget, err := utils.FetchModel[Budget](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(budget).Error; err != nil {
		return nil, err
	}
	return budget, nil
}

func ListBudgets(ctx context.Context, year int) ([]*Budget, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	var results []*Budget
	err := db.WithContext(ctx).
		Where("property_id = ? AND year = ?", propertyId, year).
		Order("category").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// BudgetExecutionLine compares one budget line against ledger spending.
type BudgetExecutionLine struct {
	Category         TransactionCategory `json:"category"`
	PlannedAmount    decimal.Decimal     `json:"planned_amount"`
	ExecutedAmount   decimal.Decimal     `json:"executed_amount"`
	Variance         decimal.Decimal     `json:"variance"`
	ExecutionPercent decimal.Decimal     `json:"execution_percent"`
}

// BudgetExecution computes executed vs planned per category for a year.
// Ledger expenses are negative; execution uses their absolute value.
func BudgetExecution(ctx context.Context, year int) ([]*BudgetExecutionLine, error) {
	budgets, err := ListBudgets(ctx, year)
	if err != nil {
		return nil, err
	}

	loc := time.Now().Location()
	from := time.Date(year, 1, 1, 0, 0, 0, 0, loc)
	to := time.Date(year, 12, 31, 23, 59, 59, 0, loc)
	spent, err := SumByCategory(ctx, TransactionTypeExpense, from, to)
	if err != nil {
		return nil, err
	}

	hundred := decimal.NewFromInt(100)
	lines := make([]*BudgetExecutionLine, 0, len(budgets))
	for _, budget := range budgets {
		executed := spent[budget.Category].Abs()
		percent := decimal.Zero
		if budget.PlannedAmount.IsPositive() {
			percent = executed.Div(budget.PlannedAmount).Mul(hundred).Round(2)
		}
		lines = append(lines, &BudgetExecutionLine{
			Category:         budget.Category,
			PlannedAmount:    budget.PlannedAmount,
			ExecutedAmount:   executed,
			Variance:         budget.PlannedAmount.Sub(executed),
			ExecutionPercent: percent,
		})
	}
	return lines, nil
}
