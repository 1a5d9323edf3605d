package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/config"
	"bitbucket.org/mmdatafocus/altavista_backend/utils"
	"github.com/shopspring/decimal"
)

// ReserveFund is the property's legally mandated savings fund.
// One fund per property; its balance only changes through movements.
type ReserveFund struct {
	ID         int             `gorm:"primary_key" json:"id"`
	PropertyId string          `gorm:"uniqueIndex;not null" json:"property_id"`
	Name       string          `gorm:"size:100;default:'Fondo de imprevistos'" json:"name"`
	Balance    decimal.Decimal `gorm:"type:decimal(14,2);default:0" json:"balance"`
	TargetGoal decimal.Decimal `gorm:"type:decimal(14,2);default:0" json:"target_goal"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (obj ReserveFund) GetPropertyId() string {
	return obj.PropertyId
}

// FundMovement is one contribution to or use of the reserve fund.
type FundMovement struct {
	ID          int             `gorm:"primary_key" json:"id"`
	PropertyId  string          `gorm:"index;not null" json:"property_id"`
	FundId      int             `gorm:"index;not null" json:"fund_id"`
	Kind        string          `gorm:"size:15;not null" json:"kind"` // aporte | uso
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Description string          `gorm:"size:255" json:"description"`
	MovedAt     time.Time       `gorm:"not null" json:"moved_at"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (obj FundMovement) GetPropertyId() string {
	return obj.PropertyId
}

// GetReserveFund returns the property's fund, creating it on first use.
func GetReserveFund(ctx context.Context) (*ReserveFund, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	var fund ReserveFund
	err := db.WithContext(ctx).Where("property_id = ?", propertyId).First(&fund).Error
	if err == nil {
		return &fund, nil
	}
	fund = ReserveFund{
		PropertyId: propertyId,
		Name:       "Fondo de imprevistos",
		Balance:    decimal.Zero,
	}
	if err := db.WithContext(ctx).Create(&fund).Error; err != nil {
		return nil, err
	}
	return &fund, nil
}

// SetReserveFundGoal updates the savings target.
func SetReserveFundGoal(ctx context.Context, goal decimal.Decimal) (*ReserveFund, error) {
	if goal.IsNegative() {
		return nil, errors.New("goal must not be negative")
	}
	fund, err := GetReserveFund(ctx)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Model(fund).UpdateColumn("TargetGoal", goal).Error; err != nil {
		return nil, err
	}
	fund.TargetGoal = goal
	return fund, nil
}

type NewFundMovement struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	MovedAt     time.Time       `json:"moved_at" binding:"required"`
}

// RegisterFundContribution adds money to the fund. The movement, the
// balance update and the ledger income commit together under the
// property lock.
func RegisterFundContribution(ctx context.Context, input *NewFundMovement) (*FundMovement, error) {
	return moveFund(ctx, input, "aporte")
}

// RegisterFundUse withdraws from the fund, refusing to overdraw it.
func RegisterFundUse(ctx context.Context, input *NewFundMovement) (*FundMovement, error) {
	return moveFund(ctx, input, "uso")
}

func moveFund(ctx context.Context, input *NewFundMovement, kind string) (*FundMovement, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("amount must be positive")
	}

	lock, err := utils.PropertyLock(ctx, propertyId, "ReserveFund", "models", "moveFund")
	if err != nil {
		return nil, err
	}
	defer lock.Release(ctx)

	fund, err := GetReserveFund(ctx)
	if err != nil {
		return nil, err
	}

	var newBalance decimal.Decimal
	if kind == "aporte" {
		newBalance = fund.Balance.Add(input.Amount)
	} else {
		newBalance = fund.Balance.Sub(input.Amount)
		if newBalance.IsNegative() {
			return nil, errors.New("insufficient fund balance")
		}
	}

	movement := FundMovement{
		PropertyId:  propertyId,
		FundId:      fund.ID,
		Kind:        kind,
		Amount:      input.Amount,
		Description: input.Description,
		MovedAt:     input.MovedAt,
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&movement).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Model(fund).UpdateColumn("Balance", newBalance).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	entry := &LedgerEntryInput{
		PropertyId:    propertyId,
		Amount:        input.Amount,
		Description:   input.Description,
		EntryDate:     input.MovedAt,
		ReferenceType: "fund_movement",
		ReferenceId:   movement.ID,
	}
	if kind == "aporte" {
		entry.Type = TransactionTypeIncome
		entry.Category = CategoryFundContribution
	} else {
		entry.Type = TransactionTypeExpense
		entry.Category = CategoryFundUse
	}
	if _, err := PostLedgerEntryTx(ctx, tx, entry); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &movement, nil
}

// ListFundMovements returns the fund history, newest first.
func ListFundMovements(ctx context.Context, from, to time.Time) ([]*FundMovement, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	var results []*FundMovement
	err := db.WithContext(ctx).
		Where("property_id = ? AND moved_at BETWEEN ? AND ?", propertyId, from, to).
		Order("moved_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
