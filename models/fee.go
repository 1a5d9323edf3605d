package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/config"
	"bitbucket.org/mmdatafocus/altavista_backend/utils"
	"github.com/shopspring/decimal"
)

// Fee is one month's administration fee issuance for the whole property.
// Each house owes BaseAmount weighted by its ownership coefficient.
type Fee struct {
	ID               int             `gorm:"primary_key" json:"id"`
	PropertyId       string          `gorm:"index;not null;uniqueIndex:idx_fee_period" json:"property_id"`
	Year             int             `gorm:"not null;uniqueIndex:idx_fee_period" json:"year"`
	Month            int             `gorm:"not null;uniqueIndex:idx_fee_period" json:"month"`
	BaseAmount       decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"base_amount"`
	DueDate          time.Time       `gorm:"type:date;not null" json:"due_date"`
	SurchargePercent decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"surcharge_percent"`
	State            FeeState        `gorm:"type:enum('activa','cerrada');default:'activa'" json:"state"`
	Notes            string          `gorm:"size:255" json:"notes"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewFee struct {
	Year             int             `json:"year" binding:"required"`
	Month            int             `json:"month" binding:"required"`
	BaseAmount       decimal.Decimal `json:"base_amount" binding:"required"`
	DueDate          time.Time       `json:"due_date" binding:"required"`
	SurchargePercent decimal.Decimal `json:"surcharge_percent"`
	Notes            string          `json:"notes"`
}

func (obj Fee) GetId() int {
	return obj.ID
}

func (obj Fee) GetPropertyId() string {
	return obj.PropertyId
}

// Period is the display form, e.g. "2026-03".
func (obj Fee) Period() string {
	return fmt.Sprintf("%04d-%02d", obj.Year, obj.Month)
}

// HouseFeeAmount is the base amount weighted by the house's ownership
// coefficient, rounded to 2 decimals.
func (obj Fee) HouseFeeAmount(coefficient decimal.Decimal) decimal.Decimal {
	return obj.BaseAmount.Mul(coefficient).Round(2)
}

// AmountWithSurcharge applies the late surcharge strictly after the due
// date: payment on the due date itself carries no surcharge.
func (obj Fee) AmountWithSurcharge(coefficient decimal.Decimal, paidAt time.Time) decimal.Decimal {
	amount := obj.HouseFeeAmount(coefficient)
	due := time.Date(obj.DueDate.Year(), obj.DueDate.Month(), obj.DueDate.Day(), 23, 59, 59, 0, obj.DueDate.Location())
	if paidAt.After(due) && obj.SurchargePercent.IsPositive() {
		factor := decimal.NewFromInt(1).Add(obj.SurchargePercent.Div(decimal.NewFromInt(100)))
		amount = amount.Mul(factor).Round(2)
	}
	return amount
}

func (input *NewFee) validate(ctx context.Context, propertyId string, id int) error {
	if input.Month < 1 || input.Month > 12 {
		return errors.New("month must be between 1 and 12")
	}
	if input.BaseAmount.LessThanOrEqual(decimal.Zero) {
		return errors.New("base amount must be positive")
	}
	if input.SurchargePercent.IsNegative() {
		return errors.New("surcharge percent must not be negative")
	}
	if input.DueDate.Year() != input.Year || int(input.DueDate.Month()) != input.Month {
		return errors.New("due date must fall inside the fee period")
	}

	var count int64
	var err error
	if id == 0 {
		count, err = utils.ResourceCountWhere[Fee](ctx, propertyId,
			"year = ? AND month = ?", input.Year, input.Month)
	} else {
		count, err = utils.ResourceCountWhere[Fee](ctx, propertyId,
			"year = ? AND month = ? AND NOT id = ?", input.Year, input.Month, id)
	}
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("fee already exists for that period")
	}

	return nil
}

func CreateFee(ctx context.Context, input *NewFee) (*Fee, error) {

	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if err := input.validate(ctx, propertyId, 0); err != nil {
		return nil, err
	}

	fee := Fee{
		PropertyId:       propertyId,
		Year:             input.Year,
		Month:            input.Month,
		BaseAmount:       input.BaseAmount,
		DueDate:          input.DueDate,
		SurchargePercent: input.SurchargePercent,
		State:            FeeStateActive,
		Notes:            input.Notes,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&fee).Error; err != nil {
		return nil, err
	}
	return &fee, nil
}

func UpdateFee(ctx context.Context, id int, input *NewFee) (*Fee, error) {

	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}

	fee, err := utils.FetchModel[Fee](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	if fee.State != FeeStateActive {
		return nil, errors.New("closed fees cannot be modified")
	}
	// confirmed payments freeze the amounts
	count, err := utils.ResourceCountWhere[FeePayment](ctx, propertyId,
		"fee_id = ? AND state = ?", id, FeePaymentStateConfirmed)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("fee has confirmed payments")
	}
	if err := input.validate(ctx, propertyId, id); err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(fee).Updates(map[string]interface{}{
		"Year":             input.Year,
		"Month":            input.Month,
		"BaseAmount":       input.BaseAmount,
		"DueDate":          input.DueDate,
		"SurchargePercent": input.SurchargePercent,
		"Notes":            input.Notes,
	}).Error
	if err != nil {
		return nil, err
	}
	return utils.FetchModel[Fee](ctx, propertyId, id)
}

// CloseFee ends the collection period.
func CloseFee(ctx context.Context, id int) (*Fee, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	fee, err := utils.FetchModel[Fee](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	if fee.State != FeeStateActive {
		return nil, errors.New("fee is already closed")
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Model(fee).UpdateColumn("State", FeeStateClosed).Error; err != nil {
		return nil, err
	}
	fee.State = FeeStateClosed
	return fee, nil
}

func GetFee(ctx context.Context, id int) (*Fee, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	return utils.FetchModel[Fee](ctx, propertyId, id)
}

// GetFeeByPeriod finds the issuance for a year+month.
func GetFeeByPeriod(ctx context.Context, year, month int) (*Fee, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	var fee Fee
	err := db.WithContext(ctx).
		Where("property_id = ? AND year = ? AND month = ?", propertyId, year, month).
		First(&fee).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &fee, nil
}

func ListFees(ctx context.Context, year *int) ([]*Fee, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("property_id = ?", propertyId)
	if year != nil && *year != 0 {
		dbCtx.Where("year = ?", *year)
	}
	var results []*Fee
	if err := dbCtx.Order("year DESC, month DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// NextFeePeriod returns the period after the latest issuance, or the
// current month when none exists yet.
func NextFeePeriod(ctx context.Context, now time.Time) (int, int, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return 0, 0, errors.New("property id is required")
	}
	db := config.GetDB()
	var latest Fee
	err := db.WithContext(ctx).
		Where("property_id = ?", propertyId).
		Order("year DESC, month DESC").
		First(&latest).Error
	if err != nil {
		return now.Year(), int(now.Month()), nil
	}
	year, month := latest.Year, latest.Month+1
	if month > 12 {
		year, month = year+1, 1
	}
	return year, month, nil
}

// GenerateNextMonthFee issues the fee for the period after the latest
// one, copying its base amount, surcharge and due day. The due day is
// clamped to 28 so every month has it. Serialized under a redis lock so
// concurrent runs cannot double-issue.
func GenerateNextMonthFee(ctx context.Context) (*Fee, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}

	lock, err := utils.PropertyLock(ctx, propertyId, "Fee", "models", "GenerateNextMonthFee")
	if err != nil {
		return nil, err
	}
	defer lock.Release(ctx)

	db := config.GetDB()
	var latest Fee
	err = db.WithContext(ctx).
		Where("property_id = ?", propertyId).
		Order("year DESC, month DESC").
		First(&latest).Error
	if err != nil {
		return nil, errors.New("no previous fee to copy from")
	}

	year, month := latest.Year, latest.Month+1
	if month > 12 {
		year, month = year+1, 1
	}

	day := latest.DueDate.Day()
	if day > 28 {
		day = 28
	}
	dueDate := time.Date(year, time.Month(month), day, 0, 0, 0, 0, latest.DueDate.Location())

	input := NewFee{
		Year:             year,
		Month:            month,
		BaseAmount:       latest.BaseAmount,
		DueDate:          dueDate,
		SurchargePercent: latest.SurchargePercent,
	}
	return CreateFee(ctx, &input)
}

// DelinquentHouse is one house with an unpaid fee.
type DelinquentHouse struct {
	FeeId      int             `json:"fee_id"`
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	HouseId    int             `json:"house_id"`
	Block      string          `json:"block"`
	Number     string          `json:"number"`
	AmountOwed decimal.Decimal `json:"amount_owed"`
	DueDate    time.Time       `json:"due_date"`
	DaysLate   int             `json:"days_late"`
}

// ListDelinquentHouses returns, per active past-due fee, the houses with
// no confirmed payment. Amounts include the surcharge as of now.
func ListDelinquentHouses(ctx context.Context, now time.Time) ([]*DelinquentHouse, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}

	db := config.GetDB()
	var fees []*Fee
	err := db.WithContext(ctx).
		Where("property_id = ? AND state = ? AND due_date < ?", propertyId, FeeStateActive, now).
		Order("year, month").
		Find(&fees).Error
	if err != nil {
		return nil, err
	}
	if len(fees) == 0 {
		return []*DelinquentHouse{}, nil
	}

	var houses []*House
	err = db.WithContext(ctx).
		Where("property_id = ? AND is_active = 1", propertyId).
		Order("block, number").
		Find(&houses).Error
	if err != nil {
		return nil, err
	}

	results := make([]*DelinquentHouse, 0)
	for _, fee := range fees {
		var paidHouseIds []int
		err = db.WithContext(ctx).Model(&FeePayment{}).
			Where("property_id = ? AND fee_id = ? AND state = ?", propertyId, fee.ID, FeePaymentStateConfirmed).
			Pluck("house_id", &paidHouseIds).Error
		if err != nil {
			return nil, err
		}
		paid := make(map[int]bool, len(paidHouseIds))
		for _, houseId := range paidHouseIds {
			paid[houseId] = true
		}

		for _, house := range houses {
			if paid[house.ID] {
				continue
			}
			daysLate := int(now.Sub(fee.DueDate).Hours() / 24)
			if daysLate < 0 {
				daysLate = 0
			}
			results = append(results, &DelinquentHouse{
				FeeId:      fee.ID,
				Year:       fee.Year,
				Month:      fee.Month,
				HouseId:    house.ID,
				Block:      house.Block,
				Number:     house.Number,
				AmountOwed: fee.AmountWithSurcharge(house.OwnershipCoefficient, now),
				DueDate:    fee.DueDate,
				DaysLate:   daysLate,
			})
		}
	}
	return results, nil
}

// PendingFeesForHouse lists active fees the house has not paid.
func PendingFeesForHouse(ctx context.Context, houseId int, now time.Time) ([]*DelinquentHouse, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	house, err := utils.FetchModel[House](ctx, propertyId, houseId)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	var fees []*Fee
	err = db.WithContext(ctx).
		Where("property_id = ? AND state = ?", propertyId, FeeStateActive).
		Where("id NOT IN (?)",
			db.Model(&FeePayment{}).Select("fee_id").
				Where("property_id = ? AND house_id = ? AND state = ?", propertyId, houseId, FeePaymentStateConfirmed)).
		Order("year, month").
		Find(&fees).Error
	if err != nil {
		return nil, err
	}

	results := make([]*DelinquentHouse, 0, len(fees))
	for _, fee := range fees {
		daysLate := int(now.Sub(fee.DueDate).Hours() / 24)
		if daysLate < 0 {
			daysLate = 0
		}
		results = append(results, &DelinquentHouse{
			FeeId:      fee.ID,
			Year:       fee.Year,
			Month:      fee.Month,
			HouseId:    house.ID,
			Block:      house.Block,
			Number:     house.Number,
			AmountOwed: fee.AmountWithSurcharge(house.OwnershipCoefficient, now),
			DueDate:    fee.DueDate,
			DaysLate:   daysLate,
		})
	}
	return results, nil
}
