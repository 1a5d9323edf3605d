package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/config"
	"bitbucket.org/mmdatafocus/altavista_backend/utils"
	"github.com/shopspring/decimal"
)

// FeePayment records one house paying one monthly fee. At most one row
// per (fee, house); rejected payments can be re-registered by update.
type FeePayment struct {
	ID         int             `gorm:"primary_key" json:"id"`
	PropertyId string          `gorm:"index;not null" json:"property_id"`
	FeeId      int             `gorm:"index;not null;uniqueIndex:idx_payment_fee_house" json:"fee_id" binding:"required"`
	HouseId    int             `gorm:"index;not null;uniqueIndex:idx_payment_fee_house" json:"house_id" binding:"required"`
	Amount     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	PaidAt     time.Time       `gorm:"not null" json:"paid_at"`
	Method     PaymentMethod   `gorm:"size:20;not null" json:"method"`
	Reference  string          `gorm:"size:100" json:"reference"`
	State      FeePaymentState `gorm:"type:enum('registrado','confirmado','rechazado');default:'registrado'" json:"state"`
	Notes      string          `gorm:"size:255" json:"notes"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	Fee   *Fee   `gorm:"foreignKey:FeeId" json:"fee,omitempty"`
	House *House `gorm:"foreignKey:HouseId" json:"house,omitempty"`
}

type NewFeePayment struct {
	FeeId     int           `json:"fee_id" binding:"required"`
	HouseId   int           `json:"house_id" binding:"required"`
	PaidAt    time.Time     `json:"paid_at" binding:"required"`
	Method    PaymentMethod `json:"method" binding:"required"`
	Reference string        `json:"reference"`
	Notes     string        `json:"notes"`
}

type FeePaymentsEdge Edge[FeePayment]

func (obj FeePayment) GetId() int {
	return obj.ID
}

func (obj FeePayment) GetPropertyId() string {
	return obj.PropertyId
}

type FeePaymentsConnection struct {
	PageInfo *PageInfo          `json:"pageInfo"`
	Edges    []*FeePaymentsEdge `json:"edges"`
}

func (obj FeePayment) GetCursor() string {
	return obj.PaidAt.Format(time.RFC3339)
}

// RegisterFeePayment records a payment at the amount owed (with
// surcharge when late). The row starts in 'registrado' and only counts
// once confirmed.
func RegisterFeePayment(ctx context.Context, input *NewFeePayment) (*FeePayment, error) {

	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if !input.Method.IsValid() {
		return nil, errors.New("invalid payment method")
	}

	fee, err := utils.FetchModel[Fee](ctx, propertyId, input.FeeId)
	if err != nil {
		return nil, errors.New("fee not found")
	}
	if fee.State != FeeStateActive {
		return nil, errors.New("fee is closed")
	}
	house, err := utils.FetchModel[House](ctx, propertyId, input.HouseId)
	if err != nil {
		return nil, errors.New("house not found")
	}

	// one payment per fee+house; a rejected one may be retried
	db := config.GetDB()
	var existing FeePayment
	err = db.WithContext(ctx).
		Where("property_id = ? AND fee_id = ? AND house_id = ?", propertyId, input.FeeId, input.HouseId).
		First(&existing).Error
	if err == nil {
		if existing.State != FeePaymentStateRejected {
			return nil, errors.New("payment already registered for this fee and house")
		}
		err = db.WithContext(ctx).Model(&existing).Updates(map[string]interface{}{
			"Amount":    fee.AmountWithSurcharge(house.OwnershipCoefficient, input.PaidAt),
			"PaidAt":    input.PaidAt,
			"Method":    input.Method,
			"Reference": input.Reference,
			"State":     FeePaymentStateRegistered,
			"Notes":     input.Notes,
		}).Error
		if err != nil {
			return nil, err
		}
		return utils.FetchModel[FeePayment](ctx, propertyId, existing.ID)
	}

	payment := FeePayment{
		PropertyId: propertyId,
		FeeId:      input.FeeId,
		HouseId:    input.HouseId,
		Amount:     fee.AmountWithSurcharge(house.OwnershipCoefficient, input.PaidAt),
		PaidAt:     input.PaidAt,
		Method:     input.Method,
		Reference:  input.Reference,
		State:      FeePaymentStateRegistered,
		Notes:      input.Notes,
	}
	if err := db.WithContext(ctx).Create(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// ConfirmFeePayment verifies the payment and posts the income to the
// ledger in the same transaction, under the property lock.
func ConfirmFeePayment(ctx context.Context, id int) (*FeePayment, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}

	lock, err := utils.PropertyLock(ctx, propertyId, "FeePayment", "models", "ConfirmFeePayment")
	if err != nil {
		return nil, err
	}
	defer lock.Release(ctx)

	payment, err := utils.FetchModel[FeePayment](ctx, propertyId, id, "Fee", "House")
	if err != nil {
		return nil, err
	}
	if payment.State != FeePaymentStateRegistered {
		return nil, errors.New("only registered payments can be confirmed")
	}

	description := "Cuota"
	if payment.Fee != nil {
		description = "Cuota " + payment.Fee.Period()
	}
	if payment.House != nil {
		description += " casa " + payment.House.Code()
	}

	db := config.GetDB()
	tx := db.Begin()
	err = tx.WithContext(ctx).Model(payment).
		UpdateColumn("State", FeePaymentStateConfirmed).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	_, err = PostLedgerEntryTx(ctx, tx, &LedgerEntryInput{
		PropertyId:    propertyId,
		Type:          TransactionTypeIncome,
		Category:      CategoryAdminFee,
		Amount:        payment.Amount,
		Description:   description,
		EntryDate:     payment.PaidAt,
		Method:        payment.Method,
		Reference:     payment.Reference,
		ReferenceType: "fee_payment",
		ReferenceId:   payment.ID,
	})
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	payment.State = FeePaymentStateConfirmed
	return payment, nil
}

// RejectFeePayment marks a payment rejected. When it was already
// confirmed, the ledger entry is voided in the same transaction.
func RejectFeePayment(ctx context.Context, id int, reason string) (*FeePayment, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if reason == "" {
		return nil, errors.New("rejection reason is required")
	}

	lock, err := utils.PropertyLock(ctx, propertyId, "FeePayment", "models", "RejectFeePayment")
	if err != nil {
		return nil, err
	}
	defer lock.Release(ctx)

	payment, err := utils.FetchModel[FeePayment](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	if payment.State == FeePaymentStateRejected {
		return nil, errors.New("payment is already rejected")
	}
	wasConfirmed := payment.State == FeePaymentStateConfirmed

	db := config.GetDB()
	tx := db.Begin()
	err = tx.WithContext(ctx).Model(payment).Updates(map[string]interface{}{
		"State": FeePaymentStateRejected,
		"Notes": reason,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if wasConfirmed {
		err = voidLedgerEntriesTx(ctx, tx, propertyId, "fee_payment", payment.ID,
			"pago rechazado: "+reason)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	payment.State = FeePaymentStateRejected
	return payment, nil
}

func GetFeePayment(ctx context.Context, id int) (*FeePayment, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	return utils.FetchModel[FeePayment](ctx, propertyId, id, "Fee", "House")
}

// ListFeePayments returns all payments of one fee issuance.
func ListFeePayments(ctx context.Context, feeId int) ([]*FeePayment, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	var results []*FeePayment
	err := db.WithContext(ctx).
		Where("property_id = ? AND fee_id = ?", propertyId, feeId).
		Order("paid_at").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func PaginateFeePayment(ctx context.Context, limit *int, after *string,
	feeId *int, houseId *int, state *FeePaymentState) (*FeePaymentsConnection, error) {

	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("property_id = ?", propertyId)

	if feeId != nil && *feeId != 0 {
		dbCtx.Where("fee_id = ?", *feeId)
	}
	if houseId != nil && *houseId != 0 {
		dbCtx.Where("house_id = ?", *houseId)
	}
	if state != nil && *state != "" {
		dbCtx.Where("state = ?", *state)
	}

	edges, pageInfo, err := FetchPageCompositeCursor[FeePayment](dbCtx, *limit, after, "paid_at", "<")
	if err != nil {
		return nil, err
	}
	var connection FeePaymentsConnection
	connection.PageInfo = pageInfo
	for _, edge := range edges {
		feePaymentsEdge := FeePaymentsEdge(edge)
		connection.Edges = append(connection.Edges, &feePaymentsEdge)
	}

	return &connection, err
}

// CollectionSummary aggregates one fee issuance: expected vs collected.
type CollectionSummary struct {
	FeeId          int             `json:"fee_id"`
	Period         string          `json:"period"`
	ExpectedTotal  decimal.Decimal `json:"expected_total"`
	CollectedTotal decimal.Decimal `json:"collected_total"`
	HousesTotal    int             `json:"houses_total"`
	HousesPaid     int             `json:"houses_paid"`
}

// FeeCollectionSummary compares what the issuance should collect
// (coefficient-weighted, no surcharge) against confirmed payments.
func FeeCollectionSummary(ctx context.Context, feeId int) (*CollectionSummary, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	fee, err := utils.FetchModel[Fee](ctx, propertyId, feeId)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	var houses []*House
	err = db.WithContext(ctx).
		Where("property_id = ? AND is_active = 1", propertyId).
		Find(&houses).Error
	if err != nil {
		return nil, err
	}

	expected := decimal.Zero
	for _, house := range houses {
		expected = expected.Add(fee.HouseFeeAmount(house.OwnershipCoefficient))
	}

	var collected struct {
		Total decimal.Decimal
		Count int64
	}
	err = db.WithContext(ctx).Model(&FeePayment{}).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("property_id = ? AND fee_id = ? AND state = ?", propertyId, feeId, FeePaymentStateConfirmed).
		Scan(&collected).Error
	if err != nil {
		return nil, err
	}

	return &CollectionSummary{
		FeeId:          fee.ID,
		Period:         fee.Period(),
		ExpectedTotal:  expected,
		CollectedTotal: collected.Total,
		HousesTotal:    len(houses),
		HousesPaid:     int(collected.Count),
	}, nil
}
