package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/config"
	"bitbucket.org/mmdatafocus/altavista_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is one ledger row. Income amounts are positive, expense
// amounts are stored negative. Rows are never deleted; voiding flips
// is_voided so the audit trail survives.
type Transaction struct {
	ID            int                 `gorm:"primary_key" json:"id"`
	PropertyId    string              `gorm:"index;not null" json:"property_id"`
	SequenceNo    int                 `gorm:"index;not null" json:"sequence_no"`
	Type          TransactionType     `gorm:"type:enum('ingreso','gasto');not null" json:"type"`
	Category      TransactionCategory `gorm:"size:30;not null" json:"category"`
	Amount        decimal.Decimal     `gorm:"type:decimal(14,2);not null" json:"amount"`
	Description   string              `gorm:"size:255" json:"description"`
	EntryDate     time.Time           `gorm:"index;not null" json:"entry_date"`
	Method        PaymentMethod       `gorm:"size:20" json:"method"`
	Reference     string              `gorm:"size:100" json:"reference"`
	ReferenceType string              `gorm:"size:30" json:"reference_type"`
	ReferenceId   int                 `gorm:"default:0" json:"reference_id"`
	IsVoided      *bool               `gorm:"not null;default:false" json:"is_voided"`
	VoidReason    string              `gorm:"size:255" json:"void_reason"`
	CreatedBy     string              `gorm:"size:100" json:"created_by"`
	CreatedAt     time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

type TransactionsEdge Edge[Transaction]

func (obj Transaction) GetId() int {
	return obj.ID
}

func (obj Transaction) GetPropertyId() string {
	return obj.PropertyId
}

type TransactionsConnection struct {
	PageInfo *PageInfo           `json:"pageInfo"`
	Edges    []*TransactionsEdge `json:"edges"`
}

func (obj Transaction) GetCursor() string {
	return obj.EntryDate.Format(time.RFC3339)
}

// SignedAmount normalizes an input amount to the ledger convention:
// expenses negative, income positive.
func SignedAmount(txType TransactionType, amount decimal.Decimal) decimal.Decimal {
	abs := amount.Abs()
	if txType == TransactionTypeExpense {
		return abs.Neg()
	}
	return abs
}

// LedgerEntryInput is what the domain modules post from their own
// transactions (fee payments, reservations, maintenance, reserve fund).
type LedgerEntryInput struct {
	PropertyId    string
	Type          TransactionType
	Category      TransactionCategory
	Amount        decimal.Decimal
	Description   string
	EntryDate     time.Time
	Method        PaymentMethod
	Reference     string
	ReferenceType string
	ReferenceId   int
	CreatedBy     string
}

// PostLedgerEntryTx writes a ledger row inside an already-open gorm
// transaction, so the business row and its ledger entry commit together.
func PostLedgerEntryTx(ctx context.Context, tx *gorm.DB, input *LedgerEntryInput) (*Transaction, error) {
	if !input.Type.IsValid() {
		return nil, errors.New("invalid transaction type")
	}
	if !input.Category.IsValid() || !input.Category.MatchesType(input.Type) {
		return nil, errors.New("category does not match transaction type")
	}
	if input.Amount.IsZero() {
		return nil, errors.New("amount must not be zero")
	}

	sequenceNo, err := utils.GetSequence[Transaction](ctx, input.PropertyId)
	if err != nil {
		return nil, err
	}

	createdBy := input.CreatedBy
	if createdBy == "" {
		createdBy, _ = utils.GetUsernameFromContext(ctx)
	}

	transaction := Transaction{
		PropertyId:    input.PropertyId,
		SequenceNo:    int(sequenceNo),
		Type:          input.Type,
		Category:      input.Category,
		Amount:        SignedAmount(input.Type, input.Amount),
		Description:   input.Description,
		EntryDate:     input.EntryDate,
		Method:        input.Method,
		Reference:     input.Reference,
		ReferenceType: input.ReferenceType,
		ReferenceId:   input.ReferenceId,
		IsVoided:      utils.NewFalse(),
		CreatedBy:     createdBy,
	}
	if err := tx.WithContext(ctx).Create(&transaction).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

type NewTransaction struct {
	Type        TransactionType     `json:"type" binding:"required"`
	Category    TransactionCategory `json:"category" binding:"required"`
	Amount      decimal.Decimal     `json:"amount" binding:"required"`
	Description string              `json:"description"`
	EntryDate   time.Time           `json:"entry_date" binding:"required"`
	Method      PaymentMethod       `json:"method"`
	Reference   string              `json:"reference"`
}

// CreateTransaction records a manual ledger entry (one not generated by
// a fee payment, reservation, maintenance task or fund movement).
func CreateTransaction(ctx context.Context, input *NewTransaction) (*Transaction, error) {

	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if input.Method != "" && !input.Method.IsValid() {
		return nil, errors.New("invalid payment method")
	}

	db := config.GetDB()
	tx := db.Begin()
	transaction, err := PostLedgerEntryTx(ctx, tx, &LedgerEntryInput{
		PropertyId:    propertyId,
		Type:          input.Type,
		Category:      input.Category,
		Amount:        input.Amount,
		Description:   input.Description,
		EntryDate:     input.EntryDate,
		Method:        input.Method,
		Reference:     input.Reference,
		ReferenceType: "manual",
	})
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return transaction, nil
}

// VoidTransaction marks an entry voided. Rows are never deleted.
func VoidTransaction(ctx context.Context, id int, reason string) (*Transaction, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if reason == "" {
		return nil, errors.New("void reason is required")
	}

	transaction, err := utils.FetchModel[Transaction](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	if transaction.IsVoided != nil && *transaction.IsVoided {
		return nil, errors.New("transaction is already voided")
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(transaction).Updates(map[string]interface{}{
		"IsVoided":   true,
		"VoidReason": reason,
	}).Error
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// voidLedgerEntriesTx voids every live ledger row generated by a
// business record, inside the caller's transaction.
func voidLedgerEntriesTx(ctx context.Context, tx *gorm.DB, propertyId, referenceType string, referenceId int, reason string) error {
	return tx.WithContext(ctx).Model(&Transaction{}).
		Where("property_id = ? AND reference_type = ? AND reference_id = ? AND is_voided = 0",
			propertyId, referenceType, referenceId).
		Updates(map[string]interface{}{
			"IsVoided":   true,
			"VoidReason": reason,
		}).Error
}

func GetTransaction(ctx context.Context, id int) (*Transaction, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	return utils.FetchModel[Transaction](ctx, propertyId, id)
}

// LedgerBalance sums live entries in [from, to]: income minus expenses.
// Expenses are stored negative, so a plain SUM does it.
func LedgerBalance(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return decimal.Zero, errors.New("property id is required")
	}
	db := config.GetDB()
	var result struct {
		Total decimal.Decimal
	}
	err := db.WithContext(ctx).Model(&Transaction{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("property_id = ? AND is_voided = 0 AND entry_date BETWEEN ? AND ?",
			propertyId, from, to).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// SumByCategory totals live entries per category for a period.
func SumByCategory(ctx context.Context, txType TransactionType, from, to time.Time) (map[TransactionCategory]decimal.Decimal, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	var rows []struct {
		Category TransactionCategory
		Total    decimal.Decimal
	}
	err := db.WithContext(ctx).Model(&Transaction{}).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Where("property_id = ? AND type = ? AND is_voided = 0 AND entry_date BETWEEN ? AND ?",
			propertyId, txType, from, to).
		Group("category").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[TransactionCategory]decimal.Decimal, len(rows))
	for _, row := range rows {
		result[row.Category] = row.Total
	}
	return result, nil
}

func PaginateTransaction(ctx context.Context, limit *int, after *string,
	txType *TransactionType, category *TransactionCategory,
	from *time.Time, to *time.Time, includeVoided bool) (*TransactionsConnection, error) {

	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("property_id = ?", propertyId)

	if txType != nil && *txType != "" {
		dbCtx.Where("type = ?", *txType)
	}
	if category != nil && *category != "" {
		dbCtx.Where("category = ?", *category)
	}
	if from != nil {
		dbCtx.Where("entry_date >= ?", *from)
	}
	if to != nil {
		dbCtx.Where("entry_date <= ?", *to)
	}
	if !includeVoided {
		dbCtx.Where("is_voided = 0")
	}

	edges, pageInfo, err := FetchPageCompositeCursor[Transaction](dbCtx, *limit, after, "entry_date", "<")
	if err != nil {
		return nil, err
	}
	var connection TransactionsConnection
	connection.PageInfo = pageInfo
	for _, edge := range edges {
		transactionsEdge := TransactionsEdge(edge)
		connection.Edges = append(connection.Edges, &transactionsEdge)
	}

	return &connection, err
}
