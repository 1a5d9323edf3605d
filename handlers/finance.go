package handlers

import (
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

/* fees */

func CreateFeeHandler(c *gin.Context) {
	var input models.NewFee
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "CreateFeeHandler", err)
		return
	}
	fee, err := models.CreateFee(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateFeeHandler", err)
		return
	}
	respondData(c, fee)
}

func UpdateFeeHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewFee
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "UpdateFeeHandler", err)
		return
	}
	fee, err := models.UpdateFee(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "UpdateFeeHandler", err)
		return
	}
	respondData(c, fee)
}

func CloseFeeHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	fee, err := models.CloseFee(c.Request.Context(), id)
	if err != nil {
		respondError(c, "CloseFeeHandler", err)
		return
	}
	respondData(c, fee)
}

func GetFeeHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	fee, err := models.GetFee(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetFeeHandler", err)
		return
	}
	respondData(c, fee)
}

func GetFeeByPeriodHandler(c *gin.Context) {
	year := intQuery(c, "year")
	month := intQuery(c, "month")
	if year == nil || month == nil {
		respondBadRequest(c, "year and month are required")
		return
	}
	fee, err := models.GetFeeByPeriod(c.Request.Context(), *year, *month)
	if err != nil {
		respondError(c, "GetFeeByPeriodHandler", err)
		return
	}
	respondData(c, fee)
}

func ListFeesHandler(c *gin.Context) {
	fees, err := models.ListFees(c.Request.Context(), intQuery(c, "year"))
	if err != nil {
		respondError(c, "ListFeesHandler", err)
		return
	}
	respondData(c, fees)
}

func GenerateNextMonthFeeHandler(c *gin.Context) {
	fee, err := models.GenerateNextMonthFee(c.Request.Context())
	if err != nil {
		respondError(c, "GenerateNextMonthFeeHandler", err)
		return
	}
	respondData(c, fee)
}

func ListDelinquentHousesHandler(c *gin.Context) {
	items, err := models.ListDelinquentHouses(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, "ListDelinquentHousesHandler", err)
		return
	}
	respondData(c, items)
}

/* fee payments */

func RegisterFeePaymentHandler(c *gin.Context) {
	var input models.NewFeePayment
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "RegisterFeePaymentHandler", err)
		return
	}
	payment, err := models.RegisterFeePayment(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "RegisterFeePaymentHandler", err)
		return
	}
	respondData(c, payment)
}

func ConfirmFeePaymentHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	payment, err := models.ConfirmFeePayment(c.Request.Context(), id)
	if err != nil {
		respondError(c, "ConfirmFeePaymentHandler", err)
		return
	}
	respondData(c, payment)
}

type rejectPaymentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func RejectFeePaymentHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input rejectPaymentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "RejectFeePaymentHandler", err)
		return
	}
	payment, err := models.RejectFeePayment(c.Request.Context(), id, input.Reason)
	if err != nil {
		respondError(c, "RejectFeePaymentHandler", err)
		return
	}
	respondData(c, payment)
}

func GetFeePaymentHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	payment, err := models.GetFeePayment(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetFeePaymentHandler", err)
		return
	}
	respondData(c, payment)
}

func ListFeePaymentsHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	payments, err := models.ListFeePayments(c.Request.Context(), id)
	if err != nil {
		respondError(c, "ListFeePaymentsHandler", err)
		return
	}
	respondData(c, payments)
}

func PaginateFeePaymentsHandler(c *gin.Context) {
	var state *models.FeePaymentState
	if raw := stringQuery(c, "state"); raw != nil {
		value := models.FeePaymentState(*raw)
		state = &value
	}
	connection, err := models.PaginateFeePayment(c.Request.Context(),
		limitQuery(c), afterQuery(c),
		intQuery(c, "fee_id"), intQuery(c, "house_id"), state)
	if err != nil {
		respondError(c, "PaginateFeePaymentsHandler", err)
		return
	}
	respondData(c, connection)
}

func FeeCollectionSummaryHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	summary, err := models.FeeCollectionSummary(c.Request.Context(), id)
	if err != nil {
		respondError(c, "FeeCollectionSummaryHandler", err)
		return
	}
	respondData(c, summary)
}

/* transactions */

func CreateTransactionHandler(c *gin.Context) {
	var input models.NewTransaction
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "CreateTransactionHandler", err)
		return
	}
	transaction, err := models.CreateTransaction(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateTransactionHandler", err)
		return
	}
	respondData(c, transaction)
}

type voidTransactionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func VoidTransactionHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input voidTransactionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "VoidTransactionHandler", err)
		return
	}
	transaction, err := models.VoidTransaction(c.Request.Context(), id, input.Reason)
	if err != nil {
		respondError(c, "VoidTransactionHandler", err)
		return
	}
	respondData(c, transaction)
}

func GetTransactionHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	transaction, err := models.GetTransaction(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetTransactionHandler", err)
		return
	}
	respondData(c, transaction)
}

func LedgerBalanceHandler(c *gin.Context) {
	now := time.Now()
	from := dateQuery(c, "from", now.AddDate(-10, 0, 0))
	to := dateQuery(c, "to", now)

	balance, err := models.LedgerBalance(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, "LedgerBalanceHandler", err)
		return
	}
	respondData(c, gin.H{
		"balance":      balance,
		"period_start": from,
		"period_end":   to,
	})
}

func PaginateTransactionsHandler(c *gin.Context) {
	var txType *models.TransactionType
	if raw := stringQuery(c, "type"); raw != nil {
		value := models.TransactionType(*raw)
		txType = &value
	}
	var category *models.TransactionCategory
	if raw := stringQuery(c, "category"); raw != nil {
		value := models.TransactionCategory(*raw)
		category = &value
	}
	connection, err := models.PaginateTransaction(c.Request.Context(),
		limitQuery(c), afterQuery(c), txType, category,
		timeQueryPtr(c, "from"), timeQueryPtr(c, "to"),
		boolQuery(c, "include_voided"))
	if err != nil {
		respondError(c, "PaginateTransactionsHandler", err)
		return
	}
	respondData(c, connection)
}

/* budgets */

func CreateBudgetHandler(c *gin.Context) {
	var input models.NewBudget
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "CreateBudgetHandler", err)
		return
	}
	budget, err := models.CreateBudget(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateBudgetHandler", err)
		return
	}
	respondData(c, budget)
}

func UpdateBudgetHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewBudget
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "UpdateBudgetHandler", err)
		return
	}
	budget, err := models.UpdateBudget(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "UpdateBudgetHandler", err)
		return
	}
	respondData(c, budget)
}

func DeleteBudgetHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	budget, err := models.DeleteBudget(c.Request.Context(), id)
	if err != nil {
		respondError(c, "DeleteBudgetHandler", err)
		return
	}
	respondData(c, budget)
}

func ListBudgetsHandler(c *gin.Context) {
	year := intQuery(c, "year")
	if year == nil {
		respondBadRequest(c, "year is required")
		return
	}
	budgets, err := models.ListBudgets(c.Request.Context(), *year)
	if err != nil {
		respondError(c, "ListBudgetsHandler", err)
		return
	}
	respondData(c, budgets)
}

func BudgetExecutionHandler(c *gin.Context) {
	year := intQuery(c, "year")
	if year == nil {
		respondBadRequest(c, "year is required")
		return
	}
	lines, err := models.BudgetExecution(c.Request.Context(), *year)
	if err != nil {
		respondError(c, "BudgetExecutionHandler", err)
		return
	}
	respondData(c, lines)
}

/* reserve fund */

func GetReserveFundHandler(c *gin.Context) {
	fund, err := models.GetReserveFund(c.Request.Context())
	if err != nil {
		respondError(c, "GetReserveFundHandler", err)
		return
	}
	respondData(c, fund)
}

type fundGoalRequest struct {
	TargetGoal decimal.Decimal `json:"target_goal" binding:"required"`
}

func SetReserveFundGoalHandler(c *gin.Context) {
	var input fundGoalRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "SetReserveFundGoalHandler", err)
		return
	}
	fund, err := models.SetReserveFundGoal(c.Request.Context(), input.TargetGoal)
	if err != nil {
		respondError(c, "SetReserveFundGoalHandler", err)
		return
	}
	respondData(c, fund)
}

func RegisterFundContributionHandler(c *gin.Context) {
	var input models.NewFundMovement
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "RegisterFundContributionHandler", err)
		return
	}
	movement, err := models.RegisterFundContribution(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "RegisterFundContributionHandler", err)
		return
	}
	respondData(c, movement)
}

func RegisterFundUseHandler(c *gin.Context) {
	var input models.NewFundMovement
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "RegisterFundUseHandler", err)
		return
	}
	movement, err := models.RegisterFundUse(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "RegisterFundUseHandler", err)
		return
	}
	respondData(c, movement)
}

func ListFundMovementsHandler(c *gin.Context) {
	now := time.Now()
	from := dateQuery(c, "from", now.AddDate(-1, 0, 0))
	to := dateQuery(c, "to", now)

	movements, err := models.ListFundMovements(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, "ListFundMovementsHandler", err)
		return
	}
	respondData(c, movements)
}
