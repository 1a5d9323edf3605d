package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/config"
	"bitbucket.org/mmdatafocus/altavista_backend/utils"
	"github.com/shopspring/decimal"
)

// ReservationPolicy limits how owners may book a common area.
// One policy row per property; defaults apply when absent.
type ReservationPolicy struct {
	ID                  int       `gorm:"primary_key" json:"id"`
	PropertyId          string    `gorm:"uniqueIndex;not null" json:"property_id"`
	MinAnticipationDays int       `gorm:"default:1" json:"min_anticipation_days"`
	MaxAnticipationDays int       `gorm:"default:30" json:"max_anticipation_days"`
	MaxDurationHours    int       `gorm:"default:8" json:"max_duration_hours"`
	MaxPerOwnerPerWeek  int       `gorm:"default:2" json:"max_per_owner_per_week"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (obj ReservationPolicy) GetPropertyId() string {
	return obj.PropertyId
}

func defaultReservationPolicy(propertyId string) *ReservationPolicy {
	return &ReservationPolicy{
		PropertyId:          propertyId,
		MinAnticipationDays: 1,
		MaxAnticipationDays: 30,
		MaxDurationHours:    8,
		MaxPerOwnerPerWeek:  2,
	}
}

// GetReservationPolicy returns the property's policy, or defaults.
func GetReservationPolicy(ctx context.Context) (*ReservationPolicy, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	var policy ReservationPolicy
	err := db.WithContext(ctx).Where("property_id = ?", propertyId).First(&policy).Error
	if err != nil {
		return defaultReservationPolicy(propertyId), nil
	}
	return &policy, nil
}

type NewReservationPolicy struct {
	MinAnticipationDays int `json:"min_anticipation_days"`
	MaxAnticipationDays int `json:"max_anticipation_days"`
	MaxDurationHours    int `json:"max_duration_hours"`
	MaxPerOwnerPerWeek  int `json:"max_per_owner_per_week"`
}

// SetReservationPolicy creates or replaces the property's policy.
func SetReservationPolicy(ctx context.Context, input *NewReservationPolicy) (*ReservationPolicy, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if input.MinAnticipationDays < 0 || input.MaxAnticipationDays < input.MinAnticipationDays {
		return nil, errors.New("invalid anticipation window")
	}
	if input.MaxDurationHours <= 0 || input.MaxPerOwnerPerWeek <= 0 {
		return nil, errors.New("limits must be positive")
	}

	db := config.GetDB()
	var policy ReservationPolicy
	err := db.WithContext(ctx).Where("property_id = ?", propertyId).First(&policy).Error
	if err != nil {
		policy = ReservationPolicy{
			PropertyId:          propertyId,
			MinAnticipationDays: input.MinAnticipationDays,
			MaxAnticipationDays: input.MaxAnticipationDays,
			MaxDurationHours:    input.MaxDurationHours,
			MaxPerOwnerPerWeek:  input.MaxPerOwnerPerWeek,
		}
		if err := db.WithContext(ctx).Create(&policy).Error; err != nil {
			return nil, err
		}
		return &policy, nil
	}

	err = db.WithContext(ctx).Model(&policy).Updates(map[string]interface{}{
		"MinAnticipationDays": input.MinAnticipationDays,
		"MaxAnticipationDays": input.MaxAnticipationDays,
		"MaxDurationHours":    input.MaxDurationHours,
		"MaxPerOwnerPerWeek":  input.MaxPerOwnerPerWeek,
	}).Error
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

// Reservation books a common area slot for an owner's house.
type Reservation struct {
	ID           int                     `gorm:"primary_key" json:"id"`
	PropertyId   string                  `gorm:"index;not null" json:"property_id"`
	CommonAreaId int                     `gorm:"index;not null" json:"common_area_id" binding:"required"`
	HouseId      int                     `gorm:"index;not null" json:"house_id" binding:"required"`
	OwnerId      int                     `gorm:"index;not null" json:"owner_id" binding:"required"`
	StartTime    time.Time               `gorm:"index;not null" json:"start_time" binding:"required"`
	EndTime      time.Time               `gorm:"not null" json:"end_time" binding:"required"`
	Attendees    int                     `gorm:"default:0" json:"attendees"`
	State        ReservationState        `gorm:"type:enum('pendiente','confirmada','cancelada','completada','no_asistio');default:'pendiente'" json:"state"`
	PaymentState ReservationPaymentState `gorm:"type:enum('pendiente','pagado','exento');default:'pendiente'" json:"payment_state"`
	Fee          decimal.Decimal         `gorm:"type:decimal(12,2);default:0" json:"fee"`
	Purpose      string                  `gorm:"size:255" json:"purpose"`
	Notes        string                  `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time               `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time               `gorm:"autoUpdateTime" json:"updated_at"`

	CommonArea *CommonArea `gorm:"foreignKey:CommonAreaId" json:"common_area,omitempty"`
}

type NewReservation struct {
	CommonAreaId int       `json:"common_area_id" binding:"required"`
	HouseId      int       `json:"house_id" binding:"required"`
	OwnerId      int       `json:"owner_id" binding:"required"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	EndTime      time.Time `json:"end_time" binding:"required"`
	Attendees    int       `json:"attendees"`
	Purpose      string    `json:"purpose"`
	Notes        string    `json:"notes"`
}

type ReservationsEdge Edge[Reservation]

func (obj Reservation) GetId() int {
	return obj.ID
}

func (obj Reservation) GetPropertyId() string {
	return obj.PropertyId
}

type ReservationsConnection struct {
	PageInfo *PageInfo           `json:"pageInfo"`
	Edges    []*ReservationsEdge `json:"edges"`
}

func (obj Reservation) GetCursor() string {
	return obj.StartTime.Format(time.RFC3339)
}

// Overlaps reports whether two half-open intervals [start, end) intersect.
func (obj Reservation) Overlaps(start, end time.Time) bool {
	return obj.StartTime.Before(end) && obj.EndTime.After(start)
}

func (input *NewReservation) validate(ctx context.Context, propertyId string, area *CommonArea, policy *ReservationPolicy, now time.Time) error {
	if !input.EndTime.After(input.StartTime) {
		return errors.New("end time must be after start time")
	}
	startDay := time.Date(input.StartTime.Year(), input.StartTime.Month(), input.StartTime.Day(), 0, 0, 0, 0, input.StartTime.Location())
	endDay := time.Date(input.EndTime.Year(), input.EndTime.Month(), input.EndTime.Day(), 0, 0, 0, 0, input.EndTime.Location())
	if !startDay.Equal(endDay) {
		return errors.New("reservation must not span days")
	}

	if area.IsActive != nil && !*area.IsActive {
		return errors.New("area is not active")
	}
	ok, err := area.WithinOperatingHours(input.StartTime, input.EndTime)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("outside operating hours")
	}
	if area.Capacity > 0 && input.Attendees > area.Capacity {
		return errors.New("attendees exceed area capacity")
	}

	// policy limits
	anticipation := input.StartTime.Sub(now)
	if anticipation < time.Duration(policy.MinAnticipationDays)*24*time.Hour {
		return errors.New("reservation is too soon")
	}
	if anticipation > time.Duration(policy.MaxAnticipationDays)*24*time.Hour {
		return errors.New("reservation is too far in advance")
	}
	if input.EndTime.Sub(input.StartTime) > time.Duration(policy.MaxDurationHours)*time.Hour {
		return errors.New("reservation exceeds maximum duration")
	}

	// weekly quota counts pending and confirmed reservations
	weekStart := input.StartTime.AddDate(0, 0, -int((input.StartTime.Weekday()+6)%7))
	weekStart = time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, weekStart.Location())
	weekEnd := weekStart.AddDate(0, 0, 7)
	count, err := utils.ResourceCountWhere[Reservation](ctx, propertyId,
		"owner_id = ? AND state IN ? AND start_time >= ? AND start_time < ?",
		input.OwnerId, []ReservationState{ReservationStatePending, ReservationStateConfirmed},
		weekStart, weekEnd)
	if err != nil {
		return err
	}
	if count >= int64(policy.MaxPerOwnerPerWeek) {
		return errors.New("weekly reservation limit reached")
	}

	return nil
}

// CreateReservation books a slot. Overlap checks run under a redis lock
// so two concurrent requests cannot both pass.
func CreateReservation(ctx context.Context, input *NewReservation) (*Reservation, error) {

	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}

	if err := utils.ValidateResourceId[House](ctx, propertyId, input.HouseId); err != nil {
		return nil, errors.New("house not found")
	}
	if err := utils.ValidateResourceId[Owner](ctx, propertyId, input.OwnerId); err != nil {
		return nil, errors.New("owner not found")
	}
	area, err := utils.FetchModel[CommonArea](ctx, propertyId, input.CommonAreaId)
	if err != nil {
		return nil, errors.New("common area not found")
	}
	policy, err := GetReservationPolicy(ctx)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, propertyId, area, policy, time.Now()); err != nil {
		return nil, err
	}

	lock, err := utils.PropertyLock(ctx, propertyId, "Reservation", "models", "CreateReservation")
	if err != nil {
		return nil, err
	}
	defer lock.Release(ctx)

	available, err := IsAreaAvailable(ctx, input.CommonAreaId, input.StartTime, input.EndTime)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, errors.New("area is already reserved for that slot")
	}

	fee := decimal.Zero
	paymentState := ReservationPaymentExempt
	if area.RequiresFee != nil && *area.RequiresFee {
		fee = area.ReservationFee
		paymentState = ReservationPaymentPending
	}

	reservation := Reservation{
		PropertyId:   propertyId,
		CommonAreaId: input.CommonAreaId,
		HouseId:      input.HouseId,
		OwnerId:      input.OwnerId,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
		Attendees:    input.Attendees,
		State:        ReservationStatePending,
		PaymentState: paymentState,
		Fee:          fee,
		Purpose:      input.Purpose,
		Notes:        input.Notes,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// canConfirm gates the confirm transition: only the state matters, an
// unpaid fee does not block confirmation.
func (obj Reservation) canConfirm() error {
	if obj.State != ReservationStatePending {
		return errors.New("only pending reservations can be confirmed")
	}
	return nil
}

// ConfirmReservation moves pendiente -> confirmada, re-checking overlap.
func ConfirmReservation(ctx context.Context, id int) (*Reservation, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}

	reservation, err := utils.FetchModel[Reservation](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	if err := reservation.canConfirm(); err != nil {
		return nil, err
	}

	lock, err := utils.PropertyLock(ctx, propertyId, "Reservation", "models", "ConfirmReservation")
	if err != nil {
		return nil, err
	}
	defer lock.Release(ctx)

	// another reservation may have been confirmed for the slot meanwhile
	count, err := utils.ResourceCountWhere[Reservation](ctx, propertyId,
		"common_area_id = ? AND state = ? AND start_time < ? AND end_time > ? AND NOT id = ?",
		reservation.CommonAreaId, ReservationStateConfirmed,
		reservation.EndTime, reservation.StartTime, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("area is already reserved for that slot")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(reservation).
		UpdateColumn("State", ReservationStateConfirmed).Error; err != nil {
		return nil, err
	}
	reservation.State = ReservationStateConfirmed
	return reservation, nil
}

// CancelReservation cancels a pending or confirmed reservation before it starts.
func CancelReservation(ctx context.Context, id int, reason string) (*Reservation, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}

	reservation, err := utils.FetchModel[Reservation](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	if reservation.State != ReservationStatePending && reservation.State != ReservationStateConfirmed {
		return nil, errors.New("reservation cannot be cancelled")
	}
	if time.Now().After(reservation.StartTime) {
		return nil, errors.New("reservation already started")
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(reservation).Updates(map[string]interface{}{
		"State": ReservationStateCancelled,
		"Notes": utils.NilIfEmpty(reason),
	}).Error
	if err != nil {
		return nil, err
	}
	reservation.State = ReservationStateCancelled
	return reservation, nil
}

// CompleteReservation closes a confirmed reservation after it ended.
func CompleteReservation(ctx context.Context, id int) (*Reservation, error) {
	return closeReservation(ctx, id, ReservationStateCompleted)
}

// MarkReservationNoShow flags a confirmed reservation that was never used.
func MarkReservationNoShow(ctx context.Context, id int) (*Reservation, error) {
	return closeReservation(ctx, id, ReservationStateNoShow)
}

func closeReservation(ctx context.Context, id int, next ReservationState) (*Reservation, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}

	reservation, err := utils.FetchModel[Reservation](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	if reservation.State != ReservationStateConfirmed {
		return nil, errors.New("only confirmed reservations can be closed")
	}
	if time.Now().Before(reservation.EndTime) {
		return nil, errors.New("reservation has not ended yet")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(reservation).UpdateColumn("State", next).Error; err != nil {
		return nil, err
	}
	reservation.State = next
	return reservation, nil
}

// RegisterReservationPayment records payment of the area fee and posts
// the income to the ledger in the same transaction.
func RegisterReservationPayment(ctx context.Context, id int, method PaymentMethod, reference string) (*Reservation, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}

	reservation, err := utils.FetchModel[Reservation](ctx, propertyId, id, "CommonArea")
	if err != nil {
		return nil, err
	}
	if reservation.PaymentState != ReservationPaymentPending {
		return nil, errors.New("reservation has no pending fee")
	}
	if method != "" && !method.IsValid() {
		return nil, errors.New("invalid payment method")
	}

	areaName := ""
	if reservation.CommonArea != nil {
		areaName = reservation.CommonArea.Name
	}

	db := config.GetDB()
	tx := db.Begin()
	err = tx.WithContext(ctx).Model(reservation).
		UpdateColumn("PaymentState", ReservationPaymentPaid).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	_, err = PostLedgerEntryTx(ctx, tx, &LedgerEntryInput{
		PropertyId:    propertyId,
		Type:          TransactionTypeIncome,
		Category:      CategoryAreaReservation,
		Amount:        reservation.Fee,
		Description:   "Reserva " + areaName,
		EntryDate:     time.Now(),
		ReferenceType: "reservation",
		ReferenceId:   reservation.ID,
		Method:        method,
		Reference:     reference,
	})
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	reservation.PaymentState = ReservationPaymentPaid
	return reservation, nil
}

func GetReservation(ctx context.Context, id int) (*Reservation, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	return utils.FetchModel[Reservation](ctx, propertyId, id, "CommonArea")
}

// ListAreaReservations returns reservations for an area in [from, to].
func ListAreaReservations(ctx context.Context, areaId int, from, to time.Time) ([]*Reservation, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	var results []*Reservation
	err := db.WithContext(ctx).
		Where("property_id = ? AND common_area_id = ? AND start_time >= ? AND start_time < ?",
			propertyId, areaId, from, to).
		Order("start_time").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func PaginateReservation(ctx context.Context, limit *int, after *string,
	areaId *int, houseId *int, state *ReservationState) (*ReservationsConnection, error) {

	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("property_id = ?", propertyId)

	if areaId != nil && *areaId != 0 {
		dbCtx.Where("common_area_id = ?", *areaId)
	}
	if houseId != nil && *houseId != 0 {
		dbCtx.Where("house_id = ?", *houseId)
	}
	if state != nil && *state != "" {
		dbCtx.Where("state = ?", *state)
	}

	edges, pageInfo, err := FetchPageCompositeCursor[Reservation](dbCtx, *limit, after, "start_time", "<")
	if err != nil {
		return nil, err
	}
	var connection ReservationsConnection
	connection.PageInfo = pageInfo
	for _, edge := range edges {
		reservationsEdge := ReservationsEdge(edge)
		connection.Edges = append(connection.Edges, &reservationsEdge)
	}

	return &connection, err
}
