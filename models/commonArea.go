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

// CommonArea is a shared amenity that can be reserved (salon, pool, BBQ zone...).
// Operating hours are stored as "HH:MM" in 24h local time.
type CommonArea struct {
	ID             int             `gorm:"primary_key" json:"id"`
	PropertyId     string          `gorm:"index;not null" json:"property_id"`
	Name           string          `gorm:"size:100;not null" json:"name" binding:"required"`
	Description    string          `gorm:"type:text" json:"description"`
	Capacity       int             `gorm:"default:0" json:"capacity"`
	ReservationFee decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"reservation_fee"`
	OpensAt        string          `gorm:"size:5;default:'08:00'" json:"opens_at"`
	ClosesAt       string          `gorm:"size:5;default:'22:00'" json:"closes_at"`
	RequiresFee    *bool           `gorm:"not null;default:false" json:"requires_fee"`
	IsActive       *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCommonArea struct {
	Name           string          `json:"name" binding:"required"`
	Description    string          `json:"description"`
	Capacity       int             `json:"capacity"`
	ReservationFee decimal.Decimal `json:"reservation_fee"`
	OpensAt        string          `json:"opens_at"`
	ClosesAt       string          `json:"closes_at"`
	RequiresFee    bool            `json:"requires_fee"`
}

type CommonAreasEdge Edge[CommonArea]

func (obj CommonArea) GetId() int {
	return obj.ID
}

func (obj CommonArea) GetPropertyId() string {
	return obj.PropertyId
}

type CommonAreasConnection struct {
	PageInfo *PageInfo          `json:"pageInfo"`
	Edges    []*CommonAreasEdge `json:"edges"`
}

func (obj CommonArea) GetCursor() string {
	return obj.Name
}

func (obj CommonArea) RemoveInstanceRedis() error {
	return utils.RemoveRedisItem[CommonArea](obj.ID)
}

func (obj CommonArea) RemoveAllRedis() error {
	return utils.RemoveRedisList[CommonArea](obj.PropertyId)
}

// parseClock converts "HH:MM" into minutes since midnight.
func parseClock(value string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(value, "%d:%d", &h, &m); err != nil {
		return 0, errors.New("time must be HH:MM")
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, errors.New("time must be HH:MM")
	}
	return h*60 + m, nil
}

// WithinOperatingHours reports whether [start, end] falls inside the
// area's daily window. Reservations never span days.
func (obj CommonArea) WithinOperatingHours(start, end time.Time) (bool, error) {
	opens, err := parseClock(obj.OpensAt)
	if err != nil {
		return false, err
	}
	closes, err := parseClock(obj.ClosesAt)
	if err != nil {
		return false, err
	}
	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()
	return startMin >= opens && endMin <= closes, nil
}

func (input *NewCommonArea) validate(ctx context.Context, propertyId string, id int) error {
	opens, err := parseClock(input.OpensAt)
	if err != nil {
		return errors.New("invalid opening time")
	}
	closes, err := parseClock(input.ClosesAt)
	if err != nil {
		return errors.New("invalid closing time")
	}
	if opens >= closes {
		return errors.New("opening time must be before closing time")
	}
	if input.ReservationFee.IsNegative() {
		return errors.New("reservation fee must not be negative")
	}
	if input.Capacity < 0 {
		return errors.New("capacity must not be negative")
	}

	var count int64
	if id == 0 {
		count, err = utils.ResourceCountWhere[CommonArea](ctx, propertyId,
			"name = ?", input.Name)
	} else {
		count, err = utils.ResourceCountWhere[CommonArea](ctx, propertyId,
			"name = ? AND NOT id = ?", input.Name, id)
	}
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("duplicate area name")
	}

	return nil
}

func CreateCommonArea(ctx context.Context, input *NewCommonArea) (*CommonArea, error) {

	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if input.OpensAt == "" {
		input.OpensAt = "08:00"
	}
	if input.ClosesAt == "" {
		input.ClosesAt = "22:00"
	}
	if err := input.validate(ctx, propertyId, 0); err != nil {
		return nil, err
	}

	requiresFee := input.RequiresFee
	area := CommonArea{
		PropertyId:     propertyId,
		Name:           input.Name,
		Description:    input.Description,
		Capacity:       input.Capacity,
		ReservationFee: input.ReservationFee,
		OpensAt:        input.OpensAt,
		ClosesAt:       input.ClosesAt,
		RequiresFee:    &requiresFee,
		IsActive:       utils.NewTrue(),
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&area).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := RemoveRedisBoth(area); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &area, nil
}

func UpdateCommonArea(ctx context.Context, id int, input *NewCommonArea) (*CommonArea, error) {

	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}

	before, err := utils.FetchModel[CommonArea](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	if input.OpensAt == "" {
		input.OpensAt = before.OpensAt
	}
	if input.ClosesAt == "" {
		input.ClosesAt = before.ClosesAt
	}
	if err := input.validate(ctx, propertyId, id); err != nil {
		return nil, err
	}

	update := CommonArea{
		ID:         id,
		PropertyId: propertyId,
	}

	db := config.GetDB()
	tx := db.Begin()
	err = tx.WithContext(ctx).Model(&update).Updates(map[string]interface{}{
		"Name":           input.Name,
		"Description":    input.Description,
		"Capacity":       input.Capacity,
		"ReservationFee": input.ReservationFee,
		"OpensAt":        input.OpensAt,
		"ClosesAt":       input.ClosesAt,
		"RequiresFee":    input.RequiresFee,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := RemoveRedisBoth(*before); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return utils.FetchModel[CommonArea](ctx, propertyId, id)
}

func DeleteCommonArea(ctx context.Context, id int) (*CommonArea, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}

	result, err := utils.FetchModel[CommonArea](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}

	count, err := utils.ResourceCountWhere[Reservation](ctx, propertyId,
		"common_area_id = ? AND state IN ?", id,
		[]ReservationState{ReservationStatePending, ReservationStateConfirmed})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("area has active reservations")
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Delete(&result).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := RemoveRedisBoth(*result); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return result, nil
}

func GetCommonArea(ctx context.Context, id int) (*CommonArea, error) {
	return GetResource[CommonArea](ctx, id)
}

func ListAllCommonAreas(ctx context.Context) ([]*CommonArea, error) {
	return ListAllResource[CommonArea, CommonArea](ctx, "name")
}

func ToggleActiveCommonArea(ctx context.Context, id int, isActive bool) (*CommonArea, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	return ToggleActiveModel[CommonArea](ctx, propertyId, id, isActive)
}

// IsAreaAvailable reports whether the slot [start, end) is free of
// confirmed reservations on the area.
func IsAreaAvailable(ctx context.Context, areaId int, start, end time.Time) (bool, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return false, errors.New("property id is required")
	}
	count, err := utils.ResourceCountWhere[Reservation](ctx, propertyId,
		"common_area_id = ? AND state = ? AND start_time < ? AND end_time > ?",
		areaId, ReservationStateConfirmed, end, start)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func PaginateCommonArea(ctx context.Context, limit *int, after *string) (*CommonAreasConnection, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("property_id = ?", propertyId)

	edges, pageInfo, err := FetchPageCompositeCursor[CommonArea](dbCtx, *limit, after, "name", ">")
	if err != nil {
		return nil, err
	}
	var connection CommonAreasConnection
	connection.PageInfo = pageInfo
	for _, edge := range edges {
		commonAreasEdge := CommonAreasEdge(edge)
		connection.Edges = append(connection.Edges, &commonAreasEdge)
	}

	return &connection, err
}
