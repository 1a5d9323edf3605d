package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/config"
	"bitbucket.org/mmdatafocus/altavista_backend/utils"
	"github.com/shopspring/decimal"
)

type House struct {
	ID                   int             `gorm:"primary_key" json:"id"`
	PropertyId           string          `gorm:"index;not null;uniqueIndex:idx_house_number" json:"property_id"`
	Block                string          `gorm:"size:1;not null;uniqueIndex:idx_house_number" json:"block" binding:"required"`
	Number               string          `gorm:"size:10;not null;uniqueIndex:idx_house_number" json:"number" binding:"required"`
	OwnershipCoefficient decimal.Decimal `gorm:"type:decimal(8,6);not null" json:"ownership_coefficient"`
	AreaM2               decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"area_m2"`
	Floors               int             `gorm:"default:1" json:"floors"`
	Bedrooms             int             `gorm:"default:0" json:"bedrooms"`
	Occupancy            OccupancyState  `gorm:"type:enum('ocupada','desocupada','en_venta','en_arriendo');default:'desocupada'" json:"occupancy"`
	Notes                string          `gorm:"type:text" json:"notes"`
	IsActive             *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt            time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewHouse struct {
	Block                string          `json:"block" binding:"required"`
	Number               string          `json:"number" binding:"required"`
	OwnershipCoefficient decimal.Decimal `json:"ownership_coefficient"`
	AreaM2               decimal.Decimal `json:"area_m2"`
	Floors               int             `json:"floors"`
	Bedrooms             int             `json:"bedrooms"`
	Occupancy            OccupancyState  `json:"occupancy"`
	Notes                string          `json:"notes"`
}

type HousesEdge Edge[House]

func (obj House) GetId() int {
	return obj.ID
}

func (obj House) GetPropertyId() string {
	return obj.PropertyId
}

type HousesConnection struct {
	PageInfo *PageInfo     `json:"pageInfo"`
	Edges    []*HousesEdge `json:"edges"`
}

// implements Cursor; houses paginate by block+number
func (obj House) GetCursor() string {
	return obj.Block + obj.Number
}

// Code is the display identifier, e.g. "B-12".
func (obj House) Code() string {
	return obj.Block + "-" + obj.Number
}

func (obj House) RemoveInstanceRedis() error {
	return utils.RemoveRedisItem[House](obj.ID)
}

func (obj House) RemoveAllRedis() error {
	return utils.RemoveRedisList[House](obj.PropertyId)
}

// ValidateHouseCoefficient enforces the ownership coefficient domain: 0 < c <= 1.
func ValidateHouseCoefficient(c decimal.Decimal) error {
	if c.LessThanOrEqual(decimal.Zero) {
		return errors.New("ownership coefficient must be greater than zero")
	}
	if c.GreaterThan(decimal.NewFromInt(1)) {
		return errors.New("ownership coefficient must not exceed 1")
	}
	return nil
}

// validate input for both create & update. (id = 0 for create)
func (input *NewHouse) validate(ctx context.Context, propertyId string, id int) error {
	if !IsValidBlock(input.Block) {
		return errors.New("block must be one of A, B, C, D")
	}
	if err := ValidateHouseCoefficient(input.OwnershipCoefficient); err != nil {
		return err
	}
	if input.Occupancy != "" && !input.Occupancy.IsValid() {
		return errors.New("invalid occupancy state")
	}

	// block+number must be unique within the property
	var count int64
	var err error
	if id == 0 {
		count, err = utils.ResourceCountWhere[House](ctx, propertyId,
			"block = ? AND number = ?", input.Block, input.Number)
	} else {
		count, err = utils.ResourceCountWhere[House](ctx, propertyId,
			"block = ? AND number = ? AND NOT id = ?", input.Block, input.Number, id)
	}
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("duplicate house number in block")
	}

	return nil
}

func CreateHouse(ctx context.Context, input *NewHouse) (*House, error) {

	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if err := input.validate(ctx, propertyId, 0); err != nil {
		return nil, err
	}

	occupancy := input.Occupancy
	if occupancy == "" {
		occupancy = OccupancyStateVacant
	}

	house := House{
		PropertyId:           propertyId,
		Block:                input.Block,
		Number:               input.Number,
		OwnershipCoefficient: input.OwnershipCoefficient,
		AreaM2:               input.AreaM2,
		Floors:               input.Floors,
		Bedrooms:             input.Bedrooms,
		Occupancy:            occupancy,
		Notes:                input.Notes,
		IsActive:             utils.NewTrue(),
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&house).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := RemoveRedisBoth(house); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &house, nil
}

func UpdateHouse(ctx context.Context, id int, input *NewHouse) (*House, error) {

	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}

	// id exists
	before, err := utils.FetchModel[House](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, propertyId, id); err != nil {
		return nil, err
	}

	update := House{
		ID:         id,
		PropertyId: propertyId,
	}

	db := config.GetDB()
	tx := db.Begin()
	err = tx.WithContext(ctx).Model(&update).Updates(map[string]interface{}{
		"Block":                input.Block,
		"Number":               input.Number,
		"OwnershipCoefficient": input.OwnershipCoefficient,
		"AreaM2":               input.AreaM2,
		"Floors":               input.Floors,
		"Bedrooms":             input.Bedrooms,
		"Occupancy":            input.Occupancy,
		"Notes":                input.Notes,
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

	return utils.FetchModel[House](ctx, propertyId, id)
}

func DeleteHouse(ctx context.Context, id int) (*House, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}

	result, err := utils.FetchModel[House](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}

	// houses with fee payments or reservations keep history; block deletion
	count, err := utils.ResourceCountWhere[FeePayment](ctx, propertyId, "house_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("house has registered payments")
	}
	count, err = utils.ResourceCountWhere[Reservation](ctx, propertyId, "house_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("house has reservations")
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

func GetHouse(ctx context.Context, id int) (*House, error) {
	return GetResource[House](ctx, id)
}

func ListAllHouses(ctx context.Context) ([]*House, error) {
	return ListAllResource[House, House](ctx, "block", "number")
}

func ToggleActiveHouse(ctx context.Context, id int, isActive bool) (*House, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	return ToggleActiveModel[House](ctx, propertyId, id, isActive)
}

func PaginateHouse(ctx context.Context, limit *int, after *string, block *string, occupancy *OccupancyState) (*HousesConnection, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("property_id = ?", propertyId)

	if block != nil && *block != "" {
		dbCtx.Where("block = ?", *block)
	}
	if occupancy != nil && *occupancy != "" {
		dbCtx.Where("occupancy = ?", *occupancy)
	}

	edges, pageInfo, err := FetchPageCompositeCursor[House](dbCtx, *limit, after, "block", ">")
	if err != nil {
		return nil, err
	}
	var connection HousesConnection
	connection.PageInfo = pageInfo
	for _, edge := range edges {
		housesEdge := HousesEdge(edge)
		connection.Edges = append(connection.Edges, &housesEdge)
	}

	return &connection, err
}

/* ownership history */

// HouseOwner links an owner (or tenant) to a house for a period.
// Only one current "propietario" row per house.
type HouseOwner struct {
	ID         int           `gorm:"primary_key" json:"id"`
	PropertyId string        `gorm:"index;not null" json:"property_id"`
	HouseId    int           `gorm:"index;not null" json:"house_id" binding:"required"`
	OwnerId    int           `gorm:"index;not null" json:"owner_id" binding:"required"`
	Relation   OwnerRelation `gorm:"type:enum('propietario','arrendatario');default:'propietario'" json:"relation"`
	StartDate  time.Time     `gorm:"not null" json:"start_date" binding:"required"`
	EndDate    *time.Time    `json:"end_date"`
	IsCurrent  *bool         `gorm:"not null;default:true" json:"is_current"`
	Owner      *Owner        `gorm:"foreignKey:OwnerId" json:"owner,omitempty"`
	CreatedAt  time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (obj HouseOwner) GetPropertyId() string {
	return obj.PropertyId
}

type NewHouseOwner struct {
	HouseId   int           `json:"house_id" binding:"required"`
	OwnerId   int           `json:"owner_id" binding:"required"`
	Relation  OwnerRelation `json:"relation"`
	StartDate time.Time     `json:"start_date" binding:"required"`
}

// AssignHouseOwner closes the previous current row for the same relation and opens a new one.
func AssignHouseOwner(ctx context.Context, input *NewHouseOwner) (*HouseOwner, error) {
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
	relation := input.Relation
	if relation == "" {
		relation = OwnerRelationOwner
	}
	if !relation.IsValid() {
		return nil, errors.New("invalid relation")
	}

	db := config.GetDB()
	tx := db.Begin()

	// close the previous current assignment of the same relation
	now := time.Now()
	err := tx.WithContext(ctx).Model(&HouseOwner{}).
		Where("property_id = ? AND house_id = ? AND relation = ? AND is_current = 1", propertyId, input.HouseId, relation).
		Updates(map[string]interface{}{
			"IsCurrent": false,
			"EndDate":   &now,
		}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	assignment := HouseOwner{
		PropertyId: propertyId,
		HouseId:    input.HouseId,
		OwnerId:    input.OwnerId,
		Relation:   relation,
		StartDate:  input.StartDate,
		IsCurrent:  utils.NewTrue(),
	}
	if err := tx.WithContext(ctx).Create(&assignment).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// occupying a house marks it occupied
	if err := tx.WithContext(ctx).Model(&House{ID: input.HouseId, PropertyId: propertyId}).
		UpdateColumn("Occupancy", OccupancyStateOccupied).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := RemoveRedisBoth(House{ID: input.HouseId, PropertyId: propertyId}); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ReleaseHouseOwner ends a current assignment.
func ReleaseHouseOwner(ctx context.Context, id int, endDate time.Time) (*HouseOwner, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}

	assignment, err := utils.FetchModel[HouseOwner](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	if assignment.IsCurrent == nil || !*assignment.IsCurrent {
		return nil, errors.New("assignment is not current")
	}
	if endDate.Before(assignment.StartDate) {
		return nil, errors.New("end date is before start date")
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(assignment).Updates(map[string]interface{}{
		"IsCurrent": false,
		"EndDate":   &endDate,
	}).Error
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

// ListHouseOwners returns the full assignment history for a house.
func ListHouseOwners(ctx context.Context, houseId int) ([]*HouseOwner, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	var results []*HouseOwner
	err := db.WithContext(ctx).
		Where("property_id = ? AND house_id = ?", propertyId, houseId).
		Order("start_date DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// CurrentHouseOwner returns the current "propietario" assignment, if any.
func CurrentHouseOwner(ctx context.Context, houseId int) (*HouseOwner, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	var result HouseOwner
	err := db.WithContext(ctx).
		Where("property_id = ? AND house_id = ? AND relation = ? AND is_current = 1",
			propertyId, houseId, OwnerRelationOwner).
		First(&result).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &result, nil
}

// ListHouseResidents returns the current assignments of a house with the
// people living there: owners or tenants plus their family members,
// vehicles and pets.
func ListHouseResidents(ctx context.Context, houseId int) ([]*HouseOwner, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if err := utils.ValidateResourceId[House](ctx, propertyId, houseId); err != nil {
		return nil, errors.New("house not found")
	}
	db := config.GetDB()
	var results []*HouseOwner
	err := db.WithContext(ctx).
		Where("property_id = ? AND house_id = ? AND is_current = 1", propertyId, houseId).
		Preload("Owner").
		Preload("Owner.FamilyMembers").
		Preload("Owner.Vehicles").
		Preload("Owner.Pets").
		Order("relation").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
