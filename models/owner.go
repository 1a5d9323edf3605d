package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/config"
	"bitbucket.org/mmdatafocus/altavista_backend/utils"
)

// Owner is a resident record: the registered owner or tenant of one or more houses.
type Owner struct {
	ID         int        `gorm:"primary_key" json:"id"`
	PropertyId string     `gorm:"index;not null" json:"property_id"`
	FirstName  string     `gorm:"size:100;not null" json:"first_name" binding:"required"`
	LastName   string     `gorm:"size:100;not null" json:"last_name" binding:"required"`
	DocumentId string     `gorm:"size:20;not null" json:"document_id" binding:"required"`
	Phone      string     `gorm:"size:20" json:"phone"`
	Email      string     `gorm:"size:100" json:"email"`
	BirthDate  *time.Time `json:"birth_date"`
	Occupation string     `gorm:"size:100" json:"occupation"`
	Notes      string     `gorm:"type:text" json:"notes"`
	IsActive   *bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Vehicles      []Vehicle      `gorm:"foreignKey:OwnerId" json:"vehicles,omitempty"`
	Pets          []Pet          `gorm:"foreignKey:OwnerId" json:"pets,omitempty"`
	FamilyMembers []FamilyMember `gorm:"foreignKey:OwnerId" json:"family_members,omitempty"`
}

type NewOwner struct {
	FirstName  string     `json:"first_name" binding:"required"`
	LastName   string     `json:"last_name" binding:"required"`
	DocumentId string     `json:"document_id" binding:"required"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email"`
	BirthDate  *time.Time `json:"birth_date"`
	Occupation string     `json:"occupation"`
	Notes      string     `json:"notes"`
}

type OwnersEdge Edge[Owner]

func (obj Owner) GetId() int {
	return obj.ID
}

func (obj Owner) GetPropertyId() string {
	return obj.PropertyId
}

type OwnersConnection struct {
	PageInfo *PageInfo     `json:"pageInfo"`
	Edges    []*OwnersEdge `json:"edges"`
}

func (obj Owner) GetCursor() string {
	return obj.LastName + obj.FirstName
}

func (obj Owner) FullName() string {
	return obj.FirstName + " " + obj.LastName
}

func (obj Owner) RemoveInstanceRedis() error {
	return utils.RemoveRedisItem[Owner](obj.ID)
}

func (obj Owner) RemoveAllRedis() error {
	return utils.RemoveRedisList[Owner](obj.PropertyId)
}

func (input *NewOwner) validate(ctx context.Context, propertyId string, id int) error {
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return errors.New("invalid phone number")
		}
	}
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return errors.New("invalid email address")
	}

	// document id is unique per property
	var count int64
	var err error
	if id == 0 {
		count, err = utils.ResourceCountWhere[Owner](ctx, propertyId,
			"document_id = ?", input.DocumentId)
	} else {
		count, err = utils.ResourceCountWhere[Owner](ctx, propertyId,
			"document_id = ? AND NOT id = ?", input.DocumentId, id)
	}
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("duplicate document id")
	}

	return nil
}

func CreateOwner(ctx context.Context, input *NewOwner) (*Owner, error) {

	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if err := input.validate(ctx, propertyId, 0); err != nil {
		return nil, err
	}

	owner := Owner{
		PropertyId: propertyId,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		DocumentId: input.DocumentId,
		Phone:      input.Phone,
		Email:      input.Email,
		BirthDate:  input.BirthDate,
		Occupation: input.Occupation,
		Notes:      input.Notes,
		IsActive:   utils.NewTrue(),
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&owner).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := RemoveRedisBoth(owner); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &owner, nil
}

func UpdateOwner(ctx context.Context, id int, input *NewOwner) (*Owner, error) {

	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}

	before, err := utils.FetchModel[Owner](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, propertyId, id); err != nil {
		return nil, err
	}

	update := Owner{
		ID:         id,
		PropertyId: propertyId,
	}

	db := config.GetDB()
	tx := db.Begin()
	err = tx.WithContext(ctx).Model(&update).Updates(map[string]interface{}{
		"FirstName":  input.FirstName,
		"LastName":   input.LastName,
		"DocumentId": input.DocumentId,
		"Phone":      input.Phone,
		"Email":      input.Email,
		"BirthDate":  input.BirthDate,
		"Occupation": input.Occupation,
		"Notes":      input.Notes,
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

	return utils.FetchModel[Owner](ctx, propertyId, id)
}

func DeleteOwner(ctx context.Context, id int) (*Owner, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}

	result, err := utils.FetchModel[Owner](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}

	// never orphan a house assignment
	count, err := utils.ResourceCountWhere[HouseOwner](ctx, propertyId,
		"owner_id = ? AND is_current = 1", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("owner is currently assigned to a house")
	}

	db := config.GetDB()
	tx := db.Begin()
	// satellites go with the owner
	if err := tx.WithContext(ctx).Where("owner_id = ?", id).Delete(&Vehicle{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Where("owner_id = ?", id).Delete(&Pet{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Where("owner_id = ?", id).Delete(&FamilyMember{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Where("owner_id = ?", id).Delete(&HouseholdStaff{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
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

func GetOwner(ctx context.Context, id int) (*Owner, error) {
	return GetResource[Owner](ctx, id, "Vehicles", "Pets", "FamilyMembers")
}

func ListAllOwners(ctx context.Context) ([]*Owner, error) {
	return ListAllResource[Owner, Owner](ctx, "last_name", "first_name")
}

func ToggleActiveOwner(ctx context.Context, id int, isActive bool) (*Owner, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	return ToggleActiveModel[Owner](ctx, propertyId, id, isActive)
}

func PaginateOwner(ctx context.Context, limit *int, after *string, keyword *string) (*OwnersConnection, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("property_id = ?", propertyId)

	if keyword != nil && *keyword != "" {
		dbCtx.Where("first_name LIKE ? OR last_name LIKE ? OR document_id LIKE ?",
			"%"+*keyword+"%", "%"+*keyword+"%", "%"+*keyword+"%")
	}

	edges, pageInfo, err := FetchPageCompositeCursor[Owner](dbCtx, *limit, after, "last_name", ">")
	if err != nil {
		return nil, err
	}
	var connection OwnersConnection
	connection.PageInfo = pageInfo
	for _, edge := range edges {
		ownersEdge := OwnersEdge(edge)
		connection.Edges = append(connection.Edges, &ownersEdge)
	}

	return &connection, err
}

/* satellites */

type Vehicle struct {
	ID         int       `gorm:"primary_key" json:"id"`
	PropertyId string    `gorm:"index;not null" json:"property_id"`
	OwnerId    int       `gorm:"index;not null" json:"owner_id" binding:"required"`
	Plate      string    `gorm:"size:10;not null" json:"plate" binding:"required"`
	Brand      string    `gorm:"size:50" json:"brand"`
	Model      string    `gorm:"size:50" json:"model"`
	Color      string    `gorm:"size:30" json:"color"`
	Kind       string    `gorm:"size:20;default:'carro'" json:"kind"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (obj Vehicle) GetPropertyId() string {
	return obj.PropertyId
}

type Pet struct {
	ID         int       `gorm:"primary_key" json:"id"`
	PropertyId string    `gorm:"index;not null" json:"property_id"`
	OwnerId    int       `gorm:"index;not null" json:"owner_id" binding:"required"`
	Name       string    `gorm:"size:50;not null" json:"name" binding:"required"`
	Species    string    `gorm:"size:30" json:"species"`
	Breed      string    `gorm:"size:50" json:"breed"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (obj Pet) GetPropertyId() string {
	return obj.PropertyId
}

type FamilyMember struct {
	ID         int        `gorm:"primary_key" json:"id"`
	PropertyId string     `gorm:"index;not null" json:"property_id"`
	OwnerId    int        `gorm:"index;not null" json:"owner_id" binding:"required"`
	FirstName  string     `gorm:"size:100;not null" json:"first_name" binding:"required"`
	LastName   string     `gorm:"size:100;not null" json:"last_name" binding:"required"`
	Kinship    string     `gorm:"size:50" json:"kinship"`
	BirthDate  *time.Time `json:"birth_date"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (obj FamilyMember) GetPropertyId() string {
	return obj.PropertyId
}

// HouseholdStaff is privately-hired help registered for gate access.
type HouseholdStaff struct {
	ID         int       `gorm:"primary_key" json:"id"`
	PropertyId string    `gorm:"index;not null" json:"property_id"`
	OwnerId    int       `gorm:"index;not null" json:"owner_id" binding:"required"`
	FirstName  string    `gorm:"size:100;not null" json:"first_name" binding:"required"`
	LastName   string    `gorm:"size:100;not null" json:"last_name" binding:"required"`
	DocumentId string    `gorm:"size:20;not null" json:"document_id" binding:"required"`
	Duty       string    `gorm:"size:100" json:"duty"`
	Phone      string    `gorm:"size:20" json:"phone"`
	IsActive   *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (obj HouseholdStaff) GetPropertyId() string {
	return obj.PropertyId
}

type NewVehicle struct {
	OwnerId int    `json:"owner_id" binding:"required"`
	Plate   string `json:"plate" binding:"required"`
	Brand   string `json:"brand"`
	Model   string `json:"model"`
	Color   string `json:"color"`
	Kind    string `json:"kind"`
}

func CreateVehicle(ctx context.Context, input *NewVehicle) (*Vehicle, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if err := utils.ValidateResourceId[Owner](ctx, propertyId, input.OwnerId); err != nil {
		return nil, errors.New("owner not found")
	}
	count, err := utils.ResourceCountWhere[Vehicle](ctx, propertyId, "plate = ?", input.Plate)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("duplicate plate")
	}

	kind := input.Kind
	if kind == "" {
		kind = "carro"
	}
	vehicle := Vehicle{
		PropertyId: propertyId,
		OwnerId:    input.OwnerId,
		Plate:      input.Plate,
		Brand:      input.Brand,
		Model:      input.Model,
		Color:      input.Color,
		Kind:       kind,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&vehicle).Error; err != nil {
		return nil, err
	}
	if err := utils.RemoveRedisItem[Owner](input.OwnerId); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func DeleteVehicle(ctx context.Context, id int) (*Vehicle, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	result, err := utils.FetchModel[Vehicle](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(&result).Error; err != nil {
		return nil, err
	}
	if err := utils.RemoveRedisItem[Owner](result.OwnerId); err != nil {
		return nil, err
	}
	return result, nil
}

type NewPet struct {
	OwnerId int    `json:"owner_id" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Species string `json:"species"`
	Breed   string `json:"breed"`
}

func CreatePet(ctx context.Context, input *NewPet) (*Pet, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if err := utils.ValidateResourceId[Owner](ctx, propertyId, input.OwnerId); err != nil {
		return nil, errors.New("owner not found")
	}
	pet := Pet{
		PropertyId: propertyId,
		OwnerId:    input.OwnerId,
		Name:       input.Name,
		Species:    input.Species,
		Breed:      input.Breed,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&pet).Error; err != nil {
		return nil, err
	}
	if err := utils.RemoveRedisItem[Owner](input.OwnerId); err != nil {
		return nil, err
	}
	return &pet, nil
}

func DeletePet(ctx context.Context, id int) (*Pet, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	result, err := utils.FetchModel[Pet](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(&result).Error; err != nil {
		return nil, err
	}
	if err := utils.RemoveRedisItem[Owner](result.OwnerId); err != nil {
		return nil, err
	}
	return result, nil
}

type NewFamilyMember struct {
	OwnerId   int        `json:"owner_id" binding:"required"`
	FirstName string     `json:"first_name" binding:"required"`
	LastName  string     `json:"last_name" binding:"required"`
	Kinship   string     `json:"kinship"`
	BirthDate *time.Time `json:"birth_date"`
}

func CreateFamilyMember(ctx context.Context, input *NewFamilyMember) (*FamilyMember, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if err := utils.ValidateResourceId[Owner](ctx, propertyId, input.OwnerId); err != nil {
		return nil, errors.New("owner not found")
	}
	member := FamilyMember{
		PropertyId: propertyId,
		OwnerId:    input.OwnerId,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Kinship:    input.Kinship,
		BirthDate:  input.BirthDate,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&member).Error; err != nil {
		return nil, err
	}
	if err := utils.RemoveRedisItem[Owner](input.OwnerId); err != nil {
		return nil, err
	}
	return &member, nil
}

func DeleteFamilyMember(ctx context.Context, id int) (*FamilyMember, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	result, err := utils.FetchModel[FamilyMember](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(&result).Error; err != nil {
		return nil, err
	}
	if err := utils.RemoveRedisItem[Owner](result.OwnerId); err != nil {
		return nil, err
	}
	return result, nil
}

type NewHouseholdStaff struct {
	OwnerId    int    `json:"owner_id" binding:"required"`
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	DocumentId string `json:"document_id" binding:"required"`
	Duty       string `json:"duty"`
	Phone      string `json:"phone"`
}

func CreateHouseholdStaff(ctx context.Context, input *NewHouseholdStaff) (*HouseholdStaff, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if err := utils.ValidateResourceId[Owner](ctx, propertyId, input.OwnerId); err != nil {
		return nil, errors.New("owner not found")
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return nil, errors.New("invalid phone number")
		}
	}
	staff := HouseholdStaff{
		PropertyId: propertyId,
		OwnerId:    input.OwnerId,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		DocumentId: input.DocumentId,
		Duty:       input.Duty,
		Phone:      input.Phone,
		IsActive:   utils.NewTrue(),
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func DeleteHouseholdStaff(ctx context.Context, id int) (*HouseholdStaff, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	result, err := utils.FetchModel[HouseholdStaff](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func ListOwnerHouseholdStaff(ctx context.Context, ownerId int) ([]*HouseholdStaff, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	var results []*HouseholdStaff
	err := db.WithContext(ctx).
		Where("property_id = ? AND owner_id = ?", propertyId, ownerId).
		Order("last_name, first_name").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
