package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/config"
	"bitbucket.org/mmdatafocus/altavista_backend/utils"
)

// Provider is an external service or goods supplier.
type Provider struct {
	ID            int           `gorm:"primary_key" json:"id"`
	PropertyId    string        `gorm:"index;not null" json:"property_id"`
	Name          string        `gorm:"size:255;not null" json:"name" binding:"required"`
	TaxId         string        `gorm:"size:20;not null" json:"tax_id" binding:"required"`
	ContactPerson string        `gorm:"size:100" json:"contact_person"`
	Phone         string        `gorm:"size:20" json:"phone"`
	Email         string        `gorm:"size:100" json:"email"`
	Address       string        `gorm:"size:255" json:"address"`
	ServiceType   string        `gorm:"size:100" json:"service_type"`
	State         ProviderState `gorm:"type:enum('activo','inactivo');default:'activo'" json:"state"`
	Notes         string        `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewProvider struct {
	Name          string `json:"name" binding:"required"`
	TaxId         string `json:"tax_id" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	ServiceType   string `json:"service_type"`
	Notes         string `json:"notes"`
}

type ProvidersEdge Edge[Provider]

func (obj Provider) GetId() int {
	return obj.ID
}

func (obj Provider) GetPropertyId() string {
	return obj.PropertyId
}

type ProvidersConnection struct {
	PageInfo *PageInfo        `json:"pageInfo"`
	Edges    []*ProvidersEdge `json:"edges"`
}

func (obj Provider) GetCursor() string {
	return obj.Name
}

func (obj Provider) RemoveInstanceRedis() error {
	return utils.RemoveRedisItem[Provider](obj.ID)
}

func (obj Provider) RemoveAllRedis() error {
	return utils.RemoveRedisList[Provider](obj.PropertyId)
}

func (input *NewProvider) validate(ctx context.Context, propertyId string, id int) error {
	if !utils.IsValidTaxId(input.TaxId) {
		return errors.New("tax id must contain only digits and dashes")
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return errors.New("invalid phone number")
		}
	}
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return errors.New("invalid email address")
	}

	var count int64
	var err error
	if id == 0 {
		count, err = utils.ResourceCountWhere[Provider](ctx, propertyId,
			"tax_id = ?", input.TaxId)
	} else {
		count, err = utils.ResourceCountWhere[Provider](ctx, propertyId,
			"tax_id = ? AND NOT id = ?", input.TaxId, id)
	}
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("duplicate tax id")
	}

	return nil
}

func CreateProvider(ctx context.Context, input *NewProvider) (*Provider, error) {

	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if err := input.validate(ctx, propertyId, 0); err != nil {
		return nil, err
	}

	provider := Provider{
		PropertyId:    propertyId,
		Name:          input.Name,
		TaxId:         input.TaxId,
		ContactPerson: input.ContactPerson,
		Phone:         input.Phone,
		Email:         input.Email,
		Address:       input.Address,
		ServiceType:   input.ServiceType,
		State:         ProviderStateActive,
		Notes:         input.Notes,
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&provider).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := RemoveRedisBoth(provider); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &provider, nil
}

func UpdateProvider(ctx context.Context, id int, input *NewProvider) (*Provider, error) {

	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}

	before, err := utils.FetchModel[Provider](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, propertyId, id); err != nil {
		return nil, err
	}

	update := Provider{
		ID:         id,
		PropertyId: propertyId,
	}

	db := config.GetDB()
	tx := db.Begin()
	err = tx.WithContext(ctx).Model(&update).Updates(map[string]interface{}{
		"Name":          input.Name,
		"TaxId":         input.TaxId,
		"ContactPerson": input.ContactPerson,
		"Phone":         input.Phone,
		"Email":         input.Email,
		"Address":       input.Address,
		"ServiceType":   input.ServiceType,
		"Notes":         input.Notes,
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

	return utils.FetchModel[Provider](ctx, propertyId, id)
}

func DeleteProvider(ctx context.Context, id int) (*Provider, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}

	result, err := utils.FetchModel[Provider](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}

	count, err := utils.ResourceCountWhere[MaintenanceTask](ctx, propertyId, "provider_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("provider has maintenance tasks")
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

func GetProvider(ctx context.Context, id int) (*Provider, error) {
	return GetResource[Provider](ctx, id)
}

func ListAllProviders(ctx context.Context) ([]*Provider, error) {
	return ListAllResource[Provider, Provider](ctx, "name")
}

// ToggleProviderState flips activo/inactivo.
func ToggleProviderState(ctx context.Context, id int) (*Provider, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}

	provider, err := utils.FetchModel[Provider](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}

	next := ProviderStateActive
	if provider.State == ProviderStateActive {
		next = ProviderStateInactive
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Model(provider).UpdateColumn("State", next).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := RemoveRedisBoth(*provider); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	provider.State = next
	return provider, nil
}

func PaginateProvider(ctx context.Context, limit *int, after *string, state *ProviderState, keyword *string) (*ProvidersConnection, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("property_id = ?", propertyId)

	if state != nil && *state != "" {
		dbCtx.Where("state = ?", *state)
	}
	if keyword != nil && *keyword != "" {
		dbCtx.Where("name LIKE ? OR service_type LIKE ?", "%"+*keyword+"%", "%"+*keyword+"%")
	}

	edges, pageInfo, err := FetchPageCompositeCursor[Provider](dbCtx, *limit, after, "name", ">")
	if err != nil {
		return nil, err
	}
	var connection ProvidersConnection
	connection.PageInfo = pageInfo
	for _, edge := range edges {
		providersEdge := ProvidersEdge(edge)
		connection.Edges = append(connection.Edges, &providersEdge)
	}

	return &connection, err
}
