package models

import (
	"context"
	"errors"
	"strconv"
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/config"
	"bitbucket.org/mmdatafocus/altavista_backend/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Property is the horizontal-property (condominium) record.
// Its ID is the tenant key carried as property_id on every other table.
type Property struct {
	ID           string          `gorm:"primary_key;size:36" json:"id"`
	Name         string          `gorm:"size:255;not null" json:"name" binding:"required"`
	TaxId        string          `gorm:"size:20;not null" json:"tax_id" binding:"required"`
	Address      string          `gorm:"size:255;not null" json:"address" binding:"required"`
	City         string          `gorm:"size:100" json:"city"`
	Phone        string          `gorm:"size:20" json:"phone"`
	Email        string          `gorm:"size:100" json:"email"`
	LegalRep     string          `gorm:"size:255" json:"legal_rep"`
	TotalHouses  int             `gorm:"default:0" json:"total_houses"`
	TotalAreaM2  decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"total_area_m2"`
	LicenseNo    string          `gorm:"size:100" json:"license_no"`
	FoundedAt    *time.Time      `json:"founded_at"`
	IsActive     *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type NewProperty struct {
	Name        string          `json:"name" binding:"required"`
	TaxId       string          `json:"tax_id" binding:"required"`
	Address     string          `json:"address" binding:"required"`
	City        string          `json:"city"`
	Phone       string          `json:"phone"`
	Email       string          `json:"email"`
	LegalRep    string          `json:"legal_rep"`
	TotalHouses int             `json:"total_houses"`
	TotalAreaM2 decimal.Decimal `json:"total_area_m2"`
	LicenseNo   string          `json:"license_no"`
	FoundedAt   *time.Time      `json:"founded_at"`
}

func (input *NewProperty) validate() error {
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
	return nil
}

func CreateProperty(ctx context.Context, input *NewProperty) (*Property, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	property := Property{
		Name:        input.Name,
		TaxId:       input.TaxId,
		Address:     input.Address,
		City:        input.City,
		Phone:       input.Phone,
		Email:       input.Email,
		LegalRep:    input.LegalRep,
		TotalHouses: input.TotalHouses,
		TotalAreaM2: input.TotalAreaM2,
		LicenseNo:   input.LicenseNo,
		FoundedAt:   input.FoundedAt,
		IsActive:    utils.NewTrue(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&property).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

func UpdateProperty(ctx context.Context, id string, input *NewProperty) (*Property, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	db := config.GetDB()
	var property Property
	if err := db.WithContext(ctx).First(&property, "id = ?", id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	err := db.WithContext(ctx).Model(&property).Updates(map[string]interface{}{
		"Name":        input.Name,
		"TaxId":       input.TaxId,
		"Address":     input.Address,
		"City":        input.City,
		"Phone":       input.Phone,
		"Email":       input.Email,
		"LegalRep":    input.LegalRep,
		"TotalHouses": input.TotalHouses,
		"TotalAreaM2": input.TotalAreaM2,
		"LicenseNo":   input.LicenseNo,
		"FoundedAt":   input.FoundedAt,
	}).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func GetProperty(ctx context.Context, id string) (*Property, error) {
	db := config.GetDB()
	var property Property
	if err := db.WithContext(ctx).First(&property, "id = ?", id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &property, nil
}

// ToggleActiveProperty deactivates (or reactivates) a property. The row
// is never deleted because its id is the tenant key on every other table.
func ToggleActiveProperty(ctx context.Context, id string, isActive bool) (*Property, error) {
	db := config.GetDB()
	var property Property
	if err := db.WithContext(ctx).First(&property, "id = ?", id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if err := db.WithContext(ctx).Model(&property).UpdateColumn("IsActive", isActive).Error; err != nil {
		return nil, err
	}
	property.IsActive = &isActive
	return &property, nil
}

func GetAllProperties(ctx context.Context) ([]*Property, error) {
	db := config.GetDB()
	var results []*Property
	if err := db.WithContext(ctx).Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

/* general settings */

// GeneralSetting holds a typed configuration value per property, keyed by name.
type GeneralSetting struct {
	ID         int              `gorm:"primary_key" json:"id"`
	PropertyId string           `gorm:"index;not null;uniqueIndex:idx_setting_key" json:"property_id"`
	Key        string           `gorm:"size:100;not null;uniqueIndex:idx_setting_key" json:"key" binding:"required"`
	Value      string           `gorm:"size:500;not null" json:"value" binding:"required"`
	ValueType  SettingValueType `gorm:"type:enum('string','int','decimal','bool');default:'string'" json:"value_type"`
	Notes      string           `gorm:"size:255" json:"notes"`
	CreatedAt  time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (obj GeneralSetting) GetPropertyId() string {
	return obj.PropertyId
}

// IntValue parses the stored value for int settings; returns def on mismatch.
func (s *GeneralSetting) IntValue(def int) int {
	if s.ValueType != SettingTypeInt {
		return def
	}
	n, err := strconv.Atoi(s.Value)
	if err != nil {
		return def
	}
	return n
}

func (s *GeneralSetting) DecimalValue(def decimal.Decimal) decimal.Decimal {
	if s.ValueType != SettingTypeDecimal {
		return def
	}
	d, err := decimal.NewFromString(s.Value)
	if err != nil {
		return def
	}
	return d
}

func (s *GeneralSetting) BoolValue(def bool) bool {
	if s.ValueType != SettingTypeBool {
		return def
	}
	return s.Value == "true" || s.Value == "1"
}

type NewGeneralSetting struct {
	Key       string           `json:"key" binding:"required"`
	Value     string           `json:"value" binding:"required"`
	ValueType SettingValueType `json:"value_type"`
	Notes     string           `json:"notes"`
}

// SetSetting creates or replaces the setting identified by key.
func SetSetting(ctx context.Context, input *NewGeneralSetting) (*GeneralSetting, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if input.ValueType == "" {
		input.ValueType = SettingTypeString
	}

	db := config.GetDB()
	var setting GeneralSetting
	err := db.WithContext(ctx).
		Where("property_id = ? AND `key` = ?", propertyId, input.Key).
		First(&setting).Error
	if err == gorm.ErrRecordNotFound {
		setting = GeneralSetting{
			PropertyId: propertyId,
			Key:        input.Key,
			Value:      input.Value,
			ValueType:  input.ValueType,
			Notes:      input.Notes,
		}
		if err := db.WithContext(ctx).Create(&setting).Error; err != nil {
			return nil, err
		}
		return &setting, nil
	}
	if err != nil {
		return nil, err
	}

	err = db.WithContext(ctx).Model(&setting).Updates(map[string]interface{}{
		"Value":     input.Value,
		"ValueType": input.ValueType,
		"Notes":     input.Notes,
	}).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func GetSetting(ctx context.Context, key string) (*GeneralSetting, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	var setting GeneralSetting
	err := db.WithContext(ctx).
		Where("property_id = ? AND `key` = ?", propertyId, key).
		First(&setting).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &setting, nil
}

func ListSettings(ctx context.Context) ([]*GeneralSetting, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	return utils.FetchAllModels[GeneralSetting](ctx, propertyId)
}
