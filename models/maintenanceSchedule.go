package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/config"
	"bitbucket.org/mmdatafocus/altavista_backend/utils"
	"github.com/shopspring/decimal"
)

// MaintenanceSchedule generates recurring preventive tasks. NextRunDate
// is when the next task should be created; the background worker
// advances it after generating.
type MaintenanceSchedule struct {
	ID            int               `gorm:"primary_key" json:"id"`
	PropertyId    string            `gorm:"index;not null" json:"property_id"`
	Title         string            `gorm:"size:255;not null" json:"title" binding:"required"`
	Description   string            `gorm:"type:text" json:"description"`
	Frequency     ScheduleFrequency `gorm:"size:15;not null" json:"frequency" binding:"required"`
	CommonAreaId  *int              `gorm:"index" json:"common_area_id"`
	ProviderId    *int              `gorm:"index" json:"provider_id"`
	EstimatedCost decimal.Decimal   `gorm:"type:decimal(14,2);default:0" json:"estimated_cost"`
	NextRunDate   time.Time         `gorm:"type:date;not null;index" json:"next_run_date"`
	IsActive      *bool             `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (obj MaintenanceSchedule) GetPropertyId() string {
	return obj.PropertyId
}

// NextDate advances a date one period. Day-based frequencies add days;
// month-based ones step calendar months with the day-of-month clamped to
// the target month's length, so a schedule anchored on the 31st lands on
// Feb 28 instead of spilling into March.
func (f ScheduleFrequency) NextDate(from time.Time) time.Time {
	switch f {
	case FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case FrequencyBiweekly:
		return from.AddDate(0, 0, 15)
	case FrequencyMonthly:
		return addMonthsClamped(from, 1)
	case FrequencyBimonthly:
		return addMonthsClamped(from, 2)
	case FrequencyQuarterly:
		return addMonthsClamped(from, 3)
	case FrequencyHalfYearly:
		return addMonthsClamped(from, 6)
	case FrequencyYearly:
		return addMonthsClamped(from, 12)
	}
	return from
}

func addMonthsClamped(from time.Time, months int) time.Time {
	first := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, from.Location())
	first = first.AddDate(0, months, 0)
	lastDay := first.AddDate(0, 1, -1).Day()
	day := from.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day,
		from.Hour(), from.Minute(), from.Second(), from.Nanosecond(), from.Location())
}

type NewMaintenanceSchedule struct {
	Title         string            `json:"title" binding:"required"`
	Description   string            `json:"description"`
	Frequency     ScheduleFrequency `json:"frequency" binding:"required"`
	CommonAreaId  *int              `json:"common_area_id"`
	ProviderId    *int              `json:"provider_id"`
	EstimatedCost decimal.Decimal   `json:"estimated_cost"`
	NextRunDate   time.Time         `json:"next_run_date" binding:"required"`
}

func (input *NewMaintenanceSchedule) validate(ctx context.Context, propertyId string) error {
	if !input.Frequency.IsValid() {
		return errors.New("invalid frequency")
	}
	if input.CommonAreaId != nil {
		if err := utils.ValidateResourceId[CommonArea](ctx, propertyId, *input.CommonAreaId); err != nil {
			return errors.New("common area not found")
		}
	}
	if input.ProviderId != nil {
		if err := utils.ValidateResourceId[Provider](ctx, propertyId, *input.ProviderId); err != nil {
			return errors.New("provider not found")
		}
	}
	if input.EstimatedCost.IsNegative() {
		return errors.New("estimated cost must not be negative")
	}
	return nil
}

func CreateMaintenanceSchedule(ctx context.Context, input *NewMaintenanceSchedule) (*MaintenanceSchedule, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if err := input.validate(ctx, propertyId); err != nil {
		return nil, err
	}

	schedule := MaintenanceSchedule{
		PropertyId:    propertyId,
		Title:         input.Title,
		Description:   input.Description,
		Frequency:     input.Frequency,
		CommonAreaId:  input.CommonAreaId,
		ProviderId:    input.ProviderId,
		EstimatedCost: input.EstimatedCost,
		NextRunDate:   input.NextRunDate,
		IsActive:      utils.NewTrue(),
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&schedule).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

func UpdateMaintenanceSchedule(ctx context.Context, id int, input *NewMaintenanceSchedule) (*MaintenanceSchedule, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	schedule, err := utils.FetchModel[MaintenanceSchedule](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, propertyId); err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(schedule).Updates(map[string]interface{}{
		"Title":         input.Title,
		"Description":   input.Description,
		"Frequency":     input.Frequency,
		"CommonAreaId":  input.CommonAreaId,
		"ProviderId":    input.ProviderId,
		"EstimatedCost": input.EstimatedCost,
		"NextRunDate":   input.NextRunDate,
	}).Error
	if err != nil {
		return nil, err
	}
	return utils.FetchModel[MaintenanceSchedule](ctx, propertyId, id)
}

func DeleteMaintenanceSchedule(ctx context.Context, id int) (*MaintenanceSchedule, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	schedule, err := utils.FetchModel[MaintenanceSchedule](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(schedule).Error; err != nil {
		return nil, err
	}
	return schedule, nil
}

func ToggleActiveMaintenanceSchedule(ctx context.Context, id int, isActive bool) (*MaintenanceSchedule, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	schedule, err := utils.FetchModel[MaintenanceSchedule](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Model(schedule).UpdateColumn("IsActive", isActive).Error; err != nil {
		return nil, err
	}
	return schedule, nil
}

func ListMaintenanceSchedules(ctx context.Context) ([]*MaintenanceSchedule, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	return utils.FetchAllModels[MaintenanceSchedule](ctx, propertyId)
}

// GenerateDueScheduledTasks creates tasks for every active schedule
// whose NextRunDate has arrived and advances the schedule. Runs under
// the property lock; the background worker and manual triggers share it.
func GenerateDueScheduledTasks(ctx context.Context, now time.Time) ([]*MaintenanceTask, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}

	lock, err := utils.PropertyLock(ctx, propertyId, "MaintenanceSchedule", "models", "GenerateDueScheduledTasks")
	if err != nil {
		return nil, err
	}
	defer lock.Release(ctx)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	db := config.GetDB()
	var due []*MaintenanceSchedule
	err = db.WithContext(ctx).
		Where("property_id = ? AND is_active = 1 AND next_run_date <= ?", propertyId, today).
		Find(&due).Error
	if err != nil {
		return nil, err
	}

	created := make([]*MaintenanceTask, 0, len(due))
	for _, schedule := range due {
		task := MaintenanceTask{
			PropertyId:    propertyId,
			Title:         schedule.Title,
			Description:   schedule.Description,
			Type:          MaintenanceTypePreventive,
			State:         MaintenanceStateScheduled,
			CommonAreaId:  schedule.CommonAreaId,
			ProviderId:    schedule.ProviderId,
			ScheduledDate: schedule.NextRunDate,
			EstimatedCost: schedule.EstimatedCost,
		}

		tx := db.Begin()
		if err := tx.WithContext(ctx).Create(&task).Error; err != nil {
			tx.Rollback()
			return created, err
		}
		next := schedule.Frequency.NextDate(schedule.NextRunDate)
		// catch up schedules that fell behind
		for !next.After(today) {
			next = schedule.Frequency.NextDate(next)
		}
		if err := tx.WithContext(ctx).Model(schedule).UpdateColumn("NextRunDate", next).Error; err != nil {
			tx.Rollback()
			return created, err
		}
		if err := tx.Commit().Error; err != nil {
			return created, err
		}
		created = append(created, &task)
	}
	return created, nil
}
