package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/config"
	"bitbucket.org/mmdatafocus/altavista_backend/utils"
	"github.com/shopspring/decimal"
)

// MaintenanceTask is one maintenance job on a common area or a house,
// optionally assigned to a provider. State machine:
// programado -> en_proceso -> finalizado, with cancelado reachable from
// the first two.
type MaintenanceTask struct {
	ID            int              `gorm:"primary_key" json:"id"`
	PropertyId    string           `gorm:"index;not null" json:"property_id"`
	Title         string           `gorm:"size:255;not null" json:"title" binding:"required"`
	Description   string           `gorm:"type:text" json:"description"`
	Type          MaintenanceType  `gorm:"type:enum('preventivo','correctivo');default:'preventivo'" json:"type"`
	State         MaintenanceState `gorm:"type:enum('programado','en_proceso','finalizado','cancelado');default:'programado'" json:"state"`
	CommonAreaId  *int             `gorm:"index" json:"common_area_id"`
	HouseId       *int             `gorm:"index" json:"house_id"`
	ProviderId    *int             `gorm:"index" json:"provider_id"`
	IncidentId    *int             `gorm:"index" json:"incident_id"`
	ScheduledDate time.Time        `gorm:"type:date;not null" json:"scheduled_date" binding:"required"`
	StartedAt     *time.Time       `json:"started_at"`
	FinishedAt    *time.Time       `json:"finished_at"`
	EstimatedCost decimal.Decimal  `gorm:"type:decimal(14,2);default:0" json:"estimated_cost"`
	ActualCost    decimal.Decimal  `gorm:"type:decimal(14,2);default:0" json:"actual_cost"`
	Notes         string           `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"autoUpdateTime" json:"updated_at"`

	Provider *Provider `gorm:"foreignKey:ProviderId" json:"provider,omitempty"`
}

type NewMaintenanceTask struct {
	Title         string          `json:"title" binding:"required"`
	Description   string          `json:"description"`
	Type          MaintenanceType `json:"type"`
	CommonAreaId  *int            `json:"common_area_id"`
	HouseId       *int            `json:"house_id"`
	ProviderId    *int            `json:"provider_id"`
	ScheduledDate time.Time       `json:"scheduled_date" binding:"required"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	Notes         string          `json:"notes"`
}

type MaintenanceTasksEdge Edge[MaintenanceTask]

func (obj MaintenanceTask) GetId() int {
	return obj.ID
}

func (obj MaintenanceTask) GetPropertyId() string {
	return obj.PropertyId
}

type MaintenanceTasksConnection struct {
	PageInfo *PageInfo               `json:"pageInfo"`
	Edges    []*MaintenanceTasksEdge `json:"edges"`
}

func (obj MaintenanceTask) GetCursor() string {
	return obj.ScheduledDate.Format(time.RFC3339)
}

// IsOverdue reports whether a task is still open past its scheduled date.
func (obj MaintenanceTask) IsOverdue(now time.Time) bool {
	if obj.State != MaintenanceStateScheduled && obj.State != MaintenanceStateInProgress {
		return false
	}
	endOfDay := time.Date(obj.ScheduledDate.Year(), obj.ScheduledDate.Month(), obj.ScheduledDate.Day(),
		23, 59, 59, 0, obj.ScheduledDate.Location())
	return now.After(endOfDay)
}

// DaysLeft is the number of full days until the scheduled date.
// Negative when overdue.
func (obj MaintenanceTask) DaysLeft(now time.Time) int {
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dueDay := time.Date(obj.ScheduledDate.Year(), obj.ScheduledDate.Month(), obj.ScheduledDate.Day(),
		0, 0, 0, 0, obj.ScheduledDate.Location())
	return int(dueDay.Sub(nowDay).Hours() / 24)
}

func (input *NewMaintenanceTask) validate(ctx context.Context, propertyId string) error {
	if input.Type != "" && !input.Type.IsValid() {
		return errors.New("invalid maintenance type")
	}
	// a task targets an area or a house, never both
	if input.CommonAreaId != nil && input.HouseId != nil {
		return errors.New("task targets either a common area or a house")
	}
	if input.CommonAreaId != nil {
		if err := utils.ValidateResourceId[CommonArea](ctx, propertyId, *input.CommonAreaId); err != nil {
			return errors.New("common area not found")
		}
	}
	if input.HouseId != nil {
		if err := utils.ValidateResourceId[House](ctx, propertyId, *input.HouseId); err != nil {
			return errors.New("house not found")
		}
	}
	if input.ProviderId != nil {
		provider, err := utils.FetchModel[Provider](ctx, propertyId, *input.ProviderId)
		if err != nil {
			return errors.New("provider not found")
		}
		if provider.State != ProviderStateActive {
			return errors.New("provider is inactive")
		}
	}
	if input.EstimatedCost.IsNegative() {
		return errors.New("estimated cost must not be negative")
	}
	return nil
}

func CreateMaintenanceTask(ctx context.Context, input *NewMaintenanceTask) (*MaintenanceTask, error) {

	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if err := input.validate(ctx, propertyId); err != nil {
		return nil, err
	}

	taskType := input.Type
	if taskType == "" {
		taskType = MaintenanceTypePreventive
	}

	task := MaintenanceTask{
		PropertyId:    propertyId,
		Title:         input.Title,
		Description:   input.Description,
		Type:          taskType,
		State:         MaintenanceStateScheduled,
		CommonAreaId:  input.CommonAreaId,
		HouseId:       input.HouseId,
		ProviderId:    input.ProviderId,
		ScheduledDate: input.ScheduledDate,
		EstimatedCost: input.EstimatedCost,
		Notes:         input.Notes,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func UpdateMaintenanceTask(ctx context.Context, id int, input *NewMaintenanceTask) (*MaintenanceTask, error) {

	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}

	task, err := utils.FetchModel[MaintenanceTask](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	if task.State == MaintenanceStateFinished || task.State == MaintenanceStateCancelled {
		return nil, errors.New("closed tasks cannot be modified")
	}
	if err := input.validate(ctx, propertyId); err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(task).Updates(map[string]interface{}{
		"Title":         input.Title,
		"Description":   input.Description,
		"Type":          input.Type,
		"CommonAreaId":  input.CommonAreaId,
		"HouseId":       input.HouseId,
		"ProviderId":    input.ProviderId,
		"ScheduledDate": input.ScheduledDate,
		"EstimatedCost": input.EstimatedCost,
		"Notes":         input.Notes,
	}).Error
	if err != nil {
		return nil, err
	}
	return utils.FetchModel[MaintenanceTask](ctx, propertyId, id)
}

// StartMaintenanceTask moves programado -> en_proceso.
func StartMaintenanceTask(ctx context.Context, id int) (*MaintenanceTask, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}

	task, err := utils.FetchModel[MaintenanceTask](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	if task.State != MaintenanceStateScheduled {
		return nil, errors.New("only scheduled tasks can be started")
	}

	now := time.Now()
	db := config.GetDB()
	err = db.WithContext(ctx).Model(task).Updates(map[string]interface{}{
		"State":     MaintenanceStateInProgress,
		"StartedAt": &now,
	}).Error
	if err != nil {
		return nil, err
	}
	task.State = MaintenanceStateInProgress
	task.StartedAt = &now
	return task, nil
}

// FinishMaintenanceTask closes an in-progress task with its actual cost
// and posts the expense to the ledger in the same transaction.
func FinishMaintenanceTask(ctx context.Context, id int, actualCost decimal.Decimal) (*MaintenanceTask, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if actualCost.IsNegative() {
		return nil, errors.New("actual cost must not be negative")
	}

	task, err := utils.FetchModel[MaintenanceTask](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	if task.State != MaintenanceStateInProgress {
		return nil, errors.New("only in-progress tasks can be finished")
	}

	now := time.Now()
	db := config.GetDB()
	tx := db.Begin()
	err = tx.WithContext(ctx).Model(task).Updates(map[string]interface{}{
		"State":      MaintenanceStateFinished,
		"FinishedAt": &now,
		"ActualCost": actualCost,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if actualCost.IsPositive() {
		_, err = PostLedgerEntryTx(ctx, tx, &LedgerEntryInput{
			PropertyId:    propertyId,
			Type:          TransactionTypeExpense,
			Category:      CategoryMaintenance,
			Amount:        actualCost,
			Description:   "Mantenimiento: " + task.Title,
			EntryDate:     now,
			ReferenceType: "maintenance_task",
			ReferenceId:   task.ID,
		})
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	task.State = MaintenanceStateFinished
	task.FinishedAt = &now
	task.ActualCost = actualCost
	return task, nil
}

// CancelMaintenanceTask cancels an open task.
func CancelMaintenanceTask(ctx context.Context, id int, reason string) (*MaintenanceTask, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}

	task, err := utils.FetchModel[MaintenanceTask](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	if task.State != MaintenanceStateScheduled && task.State != MaintenanceStateInProgress {
		return nil, errors.New("task cannot be cancelled")
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(task).Updates(map[string]interface{}{
		"State": MaintenanceStateCancelled,
		"Notes": utils.NilIfEmpty(reason),
	}).Error
	if err != nil {
		return nil, err
	}
	task.State = MaintenanceStateCancelled
	return task, nil
}

func GetMaintenanceTask(ctx context.Context, id int) (*MaintenanceTask, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	return utils.FetchModel[MaintenanceTask](ctx, propertyId, id, "Provider")
}

// ListOverdueMaintenanceTasks returns open tasks past their scheduled date.
func ListOverdueMaintenanceTasks(ctx context.Context, now time.Time) ([]*MaintenanceTask, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	var results []*MaintenanceTask
	err := db.WithContext(ctx).
		Where("property_id = ? AND state IN ? AND scheduled_date < ?",
			propertyId, []MaintenanceState{MaintenanceStateScheduled, MaintenanceStateInProgress},
			time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())).
		Order("scheduled_date").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func PaginateMaintenanceTask(ctx context.Context, limit *int, after *string,
	state *MaintenanceState, taskType *MaintenanceType, providerId *int) (*MaintenanceTasksConnection, error) {

	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("property_id = ?", propertyId)

	if state != nil && *state != "" {
		dbCtx.Where("state = ?", *state)
	}
	if taskType != nil && *taskType != "" {
		dbCtx.Where("type = ?", *taskType)
	}
	if providerId != nil && *providerId != 0 {
		dbCtx.Where("provider_id = ?", *providerId)
	}

	edges, pageInfo, err := FetchPageCompositeCursor[MaintenanceTask](dbCtx, *limit, after, "scheduled_date", "<")
	if err != nil {
		return nil, err
	}
	var connection MaintenanceTasksConnection
	connection.PageInfo = pageInfo
	for _, edge := range edges {
		maintenanceTasksEdge := MaintenanceTasksEdge(edge)
		connection.Edges = append(connection.Edges, &maintenanceTasksEdge)
	}

	return &connection, err
}
