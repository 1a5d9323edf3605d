package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/config"
	"bitbucket.org/mmdatafocus/altavista_backend/utils"
)

// IncidentCategory groups incident reports (seguridad, ruido, daños...).
type IncidentCategory struct {
	ID          int       `gorm:"primary_key" json:"id"`
	PropertyId  string    `gorm:"index;not null" json:"property_id"`
	Name        string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (obj IncidentCategory) GetPropertyId() string {
	return obj.PropertyId
}

type NewIncidentCategory struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func CreateIncidentCategory(ctx context.Context, input *NewIncidentCategory) (*IncidentCategory, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	count, err := utils.ResourceCountWhere[IncidentCategory](ctx, propertyId, "name = ?", input.Name)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("duplicate category name")
	}

	category := IncidentCategory{
		PropertyId:  propertyId,
		Name:        input.Name,
		Description: input.Description,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func DeleteIncidentCategory(ctx context.Context, id int) (*IncidentCategory, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	category, err := utils.FetchModel[IncidentCategory](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	count, err := utils.ResourceCountWhere[Incident](ctx, propertyId, "category_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("category has incidents")
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func ListIncidentCategories(ctx context.Context) ([]*IncidentCategory, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	return utils.FetchAllModels[IncidentCategory](ctx, propertyId)
}

// Incident is a resident or staff report. Priority determines the
// resolution deadline; closing states stamp ClosedAt.
type Incident struct {
	ID          int              `gorm:"primary_key" json:"id"`
	PropertyId  string           `gorm:"index;not null" json:"property_id"`
	CategoryId  int              `gorm:"index;not null" json:"category_id" binding:"required"`
	Title       string           `gorm:"size:255;not null" json:"title" binding:"required"`
	Description string           `gorm:"type:text" json:"description"`
	Priority    IncidentPriority `gorm:"type:enum('baja','media','alta','urgente');default:'media'" json:"priority"`
	State       IncidentState    `gorm:"type:enum('reportada','en_proceso','resuelta','cancelada');default:'reportada'" json:"state"`
	HouseId     *int             `gorm:"index" json:"house_id"`
	ReportedBy  string           `gorm:"size:100" json:"reported_by"`
	ReportedAt  time.Time        `gorm:"index;not null" json:"reported_at"`
	ClosedAt    *time.Time       `json:"closed_at"`
	Resolution  string           `gorm:"type:text" json:"resolution"`
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"autoUpdateTime" json:"updated_at"`

	Category *IncidentCategory `gorm:"foreignKey:CategoryId" json:"category,omitempty"`
	Updates  []IncidentUpdate  `gorm:"foreignKey:IncidentId" json:"updates,omitempty"`
}

// IncidentUpdate is one note in an incident's follow-up trail.
type IncidentUpdate struct {
	ID         int       `gorm:"primary_key" json:"id"`
	PropertyId string    `gorm:"index;not null" json:"property_id"`
	IncidentId int       `gorm:"index;not null" json:"incident_id"`
	Note       string    `gorm:"type:text;not null" json:"note"`
	Author     string    `gorm:"size:100" json:"author"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (obj IncidentUpdate) GetPropertyId() string {
	return obj.PropertyId
}

type NewIncident struct {
	CategoryId  int              `json:"category_id" binding:"required"`
	Title       string           `json:"title" binding:"required"`
	Description string           `json:"description"`
	Priority    IncidentPriority `json:"priority"`
	HouseId     *int             `json:"house_id"`
	ReportedBy  string           `json:"reported_by"`
}

type IncidentsEdge Edge[Incident]

func (obj Incident) GetId() int {
	return obj.ID
}

func (obj Incident) GetPropertyId() string {
	return obj.PropertyId
}

type IncidentsConnection struct {
	PageInfo *PageInfo        `json:"pageInfo"`
	Edges    []*IncidentsEdge `json:"edges"`
}

func (obj Incident) GetCursor() string {
	return obj.ReportedAt.Format(time.RFC3339)
}

// Deadline is when the incident must be resolved, per its priority.
func (obj Incident) Deadline() time.Time {
	return obj.ReportedAt.AddDate(0, 0, obj.Priority.LimitDays())
}

// IsOverdue reports whether an open incident passed its deadline.
func (obj Incident) IsOverdue(now time.Time) bool {
	if obj.State.IsClosing() {
		return false
	}
	return now.After(obj.Deadline())
}

func CreateIncident(ctx context.Context, input *NewIncident) (*Incident, error) {

	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if err := utils.ValidateResourceId[IncidentCategory](ctx, propertyId, input.CategoryId); err != nil {
		return nil, errors.New("category not found")
	}
	if input.HouseId != nil {
		if err := utils.ValidateResourceId[House](ctx, propertyId, *input.HouseId); err != nil {
			return nil, errors.New("house not found")
		}
	}
	priority := input.Priority
	if priority == "" {
		priority = IncidentPriorityMedium
	}
	if !priority.IsValid() {
		return nil, errors.New("invalid priority")
	}

	reportedBy := input.ReportedBy
	if reportedBy == "" {
		reportedBy, _ = utils.GetUsernameFromContext(ctx)
	}

	incident := Incident{
		PropertyId:  propertyId,
		CategoryId:  input.CategoryId,
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
		State:       IncidentStateReported,
		HouseId:     input.HouseId,
		ReportedBy:  reportedBy,
		ReportedAt:  time.Now(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&incident).Error; err != nil {
		return nil, err
	}
	return &incident, nil
}

// TransitionIncident moves an incident through its state machine.
// Closing states stamp ClosedAt; reopening clears it.
func TransitionIncident(ctx context.Context, id int, next IncidentState, resolution string) (*Incident, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if !next.IsValid() {
		return nil, errors.New("invalid incident state")
	}

	incident, err := utils.FetchModel[Incident](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	if incident.State == next {
		return nil, errors.New("incident is already in that state")
	}
	if next.IsClosing() && resolution == "" {
		return nil, errors.New("resolution is required to close an incident")
	}

	updates := map[string]interface{}{
		"State": next,
	}
	if next.IsClosing() {
		now := time.Now()
		updates["ClosedAt"] = &now
		updates["Resolution"] = resolution
	} else if incident.State.IsClosing() {
		// reopening
		updates["ClosedAt"] = nil
		updates["Resolution"] = ""
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(incident).Updates(updates).Error; err != nil {
		return nil, err
	}
	return utils.FetchModel[Incident](ctx, propertyId, id)
}

// AddIncidentUpdate appends a follow-up note.
func AddIncidentUpdate(ctx context.Context, incidentId int, note string) (*IncidentUpdate, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if note == "" {
		return nil, errors.New("note is required")
	}
	incident, err := utils.FetchModel[Incident](ctx, propertyId, incidentId)
	if err != nil {
		return nil, err
	}
	if incident.State.IsClosing() {
		return nil, errors.New("incident is closed")
	}

	author, _ := utils.GetUsernameFromContext(ctx)
	update := IncidentUpdate{
		PropertyId: propertyId,
		IncidentId: incidentId,
		Note:       note,
		Author:     author,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&update).Error; err != nil {
		return nil, err
	}
	return &update, nil
}

// ListIncidentUpdates returns the follow-up notes of an incident, newest first.
func ListIncidentUpdates(ctx context.Context, incidentId int) ([]*IncidentUpdate, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if err := utils.ValidateResourceId[Incident](ctx, propertyId, incidentId); err != nil {
		return nil, errors.New("incident not found")
	}
	db := config.GetDB()
	var results []*IncidentUpdate
	err := db.WithContext(ctx).
		Where("property_id = ? AND incident_id = ?", propertyId, incidentId).
		Order("created_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// AssignIncidentToMaintenance opens a corrective maintenance task from
// the incident, links the two, and moves the incident to en_proceso.
// An incident gets at most one linked task.
func AssignIncidentToMaintenance(ctx context.Context, incidentId int, providerId *int, scheduledDate time.Time) (*MaintenanceTask, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	incident, err := utils.FetchModel[Incident](ctx, propertyId, incidentId)
	if err != nil {
		return nil, err
	}
	if incident.State.IsClosing() {
		return nil, errors.New("incident is closed")
	}

	linked, err := utils.ResourceCountWhere[MaintenanceTask](ctx, propertyId,
		"incident_id = ?", incidentId)
	if err != nil {
		return nil, err
	}
	if linked > 0 {
		return nil, errors.New("incident already has a maintenance task")
	}

	task, err := CreateMaintenanceTask(ctx, &NewMaintenanceTask{
		Title:         "Incidente: " + incident.Title,
		Description:   incident.Description,
		Type:          MaintenanceTypeCorrective,
		HouseId:       incident.HouseId,
		ProviderId:    providerId,
		ScheduledDate: scheduledDate,
	})
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(task).UpdateColumn("IncidentId", incidentId).Error; err != nil {
		return nil, err
	}
	task.IncidentId = &incidentId

	if incident.State == IncidentStateReported {
		if err := db.WithContext(ctx).Model(incident).
			UpdateColumn("State", IncidentStateInProgress).Error; err != nil {
			return nil, err
		}
	}
	return task, nil
}

func GetIncident(ctx context.Context, id int) (*Incident, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	return utils.FetchModel[Incident](ctx, propertyId, id, "Category", "Updates")
}

// ListOverdueIncidents returns open incidents past their priority deadline.
func ListOverdueIncidents(ctx context.Context, now time.Time) ([]*Incident, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	var open []*Incident
	err := db.WithContext(ctx).
		Where("property_id = ? AND state IN ?", propertyId,
			[]IncidentState{IncidentStateReported, IncidentStateInProgress}).
		Order("reported_at").
		Find(&open).Error
	if err != nil {
		return nil, err
	}
	results := make([]*Incident, 0)
	for _, incident := range open {
		if incident.IsOverdue(now) {
			results = append(results, incident)
		}
	}
	return results, nil
}

func PaginateIncident(ctx context.Context, limit *int, after *string,
	state *IncidentState, priority *IncidentPriority, categoryId *int) (*IncidentsConnection, error) {

	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("property_id = ?", propertyId)

	if state != nil && *state != "" {
		dbCtx.Where("state = ?", *state)
	}
	if priority != nil && *priority != "" {
		dbCtx.Where("priority = ?", *priority)
	}
	if categoryId != nil && *categoryId != 0 {
		dbCtx.Where("category_id = ?", *categoryId)
	}

	edges, pageInfo, err := FetchPageCompositeCursor[Incident](dbCtx, *limit, after, "reported_at", "<")
	if err != nil {
		return nil, err
	}
	var connection IncidentsConnection
	connection.PageInfo = pageInfo
	for _, edge := range edges {
		incidentsEdge := IncidentsEdge(edge)
		connection.Edges = append(connection.Edges, &incidentsEdge)
	}

	return &connection, err
}
