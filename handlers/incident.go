package handlers

import (
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/models"
	"github.com/gin-gonic/gin"
)

func CreateIncidentCategoryHandler(c *gin.Context) {
	var input models.NewIncidentCategory
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "CreateIncidentCategoryHandler", err)
		return
	}
	category, err := models.CreateIncidentCategory(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateIncidentCategoryHandler", err)
		return
	}
	respondData(c, category)
}

func DeleteIncidentCategoryHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	category, err := models.DeleteIncidentCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, "DeleteIncidentCategoryHandler", err)
		return
	}
	respondData(c, category)
}

func ListIncidentCategoriesHandler(c *gin.Context) {
	categories, err := models.ListIncidentCategories(c.Request.Context())
	if err != nil {
		respondError(c, "ListIncidentCategoriesHandler", err)
		return
	}
	respondData(c, categories)
}

func CreateIncidentHandler(c *gin.Context) {
	var input models.NewIncident
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "CreateIncidentHandler", err)
		return
	}
	incident, err := models.CreateIncident(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateIncidentHandler", err)
		return
	}
	respondData(c, incident)
}

type transitionIncidentRequest struct {
	State      models.IncidentState `json:"state" binding:"required"`
	Resolution string               `json:"resolution"`
}

func TransitionIncidentHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input transitionIncidentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "TransitionIncidentHandler", err)
		return
	}
	incident, err := models.TransitionIncident(c.Request.Context(), id, input.State, input.Resolution)
	if err != nil {
		respondError(c, "TransitionIncidentHandler", err)
		return
	}
	respondData(c, incident)
}

type incidentUpdateRequest struct {
	Note string `json:"note" binding:"required"`
}

func AddIncidentUpdateHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input incidentUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "AddIncidentUpdateHandler", err)
		return
	}
	update, err := models.AddIncidentUpdate(c.Request.Context(), id, input.Note)
	if err != nil {
		respondError(c, "AddIncidentUpdateHandler", err)
		return
	}
	respondData(c, update)
}

func ListIncidentUpdatesHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	updates, err := models.ListIncidentUpdates(c.Request.Context(), id)
	if err != nil {
		respondError(c, "ListIncidentUpdatesHandler", err)
		return
	}
	respondData(c, updates)
}

type assignIncidentRequest struct {
	ProviderId    *int      `json:"provider_id"`
	ScheduledDate time.Time `json:"scheduled_date" binding:"required"`
}

func AssignIncidentToMaintenanceHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input assignIncidentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "AssignIncidentToMaintenanceHandler", err)
		return
	}
	task, err := models.AssignIncidentToMaintenance(c.Request.Context(), id, input.ProviderId, input.ScheduledDate)
	if err != nil {
		respondError(c, "AssignIncidentToMaintenanceHandler", err)
		return
	}
	respondData(c, task)
}

func GetIncidentHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	incident, err := models.GetIncident(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetIncidentHandler", err)
		return
	}
	respondData(c, incident)
}

func ListOverdueIncidentsHandler(c *gin.Context) {
	incidents, err := models.ListOverdueIncidents(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, "ListOverdueIncidentsHandler", err)
		return
	}
	respondData(c, incidents)
}

func PaginateIncidentsHandler(c *gin.Context) {
	var state *models.IncidentState
	if raw := stringQuery(c, "state"); raw != nil {
		value := models.IncidentState(*raw)
		state = &value
	}
	var priority *models.IncidentPriority
	if raw := stringQuery(c, "priority"); raw != nil {
		value := models.IncidentPriority(*raw)
		priority = &value
	}
	connection, err := models.PaginateIncident(c.Request.Context(),
		limitQuery(c), afterQuery(c), state, priority, intQuery(c, "category_id"))
	if err != nil {
		respondError(c, "PaginateIncidentsHandler", err)
		return
	}
	respondData(c, connection)
}
