package handlers

import (
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func CreateMaintenanceTaskHandler(c *gin.Context) {
	var input models.NewMaintenanceTask
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "CreateMaintenanceTaskHandler", err)
		return
	}
	task, err := models.CreateMaintenanceTask(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateMaintenanceTaskHandler", err)
		return
	}
	respondData(c, task)
}

func UpdateMaintenanceTaskHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewMaintenanceTask
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "UpdateMaintenanceTaskHandler", err)
		return
	}
	task, err := models.UpdateMaintenanceTask(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "UpdateMaintenanceTaskHandler", err)
		return
	}
	respondData(c, task)
}

func StartMaintenanceTaskHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	task, err := models.StartMaintenanceTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, "StartMaintenanceTaskHandler", err)
		return
	}
	respondData(c, task)
}

type finishTaskRequest struct {
	ActualCost decimal.Decimal `json:"actual_cost"`
}

func FinishMaintenanceTaskHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input finishTaskRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "FinishMaintenanceTaskHandler", err)
		return
	}
	task, err := models.FinishMaintenanceTask(c.Request.Context(), id, input.ActualCost)
	if err != nil {
		respondError(c, "FinishMaintenanceTaskHandler", err)
		return
	}
	respondData(c, task)
}

type cancelTaskRequest struct {
	Reason string `json:"reason"`
}

func CancelMaintenanceTaskHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input cancelTaskRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "CancelMaintenanceTaskHandler", err)
		return
	}
	task, err := models.CancelMaintenanceTask(c.Request.Context(), id, input.Reason)
	if err != nil {
		respondError(c, "CancelMaintenanceTaskHandler", err)
		return
	}
	respondData(c, task)
}

func GetMaintenanceTaskHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	task, err := models.GetMaintenanceTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetMaintenanceTaskHandler", err)
		return
	}
	respondData(c, task)
}

func ListOverdueMaintenanceTasksHandler(c *gin.Context) {
	tasks, err := models.ListOverdueMaintenanceTasks(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, "ListOverdueMaintenanceTasksHandler", err)
		return
	}
	respondData(c, tasks)
}

func PaginateMaintenanceTasksHandler(c *gin.Context) {
	var state *models.MaintenanceState
	if raw := stringQuery(c, "state"); raw != nil {
		value := models.MaintenanceState(*raw)
		state = &value
	}
	var taskType *models.MaintenanceType
	if raw := stringQuery(c, "type"); raw != nil {
		value := models.MaintenanceType(*raw)
		taskType = &value
	}
	connection, err := models.PaginateMaintenanceTask(c.Request.Context(),
		limitQuery(c), afterQuery(c), state, taskType, intQuery(c, "provider_id"))
	if err != nil {
		respondError(c, "PaginateMaintenanceTasksHandler", err)
		return
	}
	respondData(c, connection)
}

/* recurring schedules */

func CreateMaintenanceScheduleHandler(c *gin.Context) {
	var input models.NewMaintenanceSchedule
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "CreateMaintenanceScheduleHandler", err)
		return
	}
	schedule, err := models.CreateMaintenanceSchedule(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateMaintenanceScheduleHandler", err)
		return
	}
	respondData(c, schedule)
}

func UpdateMaintenanceScheduleHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewMaintenanceSchedule
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "UpdateMaintenanceScheduleHandler", err)
		return
	}
	schedule, err := models.UpdateMaintenanceSchedule(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "UpdateMaintenanceScheduleHandler", err)
		return
	}
	respondData(c, schedule)
}

func DeleteMaintenanceScheduleHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	schedule, err := models.DeleteMaintenanceSchedule(c.Request.Context(), id)
	if err != nil {
		respondError(c, "DeleteMaintenanceScheduleHandler", err)
		return
	}
	respondData(c, schedule)
}

func ToggleMaintenanceScheduleHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input toggleActiveRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "ToggleMaintenanceScheduleHandler", err)
		return
	}
	schedule, err := models.ToggleActiveMaintenanceSchedule(c.Request.Context(), id, *input.IsActive)
	if err != nil {
		respondError(c, "ToggleMaintenanceScheduleHandler", err)
		return
	}
	respondData(c, schedule)
}

func ListMaintenanceSchedulesHandler(c *gin.Context) {
	schedules, err := models.ListMaintenanceSchedules(c.Request.Context())
	if err != nil {
		respondError(c, "ListMaintenanceSchedulesHandler", err)
		return
	}
	respondData(c, schedules)
}

// GenerateDueScheduledTasksHandler is the manual trigger for what the
// background scheduler does on its own.
func GenerateDueScheduledTasksHandler(c *gin.Context) {
	tasks, err := models.GenerateDueScheduledTasks(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, "GenerateDueScheduledTasksHandler", err)
		return
	}
	respondData(c, tasks)
}
