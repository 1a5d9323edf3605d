package handlers

import (
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/models"
	"github.com/gin-gonic/gin"
)

func CreateEmployeeHandler(c *gin.Context) {
	var input models.NewEmployee
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "CreateEmployeeHandler", err)
		return
	}
	employee, err := models.CreateEmployee(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateEmployeeHandler", err)
		return
	}
	respondData(c, employee)
}

func UpdateEmployeeHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewEmployee
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "UpdateEmployeeHandler", err)
		return
	}
	employee, err := models.UpdateEmployee(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "UpdateEmployeeHandler", err)
		return
	}
	respondData(c, employee)
}

type terminateEmployeeRequest struct {
	EndedAt time.Time `json:"ended_at" binding:"required"`
}

func TerminateEmployeeHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input terminateEmployeeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "TerminateEmployeeHandler", err)
		return
	}
	employee, err := models.TerminateEmployee(c.Request.Context(), id, input.EndedAt)
	if err != nil {
		respondError(c, "TerminateEmployeeHandler", err)
		return
	}
	respondData(c, employee)
}

func GetEmployeeHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	employee, err := models.GetEmployee(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetEmployeeHandler", err)
		return
	}
	respondData(c, employee)
}

func ListEmployeesHandler(c *gin.Context) {
	employees, err := models.ListAllEmployees(c.Request.Context())
	if err != nil {
		respondError(c, "ListEmployeesHandler", err)
		return
	}
	respondData(c, employees)
}

func PaginateEmployeesHandler(c *gin.Context) {
	var role *models.EmployeeRole
	if raw := stringQuery(c, "role"); raw != nil {
		value := models.EmployeeRole(*raw)
		role = &value
	}
	connection, err := models.PaginateEmployee(c.Request.Context(), limitQuery(c), afterQuery(c), role)
	if err != nil {
		respondError(c, "PaginateEmployeesHandler", err)
		return
	}
	respondData(c, connection)
}

func ToggleEmployeeHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input toggleActiveRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "ToggleEmployeeHandler", err)
		return
	}
	employee, err := models.ToggleActiveEmployee(c.Request.Context(), id, *input.IsActive)
	if err != nil {
		respondError(c, "ToggleEmployeeHandler", err)
		return
	}
	respondData(c, employee)
}

/* attendance */

type checkInOutRequest struct {
	At time.Time `json:"at" binding:"required"`
}

func CheckInHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input checkInOutRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "CheckInHandler", err)
		return
	}
	record, err := models.CheckInEmployee(c.Request.Context(), id, input.At)
	if err != nil {
		respondError(c, "CheckInHandler", err)
		return
	}
	respondData(c, record)
}

func CheckOutHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input checkInOutRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "CheckOutHandler", err)
		return
	}
	record, err := models.CheckOutEmployee(c.Request.Context(), id, input.At)
	if err != nil {
		respondError(c, "CheckOutHandler", err)
		return
	}
	respondData(c, record)
}

func ListAttendanceHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	now := time.Now()
	from := dateQuery(c, "from", now.AddDate(0, -1, 0))
	to := dateQuery(c, "to", now)

	records, err := models.ListAttendance(c.Request.Context(), id, from, to)
	if err != nil {
		respondError(c, "ListAttendanceHandler", err)
		return
	}
	total, err := models.TotalWorkedHours(c.Request.Context(), id, from, to)
	if err != nil {
		respondError(c, "ListAttendanceHandler", err)
		return
	}
	respondData(c, gin.H{
		"records":      records,
		"total_hours":  total,
		"period_start": from,
		"period_end":   to,
	})
}
