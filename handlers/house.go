package handlers

import (
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/models"
	"github.com/gin-gonic/gin"
)

func CreateHouseHandler(c *gin.Context) {
	var input models.NewHouse
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "CreateHouseHandler", err)
		return
	}
	house, err := models.CreateHouse(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateHouseHandler", err)
		return
	}
	respondData(c, house)
}

func UpdateHouseHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewHouse
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "UpdateHouseHandler", err)
		return
	}
	house, err := models.UpdateHouse(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "UpdateHouseHandler", err)
		return
	}
	respondData(c, house)
}

func DeleteHouseHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	house, err := models.DeleteHouse(c.Request.Context(), id)
	if err != nil {
		respondError(c, "DeleteHouseHandler", err)
		return
	}
	respondData(c, house)
}

func GetHouseHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	house, err := models.GetHouse(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetHouseHandler", err)
		return
	}
	respondData(c, house)
}

func ListHousesHandler(c *gin.Context) {
	houses, err := models.ListAllHouses(c.Request.Context())
	if err != nil {
		respondError(c, "ListHousesHandler", err)
		return
	}
	respondData(c, houses)
}

func PaginateHousesHandler(c *gin.Context) {
	var occupancy *models.OccupancyState
	if raw := stringQuery(c, "occupancy"); raw != nil {
		value := models.OccupancyState(*raw)
		occupancy = &value
	}
	connection, err := models.PaginateHouse(c.Request.Context(),
		limitQuery(c), afterQuery(c), stringQuery(c, "block"), occupancy)
	if err != nil {
		respondError(c, "PaginateHousesHandler", err)
		return
	}
	respondData(c, connection)
}

func ToggleHouseHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input toggleActiveRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "ToggleHouseHandler", err)
		return
	}
	house, err := models.ToggleActiveHouse(c.Request.Context(), id, *input.IsActive)
	if err != nil {
		respondError(c, "ToggleHouseHandler", err)
		return
	}
	respondData(c, house)
}

func HousePendingFeesHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	pending, err := models.PendingFeesForHouse(c.Request.Context(), id, time.Now())
	if err != nil {
		respondError(c, "HousePendingFeesHandler", err)
		return
	}
	respondData(c, pending)
}

func AssignHouseOwnerHandler(c *gin.Context) {
	var input models.NewHouseOwner
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "AssignHouseOwnerHandler", err)
		return
	}
	assignment, err := models.AssignHouseOwner(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "AssignHouseOwnerHandler", err)
		return
	}
	respondData(c, assignment)
}

type releaseHouseOwnerRequest struct {
	EndDate time.Time `json:"end_date" binding:"required"`
}

func ReleaseHouseOwnerHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input releaseHouseOwnerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "ReleaseHouseOwnerHandler", err)
		return
	}
	assignment, err := models.ReleaseHouseOwner(c.Request.Context(), id, input.EndDate)
	if err != nil {
		respondError(c, "ReleaseHouseOwnerHandler", err)
		return
	}
	respondData(c, assignment)
}

func CurrentHouseOwnerHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	assignment, err := models.CurrentHouseOwner(c.Request.Context(), id)
	if err != nil {
		respondError(c, "CurrentHouseOwnerHandler", err)
		return
	}
	respondData(c, assignment)
}

func ListHouseResidentsHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	residents, err := models.ListHouseResidents(c.Request.Context(), id)
	if err != nil {
		respondError(c, "ListHouseResidentsHandler", err)
		return
	}
	respondData(c, residents)
}

func ListHouseOwnersHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	history, err := models.ListHouseOwners(c.Request.Context(), id)
	if err != nil {
		respondError(c, "ListHouseOwnersHandler", err)
		return
	}
	respondData(c, history)
}
