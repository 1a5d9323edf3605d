package handlers

import (
	"net/http"
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/models"
	"github.com/gin-gonic/gin"
)

func CreateCommonAreaHandler(c *gin.Context) {
	var input models.NewCommonArea
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "CreateCommonAreaHandler", err)
		return
	}
	area, err := models.CreateCommonArea(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateCommonAreaHandler", err)
		return
	}
	respondData(c, area)
}

func UpdateCommonAreaHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewCommonArea
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "UpdateCommonAreaHandler", err)
		return
	}
	area, err := models.UpdateCommonArea(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "UpdateCommonAreaHandler", err)
		return
	}
	respondData(c, area)
}

func DeleteCommonAreaHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	area, err := models.DeleteCommonArea(c.Request.Context(), id)
	if err != nil {
		respondError(c, "DeleteCommonAreaHandler", err)
		return
	}
	respondData(c, area)
}

func GetCommonAreaHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	area, err := models.GetCommonArea(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetCommonAreaHandler", err)
		return
	}
	respondData(c, area)
}

func ListCommonAreasHandler(c *gin.Context) {
	areas, err := models.ListAllCommonAreas(c.Request.Context())
	if err != nil {
		respondError(c, "ListCommonAreasHandler", err)
		return
	}
	respondData(c, areas)
}

func ToggleCommonAreaHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input toggleActiveRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "ToggleCommonAreaHandler", err)
		return
	}
	area, err := models.ToggleActiveCommonArea(c.Request.Context(), id, *input.IsActive)
	if err != nil {
		respondError(c, "ToggleCommonAreaHandler", err)
		return
	}
	respondData(c, area)
}

func PaginateCommonAreasHandler(c *gin.Context) {
	connection, err := models.PaginateCommonArea(c.Request.Context(), limitQuery(c), afterQuery(c))
	if err != nil {
		respondError(c, "PaginateCommonAreasHandler", err)
		return
	}
	respondData(c, connection)
}

// AreaAvailabilityHandler answers "is this slot free?" for the booking UI.
func AreaAvailabilityHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be RFC3339"})
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be RFC3339"})
		return
	}

	available, err := models.IsAreaAvailable(c.Request.Context(), id, start, end)
	if err != nil {
		respondError(c, "AreaAvailabilityHandler", err)
		return
	}
	respondData(c, gin.H{"available": available})
}
