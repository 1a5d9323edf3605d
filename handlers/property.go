package handlers

import (
	"net/http"

	"bitbucket.org/mmdatafocus/altavista_backend/models"
	"github.com/gin-gonic/gin"
)

func CreatePropertyHandler(c *gin.Context) {
	var input models.NewProperty
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "CreatePropertyHandler", err)
		return
	}
	property, err := models.CreateProperty(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreatePropertyHandler", err)
		return
	}
	respondData(c, property)
}

func UpdatePropertyHandler(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var input models.NewProperty
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "UpdatePropertyHandler", err)
		return
	}
	property, err := models.UpdateProperty(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "UpdatePropertyHandler", err)
		return
	}
	respondData(c, property)
}

func TogglePropertyHandler(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var input toggleActiveRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "TogglePropertyHandler", err)
		return
	}
	property, err := models.ToggleActiveProperty(c.Request.Context(), id, *input.IsActive)
	if err != nil {
		respondError(c, "TogglePropertyHandler", err)
		return
	}
	respondData(c, property)
}

func GetPropertyHandler(c *gin.Context) {
	property, err := models.GetProperty(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "GetPropertyHandler", err)
		return
	}
	respondData(c, property)
}

func ListPropertiesHandler(c *gin.Context) {
	properties, err := models.GetAllProperties(c.Request.Context())
	if err != nil {
		respondError(c, "ListPropertiesHandler", err)
		return
	}
	respondData(c, properties)
}

func SetSettingHandler(c *gin.Context) {
	var input models.NewGeneralSetting
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "SetSettingHandler", err)
		return
	}
	setting, err := models.SetSetting(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "SetSettingHandler", err)
		return
	}
	respondData(c, setting)
}

func GetSettingHandler(c *gin.Context) {
	setting, err := models.GetSetting(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, "GetSettingHandler", err)
		return
	}
	respondData(c, setting)
}

func ListSettingsHandler(c *gin.Context) {
	settings, err := models.ListSettings(c.Request.Context())
	if err != nil {
		respondError(c, "ListSettingsHandler", err)
		return
	}
	respondData(c, settings)
}
