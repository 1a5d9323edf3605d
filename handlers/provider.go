package handlers

import (
	"bitbucket.org/mmdatafocus/altavista_backend/models"
	"github.com/gin-gonic/gin"
)

func CreateProviderHandler(c *gin.Context) {
	var input models.NewProvider
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "CreateProviderHandler", err)
		return
	}
	provider, err := models.CreateProvider(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateProviderHandler", err)
		return
	}
	respondData(c, provider)
}

func UpdateProviderHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewProvider
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "UpdateProviderHandler", err)
		return
	}
	provider, err := models.UpdateProvider(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "UpdateProviderHandler", err)
		return
	}
	respondData(c, provider)
}

func DeleteProviderHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	provider, err := models.DeleteProvider(c.Request.Context(), id)
	if err != nil {
		respondError(c, "DeleteProviderHandler", err)
		return
	}
	respondData(c, provider)
}

func GetProviderHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	provider, err := models.GetProvider(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetProviderHandler", err)
		return
	}
	respondData(c, provider)
}

func ListProvidersHandler(c *gin.Context) {
	providers, err := models.ListAllProviders(c.Request.Context())
	if err != nil {
		respondError(c, "ListProvidersHandler", err)
		return
	}
	respondData(c, providers)
}

func ToggleProviderStateHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	provider, err := models.ToggleProviderState(c.Request.Context(), id)
	if err != nil {
		respondError(c, "ToggleProviderStateHandler", err)
		return
	}
	respondData(c, provider)
}

func PaginateProvidersHandler(c *gin.Context) {
	var state *models.ProviderState
	if raw := stringQuery(c, "state"); raw != nil {
		value := models.ProviderState(*raw)
		state = &value
	}
	connection, err := models.PaginateProvider(c.Request.Context(),
		limitQuery(c), afterQuery(c), state, stringQuery(c, "keyword"))
	if err != nil {
		respondError(c, "PaginateProvidersHandler", err)
		return
	}
	respondData(c, connection)
}
