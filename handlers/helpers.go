package handlers

import (
	"net/http"
	"strconv"
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/config"
	"bitbucket.org/mmdatafocus/altavista_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const handlersModule = "handlers"

// respondError maps model errors onto HTTP codes. Validation errors
// from binding come back field-by-field.
func respondError(c *gin.Context, funcName string, err error) {
	if err == utils.ErrorRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(validationErrors)})
		return
	}
	config.LogError(config.GetLogger(), handlersModule, funcName, c.FullPath(), nil, err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func respondData(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// limitQuery caps page sizes at the configured search limit.
func limitQuery(c *gin.Context) *int {
	limit := config.SearchLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	return &limit
}

func afterQuery(c *gin.Context) *string {
	if raw := c.Query("after"); raw != "" {
		return &raw
	}
	return nil
}

func stringQuery(c *gin.Context, name string) *string {
	if raw := c.Query(name); raw != "" {
		return &raw
	}
	return nil
}

func intQuery(c *gin.Context, name string) *int {
	if raw := c.Query(name); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return &n
		}
	}
	return nil
}

func boolQuery(c *gin.Context, name string) bool {
	raw := c.Query(name)
	return raw == "true" || raw == "1"
}

// dateQuery parses YYYY-MM-DD; def applies when absent or malformed.
func dateQuery(c *gin.Context, name string, def time.Time) time.Time {
	if raw := c.Query(name); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			return t
		}
	}
	return def
}

func timeQueryPtr(c *gin.Context, name string) *time.Time {
	if raw := c.Query(name); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			return &t
		}
	}
	return nil
}
