package handlers

import (
	"net/http"

	"bitbucket.org/mmdatafocus/altavista_backend/models"
	"bitbucket.org/mmdatafocus/altavista_backend/utils"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func LoginHandler(c *gin.Context) {
	var input loginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "LoginHandler", err)
		return
	}

	token, user, err := models.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

func LogoutHandler(c *gin.Context) {
	token, ok := utils.GetTokenFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}
	if err := models.Logout(c.Request.Context(), token); err != nil {
		respondError(c, "LogoutHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

func ChangePasswordHandler(c *gin.Context) {
	username, ok := utils.GetUsernameFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}
	var input changePasswordRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "ChangePasswordHandler", err)
		return
	}
	err := models.ChangePassword(c.Request.Context(), username, input.CurrentPassword, input.NewPassword)
	if err != nil {
		respondError(c, "ChangePasswordHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

func CreateAdminUserHandler(c *gin.Context) {
	var input models.NewAdminUser
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "CreateAdminUserHandler", err)
		return
	}
	user, err := models.CreateAdminUser(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateAdminUserHandler", err)
		return
	}
	respondData(c, user)
}

func ListAdminUsersHandler(c *gin.Context) {
	users, err := models.ListAdminUsers(c.Request.Context())
	if err != nil {
		respondError(c, "ListAdminUsersHandler", err)
		return
	}
	respondData(c, users)
}

// IssueServiceTokenHandler mints a signed token for unattended callers.
func IssueServiceTokenHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	token, err := models.IssueServiceToken(c.Request.Context(), id)
	if err != nil {
		respondError(c, "IssueServiceTokenHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

type toggleActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

func ToggleAdminUserHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input toggleActiveRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "ToggleAdminUserHandler", err)
		return
	}
	user, err := models.ToggleActiveAdminUser(c.Request.Context(), id, *input.IsActive)
	if err != nil {
		respondError(c, "ToggleAdminUserHandler", err)
		return
	}
	respondData(c, user)
}
