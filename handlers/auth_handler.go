package handlers

import (
	"net/http"

	"github.com/airbooker/bookings_backend/models"
	"github.com/gin-gonic/gin"
)

func RegisterHandler(c *gin.Context) {
	var input models.NewUser
	if !bindJSON(c, &input) {
		return
	}

	user, err := models.RegisterUser(c.Request.Context(), &input)
	if err != nil {
		abortWithError(c, "auth_handler.go", "RegisterHandler", err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func LoginHandler(c *gin.Context) {
	var input models.LoginInput
	if !bindJSON(c, &input) {
		return
	}

	user, token, err := models.LoginUser(c.Request.Context(), &input)
	if err != nil {
		abortWithError(c, "auth_handler.go", "LoginHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
