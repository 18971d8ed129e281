package handlers

import (
	"net/http"

	"github.com/airbooker/bookings_backend/models"
	"github.com/gin-gonic/gin"
)

func GetSettingsHandler(c *gin.Context) {
	setting, err := models.GetOrCreateSetting(c.Request.Context())
	if err != nil {
		abortWithError(c, "settings_handler.go", "GetSettingsHandler", err)
		return
	}
	c.JSON(http.StatusOK, setting)
}

func UpdateSettingsHandler(c *gin.Context) {
	var input models.NewSetting
	if !bindJSON(c, &input) {
		return
	}

	setting, err := models.UpdateSetting(c.Request.Context(), &input)
	if err != nil {
		abortWithError(c, "settings_handler.go", "UpdateSettingsHandler", err)
		return
	}
	c.JSON(http.StatusOK, setting)
}
