package handlers

import (
	"net/http"
	"strconv"

	"github.com/airbooker/bookings_backend/config"
	"github.com/airbooker/bookings_backend/models"
	"github.com/airbooker/bookings_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// bindJSON binds and reports validator failures as a field->tag map.
func bindJSON(c *gin.Context, input interface{}) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(err)})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// abortWithError maps domain failures onto HTTP statuses and logs the rest.
func abortWithError(c *gin.Context, moduleName string, funcName string, err error) {
	switch {
	case err == utils.ErrorRecordNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case utils.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case utils.IsInsufficientCreditError(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case err == models.ErrorEmailInUse || err == models.ErrorUsernameInUse:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err == models.ErrorBadCredentials || err == models.ErrorUserDeactivated:
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		config.LogError(config.GetLogger(), moduleName, funcName, "request failed", requestLogFields(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func requestLogFields(c *gin.Context) map[string]interface{} {
	fields := map[string]interface{}{"path": c.Request.URL.Path}
	if cid, ok := utils.GetCorrelationIdFromContext(c.Request.Context()); ok {
		fields["correlation_id"] = cid
	}
	if name, ok := utils.GetUserNameFromContext(c.Request.Context()); ok {
		fields["user_name"] = name
	}
	return fields
}

// decimalFromJSONValue accepts a JSON number or a user-formatted string like
// "20,000".
func decimalFromJSONValue(v interface{}) (decimal.Decimal, error) {
	switch value := v.(type) {
	case string:
		return utils.ParseDecimalLoose(value)
	case float64:
		return decimal.NewFromFloat(value), nil
	default:
		return decimal.Zero, utils.NewValidationError("amount", "a numeric amount is required")
	}
}
