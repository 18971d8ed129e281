package handlers

import (
	"net/http"

	"github.com/airbooker/bookings_backend/models"
	"github.com/gin-gonic/gin"
)

type CreditUpdateInput struct {
	TotalAmount interface{} `json:"total_amount" binding:"required"`
	Notes       string      `json:"notes"`
}

type CreditUsedInput struct {
	UsedAmount interface{} `json:"used_amount" binding:"required"`
	Notes      string      `json:"notes"`
}

type CreditCheckInput struct {
	Amount interface{} `json:"amount"`
}

// GetCreditHandler returns the singleton credit record, creating a zeroed one
// on first access.
func GetCreditHandler(c *gin.Context) {
	credit, err := models.GetOrCreateCredit(c.Request.Context())
	if err != nil {
		abortWithError(c, "credit_handler.go", "GetCreditHandler", err)
		return
	}
	c.JSON(http.StatusOK, credit)
}

// UpdateCreditHandler overwrites the credit limit (POST /credit and
// PUT /credit/total share this behavior).
func UpdateCreditHandler(c *gin.Context) {
	var input CreditUpdateInput
	if !bindJSON(c, &input) {
		return
	}

	total, err := decimalFromJSONValue(input.TotalAmount)
	if err != nil {
		abortWithError(c, "credit_handler.go", "UpdateCreditHandler", err)
		return
	}

	credit, err := models.SetCreditTotal(c.Request.Context(), total, input.Notes)
	if err != nil {
		abortWithError(c, "credit_handler.go", "UpdateCreditHandler", err)
		return
	}
	c.JSON(http.StatusCreated, credit)
}

// SetCreditUsedHandler is the administrative override of the consumed amount.
func SetCreditUsedHandler(c *gin.Context) {
	var input CreditUsedInput
	if !bindJSON(c, &input) {
		return
	}

	used, err := decimalFromJSONValue(input.UsedAmount)
	if err != nil {
		abortWithError(c, "credit_handler.go", "SetCreditUsedHandler", err)
		return
	}

	credit, err := models.SetCreditUsed(c.Request.Context(), used, input.Notes)
	if err != nil {
		abortWithError(c, "credit_handler.go", "SetCreditUsedHandler", err)
		return
	}
	c.JSON(http.StatusOK, credit)
}

// CheckCreditHandler answers whether a requested commission amount fits the
// remaining pool without mutating anything.
func CheckCreditHandler(c *gin.Context) {
	var input CreditCheckInput
	if !bindJSON(c, &input) {
		return
	}

	amount, err := decimalFromJSONValue(input.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	result, err := models.CheckCreditAvailability(c.Request.Context(), amount)
	if err != nil {
		abortWithError(c, "credit_handler.go", "CheckCreditHandler", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
