package handlers

import (
	"net/http"

	"github.com/airbooker/bookings_backend/models"
	"github.com/gin-gonic/gin"
)

func ListAgentsHandler(c *gin.Context) {
	agents, err := models.GetAgents(c.Request.Context())
	if err != nil {
		abortWithError(c, "agent_handler.go", "ListAgentsHandler", err)
		return
	}
	c.JSON(http.StatusOK, agents)
}

func CreateAgentHandler(c *gin.Context) {
	var input models.NewAgent
	if !bindJSON(c, &input) {
		return
	}

	agent, err := models.CreateAgent(c.Request.Context(), &input)
	if err != nil {
		abortWithError(c, "agent_handler.go", "CreateAgentHandler", err)
		return
	}
	c.JSON(http.StatusCreated, agent)
}

func GetAgentHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	agent, err := models.GetAgent(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, "agent_handler.go", "GetAgentHandler", err)
		return
	}
	c.JSON(http.StatusOK, agent)
}

func UpdateAgentHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var input models.NewAgent
	if !bindJSON(c, &input) {
		return
	}

	agent, err := models.UpdateAgent(c.Request.Context(), id, &input)
	if err != nil {
		abortWithError(c, "agent_handler.go", "UpdateAgentHandler", err)
		return
	}
	c.JSON(http.StatusOK, agent)
}

func DeleteAgentHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if _, err := models.DeleteAgent(c.Request.Context(), id); err != nil {
		abortWithError(c, "agent_handler.go", "DeleteAgentHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Agent deleted successfully"})
}
