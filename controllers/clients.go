// controllers/clients.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glambook-backend/utils"
)

type UpdateClientInput struct {
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Notes    *string `json:"notes"`
}

// GetClients retrieves the tenant's full client list.
func GetClients(c *gin.Context) {
	repos := reposFrom(c)
	c.JSON(http.StatusOK, repos.Clients.GetAll())
}

// GetClient retrieves one client with their spend and coupon standing.
func GetClient(c *gin.Context) {
	repos := reposFrom(c)
	client := repos.Clients.GetByID(c.Param("id"))
	if client == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return
	}
	engine := newRewardEngine(repos)
	c.JSON(http.StatusOK, gin.H{
		"client":           client,
		"totalSpending":    engine.CalculateClientTotalSpending(client.ID),
		"availableCoupons": engine.GetClientAvailableCoupons(client.ID),
		"appointments":     repos.Appointments.ForClient(client.ID),
	})
}

// UpdateClient updates mutable fields; every change lands in the sublog.
func UpdateClient(c *gin.Context) {
	repos := reposFrom(c)
	client := repos.Clients.GetByID(c.Param("id"))
	if client == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return
	}

	var input UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.FullName != nil {
		client.FullName = *input.FullName
	}
	if input.Phone != nil {
		client.Phone = *input.Phone
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Notes != nil {
		client.Notes = *input.Notes
	}

	if res := repos.Clients.Save(*client, actorFrom(c)); !res.Success {
		utils.RespondWithError(c, http.StatusBadRequest, res.Error)
		return
	}
	c.JSON(http.StatusOK, client)
}

// GetClientChanges returns the field-level change sublog.
func GetClientChanges(c *gin.Context) {
	repos := reposFrom(c)
	c.JSON(http.StatusOK, repos.Clients.Changes())
}
