// controllers/rewards.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glambook-backend/utils"
)

// GetClientRewards returns a client's spend, available coupons and ledger.
func GetClientRewards(c *gin.Context) {
	repos := reposFrom(c)
	clientID := c.Param("id")
	if repos.Clients.GetByID(clientID) == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return
	}
	engine := newRewardEngine(repos)
	c.JSON(http.StatusOK, gin.H{
		"totalSpending":    engine.CalculateClientTotalSpending(clientID),
		"availableCoupons": engine.GetClientAvailableCoupons(clientID),
	})
}

// GenerateCoupon mints a coupon for a client who crossed the threshold; 409
// when they have not, or when an active coupon already exists.
func GenerateCoupon(c *gin.Context) {
	repos := reposFrom(c)
	clientID := c.Param("id")
	if repos.Clients.GetByID(clientID) == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return
	}
	coupon := newRewardEngine(repos).GenerateRewardCoupon(clientID)
	if coupon == nil {
		utils.RespondWithError(c, http.StatusConflict,
			"Client is below the reward threshold or already has an active coupon")
		return
	}
	c.JSON(http.StatusCreated, coupon)
}

type RedeemInput struct {
	Code          string `json:"code" binding:"required"`
	AppointmentID string `json:"appointmentId" binding:"required"`
}

// RedeemCoupon applies a coupon to an appointment from the admin side.
func RedeemCoupon(c *gin.Context) {
	repos := reposFrom(c)

	var input RedeemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result := newRewardEngine(repos).UseRewardCoupon(input.Code, input.AppointmentID)
	if !result.Success {
		c.JSON(http.StatusBadRequest, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetRewardHistory returns the tenant's full reward ledger for audit.
func GetRewardHistory(c *gin.Context) {
	repos := reposFrom(c)
	c.JSON(http.StatusOK, repos.Rewards.History())
}
