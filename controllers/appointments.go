// controllers/appointments.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glambook-backend/models"
	"glambook-backend/utils"
)

type UpdateStatusInput struct {
	Status models.AppointmentStatus `json:"status" binding:"required"`
	Reason string                   `json:"reason"`
}

func GetAppointments(c *gin.Context) {
	repos := reposFrom(c)
	c.JSON(http.StatusOK, repos.Appointments.GetAll())
}

func GetAppointment(c *gin.Context) {
	repos := reposFrom(c)
	appt := repos.Appointments.GetByID(c.Param("id"))
	if appt == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		return
	}
	c.JSON(http.StatusOK, appt)
}

// UpdateAppointmentStatus is the only HTTP path that can move an appointment
// between states; the transition lands in the append-only history. Completing
// an appointment also gives the reward engine a chance to mint a coupon.
func UpdateAppointmentStatus(c *gin.Context) {
	repos := reposFrom(c)
	appt := repos.Appointments.GetByID(c.Param("id"))
	if appt == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		return
	}

	var input UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if res := repos.Appointments.UpdateStatus(appt.ID, input.Status, actorFrom(c), input.Reason); !res.Success {
		utils.RespondWithError(c, http.StatusBadRequest, res.Error)
		return
	}

	response := gin.H{"appointment": repos.Appointments.GetByID(appt.ID)}
	// appt still holds the pre-transition status, so a repeated "completed"
	// call is a no-op here too.
	if input.Status == models.AppointmentCompleted && appt.Status != models.AppointmentCompleted {
		if appt.StaffID != "" {
			repos.Staff.RecordCompletedService(appt.StaffID)
		}
		if coupon := newRewardEngine(repos).GenerateRewardCoupon(appt.ClientID); coupon != nil {
			response["rewardCoupon"] = coupon
		}
	}
	c.JSON(http.StatusOK, response)
}
