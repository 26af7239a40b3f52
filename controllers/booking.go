// controllers/booking.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"glambook-backend/metrics"
	"glambook-backend/models"
	"glambook-backend/utils"
)

type BookInput struct {
	FullName   string    `json:"fullName" binding:"required"`
	Phone      string    `json:"phone" binding:"required"`
	Email      string    `json:"email"`
	ServiceIDs []string  `json:"serviceIds" binding:"required,min=1"`
	StaffID    string    `json:"staffId"`
	Date       time.Time `json:"date" binding:"required"`
	CouponCode string    `json:"couponCode"`
	Notes      string    `json:"notes"`
}

// PublicCatalog lists the bookable services for the tenant.
func PublicCatalog(c *gin.Context) {
	repos := reposFrom(c)
	c.JSON(http.StatusOK, repos.Catalog.GetActiveServices())
}

// PublicStaff lists active staff so the client can pick a person.
func PublicStaff(c *gin.Context) {
	repos := reposFrom(c)
	c.JSON(http.StatusOK, repos.Staff.GetActive())
}

// Book is the client-facing booking flow: find or create the client by
// phone, price the selected services, create the appointment, apply a coupon
// when one was entered, and fire the confirmation without blocking.
func Book(c *gin.Context) {
	repos := reposFrom(c)

	var input BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	now := time.Now()
	if input.Date.Before(now) {
		utils.RespondWithError(c, http.StatusBadRequest, "Appointment date must be in the future")
		return
	}
	if openDays := repos.Settings.GetSalon().BookingOpenDays; openDays > 0 {
		if utils.DaysBetween(now, input.Date) > openDays {
			utils.RespondWithError(c, http.StatusBadRequest, "This business only accepts bookings up to "+strconv.Itoa(openDays)+" days ahead")
			return
		}
	}

	var selected []models.Service
	total := 0.0
	for _, id := range input.ServiceIDs {
		svc := repos.Catalog.GetService(id)
		if svc == nil || !svc.State.IsActive() {
			utils.RespondWithError(c, http.StatusBadRequest, "One of the selected services is no longer offered")
			return
		}
		selected = append(selected, *svc)
		total += svc.Price
	}

	if input.StaffID != "" {
		staff := repos.Staff.GetByID(input.StaffID)
		if staff == nil || !staff.State.IsActive() {
			utils.RespondWithError(c, http.StatusBadRequest, "The selected staff member is not available")
			return
		}
	}

	client := repos.Clients.GetByPhone(input.Phone)
	if client == nil {
		created, res := repos.Clients.Create(models.Client{
			FullName: input.FullName,
			Phone:    input.Phone,
			Email:    input.Email,
		}, "booking")
		if !res.Success {
			utils.RespondWithError(c, http.StatusBadRequest, res.Error)
			return
		}
		client = created
	}

	appt, res := repos.Appointments.Create(models.Appointment{
		ClientID:   client.ID,
		StaffID:    input.StaffID,
		ServiceIDs: input.ServiceIDs,
		Date:       input.Date,
		TotalPrice: total,
		Notes:      input.Notes,
	}, "booking")
	if !res.Success {
		utils.RespondWithError(c, http.StatusBadRequest, res.Error)
		return
	}

	response := gin.H{
		"appointment": appt,
		"client":      client,
	}
	if input.CouponCode != "" {
		redemption := newRewardEngine(repos).UseRewardCoupon(input.CouponCode, appt.ID)
		response["coupon"] = redemption
		if redemption.Success {
			appt = repos.Appointments.GetByID(appt.ID)
			response["appointment"] = appt
		}
	}

	metrics.BookingsCreated.Inc()
	go Notify.SendBookingConfirmation(repos.Notifications, *client, *appt, selected)

	c.JSON(http.StatusCreated, response)
}

// MyCoupons lets a returning client check their available coupons by phone.
func MyCoupons(c *gin.Context) {
	repos := reposFrom(c)
	phone := c.Query("phone")
	if phone == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "phone query parameter required")
		return
	}
	client := repos.Clients.GetByPhone(phone)
	if client == nil {
		c.JSON(http.StatusOK, []models.RewardCoupon{})
		return
	}
	coupons := newRewardEngine(repos).GetClientAvailableCoupons(client.ID)
	if coupons == nil {
		coupons = []models.RewardCoupon{}
	}
	c.JSON(http.StatusOK, coupons)
}
