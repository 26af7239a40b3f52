// controllers/settings.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glambook-backend/utils"
)

type UpdateSalonSettingsInput struct {
	Name               *string  `json:"name"`
	Motto              *string  `json:"motto"`
	Address            *string  `json:"address"`
	Phone              *string  `json:"phone"`
	BookingOpenDays    *int     `json:"bookingOpenDays"`
	RewardThreshold    *float64 `json:"rewardThreshold"`
	RewardDiscountPct  *float64 `json:"rewardDiscountPct"`
	RewardValidityDays *int     `json:"rewardValidityDays"`
}

type UpdateThemeInput struct {
	PrimaryColor    *string `json:"primaryColor"`
	SecondaryColor  *string `json:"secondaryColor"`
	AccentColor     *string `json:"accentColor"`
	BackgroundColor *string `json:"backgroundColor"`
	FontFamily      *string `json:"fontFamily"`
}

func GetSettings(c *gin.Context) {
	repos := reposFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"salon": repos.Settings.GetSalon(),
		"theme": repos.Settings.GetTheme(),
	})
}

// UpdateSalonSettings saves the singleton record; a successful save is
// published on the settings bus so open views refresh without polling.
func UpdateSalonSettings(c *gin.Context) {
	repos := reposFrom(c)
	settings := repos.Settings.GetSalon()

	var input UpdateSalonSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Name != nil {
		settings.Name = *input.Name
	}
	if input.Motto != nil {
		settings.Motto = *input.Motto
	}
	if input.Address != nil {
		settings.Address = *input.Address
	}
	if input.Phone != nil {
		settings.Phone = *input.Phone
	}
	if input.BookingOpenDays != nil {
		settings.BookingOpenDays = *input.BookingOpenDays
	}
	if input.RewardThreshold != nil {
		settings.RewardThreshold = *input.RewardThreshold
	}
	if input.RewardDiscountPct != nil {
		settings.RewardDiscountPct = *input.RewardDiscountPct
	}
	if input.RewardValidityDays != nil {
		settings.RewardValidityDays = *input.RewardValidityDays
	}

	if res := repos.Settings.SaveSalon(settings, actorFrom(c)); !res.Success {
		utils.RespondWithError(c, http.StatusBadRequest, res.Error)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func UpdateTheme(c *gin.Context) {
	repos := reposFrom(c)
	theme := repos.Settings.GetTheme()

	var input UpdateThemeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.PrimaryColor != nil {
		theme.PrimaryColor = *input.PrimaryColor
	}
	if input.SecondaryColor != nil {
		theme.SecondaryColor = *input.SecondaryColor
	}
	if input.AccentColor != nil {
		theme.AccentColor = *input.AccentColor
	}
	if input.BackgroundColor != nil {
		theme.BackgroundColor = *input.BackgroundColor
	}
	if input.FontFamily != nil {
		theme.FontFamily = *input.FontFamily
	}

	if res := repos.Settings.SaveTheme(theme, actorFrom(c)); !res.Success {
		utils.RespondWithError(c, http.StatusBadRequest, res.Error)
		return
	}
	c.JSON(http.StatusOK, theme)
}

// GetSettingsChanges returns the before/after change history.
func GetSettingsChanges(c *gin.Context) {
	repos := reposFrom(c)
	c.JSON(http.StatusOK, repos.Settings.Changes())
}

// GetNotificationLog returns the confirmation-message ledger.
func GetNotificationLog(c *gin.Context) {
	repos := reposFrom(c)
	c.JSON(http.StatusOK, repos.Notifications.GetAll())
}
