// controllers/staff.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glambook-backend/models"
	"glambook-backend/services"
	"glambook-backend/utils"
)

type CreateStaffInput struct {
	FullName    string                        `json:"fullName" binding:"required"`
	Phone       string                        `json:"phone"`
	Email       string                        `json:"email"`
	Specialties []string                      `json:"specialties"`
	Schedule    map[string]models.DaySchedule `json:"schedule"`
}

type UpdateStaffInput struct {
	FullName    *string                        `json:"fullName"`
	Phone       *string                        `json:"phone"`
	Email       *string                        `json:"email"`
	Specialties *[]string                      `json:"specialties"`
	Schedule    *map[string]models.DaySchedule `json:"schedule"`
	Rating      *float64                       `json:"rating"`
	State       *models.Lifecycle              `json:"state"`
}

func GetStaff(c *gin.Context) {
	repos := reposFrom(c)
	c.JSON(http.StatusOK, repos.Staff.GetAll())
}

func AddStaff(c *gin.Context) {
	repos := reposFrom(c)

	var input CreateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	member, res := repos.Staff.Create(models.StaffMember{
		FullName:    input.FullName,
		Phone:       input.Phone,
		Email:       input.Email,
		Specialties: input.Specialties,
		Schedule:    input.Schedule,
	}, actorFrom(c))
	if !res.Success {
		utils.RespondWithError(c, http.StatusBadRequest, res.Error)
		return
	}
	c.JSON(http.StatusCreated, member)
}

// UpdateStaff routes the save through the integrity guard so flipping a
// member out of the active state remediates their future bookings.
func UpdateStaff(c *gin.Context) {
	repos := reposFrom(c)
	member := repos.Staff.GetByID(c.Param("id"))
	if member == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
		return
	}

	var input UpdateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	updated := *member
	if input.FullName != nil {
		updated.FullName = *input.FullName
	}
	if input.Phone != nil {
		updated.Phone = *input.Phone
	}
	if input.Email != nil {
		updated.Email = *input.Email
	}
	if input.Specialties != nil {
		updated.Specialties = *input.Specialties
	}
	if input.Schedule != nil {
		updated.Schedule = *input.Schedule
	}
	if input.Rating != nil {
		updated.Rating = *input.Rating
	}
	if input.State != nil {
		updated.State = *input.State
	}

	guard := services.NewStaffIntegrityGuard(repos.Staff, repos.Appointments)
	if res := guard.HandleStaffUpdate(*member, updated); !res.Success {
		utils.RespondWithError(c, http.StatusBadRequest, res.Error)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteStaff removes a staff member. The remediation for their future
// appointments comes from query params: action=cancel|reassign and, for
// reassignment, reassignTo=<staffId>. With future bookings and no action the
// guard refuses and the UI re-prompts.
func DeleteStaff(c *gin.Context) {
	repos := reposFrom(c)
	member := repos.Staff.GetByID(c.Param("id"))
	if member == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
		return
	}

	guard := services.NewStaffIntegrityGuard(repos.Staff, repos.Appointments)
	res := guard.HandleStaffDeletion(*member, c.Query("action"), c.Query("reassignTo"))
	if !res.Success {
		utils.RespondWithError(c, http.StatusConflict, res.Error)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff member removed"})
}

// GetStaffAppointments shows the bindings an admin reviews before choosing a
// remediation.
func GetStaffAppointments(c *gin.Context) {
	repos := reposFrom(c)
	guard := services.NewStaffIntegrityGuard(repos.Staff, repos.Appointments)
	staffID := c.Param("id")
	c.JSON(http.StatusOK, gin.H{
		"future": guard.GetFutureAppointmentsForStaff(staffID),
		"all":    guard.GetAllAppointmentsForStaff(staffID),
	})
}

// CleanupOrphans runs the drift sweep on demand and reports the count for
// the admin notice line.
func CleanupOrphans(c *gin.Context) {
	repos := reposFrom(c)
	guard := services.NewStaffIntegrityGuard(repos.Staff, repos.Appointments)
	c.JSON(http.StatusOK, gin.H{"remediated": guard.CleanupOrphanedAppointments()})
}
