// controllers/auth.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"glambook-backend/models"
	"glambook-backend/utils"
)

type RegisterInput struct {
	Email        string       `json:"email" binding:"required,email"`
	Phone        string       `json:"phone" binding:"required"`
	Name         string       `json:"name" binding:"required"`
	Password     string       `json:"password" binding:"required,min=8"`
	BusinessName string       `json:"businessName" binding:"required"`
	BusinessType string       `json:"businessType"`
	Slug         string       `json:"slug" binding:"required"`
	Address      string       `json:"address"`
	WorkingHours models.JSONB `json:"workingHours"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Slug     string `json:"slug"`
}

// Register provisions the owner, the tenant, and its seeded default data in
// one flow, then issues a session token for the new tenant.
func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}
	if !Dir.IsSlugAvailable(input.Slug, "") {
		utils.RespondWithError(c, http.StatusConflict, "This address is already taken by another business")
		return
	}

	owner := Dir.GetOwnerByEmail(input.Email)
	if owner == nil {
		created, res := Dir.CreateOwner(models.TenantOwner{
			Email: input.Email,
			Phone: input.Phone,
			Name:  input.Name,
		}, input.Password)
		if !res.Success {
			utils.RespondWithError(c, http.StatusConflict, res.Error)
			return
		}
		owner = created
	} else if !utils.CheckPasswordHash(input.Password, owner.PasswordHash) {
		// An existing owner adding a second business must prove the password.
		utils.RespondWithError(c, http.StatusConflict, "This email is already registered with a different password")
		return
	}

	tenant, res := Dir.CreateTenant(models.Tenant{
		Name:         input.BusinessName,
		Slug:         input.Slug,
		BusinessType: input.BusinessType,
		ContactPhone: input.Phone,
		ContactEmail: input.Email,
		Address:      input.Address,
		WorkingHours: input.WorkingHours,
	}, owner.ID, "")
	if !res.Success {
		utils.RespondWithError(c, http.StatusConflict, res.Error)
		return
	}

	token, err := utils.GenerateToken(owner.ID, tenant.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"tenant": gin.H{
			"id":   tenant.ID,
			"slug": tenant.Slug,
			"name": tenant.Name,
		},
		"owner": gin.H{
			"id":    owner.ID,
			"email": owner.Email,
			"name":  owner.Name,
		},
	})
}

// Login authenticates an owner and issues a token for one of their tenants.
// With more than one owned business the slug picks which; otherwise the
// first active one wins.
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	owner := Dir.GetOwnerByEmail(input.Email)
	if owner == nil || !utils.CheckPasswordHash(input.Password, owner.PasswordHash) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	var tenant *models.Tenant
	for _, id := range owner.OwnedTenantIDs {
		t := Dir.GetByID(id)
		if t == nil || !t.State.IsActive() {
			continue
		}
		if input.Slug == "" || t.Slug == input.Slug {
			tenant = t
			break
		}
	}
	if tenant == nil {
		utils.RespondWithError(c, http.StatusNotFound, "No active business found for this account")
		return
	}

	now := time.Now()
	owner.LastLogin = &now
	Dir.SaveOwner(*owner)

	token, err := utils.GenerateToken(owner.ID, tenant.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"tenant": gin.H{
			"id":   tenant.ID,
			"slug": tenant.Slug,
			"name": tenant.Name,
		},
	})
}

// Me returns the authenticated owner and their businesses.
func Me(c *gin.Context) {
	ownerID := actorFrom(c)
	owner := Dir.GetOwnerByID(ownerID)
	if owner == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Account not found")
		return
	}

	var tenants []gin.H
	for _, id := range owner.OwnedTenantIDs {
		if t := Dir.GetByID(id); t != nil && t.State.IsActive() {
			tenants = append(tenants, gin.H{"id": t.ID, "slug": t.Slug, "name": t.Name})
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"id":      owner.ID,
		"email":   owner.Email,
		"name":    owner.Name,
		"tenants": tenants,
	})
}
