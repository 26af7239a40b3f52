// controllers/tenant.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glambook-backend/utils"
)

// ResolveTenant is the public landing lookup: branding and booking basics for
// a slug, or 404 for the "business not found" view.
func ResolveTenant(c *gin.Context) {
	tenant := tenantFrom(c)
	repos := reposFrom(c)
	theme := repos.Settings.GetTheme()
	salon := repos.Settings.GetSalon()

	c.JSON(http.StatusOK, gin.H{
		"id":           tenant.ID,
		"slug":         tenant.Slug,
		"name":         tenant.Name,
		"businessType": tenant.BusinessType,
		"motto":        salon.Motto,
		"address":      salon.Address,
		"phone":        salon.Phone,
		"workingHours": tenant.WorkingHours,
		"theme":        theme,
	})
}

// CheckSlug backs the registration form's availability check. With only a
// business name it derives and checks a slug suggestion instead.
func CheckSlug(c *gin.Context) {
	slug := c.Query("slug")
	if slug == "" {
		if name := c.Query("name"); name != "" {
			slug = utils.Slugify(name)
		}
	}
	if slug == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "slug or name query parameter required")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"slug":      slug,
		"available": Dir.IsSlugAvailable(slug, c.Query("excludeId")),
	})
}

// DeleteTenant soft-deletes the business and purges its storage namespace.
// Only the owning account may do this.
func DeleteTenant(c *gin.Context) {
	tenant := tenantFrom(c)
	if tenant.OwnerID != actorFrom(c) {
		utils.RespondWithError(c, http.StatusForbidden, "Only the owner can delete the business")
		return
	}
	if !Dir.DeleteTenant(tenant.ID) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete business")
		return
	}
	Registry.Drop(tenant.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Business deleted"})
}

type UpdateTenantInput struct {
	Name         *string `json:"name"`
	Slug         *string `json:"slug"`
	Address      *string `json:"address"`
	ContactPhone *string `json:"contactPhone"`
	PrimaryColor *string `json:"primaryColor"`
}

// UpdateTenant edits directory-level fields; a slug change re-runs the
// availability check excluding the tenant itself.
func UpdateTenant(c *gin.Context) {
	tenant := tenantFrom(c)

	var input UpdateTenantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Name != nil {
		tenant.Name = *input.Name
	}
	if input.Slug != nil && *input.Slug != tenant.Slug {
		if !Dir.IsSlugAvailable(*input.Slug, tenant.ID) {
			utils.RespondWithError(c, http.StatusConflict, "This address is already taken by another business")
			return
		}
		tenant.Slug = *input.Slug
	}
	if input.Address != nil {
		tenant.Address = *input.Address
	}
	if input.ContactPhone != nil {
		if !utils.ValidatePhone(*input.ContactPhone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		tenant.ContactPhone = *input.ContactPhone
	}
	if input.PrimaryColor != nil {
		tenant.Branding.PrimaryColor = *input.PrimaryColor
	}

	if res := Dir.SaveTenant(*tenant); !res.Success {
		utils.RespondWithError(c, http.StatusInternalServerError, res.Error)
		return
	}
	c.JSON(http.StatusOK, tenant)
}
