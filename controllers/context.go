// controllers/context.go
package controllers

import (
	"glambook-backend/config"
	"glambook-backend/models"
	"glambook-backend/repository"
	"glambook-backend/services"

	"github.com/gin-gonic/gin"
)

// Package-level collaborators, wired once at startup.
var (
	Dir      *repository.TenantDirectory
	Registry *repository.Registry
	Cfg      *config.Config
	Notify   *services.NotifyService
)

func Init(dir *repository.TenantDirectory, registry *repository.Registry, cfg *config.Config, notify *services.NotifyService) {
	Dir = dir
	Registry = registry
	Cfg = cfg
	Notify = notify
}

// tenantFrom returns the tenant the slug middleware resolved.
func tenantFrom(c *gin.Context) *models.Tenant {
	v, ok := c.Get("tenant")
	if !ok {
		return nil
	}
	return v.(*models.Tenant)
}

// reposFrom returns the request tenant's repository bundle.
func reposFrom(c *gin.Context) *repository.TenantRepos {
	v, ok := c.Get("repos")
	if !ok {
		return nil
	}
	return v.(*repository.TenantRepos)
}

// actorFrom names the authenticated owner for change logs, falling back to
// "admin" when the claim is missing.
func actorFrom(c *gin.Context) string {
	if v, ok := c.Get("ownerId"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "admin"
}

func newRewardEngine(r *repository.TenantRepos) *services.RewardEngine {
	return services.NewRewardEngine(r.Appointments, r.Rewards, r.Clients, r.Settings, Cfg.Reward)
}
