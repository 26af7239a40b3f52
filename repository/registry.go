package repository

import (
	"sync"
	"time"

	"glambook-backend/bus"
	"glambook-backend/logger"
	"glambook-backend/storage"
)

// TenantRepos bundles one tenant's repositories over its scoped store. It is
// built once per tenant and reused across requests, so the staff cache and
// the settings bus subscriptions stay alive between calls.
type TenantRepos struct {
	Scope         storage.Scope
	Store         *storage.ScopedStore
	Mutations     *bus.Bus[string]
	Clients       *ClientRepository
	Appointments  *AppointmentRepository
	Catalog       *CatalogRepository
	Staff         *StaffRepository
	Settings      *SettingsRepository
	Rewards       *RewardRepository
	Notifications *NotificationRepository
}

// Registry hands out TenantRepos per tenant id. This is the explicit
// replacement for the ambient current-tenant global: the HTTP layer resolves
// the slug, asks the registry, and everything downstream carries the scope.
type Registry struct {
	store    storage.Store
	staffTTL time.Duration

	mu      sync.Mutex
	tenants map[string]*TenantRepos
}

func NewRegistry(store storage.Store, staffTTL time.Duration) *Registry {
	return &Registry{
		store:    store,
		staffTTL: staffTTL,
		tenants:  make(map[string]*TenantRepos),
	}
}

// For returns the tenant's repository bundle, building it on first use.
func (r *Registry) For(tenantID string) *TenantRepos {
	r.mu.Lock()
	defer r.mu.Unlock()
	if repos, ok := r.tenants[tenantID]; ok {
		return repos
	}

	scope := storage.Scope{TenantID: tenantID}
	scoped := storage.NewScopedStore(r.store, scope)
	mutations := bus.New[string](logger.Get())
	repos := &TenantRepos{
		Scope:         scope,
		Store:         scoped,
		Mutations:     mutations,
		Clients:       NewClientRepository(scoped),
		Appointments:  NewAppointmentRepository(scoped),
		Catalog:       NewCatalogRepository(scoped),
		Staff:         NewStaffRepository(scoped, mutations, r.staffTTL),
		Settings:      NewSettingsRepository(scoped),
		Rewards:       NewRewardRepository(scoped),
		Notifications: NewNotificationRepository(scoped),
	}
	r.tenants[tenantID] = repos
	return repos
}

// Drop forgets a tenant's bundle after deletion so its caches cannot serve
// purged data and its store subscriptions do not linger.
func (r *Registry) Drop(tenantID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if repos, ok := r.tenants[tenantID]; ok {
		repos.Settings.Close()
		delete(r.tenants, tenantID)
	}
}
