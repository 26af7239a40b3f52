package repository

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"glambook-backend/logger"
	"glambook-backend/models"
	"glambook-backend/storage"
	"glambook-backend/utils"
)

// Global (un-scoped) keys. ownersKey stays outside the tenant- prefix so
// tenant namespace scans and zero-scope subscribers classify it correctly.
const (
	tenantsKey = "tenants"
	ownersKey  = "owners"
)

// reservedSlugs cannot be used by a tenant; they collide with fixed routes.
var reservedSlugs = map[string]bool{
	"register": true,
	"auth":     true,
	"api":      true,
	"metrics":  true,
	"healthz":  true,
}

// TenantDirectory is the root of all isolation: it resolves URL slugs to
// tenants, owns the tenant/owner lists (the only un-scoped collections), and
// provisions or purges per-tenant data.
type TenantDirectory struct {
	store storage.Store
	st    *storage.ScopedStore // zero scope: global keys
	log   *zap.Logger
}

func NewTenantDirectory(store storage.Store) *TenantDirectory {
	return &TenantDirectory{
		store: store,
		st:    storage.NewScopedStore(store, storage.Scope{}),
		log:   logger.Get(),
	}
}

// Store exposes the backing store so callers can build per-tenant scopes.
func (d *TenantDirectory) Store() storage.Store {
	return d.store
}

func (d *TenantDirectory) GetAll() []models.Tenant {
	return loadCollection[models.Tenant](d.st, tenantsKey, d.log)
}

// ResolveTenantFromPath takes the first non-empty path segment and looks up
// an active tenant with that exact slug. Nil is "business not found", not an
// error.
func (d *TenantDirectory) ResolveTenantFromPath(path string) *models.Tenant {
	slug := ""
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			slug = seg
			break
		}
	}
	if slug == "" {
		return nil
	}
	return d.GetBySlug(slug)
}

func (d *TenantDirectory) GetBySlug(slug string) *models.Tenant {
	for _, t := range d.GetAll() {
		if t.Slug == slug && t.State.IsActive() {
			return &t
		}
	}
	return nil
}

func (d *TenantDirectory) GetByID(id string) *models.Tenant {
	for _, t := range d.GetAll() {
		if t.ID == id {
			return &t
		}
	}
	return nil
}

// IsSlugAvailable checks uniqueness across active tenants. excludeID lets the
// slug-edit form accept the tenant's own current slug.
func (d *TenantDirectory) IsSlugAvailable(slug, excludeID string) bool {
	if !utils.ValidateSlug(slug) || reservedSlugs[slug] {
		return false
	}
	for _, t := range d.GetAll() {
		if t.ID != excludeID && t.Slug == slug && t.State.IsActive() {
			return false
		}
	}
	return true
}

// CreateTenant assigns identity, persists the tenant, and seeds the scoped
// default data for its business type. Pass ownerPassword to provision an
// administrator credential in the same step (registration does).
func (d *TenantDirectory) CreateTenant(data models.Tenant, ownerID, ownerPassword string) (*models.Tenant, Result) {
	if data.Name == "" {
		return nil, Fail("business name is required")
	}
	if !utils.ValidateSlug(data.Slug) || reservedSlugs[data.Slug] {
		return nil, Fail("slug must be 2-40 lowercase letters, digits or hyphens")
	}
	if !d.IsSlugAvailable(data.Slug, "") {
		return nil, Fail("this address is already taken by another business")
	}

	now := time.Now()
	data.ID = nextID()
	data.OwnerID = ownerID
	data.State = models.LifecycleActive
	if data.BusinessType == "" {
		data.BusinessType = models.BusinessTypeSalon
	}
	if data.WorkingHours == nil {
		data.WorkingHours = models.DefaultWorkingHours()
	}
	if data.Plan == "" {
		data.Plan = "starter"
		data.PlanStatus = "trial"
		data.PlanExpiry = now.AddDate(0, 1, 0)
	}
	data.CreatedAt = now
	data.UpdatedAt = now

	tenants := append(d.GetAll(), data)
	if err := saveCollection(d.st, tenantsKey, tenants, d.log); err != nil {
		return nil, Fail(ErrStorage)
	}

	if ownerID != "" {
		if owner := d.GetOwnerByID(ownerID); owner != nil {
			owner.OwnedTenantIDs = append(owner.OwnedTenantIDs, data.ID)
			if ownerPassword != "" {
				hash, err := utils.HashPassword(ownerPassword)
				if err != nil {
					d.log.Error("owner credential hash failed", zap.Error(err))
				} else {
					owner.PasswordHash = hash
				}
			}
			d.SaveOwner(*owner)
		}
	}

	d.seedTenantData(data)
	return &data, OK()
}

// DeleteTenant soft-deletes the tenant and purges every key in its storage
// namespace. Entities elsewhere are never hard-deleted; namespace keys are,
// because nothing can resolve to this tenant again.
func (d *TenantDirectory) DeleteTenant(id string) bool {
	tenants := d.GetAll()
	for i, t := range tenants {
		if t.ID != id {
			continue
		}
		tenants[i].State = models.LifecycleDeleted
		tenants[i].UpdatedAt = time.Now()
		if err := saveCollection(d.st, tenantsKey, tenants, d.log); err != nil {
			return false
		}
		purged := storage.PurgeScope(d.store, storage.Scope{TenantID: id})
		d.log.Info("tenant purged",
			zap.String("tenant", id), zap.Int("keysRemoved", purged))
		return true
	}
	return false
}

func (d *TenantDirectory) GetOwners() []models.TenantOwner {
	return loadCollection[models.TenantOwner](d.st, ownersKey, d.log)
}

func (d *TenantDirectory) GetOwnerByID(id string) *models.TenantOwner {
	for _, o := range d.GetOwners() {
		if o.ID == id {
			return &o
		}
	}
	return nil
}

func (d *TenantDirectory) GetOwnerByEmail(email string) *models.TenantOwner {
	for _, o := range d.GetOwners() {
		if strings.EqualFold(o.Email, email) {
			return &o
		}
	}
	return nil
}

func (d *TenantDirectory) CreateOwner(partial models.TenantOwner, password string) (*models.TenantOwner, Result) {
	if partial.Email == "" {
		return nil, Fail("email is required")
	}
	if d.GetOwnerByEmail(partial.Email) != nil {
		return nil, Fail("this email is already registered")
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		d.log.Error("password hash failed", zap.Error(err))
		return nil, Fail(ErrStorage)
	}
	now := time.Now()
	partial.ID = nextID()
	partial.PasswordHash = hash
	partial.State = models.LifecycleActive
	partial.CreatedAt = now
	partial.UpdatedAt = now
	if res := d.SaveOwner(partial); !res.Success {
		return nil, res
	}
	return &partial, OK()
}

func (d *TenantDirectory) SaveOwner(owner models.TenantOwner) Result {
	owners := d.GetOwners()
	owner.UpdatedAt = time.Now()
	replaced := false
	for i, o := range owners {
		if o.ID == owner.ID {
			owners[i] = owner
			replaced = true
			break
		}
	}
	if !replaced {
		owners = append(owners, owner)
	}
	if err := saveCollection(d.st, ownersKey, owners, d.log); err != nil {
		return Fail(ErrStorage)
	}
	return OK()
}

func (d *TenantDirectory) SaveTenant(tenant models.Tenant) Result {
	tenants := d.GetAll()
	tenant.UpdatedAt = time.Now()
	for i, t := range tenants {
		if t.ID == tenant.ID {
			tenants[i] = tenant
			if err := saveCollection(d.st, tenantsKey, tenants, d.log); err != nil {
				return Fail(ErrStorage)
			}
			return OK()
		}
	}
	return Fail("tenant not found")
}

// seedTenantData writes the default catalog for the business type plus empty
// collections and default settings into the new tenant's namespace.
func (d *TenantDirectory) seedTenantData(t models.Tenant) {
	scoped := storage.NewScopedStore(d.store, storage.Scope{TenantID: t.ID})

	now := time.Now()
	var services []models.Service
	for _, seed := range defaultCatalog(t.BusinessType) {
		seed.ID = nextID()
		seed.State = models.LifecycleActive
		seed.CreatedAt = now
		seed.UpdatedAt = now
		services = append(services, seed)
	}
	saveCollection(scoped, servicesKey, services, d.log)
	saveCollection(scoped, clientsKey, []models.Client{}, d.log)
	saveCollection(scoped, appointmentsKey, []models.Appointment{}, d.log)
	saveCollection(scoped, staffKey, []models.StaffMember{}, d.log)

	settings := NewSettingsRepository(scoped)
	defer settings.Close()
	salon := models.DefaultSalonSettings(t.Name)
	salon.Phone = t.ContactPhone
	salon.Address = t.Address
	settings.SaveSalon(salon, "system")
	theme := models.DefaultThemeSettings()
	if t.Branding.PrimaryColor != "" {
		theme.PrimaryColor = t.Branding.PrimaryColor
	}
	if t.Branding.SecondaryColor != "" {
		theme.SecondaryColor = t.Branding.SecondaryColor
	}
	settings.SaveTheme(theme, "system")
}

func defaultCatalog(businessType string) []models.Service {
	switch businessType {
	case models.BusinessTypeBarbershop:
		return []models.Service{
			{Name: "Classic Cut", Category: "Hair", Price: 25, Duration: 30},
			{Name: "Beard Trim", Category: "Beard", Price: 15, Duration: 20},
			{Name: "Hot Towel Shave", Category: "Beard", Price: 30, Duration: 40},
			{Name: "Cut & Beard Combo", Category: "Hair", Price: 35, Duration: 50},
		}
	case models.BusinessTypeSpa:
		return []models.Service{
			{Name: "Swedish Massage", Category: "Massage", Price: 70, Duration: 60},
			{Name: "Deep Tissue Massage", Category: "Massage", Price: 85, Duration: 60},
			{Name: "Facial Treatment", Category: "Skin", Price: 60, Duration: 45},
			{Name: "Body Scrub", Category: "Skin", Price: 55, Duration: 45},
		}
	case models.BusinessTypeNails:
		return []models.Service{
			{Name: "Classic Manicure", Category: "Nails", Price: 25, Duration: 30},
			{Name: "Gel Manicure", Category: "Nails", Price: 40, Duration: 45},
			{Name: "Pedicure", Category: "Nails", Price: 35, Duration: 45},
			{Name: "Nail Art", Category: "Nails", Price: 20, Duration: 30},
		}
	default:
		return []models.Service{
			{Name: "Haircut & Style", Category: "Hair", Price: 45, Duration: 45},
			{Name: "Full Color", Category: "Hair", Price: 90, Duration: 120},
			{Name: "Blowout", Category: "Hair", Price: 35, Duration: 30},
			{Name: "Classic Manicure", Category: "Nails", Price: 25, Duration: 30},
			{Name: "Facial Treatment", Category: "Skin", Price: 60, Duration: 45},
		}
	}
}
