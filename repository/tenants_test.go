package repository

import (
	"testing"

	"glambook-backend/models"
	"glambook-backend/storage"
)

func newDirectory() (*TenantDirectory, storage.Store) {
	store := storage.NewMemoryStore()
	return NewTenantDirectory(store), store
}

func mustCreateTenant(t *testing.T, dir *TenantDirectory, name, slug string) *models.Tenant {
	t.Helper()
	tenant, res := dir.CreateTenant(models.Tenant{Name: name, Slug: slug}, "", "")
	if !res.Success {
		t.Fatalf("create tenant %q: %s", slug, res.Error)
	}
	return tenant
}

func TestCreateTenantRejectsDuplicateSlug(t *testing.T) {
	dir, _ := newDirectory()
	mustCreateTenant(t, dir, "Glow Studio", "glow-studio")

	if _, res := dir.CreateTenant(models.Tenant{Name: "Other", Slug: "glow-studio"}, "", ""); res.Success {
		t.Error("duplicate slug must fail")
	}
}

func TestCreateTenantRejectsReservedAndInvalidSlugs(t *testing.T) {
	dir, _ := newDirectory()
	for _, slug := range []string{"register", "auth", "api", "metrics", "healthz", "Bad Slug", "-leading", "x"} {
		if _, res := dir.CreateTenant(models.Tenant{Name: "X", Slug: slug}, "", ""); res.Success {
			t.Errorf("slug %q accepted, want rejection", slug)
		}
	}
}

func TestIsSlugAvailableExcludesOwnID(t *testing.T) {
	dir, _ := newDirectory()
	tenant := mustCreateTenant(t, dir, "Glow Studio", "glow-studio")

	if dir.IsSlugAvailable("glow-studio", "") {
		t.Error("taken slug reported available")
	}
	if !dir.IsSlugAvailable("glow-studio", tenant.ID) {
		t.Error("tenant editing its own slug must see it as available")
	}
	if !dir.IsSlugAvailable("fresh-slug", "") {
		t.Error("free slug reported unavailable")
	}
}

func TestResolveTenantFromPath(t *testing.T) {
	dir, _ := newDirectory()
	tenant := mustCreateTenant(t, dir, "Glow Studio", "glow-studio")

	for _, path := range []string{"/glow-studio", "/glow-studio/booking", "glow-studio"} {
		got := dir.ResolveTenantFromPath(path)
		if got == nil || got.ID != tenant.ID {
			t.Errorf("ResolveTenantFromPath(%q) = %v", path, got)
		}
	}
	if dir.ResolveTenantFromPath("/Glow-Studio") != nil {
		t.Error("slug matching must be case-sensitive")
	}
	if dir.ResolveTenantFromPath("/unknown") != nil {
		t.Error("unknown slug must resolve to nil")
	}
	if dir.ResolveTenantFromPath("/") != nil {
		t.Error("empty path must resolve to nil")
	}
}

func TestCreateTenantSeedsCatalogAndSettings(t *testing.T) {
	dir, store := newDirectory()
	tenant, res := dir.CreateTenant(models.Tenant{
		Name:         "Fade Factory",
		Slug:         "fade-factory",
		BusinessType: models.BusinessTypeBarbershop,
	}, "", "")
	if !res.Success {
		t.Fatalf("create: %s", res.Error)
	}

	scoped := storage.NewScopedStore(store, storage.Scope{TenantID: tenant.ID})
	catalog := NewCatalogRepository(scoped)
	services := catalog.GetActiveServices()
	if len(services) != 4 {
		t.Fatalf("seeded %d services, want 4", len(services))
	}

	settings := NewSettingsRepository(scoped)
	if got := settings.GetSalon().Name; got != "Fade Factory" {
		t.Errorf("seeded salon name = %q", got)
	}
}

func TestTenantIsolation(t *testing.T) {
	dir, store := newDirectory()
	a := mustCreateTenant(t, dir, "Salon A", "salon-a")
	b := mustCreateTenant(t, dir, "Salon B", "salon-b")

	clientsA := NewClientRepository(storage.NewScopedStore(store, storage.Scope{TenantID: a.ID}))
	clientsB := NewClientRepository(storage.NewScopedStore(store, storage.Scope{TenantID: b.ID}))

	if _, res := clientsA.Create(models.Client{FullName: "Ana", Phone: "+4470111122"}, "admin"); !res.Success {
		t.Fatalf("create client: %s", res.Error)
	}
	if got := clientsB.GetAll(); len(got) != 0 {
		t.Errorf("tenant B sees %d of tenant A's clients", len(got))
	}
}

func TestDeleteTenantPurgesNamespace(t *testing.T) {
	dir, store := newDirectory()
	a := mustCreateTenant(t, dir, "Salon A", "salon-a")
	b := mustCreateTenant(t, dir, "Salon B", "salon-b")

	if !dir.DeleteTenant(a.ID) {
		t.Fatal("delete failed")
	}

	keys := store.Keys("tenant-" + a.ID + "-")
	if len(keys) != 0 {
		t.Errorf("%d keys survive the purge: %v", len(keys), keys)
	}

	if dir.GetBySlug("salon-a") != nil {
		t.Error("deleted tenant still resolves by slug")
	}
	if got := dir.GetByID(a.ID); got == nil || got.State != models.LifecycleDeleted {
		t.Errorf("tenant record = %+v, want soft-deleted", got)
	}

	// The sibling tenant keeps its data.
	catalogB := NewCatalogRepository(storage.NewScopedStore(store, storage.Scope{TenantID: b.ID}))
	if got := catalogB.GetActiveServices(); len(got) == 0 {
		t.Error("sibling tenant lost its seeded catalog")
	}
}

func TestSlugFreedAfterDelete(t *testing.T) {
	dir, _ := newDirectory()
	a := mustCreateTenant(t, dir, "Salon A", "salon-a")
	if !dir.DeleteTenant(a.ID) {
		t.Fatal("delete failed")
	}
	if !dir.IsSlugAvailable("salon-a", "") {
		t.Error("slug of a deleted tenant should be reusable")
	}
	mustCreateTenant(t, dir, "New Salon A", "salon-a")
}

func TestOwnerLifecycle(t *testing.T) {
	dir, _ := newDirectory()

	owner, res := dir.CreateOwner(models.TenantOwner{
		Email: "dana@example.com",
		Name:  "Dana",
	}, "s3cret-pass")
	if !res.Success {
		t.Fatalf("create owner: %s", res.Error)
	}
	if owner.PasswordHash == "" || owner.PasswordHash == "s3cret-pass" {
		t.Error("password stored unhashed")
	}

	if _, res := dir.CreateOwner(models.TenantOwner{Email: "DANA@example.com"}, "x"); res.Success {
		t.Error("duplicate email (case-insensitive) must fail")
	}

	tenant, res := dir.CreateTenant(models.Tenant{Name: "Dana's", Slug: "danas"}, owner.ID, "")
	if !res.Success {
		t.Fatalf("create tenant: %s", res.Error)
	}
	got := dir.GetOwnerByID(owner.ID)
	if len(got.OwnedTenantIDs) != 1 || got.OwnedTenantIDs[0] != tenant.ID {
		t.Errorf("owned tenants = %v", got.OwnedTenantIDs)
	}
}

func TestOwnersLiveOutsideTenantNamespaces(t *testing.T) {
	dir, store := newDirectory()

	if _, res := dir.CreateOwner(models.TenantOwner{
		Email: "dana@example.com",
		Name:  "Dana",
	}, "s3cret-pass"); !res.Success {
		t.Fatalf("create owner: %s", res.Error)
	}

	// The owner directory is global state; tenant namespace scans (and the
	// per-tenant purge built on them) must never pick it up.
	if keys := store.Keys("tenant-"); len(keys) != 0 {
		t.Errorf("tenant namespace scan surfaced global keys: %v", keys)
	}

	var seen []string
	global := storage.NewScopedStore(store, storage.Scope{})
	unsub := global.Subscribe(func(base, _ string) { seen = append(seen, base) })
	defer unsub()

	if _, res := dir.CreateOwner(models.TenantOwner{
		Email: "eli@example.com",
		Name:  "Eli",
	}, "s3cret-pass"); !res.Success {
		t.Fatalf("create owner: %s", res.Error)
	}
	found := false
	for _, base := range seen {
		if base == "owners" {
			found = true
		}
	}
	if !found {
		t.Errorf("zero-scope subscriber never saw the owners key, got %v", seen)
	}
}
