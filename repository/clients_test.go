package repository

import (
	"testing"

	"glambook-backend/models"
	"glambook-backend/storage"
)

func newTestStore(tenantID string) *storage.ScopedStore {
	return storage.NewScopedStore(storage.NewMemoryStore(), storage.Scope{TenantID: tenantID})
}

func TestClientCreateAndRoundTrip(t *testing.T) {
	repo := NewClientRepository(newTestStore("t1"))

	created, res := repo.Create(models.Client{
		FullName: "Dana Reyes",
		Phone:    "+15550100",
		Email:    "dana@example.com",
	}, "admin")
	if !res.Success {
		t.Fatalf("create failed: %s", res.Error)
	}
	if created.ID == "" || !created.State.IsActive() {
		t.Errorf("created = %+v", created)
	}

	all := repo.GetAll()
	if len(all) != 1 {
		t.Fatalf("got %d clients, want 1", len(all))
	}
	if all[0].FullName != "Dana Reyes" || all[0].Phone != "+15550100" || all[0].Email != "dana@example.com" {
		t.Errorf("round trip mismatch: %+v", all[0])
	}
}

func TestClientGetAllEmptyIsNotError(t *testing.T) {
	repo := NewClientRepository(newTestStore("t1"))
	if got := repo.GetAll(); len(got) != 0 {
		t.Errorf("expected empty list, got %v", got)
	}
	if repo.GetByID("missing") != nil {
		t.Error("missing id should be nil, not an error")
	}
}

func TestClientSaveDiffsFieldsIntoChangeLog(t *testing.T) {
	repo := NewClientRepository(newTestStore("t1"))
	created, _ := repo.Create(models.Client{FullName: "Dana Reyes", Phone: "+15550100"}, "admin")

	created.FullName = "Dana R. Reyes"
	if res := repo.Save(*created, "admin"); !res.Success {
		t.Fatalf("save failed: %s", res.Error)
	}

	changes := repo.Changes()
	if len(changes) != 1 {
		t.Fatalf("got %d change records, want 1", len(changes))
	}
	ch := changes[0]
	if ch.Field != "fullName" || ch.OldValue != "Dana Reyes" || ch.NewValue != "Dana R. Reyes" || ch.Actor != "admin" {
		t.Errorf("change record = %+v", ch)
	}
}

func TestClientSaveNoChangesNoLog(t *testing.T) {
	repo := NewClientRepository(newTestStore("t1"))
	created, _ := repo.Create(models.Client{FullName: "Dana Reyes"}, "admin")

	repo.Save(*created, "admin")
	if got := len(repo.Changes()); got != 0 {
		t.Errorf("unchanged save wrote %d change records", got)
	}
}

func TestClientValidationReturnsResultNotPanic(t *testing.T) {
	repo := NewClientRepository(newTestStore("t1"))

	if _, res := repo.Create(models.Client{}, "admin"); res.Success || res.Error == "" {
		t.Errorf("empty name should fail with a message, got %+v", res)
	}
	if _, res := repo.Create(models.Client{FullName: "A", Phone: "not-a-phone"}, "admin"); res.Success {
		t.Error("bad phone should fail validation")
	}
	if len(repo.GetAll()) != 0 {
		t.Error("failed creates must not persist")
	}
}

func TestClientGetByPhone(t *testing.T) {
	repo := NewClientRepository(newTestStore("t1"))
	repo.Create(models.Client{FullName: "Dana", Phone: "+15550100"}, "admin")

	if c := repo.GetByPhone("+15550100"); c == nil || c.FullName != "Dana" {
		t.Errorf("lookup by phone = %+v", c)
	}
	if c := repo.GetByPhone("+19990000"); c != nil {
		t.Error("unknown phone should be nil")
	}
}
