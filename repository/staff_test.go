package repository

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"glambook-backend/bus"
	"glambook-backend/models"
)

func TestStaffCacheServesWarmReadsUntilForceRefresh(t *testing.T) {
	st := newTestStore("t1")
	repo := NewStaffRepository(st, nil, time.Minute)
	other := NewStaffRepository(st, nil, 0)

	if _, res := repo.Create(models.StaffMember{FullName: "Leo"}, "admin"); !res.Success {
		t.Fatalf("create: %s", res.Error)
	}
	if got := repo.GetAll(); len(got) != 1 {
		t.Fatalf("warm-up read = %d members", len(got))
	}

	// A write through another handle, with no shared mutation bus, leaves the
	// first handle's cache warm and stale.
	if _, res := other.Create(models.StaffMember{FullName: "Sam"}, "admin"); !res.Success {
		t.Fatalf("create: %s", res.Error)
	}
	if got := repo.GetAll(); len(got) != 1 {
		t.Errorf("warm cache re-read the store: %d members", len(got))
	}

	if got := repo.ForceRefresh(); len(got) != 2 {
		t.Errorf("ForceRefresh returned %d members, want 2", len(got))
	}
	if got := repo.GetAll(); len(got) != 2 {
		t.Errorf("cache not repopulated by ForceRefresh: %d members", len(got))
	}
}

func TestStaffCacheInvalidatedByMutationBus(t *testing.T) {
	st := newTestStore("t1")
	mut := bus.New[string](zap.NewNop())
	reader := NewStaffRepository(st, mut, time.Minute)
	writer := NewStaffRepository(st, mut, time.Minute)

	if _, res := writer.Create(models.StaffMember{FullName: "Leo"}, "admin"); !res.Success {
		t.Fatalf("create: %s", res.Error)
	}
	if got := reader.GetAll(); len(got) != 1 {
		t.Fatalf("warm-up read = %d members", len(got))
	}

	if _, res := writer.Create(models.StaffMember{FullName: "Sam"}, "admin"); !res.Success {
		t.Fatalf("create: %s", res.Error)
	}
	if got := reader.GetAll(); len(got) != 2 {
		t.Errorf("bus publication did not invalidate the cache: %d members", len(got))
	}

	// Other collections' mutations leave the roster cache alone.
	mut.Publish("clients")
	if got := reader.GetAll(); len(got) != 2 {
		t.Errorf("unrelated publication broke the roster read: %d members", len(got))
	}
}

func TestRecordCompletedService(t *testing.T) {
	repo := NewStaffRepository(newTestStore("t1"), nil, 0)
	m, res := repo.Create(models.StaffMember{FullName: "Leo"}, "admin")
	if !res.Success {
		t.Fatalf("create: %s", res.Error)
	}

	repo.RecordCompletedService(m.ID)
	repo.RecordCompletedService(m.ID)
	if got := repo.GetByID(m.ID).CompletedServices; got != 2 {
		t.Errorf("completedServices = %d, want 2", got)
	}

	repo.RecordCompletedService("missing")
	if got := repo.GetByID(m.ID).CompletedServices; got != 2 {
		t.Errorf("unknown id changed the counter: %d", got)
	}
}
