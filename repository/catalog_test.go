package repository

import (
	"testing"

	"glambook-backend/models"
)

func seedServices(t *testing.T, repo *CatalogRepository, prices ...float64) []models.Service {
	t.Helper()
	var out []models.Service
	for i, p := range prices {
		svc, res := repo.CreateService(models.Service{
			Name:     "Service " + string(rune('A'+i)),
			Category: "Hair",
			Price:    p,
			Duration: 30,
		}, "admin")
		if !res.Success {
			t.Fatalf("seed service: %s", res.Error)
		}
		out = append(out, *svc)
	}
	return out
}

func TestBulkUpdatePricesSkipsMissingIDs(t *testing.T) {
	repo := NewCatalogRepository(newTestStore("t1"))
	seeded := seedServices(t, repo, 100, 200)

	ids := []string{seeded[0].ID, seeded[1].ID, "does-not-exist"}
	updated, res := repo.BulkUpdatePrices(ids, PriceDeltaPercent, 50, "admin")
	if !res.Success {
		t.Fatalf("bulk update failed: %s", res.Error)
	}
	if updated != 2 {
		t.Errorf("updated %d services, want 2", updated)
	}

	if got := repo.GetService(seeded[0].ID).Price; got != 150 {
		t.Errorf("price = %v, want 150", got)
	}
	if got := repo.GetService(seeded[1].ID).Price; got != 300 {
		t.Errorf("price = %v, want 300", got)
	}

	history := repo.PriceHistory()
	if len(history) != 2 {
		t.Fatalf("price history has %d rows, want exactly 2", len(history))
	}
	changes := repo.ServiceChanges()
	if len(changes) != 2 {
		t.Errorf("change log has %d rows, want 2", len(changes))
	}
}

func TestBulkUpdatePricesFixedMode(t *testing.T) {
	repo := NewCatalogRepository(newTestStore("t1"))
	seeded := seedServices(t, repo, 40)

	if _, res := repo.BulkUpdatePrices([]string{seeded[0].ID}, PriceDeltaFixed, -50, "admin"); !res.Success {
		t.Fatalf("bulk update failed: %s", res.Error)
	}
	// Deltas below zero clamp to a free service, not a negative price.
	if got := repo.GetService(seeded[0].ID).Price; got != 0 {
		t.Errorf("price = %v, want 0", got)
	}
}

func TestBulkUpdatePricesUnknownMode(t *testing.T) {
	repo := NewCatalogRepository(newTestStore("t1"))
	if _, res := repo.BulkUpdatePrices([]string{"x"}, "half", 1, "admin"); res.Success {
		t.Error("unknown mode must fail")
	}
}

func TestSaveServicePriceChangeWritesLedger(t *testing.T) {
	repo := NewCatalogRepository(newTestStore("t1"))
	seeded := seedServices(t, repo, 45)

	svc := seeded[0]
	svc.Price = 55
	if res := repo.SaveService(svc, "admin"); !res.Success {
		t.Fatalf("save: %s", res.Error)
	}

	history := repo.PriceHistory()
	if len(history) != 1 {
		t.Fatalf("ledger rows = %d, want 1", len(history))
	}
	if history[0].OldPrice != 45 || history[0].NewPrice != 55 || history[0].EntityID != svc.ID {
		t.Errorf("ledger row = %+v", history[0])
	}
}

func TestDeleteServiceIsSoft(t *testing.T) {
	repo := NewCatalogRepository(newTestStore("t1"))
	seeded := seedServices(t, repo, 30)

	if !repo.DeleteService(seeded[0].ID, "admin") {
		t.Fatal("delete reported failure")
	}
	if repo.DeleteService("missing", "admin") {
		t.Error("deleting a missing id should report false")
	}

	all := repo.GetServices()
	if len(all) != 1 {
		t.Fatalf("record hard-deleted; have %d", len(all))
	}
	if all[0].State != models.LifecycleDeleted {
		t.Errorf("state = %s, want deleted", all[0].State)
	}
	if got := repo.GetActiveServices(); len(got) != 0 {
		t.Error("deleted service still listed as active")
	}
}

func TestProductRoundTrip(t *testing.T) {
	repo := NewCatalogRepository(newTestStore("t1"))

	p, res := repo.CreateProduct(models.Product{Name: "Argan Oil", Price: 18, Stock: 12}, "admin")
	if !res.Success {
		t.Fatalf("create product: %s", res.Error)
	}

	p.Stock = 11
	if res := repo.SaveProduct(*p, "admin"); !res.Success {
		t.Fatalf("save product: %s", res.Error)
	}
	got := repo.GetProduct(p.ID)
	if got == nil || got.Stock != 11 {
		t.Errorf("product = %+v", got)
	}
}
