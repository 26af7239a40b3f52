package repository

import (
	"strconv"
	"time"

	"go.uber.org/zap"

	"glambook-backend/logger"
	"glambook-backend/models"
	"glambook-backend/storage"
)

const (
	servicesKey        = "services"
	servicesChangesKey = "services-changes"
	productsKey        = "products"
	productsChangesKey = "products-changes"
	priceHistoryKey    = "price-history"
)

// Bulk price update modes.
const (
	PriceDeltaPercent = "percent"
	PriceDeltaFixed   = "fixed"
)

// CatalogRepository manages services and retail products. Price changes go to
// a dedicated price-history ledger on top of the regular field change sublog.
type CatalogRepository struct {
	st  *storage.ScopedStore
	log *zap.Logger
}

func NewCatalogRepository(st *storage.ScopedStore) *CatalogRepository {
	return &CatalogRepository{st: st, log: logger.Get()}
}

func (r *CatalogRepository) GetServices() []models.Service {
	return loadCollection[models.Service](r.st, servicesKey, r.log)
}

// GetActiveServices is what the public booking page lists.
func (r *CatalogRepository) GetActiveServices() []models.Service {
	var out []models.Service
	for _, s := range r.GetServices() {
		if s.State.IsActive() {
			out = append(out, s)
		}
	}
	return out
}

func (r *CatalogRepository) GetService(id string) *models.Service {
	for _, s := range r.GetServices() {
		if s.ID == id {
			return &s
		}
	}
	return nil
}

func (r *CatalogRepository) CreateService(partial models.Service, actor string) (*models.Service, Result) {
	now := time.Now()
	partial.ID = nextID()
	partial.State = models.LifecycleActive
	partial.CreatedAt = now
	partial.UpdatedAt = now
	res := r.SaveService(partial, actor)
	if !res.Success {
		return nil, res
	}
	return &partial, res
}

func (r *CatalogRepository) SaveService(svc models.Service, actor string) Result {
	if svc.Name == "" {
		return Fail("service name is required")
	}
	if len(svc.Name) > 100 {
		return Fail("service name must be at most 100 characters")
	}
	if svc.Price < 0 {
		return Fail("service price cannot be negative")
	}

	services := r.GetServices()
	svc.UpdatedAt = time.Now()
	replaced := false
	for i, existing := range services {
		if existing.ID != svc.ID {
			continue
		}
		changes := diffFields(svc.ID, actor,
			serviceFields(existing), serviceFields(svc))
		if len(changes) > 0 {
			if err := appendManyChanges(r.st, servicesChangesKey, changes, r.log); err != nil {
				return Fail(ErrStorage)
			}
		}
		if existing.Price != svc.Price {
			if err := appendTo(r.st, priceHistoryKey, models.PriceChange{
				EntityID:  svc.ID,
				OldPrice:  existing.Price,
				NewPrice:  svc.Price,
				Actor:     actor,
				Timestamp: time.Now(),
			}, r.log); err != nil {
				return Fail(ErrStorage)
			}
		}
		svc.CreatedAt = existing.CreatedAt
		services[i] = svc
		replaced = true
		break
	}
	if !replaced {
		services = append(services, svc)
	}
	if err := saveCollection(r.st, servicesKey, services, r.log); err != nil {
		return Fail(ErrStorage)
	}
	return OK()
}

// DeleteService soft-deletes; history and past appointments keep referring to
// the record.
func (r *CatalogRepository) DeleteService(id, actor string) bool {
	svc := r.GetService(id)
	if svc == nil {
		return false
	}
	svc.State = models.LifecycleDeleted
	return r.SaveService(*svc, actor).Success
}

// BulkUpdatePrices applies a percentage or fixed-amount delta to the given
// service ids in one pass. Unknown ids are skipped, never failing the batch;
// each affected service gets exactly one price-history row and one
// field-change entry.
func (r *CatalogRepository) BulkUpdatePrices(ids []string, mode string, amount float64, actor string) (int, Result) {
	if mode != PriceDeltaPercent && mode != PriceDeltaFixed {
		return 0, Fail("unknown price update mode")
	}
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	services := r.GetServices()
	now := time.Now()
	var priceRows []models.PriceChange
	var changeRows []models.ChangeRecord
	updated := 0
	for i, svc := range services {
		if !wanted[svc.ID] {
			continue
		}
		oldPrice := svc.Price
		newPrice := oldPrice + amount
		if mode == PriceDeltaPercent {
			newPrice = oldPrice * (1 + amount/100)
		}
		if newPrice < 0 {
			newPrice = 0
		}
		if newPrice == oldPrice {
			continue
		}
		services[i].Price = newPrice
		services[i].UpdatedAt = now
		priceRows = append(priceRows, models.PriceChange{
			EntityID: svc.ID, OldPrice: oldPrice, NewPrice: newPrice,
			Actor: actor, Timestamp: now,
		})
		changeRows = append(changeRows, models.ChangeRecord{
			EntityID: svc.ID, Field: "price",
			OldValue: formatPrice(oldPrice), NewValue: formatPrice(newPrice),
			Actor: actor, Timestamp: now,
		})
		updated++
	}
	if updated == 0 {
		return 0, OK()
	}
	if err := saveCollection(r.st, servicesKey, services, r.log); err != nil {
		return 0, Fail(ErrStorage)
	}
	if err := appendManyChanges(r.st, servicesChangesKey, changeRows, r.log); err != nil {
		return updated, Fail(ErrStorage)
	}
	history := loadCollection[models.PriceChange](r.st, priceHistoryKey, r.log)
	if err := saveCollection(r.st, priceHistoryKey, append(history, priceRows...), r.log); err != nil {
		return updated, Fail(ErrStorage)
	}
	return updated, OK()
}

func (r *CatalogRepository) PriceHistory() []models.PriceChange {
	return loadCollection[models.PriceChange](r.st, priceHistoryKey, r.log)
}

func (r *CatalogRepository) ServiceChanges() []models.ChangeRecord {
	return loadCollection[models.ChangeRecord](r.st, servicesChangesKey, r.log)
}

func (r *CatalogRepository) GetProducts() []models.Product {
	return loadCollection[models.Product](r.st, productsKey, r.log)
}

func (r *CatalogRepository) GetProduct(id string) *models.Product {
	for _, p := range r.GetProducts() {
		if p.ID == id {
			return &p
		}
	}
	return nil
}

func (r *CatalogRepository) CreateProduct(partial models.Product, actor string) (*models.Product, Result) {
	now := time.Now()
	partial.ID = nextID()
	partial.State = models.LifecycleActive
	partial.CreatedAt = now
	partial.UpdatedAt = now
	res := r.SaveProduct(partial, actor)
	if !res.Success {
		return nil, res
	}
	return &partial, res
}

func (r *CatalogRepository) SaveProduct(p models.Product, actor string) Result {
	if p.Name == "" {
		return Fail("product name is required")
	}
	if len(p.Name) > 100 {
		return Fail("product name must be at most 100 characters")
	}
	if p.Price < 0 {
		return Fail("product price cannot be negative")
	}

	products := r.GetProducts()
	p.UpdatedAt = time.Now()
	replaced := false
	for i, existing := range products {
		if existing.ID != p.ID {
			continue
		}
		changes := diffFields(p.ID, actor,
			productFields(existing), productFields(p))
		if len(changes) > 0 {
			if err := appendManyChanges(r.st, productsChangesKey, changes, r.log); err != nil {
				return Fail(ErrStorage)
			}
		}
		if existing.Price != p.Price {
			if err := appendTo(r.st, priceHistoryKey, models.PriceChange{
				EntityID:  p.ID,
				OldPrice:  existing.Price,
				NewPrice:  p.Price,
				Actor:     actor,
				Timestamp: time.Now(),
			}, r.log); err != nil {
				return Fail(ErrStorage)
			}
		}
		p.CreatedAt = existing.CreatedAt
		products[i] = p
		replaced = true
		break
	}
	if !replaced {
		products = append(products, p)
	}
	if err := saveCollection(r.st, productsKey, products, r.log); err != nil {
		return Fail(ErrStorage)
	}
	return OK()
}

func (r *CatalogRepository) DeleteProduct(id, actor string) bool {
	p := r.GetProduct(id)
	if p == nil {
		return false
	}
	p.State = models.LifecycleDeleted
	return r.SaveProduct(*p, actor).Success
}

func appendManyChanges(st *storage.ScopedStore, key string, changes []models.ChangeRecord, log *zap.Logger) error {
	existing := loadCollection[models.ChangeRecord](st, key, log)
	return saveCollection(st, key, append(existing, changes...), log)
}

func serviceFields(s models.Service) map[string]interface{} {
	return map[string]interface{}{
		"name":        s.Name,
		"description": s.Description,
		"category":    s.Category,
		"price":       s.Price,
		"duration":    s.Duration,
		"state":       s.State,
	}
}

func productFields(p models.Product) map[string]interface{} {
	return map[string]interface{}{
		"name":        p.Name,
		"description": p.Description,
		"category":    p.Category,
		"price":       p.Price,
		"stock":       p.Stock,
		"state":       p.State,
	}
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
