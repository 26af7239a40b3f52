package repository

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"glambook-backend/bus"
	"glambook-backend/logger"
	"glambook-backend/models"
	"glambook-backend/storage"
)

const (
	staffKey        = "staff"
	staffChangesKey = "staff-changes"
)

// StaffRepository is the hot-read repository: the roster is consulted on
// every booking-page render, so reads go through a short-lived cache. The
// cache is invalidated synchronously by the mutation bus whenever the staff
// collection changes, and ForceRefresh always bypasses it.
type StaffRepository struct {
	st       *storage.ScopedStore
	log      *zap.Logger
	mutation *bus.Bus[string]
	ttl      time.Duration

	mu       sync.Mutex
	cache    []models.StaffMember
	cachedAt time.Time
}

// NewStaffRepository wires the cache to the mutation bus. Pass ttl = 0 to
// disable caching entirely (tests mostly do).
func NewStaffRepository(st *storage.ScopedStore, mutation *bus.Bus[string], ttl time.Duration) *StaffRepository {
	r := &StaffRepository{st: st, log: logger.Get(), mutation: mutation, ttl: ttl}
	if mutation != nil {
		mutation.Subscribe(func(collection string) {
			if collection == staffKey {
				r.invalidate()
			}
		})
	}
	return r
}

func (r *StaffRepository) GetAll() []models.StaffMember {
	r.mu.Lock()
	if r.cache != nil && time.Since(r.cachedAt) < r.ttl {
		cached := r.cache
		r.mu.Unlock()
		return cached
	}
	r.mu.Unlock()
	return r.ForceRefresh()
}

// ForceRefresh reads straight from the store, repopulating the cache. Callers
// use it right after a write they just issued.
func (r *StaffRepository) ForceRefresh() []models.StaffMember {
	staff := loadCollection[models.StaffMember](r.st, staffKey, r.log)
	r.mu.Lock()
	r.cache = staff
	r.cachedAt = time.Now()
	r.mu.Unlock()
	return staff
}

func (r *StaffRepository) GetByID(id string) *models.StaffMember {
	for _, s := range r.GetAll() {
		if s.ID == id {
			return &s
		}
	}
	return nil
}

func (r *StaffRepository) GetActive() []models.StaffMember {
	var out []models.StaffMember
	for _, s := range r.GetAll() {
		if s.State.IsActive() {
			out = append(out, s)
		}
	}
	return out
}

func (r *StaffRepository) Create(partial models.StaffMember, actor string) (*models.StaffMember, Result) {
	now := time.Now()
	partial.ID = nextID()
	partial.State = models.LifecycleActive
	if partial.Schedule == nil {
		partial.Schedule = models.DefaultStaffSchedule()
	}
	partial.CreatedAt = now
	partial.UpdatedAt = now
	res := r.Save(partial, actor)
	if !res.Success {
		return nil, res
	}
	return &partial, res
}

// Validate runs the same checks Save applies. Callers with side effects that
// depend on the save succeeding check here first.
func (r *StaffRepository) Validate(member models.StaffMember) Result {
	if member.FullName == "" {
		return Fail("staff name is required")
	}
	if len(member.FullName) > 120 {
		return Fail("staff name must be at most 120 characters")
	}
	return OK()
}

func (r *StaffRepository) Save(member models.StaffMember, actor string) Result {
	if res := r.Validate(member); !res.Success {
		return res
	}

	staff := r.ForceRefresh()
	member.UpdatedAt = time.Now()
	replaced := false
	for i, existing := range staff {
		if existing.ID != member.ID {
			continue
		}
		changes := diffFields(member.ID, actor,
			staffFields(existing), staffFields(member))
		if len(changes) > 0 {
			if err := appendManyChanges(r.st, staffChangesKey, changes, r.log); err != nil {
				return Fail(ErrStorage)
			}
		}
		member.CreatedAt = existing.CreatedAt
		staff[i] = member
		replaced = true
		break
	}
	if !replaced {
		staff = append(staff, member)
	}
	if err := saveCollection(r.st, staffKey, staff, r.log); err != nil {
		return Fail(ErrStorage)
	}
	r.publishMutation()
	return OK()
}

// Overwrite replaces the roster in one write; the integrity guard uses it for
// all-or-nothing remediation bookkeeping.
func (r *StaffRepository) Overwrite(staff []models.StaffMember) Result {
	if err := saveCollection(r.st, staffKey, staff, r.log); err != nil {
		return Fail(ErrStorage)
	}
	r.publishMutation()
	return OK()
}

// RecordCompletedService bumps the member's completed-service counter when an
// appointment finishes. Unknown ids are ignored; the appointment keeps its own
// record either way.
func (r *StaffRepository) RecordCompletedService(staffID string) {
	staff := r.ForceRefresh()
	for i, s := range staff {
		if s.ID != staffID {
			continue
		}
		staff[i].CompletedServices++
		staff[i].UpdatedAt = time.Now()
		if err := saveCollection(r.st, staffKey, staff, r.log); err != nil {
			r.log.Error("completed-service counter write failed",
				zap.String("staff", staffID), zap.Error(err))
			return
		}
		r.publishMutation()
		return
	}
}

func (r *StaffRepository) Changes() []models.ChangeRecord {
	return loadCollection[models.ChangeRecord](r.st, staffChangesKey, r.log)
}

func (r *StaffRepository) publishMutation() {
	r.invalidate()
	if r.mutation != nil {
		r.mutation.Publish(staffKey)
	}
}

func (r *StaffRepository) invalidate() {
	r.mu.Lock()
	r.cache = nil
	r.mu.Unlock()
}

func staffFields(s models.StaffMember) map[string]interface{} {
	return map[string]interface{}{
		"fullName":    s.FullName,
		"phone":       s.Phone,
		"email":       s.Email,
		"specialties": s.Specialties,
		"rating":      s.Rating,
		"state":       s.State,
	}
}
