package storage

import "strings"

const tenantKeyPrefix = "tenant-"

// Scope identifies the tenant a repository operates on. The zero Scope is
// legacy single-business mode: keys pass through unchanged so pre-tenant data
// is never orphaned. A Scope is resolved once per request from the URL slug
// and injected into repository constructors; there is no ambient global.
type Scope struct {
	TenantID string
}

// Key composes the storage key for base under this scope. The two-mode
// format (`tenant-<id>-<base>` with a tenant, bare base without) is a wire
// contract and must not change.
func (s Scope) Key(base string) string {
	if s.TenantID == "" {
		return base
	}
	return tenantKeyPrefix + s.TenantID + "-" + base
}

// Prefix returns the namespace prefix covering every key of this scope.
func (s Scope) Prefix() string {
	if s.TenantID == "" {
		return ""
	}
	return tenantKeyPrefix + s.TenantID + "-"
}

// Owns reports whether key belongs to this scope's namespace.
func (s Scope) Owns(key string) bool {
	if s.TenantID == "" {
		return !strings.HasPrefix(key, tenantKeyPrefix)
	}
	return strings.HasPrefix(key, s.Prefix())
}

// ScopedStore binds a Store to one tenant's namespace. Every repository goes
// through this seam; none may touch the raw store directly, which is what
// guarantees two tenants observe completely disjoint data.
type ScopedStore struct {
	store Store
	scope Scope
}

func NewScopedStore(store Store, scope Scope) *ScopedStore {
	return &ScopedStore{store: store, scope: scope}
}

func (s *ScopedStore) Scope() Scope {
	return s.scope
}

func (s *ScopedStore) Get(base string) (string, bool) {
	return s.store.Get(s.scope.Key(base))
}

func (s *ScopedStore) Set(base, value string) error {
	return s.store.Set(s.scope.Key(base), value)
}

func (s *ScopedStore) Remove(base string) error {
	return s.store.Remove(s.scope.Key(base))
}

// Subscribe listens for changes within this scope only, translating keys back
// to their base form. This is how settings written through another handle to
// the same backing store converge without polling.
func (s *ScopedStore) Subscribe(fn func(base, newValue string)) func() {
	prefix := s.scope.Prefix()
	return s.store.Subscribe(func(ev Event) {
		if !s.scope.Owns(ev.Key) || ev.Removed {
			return
		}
		fn(strings.TrimPrefix(ev.Key, prefix), ev.NewValue)
	})
}

// PurgeScope hard-deletes every key in the scope's namespace. Correct only
// after the owning tenant is soft-deleted, since nothing can resolve to it
// again. A zero scope refuses to purge rather than wiping legacy data.
func PurgeScope(store Store, scope Scope) int {
	prefix := scope.Prefix()
	if prefix == "" {
		return 0
	}
	keys := store.Keys(prefix)
	for _, k := range keys {
		store.Remove(k)
	}
	return len(keys)
}
