// Package repository implements the tenant-scoped domain repositories. All of
// them share the same contract: whole-collection JSON persistence over the
// scoped store, soft deletes, field-level change sublogs, and Result-shaped
// failures. Reads never error for "not found".
package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"glambook-backend/models"
	"glambook-backend/storage"
)

// loadCollection reads the full scoped collection under key. An unset key is
// an empty list, not an error; a corrupt payload is logged and treated as
// empty so one bad record cannot brick the tenant.
func loadCollection[T any](st *storage.ScopedStore, key string, log *zap.Logger) []T {
	raw, ok := st.Get(key)
	if !ok || raw == "" {
		return nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Error("corrupt collection payload",
			zap.String("key", key), zap.Error(err))
		return nil
	}
	return items
}

// saveCollection writes the whole collection back. This read-modify-write is
// last-write-wins with no version token, preserved as documented behavior for
// the single-admin-per-tenant usage pattern.
func saveCollection[T any](st *storage.ScopedStore, key string, items []T, log *zap.Logger) error {
	raw, err := json.Marshal(items)
	if err != nil {
		log.Error("collection marshal failed", zap.String("key", key), zap.Error(err))
		return err
	}
	if err := st.Set(key, string(raw)); err != nil {
		log.Error("collection write failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// appendTo appends one entry to an append-only ledger collection.
func appendTo[T any](st *storage.ScopedStore, key string, entry T, log *zap.Logger) error {
	items := loadCollection[T](st, key, log)
	return saveCollection(st, key, append(items, entry), log)
}

func nextID() string {
	return uuid.NewString()
}

// diffFields compares the mutable fields of the stored and incoming versions
// and returns one change record per field that differs. Values are rendered
// with %v; the sublog is for humans auditing edits, not for replay.
func diffFields(entityID, actor string, old, new map[string]interface{}) []models.ChangeRecord {
	now := time.Now()
	var changes []models.ChangeRecord
	for field, newVal := range new {
		oldVal, ok := old[field]
		if ok && fmt.Sprintf("%v", oldVal) == fmt.Sprintf("%v", newVal) {
			continue
		}
		changes = append(changes, models.ChangeRecord{
			EntityID:  entityID,
			Field:     field,
			OldValue:  fmt.Sprintf("%v", oldVal),
			NewValue:  fmt.Sprintf("%v", newVal),
			Actor:     actor,
			Timestamp: now,
		})
	}
	return changes
}
