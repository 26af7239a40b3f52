package storage

import (
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry is the gorm model backing PostgresStore.
type KVEntry struct {
	Key       string `gorm:"primaryKey;size:512"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

// PostgresStore persists the Store contract in a single kv_entries table.
// Writes are upserts so a retried save stays idempotent. Change events are
// delivered to in-process subscribers the same way MemoryStore does.
type PostgresStore struct {
	db      *gorm.DB
	log     *zap.Logger
	mu      sync.Mutex
	subs    map[int]func(Event)
	nextSub int
}

func NewPostgresStore(db *gorm.DB, log *zap.Logger) (*PostgresStore, error) {
	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return nil, err
	}
	return &PostgresStore{
		db:   db,
		log:  log,
		subs: make(map[int]func(Event)),
	}, nil
}

func (s *PostgresStore) Get(key string) (string, bool) {
	var entry KVEntry
	err := s.db.First(&entry, "key = ?", key).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Error("kv get failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return entry.Value, true
}

func (s *PostgresStore) Set(key, value string) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&KVEntry{Key: key, Value: value, UpdatedAt: time.Now()}).Error
	if err != nil {
		s.log.Error("kv set failed", zap.String("key", key), zap.Error(err))
		return err
	}
	s.notify(Event{Key: key, NewValue: value})
	return nil
}

func (s *PostgresStore) Remove(key string) error {
	if err := s.db.Delete(&KVEntry{}, "key = ?", key).Error; err != nil {
		s.log.Error("kv remove failed", zap.String("key", key), zap.Error(err))
		return err
	}
	s.notify(Event{Key: key, Removed: true})
	return nil
}

func (s *PostgresStore) Keys(prefix string) []string {
	var keys []string
	like := strings.ReplaceAll(strings.ReplaceAll(prefix, `\`, `\\`), "%", `\%`)
	like = strings.ReplaceAll(like, "_", `\_`) + "%"
	if err := s.db.Model(&KVEntry{}).Where("key LIKE ?", like).Pluck("key", &keys).Error; err != nil {
		s.log.Error("kv keys failed", zap.String("prefix", prefix), zap.Error(err))
		return nil
	}
	return keys
}

func (s *PostgresStore) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *PostgresStore) notify(ev Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}
