// services/sync_service.go
package services

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"glambook-backend/logger"
	"glambook-backend/models"
	"glambook-backend/repository"
)

// SyncService pushes tenant and owner records to the backup tables for
// cross-device recovery. The push is upsert-by-id and fire-and-forget: a
// missing or unreachable database costs nothing but the backup.
type SyncService struct {
	db  *gorm.DB
	dir *repository.TenantDirectory
	log *zap.Logger
}

func NewSyncService(db *gorm.DB, dir *repository.TenantDirectory) *SyncService {
	return &SyncService{db: db, dir: dir, log: logger.Get()}
}

// Migrate creates the backup tables. No-op without a database.
func (s *SyncService) Migrate() error {
	if s.db == nil {
		return nil
	}
	return s.db.AutoMigrate(&models.TenantBackup{}, &models.OwnerBackup{})
}

// PushBackup upserts every tenant and owner. Returns the count pushed so the
// scheduler can log it; failure is reported, never fatal.
func (s *SyncService) PushBackup() (int, error) {
	if s.db == nil {
		return 0, nil
	}

	pushed := 0
	now := time.Now()
	for _, t := range s.dir.GetAll() {
		payload, err := json.Marshal(t)
		if err != nil {
			s.log.Error("tenant backup marshal failed", zap.String("tenant", t.ID), zap.Error(err))
			continue
		}
		row := models.TenantBackup{ID: t.ID, Slug: t.Slug, Payload: string(payload), UpdatedAt: now}
		if err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"slug", "payload", "updated_at"}),
		}).Create(&row).Error; err != nil {
			return pushed, err
		}
		pushed++
	}

	for _, o := range s.dir.GetOwners() {
		payload, err := json.Marshal(o)
		if err != nil {
			s.log.Error("owner backup marshal failed", zap.String("owner", o.ID), zap.Error(err))
			continue
		}
		row := models.OwnerBackup{ID: o.ID, Email: o.Email, Payload: string(payload), UpdatedAt: now}
		if err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "payload", "updated_at"}),
		}).Create(&row).Error; err != nil {
			return pushed, err
		}
		pushed++
	}
	return pushed, nil
}
