package models

import "time"

// TenantBackup and OwnerBackup are the rows the remote sync collaborator
// upserts for cross-device recovery. They are keyed by entity id so the push
// is idempotent; the core works fine when the database is unreachable.
type TenantBackup struct {
	ID        string `gorm:"primaryKey"`
	Slug      string `gorm:"index"`
	Payload   string `gorm:"type:text"`
	UpdatedAt time.Time
}

type OwnerBackup struct {
	ID        string `gorm:"primaryKey"`
	Email     string `gorm:"index"`
	Payload   string `gorm:"type:text"`
	UpdatedAt time.Time
}
