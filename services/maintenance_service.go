// services/maintenance_service.go
package services

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"glambook-backend/bus"
	"glambook-backend/logger"
	"glambook-backend/repository"
	"glambook-backend/storage"
)

// MaintenanceService runs the nightly housekeeping pass: orphaned-appointment
// cleanup per active tenant, then a backup push.
type MaintenanceService struct {
	dir  *repository.TenantDirectory
	sync *SyncService
	log  *zap.Logger
}

func NewMaintenanceService(dir *repository.TenantDirectory, sync *SyncService) *MaintenanceService {
	return &MaintenanceService{dir: dir, sync: sync, log: logger.Get()}
}

func (s *MaintenanceService) StartScheduler() {
	c := cron.New()

	// Run every night at 02:30
	c.AddFunc("30 2 * * *", s.RunNightly)

	c.Start()
	s.log.Info("maintenance scheduler started")
}

func (s *MaintenanceService) RunNightly() {
	s.log.Info("nightly maintenance starting")

	for _, t := range s.dir.GetAll() {
		if !t.State.IsActive() {
			continue
		}
		scoped := storage.NewScopedStore(s.dir.Store(), storage.Scope{TenantID: t.ID})
		staff := repository.NewStaffRepository(scoped, bus.New[string](s.log), 0)
		appointments := repository.NewAppointmentRepository(scoped)
		guard := NewStaffIntegrityGuard(staff, appointments)
		if n := guard.CleanupOrphanedAppointments(); n > 0 {
			s.log.Info("tenant cleanup",
				zap.String("tenant", t.Slug), zap.Int("remediated", n))
		}
	}

	if s.sync != nil {
		if n, err := s.sync.PushBackup(); err != nil {
			s.log.Warn("backup push failed", zap.Error(err))
		} else if n > 0 {
			s.log.Info("backup pushed", zap.Int("records", n))
		}
	}

	s.log.Info("nightly maintenance completed")
}
