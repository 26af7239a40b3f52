// services/staff_guard.go
package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"glambook-backend/logger"
	"glambook-backend/metrics"
	"glambook-backend/models"
	"glambook-backend/repository"
)

// Remediation actions for appointments bound to a staff member being removed.
const (
	RemediationCancel   = "cancel"
	RemediationReassign = "reassign"
)

const staffRemovedReason = "staff member removed"

// StaffIntegrityGuard resolves dependent appointments before a staff member
// can be deleted or deactivated, so no booking is left pointing at someone
// who cannot fulfill it. Operations never partially apply.
type StaffIntegrityGuard struct {
	staff        *repository.StaffRepository
	appointments *repository.AppointmentRepository
	log          *zap.Logger
}

func NewStaffIntegrityGuard(staff *repository.StaffRepository, appointments *repository.AppointmentRepository) *StaffIntegrityGuard {
	return &StaffIntegrityGuard{
		staff:        staff,
		appointments: appointments,
		log:          logger.Get(),
	}
}

// GetFutureAppointmentsForStaff returns the staff member's appointments dated
// from now on, excluding ones already cancelled.
func (g *StaffIntegrityGuard) GetFutureAppointmentsForStaff(staffID string) []models.Appointment {
	now := time.Now()
	var out []models.Appointment
	for _, a := range g.appointments.ForStaff(staffID) {
		if a.Date.After(now) && a.Status != models.AppointmentCancelled {
			out = append(out, a)
		}
	}
	return out
}

func (g *StaffIntegrityGuard) GetAllAppointmentsForStaff(staffID string) []models.Appointment {
	return g.appointments.ForStaff(staffID)
}

// HandleStaffDeletion remediates the staff member's future appointments and
// then soft-deletes the record. With no remediation chosen and unresolved
// future bookings the guard refuses; it never guesses for the caller.
func (g *StaffIntegrityGuard) HandleStaffDeletion(staff models.StaffMember, action, reassignToStaffID string) repository.Result {
	// Checked up front so the remediation below cannot apply and then have the
	// save refuse the record, leaving a half-done removal.
	if res := g.staff.Validate(staff); !res.Success {
		return res
	}
	future := g.GetFutureAppointmentsForStaff(staff.ID)

	switch {
	case len(future) == 0:
		// nothing to remediate
	case action == RemediationCancel:
		for _, a := range future {
			g.appointments.UpdateStatus(a.ID, models.AppointmentCancelled, "system", staffRemovedReason)
		}
	case action == RemediationReassign:
		if res := g.reassignFuture(staff.ID, reassignToStaffID, future); !res.Success {
			return res
		}
	default:
		return repository.Fail(fmt.Sprintf(
			"%s has %d upcoming appointments; choose to cancel or reassign them first",
			staff.FullName, len(future)))
	}

	staff.State = models.LifecycleDeleted
	if res := g.staff.Save(staff, "system"); !res.Success {
		return res
	}
	g.log.Info("staff member removed",
		zap.String("staff", staff.ID),
		zap.String("action", action),
		zap.Int("futureAppointments", len(future)))
	return repository.OK()
}

// HandleStaffUpdate saves the new record; when it flips the member out of the
// active state, future appointments get the same remediation as deletion in
// cancel mode, since a deactivated member can no longer fulfill bookings.
// Reactivating later does not restore them.
func (g *StaffIntegrityGuard) HandleStaffUpdate(oldStaff, newStaff models.StaffMember) repository.Result {
	if res := g.staff.Validate(newStaff); !res.Success {
		return res
	}
	if oldStaff.State.IsActive() && !newStaff.State.IsActive() {
		for _, a := range g.GetFutureAppointmentsForStaff(oldStaff.ID) {
			g.appointments.UpdateStatus(a.ID, models.AppointmentCancelled, "system", "staff member deactivated")
		}
	}
	return g.staff.Save(newStaff, "system")
}

// CleanupOrphanedAppointments cancels appointments whose staff id is absent
// from the current roster entirely (data drift from out-of-band edits) and
// returns the count remediated.
func (g *StaffIntegrityGuard) CleanupOrphanedAppointments() int {
	roster := make(map[string]bool)
	for _, s := range g.staff.ForceRefresh() {
		roster[s.ID] = true
	}

	count := 0
	for _, a := range g.appointments.GetAll() {
		if a.StaffID == "" || roster[a.StaffID] {
			continue
		}
		if a.Status == models.AppointmentCancelled || a.Status == models.AppointmentCompleted {
			continue
		}
		if g.appointments.UpdateStatus(a.ID, models.AppointmentCancelled, "system", "assigned staff no longer exists").Success {
			count++
		}
	}
	if count > 0 {
		metrics.OrphanedAppointmentsCleaned.Add(float64(count))
		g.log.Warn("orphaned appointments cancelled", zap.Int("count", count))
	}
	return count
}

// reassignFuture validates the target then rewrites every future appointment
// in a single collection write, so a bad target mutates nothing.
func (g *StaffIntegrityGuard) reassignFuture(fromID, toID string, future []models.Appointment) repository.Result {
	if toID == "" {
		return repository.Fail("choose a staff member to reassign appointments to")
	}
	if toID == fromID {
		return repository.Fail("cannot reassign appointments to the staff member being removed")
	}
	target := g.staff.GetByID(toID)
	if target == nil {
		return repository.Fail("reassignment target not found")
	}
	if !target.State.IsActive() {
		return repository.Fail("reassignment target is not an active staff member")
	}

	futureIDs := make(map[string]bool, len(future))
	for _, a := range future {
		futureIDs[a.ID] = true
	}
	appts := g.appointments.GetAll()
	now := time.Now()
	for i, a := range appts {
		if futureIDs[a.ID] {
			appts[i].StaffID = toID
			appts[i].UpdatedAt = now
		}
	}
	return g.appointments.Overwrite(appts)
}
