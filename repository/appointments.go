package repository

import (
	"time"

	"go.uber.org/zap"

	"glambook-backend/logger"
	"glambook-backend/models"
	"glambook-backend/storage"
)

const appointmentsKey = "appointments"

// AppointmentRepository manages bookings. Status is mutated only through
// UpdateStatus so the transition history stays complete; Save deliberately
// preserves the stored status and history.
type AppointmentRepository struct {
	st  *storage.ScopedStore
	log *zap.Logger
}

func NewAppointmentRepository(st *storage.ScopedStore) *AppointmentRepository {
	return &AppointmentRepository{st: st, log: logger.Get()}
}

func (r *AppointmentRepository) GetAll() []models.Appointment {
	return loadCollection[models.Appointment](r.st, appointmentsKey, r.log)
}

func (r *AppointmentRepository) GetByID(id string) *models.Appointment {
	for _, a := range r.GetAll() {
		if a.ID == id {
			return &a
		}
	}
	return nil
}

func (r *AppointmentRepository) ForClient(clientID string) []models.Appointment {
	var out []models.Appointment
	for _, a := range r.GetAll() {
		if a.ClientID == clientID {
			out = append(out, a)
		}
	}
	return out
}

func (r *AppointmentRepository) ForStaff(staffID string) []models.Appointment {
	var out []models.Appointment
	for _, a := range r.GetAll() {
		if a.StaffID == staffID {
			out = append(out, a)
		}
	}
	return out
}

// Create books a new appointment in pending status with an opening history
// entry recording who booked it.
func (r *AppointmentRepository) Create(appt models.Appointment, actor string) (*models.Appointment, Result) {
	if appt.ClientID == "" {
		return nil, Fail("appointment needs a client")
	}
	if len(appt.ServiceIDs) == 0 {
		return nil, Fail("appointment needs at least one service")
	}
	now := time.Now()
	appt.ID = nextID()
	appt.Status = models.AppointmentPending
	appt.StatusHistory = []models.StatusChange{{
		To:        models.AppointmentPending,
		Actor:     actor,
		Timestamp: now,
	}}
	appt.CreatedAt = now
	appt.UpdatedAt = now

	appts := append(r.GetAll(), appt)
	if err := saveCollection(r.st, appointmentsKey, appts, r.log); err != nil {
		return nil, Fail(ErrStorage)
	}
	return &appt, OK()
}

// Save upserts the non-status fields of an appointment. Any status or history
// the caller set on the value is discarded in favor of the stored ones.
func (r *AppointmentRepository) Save(appt models.Appointment) Result {
	appts := r.GetAll()
	for i, existing := range appts {
		if existing.ID != appt.ID {
			continue
		}
		appt.Status = existing.Status
		appt.StatusHistory = existing.StatusHistory
		appt.CreatedAt = existing.CreatedAt
		appt.UpdatedAt = time.Now()
		appts[i] = appt
		if err := saveCollection(r.st, appointmentsKey, appts, r.log); err != nil {
			return Fail(ErrStorage)
		}
		return OK()
	}
	return Fail("appointment not found")
}

// UpdateStatus is the single path for status transitions. Every call appends
// to the append-only history log.
func (r *AppointmentRepository) UpdateStatus(id string, to models.AppointmentStatus, actor, reason string) Result {
	if !models.ValidStatus(to) {
		return Fail("unknown appointment status")
	}
	appts := r.GetAll()
	for i, a := range appts {
		if a.ID != id {
			continue
		}
		if a.Status == to {
			return OK()
		}
		now := time.Now()
		appts[i].StatusHistory = append(a.StatusHistory, models.StatusChange{
			From:      a.Status,
			To:        to,
			Actor:     actor,
			Reason:    reason,
			Timestamp: now,
		})
		appts[i].Status = to
		appts[i].UpdatedAt = now
		if err := saveCollection(r.st, appointmentsKey, appts, r.log); err != nil {
			return Fail(ErrStorage)
		}
		return OK()
	}
	return Fail("appointment not found")
}

// Overwrite replaces the full collection in one write. The staff integrity
// guard uses it so remediation applies all-or-nothing.
func (r *AppointmentRepository) Overwrite(appts []models.Appointment) Result {
	if err := saveCollection(r.st, appointmentsKey, appts, r.log); err != nil {
		return Fail(ErrStorage)
	}
	return OK()
}
