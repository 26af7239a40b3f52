package repository

import (
	"testing"
	"time"

	"glambook-backend/models"
)

func bookTestAppointment(t *testing.T, repo *AppointmentRepository) *models.Appointment {
	t.Helper()
	appt, res := repo.Create(models.Appointment{
		ClientID:   "c1",
		StaffID:    "s1",
		ServiceIDs: []string{"svc1"},
		Date:       time.Now().Add(24 * time.Hour),
	}, "client")
	if !res.Success {
		t.Fatalf("create appointment: %s", res.Error)
	}
	return appt
}

func TestCreateStartsPendingWithOpeningHistory(t *testing.T) {
	repo := NewAppointmentRepository(newTestStore("t1"))

	appt, res := repo.Create(models.Appointment{
		ClientID:   "c1",
		ServiceIDs: []string{"svc1"},
		Status:     models.AppointmentCompleted, // caller cannot pick a status
	}, "client")
	if !res.Success {
		t.Fatalf("create: %s", res.Error)
	}
	if appt.Status != models.AppointmentPending {
		t.Errorf("status = %s, want pending", appt.Status)
	}
	if len(appt.StatusHistory) != 1 || appt.StatusHistory[0].To != models.AppointmentPending {
		t.Errorf("opening history = %+v", appt.StatusHistory)
	}
}

func TestCreateRequiresClientAndServices(t *testing.T) {
	repo := NewAppointmentRepository(newTestStore("t1"))
	if _, res := repo.Create(models.Appointment{ServiceIDs: []string{"x"}}, "client"); res.Success {
		t.Error("missing client must fail")
	}
	if _, res := repo.Create(models.Appointment{ClientID: "c1"}, "client"); res.Success {
		t.Error("empty service list must fail")
	}
}

func TestUpdateStatusAppendsHistory(t *testing.T) {
	repo := NewAppointmentRepository(newTestStore("t1"))
	appt := bookTestAppointment(t, repo)

	if res := repo.UpdateStatus(appt.ID, models.AppointmentConfirmed, "admin", ""); !res.Success {
		t.Fatalf("confirm: %s", res.Error)
	}
	if res := repo.UpdateStatus(appt.ID, models.AppointmentCompleted, "admin", ""); !res.Success {
		t.Fatalf("complete: %s", res.Error)
	}

	got := repo.GetByID(appt.ID)
	if got.Status != models.AppointmentCompleted {
		t.Errorf("status = %s, want completed", got.Status)
	}
	if len(got.StatusHistory) != 3 {
		t.Fatalf("history has %d entries, want 3", len(got.StatusHistory))
	}
	last := got.StatusHistory[2]
	if last.From != models.AppointmentConfirmed || last.To != models.AppointmentCompleted {
		t.Errorf("last transition = %+v", last)
	}
}

func TestUpdateStatusSameStatusIsNoOp(t *testing.T) {
	repo := NewAppointmentRepository(newTestStore("t1"))
	appt := bookTestAppointment(t, repo)

	if res := repo.UpdateStatus(appt.ID, models.AppointmentPending, "admin", ""); !res.Success {
		t.Fatalf("no-op transition failed: %s", res.Error)
	}
	if got := repo.GetByID(appt.ID); len(got.StatusHistory) != 1 {
		t.Errorf("no-op transition appended history: %+v", got.StatusHistory)
	}
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	repo := NewAppointmentRepository(newTestStore("t1"))
	appt := bookTestAppointment(t, repo)

	if res := repo.UpdateStatus(appt.ID, "postponed", "admin", ""); res.Success {
		t.Error("unknown status must fail")
	}
	if res := repo.UpdateStatus("missing", models.AppointmentConfirmed, "admin", ""); res.Success {
		t.Error("missing appointment must fail")
	}
}

func TestSavePreservesStatusAndHistory(t *testing.T) {
	repo := NewAppointmentRepository(newTestStore("t1"))
	appt := bookTestAppointment(t, repo)
	if res := repo.UpdateStatus(appt.ID, models.AppointmentConfirmed, "admin", ""); !res.Success {
		t.Fatalf("confirm: %s", res.Error)
	}

	edited := *repo.GetByID(appt.ID)
	edited.Notes = "bring reference photo"
	edited.Status = models.AppointmentCancelled
	edited.StatusHistory = nil
	if res := repo.Save(edited); !res.Success {
		t.Fatalf("save: %s", res.Error)
	}

	got := repo.GetByID(appt.ID)
	if got.Notes != "bring reference photo" {
		t.Errorf("notes = %q", got.Notes)
	}
	if got.Status != models.AppointmentConfirmed {
		t.Errorf("save mutated status to %s", got.Status)
	}
	if len(got.StatusHistory) != 2 {
		t.Errorf("save mutated history: %+v", got.StatusHistory)
	}
}

func TestForClientAndForStaff(t *testing.T) {
	repo := NewAppointmentRepository(newTestStore("t1"))
	bookTestAppointment(t, repo)
	if _, res := repo.Create(models.Appointment{
		ClientID: "c2", StaffID: "s2", ServiceIDs: []string{"svc1"},
	}, "client"); !res.Success {
		t.Fatalf("create: %s", res.Error)
	}

	if got := repo.ForClient("c1"); len(got) != 1 {
		t.Errorf("ForClient(c1) = %d appointments, want 1", len(got))
	}
	if got := repo.ForStaff("s2"); len(got) != 1 {
		t.Errorf("ForStaff(s2) = %d appointments, want 1", len(got))
	}
	if got := repo.ForStaff("nobody"); len(got) != 0 {
		t.Errorf("ForStaff(nobody) = %d appointments, want 0", len(got))
	}
}
