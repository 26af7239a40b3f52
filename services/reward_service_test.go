package services

import (
	"testing"
	"time"

	"glambook-backend/config"
	"glambook-backend/models"
	"glambook-backend/repository"
	"glambook-backend/storage"
)

var testRewardDefaults = config.RewardConfig{
	Threshold:    1000,
	DiscountPct:  10,
	ValidityDays: 30,
}

type rewardFixture struct {
	engine       *RewardEngine
	appointments *repository.AppointmentRepository
	rewards      *repository.RewardRepository
	clients      *repository.ClientRepository
	settings     *repository.SettingsRepository
	clientID     string
}

func newRewardFixture(t *testing.T) *rewardFixture {
	t.Helper()
	st := storage.NewScopedStore(storage.NewMemoryStore(), storage.Scope{TenantID: "t1"})
	f := &rewardFixture{
		appointments: repository.NewAppointmentRepository(st),
		rewards:      repository.NewRewardRepository(st),
		clients:      repository.NewClientRepository(st),
		settings:     repository.NewSettingsRepository(st),
	}
	f.engine = NewRewardEngine(f.appointments, f.rewards, f.clients, f.settings, testRewardDefaults)

	client, res := f.clients.Create(models.Client{FullName: "Maya", Phone: "+447700900123"}, "admin")
	if !res.Success {
		t.Fatalf("create client: %s", res.Error)
	}
	f.clientID = client.ID
	return f
}

// spend books an appointment for the fixture client and moves it to the given
// final status.
func (f *rewardFixture) spend(t *testing.T, total float64, status models.AppointmentStatus) *models.Appointment {
	t.Helper()
	appt, res := f.appointments.Create(models.Appointment{
		ClientID:   f.clientID,
		ServiceIDs: []string{"svc1"},
		TotalPrice: total,
		Date:       time.Now(),
	}, "admin")
	if !res.Success {
		t.Fatalf("create appointment: %s", res.Error)
	}
	if status != models.AppointmentPending {
		if res := f.appointments.UpdateStatus(appt.ID, status, "admin", ""); !res.Success {
			t.Fatalf("set status %s: %s", status, res.Error)
		}
	}
	return appt
}

func TestSpendingCountsCompletedOnly(t *testing.T) {
	f := newRewardFixture(t)
	f.spend(t, 500, models.AppointmentCompleted)
	f.spend(t, 300, models.AppointmentCancelled)
	f.spend(t, 200, models.AppointmentConfirmed)

	if got := f.engine.CalculateClientTotalSpending(f.clientID); got != 500 {
		t.Errorf("total spend = %v, want 500", got)
	}
}

func TestGenerateBelowThresholdReturnsNil(t *testing.T) {
	f := newRewardFixture(t)
	f.spend(t, 999, models.AppointmentCompleted)

	if c := f.engine.GenerateRewardCoupon(f.clientID); c != nil {
		t.Errorf("coupon minted below threshold: %+v", c)
	}
	if got := f.rewards.History(); len(got) != 0 {
		t.Errorf("history has %d entries, want 0", len(got))
	}
}

func TestGenerateIsIdempotentWhileCouponActive(t *testing.T) {
	f := newRewardFixture(t)
	f.spend(t, 1200, models.AppointmentCompleted)

	first := f.engine.GenerateRewardCoupon(f.clientID)
	if first == nil {
		t.Fatal("no coupon minted above threshold")
	}
	if first.DiscountPercentage != 10 {
		t.Errorf("discount pct = %v, want 10", first.DiscountPercentage)
	}

	if second := f.engine.GenerateRewardCoupon(f.clientID); second != nil {
		t.Errorf("second call minted another coupon: %+v", second)
	}

	generated := 0
	for _, h := range f.rewards.History() {
		if h.Event == models.RewardEventGenerated {
			generated++
		}
	}
	if generated != 1 {
		t.Errorf("%d coupon_generated entries, want exactly 1", generated)
	}
	if got := f.clients.GetByID(f.clientID).RewardsEarned; got != 1 {
		t.Errorf("rewardsEarned = %d, want 1", got)
	}
}

func TestRedeemComputesDiscountAndLinksAppointment(t *testing.T) {
	f := newRewardFixture(t)
	f.spend(t, 1200, models.AppointmentCompleted)
	coupon := f.engine.GenerateRewardCoupon(f.clientID)
	if coupon == nil {
		t.Fatal("no coupon minted")
	}

	target := f.spend(t, 200, models.AppointmentPending)
	res := f.engine.UseRewardCoupon(coupon.Code, target.ID)
	if !res.Success {
		t.Fatalf("redeem failed: %s (%s)", res.Error, res.ErrorKind)
	}
	if res.Discount != 20 {
		t.Errorf("discount = %v, want 20", res.Discount)
	}

	stored := f.rewards.GetCouponByCode(coupon.Code)
	if !stored.Redeemed || stored.AppointmentID != target.ID {
		t.Errorf("stored coupon = %+v", stored)
	}
	appt := f.appointments.GetByID(target.ID)
	if appt.Discount != 20 || appt.CouponCode != coupon.Code {
		t.Errorf("appointment = discount %v coupon %q", appt.Discount, appt.CouponCode)
	}

	used := 0
	for _, h := range f.rewards.History() {
		if h.Event == models.RewardEventUsed {
			used++
			if h.Amount != 20 {
				t.Errorf("ledger amount = %v, want 20", h.Amount)
			}
		}
	}
	if used != 1 {
		t.Errorf("%d coupon_used entries, want 1", used)
	}
}

func TestRedeemErrorKinds(t *testing.T) {
	f := newRewardFixture(t)
	f.spend(t, 1200, models.AppointmentCompleted)
	coupon := f.engine.GenerateRewardCoupon(f.clientID)
	target := f.spend(t, 100, models.AppointmentPending)

	if res := f.engine.UseRewardCoupon("RW-NOPE1234", target.ID); res.ErrorKind != CouponErrNotFound {
		t.Errorf("unknown code kind = %q, want %q", res.ErrorKind, CouponErrNotFound)
	}

	if res := f.engine.UseRewardCoupon(coupon.Code, target.ID); !res.Success {
		t.Fatalf("first redeem failed: %s", res.Error)
	}
	if res := f.engine.UseRewardCoupon(coupon.Code, target.ID); res.ErrorKind != CouponErrUsed {
		t.Errorf("reuse kind = %q, want %q", res.ErrorKind, CouponErrUsed)
	}
}

func TestExpiredCouponIsRejectedNotUsed(t *testing.T) {
	f := newRewardFixture(t)
	target := f.spend(t, 100, models.AppointmentPending)

	expired := models.RewardCoupon{
		ID:                 "cp1",
		Code:               "RW-OLDOLD01",
		ClientID:           f.clientID,
		DiscountPercentage: 10,
		IssuedAt:           time.Now().AddDate(0, 0, -60),
		ExpiresAt:          time.Now().AddDate(0, 0, -30),
	}
	if err := f.rewards.SaveCoupons([]models.RewardCoupon{expired}); err != nil {
		t.Fatalf("save coupons: %v", err)
	}

	res := f.engine.UseRewardCoupon(expired.Code, target.ID)
	if res.Success {
		t.Fatal("expired coupon redeemed")
	}
	if res.ErrorKind != CouponErrExpired {
		t.Errorf("kind = %q, want %q", res.ErrorKind, CouponErrExpired)
	}

	if got := f.engine.GetClientAvailableCoupons(f.clientID); len(got) != 0 {
		t.Errorf("expired coupon listed as available: %+v", got)
	}
}

func TestExpiredCouponUnblocksNewGeneration(t *testing.T) {
	f := newRewardFixture(t)
	f.spend(t, 1500, models.AppointmentCompleted)

	expired := models.RewardCoupon{
		ID:        "cp1",
		Code:      "RW-OLDOLD02",
		ClientID:  f.clientID,
		IssuedAt:  time.Now().AddDate(0, 0, -60),
		ExpiresAt: time.Now().AddDate(0, 0, -30),
	}
	if err := f.rewards.SaveCoupons([]models.RewardCoupon{expired}); err != nil {
		t.Fatalf("save coupons: %v", err)
	}

	fresh := f.engine.GenerateRewardCoupon(f.clientID)
	if fresh == nil {
		t.Fatal("expired coupon blocked a new one")
	}
	if fresh.Code == expired.Code {
		t.Error("new coupon reused the old code")
	}
}

func TestSalonSettingsOverrideDefaults(t *testing.T) {
	f := newRewardFixture(t)

	salon := models.DefaultSalonSettings("Glow Studio")
	salon.RewardThreshold = 300
	salon.RewardDiscountPct = 25
	if res := f.settings.SaveSalon(salon, "admin"); !res.Success {
		t.Fatalf("save settings: %s", res.Error)
	}

	f.spend(t, 400, models.AppointmentCompleted)
	coupon := f.engine.GenerateRewardCoupon(f.clientID)
	if coupon == nil {
		t.Fatal("tenant threshold of 300 not honored at 400 spend")
	}
	if coupon.DiscountPercentage != 25 {
		t.Errorf("discount pct = %v, want tenant override 25", coupon.DiscountPercentage)
	}
}
