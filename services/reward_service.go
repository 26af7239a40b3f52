// services/reward_service.go
package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"glambook-backend/config"
	"glambook-backend/logger"
	"glambook-backend/metrics"
	"glambook-backend/models"
	"glambook-backend/repository"
)

// Redemption error kinds. "expired" and "already used" are distinct on
// purpose; the booking form words them differently.
const (
	CouponErrNotFound = "coupon_not_found"
	CouponErrUsed     = "coupon_already_used"
	CouponErrExpired  = "coupon_expired"
)

// RedemptionResult is what applying a coupon to an appointment returns.
type RedemptionResult struct {
	Success   bool    `json:"success"`
	Discount  float64 `json:"discount,omitempty"`
	Error     string  `json:"error,omitempty"`
	ErrorKind string  `json:"errorKind,omitempty"`
}

// RewardEngine tracks client lifetime spend against the tenant's threshold
// and mints, expires and redeems discount coupons. Per client the machine is:
// spend accumulates -> threshold crossed -> coupon issued -> redeemed or
// expired. At most one active coupon per client, no stacking.
type RewardEngine struct {
	appointments *repository.AppointmentRepository
	rewards      *repository.RewardRepository
	clients      *repository.ClientRepository
	settings     *repository.SettingsRepository
	defaults     config.RewardConfig
	log          *zap.Logger
}

func NewRewardEngine(
	appointments *repository.AppointmentRepository,
	rewards *repository.RewardRepository,
	clients *repository.ClientRepository,
	settings *repository.SettingsRepository,
	defaults config.RewardConfig,
) *RewardEngine {
	return &RewardEngine{
		appointments: appointments,
		rewards:      rewards,
		clients:      clients,
		settings:     settings,
		defaults:     defaults,
		log:          logger.Get(),
	}
}

// CalculateClientTotalSpending sums totalPrice over the client's completed
// appointments. Pending, confirmed and cancelled ones never count.
func (e *RewardEngine) CalculateClientTotalSpending(clientID string) float64 {
	total := 0.0
	for _, a := range e.appointments.ForClient(clientID) {
		if a.Status == models.AppointmentCompleted {
			total += a.TotalPrice
		}
	}
	return total
}

// GenerateRewardCoupon mints a coupon once the client's spend crosses the
// threshold. Returns nil below the threshold or while an unredeemed,
// unexpired coupon exists — calling it repeatedly is idempotent until that
// coupon is redeemed or expires.
func (e *RewardEngine) GenerateRewardCoupon(clientID string) *models.RewardCoupon {
	threshold, discountPct, validityDays := e.effectiveConfig()
	if e.CalculateClientTotalSpending(clientID) < threshold {
		return nil
	}

	now := time.Now()
	coupons := e.rewards.GetCoupons()
	for _, c := range coupons {
		if c.ClientID == clientID && c.Usable(now) {
			return nil
		}
	}

	coupon := models.RewardCoupon{
		ID:                 uuid.NewString(),
		Code:               newCouponCode(),
		ClientID:           clientID,
		DiscountPercentage: discountPct,
		IssuedAt:           now,
		ExpiresAt:          now.AddDate(0, 0, validityDays),
	}
	if err := e.rewards.SaveCoupons(append(coupons, coupon)); err != nil {
		return nil
	}
	e.rewards.AppendHistory(models.RewardHistory{
		ID:         uuid.NewString(),
		ClientID:   clientID,
		CouponID:   coupon.ID,
		CouponCode: coupon.Code,
		Event:      models.RewardEventGenerated,
		Timestamp:  now,
	})

	if client := e.clients.GetByID(clientID); client != nil {
		client.RewardsEarned++
		e.clients.Save(*client, "system")
	}

	metrics.CouponsIssued.Inc()
	e.log.Info("reward coupon issued",
		zap.String("client", clientID), zap.String("code", coupon.Code))
	return &coupon
}

// UseRewardCoupon redeems a coupon against an appointment, computing the
// discount from the appointment total. One-time use.
func (e *RewardEngine) UseRewardCoupon(code, appointmentID string) RedemptionResult {
	now := time.Now()
	coupons := e.rewards.GetCoupons()
	for i, c := range coupons {
		if c.Code != code {
			continue
		}
		if c.Redeemed {
			return RedemptionResult{
				Error:     "this coupon has already been used",
				ErrorKind: CouponErrUsed,
			}
		}
		if c.Expired(now) {
			return RedemptionResult{
				Error:     "this coupon has expired",
				ErrorKind: CouponErrExpired,
			}
		}

		appt := e.appointments.GetByID(appointmentID)
		if appt == nil {
			return RedemptionResult{
				Error:     "appointment not found",
				ErrorKind: CouponErrNotFound,
			}
		}

		discount := appt.TotalPrice * c.DiscountPercentage / 100
		coupons[i].Redeemed = true
		coupons[i].RedeemedAt = &now
		coupons[i].AppointmentID = appointmentID
		if err := e.rewards.SaveCoupons(coupons); err != nil {
			return RedemptionResult{Error: repository.ErrStorage}
		}

		appt.Discount = discount
		appt.CouponCode = code
		e.appointments.Save(*appt)

		e.rewards.AppendHistory(models.RewardHistory{
			ID:         uuid.NewString(),
			ClientID:   c.ClientID,
			CouponID:   c.ID,
			CouponCode: code,
			Event:      models.RewardEventUsed,
			Amount:     discount,
			Timestamp:  now,
		})
		metrics.CouponsRedeemed.Inc()
		return RedemptionResult{Success: true, Discount: discount}
	}
	return RedemptionResult{
		Error:     "unknown coupon code",
		ErrorKind: CouponErrNotFound,
	}
}

// GetClientAvailableCoupons returns the client's unredeemed, unexpired
// coupons as of now. Expiry is evaluated lazily here, not by a sweep.
func (e *RewardEngine) GetClientAvailableCoupons(clientID string) []models.RewardCoupon {
	now := time.Now()
	var out []models.RewardCoupon
	for _, c := range e.rewards.GetCoupons() {
		if c.ClientID == clientID && c.Usable(now) {
			out = append(out, c)
		}
	}
	return out
}

func (e *RewardEngine) effectiveConfig() (threshold, discountPct float64, validityDays int) {
	threshold = e.defaults.Threshold
	discountPct = e.defaults.DiscountPct
	validityDays = e.defaults.ValidityDays
	if e.settings == nil {
		return
	}
	s := e.settings.GetSalon()
	if s.RewardThreshold > 0 {
		threshold = s.RewardThreshold
	}
	if s.RewardDiscountPct > 0 {
		discountPct = s.RewardDiscountPct
	}
	if s.RewardValidityDays > 0 {
		validityDays = s.RewardValidityDays
	}
	return
}

func newCouponCode() string {
	return "RW-" + strings.ToUpper(uuid.NewString()[:8])
}
