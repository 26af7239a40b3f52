package models

import "time"

const (
	RewardEventGenerated = "coupon_generated"
	RewardEventUsed      = "coupon_used"
)

// RewardCoupon is a one-time discount minted when a client's completed spend
// crosses the configured threshold.
type RewardCoupon struct {
	ID                 string     `json:"id"`
	Code               string     `json:"code"`
	ClientID           string     `json:"clientId"`
	DiscountPercentage float64    `json:"discountPercentage"`
	IssuedAt           time.Time  `json:"issuedAt"`
	ExpiresAt          time.Time  `json:"expiresAt"`
	Redeemed           bool       `json:"redeemed"`
	RedeemedAt         *time.Time `json:"redeemedAt,omitempty"`
	AppointmentID      string     `json:"appointmentId,omitempty"`
}

// Expired evaluates expiry lazily at read time; there is no background sweep.
func (c RewardCoupon) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Usable reports whether the coupon can still be redeemed as of now.
func (c RewardCoupon) Usable(now time.Time) bool {
	return !c.Redeemed && !c.Expired(now)
}

// RewardHistory is one append-only ledger entry per coupon issuance or use.
type RewardHistory struct {
	ID         string    `json:"id"`
	ClientID   string    `json:"clientId"`
	CouponID   string    `json:"couponId"`
	CouponCode string    `json:"couponCode"`
	Event      string    `json:"event"`
	Amount     float64   `json:"amount,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
