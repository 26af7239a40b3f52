package models

import "time"

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Appointment carries the money fields directly; there is no separate invoice
// record in this product.
type Appointment struct {
	ID            string            `json:"id"`
	ClientID      string            `json:"clientId"`
	StaffID       string            `json:"staffId"`
	ServiceIDs    []string          `json:"serviceIds"`
	Date          time.Time         `json:"date"`
	TotalPrice    float64           `json:"totalPrice"`
	Discount      float64           `json:"discount"`
	CouponCode    string            `json:"couponCode,omitempty"`
	Notes         string            `json:"notes"`
	Status        AppointmentStatus `json:"status"`
	StatusHistory []StatusChange    `json:"statusHistory"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// StatusChange is one entry of the append-only transition log. Status is never
// mutated outside the status-update operation so this log stays complete.
type StatusChange struct {
	From      AppointmentStatus `json:"from"`
	To        AppointmentStatus `json:"to"`
	Actor     string            `json:"actor"`
	Reason    string            `json:"reason,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// ValidStatus reports whether s is one of the four appointment states.
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}
