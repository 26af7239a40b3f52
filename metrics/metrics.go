package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glambook_bookings_created_total",
		Help: "Appointments created through the booking flow",
	})

	CouponsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glambook_reward_coupons_issued_total",
		Help: "Reward coupons minted by the reward engine",
	})

	CouponsRedeemed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glambook_reward_coupons_redeemed_total",
		Help: "Reward coupons redeemed against appointments",
	})

	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glambook_notifications_total",
		Help: "Booking confirmation messages by outcome",
	}, []string{"status"})

	OrphanedAppointmentsCleaned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glambook_orphaned_appointments_cleaned_total",
		Help: "Appointments cancelled because their staff no longer exists",
	})
)
