package repository

import (
	"go.uber.org/zap"

	"glambook-backend/logger"
	"glambook-backend/models"
	"glambook-backend/storage"
)

const (
	rewardCouponsKey = "reward-coupons"
	rewardHistoryKey = "reward-history"
	notificationsKey = "notification-history"
)

// RewardRepository persists coupons and the append-only reward ledger; the
// reward engine owns all the business rules.
type RewardRepository struct {
	st  *storage.ScopedStore
	log *zap.Logger
}

func NewRewardRepository(st *storage.ScopedStore) *RewardRepository {
	return &RewardRepository{st: st, log: logger.Get()}
}

func (r *RewardRepository) GetCoupons() []models.RewardCoupon {
	return loadCollection[models.RewardCoupon](r.st, rewardCouponsKey, r.log)
}

func (r *RewardRepository) GetCouponByCode(code string) *models.RewardCoupon {
	for _, c := range r.GetCoupons() {
		if c.Code == code {
			return &c
		}
	}
	return nil
}

func (r *RewardRepository) SaveCoupons(coupons []models.RewardCoupon) error {
	return saveCollection(r.st, rewardCouponsKey, coupons, r.log)
}

func (r *RewardRepository) AppendHistory(entry models.RewardHistory) error {
	return appendTo(r.st, rewardHistoryKey, entry, r.log)
}

func (r *RewardRepository) History() []models.RewardHistory {
	return loadCollection[models.RewardHistory](r.st, rewardHistoryKey, r.log)
}

// NotificationRepository is the ledger for the notification collaborator's
// outcomes. Booking completion never depends on it.
type NotificationRepository struct {
	st  *storage.ScopedStore
	log *zap.Logger
}

func NewNotificationRepository(st *storage.ScopedStore) *NotificationRepository {
	return &NotificationRepository{st: st, log: logger.Get()}
}

func (r *NotificationRepository) Append(entry models.NotificationLog) error {
	return appendTo(r.st, notificationsKey, entry, r.log)
}

func (r *NotificationRepository) GetAll() []models.NotificationLog {
	return loadCollection[models.NotificationLog](r.st, notificationsKey, r.log)
}
