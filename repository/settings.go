package repository

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"glambook-backend/bus"
	"glambook-backend/logger"
	"glambook-backend/models"
	"glambook-backend/storage"
)

const (
	salonSettingsKey   = "salon-settings"
	themeSettingsKey   = "theme-settings"
	settingsChangesKey = "settings-changes"
)

// SettingsRepository manages the tenant's singleton salon and theme records.
// Every successful save publishes the new record on its bus so dependent
// state refreshes without polling; changes arriving through the underlying
// store from another handle are re-published the same way.
type SettingsRepository struct {
	st       *storage.ScopedStore
	log      *zap.Logger
	SalonBus *bus.Bus[models.SalonSettings]
	ThemeBus *bus.Bus[models.ThemeSettings]
	unsub    func()

	mu     sync.Mutex
	saving bool
}

func NewSettingsRepository(st *storage.ScopedStore) *SettingsRepository {
	log := logger.Get()
	r := &SettingsRepository{
		st:       st,
		log:      log,
		SalonBus: bus.New[models.SalonSettings](log),
		ThemeBus: bus.New[models.ThemeSettings](log),
	}
	// Storage events fired by our own writes are suppressed; the browser
	// original only saw storage events from other tabs and this keeps the
	// publish count identical.
	r.unsub = st.Subscribe(func(base, newValue string) {
		if r.isSaving() {
			return
		}
		switch base {
		case salonSettingsKey:
			var s models.SalonSettings
			if err := json.Unmarshal([]byte(newValue), &s); err == nil {
				r.SalonBus.Publish(s)
			}
		case themeSettingsKey:
			var t models.ThemeSettings
			if err := json.Unmarshal([]byte(newValue), &t); err == nil {
				r.ThemeBus.Publish(t)
			}
		}
	})
	return r
}

// Close removes the store subscription. The repository keeps working for
// direct reads and writes, it just stops observing other handles.
func (r *SettingsRepository) Close() {
	if r.unsub != nil {
		r.unsub()
		r.unsub = nil
	}
}

// GetSalon returns the active settings record, falling back to defaults when
// the tenant has never saved one.
func (r *SettingsRepository) GetSalon() models.SalonSettings {
	raw, ok := r.st.Get(salonSettingsKey)
	if !ok {
		return models.DefaultSalonSettings("")
	}
	var s models.SalonSettings
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		r.log.Error("corrupt salon settings", zap.Error(err))
		return models.DefaultSalonSettings("")
	}
	return s
}

func (r *SettingsRepository) SaveSalon(s models.SalonSettings, actor string) Result {
	if s.Name == "" {
		return Fail("salon name is required")
	}
	if len(s.Name) > 100 {
		return Fail("salon name must be at most 100 characters")
	}
	if len(s.Motto) > 200 {
		return Fail("motto must be at most 200 characters")
	}
	if s.RewardThreshold < 0 || s.RewardDiscountPct < 0 || s.RewardDiscountPct > 100 {
		return Fail("invalid reward configuration")
	}

	old := r.GetSalon()
	s.UpdatedAt = time.Now()
	changes := diffFields("salon-settings", actor, salonFields(old), salonFields(s))
	if len(changes) > 0 {
		if err := appendManyChanges(r.st, settingsChangesKey, changes, r.log); err != nil {
			return Fail(ErrStorage)
		}
	}
	if err := r.write(salonSettingsKey, s); err != nil {
		return Fail(ErrStorage)
	}
	r.SalonBus.Publish(s)
	return OK()
}

func (r *SettingsRepository) GetTheme() models.ThemeSettings {
	raw, ok := r.st.Get(themeSettingsKey)
	if !ok {
		return models.DefaultThemeSettings()
	}
	var t models.ThemeSettings
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		r.log.Error("corrupt theme settings", zap.Error(err))
		return models.DefaultThemeSettings()
	}
	return t
}

func (r *SettingsRepository) SaveTheme(t models.ThemeSettings, actor string) Result {
	if t.PrimaryColor == "" {
		return Fail("primary color is required")
	}

	old := r.GetTheme()
	t.UpdatedAt = time.Now()
	changes := diffFields("theme-settings", actor, themeFields(old), themeFields(t))
	if len(changes) > 0 {
		if err := appendManyChanges(r.st, settingsChangesKey, changes, r.log); err != nil {
			return Fail(ErrStorage)
		}
	}
	if err := r.write(themeSettingsKey, t); err != nil {
		return Fail(ErrStorage)
	}
	r.ThemeBus.Publish(t)
	return OK()
}

func (r *SettingsRepository) Changes() []models.ChangeRecord {
	return loadCollection[models.ChangeRecord](r.st, settingsChangesKey, r.log)
}

func (r *SettingsRepository) write(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		r.log.Error("settings marshal failed", zap.String("key", key), zap.Error(err))
		return err
	}
	r.mu.Lock()
	r.saving = true
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.saving = false
		r.mu.Unlock()
	}()
	if err := r.st.Set(key, string(raw)); err != nil {
		r.log.Error("settings write failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (r *SettingsRepository) isSaving() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saving
}

func salonFields(s models.SalonSettings) map[string]interface{} {
	return map[string]interface{}{
		"name":               s.Name,
		"motto":              s.Motto,
		"address":            s.Address,
		"phone":              s.Phone,
		"bookingOpenDays":    s.BookingOpenDays,
		"rewardThreshold":    s.RewardThreshold,
		"rewardDiscountPct":  s.RewardDiscountPct,
		"rewardValidityDays": s.RewardValidityDays,
	}
}

func themeFields(t models.ThemeSettings) map[string]interface{} {
	return map[string]interface{}{
		"primaryColor":    t.PrimaryColor,
		"secondaryColor":  t.SecondaryColor,
		"accentColor":     t.AccentColor,
		"backgroundColor": t.BackgroundColor,
		"fontFamily":      t.FontFamily,
	}
}
